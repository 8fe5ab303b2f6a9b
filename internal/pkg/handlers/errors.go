package handlers

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/jake-scott/alexa-eolia/internal/pkg/alexa"
	"github.com/jake-scott/alexa-eolia/internal/pkg/eoliaapi"
)

// TemperatureRangeError is a setpoint outside what the appliance supports.
// It is never clamped.
type TemperatureRangeError struct {
	Value float64
	Min   float64
	Max   float64
}

func (e *TemperatureRangeError) Error() string {
	return fmt.Sprintf("temperature %g is out of range [%g, %g]", e.Value, e.Min, e.Max)
}

// UnsupportedDirectiveError is a (namespace, name) pair with no handler
type UnsupportedDirectiveError struct {
	Namespace string
	Name      string
}

func (e *UnsupportedDirectiveError) Error() string {
	return fmt.Sprintf("unsupported directive: namespace: %s, name: %s", e.Namespace, e.Name)
}

// UnrecognizedChildEndpointError is a scene endpoint whose child is not a
// known scene kind
type UnrecognizedChildEndpointError struct {
	EndpointID string
	ChildID    string
}

func (e *UnrecognizedChildEndpointError) Error() string {
	return fmt.Sprintf("unrecognized child endpoint %q in %q", e.ChildID, e.EndpointID)
}

func checkTemperature(value float64) error {
	if value < eoliaapi.MinTemperature || value > eoliaapi.MaxTemperature {
		return &TemperatureRangeError{
			Value: value,
			Min:   eoliaapi.MinTemperature,
			Max:   eoliaapi.MaxTemperature,
		}
	}

	return nil
}

// NewErrorResponse converts any failure into an ErrorResponse event.  Range
// violations carry the supported bounds, everything else is an internal
// error carrying the failure's message.
func NewErrorResponse(req *alexa.Request, err error) *alexa.Response {
	payload := &alexa.ErrorPayload{
		Type:    alexa.ErrorTypeInternal,
		Message: "unknown error",
	}
	if err != nil {
		payload.Message = err.Error()
	}

	var rangeErr *TemperatureRangeError
	if errors.As(err, &rangeErr) {
		payload = &alexa.ErrorPayload{
			Type:    alexa.ErrorTypeTemperatureValueOutOfRange,
			Message: rangeErr.Error(),
			ValidRange: &alexa.ValidRange{
				MinimumValue: alexa.NewCelsius(rangeErr.Min),
				MaximumValue: alexa.NewCelsius(rangeErr.Max),
			},
		}
	}

	event := &alexa.Event{
		Header:  alexa.NewHeader(alexa.NamespaceAlexa, alexa.NameErrorResponse, req.CorrelationToken()),
		Payload: payload,
	}
	if id := req.EndpointID(); id != "" {
		event.Endpoint = &alexa.Endpoint{EndpointID: id}
	}

	return &alexa.Response{Event: event}
}

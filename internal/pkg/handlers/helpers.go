package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-openapi/runtime/middleware/header"
	"github.com/pkg/errors"

	"github.com/jake-scott/alexa-eolia/internal/pkg/alexa"
	"github.com/jake-scott/alexa-eolia/internal/pkg/eoliaapi"
)

// Separates the device ID from the child of a scene endpoint, eg. 42@Cleaning
const childSeparator = "@"

func parseDeviceID(endpointID string) (int, error) {
	id, err := strconv.Atoi(endpointID)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing device id from endpoint %q", endpointID)
	}

	return id, nil
}

func splitChildEndpoint(endpointID string) (deviceID string, childID string) {
	parts := strings.SplitN(endpointID, childSeparator, 2)
	if len(parts) == 1 {
		return parts[0], ""
	}

	return parts[0], parts[1]
}

func childEndpointID(deviceID int, childID string) string {
	return strconv.Itoa(deviceID) + childSeparator + childID
}

func newEvent(req *alexa.Request, namespace, name string) *alexa.Event {
	event := &alexa.Event{
		Header:  alexa.NewHeader(namespace, name, req.CorrelationToken()),
		Payload: alexa.EmptyPayload{},
	}
	if id := req.EndpointID(); id != "" {
		event.Endpoint = &alexa.Endpoint{EndpointID: id}
	}

	return event
}

// A Response/StateReport event carrying the full thermostat report
func (d *Dispatcher) newStateResponse(req *alexa.Request, name string, status eoliaapi.DeviceStatus) *alexa.Response {
	return &alexa.Response{
		Event: newEvent(req, alexa.NamespaceAlexa, name),
		Context: &alexa.Context{
			Properties: eoliaapi.BuildReport(status, d.now(), 0),
		},
	}
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if r.Header.Get("Content-Type") != "" {
		value, _ := header.ParseValueAndParams(r.Header, "Content-Type")
		if value != "application/json" {
			return fmt.Errorf("expected JSON request, got %s", value)
		}
	}

	// 100kb max body
	reader := http.MaxBytesReader(w, r.Body, 100*1024)
	dec := json.NewDecoder(reader)

	if err := dec.Decode(&dst); err != nil {
		return err
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("request body must only contain a single JSON object")
	}

	return nil
}

func sendJSONResponse(w http.ResponseWriter, r *http.Request, d interface{}) error {
	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(d)
}

package handlers

import (
	"context"

	"github.com/pkg/errors"

	"github.com/jake-scott/alexa-eolia/internal/pkg/alexa"
	"github.com/jake-scott/alexa-eolia/internal/pkg/logging"
)

// AcceptGrant is acknowledged without a token exchange; the device API
// credential is configured out of band
func (d *Dispatcher) handleAcceptGrant(ctx context.Context, req *alexa.Request, v acceptGrantDirective) (*alexa.Response, error) {
	logging.Logger(ctx).Debugf("accepting grant of type %q", v.grantType)

	return &alexa.Response{
		Event: &alexa.Event{
			Header:  alexa.NewHeader(alexa.NamespaceAuthorization, alexa.NameAcceptGrantResponse, ""),
			Payload: alexa.EmptyPayload{},
		},
	}, nil
}

func (d *Dispatcher) handleReportState(ctx context.Context, req *alexa.Request, v reportStateDirective) (*alexa.Response, error) {
	deviceID, err := parseDeviceID(v.endpointID)
	if err != nil {
		return nil, err
	}

	status, err := d.api.GetDeviceStatus(ctx, deviceID)
	if err != nil {
		return nil, errors.Wrap(err, "fetching device status")
	}

	return d.newStateResponse(req, alexa.NameStateReport, *status), nil
}

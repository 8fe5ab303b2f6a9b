package handlers

import (
	"context"

	"github.com/go-openapi/strfmt"
	"github.com/pkg/errors"

	"github.com/jake-scott/alexa-eolia/internal/pkg/alexa"
	"github.com/jake-scott/alexa-eolia/internal/pkg/eoliaapi"
)

// Child IDs of the scene-only endpoints
const (
	ChildCleaning       = "Cleaning"
	ChildNanoexCleaning = "NanoexCleaning"
)

type sceneKind struct {
	childID     string
	mode        eoliaapi.OperationMode
	description string
}

func (k sceneKind) friendlySuffix(opts Options) string {
	if k.childID == ChildNanoexCleaning {
		return opts.NanoexSuffix
	}
	return opts.CleaningSuffix
}

var sceneKinds = []sceneKind{
	{childID: ChildCleaning, mode: eoliaapi.OperationModeCleaning, description: "おそうじ機能"},
	{childID: ChildNanoexCleaning, mode: eoliaapi.OperationModeNanoexCleaning, description: "おでかけクリーン機能"},
}

func lookupSceneKind(childID string) (sceneKind, bool) {
	for _, k := range sceneKinds {
		if k.childID == childID {
			return k, true
		}
	}

	return sceneKind{}, false
}

// Scene activation is fire-and-forget: the answer is "activation started",
// not a state report
func (d *Dispatcher) handleActivateScene(ctx context.Context, req *alexa.Request, v activateSceneDirective) (*alexa.Response, error) {
	strDeviceID, childID := splitChildEndpoint(v.endpointID)

	kind, ok := lookupSceneKind(childID)
	if !ok {
		return nil, &UnrecognizedChildEndpointError{EndpointID: v.endpointID, ChildID: childID}
	}

	deviceID, err := parseDeviceID(strDeviceID)
	if err != nil {
		return nil, err
	}

	if err := d.api.SendCommand(ctx, deviceID, eoliaapi.NewModeCommand(kind.mode)); err != nil {
		return nil, errors.Wrapf(err, "activating %s", kind.childID)
	}

	event := newEvent(req, alexa.NamespaceSceneController, alexa.NameActivationStarted)
	event.Payload = &alexa.ActivationStartedPayload{
		Cause:     &alexa.Cause{Type: alexa.CauseAppInteraction},
		Timestamp: strfmt.DateTime(d.now()),
	}

	return &alexa.Response{
		Event:   event,
		Context: &alexa.Context{},
	}, nil
}

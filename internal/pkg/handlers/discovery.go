package handlers

import (
	"context"
	"strconv"

	"github.com/pkg/errors"

	"github.com/jake-scott/alexa-eolia/internal/pkg/alexa"
	"github.com/jake-scott/alexa-eolia/internal/pkg/eoliaapi"
	"github.com/jake-scott/alexa-eolia/internal/pkg/logging"
)

// Each device is exposed as a thermostat plus one scene endpoint per
// cleaning function
func (d *Dispatcher) handleDiscover(ctx context.Context, req *alexa.Request) (*alexa.Response, error) {
	ctxLogger := logging.Logger(ctx)

	devices, err := d.api.Devices(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing devices")
	}

	endpoints := make([]*alexa.DiscoveryEndpoint, 0, len(devices)*(1+len(sceneKinds)))
	for _, device := range devices {
		ctxLogger.Debugf("device: %+v", device)

		endpoints = append(endpoints, d.thermostatEndpoint(device))
		for _, kind := range sceneKinds {
			endpoints = append(endpoints, d.sceneEndpoint(device, kind))
		}
	}
	ctxLogger.Infof("discovered %d devices, %d endpoints", len(devices), len(endpoints))

	return &alexa.Response{
		Event: &alexa.Event{
			Header:  alexa.NewHeader(alexa.NamespaceDiscovery, alexa.NameDiscoverResponse, ""),
			Payload: &alexa.DiscoverResponsePayload{Endpoints: endpoints},
		},
	}, nil
}

func (d *Dispatcher) thermostatEndpoint(device eoliaapi.Device) *alexa.DiscoveryEndpoint {
	thermostat := alexa.NewCapability(alexa.NamespaceThermostatController,
		alexa.PropertyTargetSetpoint, alexa.PropertyThermostatMode)
	thermostat.Configuration = &alexa.ThermostatConfiguration{
		SupportedModes: []alexa.ThermostatMode{
			alexa.ThermostatModeAuto,
			alexa.ThermostatModeCool,
			alexa.ThermostatModeHeat,
		},
		SupportsScheduling: false,
	}

	return &alexa.DiscoveryEndpoint{
		EndpointID:       strconv.Itoa(device.ID),
		ManufacturerName: d.opts.ManufacturerName,
		FriendlyName:     device.DisplayName,
		Description:      device.Description(),
		DisplayCategories: []string{
			alexa.DisplayCategoryThermostat,
			alexa.DisplayCategoryTemperatureSensor,
		},
		Capabilities: []*alexa.Capability{
			thermostat,
			alexa.NewCapability(alexa.NamespaceTemperatureSensor, alexa.PropertyTemperature),
			alexa.NewCapability(alexa.NamespacePowerController, alexa.PropertyPowerState),
			alexa.NewCapability(alexa.NamespaceAlexa),
		},
	}
}

func (d *Dispatcher) sceneEndpoint(device eoliaapi.Device, kind sceneKind) *alexa.DiscoveryEndpoint {
	return &alexa.DiscoveryEndpoint{
		EndpointID:        childEndpointID(device.ID, kind.childID),
		ManufacturerName:  d.opts.ManufacturerName,
		FriendlyName:      device.DisplayName + kind.friendlySuffix(d.opts),
		Description:       device.Description() + " " + kind.description,
		DisplayCategories: []string{alexa.DisplayCategorySceneTrigger},
		Capabilities: []*alexa.Capability{
			alexa.NewCapability(alexa.NamespaceSceneController),
		},
	}
}

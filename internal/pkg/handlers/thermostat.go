package handlers

import (
	"context"

	"github.com/pkg/errors"

	"github.com/jake-scott/alexa-eolia/internal/pkg/alexa"
	"github.com/jake-scott/alexa-eolia/internal/pkg/eoliaapi"
	"github.com/jake-scott/alexa-eolia/internal/pkg/logging"
)

// The range check runs on the unrounded value so a setpoint just outside the
// range cannot round into it
func temperatureCommand(target, exact float64) (*eoliaapi.Patch, error) {
	if err := checkTemperature(exact); err != nil {
		return nil, err
	}

	patch := eoliaapi.NewTemperatureCommand(target)
	return &patch, nil
}

// Derives the command for a directive from the current status.  A nil patch
// means nothing needs sending.
type commandBuilder func(status eoliaapi.DeviceStatus) (*eoliaapi.Patch, error)

// controlThermostat fetches the device status, sends the command built from
// it and answers with a report of the state the device is expected to reach
func (d *Dispatcher) controlThermostat(ctx context.Context, req *alexa.Request, endpointID string, build commandBuilder) (*alexa.Response, error) {
	deviceID, err := parseDeviceID(endpointID)
	if err != nil {
		return nil, err
	}

	status, err := d.api.GetDeviceStatus(ctx, deviceID)
	if err != nil {
		return nil, errors.Wrap(err, "fetching device status")
	}

	patch, err := build(*status)
	if err != nil {
		return nil, err
	}

	expected := *status
	if patch != nil {
		if err := d.api.SendCommand(ctx, deviceID, *patch); err != nil {
			return nil, errors.Wrap(err, "sending device command")
		}
		expected = applyExpectedEffect(*status, *patch)
	}

	return d.newStateResponse(req, alexa.NameResponse, expected), nil
}

func (d *Dispatcher) handleSetTargetTemperature(ctx context.Context, req *alexa.Request, v setTargetTemperatureDirective) (*alexa.Response, error) {
	return d.controlThermostat(ctx, req, v.endpointID, func(status eoliaapi.DeviceStatus) (*eoliaapi.Patch, error) {
		return temperatureCommand(v.target, v.exact)
	})
}

func (d *Dispatcher) handleAdjustTargetTemperature(ctx context.Context, req *alexa.Request, v adjustTargetTemperatureDirective) (*alexa.Response, error) {
	return d.controlThermostat(ctx, req, v.endpointID, func(status eoliaapi.DeviceStatus) (*eoliaapi.Patch, error) {
		return temperatureCommand(status.Temperature+v.delta, status.Temperature+v.exactDelta)
	})
}

// An unresolvable mode is not an error: the assistant probes with custom
// names, and expects a normal response with the unchanged state
func (d *Dispatcher) handleSetThermostatMode(ctx context.Context, req *alexa.Request, v setThermostatModeDirective) (*alexa.Response, error) {
	return d.controlThermostat(ctx, req, v.endpointID, func(status eoliaapi.DeviceStatus) (*eoliaapi.Patch, error) {
		mode, ok := eoliaapi.FromAlexaThermostatMode(v.mode, v.customName)
		if !ok {
			logging.Logger(ctx).Infof("ignoring unmapped thermostat mode %s (custom name %q)", v.mode, v.customName)
			return nil, nil
		}

		patch := eoliaapi.NewModeCommand(mode)
		return &patch, nil
	})
}

func (d *Dispatcher) handlePower(ctx context.Context, req *alexa.Request, v powerDirective) (*alexa.Response, error) {
	return d.controlThermostat(ctx, req, v.endpointID, func(status eoliaapi.DeviceStatus) (*eoliaapi.Patch, error) {
		patch := eoliaapi.NewPowerCommand(v.on)
		return &patch, nil
	})
}

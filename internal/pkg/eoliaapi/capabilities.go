package eoliaapi

import (
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/jake-scott/alexa-eolia/internal/pkg/alexa"
)

// BuildReport converts a status snapshot into the four properties reported
// for a thermostat endpoint, all sampled at the given instant
func BuildReport(status DeviceStatus, at time.Time, uncertaintyMs int64) []*alexa.Property {
	sampled := strfmt.DateTime(at)

	// A non-zero setpoint in a mode that ignores it breaks the assistant's
	// temperature controls
	var setpoint float64
	if status.OperationMode.SupportsTemperature() {
		setpoint = status.Temperature
	}

	powerState := alexa.PowerStateOff
	if status.OperationStatus {
		powerState = alexa.PowerStateOn
	}

	return []*alexa.Property{
		{
			Namespace:                 alexa.NamespaceThermostatController,
			Name:                      alexa.PropertyThermostatMode,
			Value:                     ToAlexaThermostatMode(status.OperationMode),
			TimeOfSample:              sampled,
			UncertaintyInMilliseconds: uncertaintyMs,
		},
		{
			Namespace:                 alexa.NamespaceThermostatController,
			Name:                      alexa.PropertyTargetSetpoint,
			Value:                     alexa.NewCelsius(setpoint),
			TimeOfSample:              sampled,
			UncertaintyInMilliseconds: uncertaintyMs,
		},
		{
			Namespace:                 alexa.NamespaceTemperatureSensor,
			Name:                      alexa.PropertyTemperature,
			Value:                     alexa.NewCelsius(status.InsideTemperature),
			TimeOfSample:              sampled,
			UncertaintyInMilliseconds: uncertaintyMs,
		},
		{
			Namespace:                 alexa.NamespacePowerController,
			Name:                      alexa.PropertyPowerState,
			Value:                     powerState,
			TimeOfSample:              sampled,
			UncertaintyInMilliseconds: uncertaintyMs,
		},
	}
}

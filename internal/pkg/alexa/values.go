package alexa

import (
	"math"
	"strings"

	"github.com/go-openapi/strfmt"
)

// Temperature is a value with a scale, as used by setpoints and sensors
type Temperature struct {
	Value float64 `json:"value"`
	Scale string  `json:"scale"`
}

// Celsius returns the absolute temperature converted to Celsius, unrounded
func (t Temperature) Celsius() float64 {
	switch strings.ToUpper(t.Scale) {
	case ScaleFahrenheit:
		return (t.Value - 32) * 5 / 9
	case ScaleKelvin:
		return t.Value - 273.15
	}

	return t.Value
}

// CelsiusDelta returns the temperature as a Celsius difference, unrounded
func (t Temperature) CelsiusDelta() float64 {
	switch strings.ToUpper(t.Scale) {
	case ScaleFahrenheit:
		return t.Value * 5 / 9
	}

	return t.Value
}

// Converted reports whether the value is on a scale other than Celsius
func (t Temperature) Converted() bool {
	switch strings.ToUpper(t.Scale) {
	case ScaleFahrenheit, ScaleKelvin:
		return true
	}

	return false
}

// RoundHalf rounds a Celsius value to the nearest half degree, the
// appliance's step size
func RoundHalf(v float64) float64 {
	return math.Round(v*2) / 2
}

func NewCelsius(v float64) *Temperature {
	return &Temperature{Value: v, Scale: ScaleCelsius}
}

/*
 *  Directive payloads
 */

type SetTargetTemperaturePayload struct {
	TargetSetpoint *Temperature `json:"targetSetpoint"`
}

type AdjustTargetTemperaturePayload struct {
	TargetSetpointDelta *Temperature `json:"targetSetpointDelta"`
}

type ThermostatModeValue struct {
	Value      ThermostatMode `json:"value"`
	CustomName string         `json:"customName,omitempty"`
}

type SetThermostatModePayload struct {
	ThermostatMode *ThermostatModeValue `json:"thermostatMode"`
}

type AcceptGrantPayload struct {
	Grant struct {
		Type string `json:"type"`
		Code string `json:"code"`
	} `json:"grant"`
	Grantee struct {
		Type  string `json:"type"`
		Token string `json:"token"`
	} `json:"grantee"`
}

/*
 *  Event payloads
 */

type Cause struct {
	Type string `json:"type"`
}

type ActivationStartedPayload struct {
	Cause     *Cause          `json:"cause"`
	Timestamp strfmt.DateTime `json:"timestamp"`
}

type DiscoverResponsePayload struct {
	Endpoints []*DiscoveryEndpoint `json:"endpoints"`
}

type ValidRange struct {
	MinimumValue *Temperature `json:"minimumValue"`
	MaximumValue *Temperature `json:"maximumValue"`
}

type ErrorPayload struct {
	Type       string      `json:"type"`
	Message    string      `json:"message"`
	ValidRange *ValidRange `json:"validRange,omitempty"`
}

// EmptyPayload marshals as {}
type EmptyPayload struct{}

package handlers

import (
	"encoding/json"

	openapierrors "github.com/go-openapi/errors"
	"github.com/go-openapi/validate"
	"github.com/pkg/errors"

	"github.com/jake-scott/alexa-eolia/internal/pkg/alexa"
)

/*
 *  Incoming directives, decoded into one type per supported (namespace, name)
 */

type directive interface {
	isDirective()
}

type discoverDirective struct{}

type acceptGrantDirective struct {
	grantType string
}

type reportStateDirective struct {
	endpointID string
}

// exact is the converted value before rounding, used for range checks
type setTargetTemperatureDirective struct {
	endpointID string
	target     float64
	exact      float64
}

type adjustTargetTemperatureDirective struct {
	endpointID string
	delta      float64
	exactDelta float64
}

type setThermostatModeDirective struct {
	endpointID string
	mode       alexa.ThermostatMode
	customName string
}

type powerDirective struct {
	endpointID string
	on         bool
}

type activateSceneDirective struct {
	endpointID string
}

func (discoverDirective) isDirective()                {}
func (acceptGrantDirective) isDirective()             {}
func (reportStateDirective) isDirective()             {}
func (setTargetTemperatureDirective) isDirective()    {}
func (adjustTargetTemperatureDirective) isDirective() {}
func (setThermostatModeDirective) isDirective()       {}
func (powerDirective) isDirective()                   {}
func (activateSceneDirective) isDirective()           {}

type routingKey struct {
	namespace string
	name      string
}

type directiveParser func(req *alexa.Request) (directive, error)

// Exact (namespace, name) matches only
// Metric label for directives no parser is registered for
const unsupportedLabel = "unsupported"

// metricLabels bounds the label values recorded for a directive to the
// registered routing keys
func metricLabels(namespace, name string) (string, string) {
	if _, ok := directiveParsers[routingKey{namespace, name}]; !ok {
		return unsupportedLabel, unsupportedLabel
	}

	return namespace, name
}

var directiveParsers = map[routingKey]directiveParser{
	{alexa.NamespaceDiscovery, alexa.NameDiscover}:                          parseDiscover,
	{alexa.NamespaceAuthorization, alexa.NameAcceptGrant}:                   parseAcceptGrant,
	{alexa.NamespaceAlexa, alexa.NameReportState}:                           parseReportState,
	{alexa.NamespaceThermostatController, alexa.NameSetTargetTemperature}:    parseSetTargetTemperature,
	{alexa.NamespaceThermostatController, alexa.NameAdjustTargetTemperature}: parseAdjustTargetTemperature,
	{alexa.NamespaceThermostatController, alexa.NameSetThermostatMode}:       parseSetThermostatMode,
	{alexa.NamespacePowerController, alexa.NameTurnOn}:                      parsePower(true),
	{alexa.NamespacePowerController, alexa.NameTurnOff}:                     parsePower(false),
	{alexa.NamespaceSceneController, alexa.NameActivate}:                    parseActivateScene,
}

func parseDirective(req *alexa.Request) (directive, error) {
	namespace, name := req.Key()

	parse, ok := directiveParsers[routingKey{namespace, name}]
	if !ok {
		return nil, &UnsupportedDirectiveError{Namespace: namespace, Name: name}
	}

	return parse(req)
}

func decodePayload(req *alexa.Request, dst interface{}) error {
	if len(req.Directive.Payload) == 0 {
		return openapierrors.Required("directive.payload", "body", nil)
	}

	if err := json.Unmarshal(req.Directive.Payload, dst); err != nil {
		return errors.Wrap(err, "decoding directive payload")
	}

	return nil
}

func parseDiscover(req *alexa.Request) (directive, error) {
	return discoverDirective{}, nil
}

func parseAcceptGrant(req *alexa.Request) (directive, error) {
	var p alexa.AcceptGrantPayload
	if len(req.Directive.Payload) > 0 {
		if err := decodePayload(req, &p); err != nil {
			return nil, err
		}
	}

	return acceptGrantDirective{grantType: p.Grant.Type}, nil
}

func parseReportState(req *alexa.Request) (directive, error) {
	id, err := req.RequireEndpointID()
	if err != nil {
		return nil, err
	}

	return reportStateDirective{endpointID: id}, nil
}

func parseSetTargetTemperature(req *alexa.Request) (directive, error) {
	id, err := req.RequireEndpointID()
	if err != nil {
		return nil, err
	}

	var p alexa.SetTargetTemperaturePayload
	if err := decodePayload(req, &p); err != nil {
		return nil, err
	}
	if err := validate.Required("directive.payload.targetSetpoint", "body", p.TargetSetpoint); err != nil {
		return nil, err
	}

	exact := p.TargetSetpoint.Celsius()
	return setTargetTemperatureDirective{endpointID: id, target: toStep(*p.TargetSetpoint, exact), exact: exact}, nil
}

func parseAdjustTargetTemperature(req *alexa.Request) (directive, error) {
	id, err := req.RequireEndpointID()
	if err != nil {
		return nil, err
	}

	var p alexa.AdjustTargetTemperaturePayload
	if err := decodePayload(req, &p); err != nil {
		return nil, err
	}
	if err := validate.Required("directive.payload.targetSetpointDelta", "body", p.TargetSetpointDelta); err != nil {
		return nil, err
	}

	exact := p.TargetSetpointDelta.CelsiusDelta()
	return adjustTargetTemperatureDirective{endpointID: id, delta: toStep(*p.TargetSetpointDelta, exact), exactDelta: exact}, nil
}

// Converted values land on the appliance's half degree steps, Celsius
// values pass through as given
func toStep(t alexa.Temperature, celsius float64) float64 {
	if t.Converted() {
		return alexa.RoundHalf(celsius)
	}

	return celsius
}

func parseSetThermostatMode(req *alexa.Request) (directive, error) {
	id, err := req.RequireEndpointID()
	if err != nil {
		return nil, err
	}

	var p alexa.SetThermostatModePayload
	if err := decodePayload(req, &p); err != nil {
		return nil, err
	}
	if err := validate.Required("directive.payload.thermostatMode", "body", p.ThermostatMode); err != nil {
		return nil, err
	}

	return setThermostatModeDirective{
		endpointID: id,
		mode:       p.ThermostatMode.Value,
		customName: p.ThermostatMode.CustomName,
	}, nil
}

func parsePower(on bool) directiveParser {
	return func(req *alexa.Request) (directive, error) {
		id, err := req.RequireEndpointID()
		if err != nil {
			return nil, err
		}

		return powerDirective{endpointID: id, on: on}, nil
	}
}

func parseActivateScene(req *alexa.Request) (directive, error) {
	id, err := req.RequireEndpointID()
	if err != nil {
		return nil, err
	}

	return activateSceneDirective{endpointID: id}, nil
}

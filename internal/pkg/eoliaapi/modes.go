package eoliaapi

import "github.com/jake-scott/alexa-eolia/internal/pkg/alexa"

// ToAlexaThermostatMode maps an appliance mode onto the assistant's coarser
// vocabulary.  CoolDehumidifying is presented as plain cooling; modes the
// assistant has no word for become CUSTOM without a custom name.
func ToAlexaThermostatMode(mode OperationMode) alexa.ThermostatMode {
	switch mode {
	case OperationModeAuto:
		return alexa.ThermostatModeAuto
	case OperationModeCooling, OperationModeCoolDehumidifying:
		return alexa.ThermostatModeCool
	case OperationModeHeating:
		return alexa.ThermostatModeHeat
	case OperationModeStop:
		return alexa.ThermostatModeOff
	}

	return alexa.ThermostatModeCustom
}

// FromAlexaThermostatMode resolves an assistant mode to an appliance mode.
// CUSTOM resolves through its custom name only.  ok is false when nothing
// matches, which callers treat as "no mode change requested".
func FromAlexaThermostatMode(mode alexa.ThermostatMode, customName string) (OperationMode, bool) {
	switch mode {
	case alexa.ThermostatModeAuto:
		return OperationModeAuto, true
	case alexa.ThermostatModeCool:
		return OperationModeCooling, true
	case alexa.ThermostatModeHeat:
		return OperationModeHeating, true
	case alexa.ThermostatModeFan:
		return OperationModeBlast, true
	case alexa.ThermostatModeDehumidify:
		return OperationModeCoolDehumidifying, true
	case alexa.ThermostatModeOff:
		return OperationModeStop, true
	case alexa.ThermostatModeCustom:
		switch customName {
		case "DEHUMIDIFY":
			return OperationModeCoolDehumidifying, true
		case "FAN":
			return OperationModeBlast, true
		}
	}

	return "", false
}

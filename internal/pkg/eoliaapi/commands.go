package eoliaapi

import "github.com/go-openapi/swag"

// NewTemperatureCommand sets the setpoint, powering the appliance on
func NewTemperatureCommand(temperature float64) Patch {
	return Patch{
		Temperature:     swag.Float64(temperature),
		OperationStatus: swag.Bool(true),
	}
}

func NewPowerCommand(on bool) Patch {
	return Patch{
		OperationStatus: swag.Bool(on),
	}
}

func NewModeCommand(mode OperationMode) Patch {
	return Patch{
		OperationMode: &mode,
	}
}

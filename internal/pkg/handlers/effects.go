package handlers

import (
	"github.com/jake-scott/alexa-eolia/internal/pkg/eoliaapi"
)

// applyExpectedEffect predicts the appliance state after a command has been
// accepted.  The appliance converges asynchronously, so this is what gets
// reported back immediately.  The input status is not modified.
//
//  - power off: mode Stop, setpoint 0
//  - power on alone: resume the last known mode (Auto when unknown)
//  - setpoint while off: power on and resume the last known mode
func applyExpectedEffect(status eoliaapi.DeviceStatus, patch eoliaapi.Patch) eoliaapi.DeviceStatus {
	next := status

	if patch.OperationStatus != nil {
		on := *patch.OperationStatus
		switch {
		case !on:
			next.OperationMode = eoliaapi.OperationModeStop
			next.Temperature = 0
		case patch.Temperature == nil || !status.OperationStatus:
			next.OperationMode = status.RestoreMode()
		}
		next.OperationStatus = on
	}

	if patch.OperationMode != nil {
		next.OperationMode = *patch.OperationMode
	}

	if patch.Temperature != nil {
		next.Temperature = *patch.Temperature
	}

	return next
}

package eoliaapi

import (
	"fmt"
	"strings"

	"github.com/go-openapi/swag"
)

/*
 *   Appliance vocabulary of the Eolia cloud API
 */

// Supported setpoint range of the appliance, in Celsius
const (
	MinTemperature float64 = 16
	MaxTemperature float64 = 30
)

// OperationMode is the appliance's own operation mode vocabulary
type OperationMode string

const (
	OperationModeStop                        OperationMode = "Stop"
	OperationModeAuto                        OperationMode = "Auto"
	OperationModeCooling                     OperationMode = "Cooling"
	OperationModeHeating                     OperationMode = "Heating"
	OperationModeCoolDehumidifying           OperationMode = "CoolDehumidifying"
	OperationModeComfortableDehumidification OperationMode = "ComfortableDehumidification"
	OperationModeClothesDryer                OperationMode = "ClothesDryer"
	OperationModeBlast                       OperationMode = "Blast"
	OperationModeNanoe                       OperationMode = "Nanoe"
	OperationModeCleaning                    OperationMode = "Cleaning"
	OperationModeNanoexCleaning              OperationMode = "NanoexCleaning"
)

// SupportsTemperature reports whether the appliance honours a setpoint in
// this mode
func (m OperationMode) SupportsTemperature() bool {
	switch m {
	case OperationModeAuto, OperationModeCooling, OperationModeHeating, OperationModeCoolDehumidifying:
		return true
	}

	return false
}

type Device struct {
	ID          int
	DisplayName string
	ProductCode string
	ProductName string
}

// Description is the product summary shown to the assistant
func (d Device) Description() string {
	return strings.TrimSpace(d.ProductCode + " " + d.ProductName)
}

// DeviceStatus is a snapshot of one appliance, fetched fresh per directive
type DeviceStatus struct {
	ID                int
	OperationStatus   bool
	OperationMode     OperationMode
	Temperature       float64
	InsideTemperature float64

	// Mode the appliance was in when last powered on, empty when unknown
	LastKnownMode OperationMode
}

// RestoreMode is the mode the appliance is expected to resume on power-on
func (s DeviceStatus) RestoreMode() OperationMode {
	if s.LastKnownMode != "" {
		return s.LastKnownMode
	}

	return OperationModeAuto
}

// Patch is a sparse appliance state change; nil fields are left unchanged
type Patch struct {
	OperationStatus *bool          `json:"operation_status,omitempty"`
	OperationMode   *OperationMode `json:"operation_mode,omitempty"`
	Temperature     *float64       `json:"temperature,omitempty"`
}

func (p Patch) String() string {
	var parts []string
	if p.OperationStatus != nil {
		parts = append(parts, fmt.Sprintf("operation_status=%t", swag.BoolValue(p.OperationStatus)))
	}
	if p.OperationMode != nil {
		parts = append(parts, fmt.Sprintf("operation_mode=%s", *p.OperationMode))
	}
	if p.Temperature != nil {
		parts = append(parts, fmt.Sprintf("temperature=%g", swag.Float64Value(p.Temperature)))
	}

	return "{" + strings.Join(parts, ", ") + "}"
}

/*
 *   Wire representations
 */

type deviceInfo struct {
	ID         int    `json:"id"`
	DeviceName string `json:"deviceName"`
	Info       struct {
		ProductCode string `json:"product_code"`
		ProductName string `json:"product_name"`
		Nickname    string `json:"nickname"`
	} `json:"info"`
}

func (d *deviceInfo) Unmarshal() Device {
	name := d.DeviceName
	if name == "" {
		name = d.Info.Nickname
	}

	return Device{
		ID:          d.ID,
		DisplayName: name,
		ProductCode: d.Info.ProductCode,
		ProductName: d.Info.ProductName,
	}
}

type deviceStatus struct {
	ID     int `json:"id"`
	Status struct {
		OperationStatus bool          `json:"operation_status"`
		OperationMode   OperationMode `json:"operation_mode"`
		Temperature     float64       `json:"temperature"`
		InsideTemp      float64       `json:"inside_temp"`
	} `json:"status"`
	LastMode *OperationMode `json:"lastMode"`
}

func (d *deviceStatus) Unmarshal() *DeviceStatus {
	v := &DeviceStatus{
		ID:                d.ID,
		OperationStatus:   d.Status.OperationStatus,
		OperationMode:     d.Status.OperationMode,
		Temperature:       d.Status.Temperature,
		InsideTemperature: d.Status.InsideTemp,
	}
	if d.LastMode != nil {
		v.LastKnownMode = *d.LastMode
	}

	return v
}

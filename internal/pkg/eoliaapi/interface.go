package eoliaapi

import (
	"context"
)

// DeviceAPI is the vendor cloud API as seen by the directive handlers
type DeviceAPI interface {
	Devices(ctx context.Context) ([]Device, error)
	GetDeviceStatus(ctx context.Context, deviceID int) (*DeviceStatus, error)
	SendCommand(ctx context.Context, deviceID int, patch Patch) error
}

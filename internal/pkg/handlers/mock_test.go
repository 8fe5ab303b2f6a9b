package handlers

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jake-scott/alexa-eolia/internal/pkg/alexa"
	"github.com/jake-scott/alexa-eolia/internal/pkg/eoliaapi"
	"github.com/jake-scott/alexa-eolia/internal/pkg/metrics"
)

// mockDeviceAPI is a mock implementation of eoliaapi.DeviceAPI
type mockDeviceAPI struct {
	mock.Mock
}

func (m *mockDeviceAPI) Devices(ctx context.Context) ([]eoliaapi.Device, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]eoliaapi.Device), args.Error(1)
}

func (m *mockDeviceAPI) GetDeviceStatus(ctx context.Context, deviceID int) (*eoliaapi.DeviceStatus, error) {
	args := m.Called(ctx, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*eoliaapi.DeviceStatus), args.Error(1)
}

func (m *mockDeviceAPI) SendCommand(ctx context.Context, deviceID int, patch eoliaapi.Patch) error {
	args := m.Called(ctx, deviceID, patch)
	return args.Error(0)
}

var (
	testZone = time.FixedZone("JST", 9*60*60)
	testNow  = time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
)

func newTestDispatcher(api eoliaapi.DeviceAPI) *Dispatcher {
	return NewDispatcher(api, metrics.NewMetrics(prometheus.NewRegistry()), Options{
		Location: testZone,
		Now:      func() time.Time { return testNow },
	})
}

func newRequest(t *testing.T, namespace, name, endpointID string, payload interface{}) *alexa.Request {
	t.Helper()

	req := &alexa.Request{
		Directive: &alexa.Directive{
			Header: &alexa.Header{
				Namespace:        namespace,
				Name:             name,
				PayloadVersion:   alexa.PayloadVersion,
				MessageID:        "msg-1",
				CorrelationToken: "corr-token",
			},
		},
	}
	if endpointID != "" {
		req.Directive.Endpoint = &alexa.Endpoint{EndpointID: endpointID}
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		req.Directive.Payload = raw
	}

	return req
}

func property(t *testing.T, resp *alexa.Response, namespace, name string) interface{} {
	t.Helper()

	require.NotNil(t, resp.Context)
	for _, p := range resp.Context.Properties {
		if p.Namespace == namespace && p.Name == name {
			return p.Value
		}
	}

	require.Failf(t, "property not reported", "%s.%s", namespace, name)
	return nil
}

func errorPayload(t *testing.T, resp *alexa.Response) *alexa.ErrorPayload {
	t.Helper()

	require.Equal(t, alexa.NamespaceAlexa, resp.Event.Header.Namespace)
	require.Equal(t, alexa.NameErrorResponse, resp.Event.Header.Name)

	payload, ok := resp.Event.Payload.(*alexa.ErrorPayload)
	require.True(t, ok, "payload is %T", resp.Event.Payload)
	return payload
}

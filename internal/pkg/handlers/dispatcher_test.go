package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jake-scott/alexa-eolia/internal/pkg/alexa"
	"github.com/jake-scott/alexa-eolia/internal/pkg/eoliaapi"
	"github.com/jake-scott/alexa-eolia/internal/pkg/metrics"
)

func TestUnsupportedDirective(t *testing.T) {
	tests := []struct {
		namespace string
		name      string
	}{
		{"Alexa.ColorController", "SetColor"},
		{alexa.NamespaceThermostatController, "ResumeSchedule"},
		{alexa.NamespacePowerController, "turnon"},
		{"alexa.powercontroller", alexa.NameTurnOn},
	}

	for _, tt := range tests {
		api := &mockDeviceAPI{}

		resp := newTestDispatcher(api).Dispatch(context.Background(),
			newRequest(t, tt.namespace, tt.name, "42", nil))

		api.AssertNotCalled(t, "GetDeviceStatus", mock.Anything, mock.Anything)
		api.AssertNotCalled(t, "SendCommand", mock.Anything, mock.Anything, mock.Anything)

		payload := errorPayload(t, resp)
		assert.Equal(t, alexa.ErrorTypeInternal, payload.Type)
		assert.Contains(t, payload.Message, tt.namespace)
		assert.Contains(t, payload.Message, tt.name)
		assert.Equal(t, "corr-token", resp.Event.Header.CorrelationToken)
	}
}

func TestMalformedDirectives(t *testing.T) {
	tests := []struct {
		name string
		req  *alexa.Request
	}{
		{"nil request", nil},
		{"no directive", &alexa.Request{}},
		{"no header", &alexa.Request{Directive: &alexa.Directive{}}},
		{"empty namespace", newRequest(t, "", alexa.NameTurnOn, "42", nil)},
		{"missing endpoint", newRequest(t, alexa.NamespacePowerController, alexa.NameTurnOn, "", nil)},
		{"missing payload", newRequest(t, alexa.NamespaceThermostatController, alexa.NameSetTargetTemperature, "42", nil)},
		{"missing setpoint", newRequest(t, alexa.NamespaceThermostatController, alexa.NameSetTargetTemperature, "42", map[string]interface{}{})},
		{"missing delta", newRequest(t, alexa.NamespaceThermostatController, alexa.NameAdjustTargetTemperature, "42", map[string]interface{}{})},
		{"missing mode", newRequest(t, alexa.NamespaceThermostatController, alexa.NameSetThermostatMode, "42", map[string]interface{}{})},
		{"bad payload type", newRequest(t, alexa.NamespaceThermostatController, alexa.NameSetTargetTemperature, "42",
			map[string]interface{}{"targetSetpoint": "warm"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &mockDeviceAPI{}

			resp := newTestDispatcher(api).Dispatch(context.Background(), tt.req)

			api.AssertNotCalled(t, "SendCommand", mock.Anything, mock.Anything, mock.Anything)
			require.NotNil(t, resp)
			payload := errorPayload(t, resp)
			assert.Equal(t, alexa.ErrorTypeInternal, payload.Type)
			assert.NotEmpty(t, payload.Message)
		})
	}
}

func TestAcceptGrant(t *testing.T) {
	api := &mockDeviceAPI{}

	req := newRequest(t, alexa.NamespaceAuthorization, alexa.NameAcceptGrant, "", map[string]interface{}{
		"grant":   map[string]string{"type": "OAuth2.AuthorizationCode", "code": "abc"},
		"grantee": map[string]string{"type": "BearerToken", "token": "xyz"},
	})
	resp := newTestDispatcher(api).Dispatch(context.Background(), req)

	assert.Equal(t, alexa.NamespaceAuthorization, resp.Event.Header.Namespace)
	assert.Equal(t, alexa.NameAcceptGrantResponse, resp.Event.Header.Name)
	assert.Equal(t, alexa.EmptyPayload{}, resp.Event.Payload)
	assert.Nil(t, resp.Context)
	assert.Empty(t, api.Calls)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"payload":{}`)
}

func TestDispatchRecoversPanics(t *testing.T) {
	api := &mockDeviceAPI{}
	api.On("GetDeviceStatus", mock.Anything, 42).Run(func(mock.Arguments) {
		panic("nil map")
	})

	var resp *alexa.Response
	require.NotPanics(t, func() {
		resp = newTestDispatcher(api).Dispatch(context.Background(),
			newRequest(t, alexa.NamespaceAlexa, alexa.NameReportState, "42", nil))
	})

	payload := errorPayload(t, resp)
	assert.Equal(t, alexa.ErrorTypeInternal, payload.Type)
	assert.Contains(t, payload.Message, "nil map")
}

func TestDispatchRecordsMetrics(t *testing.T) {
	api := &mockDeviceAPI{}
	api.On("GetDeviceStatus", mock.Anything, 42).Return(&eoliaapi.DeviceStatus{OperationMode: eoliaapi.OperationModeStop}, nil)

	reg := prometheus.NewRegistry()
	d := NewDispatcher(api, metrics.NewMetrics(reg), Options{})

	d.Dispatch(context.Background(), newRequest(t, alexa.NamespaceAlexa, alexa.NameReportState, "42", nil))
	d.Dispatch(context.Background(), newRequest(t, alexa.NamespaceAlexa, "Bogus", "42", nil))

	families, err := reg.Gather()
	require.NoError(t, err)

	outcomes := map[string]float64{}
	for _, f := range families {
		if f.GetName() != "alexa_directives_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "outcome" {
					outcomes[l.GetValue()] += m.GetCounter().GetValue()
				}
			}
		}
	}

	assert.Equal(t, map[string]float64{"success": 1, "error": 1}, outcomes)
}

func TestDispatchBoundsMetricLabels(t *testing.T) {
	api := &mockDeviceAPI{}

	reg := prometheus.NewRegistry()
	d := NewDispatcher(api, metrics.NewMetrics(reg), Options{})

	for i := 0; i < 50; i++ {
		d.Dispatch(context.Background(), newRequest(t, fmt.Sprintf("Junk.Namespace%d", i), fmt.Sprintf("Junk%d", i), "42", nil))
	}

	count, err := testutil.GatherAndCount(reg, "alexa_directives_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = testutil.GatherAndCount(reg, "alexa_directive_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	expected := `
# HELP alexa_directives_total Directives handled, by routing key and outcome.
# TYPE alexa_directives_total counter
alexa_directives_total{name="unsupported",namespace="unsupported",outcome="error"} 50
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "alexa_directives_total"))
}

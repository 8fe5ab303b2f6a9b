package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jake-scott/alexa-eolia/internal/pkg/metrics"
)

// fakeVendor serves a two device account and records command bodies
type fakeVendor struct {
	mu       sync.Mutex
	commands []map[string]interface{}
}

func (f *fakeVendor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/devices":
		io.WriteString(w, `[
			{"id": 42, "deviceName": "Living", "info": {"product_code": "CS-X401D2", "product_name": "Eolia X"}},
			{"id": 43, "deviceName": "Bedroom", "info": {"product_code": "CS-220DJ", "product_name": "Eolia J"}}
		]`)
	case r.Method == http.MethodGet && r.URL.Path == "/devices/42":
		io.WriteString(w, `{"id": 42, "status": {"operation_status": false, "operation_mode": "Stop", "temperature": 0, "inside_temp": 18}, "lastMode": "Heating"}`)
	case r.Method == http.MethodGet && r.URL.Path == "/devices/43":
		io.WriteString(w, `{"id": 43, "status": {"operation_status": true, "operation_mode": "Cooling", "temperature": 26, "inside_temp": 28.5}, "lastMode": "Cooling"}`)
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/command/send"):
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.commands = append(f.commands, body)
		f.mu.Unlock()
		io.WriteString(w, `{}`)
	default:
		http.NotFound(w, r)
	}
}

func configureVendor(t *testing.T) *fakeVendor {
	t.Helper()

	vendor := &fakeVendor{}
	server := httptest.NewServer(vendor)
	t.Cleanup(server.Close)

	viper.Set("device-api.url", server.URL)
	viper.Set("device-api.credential", "Bearer test-token")
	viper.Set("device-api.retries", 0)
	viper.Set("alexa.timezone", "Asia/Tokyo")

	return vendor
}

const turnOnDirective = `{"directive": {
	"header": {"namespace": "Alexa.PowerController", "name": "TurnOn", "payloadVersion": "3", "messageId": "m-1", "correlationToken": "tok"},
	"endpoint": {"endpointId": "42"},
	"payload": {}
}}`

func TestRouterHandlesDirective(t *testing.T) {
	vendor := configureVendor(t)

	reg := prometheus.NewRegistry()
	d, err := newDispatcher(metrics.NewMetrics(reg))
	require.NoError(t, err)
	router := newRouter(d, reg, false, 2, nil)

	r := httptest.NewRequest(http.MethodPost, "/alexa", strings.NewReader(turnOnDirective))
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("X-Correlation-ID", "test-correlation")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test-correlation", w.Header().Get("X-Correlation-ID"))
	assert.NotEmpty(t, w.Header().Get("X-Txn-ID"))
	assert.Contains(t, w.Body.String(), `"name":"Response"`)
	assert.Contains(t, w.Body.String(), `"value":"HEAT"`)
	assert.Contains(t, w.Body.String(), `+09:00`)

	require.Len(t, vendor.commands, 1)
	assert.Equal(t, map[string]interface{}{"operation_status": true}, vendor.commands[0])

	r = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `alexa_directives_total{name="TurnOn",namespace="Alexa.PowerController",outcome="success"} 1`)
	assert.Contains(t, w.Body.String(), `eolia_api_requests_total{operation="send_command",outcome="success"} 1`)
}

func TestRouterRejectsGet(t *testing.T) {
	configureVendor(t)

	reg := prometheus.NewRegistry()
	d, err := newDispatcher(metrics.NewMetrics(reg))
	require.NoError(t, err)
	router := newRouter(d, reg, false, 1, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/alexa", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestInvokeFromStdin(t *testing.T) {
	configureVendor(t)

	var out bytes.Buffer
	err := doInvoke(context.Background(), "-", strings.NewReader(turnOnDirective), &out)
	require.NoError(t, err)

	var resp struct {
		Event struct {
			Header struct {
				Name             string `json:"name"`
				CorrelationToken string `json:"correlationToken"`
			} `json:"header"`
		} `json:"event"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "Response", resp.Event.Header.Name)
	assert.Equal(t, "tok", resp.Event.Header.CorrelationToken)
}

func TestInvokeFromFile(t *testing.T) {
	configureVendor(t)

	dir, err := ioutil.TempDir("", "alexa-eolia")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	path := filepath.Join(dir, "discover.json")
	require.NoError(t, ioutil.WriteFile(path, []byte(`{"directive": {
		"header": {"namespace": "Alexa.Discovery", "name": "Discover", "payloadVersion": "3", "messageId": "m-2"},
		"payload": {"scope": {"type": "BearerToken", "token": "x"}}
	}}`), 0600))

	var out bytes.Buffer
	require.NoError(t, doInvoke(context.Background(), path, nil, &out))

	assert.Contains(t, out.String(), `"Discover.Response"`)
	assert.Contains(t, out.String(), `"43@NanoexCleaning"`)
}

func TestInvokeBadInput(t *testing.T) {
	configureVendor(t)

	err := doInvoke(context.Background(), "-", strings.NewReader("not json"), ioutil.Discard)
	assert.Error(t, err)

	err = doInvoke(context.Background(), "/does/not/exist.json", nil, ioutil.Discard)
	assert.Error(t, err)
}

func TestDevicesOutput(t *testing.T) {
	configureVendor(t)

	api, err := newDeviceAPI(nil)
	require.NoError(t, err)

	listing, err := listDevices(context.Background(), api, true)
	require.NoError(t, err)
	require.Len(t, listing, 2)
	assert.Equal(t, "Living", listing[0].Name)
	assert.Equal(t, "Stop", listing[0].Mode)
	assert.Equal(t, 26.0, listing[1].Setpoint)

	var text bytes.Buffer
	require.NoError(t, writeDevices(&text, listing, false, false))
	assert.Contains(t, text.String(), "ENDPOINT")
	assert.Contains(t, text.String(), "Bedroom")

	var asJSON bytes.Buffer
	require.NoError(t, writeDevices(&asJSON, listing, true, false))
	var fromJSON []deviceListing
	require.NoError(t, json.Unmarshal(asJSON.Bytes(), &fromJSON))
	assert.Equal(t, listing, fromJSON)

	var asYAML bytes.Buffer
	require.NoError(t, writeDevices(&asYAML, listing, false, true))
	var fromYAML []deviceListing
	require.NoError(t, yaml.Unmarshal(asYAML.Bytes(), &fromYAML))
	assert.Equal(t, listing, fromYAML)
	assert.Contains(t, asYAML.String(), "endpointId: \"42\"")
}

func TestCheckRequiredFlags(t *testing.T) {
	viper.Set("test.present", "yes")

	assert.NoError(t, checkRequiredFlags("test.present"))

	err := checkRequiredFlags("test.present", "test.missing-a", "test.missing-b")
	require.Error(t, err)
	assert.Equal(t, "required config items `test.missing-a`, `test.missing-b` not set", err.Error())
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, doVersion(&out, false))
	assert.Equal(t, "alexa-eolia version dev ("+runtime.Version()+")\n", out.String())

	out.Reset()
	require.NoError(t, doVersion(&out, true))
	var v versionResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &v))
	assert.Equal(t, versionResult{Name: "alexa-eolia", Version: "dev", GoVersion: runtime.Version()}, v)
}

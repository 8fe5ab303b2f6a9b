package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveDirective(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveDirective("Alexa.PowerController", "TurnOn", nil, time.Millisecond)
	m.ObserveDirective("Alexa.PowerController", "TurnOn", nil, time.Millisecond)
	m.ObserveDirective("Alexa.PowerController", "TurnOn", errors.New("boom"), time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.directives.WithLabelValues("Alexa.PowerController", "TurnOn", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.directives.WithLabelValues("Alexa.PowerController", "TurnOn", "error")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.directiveDuration))
}

func TestObserveAPIRequest(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveAPIRequest("send_command", nil)
	m.ObserveAPIRequest("get_status", errors.New("timeout"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.apiRequests.WithLabelValues("send_command", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.apiRequests.WithLabelValues("get_status", "error")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveDirective("Alexa", "ReportState", nil, time.Second)
		m.ObserveAPIRequest("devices", nil)
	})
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

// Metrics holds the collectors for directive handling and device API calls.
// A nil *Metrics records nothing.
type Metrics struct {
	directives        *prometheus.CounterVec
	directiveDuration *prometheus.HistogramVec
	apiRequests       *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		directives: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "alexa_directives_total",
				Help: "Directives handled, by routing key and outcome.",
			},
			[]string{"namespace", "name", "outcome"},
		),
		directiveDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "alexa_directive_duration_seconds",
				Help:    "Time taken to answer a directive.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"namespace", "name"},
		),
		apiRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eolia_api_requests_total",
				Help: "Calls made to the Eolia device API, by operation and outcome.",
			},
			[]string{"operation", "outcome"},
		),
	}
	reg.MustRegister(m.directives)
	reg.MustRegister(m.directiveDuration)
	reg.MustRegister(m.apiRequests)
	return m
}

func outcome(err error) string {
	if err != nil {
		return outcomeError
	}
	return outcomeSuccess
}

// ObserveDirective records one answered directive
func (m *Metrics) ObserveDirective(namespace, name string, err error, took time.Duration) {
	if m == nil {
		return
	}

	m.directives.WithLabelValues(namespace, name, outcome(err)).Inc()
	m.directiveDuration.WithLabelValues(namespace, name).Observe(took.Seconds())
}

// ObserveAPIRequest records one device API call
func (m *Metrics) ObserveAPIRequest(operation string, err error) {
	if m == nil {
		return
	}

	m.apiRequests.WithLabelValues(operation, outcome(err)).Inc()
}

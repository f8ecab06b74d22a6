package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "card_validator"

// Metrics holds all Prometheus metrics for the card validator service
type Metrics struct {
	// Card validation metrics
	ValidationsTotal  *prometheus.CounterVec
	RequestRejections *prometheus.CounterVec

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Event publishing metrics
	EventsPublished *prometheus.CounterVec
}

var (
	// DefaultMetrics is the default metrics instance
	DefaultMetrics *Metrics
	once           sync.Once
)

// GetDefaultMetrics returns the singleton metrics instance registered with
// the default Prometheus registry
func GetDefaultMetrics() *Metrics {
	once.Do(func() {
		DefaultMetrics = NewMetrics(prometheus.DefaultRegisterer)
	})
	return DefaultMetrics
}

// NewMetrics creates a new Metrics instance registered with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ValidationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validations_total",
				Help:      "Total number of card numbers checked, by Luhn result",
			},
			[]string{"result"},
		),
		RequestRejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "request_rejections_total",
				Help:      "Total number of validation requests rejected before the checksum",
			},
			[]string{"reason"},
		),

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"method", "path"},
		),

		EventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_published_total",
				Help:      "Total number of card validation events handed to Kafka, by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// RecordValidation records a completed Luhn check
func (m *Metrics) RecordValidation(valid bool) {
	result := "invalid"
	if valid {
		result = "valid"
	}
	m.ValidationsTotal.WithLabelValues(result).Inc()
}

// RecordRejection records a request rejected by request validation
func (m *Metrics) RecordRejection(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	m.RequestRejections.WithLabelValues(reason).Inc()
}

// RecordHTTPRequest records a served HTTP request
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordEvent records the outcome of publishing a card validation event
func (m *Metrics) RecordEvent(outcome string) {
	if outcome == "" {
		outcome = "unknown"
	}
	m.EventsPublished.WithLabelValues(outcome).Inc()
}

package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values shared by the provider clients and the advice service.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeEmpty   = "empty"
)

// Metrics holds the Prometheus collectors for upstream calls and advice requests.
type Metrics struct {
	ProviderRequests *prometheus.CounterVec   // labels: provider={epsg,rivm}, outcome={success,error}
	ProviderDuration *prometheus.HistogramVec // labels: provider={epsg,rivm}
	AdviceRequests   *prometheus.CounterVec   // labels: outcome={success,error,empty}
}

// NewMetrics creates and registers all collectors with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := NewMetricsForTesting()
	prometheus.MustRegister(
		m.ProviderRequests,
		m.ProviderDuration,
		m.AdviceRequests,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests can
// build as many instances as they like.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stookwijzer",
			Name:      "provider_requests_total",
			Help:      "Upstream provider requests by provider and outcome.",
		}, []string{"provider", "outcome"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "stookwijzer",
			Name:      "provider_request_duration_seconds",
			Help:      "Upstream provider request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider"}),
		AdviceRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stookwijzer",
			Name:      "advice_requests_total",
			Help:      "Advice lookups by outcome.",
		}, []string{"outcome"}),
	}
}

// ObserveProvider records one upstream call. A nil receiver is a no-op.
func (m *Metrics) ObserveProvider(provider string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.ProviderRequests.WithLabelValues(provider, outcome).Inc()
	m.ProviderDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
}

// ObserveAdvice records the outcome of one advice lookup. A nil receiver is a no-op.
func (m *Metrics) ObserveAdvice(outcome string) {
	if m == nil {
		return
	}
	m.AdviceRequests.WithLabelValues(outcome).Inc()
}

package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveProvider(t *testing.T) {
	m := NewMetricsForTesting()

	m.ObserveProvider("epsg", time.Now(), nil)
	m.ObserveProvider("epsg", time.Now(), errors.New("boom"))
	m.ObserveProvider("rivm", time.Now(), nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProviderRequests.WithLabelValues("epsg", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProviderRequests.WithLabelValues("epsg", OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProviderRequests.WithLabelValues("rivm", OutcomeSuccess)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.ProviderDuration))
}

func TestObserveAdvice(t *testing.T) {
	m := NewMetricsForTesting()

	m.ObserveAdvice(OutcomeEmpty)
	m.ObserveAdvice(OutcomeEmpty)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AdviceRequests.WithLabelValues(OutcomeEmpty)))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveProvider("epsg", time.Now(), nil)
		m.ObserveAdvice(OutcomeSuccess)
	})
}

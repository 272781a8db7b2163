package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)
	assert.Equal(t, prometheus.Gatherer(reg), c.Gatherer())

	c.IncFetch("UA", OutcomeSuccess)
	c.IncFetch("UA", OutcomeSuccess)
	c.IncFetch("QF", OutcomeError)
	c.AddSkippedRecords(3)
	c.AddSkippedRecords(0)
	c.ObserveProviderFetch("award_direct", 40*time.Millisecond)
	c.ObserveEvaluation(time.Millisecond, true)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.FetchesTotal.WithLabelValues("UA", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.FetchesTotal.WithLabelValues("QF", OutcomeError)))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.RecordsSkipped))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.EvaluationsTotal.WithLabelValues("true")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.FetchDuration))
}

func TestCollectorReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewCollector(reg)
	require.NoError(t, err)
	second, err := NewCollector(reg)
	require.NoError(t, err)

	second.IncFetch("UA", OutcomeCacheHit)
	assert.Equal(t, 1.0, testutil.ToFloat64(first.FetchesTotal.WithLabelValues("UA", OutcomeCacheHit)))
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.IncFetch("UA", OutcomeSuccess)
		c.ObserveProviderFetch("p", time.Second)
		c.AddSkippedRecords(1)
		c.ObserveEvaluation(time.Second, false)
		assert.Nil(t, c.Gatherer())
	})
}

package observability

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess  = "success"
	OutcomeError    = "error"
	OutcomeCacheHit = "cache_hit"
)

// Collector exposes enrichment fetch and evaluation metrics. All methods are
// safe on a nil receiver.
type Collector struct {
	gatherer prometheus.Gatherer

	FetchesTotal       *prometheus.CounterVec
	FetchDuration      *prometheus.HistogramVec
	RecordsSkipped     prometheus.Counter
	EvaluationDuration prometheus.Histogram
	EvaluationsTotal   *prometheus.CounterVec
}

// NewCollector registers the collectors against reg, reusing any that are
// already registered under the same name.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	fetches, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "award_enrichment_fetches_total",
		Help: "Enrichment batch lookups by carrier and outcome.",
	}, []string{"carrier", "outcome"}))
	if err != nil {
		return nil, err
	}

	fetchDuration, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "award_provider_fetch_duration_seconds",
		Help:    "Duration of a single provider fetch including retries.",
		Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"provider"}))
	if err != nil {
		return nil, err
	}

	skipped, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "award_enrichment_records_skipped_total",
		Help: "Enrichment records that could not be decoded and were skipped.",
	}))
	if err != nil {
		return nil, err
	}

	evalDuration, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "award_evaluation_duration_seconds",
		Help:    "Duration of the valuation step for one itinerary, excluding fetches.",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	}))
	if err != nil {
		return nil, err
	}

	evaluations, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "award_evaluations_total",
		Help: "Itinerary evaluations by whether an award beat the cash fare.",
	}, []string{"beatable"}))
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:           gatherer,
		FetchesTotal:       fetches,
		FetchDuration:      fetchDuration,
		RecordsSkipped:     skipped,
		EvaluationDuration: evalDuration,
		EvaluationsTotal:   evaluations,
	}, nil
}

func (c *Collector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

func (c *Collector) IncFetch(carrier, outcome string) {
	if c == nil || c.FetchesTotal == nil {
		return
	}
	c.FetchesTotal.WithLabelValues(carrier, outcome).Inc()
}

func (c *Collector) ObserveProviderFetch(provider string, d time.Duration) {
	if c == nil || c.FetchDuration == nil {
		return
	}
	c.FetchDuration.WithLabelValues(provider).Observe(d.Seconds())
}

func (c *Collector) AddSkippedRecords(n int) {
	if c == nil || c.RecordsSkipped == nil || n <= 0 {
		return
	}
	c.RecordsSkipped.Add(float64(n))
}

func (c *Collector) ObserveEvaluation(d time.Duration, beatable bool) {
	if c == nil {
		return
	}
	if c.EvaluationDuration != nil {
		c.EvaluationDuration.Observe(d.Seconds())
	}
	if c.EvaluationsTotal != nil {
		c.EvaluationsTotal.WithLabelValues(fmt.Sprintf("%t", beatable)).Inc()
	}
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			var zero T
			return zero, fmt.Errorf("collector already registered with incompatible type: %w", err)
		}
		var zero T
		return zero, err
	}
	return c, nil
}

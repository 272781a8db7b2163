package aggregator

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/dharmasatrya/awardsearch/internal/cache"
	"github.com/dharmasatrya/awardsearch/internal/observability"
	"github.com/dharmasatrya/awardsearch/internal/providers"
	"github.com/dharmasatrya/awardsearch/internal/ratelimit"
)

var ErrNoProvider = errors.New("no award provider serves this carrier")

type Config struct {
	Timeout     time.Duration
	MaxRetries  int
	RetryDelays []time.Duration
	RateLimiter *ratelimit.KeyedLimiter
	Cache       cache.Cache
	Metrics     *observability.Collector
}

// Aggregator fetches raw enrichment batches per carrier from every provider
// that serves it. Concurrent fetches for the same carrier share one call.
type Aggregator struct {
	providers []providers.Provider
	config    Config
	inflight  singleflight.Group
}

type Result struct {
	Batches           map[string][]json.RawMessage
	CarriersQueried   int
	CarriersSucceeded int
	FailedCarriers    []string
	CacheHits         int
}

func NewAggregator(providerList []providers.Provider, config Config) *Aggregator {
	if config.Cache == nil {
		config.Cache = cache.NewNoOpCache()
	}
	return &Aggregator{
		providers: providerList,
		config:    config,
	}
}

// FetchAll looks up every carrier independently. A failing carrier is
// reported in FailedCarriers and never affects the others.
func (a *Aggregator) FetchAll(ctx context.Context, carriers []string) *Result {
	carriers = uniqueCarriers(carriers)
	result := &Result{
		Batches:         make(map[string][]json.RawMessage, len(carriers)),
		CarriersQueried: len(carriers),
	}

	type carrierResult struct {
		carrier  string
		records  []json.RawMessage
		cacheHit bool
		err      error
	}

	resultCh := make(chan carrierResult, len(carriers))
	var wg sync.WaitGroup

	for _, c := range carriers {
		wg.Add(1)
		go func(carrier string) {
			defer wg.Done()
			records, hit, err := a.FetchCarrier(ctx, carrier)
			resultCh <- carrierResult{carrier: carrier, records: records, cacheHit: hit, err: err}
		}(c)
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	for cr := range resultCh {
		if cr.err != nil {
			log.Printf("Award data unavailable for carrier %s: %v", cr.carrier, cr.err)
			result.FailedCarriers = append(result.FailedCarriers, cr.carrier)
			continue
		}
		result.CarriersSucceeded++
		if cr.cacheHit {
			result.CacheHits++
		}
		result.Batches[cr.carrier] = cr.records
	}

	sort.Strings(result.FailedCarriers)
	return result
}

// FetchCarrier returns the merged raw batch for carrier, from cache when
// possible. The bool reports a cache hit.
func (a *Aggregator) FetchCarrier(ctx context.Context, carrier string) ([]json.RawMessage, bool, error) {
	carrier = strings.ToUpper(strings.TrimSpace(carrier))

	if records, found := a.config.Cache.Get(ctx, carrier); found {
		a.config.Metrics.IncFetch(carrier, observability.OutcomeCacheHit)
		return records, true, nil
	}

	// The shared fetch outlives any single caller; each caller only waits
	// as long as its own context allows.
	shared := context.WithoutCancel(ctx)
	ch := a.inflight.DoChan(carrier, func() (interface{}, error) {
		return a.fetchFromProviders(shared, carrier)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			a.config.Metrics.IncFetch(carrier, observability.OutcomeError)
			return nil, false, res.Err
		}
		a.config.Metrics.IncFetch(carrier, observability.OutcomeSuccess)
		return res.Val.([]json.RawMessage), false, nil
	case <-ctx.Done():
		a.config.Metrics.IncFetch(carrier, observability.OutcomeError)
		return nil, false, ctx.Err()
	}
}

func (a *Aggregator) fetchFromProviders(ctx context.Context, carrier string) ([]json.RawMessage, error) {
	fetchCtx := ctx
	if a.config.Timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, a.config.Timeout)
		defer cancel()
	}

	var serving []providers.Provider
	for _, p := range a.providers {
		if p.Serves(carrier) {
			serving = append(serving, p)
		}
	}
	if len(serving) == 0 {
		return nil, errors.Wrap(ErrNoProvider, carrier)
	}

	type providerResult struct {
		records []json.RawMessage
		err     error
	}
	results := make([]providerResult, len(serving))

	var wg sync.WaitGroup
	for i, p := range serving {
		wg.Add(1)
		go func(i int, provider providers.Provider) {
			defer wg.Done()

			if a.config.RateLimiter != nil {
				if err := a.config.RateLimiter.Wait(fetchCtx, provider.Name()); err != nil {
					results[i] = providerResult{err: providers.NewProviderError(provider.Name(), carrier, err)}
					return
				}
			}

			start := time.Now()
			records, err := a.fetchWithRetry(fetchCtx, provider, carrier)
			a.config.Metrics.ObserveProviderFetch(provider.Name(), time.Since(start))
			results[i] = providerResult{records: records, err: err}
		}(i, p)
	}
	wg.Wait()

	// Provider order is kept so the merged batch is stable across calls.
	var merged []json.RawMessage
	var lastErr error
	succeeded := 0
	for i, r := range results {
		if r.err != nil {
			log.Printf("Provider %s failed for carrier %s: %v", serving[i].Name(), carrier, r.err)
			lastErr = r.err
			continue
		}
		succeeded++
		merged = append(merged, r.records...)
	}

	if succeeded == 0 {
		return nil, lastErr
	}

	if merged == nil {
		merged = []json.RawMessage{}
	}
	// Only cache when every provider answered, so a transient failure is
	// retried on the next request.
	if succeeded == len(serving) {
		if err := a.config.Cache.Set(ctx, carrier, merged); err != nil {
			log.Printf("Failed to cache award data for carrier %s: %v", carrier, err)
		}
	}

	return merged, nil
}

func (a *Aggregator) fetchWithRetry(ctx context.Context, provider providers.Provider, carrier string) ([]json.RawMessage, error) {
	var lastErr error

	for attempt := 0; attempt <= a.config.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if attempt > 0 && len(a.config.RetryDelays) > 0 {
			delayIdx := attempt - 1
			if delayIdx >= len(a.config.RetryDelays) {
				delayIdx = len(a.config.RetryDelays) - 1
			}

			select {
			case <-time.After(a.config.RetryDelays[delayIdx]):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		records, err := provider.Fetch(ctx, carrier)
		if err == nil {
			return records, nil
		}

		lastErr = err
		log.Printf("Provider %s attempt %d for carrier %s failed: %v", provider.Name(), attempt+1, carrier, err)
	}

	return nil, lastErr
}

func uniqueCarriers(carriers []string) []string {
	seen := make(map[string]bool, len(carriers))
	result := make([]string, 0, len(carriers))
	for _, c := range carriers {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		result = append(result, c)
	}
	return result
}

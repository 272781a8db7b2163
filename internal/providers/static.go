package providers

import (
	"context"
	"encoding/json"
	"math/rand"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/dharmasatrya/awardsearch/internal/providers/data"
)

var ErrTemporaryFailure = errors.New("temporary service unavailable")

type staticPayload struct {
	Carriers map[string][]json.RawMessage `json:"carriers"`
}

type StaticConfig struct {
	MinDelay    time.Duration
	MaxDelay    time.Duration
	FailureRate float64
}

// StaticProvider serves canned records keyed by carrier. It simulates
// network latency and, optionally, intermittent failures.
type StaticProvider struct {
	name    string
	records map[string][]json.RawMessage
	cfg     StaticConfig
}

func NewStaticProvider(name string, payload []byte, cfg StaticConfig) (*StaticProvider, error) {
	var p staticPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, errors.Wrapf(err, "provider %s: invalid payload", name)
	}

	records := make(map[string][]json.RawMessage, len(p.Carriers))
	for carrier, recs := range p.Carriers {
		records[strings.ToUpper(carrier)] = recs
	}

	return &StaticProvider{name: name, records: records, cfg: cfg}, nil
}

func NewAwardDirectProvider(cfg StaticConfig) (*StaticProvider, error) {
	return NewStaticProvider("award_direct", data.AwardDirectData, cfg)
}

func NewMileageLegacyProvider(cfg StaticConfig) (*StaticProvider, error) {
	return NewStaticProvider("mileage_legacy", data.MileageLegacyData, cfg)
}

func (p *StaticProvider) Name() string {
	return p.name
}

func (p *StaticProvider) Serves(carrier string) bool {
	_, ok := p.records[strings.ToUpper(carrier)]
	return ok
}

func (p *StaticProvider) Fetch(ctx context.Context, carrier string) ([]json.RawMessage, error) {
	if delay := p.delay(); delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if p.cfg.FailureRate > 0 && rand.Float64() < p.cfg.FailureRate {
		return nil, NewProviderError(p.name, carrier, ErrTemporaryFailure)
	}

	return p.records[strings.ToUpper(carrier)], nil
}

func (p *StaticProvider) delay() time.Duration {
	if p.cfg.MaxDelay <= p.cfg.MinDelay {
		return p.cfg.MinDelay
	}
	return p.cfg.MinDelay + time.Duration(rand.Int63n(int64(p.cfg.MaxDelay-p.cfg.MinDelay)))
}

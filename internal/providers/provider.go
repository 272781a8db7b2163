package providers

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider fetches raw enrichment records for one carrier. Records are
// returned undecoded so callers can cache the provider response as-is.
type Provider interface {
	Name() string
	Serves(carrier string) bool
	Fetch(ctx context.Context, carrier string) ([]json.RawMessage, error)
}

type ProviderError struct {
	Provider string
	Carrier  string
	Err      error
}

func (e *ProviderError) Error() string {
	return e.Provider + " (" + e.Carrier + "): " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(provider, carrier string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Carrier:  carrier,
		Err:      err,
	}
}

// carrierSet is the set of carriers a provider serves. Empty means all.
type carrierSet map[string]bool

func newCarrierSet(carriers []string) carrierSet {
	set := make(carrierSet, len(carriers))
	for _, c := range carriers {
		if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
			set[c] = true
		}
	}
	return set
}

func (s carrierSet) serves(carrier string) bool {
	return len(s) == 0 || s[strings.ToUpper(carrier)]
}

package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var ErrUnexpectedStatus = errors.New("unexpected status from award provider")

type HTTPConfig struct {
	Name     string
	BaseURL  string
	APIKey   string
	Carriers []string
	Timeout  time.Duration
}

// HTTPProvider calls GET {BaseURL}/awards?carrier=XX and expects
// {"records": [...]}.
type HTTPProvider struct {
	name     string
	baseURL  string
	apiKey   string
	carriers carrierSet
	client   *http.Client
}

type httpResponse struct {
	Records []json.RawMessage `json:"records"`
}

func NewHTTPProvider(cfg HTTPConfig) (*HTTPProvider, error) {
	if cfg.Name == "" {
		return nil, errors.New("provider name is required")
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, errors.Wrapf(err, "provider %s: invalid base url", cfg.Name)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPProvider{
		name:     cfg.Name,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		carriers: newCarrierSet(cfg.Carriers),
		client:   &http.Client{Timeout: timeout},
	}, nil
}

func (p *HTTPProvider) Name() string {
	return p.name
}

func (p *HTTPProvider) Serves(carrier string) bool {
	return p.carriers.serves(carrier)
}

func (p *HTTPProvider) Fetch(ctx context.Context, carrier string) ([]json.RawMessage, error) {
	endpoint := p.baseURL + "/awards?carrier=" + url.QueryEscape(strings.ToUpper(carrier))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, NewProviderError(p.name, carrier, errors.Wrap(err, "build request"))
	}
	req.Header.Set("Accept", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, NewProviderError(p.name, carrier, errors.Wrap(err, "request failed"))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, NewProviderError(p.name, carrier, errors.Wrap(ErrUnexpectedStatus, fmt.Sprintf("status %d", resp.StatusCode)))
	}

	var body httpResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, NewProviderError(p.name, carrier, errors.Wrap(err, "decode response"))
	}

	return body.Records, nil
}

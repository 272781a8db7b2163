package currency

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/jszwec/csvutil"
)

const BaseCurrency = "USD"

//go:embed rates.csv
var defaultRatesCSV []byte

// Rate is an approximate conversion factor from Currency to BaseCurrency.
// Markers is a "|" separated list of substrings that identify the currency
// inside a price string.
type Rate struct {
	Currency string  `csv:"currency"`
	Markers  string  `csv:"markers"`
	Rate     float64 `csv:"rate"`
}

// RateTable is checked in file order; the first matching marker wins, so the
// base currency should be listed first to keep "US$" from matching "S$".
type RateTable struct {
	rates   []Rate
	markers [][]string
}

var defaultTable atomic.Pointer[RateTable]

func init() {
	t, err := ParseRates(bytes.NewReader(defaultRatesCSV))
	if err != nil {
		panic("currency: embedded rate table: " + err.Error())
	}
	defaultTable.Store(t)
}

func ParseRates(r io.Reader) (*RateTable, error) {
	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate table decoder: %w", err)
	}

	var rates []Rate
	if err := dec.Decode(&rates); err != nil {
		return nil, fmt.Errorf("failed to decode rate table: %w", err)
	}

	t := &RateTable{rates: make([]Rate, 0, len(rates))}
	for _, rate := range rates {
		if rate.Currency == "" || rate.Rate <= 0 {
			continue
		}
		rate.Currency = strings.ToUpper(strings.TrimSpace(rate.Currency))
		var markers []string
		for _, m := range strings.Split(rate.Markers, "|") {
			if m = strings.ToUpper(strings.TrimSpace(m)); m != "" {
				markers = append(markers, m)
			}
		}
		if len(markers) == 0 {
			markers = []string{rate.Currency}
		}
		t.rates = append(t.rates, rate)
		t.markers = append(t.markers, markers)
	}
	return t, nil
}

func LoadRatesFile(path string) (*RateTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rate table: %w", err)
	}
	defer f.Close()
	return ParseRates(f)
}

func DefaultRates() *RateTable {
	return defaultTable.Load()
}

// SetDefaultRates replaces the table used by ParsePrice. Intended for startup.
func SetDefaultRates(t *RateTable) {
	if t != nil {
		defaultTable.Store(t)
	}
}

// Detect returns the rate whose marker appears in s. A marker only counts when
// it is not glued to a preceding letter, so "A$" does not match "CA$".
func (t *RateTable) Detect(s string) (Rate, bool) {
	upper := strings.ToUpper(s)
	for i, markers := range t.markers {
		for _, m := range markers {
			if containsMarker(upper, m) {
				return t.rates[i], true
			}
		}
	}
	return Rate{}, false
}

func containsMarker(s, marker string) bool {
	for from := 0; from < len(s); {
		idx := strings.Index(s[from:], marker)
		if idx < 0 {
			return false
		}
		idx += from
		if idx == 0 || !isLetter(s[idx-1]) {
			return true
		}
		from = idx + 1
	}
	return false
}

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func (t *RateTable) Lookup(code string) (Rate, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, r := range t.rates {
		if r.Currency == code {
			return r, true
		}
	}
	return Rate{}, false
}

// ToBase converts amount in the given currency code to BaseCurrency. Unknown
// codes are treated as base.
func (t *RateTable) ToBase(amount float64, code string) float64 {
	if r, ok := t.Lookup(code); ok {
		return amount * r.Rate
	}
	return amount
}

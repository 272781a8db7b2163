package currency

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParsePrice parses raw with the default rate table.
func ParsePrice(raw any) float64 {
	return DefaultRates().ParsePrice(raw)
}

// ParsePrice turns a number, a currency-tagged string like "AUD 123.45", or
// nothing into a non-negative base-currency amount. Anything unparseable is 0.
func (t *RateTable) ParsePrice(raw any) float64 {
	var v float64
	switch p := raw.(type) {
	case nil:
		return 0
	case float64:
		v = p
	case float32:
		v = float64(p)
	case int:
		v = float64(p)
	case int64:
		v = float64(p)
	case int32:
		v = float64(p)
	case json.Number:
		f, err := p.Float64()
		if err != nil {
			return 0
		}
		v = f
	case *float64:
		if p == nil {
			return 0
		}
		v = *p
	case string:
		v = t.parseString(p)
	default:
		return 0
	}
	return clean(v)
}

func (t *RateTable) parseString(s string) float64 {
	digits := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return 0
	}

	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0
	}

	if rate, ok := t.Detect(s); ok && rate.Currency != BaseCurrency {
		v *= rate.Rate
	}
	return v
}

func clean(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return math.Round(v*100) / 100
}

package currency

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want float64
	}{
		{"foreign currency string", "AUD 100.00", 65.00},
		{"plain number", 250, 250},
		{"float", 120.5, 120.5},
		{"json number", json.Number("88.10"), 88.10},
		{"base currency string", "USD 1,234.50", 1234.50},
		{"dollar sign", "$56", 56},
		{"us dollar marker is not sgd", "US$10", 10},
		{"singapore dollar", "S$100", 74},
		{"canadian dollar is not australian", "CA$ 100", 73},
		{"canadian short marker", "C$100", 73},
		{"australian short marker", "A$ 100", 65},
		{"missing", nil, 0},
		{"garbage", "n/a", 0},
		{"two decimal points", "1.2.3", 0},
		{"negative number", -12.0, 0},
		{"unsupported type", []int{1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParsePrice(tt.raw), 0.0001)
		})
	}
}

func TestParsePriceIsDeterministic(t *testing.T) {
	for i := 0; i < 5; i++ {
		assert.Equal(t, ParsePrice("GBP 10"), ParsePrice("GBP 10"))
	}
}

func TestParseRatesCustomTable(t *testing.T) {
	table, err := ParseRates(strings.NewReader("currency,markers,rate\nUSD,USD,1\nMXN,MXN|MX$,0.05\nBAD,,0\n"))
	require.NoError(t, err)

	assert.InDelta(t, 5.0, table.ParsePrice("MXN 100"), 0.0001)
	assert.InDelta(t, 100.0, table.ParsePrice("AUD 100"), 0.0001, "unknown to this table")

	_, ok := table.Lookup("BAD")
	assert.False(t, ok)
	assert.InDelta(t, 5.0, table.ToBase(100, "mxn"), 0.0001)
	assert.InDelta(t, 100.0, table.ToBase(100, "XYZ"), 0.0001)
}

func TestSetDefaultRatesIgnoresNil(t *testing.T) {
	before := DefaultRates()
	SetDefaultRates(nil)
	assert.Same(t, before, DefaultRates())
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "USD 956.00", Format(956, "USD"))
	assert.Equal(t, "USD 1,234,567.89", Format(1234567.891, ""))
	assert.Equal(t, "IDR 1.500.000", Format(1500000, "IDR"))
	assert.Equal(t, "-USD 12.50", Format(-12.5, "usd"))
	assert.Equal(t, "JPY 12,000", Format(12000.4, "JPY"))
}

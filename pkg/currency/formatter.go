package currency

import (
	"fmt"
	"math"
	"strings"
)

// Format renders amount as "USD 1,234.50". IDR and JPY are rendered without
// minor units.
func Format(amount float64, code string) string {
	code = strings.ToUpper(code)
	if code == "" {
		code = BaseCurrency
	}

	decimals := 2
	sep := ","
	switch code {
	case "IDR":
		decimals, sep = 0, "."
	case "JPY":
		decimals = 0
	}

	scale := math.Pow(10, float64(decimals))
	rounded := math.Round(amount*scale) / scale

	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	whole := math.Floor(rounded)
	intStr := fmt.Sprintf("%.0f", whole)
	formatted := addThousandsSeparator(intStr, sep)
	if decimals > 0 {
		frac := math.Round((rounded - whole) * scale)
		formatted += fmt.Sprintf(".%0*d", decimals, int(frac))
	}

	result := code + " " + formatted
	if negative {
		result = "-" + result
	}

	return result
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	numSeps := (n - 1) / 3
	result := make([]byte, n+numSeps)

	j := len(result) - 1
	for i := n - 1; i >= 0; i-- {
		result[j] = s[i]
		j--

		pos := n - i
		if pos%3 == 0 && i > 0 {
			result[j] = sep[0]
			j--
		}
	}

	return string(result)
}

package award

import (
	"strings"

	"github.com/dharmasatrya/awardsearch/internal/models"
)

// NormalizeCabin maps any cabin label to one of the four canonical cabins.
// Unknown and empty labels are economy.
func NormalizeCabin(raw string) models.Cabin {
	c := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case strings.Contains(c, "BUSINESS") || c == "J":
		return models.CabinBusiness
	case strings.Contains(c, "FIRST") || c == "F":
		return models.CabinFirst
	case strings.Contains(c, "PREMIUM") || c == "W":
		return models.CabinPremium
	default:
		return models.CabinEconomy
	}
}

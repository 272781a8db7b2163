package enrichment

import (
	"sort"
	"strings"

	"github.com/dharmasatrya/awardsearch/internal/award"
	"github.com/dharmasatrya/awardsearch/internal/models"
	"github.com/dharmasatrya/awardsearch/internal/ranking"
)

// MatchingOptions extracts every option in batches whose carrier, normalized
// cabin and matched route agree with slice. Carrier batches are walked in
// sorted key order so results are stable.
func MatchingOptions(batches map[string][]Record, slice models.Slice) []models.AwardOption {
	carrier := slice.OperatingCarrier()
	if carrier == "" {
		return nil
	}
	cabin := award.NormalizeCabin(slice.Cabin())
	route := Route{Origin: slice.Origin, Destination: slice.Destination}

	keys := make([]string, 0, len(batches))
	for k := range batches {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var matched []models.AwardOption
	for _, k := range keys {
		for _, rec := range batches[k] {
			for _, o := range ExtractAwardOptions(rec, route) {
				if !strings.EqualFold(o.Carrier, carrier) {
					continue
				}
				if o.Cabin != cabin {
					continue
				}
				if !route.matches(o.MatchedOrigin, o.MatchedDestination) {
					continue
				}
				matched = append(matched, o)
			}
		}
	}
	return matched
}

// MatchEnrichment returns the lowest-valued matching option for slice, or
// false when nothing matches. Ties keep the first option found.
func MatchEnrichment(batches map[string][]Record, slice models.Slice, perMileValue float64) (*models.AwardOption, bool) {
	options := MatchingOptions(batches, slice)
	idx, ok := ranking.Cheapest(options, perMileValue)
	if !ok {
		return nil, false
	}
	best := options[idx]
	return &best, true
}

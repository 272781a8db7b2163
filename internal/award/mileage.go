package award

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dharmasatrya/awardsearch/internal/models"
	"github.com/dharmasatrya/awardsearch/internal/ranking"
	"github.com/dharmasatrya/awardsearch/pkg/currency"
)

type programKey struct {
	carrier string
	cabin   models.Cabin
}

type pricedCandidate struct {
	flight models.MileageFlightCandidate
	price  float64
}

// GroupMileageByProgram resolves a legacy mileage breakdown into one program
// per carrier and cabin, each carrying the cheapest candidate for every stop
// pair it covers. Output is sorted by ranking.ProgramRankKey.
func GroupMileageByProgram(b *models.MileageBreakdown) []models.MileageProgram {
	if b == nil || len(b.Segments) == 0 {
		return nil
	}

	var segments []models.MileageSegment
	seenSegment := make(map[string]bool)
	for _, seg := range b.Segments {
		if seenSegment[seg.Key()] {
			continue
		}
		seenSegment[seg.Key()] = true
		segments = append(segments, seg)
	}

	var order []programKey
	groups := make(map[programKey]map[string][]pricedCandidate)

	for _, seg := range b.Segments {
		for _, f := range seg.Flights {
			carrier := strings.ToUpper(strings.TrimSpace(f.Carrier))
			if carrier == "" || f.Mileage <= 0 {
				continue
			}
			if f.Origin == "" {
				f.Origin = seg.Origin
			}
			if f.Destination == "" {
				f.Destination = seg.Destination
			}

			key := programKey{carrier: carrier, cabin: NormalizeCabin(f.Cabin)}
			bySegment, ok := groups[key]
			if !ok {
				bySegment = make(map[string][]pricedCandidate)
				groups[key] = bySegment
				order = append(order, key)
			}
			bySegment[seg.Key()] = append(bySegment[seg.Key()], pricedCandidate{
				flight: f,
				price:  currency.ParsePrice(f.Price),
			})
		}
	}

	programs := make([]models.MileageProgram, 0, len(order))
	for _, key := range order {
		programs = append(programs, buildProgram(key, segments, groups[key]))
	}

	sort.SliceStable(programs, func(i, j int) bool {
		return ranking.ProgramRankKey(programs[i]) < ranking.ProgramRankKey(programs[j])
	})

	return programs
}

func buildProgram(key programKey, segments []models.MileageSegment, bySegment map[string][]pricedCandidate) models.MileageProgram {
	program := models.MileageProgram{
		Carrier:        key.carrier,
		Cabin:          key.cabin,
		SegmentMatches: make([]models.SegmentMatch, 0, len(segments)),
	}

	resolved, exact := 0, 0
	for _, seg := range segments {
		best, ok := cheapest(dedupeCodeShares(bySegment[seg.Key()]))
		if !ok {
			program.SegmentMatches = append(program.SegmentMatches, models.SegmentMatch{
				Origin:      seg.Origin,
				Destination: seg.Destination,
			})
			continue
		}

		flight := best.flight
		program.SegmentMatches = append(program.SegmentMatches, models.SegmentMatch{
			Origin:      seg.Origin,
			Destination: seg.Destination,
			Flight:      &flight,
			Price:       best.price,
		})
		program.TotalMileage += flight.Mileage
		program.TotalPrice += best.price
		resolved++
		if flight.ExactMatch {
			exact++
		}
	}

	switch {
	case resolved > 0 && exact == resolved:
		program.Completeness = models.CompletenessExact
	case exact > 0:
		program.Completeness = models.CompletenessMixed
	default:
		program.Completeness = models.CompletenessPartial
	}
	program.HasIncompleteSegments = resolved < len(segments)

	return program
}

// dedupeCodeShares keeps one candidate per (origin, destination, mileage),
// preferring the lower flight number.
func dedupeCodeShares(candidates []pricedCandidate) []pricedCandidate {
	if len(candidates) < 2 {
		return candidates
	}

	index := make(map[string]int)
	result := make([]pricedCandidate, 0, len(candidates))
	for _, c := range candidates {
		key := c.flight.Origin + "|" + c.flight.Destination + "|" + strconv.Itoa(c.flight.Mileage)
		i, ok := index[key]
		if !ok {
			index[key] = len(result)
			result = append(result, c)
			continue
		}
		if lowerFlightNumber(c.flight.FlightNumber, result[i].flight.FlightNumber) {
			result[i] = c
		}
	}
	return result
}

func cheapest(candidates []pricedCandidate) (pricedCandidate, bool) {
	if len(candidates) == 0 {
		return pricedCandidate{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.price < best.price || (c.price == best.price && c.flight.Mileage < best.flight.Mileage) {
			best = c
		}
	}
	return best, true
}

// lowerFlightNumber compares numerically when both numbers carry digits,
// lexicographically otherwise. Empty flight numbers sort last.
func lowerFlightNumber(a, b string) bool {
	if a == "" || b == "" {
		return a != "" && b == ""
	}
	na, errA := strconv.Atoi(strings.TrimLeft(a, "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"))
	nb, errB := strconv.Atoi(strings.TrimLeft(b, "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"))
	if errA == nil && errB == nil && na != nb {
		return na < nb
	}
	return a < b
}

package ranking

import "github.com/dharmasatrya/awardsearch/internal/models"

const (
	// Whole-itinerary comparisons flag cash as beatable below this share.
	ItineraryBeatableRatio = 0.90
	// Single intra-slice mileage candidates use a stricter share.
	SegmentBeatableRatio = 0.85

	programPriceScale = 100
)

// Redeemable is anything priced in miles plus a cash tax.
type Redeemable interface {
	MilesAndTax() (int, float64)
}

// Value converts miles and tax to a comparable cash amount.
func Value(miles int, tax, perMileValue float64) float64 {
	return float64(miles)*perMileValue + tax
}

func ValueOf(r Redeemable, perMileValue float64) float64 {
	miles, tax := r.MilesAndTax()
	return Value(miles, tax, perMileValue)
}

// BestValue returns the lowest value among candidates, or false when there
// are none.
func BestValue[T Redeemable](candidates []T, perMileValue float64) (float64, bool) {
	best, found := 0.0, false
	for _, c := range candidates {
		v := ValueOf(c, perMileValue)
		if !found || v < best {
			best, found = v, true
		}
	}
	return best, found
}

// Cheapest returns the index of the lowest-valued candidate. Ties keep the
// first one.
func Cheapest[T Redeemable](candidates []T, perMileValue float64) (int, bool) {
	idx, best := -1, 0.0
	for i, c := range candidates {
		v := ValueOf(c, perMileValue)
		if idx < 0 || v < best {
			idx, best = i, v
		}
	}
	return idx, idx >= 0
}

func IsBeatable(bestValue, cashPrice float64) bool {
	return cashPrice > 0 && bestValue < cashPrice*ItineraryBeatableRatio
}

func IsSegmentBeatable(bestValue, cashPrice float64) bool {
	return cashPrice > 0 && bestValue < cashPrice*SegmentBeatableRatio
}

// ProgramRankKey is the blended ordering key for mileage programs. Price
// dominates; it is not a monetary value.
func ProgramRankKey(p models.MileageProgram) float64 {
	return float64(p.TotalMileage) + p.TotalPrice*programPriceScale
}

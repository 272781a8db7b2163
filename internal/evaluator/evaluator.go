package evaluator

import (
	"time"

	"github.com/dharmasatrya/awardsearch/internal/award"
	"github.com/dharmasatrya/awardsearch/internal/enrichment"
	"github.com/dharmasatrya/awardsearch/internal/filter"
	"github.com/dharmasatrya/awardsearch/internal/models"
	"github.com/dharmasatrya/awardsearch/internal/ranking"
	"github.com/dharmasatrya/awardsearch/pkg/currency"
)

type Options struct {
	PerMileValue    float64
	PreferredBucket filter.Bucket
	Filters         *models.AwardFilters
	SortBy          string
	SortOrder       string
}

// OptionsFromRequest copies the presentation settings of a validated request.
func OptionsFromRequest(req models.EvaluateRequest) Options {
	return Options{
		PerMileValue:    req.PerMileValue,
		PreferredBucket: filter.Bucket(req.PreferredBucket),
		Filters:         req.Filters,
		SortBy:          req.SortBy,
		SortOrder:       req.SortOrder,
	}
}

// Evaluate values every slice of itinerary against the decoded enrichment
// batches, keyed by carrier code. It is pure: the same input always yields
// the same response, and missing award data degrades to empty results.
func Evaluate(itinerary models.Itinerary, batches map[string][]enrichment.Record, opts Options) models.EvaluateResponse {
	cash := cashInBase(itinerary.Price)
	share := 0.0
	if len(itinerary.Slices) > 0 {
		share = cash / float64(len(itinerary.Slices))
	}

	resp := models.EvaluateResponse{
		ItineraryID:  itinerary.ID,
		CashPrice:    itinerary.Price,
		PerMileValue: opts.PerMileValue,
		Slices:       make([]models.SliceEvaluation, 0, len(itinerary.Slices)),
		Complete:     len(itinerary.Slices) > 0,
	}

	total := 0.0
	for i, slice := range itinerary.Slices {
		eval := EvaluateSlice(i, slice, batches, share, opts)
		if eval.BestValue == nil {
			resp.Complete = false
		} else {
			total += *eval.BestValue
		}
		resp.Slices = append(resp.Slices, eval)
	}

	if resp.Complete {
		resp.BestValue = &total
		resp.Beatable = ranking.IsBeatable(total, cash)
	}
	return resp
}

// EvaluateSlice runs matching, deduplication, grouping, bucketing and
// valuation for one slice. cashShare is the part of the cash fare attributed
// to this slice.
func EvaluateSlice(index int, slice models.Slice, batches map[string][]enrichment.Record, cashShare float64, opts Options) models.SliceEvaluation {
	eval := models.SliceEvaluation{
		Index:       index,
		Origin:      slice.Origin,
		Destination: slice.Destination,
		Carrier:     slice.OperatingCarrier(),
		Cabin:       award.NormalizeCabin(slice.Cabin()),
		Fingerprint: award.Fingerprint(slice),
		CashShare:   cashShare,
	}

	var candidates []float64

	if best, ok := enrichment.MatchEnrichment(batches, slice, opts.PerMileValue); ok {
		v := ranking.ValueOf(best, opts.PerMileValue)
		eval.BestMatch = best
		eval.BestMatchValue = &v
		candidates = append(candidates, v)
	}

	options := award.DeduplicateAwardOptions(enrichment.MatchingOptions(batches, slice))
	options = filter.Apply(options, opts.Filters, opts.SortBy, opts.SortOrder, opts.PerMileValue)
	eval.Buckets = bucketGroups(award.GroupAwardOptions(options, opts.PerMileValue), slice.DepartureTime, opts)

	if slice.MileageBreakdown != nil {
		var complete []models.MileageProgram
		for _, p := range award.GroupMileageByProgram(slice.MileageBreakdown) {
			eval.MileagePrograms = append(eval.MileagePrograms, models.ValuedProgram{
				MileageProgram: p,
				Value:          ranking.ValueOf(p, opts.PerMileValue),
			})
			if !p.HasIncompleteSegments {
				complete = append(complete, p)
			}
		}
		if v, ok := ranking.BestValue(complete, opts.PerMileValue); ok {
			eval.SegmentBeatable = ranking.IsSegmentBeatable(v, cashShare)
			candidates = append(candidates, v)
		}
	}

	if len(candidates) > 0 {
		best := candidates[0]
		for _, v := range candidates[1:] {
			if v < best {
				best = v
			}
		}
		eval.BestValue = &best
	}
	return eval
}

// ValuePrograms groups a bare breakdown into ranked programs with values.
func ValuePrograms(breakdown *models.MileageBreakdown, perMileValue float64) []models.ValuedProgram {
	programs := award.GroupMileageByProgram(breakdown)
	valued := make([]models.ValuedProgram, 0, len(programs))
	for _, p := range programs {
		valued = append(valued, models.ValuedProgram{
			MileageProgram: p,
			Value:          ranking.ValueOf(p, perMileValue),
		})
	}
	return valued
}

func bucketGroups(groups []models.AwardGroup, reference time.Time, opts Options) models.TimeBuckets {
	valued := make([]models.ValuedGroup, 0, len(groups))
	for _, g := range groups {
		valued = append(valued, models.ValuedGroup{
			AwardGroup: g,
			Value:      ranking.ValueOf(g.Primary, opts.PerMileValue),
		})
	}

	buckets := filter.BucketByTime(valued, func(g models.ValuedGroup) time.Time {
		return g.Primary.Itinerary.DepartureTime
	}, reference)

	return models.TimeBuckets{
		Near:   buckets.Near,
		Far:    buckets.Far,
		Active: string(buckets.Active(opts.PreferredBucket)),
	}
}

func cashInBase(p models.Price) float64 {
	if p.Currency == "" {
		return p.Amount
	}
	return currency.DefaultRates().ToBase(p.Amount, p.Currency)
}

package models

import "strings"

type AwardFilters struct {
	MaxMiles *int     `json:"max_miles,omitempty"`
	MaxTax   *float64 `json:"max_tax,omitempty"`
	MinSeats *int     `json:"min_seats,omitempty"`
	Carriers []string `json:"carriers,omitempty"`
	Cabins   []Cabin  `json:"cabins,omitempty"`
}

type EvaluateRequest struct {
	Itinerary       Itinerary     `json:"itinerary"`
	PerMileValue    float64       `json:"per_mile_value,omitempty"`
	PreferredBucket string        `json:"preferred_bucket,omitempty"`
	Filters         *AwardFilters `json:"filters,omitempty"`
	SortBy          string        `json:"sort_by,omitempty"`
	SortOrder       string        `json:"sort_order,omitempty"`
}

// Validate fills defaults. defaultPerMileValue is used when the request does
// not carry its own value.
func (r *EvaluateRequest) Validate(defaultPerMileValue float64) error {
	if len(r.Itinerary.Slices) == 0 {
		return ErrMissingSlices
	}
	for _, s := range r.Itinerary.Slices {
		if s.Origin == "" || s.Destination == "" {
			return ErrMissingRoute
		}
	}
	if r.PerMileValue == 0 {
		r.PerMileValue = defaultPerMileValue
	}
	if err := ValidatePerMileValue(r.PerMileValue); err != nil {
		return err
	}
	switch strings.ToLower(r.PreferredBucket) {
	case "", "near":
		r.PreferredBucket = "near"
	case "far":
		r.PreferredBucket = "far"
	default:
		return ErrInvalidBucket
	}
	if r.SortBy == "" {
		r.SortBy = "value"
	}
	if r.SortOrder == "" {
		r.SortOrder = "asc"
	}
	return nil
}

type MileageProgramsRequest struct {
	Breakdown    MileageBreakdown `json:"breakdown"`
	PerMileValue float64          `json:"per_mile_value,omitempty"`
}

func (r *MileageProgramsRequest) Validate(defaultPerMileValue float64) error {
	if len(r.Breakdown.Segments) == 0 {
		return ErrMissingBreakdown
	}
	if r.PerMileValue == 0 {
		r.PerMileValue = defaultPerMileValue
	}
	return ValidatePerMileValue(r.PerMileValue)
}

type CodeShareRequest struct {
	Itineraries []Itinerary `json:"itineraries"`
}

func ValidatePerMileValue(v float64) error {
	if v <= 0 || v > 1 {
		return ErrInvalidPerMileValue
	}
	return nil
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingSlices       ValidationError = "itinerary.slices is required"
	ErrMissingRoute        ValidationError = "every slice needs an origin and destination"
	ErrMissingBreakdown    ValidationError = "breakdown.segments is required"
	ErrInvalidPerMileValue ValidationError = "per_mile_value must be in (0, 1]"
	ErrInvalidBucket       ValidationError = "preferred_bucket must be near or far"
)

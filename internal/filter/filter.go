package filter

import (
	"sort"
	"strings"

	"github.com/thoas/go-funk"

	"github.com/dharmasatrya/awardsearch/internal/models"
	"github.com/dharmasatrya/awardsearch/internal/ranking"
)

// Apply filters options and sorts the survivors. The input slice is not
// modified.
func Apply(options []models.AwardOption, filters *models.AwardFilters, sortBy, sortOrder string, perMileValue float64) []models.AwardOption {
	filtered := applyFilters(options, filters)
	return applySort(filtered, sortBy, sortOrder, perMileValue)
}

func applyFilters(options []models.AwardOption, filters *models.AwardFilters) []models.AwardOption {
	result := make([]models.AwardOption, 0, len(options))
	for _, o := range options {
		if filters == nil || matchesFilters(o, filters) {
			result = append(result, o)
		}
	}
	return result
}

func matchesFilters(o models.AwardOption, filters *models.AwardFilters) bool {
	if filters.MaxMiles != nil && o.Miles > *filters.MaxMiles {
		return false
	}
	if filters.MaxTax != nil && o.Tax > *filters.MaxTax {
		return false
	}
	if filters.MinSeats != nil && o.AvailableSeats < *filters.MinSeats {
		return false
	}

	if len(filters.Carriers) > 0 {
		carriers := funk.Map(filters.Carriers, strings.ToUpper).([]string)
		if !funk.ContainsString(carriers, strings.ToUpper(o.Carrier)) {
			return false
		}
	}

	if len(filters.Cabins) > 0 && !funk.Contains(filters.Cabins, o.Cabin) {
		return false
	}

	return true
}

func applySort(options []models.AwardOption, sortBy, sortOrder string, perMileValue float64) []models.AwardOption {
	if len(options) == 0 {
		return options
	}

	ascending := strings.ToLower(sortOrder) != "desc"
	less := func(a, b float64) bool {
		if ascending {
			return a < b
		}
		return a > b
	}

	switch strings.ToLower(sortBy) {
	case "miles":
		sort.SliceStable(options, func(i, j int) bool {
			return less(float64(options[i].Miles), float64(options[j].Miles))
		})

	case "tax":
		sort.SliceStable(options, func(i, j int) bool {
			return less(options[i].Tax, options[j].Tax)
		})

	case "departure":
		sort.SliceStable(options, func(i, j int) bool {
			if ascending {
				return options[i].Itinerary.DepartureTime.Before(options[j].Itinerary.DepartureTime)
			}
			return options[i].Itinerary.DepartureTime.After(options[j].Itinerary.DepartureTime)
		})

	case "duration":
		sort.SliceStable(options, func(i, j int) bool {
			return less(float64(options[i].Itinerary.DurationMinutes), float64(options[j].Itinerary.DurationMinutes))
		})

	case "seats":
		sort.SliceStable(options, func(i, j int) bool {
			return less(float64(options[i].AvailableSeats), float64(options[j].AvailableSeats))
		})

	default:
		// value
		sort.SliceStable(options, func(i, j int) bool {
			return less(ranking.ValueOf(options[i], perMileValue), ranking.ValueOf(options[j], perMileValue))
		})
	}

	return options
}

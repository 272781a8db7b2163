package award

import (
	"fmt"
	"strings"

	"github.com/dharmasatrya/awardsearch/internal/models"
	"github.com/dharmasatrya/awardsearch/internal/timezone"
)

// DedupKey identifies one fare bucket on one physical flight. Miles, tax and
// cabin are part of it so that different buckets on the same flight survive.
func DedupKey(o models.AwardOption) string {
	it := o.Itinerary
	return strings.Join([]string{
		strings.ToUpper(it.Origin),
		strings.ToUpper(it.Destination),
		timezone.ClockKey(it.DepartureTime),
		timezone.ClockKey(it.ArrivalTime),
		fmt.Sprintf("%d", it.DurationMinutes),
		fmt.Sprintf("%d", o.Miles),
		fmt.Sprintf("%.2f", o.Tax),
		string(o.Cabin),
		strings.ToUpper(o.Carrier),
		strings.Join(it.FlightNumbers, ","),
	}, "-")
}

// DeduplicateAwardOptions collapses options sharing a DedupKey. The first
// occurrence is kept unless a later one has strictly more seats. Output keeps
// first-seen key order.
func DeduplicateAwardOptions(options []models.AwardOption) []models.AwardOption {
	index := make(map[string]int, len(options))
	result := make([]models.AwardOption, 0, len(options))

	for _, o := range options {
		key := DedupKey(o)
		i, ok := index[key]
		if !ok {
			index[key] = len(result)
			result = append(result, o)
			continue
		}
		if o.AvailableSeats > result[i].AvailableSeats {
			result[i] = o
		}
	}

	return result
}

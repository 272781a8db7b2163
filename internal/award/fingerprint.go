package award

import (
	"strings"
	"time"

	"github.com/dharmasatrya/awardsearch/internal/models"
	"github.com/dharmasatrya/awardsearch/internal/timezone"
)

// Fingerprint identifies the physical routing of a slice. Carrier and cabin
// are not part of it.
func Fingerprint(s models.Slice) string {
	return fingerprint(s.Origin, s.Destination, s.DepartureTime, s.ArrivalTime, s.Stops)
}

func fingerprint(origin, destination string, dep, arr time.Time, stops []string) string {
	return strings.Join([]string{
		strings.ToUpper(origin),
		strings.ToUpper(destination),
		timezone.MinuteKey(dep),
		timezone.MinuteKey(arr),
		strings.Join(stops, ","),
	}, "|")
}

// IsCodeShare reports whether a and b fly the same first slice under
// different operating carriers.
func IsCodeShare(a, b models.Itinerary) bool {
	if len(a.Slices) == 0 || len(b.Slices) == 0 {
		return false
	}
	if Fingerprint(a.Slices[0]) != Fingerprint(b.Slices[0]) {
		return false
	}
	return !strings.EqualFold(a.Slices[0].OperatingCarrier(), b.Slices[0].OperatingCarrier())
}

// CodeShareGroups clusters itineraries by first-slice fingerprint, keeping
// input order within and across groups. Itineraries without slices form
// their own group.
func CodeShareGroups(itineraries []models.Itinerary) [][]models.Itinerary {
	index := make(map[string]int)
	var groups [][]models.Itinerary

	for _, it := range itineraries {
		if len(it.Slices) == 0 {
			groups = append(groups, []models.Itinerary{it})
			continue
		}
		key := Fingerprint(it.Slices[0])
		if i, ok := index[key]; ok {
			groups[i] = append(groups[i], it)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, []models.Itinerary{it})
	}

	return groups
}

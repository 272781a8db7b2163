package enrichment

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dharmasatrya/awardsearch/internal/award"
	"github.com/dharmasatrya/awardsearch/internal/models"
	"github.com/dharmasatrya/awardsearch/internal/timezone"
	"github.com/dharmasatrya/awardsearch/pkg/currency"
)

// Route is the origin/destination an option is extracted against. Records
// that carry their own route override it.
type Route struct {
	Origin      string
	Destination string
}

func (r Route) matches(origin, destination string) bool {
	return strings.EqualFold(r.Origin, origin) && strings.EqualFold(r.Destination, destination)
}

var directCabinNames = map[string]models.Cabin{
	"economy":         models.CabinEconomy,
	"premium economy": models.CabinPremium,
	"business":        models.CabinBusiness,
	"first":           models.CabinFirst,
}

// DirectCabin maps a direct-schema display name to a cabin, falling back to
// award.NormalizeCabin for names outside the table.
func DirectCabin(name string) models.Cabin {
	if c, ok := directCabinNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return award.NormalizeCabin(name)
}

// ExtractAwardOptions flattens a record into award options. Entries without
// positive miles are dropped.
func ExtractAwardOptions(rec Record, fallback Route) []models.AwardOption {
	switch rec.Schema {
	case SchemaDirect:
		if rec.Direct != nil {
			return extractDirect(*rec.Direct, fallback)
		}
	case SchemaLegacy:
		if rec.Legacy != nil {
			return extractLegacy(*rec.Legacy, fallback)
		}
	}
	return nil
}

func extractDirect(d DirectRecord, fallback Route) []models.AwardOption {
	route := Route{Origin: orDefault(d.Origin, fallback.Origin), Destination: orDefault(d.Destination, fallback.Destination)}

	names := make([]string, 0, len(d.CabinPrices))
	for name := range d.CabinPrices {
		names = append(names, name)
	}
	sort.Strings(names)

	itinerary := models.AwardItinerary{
		Origin:          strings.ToUpper(route.Origin),
		Destination:     strings.ToUpper(route.Destination),
		DepartureTime:   timezone.ParseOrZero(d.DepartureTime),
		ArrivalTime:     timezone.ParseOrZero(d.ArrivalTime),
		DurationMinutes: d.DurationMinutes,
		FlightNumbers:   d.FlightNumbers,
		Layovers:        d.Layovers,
	}

	var options []models.AwardOption
	for _, name := range names {
		cp := d.CabinPrices[name]
		if cp.Miles <= 0 {
			continue
		}
		cabin := DirectCabin(name)
		options = append(options, models.AwardOption{
			ID:                 d.ID + "-" + strings.ToLower(string(cabin)),
			Source:             d.Source,
			Carrier:            strings.ToUpper(d.Carrier),
			Miles:              cp.Miles,
			Tax:                currency.ParsePrice(cp.Tax),
			Cabin:              cabin,
			Itinerary:          itinerary,
			TransferOptions:    convertTransfers(cp.TransferOptions),
			AvailableSeats:     cp.Seats,
			MatchedOrigin:      strings.ToUpper(route.Origin),
			MatchedDestination: strings.ToUpper(route.Destination),
		})
	}
	return options
}

func extractLegacy(l LegacyRecord, fallback Route) []models.AwardOption {
	var options []models.AwardOption
	for si, s := range l.Itinerary.Slices {
		route := Route{Origin: orDefault(s.Origin, fallback.Origin), Destination: orDefault(s.Destination, fallback.Destination)}

		for fi, f := range s.MileageBreakdown.AllMatchingFlights {
			if f.Mileage <= 0 || f.Carrier == "" {
				continue
			}

			stops := f.Stops
			if stops == nil {
				stops = s.Stops
			}
			duration := f.DurationMinutes
			if duration == 0 {
				duration = s.DurationMinutes
			}

			var flightNumbers []string
			if f.FlightNumber != "" {
				flightNumbers = []string{f.FlightNumber}
			}

			options = append(options, models.AwardOption{
				ID:      l.ID + "-" + strconv.Itoa(si) + "-" + strconv.Itoa(fi),
				Source:  l.Source,
				Carrier: strings.ToUpper(f.Carrier),
				Miles:   f.Mileage,
				Tax:     currency.ParsePrice(f.Price),
				Cabin:   award.NormalizeCabin(f.Cabin),
				Itinerary: models.AwardItinerary{
					Origin:          strings.ToUpper(orDefault(f.Origin, route.Origin)),
					Destination:     strings.ToUpper(orDefault(f.Destination, route.Destination)),
					DepartureTime:   timezone.ParseOrZero(orDefault(f.DepartureTime, s.DepartureTime)),
					ArrivalTime:     timezone.ParseOrZero(orDefault(f.ArrivalTime, s.ArrivalTime)),
					DurationMinutes: duration,
					FlightNumbers:   flightNumbers,
					Layovers:        stops,
				},
				AvailableSeats:     f.Seats,
				MatchedOrigin:      strings.ToUpper(route.Origin),
				MatchedDestination: strings.ToUpper(route.Destination),
			})
		}
	}
	return options
}

func convertTransfers(in []TransferOption) []models.TransferOption {
	if len(in) == 0 {
		return nil
	}
	out := make([]models.TransferOption, len(in))
	for i, t := range in {
		out[i] = models.TransferOption{Program: t.Program, Ratio: t.Ratio, Points: t.Points}
	}
	return out
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

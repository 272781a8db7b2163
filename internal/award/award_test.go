package award

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/awardsearch/internal/models"
)

func at(clock string) time.Time {
	t, err := time.Parse("2006-01-02T15:04", "2025-06-01T"+clock)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNormalizeCabin(t *testing.T) {
	tests := map[string]models.Cabin{
		"Business":        models.CabinBusiness,
		"j":               models.CabinBusiness,
		"BUSINESS_SAVER":  models.CabinBusiness,
		"First":           models.CabinFirst,
		"F":               models.CabinFirst,
		"PREMIUM_ECONOMY": models.CabinPremium,
		"Premium Economy": models.CabinPremium,
		"W":               models.CabinPremium,
		"Economy":         models.CabinEconomy,
		"Y":               models.CabinEconomy,
		"":                models.CabinEconomy,
		"???":             models.CabinEconomy,
	}

	for in, want := range tests {
		assert.Equal(t, want, NormalizeCabin(in), "input %q", in)
	}
}

func sliceFor(carrier, cabin string) models.Slice {
	return models.Slice{
		Origin:        "SYD",
		Destination:   "LAX",
		DepartureTime: at("10:00").Add(17 * time.Second),
		ArrivalTime:   at("22:30"),
		Stops:         []string{"AKL"},
		Segments:      []models.Segment{{Carrier: carrier, Cabin: cabin, FlightNumber: carrier + "1"}},
	}
}

func TestFingerprint(t *testing.T) {
	a := sliceFor("QF", "Business")
	b := sliceFor("AA", "Economy")
	b.DepartureTime = at("10:00")

	assert.Equal(t, "SYD|LAX|2025-06-01T10:00|2025-06-01T22:30|AKL", Fingerprint(a))
	assert.Equal(t, Fingerprint(a), Fingerprint(b), "carrier, cabin and seconds are ignored")

	b.Stops = []string{"NAN"}
	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
}

func TestCodeShares(t *testing.T) {
	qf := models.Itinerary{ID: "qf", Slices: []models.Slice{sliceFor("QF", "Business")}}
	aa := models.Itinerary{ID: "aa", Slices: []models.Slice{sliceFor("AA", "Business")}}
	qf2 := models.Itinerary{ID: "qf2", Slices: []models.Slice{sliceFor("QF", "Economy")}}
	other := models.Itinerary{ID: "other", Slices: []models.Slice{sliceFor("QF", "Business")}}
	other.Slices[0].Destination = "SFO"

	assert.True(t, IsCodeShare(qf, aa))
	assert.False(t, IsCodeShare(qf, qf2), "same carrier is not a code-share")
	assert.False(t, IsCodeShare(qf, other))
	assert.False(t, IsCodeShare(qf, models.Itinerary{}))

	groups := CodeShareGroups([]models.Itinerary{qf, other, aa, {ID: "empty"}})
	require.Len(t, groups, 3)
	assert.Equal(t, "qf", groups[0][0].ID)
	assert.Equal(t, "aa", groups[0][1].ID)
	assert.Equal(t, "other", groups[1][0].ID)
	assert.Equal(t, "empty", groups[2][0].ID)
}

func TestGroupMileageByProgramIncompleteSegments(t *testing.T) {
	breakdown := &models.MileageBreakdown{Segments: []models.MileageSegment{
		{Origin: "A", Destination: "B", Flights: []models.MileageFlightCandidate{
			{Carrier: "QF", Cabin: "Business", Mileage: 30000, Price: 80.0, ExactMatch: true},
		}},
		{Origin: "B", Destination: "C"},
	}}

	programs := GroupMileageByProgram(breakdown)
	require.Len(t, programs, 1)

	p := programs[0]
	assert.True(t, p.HasIncompleteSegments)
	assert.Equal(t, models.CompletenessExact, p.Completeness)
	require.Len(t, p.SegmentMatches, 2)
	assert.NotNil(t, p.SegmentMatches[0].Flight)
	assert.Equal(t, "B", p.SegmentMatches[1].Origin)
	assert.Equal(t, "C", p.SegmentMatches[1].Destination)
	assert.Nil(t, p.SegmentMatches[1].Flight)
	assert.Equal(t, 30000, p.TotalMileage)
	assert.InDelta(t, 80.0, p.TotalPrice, 0.001)
}

func TestGroupMileageByProgram(t *testing.T) {
	breakdown := &models.MileageBreakdown{Segments: []models.MileageSegment{
		{Origin: "SYD", Destination: "AKL", Flights: []models.MileageFlightCandidate{
			{Carrier: "QF", FlightNumber: "QF145", Cabin: "J", Mileage: 20000, Price: "AUD 100.00", ExactMatch: true},
			{Carrier: "QF", FlightNumber: "QF141", Cabin: "Business", Mileage: 20000, Price: "AUD 120.00"},
			{Carrier: "QF", FlightNumber: "QF999", Cabin: "Business", Mileage: 25000, Price: 40},
			{Carrier: "NZ", FlightNumber: "NZ100", Cabin: "Economy", Mileage: 9000, Price: 30, ExactMatch: true},
			{Carrier: "NZ", FlightNumber: "NZ102", Cabin: "Economy", Mileage: 0, Price: 1},
		}},
		{Origin: "AKL", Destination: "LAX", Flights: []models.MileageFlightCandidate{
			{Carrier: "QF", FlightNumber: "QF25", Cabin: "Business", Mileage: 55000, Price: 60, ExactMatch: true},
			{Carrier: "QF", FlightNumber: "QF27", Cabin: "Business", Mileage: 50000, Price: 60},
			{Carrier: "NZ", FlightNumber: "NZ6", Cabin: "economy", Mileage: 30000, Price: 45.5, ExactMatch: true},
		}},
	}}

	programs := GroupMileageByProgram(breakdown)
	require.Len(t, programs, 2)

	nz := programs[0]
	assert.Equal(t, "NZ", nz.Carrier)
	assert.Equal(t, models.CabinEconomy, nz.Cabin)
	assert.Equal(t, 39000, nz.TotalMileage)
	assert.InDelta(t, 75.5, nz.TotalPrice, 0.001)
	assert.Equal(t, models.CompletenessExact, nz.Completeness)
	assert.False(t, nz.HasIncompleteSegments)

	qf := programs[1]
	assert.Equal(t, "QF", qf.Carrier)
	assert.Equal(t, models.CabinBusiness, qf.Cabin)
	// QF141 and QF145 are code-shares at 20000; QF141 wins on flight number
	// but QF999 is cheaper outright.
	assert.Equal(t, "QF999", qf.SegmentMatches[0].Flight.FlightNumber)
	// Equal price on the second leg: lower mileage wins.
	assert.Equal(t, "QF27", qf.SegmentMatches[1].Flight.FlightNumber)
	assert.Equal(t, 75000, qf.TotalMileage)
	assert.InDelta(t, 100.0, qf.TotalPrice, 0.001)
	assert.Equal(t, models.CompletenessPartial, qf.Completeness)
	assert.Equal(t, "SYD", qf.SegmentMatches[0].Flight.Origin, "origin falls back to the stop pair")
}

func TestGroupMileageByProgramMixed(t *testing.T) {
	breakdown := &models.MileageBreakdown{Segments: []models.MileageSegment{
		{Origin: "A", Destination: "B", Flights: []models.MileageFlightCandidate{
			{Carrier: "UA", Cabin: "Economy", Mileage: 10000, Price: 5, ExactMatch: true},
		}},
		{Origin: "B", Destination: "C", Flights: []models.MileageFlightCandidate{
			{Carrier: "UA", Cabin: "Economy", Mileage: 12000, Price: 5},
		}},
	}}

	programs := GroupMileageByProgram(breakdown)
	require.Len(t, programs, 1)
	assert.Equal(t, models.CompletenessMixed, programs[0].Completeness)
	assert.False(t, programs[0].HasIncompleteSegments)
}

func TestGroupMileageByProgramEmpty(t *testing.T) {
	assert.Nil(t, GroupMileageByProgram(nil))
	assert.Nil(t, GroupMileageByProgram(&models.MileageBreakdown{}))
	assert.Empty(t, GroupMileageByProgram(&models.MileageBreakdown{Segments: []models.MileageSegment{
		{Origin: "A", Destination: "B", Flights: []models.MileageFlightCandidate{{Carrier: "UA", Mileage: 0}}},
	}}))
}

func TestLowerFlightNumber(t *testing.T) {
	assert.True(t, lowerFlightNumber("QF9", "QF10"))
	assert.False(t, lowerFlightNumber("QF10", "QF9"))
	assert.True(t, lowerFlightNumber("3K1", "3K2"))
	assert.True(t, lowerFlightNumber("QF1", ""))
	assert.False(t, lowerFlightNumber("", "QF1"))
}

func option(id, carrier, flight string, miles int, tax float64, seats int) models.AwardOption {
	return models.AwardOption{
		ID:      id,
		Carrier: carrier,
		Miles:   miles,
		Tax:     tax,
		Cabin:   models.CabinBusiness,
		Itinerary: models.AwardItinerary{
			Origin:          "SFO",
			Destination:     "NRT",
			DepartureTime:   at("11:00"),
			ArrivalTime:     at("15:00"),
			DurationMinutes: 660,
			FlightNumbers:   []string{flight},
		},
		AvailableSeats: seats,
	}
}

func TestDeduplicateAwardOptions(t *testing.T) {
	options := []models.AwardOption{
		option("1", "UA", "UA123", 60000, 56, 1),
		option("2", "UA", "UA123", 60000, 56, 4),
		option("3", "UA", "UA123", 60000, 56, 4),
		option("4", "UA", "UA456", 60000, 56, 2),
		option("5", "UA", "UA123", 80000, 56, 9),
	}

	got := DeduplicateAwardOptions(options)
	require.Len(t, got, 3)
	assert.Equal(t, "2", got[0].ID, "more seats replaces, equal seats does not")
	assert.Equal(t, "4", got[1].ID, "different flight number stays distinct")
	assert.Equal(t, "5", got[2].ID, "different miles is a different bucket")

	assert.Equal(t, got, DeduplicateAwardOptions(got))
	assert.Equal(t, got, DeduplicateAwardOptions(options))
	assert.Empty(t, DeduplicateAwardOptions(nil))
}

func TestGroupAwardOptions(t *testing.T) {
	options := DeduplicateAwardOptions([]models.AwardOption{
		option("cheap", "UA", "UA123", 50000, 30, 1),
		option("a", "UA", "UA123", 60000, 56, 1),
		option("b", "NH", "NH456", 60000, 56, 2),
	})
	require.Len(t, options, 3)

	groups := GroupAwardOptions(options, 0.015)
	require.Len(t, groups, 2)
	assert.Equal(t, "cheap", groups[0].Primary.ID)
	assert.Empty(t, groups[0].Alternatives)
	assert.Equal(t, "a", groups[1].Primary.ID)
	require.Len(t, groups[1].Alternatives, 1)
	assert.Equal(t, "b", groups[1].Alternatives[0].ID)

	assert.Empty(t, GroupAwardOptions(nil, 0.015))
}

func TestGroupAwardOptionsKeepsInputOrder(t *testing.T) {
	early := option("early", "UA", "UA1", 90000, 10, 1)
	early.Itinerary.DepartureTime = at("07:00")
	late := option("late", "UA", "UA9", 40000, 10, 1)
	late.Itinerary.DepartureTime = at("18:00")
	earlyCodeShare := option("early-nh", "NH", "NH1", 90000, 10, 1)
	earlyCodeShare.Itinerary.DepartureTime = at("07:00")

	groups := GroupAwardOptions([]models.AwardOption{early, late, earlyCodeShare}, 0.015)
	require.Len(t, groups, 2)
	assert.Equal(t, "early", groups[0].Primary.ID, "the pricier group stays first")
	assert.Equal(t, "late", groups[1].Primary.ID)
	require.Len(t, groups[0].Alternatives, 1)
	assert.Equal(t, "early-nh", groups[0].Alternatives[0].ID)
}

package models

import "time"

type Completeness string

const (
	CompletenessExact   Completeness = "exact"
	CompletenessMixed   Completeness = "mixed"
	CompletenessPartial Completeness = "partial"
)

// MileageBreakdown holds the legacy provider's candidates for each stop pair
// of a slice, in travel order.
type MileageBreakdown struct {
	Segments []MileageSegment `json:"segments"`
}

type MileageSegment struct {
	Origin      string                   `json:"origin"`
	Destination string                   `json:"destination"`
	Flights     []MileageFlightCandidate `json:"flights"`
}

// Key identifies the stop pair.
func (s MileageSegment) Key() string {
	return s.Origin + "-" + s.Destination
}

type MileageFlightCandidate struct {
	Carrier       string   `json:"carrier"`
	FlightNumber  string   `json:"flight_number,omitempty"`
	Cabin         string   `json:"cabin"`
	Mileage       int      `json:"mileage"`
	Price         any      `json:"price,omitempty"`
	ExactMatch    bool     `json:"exact_match,omitempty"`
	Origin        string   `json:"origin,omitempty"`
	Destination   string   `json:"destination,omitempty"`
	DepartureTime string   `json:"departure_time,omitempty"`
	ArrivalTime   string   `json:"arrival_time,omitempty"`
	Stops         []string `json:"stops,omitempty"`
}

// SegmentMatch is the resolved candidate for one stop pair. Flight is nil
// when the program has no coverage for that pair.
type SegmentMatch struct {
	Origin      string                  `json:"origin"`
	Destination string                  `json:"destination"`
	Flight      *MileageFlightCandidate `json:"flight"`
	Price       float64                 `json:"price"`
}

type MileageProgram struct {
	Carrier               string         `json:"carrier"`
	Cabin                 Cabin          `json:"cabin"`
	TotalMileage          int            `json:"total_mileage"`
	TotalPrice            float64        `json:"total_price"`
	SegmentMatches        []SegmentMatch `json:"segment_matches"`
	Completeness          Completeness   `json:"completeness"`
	HasIncompleteSegments bool           `json:"has_incomplete_segments"`
}

func (p MileageProgram) MilesAndTax() (int, float64) {
	return p.TotalMileage, p.TotalPrice
}

type TransferOption struct {
	Program string  `json:"program"`
	Ratio   float64 `json:"ratio,omitempty"`
	Points  int     `json:"points,omitempty"`
}

// AwardItinerary is the flight snapshot an award option was quoted for.
type AwardItinerary struct {
	Origin          string    `json:"origin"`
	Destination     string    `json:"destination"`
	DepartureTime   time.Time `json:"departure_time"`
	ArrivalTime     time.Time `json:"arrival_time"`
	DurationMinutes int       `json:"duration_minutes"`
	FlightNumbers   []string  `json:"flight_numbers,omitempty"`
	Layovers        []string  `json:"layovers,omitempty"`
}

type AwardOption struct {
	ID              string           `json:"id"`
	Source          string           `json:"source,omitempty"`
	Carrier         string           `json:"carrier"`
	Miles           int              `json:"miles"`
	Tax             float64          `json:"tax"`
	Cabin           Cabin            `json:"cabin"`
	Itinerary       AwardItinerary   `json:"itinerary"`
	TransferOptions []TransferOption `json:"transfer_options,omitempty"`
	AvailableSeats  int              `json:"available_seats"`
	// Route the option was extracted against, independent of Itinerary.
	MatchedOrigin      string `json:"matched_origin"`
	MatchedDestination string `json:"matched_destination"`
}

func (o AwardOption) MilesAndTax() (int, float64) {
	return o.Miles, o.Tax
}

type AwardGroup struct {
	Primary      AwardOption   `json:"primary"`
	Alternatives []AwardOption `json:"alternatives"`
}

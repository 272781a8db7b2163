package models

import "time"

type Cabin string

const (
	CabinEconomy  Cabin = "ECONOMY"
	CabinPremium  Cabin = "PREMIUM"
	CabinBusiness Cabin = "BUSINESS"
	CabinFirst    Cabin = "FIRST"
)

type Price struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Formatted string  `json:"formatted,omitempty"`
}

type Location struct {
	Airport string    `json:"airport"`
	Time    time.Time `json:"time"`
}

// Segment is one physical flight.
type Segment struct {
	Carrier      string   `json:"carrier"`
	FlightNumber string   `json:"flight_number"`
	Departure    Location `json:"departure"`
	Arrival      Location `json:"arrival"`
	Cabin        string   `json:"cabin"`
}

type Slice struct {
	Origin           string            `json:"origin"`
	Destination      string            `json:"destination"`
	DepartureTime    time.Time         `json:"departure_time"`
	ArrivalTime      time.Time         `json:"arrival_time"`
	DurationMinutes  int               `json:"duration_minutes"`
	Segments         []Segment         `json:"segments"`
	Stops            []string          `json:"stops,omitempty"`
	MileageBreakdown *MileageBreakdown `json:"mileage_breakdown,omitempty"`
}

// OperatingCarrier returns the carrier of the first segment.
func (s Slice) OperatingCarrier() string {
	if len(s.Segments) == 0 {
		return ""
	}
	return s.Segments[0].Carrier
}

func (s Slice) Cabin() string {
	if len(s.Segments) == 0 {
		return ""
	}
	return s.Segments[0].Cabin
}

type Itinerary struct {
	ID     string  `json:"id"`
	Slices []Slice `json:"slices"`
	Price  Price   `json:"price"`
}

// Carriers lists the distinct operating carriers across all slices, in
// first-seen order.
func (i Itinerary) Carriers() []string {
	seen := make(map[string]bool)
	var carriers []string
	for _, s := range i.Slices {
		for _, seg := range s.Segments {
			if seg.Carrier == "" || seen[seg.Carrier] {
				continue
			}
			seen[seg.Carrier] = true
			carriers = append(carriers, seg.Carrier)
		}
	}
	return carriers
}

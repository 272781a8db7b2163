package enrichment

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Schema is the discriminant carried in every record's "schema" field.
type Schema string

const (
	SchemaDirect Schema = "direct"
	SchemaLegacy Schema = "legacy"
)

// Record is one enrichment payload. Exactly one of Direct or Legacy is set,
// matching Schema.
type Record struct {
	Schema Schema
	Direct *DirectRecord
	Legacy *LegacyRecord
}

// DirectRecord carries prices keyed by display cabin name ("Business",
// "Premium Economy", ...).
type DirectRecord struct {
	ID              string                `json:"id"`
	Source          string                `json:"source"`
	Carrier         string                `json:"carrier"`
	Origin          string                `json:"origin"`
	Destination     string                `json:"destination"`
	DepartureTime   string                `json:"departureTime"`
	ArrivalTime     string                `json:"arrivalTime"`
	DurationMinutes int                   `json:"durationMinutes"`
	FlightNumbers   []string              `json:"flightNumbers"`
	Layovers        []string              `json:"layovers"`
	CabinPrices     map[string]CabinPrice `json:"cabinPrices"`
}

type CabinPrice struct {
	Miles           int              `json:"miles"`
	Tax             any              `json:"tax"`
	Seats           int              `json:"seats"`
	TransferOptions []TransferOption `json:"transferOptions"`
}

type TransferOption struct {
	Program string  `json:"program"`
	Ratio   float64 `json:"ratio"`
	Points  int     `json:"points"`
}

// LegacyRecord nests candidates under itinerary -> slices -> mileageBreakdown.
type LegacyRecord struct {
	ID        string          `json:"id"`
	Source    string          `json:"source"`
	Itinerary LegacyItinerary `json:"itinerary"`
}

type LegacyItinerary struct {
	Slices []LegacySlice `json:"slices"`
}

type LegacySlice struct {
	Origin           string                 `json:"origin"`
	Destination      string                 `json:"destination"`
	DepartureTime    string                 `json:"departureTime"`
	ArrivalTime      string                 `json:"arrivalTime"`
	DurationMinutes  int                    `json:"durationMinutes"`
	Stops            []string               `json:"stops"`
	MileageBreakdown LegacyMileageBreakdown `json:"mileageBreakdown"`
}

type LegacyMileageBreakdown struct {
	AllMatchingFlights []LegacyFlight `json:"allMatchingFlights"`
}

type LegacyFlight struct {
	Carrier         string   `json:"carrier"`
	FlightNumber    string   `json:"flightNumber"`
	Cabin           string   `json:"cabin"`
	Mileage         int      `json:"mileage"`
	Price           any      `json:"price"`
	Seats           int      `json:"seats"`
	ExactMatch      bool     `json:"exactMatch"`
	Origin          string   `json:"origin"`
	Destination     string   `json:"destination"`
	DepartureTime   string   `json:"departureTime"`
	ArrivalTime     string   `json:"arrivalTime"`
	DurationMinutes int      `json:"durationMinutes"`
	Stops           []string `json:"stops"`
}

type UnknownSchemaError struct {
	Schema string
}

func (e *UnknownSchemaError) Error() string {
	return fmt.Sprintf("unknown enrichment schema %q", e.Schema)
}

// DecodeRecord dispatches on the "schema" field. Numbers sent as strings are
// accepted.
func DecodeRecord(raw json.RawMessage) (Record, error) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Record{}, fmt.Errorf("failed to unmarshal enrichment record: %w", err)
	}

	schema, _ := fields["schema"].(string)
	switch Schema(strings.ToLower(strings.TrimSpace(schema))) {
	case SchemaDirect:
		var d DirectRecord
		if err := decode(fields, &d); err != nil {
			return Record{}, err
		}
		return Record{Schema: SchemaDirect, Direct: &d}, nil
	case SchemaLegacy:
		var l LegacyRecord
		if err := decode(fields, &l); err != nil {
			return Record{}, err
		}
		return Record{Schema: SchemaLegacy, Legacy: &l}, nil
	default:
		return Record{}, &UnknownSchemaError{Schema: schema}
	}
}

// DecodeBatch decodes every record it can and reports how many it skipped.
func DecodeBatch(raws []json.RawMessage) ([]Record, int) {
	records := make([]Record, 0, len(raws))
	skipped := 0
	for _, raw := range raws {
		rec, err := DecodeRecord(raw)
		if err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped
}

func decode(input map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(input); err != nil {
		return fmt.Errorf("failed to decode enrichment record: %w", err)
	}
	return nil
}

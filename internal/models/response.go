package models

type ValuedProgram struct {
	MileageProgram
	Value float64 `json:"value"`
}

type ValuedGroup struct {
	AwardGroup
	Value float64 `json:"value"`
}

type TimeBuckets struct {
	Near   []ValuedGroup `json:"near"`
	Far    []ValuedGroup `json:"far"`
	Active string        `json:"active"`
}

type SliceEvaluation struct {
	Index           int             `json:"index"`
	Origin          string          `json:"origin"`
	Destination     string          `json:"destination"`
	Carrier         string          `json:"carrier"`
	Cabin           Cabin           `json:"cabin"`
	Fingerprint     string          `json:"fingerprint"`
	BestMatch       *AwardOption    `json:"best_match,omitempty"`
	BestMatchValue  *float64        `json:"best_match_value,omitempty"`
	Buckets         TimeBuckets     `json:"buckets"`
	MileagePrograms []ValuedProgram `json:"mileage_programs,omitempty"`
	BestValue       *float64        `json:"best_value,omitempty"`
	CashShare       float64         `json:"cash_share"`
	SegmentBeatable bool            `json:"segment_beatable"`
}

type EvaluationMetadata struct {
	CarriersQueried   int      `json:"carriers_queried"`
	CarriersSucceeded int      `json:"carriers_succeeded"`
	FailedCarriers    []string `json:"failed_carriers,omitempty"`
	CacheHits         int      `json:"cache_hits"`
	RecordsSkipped    int      `json:"records_skipped"`
	SearchTimeMs      int64    `json:"search_time_ms"`
}

type EvaluateResponse struct {
	ItineraryID  string             `json:"itinerary_id"`
	CashPrice    Price              `json:"cash_price"`
	PerMileValue float64            `json:"per_mile_value"`
	Slices       []SliceEvaluation  `json:"slices"`
	BestValue    *float64           `json:"best_value,omitempty"`
	Complete     bool               `json:"complete"`
	Beatable     bool               `json:"beatable"`
	Metadata     EvaluationMetadata `json:"metadata"`
}

type MileageProgramsResponse struct {
	PerMileValue float64         `json:"per_mile_value"`
	Programs     []ValuedProgram `json:"programs"`
}

type CodeShareResponse struct {
	Groups [][]Itinerary `json:"groups"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

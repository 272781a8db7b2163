package data

import _ "embed"

//go:embed award_direct.json
var AwardDirectData []byte

//go:embed mileage_legacy.json
var MileageLegacyData []byte

package storage

// Record is one groundwater monitoring record. Location is unique under
// case-insensitive comparison.
type Record struct {
	ID               int64   `json:"id"`
	Location         string  `json:"location"`
	GroundwaterLevel float64 `json:"groundwater_level"` // meters
	PH               float64 `json:"ph"`
	TDS              int     `json:"tds"` // mg/L
	COD              float64 `json:"cod"` // mg/L
	BOD              float64 `json:"bod"` // mg/L
	Status           string  `json:"status"`
	LastUpdated      string  `json:"last_updated"`
	LoadedAt         int64   `json:"loaded_at"`
}

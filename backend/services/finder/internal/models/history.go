package models

// HistoryEntry is a past charging session. Station holds the station name, not its id.
type HistoryEntry struct {
	ID      int64   `json:"id"`
	Station string  `json:"station"`
	Date    string  `json:"date"`
	Cost    float64 `json:"cost"`
	KWh     float64 `json:"kwh"`
}

package models

import "math"

// Connector types offered by stations.
const (
	TypeLevel2       = "Level 2"
	TypeDCFast       = "DC Fast"
	TypeSupercharger = "Supercharger"
)

// Availability levels derived from the share of free stalls.
const (
	LevelLow    = "low"
	LevelMedium = "medium"
	LevelHigh   = "high"
)

// Station is a charging location with a fixed number of stalls.
type Station struct {
	ID        int64   `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	Area      string  `json:"area" yaml:"area"`
	Address   string  `json:"address" yaml:"address"`
	Type      string  `json:"type" yaml:"type"`
	Speed     float64 `json:"speed" yaml:"speed"`
	Price     float64 `json:"price" yaml:"price"`
	Dist      float64 `json:"dist" yaml:"dist"`
	Total     int     `json:"total" yaml:"total"`
	Available int     `json:"available" yaml:"available"`
}

// AvailabilityPercent returns the rounded share of free stalls, 0 for stations without stalls.
func (s Station) AvailabilityPercent() int {
	if s.Total <= 0 {
		return 0
	}
	return int(math.Round(float64(s.Available) / float64(s.Total) * 100))
}

// AvailabilityLevel buckets AvailabilityPercent: up to 10% is low, up to 50% is medium.
func (s Station) AvailabilityLevel() string {
	switch p := s.AvailabilityPercent(); {
	case p <= 10:
		return LevelLow
	case p <= 50:
		return LevelMedium
	default:
		return LevelHigh
	}
}

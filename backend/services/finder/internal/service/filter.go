package service

import (
	"strings"

	"echargefinder/backend/services/finder/internal/models"
)

// DefaultMaxPrice is the price cap used when the client does not pick one.
const DefaultMaxPrice = 1.0

// Criteria selects stations. An empty Query or Types accepts everything for that clause.
type Criteria struct {
	Query    string
	Types    []string
	MaxPrice float64
	MinSpeed float64
}

// DefaultCriteria accepts every built-in station.
func DefaultCriteria() Criteria {
	return Criteria{MaxPrice: DefaultMaxPrice}
}

// Normalize trims the query and drops blank connector types.
func (c Criteria) Normalize() Criteria {
	out := c
	out.Query = strings.TrimSpace(c.Query)
	out.Types = nil
	for _, t := range c.Types {
		if t = strings.TrimSpace(t); t != "" {
			out.Types = append(out.Types, t)
		}
	}
	return out
}

// Matches reports whether s passes all four clauses.
func (c Criteria) Matches(s models.Station) bool {
	return c.matcher()(s)
}

func (c Criteria) matcher() func(models.Station) bool {
	q := strings.ToLower(c.Query)
	return func(s models.Station) bool {
		if q != "" &&
			!strings.Contains(strings.ToLower(s.Name), q) &&
			!strings.Contains(strings.ToLower(s.Area), q) &&
			!strings.Contains(strings.ToLower(s.Address), q) {
			return false
		}
		if len(c.Types) > 0 && !contains(c.Types, s.Type) {
			return false
		}
		return s.Price <= c.MaxPrice && s.Speed >= c.MinSpeed
	}
}

// Filter returns the stations matching c in their original order. The input is not modified.
func Filter(stations []models.Station, c Criteria) []models.Station {
	return Select(stations, c.matcher())
}

// Select returns the order-preserving subsequence of stations accepted by keep.
func Select(stations []models.Station, keep func(models.Station) bool) []models.Station {
	out := make([]models.Station, 0, len(stations))
	for _, s := range stations {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

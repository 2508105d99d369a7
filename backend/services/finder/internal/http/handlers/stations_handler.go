package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"echargefinder/backend/services/finder/internal/models"
	"echargefinder/backend/services/finder/internal/service"
)

// StationSource provides the current catalog.
type StationSource interface {
	Snapshot() []models.Station
}

// StationView is a station with its derived availability.
type StationView struct {
	models.Station
	AvailabilityPercent int    `json:"availability_percent"`
	AvailabilityLevel   string `json:"availability_level"`
}

// NewStationView decorates s with its availability.
func NewStationView(s models.Station) StationView {
	return StationView{
		Station:             s,
		AvailabilityPercent: s.AvailabilityPercent(),
		AvailabilityLevel:   s.AvailabilityLevel(),
	}
}

func stationViews(stations []models.Station) []StationView {
	out := make([]StationView, 0, len(stations))
	for _, s := range stations {
		out = append(out, NewStationView(s))
	}
	return out
}

// NewStationsHandler returns GET /api/stations handler.
//
// Query parameters: q, type (repeatable or comma separated), max_price, min_speed. Missing
// parameters keep the default criteria.
func NewStationsHandler(stations StationSource) http.HandlerFunc {
	type response struct {
		Stations []StationView `json:"stations"`
		Count    int           `json:"count"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		criteria, err := parseCriteria(r.URL.Query())
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		matched := service.Filter(stations.Snapshot(), criteria)
		writeJSON(w, http.StatusOK, response{
			Stations: stationViews(matched),
			Count:    len(matched),
		})
	}
}

type queryError string

func (e queryError) Error() string { return string(e) }

func parseCriteria(q url.Values) (service.Criteria, error) {
	c := service.DefaultCriteria()
	c.Query = q.Get("q")

	for _, raw := range q["type"] {
		c.Types = append(c.Types, strings.Split(raw, ",")...)
	}

	if raw := strings.TrimSpace(q.Get("max_price")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c, queryError("max_price must be a number")
		}
		c.MaxPrice = v
	}
	if raw := strings.TrimSpace(q.Get("min_speed")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c, queryError("min_speed must be a number")
		}
		c.MinSpeed = v
	}

	return c.Normalize(), nil
}

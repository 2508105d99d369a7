package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"echargefinder/backend/services/finder/internal/models"
)

// Metrics holds the service collectors on a private registry. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	ticks           prometheus.Counter
	available       *prometheus.GaugeVec
	authAttempts    *prometheus.CounterVec
	favoriteToggles *prometheus.CounterVec
}

// New registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ecf",
			Name:      "simulator_ticks_total",
			Help:      "Availability simulator ticks.",
		}),
		available: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "ecf",
			Name:      "station_available_stalls",
			Help:      "Free stalls per station after the last tick.",
		}, []string{"station"}),
		authAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ecf",
			Name:      "auth_attempts_total",
			Help:      "Credential store operations by outcome.",
		}, []string{"op", "outcome"}),
		favoriteToggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ecf",
			Name:      "favorite_toggles_total",
			Help:      "Favorite toggles by direction.",
		}, []string{"action"}),
	}

	m.registry.MustRegister(
		m.ticks,
		m.available,
		m.authAttempts,
		m.favoriteToggles,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// CatalogChanged records a simulator tick.
func (m *Metrics) CatalogChanged(stations []models.Station) {
	if m == nil {
		return
	}
	m.ticks.Inc()
	for _, s := range stations {
		m.available.WithLabelValues(strconv.FormatInt(s.ID, 10)).Set(float64(s.Available))
	}
}

// ObserveAuth counts a credential store operation.
func (m *Metrics) ObserveAuth(op, outcome string) {
	if m == nil {
		return
	}
	m.authAttempts.WithLabelValues(op, outcome).Inc()
}

// ObserveFavorite counts a favorite toggle.
func (m *Metrics) ObserveFavorite(added bool) {
	if m == nil {
		return
	}
	action := "removed"
	if added {
		action = "added"
	}
	m.favoriteToggles.WithLabelValues(action).Inc()
}

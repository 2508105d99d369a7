package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"echargefinder/backend/services/finder/internal/models"
)

// Catalog keeps the station list in memory. Stations are never added or removed after
// construction; only availability changes.
type Catalog struct {
	mu       sync.RWMutex
	stations []models.Station
	index    map[int64]int
}

// DefaultStations returns the built-in station list.
func DefaultStations() []models.Station {
	return []models.Station{
		{ID: 1, Name: "Downtown SuperCharge", Area: "Downtown", Address: "101 Main St", Type: models.TypeSupercharger, Speed: 250, Price: 0.45, Dist: 1.2, Total: 10, Available: 8},
		{ID: 2, Name: "Mall Plaza EV", Area: "Westside", Address: "500 Shopping Blvd", Type: models.TypeLevel2, Speed: 11, Price: 0.25, Dist: 3.5, Total: 20, Available: 15},
		{ID: 3, Name: "City Park Charge", Area: "Northside", Address: "88 Park Ave", Type: models.TypeLevel2, Speed: 7, Price: 0.15, Dist: 0.8, Total: 6, Available: 0},
		{ID: 4, Name: "Tech Hub Station", Area: "Tech District", Address: "404 Innovation Dr", Type: models.TypeDCFast, Speed: 50, Price: 0.35, Dist: 2.1, Total: 12, Available: 5},
		{ID: 5, Name: "Airport QuickStop", Area: "Airport", Address: "Terminal B Parking", Type: models.TypeSupercharger, Speed: 150, Price: 0.55, Dist: 12.0, Total: 50, Available: 42},
		{ID: 6, Name: "Eastside Library", Area: "Eastside", Address: "12 Library Ln", Type: models.TypeLevel2, Speed: 11, Price: 0.20, Dist: 4.2, Total: 4, Available: 2},
	}
}

// Default returns a catalog seeded with DefaultStations.
func Default() *Catalog {
	c, err := New(DefaultStations())
	if err != nil {
		panic(err)
	}
	return c
}

// New validates stations and builds a catalog that owns a copy of them.
func New(stations []models.Station) (*Catalog, error) {
	if len(stations) == 0 {
		return nil, errors.New("catalog: no stations")
	}

	c := &Catalog{
		stations: make([]models.Station, len(stations)),
		index:    make(map[int64]int, len(stations)),
	}
	copy(c.stations, stations)

	for i, s := range c.stations {
		if err := validate(s); err != nil {
			return nil, err
		}
		if _, dup := c.index[s.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate station id %d", s.ID)
		}
		c.index[s.ID] = i
	}
	return c, nil
}

type fileFormat struct {
	Stations []models.Station `yaml:"stations"`
}

// LoadFile reads a YAML catalog with a top-level `stations` list.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read file: %w", err)
	}

	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: decode yaml: %w", err)
	}
	return New(f.Stations)
}

func validate(s models.Station) error {
	switch {
	case strings.TrimSpace(s.Name) == "":
		return fmt.Errorf("catalog: station %d has no name", s.ID)
	case s.Total < 0:
		return fmt.Errorf("catalog: station %d has negative total", s.ID)
	case s.Available < 0 || s.Available > s.Total:
		return fmt.Errorf("catalog: station %d availability %d outside [0, %d]", s.ID, s.Available, s.Total)
	}
	return nil
}

// Snapshot returns a copy of all stations in catalog order.
func (c *Catalog) Snapshot() []models.Station {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Station, len(c.stations))
	copy(out, c.stations)
	return out
}

// Get returns the station with the given id.
func (c *Catalog) Get(id int64) (models.Station, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[id]
	if !ok {
		return models.Station{}, false
	}
	return c.stations[i], true
}

// Has reports whether id belongs to the catalog.
func (c *Catalog) Has(id int64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.index[id]
	return ok
}

// Len returns the number of stations.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.stations)
}

// UpdateAvailability applies next to every station under the write lock and stores the result
// clamped to [0, total]. It returns a snapshot taken after the update.
func (c *Catalog) UpdateAvailability(next func(s models.Station) int) []models.Station {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.stations {
		s := &c.stations[i]
		s.Available = Clamp(next(*s), 0, s.Total)
	}

	out := make([]models.Station, len(c.stations))
	copy(out, c.stations)
	return out
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

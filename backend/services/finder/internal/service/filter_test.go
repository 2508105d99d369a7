package service

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echargefinder/backend/services/finder/internal/catalog"
	"echargefinder/backend/services/finder/internal/models"
)

func ids(stations []models.Station) []int64 {
	out := make([]int64, 0, len(stations))
	for _, s := range stations {
		out = append(out, s.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	stations := catalog.DefaultStations()

	tests := []struct {
		name     string
		criteria Criteria
		want     []int64
	}{
		{name: "default criteria keep everything", criteria: DefaultCriteria(), want: []int64{1, 2, 3, 4, 5, 6}},
		{name: "query matches name case-insensitively", criteria: Criteria{Query: "MALL", MaxPrice: 1}, want: []int64{2}},
		{name: "query matches area", criteria: Criteria{Query: "tech district", MaxPrice: 1}, want: []int64{4}},
		{name: "query matches address", criteria: Criteria{Query: "terminal", MaxPrice: 1}, want: []int64{5}},
		{name: "type set", criteria: Criteria{Types: []string{models.TypeDCFast, models.TypeSupercharger}, MaxPrice: 1}, want: []int64{1, 4, 5}},
		{name: "price cap is inclusive", criteria: Criteria{MaxPrice: 0.25}, want: []int64{2, 3, 6}},
		{name: "speed floor is inclusive", criteria: Criteria{MaxPrice: 1, MinSpeed: 50}, want: []int64{1, 4, 5}},
		{name: "all clauses", criteria: Criteria{Query: "st", Types: []string{models.TypeLevel2}, MaxPrice: 0.3, MinSpeed: 10}, want: []int64{2, 6}},
		{name: "nothing matches", criteria: Criteria{Query: "nowhere", MaxPrice: 1}, want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(stations, tt.criteria)))
		})
	}
}

func TestFilterStationThreeScenario(t *testing.T) {
	got := Filter(catalog.DefaultStations(), Criteria{MinSpeed: 0, MaxPrice: 1.0})
	assert.Contains(t, ids(got), int64(3))
}

func TestFilterDoesNotModifyInput(t *testing.T) {
	stations := catalog.DefaultStations()
	before := append([]models.Station(nil), stations...)

	_ = Filter(stations, Criteria{Query: "park", MaxPrice: 1})
	assert.Equal(t, before, stations)
}

func TestFilterSoundAndIdempotent(t *testing.T) {
	stations := catalog.DefaultStations()
	rng := rand.New(rand.NewPCG(7, 11))
	queries := []string{"", "a", "park", "ST", "lane", "x"}
	types := []string{models.TypeLevel2, models.TypeDCFast, models.TypeSupercharger}

	for i := 0; i < 200; i++ {
		c := Criteria{
			Query:    queries[rng.IntN(len(queries))],
			MaxPrice: rng.Float64(),
			MinSpeed: float64(rng.IntN(260)),
		}
		for _, typ := range types {
			if rng.IntN(2) == 0 {
				c.Types = append(c.Types, typ)
			}
		}

		once := Filter(stations, c)
		for _, s := range once {
			q := strings.ToLower(c.Query)
			textOK := q == "" ||
				strings.Contains(strings.ToLower(s.Name), q) ||
				strings.Contains(strings.ToLower(s.Area), q) ||
				strings.Contains(strings.ToLower(s.Address), q)
			require.True(t, textOK, "query clause for station %d", s.ID)
			require.True(t, len(c.Types) == 0 || contains(c.Types, s.Type), "type clause for station %d", s.ID)
			require.LessOrEqual(t, s.Price, c.MaxPrice)
			require.GreaterOrEqual(t, s.Speed, c.MinSpeed)
		}
		require.Equal(t, once, Filter(once, c))
	}
}

func TestCriteriaNormalize(t *testing.T) {
	c := Criteria{Query: "  park ", Types: []string{" ", "Level 2 ", ""}, MaxPrice: 0.5}.Normalize()
	assert.Equal(t, "park", c.Query)
	assert.Equal(t, []string{"Level 2"}, c.Types)
	assert.Equal(t, 0.5, c.MaxPrice)
}

package service

import (
	"context"
	"math/rand/v2"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"echargefinder/backend/services/finder/internal/catalog"
	"echargefinder/backend/services/finder/internal/models"
)

func TestSimulatorTickKeepsAvailabilityInRange(t *testing.T) {
	cat := catalog.Default()
	sim := NewSimulator(cat, time.Second, DefaultMaxDelta, zap.NewNop(), WithRand(rand.New(rand.NewPCG(1, 2))))

	prev := cat.Snapshot()
	for i := 0; i < 1000; i++ {
		next := sim.Tick()
		require.Len(t, next, len(prev))
		for j, s := range next {
			require.GreaterOrEqual(t, s.Available, 0, "station %d tick %d", s.ID, i)
			require.LessOrEqual(t, s.Available, s.Total, "station %d tick %d", s.ID, i)
			diff := s.Available - prev[j].Available
			require.LessOrEqual(t, diff, DefaultMaxDelta)
			require.GreaterOrEqual(t, diff, -DefaultMaxDelta)
		}
		prev = next
	}
}

func TestSimulatorStationThreeAfterOneTick(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		cat := catalog.Default()
		sim := NewSimulator(cat, time.Second, 0, zap.NewNop(), WithRand(rand.New(rand.NewPCG(seed, seed+1))))

		sim.Tick()
		s, ok := cat.Get(3)
		require.True(t, ok)
		assert.Contains(t, []int{0, 1, 2}, s.Available, "seed %d", seed)
	}
}

func TestSimulatorNotifiesListeners(t *testing.T) {
	cat := catalog.Default()
	sim := NewSimulator(cat, time.Second, 1, zap.NewNop())

	var got []models.Station
	sim.Subscribe(ListenerFunc(func(stations []models.Station) { got = stations }))

	snapshot := sim.Tick()
	assert.Equal(t, snapshot, got)
	assert.Equal(t, cat.Snapshot(), got)
}

func TestSimulatorStartStop(t *testing.T) {
	sim := NewSimulator(catalog.Default(), 5*time.Millisecond, 1, zap.NewNop())

	var ticks atomic.Int32
	sim.Subscribe(ListenerFunc(func([]models.Station) { ticks.Add(1) }))

	stop := sim.Start(context.Background())
	require.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, 5*time.Millisecond)
	stop()
	stop()

	after := ticks.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, ticks.Load())
}

func TestSimulatorRunReturnsOnCancel(t *testing.T) {
	sim := NewSimulator(catalog.Default(), time.Hour, 1, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sim.Run(ctx), context.Canceled)
}

func TestNewSimulatorDefaults(t *testing.T) {
	sim := NewSimulator(catalog.Default(), 0, -1, zap.NewNop())
	assert.Equal(t, DefaultTickInterval, sim.interval)
	assert.Equal(t, DefaultMaxDelta, sim.maxDelta)
}

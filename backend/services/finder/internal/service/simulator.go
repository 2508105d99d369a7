package service

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"echargefinder/backend/services/finder/internal/catalog"
	"echargefinder/backend/services/finder/internal/models"
)

const (
	// DefaultTickInterval is the period between availability updates.
	DefaultTickInterval = 4 * time.Second
	// DefaultMaxDelta bounds the per-tick change of free stalls: deltas are drawn from
	// [-DefaultMaxDelta, +DefaultMaxDelta].
	DefaultMaxDelta = 2
)

// Listener is notified after every tick with a snapshot of the catalog. Implementations run on
// the simulator goroutine and must not block.
type Listener interface {
	CatalogChanged(stations []models.Station)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(stations []models.Station)

// CatalogChanged calls f.
func (f ListenerFunc) CatalogChanged(stations []models.Station) { f(stations) }

// Simulator nudges the free stall count of every station by a small random amount.
type Simulator struct {
	catalog  *catalog.Catalog
	interval time.Duration
	maxDelta int
	logger   *zap.Logger

	mu        sync.Mutex
	rng       *rand.Rand
	listeners []Listener
}

// SimulatorOption customizes a Simulator.
type SimulatorOption func(*Simulator)

// WithRand sets the random source, mainly for deterministic tests.
func WithRand(rng *rand.Rand) SimulatorOption {
	return func(s *Simulator) { s.rng = rng }
}

// NewSimulator builds a simulator. Non-positive interval or maxDelta fall back to the defaults.
func NewSimulator(cat *catalog.Catalog, interval time.Duration, maxDelta int, logger *zap.Logger, opts ...SimulatorOption) *Simulator {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if maxDelta <= 0 {
		maxDelta = DefaultMaxDelta
	}
	s := &Simulator{
		catalog:  cat,
		interval: interval,
		maxDelta: maxDelta,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		now := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(now, now>>1|1))
	}
	return s
}

// Subscribe registers l for catalog change notifications.
func (s *Simulator) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Tick performs one update and notifies listeners. Concurrent calls are serialized.
func (s *Simulator) Tick() []models.Station {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.catalog.UpdateAvailability(func(st models.Station) int {
		return st.Available + s.delta()
	})
	for _, l := range s.listeners {
		l.CatalogChanged(snapshot)
	}
	return snapshot
}

func (s *Simulator) delta() int {
	return s.rng.IntN(2*s.maxDelta+1) - s.maxDelta
}

// Run ticks every interval until ctx is done.
func (s *Simulator) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("availability simulator started",
		zap.Duration("interval", s.interval),
		zap.Int("max_delta", s.maxDelta),
	)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("availability simulator stopped")
			return ctx.Err()
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Start runs the simulator in the background. The returned function stops it and waits for the
// loop to exit; calling it more than once is safe.
func (s *Simulator) Start(ctx context.Context) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Run(ctx)
	}()
	return func() {
		cancel()
		<-done
	}
}

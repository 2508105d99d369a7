package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"echargefinder/backend/services/finder/internal/metrics"
	"echargefinder/backend/services/finder/internal/models"
)

// FavoritesRepository defines favorites storage used by the service.
type FavoritesRepository interface {
	Get(ctx context.Context, email string) ([]int64, error)
	Save(ctx context.Context, email string, ids []int64) error
}

// StationSource is the read side of the catalog.
type StationSource interface {
	Snapshot() []models.Station
	Has(id int64) bool
}

// SampleHistory is the charging history shown on every profile.
func SampleHistory() []models.HistoryEntry {
	return []models.HistoryEntry{
		{ID: 101, Station: "Downtown SuperCharge", Date: "2025-12-10", Cost: 12.50, KWh: 28},
		{ID: 102, Station: "Tech Hub Station", Date: "2025-11-28", Cost: 8.20, KWh: 21},
		{ID: 103, Station: "Airport QuickStop", Date: "2025-10-15", Cost: 19.80, KWh: 36},
	}
}

// ProfileService manages favorites and charging history for a session.
type ProfileService struct {
	favorites FavoritesRepository
	stations  StationSource
	history   []models.HistoryEntry
	metrics   *metrics.Metrics
	logger    *zap.Logger

	mu sync.Mutex
}

// NewProfileService builds ProfileService. m may be nil.
func NewProfileService(favorites FavoritesRepository, stations StationSource, history []models.HistoryEntry, m *metrics.Metrics, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		favorites: favorites,
		stations:  stations,
		history:   history,
		metrics:   m,
		logger:    logger,
	}
}

// ToggleFavorite adds stationID to the favorites of sess, or removes it when already present.
// It reports whether the station is a favorite afterwards.
func (s *ProfileService) ToggleFavorite(ctx context.Context, sess *models.Session, stationID int64) (bool, error) {
	if sess == nil || sess.Email == "" {
		return false, ErrNotAuthenticated
	}
	if !s.stations.Has(stationID) {
		return false, ErrUnknownStation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.favorites.Get(ctx, sess.Email)
	if err != nil {
		return false, err
	}

	next := make([]int64, 0, len(ids)+1)
	added := true
	for _, id := range ids {
		if id == stationID {
			added = false
			continue
		}
		next = append(next, id)
	}
	if added {
		next = append(next, stationID)
	}

	if err := s.favorites.Save(ctx, sess.Email, next); err != nil {
		return false, err
	}

	s.metrics.ObserveFavorite(added)
	s.logger.Debug("favorite toggled",
		zap.String("email", sess.Email),
		zap.Int64("station_id", stationID),
		zap.Bool("added", added),
	)
	return added, nil
}

// Favorites returns the favorite station ids of sess in the order they were added.
func (s *ProfileService) Favorites(ctx context.Context, sess *models.Session) ([]int64, error) {
	if sess == nil || sess.Email == "" {
		return nil, ErrNotAuthenticated
	}
	return s.favorites.Get(ctx, sess.Email)
}

// ListFavorites returns the catalog stations that are favorites of sess, in catalog order.
func (s *ProfileService) ListFavorites(ctx context.Context, sess *models.Session) ([]models.Station, error) {
	ids, err := s.Favorites(ctx, sess)
	if err != nil {
		return nil, err
	}
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return Select(s.stations.Snapshot(), func(st models.Station) bool {
		_, ok := set[st.ID]
		return ok
	}), nil
}

// History returns a copy of the charging history.
func (s *ProfileService) History() []models.HistoryEntry {
	out := make([]models.HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

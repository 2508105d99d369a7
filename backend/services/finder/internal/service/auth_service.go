package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"

	"echargefinder/backend/services/finder/internal/metrics"
	"echargefinder/backend/services/finder/internal/models"
	"echargefinder/backend/services/finder/internal/password"
	"echargefinder/backend/services/finder/internal/repository"
)

const (
	// MinPasswordLength is the shortest accepted password, in characters.
	MinPasswordLength = 6
	// MaxPasswordBytes is the longest password bcrypt accepts.
	MaxPasswordBytes = 72
)

// dummyPassword is hashed once so that logins for unknown emails cost one bcrypt comparison too.
const dummyPassword = "ecf-dummy-password"

// UserRepository defines account storage used by the service.
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	SaveAll(ctx context.Context, users []models.User) error
}

// SessionRepository defines session storage used by the service.
type SessionRepository interface {
	Get(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, sess models.Session) error
	Clear(ctx context.Context) error
}

// AuthService contains registration, login and profile logic.
type AuthService struct {
	users    UserRepository
	sessions SessionRepository
	hasher   password.Hasher
	metrics  *metrics.Metrics
	logger   *zap.Logger

	mu        sync.Mutex
	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService builds AuthService. m may be nil.
func NewAuthService(users UserRepository, sessions SessionRepository, hasher password.Hasher, m *metrics.Metrics, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		metrics:  m,
		logger:   logger,
	}
}

// Register creates an account. The email is compared case-sensitively after trimming spaces.
func (s *AuthService) Register(ctx context.Context, name, email, pass string) (user *models.User, err error) {
	defer func() { s.metrics.ObserveAuth("register", outcome(err)) }()

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrInvalidEmail
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := findUser(users, email); ok {
		return nil, ErrDuplicateEmail
	}
	if utf8.RuneCountInString(pass) < MinPasswordLength {
		return nil, ErrWeakPassword
	}
	if len(pass) > MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	hash, err := s.hasher.Hash(pass)
	if err != nil {
		return nil, err
	}

	newUser := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.SaveAll(ctx, append(users, newUser)); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("email", email))
	return &newUser, nil
}

// Login checks the credentials and persists the resulting session.
func (s *AuthService) Login(ctx context.Context, email, pass string) (sess *models.Session, err error) {
	defer func() { s.metrics.ObserveAuth("login", outcome(err)) }()

	email = strings.TrimSpace(email)

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	user, ok := findUser(users, email)
	if !ok {
		_ = s.hasher.Compare(s.dummy(), pass)
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, pass); err != nil {
		if !errors.Is(err, password.ErrMismatch) {
			s.logger.Warn("stored password hash unusable", zap.String("email", email), zap.Error(err))
		}
		return nil, ErrInvalidCredentials
	}

	current := user.Session()
	if err := s.sessions.Save(ctx, current); err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", zap.String("email", email))
	return &current, nil
}

// Logout clears the persisted session. Logging out without a session is not an error.
func (s *AuthService) Logout(ctx context.Context) (err error) {
	defer func() { s.metrics.ObserveAuth("logout", outcome(err)) }()
	return s.sessions.Clear(ctx)
}

// CurrentSession restores the persisted session.
func (s *AuthService) CurrentSession(ctx context.Context) (*models.Session, error) {
	sess, err := s.sessions.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNoSession) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}
	return sess, nil
}

// UpdateProfile merges upd into the account behind sess. The email cannot be changed. Without a
// session nothing is written and ErrNotAuthenticated is returned.
func (s *AuthService) UpdateProfile(ctx context.Context, sess *models.Session, upd models.ProfileUpdate) (updated *models.Session, err error) {
	defer func() { s.metrics.ObserveAuth("update_profile", outcome(err)) }()

	if sess == nil || sess.Email == "" {
		return nil, ErrNotAuthenticated
	}

	merged := *sess
	if upd.Name != nil {
		merged.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Phone != nil {
		merged.Phone = strings.TrimSpace(*upd.Phone)
	}
	if upd.Vehicle != nil {
		merged.Vehicle = strings.TrimSpace(*upd.Vehicle)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	previous := append([]models.User(nil), users...)

	found := false
	for i := range users {
		if users[i].Email == merged.Email {
			users[i].Name = merged.Name
			users[i].Phone = merged.Phone
			users[i].Vehicle = merged.Vehicle
			found = true
		}
	}
	if found {
		if err := s.users.SaveAll(ctx, users); err != nil {
			return nil, err
		}
	} else {
		s.logger.Warn("session has no matching account", zap.String("email", merged.Email))
	}

	// The session is written last; on failure the account list goes back to what it was.
	if err := s.sessions.Save(ctx, merged); err != nil {
		if found {
			if restoreErr := s.users.SaveAll(ctx, previous); restoreErr != nil {
				s.logger.Error("failed to restore accounts after session write failure",
					zap.String("email", merged.Email),
					zap.Error(restoreErr),
				)
			}
		}
		return nil, err
	}

	return &merged, nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(dummyPassword)
		if err != nil {
			s.logger.Warn("failed to prepare dummy hash", zap.Error(err))
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

func findUser(users []models.User, email string) (models.User, bool) {
	for _, u := range users {
		if u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}

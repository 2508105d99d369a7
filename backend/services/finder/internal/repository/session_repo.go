package repository

import (
	"context"
	"errors"

	"echargefinder/backend/services/finder/internal/models"
	"echargefinder/backend/services/finder/internal/storage"
)

// ErrNoSession is returned when no session is persisted.
var ErrNoSession = errors.New("session not found")

// SessionRepository persists the single current session under KeyCurrentUser.
type SessionRepository struct {
	kv storage.KV
}

// NewSessionRepository returns repository.
func NewSessionRepository(kv storage.KV) *SessionRepository {
	return &SessionRepository{kv: kv}
}

// Get loads the persisted session.
func (r *SessionRepository) Get(ctx context.Context) (*models.Session, error) {
	var sess models.Session
	found, err := getJSON(ctx, r.kv, KeyCurrentUser, &sess)
	if err != nil {
		return nil, err
	}
	if !found || sess.Email == "" {
		return nil, ErrNoSession
	}
	return &sess, nil
}

// Save stores sess as the current session.
func (r *SessionRepository) Save(ctx context.Context, sess models.Session) error {
	return setJSON(ctx, r.kv, KeyCurrentUser, sess)
}

// Clear removes the current session.
func (r *SessionRepository) Clear(ctx context.Context) error {
	return r.kv.Delete(ctx, KeyCurrentUser)
}

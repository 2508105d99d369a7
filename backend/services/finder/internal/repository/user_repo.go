package repository

import (
	"context"

	"echargefinder/backend/services/finder/internal/models"
	"echargefinder/backend/services/finder/internal/storage"
)

// UserRepository stores the registered accounts as one list under KeyUsers.
type UserRepository struct {
	kv storage.KV
}

// NewUserRepository returns repository instance.
func NewUserRepository(kv storage.KV) *UserRepository {
	return &UserRepository{kv: kv}
}

// List returns all accounts in registration order.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if _, err := getJSON(ctx, r.kv, KeyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SaveAll replaces the stored account list.
func (r *UserRepository) SaveAll(ctx context.Context, users []models.User) error {
	if users == nil {
		users = []models.User{}
	}
	return setJSON(ctx, r.kv, KeyUsers, users)
}

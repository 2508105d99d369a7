package repository

import (
	"context"

	"echargefinder/backend/services/finder/internal/storage"
)

// FavoritesRepository stores favorite station ids per account.
type FavoritesRepository struct {
	kv storage.KV
}

// NewFavoritesRepository returns repository.
func NewFavoritesRepository(kv storage.KV) *FavoritesRepository {
	return &FavoritesRepository{kv: kv}
}

// Get returns the ids for email; an account without favorites gets an empty slice.
func (r *FavoritesRepository) Get(ctx context.Context, email string) ([]int64, error) {
	ids := []int64{}
	if _, err := getJSON(ctx, r.kv, FavoritesKey(email), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// Save replaces the ids for email.
func (r *FavoritesRepository) Save(ctx context.Context, email string, ids []int64) error {
	if ids == nil {
		ids = []int64{}
	}
	return setJSON(ctx, r.kv, FavoritesKey(email), ids)
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"echargefinder/backend/services/finder/internal/storage"
)

// Storage keys. Values are JSON documents.
const (
	KeyCurrentUser     = "ecf_user"
	KeyUsers           = "ecf_users"
	KeyFavoritesPrefix = "ecf_favorites:"
)

// FavoritesKey returns the key holding the favorites of the account identified by email.
func FavoritesKey(email string) string {
	return KeyFavoritesPrefix + email
}

// getJSON decodes the value under key into out. It reports false when the key is absent.
func getJSON(ctx context.Context, kv storage.KV, key string, out interface{}) (bool, error) {
	data, err := kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("repository: decode %s: %w", key, err)
	}
	return true, nil
}

func setJSON(ctx context.Context, kv storage.KV, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("repository: encode %s: %w", key, err)
	}
	return kv.Set(ctx, key, data)
}

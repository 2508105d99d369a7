package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	libdb "echargefinder/backend/libs/db"
)

func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, err := kv.Get(ctx, "ecf_user")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(ctx, "ecf_user", []byte(`{"email":"ann@x.com"}`)))
	got, err := kv.Get(ctx, "ecf_user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"ann@x.com"}`, string(got))

	require.NoError(t, kv.Set(ctx, "ecf_user", []byte(`{"email":"bob@x.com"}`)))
	got, err = kv.Get(ctx, "ecf_user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"bob@x.com"}`, string(got))

	require.NoError(t, kv.Delete(ctx, "ecf_user"))
	_, err = kv.Get(ctx, "ecf_user")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Delete(ctx, "never-written"))
}

func TestMemoryStore(t *testing.T) {
	exerciseKV(t, NewMemory())
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	value := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", value))
	value[0] = 'z'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(client, "finder:")
	t.Cleanup(func() { _ = store.Close() })

	exerciseKV(t, store)

	require.NoError(t, store.Set(context.Background(), "ecf_users", []byte("[]")))
	assert.True(t, mr.Exists("finder:ecf_users"))
}

func TestRedisStoreUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	store := NewRedisStore(client, "")
	t.Cleanup(func() { _ = store.Close() })

	mr.Close()

	_, err := store.Get(context.Background(), "ecf_user")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, store.Set(context.Background(), "ecf_user", []byte("{}")), ErrUnavailable)
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	db, err := libdb.NewSQLiteDB(ctx, filepath.Join(t.TempDir(), "finder.db"))
	require.NoError(t, err)

	store, err := NewSQLiteStore(ctx, db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	exerciseKV(t, store)
}

func TestSQLiteStoreClosed(t *testing.T) {
	ctx := context.Background()
	db, err := libdb.NewSQLiteDB(ctx, filepath.Join(t.TempDir(), "finder.db"))
	require.NoError(t, err)

	store, err := NewSQLiteStore(ctx, db)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = store.Get(ctx, "ecf_user")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("FINDER_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("FINDER_TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	db, err := libdb.NewPostgresDB(ctx, dsn)
	require.NoError(t, err)

	store, err := NewPostgresStore(ctx, db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_ = store.Delete(ctx, "ecf_user")
	exerciseKV(t, store)
}

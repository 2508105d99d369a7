package service

import (
	"context"
	"fmt"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"echargefinder/backend/services/finder/internal/catalog"
	"echargefinder/backend/services/finder/internal/metrics"
	"echargefinder/backend/services/finder/internal/password"
	"echargefinder/backend/services/finder/internal/repository"
	"echargefinder/backend/services/finder/internal/storage"
)

// flakyKV fails every call while down is set, and writes to failSetKey always.
type flakyKV struct {
	*storage.Memory
	down       bool
	failSetKey string
}

func (f *flakyKV) fail(op string) error {
	return fmt.Errorf("%w: %s: connection refused", storage.ErrUnavailable, op)
}

func (f *flakyKV) Get(ctx context.Context, key string) ([]byte, error) {
	if f.down {
		return nil, f.fail("get")
	}
	return f.Memory.Get(ctx, key)
}

func (f *flakyKV) Set(ctx context.Context, key string, value []byte) error {
	if f.down || (f.failSetKey != "" && key == f.failSetKey) {
		return f.fail("set")
	}
	return f.Memory.Set(ctx, key, value)
}

func (f *flakyKV) Delete(ctx context.Context, key string) error {
	if f.down {
		return f.fail("delete")
	}
	return f.Memory.Delete(ctx, key)
}

type fixture struct {
	kv      *flakyKV
	users   *repository.UserRepository
	auth    *AuthService
	profile *ProfileService
	catalog *catalog.Catalog
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	kv := &flakyKV{Memory: storage.NewMemory()}
	users := repository.NewUserRepository(kv)
	cat := catalog.Default()
	m := metrics.New()
	return &fixture{
		kv:      kv,
		users:   users,
		catalog: cat,
		auth: NewAuthService(
			users,
			repository.NewSessionRepository(kv),
			password.NewBcryptHasher(bcrypt.MinCost),
			m,
			zap.NewNop(),
		),
		profile: NewProfileService(repository.NewFavoritesRepository(kv), cat, SampleHistory(), m, zap.NewNop()),
	}
}

func strPtr(s string) *string { return &s }

package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appconfig "echargefinder/backend/services/finder/internal/config"
)

func testConfig(t *testing.T, driver string) *appconfig.Config {
	t.Helper()
	cfg := appconfig.Default()
	cfg.Storage.Driver = driver
	cfg.Storage.Path = filepath.Join(t.TempDir(), "finder.db")
	cfg.Auth.BcryptCost = 4
	cfg.HTTP.Port = "127.0.0.1:0"
	require.NoError(t, cfg.Validate())
	return cfg
}

func registerAndLogin(t *testing.T, h http.Handler) {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"name":"Ann","email":"ann@x.com","password":"secret1"}`)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"ann@x.com","password":"secret1"}`)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestNewWithEachLocalDriver(t *testing.T) {
	mr := miniredis.RunT(t)

	for _, driver := range []string{appconfig.DriverMemory, appconfig.DriverSQLite, appconfig.DriverRedis} {
		t.Run(driver, func(t *testing.T) {
			cfg := testConfig(t, driver)
			cfg.Redis.Addr = mr.Addr()
			cfg.Redis.KeyPrefix = "test-" + driver + ":"

			a, err := New(context.Background(), cfg, zap.NewNop())
			require.NoError(t, err)
			t.Cleanup(a.Close)

			registerAndLogin(t, a.Handler())

			rec := httptest.NewRecorder()
			a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profile", nil))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), `"email":"ann@x.com"`)
		})
	}
}

func TestSQLiteStatePersistsAcrossRestarts(t *testing.T) {
	cfg := testConfig(t, appconfig.DriverSQLite)

	first, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	registerAndLogin(t, first.Handler())
	first.Close()

	second, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(second.Close)

	rec := httptest.NewRecorder()
	second.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profile", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Ann"`)
}

func TestNewFailsForUnreachableRedis(t *testing.T) {
	cfg := testConfig(t, appconfig.DriverRedis)
	cfg.Redis.Addr = "127.0.0.1:1"

	_, err := New(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestNewLoadsCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stations.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`stations:
  - id: 7
    name: Harbor Charge
    area: Harbor
    address: 1 Pier Rd
    type: DC Fast
    speed: 100
    price: 0.40
    dist: 2.0
    total: 8
    available: 3
`), 0o600))

	cfg := testConfig(t, appconfig.DriverMemory)
	cfg.Catalog.File = path

	a, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(a.Close)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stations", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Harbor Charge")
	assert.Contains(t, rec.Body.String(), `"count":1`)
}

func TestNewRejectsMissingCatalogFile(t *testing.T) {
	cfg := testConfig(t, appconfig.DriverMemory)
	cfg.Catalog.File = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := New(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := testConfig(t, appconfig.DriverMemory)
	cfg.Simulator.IntervalMillis = 5

	a, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(a.Close)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}

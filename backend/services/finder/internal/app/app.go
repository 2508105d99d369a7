package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"echargefinder/backend/libs/db"
	libredis "echargefinder/backend/libs/redis"
	"echargefinder/backend/services/finder/internal/catalog"
	appconfig "echargefinder/backend/services/finder/internal/config"
	httpserver "echargefinder/backend/services/finder/internal/http"
	"echargefinder/backend/services/finder/internal/http/handlers"
	"echargefinder/backend/services/finder/internal/http/middleware"
	"echargefinder/backend/services/finder/internal/metrics"
	"echargefinder/backend/services/finder/internal/password"
	"echargefinder/backend/services/finder/internal/repository"
	"echargefinder/backend/services/finder/internal/service"
	"echargefinder/backend/services/finder/internal/storage"
	"echargefinder/backend/services/finder/internal/ws"
)

// App wires dependencies for the finder service.
type App struct {
	cfg       *appconfig.Config
	kv        storage.KV
	catalog   *catalog.Catalog
	simulator *service.Simulator
	hub       *ws.Hub
	handler   http.Handler
	server    *httpserver.Server
	logger    *zap.Logger

	cancelFeed context.CancelFunc
}

// New builds application graph.
func New(ctx context.Context, cfg *appconfig.Config, logger *zap.Logger) (*App, error) {
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	kv, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	authSvc := service.NewAuthService(
		repository.NewUserRepository(kv),
		repository.NewSessionRepository(kv),
		password.NewBcryptHasher(cfg.Auth.BcryptCost),
		m,
		logger,
	)
	profileSvc := service.NewProfileService(repository.NewFavoritesRepository(kv), cat, service.SampleHistory(), m, logger)

	hub := ws.NewHub(logger)
	simulator := service.NewSimulator(cat, cfg.TickInterval(), cfg.Simulator.MaxDelta, logger)
	simulator.Subscribe(hub)
	simulator.Subscribe(m)

	feedCtx, cancelFeed := context.WithCancel(context.Background())
	feed := ws.NewServer(feedCtx, hub, cat, cfg.WSWriteTimeout(), logger)

	routes := httpserver.Routes{
		Health:         handlers.NewHealthHandler(),
		Stations:       handlers.NewStationsHandler(cat),
		StationsFeed:   feed.HandleWS,
		Register:       handlers.NewRegisterHandler(authSvc),
		Login:          handlers.NewLoginHandler(authSvc),
		Logout:         handlers.NewLogoutHandler(authSvc),
		Profile:        handlers.NewProfileHandler(authSvc),
		UpdateProfile:  handlers.NewUpdateProfileHandler(authSvc),
		Favorites:      handlers.NewFavoritesHandler(authSvc, profileSvc),
		ToggleFavorite: handlers.NewToggleFavoriteHandler(authSvc, profileSvc),
		History:        handlers.NewHistoryHandler(authSvc, profileSvc),
		Metrics:        m.Handler(),
	}

	router := httpserver.NewRouter(routes)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger,
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
	)

	return &App{
		cfg:        cfg,
		kv:         kv,
		catalog:    cat,
		simulator:  simulator,
		hub:        hub,
		handler:    router,
		server:     server,
		logger:     logger,
		cancelFeed: cancelFeed,
	}, nil
}

// Run starts the simulator, the stations feed and the HTTP server and blocks until ctx is
// cancelled or one of them fails.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.hub.Run(gctx)
		return nil
	})

	if a.cfg.Simulator.Disabled {
		a.logger.Info("availability simulator disabled")
	} else {
		g.Go(func() error {
			if err := a.simulator.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		return a.server.Run(gctx)
	})

	return g.Wait()
}

// Handler exposes the router without middleware.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Close releases acquired resources.
func (a *App) Close() {
	a.cancelFeed()
	if a.kv != nil {
		if err := a.kv.Close(); err != nil {
			a.logger.Warn("failed to close storage", zap.Error(err))
		}
	}
}

func loadCatalog(cfg *appconfig.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.File == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.LoadFile(cfg.Catalog.File)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

func openStore(ctx context.Context, cfg *appconfig.Config, logger *zap.Logger) (storage.KV, error) {
	logger.Info("opening storage", zap.String("driver", cfg.Storage.Driver))

	switch cfg.Storage.Driver {
	case appconfig.DriverMemory:
		return storage.NewMemory(), nil
	case appconfig.DriverSQLite:
		sqlDB, err := db.NewSQLiteDB(ctx, cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		kv, err := storage.NewSQLiteStore(ctx, sqlDB)
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		return kv, nil
	case appconfig.DriverRedis:
		client, err := libredis.NewRedisClient(ctx, libredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return storage.NewRedisStore(client, cfg.Redis.KeyPrefix), nil
	case appconfig.DriverPostgres:
		sqlDB, err := db.NewPostgresDB(ctx, cfg.Storage.DSN)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		kv, err := storage.NewPostgresStore(ctx, sqlDB)
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		return kv, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

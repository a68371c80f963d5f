package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/casefile"
	"github.com/aretw0/casefile/internal/config"
	"github.com/aretw0/casefile/pkg/adapters/file"
	httpadapter "github.com/aretw0/casefile/pkg/adapters/http"
	"github.com/aretw0/casefile/pkg/adapters/memory"
	"github.com/aretw0/casefile/pkg/adapters/redis"
	"github.com/aretw0/casefile/pkg/adapters/sqlite"
	"github.com/aretw0/casefile/pkg/observability"
	"github.com/aretw0/casefile/pkg/persistence/middleware"
	"github.com/aretw0/casefile/pkg/ports"
)

// App is a fully wired engine with the resources it holds.
type App struct {
	Engine  *casefile.Engine
	Content *memory.ContentStore
	Store   ports.SessionStore
	Metrics *observability.Metrics
	Streams *httpadapter.StreamManager

	health  func(context.Context) error
	closers []func() error
}

// Build wires content, session store, locker and hooks from cfg.
func Build(cfg config.Config, logger *slog.Logger) (*App, error) {
	content, err := LoadContent(cfg.ContentPath)
	if err != nil {
		return nil, err
	}

	app := &App{
		Content: content,
		Metrics: observability.NewMetrics(),
		Streams: httpadapter.NewStreamManager(logger),
		health:  func(context.Context) error { return nil },
	}

	opts := []casefile.Option{
		casefile.WithLogger(logger),
		casefile.WithLockTTL(cfg.LockTTL),
		casefile.WithLifecycleHooks(observability.Chain(
			app.Metrics.Hooks(),
			observability.AuditHooks(logger),
			app.Streams.Hooks(),
		)),
	}

	switch cfg.StoreDriver {
	case config.DriverMemory:
		app.Store = memory.NewStore()
	case config.DriverFile:
		app.Store = file.New(cfg.FileDir)
	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		app.Store = store
		app.health = store.Ping
		app.closers = append(app.closers, store.Close)
	case config.DriverRedis:
		var ropts []redis.Option
		if cfg.Redis.Prefix != "" {
			ropts = append(ropts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		if cfg.Redis.TTL > 0 {
			ropts = append(ropts, redis.WithTTL(cfg.Redis.TTL))
		}
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, ropts...)
		app.Store = store
		app.health = store.Ping
		app.closers = append(app.closers, store.Close)
		if cfg.Locking {
			opts = append(opts, casefile.WithLocker(redis.NewLocker(store.Client(), cfg.Redis.Prefix+"lock:")))
		}
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	if cfg.Locking && cfg.StoreDriver != config.DriverRedis {
		logger.Warn("distributed locking needs the redis driver, using in-process locks", "store", cfg.StoreDriver)
	}
	app.Store = middleware.Wrap(app.Store,
		middleware.NewInstrumentationMiddleware(app.Metrics.Registry()),
		middleware.NewLoggingMiddleware(logger),
	)
	opts = append(opts, casefile.WithStore(app.Store))

	app.Engine, err = casefile.New(content, opts...)
	if err != nil {
		app.Close()
		return nil, err
	}
	logger.Debug("engine ready", "store", cfg.StoreDriver, "content", contentLabel(cfg.ContentPath))
	return app, nil
}

// Health reports whether the session store is reachable.
func (a *App) Health(ctx context.Context) error {
	return a.health(ctx)
}

// Close releases store connections.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// LoadContent reads a catalog file or directory, or the built-in test investigation when path is empty.
func LoadContent(path string) (*memory.ContentStore, error) {
	if path == "" {
		return memory.SeedTestInvestigation(), nil
	}
	content, err := file.NewContentStore(path)
	if err != nil {
		return nil, fmt.Errorf("load content %s: %w", path, err)
	}
	return content, nil
}

func contentLabel(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}

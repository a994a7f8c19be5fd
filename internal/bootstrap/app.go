// Package bootstrap assembles repositories, services and the HTTP router.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"jobtracker-backend/internal/goals"
	"jobtracker-backend/internal/jobs"
	"jobtracker-backend/internal/performance"
	"jobtracker-backend/internal/services/health"
	"jobtracker-backend/internal/shared/auth"
	"jobtracker-backend/internal/shared/cache"
	"jobtracker-backend/internal/shared/config"
	"jobtracker-backend/internal/shared/server"
	"jobtracker-backend/internal/shared/storage/db"
	"jobtracker-backend/internal/shared/telemetry"
)

const snapshotCachePrefix = "jobtracker:"

// App holds shared dependencies.
type App struct {
	Config             config.Config
	Router             *gin.Engine
	DB                 *sql.DB
	Cache              *cache.RedisCache
	JobsService        *jobs.Service
	GoalsService       *goals.Service
	PerformanceService *performance.Service
}

// Build prepares dependencies and the router. Outside dev-like environments
// a missing or unreachable database is fatal.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	secret, err := auth.ResolveSecret(cfg.JWTSecret, cfg.Env)
	if err != nil {
		return nil, err
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	redisCache, err := buildCache(ctx, cfg)
	if err != nil {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}

	app := &App{Config: cfg, DB: sqlDB, Cache: redisCache}
	buildServices(app)

	checks := map[string]health.Pinger{}
	if sqlDB != nil {
		checks["database"] = sqlDB
	}
	if redisCache != nil {
		checks["redis"] = redisCache
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:             cfg,
		Secret:             secret,
		JobsHandler:        jobs.NewHandler(app.JobsService),
		GoalsHandler:       goals.NewHandler(app.GoalsService),
		PerformanceHandler: performance.NewHandler(app.PerformanceService),
		Health:             health.NewService(checks),
	})
	return app, nil
}

// Close releases the database and cache connections.
func (a *App) Close() error {
	var firstErr error
	if a.Cache != nil {
		firstErr = a.Cache.Close()
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if cfg.DatabaseURL == "" {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.db_fallback", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.db_fallback", map[string]any{"error": err})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildCache(ctx context.Context, cfg config.Config) (*cache.RedisCache, error) {
	if cfg.RedisURL == "" || cfg.SnapshotCacheTTL <= 0 {
		return nil, nil
	}
	c, err := cache.NewRedis(ctx, cfg.RedisURL, snapshotCachePrefix)
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.cache_disabled", map[string]any{"error": err})
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func buildServices(app *App) {
	var jobRepo jobs.Repo
	var goalRepo goals.Repo
	if app.DB != nil {
		jobRepo = &jobs.PGRepo{DB: app.DB}
		goalRepo = &goals.PGRepo{DB: app.DB}
	} else {
		jobRepo = jobs.NewMemoryRepo()
		goalRepo = goals.NewMemoryRepo()
	}

	app.JobsService = jobs.NewService(jobRepo)
	app.GoalsService = goals.NewService(goalRepo)
	app.PerformanceService = &performance.Service{
		Jobs:     app.JobsService.Repo,
		Goals:    app.GoalsService,
		CacheTTL: app.Config.SnapshotCacheTTL,
	}
	// Leave the interface nil when Redis is off.
	if app.Cache != nil {
		app.PerformanceService.Cache = app.Cache
	}
}

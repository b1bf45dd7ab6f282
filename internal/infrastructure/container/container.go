// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/platewise/platewise/internal/application/graph"
	"github.com/platewise/platewise/internal/application/nutrition"
	"github.com/platewise/platewise/internal/application/planner"
	"github.com/platewise/platewise/internal/application/tracking"
	"github.com/platewise/platewise/internal/domain/food"
	"github.com/platewise/platewise/internal/infrastructure/cache"
	"github.com/platewise/platewise/internal/infrastructure/config"
	"github.com/platewise/platewise/internal/infrastructure/http/server"
	"github.com/platewise/platewise/internal/infrastructure/monitoring"
	gormRepo "github.com/platewise/platewise/internal/infrastructure/persistence/gorm"
	"github.com/platewise/platewise/internal/infrastructure/persistence/memory"
	"github.com/platewise/platewise/internal/infrastructure/persistence/postgres"
	redisRepo "github.com/platewise/platewise/internal/infrastructure/persistence/redis"
	"github.com/platewise/platewise/internal/infrastructure/persistence/sqlite"
	"github.com/platewise/platewise/internal/ports/inbound"
	"github.com/platewise/platewise/internal/ports/outbound"
	"github.com/platewise/platewise/pkg/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	MonitoringModule,
	DatabaseModule,
	CacheModule,
	RepositoryModule,
	EngineModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// MonitoringModule provides Prometheus metrics
var MonitoringModule = fx.Provide(
	monitoring.New,
)

// DatabaseModule provides the GORM database connection for the
// configured driver
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		switch cfg.Database.Driver {
		case "postgres":
			db, err := postgres.Connect(cfg, log)
			if err != nil {
				return nil, err
			}
			if cfg.Database.AutoMigrate {
				if err := gormRepo.Migrate(db); err != nil {
					return nil, err
				}
			}
			return db, nil

		case "sqlite":
			dbPath := ""
			if cfg.Database.Database != "" {
				dbPath = cfg.Database.Database + ".db"
			}

			logLevel := gormLogger.Silent
			if cfg.App.Debug {
				logLevel = gormLogger.Info
			}

			db, err := sqlite.SetupDatabase(dbPath, logLevel)
			if err != nil {
				return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
			}

			log.Info("Connected to SQLite database",
				zap.String("path", dbPath),
				zap.Bool("in_memory", dbPath == ""),
			)
			return db, nil

		default:
			return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
		}
	},
)

// CacheModule provides the byte-level cache repository, Redis when
// enabled and in-memory otherwise
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (outbound.CacheRepository, error) {
		if !cfg.Redis.Enabled {
			log.Info("Using in-memory cache")
			return memory.NewCacheRepository(), nil
		}

		client, err := redisRepo.NewClient(cfg)
		if err != nil {
			return nil, err
		}
		log.Info("Connected to Redis", zap.String("addr", cfg.RedisAddr()))
		return redisRepo.NewCacheRepository(client, log), nil
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	fx.Annotate(
		gormRepo.NewFoodItemRepository,
		fx.As(new(outbound.FoodItemRepository)),
	),
	fx.Annotate(
		gormRepo.NewPlanRepository,
		fx.As(new(outbound.PlanRepository)),
	),
)

// EngineModule provides the graph loading and flattening machinery
var EngineModule = fx.Provide(
	func(cfg *config.Config) *cache.Store[*food.GraphContext] {
		return cache.NewStore[*food.GraphContext]("graph_context", cfg.Cache.GraphContextTTL, cfg.Cache.MaxEntries)
	},
	func(cfg *config.Config) *cache.Store[*food.Flattened] {
		return cache.NewStore[*food.Flattened]("flatten", cfg.Cache.FlattenTTL, cfg.Cache.MaxEntries)
	},
	graph.NewLoader,
	graph.NewResolver,
	nutrition.NewAggregator,
	func(
		loader *graph.Loader,
		resolver *graph.Resolver,
		aggregator *nutrition.Aggregator,
		results *cache.Store[*food.Flattened],
		metrics *monitoring.Metrics,
		log *zap.Logger,
		cfg *config.Config,
	) *graph.Engine {
		return graph.NewEngine(loader, resolver, aggregator, results, metrics, log, cfg.Engine.TopMicronutrients)
	},
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	func(
		loader *graph.Loader,
		engine *graph.Engine,
		aggregator *nutrition.Aggregator,
		plans outbound.PlanRepository,
		metrics *monitoring.Metrics,
		log *zap.Logger,
		cfg *config.Config,
	) *planner.Service {
		return planner.NewService(loader, engine, aggregator, plans, metrics, log, planner.Options{
			FanOutLimit:   cfg.Engine.FanOutLimit,
			BatchEntryCap: cfg.Engine.BatchEntryCap,
			TopN:          cfg.Engine.TopMicronutrients,
		})
	},
	func(
		loader *graph.Loader,
		engine *graph.Engine,
		plannerService *planner.Service,
		cacheRepo outbound.CacheRepository,
		log *zap.Logger,
		cfg *config.Config,
	) inbound.TrackingService {
		return tracking.NewService(loader, engine, plannerService, cacheRepo, log, cfg.Cache.DailyStatsTTL)
	},
)

// HTTPModule provides the HTTP server
var HTTPModule = fx.Provide(
	server.NewServer,
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	srv *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting Platewise application",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := srv.Start(); err != nil {
					log.Error("HTTP server stopped", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Platewise application")

			if err := srv.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			sqlDB, err := db.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()
			return nil
		},
	})
}

// Package tracking provides the application facade implementing the
// nutrition-tracking use cases.
package tracking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/platewise/platewise/internal/application/graph"
	"github.com/platewise/platewise/internal/application/planner"
	"github.com/platewise/platewise/internal/domain/food"
	"github.com/platewise/platewise/internal/domain/plan"
	"github.com/platewise/platewise/internal/ports/inbound"
	"github.com/platewise/platewise/internal/ports/outbound"
)

const dailyCachePrefix = "daily:"

// Service implements inbound.TrackingService on top of the graph
// engine and planner, adding byte-level caching of daily stats.
type Service struct {
	loader   *graph.Loader
	engine   *graph.Engine
	planner  *planner.Service
	cache    outbound.CacheRepository
	logger   *zap.Logger
	dailyTTL time.Duration
}

// NewService creates the tracking facade.
func NewService(
	loader *graph.Loader,
	engine *graph.Engine,
	plannerService *planner.Service,
	cacheRepo outbound.CacheRepository,
	logger *zap.Logger,
	dailyTTL time.Duration,
) inbound.TrackingService {
	return &Service{
		loader:   loader,
		engine:   engine,
		planner:  plannerService,
		cache:    cacheRepo,
		logger:   logger.Named("tracking-service"),
		dailyTTL: dailyTTL,
	}
}

// Flatten resolves a recipe into its quantified leaf ingredients.
func (s *Service) Flatten(ctx context.Context, recipeID string, userID uuid.UUID, scaleFactor float64) (*food.Flattened, error) {
	return s.engine.Flatten(ctx, recipeID, userID, scaleFactor)
}

// GetDailyStats returns one day's aggregated nutrition, served from the
// byte cache when fresh. Cache failures fall through to recomputation.
func (s *Service) GetDailyStats(ctx context.Context, userID uuid.UUID, date string, includeSupplements, includePlanned bool) (*plan.DailyStats, error) {
	key := dailyKey(userID, date, includeSupplements, includePlanned)

	if data, err := s.cache.Get(ctx, key); err == nil && data != nil {
		var cached plan.DailyStats
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
		s.logger.Warn("Corrupt daily stats cache entry, recomputing", zap.String("key", key))
	}

	stats, err := s.planner.DailyStats(ctx, userID, date, includeSupplements, includePlanned)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(stats); err == nil {
		if err := s.cache.Set(ctx, key, data, s.dailyTTL); err != nil {
			s.logger.Warn("Failed to cache daily stats", zap.String("key", key), zap.Error(err))
		}
	}

	return stats, nil
}

// GetAnalytics computes range analytics over [startDate, endDate].
func (s *Service) GetAnalytics(ctx context.Context, userID uuid.UUID, startDate, endDate string) (*plan.RangeAnalytics, error) {
	return s.planner.Analytics(ctx, userID, startDate, endDate)
}

// ComputeBatchPrep aggregates a bounded set of plan entries for batch
// cooking.
func (s *Service) ComputeBatchPrep(ctx context.Context, userID uuid.UUID, entryIDs []uuid.UUID) (*plan.BatchPrepResult, error) {
	return s.planner.BatchPrep(ctx, userID, entryIDs)
}

// ClearCaches invalidates the graph context, flatten result and daily
// stats caches for one user, or globally when userID is nil.
func (s *Service) ClearCaches(ctx context.Context, userID *uuid.UUID) error {
	s.loader.Invalidate(userID)
	s.engine.InvalidateResults(userID)

	prefix := dailyCachePrefix
	if userID != nil {
		prefix = dailyCachePrefix + userID.String() + ":"
	}
	removed, err := s.cache.DeleteByPrefix(ctx, prefix)
	if err != nil {
		s.logger.Warn("Failed to clear daily stats cache", zap.Error(err))
		return err
	}

	s.logger.Info("Caches cleared",
		zap.Bool("global", userID == nil),
		zap.Int("daily_entries_removed", removed),
	)
	return nil
}

// CacheStats reports cache occupancy and hit counters.
func (s *Service) CacheStats(ctx context.Context) (*inbound.CacheStats, error) {
	graphStats := s.loader.CacheStats()
	flattenStats := s.engine.ResultCacheStats()
	return &inbound.CacheStats{
		GraphContext: inbound.CacheBucketStats{
			Entries:   graphStats.Entries,
			Hits:      graphStats.Hits,
			Misses:    graphStats.Misses,
			Evictions: graphStats.Evictions,
		},
		Flatten: inbound.CacheBucketStats{
			Entries:   flattenStats.Entries,
			Hits:      flattenStats.Hits,
			Misses:    flattenStats.Misses,
			Evictions: flattenStats.Evictions,
		},
	}, nil
}

func dailyKey(userID uuid.UUID, date string, includeSupplements, includePlanned bool) string {
	return fmt.Sprintf("%s%s:%s:%t:%t", dailyCachePrefix, userID, date, includeSupplements, includePlanned)
}

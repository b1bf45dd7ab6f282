// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
package inbound

import (
	"context"

	"github.com/google/uuid"

	"github.com/platewise/platewise/internal/domain/food"
	"github.com/platewise/platewise/internal/domain/plan"
)

// CacheBucketStats is a snapshot of one cache's counters.
type CacheBucketStats struct {
	Entries   int   `json:"entries"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
}

// CacheStats is the operational cache introspection result.
type CacheStats struct {
	GraphContext CacheBucketStats `json:"graph_context"`
	Flatten      CacheBucketStats `json:"flatten"`
}

// TrackingService is the nutrition-tracking use-case surface exposed to
// upstream collaborators: planning, grocery-list generation, day/range
// nutrition endpoints, and batch-prep compute.
type TrackingService interface {
	// Flatten resolves a recipe's graph into its quantified leaf
	// ingredients and aggregated nutrition at the given serving
	// multiplier.
	Flatten(ctx context.Context, recipeID string, userID uuid.UUID, scaleFactor float64) (*food.Flattened, error)

	// GetDailyStats aggregates one day's consumed (or planned) entries
	// and supplements into nutrition totals and RDA scores.
	GetDailyStats(ctx context.Context, userID uuid.UUID, date string, includeSupplements, includePlanned bool) (*plan.DailyStats, error)

	// GetAnalytics averages and trends daily stats over a date range.
	GetAnalytics(ctx context.Context, userID uuid.UUID, startDate, endDate string) (*plan.RangeAnalytics, error)

	// ComputeBatchPrep groups the given plan entries by meal, flattens
	// each unique meal once, and aggregates ingredients across all
	// occurrences. At most 100 entries per call.
	ComputeBatchPrep(ctx context.Context, userID uuid.UUID, entryIDs []uuid.UUID) (*plan.BatchPrepResult, error)

	// ClearCaches invalidates cached graph contexts, flatten results
	// and daily stats, for one user or globally when userID is nil.
	ClearCaches(ctx context.Context, userID *uuid.UUID) error

	// CacheStats reports cache occupancy and hit counters.
	CacheStats(ctx context.Context) (*CacheStats, error)
}

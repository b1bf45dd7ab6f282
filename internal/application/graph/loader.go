// Package graph implements the recipe-graph loading, canonical
// resolution and flattening engine.
package graph

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/platewise/platewise/internal/domain/food"
	"github.com/platewise/platewise/internal/infrastructure/cache"
	"github.com/platewise/platewise/internal/infrastructure/monitoring"
	"github.com/platewise/platewise/internal/ports/outbound"
	"github.com/platewise/platewise/pkg/errors"
)

// Loader builds indexed graph contexts from the food item store and
// caches them per owner scope with a TTL. The loader is a pure function
// of current store state, so concurrent reloads for the same key are
// idempotent and last write wins.
type Loader struct {
	store    outbound.FoodItemRepository
	contexts *cache.Store[*food.GraphContext]
	metrics  *monitoring.Metrics
	logger   *zap.Logger
}

// NewLoader creates a graph context loader.
func NewLoader(
	store outbound.FoodItemRepository,
	contexts *cache.Store[*food.GraphContext],
	metrics *monitoring.Metrics,
	logger *zap.Logger,
) *Loader {
	return &Loader{
		store:    store,
		contexts: contexts,
		metrics:  metrics,
		logger:   logger.Named("graph-loader"),
	}
}

// ScopeKey derives the cache key for an owner scope. The primary owner
// leads so per-user invalidation can match on prefix.
func ScopeKey(primary uuid.UUID, extra []uuid.UUID) string {
	if len(extra) == 0 {
		return primary.String()
	}
	ids := make([]string, 0, len(extra))
	for _, id := range extra {
		ids = append(ids, id.String())
	}
	sort.Strings(ids)
	return primary.String() + "|" + strings.Join(ids, "|")
}

// Load returns the graph context for the owner scope, from cache when
// fresh. Items and edges are load-bearing: a failure there aborts the
// load. The canonical table, recipe nodes and preferences degrade to
// empty maps on failure so one unreachable sub-table never takes the
// whole request down.
func (l *Loader) Load(ctx context.Context, primary uuid.UUID, extra ...uuid.UUID) (*food.GraphContext, error) {
	key := ScopeKey(primary, extra)
	if gc, ok := l.contexts.Get(key); ok {
		l.metrics.ObserveCache(l.contexts.Name(), true)
		return gc, nil
	}
	l.metrics.ObserveCache(l.contexts.Name(), false)

	owners := append([]uuid.UUID{primary}, extra...)

	items, err := l.store.FindVisibleItems(ctx, owners)
	if err != nil {
		return nil, errors.NewStoreUnavailableError("load food items", err)
	}
	edges, err := l.store.FindVisibleEdges(ctx, owners)
	if err != nil {
		return nil, errors.NewStoreUnavailableError("load recipe edges", err)
	}

	nodes, err := l.store.FindVisibleNodes(ctx, owners)
	if err != nil {
		l.logger.Warn("Recipe node load failed, continuing without nodes",
			zap.String("scope", key),
			zap.Error(err),
		)
		nodes = nil
	}
	canonicals, err := l.store.FindCanonicalIngredients(ctx)
	if err != nil {
		l.logger.Warn("Canonical ingredient load failed, continuing with empty table",
			zap.String("scope", key),
			zap.Error(err),
		)
		canonicals = nil
	}
	preferences, err := l.store.FindPreferences(ctx, primary)
	if err != nil {
		l.logger.Warn("Ingredient preference load failed, continuing without preferences",
			zap.String("scope", key),
			zap.Error(err),
		)
		preferences = nil
	}

	gc := food.NewGraphContext(items, edges, nodes, canonicals, preferences)
	l.contexts.Set(key, gc)

	l.logger.Debug("Graph context loaded",
		zap.String("scope", key),
		zap.Int("items", len(gc.Items)),
		zap.Int("parents", len(gc.EdgesByParent)),
		zap.Int("canonicals", len(gc.Canonicals)),
	)

	return gc, nil
}

// Invalidate drops cached contexts whose primary owner matches, or all
// contexts when owner is nil.
func (l *Loader) Invalidate(owner *uuid.UUID) {
	if owner == nil {
		l.contexts.Purge()
		return
	}
	l.contexts.DeletePrefix(owner.String())
}

// CacheStats exposes the context cache counters.
func (l *Loader) CacheStats() cache.Stats {
	return l.contexts.Stats()
}

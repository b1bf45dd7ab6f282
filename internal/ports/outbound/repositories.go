// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/platewise/platewise/internal/domain/food"
	"github.com/platewise/platewise/internal/domain/plan"
)

// FoodItemRepository reads recipe-graph records from the food item
// store. Visibility for items and edges follows the owner rule:
// owned by one of ownerIDs, public, or system-owned (nil owner).
type FoodItemRepository interface {
	FindVisibleItems(ctx context.Context, ownerIDs []uuid.UUID) ([]food.Item, error)
	FindVisibleEdges(ctx context.Context, ownerIDs []uuid.UUID) ([]food.Edge, error)
	FindVisibleNodes(ctx context.Context, ownerIDs []uuid.UUID) ([]food.Node, error)
	FindCanonicalIngredients(ctx context.Context) ([]food.CanonicalIngredient, error)
	FindPreferences(ctx context.Context, userID uuid.UUID) ([]food.Preference, error)
}

// PlanRepository reads meal-plan records.
type PlanRepository interface {
	FindEntriesByDate(ctx context.Context, userID uuid.UUID, date string) ([]plan.Entry, error)
	FindEntriesByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]plan.Entry, error)
	FindConsumedEntryIDs(ctx context.Context, userID uuid.UUID, date string) (map[uuid.UUID]bool, error)
	FindActiveSupplements(ctx context.Context, userID uuid.UUID) ([]plan.Supplement, error)
}

// CacheRepository defines the interface for byte-level caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	DeleteByPrefix(ctx context.Context, prefix string) (int, error)
}

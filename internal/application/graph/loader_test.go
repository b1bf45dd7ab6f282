package graph

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/platewise/platewise/internal/domain/food"
	"github.com/platewise/platewise/internal/infrastructure/cache"
	apperrors "github.com/platewise/platewise/pkg/errors"
)

func newTestLoader(store *fakeFoodStore, ttl time.Duration) *Loader {
	contexts := cache.NewStore[*food.GraphContext]("graph_context", ttl, 100)
	return NewLoader(store, contexts, nil, zap.NewNop())
}

func TestLoaderIndexesRecords(t *testing.T) {
	store := &fakeFoodStore{
		items: []food.Item{
			{ID: "meal", Name: "Meal", Kind: food.KindMeal},
			{ID: "rice", Name: "Rice", Kind: food.KindIngredient},
		},
		edges: []food.Edge{
			{ParentID: "meal", ChildID: strPtr("rice"), AmountG: 100, SortOrder: 1},
			{ParentID: "meal", CanonicalID: strPtr("salt"), AmountG: 2, SortOrder: 0},
		},
		canonicals: []food.CanonicalIngredient{{ID: "salt", Name: "Salt"}},
	}
	loader := newTestLoader(store, time.Minute)

	gc, err := loader.Load(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Len(t, gc.Items, 2)
	require.Len(t, gc.EdgesByParent["meal"], 2)
	// Siblings ordered by sort order.
	assert.Equal(t, 0, gc.EdgesByParent["meal"][0].SortOrder)
	assert.Equal(t, 1, gc.EdgesByParent["meal"][1].SortOrder)
	assert.Contains(t, gc.Canonicals, "salt")
}

func TestLoaderItemFailureIsFatal(t *testing.T) {
	store := &fakeFoodStore{itemsErr: errors.New("connection refused")}
	loader := newTestLoader(store, time.Minute)

	_, err := loader.Load(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeStoreUnavailable))
}

func TestLoaderEdgeFailureIsFatal(t *testing.T) {
	store := &fakeFoodStore{edgesErr: errors.New("connection refused")}
	loader := newTestLoader(store, time.Minute)

	_, err := loader.Load(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeStoreUnavailable))
}

func TestLoaderSubTableFailuresDegrade(t *testing.T) {
	store := &fakeFoodStore{
		items:    []food.Item{{ID: "meal", Name: "Meal", Kind: food.KindMeal}},
		nodesErr: errors.New("nodes table locked"),
		canonErr: errors.New("canonicals table locked"),
		prefErr:  errors.New("preferences table locked"),
	}
	loader := newTestLoader(store, time.Minute)

	gc, err := loader.Load(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, gc.Nodes)
	assert.Empty(t, gc.Canonicals)
	assert.Empty(t, gc.Preferences)
	assert.Len(t, gc.Items, 1)
}

func TestLoaderCachesPerScope(t *testing.T) {
	store := &fakeFoodStore{items: []food.Item{{ID: "meal", Kind: food.KindMeal}}}
	loader := newTestLoader(store, time.Minute)
	userID := uuid.New()

	_, err := loader.Load(context.Background(), userID)
	require.NoError(t, err)
	_, err = loader.Load(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, store.itemLoads)

	// A different user misses.
	_, err = loader.Load(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 2, store.itemLoads)
}

func TestLoaderTTLExpiry(t *testing.T) {
	store := &fakeFoodStore{items: []food.Item{{ID: "meal", Kind: food.KindMeal}}}
	loader := newTestLoader(store, 10*time.Millisecond)
	userID := uuid.New()

	_, err := loader.Load(context.Background(), userID)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = loader.Load(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 2, store.itemLoads)
}

func TestLoaderInvalidate(t *testing.T) {
	store := &fakeFoodStore{items: []food.Item{{ID: "meal", Kind: food.KindMeal}}}
	loader := newTestLoader(store, time.Minute)
	alice := uuid.New()
	bob := uuid.New()

	_, _ = loader.Load(context.Background(), alice)
	_, _ = loader.Load(context.Background(), bob)
	require.Equal(t, 2, store.itemLoads)

	loader.Invalidate(&alice)
	_, _ = loader.Load(context.Background(), alice)
	assert.Equal(t, 3, store.itemLoads)
	_, _ = loader.Load(context.Background(), bob)
	assert.Equal(t, 3, store.itemLoads)

	loader.Invalidate(nil)
	_, _ = loader.Load(context.Background(), bob)
	assert.Equal(t, 4, store.itemLoads)
}

func TestScopeKey(t *testing.T) {
	primary := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	a := uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
	b := uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")

	assert.Equal(t, primary.String(), ScopeKey(primary, nil))
	// Extra owners are sorted, so argument order does not matter.
	assert.Equal(t, ScopeKey(primary, []uuid.UUID{a, b}), ScopeKey(primary, []uuid.UUID{b, a}))
}

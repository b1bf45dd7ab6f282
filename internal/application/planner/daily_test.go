package planner

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/platewise/platewise/internal/application/graph"
	"github.com/platewise/platewise/internal/application/nutrition"
	"github.com/platewise/platewise/internal/domain/food"
	"github.com/platewise/platewise/internal/domain/plan"
	"github.com/platewise/platewise/internal/infrastructure/cache"
	apperrors "github.com/platewise/platewise/pkg/errors"
)

type fakeFoodStore struct {
	items      []food.Item
	edges      []food.Edge
	nodes      []food.Node
	canonicals []food.CanonicalIngredient
	itemsErr   error
}

func (f *fakeFoodStore) FindVisibleItems(ctx context.Context, ownerIDs []uuid.UUID) ([]food.Item, error) {
	return f.items, f.itemsErr
}

func (f *fakeFoodStore) FindVisibleEdges(ctx context.Context, ownerIDs []uuid.UUID) ([]food.Edge, error) {
	return f.edges, nil
}

func (f *fakeFoodStore) FindVisibleNodes(ctx context.Context, ownerIDs []uuid.UUID) ([]food.Node, error) {
	return f.nodes, nil
}

func (f *fakeFoodStore) FindCanonicalIngredients(ctx context.Context) ([]food.CanonicalIngredient, error) {
	return f.canonicals, nil
}

func (f *fakeFoodStore) FindPreferences(ctx context.Context, userID uuid.UUID) ([]food.Preference, error) {
	return nil, nil
}

type fakePlanStore struct {
	entriesByDate map[string][]plan.Entry
	entriesByID   map[uuid.UUID]plan.Entry
	consumed      map[string]map[uuid.UUID]bool
	supplements   []plan.Supplement

	entriesErr       error
	entriesErrByDate map[string]error
	consumedErr      error
	supErr           error
}

func (f *fakePlanStore) FindEntriesByDate(ctx context.Context, userID uuid.UUID, date string) ([]plan.Entry, error) {
	if f.entriesErr != nil {
		return nil, f.entriesErr
	}
	if err := f.entriesErrByDate[date]; err != nil {
		return nil, err
	}
	return f.entriesByDate[date], nil
}

func (f *fakePlanStore) FindEntriesByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]plan.Entry, error) {
	if f.entriesErr != nil {
		return nil, f.entriesErr
	}
	var entries []plan.Entry
	for _, id := range ids {
		if entry, ok := f.entriesByID[id]; ok && entry.UserID == userID {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (f *fakePlanStore) FindConsumedEntryIDs(ctx context.Context, userID uuid.UUID, date string) (map[uuid.UUID]bool, error) {
	if f.consumedErr != nil {
		return nil, f.consumedErr
	}
	if c, ok := f.consumed[date]; ok {
		return c, nil
	}
	return map[uuid.UUID]bool{}, nil
}

func (f *fakePlanStore) FindActiveSupplements(ctx context.Context, userID uuid.UUID) ([]plan.Supplement, error) {
	if f.supErr != nil {
		return nil, f.supErr
	}
	return f.supplements, nil
}

func strPtr(s string) *string { return &s }

func newTestService(t *testing.T, foods *fakeFoodStore, plans *fakePlanStore) *Service {
	t.Helper()
	logger := zap.NewNop()
	contexts := cache.NewStore[*food.GraphContext]("graph_context", time.Minute, 100)
	results := cache.NewStore[*food.Flattened]("flatten", time.Minute, 100)
	loader := graph.NewLoader(foods, contexts, nil, logger)
	aggregator := nutrition.NewAggregator(logger)
	engine := graph.NewEngine(loader, graph.NewResolver(logger), aggregator, results, nil, logger, 10)
	return NewService(loader, engine, aggregator, plans, nil, logger, Options{})
}

// fixedNow pins the service clock so auto-consume classification is
// deterministic.
func fixedNow(s *Service, now time.Time) {
	s.now = func() time.Time { return now }
}

func TestDailyStatsInvalidDate(t *testing.T) {
	svc := newTestService(t, &fakeFoodStore{}, &fakePlanStore{})

	_, err := svc.DailyStats(context.Background(), uuid.New(), "not-a-date", true, false)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeBadRequest))
}

func TestDailyStatsLeafEntryGrams(t *testing.T) {
	userID := uuid.New()
	foods := &fakeFoodStore{
		items: []food.Item{
			{ID: "apple", Name: "Apple", Kind: food.KindIngredient, CaloriesPer100g: 52},
		},
	}
	plans := &fakePlanStore{
		entriesByDate: map[string][]plan.Entry{
			"2026-08-28": {{
				ID: uuid.New(), UserID: userID, Date: "2026-08-28",
				FoodItemID: "apple", ScaleFactor: 150, Logged: true,
			}},
		},
	}
	svc := newTestService(t, foods, plans)

	stats, err := svc.DailyStats(context.Background(), userID, "2026-08-28", false, false)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.EntryCount)
	assert.Equal(t, 1, stats.ConsumedCount)
	// Leaf entries carry grams: 150 g of apple at 52 kcal/100g.
	assert.InDelta(t, 78, stats.Totals.Calories, 1e-9)
}

func TestDailyStatsRecipeEntryServings(t *testing.T) {
	userID := uuid.New()
	foods := &fakeFoodStore{
		items: []food.Item{
			{ID: "meal", Name: "Meal", Kind: food.KindMeal},
			{ID: "rice", Name: "Rice", Kind: food.KindIngredient, CaloriesPer100g: 130},
		},
		edges: []food.Edge{{ParentID: "meal", ChildID: strPtr("rice"), AmountG: 100}},
	}
	plans := &fakePlanStore{
		entriesByDate: map[string][]plan.Entry{
			"2026-08-28": {{
				ID: uuid.New(), UserID: userID, Date: "2026-08-28",
				FoodItemID: "meal", ScaleFactor: 2, Logged: true,
			}},
		},
	}
	svc := newTestService(t, foods, plans)

	stats, err := svc.DailyStats(context.Background(), userID, "2026-08-28", false, false)
	require.NoError(t, err)
	// Two servings of a 100 g rice meal.
	assert.InDelta(t, 260, stats.Totals.Calories, 1e-9)
}

func TestDailyStatsConsumedClassification(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	today := "2026-08-28"

	ledgerID := uuid.New()
	loggedID := uuid.New()
	morningID := uuid.New()
	eveningID := uuid.New()

	entry := func(id uuid.UUID, date string, logged bool, scheduled time.Time) plan.Entry {
		return plan.Entry{
			ID: id, UserID: userID, Date: date, FoodItemID: "apple",
			ScaleFactor: 100, Logged: logged, ScheduledAt: scheduled,
		}
	}

	foods := &fakeFoodStore{
		items: []food.Item{{ID: "apple", Name: "Apple", Kind: food.KindIngredient, CaloriesPer100g: 52}},
	}
	plans := &fakePlanStore{
		entriesByDate: map[string][]plan.Entry{
			today: {
				entry(ledgerID, today, false, now.Add(4*time.Hour)),  // in ledger
				entry(loggedID, today, true, now.Add(4*time.Hour)),   // logged flag
				entry(morningID, today, false, now.Add(-time.Hour)),  // scheduled time passed
				entry(eveningID, today, false, now.Add(4*time.Hour)), // still upcoming
			},
		},
		consumed: map[string]map[uuid.UUID]bool{
			today: {ledgerID: true},
		},
	}
	svc := newTestService(t, foods, plans)
	fixedNow(svc, now)

	stats, err := svc.DailyStats(context.Background(), userID, today, false, false)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.EntryCount)
	assert.Equal(t, 3, stats.ConsumedCount)
	// Three consumed 100 g apples.
	assert.InDelta(t, 3*52, stats.Totals.Calories, 1e-9)
}

func TestDailyStatsPastDayAutoConsumed(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2026, 8, 28, 8, 0, 0, 0, time.UTC)

	foods := &fakeFoodStore{
		items: []food.Item{{ID: "apple", Name: "Apple", Kind: food.KindIngredient, CaloriesPer100g: 52}},
	}
	plans := &fakePlanStore{
		entriesByDate: map[string][]plan.Entry{
			"2026-08-27": {{
				ID: uuid.New(), UserID: userID, Date: "2026-08-27",
				FoodItemID: "apple", ScaleFactor: 100,
				ScheduledAt: time.Date(2026, 8, 27, 20, 0, 0, 0, time.UTC),
			}},
		},
	}
	svc := newTestService(t, foods, plans)
	fixedNow(svc, now)

	stats, err := svc.DailyStats(context.Background(), userID, "2026-08-27", false, false)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ConsumedCount)
}

func TestDailyStatsIncludePlanned(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2026, 8, 28, 8, 0, 0, 0, time.UTC)
	today := "2026-08-28"

	foods := &fakeFoodStore{
		items: []food.Item{{ID: "apple", Name: "Apple", Kind: food.KindIngredient, CaloriesPer100g: 52}},
	}
	plans := &fakePlanStore{
		entriesByDate: map[string][]plan.Entry{
			today: {{
				ID: uuid.New(), UserID: userID, Date: today,
				FoodItemID: "apple", ScaleFactor: 100,
				ScheduledAt: now.Add(6 * time.Hour),
			}},
		},
	}
	svc := newTestService(t, foods, plans)
	fixedNow(svc, now)

	consumedOnly, err := svc.DailyStats(context.Background(), userID, today, false, false)
	require.NoError(t, err)
	assert.Zero(t, consumedOnly.Totals.Calories)

	withPlanned, err := svc.DailyStats(context.Background(), userID, today, false, true)
	require.NoError(t, err)
	assert.InDelta(t, 52, withPlanned.Totals.Calories, 1e-9)
}

func TestDailyStatsUnknownItemDegrades(t *testing.T) {
	userID := uuid.New()
	plans := &fakePlanStore{
		entriesByDate: map[string][]plan.Entry{
			"2026-08-28": {{
				ID: uuid.New(), UserID: userID, Date: "2026-08-28",
				FoodItemID: "gone", ScaleFactor: 1, Logged: true,
			}},
		},
	}
	svc := newTestService(t, &fakeFoodStore{}, plans)

	stats, err := svc.DailyStats(context.Background(), userID, "2026-08-28", false, false)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.DegradedCount)
	assert.Zero(t, stats.Totals.Calories)
}

func TestDailyStatsSupplements(t *testing.T) {
	userID := uuid.New()
	foods := &fakeFoodStore{
		items: []food.Item{
			{ID: "creatine", Name: "Creatine", Kind: food.KindProduct, CaloriesPer100g: 0, ProteinPer100g: 0},
			{ID: "whey", Name: "Whey", Kind: food.KindProduct, CaloriesPer100g: 400, ProteinPer100g: 80},
		},
	}
	plans := &fakePlanStore{
		supplements: []plan.Supplement{
			{ID: uuid.New(), UserID: userID, FoodItemID: "whey", AmountG: 30, ServingCount: 2, Active: true},
			{ID: uuid.New(), UserID: userID, FoodItemID: "missing", AmountG: 5, ServingCount: 1, Active: true},
		},
	}
	svc := newTestService(t, foods, plans)

	stats, err := svc.DailyStats(context.Background(), userID, "2026-08-28", true, false)
	require.NoError(t, err)
	// 60 g of whey; the supplement with a missing item is skipped.
	assert.Equal(t, 1, stats.SupplementCount)
	assert.InDelta(t, 240, stats.Totals.Calories, 1e-9)
	assert.InDelta(t, 48, stats.Totals.Protein, 1e-9)

	without, err := svc.DailyStats(context.Background(), userID, "2026-08-28", false, false)
	require.NoError(t, err)
	assert.Zero(t, without.SupplementCount)
	assert.Zero(t, without.Totals.Calories)
}

func TestDailyStatsLedgerFailureFallsBackToFlags(t *testing.T) {
	userID := uuid.New()
	foods := &fakeFoodStore{
		items: []food.Item{{ID: "apple", Name: "Apple", Kind: food.KindIngredient, CaloriesPer100g: 52}},
	}
	plans := &fakePlanStore{
		entriesByDate: map[string][]plan.Entry{
			"2026-08-28": {{
				ID: uuid.New(), UserID: userID, Date: "2026-08-28",
				FoodItemID: "apple", ScaleFactor: 100, Logged: true,
			}},
		},
		consumedErr: context.DeadlineExceeded,
	}
	svc := newTestService(t, foods, plans)

	stats, err := svc.DailyStats(context.Background(), userID, "2026-08-28", false, false)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ConsumedCount)
}

func TestDailyStatsEntryLoadFailure(t *testing.T) {
	plans := &fakePlanStore{entriesErr: context.DeadlineExceeded}
	svc := newTestService(t, &fakeFoodStore{}, plans)

	_, err := svc.DailyStats(context.Background(), uuid.New(), "2026-08-28", false, false)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeStoreUnavailable))
}

func TestEstimateCalories(t *testing.T) {
	withBase := food.Item{BaseCalories: 450, CaloriesPer100g: 130}
	assert.InDelta(t, 900, estimateCalories(withBase, 2), 1e-9)

	densityOnly := food.Item{CaloriesPer100g: 130}
	assert.InDelta(t, 260, estimateCalories(densityOnly, 2), 1e-9)
}

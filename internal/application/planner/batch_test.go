package planner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewise/platewise/internal/domain/food"
	"github.com/platewise/platewise/internal/domain/plan"
	apperrors "github.com/platewise/platewise/pkg/errors"
)

// batchFixture is three plan entries of a rice meal and one of a
// rice-and-chicken bowl.
func batchFixture(userID uuid.UUID) (*fakeFoodStore, *fakePlanStore, []uuid.UUID) {
	foods := &fakeFoodStore{
		items: []food.Item{
			{ID: "rice-meal", Name: "Rice Meal", Kind: food.KindMeal},
			{ID: "bowl", Name: "Chicken Bowl", Kind: food.KindMeal},
			{ID: "rice", Name: "Rice", Kind: food.KindIngredient, CaloriesPer100g: 130},
			{ID: "chicken", Name: "Chicken", Kind: food.KindIngredient, CaloriesPer100g: 165},
		},
		edges: []food.Edge{
			{ParentID: "rice-meal", ChildID: strPtr("rice"), AmountG: 100},
			{ParentID: "bowl", ChildID: strPtr("rice"), AmountG: 50, SortOrder: 0},
			{ParentID: "bowl", ChildID: strPtr("chicken"), AmountG: 100, SortOrder: 1},
		},
		nodes: []food.Node{
			{FoodItemID: "rice-meal", PrepTimeMinutes: 10, CookTimeMinutes: 20},
			{FoodItemID: "bowl", PrepTimeMinutes: 5, CookTimeMinutes: 15},
		},
	}

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	byID := make(map[uuid.UUID]plan.Entry, len(ids))
	for i, id := range ids {
		itemID := "rice-meal"
		if i == 3 {
			itemID = "bowl"
		}
		byID[id] = plan.Entry{ID: id, UserID: userID, Date: "2026-08-28", FoodItemID: itemID, ScaleFactor: 1}
	}
	return foods, &fakePlanStore{entriesByID: byID}, ids
}

func TestBatchPrepValidation(t *testing.T) {
	svc := newTestService(t, &fakeFoodStore{}, &fakePlanStore{})
	userID := uuid.New()

	_, err := svc.BatchPrep(context.Background(), userID, nil)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidationFailed))

	over := make([]uuid.UUID, 101)
	for i := range over {
		over[i] = uuid.New()
	}
	_, err = svc.BatchPrep(context.Background(), userID, over)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeBatchLimitExceeded))
}

func TestBatchPrepGroupsAndScales(t *testing.T) {
	userID := uuid.New()
	foods, plans, ids := batchFixture(userID)
	svc := newTestService(t, foods, plans)

	result, err := svc.BatchPrep(context.Background(), userID, ids)
	require.NoError(t, err)

	assert.Equal(t, 2, result.UniqueMealCount)
	assert.Equal(t, 4, result.TotalMealCount)
	assert.Zero(t, result.SkippedMealCount)

	require.Len(t, result.Groups, 2)
	// Highest occurrence count sorts first.
	riceMeal := result.Groups[0]
	assert.Equal(t, "rice-meal", riceMeal.FoodItemID)
	assert.Equal(t, 3, riceMeal.Count)
	assert.Len(t, riceMeal.EntryIDs, 3)

	require.Len(t, riceMeal.SingleServing, 1)
	assert.InDelta(t, 100, riceMeal.SingleServing[0].AmountG, 1e-9)
	require.Len(t, riceMeal.Batch, 1)
	assert.InDelta(t, 300, riceMeal.Batch[0].AmountG, 1e-9)
	assert.InDelta(t, 130, riceMeal.PerServing.Calories, 1e-9)
	assert.InDelta(t, 390, riceMeal.Total.Calories, 1e-9)
	assert.Equal(t, 10, riceMeal.PrepTimeMinutes)

	bowl := result.Groups[1]
	assert.Equal(t, "bowl", bowl.FoodItemID)
	assert.Equal(t, 1, bowl.Count)

	// Prep and cook time sum once per unique meal.
	assert.Equal(t, 15, result.TotalPrepTimeMinutes)
	assert.Equal(t, 35, result.TotalCookTimeMinutes)
}

func TestBatchPrepMergesIngredientsAcrossMeals(t *testing.T) {
	userID := uuid.New()
	foods, plans, ids := batchFixture(userID)
	svc := newTestService(t, foods, plans)

	result, err := svc.BatchPrep(context.Background(), userID, ids)
	require.NoError(t, err)

	require.Len(t, result.Ingredients, 2)
	// 3x100 g from the rice meal plus 1x50 g from the bowl.
	rice := result.Ingredients[0]
	assert.Equal(t, "rice", rice.ID)
	assert.InDelta(t, 350, rice.TotalAmountG, 1e-9)
	assert.Equal(t, 4, rice.Servings)
	assert.ElementsMatch(t, []string{"Rice Meal", "Chicken Bowl"}, rice.Meals)

	chicken := result.Ingredients[1]
	assert.Equal(t, "chicken", chicken.ID)
	assert.InDelta(t, 100, chicken.TotalAmountG, 1e-9)
	assert.Equal(t, 1, chicken.Servings)
}

func TestBatchPrepSkipsUnresolvableMeal(t *testing.T) {
	userID := uuid.New()
	foods, plans, ids := batchFixture(userID)

	ghost := uuid.New()
	plans.entriesByID[ghost] = plan.Entry{
		ID: ghost, UserID: userID, Date: "2026-08-28", FoodItemID: "deleted-meal", ScaleFactor: 1,
	}
	svc := newTestService(t, foods, plans)

	result, err := svc.BatchPrep(context.Background(), userID, append(ids, ghost))
	require.NoError(t, err)
	assert.Equal(t, 3, result.UniqueMealCount)
	assert.Equal(t, 5, result.TotalMealCount)
	assert.Equal(t, 1, result.SkippedMealCount)
	assert.Len(t, result.Groups, 2)
}

func TestBatchPrepIgnoresOtherUsersEntries(t *testing.T) {
	userID := uuid.New()
	foods, plans, ids := batchFixture(userID)

	stranger := uuid.New()
	foreign := uuid.New()
	plans.entriesByID[foreign] = plan.Entry{
		ID: foreign, UserID: stranger, Date: "2026-08-28", FoodItemID: "rice-meal", ScaleFactor: 1,
	}
	svc := newTestService(t, foods, plans)

	result, err := svc.BatchPrep(context.Background(), userID, append(ids, foreign))
	require.NoError(t, err)
	assert.Equal(t, 4, result.TotalMealCount)
}

func TestBatchPrepEntryLoadFailure(t *testing.T) {
	plans := &fakePlanStore{entriesErr: context.DeadlineExceeded}
	svc := newTestService(t, &fakeFoodStore{}, plans)

	_, err := svc.BatchPrep(context.Background(), uuid.New(), []uuid.UUID{uuid.New()})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeStoreUnavailable))
}

package planner

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/platewise/platewise/internal/domain/food"
	"github.com/platewise/platewise/internal/domain/plan"
	"github.com/platewise/platewise/pkg/errors"
)

// BatchPrep groups the given plan entries by meal, flattens each unique
// meal exactly once, and aggregates ingredients, nutrition and timing
// across all occurrences. One meal's flatten failure excludes that meal
// and the rest of the batch still computes.
func (s *Service) BatchPrep(ctx context.Context, userID uuid.UUID, entryIDs []uuid.UUID) (*plan.BatchPrepResult, error) {
	if len(entryIDs) == 0 {
		return nil, errors.NewValidationError("no plan entries given")
	}
	if len(entryIDs) > s.opts.BatchEntryCap {
		return nil, errors.NewBatchLimitExceededError(len(entryIDs), s.opts.BatchEntryCap)
	}

	entries, err := s.plans.FindEntriesByIDs(ctx, userID, entryIDs)
	if err != nil {
		return nil, errors.NewStoreUnavailableError("load plan entries", err)
	}

	gc, err := s.loader.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Repeated identical meals collapse to one group; order of first
	// appearance keeps grouping deterministic before sorting.
	groupOrder := make([]string, 0, len(entries))
	entryGroups := make(map[string][]plan.Entry)
	for _, entry := range entries {
		if _, seen := entryGroups[entry.FoodItemID]; !seen {
			groupOrder = append(groupOrder, entry.FoodItemID)
		}
		entryGroups[entry.FoodItemID] = append(entryGroups[entry.FoodItemID], entry)
	}

	// Flatten each unique meal once, concurrently. Cost is
	// O(unique meals); per-occurrence totals are pure multiplication.
	flattened := make(map[string]*food.Flattened, len(groupOrder))
	var mu sync.Mutex

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.FanOutLimit)
	for _, itemID := range groupOrder {
		itemID := itemID
		g.Go(func() error {
			fl, err := s.engine.FlattenWithContext(gc, itemID, 1)
			if err != nil {
				s.logger.Warn("Flatten failed for batch meal, meal excluded",
					zap.String("food_item_id", itemID),
					zap.Error(err),
				)
				s.metrics.ObserveDegraded()
				return nil
			}
			mu.Lock()
			flattened[itemID] = fl
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "batch computation interrupted")
	}

	result := &plan.BatchPrepResult{
		UniqueMealCount: len(groupOrder),
		TotalMealCount:  len(entries),
	}

	global := make(map[string]*plan.BatchIngredient)

	for _, itemID := range groupOrder {
		groupEntries := entryGroups[itemID]
		fl, ok := flattened[itemID]
		if !ok {
			result.SkippedMealCount++
			continue
		}

		count := len(groupEntries)
		group := plan.BatchGroup{
			FoodItemID:      itemID,
			Name:            fl.RootName,
			Count:           count,
			SingleServing:   fl.Ingredients,
			Batch:           scaleIngredients(fl.Ingredients, float64(count)),
			PerServing:      fl.Nutrition,
			Total:           fl.Nutrition.Scaled(float64(count)),
			PrepTimeMinutes: fl.PrepTimeMinutes,
			CookTimeMinutes: fl.CookTimeMinutes,
			BatchPrepNotes:  fl.BatchPrepNotes,
			CycleDetected:   fl.CycleDetected,
		}
		for _, entry := range groupEntries {
			group.EntryIDs = append(group.EntryIDs, entry.ID)
		}
		result.Groups = append(result.Groups, group)

		result.TotalPrepTimeMinutes += fl.PrepTimeMinutes
		result.TotalCookTimeMinutes += fl.CookTimeMinutes

		for _, ing := range fl.Ingredients {
			agg, ok := global[ing.ID]
			if !ok {
				agg = &plan.BatchIngredient{ID: ing.ID, Name: ing.Name}
				global[ing.ID] = agg
			}
			agg.TotalAmountG += ing.AmountG * float64(count)
			agg.Servings += count
			agg.Meals = append(agg.Meals, fl.RootName)
		}
	}

	sort.SliceStable(result.Groups, func(i, j int) bool {
		if result.Groups[i].Count != result.Groups[j].Count {
			return result.Groups[i].Count > result.Groups[j].Count
		}
		return result.Groups[i].Name < result.Groups[j].Name
	})

	result.Ingredients = make([]plan.BatchIngredient, 0, len(global))
	for _, agg := range global {
		result.Ingredients = append(result.Ingredients, *agg)
	}
	sort.Slice(result.Ingredients, func(i, j int) bool {
		if result.Ingredients[i].TotalAmountG != result.Ingredients[j].TotalAmountG {
			return result.Ingredients[i].TotalAmountG > result.Ingredients[j].TotalAmountG
		}
		return result.Ingredients[i].ID < result.Ingredients[j].ID
	})

	return result, nil
}

func scaleIngredients(ingredients []food.FlattenedIngredient, factor float64) []food.FlattenedIngredient {
	scaled := make([]food.FlattenedIngredient, len(ingredients))
	for i, ing := range ingredients {
		scaled[i] = ing.Scaled(factor)
	}
	return scaled
}

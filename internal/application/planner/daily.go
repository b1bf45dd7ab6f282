package planner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/platewise/platewise/internal/application/nutrition"
	"github.com/platewise/platewise/internal/domain/food"
	"github.com/platewise/platewise/internal/domain/plan"
	"github.com/platewise/platewise/pkg/errors"
)

// DailyStats aggregates one day's entries and supplements. Failures
// local to one entry degrade that entry to a calorie-only estimate;
// only a failure loading the shared graph context is fatal.
func (s *Service) DailyStats(ctx context.Context, userID uuid.UUID, date string, includeSupplements, includePlanned bool) (*plan.DailyStats, error) {
	if _, err := time.Parse(plan.DateLayout, date); err != nil {
		return nil, errors.NewBadRequestError("invalid date: " + date)
	}

	entries, err := s.plans.FindEntriesByDate(ctx, userID, date)
	if err != nil {
		return nil, errors.NewStoreUnavailableError("load plan entries", err)
	}

	gc, err := s.loader.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	consumed := s.classifyConsumed(ctx, userID, date, entries)

	stats := &plan.DailyStats{
		Date:          date,
		EntryCount:    len(entries),
		ConsumedCount: len(consumed),
	}

	var contributions []food.FlattenedIngredient
	var estimatedCalories float64

	for _, entry := range entries {
		if !includePlanned && !consumed[entry.ID] {
			continue
		}

		item, ok := gc.Items[entry.FoodItemID]
		if !ok {
			s.logger.Warn("Plan entry references unknown food item",
				zap.String("entry_id", entry.ID.String()),
				zap.String("food_item_id", entry.FoodItemID),
			)
			s.metrics.ObserveDegraded()
			stats.DegradedCount++
			continue
		}

		if item.Kind.IsLeaf() {
			// Direct entries carry grams in ScaleFactor.
			fi := food.ConcreteLeaf(item, false).Snapshot()
			fi.AmountG = entry.ScaleFactor
			contributions = append(contributions, fi)
			continue
		}

		fl, err := s.engine.FlattenWithContext(gc, entry.FoodItemID, entry.ScaleFactor)
		if err != nil {
			s.logger.Warn("Flatten failed for plan entry, using calorie-only estimate",
				zap.String("entry_id", entry.ID.String()),
				zap.String("food_item_id", entry.FoodItemID),
				zap.Error(err),
			)
			s.metrics.ObserveDegraded()
			stats.DegradedCount++
			estimatedCalories += estimateCalories(item, entry.ScaleFactor)
			continue
		}
		contributions = append(contributions, fl.Ingredients...)
	}

	if includeSupplements {
		stats.SupplementCount = s.appendSupplements(ctx, userID, gc, &contributions)
	}

	totals, ranked, summary := s.aggregator.Aggregate(contributions)
	totals.Calories += estimatedCalories

	stats.Totals = totals
	stats.Micronutrients = nutrition.TopN(ranked, s.opts.TopN)
	stats.Summary = summary
	stats.VitaminScore, stats.MineralScore, stats.OverallScore = nutrition.Scores(ranked)

	return stats, nil
}

// classifyConsumed applies the three-tier consumed check: explicit
// consumption ledger, logged flag on the entry, then the auto-consume
// policy (past days always count; today counts once its scheduled time
// has passed).
func (s *Service) classifyConsumed(ctx context.Context, userID uuid.UUID, date string, entries []plan.Entry) map[uuid.UUID]bool {
	ledger, err := s.plans.FindConsumedEntryIDs(ctx, userID, date)
	if err != nil {
		s.logger.Warn("Consumption ledger unavailable, relying on entry flags",
			zap.String("date", date),
			zap.Error(err),
		)
		ledger = map[uuid.UUID]bool{}
	}

	now := s.now()
	today := now.Format(plan.DateLayout)

	consumed := make(map[uuid.UUID]bool, len(entries))
	for _, entry := range entries {
		switch {
		case ledger[entry.ID]:
			consumed[entry.ID] = true
		case entry.Logged:
			consumed[entry.ID] = true
		case entry.Date < today:
			consumed[entry.ID] = true
		case entry.Date == today && !entry.ScheduledAt.After(now):
			consumed[entry.ID] = true
		}
	}
	return consumed
}

// appendSupplements adds supplement contributions (amount_g times
// serving count) and returns how many contributed. Supplement load
// failure degrades to none.
func (s *Service) appendSupplements(ctx context.Context, userID uuid.UUID, gc *food.GraphContext, contributions *[]food.FlattenedIngredient) int {
	supplements, err := s.plans.FindActiveSupplements(ctx, userID)
	if err != nil {
		s.logger.Warn("Supplement load failed, skipping supplements", zap.Error(err))
		s.metrics.ObserveDegraded()
		return 0
	}

	count := 0
	for _, sup := range supplements {
		item, ok := gc.Items[sup.FoodItemID]
		if !ok {
			s.logger.Warn("Supplement references unknown food item",
				zap.String("supplement_id", sup.ID.String()),
				zap.String("food_item_id", sup.FoodItemID),
			)
			continue
		}
		fi := food.ConcreteLeaf(item, false).Snapshot()
		fi.AmountG = sup.AmountG * float64(sup.ServingCount)
		*contributions = append(*contributions, fi)
		count++
	}
	return count
}

// estimateCalories derives the calorie-only fallback for an entry whose
// flatten failed, from the item's base calories or per-100g density.
func estimateCalories(item food.Item, scaleFactor float64) float64 {
	if item.BaseCalories > 0 {
		return item.BaseCalories * scaleFactor
	}
	return item.CaloriesPer100g * scaleFactor
}

package plan

import (
	"github.com/google/uuid"

	"github.com/platewise/platewise/internal/domain/food"
)

// DailyStats is the aggregated nutrition picture of one day.
type DailyStats struct {
	Date            string                    `json:"date"`
	Totals          food.NutritionTotals      `json:"totals"`
	Micronutrients  []food.MicronutrientTotal `json:"micronutrients"`
	Summary         food.NutritionSummary     `json:"summary"`
	VitaminScore    float64                   `json:"vitamin_score"`
	MineralScore    float64                   `json:"mineral_score"`
	OverallScore    float64                   `json:"overall_score"`
	EntryCount      int                       `json:"entry_count"`
	ConsumedCount   int                       `json:"consumed_count"`
	DegradedCount   int                       `json:"degraded_count"`
	SupplementCount int                       `json:"supplement_count"`
}

// TrendDirection labels a split-half trend.
type TrendDirection string

const (
	TrendStable     TrendDirection = "stable"
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
)

// Trend is the split-half percent change of a metric over a date range.
type Trend struct {
	Direction     TrendDirection `json:"direction"`
	PercentChange float64        `json:"percent_change"`
}

// RangeAnalytics averages and trends daily stats over a date range.
type RangeAnalytics struct {
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	DayCount         int     `json:"day_count"`
	AvgCalories      float64 `json:"avg_calories"`
	AvgProtein       float64 `json:"avg_protein"`
	AvgCarbs         float64 `json:"avg_carbs"`
	AvgFat           float64 `json:"avg_fat"`
	AvgVitaminScore  float64 `json:"avg_vitamin_score"`
	AvgMineralScore  float64 `json:"avg_mineral_score"`
	AvgOverallScore  float64 `json:"avg_overall_score"`
	CalorieTrend     Trend   `json:"calorie_trend"`
	ProteinTrend     Trend   `json:"protein_trend"`
	ConsistencyScore float64 `json:"consistency_score"`
}

// BatchGroup is one unique meal in a batch-prep computation, collapsed
// over every plan entry that references it.
type BatchGroup struct {
	FoodItemID      string                     `json:"food_item_id"`
	Name            string                     `json:"name"`
	Count           int                        `json:"count"`
	EntryIDs        []uuid.UUID                `json:"entry_ids"`
	SingleServing   []food.FlattenedIngredient `json:"single_serving"`
	Batch           []food.FlattenedIngredient `json:"batch"`
	PerServing      food.NutritionTotals       `json:"per_serving"`
	Total           food.NutritionTotals       `json:"total"`
	PrepTimeMinutes int                        `json:"prep_time_minutes"`
	CookTimeMinutes int                        `json:"cook_time_minutes"`
	BatchPrepNotes  string                     `json:"batch_prep_notes,omitempty"`
	CycleDetected   bool                       `json:"cycle_detected"`
}

// BatchIngredient is one ingredient aggregated across every meal in the
// batch, keyed by ingredient ID.
type BatchIngredient struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	TotalAmountG float64  `json:"total_amount_g"`
	Servings     int      `json:"servings"`
	Meals        []string `json:"meals"`
}

// BatchPrepResult is the full output of a batch-prep computation.
type BatchPrepResult struct {
	UniqueMealCount      int               `json:"unique_meal_count"`
	TotalMealCount       int               `json:"total_meal_count"`
	SkippedMealCount     int               `json:"skipped_meal_count"`
	Groups               []BatchGroup      `json:"groups"`
	Ingredients          []BatchIngredient `json:"ingredients"`
	TotalPrepTimeMinutes int               `json:"total_prep_time_minutes"`
	TotalCookTimeMinutes int               `json:"total_cook_time_minutes"`
}

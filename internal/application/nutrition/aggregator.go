package nutrition

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/platewise/platewise/internal/domain/food"
)

// Aggregator turns flattened ingredient amounts into macro totals and
// ranked, RDA-scored micronutrient totals.
type Aggregator struct {
	logger *zap.Logger
}

// NewAggregator creates a nutrition aggregator.
func NewAggregator(logger *zap.Logger) *Aggregator {
	return &Aggregator{logger: logger.Named("nutrition-aggregator")}
}

// Aggregate computes macro totals, the full ranked micronutrient list,
// and the named-nutrient summary for a set of ingredient amounts.
// Entries with non-positive amounts and malformed micronutrient records
// are skipped silently; nothing here is fatal.
func (a *Aggregator) Aggregate(ingredients []food.FlattenedIngredient) (food.NutritionTotals, []food.MicronutrientTotal, food.NutritionSummary) {
	totals := food.NutritionTotals{}
	accumulated := make(map[int]*food.MicronutrientTotal)

	for _, ing := range ingredients {
		if ing.AmountG <= 0 {
			continue
		}
		factor := ing.AmountG / 100

		totals.Calories += ing.CaloriesPer100g * factor
		totals.Protein += ing.ProteinPer100g * factor
		totals.Carbs += ing.CarbsPer100g * factor
		totals.Fat += ing.FatPer100g * factor

		for _, micro := range ing.Micronutrients {
			if !validMicronutrient(micro) {
				a.logger.Debug("Skipping malformed micronutrient record",
					zap.String("ingredient_id", ing.ID),
					zap.Int("nutrient_id", micro.NutrientID),
				)
				continue
			}
			amount := micro.AmountPer100g * factor

			switch micro.NutrientID {
			case NutrientFiber:
				totals.Fiber += amount
			case NutrientTotalSugar:
				totals.Sugar += amount
			case NutrientSodium:
				totals.Sodium += amount
			case NutrientSaturatedFat:
				totals.SaturatedFat += amount
			case NutrientCholesterol:
				totals.Cholesterol += amount
			}

			if macroDuplicateIDs[micro.NutrientID] || denylistIDs[micro.NutrientID] {
				continue
			}

			entry, ok := accumulated[micro.NutrientID]
			if !ok {
				entry = &food.MicronutrientTotal{
					NutrientID: micro.NutrientID,
					Name:       micro.Name,
					Unit:       micro.Unit,
				}
				accumulated[micro.NutrientID] = entry
			}
			entry.Amount += amount
			if mg, ok := ToMilligrams(amount, micro.Unit); ok {
				entry.AmountMg += mg
			}
		}
	}

	ranked := rank(accumulated)
	summary := summarize(accumulated)
	return totals, ranked, summary
}

// rank scores accumulated nutrients against the RDA table and orders
// them by (percent RDA desc, normalized amount desc). Nutrients whose
// unit could not be normalized are excluded from the ranking.
func rank(accumulated map[int]*food.MicronutrientTotal) []food.MicronutrientTotal {
	ranked := make([]food.MicronutrientTotal, 0, len(accumulated))
	for _, entry := range accumulated {
		if _, ok := ToMilligrams(1, entry.Unit); !ok {
			continue
		}
		e := *entry
		if rda, ok := LookupRDA(e.NutrientID); ok {
			if inTarget, ok := FromMilligrams(e.AmountMg, rda.Unit); ok && rda.Amount > 0 {
				e.PercentRDA = inTarget / rda.Amount * 100
				e.Status = Classify(e.PercentRDA)
				e.HasRDA = true
			}
		}
		ranked = append(ranked, e)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].PercentRDA != ranked[j].PercentRDA {
			return ranked[i].PercentRDA > ranked[j].PercentRDA
		}
		if ranked[i].AmountMg != ranked[j].AmountMg {
			return ranked[i].AmountMg > ranked[j].AmountMg
		}
		return ranked[i].NutrientID < ranked[j].NutrientID
	})
	return ranked
}

// Classify maps a percent-of-RDA value to its status band.
func Classify(percentRDA float64) food.RDAStatus {
	switch {
	case percentRDA < 50:
		return food.RDADeficient
	case percentRDA < 100:
		return food.RDALow
	case percentRDA <= 200:
		return food.RDAAdequate
	default:
		return food.RDAExcess
	}
}

// TopN truncates a ranked list to the caller-chosen size. Non-positive
// n returns the list unchanged.
func TopN(ranked []food.MicronutrientTotal, n int) []food.MicronutrientTotal {
	if n <= 0 || len(ranked) <= n {
		return ranked
	}
	return ranked[:n]
}

// Scores computes the vitamin and mineral scores: the mean of percent
// RDA capped at 100 within each category, and the overall score as
// their even blend.
func Scores(ranked []food.MicronutrientTotal) (vitamin, mineral, overall float64) {
	var vitSum, minSum float64
	var vitCount, minCount int

	for _, entry := range ranked {
		if !entry.HasRDA {
			continue
		}
		pct := math.Min(entry.PercentRDA, 100)
		if IsVitamin(entry.NutrientID) {
			vitSum += pct
			vitCount++
		} else if IsMineral(entry.NutrientID) {
			minSum += pct
			minCount++
		}
	}

	if vitCount > 0 {
		vitamin = vitSum / float64(vitCount)
	}
	if minCount > 0 {
		mineral = minSum / float64(minCount)
	}
	overall = 0.5*vitamin + 0.5*mineral
	return vitamin, mineral, overall
}

// summarize extracts the fixed set of named nutrients in native units.
func summarize(accumulated map[int]*food.MicronutrientTotal) food.NutritionSummary {
	get := func(id int) float64 {
		if entry, ok := accumulated[id]; ok {
			return entry.Amount
		}
		return 0
	}
	return food.NutritionSummary{
		VitaminA:   get(NutrientVitaminA),
		VitaminC:   get(NutrientVitaminC),
		VitaminD:   get(NutrientVitaminD),
		VitaminE:   get(NutrientVitaminE),
		VitaminK:   get(NutrientVitaminK),
		VitaminB12: get(NutrientVitaminB12),
		Folate:     get(NutrientFolate),
		Calcium:    get(NutrientCalcium),
		Iron:       get(NutrientIron),
		Magnesium:  get(NutrientMagnesium),
		Potassium:  get(NutrientPotassium),
		Zinc:       get(NutrientZinc),
		Selenium:   get(NutrientSelenium),
		Caffeine:   get(NutrientCaffeine),
	}
}

func validMicronutrient(m food.Micronutrient) bool {
	if m.Name == "" || m.Unit == "" {
		return false
	}
	if math.IsNaN(m.AmountPer100g) || math.IsInf(m.AmountPer100g, 0) {
		return false
	}
	return true
}

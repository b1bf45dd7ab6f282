// Package nutrition computes macro totals and RDA-scored micronutrient
// aggregations from flattened ingredient lists.
package nutrition

// Nutrient IDs follow the USDA FoodData Central numbering.
const (
	NutrientProtein        = 1003
	NutrientFat            = 1004
	NutrientCarbs          = 1005
	NutrientAsh            = 1007
	NutrientEnergy         = 1008
	NutrientSucrose        = 1010
	NutrientGlucose        = 1011
	NutrientFructose       = 1012
	NutrientLactose        = 1013
	NutrientMaltose        = 1014
	NutrientWater          = 1051
	NutrientCaffeine       = 1057
	NutrientGalactose      = 1075
	NutrientFiber          = 1079
	NutrientCalcium        = 1087
	NutrientIron           = 1089
	NutrientMagnesium      = 1090
	NutrientPhosphorus     = 1091
	NutrientPotassium      = 1092
	NutrientSodium         = 1093
	NutrientZinc           = 1095
	NutrientCopper         = 1098
	NutrientManganese      = 1101
	NutrientSelenium       = 1103
	NutrientVitaminA       = 1106
	NutrientVitaminE       = 1109
	NutrientVitaminD       = 1114
	NutrientVitaminC       = 1162
	NutrientThiamin        = 1165
	NutrientRiboflavin     = 1166
	NutrientNiacin         = 1167
	NutrientVitaminB6      = 1175
	NutrientFolate         = 1177
	NutrientVitaminB12     = 1178
	NutrientVitaminK       = 1185
	NutrientCholesterol    = 1253
	NutrientSaturatedFat   = 1258
	NutrientEnergyGeneral  = 2047
	NutrientEnergySpecific = 2048
	NutrientTotalSugar     = 2000
)

// RDA is one recommended-daily-allowance reference entry. Pure
// configuration data, no I/O.
type RDA struct {
	NutrientID int
	Name       string
	Amount     float64
	Unit       string
}

// rdaTable holds adult reference targets.
var rdaTable = map[int]RDA{
	NutrientVitaminA:   {NutrientVitaminA, "Vitamin A", 900, "µg"},
	NutrientVitaminC:   {NutrientVitaminC, "Vitamin C", 90, "mg"},
	NutrientVitaminD:   {NutrientVitaminD, "Vitamin D", 20, "µg"},
	NutrientVitaminE:   {NutrientVitaminE, "Vitamin E", 15, "mg"},
	NutrientVitaminK:   {NutrientVitaminK, "Vitamin K", 120, "µg"},
	NutrientThiamin:    {NutrientThiamin, "Thiamin", 1.2, "mg"},
	NutrientRiboflavin: {NutrientRiboflavin, "Riboflavin", 1.3, "mg"},
	NutrientNiacin:     {NutrientNiacin, "Niacin", 16, "mg"},
	NutrientVitaminB6:  {NutrientVitaminB6, "Vitamin B6", 1.7, "mg"},
	NutrientFolate:     {NutrientFolate, "Folate", 400, "µg"},
	NutrientVitaminB12: {NutrientVitaminB12, "Vitamin B12", 2.4, "µg"},
	NutrientCalcium:    {NutrientCalcium, "Calcium", 1300, "mg"},
	NutrientIron:       {NutrientIron, "Iron", 18, "mg"},
	NutrientMagnesium:  {NutrientMagnesium, "Magnesium", 420, "mg"},
	NutrientPhosphorus: {NutrientPhosphorus, "Phosphorus", 1250, "mg"},
	NutrientPotassium:  {NutrientPotassium, "Potassium", 4700, "mg"},
	NutrientZinc:       {NutrientZinc, "Zinc", 11, "mg"},
	NutrientCopper:     {NutrientCopper, "Copper", 0.9, "mg"},
	NutrientManganese:  {NutrientManganese, "Manganese", 2.3, "mg"},
	NutrientSelenium:   {NutrientSelenium, "Selenium", 55, "µg"},
}

// LookupRDA returns the reference entry for a nutrient ID.
func LookupRDA(nutrientID int) (RDA, bool) {
	rda, ok := rdaTable[nutrientID]
	return rda, ok
}

var vitaminIDs = map[int]bool{
	NutrientVitaminA: true, NutrientVitaminC: true, NutrientVitaminD: true,
	NutrientVitaminE: true, NutrientVitaminK: true, NutrientThiamin: true,
	NutrientRiboflavin: true, NutrientNiacin: true, NutrientVitaminB6: true,
	NutrientFolate: true, NutrientVitaminB12: true,
}

var mineralIDs = map[int]bool{
	NutrientCalcium: true, NutrientIron: true, NutrientMagnesium: true,
	NutrientPhosphorus: true, NutrientPotassium: true, NutrientZinc: true,
	NutrientCopper: true, NutrientManganese: true, NutrientSelenium: true,
}

// IsVitamin reports whether the nutrient counts toward the vitamin score.
func IsVitamin(nutrientID int) bool { return vitaminIDs[nutrientID] }

// IsMineral reports whether the nutrient counts toward the mineral score.
func IsMineral(nutrientID int) bool { return mineralIDs[nutrientID] }

// macroDuplicateIDs are nutrient entries that restate the per-100g
// macro fields and are excluded from micronutrient aggregation.
var macroDuplicateIDs = map[int]bool{
	NutrientProtein: true,
	NutrientFat:     true,
	NutrientCarbs:   true,
}

// denylistIDs are non-informative entries excluded from aggregation:
// water, ash, the energy variants, and raw sugar subtypes.
var denylistIDs = map[int]bool{
	NutrientWater:          true,
	NutrientAsh:            true,
	NutrientEnergy:         true,
	NutrientEnergyGeneral:  true,
	NutrientEnergySpecific: true,
	NutrientSucrose:        true,
	NutrientGlucose:        true,
	NutrientFructose:       true,
	NutrientLactose:        true,
	NutrientMaltose:        true,
	NutrientGalactose:      true,
}

// ToMilligrams normalizes an amount to milligrams. Returns ok=false for
// units it does not recognize; such entries keep their raw totals but
// are excluded from ranking.
func ToMilligrams(amount float64, unit string) (float64, bool) {
	switch unit {
	case "mg":
		return amount, true
	case "µg", "mcg", "ug":
		return amount / 1000, true
	case "g":
		return amount * 1000, true
	default:
		return 0, false
	}
}

// FromMilligrams converts a milligram amount into the target unit.
func FromMilligrams(amountMg float64, unit string) (float64, bool) {
	switch unit {
	case "mg":
		return amountMg, true
	case "µg", "mcg", "ug":
		return amountMg * 1000, true
	case "g":
		return amountMg / 1000, true
	default:
		return 0, false
	}
}

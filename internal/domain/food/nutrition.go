package food

// NutritionTotals aggregates macro nutrition over a set of ingredient
// amounts. Calories through Fat come from the per-100g macro fields;
// the extended macros come from the micronutrient lists.
type NutritionTotals struct {
	Calories     float64 `json:"calories"`
	Protein      float64 `json:"protein"`
	Carbs        float64 `json:"carbs"`
	Fat          float64 `json:"fat"`
	Fiber        float64 `json:"fiber"`
	Sugar        float64 `json:"sugar"`
	Sodium       float64 `json:"sodium"`
	SaturatedFat float64 `json:"saturated_fat"`
	Cholesterol  float64 `json:"cholesterol"`
}

// Add accumulates another totals value into the receiver.
func (t *NutritionTotals) Add(o NutritionTotals) {
	t.Calories += o.Calories
	t.Protein += o.Protein
	t.Carbs += o.Carbs
	t.Fat += o.Fat
	t.Fiber += o.Fiber
	t.Sugar += o.Sugar
	t.Sodium += o.Sodium
	t.SaturatedFat += o.SaturatedFat
	t.Cholesterol += o.Cholesterol
}

// Scaled returns a copy with every field multiplied by factor.
func (t NutritionTotals) Scaled(factor float64) NutritionTotals {
	return NutritionTotals{
		Calories:     t.Calories * factor,
		Protein:      t.Protein * factor,
		Carbs:        t.Carbs * factor,
		Fat:          t.Fat * factor,
		Fiber:        t.Fiber * factor,
		Sugar:        t.Sugar * factor,
		Sodium:       t.Sodium * factor,
		SaturatedFat: t.SaturatedFat * factor,
		Cholesterol:  t.Cholesterol * factor,
	}
}

// RDAStatus classifies a nutrient total against its reference target.
type RDAStatus string

const (
	RDADeficient RDAStatus = "deficient" // < 50% of target
	RDALow       RDAStatus = "low"       // < 100%
	RDAAdequate  RDAStatus = "adequate"  // <= 200%
	RDAExcess    RDAStatus = "excess"    // > 200%
)

// MicronutrientTotal is one ranked nutrient in an aggregation result.
// Amount is in the nutrient's native unit; AmountMg is the
// milligram-normalized form used for ranking. PercentRDA and Status are
// only meaningful when HasRDA is true.
type MicronutrientTotal struct {
	NutrientID int       `json:"nutrient_id"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	Amount     float64   `json:"amount"`
	AmountMg   float64   `json:"amount_mg"`
	PercentRDA float64   `json:"percent_rda"`
	Status     RDAStatus `json:"status"`
	HasRDA     bool      `json:"has_rda"`
}

// NutritionSummary pulls a fixed set of commonly asked-about nutrients
// into convenience fields, in each nutrient's native unit.
type NutritionSummary struct {
	VitaminA   float64 `json:"vitamin_a"`
	VitaminC   float64 `json:"vitamin_c"`
	VitaminD   float64 `json:"vitamin_d"`
	VitaminE   float64 `json:"vitamin_e"`
	VitaminK   float64 `json:"vitamin_k"`
	VitaminB12 float64 `json:"vitamin_b12"`
	Folate     float64 `json:"folate"`
	Calcium    float64 `json:"calcium"`
	Iron       float64 `json:"iron"`
	Magnesium  float64 `json:"magnesium"`
	Potassium  float64 `json:"potassium"`
	Zinc       float64 `json:"zinc"`
	Selenium   float64 `json:"selenium"`
	Caffeine   float64 `json:"caffeine"`
}

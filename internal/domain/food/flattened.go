package food

// FlattenedIngredient is one leaf ingredient in a flattened recipe,
// with the total grams accumulated across every path that reached it
// and the per-100g density snapshot taken at first encounter.
type FlattenedIngredient struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Kind             Kind            `json:"kind"`
	AmountG          float64         `json:"amount_g"`
	CaloriesPer100g  float64         `json:"calories_per_100g"`
	ProteinPer100g   float64         `json:"protein_per_100g"`
	CarbsPer100g     float64         `json:"carbs_per_100g"`
	FatPer100g       float64         `json:"fat_per_100g"`
	Micronutrients   []Micronutrient `json:"micronutrients,omitempty"`
	IsCanonical      bool            `json:"is_canonical"`
	IsUserPreference bool            `json:"is_user_preference"`
}

// Scaled returns a copy with the accumulated amount multiplied by factor.
func (f FlattenedIngredient) Scaled(factor float64) FlattenedIngredient {
	f.AmountG *= factor
	return f
}

// Flattened is the full result of flattening one recipe root.
type Flattened struct {
	RootID          string                `json:"root_id"`
	RootName        string                `json:"root_name"`
	ScaleFactor     float64               `json:"scale_factor"`
	Ingredients     []FlattenedIngredient `json:"ingredients"`
	Nutrition       NutritionTotals       `json:"nutrition"`
	Micronutrients  []MicronutrientTotal  `json:"micronutrients"`
	PrepTimeMinutes int                   `json:"prep_time_minutes"`
	CookTimeMinutes int                   `json:"cook_time_minutes"`
	PrepSteps       []string              `json:"prep_steps,omitempty"`
	BatchPrepNotes  string                `json:"batch_prep_notes,omitempty"`
	CycleDetected   bool                  `json:"cycle_detected"`
	MaxDepth        int                   `json:"max_depth"`
}

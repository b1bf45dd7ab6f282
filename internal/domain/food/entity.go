// Package food contains the core domain model for the recipe graph:
// food items, the edges that compose them into recipes, canonical
// ingredient placeholders, and the flattened results derived from them.
package food

import (
	"github.com/google/uuid"
)

// Kind classifies a food item.
type Kind string

const (
	KindIngredient Kind = "ingredient"
	KindProduct    Kind = "product"
	KindMeal       Kind = "meal"
	KindSnack      Kind = "snack"
)

// IsLeaf reports whether the kind terminates graph expansion.
func (k Kind) IsLeaf() bool {
	return k == KindIngredient || k == KindProduct
}

// IsRecipe reports whether the kind expands into sub-ingredients.
func (k Kind) IsRecipe() bool {
	return k == KindMeal || k == KindSnack
}

// ScalingMode describes how a recipe's amounts are interpreted when scaled.
type ScalingMode string

const (
	ScalingProportional ScalingMode = "proportional"
	ScalingFixed        ScalingMode = "fixed"
)

// Micronutrient is one nutrient entry on a food item, stated per 100g.
type Micronutrient struct {
	NutrientID    int     `json:"nutrient_id"`
	Name          string  `json:"name"`
	Unit          string  `json:"unit"`
	AmountPer100g float64 `json:"amount_per_100g"`
}

// Item is a food item record as read from the food item store.
// Per-100g values are never negative. An item with a nil OwnerID is
// system-owned and visible to everyone.
type Item struct {
	ID              string
	OwnerID         *uuid.UUID
	Public          bool
	Name            string
	Kind            Kind
	CaloriesPer100g float64
	ProteinPer100g  float64
	CarbsPer100g    float64
	FatPer100g      float64
	Micronutrients  []Micronutrient
	ScalingMode     ScalingMode
	BaseCalories    float64
}

// CanonicalIngredient is a global, user-substitutable ingredient
// placeholder with default per-100g macros.
type CanonicalIngredient struct {
	ID              string
	Name            string
	CaloriesPer100g float64
	ProteinPer100g  float64
	CarbsPer100g    float64
	FatPer100g      float64
}

// SyntheticIDPrefix marks item IDs fabricated from canonical defaults.
const SyntheticIDPrefix = "canonical:"

// SyntheticID returns the item ID used when a canonical ingredient is
// resolved without a user preference.
func SyntheticID(canonicalID string) string {
	return SyntheticIDPrefix + canonicalID
}

// Preference maps a canonical ingredient to a user's concrete product
// of choice. A nil SpecificFoodItemID means the user cleared the
// substitution and defaults apply.
type Preference struct {
	UserID             uuid.UUID
	CanonicalID        string
	SpecificFoodItemID *string
}

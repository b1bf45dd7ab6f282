package gorm

import (
	"github.com/platewise/platewise/internal/domain/food"
	"github.com/platewise/platewise/internal/domain/plan"
)

// ModelToFoodItem converts a GORM model to a domain food item
func ModelToFoodItem(m *FoodItemModel) food.Item {
	return food.Item{
		ID:              m.ID,
		OwnerID:         m.OwnerID,
		Public:          m.Public,
		Name:            m.Name,
		Kind:            food.Kind(m.Kind),
		CaloriesPer100g: m.CaloriesPer100g,
		ProteinPer100g:  m.ProteinPer100g,
		CarbsPer100g:    m.CarbsPer100g,
		FatPer100g:      m.FatPer100g,
		Micronutrients:  []food.Micronutrient(m.Micronutrients),
		ScalingMode:     food.ScalingMode(m.ScalingMode),
		BaseCalories:    m.BaseCalories,
	}
}

// ModelToEdge converts a GORM model to a domain recipe edge
func ModelToEdge(m *RecipeEdgeModel) food.Edge {
	return food.Edge{
		ParentID:    m.ParentID,
		ChildID:     m.ChildID,
		CanonicalID: m.CanonicalID,
		AmountG:     m.AmountG,
		Proportion:  m.Proportion,
		StorageMode: food.StorageMode(m.StorageMode),
		SortOrder:   m.SortOrder,
	}
}

// ModelToNode converts a GORM model to a domain recipe node
func ModelToNode(m *RecipeNodeModel) food.Node {
	return food.Node{
		FoodItemID:      m.FoodItemID,
		BaseServingG:    m.BaseServingG,
		PrepTimeMinutes: m.PrepTimeMinutes,
		CookTimeMinutes: m.CookTimeMinutes,
		PrepSteps:       []string(m.PrepSteps),
		BatchPrepNotes:  m.BatchPrepNotes,
	}
}

// ModelToCanonical converts a GORM model to a domain canonical ingredient
func ModelToCanonical(m *CanonicalIngredientModel) food.CanonicalIngredient {
	return food.CanonicalIngredient{
		ID:              m.ID,
		Name:            m.Name,
		CaloriesPer100g: m.CaloriesPer100g,
		ProteinPer100g:  m.ProteinPer100g,
		CarbsPer100g:    m.CarbsPer100g,
		FatPer100g:      m.FatPer100g,
	}
}

// ModelToPreference converts a GORM model to a domain ingredient preference
func ModelToPreference(m *IngredientPreferenceModel) food.Preference {
	return food.Preference{
		UserID:             m.UserID,
		CanonicalID:        m.CanonicalID,
		SpecificFoodItemID: m.SpecificFoodItemID,
	}
}

// ModelToPlanEntry converts a GORM model to a domain plan entry
func ModelToPlanEntry(m *PlanEntryModel) plan.Entry {
	return plan.Entry{
		ID:          m.ID,
		UserID:      m.UserID,
		Date:        m.Date,
		FoodItemID:  m.FoodItemID,
		ScaleFactor: m.ScaleFactor,
		Logged:      m.Logged,
		ScheduledAt: m.ScheduledAt,
	}
}

// ModelToSupplement converts a GORM model to a domain supplement
func ModelToSupplement(m *SupplementModel) plan.Supplement {
	return plan.Supplement{
		ID:           m.ID,
		UserID:       m.UserID,
		FoodItemID:   m.FoodItemID,
		AmountG:      m.AmountG,
		ServingCount: m.ServingCount,
		Active:       m.Active,
	}
}

// Package gorm provides GORM model definitions and repository
// implementations for the application
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/platewise/platewise/internal/domain/food"
)

// FoodItemModel represents the GORM model for food items
type FoodItemModel struct {
	ID      string     `gorm:"type:varchar(64);primaryKey"`
	OwnerID *uuid.UUID `gorm:"type:char(36);index"` // NULL means system-owned
	Public  bool       `gorm:"default:false;index"`
	Name    string     `gorm:"type:varchar(255);not null;index"`
	Kind    string     `gorm:"type:varchar(20);not null;index"`

	// Nutrition per 100 g of the item
	CaloriesPer100g float64 `gorm:"column:calories_per_100g;default:0"`
	ProteinPer100g  float64 `gorm:"column:protein_per_100g;default:0"`
	CarbsPer100g    float64 `gorm:"column:carbs_per_100g;default:0"`
	FatPer100g      float64 `gorm:"column:fat_per_100g;default:0"`

	Micronutrients MicronutrientSlice `gorm:"type:json"`

	ScalingMode  string  `gorm:"type:varchar(20);default:'linear'"`
	BaseCalories float64 `gorm:"default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (FoodItemModel) TableName() string {
	return "food_items"
}

// RecipeNodeModel represents per-recipe metadata for composite items
type RecipeNodeModel struct {
	FoodItemID      string      `gorm:"type:varchar(64);primaryKey"`
	BaseServingG    float64     `gorm:"column:base_serving_g;default:0"`
	PrepTimeMinutes int         `gorm:"default:0"`
	CookTimeMinutes int         `gorm:"default:0"`
	PrepSteps       StringSlice `gorm:"type:json"`
	BatchPrepNotes  string      `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Relationships
	FoodItem FoodItemModel `gorm:"foreignKey:FoodItemID"`
}

// TableName overrides the default table name
func (RecipeNodeModel) TableName() string {
	return "recipe_nodes"
}

// RecipeEdgeModel represents one parent-to-child composition edge
type RecipeEdgeModel struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	ParentID    string    `gorm:"type:varchar(64);not null;index"`
	ChildID     *string   `gorm:"type:varchar(64);index"`
	CanonicalID *string   `gorm:"type:varchar(64);index"`
	AmountG     float64   `gorm:"column:amount_g;default:0"`
	Proportion  *float64
	StorageMode string `gorm:"type:varchar(20);default:'absolute'"`
	SortOrder   int    `gorm:"default:0;index"`
	CreatedAt   time.Time

	// Relationships
	Parent FoodItemModel `gorm:"foreignKey:ParentID"`
}

// TableName overrides the default table name
func (RecipeEdgeModel) TableName() string {
	return "recipe_edges"
}

// CanonicalIngredientModel represents the GORM model for canonical
// ingredient definitions
type CanonicalIngredientModel struct {
	ID   string `gorm:"type:varchar(64);primaryKey"`
	Name string `gorm:"type:varchar(255);not null;index"`

	CaloriesPer100g float64 `gorm:"column:calories_per_100g;default:0"`
	ProteinPer100g  float64 `gorm:"column:protein_per_100g;default:0"`
	CarbsPer100g    float64 `gorm:"column:carbs_per_100g;default:0"`
	FatPer100g      float64 `gorm:"column:fat_per_100g;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (CanonicalIngredientModel) TableName() string {
	return "canonical_ingredients"
}

// IngredientPreferenceModel represents one user's concrete choice for a
// canonical ingredient
type IngredientPreferenceModel struct {
	ID                 uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID             uuid.UUID `gorm:"type:char(36);not null;index:idx_pref_user_canonical,unique"`
	CanonicalID        string    `gorm:"type:varchar(64);not null;index:idx_pref_user_canonical,unique"`
	SpecificFoodItemID *string   `gorm:"type:varchar(64)"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName overrides the default table name
func (IngredientPreferenceModel) TableName() string {
	return "ingredient_preferences"
}

// PlanEntryModel represents the GORM model for meal plan entries
type PlanEntryModel struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID `gorm:"type:char(36);not null;index:idx_plan_user_date"`
	Date        string    `gorm:"type:varchar(10);not null;index:idx_plan_user_date"`
	FoodItemID  string    `gorm:"type:varchar(64);not null;index"`
	ScaleFactor float64   `gorm:"default:1"`
	Logged      bool      `gorm:"default:false"`
	ScheduledAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Relationships
	FoodItem FoodItemModel `gorm:"foreignKey:FoodItemID"`
}

// TableName overrides the default table name
func (PlanEntryModel) TableName() string {
	return "plan_entries"
}

// ConsumptionModel represents one explicit consumption record
type ConsumptionModel struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID `gorm:"type:char(36);not null;index:idx_consumption_user_date"`
	Date        string    `gorm:"type:varchar(10);not null;index:idx_consumption_user_date"`
	PlanEntryID uuid.UUID `gorm:"type:char(36);not null;index"`
	ConsumedAt  time.Time
	CreatedAt   time.Time
}

// TableName overrides the default table name
func (ConsumptionModel) TableName() string {
	return "consumptions"
}

// SupplementModel represents the GORM model for supplement schedules
type SupplementModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID       uuid.UUID `gorm:"type:char(36);not null;index"`
	FoodItemID   string    `gorm:"type:varchar(64);not null"`
	AmountG      float64   `gorm:"column:amount_g;default:0"`
	ServingCount int       `gorm:"default:1"`
	Active       bool      `gorm:"default:true;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Relationships
	FoodItem FoodItemModel `gorm:"foreignKey:FoodItemID"`
}

// TableName overrides the default table name
func (SupplementModel) TableName() string {
	return "supplements"
}

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// MicronutrientSlice custom type for handling micronutrient lists in JSON
type MicronutrientSlice []food.Micronutrient

// Scan implements the sql.Scanner interface
func (m *MicronutrientSlice) Scan(value interface{}) error {
	if value == nil {
		*m = MicronutrientSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("cannot scan %T into MicronutrientSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (m MicronutrientSlice) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "[]", nil
	}
	return json.Marshal(m)
}

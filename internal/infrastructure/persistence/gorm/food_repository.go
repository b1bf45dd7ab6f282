package gorm

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platewise/platewise/internal/domain/food"
	"github.com/platewise/platewise/internal/ports/outbound"
)

// FoodItemRepository implements the food item repository interface using GORM
type FoodItemRepository struct {
	db *gorm.DB
}

// NewFoodItemRepository creates a new food item repository
func NewFoodItemRepository(db *gorm.DB) outbound.FoodItemRepository {
	return &FoodItemRepository{db: db}
}

// visibleItems scopes a query to items owned by one of the given
// owners, public items, or system-owned items (no owner).
func visibleItems(db *gorm.DB, ownerIDs []uuid.UUID) *gorm.DB {
	if len(ownerIDs) == 0 {
		return db.Where("public = ? OR owner_id IS NULL", true)
	}
	return db.Where("owner_id IN ? OR public = ? OR owner_id IS NULL", ownerIDs, true)
}

// FindVisibleItems returns every food item visible to the owner scope
func (r *FoodItemRepository) FindVisibleItems(ctx context.Context, ownerIDs []uuid.UUID) ([]food.Item, error) {
	var models []FoodItemModel

	result := visibleItems(r.db.WithContext(ctx), ownerIDs).Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	items := make([]food.Item, len(models))
	for i := range models {
		items[i] = ModelToFoodItem(&models[i])
	}
	return items, nil
}

// FindVisibleEdges returns every recipe edge whose parent item is
// visible to the owner scope
func (r *FoodItemRepository) FindVisibleEdges(ctx context.Context, ownerIDs []uuid.UUID) ([]food.Edge, error) {
	var models []RecipeEdgeModel

	query := r.db.WithContext(ctx).
		Joins("JOIN food_items ON food_items.id = recipe_edges.parent_id")
	if len(ownerIDs) == 0 {
		query = query.Where("food_items.public = ? OR food_items.owner_id IS NULL", true)
	} else {
		query = query.Where("food_items.owner_id IN ? OR food_items.public = ? OR food_items.owner_id IS NULL", ownerIDs, true)
	}

	result := query.Order("recipe_edges.parent_id, recipe_edges.sort_order").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	edges := make([]food.Edge, len(models))
	for i := range models {
		edges[i] = ModelToEdge(&models[i])
	}
	return edges, nil
}

// FindVisibleNodes returns recipe metadata for items visible to the
// owner scope
func (r *FoodItemRepository) FindVisibleNodes(ctx context.Context, ownerIDs []uuid.UUID) ([]food.Node, error) {
	var models []RecipeNodeModel

	query := r.db.WithContext(ctx).
		Joins("JOIN food_items ON food_items.id = recipe_nodes.food_item_id")
	if len(ownerIDs) == 0 {
		query = query.Where("food_items.public = ? OR food_items.owner_id IS NULL", true)
	} else {
		query = query.Where("food_items.owner_id IN ? OR food_items.public = ? OR food_items.owner_id IS NULL", ownerIDs, true)
	}

	result := query.Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	nodes := make([]food.Node, len(models))
	for i := range models {
		nodes[i] = ModelToNode(&models[i])
	}
	return nodes, nil
}

// FindCanonicalIngredients returns the global canonical ingredient set
func (r *FoodItemRepository) FindCanonicalIngredients(ctx context.Context) ([]food.CanonicalIngredient, error) {
	var models []CanonicalIngredientModel

	result := r.db.WithContext(ctx).Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	canonicals := make([]food.CanonicalIngredient, len(models))
	for i := range models {
		canonicals[i] = ModelToCanonical(&models[i])
	}
	return canonicals, nil
}

// FindPreferences returns one user's ingredient preferences
func (r *FoodItemRepository) FindPreferences(ctx context.Context, userID uuid.UUID) ([]food.Preference, error) {
	var models []IngredientPreferenceModel

	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	preferences := make([]food.Preference, len(models))
	for i := range models {
		preferences[i] = ModelToPreference(&models[i])
	}
	return preferences, nil
}

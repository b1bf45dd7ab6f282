package graph

import (
	"go.uber.org/zap"

	"github.com/platewise/platewise/internal/domain/food"
)

// Resolver resolves canonical ingredient references against a graph
// context, honoring the owning user's substitution preferences.
type Resolver struct {
	logger *zap.Logger
}

// NewResolver creates a canonical resolver.
func NewResolver(logger *zap.Logger) *Resolver {
	return &Resolver{logger: logger.Named("canonical-resolver")}
}

// Resolve maps a canonical ID to a leaf source. A preference naming a
// concrete item wins; otherwise a virtual item is synthesized from the
// canonical's default macros. Returns ok=false for an unknown canonical
// ID; callers skip the edge with a warning rather than failing.
func (r *Resolver) Resolve(gc *food.GraphContext, canonicalID string) (food.LeafSource, bool) {
	if pref, ok := gc.Preferences[canonicalID]; ok && pref.SpecificFoodItemID != nil {
		if item, ok := gc.Items[*pref.SpecificFoodItemID]; ok {
			return food.ConcreteLeaf(item, true), true
		}
		r.logger.Warn("Preferred item missing from context, using canonical defaults",
			zap.String("canonical_id", canonicalID),
			zap.String("food_item_id", *pref.SpecificFoodItemID),
		)
	}

	if c, ok := gc.Canonicals[canonicalID]; ok {
		return food.SynthesizedLeaf(c), true
	}

	return food.LeafSource{}, false
}

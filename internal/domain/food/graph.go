package food

import (
	"sort"
	"time"
)

// StorageMode describes how an edge's quantity is stored.
type StorageMode string

const (
	StorageAbsolute     StorageMode = "absolute"
	StorageProportional StorageMode = "proportional"
)

// Edge is one "is used in" link in the recipe graph. Exactly one of
// CanonicalID and ChildID is set; they are mutually exclusive
// resolution paths. For leaf children AmountG is grams; for meal/snack
// children it is servings of the child per serving of the parent.
type Edge struct {
	ParentID    string
	CanonicalID *string
	ChildID     *string
	AmountG     float64
	Proportion  *float64
	StorageMode StorageMode
	SortOrder   int
}

// Node carries recipe-level metadata for a food item that acts as a
// recipe root or sub-recipe.
type Node struct {
	FoodItemID      string
	BaseServingG    float64
	PrepTimeMinutes int
	CookTimeMinutes int
	PrepSteps       []string
	BatchPrepNotes  string
}

// GraphContext is an indexed, immutable snapshot of every record
// visible to one owner scope. It is built on demand by the loader and
// must be treated as read-only for the duration of a traversal.
type GraphContext struct {
	Items         map[string]Item
	EdgesByParent map[string][]Edge
	Nodes         map[string]Node
	Canonicals    map[string]CanonicalIngredient
	Preferences   map[string]Preference
	LoadedAt      time.Time
}

// NewGraphContext indexes the raw record slices. Edges are grouped by
// parent and ordered by SortOrder so traversal is deterministic.
func NewGraphContext(
	items []Item,
	edges []Edge,
	nodes []Node,
	canonicals []CanonicalIngredient,
	preferences []Preference,
) *GraphContext {
	gc := &GraphContext{
		Items:         make(map[string]Item, len(items)),
		EdgesByParent: make(map[string][]Edge),
		Nodes:         make(map[string]Node, len(nodes)),
		Canonicals:    make(map[string]CanonicalIngredient, len(canonicals)),
		Preferences:   make(map[string]Preference, len(preferences)),
		LoadedAt:      time.Now(),
	}

	for _, item := range items {
		gc.Items[item.ID] = item
	}
	for _, edge := range edges {
		gc.EdgesByParent[edge.ParentID] = append(gc.EdgesByParent[edge.ParentID], edge)
	}
	for parent := range gc.EdgesByParent {
		siblings := gc.EdgesByParent[parent]
		sort.SliceStable(siblings, func(i, j int) bool {
			return siblings[i].SortOrder < siblings[j].SortOrder
		})
	}
	for _, node := range nodes {
		gc.Nodes[node.FoodItemID] = node
	}
	for _, c := range canonicals {
		gc.Canonicals[c.ID] = c
	}
	for _, p := range preferences {
		gc.Preferences[p.CanonicalID] = p
	}

	return gc
}

package graph

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/platewise/platewise/internal/application/nutrition"
	"github.com/platewise/platewise/internal/domain/food"
	"github.com/platewise/platewise/internal/infrastructure/cache"
	"github.com/platewise/platewise/internal/infrastructure/monitoring"
	"github.com/platewise/platewise/pkg/errors"
)

// Engine flattens recipe graphs into quantified leaf-ingredient lists.
// Results are cached per (owner scope, root, scale) with their own TTL.
type Engine struct {
	loader     *Loader
	resolver   *Resolver
	aggregator *nutrition.Aggregator
	results    *cache.Store[*food.Flattened]
	metrics    *monitoring.Metrics
	logger     *zap.Logger
	topN       int
}

// NewEngine creates a flattening engine. topN bounds the ranked
// micronutrient list on results.
func NewEngine(
	loader *Loader,
	resolver *Resolver,
	aggregator *nutrition.Aggregator,
	results *cache.Store[*food.Flattened],
	metrics *monitoring.Metrics,
	logger *zap.Logger,
	topN int,
) *Engine {
	return &Engine{
		loader:     loader,
		resolver:   resolver,
		aggregator: aggregator,
		results:    results,
		metrics:    metrics,
		logger:     logger.Named("flatten-engine"),
		topN:       topN,
	}
}

// Flatten resolves the recipe rooted at rootID to its leaf ingredients
// at the given serving multiplier. Scale is deliberately not
// range-checked; a non-positive scale yields an empty expansion.
func (e *Engine) Flatten(ctx context.Context, rootID string, userID uuid.UUID, scaleFactor float64) (*food.Flattened, error) {
	key := resultKey(userID, rootID, scaleFactor)
	if fl, ok := e.results.Get(key); ok {
		e.metrics.ObserveCache(e.results.Name(), true)
		return fl, nil
	}
	e.metrics.ObserveCache(e.results.Name(), false)

	gc, err := e.loader.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	fl, err := e.FlattenWithContext(gc, rootID, scaleFactor)
	if err != nil {
		return nil, err
	}

	e.results.Set(key, fl)
	return fl, nil
}

// FlattenWithContext flattens against an already loaded context,
// bypassing both caches. Used when a caller fans out over many roots of
// the same owner scope.
func (e *Engine) FlattenWithContext(gc *food.GraphContext, rootID string, scaleFactor float64) (*food.Flattened, error) {
	started := time.Now()

	root, ok := gc.Items[rootID]
	if !ok {
		return nil, errors.NewFoodItemNotFoundError(rootID)
	}

	amounts, cycleDetected, maxDepth := e.traverse(gc, rootID, scaleFactor)
	if cycleDetected {
		e.logger.Warn("Cycle detected in recipe graph, branch truncated",
			zap.String("root_id", rootID),
		)
	}

	ingredients := make([]food.FlattenedIngredient, 0, len(amounts))
	for _, fi := range amounts {
		ingredients = append(ingredients, *fi)
	}
	sort.Slice(ingredients, func(i, j int) bool {
		if ingredients[i].AmountG != ingredients[j].AmountG {
			return ingredients[i].AmountG > ingredients[j].AmountG
		}
		return ingredients[i].ID < ingredients[j].ID
	})

	totals, ranked, _ := e.aggregator.Aggregate(ingredients)

	fl := &food.Flattened{
		RootID:         rootID,
		RootName:       root.Name,
		ScaleFactor:    scaleFactor,
		Ingredients:    ingredients,
		Nutrition:      totals,
		Micronutrients: nutrition.TopN(ranked, e.topN),
		CycleDetected:  cycleDetected,
		MaxDepth:       maxDepth,
	}
	if node, ok := gc.Nodes[rootID]; ok {
		fl.PrepTimeMinutes = node.PrepTimeMinutes
		fl.CookTimeMinutes = node.CookTimeMinutes
		fl.PrepSteps = node.PrepSteps
		fl.BatchPrepNotes = node.BatchPrepNotes
	}

	e.metrics.ObserveFlatten(time.Since(started), cycleDetected)
	return fl, nil
}

// frame is one node being expanded on the traversal stack, with a
// cursor into its ordered edge list.
type frame struct {
	nodeID   string
	servings float64
	edges    []food.Edge
	next     int
}

// traverse walks the graph depth-first with an explicit stack. The path
// set tracks the nodes on the current root-to-frame chain; revisiting
// one marks cycleDetected and truncates that branch, which bounds the
// stack by the number of distinct nodes.
func (e *Engine) traverse(gc *food.GraphContext, rootID string, scale float64) (map[string]*food.FlattenedIngredient, bool, int) {
	out := make(map[string]*food.FlattenedIngredient)
	cycleDetected := false
	maxDepth := 0

	path := map[string]struct{}{rootID: {}}
	stack := []*frame{{nodeID: rootID, servings: scale, edges: gc.EdgesByParent[rootID]}}

	for len(stack) > 0 {
		if len(stack) > maxDepth {
			maxDepth = len(stack)
		}
		top := stack[len(stack)-1]
		if top.next >= len(top.edges) {
			delete(path, top.nodeID)
			stack = stack[:len(stack)-1]
			continue
		}
		edge := top.edges[top.next]
		top.next++

		amountG := edgeAmount(gc, top.nodeID, edge)

		switch {
		case edge.CanonicalID != nil:
			src, ok := e.resolver.Resolve(gc, *edge.CanonicalID)
			if !ok {
				e.logger.Warn("Unknown canonical ingredient, edge skipped",
					zap.String("parent_id", top.nodeID),
					zap.String("canonical_id", *edge.CanonicalID),
				)
				continue
			}
			accumulate(out, src, amountG*top.servings)

		case edge.ChildID != nil:
			child, ok := gc.Items[*edge.ChildID]
			if !ok {
				e.logger.Warn("Missing child food item, edge skipped",
					zap.String("parent_id", top.nodeID),
					zap.String("child_id", *edge.ChildID),
				)
				continue
			}
			if child.Kind.IsLeaf() {
				accumulate(out, food.ConcreteLeaf(child, false), amountG*top.servings)
				continue
			}
			// Sub-recipe edge: the amount is servings of the child
			// per serving of the parent, not grams.
			childServings := top.servings * amountG
			if childServings <= 0 {
				continue
			}
			if _, onPath := path[child.ID]; onPath {
				cycleDetected = true
				continue
			}
			path[child.ID] = struct{}{}
			stack = append(stack, &frame{
				nodeID:   child.ID,
				servings: childServings,
				edges:    gc.EdgesByParent[child.ID],
			})
		}
	}

	return out, cycleDetected, maxDepth
}

// edgeAmount computes the grams (or child servings) carried by an edge.
// Proportional storage applies only when a proportion is present and
// the parent has a positive base serving; everything else falls back to
// the fixed amount, which defaults to zero.
func edgeAmount(gc *food.GraphContext, parentID string, edge food.Edge) float64 {
	if edge.StorageMode == food.StorageProportional && edge.Proportion != nil {
		if node, ok := gc.Nodes[parentID]; ok && node.BaseServingG > 0 {
			return *edge.Proportion * node.BaseServingG
		}
	}
	return edge.AmountG
}

// accumulate merges a contribution into the output map. The nutrition
// snapshot is taken on first encounter of a leaf ID; later
// contributions only add grams.
func accumulate(out map[string]*food.FlattenedIngredient, src food.LeafSource, grams float64) {
	id := src.ID()
	if existing, ok := out[id]; ok {
		existing.AmountG += grams
		return
	}
	fi := src.Snapshot()
	fi.AmountG = grams
	out[id] = &fi
}

// InvalidateResults drops cached flatten results for one user, or all
// users when userID is nil.
func (e *Engine) InvalidateResults(userID *uuid.UUID) {
	if userID == nil {
		e.results.Purge()
		return
	}
	e.results.DeletePrefix(userID.String())
}

// ResultCacheStats exposes the flatten result cache counters.
func (e *Engine) ResultCacheStats() cache.Stats {
	return e.results.Stats()
}

func resultKey(userID uuid.UUID, rootID string, scale float64) string {
	return userID.String() + "|" + rootID + "|" + strconv.FormatFloat(scale, 'g', -1, 64)
}

// Package planner combines plan entries, flattened recipes and
// supplements into day, range and batch-prep nutrition statistics.
package planner

import (
	"time"

	"go.uber.org/zap"

	"github.com/platewise/platewise/internal/application/graph"
	"github.com/platewise/platewise/internal/application/nutrition"
	"github.com/platewise/platewise/internal/infrastructure/monitoring"
	"github.com/platewise/platewise/internal/ports/outbound"
)

// Options tunes the planner's fan-out and bounds.
type Options struct {
	// FanOutLimit bounds concurrent flatten operations during batch
	// and range computations.
	FanOutLimit int
	// BatchEntryCap bounds how many plan entries one batch-prep call
	// may reference.
	BatchEntryCap int
	// TopN bounds ranked micronutrient lists on results.
	TopN int
}

func (o Options) withDefaults() Options {
	if o.FanOutLimit <= 0 {
		o.FanOutLimit = 8
	}
	if o.BatchEntryCap <= 0 {
		o.BatchEntryCap = 100
	}
	if o.TopN <= 0 {
		o.TopN = 10
	}
	return o
}

// Service orchestrates day-level and batch-level nutrition computation.
type Service struct {
	loader     *graph.Loader
	engine     *graph.Engine
	aggregator *nutrition.Aggregator
	plans      outbound.PlanRepository
	metrics    *monitoring.Metrics
	logger     *zap.Logger
	opts       Options

	// now is replaceable in tests; auto-consume classification
	// depends on the current day and time.
	now func() time.Time
}

// NewService creates a planner service.
func NewService(
	loader *graph.Loader,
	engine *graph.Engine,
	aggregator *nutrition.Aggregator,
	plans outbound.PlanRepository,
	metrics *monitoring.Metrics,
	logger *zap.Logger,
	opts Options,
) *Service {
	return &Service{
		loader:     loader,
		engine:     engine,
		aggregator: aggregator,
		plans:      plans,
		metrics:    metrics,
		logger:     logger.Named("planner"),
		opts:       opts.withDefaults(),
		now:        time.Now,
	}
}

package gorm

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platewise/platewise/internal/domain/plan"
	"github.com/platewise/platewise/internal/ports/outbound"
)

// PlanRepository implements the plan repository interface using GORM
type PlanRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *gorm.DB) outbound.PlanRepository {
	return &PlanRepository{db: db}
}

// FindEntriesByDate returns one user's plan entries for a day, ordered
// by scheduled time
func (r *PlanRepository) FindEntriesByDate(ctx context.Context, userID uuid.UUID, date string) ([]plan.Entry, error) {
	var models []PlanEntryModel

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("scheduled_at, id").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]plan.Entry, len(models))
	for i := range models {
		entries[i] = ModelToPlanEntry(&models[i])
	}
	return entries, nil
}

// FindEntriesByIDs returns the user's entries matching the given IDs.
// IDs belonging to other users are silently absent from the result.
func (r *PlanRepository) FindEntriesByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]plan.Entry, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var models []PlanEntryModel

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Order("scheduled_at, id").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]plan.Entry, len(models))
	for i := range models {
		entries[i] = ModelToPlanEntry(&models[i])
	}
	return entries, nil
}

// FindConsumedEntryIDs returns the set of entry IDs with an explicit
// consumption record for the given day
func (r *PlanRepository) FindConsumedEntryIDs(ctx context.Context, userID uuid.UUID, date string) (map[uuid.UUID]bool, error) {
	var models []ConsumptionModel

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	consumed := make(map[uuid.UUID]bool, len(models))
	for i := range models {
		consumed[models[i].PlanEntryID] = true
	}
	return consumed, nil
}

// FindActiveSupplements returns the user's active supplement schedule
func (r *PlanRepository) FindActiveSupplements(ctx context.Context, userID uuid.UUID) ([]plan.Supplement, error) {
	var models []SupplementModel

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	supplements := make([]plan.Supplement, len(models))
	for i := range models {
		supplements[i] = ModelToSupplement(&models[i])
	}
	return supplements, nil
}

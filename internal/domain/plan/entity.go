// Package plan contains the meal-planning domain model: planned
// entries, supplements, and the derived day/range/batch statistics.
package plan

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire format for plan dates.
const DateLayout = "2006-01-02"

// Entry is one planned food occurrence on a day. For ingredient and
// product items ScaleFactor is grams; for meal and snack items it is a
// serving multiplier.
type Entry struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Date        string
	FoodItemID  string
	ScaleFactor float64
	Logged      bool
	ScheduledAt time.Time
}

// Supplement is a recurring supplement intake. Its grams contribution
// is AmountG multiplied by ServingCount.
type Supplement struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	FoodItemID   string
	AmountG      float64
	ServingCount int
	Active       bool
}

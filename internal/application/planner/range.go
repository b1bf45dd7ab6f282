package planner

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/platewise/platewise/internal/domain/plan"
	"github.com/platewise/platewise/pkg/errors"
)

// maxRangeDays bounds one analytics request to a year of days.
const maxRangeDays = 366

// stableBandPercent is the split-half change band treated as "stable".
const stableBandPercent = 10

// Analytics computes averaged daily stats, split-half trends and a
// consistency score over an inclusive date range. Days are computed
// concurrently; a day that fails is logged and excluded rather than
// failing the range.
func (s *Service) Analytics(ctx context.Context, userID uuid.UUID, startDate, endDate string) (*plan.RangeAnalytics, error) {
	start, err := time.Parse(plan.DateLayout, startDate)
	if err != nil {
		return nil, errors.NewInvalidDateRangeError("invalid start date: " + startDate)
	}
	end, err := time.Parse(plan.DateLayout, endDate)
	if err != nil {
		return nil, errors.NewInvalidDateRangeError("invalid end date: " + endDate)
	}
	if end.Before(start) {
		return nil, errors.NewInvalidDateRangeError("end date precedes start date")
	}

	dayCount := int(end.Sub(start).Hours()/24) + 1
	if dayCount > maxRangeDays {
		return nil, errors.NewInvalidDateRangeError("range exceeds one year")
	}

	days := make([]*plan.DailyStats, dayCount)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.FanOutLimit)
	for i := 0; i < dayCount; i++ {
		i := i
		date := start.AddDate(0, 0, i).Format(plan.DateLayout)
		g.Go(func() error {
			stats, err := s.DailyStats(gctx, userID, date, true, false)
			if err != nil {
				s.logger.Warn("Daily stats failed for range day, day excluded",
					zap.String("date", date),
					zap.Error(err),
				)
				s.metrics.ObserveDegraded()
				return nil
			}
			mu.Lock()
			days[i] = stats
			mu.Unlock()
			return nil
		})
	}
	// Per-day failures are contained above, so the only group error
	// is context cancellation.
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "range computation interrupted")
	}

	computed := make([]*plan.DailyStats, 0, dayCount)
	for _, day := range days {
		if day != nil {
			computed = append(computed, day)
		}
	}
	if len(computed) == 0 {
		return nil, errors.NewStoreUnavailableError("compute range analytics", nil)
	}

	analytics := &plan.RangeAnalytics{
		StartDate: startDate,
		EndDate:   endDate,
		DayCount:  len(computed),
	}

	calories := make([]float64, len(computed))
	protein := make([]float64, len(computed))
	for i, day := range computed {
		calories[i] = day.Totals.Calories
		protein[i] = day.Totals.Protein
		analytics.AvgCalories += day.Totals.Calories
		analytics.AvgProtein += day.Totals.Protein
		analytics.AvgCarbs += day.Totals.Carbs
		analytics.AvgFat += day.Totals.Fat
		analytics.AvgVitaminScore += day.VitaminScore
		analytics.AvgMineralScore += day.MineralScore
		analytics.AvgOverallScore += day.OverallScore
	}
	n := float64(len(computed))
	analytics.AvgCalories /= n
	analytics.AvgProtein /= n
	analytics.AvgCarbs /= n
	analytics.AvgFat /= n
	analytics.AvgVitaminScore /= n
	analytics.AvgMineralScore /= n
	analytics.AvgOverallScore /= n

	analytics.CalorieTrend = splitHalfTrend(calories)
	analytics.ProteinTrend = splitHalfTrend(protein)
	analytics.ConsistencyScore = consistencyScore(calories)

	return analytics, nil
}

// splitHalfTrend compares the mean of the second half of the series
// against the first half. Changes within the stable band are "stable".
func splitHalfTrend(series []float64) plan.Trend {
	if len(series) < 2 {
		return plan.Trend{Direction: plan.TrendStable}
	}

	half := len(series) / 2
	firstAvg := mean(series[:half])
	secondAvg := mean(series[len(series)-half:])

	if firstAvg == 0 {
		return plan.Trend{Direction: plan.TrendStable}
	}

	change := (secondAvg - firstAvg) / firstAvg * 100
	trend := plan.Trend{PercentChange: change}
	switch {
	case math.Abs(change) <= stableBandPercent:
		trend.Direction = plan.TrendStable
	case change > 0:
		trend.Direction = plan.TrendIncreasing
	default:
		trend.Direction = plan.TrendDecreasing
	}
	return trend
}

// consistencyScore is max(0, 100 - CV*100) over days with nonzero
// calories, where CV is the coefficient of variation.
func consistencyScore(calories []float64) float64 {
	nonzero := make([]float64, 0, len(calories))
	for _, c := range calories {
		if c > 0 {
			nonzero = append(nonzero, c)
		}
	}
	if len(nonzero) == 0 {
		return 0
	}

	m := mean(nonzero)
	var variance float64
	for _, c := range nonzero {
		variance += (c - m) * (c - m)
	}
	variance /= float64(len(nonzero))
	cv := math.Sqrt(variance) / m

	return math.Max(0, 100-cv*100)
}

func mean(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	var sum float64
	for _, v := range series {
		sum += v
	}
	return sum / float64(len(series))
}

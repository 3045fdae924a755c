package metrics

import (
	"time"

	"github.com/secmon-lab/tessera/pkg/domain/model"
	"github.com/secmon-lab/tessera/pkg/domain/types"
)

const (
	// TrendDays is the number of calendar days in the execution trend
	TrendDays = 14

	dateLayout = "2006-01-02"
)

// TrendWindow returns the fetch window of a trend ending at asOf: from midnight of the
// first skeleton day up to asOf
func TrendWindow(asOf time.Time, days int) (from, to time.Time) {
	first := asOf.AddDate(0, 0, -(days - 1))
	from = time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, asOf.Location())
	return from, asOf
}

// TrendSkeleton returns one zero-valued point per calendar day, oldest first, ending at asOf
func TrendSkeleton(asOf time.Time, days int) []model.TrendPoint {
	if days <= 0 {
		return []model.TrendPoint{}
	}

	points := make([]model.TrendPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		points = append(points, model.TrendPoint{
			Date: asOf.AddDate(0, 0, -i).Format(dateLayout),
		})
	}
	return points
}

// BuildTrend folds executions into the skeleton. The calendar day of an execution is taken in
// asOf's location; executions outside the skeleton or after asOf are ignored.
func BuildTrend(asOf time.Time, days int, executions []*model.TestExecution) []model.TrendPoint {
	points := TrendSkeleton(asOf, days)

	index := make(map[string]int, len(points))
	for i, p := range points {
		index[p.Date] = i
	}

	for _, exec := range executions {
		if exec == nil || exec.StartedAt.After(asOf) {
			continue
		}

		key := exec.StartedAt.In(asOf.Location()).Format(dateLayout)
		i, ok := index[key]
		if !ok {
			continue
		}

		switch exec.Status {
		case types.ExecutionStatusPassed:
			points[i].Passed++
		case types.ExecutionStatusFailed:
			points[i].Failed++
		case types.ExecutionStatusSkipped:
			points[i].Skipped++
		}
	}

	return points
}

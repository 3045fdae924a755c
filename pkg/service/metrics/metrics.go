package metrics

import (
	"math"
	"time"

	"github.com/secmon-lab/tessera/pkg/domain/model"
	"github.com/secmon-lab/tessera/pkg/domain/types"
)

const (
	// AnalyticsWindow is the lookback of the analytics endpoints
	AnalyticsWindow = 30 * 24 * time.Hour
	// DashboardWindow is the lookback of the dashboard headline numbers
	DashboardWindow = 7 * 24 * time.Hour
)

// Window returns [asOf - lookback, asOf]
func Window(asOf time.Time, lookback time.Duration) (from, to time.Time) {
	return asOf.Add(-lookback), asOf
}

// Percentage returns part/whole*100 rounded to 2 decimals, or 0 when whole is 0
func Percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*100*100) / 100
}

// SummarizeExecutions counts executions started within [from, to] by status.
// Statuses other than Passed, Failed and Skipped count toward the total only.
func SummarizeExecutions(totalTestCases int, executions []*model.TestExecution, from, to time.Time) model.ExecutionMetrics {
	result := model.ExecutionMetrics{
		TotalTestCases: totalTestCases,
	}

	for _, exec := range executions {
		if exec == nil || !exec.InWindow(from, to) {
			continue
		}

		result.TotalExecutions++
		switch exec.Status {
		case types.ExecutionStatusPassed:
			result.Passed++
		case types.ExecutionStatusFailed:
			result.Failed++
		case types.ExecutionStatusSkipped:
			result.Skipped++
		}
	}

	result.CoveragePercent = Percentage(result.Passed, totalTestCases)
	return result
}

// SummarizeDefects computes status buckets, the fixed severity distribution and the
// average resolution time of Closed defects
func SummarizeDefects(defects []*model.Defect) model.DefectMetrics {
	result := model.DefaultDefectMetrics()
	bySeverity := make(map[types.Severity]int)

	// Summed in microseconds; a nanosecond time.Duration overflows after ~292 years in total
	var (
		resolutionMicros int64
		resolutionCount  int64
	)

	for _, d := range defects {
		if d == nil {
			continue
		}

		result.Total++
		bySeverity[d.Severity]++

		switch {
		case d.Status.IsActive():
			result.Open++
		case d.Status.IsClosed():
			result.Closed++
		}

		if elapsed, ok := d.ResolutionDuration(); ok {
			resolutionMicros += elapsed.Round(time.Microsecond).Microseconds()
			resolutionCount++
		}
	}

	for i := range result.Distribution {
		result.Distribution[i].Count = bySeverity[result.Distribution[i].Severity]
	}

	if resolutionCount > 0 {
		avg := roundDiv(resolutionMicros, resolutionCount)
		result.AvgResolutionTime = FormatResolutionTime(time.Duration(avg) * time.Microsecond)
	}

	return result
}

// CountHighSeverityActive counts Open/In Progress defects with High or Critical severity
func CountHighSeverityActive(defects []*model.Defect) int {
	count := 0
	for _, d := range defects {
		if d != nil && d.Status.IsActive() && d.Severity.IsHighOrCritical() {
			count++
		}
	}
	return count
}

// CountActive counts Open/In Progress defects
func CountActive(defects []*model.Defect) int {
	count := 0
	for _, d := range defects {
		if d != nil && d.Status.IsActive() {
			count++
		}
	}
	return count
}

// roundDiv divides rounding half away from zero
func roundDiv(a, b int64) int64 {
	q, r := a/b, a%b
	if 2*abs(r) >= abs(b) {
		if (a < 0) != (b < 0) {
			q--
		} else {
			q++
		}
	}
	return q
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

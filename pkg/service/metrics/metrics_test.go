package metrics_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/tessera/pkg/domain/model"
	"github.com/secmon-lab/tessera/pkg/domain/types"
	"github.com/secmon-lab/tessera/pkg/service/metrics"
)

var asOf = time.Date(2024, 3, 20, 15, 30, 0, 0, time.UTC)

func newExecution(status types.ExecutionStatus, startedAt time.Time) *model.TestExecution {
	return &model.TestExecution{
		ID:         types.NewExecutionID(),
		TestCaseID: types.NewTestCaseID(),
		Status:     status,
		StartedAt:  startedAt,
	}
}

func newDefect(status types.DefectStatus, severity types.Severity, created time.Time, resolvedAfter time.Duration) *model.Defect {
	return &model.Defect{
		ID:        types.NewDefectID(),
		ProjectID: "project-1",
		Status:    status,
		Severity:  severity,
		CreatedAt: created,
		UpdatedAt: created.Add(resolvedAfter),
	}
}

func TestSummarizeExecutions(t *testing.T) {
	t.Run("counts statuses within the 30 day window", func(t *testing.T) {
		executions := []*model.TestExecution{
			newExecution(types.ExecutionStatusPassed, asOf.Add(-1*time.Hour)),
			newExecution(types.ExecutionStatusPassed, asOf.Add(-24*time.Hour)),
			newExecution(types.ExecutionStatusPassed, asOf.Add(-5*24*time.Hour)),
			newExecution(types.ExecutionStatusPassed, asOf.Add(-20*24*time.Hour)),
			newExecution(types.ExecutionStatusPassed, asOf.Add(-29*24*time.Hour)),
			newExecution(types.ExecutionStatusFailed, asOf.Add(-2*time.Hour)),
			newExecution(types.ExecutionStatusFailed, asOf.Add(-3*24*time.Hour)),
			newExecution(types.ExecutionStatusSkipped, asOf.Add(-10*24*time.Hour)),
			// outside of the window
			newExecution(types.ExecutionStatusPassed, asOf.Add(-31*24*time.Hour)),
			newExecution(types.ExecutionStatusFailed, asOf.Add(time.Hour)),
		}

		from, to := metrics.Window(asOf, metrics.AnalyticsWindow)
		got := metrics.SummarizeExecutions(10, executions, from, to)

		gt.Equal(t, got, model.ExecutionMetrics{
			TotalTestCases:  10,
			TotalExecutions: 8,
			Passed:          5,
			Failed:          2,
			Skipped:         1,
			CoveragePercent: 50.0,
		})
	})

	t.Run("lower bound is inclusive", func(t *testing.T) {
		from, to := metrics.Window(asOf, metrics.AnalyticsWindow)
		executions := []*model.TestExecution{
			newExecution(types.ExecutionStatusPassed, from),
			newExecution(types.ExecutionStatusPassed, from.Add(-time.Nanosecond)),
		}

		got := metrics.SummarizeExecutions(4, executions, from, to)
		gt.Equal(t, got.TotalExecutions, 1)
		gt.Equal(t, got.CoveragePercent, 25.0)
	})

	t.Run("zero test cases yields zero coverage", func(t *testing.T) {
		from, to := metrics.Window(asOf, metrics.AnalyticsWindow)
		executions := []*model.TestExecution{
			newExecution(types.ExecutionStatusPassed, asOf.Add(-time.Hour)),
		}

		got := metrics.SummarizeExecutions(0, executions, from, to)
		gt.Equal(t, got.Passed, 1)
		gt.Equal(t, got.CoveragePercent, 0.0)
	})

	t.Run("unknown statuses count toward total only", func(t *testing.T) {
		from, to := metrics.Window(asOf, metrics.AnalyticsWindow)
		executions := []*model.TestExecution{
			newExecution(types.ExecutionStatusRunning, asOf.Add(-time.Hour)),
			newExecution("Flaky", asOf.Add(-time.Hour)),
		}

		got := metrics.SummarizeExecutions(3, executions, from, to)
		gt.Equal(t, got.TotalExecutions, 2)
		gt.Equal(t, got.Passed+got.Failed+got.Skipped, 0)
	})

	t.Run("coverage is not bounded by 100", func(t *testing.T) {
		from, to := metrics.Window(asOf, metrics.AnalyticsWindow)
		executions := []*model.TestExecution{
			newExecution(types.ExecutionStatusPassed, asOf.Add(-time.Hour)),
			newExecution(types.ExecutionStatusPassed, asOf.Add(-2*time.Hour)),
			newExecution(types.ExecutionStatusPassed, asOf.Add(-3*time.Hour)),
		}

		got := metrics.SummarizeExecutions(2, executions, from, to)
		gt.Equal(t, got.CoveragePercent, 150.0)
	})
}

func TestPercentage(t *testing.T) {
	testCases := []struct {
		name     string
		part     int
		whole    int
		expected float64
	}{
		{"zero denominator", 5, 0, 0},
		{"half", 5, 10, 50},
		{"rounds to two decimals", 1, 3, 33.33},
		{"rounds up", 2, 3, 66.67},
		{"full", 7, 7, 100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gt.Equal(t, metrics.Percentage(tc.part, tc.whole), tc.expected)
		})
	}
}

func TestSummarizeDefects(t *testing.T) {
	created := asOf.Add(-10 * 24 * time.Hour)

	t.Run("buckets and distribution", func(t *testing.T) {
		defects := []*model.Defect{
			newDefect(types.DefectStatusOpen, types.SeverityCritical, created, time.Hour),
			newDefect(types.DefectStatusInProgress, types.SeverityHigh, created, time.Hour),
			newDefect(types.DefectStatusOpen, types.SeverityHigh, created, time.Hour),
			newDefect(types.DefectStatusClosed, types.SeverityLow, created, 2*time.Hour),
			newDefect(types.DefectStatusClosed, types.SeverityLow, created, 4*time.Hour),
			newDefect(types.DefectStatusReopened, types.SeverityLow, created, time.Hour),
		}

		got := metrics.SummarizeDefects(defects)
		gt.Equal(t, got.Total, 6)
		gt.Equal(t, got.Open, 3)
		gt.Equal(t, got.Closed, 2)
		gt.Equal(t, got.Distribution, []model.SeverityCount{
			{Severity: types.SeverityCritical, Count: 1},
			{Severity: types.SeverityHigh, Count: 2},
			{Severity: types.SeverityMedium, Count: 0},
			{Severity: types.SeverityLow, Count: 3},
		})
		gt.Equal(t, got.AvgResolutionTime, "3:00:00")
	})

	t.Run("no closed defects reports N/A", func(t *testing.T) {
		defects := []*model.Defect{
			newDefect(types.DefectStatusOpen, types.SeverityMedium, created, time.Hour),
		}

		got := metrics.SummarizeDefects(defects)
		gt.Equal(t, got.AvgResolutionTime, "N/A")
		gt.Equal(t, got.Closed, 0)
	})

	t.Run("empty input keeps the four canonical levels", func(t *testing.T) {
		got := metrics.SummarizeDefects(nil)
		gt.Equal(t, got.Total, 0)
		gt.A(t, got.Distribution).Length(4)
		gt.Equal(t, got.Distribution, model.EmptyDistribution())
		gt.Equal(t, got.AvgResolutionTime, model.ResolutionTimeNotAvailable)
	})

	t.Run("distribution sums to total for known severities", func(t *testing.T) {
		defects := []*model.Defect{
			newDefect(types.DefectStatusOpen, types.SeverityMedium, created, time.Hour),
			newDefect(types.DefectStatusClosed, types.SeverityMedium, created, 36*time.Hour),
			newDefect(types.DefectStatusOpen, types.SeverityCritical, created, time.Hour),
		}

		got := metrics.SummarizeDefects(defects)
		sum := 0
		for _, c := range got.Distribution {
			sum += c.Count
		}
		gt.Equal(t, sum, got.Total)
		gt.Equal(t, got.AvgResolutionTime, "1 day, 12:00:00")
	})

	t.Run("many long-lived closed defects do not overflow the average", func(t *testing.T) {
		defects := make([]*model.Defect, 0, 4000)
		for range 4000 {
			defects = append(defects, newDefect(types.DefectStatusClosed, types.SeverityLow, created, 30*24*time.Hour))
		}

		got := metrics.SummarizeDefects(defects)
		gt.Equal(t, got.Closed, 4000)
		gt.Equal(t, got.AvgResolutionTime, "30 days, 0:00:00")
	})

	t.Run("average rounds to the microsecond", func(t *testing.T) {
		defects := []*model.Defect{
			newDefect(types.DefectStatusClosed, types.SeverityLow, created, time.Second),
			newDefect(types.DefectStatusClosed, types.SeverityLow, created, time.Second+time.Microsecond),
		}

		got := metrics.SummarizeDefects(defects)
		gt.Equal(t, got.AvgResolutionTime, "0:00:01.000001")
	})
}

func TestCountHighSeverityActive(t *testing.T) {
	created := asOf.Add(-24 * time.Hour)
	defects := []*model.Defect{
		newDefect(types.DefectStatusOpen, types.SeverityCritical, created, 0),
		newDefect(types.DefectStatusInProgress, types.SeverityHigh, created, 0),
		newDefect(types.DefectStatusClosed, types.SeverityCritical, created, time.Hour),
		newDefect(types.DefectStatusOpen, types.SeverityLow, created, 0),
	}

	gt.Equal(t, metrics.CountHighSeverityActive(defects), 2)
	gt.Equal(t, metrics.CountActive(defects), 3)
}

func TestFormatResolutionTime(t *testing.T) {
	testCases := []struct {
		name     string
		input    time.Duration
		expected string
	}{
		{"zero", 0, "0:00:00"},
		{"minutes", 90 * time.Second, "0:01:30"},
		{"hours", 5*time.Hour + 7*time.Minute + 9*time.Second, "5:07:09"},
		{"one day", 24*time.Hour + time.Hour, "1 day, 1:00:00"},
		{"several days", 3*24*time.Hour + 30*time.Minute, "3 days, 0:30:00"},
		{"microseconds", 2*time.Second + 500*time.Millisecond, "0:00:02.500000"},
		{"negative", -time.Second, "-1 day, 23:59:59"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gt.Equal(t, metrics.FormatResolutionTime(tc.input), tc.expected)
		})
	}
}

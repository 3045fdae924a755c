package model

import "github.com/secmon-lab/tessera/pkg/domain/types"

// ResolutionTimeNotAvailable is reported as average resolution time when no defect is Closed
const ResolutionTimeNotAvailable = "N/A"

// ExecutionMetrics summarizes executions of a project within a time window
type ExecutionMetrics struct {
	TotalTestCases  int     `json:"totalTestCases"`
	TotalExecutions int     `json:"totalExecutions"`
	Passed          int     `json:"passed"`
	Failed          int     `json:"failed"`
	Skipped         int     `json:"skipped"`
	CoveragePercent float64 `json:"coveragePercent"`
}

// SeverityCount is one entry of the severity distribution
type SeverityCount struct {
	Severity types.Severity `json:"severity"`
	Count    int            `json:"count"`
}

// DefectMetrics summarizes defects of a project
type DefectMetrics struct {
	Total             int             `json:"total"`
	Open              int             `json:"open"`
	Closed            int             `json:"closed"`
	Distribution      []SeverityCount `json:"distribution"`
	AvgResolutionTime string          `json:"avgResolutionTime"`
}

// TrendPoint is the per-day execution count of the trend series
type TrendPoint struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Passed  int    `json:"passed"`
	Failed  int    `json:"failed"`
	Skipped int    `json:"skipped"`
}

// EmptyDistribution returns the canonical four-level distribution with zero counts
func EmptyDistribution() []SeverityCount {
	severities := types.Severities()
	dist := make([]SeverityCount, 0, len(severities))
	for _, sev := range severities {
		dist = append(dist, SeverityCount{Severity: sev})
	}
	return dist
}

// DefaultDefectMetrics is the fail-safe defect metrics shape
func DefaultDefectMetrics() DefectMetrics {
	return DefectMetrics{
		Distribution:      EmptyDistribution(),
		AvgResolutionTime: ResolutionTimeNotAvailable,
	}
}

// Computed carries the outcome of an aggregation. A degraded result holds the documented
// default in Value and the swallowed failure in Cause; callers always get a renderable value.
type Computed[T any] struct {
	Value    T
	Degraded bool
	Cause    error
}

// Succeeded returns a successful result
func Succeeded[T any](v T) Computed[T] {
	return Computed[T]{Value: v}
}

// Degrade returns a degraded result carrying the default value
func Degrade[T any](fallback T, cause error) Computed[T] {
	return Computed[T]{Value: fallback, Degraded: true, Cause: cause}
}

package model

import "time"

// Metric card identifiers rendered by the dashboard
const (
	MetricCardTestCases = "test-cases"
	MetricCardDefects   = "defects"
	MetricCardPassed    = "passed"
	MetricCardCoverage  = "coverage"
)

// DashboardStats is the 7-day headline slice computed for the dashboard
type DashboardStats struct {
	TotalTestCases      int     `json:"totalTestCases"`
	TotalExecutions     int     `json:"totalExecutions"`
	PassedExecutions    int     `json:"passedExecutions"`
	ActiveDefects       int     `json:"activeDefects"`
	HighSeverityDefects int     `json:"highSeverityDefects"`
	PassedPercentage    float64 `json:"passedPercentage"`
	TestCoverage        float64 `json:"testCoverage"`
}

// MetricCard is one headline number of the dashboard
type MetricCard struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Value       string `json:"value"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// QuickAction is a static navigation shortcut shown on the dashboard
type QuickAction struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// Dashboard is the composed dashboard response
type Dashboard struct {
	Project      *Project       `json:"project"`
	Stats        DashboardStats `json:"stats"`
	Metrics      []MetricCard   `json:"metrics"`
	QuickActions []QuickAction  `json:"quickActions"`
	Suggestions  *Suggestions   `json:"suggestions"`
	GeneratedAt  time.Time      `json:"generatedAt"`
	// Degraded is set when Stats fell back to zeros after a store failure
	Degraded bool `json:"-"`
}

// Card finds a metric card by ID
func (d *Dashboard) Card(id string) *MetricCard {
	for i := range d.Metrics {
		if d.Metrics[i].ID == id {
			return &d.Metrics[i]
		}
	}
	return nil
}

// AnalyticsReport bundles the 30-day analytics for the deeper analytics page
type AnalyticsReport struct {
	Project          *Project         `json:"project"`
	ExecutionMetrics ExecutionMetrics `json:"executionMetrics"`
	DefectMetrics    DefectMetrics    `json:"defectMetrics"`
	Trend            []TrendPoint     `json:"trend"`
	Suggestions      *Suggestions     `json:"suggestions"`
	GeneratedAt      time.Time        `json:"generatedAt"`
	// Degraded is set when any of the metrics fell back to its default
	Degraded bool `json:"-"`
}

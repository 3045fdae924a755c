package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tessera/pkg/domain/interfaces"
	"github.com/secmon-lab/tessera/pkg/domain/model"
	"github.com/secmon-lab/tessera/pkg/domain/types"
	"github.com/secmon-lab/tessera/pkg/service/metrics"
)

// DashboardUseCase composes the project dashboard from a 7-day slice of the project data
type DashboardUseCase struct {
	repo    interfaces.Repository
	advisor interfaces.Advisor
}

// NewDashboardUseCase creates a new DashboardUseCase instance
func NewDashboardUseCase(repo interfaces.Repository, advisor interfaces.Advisor) *DashboardUseCase {
	return &DashboardUseCase{
		repo:    repo,
		advisor: advisor,
	}
}

// Compose builds the dashboard. Only a missing project is an error; store failures while
// computing the numbers yield zeroed stats.
func (uc *DashboardUseCase) Compose(ctx context.Context, projectID types.ProjectID, asOf time.Time) (*model.Dashboard, error) {
	project, err := uc.repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get project", goerr.V("project_id", projectID))
	}

	computed := uc.Stats(ctx, projectID, asOf)
	stats := computed.Value

	return &model.Dashboard{
		Project:      project,
		Stats:        stats,
		Metrics:      buildMetricCards(stats),
		QuickActions: buildQuickActions(projectID),
		Suggestions:  suggest(ctx, uc.advisor, buildDashboardSummary(stats)),
		GeneratedAt:  asOf,
		Degraded:     computed.Degraded,
	}, nil
}

// Stats computes the headline numbers over [asOf-7d, asOf]
func (uc *DashboardUseCase) Stats(ctx context.Context, projectID types.ProjectID, asOf time.Time) model.Computed[model.DashboardStats] {
	totalTestCases, err := uc.repo.CountActiveTestCases(ctx, projectID)
	if err != nil {
		return degrade(ctx, "dashboard_stats", projectID, model.DashboardStats{},
			goerr.Wrap(err, "failed to count test cases"))
	}

	from, to := metrics.Window(asOf, metrics.DashboardWindow)
	executions, err := uc.repo.ListExecutions(ctx, projectID, from, to)
	if err != nil {
		return degrade(ctx, "dashboard_stats", projectID, model.DashboardStats{},
			goerr.Wrap(err, "failed to list executions", goerr.V("from", from), goerr.V("to", to)))
	}

	defects, err := uc.repo.ListDefects(ctx, projectID)
	if err != nil {
		return degrade(ctx, "dashboard_stats", projectID, model.DashboardStats{},
			goerr.Wrap(err, "failed to list defects"))
	}

	summary := metrics.SummarizeExecutions(totalTestCases, executions, from, to)

	return model.Succeeded(model.DashboardStats{
		TotalTestCases:      totalTestCases,
		TotalExecutions:     summary.TotalExecutions,
		PassedExecutions:    summary.Passed,
		ActiveDefects:       metrics.CountActive(defects),
		HighSeverityDefects: metrics.CountHighSeverityActive(defects),
		PassedPercentage:    metrics.Percentage(summary.Passed, summary.TotalExecutions),
		TestCoverage:        metrics.Percentage(summary.Passed, totalTestCases),
	})
}

func buildMetricCards(stats model.DashboardStats) []model.MetricCard {
	return []model.MetricCard{
		{
			ID:          model.MetricCardTestCases,
			Title:       "Total Test Cases",
			Value:       strconv.Itoa(stats.TotalTestCases),
			Description: "Active test cases in this project",
			Icon:        "clipboard-list",
		},
		{
			ID:          model.MetricCardDefects,
			Title:       "Active Defects",
			Value:       strconv.Itoa(stats.ActiveDefects),
			Description: fmt.Sprintf("%d high or critical", stats.HighSeverityDefects),
			Icon:        "bug",
		},
		{
			ID:          model.MetricCardPassed,
			Title:       "Tests Passed",
			Value:       formatPercent(stats.PassedPercentage),
			Description: fmt.Sprintf("%d of %d executions in the last 7 days", stats.PassedExecutions, stats.TotalExecutions),
			Icon:        "check-circle",
		},
		{
			ID:          model.MetricCardCoverage,
			Title:       "Test Coverage",
			Value:       formatPercent(stats.TestCoverage),
			Description: "Passed executions relative to active test cases",
			Icon:        "chart-pie",
		},
	}
}

func buildQuickActions(projectID types.ProjectID) []model.QuickAction {
	base := "/projects/" + projectID.String()
	return []model.QuickAction{
		{ID: "create-test-case", Title: "Create Test Case", Description: "Write a new test case or generate one from a user story", Link: base + "/test-cases/new"},
		{ID: "run-tests", Title: "Run Tests", Description: "Record a new test execution", Link: base + "/executions/new"},
		{ID: "report-defect", Title: "Report Defect", Description: "Log a defect found during testing", Link: base + "/defects/new"},
		{ID: "view-analytics", Title: "View Analytics", Description: "Explore 30-day trends and defect metrics", Link: base + "/analytics"},
	}
}

func buildDashboardSummary(stats model.DashboardStats) string {
	return fmt.Sprintf(
		"Total test cases: %d\nTest executions (last 7 days): %d\nPassed executions: %d (coverage %.2f%%)\nOpen defects: %d\nHigh/critical open defects: %d\n",
		stats.TotalTestCases,
		stats.TotalExecutions,
		stats.PassedExecutions,
		stats.TestCoverage,
		stats.ActiveDefects,
		stats.HighSeverityDefects,
	)
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}

var _ interfaces.Dashboard = (*DashboardUseCase)(nil)

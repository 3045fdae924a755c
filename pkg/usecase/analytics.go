package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tessera/pkg/domain/interfaces"
	"github.com/secmon-lab/tessera/pkg/domain/model"
	"github.com/secmon-lab/tessera/pkg/domain/types"
	"github.com/secmon-lab/tessera/pkg/service/metrics"
)

// AnalyticsUseCase computes 30-day execution metrics, defect metrics and the execution trend
type AnalyticsUseCase struct {
	repo    interfaces.Repository
	advisor interfaces.Advisor
}

// NewAnalyticsUseCase creates a new AnalyticsUseCase instance
func NewAnalyticsUseCase(repo interfaces.Repository, advisor interfaces.Advisor) *AnalyticsUseCase {
	return &AnalyticsUseCase{
		repo:    repo,
		advisor: advisor,
	}
}

// ExecutionMetrics summarizes executions started within [asOf-30d, asOf]
func (uc *AnalyticsUseCase) ExecutionMetrics(ctx context.Context, projectID types.ProjectID, asOf time.Time) model.Computed[model.ExecutionMetrics] {
	totalTestCases, err := uc.repo.CountActiveTestCases(ctx, projectID)
	if err != nil {
		return degrade(ctx, "execution_metrics", projectID, model.ExecutionMetrics{},
			goerr.Wrap(err, "failed to count test cases"))
	}

	from, to := metrics.Window(asOf, metrics.AnalyticsWindow)
	executions, err := uc.repo.ListExecutions(ctx, projectID, from, to)
	if err != nil {
		return degrade(ctx, "execution_metrics", projectID, model.ExecutionMetrics{},
			goerr.Wrap(err, "failed to list executions", goerr.V("from", from), goerr.V("to", to)))
	}

	return model.Succeeded(metrics.SummarizeExecutions(totalTestCases, executions, from, to))
}

// DefectMetrics summarizes all defects of the project
func (uc *AnalyticsUseCase) DefectMetrics(ctx context.Context, projectID types.ProjectID) model.Computed[model.DefectMetrics] {
	defects, err := uc.repo.ListDefects(ctx, projectID)
	if err != nil {
		return degrade(ctx, "defect_metrics", projectID, model.DefaultDefectMetrics(),
			goerr.Wrap(err, "failed to list defects"))
	}

	return model.Succeeded(metrics.SummarizeDefects(defects))
}

// ExecutionTrend returns the per-day execution counts of the last 14 days ending at asOf
func (uc *AnalyticsUseCase) ExecutionTrend(ctx context.Context, projectID types.ProjectID, asOf time.Time) model.Computed[[]model.TrendPoint] {
	from, to := metrics.TrendWindow(asOf, metrics.TrendDays)
	executions, err := uc.repo.ListExecutions(ctx, projectID, from, to)
	if err != nil {
		return degrade(ctx, "execution_trend", projectID, []model.TrendPoint{},
			goerr.Wrap(err, "failed to list executions", goerr.V("from", from), goerr.V("to", to)))
	}

	return model.Succeeded(metrics.BuildTrend(asOf, metrics.TrendDays, executions))
}

// Project looks up the project. A missing project is reported as model.ErrProjectNotFound.
func (uc *AnalyticsUseCase) Project(ctx context.Context, projectID types.ProjectID) (*model.Project, error) {
	project, err := uc.repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get project", goerr.V("project_id", projectID))
	}
	return project, nil
}

// Report bundles the analytics of the project with improvement suggestions
func (uc *AnalyticsUseCase) Report(ctx context.Context, projectID types.ProjectID, asOf time.Time) (*model.AnalyticsReport, error) {
	project, err := uc.Project(ctx, projectID)
	if err != nil {
		return nil, err
	}

	execMetrics := uc.ExecutionMetrics(ctx, projectID, asOf)
	defectMetrics := uc.DefectMetrics(ctx, projectID)
	trend := uc.ExecutionTrend(ctx, projectID, asOf)

	summary := buildAnalyticsSummary(execMetrics.Value, defectMetrics.Value)

	return &model.AnalyticsReport{
		Project:          project,
		ExecutionMetrics: execMetrics.Value,
		DefectMetrics:    defectMetrics.Value,
		Trend:            trend.Value,
		Suggestions:      suggest(ctx, uc.advisor, summary),
		GeneratedAt:      asOf,
		Degraded:         execMetrics.Degraded || defectMetrics.Degraded || trend.Degraded,
	}, nil
}

func buildAnalyticsSummary(exec model.ExecutionMetrics, defects model.DefectMetrics) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total test cases: %d\n", exec.TotalTestCases)
	fmt.Fprintf(&b, "Test executions (last 30 days): %d\n", exec.TotalExecutions)
	fmt.Fprintf(&b, "Passed: %d, Failed: %d, Skipped: %d\n", exec.Passed, exec.Failed, exec.Skipped)
	fmt.Fprintf(&b, "Coverage: %.2f%%\n", exec.CoveragePercent)
	fmt.Fprintf(&b, "Defects: %d total, %d open, %d closed\n", defects.Total, defects.Open, defects.Closed)
	for _, d := range defects.Distribution {
		fmt.Fprintf(&b, "%s defects: %d\n", d.Severity, d.Count)
	}
	fmt.Fprintf(&b, "Average resolution time: %s\n", defects.AvgResolutionTime)
	return b.String()
}

// degrade logs the swallowed failure and returns the default value marked as degraded
func degrade[T any](ctx context.Context, metric string, projectID types.ProjectID, fallback T, cause error) model.Computed[T] {
	ctxlog.From(ctx).Warn("Metric computation failed, returning default",
		"metric", metric,
		"project_id", projectID,
		"degraded", true,
		"error", cause,
	)
	return model.Degrade(fallback, cause)
}

// suggest calls the advisor, tolerating a nil advisor
func suggest(ctx context.Context, advisor interfaces.Advisor, summary string) *model.Suggestions {
	if advisor == nil {
		return model.FallbackSuggestions()
	}
	if s := advisor.Suggest(ctx, summary); s != nil {
		return s
	}
	return model.FallbackSuggestions()
}

var _ interfaces.Analytics = (*AnalyticsUseCase)(nil)

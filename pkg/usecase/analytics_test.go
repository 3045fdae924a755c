package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/tessera/pkg/domain/interfaces/mocks"
	"github.com/secmon-lab/tessera/pkg/domain/model"
	"github.com/secmon-lab/tessera/pkg/domain/types"
	"github.com/secmon-lab/tessera/pkg/usecase"
)

// failingRepo returns a repository whose project lookup succeeds and every aggregation read fails
func failingRepo() *mocks.RepositoryMock {
	errStore := errors.New("connection reset")
	return &mocks.RepositoryMock{
		GetProjectFunc: func(ctx context.Context, id types.ProjectID) (*model.Project, error) {
			return &model.Project{ID: id, Name: "Broken"}, nil
		},
		CountActiveTestCasesFunc: func(ctx context.Context, projectID types.ProjectID) (int, error) {
			return 0, errStore
		},
		ListExecutionsFunc: func(ctx context.Context, projectID types.ProjectID, from, to time.Time) ([]*model.TestExecution, error) {
			return nil, errStore
		},
		ListDefectsFunc: func(ctx context.Context, projectID types.ProjectID) ([]*model.Defect, error) {
			return nil, errStore
		},
	}
}

func TestAnalyticsUseCase_ExecutionMetrics(t *testing.T) {
	repo, projectID := newSeededRepo(t)
	uc := usecase.NewAnalyticsUseCase(repo, nil)

	got := uc.ExecutionMetrics(context.Background(), projectID, asOf)
	gt.False(t, got.Degraded)
	gt.Equal(t, got.Value, model.ExecutionMetrics{
		TotalTestCases:  10,
		TotalExecutions: 8,
		Passed:          5,
		Failed:          2,
		Skipped:         1,
		CoveragePercent: 50.0,
	})

	t.Run("idempotent", func(t *testing.T) {
		again := uc.ExecutionMetrics(context.Background(), projectID, asOf)
		gt.Equal(t, again.Value, got.Value)
	})

	t.Run("unknown project yields zeros", func(t *testing.T) {
		empty := uc.ExecutionMetrics(context.Background(), types.NewProjectID(), asOf)
		gt.False(t, empty.Degraded)
		gt.Equal(t, empty.Value, model.ExecutionMetrics{})
	})
}

func TestAnalyticsUseCase_DefectMetrics(t *testing.T) {
	repo, projectID := newSeededRepo(t)
	uc := usecase.NewAnalyticsUseCase(repo, nil)

	got := uc.DefectMetrics(context.Background(), projectID)
	gt.False(t, got.Degraded)
	gt.Equal(t, got.Value.Total, 5)
	gt.Equal(t, got.Value.Open, 3)
	gt.Equal(t, got.Value.Closed, 1)
	gt.Equal(t, got.Value.AvgResolutionTime, "3:00:00")
	gt.Equal(t, got.Value.Distribution, []model.SeverityCount{
		{Severity: types.SeverityCritical, Count: 1},
		{Severity: types.SeverityHigh, Count: 2},
		{Severity: types.SeverityMedium, Count: 1},
		{Severity: types.SeverityLow, Count: 1},
	})
}

func TestAnalyticsUseCase_ExecutionTrend(t *testing.T) {
	repo, projectID := newSeededRepo(t)
	uc := usecase.NewAnalyticsUseCase(repo, nil)

	got := uc.ExecutionTrend(context.Background(), projectID, asOf)
	gt.False(t, got.Degraded)
	gt.A(t, got.Value).Length(14)
	gt.Equal(t, got.Value[0].Date, "2024-03-07")
	gt.Equal(t, got.Value[13], model.TrendPoint{Date: "2024-03-20", Failed: 1})
	gt.Equal(t, got.Value[12], model.TrendPoint{Date: "2024-03-19", Passed: 1})
	gt.Equal(t, got.Value[8], model.TrendPoint{Date: "2024-03-15", Skipped: 1})
	gt.Equal(t, got.Value[3], model.TrendPoint{Date: "2024-03-10", Passed: 1})
	gt.Equal(t, got.Value[1], model.TrendPoint{Date: "2024-03-08"})
}

func TestAnalyticsUseCase_Degraded(t *testing.T) {
	uc := usecase.NewAnalyticsUseCase(failingRepo(), nil)
	ctx := context.Background()
	projectID := types.NewProjectID()

	exec := uc.ExecutionMetrics(ctx, projectID, asOf)
	gt.True(t, exec.Degraded)
	gt.Error(t, exec.Cause)
	gt.Equal(t, exec.Value, model.ExecutionMetrics{})

	defects := uc.DefectMetrics(ctx, projectID)
	gt.True(t, defects.Degraded)
	gt.Equal(t, defects.Value, model.DefaultDefectMetrics())

	trend := uc.ExecutionTrend(ctx, projectID, asOf)
	gt.True(t, trend.Degraded)
	gt.A(t, trend.Value).Length(0)
}

func TestAnalyticsUseCase_Report(t *testing.T) {
	t.Run("bundles metrics and advice", func(t *testing.T) {
		repo, projectID := newSeededRepo(t)
		advisor := &fakeAdvisor{result: &model.Suggestions{PrimarySuggestion: "Automate more"}}
		uc := usecase.NewAnalyticsUseCase(repo, advisor)

		report, err := uc.Report(context.Background(), projectID, asOf)
		gt.NoError(t, err).Required()
		gt.False(t, report.Degraded)
		gt.Equal(t, report.Project.Name, "Checkout")
		gt.Equal(t, report.ExecutionMetrics.TotalExecutions, 8)
		gt.Equal(t, report.DefectMetrics.Total, 5)
		gt.A(t, report.Trend).Length(14)
		gt.Equal(t, report.Suggestions.PrimarySuggestion, "Automate more")
		gt.True(t, report.GeneratedAt.Equal(asOf))

		gt.A(t, advisor.summaries).Length(1)
		gt.S(t, advisor.summaries[0]).Contains("Total test cases: 10")
		gt.S(t, advisor.summaries[0]).Contains("Coverage: 50.00%")
	})

	t.Run("unknown project", func(t *testing.T) {
		repo, _ := newSeededRepo(t)
		uc := usecase.NewAnalyticsUseCase(repo, &fakeAdvisor{})

		report, err := uc.Report(context.Background(), types.NewProjectID(), asOf)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrProjectNotFound))
		gt.V(t, report).Nil()
	})

	t.Run("store failure degrades to defaults", func(t *testing.T) {
		uc := usecase.NewAnalyticsUseCase(failingRepo(), nil)

		report, err := uc.Report(context.Background(), types.NewProjectID(), asOf)
		gt.NoError(t, err).Required()
		gt.True(t, report.Degraded)
		gt.Equal(t, report.ExecutionMetrics, model.ExecutionMetrics{})
		gt.Equal(t, report.DefectMetrics.AvgResolutionTime, model.ResolutionTimeNotAvailable)
		gt.Equal(t, report.Suggestions.PrimarySuggestion, model.FallbackSuggestions().PrimarySuggestion)
	})
}

func TestAnalyticsUseCase_Project(t *testing.T) {
	repo, projectID := newSeededRepo(t)
	uc := usecase.NewAnalyticsUseCase(repo, nil)

	project, err := uc.Project(context.Background(), projectID)
	gt.NoError(t, err).Required()
	gt.Equal(t, project.ID, projectID)

	_, err = uc.Project(context.Background(), types.NewProjectID())
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrProjectNotFound))
}

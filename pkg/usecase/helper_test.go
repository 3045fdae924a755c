package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/tessera/pkg/domain/interfaces"
	"github.com/secmon-lab/tessera/pkg/domain/model"
	"github.com/secmon-lab/tessera/pkg/domain/types"
	"github.com/secmon-lab/tessera/pkg/repository"
)

var asOf = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

const day = 24 * time.Hour

// fakeAdvisor records the summaries it receives
type fakeAdvisor struct {
	mu        sync.Mutex
	summaries []string
	result    *model.Suggestions
}

func (a *fakeAdvisor) Suggest(ctx context.Context, summary string) *model.Suggestions {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.summaries = append(a.summaries, summary)
	if a.result == nil {
		return model.FallbackSuggestions()
	}
	return a.result
}

// seedProject stores a project with 10 active test cases, 1 inactive test case,
// executions spread over the last 40 days and 5 defects.
//
//	last 30 days: 5 passed, 2 failed, 1 skipped
//	last 7 days:  3 passed, 1 failed, 1 skipped
func seedProject(t *testing.T, repo interfaces.Repository) types.ProjectID {
	t.Helper()
	ctx := context.Background()

	project := &model.Project{
		ID:        types.NewProjectID(),
		Name:      "Checkout",
		Status:    "Active",
		IsActive:  true,
		CreatedAt: asOf.Add(-90 * day),
	}
	gt.NoError(t, repo.PutProject(ctx, project)).Required()

	suite := &model.TestSuite{
		ID:        types.NewTestSuiteID(),
		ProjectID: project.ID,
		Name:      "Regression",
		IsActive:  true,
		CreatedAt: project.CreatedAt,
	}
	gt.NoError(t, repo.PutTestSuite(ctx, suite)).Required()

	var cases []*model.TestCase
	for i := 0; i < 11; i++ {
		tc := &model.TestCase{
			ID:        types.NewTestCaseID(),
			SuiteID:   suite.ID,
			Title:     "case",
			IsActive:  i < 10,
			CreatedAt: project.CreatedAt,
			UpdatedAt: project.CreatedAt,
		}
		gt.NoError(t, repo.PutTestCase(ctx, tc)).Required()
		cases = append(cases, tc)
	}

	executions := []struct {
		status types.ExecutionStatus
		ago    time.Duration
	}{
		{types.ExecutionStatusPassed, 1 * day},
		{types.ExecutionStatusPassed, 2 * day},
		{types.ExecutionStatusPassed, 3 * day},
		{types.ExecutionStatusPassed, 10 * day},
		{types.ExecutionStatusPassed, 20 * day},
		{types.ExecutionStatusFailed, time.Hour},
		{types.ExecutionStatusFailed, 15 * day},
		{types.ExecutionStatusSkipped, 5 * day},
		// outside every window
		{types.ExecutionStatusPassed, 31 * day},
		{types.ExecutionStatusPassed, -time.Hour},
	}
	for i, e := range executions {
		exec := &model.TestExecution{
			ID:         types.NewExecutionID(),
			TestCaseID: cases[i%len(cases)].ID,
			Status:     e.status,
			StartedAt:  asOf.Add(-e.ago),
		}
		gt.NoError(t, repo.PutExecution(ctx, exec)).Required()
	}

	defects := []struct {
		status   types.DefectStatus
		severity types.Severity
	}{
		{types.DefectStatusOpen, types.SeverityCritical},
		{types.DefectStatusInProgress, types.SeverityHigh},
		{types.DefectStatusOpen, types.SeverityLow},
		{types.DefectStatusClosed, types.SeverityMedium},
		{types.DefectStatusReopened, types.SeverityHigh},
	}
	for _, d := range defects {
		created := asOf.Add(-3 * day)
		defect := &model.Defect{
			ID:        types.NewDefectID(),
			ProjectID: project.ID,
			Title:     "defect",
			Status:    d.status,
			Severity:  d.severity,
			IsActive:  true,
			CreatedAt: created,
			UpdatedAt: created.Add(3 * time.Hour),
		}
		gt.NoError(t, repo.PutDefect(ctx, defect)).Required()
	}

	return project.ID
}

func newSeededRepo(t *testing.T) (interfaces.Repository, types.ProjectID) {
	repo := repository.NewMemory()
	return repo, seedProject(t, repo)
}

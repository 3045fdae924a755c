package interfaces

import (
	"context"
	"time"

	"github.com/secmon-lab/tessera/pkg/domain/model"
	"github.com/secmon-lab/tessera/pkg/domain/types"
)

// Analytics computes project metrics. The metric methods never fail; a failure is reported
// through the degraded flag of the result.
type Analytics interface {
	// Project returns model.ErrProjectNotFound when the project does not exist
	Project(ctx context.Context, projectID types.ProjectID) (*model.Project, error)
	ExecutionMetrics(ctx context.Context, projectID types.ProjectID, asOf time.Time) model.Computed[model.ExecutionMetrics]
	DefectMetrics(ctx context.Context, projectID types.ProjectID) model.Computed[model.DefectMetrics]
	ExecutionTrend(ctx context.Context, projectID types.ProjectID, asOf time.Time) model.Computed[[]model.TrendPoint]
	// Report returns model.ErrProjectNotFound when the project does not exist
	Report(ctx context.Context, projectID types.ProjectID, asOf time.Time) (*model.AnalyticsReport, error)
}

// Dashboard composes the project dashboard
type Dashboard interface {
	// Compose returns model.ErrProjectNotFound when the project does not exist
	Compose(ctx context.Context, projectID types.ProjectID, asOf time.Time) (*model.Dashboard, error)
}

// Advisor produces improvement suggestions from a metrics summary. It never fails.
type Advisor interface {
	Suggest(ctx context.Context, summary string) *model.Suggestions
}

// TestCaseGenerator drafts a test case from free-form content
type TestCaseGenerator interface {
	GenerateTestCase(ctx context.Context, content string) (*model.GeneratedTestCase, error)
}

// Digest publishes the dashboard to a chat channel
type Digest interface {
	Post(ctx context.Context, projectID types.ProjectID, channelID types.ChannelID, asOf time.Time) error
}

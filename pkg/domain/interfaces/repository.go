package interfaces

//go:generate moq -out mocks/repository_mock.go -pkg mocks . Repository

import (
	"context"
	"time"

	"github.com/secmon-lab/tessera/pkg/domain/model"
	"github.com/secmon-lab/tessera/pkg/domain/types"
)

// Repository defines the interface for data persistence
type Repository interface {
	// Project operations
	PutProject(ctx context.Context, project *model.Project) error
	GetProject(ctx context.Context, id types.ProjectID) (*model.Project, error)

	// Test suite and test case operations
	PutTestSuite(ctx context.Context, suite *model.TestSuite) error
	PutTestCase(ctx context.Context, testCase *model.TestCase) error
	// CountActiveTestCases counts active test cases whose suite belongs to the project
	CountActiveTestCases(ctx context.Context, projectID types.ProjectID) (int, error)

	// Execution operations
	PutExecution(ctx context.Context, execution *model.TestExecution) error
	// ListExecutions returns executions of the project's test cases started within [from, to]
	ListExecutions(ctx context.Context, projectID types.ProjectID, from, to time.Time) ([]*model.TestExecution, error)

	// Defect operations
	PutDefect(ctx context.Context, defect *model.Defect) error
	ListDefects(ctx context.Context, projectID types.ProjectID) ([]*model.Defect, error)

	// Close closes the repository connection
	Close() error
}

package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tessera/pkg/domain/interfaces"
	"github.com/secmon-lab/tessera/pkg/domain/model"
	"github.com/secmon-lab/tessera/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// Collection names
	projectsCollection   = "projects"
	testSuitesCollection = "test_suites"
	testCasesCollection  = "test_cases"
	executionsCollection = "executions"
	defectsCollection    = "defects"
)

// Firestore implements Repository interface with Firestore
type Firestore struct {
	client *firestore.Client
}

// NewFirestore creates a new Firestore repository
func NewFirestore(ctx context.Context, projectID, databaseID string) (interfaces.Repository, error) {
	logger := ctxlog.From(ctx)

	// Create client with database ID
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client")
	}

	// Test connection by attempting to read from a collection
	// This will fail fast if the project ID is invalid or if there are permission issues
	_, err = client.Collection(projectsCollection).Limit(1).Documents(ctx).Next()
	if err != nil && err != iterator.Done {
		if status.Code(err) == codes.PermissionDenied || status.Code(err) == codes.Unauthenticated {
			_ = client.Close()
			return nil, goerr.Wrap(err, "failed to connect to firestore project",
				goerr.V("firestore error code", status.Code(err).String()),
			)
		}
		logger.Debug("Firestore connection test returned error (may be empty collection)",
			"error", err,
			"errorCode", status.Code(err).String(),
		)
	}

	logger.Info("Firestore repository initialized successfully",
		"projectID", projectID,
		"databaseID", databaseID,
	)

	return &Firestore{
		client: client,
	}, nil
}

// PutProject saves a project to Firestore
func (f *Firestore) PutProject(ctx context.Context, project *model.Project) error {
	if project == nil {
		return goerr.New("project is nil")
	}
	if err := project.Validate(); err != nil {
		return goerr.Wrap(err, "invalid project")
	}

	_, err := f.client.Collection(projectsCollection).Doc(project.ID.String()).Set(ctx, project)
	if err != nil {
		return goerr.Wrap(err, "failed to save project to firestore", goerr.V("id", project.ID))
	}

	return nil
}

// GetProject retrieves a project by ID
func (f *Firestore) GetProject(ctx context.Context, id types.ProjectID) (*model.Project, error) {
	if id == "" {
		return nil, goerr.New("project ID is empty")
	}

	doc, err := f.client.Collection(projectsCollection).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrProjectNotFound, "failed to get project", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get project from firestore", goerr.V("id", id))
	}

	var project model.Project
	if err := doc.DataTo(&project); err != nil {
		return nil, goerr.Wrap(err, "failed to decode project")
	}

	return &project, nil
}

// PutTestSuite saves a test suite to Firestore
func (f *Firestore) PutTestSuite(ctx context.Context, suite *model.TestSuite) error {
	if suite == nil {
		return goerr.New("test suite is nil")
	}
	if err := suite.Validate(); err != nil {
		return goerr.Wrap(err, "invalid test suite")
	}

	_, err := f.client.Collection(testSuitesCollection).Doc(suite.ID.String()).Set(ctx, suite)
	if err != nil {
		return goerr.Wrap(err, "failed to save test suite to firestore", goerr.V("id", suite.ID))
	}

	return nil
}

// PutTestCase saves a test case. The project ID is denormalized from the suite so that
// project-scoped queries need a single equality filter.
func (f *Firestore) PutTestCase(ctx context.Context, testCase *model.TestCase) error {
	if testCase == nil {
		return goerr.New("test case is nil")
	}
	if err := testCase.Validate(); err != nil {
		return goerr.Wrap(err, "invalid test case")
	}

	doc, err := f.client.Collection(testSuitesCollection).Doc(testCase.SuiteID.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.New("test suite not found", goerr.V("suite_id", testCase.SuiteID))
		}
		return goerr.Wrap(err, "failed to get test suite", goerr.V("suite_id", testCase.SuiteID))
	}

	var suite model.TestSuite
	if err := doc.DataTo(&suite); err != nil {
		return goerr.Wrap(err, "failed to decode test suite")
	}

	caseCopy := *testCase
	caseCopy.ProjectID = suite.ProjectID

	_, err = f.client.Collection(testCasesCollection).Doc(testCase.ID.String()).Set(ctx, &caseCopy)
	if err != nil {
		return goerr.Wrap(err, "failed to save test case to firestore", goerr.V("id", testCase.ID))
	}

	return nil
}

// CountActiveTestCases counts active test cases of the project
func (f *Firestore) CountActiveTestCases(ctx context.Context, projectID types.ProjectID) (int, error) {
	if projectID == "" {
		return 0, goerr.New("project ID is empty")
	}

	// Equality filters only, so no composite index is required
	iter := f.client.Collection(testCasesCollection).
		Where("ProjectID", "==", projectID.String()).
		Where("IsActive", "==", true).
		Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, goerr.Wrap(err, "failed to iterate test cases", goerr.V("project_id", projectID))
		}
		count++
	}

	return count, nil
}

// PutExecution saves an execution. The project ID is denormalized from the test case.
func (f *Firestore) PutExecution(ctx context.Context, execution *model.TestExecution) error {
	if execution == nil {
		return goerr.New("execution is nil")
	}
	if err := execution.Validate(); err != nil {
		return goerr.Wrap(err, "invalid execution")
	}

	doc, err := f.client.Collection(testCasesCollection).Doc(execution.TestCaseID.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.New("test case not found", goerr.V("test_case_id", execution.TestCaseID))
		}
		return goerr.Wrap(err, "failed to get test case", goerr.V("test_case_id", execution.TestCaseID))
	}

	var tc model.TestCase
	if err := doc.DataTo(&tc); err != nil {
		return goerr.Wrap(err, "failed to decode test case")
	}

	execCopy := *execution
	execCopy.ProjectID = tc.ProjectID

	_, err = f.client.Collection(executionsCollection).Doc(execution.ID.String()).Set(ctx, &execCopy)
	if err != nil {
		return goerr.Wrap(err, "failed to save execution to firestore", goerr.V("id", execution.ID))
	}

	return nil
}

// ListExecutions lists executions of the project started within [from, to]
func (f *Firestore) ListExecutions(ctx context.Context, projectID types.ProjectID, from, to time.Time) ([]*model.TestExecution, error) {
	if projectID == "" {
		return nil, goerr.New("project ID is empty")
	}

	// A range filter on StartedAt combined with the equality filter would require a
	// composite index, so the window is applied in memory
	iter := f.client.Collection(executionsCollection).
		Where("ProjectID", "==", projectID.String()).
		Documents(ctx)
	defer iter.Stop()

	var executions []*model.TestExecution
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate executions", goerr.V("project_id", projectID))
		}

		var exec model.TestExecution
		if err := doc.DataTo(&exec); err != nil {
			return nil, goerr.Wrap(err, "failed to decode execution", goerr.V("doc", doc.Ref.ID))
		}

		if exec.InWindow(from, to) {
			executions = append(executions, &exec)
		}
	}

	sort.Slice(executions, func(i, j int) bool {
		return executions[i].StartedAt.Before(executions[j].StartedAt)
	})

	return executions, nil
}

// PutDefect saves a defect to Firestore
func (f *Firestore) PutDefect(ctx context.Context, defect *model.Defect) error {
	if defect == nil {
		return goerr.New("defect is nil")
	}
	if err := defect.Validate(); err != nil {
		return goerr.Wrap(err, "invalid defect")
	}

	_, err := f.client.Collection(defectsCollection).Doc(defect.ID.String()).Set(ctx, defect)
	if err != nil {
		return goerr.Wrap(err, "failed to save defect to firestore", goerr.V("id", defect.ID))
	}

	return nil
}

// ListDefects lists all defects of the project
func (f *Firestore) ListDefects(ctx context.Context, projectID types.ProjectID) ([]*model.Defect, error) {
	if projectID == "" {
		return nil, goerr.New("project ID is empty")
	}

	iter := f.client.Collection(defectsCollection).
		Where("ProjectID", "==", projectID.String()).
		Documents(ctx)
	defer iter.Stop()

	var defects []*model.Defect
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate defects", goerr.V("project_id", projectID))
		}

		var defect model.Defect
		if err := doc.DataTo(&defect); err != nil {
			return nil, goerr.Wrap(err, "failed to decode defect", goerr.V("doc", doc.Ref.ID))
		}
		defects = append(defects, &defect)
	}

	sort.Slice(defects, func(i, j int) bool {
		return defects[i].CreatedAt.Before(defects[j].CreatedAt)
	})

	return defects, nil
}

// Close closes the Firestore client
func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

var _ interfaces.Repository = (*Firestore)(nil) // Compile-time interface check

package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tessera/pkg/domain/interfaces"
	"github.com/secmon-lab/tessera/pkg/domain/model"
	"github.com/secmon-lab/tessera/pkg/domain/types"
)

// Memory implements Repository interface with in-memory storage
type Memory struct {
	mu         sync.RWMutex
	projects   map[types.ProjectID]*model.Project
	suites     map[types.TestSuiteID]*model.TestSuite
	testCases  map[types.TestCaseID]*model.TestCase
	executions map[types.ExecutionID]*model.TestExecution
	defects    map[types.DefectID]*model.Defect
}

// NewMemory creates a new memory repository
func NewMemory() interfaces.Repository {
	return &Memory{
		projects:   make(map[types.ProjectID]*model.Project),
		suites:     make(map[types.TestSuiteID]*model.TestSuite),
		testCases:  make(map[types.TestCaseID]*model.TestCase),
		executions: make(map[types.ExecutionID]*model.TestExecution),
		defects:    make(map[types.DefectID]*model.Defect),
	}
}

// PutProject saves a project to memory
func (m *Memory) PutProject(ctx context.Context, project *model.Project) error {
	if project == nil {
		return goerr.New("project is nil")
	}
	if err := project.Validate(); err != nil {
		return goerr.Wrap(err, "invalid project")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	projectCopy := *project
	m.projects[project.ID] = &projectCopy
	return nil
}

// GetProject retrieves a project by ID
func (m *Memory) GetProject(ctx context.Context, id types.ProjectID) (*model.Project, error) {
	if id == "" {
		return nil, goerr.New("project ID is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	project, exists := m.projects[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrProjectNotFound, "failed to get project", goerr.V("id", id))
	}

	// Return a copy to prevent external modification
	projectCopy := *project
	return &projectCopy, nil
}

// PutTestSuite saves a test suite to memory
func (m *Memory) PutTestSuite(ctx context.Context, suite *model.TestSuite) error {
	if suite == nil {
		return goerr.New("test suite is nil")
	}
	if err := suite.Validate(); err != nil {
		return goerr.Wrap(err, "invalid test suite")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	suiteCopy := *suite
	m.suites[suite.ID] = &suiteCopy
	return nil
}

// PutTestCase saves a test case. The project ID is resolved from the suite.
func (m *Memory) PutTestCase(ctx context.Context, testCase *model.TestCase) error {
	if testCase == nil {
		return goerr.New("test case is nil")
	}
	if err := testCase.Validate(); err != nil {
		return goerr.Wrap(err, "invalid test case")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	suite, exists := m.suites[testCase.SuiteID]
	if !exists {
		return goerr.New("test suite not found", goerr.V("suite_id", testCase.SuiteID))
	}

	caseCopy := *testCase
	caseCopy.ProjectID = suite.ProjectID
	m.testCases[testCase.ID] = &caseCopy
	return nil
}

// CountActiveTestCases counts active test cases of the project
func (m *Memory) CountActiveTestCases(ctx context.Context, projectID types.ProjectID) (int, error) {
	if projectID == "" {
		return 0, goerr.New("project ID is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, tc := range m.testCases {
		if tc.IsActive && m.belongsTo(tc, projectID) {
			count++
		}
	}
	return count, nil
}

// belongsTo must be called with the lock held
func (m *Memory) belongsTo(tc *model.TestCase, projectID types.ProjectID) bool {
	suite, exists := m.suites[tc.SuiteID]
	return exists && suite.ProjectID == projectID
}

// PutExecution saves an execution. The project ID is resolved from the test case.
func (m *Memory) PutExecution(ctx context.Context, execution *model.TestExecution) error {
	if execution == nil {
		return goerr.New("execution is nil")
	}
	if err := execution.Validate(); err != nil {
		return goerr.Wrap(err, "invalid execution")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tc, exists := m.testCases[execution.TestCaseID]
	if !exists {
		return goerr.New("test case not found", goerr.V("test_case_id", execution.TestCaseID))
	}

	execCopy := *execution
	execCopy.ProjectID = tc.ProjectID
	if execution.CompletedAt != nil {
		completed := *execution.CompletedAt
		execCopy.CompletedAt = &completed
	}
	m.executions[execution.ID] = &execCopy
	return nil
}

// ListExecutions lists executions of the project started within [from, to]
func (m *Memory) ListExecutions(ctx context.Context, projectID types.ProjectID, from, to time.Time) ([]*model.TestExecution, error) {
	if projectID == "" {
		return nil, goerr.New("project ID is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var executions []*model.TestExecution
	for _, exec := range m.executions {
		tc, exists := m.testCases[exec.TestCaseID]
		if !exists || !m.belongsTo(tc, projectID) {
			continue
		}
		if !exec.InWindow(from, to) {
			continue
		}

		execCopy := *exec
		executions = append(executions, &execCopy)
	}

	sort.Slice(executions, func(i, j int) bool {
		return executions[i].StartedAt.Before(executions[j].StartedAt)
	})

	return executions, nil
}

// PutDefect saves a defect to memory
func (m *Memory) PutDefect(ctx context.Context, defect *model.Defect) error {
	if defect == nil {
		return goerr.New("defect is nil")
	}
	if err := defect.Validate(); err != nil {
		return goerr.Wrap(err, "invalid defect")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	defectCopy := *defect
	m.defects[defect.ID] = &defectCopy
	return nil
}

// ListDefects lists all defects of the project
func (m *Memory) ListDefects(ctx context.Context, projectID types.ProjectID) ([]*model.Defect, error) {
	if projectID == "" {
		return nil, goerr.New("project ID is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var defects []*model.Defect
	for _, d := range m.defects {
		if d.ProjectID == projectID {
			defectCopy := *d
			defects = append(defects, &defectCopy)
		}
	}

	sort.Slice(defects, func(i, j int) bool {
		return defects[i].CreatedAt.Before(defects[j].CreatedAt)
	})

	return defects, nil
}

// Close does nothing for memory repository
func (m *Memory) Close() error {
	return nil
}

var _ interfaces.Repository = (*Memory)(nil) // Compile-time interface check

package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tessera/pkg/domain/interfaces"
	"github.com/secmon-lab/tessera/pkg/domain/model"
	"github.com/secmon-lab/tessera/pkg/domain/types"
)

// MySQL implements Repository interface with a MySQL database.
// Tables are expected to exist; see testdata/mysql_schema.sql for the layout.
type MySQL struct {
	db *sql.DB
}

// NewMySQL creates a new MySQL repository from a DSN such as
// "user:password@tcp(127.0.0.1:3306)/tessera"
func NewMySQL(ctx context.Context, dsn string) (interfaces.Repository, error) {
	logger := ctxlog.From(ctx)

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse MySQL DSN")
	}
	// Timestamps are stored as UTC DATETIME(6) and scanned into time.Time
	cfg.ParseTime = true
	cfg.Loc = time.UTC

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create MySQL connector")
	}

	db := sql.OpenDB(connector)
	db.SetConnMaxLifetime(3 * time.Minute)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to ping MySQL server",
			goerr.V("addr", cfg.Addr),
			goerr.V("database", cfg.DBName),
		)
	}

	logger.Info("MySQL repository initialized successfully",
		"addr", cfg.Addr,
		"database", cfg.DBName,
	)

	return &MySQL{db: db}, nil
}

// PutProject inserts or updates a project
func (r *MySQL) PutProject(ctx context.Context, project *model.Project) error {
	if project == nil {
		return goerr.New("project is nil")
	}
	if err := project.Validate(); err != nil {
		return goerr.Wrap(err, "invalid project")
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO projects (id, name, description, status, is_active, created_at)
VALUES (?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name = VALUES(name), description = VALUES(description), status = VALUES(status),
  is_active = VALUES(is_active)`,
		project.ID.String(), project.Name, project.Description, project.Status, project.IsActive, project.CreatedAt.UTC(),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to save project", goerr.V("id", project.ID))
	}

	return nil
}

// GetProject retrieves a project by ID
func (r *MySQL) GetProject(ctx context.Context, id types.ProjectID) (*model.Project, error) {
	if id == "" {
		return nil, goerr.New("project ID is empty")
	}

	var project model.Project
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, description, status, is_active, created_at
FROM projects WHERE id = ?`, id.String()).Scan(
		&project.ID, &project.Name, &project.Description, &project.Status, &project.IsActive, &project.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(model.ErrProjectNotFound, "failed to get project", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to query project", goerr.V("id", id))
	}

	return &project, nil
}

// PutTestSuite inserts or updates a test suite
func (r *MySQL) PutTestSuite(ctx context.Context, suite *model.TestSuite) error {
	if suite == nil {
		return goerr.New("test suite is nil")
	}
	if err := suite.Validate(); err != nil {
		return goerr.Wrap(err, "invalid test suite")
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO test_suites (id, project_id, name, description, is_active, created_at)
VALUES (?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  project_id = VALUES(project_id), name = VALUES(name), description = VALUES(description),
  is_active = VALUES(is_active)`,
		suite.ID.String(), suite.ProjectID.String(), suite.Name, suite.Description, suite.IsActive, suite.CreatedAt.UTC(),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to save test suite", goerr.V("id", suite.ID))
	}

	return nil
}

// PutTestCase inserts or updates a test case. The suite must exist; the project is
// resolved through the suite at query time.
func (r *MySQL) PutTestCase(ctx context.Context, testCase *model.TestCase) error {
	if testCase == nil {
		return goerr.New("test case is nil")
	}
	if err := testCase.Validate(); err != nil {
		return goerr.Wrap(err, "invalid test case")
	}

	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT TRUE FROM test_suites WHERE id = ?`, testCase.SuiteID.String()).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return goerr.New("test suite not found", goerr.V("suite_id", testCase.SuiteID))
		}
		return goerr.Wrap(err, "failed to query test suite", goerr.V("suite_id", testCase.SuiteID))
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO test_cases (id, suite_id, title, description, priority, type, status, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  suite_id = VALUES(suite_id), title = VALUES(title), description = VALUES(description),
  priority = VALUES(priority), type = VALUES(type), status = VALUES(status),
  is_active = VALUES(is_active), updated_at = VALUES(updated_at)`,
		testCase.ID.String(), testCase.SuiteID.String(), testCase.Title, testCase.Description,
		testCase.Priority, testCase.Type, testCase.Status, testCase.IsActive,
		testCase.CreatedAt.UTC(), testCase.UpdatedAt.UTC(),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to save test case", goerr.V("id", testCase.ID))
	}

	return nil
}

// CountActiveTestCases counts active test cases whose suite belongs to the project
func (r *MySQL) CountActiveTestCases(ctx context.Context, projectID types.ProjectID) (int, error) {
	if projectID == "" {
		return 0, goerr.New("project ID is empty")
	}

	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*)
FROM test_cases tc
JOIN test_suites ts ON tc.suite_id = ts.id
WHERE ts.project_id = ? AND tc.is_active = TRUE`, projectID.String()).Scan(&count)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to count test cases", goerr.V("project_id", projectID))
	}

	return count, nil
}

// PutExecution inserts or updates an execution
func (r *MySQL) PutExecution(ctx context.Context, execution *model.TestExecution) error {
	if execution == nil {
		return goerr.New("execution is nil")
	}
	if err := execution.Validate(); err != nil {
		return goerr.Wrap(err, "invalid execution")
	}

	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT TRUE FROM test_cases WHERE id = ?`, execution.TestCaseID.String()).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return goerr.New("test case not found", goerr.V("test_case_id", execution.TestCaseID))
		}
		return goerr.Wrap(err, "failed to query test case", goerr.V("test_case_id", execution.TestCaseID))
	}

	var completedAt sql.NullTime
	if execution.CompletedAt != nil {
		completedAt = sql.NullTime{Time: execution.CompletedAt.UTC(), Valid: true}
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO test_executions (id, test_case_id, status, started_at, completed_at, notes)
VALUES (?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  status = VALUES(status), completed_at = VALUES(completed_at), notes = VALUES(notes)`,
		execution.ID.String(), execution.TestCaseID.String(), execution.Status.String(),
		execution.StartedAt.UTC(), completedAt, execution.Notes,
	)
	if err != nil {
		return goerr.Wrap(err, "failed to save execution", goerr.V("id", execution.ID))
	}

	return nil
}

// ListExecutions lists executions of the project's test cases started within [from, to]
func (r *MySQL) ListExecutions(ctx context.Context, projectID types.ProjectID, from, to time.Time) ([]*model.TestExecution, error) {
	if projectID == "" {
		return nil, goerr.New("project ID is empty")
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT e.id, e.test_case_id, ts.project_id, e.status, e.started_at, e.completed_at, e.notes
FROM test_executions e
JOIN test_cases tc ON e.test_case_id = tc.id
JOIN test_suites ts ON tc.suite_id = ts.id
WHERE ts.project_id = ? AND e.started_at >= ? AND e.started_at <= ?
ORDER BY e.started_at`, projectID.String(), from.UTC(), to.UTC())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query executions", goerr.V("project_id", projectID))
	}
	defer rows.Close()

	var executions []*model.TestExecution
	for rows.Next() {
		var (
			exec        model.TestExecution
			completedAt sql.NullTime
		)
		if err := rows.Scan(&exec.ID, &exec.TestCaseID, &exec.ProjectID, &exec.Status, &exec.StartedAt, &completedAt, &exec.Notes); err != nil {
			return nil, goerr.Wrap(err, "failed to scan execution")
		}
		if completedAt.Valid {
			t := completedAt.Time
			exec.CompletedAt = &t
		}
		executions = append(executions, &exec)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate executions", goerr.V("project_id", projectID))
	}

	return executions, nil
}

// PutDefect inserts or updates a defect
func (r *MySQL) PutDefect(ctx context.Context, defect *model.Defect) error {
	if defect == nil {
		return goerr.New("defect is nil")
	}
	if err := defect.Validate(); err != nil {
		return goerr.Wrap(err, "invalid defect")
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO defects (id, project_id, title, status, severity, priority, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  title = VALUES(title), status = VALUES(status), severity = VALUES(severity),
  priority = VALUES(priority), is_active = VALUES(is_active), updated_at = VALUES(updated_at)`,
		defect.ID.String(), defect.ProjectID.String(), defect.Title, defect.Status.String(),
		defect.Severity.String(), defect.Priority, defect.IsActive,
		defect.CreatedAt.UTC(), defect.UpdatedAt.UTC(),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to save defect", goerr.V("id", defect.ID))
	}

	return nil
}

// ListDefects lists all defects of the project
func (r *MySQL) ListDefects(ctx context.Context, projectID types.ProjectID) ([]*model.Defect, error) {
	if projectID == "" {
		return nil, goerr.New("project ID is empty")
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, project_id, title, status, severity, priority, is_active, created_at, updated_at
FROM defects
WHERE project_id = ?
ORDER BY created_at`, projectID.String())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query defects", goerr.V("project_id", projectID))
	}
	defer rows.Close()

	var defects []*model.Defect
	for rows.Next() {
		var d model.Defect
		if err := rows.Scan(&d.ID, &d.ProjectID, &d.Title, &d.Status, &d.Severity, &d.Priority, &d.IsActive, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, goerr.Wrap(err, "failed to scan defect")
		}
		defects = append(defects, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate defects", goerr.V("project_id", projectID))
	}

	return defects, nil
}

// Close closes the connection pool
func (r *MySQL) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

var _ interfaces.Repository = (*MySQL)(nil) // Compile-time interface check

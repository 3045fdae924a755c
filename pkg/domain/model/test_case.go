package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tessera/pkg/domain/types"
)

// TestCase belongs to exactly one TestSuite. It is soft-deleted via IsActive.
type TestCase struct {
	ID          types.TestCaseID  `json:"id" yaml:"id"`
	SuiteID     types.TestSuiteID `json:"suite_id" yaml:"suite_id"`
	ProjectID   types.ProjectID   `json:"project_id" yaml:"project_id"` // denormalized from the suite for scoped queries
	Title       string            `json:"title" yaml:"title"`
	Description string            `json:"description" yaml:"description"`
	Priority    string            `json:"priority" yaml:"priority"`
	Type        string            `json:"type" yaml:"type"`
	Status      string            `json:"status" yaml:"status"`
	IsActive    bool              `json:"is_active" yaml:"is_active"`
	CreatedAt   time.Time         `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at" yaml:"updated_at"`
}

// Validate validates the test case
func (tc *TestCase) Validate() error {
	if tc.ID == "" {
		return goerr.New("test case ID is required", goerr.T(ErrTagValidation))
	}
	if tc.SuiteID == "" {
		return goerr.New("test case must belong to a suite", goerr.T(ErrTagValidation), goerr.V("id", tc.ID))
	}
	return nil
}

// TestExecution is one execution attempt of a test case
type TestExecution struct {
	ID          types.ExecutionID     `json:"id" yaml:"id"`
	TestCaseID  types.TestCaseID      `json:"test_case_id" yaml:"test_case_id"`
	ProjectID   types.ProjectID       `json:"project_id" yaml:"project_id"` // denormalized from the test case
	Status      types.ExecutionStatus `json:"status" yaml:"status"`
	StartedAt   time.Time             `json:"started_at" yaml:"started_at"`
	CompletedAt *time.Time            `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
	Notes       string                `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Validate validates the execution
func (e *TestExecution) Validate() error {
	if e.ID == "" {
		return goerr.New("execution ID is required", goerr.T(ErrTagValidation))
	}
	if e.TestCaseID == "" {
		return goerr.New("execution must reference a test case", goerr.T(ErrTagValidation), goerr.V("id", e.ID))
	}
	if e.StartedAt.IsZero() {
		return goerr.New("execution start time is required", goerr.T(ErrTagValidation), goerr.V("id", e.ID))
	}
	if e.CompletedAt != nil && e.CompletedAt.Before(e.StartedAt) {
		return goerr.New("execution completed before it started", goerr.T(ErrTagValidation),
			goerr.V("id", e.ID),
			goerr.V("started_at", e.StartedAt),
			goerr.V("completed_at", *e.CompletedAt))
	}
	return nil
}

// Complete moves a running execution into a terminal status
func (e *TestExecution) Complete(status types.ExecutionStatus, at time.Time) error {
	if e.CompletedAt != nil {
		return goerr.New("execution is already completed", goerr.V("id", e.ID))
	}
	if !status.IsTerminal() {
		return goerr.New("completion status must be terminal", goerr.V("status", status))
	}
	if at.Before(e.StartedAt) {
		return goerr.New("completion time is before start time",
			goerr.V("started_at", e.StartedAt),
			goerr.V("completed_at", at))
	}

	e.Status = status
	e.CompletedAt = &at
	return nil
}

// InWindow reports whether the execution started within [from, to], both bounds inclusive
func (e *TestExecution) InWindow(from, to time.Time) bool {
	return !e.StartedAt.Before(from) && !e.StartedAt.After(to)
}

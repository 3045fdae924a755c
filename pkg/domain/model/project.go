package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tessera/pkg/domain/types"
)

// Project owns test suites and defects. All analytics are scoped to one project.
type Project struct {
	ID          types.ProjectID `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	Status      string          `json:"status" yaml:"status"`
	IsActive    bool            `json:"is_active" yaml:"is_active"`
	CreatedAt   time.Time       `json:"created_at" yaml:"created_at"`
}

// NewProject creates a new active Project
func NewProject(name, description string) (*Project, error) {
	if name == "" {
		return nil, goerr.New("project name is required", goerr.T(ErrTagValidation))
	}

	return &Project{
		ID:          types.NewProjectID(),
		Name:        name,
		Description: description,
		Status:      "Active",
		IsActive:    true,
		CreatedAt:   time.Now(),
	}, nil
}

// Validate validates the project
func (p *Project) Validate() error {
	if p.ID == "" {
		return goerr.New("project ID is required", goerr.T(ErrTagValidation))
	}
	if p.Name == "" {
		return goerr.New("project name is required", goerr.T(ErrTagValidation), goerr.V("id", p.ID))
	}
	return nil
}

// TestSuite groups test cases inside a project
type TestSuite struct {
	ID          types.TestSuiteID `json:"id" yaml:"id"`
	ProjectID   types.ProjectID   `json:"project_id" yaml:"project_id"`
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description" yaml:"description"`
	IsActive    bool              `json:"is_active" yaml:"is_active"`
	CreatedAt   time.Time         `json:"created_at" yaml:"created_at"`
}

// Validate validates the test suite
func (s *TestSuite) Validate() error {
	if s.ID == "" {
		return goerr.New("test suite ID is required", goerr.T(ErrTagValidation))
	}
	if s.ProjectID == "" {
		return goerr.New("test suite must belong to a project", goerr.T(ErrTagValidation), goerr.V("id", s.ID))
	}
	return nil
}

package types

import (
	"github.com/google/uuid"
)

// ProjectID represents a project identifier
type ProjectID string

// String returns the string representation
func (id ProjectID) String() string {
	return string(id)
}

// NewProjectID creates a new ProjectID
func NewProjectID() ProjectID {
	return ProjectID(uuid.New().String())
}

// TestSuiteID represents a test suite identifier
type TestSuiteID string

// String returns the string representation
func (id TestSuiteID) String() string {
	return string(id)
}

// NewTestSuiteID creates a new TestSuiteID
func NewTestSuiteID() TestSuiteID {
	return TestSuiteID(uuid.New().String())
}

// TestCaseID represents a test case identifier
type TestCaseID string

// String returns the string representation
func (id TestCaseID) String() string {
	return string(id)
}

// NewTestCaseID creates a new TestCaseID
func NewTestCaseID() TestCaseID {
	return TestCaseID(uuid.New().String())
}

// ExecutionID represents a test execution identifier
type ExecutionID string

// String returns the string representation
func (id ExecutionID) String() string {
	return string(id)
}

// NewExecutionID creates a new ExecutionID using UUID v7 so that IDs sort by creation time
func NewExecutionID() ExecutionID {
	id, err := uuid.NewV7()
	if err != nil {
		return ExecutionID(uuid.New().String())
	}
	return ExecutionID(id.String())
}

// DefectID represents a defect identifier
type DefectID string

// String returns the string representation
func (id DefectID) String() string {
	return string(id)
}

// NewDefectID creates a new DefectID
func NewDefectID() DefectID {
	return DefectID(uuid.New().String())
}

// ChannelID represents a Slack channel identifier
type ChannelID string

// String returns the string representation
func (id ChannelID) String() string {
	return string(id)
}

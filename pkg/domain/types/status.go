package types

// ExecutionStatus represents the status of a test execution.
// Values are stored verbatim, so unknown statuses pass through and are simply not counted.
type ExecutionStatus string

const (
	ExecutionStatusPassed  ExecutionStatus = "Passed"
	ExecutionStatusFailed  ExecutionStatus = "Failed"
	ExecutionStatusSkipped ExecutionStatus = "Skipped"
	ExecutionStatusRunning ExecutionStatus = "Running"
	ExecutionStatusBlocked ExecutionStatus = "Blocked"
)

// String returns the string representation of the status
func (s ExecutionStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the execution has finished
func (s ExecutionStatus) IsTerminal() bool {
	switch s {
	case ExecutionStatusPassed, ExecutionStatusFailed, ExecutionStatusSkipped, ExecutionStatusBlocked:
		return true
	default:
		return false
	}
}

// DefectStatus represents the status of a defect
type DefectStatus string

const (
	DefectStatusOpen       DefectStatus = "Open"
	DefectStatusInProgress DefectStatus = "In Progress"
	DefectStatusClosed     DefectStatus = "Closed"
	DefectStatusReopened   DefectStatus = "Reopened"
)

// String returns the string representation of the status
func (s DefectStatus) String() string {
	return string(s)
}

// IsActive returns true for statuses counted as open work (Open, In Progress)
func (s DefectStatus) IsActive() bool {
	return s == DefectStatusOpen || s == DefectStatusInProgress
}

// IsClosed returns true only for the Closed status
func (s DefectStatus) IsClosed() bool {
	return s == DefectStatusClosed
}

// Severity represents the severity of a defect
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
	SeverityLow      Severity = "Low"
)

// String returns the string representation of the severity
func (s Severity) String() string {
	return string(s)
}

// IsHighOrCritical returns true for High and Critical severities
func (s Severity) IsHighOrCritical() bool {
	return s == SeverityCritical || s == SeverityHigh
}

// IsValid returns true for the four known severities. Matching is case-sensitive.
func (s Severity) IsValid() bool {
	for _, v := range Severities() {
		if s == v {
			return true
		}
	}
	return false
}

// Severities returns the closed, ordered severity enumeration.
// A fresh slice is returned on every call.
func Severities() []Severity {
	return []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}
}

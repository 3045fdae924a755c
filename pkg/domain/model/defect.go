package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tessera/pkg/domain/types"
)

// Defect is a mutable defect record. UpdatedAt changes on every edit and is used as the
// resolution time once the defect is Closed.
type Defect struct {
	ID        types.DefectID     `json:"id" yaml:"id"`
	ProjectID types.ProjectID    `json:"project_id" yaml:"project_id"`
	Title     string             `json:"title" yaml:"title"`
	Status    types.DefectStatus `json:"status" yaml:"status"`
	Severity  types.Severity     `json:"severity" yaml:"severity"`
	Priority  string             `json:"priority" yaml:"priority"`
	IsActive  bool               `json:"is_active" yaml:"is_active"`
	CreatedAt time.Time          `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" yaml:"updated_at"`
}

// Validate validates the defect
func (d *Defect) Validate() error {
	if d.ID == "" {
		return goerr.New("defect ID is required", goerr.T(ErrTagValidation))
	}
	if d.ProjectID == "" {
		return goerr.New("defect must belong to a project", goerr.T(ErrTagValidation), goerr.V("id", d.ID))
	}
	if !d.Severity.IsValid() {
		return goerr.New("unknown defect severity", goerr.T(ErrTagValidation),
			goerr.V("id", d.ID),
			goerr.V("severity", d.Severity))
	}
	if d.UpdatedAt.Before(d.CreatedAt) {
		return goerr.New("defect updated before it was created", goerr.T(ErrTagValidation),
			goerr.V("id", d.ID),
			goerr.V("created_at", d.CreatedAt),
			goerr.V("updated_at", d.UpdatedAt))
	}
	return nil
}

// ResolutionDuration returns how long a Closed defect took to resolve.
// ok is false for defects that are not Closed.
func (d *Defect) ResolutionDuration() (time.Duration, bool) {
	if !d.Status.IsClosed() {
		return 0, false
	}
	return d.UpdatedAt.Sub(d.CreatedAt), true
}

package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunStatus tracks a processing run through its lifecycle.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// AttendeeOutcome records what happened to one speaker slot during a
// run: whether a booklet was produced and, if not, why it was skipped.
type AttendeeOutcome struct {
	Label     string `json:"label"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
	Reason    string `json:"reason,omitempty"`
}

// Run is the per-invocation record of one processing run. All mutable
// session state (status log, progress, artifact) lives here so that
// concurrent runs share nothing.
type Run struct {
	ID        uuid.UUID         `json:"id"`
	EventDate string            `json:"event_date"`
	Status    RunStatus         `json:"status"`
	Progress  float64           `json:"progress"`
	Log       []string          `json:"log"`
	Outcomes  []AttendeeOutcome `json:"outcomes"`
	Artifact  string            `json:"artifact,omitempty"`
	Filename  string            `json:"filename,omitempty"`
	// DocumentID is set after a successful publication so later
	// publications can append instead of creating a new document.
	DocumentID string    `json:"document_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewRun creates a run record in the running state.
func NewRun(eventDate string) *Run {
	now := time.Now()
	return &Run{
		ID:        uuid.New(),
		EventDate: eventDate,
		Status:    RunStatusRunning,
		Log:       make([]string, 0),
		Outcomes:  make([]AttendeeOutcome, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Logf appends a formatted status line to the run log.
func (r *Run) Logf(format string, args ...interface{}) {
	r.Log = append(r.Log, fmt.Sprintf(format, args...))
	r.UpdatedAt = time.Now()
}

// PublishResult is the structured outcome of a document-store
// publication. Publication failures are reported here, never raised
// past the output sink boundary.
type PublishResult struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	DocumentID  string `json:"document_id,omitempty"`
	DocumentURL string `json:"document_url,omitempty"`
}

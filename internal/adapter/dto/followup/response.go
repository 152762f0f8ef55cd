package followup

import (
	"time"

	"github.com/innovators-table/followup-assistant/internal/domain/entities"
)

// ResolveContactsResponse carries the resolved profiles and the lookup
// status log.
type ResolveContactsResponse struct {
	Profiles []entities.AttendeeProfile `json:"profiles"`
	Messages []string                   `json:"messages"`
	Count    int                        `json:"count"`
}

// ConnectionTestResponse reports the result of a CRM credential check.
type ConnectionTestResponse struct {
	Connected bool `json:"connected"`
}

// RunResponse is the API view of a processing run. The artifact body is
// omitted; it is served by the download endpoint.
type RunResponse struct {
	ID        string                     `json:"id"`
	EventDate string                     `json:"event_date"`
	Status    string                     `json:"status"`
	Progress  float64                    `json:"progress"`
	Log       []string                   `json:"log"`
	Outcomes  []entities.AttendeeOutcome `json:"outcomes"`
	Filename  string                     `json:"filename,omitempty"`
	HasDoc    bool                       `json:"has_document"`
	CreatedAt time.Time                  `json:"created_at"`
	UpdatedAt time.Time                  `json:"updated_at"`
}

// NewRunResponse maps a run entity to its API view.
func NewRunResponse(run *entities.Run) RunResponse {
	return RunResponse{
		ID:        run.ID.String(),
		EventDate: run.EventDate,
		Status:    string(run.Status),
		Progress:  run.Progress,
		Log:       run.Log,
		Outcomes:  run.Outcomes,
		Filename:  run.Filename,
		HasDoc:    run.DocumentID != "",
		CreatedAt: run.CreatedAt,
		UpdatedAt: run.UpdatedAt,
	}
}

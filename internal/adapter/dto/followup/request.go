package followup

// ResolveContactsRequest asks the CRM for attendee profiles by email.
type ResolveContactsRequest struct {
	Identifiers []string `json:"identifiers" validate:"required,min=1,dive,required"`
}

// AttendeeRow is one attendee supplied inline instead of via CSV. Field
// names mirror the RSVP form questions.
type AttendeeRow struct {
	FirstName        string `json:"first_name" validate:"required"`
	LastName         string `json:"last_name"`
	Company          string `json:"company"`
	Industry         string `json:"industry"`
	Role             string `json:"role"`
	CompanySolves    string `json:"company_solves"`
	BiggestChallenge string `json:"biggest_challenge"`
	Superpower       string `json:"superpower"`
}

// GenerateRequest starts a processing run with inline attendees. The
// transcript may be replaced by a recording URL when transcription is
// configured.
type GenerateRequest struct {
	Attendees    []AttendeeRow `json:"attendees" validate:"required,min=1,dive"`
	Transcript   string        `json:"transcript"`
	RecordingURL string        `json:"recording_url" validate:"omitempty,url"`
	EventDate    string        `json:"event_date" validate:"required,eventdate"`
}

// PublishRequest sends a completed run's artifact to the document
// store. An empty DocumentID creates a new document.
type PublishRequest struct {
	DocumentID string `json:"document_id"`
}

package entities

import "strings"

// AttendeeProfile holds identity and survey data for one dinner
// attendee. All fields are plain strings; missing values normalize to
// empty string so downstream templating never has to deal with absent
// keys.
type AttendeeProfile struct {
	Name             string `json:"name"`
	Company          string `json:"company"`
	Industry         string `json:"industry"`
	Role             string `json:"role"`
	CompanySolves    string `json:"what_their_company_solves"`
	BiggestChallenge string `json:"challenge,omitempty"`
	Superpower       string `json:"superpower"`
}

// IsEmpty reports whether the profile carries no usable data at all.
func (p AttendeeProfile) IsEmpty() bool {
	return strings.TrimSpace(p.Name) == "" &&
		strings.TrimSpace(p.Company) == "" &&
		strings.TrimSpace(p.Industry) == "" &&
		strings.TrimSpace(p.Role) == "" &&
		strings.TrimSpace(p.CompanySolves) == "" &&
		strings.TrimSpace(p.BiggestChallenge) == "" &&
		strings.TrimSpace(p.Superpower) == ""
}

// FieldMap maps opaque CRM custom-field identifiers to human-readable
// field names. Fetched once from the CRM and cached for the lifetime of
// one client instance.
type FieldMap map[string]string

// NameFor resolves a field identifier to its display name, returning
// empty string for unknown identifiers.
func (m FieldMap) NameFor(id string) string {
	if m == nil {
		return ""
	}
	return m[id]
}

package followup

import (
	"strings"

	apperrors "github.com/innovators-table/followup-assistant/errors"
	"github.com/innovators-table/followup-assistant/internal/domain/entities"
)

// Column headers the attendee table must carry. These match the RSVP
// form export exactly, long questions included.
const (
	ColumnFirstName        = "First name"
	ColumnLastName         = "Last name"
	ColumnCompanyName      = "Company Name"
	ColumnIndustry         = "Industry"
	ColumnRole             = "Role"
	ColumnCompanySolves    = "What their company solves."
	ColumnBiggestChallenge = "What is the biggest challenge you are currently facing in your business?"
	ColumnSuperpower       = "What is your superpower—the one thing you do exceptionally well that could help others?"
)

// RequiredColumns returns the headers an attendee table must contain,
// in canonical order.
func RequiredColumns() []string {
	return []string{
		ColumnFirstName,
		ColumnLastName,
		ColumnCompanyName,
		ColumnIndustry,
		ColumnRole,
		ColumnCompanySolves,
		ColumnBiggestChallenge,
		ColumnSuperpower,
	}
}

// BuildRosterFromRows validates the column set and turns tabular
// attendee data into a labeled roster. The schema check reports every
// missing column at once, not just the first.
func BuildRosterFromRows(columns []string, rows []map[string]string) (*entities.Roster, error) {
	present := make(map[string]bool, len(columns))
	for _, col := range columns {
		present[strings.TrimSpace(col)] = true
	}

	var missing []string
	for _, required := range RequiredColumns() {
		if !present[required] {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.ErrSchemaValidation(missing)
	}

	profiles := make([]entities.AttendeeProfile, 0, len(rows))
	for _, row := range rows {
		profiles = append(profiles, entities.AttendeeProfile{
			Name:             strings.TrimSpace(row[ColumnFirstName] + " " + row[ColumnLastName]),
			Company:          row[ColumnCompanyName],
			Industry:         row[ColumnIndustry],
			Role:             row[ColumnRole],
			CompanySolves:    row[ColumnCompanySolves],
			BiggestChallenge: row[ColumnBiggestChallenge],
			Superpower:       row[ColumnSuperpower],
		})
	}

	return entities.NewRoster(profiles), nil
}

// BuildRosterFromProfiles labels already-resolved profiles, as produced
// by the contact resolver.
func BuildRosterFromProfiles(profiles []entities.AttendeeProfile) *entities.Roster {
	return entities.NewRoster(profiles)
}

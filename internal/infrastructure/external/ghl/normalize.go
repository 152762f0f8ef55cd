package ghl

import (
	"fmt"
	"strings"

	"github.com/innovators-table/followup-assistant/internal/domain/entities"
)

// Custom-field display names the profile normalization looks up. The
// CRM location must define fields with these names for the survey data
// to flow through.
const (
	fieldIndustry         = "Industry"
	fieldRole             = "Role"
	fieldSolution         = "Solution"
	fieldBiggestChallenge = "Biggest Challenge"
	fieldSuperpower       = "Superpower"
)

// ParseCustomFields resolves raw custom-field entries to a name→value
// map. Sequence values are joined with ", "; entries whose identifier
// is not in the field map are dropped silently.
func ParseCustomFields(raw []CustomField, fieldMap entities.FieldMap) map[string]string {
	result := make(map[string]string, len(raw))
	for _, f := range raw {
		name := fieldMap.NameFor(f.ID)
		if name == "" {
			continue
		}
		result[name] = stringifyValue(f.Value)
	}
	return result
}

// Normalize maps a raw contact and its custom fields into the seven
// named profile fields. Total: any missing value becomes empty string,
// never absent.
func Normalize(contact *Contact, fieldMap entities.FieldMap) entities.AttendeeProfile {
	if contact == nil {
		return entities.AttendeeProfile{}
	}

	custom := ParseCustomFields(contact.CustomFields, fieldMap)

	return entities.AttendeeProfile{
		Name:             strings.TrimSpace(contact.FirstName + " " + contact.LastName),
		Company:          contact.CompanyName,
		Industry:         custom[fieldIndustry],
		Role:             custom[fieldRole],
		CompanySolves:    custom[fieldSolution],
		BiggestChallenge: custom[fieldBiggestChallenge],
		Superpower:       custom[fieldSuperpower],
	}
}

func stringifyValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []interface{}:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, stringifyValue(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", val)
	}
}

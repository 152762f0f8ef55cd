package followup

import (
	"context"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/innovators-table/followup-assistant/errors"
	"github.com/innovators-table/followup-assistant/internal/domain/entities"
)

// ContactAPI is the CRM surface the resolver needs.
type ContactAPI interface {
	Configured() bool
	Resolve(ctx context.Context, email string) (entities.AttendeeProfile, bool)
	TestConnection(ctx context.Context) bool
}

// ResolveResult carries the resolved profiles plus the human-readable
// status log built while resolving.
type ResolveResult struct {
	Profiles []entities.AttendeeProfile `json:"profiles"`
	Messages []string                   `json:"messages"`
}

// ProgressFunc receives a completion fraction in [0, 1].
type ProgressFunc func(fraction float64)

// ResolveContacts looks up each identifier against the CRM, pacing
// requests to stay under the upstream rate limit. An absent contact is
// logged and skipped, never fatal. Only email identifiers are
// supported; anything without an "@" is logged as unsupported.
func (s *Service) ResolveContacts(ctx context.Context, identifiers []string, progress ProgressFunc) (ResolveResult, error) {
	if !s.contacts.Configured() {
		return ResolveResult{}, apperrors.ErrMissingCredentials("CRM")
	}

	result := ResolveResult{
		Profiles: make([]entities.AttendeeProfile, 0, len(identifiers)),
		Messages: make([]string, 0),
	}

	result.Messages = append(result.Messages, "Loading custom field definitions...")

	for idx, raw := range identifiers {
		identifier := strings.TrimSpace(raw)
		if identifier == "" {
			continue
		}

		if progress != nil {
			progress(float64(idx+1) / float64(len(identifiers)))
		}

		if !strings.Contains(identifier, "@") {
			result.Messages = append(result.Messages, "Unsupported identifier (email required): "+identifier)
			continue
		}

		result.Messages = append(result.Messages, "Searching for: "+identifier)

		profile, found := s.contacts.Resolve(ctx, identifier)
		if found {
			result.Profiles = append(result.Profiles, profile)
			result.Messages = append(result.Messages, "Found: "+profile.Name+" - "+profile.Company)
		} else {
			result.Messages = append(result.Messages, "Not found: "+identifier)
		}

		// The CRM rate-limits aggressively; pause between lookups even
		// after a miss.
		if idx < len(identifiers)-1 {
			select {
			case <-ctx.Done():
				result.Messages = append(result.Messages, "Lookup cancelled")
				return result, nil
			case <-time.After(s.lookupDelay):
			}
		}
	}

	result.Messages = append(result.Messages, "Total participants fetched: "+strconv.Itoa(len(result.Profiles)))
	return result, nil
}

package entities

import "fmt"

// HostLabel is the reserved roster slot for the event host.
const HostLabel = "Host"

// HostProfile is the fixed profile appended to every roster as its
// final entry.
var HostProfile = AttendeeProfile{
	Name:       "Dalton Locke",
	Company:    "MIT-45, PONO.AI, Spiritual Capitalist, Innovators Table",
	Industry:   "Other",
	Role:       "Owner/CEO",
	Superpower: "Helping business owners solve their biggest challenges.",
}

// RosterEntry binds a speaker-slot label to an attendee profile.
type RosterEntry struct {
	Label   string          `json:"label"`
	Profile AttendeeProfile `json:"profile"`
}

// Roster is the ordered set of attendee profiles for one processing
// run, ending with the reserved host entry. Built fresh per run and
// never mutated afterwards; iteration order is insertion order.
type Roster struct {
	entries []RosterEntry
}

// NewRoster labels the given profiles "Speaker 1".."Speaker N" in
// source order and appends the fixed host entry last.
func NewRoster(profiles []AttendeeProfile) *Roster {
	r := &Roster{entries: make([]RosterEntry, 0, len(profiles)+1)}
	for i, p := range profiles {
		r.entries = append(r.entries, RosterEntry{
			Label:   fmt.Sprintf("Speaker %d", i+1),
			Profile: p,
		})
	}
	r.entries = append(r.entries, RosterEntry{Label: HostLabel, Profile: HostProfile})
	return r
}

// Entries returns all roster entries in insertion order, host last.
func (r *Roster) Entries() []RosterEntry {
	return r.entries
}

// Speakers returns the non-host entries in insertion order.
func (r *Roster) Speakers() []RosterEntry {
	speakers := make([]RosterEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if e.Label != HostLabel {
			speakers = append(speakers, e)
		}
	}
	return speakers
}

// Entry returns the entry with the given label.
func (r *Roster) Entry(label string) (RosterEntry, bool) {
	for _, e := range r.entries {
		if e.Label == label {
			return e, true
		}
	}
	return RosterEntry{}, false
}

// Others returns every entry except the one with the given label,
// preserving order. Used to describe the rest of the table to the
// synthesizer.
func (r *Roster) Others(label string) []RosterEntry {
	others := make([]RosterEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if e.Label != label {
			others = append(others, e)
		}
	}
	return others
}

// Len returns the total number of entries including the host.
func (r *Roster) Len() int {
	return len(r.entries)
}

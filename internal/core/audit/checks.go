package audit

import (
	"strings"

	"github.com/baditaflorin/go_thrones_audit/internal/core/domain"
	"github.com/baditaflorin/go_thrones_audit/internal/ports"
)

// Field labels used in completeness reports.
const (
	FieldFirstName = "First Name"
	FieldLastName  = "Last Name"
	FieldFullName  = "Full Name"
	FieldTitle     = "Title"
	FieldFamily    = "Family"
	FieldImage     = "Image"
	FieldImageURL  = "Image URL"
)

// CompletenessEntry lists the empty fields of one character.
type CompletenessEntry struct {
	ID      int
	Missing []string
}

// Complete reports whether no field is missing.
func (e CompletenessEntry) Complete() bool { return len(e.Missing) == 0 }

// CheckCompleteness reports, per character, which fields are empty.
func CheckCompleteness(characters []domain.Character) []CompletenessEntry {
	out := make([]CompletenessEntry, 0, len(characters))
	for _, c := range characters {
		fields := []struct {
			label string
			value string
		}{
			{FieldFirstName, c.FirstName},
			{FieldLastName, c.LastName},
			{FieldFullName, c.FullName},
			{FieldTitle, c.Title},
			{FieldFamily, c.Family},
			{FieldImage, c.Image},
			{FieldImageURL, c.ImageURL},
		}
		entry := CompletenessEntry{ID: c.ID}
		for _, f := range fields {
			if f.value == "" {
				entry.Missing = append(entry.Missing, f.label)
			}
		}
		out = append(out, entry)
	}
	return out
}

// FullNameMismatch is a character whose full name is not "first last".
type FullNameMismatch struct {
	ID        int
	FirstName string
	LastName  string
	FullName  string
}

// CheckFullNames returns characters that have both a first and a last name
// but whose full name differs from the two joined by a space. Names are
// trimmed and passed through n before comparison; n should not alter inner
// whitespace, so "Arya  Stark" is still reported.
func CheckFullNames(characters []domain.Character, n ports.Normalizer) []FullNameMismatch {
	var out []FullNameMismatch
	for _, c := range characters {
		first := strings.TrimSpace(c.FirstName)
		last := strings.TrimSpace(c.LastName)
		full := strings.TrimSpace(c.FullName)
		if first == "" || last == "" {
			continue
		}
		if n.Normalize(full) == n.Normalize(first+" "+last) {
			continue
		}
		out = append(out, FullNameMismatch{ID: c.ID, FirstName: first, LastName: last, FullName: full})
	}
	return out
}

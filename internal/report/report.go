// Package report renders audit outcomes as human-readable text.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/baditaflorin/go_thrones_audit/internal/core/audit"
	"github.com/baditaflorin/go_thrones_audit/internal/core/domain"
)

// Writer renders reports to an io.Writer. The first write error is kept and
// every later call becomes a no-op.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter creates a report writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Err returns the first write error, if any.
func (rw *Writer) Err() error { return rw.err }

func (rw *Writer) printf(format string, args ...interface{}) {
	if rw.err != nil {
		return
	}
	_, rw.err = fmt.Fprintf(rw.w, format, args...)
}

// Section prints a title framed by lines of '=' of the same width.
func (rw *Writer) Section(title string) {
	bar := strings.Repeat("=", len(title))
	rw.printf("\n%s\n%s\n%s\n", bar, title, bar)
}

// Break prints an empty line.
func (rw *Writer) Break() {
	rw.printf("\n")
}

// Status renders the list endpoint status check.
func (rw *Writer) Status(r audit.StatusReport) {
	if r.OK() {
		rw.printf("Success! Status code is %d\n", r.Code)
		return
	}
	rw.printf("Error! Status code is %d\n", r.Code)
}

// Profiles renders every character profile on one line.
func (rw *Writer) Profiles(characters []domain.Character) {
	for _, c := range characters {
		rw.printf("ID: %d | FIRST NAME: %s | LAST NAME: %s | FULL NAME: %s | TITLE: %s | FAMILY: %s | IMAGE: %s | IMAGE URL: %s\n",
			c.ID, c.FirstName, c.LastName, c.FullName, c.Title, c.Family, c.Image, c.ImageURL)
	}
}

// Consistency renders the consistency check.
func (rw *Writer) Consistency(r audit.ConsistencyReport) {
	for _, id := range r.Inconsistent {
		rw.printf("Inconsistency in data for character with ID %d\n", id)
	}
	for _, f := range r.Failed {
		rw.printf("Could not fetch character with ID %d: %v\n", f.ID, f.Err)
	}
	rw.printf("Data consistency check completed (%d checked).\n", r.Checked)
}

// Completeness renders missing fields per character.
func (rw *Writer) Completeness(entries []audit.CompletenessEntry) {
	for _, e := range entries {
		if e.Complete() {
			rw.printf("Character %d has all data.\n", e.ID)
			continue
		}
		rw.printf("Character %d is missing data for: %s\n", e.ID, strings.Join(e.Missing, ", "))
	}
}

// FullNames renders full-name mismatches.
func (rw *Writer) FullNames(mismatches []audit.FullNameMismatch) {
	for _, m := range mismatches {
		rw.printf("ID: %d\nFirst Name: %s\nLast Name: %s\nFull Name: %s\nStatus: INCORRECT\n%s\n",
			m.ID, m.FirstName, m.LastName, m.FullName, strings.Repeat("-", 30))
	}
}

// Families renders the family counts, the character statistics and the
// family affiliation of every character.
func (rw *Writer) Families(r audit.FamilyReport) {
	res := r.Result

	rw.Section("Families:")
	for i, name := range res.Families {
		rw.printf("%d. %s: %d\n", i+1, name, res.Counts[name])
	}

	rw.Section("Character Statistics:")
	rw.printf("Total characters: %d\n", res.Total)
	rw.printf("Characters without a family: %d\n", res.NoFamily)
	rw.printf("Characters with excluded families: %d\n", res.Excluded)
	rw.printf("Total characters without a family or with excluded families: %d\n", res.NoFamily+res.Excluded)
	rw.printf("Total characters with a family (excluding excluded families): %d\n", res.WithFamily())

	rw.Section("Character Family Affiliations:")
	for _, a := range r.Affiliations {
		if a.Member {
			rw.printf("%s belongs to the %s family\n", a.FullName, a.Family)
			continue
		}
		rw.printf("%s has no family affiliation\n", a.FullName)
	}
}

// Images renders image probe outcomes.
func (rw *Writer) Images(entries []audit.ImageEntry) {
	for _, e := range entries {
		switch {
		case e.Err != nil:
			rw.printf("Character ID: %d - Image Path: %s - Error: %v\n", e.ID, e.Probe.URL, e.Err)
		case !e.Probe.Exists:
			rw.printf("Character ID: %d - Image Path: %s - Does not exist\n", e.ID, e.Probe.URL)
		case e.Probe.GetStatus != audit.StatusOK:
			rw.printf("Character ID: %d - Image Path: %s - Status Code: %d (Error)\n", e.ID, e.Probe.URL, e.Probe.GetStatus)
		default:
			rw.printf("Character ID: %d - Image Path: %s - Status Code: %d\n", e.ID, e.Probe.URL, e.Probe.GetStatus)
		}
	}
}

// WriteProbe renders the write probe.
func (rw *Writer) WriteProbe(r audit.WriteProbeReport) {
	rw.printf("The status code of the POST request is: %d\n", r.PostStatus)
	if r.PostStatus == audit.StatusOK {
		rw.printf("Data was added successfully via a POST request.\n")
	} else {
		rw.printf("POST request encountered an error with status code: %d\n", r.PostStatus)
	}

	rw.printf("The status code of the empty POST request is: %d\n", r.EmptyPostStatus)
	if r.EmptyPostStatus == audit.StatusOK {
		rw.printf("Empty POST request succeeded.\n")
	} else {
		rw.printf("Empty POST request encountered an error with status code: %d\n", r.EmptyPostStatus)
	}

	if r.Fetched == nil {
		rw.printf("GET request did not succeed: %v\n", r.FetchErr)
		return
	}
	rw.printf("Response to the GET request is: %+v\n", *r.Fetched)
	if r.Updated() {
		rw.printf("Data has been successfully updated.\n")
	} else {
		rw.printf("Data has not been updated.\n")
	}
}

package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_thrones_audit/internal/core/audit"
	"github.com/baditaflorin/go_thrones_audit/internal/core/domain"
	"github.com/baditaflorin/go_thrones_audit/internal/ports"
)

func TestSection(t *testing.T) {
	var buf bytes.Buffer
	NewWriter(&buf).Section("Families:")
	assert.Equal(t, "\n=========\nFamilies:\n=========\n", buf.String())
}

func TestStatus(t *testing.T) {
	var buf bytes.Buffer
	rw := NewWriter(&buf)
	rw.Status(audit.StatusReport{Code: 200})
	rw.Status(audit.StatusReport{Code: 404})
	assert.Equal(t, "Success! Status code is 200\nError! Status code is 404\n", buf.String())
}

func TestFamilies(t *testing.T) {
	var buf bytes.Buffer
	NewWriter(&buf).Families(audit.FamilyReport{
		Result: domain.NormalizationResult{
			Counts:   map[string]int{"Lannister": 2, "Stark": 1},
			Families: []string{"Lannister", "Stark"},
			NoFamily: 1,
			Excluded: 1,
			Total:    5,
		},
		Affiliations: []domain.Affiliation{
			{FullName: "Jaime Lannister", Family: "Lannister", Member: true},
			{FullName: "Varys", Member: false},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "1. Lannister: 2\n2. Stark: 1\n")
	assert.Contains(t, out, "Total characters: 5\n")
	assert.Contains(t, out, "Total characters without a family or with excluded families: 2\n")
	assert.Contains(t, out, "Total characters with a family (excluding excluded families): 3\n")
	assert.Contains(t, out, "Jaime Lannister belongs to the Lannister family\n")
	assert.Contains(t, out, "Varys has no family affiliation\n")
	assert.Less(t, strings.Index(out, "Families:"), strings.Index(out, "Character Statistics:"))
}

func TestCompleteness(t *testing.T) {
	var buf bytes.Buffer
	NewWriter(&buf).Completeness([]audit.CompletenessEntry{
		{ID: 1},
		{ID: 2, Missing: []string{audit.FieldLastName, audit.FieldFamily}},
	})
	assert.Equal(t, "Character 1 has all data.\nCharacter 2 is missing data for: Last Name, Family\n", buf.String())
}

func TestImages(t *testing.T) {
	var buf bytes.Buffer
	NewWriter(&buf).Images([]audit.ImageEntry{
		{ID: 1, Probe: ports.ImageProbe{URL: "a", Exists: true, HeadStatus: 200, GetStatus: 200}},
		{ID: 2, Probe: ports.ImageProbe{URL: "b", HeadStatus: 404}},
		{ID: 3, Probe: ports.ImageProbe{URL: "c", Exists: true, HeadStatus: 200, GetStatus: 500}},
		{ID: 4, Probe: ports.ImageProbe{URL: "d"}, Err: errors.New("dial failed")},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Character ID: 1 - Image Path: a - Status Code: 200", lines[0])
	assert.Equal(t, "Character ID: 2 - Image Path: b - Does not exist", lines[1])
	assert.Equal(t, "Character ID: 3 - Image Path: c - Status Code: 500 (Error)", lines[2])
	assert.Equal(t, "Character ID: 4 - Image Path: d - Error: dial failed", lines[3])
}

func TestWriteProbe(t *testing.T) {
	sample := audit.SampleCharacter()

	var buf bytes.Buffer
	NewWriter(&buf).WriteProbe(audit.WriteProbeReport{
		Sample:          sample,
		PostStatus:      405,
		EmptyPostStatus: 405,
		FetchErr:        errors.New("not found"),
	})
	out := buf.String()
	assert.Contains(t, out, "POST request encountered an error with status code: 405")
	assert.Contains(t, out, "GET request did not succeed: not found")

	buf.Reset()
	NewWriter(&buf).WriteProbe(audit.WriteProbeReport{Sample: sample, PostStatus: 200, EmptyPostStatus: 200, Fetched: &sample})
	out = buf.String()
	assert.Contains(t, out, "Data was added successfully via a POST request.")
	assert.Contains(t, out, "Data has been successfully updated.")
}

type failingWriter struct{ calls int }

func (f *failingWriter) Write([]byte) (int, error) {
	f.calls++
	return 0, errors.New("closed")
}

func TestWriterKeepsFirstError(t *testing.T) {
	fw := &failingWriter{}
	rw := NewWriter(fw)
	rw.Status(audit.StatusReport{Code: 200})
	rw.Section("Families:")

	assert.EqualError(t, rw.Err(), "closed")
	assert.Equal(t, 1, fw.calls)
}

package docschema

import (
	"fmt"
	"sort"
)

// NoDocumentsNote marks a report produced from an empty sample. It is
// informational, not an error: an empty or missing collection is a valid
// inference result.
const NoDocumentsNote = "no documents found"

// FieldSummary is the caller-visible view of one field path.
type FieldSummary struct {
	Types      []string `json:"types"`                // observed type tags, sorted
	Examples   []any    `json:"examples"`             // up to 3 non-null values, first seen
	Frequency  string   `json:"frequency"`            // "<present>/<sampled>"
	Percentage int      `json:"percentage"`           // rounded presence percentage
}

// ReportSummary carries aggregate counts for a report.
type ReportSummary struct {
	TotalFields    int `json:"total_fields"`
	TotalDocuments int `json:"total_documents"`
}

// Report is the result of one inference run over a collection sample.
type Report struct {
	Collection string                  `json:"collection"`
	SampleSize int                     `json:"sample_size"` // documents actually sampled
	Fields     map[string]FieldSummary `json:"fields"`
	Summary    ReportSummary           `json:"summary"`
	Note       string                  `json:"note,omitempty"`
}

// Paths returns the field paths of the report in sorted order.
func (r *Report) Paths() []string {
	paths := make([]string, 0, len(r.Fields))
	for p := range r.Fields {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func emptyReport(collection string) *Report {
	return &Report{
		Collection: collection,
		SampleSize: 0,
		Fields:     map[string]FieldSummary{},
		Summary:    ReportSummary{},
		Note:       NoDocumentsNote,
	}
}

func formatFrequency(present, sampled int) string {
	return fmt.Sprintf("%d/%d", present, sampled)
}

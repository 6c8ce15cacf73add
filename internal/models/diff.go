package models

import "strings"

// Granularity selects the tokenization unit used when computing a diff.
type Granularity string

const (
	GranularityWord Granularity = "word"
	GranularityLine Granularity = "line"
)

// DiffSegment is one run of unchanged/added/removed tokens produced by the
// diff engine.
//
// Invariant: concatenating the Value of every segment with Removed == false
// reconstructs the modified text, and concatenating every segment with
// Added == false reconstructs the original text.
type DiffSegment struct {
	Value   string `json:"value"`
	Added   bool   `json:"added"`
	Removed bool   `json:"removed"`
}

// Unchanged reports whether the segment belongs to both texts.
func (s DiffSegment) Unchanged() bool {
	return !s.Added && !s.Removed
}

// ReconstructOriginal rebuilds the original text from a segment sequence.
func ReconstructOriginal(segments []DiffSegment) string {
	var sb strings.Builder
	for _, seg := range segments {
		if !seg.Added {
			sb.WriteString(seg.Value)
		}
	}
	return sb.String()
}

// ReconstructModified rebuilds the modified text from a segment sequence.
func ReconstructModified(segments []DiffSegment) string {
	var sb strings.Builder
	for _, seg := range segments {
		if !seg.Removed {
			sb.WriteString(seg.Value)
		}
	}
	return sb.String()
}

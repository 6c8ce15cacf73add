package models

// TaskType classifies what kind of transformation a completion represents.
type TaskType string

const (
	TaskRewrite  TaskType = "rewrite"
	TaskContinue TaskType = "continue"
	TaskCustom   TaskType = "custom"
)

// IsValid reports whether the task type is one of the known variants.
func (t TaskType) IsValid() bool {
	switch t {
	case TaskRewrite, TaskContinue, TaskCustom:
		return true
	}
	return false
}

// ChangeType is the kind of a single atomic edit within a rewrite.
type ChangeType string

const (
	ChangeAdd    ChangeType = "add"
	ChangeDelete ChangeType = "delete"
	ChangeModify ChangeType = "modify"
)

// Span is a half-open character range [Start, End) into the original text,
// measured in runes.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ChangeDetail is one atomic edit (add/delete/modify) within a rewrite
// result, anchored to a position span in the original text. A ChangeDetail is
// owned by exactly one StructuredResult.
type ChangeDetail struct {
	Type     ChangeType `json:"type"`
	Original string     `json:"original"`
	Modified string     `json:"modified"`
	Position Span       `json:"position"`
	Reason   string     `json:"reason,omitempty"`
}

// ResultMetadata carries the optional metadata block of a StructuredResult.
// Original and Changes are only meaningful for rewrite results.
type ResultMetadata struct {
	Original    string         `json:"original,omitempty"`
	Changes     []ChangeDetail `json:"changes,omitempty"`
	Context     string         `json:"context,omitempty"`
	Confidence  *float64       `json:"confidence,omitempty"`
	Suggestions []string       `json:"suggestions,omitempty"`
}

// ResultDebug carries diagnostic fields that are never shown to end users.
type ResultDebug struct {
	Reasoning    string   `json:"reasoning,omitempty"`
	Alternatives []string `json:"alternatives,omitempty"`
}

// StructuredResult is the normalized, typed representation of an AI response
// consumed by downstream diff/merge logic.
//
// Invariant: when Type is TaskRewrite, Metadata.Changes is present (possibly
// empty) and every element's Position is a valid, non-overlapping,
// ascending-order span within Metadata.Original. When Type is TaskContinue,
// Result is appended-only content and Metadata.Original is ignored.
type StructuredResult struct {
	Type     TaskType        `json:"type"`
	Result   string          `json:"result"`
	Metadata *ResultMetadata `json:"metadata,omitempty"`
	Debug    *ResultDebug    `json:"debug,omitempty"`
}

// Unstructured reports whether the result carries no structured change list.
// The presentation layer falls back to showing raw text for such results.
func (r *StructuredResult) Unstructured() bool {
	return r.Metadata == nil || r.Metadata.Changes == nil
}

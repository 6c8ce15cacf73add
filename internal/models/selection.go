package models

import "strings"

// Rect is an axis-aligned rectangle in viewport coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Size is a width/height pair, used for viewport and toolbar extents.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Point is a top-left placement position in viewport coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Selection is the transient value describing the user's currently
// highlighted span of text. Exactly one Selection is live at a time per
// editor instance; it is created on pointer-up/key-up with non-empty text and
// destroyed when the selection clears, Escape is pressed, or an action is
// dispatched.
type Selection struct {
	// Text is the selected text, trimmed and non-empty.
	Text string
	// AnchorRect is the selection's bounding rectangle in viewport
	// coordinates, used to place the floating toolbar.
	AnchorRect Rect
	// RangeHandle is an opaque reference to the host editor's live
	// selection; the pipeline never inspects it.
	RangeHandle any
}

// NewSelection builds a Selection from raw editor-reported text. ok is false
// when the text is empty after trimming, in which case no Selection exists.
func NewSelection(text string, anchor Rect, rangeHandle any) (Selection, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Selection{}, false
	}
	return Selection{Text: trimmed, AnchorRect: anchor, RangeHandle: rangeHandle}, true
}

package presenter

import (
	"github.com/aleister1102/redline/internal/differ"
	"github.com/aleister1102/redline/internal/models"
)

// Mode selects how a diff is laid out for review.
type Mode string

const (
	ModeInline     Mode = "inline"
	ModeSideBySide Mode = "side-by-side"
)

// CellKind tags a rendered cell for styling.
type CellKind string

const (
	CellUnchanged CellKind = "unchanged"
	CellAdded     CellKind = "added"
	CellRemoved   CellKind = "removed"
	// CellEmpty is the placeholder that keeps side-by-side rows aligned
	// when a segment exists on only one side.
	CellEmpty CellKind = "empty"
)

// Cell is one rendered text fragment.
type Cell struct {
	Text string   `json:"text"`
	Kind CellKind `json:"kind"`
}

// Row pairs the original-side and modified-side cells of one segment in
// side-by-side mode.
type Row struct {
	Left  Cell `json:"left"`
	Right Cell `json:"right"`
}

// View is the render output: a pure value derived from (original, modified,
// mode, granularity). Re-rendering with a different mode or granularity
// recomputes from the same input pair and never mutates a previous View.
type View struct {
	Mode        Mode               `json:"mode"`
	Granularity models.Granularity `json:"granularity"`
	// Segments drives inline rendering.
	Segments []models.DiffSegment `json:"segments"`
	// Rows drives side-by-side rendering; always exactly one row per
	// segment so the two panels keep visual correspondence.
	Rows  []Row            `json:"rows,omitempty"`
	Stats differ.DiffStats `json:"stats"`
}

// Presenter renders normalized change sets for user review.
type Presenter struct {
	differ *differ.TextDiffer
}

// NewPresenter creates a new presenter.
func NewPresenter() *Presenter {
	return &Presenter{differ: differ.NewTextDiffer()}
}

// Render computes the diff between original and modified and lays it out in
// the requested mode and granularity.
func (p *Presenter) Render(original, modified string, mode Mode, granularity models.Granularity) View {
	segments := p.differ.Diff(original, modified, granularity)

	view := View{
		Mode:        mode,
		Granularity: granularity,
		Segments:    segments,
		Stats:       differ.CalculateStats(segments),
	}

	if mode == ModeSideBySide {
		view.Rows = buildRows(segments)
	}
	return view
}

// RenderAuto renders with the word/line policy applied: inputs longer than
// the threshold are diffed at line granularity to bound cost.
func (p *Presenter) RenderAuto(original, modified string, mode Mode) View {
	granularity := differ.AutoGranularity(original, modified, AutoLineThreshold)
	return p.Render(original, modified, mode, granularity)
}

// RenderRaw is the degraded path for responses that could not be classified:
// the raw text is shown as a single unchanged segment with no change list.
func (p *Presenter) RenderRaw(raw string) View {
	segments := []models.DiffSegment{}
	if raw != "" {
		segments = append(segments, models.DiffSegment{Value: raw})
	}
	return View{
		Mode:        ModeInline,
		Granularity: models.GranularityWord,
		Segments:    segments,
		Stats:       differ.CalculateStats(segments),
	}
}

// AutoLineThreshold mirrors the editor's policy of switching to line diffs
// past 500 characters.
const AutoLineThreshold = 500

func buildRows(segments []models.DiffSegment) []Row {
	rows := make([]Row, 0, len(segments))
	for _, seg := range segments {
		switch {
		case seg.Removed:
			rows = append(rows, Row{
				Left:  Cell{Text: seg.Value, Kind: CellRemoved},
				Right: Cell{Kind: CellEmpty},
			})
		case seg.Added:
			rows = append(rows, Row{
				Left:  Cell{Kind: CellEmpty},
				Right: Cell{Text: seg.Value, Kind: CellAdded},
			})
		default:
			rows = append(rows, Row{
				Left:  Cell{Text: seg.Value, Kind: CellUnchanged},
				Right: Cell{Text: seg.Value, Kind: CellUnchanged},
			})
		}
	}
	return rows
}

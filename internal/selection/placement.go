package selection

import "github.com/aleister1102/redline/internal/models"

// ToolbarMargin is the minimum distance kept between the toolbar and any
// viewport edge.
const ToolbarMargin = 10.0

// ComputeToolbarPosition places the floating toolbar relative to a
// selection. Preferred placement is below-and-right of the selection end
// point; the toolbar flips above when vertical space runs out and to the
// left when horizontal space runs out, then clamps inside the viewport
// margins. The result is a pure function of its three inputs.
func ComputeToolbarPosition(sel models.Rect, viewport models.Size, toolbar models.Size) models.Point {
	pos := models.Point{
		X: sel.X + sel.Width + ToolbarMargin,
		Y: sel.Y + sel.Height + ToolbarMargin,
	}

	if pos.X+toolbar.Width > viewport.Width-ToolbarMargin {
		pos.X = sel.X - toolbar.Width - ToolbarMargin
	}
	if pos.Y+toolbar.Height > viewport.Height-ToolbarMargin {
		pos.Y = sel.Y - toolbar.Height - ToolbarMargin
	}

	pos.X = clamp(pos.X, ToolbarMargin, viewport.Width-toolbar.Width-ToolbarMargin)
	pos.Y = clamp(pos.Y, ToolbarMargin, viewport.Height-toolbar.Height-ToolbarMargin)

	return pos
}

// clamp bounds v to [lo, hi]; lo wins when the range is inverted (a viewport
// smaller than the toolbar).
func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

package selection

import (
	"testing"

	"github.com/aleister1102/redline/internal/models"
	"github.com/stretchr/testify/assert"
)

var (
	viewport = models.Size{Width: 1280, Height: 800}
	toolbar  = models.Size{Width: 320, Height: 100}
)

func TestComputeToolbarPosition_PrefersBelowRight(t *testing.T) {
	sel := models.Rect{X: 100, Y: 200, Width: 150, Height: 20}

	pos := ComputeToolbarPosition(sel, viewport, toolbar)
	assert.Equal(t, models.Point{X: 260, Y: 230}, pos)
}

func TestComputeToolbarPosition_FlipsAboveWhenNoVerticalSpace(t *testing.T) {
	sel := models.Rect{X: 100, Y: 750, Width: 150, Height: 20}

	pos := ComputeToolbarPosition(sel, viewport, toolbar)
	// 750 - 100 - 10
	assert.Equal(t, 640.0, pos.Y)
}

func TestComputeToolbarPosition_FlipsLeftWhenNoHorizontalSpace(t *testing.T) {
	sel := models.Rect{X: 1100, Y: 200, Width: 150, Height: 20}

	pos := ComputeToolbarPosition(sel, viewport, toolbar)
	// 1100 - 320 - 10
	assert.Equal(t, 770.0, pos.X)
}

func TestComputeToolbarPosition_ClampsToMargins(t *testing.T) {
	sel := models.Rect{X: 0, Y: 0, Width: 5, Height: 5}
	tiny := models.Size{Width: 200, Height: 150}

	pos := ComputeToolbarPosition(sel, tiny, toolbar)
	assert.GreaterOrEqual(t, pos.X, ToolbarMargin)
	assert.GreaterOrEqual(t, pos.Y, ToolbarMargin)
}

func TestComputeToolbarPosition_Deterministic(t *testing.T) {
	sel := models.Rect{X: 640, Y: 400, Width: 100, Height: 18}

	first := ComputeToolbarPosition(sel, viewport, toolbar)
	second := ComputeToolbarPosition(sel, viewport, toolbar)
	assert.Equal(t, first, second)
}

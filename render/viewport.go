package render

import (
	"github.com/lixenwraith/gem-drift/parameter"
	"github.com/lixenwraith/gem-drift/vmath"
)

// Screen rows reserved outside the playfield
const (
	hudRows    = 3 // Top overlay
	footerRows = 1 // Settings line
)

// cellAspect is the height of a terminal cell in units of its width
const cellAspect = 2.0

// Viewport is the cell rectangle the canvas is drawn into, border excluded
type Viewport struct {
	X, Y int
	W, H int
}

// Layout fits the playfield into a screen
// Regular layout keeps the canvas aspect ratio and centers the field;
// fullscreen stretches it over every row below the HUD
func Layout(screenW, screenH int, fullscreen bool) Viewport {
	availW := max(1, screenW-2)
	availH := max(1, screenH-hudRows-footerRows-2)

	if fullscreen {
		return Viewport{X: 1, Y: hudRows + 1, W: availW, H: availH}
	}

	ratio := parameter.PlayfieldWidth / parameter.PlayfieldHeight * cellAspect
	w := int(float64(availH) * ratio)
	h := availH
	if w > availW {
		w = availW
		h = max(1, int(float64(availW)/ratio))
	}
	return Viewport{
		X: 1 + (availW-w)/2,
		Y: hudRows + 1,
		W: w,
		H: h,
	}
}

// ToCell maps a canvas point to the cell that contains it
// Points outside the canvas clamp to the nearest edge cell
func (v Viewport) ToCell(p vmath.Vec2) (col, row int) {
	cx := int(p.X / parameter.PlayfieldWidth * float64(v.W))
	cy := int(p.Y / parameter.PlayfieldHeight * float64(v.H))
	cx = min(max(cx, 0), v.W-1)
	cy = min(max(cy, 0), v.H-1)
	return v.X + cx, v.Y + cy
}

// ToCanvas maps a cell to the canvas point at its center
// ok is false for cells outside the viewport
func (v Viewport) ToCanvas(col, row int) (vmath.Vec2, bool) {
	if !v.Contains(col, row) {
		return vmath.Vec2{}, false
	}
	return vmath.Vec2{
		X: (float64(col-v.X) + 0.5) / float64(v.W) * parameter.PlayfieldWidth,
		Y: (float64(row-v.Y) + 0.5) / float64(v.H) * parameter.PlayfieldHeight,
	}, true
}

// ClampToCanvas maps any cell to a canvas point, clamping outside cells to the edge
// Drags that leave the field keep steering toward the nearest edge
func (v Viewport) ClampToCanvas(col, row int) vmath.Vec2 {
	col = min(max(col, v.X), v.X+v.W-1)
	row = min(max(row, v.Y), v.Y+v.H-1)
	p, _ := v.ToCanvas(col, row)
	return p
}

// Contains reports whether a cell lies inside the viewport
func (v Viewport) Contains(col, row int) bool {
	return col >= v.X && col < v.X+v.W && row >= v.Y && row < v.Y+v.H
}

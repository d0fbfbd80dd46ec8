package render

import (
	"math"

	"github.com/lixenwraith/vi-racer/vmath"
)

// CellAspect is the height/width ratio of a terminal cell
const CellAspect = 2.0

// Viewport maps ground-plane metres to screen cells
// x grows to the right, z grows down the screen; a vehicle facing +Z has its
// left-hand side (+X) on screen right, so the picture is not mirrored
type Viewport struct {
	// Screen rectangle
	Left, Top, Cols, Rows int

	// World point drawn at the rectangle origin
	origin vmath.Vec2
	// Cells per metre along x; z uses scale/CellAspect
	scale float64
}

// FitViewport frames the world box [lo, hi] plus margin metres into the rectangle,
// preserving proportions and centring the slack
func FitViewport(lo, hi vmath.Vec2, margin float64, left, top, cols, rows int) Viewport {
	v := Viewport{Left: left, Top: top, Cols: cols, Rows: rows}
	if cols <= 0 || rows <= 0 {
		v.scale = 1
		return v
	}

	w := math.Max(hi.X-lo.X+2*margin, 1e-9)
	h := math.Max(hi.Z-lo.Z+2*margin, 1e-9)

	sx := float64(cols) / w
	sz := float64(rows) * CellAspect / h
	v.scale = math.Min(sx, sz)

	// Centre the unused span
	spanX := float64(cols) / v.scale
	spanZ := float64(rows) * CellAspect / v.scale
	center := vmath.V2((lo.X+hi.X)/2, (lo.Z+hi.Z)/2)
	v.origin = vmath.V2(center.X-spanX/2, center.Z-spanZ/2)
	return v
}

// Scale returns cells per metre horizontally
func (v Viewport) Scale() float64 {
	return v.scale
}

// ToCell returns the cell containing p and whether it is inside the rectangle
func (v Viewport) ToCell(p vmath.Vec2) (col, row int, ok bool) {
	fx := (p.X - v.origin.X) * v.scale
	fz := (p.Z - v.origin.Z) * v.scale / CellAspect
	if !vmath.Finite(fx) || !vmath.Finite(fz) {
		return 0, 0, false
	}
	col = v.Left + int(math.Floor(fx))
	row = v.Top + int(math.Floor(fz))
	return col, row, v.Contains(col, row)
}

// ToWorld returns the world point at the centre of a cell
func (v Viewport) ToWorld(col, row int) vmath.Vec2 {
	return vmath.V2(
		v.origin.X+(float64(col-v.Left)+0.5)/v.scale,
		v.origin.Z+(float64(row-v.Top)+0.5)*CellAspect/v.scale,
	)
}

// Contains reports whether the cell lies inside the rectangle
func (v Viewport) Contains(col, row int) bool {
	return col >= v.Left && col < v.Left+v.Cols && row >= v.Top && row < v.Top+v.Rows
}

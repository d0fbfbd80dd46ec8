package render

import (
	"github.com/lixenwraith/vi-racer/track"
	"github.com/lixenwraith/vi-racer/vmath"
)

// startLineStep is the sampling pitch of the start line in metres
const startLineStep = 0.25

// CellKind classifies a map cell for the static background
type CellKind uint8

const (
	CellGrass CellKind = iota
	CellTrack
	CellCenterline
	CellStart
)

// TrackLayer is the static track background for one viewport
// Built once per resize; per-frame drawing only overlays the car
type TrackLayer struct {
	view  Viewport
	cells []CellKind
}

// BuildTrackLayer classifies the centre of every cell against the centerline
func BuildTrackLayer(v Viewport, c *track.Centerline, trackWidth float64) *TrackLayer {
	l := &TrackLayer{view: v, cells: make([]CellKind, max(v.Cols*v.Rows, 0))}

	for row := 0; row < v.Rows; row++ {
		for col := 0; col < v.Cols; col++ {
			p := v.ToWorld(v.Left+col, v.Top+row)
			if track.Classify(p, c, trackWidth).OnTrack {
				l.cells[row*v.Cols+col] = CellTrack
			}
		}
	}

	// Centerline vertices, every other one for a dashed look
	for i := 0; i < c.Len(); i += 2 {
		if col, row, ok := v.ToCell(c.Point(i)); ok {
			l.set(col, row, CellCenterline)
		}
	}

	if col, row, ok := v.ToCell(c.Start()); ok {
		l.set(col, row, CellStart)
		// Widen the line across the track, perpendicular to the start heading
		normal := vmath.V2Left(vmath.V2FromHeading(c.StartHeading()))
		half := trackWidth / 2
		for d := -half; d <= half; d += startLineStep {
			p := vmath.V2AddScaled(c.Start(), normal, d)
			if col, row, ok := v.ToCell(p); ok && l.At(col, row) != CellGrass {
				l.set(col, row, CellStart)
			}
		}
	}
	return l
}

// Viewport returns the viewport the layer was built for
func (l *TrackLayer) Viewport() Viewport {
	return l.view
}

// At returns the kind of the screen cell, CellGrass outside the viewport
func (l *TrackLayer) At(col, row int) CellKind {
	if !l.view.Contains(col, row) {
		return CellGrass
	}
	return l.cells[(row-l.view.Top)*l.view.Cols+(col-l.view.Left)]
}

func (l *TrackLayer) set(col, row int, k CellKind) {
	if l.view.Contains(col, row) {
		l.cells[(row-l.view.Top)*l.view.Cols+(col-l.view.Left)] = k
	}
}

package render

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-racer/engine"
	"github.com/lixenwraith/vi-racer/race"
	"github.com/lixenwraith/vi-racer/status"
	"github.com/lixenwraith/vi-racer/track"
	"github.com/lixenwraith/vi-racer/vmath"
)

const (
	hudTopRows    = 2
	hudBottomRows = 1
	// mapMargin keeps the track edge off the screen border, in metres
	mapMargin = 2.0
)

// Flags are presentation switches owned by the frame loop
type Flags struct {
	Demo  bool
	Muted bool
	Debug bool
}

// Options configures a TerminalRenderer
type Options struct {
	Centerline *track.Centerline
	TrackWidth float64
	MaxSpeed   float64
	// Stats is drawn as an overlay when Flags.Debug is set
	Stats *status.Registry
}

// TerminalRenderer draws simulation snapshots into a tcell screen
type TerminalRenderer struct {
	screen tcell.Screen
	opts   Options

	width, height int
	layer         *TrackLayer
}

// NewTerminalRenderer creates a renderer; the track layer is built on first frame
func NewTerminalRenderer(screen tcell.Screen, opts Options) *TerminalRenderer {
	return &TerminalRenderer{screen: screen, opts: opts}
}

// Resize rebuilds the track layer when the screen size changed
// Returns true when a rebuild happened
func (r *TerminalRenderer) Resize() bool {
	w, h := r.screen.Size()
	if r.layer != nil && w == r.width && h == r.height {
		return false
	}
	r.width, r.height = w, h

	rows := max(h-hudTopRows-hudBottomRows, 0)
	lo, hi := r.opts.Centerline.Bounds()
	margin := r.opts.TrackWidth/2 + mapMargin
	view := FitViewport(lo, hi, margin, 0, hudTopRows, w, rows)
	r.layer = BuildTrackLayer(view, r.opts.Centerline, r.opts.TrackWidth)
	return true
}

// Layer returns the current static track layer
func (r *TerminalRenderer) Layer() *TrackLayer {
	return r.layer
}

// RenderFrame draws one complete frame
func (r *TerminalRenderer) RenderFrame(snap engine.Snapshot, flags Flags) {
	r.Resize()
	r.screen.Clear()
	bg := style(RgbHudText, RgbBackground)
	r.screen.Fill(' ', bg)

	r.drawTrack()
	r.drawCar(snap)
	r.drawHUD(snap, flags)
	if snap.Race.Phase == race.PhaseGameOver && !flags.Demo {
		r.drawBanner(snap)
	}
	if flags.Debug && r.opts.Stats != nil {
		r.drawStats()
	}

	r.screen.Show()
}

func (r *TerminalRenderer) drawTrack() {
	v := r.layer.Viewport()
	for row := v.Top; row < v.Top+v.Rows; row++ {
		for col := v.Left; col < v.Left+v.Cols; col++ {
			ch, st := cellAppearance(r.layer.At(col, row), col, row)
			r.screen.SetContent(col, row, ch, nil, st)
		}
	}
}

func cellAppearance(k CellKind, col, row int) (rune, tcell.Style) {
	switch k {
	case CellTrack:
		return ' ', style(RgbAsphalt, RgbAsphalt)
	case CellCenterline:
		return '·', style(RgbCenterline, RgbAsphalt)
	case CellStart:
		if (col+row)%2 == 0 {
			return ' ', style(RgbStartDark, RgbStartLight)
		}
		return ' ', style(RgbStartLight, RgbStartDark)
	}
	return ' ', style(RgbGrass, RgbGrass)
}

func (r *TerminalRenderer) drawCar(snap engine.Snapshot) {
	col, row, ok := r.layer.Viewport().ToCell(snap.Vehicle.Position)
	if !ok {
		return
	}
	fg := RgbCar
	if snap.Race.Phase == race.PhaseGameOver {
		fg = RgbCarCrashed
	}
	// Keep the surface colour under the car
	_, under := cellAppearance(r.layer.At(col, row), col, row)
	_, bg, _ := under.Decompose()
	r.screen.SetContent(col, row, CarGlyph(snap.Vehicle.Heading), nil,
		tcell.StyleDefault.Foreground(fg.Color()).Background(bg).Bold(true))
}

// carGlyphs are indexed by screen-space sector, clockwise from screen right
var carGlyphs = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// CarGlyph returns the arrow pointing along the heading on screen
// Screen right is +X and screen down is +Z
func CarGlyph(heading float64) rune {
	fwd := vmath.V2FromHeading(heading)
	// Row units are CellAspect times taller than columns
	angle := math.Atan2(fwd.Z/CellAspect, fwd.X)
	sector := int(math.Round(angle/(math.Pi/4))) % 8
	if sector < 0 {
		sector += 8
	}
	return carGlyphs[sector]
}

func (r *TerminalRenderer) drawText(col, row int, text string, st tcell.Style) int {
	for _, ch := range text {
		if col >= r.width {
			break
		}
		r.screen.SetContent(col, row, ch, nil, st)
		col++
	}
	return col
}

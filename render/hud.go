package render

import (
	"fmt"
	"math"

	"github.com/lixenwraith/vi-racer/engine"
	"github.com/lixenwraith/vi-racer/physics"
	"github.com/lixenwraith/vi-racer/race"
)

const (
	speedBarWidth = 30
	helpText      = "W/↑ throttle  S/↓ brake  A/← D/→ steer  R restart  M mute  Q quit"
)

// SpeedKMH is the display speed: whole km/h, rounded down
func SpeedKMH(speed float64) int {
	return int(math.Floor(math.Abs(speed) * physics.KMHPerMS))
}

// StatusLine is the top HUD row
func StatusLine(snap engine.Snapshot) string {
	return fmt.Sprintf(" %3d km/h   LAP %d   TIME %s   BEST %s   LAST %s",
		SpeedKMH(snap.Vehicle.Speed),
		snap.Race.LapCount,
		race.FormatLapTime(snap.Race.LapElapsed),
		race.FormatBest(snap.Race),
		lastLap(snap.Race),
	)
}

func lastLap(s race.State) string {
	if s.LapCount == 0 {
		return "--:--.--"
	}
	return race.FormatLapTime(s.LastLap)
}

func (r *TerminalRenderer) drawHUD(snap engine.Snapshot, flags Flags) {
	label := style(RgbHudLabel, RgbBackground)
	text := style(RgbHudText, RgbBackground)

	r.drawText(0, 0, StatusLine(snap), text)

	// Right-aligned mode tags
	tags := ""
	if flags.Demo {
		tags += " DEMO"
	}
	if flags.Muted {
		tags += " MUTED"
	}
	if tags != "" {
		r.drawText(max(r.width-len(tags)-1, 0), 0, tags, style(RgbDemo, RgbBackground))
	}

	// Speed bar
	col := r.drawText(0, 1, " SPD ", label)
	frac := 0.0
	if r.opts.MaxSpeed > 0 {
		frac = math.Min(math.Abs(snap.Vehicle.Speed)/r.opts.MaxSpeed, 1)
	}
	filled := int(math.Round(frac * speedBarWidth))
	for i := 0; i < speedBarWidth && col < r.width; i++ {
		ch := '░'
		fg := Scale(RgbSpeedLow, 0.35)
		if i < filled {
			ch = '█'
			fg = Lerp(RgbSpeedLow, RgbSpeedHigh, float64(i)/speedBarWidth)
		}
		r.screen.SetContent(col, 1, ch, nil, style(fg, RgbBackground))
		col++
	}

	if r.height > hudTopRows {
		r.drawText(0, r.height-1, " "+helpText, style(RgbHudHelp, RgbBackground))
	}
}

// BannerLines is the game-over overlay text
func BannerLines(snap engine.Snapshot) []string {
	return []string{
		"  OFF TRACK - GAME OVER  ",
		fmt.Sprintf("  laps %d   best %s  ", snap.Race.LapCount, race.FormatBest(snap.Race)),
		"  press R or Enter to restart  ",
	}
}

func (r *TerminalRenderer) drawBanner(snap engine.Snapshot) {
	lines := BannerLines(snap)
	st := style(RgbHudText, RgbBanner).Bold(true)
	top := max(r.height/2-len(lines)/2, 0)
	for i, line := range lines {
		width := len([]rune(line))
		r.drawText(max((r.width-width)/2, 0), top+i, line, st)
	}
}

func (r *TerminalRenderer) drawStats() {
	st := style(RgbHudHelp, RgbBackground)
	for i, line := range r.opts.Stats.Lines() {
		row := hudTopRows + i
		if row >= r.height-hudBottomRows {
			break
		}
		r.drawText(max(r.width-len(line)-1, 0), row, line, st)
	}
}

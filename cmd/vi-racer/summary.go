package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/lixenwraith/vi-racer/engine"
	"github.com/lixenwraith/vi-racer/race"
)

// lapSummary renders the attempt's laps as a table with the gap to the best lap
func lapSummary(snap engine.Snapshot) string {
	var b strings.Builder
	t := table.NewWriter()
	t.SetOutputMirror(&b)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Lap", "Time", "Gap", ""})

	best, hasBest := snap.Race.Best()
	for i, lap := range snap.Race.Laps {
		gap, mark := "", ""
		if hasBest {
			gap = formatGap(lap - best)
			if lap == best {
				mark = "best"
			}
		}
		t.AppendRow(table.Row{i + 1, race.FormatLapTime(lap), gap, mark})
	}
	if len(snap.Race.Laps) == 0 {
		t.AppendRow(table.Row{"-", "no laps", "", ""})
	}

	t.AppendFooter(table.Row{
		fmt.Sprintf("%d laps", snap.Race.LapCount),
		"best " + race.FormatBest(snap.Race),
		snap.Race.Phase.String(),
		fmt.Sprintf("%d ticks", snap.Tick),
	})
	t.Render()
	return b.String()
}

// formatGap renders a non-negative gap in seconds
func formatGap(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return fmt.Sprintf("+%.2fs", d.Seconds())
}

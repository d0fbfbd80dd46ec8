package main

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-racer/config"
	"github.com/lixenwraith/vi-racer/engine"
	"github.com/lixenwraith/vi-racer/input"
	"github.com/lixenwraith/vi-racer/race"
)

func TestParseFlags(t *testing.T) {
	o, err := parseFlags([]string{"-demo", "-ticks", "120", "-config", "x.toml"}, io.Discard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !o.demo || o.ticks != 120 || o.configPath != "x.toml" || o.debug || o.dumpTrack {
		t.Errorf("Unexpected options: %+v", o)
	}

	var errOut bytes.Buffer
	if _, err := parseFlags([]string{"-ticks", "-1"}, &errOut); err == nil {
		t.Error("Expected error for negative ticks")
	} else if !strings.Contains(err.Error(), "got -1") {
		t.Errorf("Expected message naming the bad value, got %q", err.Error())
	}
	if !strings.Contains(errOut.String(), "-ticks must not be negative") {
		t.Errorf("Expected the ticks error on stderr, got %q", errOut.String())
	}
	if _, err := parseFlags([]string{"-bogus"}, io.Discard); err == nil {
		t.Error("Expected error for unknown flag")
	}
}

func TestRunDumpTrack(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run(options{dumpTrack: true}, &out, &errOut); code != 0 {
		t.Fatalf("Expected exit 0, got %d (%s)", code, errOut.String())
	}
	if !strings.HasPrefix(out.String(), "LINESTRING(0 0,") {
		t.Errorf("Expected WKT line string from the origin, got %q", out.String())
	}
}

func TestRunMissingConfig(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run(options{configPath: "does-not-exist.toml"}, &out, &errOut); code != 1 {
		t.Errorf("Expected exit 1, got %d", code)
	}
	if !strings.Contains(errOut.String(), "Configuration error") {
		t.Errorf("Expected configuration error on stderr, got %q", errOut.String())
	}
}

func TestRunHeadlessCompletesLaps(t *testing.T) {
	cfg := config.Default()
	centerline, err := cfg.BuildTrack()
	if err != nil {
		t.Fatalf("BuildTrack failed: %v", err)
	}
	session, err := engine.NewSession(centerline, engine.Options{
		Vehicle:    cfg.Vehicle,
		Race:       cfg.Race,
		TrackWidth: cfg.Track.Width,
		Logger:     zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	snap := runHeadless(session, input.NewCell(0), cfg.TickInterval(), 30*cfg.TickRate, zerolog.Nop())

	if snap.Race.LapCount < 3 {
		t.Errorf("Expected at least 3 laps in 30s, got %d", snap.Race.LapCount)
	}
	if snap.Race.GameOver() {
		t.Error("Expected autopilot to stay on track")
	}
	if want := uint64(30 * cfg.TickRate); snap.Tick != want {
		t.Errorf("Expected %d ticks, got %d", want, snap.Tick)
	}
	if snap.Time < 29*time.Second || snap.Time > 31*time.Second {
		t.Errorf("Expected about 30s of sim time, got %v", snap.Time)
	}
}

func TestRunHeadlessOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run(options{ticks: 600}, &out, &errOut); code != 0 {
		t.Fatalf("Expected exit 0, got %d (%s)", code, errOut.String())
	}
	if !strings.Contains(out.String(), "LAP") || !strings.Contains(out.String(), "600 TICKS") {
		t.Errorf("Expected lap summary table, got:\n%s", out.String())
	}
}

func TestLapSummary(t *testing.T) {
	snap := engine.Snapshot{
		Tick: 42,
		Race: race.State{
			Phase:    race.PhaseGameOver,
			LapCount: 2,
			Laps:     []time.Duration{12500 * time.Millisecond, 11 * time.Second},
			BestLap:  11 * time.Second,
			HasBest:  true,
		},
	}
	out := lapSummary(snap)

	// go-pretty upper-cases header and footer
	for _, want := range []string{"00:12.50", "00:11.00", "+1.50s", "BEST 00:11.00", "GAME_OVER", "42 TICKS"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected summary to contain %q, got:\n%s", want, out)
		}
	}
}

func TestLapSummaryEmpty(t *testing.T) {
	out := lapSummary(engine.Snapshot{Race: race.New(0, false)})
	if !strings.Contains(out, "no laps") || !strings.Contains(out, "N/A") {
		t.Errorf("Expected empty summary markers, got:\n%s", out)
	}
}

func TestPollEventsStopsOnDone(t *testing.T) {
	key := tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone)
	poll := func() tcell.Event { return key }

	// Full buffer and nobody draining: only done can release the poller
	events := make(chan tcell.Event, 1)
	events <- key
	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		pollEvents(poll, events, done)
		close(exited)
	}()

	close(done)
	select {
	case <-exited:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected poller to return after done closed")
	}
}

func TestPollEventsStopsOnNil(t *testing.T) {
	queue := []tcell.Event{
		tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone),
	}
	poll := func() tcell.Event {
		if len(queue) == 0 {
			return nil
		}
		ev := queue[0]
		queue = queue[1:]
		return ev
	}

	events := make(chan tcell.Event, 4)
	pollEvents(poll, events, make(chan struct{}))
	if len(events) != 2 {
		t.Errorf("Expected 2 forwarded events, got %d", len(events))
	}
}

package race

import (
	"testing"
	"time"
)

// drive feeds a sequence of start distances at one-second intervals
func drive(t *testing.T, s State, cfg Config, start time.Duration, dists ...float64) (State, []Event, time.Duration) {
	t.Helper()
	var all []Event
	now := start
	for _, d := range dists {
		var evs []Event
		s, evs = Advance(s, Observation{OnTrack: true, DistanceToStart: d, Now: now}, cfg)
		all = append(all, evs...)
		now += time.Second
	}
	return s, all, now
}

func TestFirstCrossingStartsWithoutLap(t *testing.T) {
	cfg := DefaultConfig()
	s, evs, _ := drive(t, New(0, false), cfg, 0, 0)

	if !s.Started {
		t.Error("Expected race started after first crossing")
	}
	if s.LapCount != 0 {
		t.Errorf("Expected lap count 0, got %d", s.LapCount)
	}
	if len(evs) != 1 || evs[0].Type != EventRaceStarted {
		t.Errorf("Expected single race_started event, got %+v", evs)
	}
}

func TestSecondCrossingCompletesLap(t *testing.T) {
	cfg := DefaultConfig()
	// start line, leave through dead zone, go far, come back
	s, evs, _ := drive(t, New(0, false), cfg, 0, 0, 10, 25, 40, 25, 10, 3)

	if s.LapCount != 1 {
		t.Fatalf("Expected lap count 1, got %d", s.LapCount)
	}
	if !s.HasBest || s.BestLap != 6*time.Second {
		t.Errorf("Expected best lap 6s, got %v (has=%v)", s.BestLap, s.HasBest)
	}
	if s.LastLap != 6*time.Second {
		t.Errorf("Expected last lap 6s, got %v", s.LastLap)
	}
	if len(s.Laps) != 1 || s.Laps[0] != 6*time.Second {
		t.Errorf("Unexpected lap history %v", s.Laps)
	}

	last := evs[len(evs)-1]
	if last.Type != EventLapCompleted || last.Lap != 1 || !last.PersonalBest {
		t.Errorf("Unexpected lap event %+v", last)
	}
}

func TestHysteresisIgnoresLingering(t *testing.T) {
	cfg := DefaultConfig()
	// Hovering inside the near band and the dead zone never re-arms the line
	s, evs, _ := drive(t, New(0, false), cfg, 0, 1, 2, 4, 10, 19, 20, 12, 4, 1)

	if s.LapCount != 0 {
		t.Errorf("Expected no laps without leaving the far band, got %d", s.LapCount)
	}
	if len(evs) != 1 {
		t.Errorf("Expected only the start event, got %+v", evs)
	}
}

func TestDeadZoneKeepsFlag(t *testing.T) {
	cfg := DefaultConfig()
	s, _, _ := drive(t, New(0, false), cfg, 0, 0, 30)
	if s.AtLine {
		t.Fatal("Expected flag cleared beyond far band")
	}
	s, _, _ = drive(t, s, cfg, 2*time.Second, 12)
	if s.AtLine {
		t.Error("Expected dead zone to leave flag cleared")
	}
	s, _, _ = drive(t, s, cfg, 3*time.Second, 4.999)
	if !s.AtLine || s.LapCount != 1 {
		t.Errorf("Expected crossing inside near band, got %+v", s)
	}
	s, _, _ = drive(t, s, cfg, 4*time.Second, 12)
	if !s.AtLine {
		t.Error("Expected dead zone to keep flag set")
	}
}

func TestBestLapOnlyImproves(t *testing.T) {
	cfg := DefaultConfig()
	s := New(0, false)
	var evs []Event

	// Lap 1: 4s, lap 2: 6s, lap 3: 3s
	s, _, _ = drive(t, s, cfg, 0, 0, 30, 30, 30)
	s, evs, _ = drive(t, s, cfg, 4*time.Second, 0, 30, 30, 30, 30, 30)
	if s.BestLap != 4*time.Second || !evs[0].PersonalBest {
		t.Fatalf("Expected best 4s, got %v", s.BestLap)
	}
	s, evs, _ = drive(t, s, cfg, 10*time.Second, 0, 30, 30)
	if s.BestLap != 4*time.Second || evs[0].PersonalBest {
		t.Fatalf("Expected best to stay 4s after slower lap, got %v (%+v)", s.BestLap, evs)
	}
	s, evs, _ = drive(t, s, cfg, 13*time.Second, 0)
	if s.BestLap != 3*time.Second || !evs[0].PersonalBest {
		t.Errorf("Expected best 3s, got %v", s.BestLap)
	}
	if s.LapCount != 3 {
		t.Errorf("Expected 3 laps, got %d", s.LapCount)
	}
}

func TestOffTrackEndsRaceOnce(t *testing.T) {
	cfg := DefaultConfig()
	s := New(0, false)

	s, evs := Advance(s, Observation{OnTrack: false, DistanceToStart: 50, Now: time.Second}, cfg)
	if !s.GameOver() {
		t.Fatal("Expected game over")
	}
	if len(evs) != 1 || evs[0].Type != EventOffTrack {
		t.Errorf("Expected single off_track event, got %+v", evs)
	}

	frozen := s
	s, evs = Advance(s, Observation{OnTrack: true, DistanceToStart: 0, Now: 2 * time.Second}, cfg)
	if len(evs) != 0 {
		t.Errorf("Expected no events after game over, got %+v", evs)
	}
	if s.LapCount != frozen.LapCount || s.Started != frozen.Started || s.LapElapsed != frozen.LapElapsed {
		t.Errorf("Expected state frozen after game over")
	}
	s, evs = Advance(s, Observation{OnTrack: false, Now: 3 * time.Second}, cfg)
	if len(evs) != 0 {
		t.Errorf("Expected off_track to fire exactly once, got %+v", evs)
	}
}

func TestRestartKeepsBestLap(t *testing.T) {
	cfg := DefaultConfig()
	s, _, _ := drive(t, New(0, false), cfg, 0, 0, 30, 0)
	s, _ = Advance(s, Observation{OnTrack: false, Now: 5 * time.Second}, cfg)

	r := s.Restart()
	if r.LapCount != 0 || r.GameOver() || r.Started || r.AtLine || len(r.Laps) != 0 {
		t.Errorf("Expected cleared attempt, got %+v", r)
	}
	if !r.HasBest || r.BestLap != 2*time.Second {
		t.Errorf("Expected best lap 2s kept, got %v", r.BestLap)
	}
}

func TestLapElapsedTracksClock(t *testing.T) {
	cfg := DefaultConfig()
	s, _ := Advance(New(0, false), Observation{OnTrack: true, DistanceToStart: 30, Now: 1500 * time.Millisecond}, cfg)
	if s.LapElapsed != 1500*time.Millisecond {
		t.Errorf("Expected elapsed before start to count from zero, got %v", s.LapElapsed)
	}
	s, _ = Advance(s, Observation{OnTrack: true, DistanceToStart: 0, Now: 2 * time.Second}, cfg)
	s, _ = Advance(s, Observation{OnTrack: true, DistanceToStart: 1, Now: 2750 * time.Millisecond}, cfg)
	if s.LapElapsed != 750*time.Millisecond {
		t.Errorf("Expected 750ms into the lap, got %v", s.LapElapsed)
	}
}

func TestLapHistoryNotAliased(t *testing.T) {
	cfg := DefaultConfig()
	s, _, _ := drive(t, New(0, false), cfg, 0, 0, 30, 0)
	snapshot := s
	s, _, _ = drive(t, s, cfg, 3*time.Second, 30, 0)
	if len(snapshot.Laps) != 1 || len(s.Laps) != 2 {
		t.Fatalf("Unexpected history lengths %d, %d", len(snapshot.Laps), len(s.Laps))
	}
	s.Laps[0] = time.Hour
	if snapshot.Laps[0] == time.Hour {
		t.Error("Expected snapshots not to share lap history")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"default", DefaultConfig(), true},
		{"zero near", Config{NearThreshold: 0, FarThreshold: 20}, false},
		{"inverted", Config{NearThreshold: 20, FarThreshold: 5}, false},
		{"equal", Config{NearThreshold: 5, FarThreshold: 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestFormatLapTime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00.00"},
		{1234 * time.Millisecond, "00:01.23"},
		{61*time.Second + 999*time.Millisecond, "01:01.99"},
		{12*time.Minute + 5*time.Second + 50*time.Millisecond, "12:05.05"},
		{-time.Second, "00:00.00"},
	}
	for _, tt := range tests {
		if got := FormatLapTime(tt.d); got != tt.want {
			t.Errorf("FormatLapTime(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
	if FormatBest(New(0, false)) != "N/A" {
		t.Error("Expected N/A without best lap")
	}
	if FormatBest(New(90*time.Second, true)) != "01:30.00" {
		t.Error("Expected formatted best lap")
	}
}

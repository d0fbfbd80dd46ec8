package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-racer/audio"
	"github.com/lixenwraith/vi-racer/config"
	"github.com/lixenwraith/vi-racer/engine"
	"github.com/lixenwraith/vi-racer/input"
	"github.com/lixenwraith/vi-racer/race"
	"github.com/lixenwraith/vi-racer/render"
	"github.com/lixenwraith/vi-racer/status"
	"github.com/lixenwraith/vi-racer/track"
)

// options are the command-line switches
type options struct {
	configPath string
	demo       bool
	dumpTrack  bool
	debug      bool
	ticks      int
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("vi-racer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "config file (toml, yaml or json); default searches ./ and ~/.config/vi-racer")
	fs.BoolVar(&o.demo, "demo", false, "let the autopilot drive")
	fs.BoolVar(&o.dumpTrack, "dump-track", false, "print the centerline as WKT and exit")
	fs.BoolVar(&o.debug, "debug", false, "log to logs/vi-racer.log and show the stats overlay")
	fs.IntVar(&o.ticks, "ticks", 0, "run N frames headless under the autopilot and print the lap summary")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.ticks < 0 {
		err := errors.Errorf("-ticks must not be negative, got %d", o.ticks)
		fmt.Fprintln(stderr, err)
		return o, err
	}
	return o, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}
	os.Exit(run(opts, os.Stdout, os.Stderr))
}

func run(opts options, stdout, stderr io.Writer) int {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}

	log, logFile := setupLogging(opts.debug, cfg.LogLevel)
	if logFile != nil {
		defer logFile.Close()
	}

	centerline, err := cfg.BuildTrack()
	if err != nil {
		fmt.Fprintf(stderr, "Track error: %v\n", err)
		return 1
	}
	if segs, _ := cfg.Segments(); !track.IsFullTurn(segs) {
		log.Warn().Msg("layout does not turn through a full circle; the start line may be unreachable")
	}

	if opts.dumpTrack {
		fmt.Fprintln(stdout, centerline.WKT())
		return 0
	}

	session, err := engine.NewSession(centerline, engine.Options{
		Vehicle:    cfg.Vehicle,
		Race:       cfg.Race,
		TrackWidth: cfg.Track.Width,
		Logger:     log,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Session error: %v\n", err)
		return 1
	}
	cell := input.NewCell(cfg.Input.HoldWindow)

	if opts.ticks > 0 {
		snap := runHeadless(session, cell, cfg.TickInterval(), opts.ticks, log)
		fmt.Fprint(stdout, lapSummary(snap))
		return 0
	}

	keys, err := input.DefaultKeyTable().ApplyBindings(cfg.Input.Bindings)
	if err != nil {
		fmt.Fprintf(stderr, "Key binding error: %v\n", err)
		return 1
	}

	snap, err := runTerminal(cfg, opts, session, input.NewMachine(keys, cell), log)
	if err != nil {
		fmt.Fprintf(stderr, "Terminal error: %v\n", err)
		return 1
	}
	fmt.Fprint(stdout, lapSummary(snap))
	return 0
}

// runHeadless steps the autopilot on a manual clock at exactly the tick interval
func runHeadless(session *engine.Session, cell *input.Cell, interval time.Duration, ticks int, log zerolog.Logger) engine.Snapshot {
	clock := engine.NewManualTimeProvider(time.Unix(0, 0))
	driver := engine.NewDriver(session, cell, interval,
		engine.WithAutopilot(engine.NewAutopilot(session.Centerline(), 0)),
		engine.WithClock(clock),
		engine.WithLogger(log),
	)

	snap := session.Snapshot()
	for i := 0; i < ticks; i++ {
		snap = driver.Frame().Snapshot
		clock.Advance(interval)
	}
	log.Info().Int("frames", ticks).Int("laps", snap.Race.LapCount).Str("best", race.FormatBest(snap.Race)).Msg("headless run finished")
	return snap
}

// runTerminal owns the screen until the player quits and returns the final snapshot
func runTerminal(cfg *config.Config, opts options, session *engine.Session, machine *input.Machine, log zerolog.Logger) (engine.Snapshot, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return engine.Snapshot{}, err
	}
	if err := screen.Init(); err != nil {
		return engine.Snapshot{}, err
	}
	var finiOnce sync.Once
	fini := func() { finiOnce.Do(screen.Fini) }
	defer fini()

	// Restore the terminal before the trace so it is readable
	crash := func(what string, r any) {
		fini()
		fmt.Fprintf(os.Stderr, "\n\x1b[31m%s CRASHED: %v\x1b[0m\n", what, r)
		fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
		os.Exit(1)
	}
	defer func() {
		if r := recover(); r != nil {
			crash("VI-RACER", r)
		}
	}()

	sound := audio.NewSoundManager(audio.Config{
		Enabled:    cfg.Audio.Enabled,
		Volume:     cfg.Audio.Volume,
		SampleRate: audio.DefaultSampleRate,
	}, log)
	// Missing audio device is logged inside and otherwise ignored
	_ = sound.Initialize()
	defer sound.Cleanup()

	stats := status.NewRegistry()
	renderer := render.NewTerminalRenderer(screen, render.Options{
		Centerline: session.Centerline(),
		TrackWidth: cfg.Track.Width,
		MaxSpeed:   cfg.Vehicle.MaxSpeed,
		Stats:      stats,
	})

	driverOpts := []engine.DriverOption{engine.WithStats(stats), engine.WithLogger(log)}
	if opts.demo {
		driverOpts = append(driverOpts, engine.WithAutopilot(engine.NewAutopilot(session.Centerline(), 0)))
	}
	driver := engine.NewDriver(session, machine.Cell(), cfg.TickInterval(), driverOpts...)

	events := make(chan tcell.Event, 256)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				crash("EVENT POLLER", r)
			}
		}()
		pollEvents(screen.PollEvent, events, done)
	}()

	ticker := time.NewTicker(cfg.TickInterval())
	defer ticker.Stop()

	flags := render.Flags{Demo: opts.demo, Muted: sound.Muted(), Debug: opts.debug}
	stats.Bools.Get(status.KeyMuted).Store(flags.Muted)
	last := session.Snapshot()
	renderer.RenderFrame(last, flags)
	log.Info().Bool("demo", opts.demo).Dur("tick", cfg.TickInterval()).Msg("frame loop started")

	for {
		select {
		case ev := <-events:
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
				renderer.Resize()
				renderer.RenderFrame(last, flags)
				continue
			}
			machine.Process(ev)

		case <-ticker.C:
			f := driver.Frame()
			last = f.Snapshot
			if f.Quit {
				log.Info().Uint64("ticks", f.Tick).Msg("quit")
				return last, nil
			}
			if f.ToggleMute {
				flags.Muted = sound.ToggleMute()
				stats.Bools.Get(status.KeyMuted).Store(flags.Muted)
			}

			level := 0.0
			if !f.Race.GameOver() && cfg.Vehicle.MaxSpeed > 0 {
				level = f.Vehicle.Speed / cfg.Vehicle.MaxSpeed
			}
			sound.SetEngineLevel(level)
			sound.HandleEvents(f.Events)

			renderer.RenderFrame(f.Snapshot, flags)
		}
	}
}

// pollEvents forwards terminal events until poll yields nil (after Fini) or done closes
func pollEvents(poll func() tcell.Event, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

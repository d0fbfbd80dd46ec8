package engine

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/lixenwraith/vi-racer/race"
)

const instrumentationName = "github.com/lixenwraith/vi-racer/engine"

// sessionMetrics holds the race instruments
// The global meter is a no-op until a provider is installed
type sessionMetrics struct {
	laps     metric.Int64Counter
	lapTime  metric.Float64Histogram
	offTrack metric.Int64Counter
	restarts metric.Int64Counter
}

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

func newSessionMetrics(m metric.Meter) (*sessionMetrics, error) {
	if m == nil {
		m = meter()
	}

	sm := &sessionMetrics{}
	var err error

	sm.laps, err = m.Int64Counter(
		"vi_racer.laps",
		metric.WithDescription("Completed laps"),
		metric.WithUnit("{lap}"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating laps counter")
	}

	sm.lapTime, err = m.Float64Histogram(
		"vi_racer.lap_time",
		metric.WithDescription("Lap time in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating lap time histogram")
	}

	sm.offTrack, err = m.Int64Counter(
		"vi_racer.off_track",
		metric.WithDescription("Races ended by leaving the track"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating off-track counter")
	}

	sm.restarts, err = m.Int64Counter(
		"vi_racer.restarts",
		metric.WithDescription("Race restarts"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating restarts counter")
	}

	return sm, nil
}

func (sm *sessionMetrics) recordLap(ev race.Event) {
	attrs := metric.WithAttributes(attribute.Bool("personal_best", ev.PersonalBest))
	sm.laps.Add(context.Background(), 1, attrs)
	sm.lapTime.Record(context.Background(), ev.LapTime.Seconds(), attrs)
}

func (sm *sessionMetrics) recordOffTrack() {
	sm.offTrack.Add(context.Background(), 1)
}

func (sm *sessionMetrics) recordRestart() {
	sm.restarts.Add(context.Background(), 1)
}

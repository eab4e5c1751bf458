package db

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/hawkeye-data/grid.report/internal/monitoring"
	"github.com/hawkeye-data/grid.report/internal/telem"
	"github.com/hawkeye-data/grid.report/internal/telem/hub"
	"github.com/hawkeye-data/grid.report/internal/telem/session"
)

// DefaultWeatherInterval is how often a weather sample row is written while
// session metadata keeps arriving.
const DefaultWeatherInterval = 30 * time.Second

// Writer drains one hub subscription into the database. It detects lap
// completions by watching each car's lap counter advance between snapshots,
// stores every event as a row, samples weather on a fixed cadence, and writes
// the classification table when the final snapshot carries one.
//
// Insert failures are logged and counted, never fatal: losing a row is better
// than stalling the subscription.
type Writer struct {
	db           *DB
	sub          *hub.Subscription
	weatherEvery time.Duration

	curUID      uint64
	lastLap     [telem.MaxCars]uint8
	lastWeather time.Time

	writeErrors atomic.Uint64
}

func NewWriter(db *DB, sub *hub.Subscription, weatherEvery time.Duration) *Writer {
	if weatherEvery <= 0 {
		weatherEvery = DefaultWeatherInterval
	}
	return &Writer{db: db, sub: sub, weatherEvery: weatherEvery}
}

// WriteErrors returns how many inserts have failed since the writer started.
func (w *Writer) WriteErrors() uint64 { return w.writeErrors.Load() }

// Run consumes the subscription until the context is cancelled or the hub
// closes both channels. Returns ctx.Err() on cancellation, nil on a clean
// channel close.
func (w *Writer) Run(ctx context.Context) error {
	snaps := w.sub.Snapshots()
	events := w.sub.Events()

	for snaps != nil || events != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case snap, ok := <-snaps:
			if !ok {
				snaps = nil
				continue
			}
			w.handleSnapshot(snap)
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if err := w.db.RecordEvent(ev); err != nil {
				w.fail(err)
			}
		}
	}
	return nil
}

func (w *Writer) fail(err error) {
	w.writeErrors.Add(1)
	monitoring.Logf("db writer: %v", err)
}

func (w *Writer) handleSnapshot(snap session.Snapshot) {
	if snap.UID != w.curUID {
		w.curUID = snap.UID
		w.lastLap = [telem.MaxCars]uint8{}
		w.lastWeather = time.Time{}
	}

	if err := w.db.UpsertSession(snap); err != nil {
		w.fail(err)
	}

	cars := int(snap.NumActiveCars)
	if cars == 0 || cars > telem.MaxCars {
		cars = telem.MaxCars
	}
	for i := 0; i < cars; i++ {
		w.trackLap(&snap, uint8(i))
	}

	if snap.HasMeta &&
		(w.lastWeather.IsZero() || snap.TakenAt.Sub(w.lastWeather) >= w.weatherEvery) {
		if err := w.db.RecordWeatherSample(snap.UID, snap.SessionTime, snap.Meta); err != nil {
			w.fail(err)
		} else {
			w.lastWeather = snap.TakenAt
		}
	}

	if snap.Final {
		if snap.HasClassification {
			if err := w.db.RecordClassification(snap); err != nil {
				w.fail(err)
			}
		}
		// A replay of the same UID after retirement restarts lap tracking.
		w.curUID = 0
	}
}

// trackLap records a completed lap when the car's lap counter has advanced
// past a previously observed value. A counter that moved backwards (flashback,
// session restart) resets tracking without writing a row.
func (w *Writer) trackLap(snap *session.Snapshot, idx uint8) {
	car := &snap.Cars[idx]
	cur := car.Lap.CurrentLapNum
	last := w.lastLap[idx]
	if cur == last {
		return
	}
	w.lastLap[idx] = cur
	if cur < last || last == 0 || car.Lap.LastLapTimeMS == 0 {
		return
	}

	lap := Lap{
		SessionUID:   snap.UID,
		DriverIndex:  idx,
		DriverName:   car.Driver.Name,
		TeamID:       car.Driver.TeamID,
		RaceNumber:   car.Driver.RaceNumber,
		LapNumber:    cur - 1,
		LapTimeMS:    car.Lap.LastLapTimeMS,
		CarPosition:  car.Lap.CarPosition,
		NumPitStops:  car.Lap.NumPitStops,
		Penalties:    car.Lap.Penalties,
		TyreCompound: car.Status.ActualTyreCompound,
		TyreAgeLaps:  car.Status.TyresAgeLaps,
		Invalid:      car.Lap.CurrentLapInvalid,
	}
	if err := w.db.RecordLap(lap); err != nil {
		w.fail(err)
	}
}

// Package session reconstructs a coherent per-session view of the race from
// the independently transmitted packet families. One SessionState exists per
// live session UID; each packet family overwrites only the sub-structure it
// owns, so a lap-data update can never clobber fresher car telemetry and
// vice versa.
package session

import (
	"time"

	"github.com/hawkeye-data/grid.report/internal/telem"
)

// CarState is the latest-known per-family view of one car. Zero values mean
// the family has not reported for this car yet; the Has* flags distinguish
// "never seen" from legitimate zeroes.
type CarState struct {
	Motion    telem.CarMotion
	Lap       telem.CarLap
	Telemetry telem.CarTelemetry
	Status    telem.CarStatus
	Damage    telem.CarDamage
	Setup     telem.CarSetup
	Driver    telem.Participant

	Classification    telem.ClassifiedCar
	HasClassification bool

	LapHistory []telem.LapHistoryEntry
	TyreStints []telem.TyreStint

	TyreSets    [20]telem.TyreSet
	HasTyreSets bool
}

// SessionState is the aggregator's live composite for one session UID.
// It is owned by exactly one goroutine; Snapshot produces copies safe for
// concurrent readers.
type SessionState struct {
	UID        uint64
	FormatYear uint16

	StartedAt    time.Time
	LastPacketAt time.Time
	SessionTime  float32 // seconds, from the most recent packet of any family
	LatestFrame  uint32  // highest frame identifier seen

	Meta          telem.SessionData
	HasMeta       bool
	PlayerCarIdx  uint8
	NumActiveCars uint8
	Cars          [telem.MaxCars]CarState

	HasClassification bool

	// lastFrame tracks per-family frame identifiers for stale-write
	// rejection. Index is the packet id.
	lastFrame [16]familyFrame
}

type familyFrame struct {
	seen  bool
	frame uint32
}

func newSessionState(h telem.Header, now time.Time) *SessionState {
	return &SessionState{
		UID:          h.SessionUID,
		FormatYear:   h.PacketFormat,
		StartedAt:    now,
		LastPacketAt: now,
		PlayerCarIdx: h.PlayerCarIndex,
	}
}

// Snapshot is an immutable consistent copy of one session's state at one
// instant. It never mixes fields from two session UIDs and holds no
// references back into the live composite.
type Snapshot struct {
	SessionState
	TakenAt time.Time
	Final   bool // set on the flush emitted when the session retires
}

// snapshot deep-copies the composite. Fixed-size arrays copy by value; the
// per-car history slices and session metadata slices are cloned explicitly.
func (s *SessionState) snapshot(now time.Time, final bool) Snapshot {
	snap := Snapshot{SessionState: *s, TakenAt: now, Final: final}
	snap.Meta.MarshalZones = append([]telem.MarshalZone(nil), s.Meta.MarshalZones...)
	snap.Meta.ForecastSamples = append([]telem.WeatherForecastSample(nil), s.Meta.ForecastSamples...)
	for i := range snap.Cars {
		snap.Cars[i].LapHistory = append([]telem.LapHistoryEntry(nil), s.Cars[i].LapHistory...)
		snap.Cars[i].TyreStints = append([]telem.TyreStint(nil), s.Cars[i].TyreStints...)
	}
	return snap
}

// staleSensitive reports whether a packet family carries monotonic counters
// or fast-moving physical state, in which case an out-of-order frame must be
// rejected rather than applied. Configuration-like families (session setup,
// participants, car setups, lobby, tyre allocations, final classification)
// are safe to apply regardless of frame order.
func staleSensitive(id telem.PacketID) bool {
	switch id {
	case telem.PacketMotion, telem.PacketLapData, telem.PacketCarTelemetry,
		telem.PacketCarStatus, telem.PacketCarDamage, telem.PacketSessionHistory:
		return true
	}
	return false
}

// admitFrame applies the per-family frame ordering rule. It returns false
// when the packet must be discarded as stale.
func (s *SessionState) admitFrame(id telem.PacketID, frame uint32) bool {
	ff := &s.lastFrame[int(id)&0x0f]
	if ff.seen && frame < ff.frame {
		return !staleSensitive(id)
	}
	ff.seen = true
	ff.frame = frame
	if frame > s.LatestFrame {
		s.LatestFrame = frame
	}
	return true
}

// apply merges one decoded payload into the composite. It assumes the frame
// admission check already passed. Returns true when a consumer-visible field
// changed.
func (s *SessionState) apply(p telem.Payload) bool {
	switch v := p.(type) {
	case *telem.MotionData:
		for i := range v.Cars {
			s.Cars[i].Motion = v.Cars[i]
		}
	case *telem.SessionData:
		s.Meta = *v
		s.HasMeta = true
	case *telem.LapData:
		for i := range v.Cars {
			s.Cars[i].Lap = v.Cars[i]
		}
	case *telem.ParticipantsData:
		s.NumActiveCars = v.NumActiveCars
		for i := range v.Cars {
			s.Cars[i].Driver = v.Cars[i]
		}
	case *telem.CarSetupsData:
		for i := range v.Cars {
			s.Cars[i].Setup = v.Cars[i]
		}
	case *telem.CarTelemetryData:
		for i := range v.Cars {
			s.Cars[i].Telemetry = v.Cars[i]
		}
	case *telem.CarStatusData:
		for i := range v.Cars {
			s.Cars[i].Status = v.Cars[i]
		}
	case *telem.CarDamageData:
		for i := range v.Cars {
			s.Cars[i].Damage = v.Cars[i]
		}
	case *telem.FinalClassificationData:
		n := int(v.NumCars)
		if n > telem.MaxCars {
			n = telem.MaxCars
		}
		for i := 0; i < n; i++ {
			s.Cars[i].Classification = v.Cars[i]
			s.Cars[i].HasClassification = true
		}
		s.HasClassification = true
	case *telem.SessionHistoryData:
		c := &s.Cars[v.CarIndex]
		c.LapHistory = append(c.LapHistory[:0], v.Laps...)
		c.TyreStints = append(c.TyreStints[:0], v.Stints...)
	case *telem.TyreSetsData:
		c := &s.Cars[v.CarIndex]
		c.TyreSets = v.Sets
		c.HasTyreSets = true
	case *telem.LobbyInfoData:
		// Lobby packets precede a session; the roster is the useful part.
		n := int(v.NumPlayers)
		if n > telem.MaxCars {
			n = telem.MaxCars
		}
		for i := 0; i < n; i++ {
			s.Cars[i].Driver.Name = v.Players[i].Name
			s.Cars[i].Driver.TeamID = v.Players[i].TeamID
			s.Cars[i].Driver.Nationality = v.Players[i].Nationality
			s.Cars[i].Driver.AIControlled = v.Players[i].AIControlled
		}
	default:
		return false
	}
	return true
}

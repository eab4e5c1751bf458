// Package db persists reconstructed session data to sqlite: one row per
// session, one row per completed lap, plus discrete events, periodic weather
// samples and the final classification table. Schema changes go through
// embedded migrations.
package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hawkeye-data/grid.report/internal/telem"
	"github.com/hawkeye-data/grid.report/internal/telem/session"
)

type DB struct {
	*sql.DB
}

// NewDB opens (creating if needed) the sqlite database at path and applies
// connection pragmas. Schema setup is separate; call MigrateUp before writing.
func NewDB(path string) (*DB, error) {
	sdb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Single writer goroutine plus occasional readers; WAL keeps the
	// readers from blocking inserts at packet cadence.
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := sdb.Exec(p); err != nil {
			sdb.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}

	return &DB{sdb}, nil
}

// uidKey renders a session UID the way every table stores it. The UID is a
// full-range uint64, which sqlite INTEGER cannot hold without sign mangling.
func uidKey(uid uint64) string {
	return strconv.FormatUint(uid, 10)
}

// UpsertSession inserts the session row on first sight and refreshes the
// metadata columns on every later call. endedAt is only written when final
// is set, and never cleared afterwards.
func (db *DB) UpsertSession(snap session.Snapshot) error {
	var (
		trackID     interface{}
		trackLength interface{}
		sessionType interface{}
		formula     interface{}
		totalLaps   interface{}
		duration    interface{}
		weather     interface{}
		airTemp     interface{}
		trackTemp   interface{}
	)
	if snap.HasMeta {
		trackID = snap.Meta.TrackID
		trackLength = snap.Meta.TrackLength
		sessionType = snap.Meta.SessionType.String()
		formula = snap.Meta.Formula
		totalLaps = snap.Meta.TotalLaps
		duration = snap.Meta.SessionDuration
		weather = snap.Meta.Weather.String()
		airTemp = snap.Meta.AirTemperature
		trackTemp = snap.Meta.TrackTemperature
	}

	var endedAt interface{}
	if snap.Final {
		endedAt = snap.TakenAt.UTC()
	}

	_, err := db.Exec(`
		INSERT INTO sessions (
			session_uid, packet_format, started_at, ended_at,
			track_id, track_length_m, session_type, formula,
			total_laps, duration_s, weather, air_temp_c, track_temp_c
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_uid) DO UPDATE SET
			ended_at       = COALESCE(excluded.ended_at, ended_at),
			track_id       = COALESCE(excluded.track_id, track_id),
			track_length_m = COALESCE(excluded.track_length_m, track_length_m),
			session_type   = COALESCE(excluded.session_type, session_type),
			formula        = COALESCE(excluded.formula, formula),
			total_laps     = COALESCE(excluded.total_laps, total_laps),
			duration_s     = COALESCE(excluded.duration_s, duration_s),
			weather        = COALESCE(excluded.weather, weather),
			air_temp_c     = COALESCE(excluded.air_temp_c, air_temp_c),
			track_temp_c   = COALESCE(excluded.track_temp_c, track_temp_c)`,
		uidKey(snap.UID), snap.FormatYear, snap.StartedAt.UTC(), endedAt,
		trackID, trackLength, sessionType, formula,
		totalLaps, duration, weather, airTemp, trackTemp,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert session %d: %w", snap.UID, err)
	}
	return nil
}

// Lap is one completed lap for one driver, assembled by the writer from a
// snapshot at the moment the lap counter advanced.
type Lap struct {
	SessionUID   uint64
	DriverIndex  uint8
	DriverName   string
	TeamID       uint8
	RaceNumber   uint8
	LapNumber    uint8
	LapTimeMS    uint32
	CarPosition  uint8
	NumPitStops  uint8
	Penalties    uint8
	TyreCompound uint8
	TyreAgeLaps  uint8
	Invalid      bool
}

func (db *DB) RecordLap(lap Lap) error {
	_, err := db.Exec(`
		INSERT INTO laps (
			session_uid, driver_index, driver_name, team_id, race_number,
			lap_number, lap_time_ms, car_position, num_pit_stops,
			penalties, tyre_compound, tyre_age_laps, invalid
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uidKey(lap.SessionUID), lap.DriverIndex, lap.DriverName, lap.TeamID, lap.RaceNumber,
		lap.LapNumber, lap.LapTimeMS, lap.CarPosition, lap.NumPitStops,
		lap.Penalties, lap.TyreCompound, lap.TyreAgeLaps, lap.Invalid,
	)
	if err != nil {
		return fmt.Errorf("failed to record lap %d for car %d: %w", lap.LapNumber, lap.DriverIndex, err)
	}
	return nil
}

func (db *DB) RecordEvent(ev telem.TelemetryEvent) error {
	_, err := db.Exec(`
		INSERT INTO events (
			session_uid, session_time, frame, code,
			vehicle_index, other_vehicle_index, lap_time_s, speed_kph
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uidKey(ev.SessionUID), ev.SessionTime, ev.Frame, string(ev.Code),
		ev.Detail.VehicleIdx, ev.Detail.OtherVehicleIdx, ev.Detail.LapTime, ev.Detail.Speed,
	)
	if err != nil {
		return fmt.Errorf("failed to record event %s: %w", ev.Code, err)
	}
	return nil
}

// RecordWeatherSample stores one point of the weather evolution for a
// session. Callers throttle the cadence; every call inserts a row.
func (db *DB) RecordWeatherSample(uid uint64, sessionTime float32, meta telem.SessionData) error {
	_, err := db.Exec(`
		INSERT INTO weather_samples (
			session_uid, session_time, weather,
			air_temp_c, track_temp_c, safety_car_status
		) VALUES (?, ?, ?, ?, ?, ?)`,
		uidKey(uid), sessionTime, meta.Weather.String(),
		meta.AirTemperature, meta.TrackTemperature, uint8(meta.SafetyCarStatus),
	)
	if err != nil {
		return fmt.Errorf("failed to record weather sample: %w", err)
	}
	return nil
}

// RecordClassification writes the final result table for a retired session.
// Rows are keyed on (session_uid, driver_index) so a replayed final snapshot
// overwrites rather than duplicates.
func (db *DB) RecordClassification(snap session.Snapshot) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin classification tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO classifications (
			session_uid, driver_index, driver_name, position, grid_position,
			num_laps, points, num_pit_stops, result_status,
			best_lap_time_ms, total_race_time_s, penalties_time_s, num_penalties
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_uid, driver_index) DO UPDATE SET
			position         = excluded.position,
			num_laps         = excluded.num_laps,
			points           = excluded.points,
			result_status    = excluded.result_status,
			best_lap_time_ms = excluded.best_lap_time_ms,
			total_race_time_s = excluded.total_race_time_s`)
	if err != nil {
		return fmt.Errorf("failed to prepare classification insert: %w", err)
	}
	defer stmt.Close()

	for i := range snap.Cars {
		car := &snap.Cars[i]
		if !car.HasClassification {
			continue
		}
		c := car.Classification
		_, err := stmt.Exec(
			uidKey(snap.UID), i, car.Driver.Name, c.Position, c.GridPosition,
			c.NumLaps, c.Points, c.NumPitStops, c.ResultStatus,
			c.BestLapTimeMS, c.TotalRaceTime, c.PenaltiesTime, c.NumPenalties,
		)
		if err != nil {
			return fmt.Errorf("failed to record classification for car %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// SessionRow is a queryable summary of one stored session.
type SessionRow struct {
	SessionUID   string
	PacketFormat uint16
	StartedAt    time.Time
	EndedAt      sql.NullTime
	SessionType  sql.NullString
	TrackID      sql.NullInt64
}

// Sessions returns stored sessions, most recent first.
func (db *DB) Sessions(limit int) ([]SessionRow, error) {
	rows, err := db.Query(`
		SELECT session_uid, packet_format, started_at, ended_at, session_type, track_id
		FROM sessions ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRow
	for rows.Next() {
		var r SessionRow
		if err := rows.Scan(&r.SessionUID, &r.PacketFormat, &r.StartedAt,
			&r.EndedAt, &r.SessionType, &r.TrackID); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LapCount returns the number of stored laps for a session UID.
func (db *DB) LapCount(uid uint64) (int, error) {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM laps WHERE session_uid = ?`, uidKey(uid)).Scan(&n)
	return n, err
}

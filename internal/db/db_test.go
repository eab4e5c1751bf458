package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/hawkeye-data/grid.report/internal/telem"
	"github.com/hawkeye-data/grid.report/internal/telem/session"
)

// newTestDB opens a fresh database in a temp dir and applies all migrations.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "telemetry.db"))
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.MigrateUp(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func testSnapshot(uid uint64) session.Snapshot {
	snap := session.Snapshot{
		TakenAt: time.Date(2026, 3, 8, 14, 0, 0, 0, time.UTC),
	}
	snap.UID = uid
	snap.FormatYear = 2024
	snap.StartedAt = time.Date(2026, 3, 8, 13, 30, 0, 0, time.UTC)
	snap.SessionTime = 312.5
	snap.HasMeta = true
	snap.Meta = telem.SessionData{
		Weather:          telem.WeatherOvercast,
		TrackTemperature: 31,
		AirTemperature:   24,
		TotalLaps:        57,
		TrackLength:      5412,
		SessionType:      telem.SessionRace,
		TrackID:          3,
		SessionDuration:  7200,
	}
	return snap
}

func TestMigrateVersionMatchesLatest(t *testing.T) {
	db := newTestDB(t)

	latest, err := LatestMigrationVersion()
	if err != nil {
		t.Fatalf("LatestMigrationVersion: %v", err)
	}
	version, dirty, err := db.MigrateVersion()
	if err != nil {
		t.Fatalf("MigrateVersion: %v", err)
	}
	if dirty {
		t.Error("fresh database should not be dirty")
	}
	if version != latest {
		t.Errorf("version = %d, want %d", version, latest)
	}
}

func TestMigrateDownStepsBackOne(t *testing.T) {
	db := newTestDB(t)

	before, _, err := db.MigrateVersion()
	if err != nil {
		t.Fatalf("MigrateVersion: %v", err)
	}
	if err := db.MigrateDown(); err != nil {
		t.Fatalf("MigrateDown: %v", err)
	}
	after, _, err := db.MigrateVersion()
	if err != nil {
		t.Fatalf("MigrateVersion: %v", err)
	}
	if after != before-1 {
		t.Errorf("version after down = %d, want %d", after, before-1)
	}
}

func TestMigrateUpIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	if err := db.MigrateUp(); err != nil {
		t.Fatalf("second MigrateUp: %v", err)
	}
}

func TestUpsertSessionInsertThenFinalize(t *testing.T) {
	db := newTestDB(t)
	snap := testSnapshot(9001)

	if err := db.UpsertSession(snap); err != nil {
		t.Fatalf("UpsertSession: %v", err)
	}

	snap.Final = true
	snap.TakenAt = snap.TakenAt.Add(90 * time.Minute)
	if err := db.UpsertSession(snap); err != nil {
		t.Fatalf("UpsertSession final: %v", err)
	}

	rows, err := db.Sessions(10)
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d session rows, want 1", len(rows))
	}
	r := rows[0]
	if r.SessionUID != "9001" {
		t.Errorf("session_uid = %q, want %q", r.SessionUID, "9001")
	}
	if r.PacketFormat != 2024 {
		t.Errorf("packet_format = %d, want 2024", r.PacketFormat)
	}
	if !r.EndedAt.Valid {
		t.Error("ended_at should be set after the final upsert")
	}
	if !r.SessionType.Valid || r.SessionType.String != telem.SessionRace.String() {
		t.Errorf("session_type = %v, want %q", r.SessionType, telem.SessionRace.String())
	}
}

func TestUpsertSessionWithoutMetaLeavesNulls(t *testing.T) {
	db := newTestDB(t)
	snap := testSnapshot(77)
	snap.HasMeta = false

	if err := db.UpsertSession(snap); err != nil {
		t.Fatalf("UpsertSession: %v", err)
	}

	rows, err := db.Sessions(1)
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if rows[0].SessionType.Valid {
		t.Errorf("session_type = %q, want NULL", rows[0].SessionType.String)
	}
	if rows[0].TrackID.Valid {
		t.Errorf("track_id = %d, want NULL", rows[0].TrackID.Int64)
	}
}

func TestRecordLap(t *testing.T) {
	db := newTestDB(t)
	if err := db.UpsertSession(testSnapshot(42)); err != nil {
		t.Fatalf("UpsertSession: %v", err)
	}

	lap := Lap{
		SessionUID:   42,
		DriverIndex:  7,
		DriverName:   "VERSTAPPEN",
		TeamID:       9,
		RaceNumber:   1,
		LapNumber:    12,
		LapTimeMS:    92417,
		CarPosition:  1,
		NumPitStops:  1,
		TyreCompound: 17,
		TyreAgeLaps:  8,
	}
	if err := db.RecordLap(lap); err != nil {
		t.Fatalf("RecordLap: %v", err)
	}

	n, err := db.LapCount(42)
	if err != nil {
		t.Fatalf("LapCount: %v", err)
	}
	if n != 1 {
		t.Errorf("lap count = %d, want 1", n)
	}

	var name string
	var timeMS uint32
	err = db.QueryRow(
		`SELECT driver_name, lap_time_ms FROM laps WHERE session_uid = ? AND lap_number = ?`,
		"42", 12,
	).Scan(&name, &timeMS)
	if err != nil {
		t.Fatalf("query lap: %v", err)
	}
	if name != "VERSTAPPEN" || timeMS != 92417 {
		t.Errorf("got (%q, %d), want (VERSTAPPEN, 92417)", name, timeMS)
	}
}

func TestRecordEvent(t *testing.T) {
	db := newTestDB(t)

	ev := telem.TelemetryEvent{
		SessionUID:  42,
		SessionTime: 812.25,
		Frame:       4200,
		Code:        telem.EventFastestLap,
		Detail:      telem.EventDetail{VehicleIdx: 4, LapTime: 91.337},
	}
	if err := db.RecordEvent(ev); err != nil {
		t.Fatalf("RecordEvent: %v", err)
	}

	var code string
	var vehicleIdx int
	err := db.QueryRow(`SELECT code, vehicle_index FROM events WHERE session_uid = ?`, "42").
		Scan(&code, &vehicleIdx)
	if err != nil {
		t.Fatalf("query event: %v", err)
	}
	if code != "FTLP" || vehicleIdx != 4 {
		t.Errorf("got (%q, %d), want (FTLP, 4)", code, vehicleIdx)
	}
}

func TestRecordWeatherSample(t *testing.T) {
	db := newTestDB(t)
	snap := testSnapshot(42)

	if err := db.RecordWeatherSample(snap.UID, snap.SessionTime, snap.Meta); err != nil {
		t.Fatalf("RecordWeatherSample: %v", err)
	}

	var weather string
	var airTemp int
	err := db.QueryRow(
		`SELECT weather, air_temp_c FROM weather_samples WHERE session_uid = ?`, "42",
	).Scan(&weather, &airTemp)
	if err != nil {
		t.Fatalf("query weather: %v", err)
	}
	if weather != telem.WeatherOvercast.String() || airTemp != 24 {
		t.Errorf("got (%q, %d), want (%q, 24)", weather, airTemp, telem.WeatherOvercast.String())
	}
}

func TestRecordClassificationUpsert(t *testing.T) {
	db := newTestDB(t)
	snap := testSnapshot(1234)
	if err := db.UpsertSession(snap); err != nil {
		t.Fatalf("UpsertSession: %v", err)
	}

	snap.HasClassification = true
	for i := 0; i < 3; i++ {
		snap.Cars[i].HasClassification = true
		snap.Cars[i].Classification = telem.ClassifiedCar{
			Position:      uint8(i + 1),
			NumLaps:       57,
			Points:        uint8(25 - 7*i),
			BestLapTimeMS: 90000 + uint32(i)*250,
			TotalRaceTime: 5400.5 + float64(i),
		}
		snap.Cars[i].Driver.Name = "DRIVER"
	}

	if err := db.RecordClassification(snap); err != nil {
		t.Fatalf("RecordClassification: %v", err)
	}
	// Replayed final snapshot must overwrite, not duplicate.
	snap.Cars[0].Classification.Points = 26
	if err := db.RecordClassification(snap); err != nil {
		t.Fatalf("RecordClassification replay: %v", err)
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM classifications WHERE session_uid = ?`, "1234").Scan(&n); err != nil {
		t.Fatalf("count classifications: %v", err)
	}
	if n != 3 {
		t.Errorf("classification rows = %d, want 3", n)
	}

	var points int
	err := db.QueryRow(
		`SELECT points FROM classifications WHERE session_uid = ? AND driver_index = 0`, "1234",
	).Scan(&points)
	if err != nil {
		t.Fatalf("query classification: %v", err)
	}
	if points != 26 {
		t.Errorf("points = %d, want 26 after replay", points)
	}
}

func TestSessionUIDRoundTripsFullRange(t *testing.T) {
	db := newTestDB(t)
	snap := testSnapshot(18446744073709551615) // max uint64
	if err := db.UpsertSession(snap); err != nil {
		t.Fatalf("UpsertSession: %v", err)
	}
	rows, err := db.Sessions(1)
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if rows[0].SessionUID != "18446744073709551615" {
		t.Errorf("session_uid = %q, want full-range value", rows[0].SessionUID)
	}
}

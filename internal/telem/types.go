// Package telem defines the shared protocol types for the racing-sim
// telemetry stream: the datagram header, packet identifiers, and the typed
// payloads that the wire decoder produces and the session aggregator
// consumes. Values here are plain data; all parsing lives in telem/parse.
package telem

import (
	"net"
	"time"
)

// Supported wire format years. The format is carried in the first two bytes
// of every datagram so each packet selects its own decode tables.
const (
	Format2023 = 2023
	Format2024 = 2024
	Format2025 = 2025
)

// MaxCars is the fixed grid size of every supported format. Per-car arrays
// on the wire always carry this many records; inactive slots are zeroed.
const MaxCars = 22

// HeaderSize is the fixed size of the packet header shared by all supported
// formats.
const HeaderSize = 29

// MaxDatagramSize bounds receive buffers. The largest known packet
// (SessionHistory) is 1460 bytes.
const MaxDatagramSize = 2048

// PacketID identifies the packet family within a format year.
type PacketID uint8

const (
	PacketMotion              PacketID = 0
	PacketSession             PacketID = 1
	PacketLapData             PacketID = 2
	PacketEvent               PacketID = 3
	PacketParticipants        PacketID = 4
	PacketCarSetups           PacketID = 5
	PacketCarTelemetry        PacketID = 6
	PacketCarStatus           PacketID = 7
	PacketFinalClassification PacketID = 8
	PacketLobbyInfo           PacketID = 9
	PacketCarDamage           PacketID = 10
	PacketSessionHistory      PacketID = 11
	PacketTyreSets            PacketID = 12
	PacketMotionEx            PacketID = 13
	PacketTimeTrial           PacketID = 14
	PacketLapPositions        PacketID = 15
)

var packetNames = map[PacketID]string{
	PacketMotion:              "motion",
	PacketSession:             "session",
	PacketLapData:             "lap_data",
	PacketEvent:               "event",
	PacketParticipants:        "participants",
	PacketCarSetups:           "car_setups",
	PacketCarTelemetry:        "car_telemetry",
	PacketCarStatus:           "car_status",
	PacketFinalClassification: "final_classification",
	PacketLobbyInfo:           "lobby_info",
	PacketCarDamage:           "car_damage",
	PacketSessionHistory:      "session_history",
	PacketTyreSets:            "tyre_sets",
	PacketMotionEx:            "motion_ex",
	PacketTimeTrial:           "time_trial",
	PacketLapPositions:        "lap_positions",
}

func (id PacketID) String() string {
	if name, ok := packetNames[id]; ok {
		return name
	}
	return "unknown"
}

// RawDatagram is one received UDP payload stamped with its monotonic arrival
// time. The bytes are owned by the decoder until the decode attempt returns;
// sources must hand over a private copy.
type RawDatagram struct {
	Data       []byte
	ReceivedAt time.Time
	Source     net.Addr
}

// Header is the decoded fixed-layout packet header common to all supported
// format years.
type Header struct {
	PacketFormat            uint16 // format year, e.g. 2024
	GameYear                uint8
	GameMajorVersion        uint8
	GameMinorVersion        uint8
	PacketVersion           uint8
	PacketID                PacketID
	SessionUID              uint64
	SessionTime             float32 // seconds since session start
	FrameIdentifier         uint32  // simulation tick this packet describes
	OverallFrame            uint32  // frame counter that ignores flashbacks
	PlayerCarIndex          uint8
	SecondaryPlayerCarIndex uint8
}

// Packet is one fully decoded datagram: the header plus exactly one typed
// payload. Payload is nil for families the registry knows but deliberately
// ignores (MotionEx, TimeTrial, LapPositions).
type Packet struct {
	Header     Header
	Payload    Payload
	ReceivedAt time.Time
}

// Payload is the tagged-union marker implemented by every decoded packet
// body.
type Payload interface {
	PacketID() PacketID
}

// SessionType classifies a session within a race weekend.
type SessionType uint8

const (
	SessionUnknown               SessionType = 0
	SessionP1                    SessionType = 1
	SessionP2                    SessionType = 2
	SessionP3                    SessionType = 3
	SessionShortP                SessionType = 4
	SessionQ1                    SessionType = 5
	SessionQ2                    SessionType = 6
	SessionQ3                    SessionType = 7
	SessionShortQ                SessionType = 8
	SessionOSQ                   SessionType = 9
	SessionSprintShootout1       SessionType = 10
	SessionSprintShootout2       SessionType = 11
	SessionSprintShootout3       SessionType = 12
	SessionShortSprintShootout   SessionType = 13
	SessionOneShotSprintShootout SessionType = 14
	SessionRace                  SessionType = 15
	SessionRace2                 SessionType = 16
	SessionRace3                 SessionType = 17
	SessionTimeTrial             SessionType = 18
)

func (s SessionType) String() string {
	switch {
	case s >= SessionP1 && s <= SessionShortP:
		return "practice"
	case s >= SessionQ1 && s <= SessionOneShotSprintShootout:
		return "qualifying"
	case s >= SessionRace && s <= SessionRace3:
		return "race"
	case s == SessionTimeTrial:
		return "time_trial"
	default:
		return "unknown"
	}
}

// Weather is the coarse forecast state reported in Session packets.
type Weather uint8

const (
	WeatherClear      Weather = 0
	WeatherLightCloud Weather = 1
	WeatherOvercast   Weather = 2
	WeatherLightRain  Weather = 3
	WeatherHeavyRain  Weather = 4
	WeatherStorm      Weather = 5
)

func (w Weather) String() string {
	switch w {
	case WeatherClear:
		return "clear"
	case WeatherLightCloud:
		return "light_cloud"
	case WeatherOvercast:
		return "overcast"
	case WeatherLightRain:
		return "light_rain"
	case WeatherHeavyRain:
		return "heavy_rain"
	case WeatherStorm:
		return "storm"
	default:
		return "unknown"
	}
}

// ZoneFlag is the marshal flag shown for a track zone.
type ZoneFlag int8

const (
	FlagNone   ZoneFlag = 0
	FlagGreen  ZoneFlag = 1
	FlagBlue   ZoneFlag = 2
	FlagYellow ZoneFlag = 3
)

// SafetyCarStatus reports the current race-neutralisation state.
type SafetyCarStatus uint8

const (
	SafetyCarNone         SafetyCarStatus = 0
	SafetyCarFull         SafetyCarStatus = 1
	SafetyCarVirtual      SafetyCarStatus = 2
	SafetyCarFormationLap SafetyCarStatus = 3
)

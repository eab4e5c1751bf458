package telem

import "time"

// EventCode is the four-character tag carried in an Event packet.
type EventCode string

const (
	EventSessionStarted  EventCode = "SSTA"
	EventSessionEnded    EventCode = "SEND"
	EventFastestLap      EventCode = "FTLP"
	EventRetirement      EventCode = "RTMT"
	EventDRSEnabled      EventCode = "DRSE"
	EventDRSDisabled     EventCode = "DRSD"
	EventChequeredFlag   EventCode = "CHQF"
	EventRaceWinner      EventCode = "RCWN"
	EventPenaltyIssued   EventCode = "PENA"
	EventSpeedTrap       EventCode = "SPTP"
	EventStartLights     EventCode = "STLG"
	EventLightsOut       EventCode = "LGOT"
	EventDriveThrough    EventCode = "DTSV"
	EventStopGo          EventCode = "SGSV"
	EventFlashback       EventCode = "FLBK"
	EventButton          EventCode = "BUTN"
	EventRedFlag         EventCode = "RDFL"
	EventOvertake        EventCode = "OVTK"
	EventSafetyCar       EventCode = "SCAR"
	EventCollision       EventCode = "COLL"
)

// EventDetail holds the decoded union body of an Event packet. Only the
// fields relevant to the received code are populated.
type EventDetail struct {
	VehicleIdx       uint8   // FTLP, RTMT, RCWN, SPTP, DTSV, SGSV
	OtherVehicleIdx  uint8   // PENA other car, OVTK overtaken, COLL second car
	LapTime          float32 // FTLP, seconds
	Speed            float32 // SPTP, km/h
	PenaltyType      uint8   // PENA
	InfringementType uint8   // PENA
	PlacesGained     uint8   // PENA
	TimeGained       uint8   // PENA, seconds
	NumLights        uint8   // STLG
	Reason           uint8   // RTMT (2025+), DRSD
}

// EventData is the decoded payload of an Event packet.
type EventData struct {
	Code   EventCode
	Detail EventDetail
}

func (*EventData) PacketID() PacketID { return PacketEvent }

// TelemetryEvent is a discrete occurrence surfaced to consumers exactly once,
// in arrival order. It is never merged into session state beyond the event
// log.
type TelemetryEvent struct {
	SessionUID  uint64
	SessionTime float32
	Frame       uint32
	Code        EventCode
	Detail      EventDetail
	ReceivedAt  time.Time
}

// DriverRelated reports whether the event names a specific car.
func (e EventCode) DriverRelated() bool {
	switch e {
	case EventFastestLap, EventRetirement, EventRaceWinner, EventPenaltyIssued,
		EventSpeedTrap, EventDriveThrough, EventStopGo, EventOvertake, EventCollision:
		return true
	default:
		return false
	}
}

package telem

// Typed payloads for every decoded packet family. Per-car arrays are indexed
// by the wire car index (0..MaxCars-1). Only the fields the engine interprets
// are represented; formats may append trailing bytes the decoder skips.

// CarMotion is one car's entry in a Motion packet.
type CarMotion struct {
	WorldPositionX     float32
	WorldPositionY     float32
	WorldPositionZ     float32
	WorldVelocityX     float32
	WorldVelocityY     float32
	WorldVelocityZ     float32
	GForceLateral      float32
	GForceLongitudinal float32
	GForceVertical     float32
	Yaw                float32
	Pitch              float32
	Roll               float32
}

// MotionData carries world-space positions for the full grid.
type MotionData struct {
	Cars [MaxCars]CarMotion
}

func (*MotionData) PacketID() PacketID { return PacketMotion }

// MarshalZone is one marshal sector with its current flag.
type MarshalZone struct {
	ZoneStart float32 // fraction of the lap the zone starts at
	ZoneFlag  ZoneFlag
}

// WeatherForecastSample is one forecast slot for an upcoming session window.
type WeatherForecastSample struct {
	SessionType      SessionType
	TimeOffsetMin    uint8
	Weather          Weather
	TrackTemperature int8
	TrackTempChange  int8
	AirTemperature   int8
	AirTempChange    int8
	RainPercentage   uint8
}

// SessionData carries track and session metadata.
type SessionData struct {
	Weather          Weather
	TrackTemperature int8
	AirTemperature   int8
	TotalLaps        uint8
	TrackLength      uint16 // metres
	SessionType      SessionType
	TrackID          int8
	Formula          uint8
	SessionTimeLeft  uint16 // seconds
	SessionDuration  uint16 // seconds
	PitSpeedLimit    uint8
	GamePaused       bool
	NumMarshalZones  uint8
	MarshalZones     []MarshalZone
	SafetyCarStatus  SafetyCarStatus
	NetworkGame      bool
	ForecastSamples  []WeatherForecastSample
}

func (*SessionData) PacketID() PacketID { return PacketSession }

// CarLap is one car's entry in a LapData packet.
type CarLap struct {
	LastLapTimeMS        uint32
	CurrentLapTimeMS     uint32
	Sector1TimeMS        uint16
	Sector1TimeMinutes   uint8
	Sector2TimeMS        uint16
	Sector2TimeMinutes   uint8
	DeltaToCarInFrontMS  uint16
	DeltaToRaceLeaderMS  uint16
	LapDistance          float32 // metres into current lap, negative before the line
	TotalDistance        float32
	SafetyCarDelta       float32
	CarPosition          uint8
	CurrentLapNum        uint8
	PitStatus            uint8
	NumPitStops          uint8
	Sector               uint8
	CurrentLapInvalid    bool
	Penalties            uint8
	TotalWarnings        uint8
	CornerCutWarnings    uint8
	GridPosition         uint8
	DriverStatus         uint8
	ResultStatus         uint8
	SpeedTrapSpeedKPH    float32 // 2024+ only; zero on 2023
}

// LapData carries lap, sector and position state for the full grid.
type LapData struct {
	Cars                 [MaxCars]CarLap
	TimeTrialPBCarIdx    uint8
	TimeTrialRivalCarIdx uint8
}

func (*LapData) PacketID() PacketID { return PacketLapData }

// Participant is one car's entry in a Participants packet.
type Participant struct {
	AIControlled    bool
	DriverID        uint8
	NetworkID       uint8
	TeamID          uint8
	MyTeam          bool
	RaceNumber      uint8
	Nationality     uint8
	Name            string
	TelemetryPublic bool
}

// ParticipantsData names the active grid.
type ParticipantsData struct {
	NumActiveCars uint8
	Cars          [MaxCars]Participant
}

func (*ParticipantsData) PacketID() PacketID { return PacketParticipants }

// CarSetup is the interpreted prefix of one car's setup record.
type CarSetup struct {
	FrontWing       uint8
	RearWing        uint8
	OnThrottle      uint8
	OffThrottle     uint8
	FrontCamber     float32
	RearCamber      float32
	FrontToe        float32
	RearToe         float32
}

// CarSetupsData carries the grid's car setups.
type CarSetupsData struct {
	Cars [MaxCars]CarSetup
}

func (*CarSetupsData) PacketID() PacketID { return PacketCarSetups }

// CarTelemetry is one car's entry in a CarTelemetry packet.
type CarTelemetry struct {
	SpeedKPH          uint16
	Throttle          float32 // 0..1
	Steer             float32 // -1..1
	Brake             float32 // 0..1
	Clutch            uint8
	Gear              int8 // -1 reverse, 0 neutral
	EngineRPM         uint16
	DRSOpen           bool
	RevLightsPercent  uint8
	BrakeTempC        [4]uint16 // RL, RR, FL, FR
	TyreSurfaceTempC  [4]uint8
	TyreInnerTempC    [4]uint8
	EngineTempC       uint16
	TyrePressurePSI   [4]float32
}

// CarTelemetryData carries live car telemetry for the full grid.
type CarTelemetryData struct {
	Cars          [MaxCars]CarTelemetry
	SuggestedGear int8
}

func (*CarTelemetryData) PacketID() PacketID { return PacketCarTelemetry }

// CarStatus is one car's entry in a CarStatus packet.
type CarStatus struct {
	TractionControl    uint8
	AntiLockBrakes     bool
	FuelMix            uint8
	FrontBrakeBias     uint8
	PitLimiterOn       bool
	FuelInTank         float32
	FuelCapacity       float32
	FuelRemainingLaps  float32
	MaxRPM             uint16
	DRSAllowed         bool
	DRSActivationDist  uint16
	ActualTyreCompound uint8
	VisualTyreCompound uint8
	TyresAgeLaps       uint8
	VehicleFIAFlags    int8
	ERSStoreEnergy     float32 // joules
	ERSDeployMode      uint8
}

// CarStatusData carries fuel, tyre and ERS status for the full grid.
type CarStatusData struct {
	Cars [MaxCars]CarStatus
}

func (*CarStatusData) PacketID() PacketID { return PacketCarStatus }

// CarDamage is one car's entry in a CarDamage packet.
type CarDamage struct {
	TyresWear            [4]float32 // percent
	TyreBlisters         [4]uint8   // percent, 2025+ only
	TyresDamage          [4]uint8
	BrakesDamage         [4]uint8
	FrontLeftWingDamage  uint8
	FrontRightWingDamage uint8
	RearWingDamage       uint8
	FloorDamage          uint8
	DiffuserDamage       uint8
	SidepodDamage        uint8
	DRSFault             bool
	GearBoxDamage        uint8
	EngineDamage         uint8
}

// CarDamageData carries accumulated damage for the full grid.
type CarDamageData struct {
	Cars [MaxCars]CarDamage
}

func (*CarDamageData) PacketID() PacketID { return PacketCarDamage }

// ClassifiedCar is one car's final classification entry.
type ClassifiedCar struct {
	Position          uint8
	NumLaps           uint8
	GridPosition      uint8
	Points            uint8
	NumPitStops       uint8
	ResultStatus      uint8
	BestLapTimeMS     uint32
	TotalRaceTime     float64 // seconds, without penalties
	PenaltiesTime     uint8
	NumPenalties      uint8
	NumTyreStints     uint8
	TyreStintsVisual  [8]uint8
	TyreStintsEndLaps [8]uint8
}

// FinalClassificationData is the end-of-session result table.
type FinalClassificationData struct {
	NumCars uint8
	Cars    [MaxCars]ClassifiedCar
}

func (*FinalClassificationData) PacketID() PacketID { return PacketFinalClassification }

// LobbyPlayer is one lobby slot before a session starts.
type LobbyPlayer struct {
	AIControlled bool
	TeamID       uint8
	Nationality  uint8
	Platform     uint8
	Name         string
	CarNumber    uint8
	ReadyStatus  uint8
}

// LobbyInfoData describes the multiplayer lobby.
type LobbyInfoData struct {
	NumPlayers uint8
	Players    [MaxCars]LobbyPlayer
}

func (*LobbyInfoData) PacketID() PacketID { return PacketLobbyInfo }

// LapHistoryEntry is one completed lap in a SessionHistory packet.
type LapHistoryEntry struct {
	LapTimeMS     uint32
	Sector1TimeMS uint16
	Sector2TimeMS uint16
	Sector3TimeMS uint16
	LapValidFlags uint8 // bit 0 lap, 1-3 sectors
}

// TyreStint is one stint in a SessionHistory packet.
type TyreStint struct {
	EndLap         uint8
	ActualCompound uint8
	VisualCompound uint8
}

// SessionHistoryData is the per-car lap and stint history. Unlike the other
// grid packets it describes a single car per datagram.
type SessionHistoryData struct {
	CarIndex          uint8
	NumLaps           uint8
	NumTyreStints     uint8
	BestLapTimeLapNum uint8
	Laps              []LapHistoryEntry
	Stints            []TyreStint
}

func (*SessionHistoryData) PacketID() PacketID { return PacketSessionHistory }

// TyreSet is one tyre set available to a car.
type TyreSet struct {
	ActualCompound     uint8
	VisualCompound     uint8
	Wear               uint8 // percent
	Available          bool
	RecommendedSession uint8
	LifeSpan           uint8
	UsableLife         uint8
	LapDeltaTimeMS     int16
	Fitted             bool
}

// TyreSetsData lists one car's tyre allocation.
type TyreSetsData struct {
	CarIndex  uint8
	Sets      [20]TyreSet
	FittedIdx uint8
}

func (*TyreSetsData) PacketID() PacketID { return PacketTyreSets }

package parse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hawkeye-data/grid.report/internal/telem"
)

func TestDecodeMotion(t *testing.T) {
	w := newPacketWire(t, telem.Format2024, telem.PacketMotion)

	// Car 21 sits at the last record slot; a stride error would misplace it.
	w.seek(telem.HeaderSize + 21*carMotionStride)
	w.f32(101.5) // world position X
	w.f32(-3.25)
	w.f32(880.0)
	w.f32(82.1) // velocity X
	w.seek(telem.HeaderSize + 21*carMotionStride + 24 + 12)
	w.f32(1.9) // lateral G

	pkt := decodeOne(t, w.buf)
	m, ok := pkt.Payload.(*telem.MotionData)
	require.True(t, ok)
	assert.Equal(t, float32(101.5), m.Cars[21].WorldPositionX)
	assert.Equal(t, float32(-3.25), m.Cars[21].WorldPositionY)
	assert.Equal(t, float32(880.0), m.Cars[21].WorldPositionZ)
	assert.Equal(t, float32(82.1), m.Cars[21].WorldVelocityX)
	assert.Equal(t, float32(1.9), m.Cars[21].GForceLateral)
	assert.Zero(t, m.Cars[0].WorldPositionX)
}

func encodeLapTail(w *wire, c telem.CarLap) {
	w.f32(c.LapDistance)
	w.f32(c.TotalDistance)
	w.f32(c.SafetyCarDelta)
	w.u8(c.CarPosition)
	w.u8(c.CurrentLapNum)
	w.u8(c.PitStatus)
	w.u8(c.NumPitStops)
	w.u8(c.Sector)
	w.bool8(c.CurrentLapInvalid)
	w.u8(c.Penalties)
	w.u8(c.TotalWarnings)
	w.u8(c.CornerCutWarnings)
	w.u8(0) // unserved drive-through count
	w.u8(0) // unserved stop-go count
	w.u8(c.GridPosition)
	w.u8(c.DriverStatus)
	w.u8(c.ResultStatus)
}

func TestDecodeLapData2023(t *testing.T) {
	want := telem.CarLap{
		LastLapTimeMS:       91345,
		CurrentLapTimeMS:    17200,
		Sector1TimeMS:       28900,
		Sector2TimeMS:       31001,
		DeltaToCarInFrontMS: 450,
		DeltaToRaceLeaderMS: 12890,
		LapDistance:         1204.5,
		TotalDistance:       58112.25,
		CarPosition:         3,
		CurrentLapNum:       14,
		NumPitStops:         1,
		Sector:              1,
		Penalties:           5,
		GridPosition:        7,
		DriverStatus:        4,
		ResultStatus:        2,
	}

	w := newPacketWire(t, telem.Format2023, telem.PacketLapData)
	w.seek(telem.HeaderSize + 9*carLapStride2023)
	w.u32(want.LastLapTimeMS)
	w.u32(want.CurrentLapTimeMS)
	w.u16(want.Sector1TimeMS)
	w.u8(want.Sector1TimeMinutes)
	w.u16(want.Sector2TimeMS)
	w.u8(want.Sector2TimeMinutes)
	w.u16(want.DeltaToCarInFrontMS)
	w.u16(want.DeltaToRaceLeaderMS)
	encodeLapTail(w, want)
	w.seek(telem.HeaderSize + telem.MaxCars*carLapStride2023)
	w.u8(11) // time trial PB car
	w.u8(12)

	pkt := decodeOne(t, w.buf)
	lap, ok := pkt.Payload.(*telem.LapData)
	require.True(t, ok)
	if diff := cmp.Diff(want, lap.Cars[9]); diff != "" {
		t.Errorf("car 9 mismatch (-want +got):\n%s", diff)
	}
	assert.Zero(t, lap.Cars[9].SpeedTrapSpeedKPH, "2023 has no speed trap field")
	assert.Equal(t, uint8(11), lap.TimeTrialPBCarIdx)
	assert.Equal(t, uint8(12), lap.TimeTrialRivalCarIdx)
}

func TestDecodeLapData2024(t *testing.T) {
	w := newPacketWire(t, telem.Format2024, telem.PacketLapData)
	rec := telem.HeaderSize + 4*carLapStride2024
	w.seek(rec)
	w.u32(90555) // last lap
	w.u32(12000) // current lap
	w.u16(27800)
	w.u8(0)
	w.u16(30100)
	w.u8(0)
	w.u16(800) // delta to car in front
	w.u8(0)    // minutes part, 2024 widening
	w.u16(5600)
	w.u8(0)
	encodeLapTail(w, telem.CarLap{CarPosition: 1, CurrentLapNum: 22})
	w.seek(rec + 52)
	w.f32(312.5) // speed trap

	pkt := decodeOne(t, w.buf)
	lap, ok := pkt.Payload.(*telem.LapData)
	require.True(t, ok)
	c := lap.Cars[4]
	assert.Equal(t, uint32(90555), c.LastLapTimeMS)
	assert.Equal(t, uint16(800), c.DeltaToCarInFrontMS)
	assert.Equal(t, uint16(5600), c.DeltaToRaceLeaderMS)
	assert.Equal(t, uint8(1), c.CarPosition)
	assert.Equal(t, uint8(22), c.CurrentLapNum)
	assert.Equal(t, float32(312.5), c.SpeedTrapSpeedKPH)
}

func TestDecodeSession(t *testing.T) {
	w := newPacketWire(t, telem.Format2024, telem.PacketSession)
	w.seek(telem.HeaderSize)
	w.u8(uint8(telem.WeatherLightRain))
	w.i8(34) // track temperature
	w.i8(27)
	w.u8(52) // total laps
	w.u16(5303)
	w.u8(uint8(telem.SessionRace))
	w.i8(14) // track id
	w.u8(0)
	w.u16(600)
	w.u16(7200)
	w.u8(80)    // pit speed limit
	w.bool8(false)
	w.seek(w.off + 3)

	w.u8(2) // marshal zones
	zones := w.off
	w.f32(0.25)
	w.i8(int8(telem.FlagYellow))
	w.f32(0.75)
	w.i8(int8(telem.FlagGreen))
	w.seek(zones + marshalZoneSlots*marshalZoneStride)

	w.u8(uint8(telem.SafetyCarVirtual))
	w.bool8(true)
	w.u8(1) // forecast samples
	w.u8(uint8(telem.SessionRace))
	w.u8(30) // minutes ahead
	w.u8(uint8(telem.WeatherHeavyRain))
	w.i8(30)
	w.i8(-1)
	w.i8(24)
	w.i8(0)
	w.u8(85) // rain percentage

	pkt := decodeOne(t, w.buf)
	s, ok := pkt.Payload.(*telem.SessionData)
	require.True(t, ok)
	assert.Equal(t, telem.WeatherLightRain, s.Weather)
	assert.Equal(t, int8(34), s.TrackTemperature)
	assert.Equal(t, uint8(52), s.TotalLaps)
	assert.Equal(t, uint16(5303), s.TrackLength)
	assert.Equal(t, telem.SessionRace, s.SessionType)
	assert.Equal(t, int8(14), s.TrackID)
	assert.Equal(t, uint8(80), s.PitSpeedLimit)
	assert.Equal(t, telem.SafetyCarVirtual, s.SafetyCarStatus)
	assert.True(t, s.NetworkGame)
	require.Len(t, s.MarshalZones, 2)
	assert.Equal(t, telem.FlagYellow, s.MarshalZones[0].ZoneFlag)
	assert.Equal(t, float32(0.75), s.MarshalZones[1].ZoneStart)
	require.Len(t, s.ForecastSamples, 1)
	assert.Equal(t, telem.WeatherHeavyRain, s.ForecastSamples[0].Weather)
	assert.Equal(t, uint8(85), s.ForecastSamples[0].RainPercentage)
}

func TestDecodeSessionRejectsZoneCount(t *testing.T) {
	w := newPacketWire(t, telem.Format2023, telem.PacketSession)
	w.seek(telem.HeaderSize + 18)
	w.u8(marshalZoneSlots + 1)

	_, err := NewDecoder(NewRegistry()).Decode(telem.RawDatagram{Data: w.buf})
	assert.Equal(t, ReasonFieldOutOfRange, ReasonOf(err))
}

func TestDecodeEvent(t *testing.T) {
	encode := func(format uint16, code string, body func(w *wire)) []byte {
		w := newWire(declaredSize(t, format, telem.PacketEvent))
		w.header(format, telem.PacketEvent, 1, 1)
		w.chars(code, 4)
		if body != nil {
			body(w)
		}
		return w.buf
	}

	t.Run("fastest lap", func(t *testing.T) {
		pkt := decodeOne(t, encode(telem.Format2024, "FTLP", func(w *wire) {
			w.u8(7)
			w.f32(92.431)
		}))
		ev := pkt.Payload.(*telem.EventData)
		assert.Equal(t, telem.EventFastestLap, ev.Code)
		assert.Equal(t, uint8(7), ev.Detail.VehicleIdx)
		assert.Equal(t, float32(92.431), ev.Detail.LapTime)
	})

	t.Run("penalty", func(t *testing.T) {
		pkt := decodeOne(t, encode(telem.Format2024, "PENA", func(w *wire) {
			w.u8(3)   // penalty type
			w.u8(27)  // infringement
			w.u8(5)   // vehicle
			w.u8(255) // no other vehicle
			w.u8(10)  // time gained
			w.u8(12)  // lap
			w.u8(2)   // places gained
		}))
		ev := pkt.Payload.(*telem.EventData)
		assert.Equal(t, telem.EventPenaltyIssued, ev.Code)
		assert.Equal(t, uint8(3), ev.Detail.PenaltyType)
		assert.Equal(t, uint8(5), ev.Detail.VehicleIdx)
		assert.Equal(t, uint8(255), ev.Detail.OtherVehicleIdx)
		assert.Equal(t, uint8(2), ev.Detail.PlacesGained)
	})

	t.Run("speed trap", func(t *testing.T) {
		pkt := decodeOne(t, encode(telem.Format2023, "SPTP", func(w *wire) {
			w.u8(14)
			w.f32(329.8)
		}))
		ev := pkt.Payload.(*telem.EventData)
		assert.Equal(t, uint8(14), ev.Detail.VehicleIdx)
		assert.Equal(t, float32(329.8), ev.Detail.Speed)
	})

	t.Run("retirement reason only from 2025", func(t *testing.T) {
		pkt := decodeOne(t, encode(telem.Format2025, "RTMT", func(w *wire) {
			w.u8(2)
			w.u8(4) // reason
		}))
		assert.Equal(t, uint8(4), pkt.Payload.(*telem.EventData).Detail.Reason)

		pkt = decodeOne(t, encode(telem.Format2024, "RTMT", func(w *wire) {
			w.u8(2)
			w.u8(4) // not part of the 2024 body
		}))
		assert.Zero(t, pkt.Payload.(*telem.EventData).Detail.Reason)
	})

	t.Run("unknown code passes through", func(t *testing.T) {
		pkt := decodeOne(t, encode(telem.Format2024, "ZZZZ", nil))
		ev := pkt.Payload.(*telem.EventData)
		assert.Equal(t, telem.EventCode("ZZZZ"), ev.Code)
		assert.Zero(t, ev.Detail)
	})

	t.Run("vehicle index out of range", func(t *testing.T) {
		_, err := NewDecoder(NewRegistry()).Decode(telem.RawDatagram{
			Data: encode(telem.Format2024, "FTLP", func(w *wire) {
				w.u8(telem.MaxCars)
				w.f32(90)
			}),
		})
		assert.Equal(t, ReasonFieldOutOfRange, ReasonOf(err))
	})
}

func TestDecodeCarTelemetry(t *testing.T) {
	w := newPacketWire(t, telem.Format2024, telem.PacketCarTelemetry)
	w.seek(telem.HeaderSize + 5*carTelemetryStride)
	w.u16(287) // speed
	w.f32(0.98)
	w.f32(-0.12)
	w.f32(0)
	w.u8(0)
	w.i8(7)      // gear
	w.u16(11250) // rpm
	w.bool8(true)
	w.u8(90)
	w.u16(0) // rev lights bit value, skipped
	for i := 0; i < 4; i++ {
		w.u16(uint16(400 + i))
	}
	for i := 0; i < 4; i++ {
		w.u8(uint8(95 + i))
	}
	for i := 0; i < 4; i++ {
		w.u8(uint8(100 + i))
	}
	w.u16(108)
	w.f32(22.5)
	w.f32(22.6)
	w.f32(21.0)
	w.f32(21.1)
	w.seek(telem.HeaderSize + telem.MaxCars*carTelemetryStride)
	w.u8(0)
	w.u8(0)
	w.i8(6) // suggested gear

	pkt := decodeOne(t, w.buf)
	ct, ok := pkt.Payload.(*telem.CarTelemetryData)
	require.True(t, ok)
	c := ct.Cars[5]
	assert.Equal(t, uint16(287), c.SpeedKPH)
	assert.Equal(t, float32(0.98), c.Throttle)
	assert.Equal(t, float32(-0.12), c.Steer)
	assert.Equal(t, int8(7), c.Gear)
	assert.Equal(t, uint16(11250), c.EngineRPM)
	assert.True(t, c.DRSOpen)
	assert.Equal(t, [4]uint16{400, 401, 402, 403}, c.BrakeTempC)
	assert.Equal(t, [4]uint8{95, 96, 97, 98}, c.TyreSurfaceTempC)
	assert.Equal(t, uint16(108), c.EngineTempC)
	assert.Equal(t, float32(21.1), c.TyrePressurePSI[3])
	assert.Equal(t, int8(6), ct.SuggestedGear)
}

func TestDecodeCarStatus(t *testing.T) {
	w := newPacketWire(t, telem.Format2023, telem.PacketCarStatus)
	w.seek(telem.HeaderSize + 2*carStatusStride)
	w.u8(2)        // traction control
	w.bool8(true)  // ABS
	w.u8(3)        // fuel mix
	w.u8(56)       // brake bias
	w.bool8(false)
	w.f32(44.2) // fuel in tank
	w.f32(110)
	w.f32(12.8) // fuel remaining laps
	w.u16(12500)
	w.seek(w.off + 3)
	w.bool8(true) // DRS allowed
	w.u16(320)
	w.u8(18) // actual compound
	w.u8(16)
	w.u8(9)
	w.i8(-1) // FIA flags, blue
	w.seek(w.off + 8)
	w.f32(3.2e6) // ERS store
	w.u8(2)

	pkt := decodeOne(t, w.buf)
	cs, ok := pkt.Payload.(*telem.CarStatusData)
	require.True(t, ok)
	c := cs.Cars[2]
	assert.True(t, c.AntiLockBrakes)
	assert.Equal(t, float32(44.2), c.FuelInTank)
	assert.Equal(t, float32(12.8), c.FuelRemainingLaps)
	assert.Equal(t, uint16(12500), c.MaxRPM)
	assert.True(t, c.DRSAllowed)
	assert.Equal(t, uint16(320), c.DRSActivationDist)
	assert.Equal(t, int8(-1), c.VehicleFIAFlags)
	assert.Equal(t, float32(3.2e6), c.ERSStoreEnergy)
	assert.Equal(t, uint8(2), c.ERSDeployMode)
}

func TestDecodeCarDamage(t *testing.T) {
	t.Run("2023 layout", func(t *testing.T) {
		w := newPacketWire(t, telem.Format2023, telem.PacketCarDamage)
		w.seek(telem.HeaderSize) // car 0
		for i := 0; i < 4; i++ {
			w.f32(float32(10 + i))
		}
		for i := 0; i < 4; i++ {
			w.u8(uint8(20 + i))
		}
		for i := 0; i < 4; i++ {
			w.u8(uint8(30 + i))
		}
		w.u8(15) // front left wing

		pkt := decodeOne(t, w.buf)
		d := pkt.Payload.(*telem.CarDamageData).Cars[0]
		assert.Equal(t, [4]float32{10, 11, 12, 13}, d.TyresWear)
		assert.Equal(t, [4]uint8{20, 21, 22, 23}, d.TyresDamage)
		assert.Equal(t, [4]uint8{30, 31, 32, 33}, d.BrakesDamage)
		assert.Equal(t, uint8(15), d.FrontLeftWingDamage)
		assert.Zero(t, d.TyreBlisters)
	})

	t.Run("2025 adds blisters", func(t *testing.T) {
		w := newPacketWire(t, telem.Format2025, telem.PacketCarDamage)
		w.seek(telem.HeaderSize)
		for i := 0; i < 4; i++ {
			w.f32(50)
		}
		for i := 0; i < 4; i++ {
			w.u8(uint8(5 + i)) // blisters
		}
		for i := 0; i < 4; i++ {
			w.u8(60 + uint8(i))
		}

		pkt := decodeOne(t, w.buf)
		d := pkt.Payload.(*telem.CarDamageData).Cars[0]
		assert.Equal(t, [4]uint8{5, 6, 7, 8}, d.TyreBlisters)
		assert.Equal(t, [4]uint8{60, 61, 62, 63}, d.TyresDamage)
	})
}

func TestDecodeParticipants(t *testing.T) {
	for _, tc := range []struct {
		format  uint16
		stride  int
		nameLen int
	}{
		{telem.Format2023, 58, 48},
		{telem.Format2024, 60, 48},
		{telem.Format2025, 57, 32},
	} {
		w := newPacketWire(t, tc.format, telem.PacketParticipants)
		w.seek(telem.HeaderSize)
		w.u8(20) // active cars
		rec := telem.HeaderSize + 1 + 3*tc.stride
		w.seek(rec)
		w.bool8(false) // human
		w.u8(14)       // driver id
		w.u8(0)
		w.u8(9) // team
		w.bool8(false)
		w.u8(44) // race number
		w.u8(13)
		w.chars("HAMILTON", tc.nameLen)
		w.bool8(true)

		pkt := decodeOne(t, w.buf)
		p, ok := pkt.Payload.(*telem.ParticipantsData)
		require.True(t, ok, "format %d", tc.format)
		assert.Equal(t, uint8(20), p.NumActiveCars)
		c := p.Cars[3]
		assert.False(t, c.AIControlled)
		assert.Equal(t, uint8(9), c.TeamID)
		assert.Equal(t, uint8(44), c.RaceNumber)
		assert.Equal(t, "HAMILTON", c.Name, "name must stop at the first NUL")
		assert.True(t, c.TelemetryPublic)
	}
}

func TestDecodeParticipantsRejectsCarCount(t *testing.T) {
	w := newPacketWire(t, telem.Format2024, telem.PacketParticipants)
	w.seek(telem.HeaderSize)
	w.u8(telem.MaxCars + 1)

	_, err := NewDecoder(NewRegistry()).Decode(telem.RawDatagram{Data: w.buf})
	assert.Equal(t, ReasonFieldOutOfRange, ReasonOf(err))
}

func TestDecodeLobby2024(t *testing.T) {
	w := newPacketWire(t, telem.Format2024, telem.PacketLobbyInfo)
	w.seek(telem.HeaderSize)
	w.u8(2)
	rec := telem.HeaderSize + 1 + 1*58
	w.seek(rec)
	w.bool8(true)
	w.u8(4)
	w.u8(10)
	w.u8(1) // platform
	w.chars("VERSTAPPEN", 48)
	w.u8(1)          // car number
	w.seek(rec + 57) // tech-level block skipped
	w.u8(2)          // ready

	pkt := decodeOne(t, w.buf)
	l, ok := pkt.Payload.(*telem.LobbyInfoData)
	require.True(t, ok)
	assert.Equal(t, uint8(2), l.NumPlayers)
	assert.Equal(t, "VERSTAPPEN", l.Players[1].Name)
	assert.Equal(t, uint8(2), l.Players[1].ReadyStatus)
}

func TestDecodeFinalClassification2025(t *testing.T) {
	w := newPacketWire(t, telem.Format2025, telem.PacketFinalClassification)
	w.seek(telem.HeaderSize)
	w.u8(20)
	rec := telem.HeaderSize + 1 // car 0
	w.seek(rec)
	w.u8(1)  // position
	w.u8(57) // laps
	w.u8(3)  // grid
	w.u8(25) // points
	w.u8(2)
	w.u8(3) // result status
	w.u8(0) // result reason, 2025 insertion
	w.u32(89123)
	w.f64(5423.75)
	w.u8(5) // penalties time
	w.u8(1)
	w.u8(3) // stints

	pkt := decodeOne(t, w.buf)
	fc, ok := pkt.Payload.(*telem.FinalClassificationData)
	require.True(t, ok)
	c := fc.Cars[0]
	assert.Equal(t, uint8(1), c.Position)
	assert.Equal(t, uint8(57), c.NumLaps)
	assert.Equal(t, uint8(25), c.Points)
	assert.Equal(t, uint32(89123), c.BestLapTimeMS)
	assert.Equal(t, 5423.75, c.TotalRaceTime)
	assert.Equal(t, uint8(5), c.PenaltiesTime)
	assert.Equal(t, uint8(3), c.NumTyreStints)
}

func TestDecodeSessionHistory(t *testing.T) {
	w := newPacketWire(t, telem.Format2024, telem.PacketSessionHistory)
	w.seek(telem.HeaderSize)
	w.u8(16) // car index
	w.u8(2)  // laps
	w.u8(1)  // stints
	w.u8(2)  // best lap number
	w.seek(w.off + 3)

	lapsStart := w.off
	w.u32(92345)
	w.u16(29000)
	w.u8(0)
	w.u16(31500)
	w.u8(0)
	w.u16(31845)
	w.u8(0)
	w.u8(0x0F)
	w.u32(91800)
	w.u16(28800)
	w.u8(0)
	w.u16(31400)
	w.u8(0)
	w.u16(31600)
	w.u8(0)
	w.u8(0x0F)

	w.seek(lapsStart + lapHistorySlots*lapHistoryStride)
	w.u8(30) // stint end lap
	w.u8(18)
	w.u8(16)

	pkt := decodeOne(t, w.buf)
	h, ok := pkt.Payload.(*telem.SessionHistoryData)
	require.True(t, ok)
	assert.Equal(t, uint8(16), h.CarIndex)
	require.Len(t, h.Laps, 2)
	assert.Equal(t, uint32(92345), h.Laps[0].LapTimeMS)
	assert.Equal(t, uint16(31845), h.Laps[0].Sector3TimeMS)
	assert.Equal(t, uint32(91800), h.Laps[1].LapTimeMS)
	require.Len(t, h.Stints, 1)
	assert.Equal(t, uint8(30), h.Stints[0].EndLap)
}

func TestDecodeSessionHistoryRejectsCarIndex(t *testing.T) {
	w := newPacketWire(t, telem.Format2024, telem.PacketSessionHistory)
	w.seek(telem.HeaderSize)
	w.u8(telem.MaxCars)

	_, err := NewDecoder(NewRegistry()).Decode(telem.RawDatagram{Data: w.buf})
	assert.Equal(t, ReasonFieldOutOfRange, ReasonOf(err))
}

func TestDecodeTyreSets(t *testing.T) {
	w := newPacketWire(t, telem.Format2024, telem.PacketTyreSets)
	w.seek(telem.HeaderSize)
	w.u8(7) // car index
	rec := telem.HeaderSize + 1 + 2*tyreSetStride
	w.seek(rec)
	w.u8(16) // C3
	w.u8(16)
	w.u8(40) // wear
	w.bool8(true)
	w.u8(10)
	w.u8(30)
	w.u8(18)
	w.i16(-250)
	w.bool8(true)
	w.seek(telem.HeaderSize + 1 + tyreSetSlots*tyreSetStride)
	w.u8(2) // fitted index

	pkt := decodeOne(t, w.buf)
	ts, ok := pkt.Payload.(*telem.TyreSetsData)
	require.True(t, ok)
	assert.Equal(t, uint8(7), ts.CarIndex)
	set := ts.Sets[2]
	assert.Equal(t, uint8(40), set.Wear)
	assert.True(t, set.Available)
	assert.Equal(t, int16(-250), set.LapDeltaTimeMS)
	assert.True(t, set.Fitted)
	assert.Equal(t, uint8(2), ts.FittedIdx)
}

func TestDecodeCarSetups(t *testing.T) {
	w := newPacketWire(t, telem.Format2024, telem.PacketCarSetups)
	w.seek(telem.HeaderSize + 6*50)
	w.u8(30) // front wing
	w.u8(25)
	w.u8(70)
	w.u8(55)
	w.f32(-3.1)
	w.f32(-1.8)
	w.f32(0.05)
	w.f32(0.2)

	pkt := decodeOne(t, w.buf)
	cs, ok := pkt.Payload.(*telem.CarSetupsData)
	require.True(t, ok)
	c := cs.Cars[6]
	assert.Equal(t, uint8(30), c.FrontWing)
	assert.Equal(t, uint8(25), c.RearWing)
	assert.Equal(t, float32(-3.1), c.FrontCamber)
	assert.Equal(t, float32(0.2), c.RearToe)
}

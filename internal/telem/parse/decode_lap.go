package parse

import (
	"github.com/hawkeye-data/grid.report/internal/telem"
)

// Per-car record strides. 2024 widened the leader/gap deltas with a minutes
// part and appended the speed-trap fields; 2025 kept the 2024 layout.
const (
	carLapStride2023 = 50
	carLapStride2024 = 57
)

func decodeLapData2023(r *reader, format uint16) (telem.Payload, error) {
	out := &telem.LapData{}
	for i := 0; i < telem.MaxCars; i++ {
		start := r.off
		c := &out.Cars[i]
		c.LastLapTimeMS = r.u32()
		c.CurrentLapTimeMS = r.u32()
		c.Sector1TimeMS = r.u16()
		c.Sector1TimeMinutes = r.u8()
		c.Sector2TimeMS = r.u16()
		c.Sector2TimeMinutes = r.u8()
		c.DeltaToCarInFrontMS = r.u16()
		c.DeltaToRaceLeaderMS = r.u16()
		decodeLapTail(r, c)
		r.seek(start + carLapStride2023)
	}
	out.TimeTrialPBCarIdx = r.u8()
	out.TimeTrialRivalCarIdx = r.u8()
	return out, nil
}

func decodeLapData2024(r *reader, format uint16) (telem.Payload, error) {
	out := &telem.LapData{}
	for i := 0; i < telem.MaxCars; i++ {
		start := r.off
		c := &out.Cars[i]
		c.LastLapTimeMS = r.u32()
		c.CurrentLapTimeMS = r.u32()
		c.Sector1TimeMS = r.u16()
		c.Sector1TimeMinutes = r.u8()
		c.Sector2TimeMS = r.u16()
		c.Sector2TimeMinutes = r.u8()
		c.DeltaToCarInFrontMS = r.u16()
		r.skip(1) // delta-to-car-in-front minutes part
		c.DeltaToRaceLeaderMS = r.u16()
		r.skip(1) // delta-to-leader minutes part
		decodeLapTail(r, c)
		r.skip(6) // pit lane timer fields
		c.SpeedTrapSpeedKPH = r.f32()
		r.seek(start + carLapStride2024)
	}
	out.TimeTrialPBCarIdx = r.u8()
	out.TimeTrialRivalCarIdx = r.u8()
	return out, nil
}

// decodeLapTail reads the distance and status block that is byte-identical
// across all supported years.
func decodeLapTail(r *reader, c *telem.CarLap) {
	c.LapDistance = r.f32()
	c.TotalDistance = r.f32()
	c.SafetyCarDelta = r.f32()
	c.CarPosition = r.u8()
	c.CurrentLapNum = r.u8()
	c.PitStatus = r.u8()
	c.NumPitStops = r.u8()
	c.Sector = r.u8()
	c.CurrentLapInvalid = r.bool8()
	c.Penalties = r.u8()
	c.TotalWarnings = r.u8()
	c.CornerCutWarnings = r.u8()
	r.skip(2) // unserved drive-through / stop-go counts
	c.GridPosition = r.u8()
	c.DriverStatus = r.u8()
	c.ResultStatus = r.u8()
}

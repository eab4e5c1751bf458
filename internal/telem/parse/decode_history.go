package parse

import (
	"github.com/hawkeye-data/grid.report/internal/telem"
)

const (
	lapHistorySlots  = 100
	lapHistoryStride = 14
	tyreStintSlots   = 8
	tyreSetSlots     = 20
	tyreSetStride    = 10
)

// decodeSessionHistory reads the single-car lap history packet. The layout
// is stable across all supported years. Only laps and stints actually
// recorded are materialised; the remaining wire slots are zero padding.
func decodeSessionHistory(r *reader, format uint16) (telem.Payload, error) {
	out := &telem.SessionHistoryData{}
	out.CarIndex = r.u8()
	if out.CarIndex >= telem.MaxCars {
		return nil, decodeErrf(ReasonFieldOutOfRange, "session_history: car index %d, grid is %d", out.CarIndex, telem.MaxCars)
	}
	out.NumLaps = r.u8()
	out.NumTyreStints = r.u8()
	out.BestLapTimeLapNum = r.u8()
	r.skip(3) // best sector lap numbers

	numLaps := int(out.NumLaps)
	if numLaps > lapHistorySlots {
		return nil, decodeErrf(ReasonFieldOutOfRange, "session_history: %d laps, max %d", numLaps, lapHistorySlots)
	}
	lapsStart := r.off
	out.Laps = make([]telem.LapHistoryEntry, numLaps)
	for i := 0; i < numLaps; i++ {
		e := &out.Laps[i]
		e.LapTimeMS = r.u32()
		e.Sector1TimeMS = r.u16()
		r.skip(1) // sector 1 minutes part
		e.Sector2TimeMS = r.u16()
		r.skip(1)
		e.Sector3TimeMS = r.u16()
		r.skip(1)
		e.LapValidFlags = r.u8()
	}
	r.seek(lapsStart + lapHistorySlots*lapHistoryStride)

	numStints := int(out.NumTyreStints)
	if numStints > tyreStintSlots {
		return nil, decodeErrf(ReasonFieldOutOfRange, "session_history: %d stints, max %d", numStints, tyreStintSlots)
	}
	out.Stints = make([]telem.TyreStint, numStints)
	for i := 0; i < numStints; i++ {
		out.Stints[i] = telem.TyreStint{
			EndLap:         r.u8(),
			ActualCompound: r.u8(),
			VisualCompound: r.u8(),
		}
	}
	return out, nil
}

// decodeTyreSets reads the single-car tyre allocation packet.
func decodeTyreSets(r *reader, format uint16) (telem.Payload, error) {
	out := &telem.TyreSetsData{}
	out.CarIndex = r.u8()
	if out.CarIndex >= telem.MaxCars {
		return nil, decodeErrf(ReasonFieldOutOfRange, "tyre_sets: car index %d, grid is %d", out.CarIndex, telem.MaxCars)
	}
	for i := 0; i < tyreSetSlots; i++ {
		start := r.off
		s := &out.Sets[i]
		s.ActualCompound = r.u8()
		s.VisualCompound = r.u8()
		s.Wear = r.u8()
		s.Available = r.bool8()
		s.RecommendedSession = r.u8()
		s.LifeSpan = r.u8()
		s.UsableLife = r.u8()
		s.LapDeltaTimeMS = r.i16()
		s.Fitted = r.bool8()
		r.seek(start + tyreSetStride)
	}
	out.FittedIdx = r.u8()
	return out, nil
}

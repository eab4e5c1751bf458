package parse

import (
	"github.com/hawkeye-data/grid.report/internal/telem"
)

// decodeEvent reads the four-character event code and the union body that
// follows it. Codes the engine does not know are passed through with an
// empty detail rather than rejected: the game adds codes between patches
// and an unknown occurrence is still worth surfacing.
func decodeEvent(r *reader, format uint16) (telem.Payload, error) {
	out := &telem.EventData{Code: telem.EventCode(r.chars(4))}
	d := &out.Detail

	switch out.Code {
	case telem.EventFastestLap:
		d.VehicleIdx = r.u8()
		d.LapTime = r.f32()
	case telem.EventRetirement:
		d.VehicleIdx = r.u8()
		if format >= telem.Format2025 {
			d.Reason = r.u8()
		}
	case telem.EventDRSDisabled:
		if format >= telem.Format2025 {
			d.Reason = r.u8()
		}
	case telem.EventRaceWinner, telem.EventDriveThrough, telem.EventStopGo:
		d.VehicleIdx = r.u8()
	case telem.EventPenaltyIssued:
		d.PenaltyType = r.u8()
		d.InfringementType = r.u8()
		d.VehicleIdx = r.u8()
		d.OtherVehicleIdx = r.u8()
		d.TimeGained = r.u8()
		r.skip(1) // lap number
		d.PlacesGained = r.u8()
	case telem.EventSpeedTrap:
		d.VehicleIdx = r.u8()
		d.Speed = r.f32()
	case telem.EventStartLights:
		d.NumLights = r.u8()
	case telem.EventOvertake, telem.EventCollision:
		d.VehicleIdx = r.u8()
		d.OtherVehicleIdx = r.u8()
	}

	if err := checkEventCar(out.Code, d); err != nil {
		return nil, err
	}
	return out, nil
}

// checkEventCar bounds-checks car indices carried in event bodies so a
// corrupt event can never index past the grid downstream.
func checkEventCar(code telem.EventCode, d *telem.EventDetail) *DecodeError {
	if !code.DriverRelated() {
		return nil
	}
	if d.VehicleIdx >= telem.MaxCars {
		return decodeErrf(ReasonFieldOutOfRange, "event %s: vehicle index %d", code, d.VehicleIdx)
	}
	switch code {
	case telem.EventOvertake, telem.EventCollision, telem.EventPenaltyIssued:
		// The other-vehicle slot is 255 when no second car is involved.
		if d.OtherVehicleIdx >= telem.MaxCars && d.OtherVehicleIdx != 255 {
			return decodeErrf(ReasonFieldOutOfRange, "event %s: other vehicle index %d", code, d.OtherVehicleIdx)
		}
	}
	return nil
}

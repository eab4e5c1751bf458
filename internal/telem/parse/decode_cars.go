package parse

import (
	"github.com/hawkeye-data/grid.report/internal/telem"
)

// Per-car strides stable across all supported years.
const (
	carTelemetryStride = 60
	carStatusStride    = 55
)

func decodeCarTelemetry(r *reader, format uint16) (telem.Payload, error) {
	out := &telem.CarTelemetryData{}
	for i := 0; i < telem.MaxCars; i++ {
		start := r.off
		c := &out.Cars[i]
		c.SpeedKPH = r.u16()
		c.Throttle = r.f32()
		c.Steer = r.f32()
		c.Brake = r.f32()
		c.Clutch = r.u8()
		c.Gear = r.i8()
		c.EngineRPM = r.u16()
		c.DRSOpen = r.bool8()
		c.RevLightsPercent = r.u8()
		r.skip(2) // rev lights bit value
		for w := 0; w < 4; w++ {
			c.BrakeTempC[w] = r.u16()
		}
		for w := 0; w < 4; w++ {
			c.TyreSurfaceTempC[w] = r.u8()
		}
		for w := 0; w < 4; w++ {
			c.TyreInnerTempC[w] = r.u8()
		}
		c.EngineTempC = r.u16()
		for w := 0; w < 4; w++ {
			c.TyrePressurePSI[w] = r.f32()
		}
		r.seek(start + carTelemetryStride)
	}
	r.skip(2) // MFD panel indices
	out.SuggestedGear = r.i8()
	return out, nil
}

func decodeCarStatus(r *reader, format uint16) (telem.Payload, error) {
	out := &telem.CarStatusData{}
	for i := 0; i < telem.MaxCars; i++ {
		start := r.off
		c := &out.Cars[i]
		c.TractionControl = r.u8()
		c.AntiLockBrakes = r.bool8()
		c.FuelMix = r.u8()
		c.FrontBrakeBias = r.u8()
		c.PitLimiterOn = r.bool8()
		c.FuelInTank = r.f32()
		c.FuelCapacity = r.f32()
		c.FuelRemainingLaps = r.f32()
		c.MaxRPM = r.u16()
		r.skip(3) // idle RPM, max gears
		c.DRSAllowed = r.bool8()
		c.DRSActivationDist = r.u16()
		c.ActualTyreCompound = r.u8()
		c.VisualTyreCompound = r.u8()
		c.TyresAgeLaps = r.u8()
		c.VehicleFIAFlags = r.i8()
		r.skip(8) // engine power ICE / MGU-K
		c.ERSStoreEnergy = r.f32()
		c.ERSDeployMode = r.u8()
		r.seek(start + carStatusStride)
	}
	return out, nil
}

// carDamageDecoder builds the damage decoder for a format year. 2025 grew
// the record by a tyre-blister block; the interpreted prefix is otherwise
// identical.
func carDamageDecoder(stride int, hasBlisters bool) decodeFunc {
	return func(r *reader, format uint16) (telem.Payload, error) {
		out := &telem.CarDamageData{}
		for i := 0; i < telem.MaxCars; i++ {
			start := r.off
			c := &out.Cars[i]
			for w := 0; w < 4; w++ {
				c.TyresWear[w] = r.f32()
			}
			if hasBlisters {
				for w := 0; w < 4; w++ {
					c.TyreBlisters[w] = r.u8()
				}
			}
			for w := 0; w < 4; w++ {
				c.TyresDamage[w] = r.u8()
			}
			for w := 0; w < 4; w++ {
				c.BrakesDamage[w] = r.u8()
			}
			c.FrontLeftWingDamage = r.u8()
			c.FrontRightWingDamage = r.u8()
			c.RearWingDamage = r.u8()
			c.FloorDamage = r.u8()
			c.DiffuserDamage = r.u8()
			c.SidepodDamage = r.u8()
			c.DRSFault = r.bool8()
			r.skip(1) // ERS fault
			c.GearBoxDamage = r.u8()
			c.EngineDamage = r.u8()
			r.seek(start + stride)
		}
		return out, nil
	}
}

// carSetupsDecoder builds the setups decoder for a format year. Only the
// aero and differential prefix is interpreted; suspension, brake and fuel
// fields are stepped over by stride.
func carSetupsDecoder(stride int) decodeFunc {
	return func(r *reader, format uint16) (telem.Payload, error) {
		out := &telem.CarSetupsData{}
		for i := 0; i < telem.MaxCars; i++ {
			start := r.off
			c := &out.Cars[i]
			c.FrontWing = r.u8()
			c.RearWing = r.u8()
			c.OnThrottle = r.u8()
			c.OffThrottle = r.u8()
			c.FrontCamber = r.f32()
			c.RearCamber = r.f32()
			c.FrontToe = r.f32()
			c.RearToe = r.f32()
			r.seek(start + stride)
		}
		return out, nil
	}
}

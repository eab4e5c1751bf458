package parse

import (
	"github.com/hawkeye-data/grid.report/internal/telem"
)

// carMotionStride is the per-car record size in a Motion packet; stable
// across all supported format years.
const carMotionStride = 60

func decodeMotion(r *reader, format uint16) (telem.Payload, error) {
	out := &telem.MotionData{}
	for i := 0; i < telem.MaxCars; i++ {
		start := r.off
		c := &out.Cars[i]
		c.WorldPositionX = r.f32()
		c.WorldPositionY = r.f32()
		c.WorldPositionZ = r.f32()
		c.WorldVelocityX = r.f32()
		c.WorldVelocityY = r.f32()
		c.WorldVelocityZ = r.f32()
		// World forward/right direction vectors: three int16 components
		// each, normalised to 32767. Not interpreted by the engine.
		r.skip(12)
		c.GForceLateral = r.f32()
		c.GForceLongitudinal = r.f32()
		c.GForceVertical = r.f32()
		c.Yaw = r.f32()
		c.Pitch = r.f32()
		c.Roll = r.f32()
		r.seek(start + carMotionStride)
	}
	return out, nil
}

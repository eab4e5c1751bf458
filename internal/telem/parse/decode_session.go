package parse

import (
	"github.com/hawkeye-data/grid.report/internal/telem"
)

const (
	marshalZoneSlots    = 21
	marshalZoneStride   = 5 // f32 zoneStart + i8 zoneFlag
	forecastSlots2023   = 56
	forecastSlots2024   = 64
	forecastSampleSize  = 8
)

func decodeSession2023(r *reader, format uint16) (telem.Payload, error) {
	return decodeSession(r, forecastSlots2023)
}

func decodeSession2024(r *reader, format uint16) (telem.Payload, error) {
	return decodeSession(r, forecastSlots2024)
}

// decodeSession reads the fixed session prefix shared by all supported
// years plus the weather forecast array, whose slot count is the only layout
// difference between them. Fields past the forecast array (assists, pit
// windows) are not interpreted.
func decodeSession(r *reader, forecastSlots int) (telem.Payload, error) {
	out := &telem.SessionData{}
	out.Weather = telem.Weather(r.u8())
	out.TrackTemperature = r.i8()
	out.AirTemperature = r.i8()
	out.TotalLaps = r.u8()
	out.TrackLength = r.u16()
	out.SessionType = telem.SessionType(r.u8())
	out.TrackID = r.i8()
	out.Formula = r.u8()
	out.SessionTimeLeft = r.u16()
	out.SessionDuration = r.u16()
	out.PitSpeedLimit = r.u8()
	out.GamePaused = r.bool8()
	r.skip(3) // isSpectating, spectatorCarIndex, sliProNativeSupport

	out.NumMarshalZones = r.u8()
	zonesStart := r.off
	n := int(out.NumMarshalZones)
	if n > marshalZoneSlots {
		return nil, decodeErrf(ReasonFieldOutOfRange, "session: %d marshal zones, max %d", n, marshalZoneSlots)
	}
	out.MarshalZones = make([]telem.MarshalZone, n)
	for i := 0; i < n; i++ {
		out.MarshalZones[i] = telem.MarshalZone{
			ZoneStart: r.f32(),
			ZoneFlag:  telem.ZoneFlag(r.i8()),
		}
	}
	r.seek(zonesStart + marshalZoneSlots*marshalZoneStride)

	out.SafetyCarStatus = telem.SafetyCarStatus(r.u8())
	out.NetworkGame = r.bool8()

	numForecast := int(r.u8())
	if numForecast > forecastSlots {
		return nil, decodeErrf(ReasonFieldOutOfRange, "session: %d forecast samples, max %d", numForecast, forecastSlots)
	}
	out.ForecastSamples = make([]telem.WeatherForecastSample, numForecast)
	for i := 0; i < numForecast; i++ {
		out.ForecastSamples[i] = telem.WeatherForecastSample{
			SessionType:      telem.SessionType(r.u8()),
			TimeOffsetMin:    r.u8(),
			Weather:          telem.Weather(r.u8()),
			TrackTemperature: r.i8(),
			TrackTempChange:  r.i8(),
			AirTemperature:   r.i8(),
			AirTempChange:    r.i8(),
			RainPercentage:   r.u8(),
		}
	}
	return out, nil
}

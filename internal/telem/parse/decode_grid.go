package parse

import (
	"github.com/hawkeye-data/grid.report/internal/telem"
)

// Participants and lobby records carry a fixed-width name field whose size
// and record stride shifted between format years (2025 shortened names from
// 48 to 32 bytes and appended livery colours).

func decodeParticipants2023(r *reader, format uint16) (telem.Payload, error) {
	return decodeParticipants(r, 58, 48)
}

func decodeParticipants2024(r *reader, format uint16) (telem.Payload, error) {
	return decodeParticipants(r, 60, 48)
}

func decodeParticipants2025(r *reader, format uint16) (telem.Payload, error) {
	return decodeParticipants(r, 57, 32)
}

func decodeParticipants(r *reader, stride, nameLen int) (telem.Payload, error) {
	out := &telem.ParticipantsData{}
	out.NumActiveCars = r.u8()
	if out.NumActiveCars > telem.MaxCars {
		return nil, decodeErrf(ReasonFieldOutOfRange, "participants: %d active cars, grid is %d", out.NumActiveCars, telem.MaxCars)
	}
	for i := 0; i < telem.MaxCars; i++ {
		start := r.off
		c := &out.Cars[i]
		c.AIControlled = r.bool8()
		c.DriverID = r.u8()
		c.NetworkID = r.u8()
		c.TeamID = r.u8()
		c.MyTeam = r.bool8()
		c.RaceNumber = r.u8()
		c.Nationality = r.u8()
		c.Name = r.chars(nameLen)
		c.TelemetryPublic = r.bool8()
		r.seek(start + stride)
	}
	return out, nil
}

func decodeLobby2023(r *reader, format uint16) (telem.Payload, error) {
	return decodeLobby(r, 54, 48, false)
}

func decodeLobby2024(r *reader, format uint16) (telem.Payload, error) {
	return decodeLobby(r, 58, 48, true)
}

func decodeLobby2025(r *reader, format uint16) (telem.Payload, error) {
	return decodeLobby(r, 42, 32, true)
}

func decodeLobby(r *reader, stride, nameLen int, hasTech bool) (telem.Payload, error) {
	out := &telem.LobbyInfoData{}
	out.NumPlayers = r.u8()
	if out.NumPlayers > telem.MaxCars {
		return nil, decodeErrf(ReasonFieldOutOfRange, "lobby: %d players, max %d", out.NumPlayers, telem.MaxCars)
	}
	for i := 0; i < telem.MaxCars; i++ {
		start := r.off
		p := &out.Players[i]
		p.AIControlled = r.bool8()
		p.TeamID = r.u8()
		p.Nationality = r.u8()
		p.Platform = r.u8()
		p.Name = r.chars(nameLen)
		p.CarNumber = r.u8()
		if hasTech {
			r.skip(4) // your-telemetry, online names, tech level
		}
		p.ReadyStatus = r.u8()
		r.seek(start + stride)
	}
	return out, nil
}

// classificationDecoder builds the final-classification decoder for a format
// year; 2025 inserts a result-reason byte after the result status.
func classificationDecoder(stride int, hasReason bool) decodeFunc {
	return func(r *reader, format uint16) (telem.Payload, error) {
		out := &telem.FinalClassificationData{}
		out.NumCars = r.u8()
		if out.NumCars > telem.MaxCars {
			return nil, decodeErrf(ReasonFieldOutOfRange, "classification: %d cars, grid is %d", out.NumCars, telem.MaxCars)
		}
		for i := 0; i < telem.MaxCars; i++ {
			start := r.off
			c := &out.Cars[i]
			c.Position = r.u8()
			c.NumLaps = r.u8()
			c.GridPosition = r.u8()
			c.Points = r.u8()
			c.NumPitStops = r.u8()
			c.ResultStatus = r.u8()
			if hasReason {
				r.skip(1)
			}
			c.BestLapTimeMS = r.u32()
			c.TotalRaceTime = r.f64()
			c.PenaltiesTime = r.u8()
			c.NumPenalties = r.u8()
			c.NumTyreStints = r.u8()
			r.skip(8) // actual tyre stint compounds
			for s := 0; s < 8; s++ {
				c.TyreStintsVisual[s] = r.u8()
			}
			for s := 0; s < 8; s++ {
				c.TyreStintsEndLaps[s] = r.u8()
			}
			r.seek(start + stride)
		}
		return out, nil
	}
}

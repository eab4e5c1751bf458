package parse

import (
	"github.com/hawkeye-data/grid.report/internal/telem"
)

// decodeFunc decodes one payload. The reader is positioned just past the
// header and the registry has already verified the datagram holds at least
// the declared total size. A nil decodeFunc marks a family the engine
// recognises but deliberately does not interpret.
type decodeFunc func(r *reader, format uint16) (telem.Payload, error)

// entry is one registry slot: the declared total datagram size for a
// (format, id) pair and its decode routine.
type entry struct {
	size   int
	decode decodeFunc
}

// Registry maps (format year, packet id) to decode routines. All supported
// format years coexist; the decoder selects tables per-datagram from the
// header, never through a global mode switch. Adding a new game year is a
// new table, not a rewrite.
type Registry struct {
	formats map[uint16]map[telem.PacketID]entry
}

// NewRegistry returns a registry carrying the builtin tables for the 2023,
// 2024 and 2025 format years.
func NewRegistry() *Registry {
	return &Registry{formats: map[uint16]map[telem.PacketID]entry{
		telem.Format2023: tables2023(),
		telem.Format2024: tables2024(),
		telem.Format2025: tables2025(),
	}}
}

// Lookup resolves the decode entry for a (format, id) pair. Unknown formats
// and unknown ids return typed rejections, never a crash.
func (g *Registry) Lookup(format uint16, id telem.PacketID) (entry, *DecodeError) {
	table, ok := g.formats[format]
	if !ok {
		return entry{}, decodeErrf(ReasonUnsupportedVersion, "format %d", format)
	}
	e, ok := table[id]
	if !ok {
		return entry{}, decodeErrf(ReasonUnsupportedType, "format %d id %d", format, id)
	}
	return e, nil
}

// SupportedFormats lists the format years the registry carries, for logs.
func (g *Registry) SupportedFormats() []uint16 {
	out := make([]uint16, 0, len(g.formats))
	for f := range g.formats {
		out = append(out, f)
	}
	return out
}

// Declared total datagram sizes per format year, header included. Shorter
// datagrams are rejected as corrupt; longer ones carry trailing fields the
// engine skips.
func tables2023() map[telem.PacketID]entry {
	return map[telem.PacketID]entry{
		telem.PacketMotion:              {1349, decodeMotion},
		telem.PacketSession:             {644, decodeSession2023},
		telem.PacketLapData:             {1131, decodeLapData2023},
		telem.PacketEvent:               {45, decodeEvent},
		telem.PacketParticipants:        {1306, decodeParticipants2023},
		telem.PacketCarSetups:           {1107, carSetupsDecoder(49)},
		telem.PacketCarTelemetry:        {1352, decodeCarTelemetry},
		telem.PacketCarStatus:           {1239, decodeCarStatus},
		telem.PacketFinalClassification: {1020, classificationDecoder(45, false)},
		telem.PacketLobbyInfo:           {1218, decodeLobby2023},
		telem.PacketCarDamage:           {953, carDamageDecoder(42, false)},
		telem.PacketSessionHistory:      {1460, decodeSessionHistory},
		telem.PacketTyreSets:            {231, decodeTyreSets},
		telem.PacketMotionEx:            {217, nil},
	}
}

func tables2024() map[telem.PacketID]entry {
	return map[telem.PacketID]entry{
		telem.PacketMotion:              {1349, decodeMotion},
		telem.PacketSession:             {753, decodeSession2024},
		telem.PacketLapData:             {1285, decodeLapData2024},
		telem.PacketEvent:               {45, decodeEvent},
		telem.PacketParticipants:        {1350, decodeParticipants2024},
		telem.PacketCarSetups:           {1133, carSetupsDecoder(50)},
		telem.PacketCarTelemetry:        {1352, decodeCarTelemetry},
		telem.PacketCarStatus:           {1239, decodeCarStatus},
		telem.PacketFinalClassification: {1020, classificationDecoder(45, false)},
		telem.PacketLobbyInfo:           {1306, decodeLobby2024},
		telem.PacketCarDamage:           {953, carDamageDecoder(42, false)},
		telem.PacketSessionHistory:      {1460, decodeSessionHistory},
		telem.PacketTyreSets:            {231, decodeTyreSets},
		telem.PacketMotionEx:            {237, nil},
		telem.PacketTimeTrial:           {101, nil},
	}
}

func tables2025() map[telem.PacketID]entry {
	return map[telem.PacketID]entry{
		telem.PacketMotion:              {1349, decodeMotion},
		telem.PacketSession:             {753, decodeSession2024},
		telem.PacketLapData:             {1285, decodeLapData2024},
		telem.PacketEvent:               {45, decodeEvent},
		telem.PacketParticipants:        {1284, decodeParticipants2025},
		telem.PacketCarSetups:           {1133, carSetupsDecoder(50)},
		telem.PacketCarTelemetry:        {1352, decodeCarTelemetry},
		telem.PacketCarStatus:           {1239, decodeCarStatus},
		telem.PacketFinalClassification: {1042, classificationDecoder(46, true)},
		telem.PacketLobbyInfo:           {954, decodeLobby2025},
		telem.PacketCarDamage:           {1041, carDamageDecoder(46, true)},
		telem.PacketSessionHistory:      {1460, decodeSessionHistory},
		telem.PacketTyreSets:            {231, decodeTyreSets},
		telem.PacketMotionEx:            {273, nil},
		telem.PacketTimeTrial:           {101, nil},
		telem.PacketLapPositions:        {1131, nil},
	}
}

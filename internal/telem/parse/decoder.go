// Package parse implements the versioned binary decoder for the telemetry
// wire format. Decoding is pure: bytes in, typed packet out, no shared
// mutable state, so datagrams can be decoded concurrently.
//
// Every supported format year begins each datagram with the same fixed
// 29-byte header. The payload layout and declared total size vary per
// (format year, packet id); the Registry holds one decode table per year and
// selects per datagram from the header's format field. Decoders interpret a
// fixed prefix of every record and skip to the declared stride, so a format
// patch that appends trailing fields does not break them.
package parse

import (
	"github.com/hawkeye-data/grid.report/internal/telem"
)

// Decoder validates raw datagrams and turns them into typed packets.
type Decoder struct {
	reg *Registry
}

// NewDecoder returns a decoder backed by the given registry.
func NewDecoder(reg *Registry) *Decoder {
	return &Decoder{reg: reg}
}

// DecodeHeader reads only the fixed header from a datagram. Exposed for
// tools (capture inspection) that do not need the payload.
func DecodeHeader(data []byte) (telem.Header, *DecodeError) {
	if len(data) < telem.HeaderSize {
		return telem.Header{}, decodeErrf(ReasonTooShort, "%d bytes, header needs %d", len(data), telem.HeaderSize)
	}
	r := newReader(data)
	h := telem.Header{
		PacketFormat:     r.u16(),
		GameYear:         r.u8(),
		GameMajorVersion: r.u8(),
		GameMinorVersion: r.u8(),
		PacketVersion:    r.u8(),
		PacketID:         telem.PacketID(r.u8()),
		SessionUID:       r.u64(),
		SessionTime:      r.f32(),
		FrameIdentifier:  r.u32(),
		OverallFrame:     r.u32(),
		PlayerCarIndex:   r.u8(),
	}
	h.SecondaryPlayerCarIndex = r.u8()
	return h, nil
}

// Decode validates one raw datagram and produces a typed packet or a
// DecodeError naming the rejection reason. Families the registry knows but
// does not interpret come back with a nil payload; the caller counts them
// and drops them without treating it as a failure.
func (d *Decoder) Decode(raw telem.RawDatagram) (*telem.Packet, error) {
	h, derr := DecodeHeader(raw.Data)
	if derr != nil {
		return nil, derr
	}

	e, derr := d.reg.Lookup(h.PacketFormat, h.PacketID)
	if derr != nil {
		return nil, derr
	}

	// The declared size is a lower bound: a shorter datagram is truncated or
	// corrupt, a longer one carries trailing fields this engine ignores.
	if len(raw.Data) < e.size {
		return nil, decodeErrf(ReasonSizeMismatch, "%s: declared %d bytes, datagram %d", h.PacketID, e.size, len(raw.Data))
	}

	pkt := &telem.Packet{Header: h, ReceivedAt: raw.ReceivedAt}
	if e.decode == nil {
		return pkt, nil
	}

	r := newReader(raw.Data[:e.size])
	r.seek(telem.HeaderSize)
	payload, err := e.decode(r, h.PacketFormat)
	if err != nil {
		return nil, err
	}
	if r.overflow {
		// Should be unreachable given the size check; kept so a bad table
		// entry rejects instead of producing a half-read payload.
		return nil, decodeErrf(ReasonSizeMismatch, "%s: payload overran declared size %d", h.PacketID, e.size)
	}
	pkt.Payload = payload
	return pkt, nil
}

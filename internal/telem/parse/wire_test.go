package parse

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/hawkeye-data/grid.report/internal/telem"
)

// wire builds synthetic datagrams for decoder tests: a little-endian cursor
// over a zeroed buffer of the declared packet size, mirroring the reader.
type wire struct {
	buf []byte
	off int
}

func newWire(size int) *wire { return &wire{buf: make([]byte, size)} }

func (w *wire) u8(v uint8) { w.buf[w.off] = v; w.off++ }

func (w *wire) i8(v int8) { w.u8(uint8(v)) }

func (w *wire) bool8(v bool) {
	if v {
		w.u8(1)
	} else {
		w.u8(0)
	}
}

func (w *wire) u16(v uint16) {
	binary.LittleEndian.PutUint16(w.buf[w.off:], v)
	w.off += 2
}

func (w *wire) i16(v int16) { w.u16(uint16(v)) }

func (w *wire) u32(v uint32) {
	binary.LittleEndian.PutUint32(w.buf[w.off:], v)
	w.off += 4
}

func (w *wire) u64(v uint64) {
	binary.LittleEndian.PutUint64(w.buf[w.off:], v)
	w.off += 8
}

func (w *wire) f32(v float32) { w.u32(math.Float32bits(v)) }

func (w *wire) f64(v float64) { w.u64(math.Float64bits(v)) }

func (w *wire) chars(s string, n int) {
	copy(w.buf[w.off:w.off+n], s)
	w.off += n
}

func (w *wire) seek(off int) { w.off = off }

// header writes the 29-byte fixed header.
func (w *wire) header(format uint16, id telem.PacketID, uid uint64, frame uint32) {
	w.u16(format)
	w.u8(uint8(format % 100)) // game year
	w.u8(1)
	w.u8(4)
	w.u8(1) // packet version
	w.u8(uint8(id))
	w.u64(uid)
	w.f32(float32(frame) / 60)
	w.u32(frame)
	w.u32(frame)
	w.u8(0)   // player car index
	w.u8(255) // secondary player car index
}

// declaredSize resolves the registry's declared size for a (format, id).
func declaredSize(t *testing.T, format uint16, id telem.PacketID) int {
	t.Helper()
	e, derr := NewRegistry().Lookup(format, id)
	if derr != nil {
		t.Fatalf("Lookup(%d, %d): %v", format, id, derr)
	}
	return e.size
}

// newPacketWire allocates a buffer of the declared size with the header
// already written.
func newPacketWire(t *testing.T, format uint16, id telem.PacketID) *wire {
	t.Helper()
	w := newWire(declaredSize(t, format, id))
	w.header(format, id, 0xDEADBEEF, 100)
	return w
}

func decodeOne(t *testing.T, data []byte) *telem.Packet {
	t.Helper()
	pkt, err := NewDecoder(NewRegistry()).Decode(telem.RawDatagram{Data: data})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return pkt
}

package parse

import (
	"encoding/binary"
	"math"
)

// reader is a bounds-checked little-endian cursor over one datagram. All
// wire fields are little-endian. A read past the end sets the overflow flag
// and returns zero values; the decoder converts the flag into a rejection so
// no datagram, however mangled, can cause an out-of-range access.
type reader struct {
	data     []byte
	off      int
	overflow bool
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

func (r *reader) remaining() int { return len(r.data) - r.off }

// take returns the next n bytes or nil on overflow.
func (r *reader) take(n int) []byte {
	if r.off+n > len(r.data) {
		r.overflow = true
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

// skip advances the cursor without interpreting the bytes. Used to step over
// trailing record fields a format year appends.
func (r *reader) skip(n int) {
	if r.off+n > len(r.data) {
		r.overflow = true
		r.off = len(r.data)
		return
	}
	r.off += n
}

// seek positions the cursor at an absolute offset.
func (r *reader) seek(off int) {
	if off > len(r.data) {
		r.overflow = true
		r.off = len(r.data)
		return
	}
	r.off = off
}

func (r *reader) u8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *reader) i8() int8 { return int8(r.u8()) }

func (r *reader) bool8() bool { return r.u8() == 1 }

func (r *reader) u16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (r *reader) i16() int16 { return int16(r.u16()) }

func (r *reader) u32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *reader) u64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (r *reader) f32() float32 {
	return math.Float32frombits(r.u32())
}

func (r *reader) f64() float64 {
	return math.Float64frombits(r.u64())
}

// chars reads a fixed-width character field and returns the string up to the
// first NUL. Driver names are UTF-8 on the wire.
func (r *reader) chars(n int) string {
	b := r.take(n)
	if b == nil {
		return ""
	}
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

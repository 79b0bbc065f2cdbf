// Package bits implements the CCSDS 121.0-B-2 bit-level accumulator: a
// 64-bit register refilled from a caller-owned byte cursor, with both a
// fast (unchecked) and a slow (suspendable) read path.
package bits

// A Cursor pairs a caller-owned byte slice with a read or write position.
// The decoder never stores a Cursor across calls (see package aec); it is
// handed in and out of each Decode call by the caller.
type Cursor struct {
	Data []byte
	Pos  int
}

// Avail returns the number of unconsumed bytes remaining in the cursor.
func (c *Cursor) Avail() int {
	return len(c.Data) - c.Pos
}

// A Reader is the bit-level accumulator: acc holds up to 64 bits, of
// which the low Bitp are meaningful.
type Reader struct {
	acc  uint64
	bitp uint
}

// Ensure guarantees that at least n meaningful bits are buffered in acc,
// pulling whole bytes from in as needed. It reports false, leaving acc and
// bitp untouched beyond whatever bytes were actually available, if input
// is exhausted before n bits are reached.
func (r *Reader) Ensure(in *Cursor, n uint) bool {
	for r.bitp < n {
		if in.Avail() == 0 {
			return false
		}
		r.acc = r.acc<<8 | uint64(in.Data[in.Pos])
		in.Pos++
		r.bitp += 8
	}
	return true
}

// Peek returns the value of the top n of the Bitp meaningful bits of acc,
// without consuming them. n must be in [0,32]; Peek(0) returns 0.
func (r *Reader) Peek(n uint) uint32 {
	return uint32((r.acc >> (r.bitp - n)) & (1<<n - 1))
}

// Drop consumes n bits previously returned by Peek.
func (r *Reader) Drop(n uint) {
	r.bitp -= n
}

// AlignByte discards whatever partial byte remains buffered at the low end
// of bitp, leaving a byte-aligned bit position. Used only by PAD_RSI at the
// first block of an RSI, before the reference sample is read.
func (r *Reader) AlignByte() {
	r.bitp -= r.bitp % 8
}

// FillAcc refills acc by up to 7 bytes with no bounds checking whatsoever;
// it must only be called once the caller has verified (via in_blklen) that
// enough input remains for the whole block.
func (r *Reader) FillAcc(in *Cursor) {
	b := (63 - r.bitp) >> 3
	for ; b > 0; b-- {
		r.acc = r.acc<<8 | uint64(in.Data[in.Pos])
		in.Pos++
		r.bitp += 8
	}
}

// DirectGet reads n bits from the fast, unchecked path, refilling acc via
// FillAcc if necessary.
func (r *Reader) DirectGet(in *Cursor, n uint) uint32 {
	if r.bitp < n {
		r.FillAcc(in)
	}
	r.bitp -= n
	return uint32((r.acc >> r.bitp) & (1<<n - 1))
}

package bits

import stdbits "math/bits"

// DirectGetFS decodes a fundamental-sequence value -- the count of leading
// zero bits before the first one, which is also consumed -- using an
// unchecked leading-zero-count over acc. Only valid on the fast path, once
// the caller has verified enough input remains for the whole block.
func (r *Reader) DirectGetFS(in *Cursor) uint32 {
	var fs uint32

	r.acc &= 1<<r.bitp - 1
	for r.acc == 0 {
		fs += uint32(r.bitp)
		r.bitp = 0
		r.FillAcc(in)
	}

	lz := uint(stdbits.LeadingZeros64(r.acc))
	fs += uint32(lz) + uint32(r.bitp) - 64
	r.bitp = 63 - lz
	return fs
}

// AskFS is the slow, resumable fundamental-sequence read. It consumes
// buffered bits one at a time, accumulating the zero-run length into fs, so
// that a suspension (input exhausted before the terminating one bit) leaves
// fs holding the partial count for the next call to continue from exactly
// where it left off. On success the terminating one bit is left unconsumed
// at the top of acc; call DropFS to consume it and reset fs.
func (r *Reader) AskFS(in *Cursor, fs *uint32) bool {
	if !r.Ensure(in, 1) {
		return false
	}
	for r.acc&(1<<(r.bitp-1)) == 0 {
		if r.bitp == 1 {
			if in.Avail() == 0 {
				return false
			}
			r.acc = r.acc<<8 | uint64(in.Data[in.Pos])
			in.Pos++
			r.bitp += 8
		}
		(*fs)++
		r.bitp--
	}
	return true
}

// DropFS consumes the terminating one bit of a fundamental sequence read by
// AskFS and resets fs to zero for the next value.
func (r *Reader) DropFS(fs *uint32) {
	*fs = 0
	r.bitp--
}

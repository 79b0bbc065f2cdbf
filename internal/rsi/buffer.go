// Package rsi implements the Reference Sample Interval buffer: a
// fixed-size residual window, its drain-to-output logic, and the
// preprocessor inverse that reconstructs signed/unsigned samples around
// a running predictor.
//
// Grounded on the FLUSH(KIND) macro and check_rsi_end/put_sample in
// _examples/original_source/src/decode.c, generalized from seven
// width/order-specific C functions into one parameterized Go routine.
package rsi

import "github.com/mewkiz/aec/internal/bits"

// Config carries the subset of stream configuration the buffer needs to
// drain residuals to bytes.
type Config struct {
	BytesPerSample int
	BitsPerSample  uint
	Signed         bool
	MSB            bool
	Preprocess     bool
	Xmin           int64
	Xmax           int64
}

// A Buffer holds one Reference Sample Interval's worth of residual words
// and drains them to a caller's output cursor, optionally inverting the
// preprocessor along the way. Only wp and flushPos reset at each RSI
// boundary; the predictor state (lastOut) is carried across Flush calls
// and re-seeded by Flush from the reference sample at the start of each
// RSI when the preprocessor is on.
type Buffer struct {
	cfg      Config
	data     []uint32
	wp       int
	flushPos int
	reserved int
	lastOut  int64
}

// NewBuffer allocates a Buffer sized for one Reference Sample Interval
// (rsi * block_size residual words).
func NewBuffer(cfg Config, rsiSize int) *Buffer {
	return &Buffer{cfg: cfg, data: make([]uint32, rsiSize)}
}

// Cap returns the buffer's fixed RSI-sized capacity.
func (b *Buffer) Cap() int { return len(b.data) }

// Reserved returns the number of output bytes currently reserved for
// residuals that have been admitted but not yet flushed.
func (b *Buffer) Reserved() int { return b.reserved }

// WP returns the current write cursor (rsip - rsi_buffer in decode.c).
func (b *Buffer) WP() int { return b.wp }

// AtRSIStart reports whether the buffer is at the beginning of a fresh
// RSI window, i.e. no block of the current interval has been decoded yet.
func (b *Buffer) AtRSIStart() bool { return b.wp == 0 }

// AtRSIEnd reports whether the buffer has been filled to its RSI-sized
// capacity and should be flushed and reset by the driver.
func (b *Buffer) AtRSIEnd() bool { return b.wp == len(b.data) }

// Get returns the residual word at absolute index i.
func (b *Buffer) Get(i int) uint32 { return b.data[i] }

// Set overwrites the residual word at absolute index i.
func (b *Buffer) Set(i int, v uint32) { b.data[i] = v }

// AddTo adds v to the residual word already stored at absolute index i,
// used by the split-mode tail pass to combine the fs prefix with the k-bit
// tail.
func (b *Buffer) AddTo(i int, v uint32) { b.data[i] += v }

// Overflow reports whether admitting n more residual words would exceed
// the buffer's RSI-sized capacity. Only the zero-block decoder needs this:
// every other mode advances by exactly one block at a time, which is
// always within bounds by construction.
func (b *Buffer) Overflow(n int) bool {
	return len(b.data)-b.wp < n
}

// Reserve checks whether n more residuals can be admitted given the
// output cursor's remaining, not-yet-flushed capacity. On success it
// reserves their eventual output bytes and advances the write cursor by n;
// on failure nothing is mutated and the caller should suspend (EXIT).
//
// This mirrors decode.c's avail_out bookkeeping: admission reserves output
// space immediately, but the physical bytes are written later, at Flush.
func (b *Buffer) Reserve(out *bits.Cursor, n int) bool {
	need := n * b.cfg.BytesPerSample
	if out.Avail()-b.reserved < need {
		return false
	}
	b.reserved += need
	b.wp += n
	return true
}

// ResetRSI rewinds the buffer to the start of a fresh Reference Sample
// Interval. Called by the driver immediately after a successful Flush at
// an RSI boundary.
func (b *Buffer) ResetRSI() {
	b.wp = 0
	b.flushPos = 0
}

// CheckRSIEnd flushes and resets the buffer if admission has just filled
// it to its RSI-sized capacity. Grounded on check_rsi_end in decode.c; the
// driver calls it at exactly the points decode.c calls check_rsi_end, both
// after per-sample admissions and after whole-block bulk admissions.
func (b *Buffer) CheckRSIEnd(out *bits.Cursor) {
	if b.wp == len(b.data) {
		b.Flush(out)
		b.ResetRSI()
	}
}

// Flush drains the residuals in [flushPos, wp) to out, either verbatim
// (preprocessor off) or through the median-adaptive inverse (preprocessor
// on), and advances flushPos to wp. It assumes the caller already reserved
// enough output space for everything being drained (via Reserve), so it
// performs no further capacity checks.
func (b *Buffer) Flush(out *bits.Cursor) {
	end := b.wp
	written := 0

	if b.cfg.Preprocess {
		if b.flushPos == 0 && end > 0 {
			v := int64(b.data[0])
			if b.cfg.Signed {
				v = bits.IntN(uint64(v), b.cfg.BitsPerSample)
			}
			b.lastOut = v
			b.writeSample(out, v)
			written++
			b.flushPos = 1
		}

		data := b.lastOut
		var med int64
		if b.cfg.Signed {
			med = 0
		} else {
			med = (b.cfg.Xmax-b.cfg.Xmin)/2 + 1
		}
		xmin, xmax := b.cfg.Xmin, b.cfg.Xmax

		for i := b.flushPos; i < end; i++ {
			d := int64(b.data[i])
			halfD := (d + 1) >> 1

			if data < med {
				if halfD <= data-xmin {
					if d&1 != 0 {
						data -= halfD
					} else {
						data += halfD
					}
				} else {
					data = xmin + d
				}
			} else {
				if halfD <= xmax-data {
					if d&1 != 0 {
						data -= halfD
					} else {
						data += halfD
					}
				} else {
					data = xmax - d
				}
			}
			b.writeSample(out, data)
			written++
		}
		b.lastOut = data
	} else {
		for i := b.flushPos; i < end; i++ {
			b.writeSample(out, int64(b.data[i]))
			written++
		}
	}

	b.reserved -= written * b.cfg.BytesPerSample
	b.flushPos = end
}

// writeSample packs v into bytesPerSample bytes at out, in the configured
// byte order, and advances out.Pos. Generalized from decode.c's seven
// put_msb_*/put_lsb_* monomorphizations.
func (b *Buffer) writeSample(out *bits.Cursor, v int64) {
	u := uint32(v)
	n := b.cfg.BytesPerSample
	buf := out.Data[out.Pos : out.Pos+n]
	if b.cfg.MSB {
		for i := 0; i < n; i++ {
			buf[i] = byte(u >> uint(8*(n-1-i)))
		}
	} else {
		for i := 0; i < n; i++ {
			buf[i] = byte(u >> uint(8*i))
		}
	}
	out.Pos += n
}

// Package aec implements the CCSDS 121.0-B-2 adaptive entropy decoder,
// including the CCSDS 120.0-G-2 preprocessor inverse.
package aec

import (
	"github.com/mewkiz/aec/internal/bits"
	"github.com/mewkiz/aec/internal/fsm"
	"github.com/mewkiz/aec/internal/rsi"
	"github.com/mewkiz/pkg/errutil"
)

// Cursor pairs a caller-owned byte slice with a read or write position. A
// Stream never stores a Cursor across Decode calls; it is handed in and out
// every time, so callers can grow, shrink, or reuse the backing slice
// between calls.
type Cursor = bits.Cursor

// A Stream is CCSDS 121.0-B-2 decoder state for one configured bitstream.
// It is not safe for concurrent use from multiple goroutines.
type Stream struct {
	cfg derived
	fsm *fsm.State
	buf *rsi.Buffer
}

// New validates cfg and returns a Stream ready to Decode.
func New(cfg Config) (*Stream, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := cfg.derive()

	rsiSize := int(cfg.RSI) * int(cfg.BlockSize)
	buf := rsi.NewBuffer(rsi.Config{
		BytesPerSample: d.bytesPerSample,
		BitsPerSample:  uint(cfg.BitsPerSample),
		Signed:         cfg.Flags.Has(FlagSigned),
		MSB:            cfg.Flags.Has(FlagMSB),
		Preprocess:     cfg.Flags.Has(FlagPreprocess),
		Xmin:           d.xmin,
		Xmax:           d.xmax,
	}, rsiSize)

	state := fsm.New(fsm.Config{
		BlockSize:      int(cfg.BlockSize),
		RSIBlocks:      int(cfg.RSI),
		BitsPerSample:  uint(cfg.BitsPerSample),
		IDLen:          d.idLen,
		BytesPerSample: d.bytesPerSample,
		InBlkLen:       d.inBlkLen,
		OutBlkLen:      d.outBlkLen,
		Preprocess:     cfg.Flags.Has(FlagPreprocess),
		PadRSI:         cfg.Flags.Has(FlagPadRSI),
	})

	return &Stream{cfg: d, fsm: state, buf: buf}, nil
}

// Decode consumes as much of in as it can, including bytes of a block that
// is not yet complete (its progress is kept in the Stream), and writes the
// reconstructed samples to out, suspending cleanly (returning nil) when
// either cursor runs out of room -- the caller resumes by calling Decode
// again with the same Stream and cursors advanced by whatever was consumed
// or produced. Every call drains whatever residuals are already admitted
// to the current Reference Sample Interval, even if the interval is not
// yet full and out has room to spare, matching aec_decode's unconditional
// flush_output call in decode.c. flush is advisory only, kept for API
// symmetry with that reference signature; it does not gate whether
// Decode flushes.
//
// Decode returns a non-nil error, wrapping ErrData, only when the
// bitstream itself is invalid.
func (s *Stream) Decode(in, out *Cursor, flush bool) error {
	st := s.fsm.Run(in, out, s.buf)
	switch st {
	case fsm.Error:
		return errutil.Err(ErrData)
	case fsm.Exit:
		s.buf.Flush(out)
		return nil
	default:
		// fsm.Run only returns once it has reached Exit or Error.
		return errutil.Err(ErrData)
	}
}

// End releases the Stream's buffers. Go's garbage collector reclaims the
// memory regardless; End exists for API symmetry with the CCSDS reference
// lifecycle (aec_decode_init/aec_decode_end) and so callers that are used
// to a Close-shaped API have one to call.
func (s *Stream) End() {
	s.fsm = nil
	s.buf = nil
}

// BufferDecode is a one-shot convenience wrapper around New and Decode for
// callers that already hold the whole input and output in memory: it
// decodes input into output, flushing at the end, and returns the number of
// output bytes written.
func BufferDecode(cfg Config, input, output []byte) (n int, err error) {
	s, err := New(cfg)
	if err != nil {
		return 0, err
	}
	in := &Cursor{Data: input}
	out := &Cursor{Data: output}
	if err := s.Decode(in, out, true); err != nil {
		return 0, err
	}
	return out.Pos, nil
}

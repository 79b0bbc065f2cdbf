package fsm

import (
	"github.com/mewkiz/aec/internal/bits"
	"github.com/mewkiz/aec/internal/block"
	"github.com/mewkiz/aec/internal/rsi"
)

// stepZeroBlock decodes a zero-block run: a single fundamental-sequence
// value names a run of all-zero blocks, with the ROS escape capping overlong
// runs at whatever remains of the current 64-block counter or RSI. Grounded
// on m_zero_block in decode.c; the ROS/off-by-one normalization itself lives
// in block.ZeroRunLength.
func (s *State) stepZeroBlock(in, out *bits.Cursor, buf *rsi.Buffer) Status {
	if !s.br.AskFS(in, &s.fs) {
		return Exit
	}
	fs := s.fs
	s.br.DropFS(&s.fs)

	blockIndex := buf.WP() / s.cfg.BlockSize
	rsiRemaining := s.cfg.RSIBlocks - blockIndex
	zeroBlocks := block.ZeroRunLength(fs, blockIndex, rsiRemaining)

	n := zeroBlocks * s.cfg.BlockSize
	if s.ref == 1 {
		n--
	}

	if buf.Overflow(n) {
		return Error
	}

	if out.Avail()-buf.Reserved() >= n*s.cfg.BytesPerSample {
		start := buf.WP()
		buf.Reserve(out, n)
		for i := 0; i < n; i++ {
			buf.Set(start+i, 0)
		}
		buf.CheckRSIEnd(out)
		s.node = nodeID
		return Continue
	}

	s.i = n
	s.node = nodeZeroOutput
	return Continue
}

// stepZeroOutput drains a zero-block run one sample at a time when there
// was not enough output space to admit it all at once. Grounded on
// m_zero_output in decode.c.
func (s *State) stepZeroOutput(out *bits.Cursor, buf *rsi.Buffer) Status {
	for s.i > 0 {
		if !buf.Reserve(out, 1) {
			return Exit
		}
		buf.Set(buf.WP()-1, 0)
		buf.CheckRSIEnd(out)
		s.i--
	}
	s.node = nodeID
	return Continue
}

package fsm

import (
	"github.com/mewkiz/aec/internal/bits"
	"github.com/mewkiz/aec/internal/rsi"
)

// stepUncomp decodes an uncompressed block: block_size raw
// bits_per_sample-wide samples, no entropy coding at all. Grounded on
// m_uncomp in decode.c.
func (s *State) stepUncomp(in, out *bits.Cursor, buf *rsi.Buffer) Status {
	if s.bufferSpace(in, out, buf) {
		start := buf.WP()
		if !buf.Reserve(out, s.cfg.BlockSize) {
			return Exit
		}
		for i := 0; i < s.cfg.BlockSize; i++ {
			buf.Set(start+i, s.br.DirectGet(in, s.cfg.BitsPerSample))
		}
		buf.CheckRSIEnd(out)
		s.node = nodeID
		return Continue
	}

	s.i = s.cfg.BlockSize
	s.node = nodeUncompCopy
	return Continue
}

// stepUncompCopy is the slow, resumable counterpart to stepUncomp, copying
// one sample at a time via the shared copySample helper. Grounded on
// m_uncomp_copy in decode.c.
func (s *State) stepUncompCopy(in, out *bits.Cursor, buf *rsi.Buffer) Status {
	for s.i > 0 {
		if !s.copySample(in, out, buf) {
			return Exit
		}
		s.i--
	}
	s.node = nodeID
	return Continue
}

package fsm

import (
	"github.com/mewkiz/aec/internal/bits"
	"github.com/mewkiz/aec/internal/rsi"
)

// stepSE decodes a second-extension block: pairs of residuals are recovered
// two at a time from one fundamental-sequence value via the se table. Any
// reference sample for this block was already admitted by
// stepLowEntropyRef, so ref only affects how many pairs remain to decode.
// Grounded on m_se in decode.c.
func (s *State) stepSE(in, out *bits.Cursor, buf *rsi.Buffer) Status {
	if s.bufferSpace(in, out, buf) {
		i := s.ref
		for i < s.cfg.BlockSize {
			m := s.br.DirectGetFS(in)
			first, second := s.se.Invert(m)
			if i&1 == 0 {
				buf.Reserve(out, 1)
				buf.Set(buf.WP()-1, uint32(first))
				buf.CheckRSIEnd(out)
				i++
			}
			buf.Reserve(out, 1)
			buf.Set(buf.WP()-1, uint32(second))
			buf.CheckRSIEnd(out)
			i++
		}
		s.node = nodeID
		return Continue
	}

	s.i = s.ref
	s.node = nodeSEDecode
	return Continue
}

// stepSEDecode is the slow, resumable counterpart to stepSE, admitting one
// sample at a time so a suspension between the two halves of a pair can
// resume without re-decoding the fundamental-sequence value. Grounded on
// m_se_decode in decode.c.
func (s *State) stepSEDecode(in, out *bits.Cursor, buf *rsi.Buffer) Status {
	for s.i < s.cfg.BlockSize {
		if !s.br.AskFS(in, &s.fs) {
			return Exit
		}
		first, second := s.se.Invert(s.fs)

		if s.i&1 == 0 {
			if !buf.Reserve(out, 1) {
				return Exit
			}
			buf.Set(buf.WP()-1, uint32(first))
			buf.CheckRSIEnd(out)
			s.i++
		}

		if !buf.Reserve(out, 1) {
			return Exit
		}
		buf.Set(buf.WP()-1, uint32(second))
		buf.CheckRSIEnd(out)
		s.i++
		s.br.DropFS(&s.fs)
	}
	s.node = nodeID
	return Continue
}

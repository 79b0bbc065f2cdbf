package fsm

import (
	"github.com/mewkiz/aec/internal/bits"
	"github.com/mewkiz/aec/internal/rsi"
)

// stepLowEntropy reads the single bit distinguishing second-extension
// coding (id bit 1) from a zero-block run (id bit 0) inside a low-entropy
// block. Grounded on m_low_entropy in decode.c.
func (s *State) stepLowEntropy(in *bits.Cursor) Status {
	if !s.br.Ensure(in, 1) {
		return Exit
	}
	s.id = s.br.Peek(1)
	s.br.Drop(1)
	s.node = nodeLowEntropyRef
	return Continue
}

// stepLowEntropyRef admits this block's reference sample, if any, before
// dispatching to the second-extension or zero-block decoder. Grounded on
// m_low_entropy_ref in decode.c.
func (s *State) stepLowEntropyRef(in, out *bits.Cursor, buf *rsi.Buffer) Status {
	if s.ref == 1 {
		if !s.copySample(in, out, buf) {
			return Exit
		}
	}
	if s.id == 1 {
		s.node = nodeSE
	} else {
		s.node = nodeZeroBlock
	}
	return Continue
}

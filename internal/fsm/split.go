package fsm

import (
	"github.com/mewkiz/aec/internal/bits"
	"github.com/mewkiz/aec/internal/rsi"
)

// stepSplit decodes a split-sample block: each residual is the sum of a
// fundamental-sequence high part and a k-bit low part, k = id-1. The fast
// path reads every high part of the block, then every low part, without
// checks; the slow path splits the work across two resumable sub-states
// (stepSplitFS, stepSplitOutput) so a
// suspension mid-block can resume cleanly. Grounded on m_split in decode.c.
func (s *State) stepSplit(in, out *bits.Cursor, buf *rsi.Buffer) Status {
	k := uint(s.id - 1)

	if s.bufferSpace(in, out, buf) {
		start := buf.WP()
		if !buf.Reserve(out, s.cfg.BlockSize) {
			return Exit
		}
		idx := start
		if s.ref == 1 {
			buf.Set(idx, s.br.DirectGet(in, s.cfg.BitsPerSample))
			idx++
		}
		fsStart := idx
		end := start + s.cfg.BlockSize
		for i := fsStart; i < end; i++ {
			buf.Set(i, s.br.DirectGetFS(in)<<k)
		}
		for i := fsStart; i < end; i++ {
			buf.AddTo(i, s.br.DirectGet(in, k))
		}
		buf.CheckRSIEnd(out)
		s.node = nodeID
		return Continue
	}

	if s.ref == 1 {
		if !s.copySample(in, out, buf) {
			return Exit
		}
		s.n = s.cfg.BlockSize - 1
	} else {
		s.n = s.cfg.BlockSize
	}
	s.i = 0
	s.base = buf.WP()
	s.node = nodeSplitFS
	return Continue
}

// stepSplitFS reads the n fundamental-sequence prefixes of a split-sample
// block's slow path, storing each fs<<k directly into the not-yet-admitted
// slots starting at base, without advancing the buffer's write cursor --
// admission happens afterward, in stepSplitOutput, exactly as decode.c's
// m_split_fs fills rsip[i] ahead of rsip itself advancing.
func (s *State) stepSplitFS(in *bits.Cursor, buf *rsi.Buffer) Status {
	k := uint(s.id - 1)
	for s.i < s.n {
		if !s.br.AskFS(in, &s.fs) {
			return Exit
		}
		buf.Set(s.base+s.i, s.fs<<k)
		s.br.DropFS(&s.fs)
		s.i++
	}
	s.i = 0
	s.node = nodeSplitOutput
	return Continue
}

// stepSplitOutput reads the k-bit low part of each of the n residuals
// prepared by stepSplitFS, adds it in, and admits the sample to the RSI
// buffer one at a time. Grounded on m_split_output in decode.c.
func (s *State) stepSplitOutput(in, out *bits.Cursor, buf *rsi.Buffer) Status {
	k := uint(s.id - 1)
	for s.i < s.n {
		if !s.br.Ensure(in, k) {
			return Exit
		}
		if !buf.Reserve(out, 1) {
			return Exit
		}
		v := s.br.Peek(k)
		s.br.Drop(k)
		buf.AddTo(s.base+s.i, v)
		s.i++
	}
	buf.CheckRSIEnd(out)
	s.node = nodeID
	return Continue
}

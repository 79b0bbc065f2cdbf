// Package fsm implements the block-mode decode driver: a tagged-variant
// replacement for a function-pointer-per-state table, dispatching across
// block modes and suspending/resuming transparently on buffer exhaustion.
package fsm

import (
	"github.com/mewkiz/aec/internal/bits"
	"github.com/mewkiz/aec/internal/block"
	"github.com/mewkiz/aec/internal/rsi"
)

// Status is the outcome of one Step: whether the driver should dispatch
// again immediately, return control to the caller (not an error), or abort
// with a stream error.
type Status int

const (
	// Continue means the driver should invoke Step again immediately.
	Continue Status = iota
	// Exit means input or output space ran out; not an error. The driver
	// flushes whatever is ready and returns control to the caller.
	Exit
	// Error means the stream violates an invariant (e.g. a zero-block run
	// that would overflow the RSI buffer).
	Error
)

// node identifies the state machine's current handler, replacing
// decode.c's int (*mode)(struct aec_stream *) function pointer with an
// explicit tag so resumption state is visible and the fast paths can be
// dispatched without an indirect call.
type node uint8

const (
	nodeID node = iota
	nodeLowEntropy
	nodeLowEntropyRef
	nodeSplit
	nodeSplitFS
	nodeSplitOutput
	nodeZeroBlock
	nodeZeroOutput
	nodeSE
	nodeSEDecode
	nodeUncomp
	nodeUncompCopy
)

// Config carries the subset of derived stream configuration the driver
// needs. It is immutable for the lifetime of a State.
type Config struct {
	BlockSize      int
	RSIBlocks      int
	BitsPerSample  uint
	IDLen          uint
	BytesPerSample int
	InBlkLen       int
	OutBlkLen      int
	Preprocess     bool
	PadRSI         bool
}

// State is the complete resumable decode state for one block's worth of
// the finite-state machine: the current node, the block-mode id, whether
// this block carries a reference sample, and the intra-block scratch
// counters (i, n) that must survive a suspension.
type State struct {
	cfg Config
	br  bits.Reader
	se  block.SETable

	node node
	id   uint32
	ref  int
	i, n int
	base int
	fs   uint32
}

// New creates driver state positioned at the start of a block-mode id
// read, the entry point of every block.
func New(cfg Config) *State {
	return &State{cfg: cfg, se: block.BuildSETable(), node: nodeID}
}

// Run repeatedly steps the state machine until it suspends (Exit), hits a
// stream error, or -- never, in practice, since every terminal in-block
// path returns to nodeID -- runs forever.
func (s *State) Run(in, out *bits.Cursor, buf *rsi.Buffer) Status {
	for {
		st := s.step(in, out, buf)
		if st != Continue {
			return st
		}
	}
}

func (s *State) step(in, out *bits.Cursor, buf *rsi.Buffer) Status {
	switch s.node {
	case nodeID:
		return s.stepID(in, out, buf)
	case nodeLowEntropy:
		return s.stepLowEntropy(in)
	case nodeLowEntropyRef:
		return s.stepLowEntropyRef(in, out, buf)
	case nodeSplit:
		return s.stepSplit(in, out, buf)
	case nodeSplitFS:
		return s.stepSplitFS(in, buf)
	case nodeSplitOutput:
		return s.stepSplitOutput(in, out, buf)
	case nodeZeroBlock:
		return s.stepZeroBlock(in, out, buf)
	case nodeZeroOutput:
		return s.stepZeroOutput(out, buf)
	case nodeSE:
		return s.stepSE(in, out, buf)
	case nodeSEDecode:
		return s.stepSEDecode(in, out, buf)
	case nodeUncomp:
		return s.stepUncomp(in, out, buf)
	case nodeUncompCopy:
		return s.stepUncompCopy(in, out, buf)
	default:
		return Error
	}
}

// bufferSpace reports whether both the input and output cursors currently
// hold enough room for a whole block to be decoded via the fast path,
// mirroring the BUFFERSPACE macro in decode.c.
func (s *State) bufferSpace(in, out *bits.Cursor, buf *rsi.Buffer) bool {
	return in.Avail() >= s.cfg.InBlkLen && out.Avail()-buf.Reserved() >= s.cfg.OutBlkLen
}

func idToNode(id uint32, idLen uint) node {
	switch {
	case id == 0:
		return nodeLowEntropy
	case id == uint32(1)<<idLen-1:
		return nodeUncomp
	default:
		return nodeSplit
	}
}

// stepID reads the id_len-bit block mode identifier and dispatches to the
// matching decoder. It also determines whether this block carries a
// reference sample (first block of an RSI, preprocessor on) and applies
// PAD_RSI byte alignment before that reference sample is read.
//
// Grounded on m_id in decode.c.
func (s *State) stepID(in, out *bits.Cursor, buf *rsi.Buffer) Status {
	if s.cfg.Preprocess && buf.AtRSIStart() {
		s.ref = 1
		if s.cfg.PadRSI {
			s.br.AlignByte()
		}
	} else {
		s.ref = 0
	}

	if !s.br.Ensure(in, s.cfg.IDLen) {
		return Exit
	}
	s.id = s.br.Peek(s.cfg.IDLen)
	s.br.Drop(s.cfg.IDLen)
	s.node = idToNode(s.id, s.cfg.IDLen)
	return Continue
}

// copySample reads one raw bits_per_sample-wide sample from in and admits
// it to buf, used by the uncompressed decoder and by every mode's
// reference-sample read. Grounded on copysample in decode.c.
func (s *State) copySample(in, out *bits.Cursor, buf *rsi.Buffer) bool {
	if !s.br.Ensure(in, s.cfg.BitsPerSample) {
		return false
	}
	if !buf.Reserve(out, 1) {
		return false
	}
	v := s.br.Peek(s.cfg.BitsPerSample)
	s.br.Drop(s.cfg.BitsPerSample)
	buf.Set(buf.WP()-1, v)
	buf.CheckRSIEnd(out)
	return true
}

package aec

import "testing"

// bitWriter packs bits MSB-first into a byte slice, the same convention the
// decoder's accumulator consumes. It exists purely to build test fixtures.
type bitWriter struct {
	buf   byte
	nbits uint
	out   []byte
}

func (w *bitWriter) writeBits(v uint32, n uint) {
	for i := int(n) - 1; i >= 0; i-- {
		w.buf = w.buf<<1 | byte((v>>uint(i))&1)
		w.nbits++
		if w.nbits == 8 {
			w.out = append(w.out, w.buf)
			w.buf, w.nbits = 0, 0
		}
	}
}

func (w *bitWriter) writeUnary(fs uint32) {
	for i := uint32(0); i < fs; i++ {
		w.writeBits(0, 1)
	}
	w.writeBits(1, 1)
}

func (w *bitWriter) bytes() []byte {
	if w.nbits > 0 {
		w.buf <<= 8 - w.nbits
		w.out = append(w.out, w.buf)
		w.buf, w.nbits = 0, 0
	}
	return w.out
}

func TestBufferDecodeUncompressedRoundTrip(t *testing.T) {
	cfg := Config{BitsPerSample: 8, BlockSize: 8, RSI: 1}

	w := &bitWriter{}
	w.writeBits(7, 3) // id = 7: uncompressed
	for v := uint32(1); v <= 8; v++ {
		w.writeBits(v, 8)
	}

	out := make([]byte, 8)
	n, err := BufferDecode(cfg, w.bytes(), out)
	if err != nil {
		t.Fatalf("BufferDecode failed: %v", err)
	}
	if n != 8 {
		t.Fatalf("n = %d, want 8", n)
	}
	for i, got := range out {
		if got != byte(i+1) {
			t.Errorf("out[%d] = %d, want %d", i, got, i+1)
		}
	}
}

func TestBufferDecodePreprocessZeroResidualPlateau(t *testing.T) {
	cfg := Config{
		BitsPerSample: 8,
		BlockSize:     8,
		RSI:           1,
		Flags:         FlagSigned | FlagPreprocess,
	}

	w := &bitWriter{}
	w.writeBits(1, 3)  // id = 1: split, k = 0
	w.writeBits(10, 8) // reference sample = 10
	for i := 0; i < 7; i++ {
		w.writeUnary(0) // zero residual: fs = 0
	}

	out := make([]byte, 8)
	n, err := BufferDecode(cfg, w.bytes(), out)
	if err != nil {
		t.Fatalf("BufferDecode failed: %v", err)
	}
	if n != 8 {
		t.Fatalf("n = %d, want 8", n)
	}
	for i, got := range out {
		if int8(got) != 10 {
			t.Errorf("out[%d] = %d, want 10", i, int8(got))
		}
	}
}

func TestBufferDecodeSplitTriangleRoundTrip(t *testing.T) {
	cfg := Config{BitsPerSample: 8, BlockSize: 8, RSI: 1}

	w := &bitWriter{}
	w.writeBits(1, 3) // id = 1: split, k = 0, no reference sample (no preprocess)
	for v := uint32(0); v < 8; v++ {
		w.writeUnary(v)
	}

	out := make([]byte, 8)
	n, err := BufferDecode(cfg, w.bytes(), out)
	if err != nil {
		t.Fatalf("BufferDecode failed: %v", err)
	}
	if n != 8 {
		t.Fatalf("n = %d, want 8", n)
	}
	for i, got := range out {
		if got != byte(i) {
			t.Errorf("out[%d] = %d, want %d", i, got, i)
		}
	}
}

func TestBufferDecodeZeroBlockROS(t *testing.T) {
	cfg := Config{BitsPerSample: 8, BlockSize: 8, RSI: 10}

	w := &bitWriter{}
	w.writeBits(0, 3) // id = 0: low entropy
	w.writeBits(0, 1) // zero block
	w.writeUnary(4)   // fs = 4 -> ROS escape, capped at the 10-block RSI

	out := make([]byte, 80)
	n, err := BufferDecode(cfg, w.bytes(), out)
	if err != nil {
		t.Fatalf("BufferDecode failed: %v", err)
	}
	if n != 80 {
		t.Fatalf("n = %d, want 80", n)
	}
	for i, got := range out {
		if got != 0 {
			t.Errorf("out[%d] = %d, want 0", i, got)
		}
	}
}

func TestBufferDecodeSecondExtensionAllZero(t *testing.T) {
	cfg := Config{BitsPerSample: 8, BlockSize: 8, RSI: 1}

	w := &bitWriter{}
	w.writeBits(0, 3) // id = 0: low entropy
	w.writeBits(1, 1) // second extension
	for i := 0; i < 4; i++ {
		w.writeUnary(0)
	}

	out := make([]byte, 8)
	n, err := BufferDecode(cfg, w.bytes(), out)
	if err != nil {
		t.Fatalf("BufferDecode failed: %v", err)
	}
	if n != 8 {
		t.Fatalf("n = %d, want 8", n)
	}
	for i, got := range out {
		if got != 0 {
			t.Errorf("out[%d] = %d, want 0", i, got)
		}
	}
}

func TestDecodeSuspendsAndResumesByteAtATime(t *testing.T) {
	cfg := Config{BitsPerSample: 8, BlockSize: 8, RSI: 1}

	w := &bitWriter{}
	w.writeBits(7, 3)
	for v := uint32(1); v <= 8; v++ {
		w.writeBits(v, 8)
	}
	frame := w.bytes()

	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	in := &Cursor{}
	out := &Cursor{Data: make([]byte, 8)}

	for i := 1; i <= len(frame); i++ {
		in.Data = frame[:i]
		flush := i == len(frame)
		if err := s.Decode(in, out, flush); err != nil {
			t.Fatalf("Decode failed feeding %d bytes: %v", i, err)
		}
	}

	if out.Pos != 8 {
		t.Fatalf("out.Pos = %d, want 8", out.Pos)
	}
	for i, got := range out.Data {
		if got != byte(i+1) {
			t.Errorf("out.Data[%d] = %d, want %d", i, got, i+1)
		}
	}
}

func TestDecodeFlushesPartialRSIRegardlessOfFlushParam(t *testing.T) {
	// RSI=2 means a full Reference Sample Interval is 16 samples (two
	// 8-sample blocks), but the input below encodes only the first block.
	// A streaming caller that hasn't seen true end-of-input yet (flush =
	// false) must still see those 8 samples drained on this call, rather
	// than waiting for the RSI to fill or for flush to be set.
	cfg := Config{BitsPerSample: 8, BlockSize: 8, RSI: 2}

	w := &bitWriter{}
	w.writeBits(7, 3) // id = 7: uncompressed
	for v := uint32(1); v <= 8; v++ {
		w.writeBits(v, 8)
	}
	frame := w.bytes()

	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	in := &Cursor{Data: frame}
	out := &Cursor{Data: make([]byte, 16)}

	if err := s.Decode(in, out, false); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if out.Pos != 8 {
		t.Fatalf("out.Pos = %d, want 8 (first block flushed without flush=true or a full RSI)", out.Pos)
	}
	for i := 0; i < 8; i++ {
		if got := out.Data[i]; got != byte(i+1) {
			t.Errorf("out.Data[%d] = %d, want %d", i, got, i+1)
		}
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(Config{BitsPerSample: 0, BlockSize: 16, RSI: 1})
	if err == nil {
		t.Fatalf("New with an invalid config should have failed")
	}
}

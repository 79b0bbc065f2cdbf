package bits

import "testing"

func TestAskFSDropFS(t *testing.T) {
	// Fundamental-sequence code for 3: three zero bits then a one bit,
	// followed by a second code for 0 (a lone one bit), all packed MSB
	// first: 0001 1000.
	in := &Cursor{Data: []byte{0b0001_1000}}
	var r Reader
	var fs uint32

	if !r.AskFS(in, &fs) {
		t.Fatalf("AskFS failed")
	}
	if fs != 3 {
		t.Fatalf("fs = %d, want 3", fs)
	}
	r.DropFS(&fs)
	if fs != 0 {
		t.Fatalf("fs not reset after DropFS, got %d", fs)
	}

	if !r.AskFS(in, &fs) {
		t.Fatalf("second AskFS failed")
	}
	if fs != 0 {
		t.Fatalf("second fs = %d, want 0", fs)
	}
	r.DropFS(&fs)
}

func TestAskFSResumable(t *testing.T) {
	// A fundamental-sequence code of 10 split across two single-byte
	// feeds: AskFS must suspend cleanly and resume with the partial count
	// preserved.
	in := &Cursor{Data: []byte{0x00}}
	var r Reader
	var fs uint32

	if r.AskFS(in, &fs) {
		t.Fatalf("AskFS succeeded with no terminating one bit available")
	}
	if fs != 7 {
		t.Fatalf("partial fs after suspension = %d, want 7", fs)
	}

	in.Data = append(in.Data, 0b0010_0000)
	if !r.AskFS(in, &fs) {
		t.Fatalf("AskFS failed to resume")
	}
	if fs != 10 {
		t.Fatalf("resumed fs = %d, want 10", fs)
	}
	r.DropFS(&fs)
}

func TestDirectGetFS(t *testing.T) {
	// 7 leading zero bits then a one bit, then padding so FillAcc never
	// over-reads: 0000 0001 0000 0000 ...
	in := &Cursor{Data: []byte{0b0000_0001, 0, 0, 0, 0, 0, 0}}
	var r Reader
	fs := r.DirectGetFS(in)
	if fs != 7 {
		t.Fatalf("DirectGetFS = %d, want 7", fs)
	}
}

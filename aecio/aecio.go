// Package aecio adapts the cursor-based aec.Stream API to a plain
// io.Reader, absorbing the chunking and buffer growth a streaming caller
// needs but the core decoder deliberately leaves to the caller.
package aecio

import (
	"io"

	"github.com/mewkiz/aec"
	"github.com/mewkiz/pkg/errutil"
)

const defaultBufSize = 32 * 1024

// A Decoder reads a CCSDS 121.0-B-2 bitstream from an underlying io.Reader
// and produces decoded samples on demand through Read, implementing
// io.Reader. It is not safe for concurrent use.
type Decoder struct {
	r   io.Reader
	str *aec.Stream

	in    aec.Cursor
	out   aec.Cursor
	inEOF bool
}

// NewDecoder returns a Decoder reading CCSDS-encoded bytes from r according
// to cfg.
func NewDecoder(r io.Reader, cfg aec.Config) (*Decoder, error) {
	str, err := aec.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Decoder{
		r:   r,
		str: str,
		in:  aec.Cursor{Data: make([]byte, 0, defaultBufSize)},
		out: aec.Cursor{Data: make([]byte, defaultBufSize)},
	}, nil
}

// Read fills p with decoded sample bytes, pulling and buffering more
// compressed input from the underlying reader as needed. It returns
// io.EOF once the underlying reader is exhausted and every admitted
// residual has been flushed.
func (d *Decoder) Read(p []byte) (int, error) {
	for {
		if d.out.Pos > 0 {
			n := copy(p, d.out.Data[:d.out.Pos])
			d.shiftOut(n)
			if n > 0 {
				return n, nil
			}
		}

		if err := d.fill(); err != nil {
			return 0, err
		}

		d.out.Pos = 0
		if err := d.str.Decode(&d.in, &d.out, d.inEOF); err != nil {
			return 0, errutil.Err(err)
		}
		d.compactIn()

		if d.out.Pos == 0 && d.inEOF {
			return 0, io.EOF
		}
	}
}

// fill reads more compressed bytes from the underlying reader into d.in
// when it is not already at EOF and has room (or needs more) to grow.
func (d *Decoder) fill() error {
	if d.inEOF {
		return nil
	}
	if len(d.in.Data) == cap(d.in.Data) {
		grown := make([]byte, len(d.in.Data), cap(d.in.Data)*2)
		copy(grown, d.in.Data)
		d.in.Data = grown
	}
	free := d.in.Data[len(d.in.Data):cap(d.in.Data)]
	n, err := d.r.Read(free)
	d.in.Data = d.in.Data[:len(d.in.Data)+n]
	if err == io.EOF {
		d.inEOF = true
		return nil
	}
	if err != nil {
		return errutil.Err(err)
	}
	return nil
}

// compactIn discards the bytes already consumed from d.in, so the buffer
// doesn't grow without bound across many Read calls.
func (d *Decoder) compactIn() {
	if d.in.Pos == 0 {
		return
	}
	n := copy(d.in.Data, d.in.Data[d.in.Pos:])
	d.in.Data = d.in.Data[:n]
	d.in.Pos = 0
}

// shiftOut removes the first n already-copied-out bytes from d.out.
func (d *Decoder) shiftOut(n int) {
	rest := copy(d.out.Data, d.out.Data[n:d.out.Pos])
	d.out.Pos = rest
}

package aec

import "errors"

// ErrConfig is returned, wrapped through errutil.Err, when a Config fails
// Validate or is otherwise unusable to construct a Stream.
var ErrConfig = errors.New("aec: invalid configuration")

// ErrData is returned, wrapped through errutil.Err, when the bitstream
// violates a decoding invariant, such as a zero-block run overflowing its
// Reference Sample Interval.
var ErrData = errors.New("aec: corrupt stream")

// Package block implements the pure, stateless arithmetic shared by the
// per-mode block decoders: the second-extension inverse table and the
// zero-block run-length normalization (including the ROS escape). The
// resumable bit-level reads themselves live in package
// fsm, which drives these helpers alongside internal/bits and internal/rsi.
package block

// SETable is the precomputed second-extension inverse map: 91 (i, ms)
// pairs arranged as 13 triangular rows, indexed by the fundamental-
// sequence value m of an encoded pair.
type SETable [91][2]int32

// BuildSETable constructs the second-extension inverse table, grounded
// directly on create_se_table in decode.c: row i (0..12) contributes i+1
// entries, each pair's first element is the row index and second is the
// row's starting k (ms), matching the standard gamma-function triangular
// map used by second-extension option coding.
func BuildSETable() SETable {
	var t SETable
	k := 0
	for i := 0; i <= 12; i++ {
		ms := k
		for j := 0; j <= i; j++ {
			t[k][0] = int32(i)
			t[k][1] = int32(ms)
			k++
		}
	}
	return t
}

// Invert decodes one second-extension-coded pair given its fundamental
// sequence value m, returning the two samples (first, second) in emission
// order: first = se_table[2m] - d1, second = d1, where
// d1 = m - se_table[2m+1].
func (t SETable) Invert(m uint32) (first, second int32) {
	row := t[m]
	d1 := int32(m) - row[1]
	return row[0] - d1, d1
}

// ROS is the zero_blocks value 5 (fundamental-sequence value 4) that
// escapes to a capped long zero run instead of literally meaning "5 empty
// blocks".
const ROS = 5

// ZeroRunLength turns a decoded zero-block fs value into a block count,
// applying the ROS escape and the off-by-one collapse for codes beyond it,
// exactly as m_zero_block does in decode.c. blockIndex is the 0-based
// index, within the current RSI, of the block this zero-run starts at;
// rsiRemaining is the number of blocks left (including this one) before
// the RSI boundary.
func ZeroRunLength(fs uint32, blockIndex, rsiRemaining int) int {
	zeroBlocks := int(fs) + 1
	switch {
	case zeroBlocks == ROS:
		cap64 := 64 - blockIndex%64
		zeroBlocks = rsiRemaining
		if cap64 < zeroBlocks {
			zeroBlocks = cap64
		}
	case zeroBlocks > ROS:
		zeroBlocks--
	}
	return zeroBlocks
}

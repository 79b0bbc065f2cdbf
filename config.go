package aec

import "github.com/mewkiz/pkg/errutil"

// Flags is a bitmask of the CCSDS 121.0-B-2 / 120.0-G-2 options that
// Config.Flags carries, mirroring the AEC_DATA_* flags of decode.c.
type Flags uint8

const (
	// FlagSigned marks samples as two's complement signed; unset means
	// unsigned.
	FlagSigned Flags = 1 << iota
	// FlagMSB selects most-significant-byte-first sample packing.
	FlagMSB
	// FlagThreeByte packs 17..24 bit samples into 3 bytes instead of 4.
	FlagThreeByte
	// FlagPreprocess enables the CCSDS 120.0-G-2 preprocessor inverse.
	FlagPreprocess
	// FlagRestricted enables the restricted (small-alphabet) id_len table.
	FlagRestricted
	// FlagPadRSI byte-aligns the bitstream before each RSI's reference
	// sample.
	FlagPadRSI
)

// Has reports whether f is set in the mask.
func (m Flags) Has(f Flags) bool { return m&f != 0 }

// Config describes one CCSDS 121.0-B-2 stream: sample geometry, block
// shape, and the 120.0-G-2 preprocessor/restricted/padding options that
// change how the bitstream is framed.
type Config struct {
	// BitsPerSample is the sample resolution, 1..32.
	BitsPerSample uint8
	// BlockSize is the number of samples per block: 8, 16, 32, or 64.
	BlockSize uint32
	// RSI is the number of blocks per Reference Sample Interval.
	RSI uint32
	// Flags is the option bitmask described above.
	Flags Flags
}

// derived holds the values computed once from a Config by derive, used
// throughout decoding instead of recomputing from Config on every block.
type derived struct {
	bytesPerSample int
	idLen          uint
	xmin, xmax     int64
	inBlkLen       int
	outBlkLen      int
}

// Validate reports whether cfg describes a decodable stream, surfacing
// ErrConfig before New ever allocates -- matching aec_decode_init's early
// bounds checks in decode.c.
func (cfg Config) Validate() error {
	switch {
	case cfg.BitsPerSample == 0 || cfg.BitsPerSample > 32:
		return errutil.Err(ErrConfig)
	case cfg.BlockSize != 8 && cfg.BlockSize != 16 && cfg.BlockSize != 32 && cfg.BlockSize != 64:
		return errutil.Err(ErrConfig)
	case cfg.RSI == 0:
		return errutil.Err(ErrConfig)
	case cfg.Flags.Has(FlagRestricted) && cfg.BitsPerSample <= 8 && cfg.BitsPerSample > 4:
		return errutil.Err(ErrConfig)
	}
	return nil
}

// derive computes the derived decode parameters from cfg: the id_len
// used to dispatch block modes, the byte packing width, the reference
// sample's legal range, and the fast-path byte thresholds in_blklen and
// out_blklen. Grounded on the corresponding arithmetic in aec_decode_init
// in decode.c.
func (cfg Config) derive() derived {
	var d derived
	bps := uint(cfg.BitsPerSample)

	switch {
	case bps > 16:
		d.idLen = 5
	case bps > 8:
		d.idLen = 4
	case cfg.Flags.Has(FlagRestricted):
		if bps <= 2 {
			d.idLen = 1
		} else {
			d.idLen = 2
		}
	default:
		d.idLen = 3
	}

	switch {
	case bps > 16:
		if bps <= 24 && cfg.Flags.Has(FlagThreeByte) {
			d.bytesPerSample = 3
		} else {
			d.bytesPerSample = 4
		}
	case bps > 8:
		d.bytesPerSample = 2
	default:
		d.bytesPerSample = 1
	}

	if cfg.Flags.Has(FlagSigned) {
		d.xmin = -(int64(1) << (bps - 1))
		d.xmax = int64(1)<<(bps-1) - 1
	} else {
		d.xmin = 0
		d.xmax = int64(1)<<bps - 1
	}

	blockSize := int(cfg.BlockSize)
	d.inBlkLen = (blockSize*int(bps)+int(d.idLen))/8 + 9
	d.outBlkLen = blockSize * d.bytesPerSample
	return d
}

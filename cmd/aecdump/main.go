// aecdump decodes a raw CCSDS 121.0-B-2 bitstream to raw samples.
package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/mewkiz/aec"
	"github.com/mewkiz/aec/aecio"
	"github.com/mewkiz/pkg/pathutil"
	"github.com/pkg/errors"
)

func main() {
	var (
		bps        uint
		blockSize  uint
		rsiBlocks  uint
		signed     bool
		msb        bool
		restricted bool
		padRSI     bool
		preprocess bool
		threeByte  bool
	)
	flag.UintVar(&bps, "bps", 8, "bits per sample")
	flag.UintVar(&blockSize, "block-size", 16, "samples per block (8, 16, 32 or 64)")
	flag.UintVar(&rsiBlocks, "rsi", 128, "blocks per reference sample interval")
	flag.BoolVar(&signed, "signed", false, "samples are two's complement signed")
	flag.BoolVar(&msb, "msb", false, "pack samples most-significant-byte first")
	flag.BoolVar(&restricted, "restricted", false, "use the restricted id_len table")
	flag.BoolVar(&padRSI, "pad-rsi", false, "byte-align before each RSI's reference sample")
	flag.BoolVar(&preprocess, "preprocess", false, "invert the CCSDS 120.0-G-2 preprocessor")
	flag.BoolVar(&threeByte, "three-byte", false, "pack 17..24 bit samples into 3 bytes")
	flag.Parse()

	cfg := aec.Config{
		BitsPerSample: uint8(bps),
		BlockSize:     uint32(blockSize),
		RSI:           uint32(rsiBlocks),
	}
	if signed {
		cfg.Flags |= aec.FlagSigned
	}
	if msb {
		cfg.Flags |= aec.FlagMSB
	}
	if restricted {
		cfg.Flags |= aec.FlagRestricted
	}
	if padRSI {
		cfg.Flags |= aec.FlagPadRSI
	}
	if preprocess {
		cfg.Flags |= aec.FlagPreprocess
	}
	if threeByte {
		cfg.Flags |= aec.FlagThreeByte
	}

	for _, path := range flag.Args() {
		if err := dump(path, cfg); err != nil {
			log.Fatalf("%+v", err)
		}
	}
}

// dump decodes the CCSDS bitstream at path and writes the raw reconstructed
// samples alongside it with a .raw extension.
func dump(path string, cfg aec.Config) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	dec, err := aecio.NewDecoder(f, cfg)
	if err != nil {
		return errors.WithStack(err)
	}

	outPath := pathutil.TrimExt(path) + ".raw"
	out, err := os.Create(outPath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer out.Close()

	if _, err := io.Copy(out, dec); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

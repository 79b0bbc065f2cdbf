// Package pcmsink adapts a decoded CCSDS 121.0-B-2 sample stream to
// go-audio's PCM types, so decoded data can be inspected or played back
// without the core aec package knowing anything about audio containers.
package pcmsink

import (
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/mewkiz/pkg/errutil"
)

// IntBuffer packs a slice of decoded, preprocessor-inverted samples into a
// go-audio/audio.IntBuffer, ready to hand to a go-audio/wav.Encoder or any
// other go-audio consumer.
func IntBuffer(samples []int64, sampleRate, numChannels, bitsPerSample int) *audio.IntBuffer {
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}
	return &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: numChannels,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: bitsPerSample,
	}
}

// WriteWAV encodes samples as a single-chunk WAV file to w, interpreting
// them at sampleRate/numChannels/bitsPerSample. It exists purely as a
// convenience for dumping a decoded stream to a playable file; the core
// decoder never calls it.
func WriteWAV(w io.WriteSeeker, samples []int64, sampleRate, numChannels, bitsPerSample int) error {
	enc := wav.NewEncoder(w, sampleRate, bitsPerSample, numChannels, 1)
	buf := IntBuffer(samples, sampleRate, numChannels, bitsPerSample)
	if err := enc.Write(buf); err != nil {
		return errutil.Err(err)
	}
	if err := enc.Close(); err != nil {
		return errutil.Err(err)
	}
	return nil
}

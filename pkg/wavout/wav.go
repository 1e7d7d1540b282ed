// Package wavout writes rendered controller samples to disk as a WAV file.
// Samples are buffered by the caller in their entirety, so this is suited to
// offline rendering and testing rather than streaming.
package wavout

import (
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
)

const (
	bitDepth    = 16
	numChannels = 1
	formatPCM   = 1

	// center is half of the largest mixed sample (three channels at 8192)
	center = 3 * 8192 / 2
)

// pcm centres a mixed sample around zero and scales it to use most of the
// signed 16-bit range
func pcm(s uint16) int {
	return (int(s) - center) * 2
}

// Write encodes samples as 16-bit mono PCM
func Write(w io.WriteSeeker, samples []uint16, sampleRate int) error {
	if sampleRate <= 0 {
		return errors.Errorf("wavout: invalid sample rate %d", sampleRate)
	}

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = pcm(s)
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, numChannels, formatPCM)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: numChannels,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return errors.Wrap(err, "wavout")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, "wavout")
	}
	return nil
}

// Save writes samples to a WAV file at path
func Save(path string, samples []uint16, sampleRate int) (rerr error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "wavout")
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = errors.Wrap(err, "wavout")
		}
	}()

	return Write(f, samples, sampleRate)
}

package wavout

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/require"
)

func TestPCMCentresMixedRange(t *testing.T) {
	require.Equal(t, -24576, pcm(0))
	require.Equal(t, 0, pcm(12288))
	require.Equal(t, 24576, pcm(24576))
}

func TestSaveWritesReadableWAV(t *testing.T) {
	dir, err := ioutil.TempDir("", "wavout")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	samples := []uint16{0, 8192, 12288, 24576, 10}
	path := filepath.Join(dir, "out.wav")
	require.NoError(t, Save(path, samples, 22050))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())

	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	require.Equal(t, 22050, buf.Format.SampleRate)
	require.Equal(t, 1, buf.Format.NumChannels)

	want := make([]int, len(samples))
	for i, s := range samples {
		want[i] = pcm(s)
	}
	require.Equal(t, want, buf.Data)
}

func TestWriteRejectsInvalidSampleRate(t *testing.T) {
	dir, err := ioutil.TempDir("", "wavout")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	require.Error(t, Save(filepath.Join(dir, "out.wav"), []uint16{1}, 0))
}

package psg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func levels(bits ...int) []bool {
	out := make([]bool, len(bits))
	for i, b := range bits {
		out[i] = b != 0
	}
	return out
}

func TestNoiseSequenceIsReproducible(t *testing.T) {
	tests := []struct {
		name string
		freq uint8
		t    uint32
		want []bool
	}{
		{
			name: "period 1, 40 ticks per call",
			freq: 1,
			t:    40,
			want: levels(
				1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0,
				0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0,
				0, 0, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 1, 1, 1, 0,
			),
		},
		{
			name: "period 3, 50 ticks per call",
			freq: 3,
			t:    50,
			want: levels(
				0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
				1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
				0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
			),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			noise := newNoiseGenerator()
			noise.setFrequency(tt.freq)

			got := make([]bool, 0, len(tt.want))
			for range tt.want {
				got = append(got, noise.advance(tt.t))
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestNoiseFeedbackSetsBit16(t *testing.T) {
	noise := newNoiseGenerator()

	// seed 0x00001: bit 0 differs from bit 3, so bit 16 is set before the shift
	require.True(t, noise.advance(33))
	require.Equal(t, uint32(0x08000), noise.shift)
	require.Equal(t, uint32(1), noise.phase)
}

func TestNoiseShiftRegisterNeverEmpties(t *testing.T) {
	noise := newNoiseGenerator()
	for i := 0; i < 200000; i++ {
		noise.advance(33)
		require.NotZero(t, noise.shift)
		require.True(t, noise.shift < 1<<17)
	}
}

func TestNoiseSetFrequencyKeepsPhase(t *testing.T) {
	noise := newNoiseGenerator()
	noise.setFrequency(4)
	noise.advance(100)

	noise.setFrequency(0)
	require.Equal(t, uint32(32), noise.divisor)
	require.Equal(t, uint32(100), noise.phase)
}

package psg

// toneGenerator is the square-wave oscillator behind one channel
type toneGenerator struct {
	// divisor is the length of one full cycle in ticks (32 * freq)
	divisor uint32

	// phase is the position inside the current cycle, always below divisor
	// after an advance
	phase uint32
}

func newToneGenerator() toneGenerator {
	return toneGenerator{divisor: minDivisor}
}

// setFrequency restarts the waveform from the beginning of its cycle
func (g *toneGenerator) setFrequency(freq uint16) {
	g.divisor = divisorOf(uint32(freq))
	g.phase = 0
}

// advance moves the oscillator t ticks forward and returns true during the
// first half of the cycle (50% duty)
func (g *toneGenerator) advance(t uint32) bool {
	g.phase += t
	for g.phase > g.divisor {
		g.phase -= g.divisor
	}
	return g.phase < g.divisor/2
}

// minDivisor is the divisor of the highest possible frequency (register value 1)
const minDivisor uint32 = 32

// divisorOf converts a frequency register value into ticks, treating 0 as 1
func divisorOf(freq uint32) uint32 {
	if freq == 0 {
		freq = 1
	}
	return minDivisor * freq
}

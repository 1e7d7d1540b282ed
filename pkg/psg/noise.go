package psg

// noiseGenerator is the pseudo-random bit source shared by all channels.
//
// The output is not the shift register bit itself. Each period crossing XORs
// bit 0 of the 17-bit shift register into level, so the observable output is
// a toggled accumulator driven by the register's edges.
type noiseGenerator struct {
	divisor uint32
	phase   uint32

	// shift is a 17-bit feedback shift register: bit 0 XOR bit 3 is fed
	// back into bit 16 before shifting right
	shift uint32

	level bool
}

const (
	noiseShiftSeed uint32 = 0x00001
	noiseFeedback  uint32 = 0x10000
)

func newNoiseGenerator() noiseGenerator {
	return noiseGenerator{
		divisor: minDivisor,
		shift:   noiseShiftSeed,
	}
}

// setFrequency changes the period without touching phase or the shift register
func (g *noiseGenerator) setFrequency(freq uint8) {
	g.divisor = divisorOf(uint32(freq))
}

func (g *noiseGenerator) advance(t uint32) bool {
	g.phase += t
	for g.phase > g.divisor {
		g.phase -= g.divisor

		bit0 := g.shift&0x01 != 0
		bit3 := g.shift&0x08 != 0
		g.level = g.level != bit0
		if bit0 != bit3 {
			g.shift |= noiseFeedback
		}
		g.shift >>= 1
	}
	return g.level
}

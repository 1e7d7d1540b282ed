package psg

// envelopeBlock is the segment the envelope generator is currently producing
type envelopeBlock uint8

const (
	// blockHigh holds level 15
	blockHigh envelopeBlock = iota

	// blockLow holds level 0
	blockLow

	// blockRaise ramps 0 -> 15
	blockRaise

	// blockLower ramps 15 -> 0
	blockLower
)

// envelopeShape describes what happens once the initial ramp completes.
// Every shape code written to register 0x0D collapses into one of these.
type envelopeShape uint8

const (
	shapeLowerLow envelopeShape = iota
	shapeRaiseLow
	shapeLowerLoop
	shapeLowerRaiseLoop
	shapeLowerHigh
	shapeRaiseLoop
	shapeRaiseHigh
	shapeRaiseLowerLoop
)

var envelopeShapeNames = map[envelopeShape]string{
	shapeLowerLow:       "\\___",
	shapeRaiseLow:       "/___",
	shapeLowerLoop:      "\\\\\\\\",
	shapeLowerRaiseLoop: "\\/\\/",
	shapeLowerHigh:      "\\```",
	shapeRaiseLoop:      "////",
	shapeRaiseHigh:      "/```",
	shapeRaiseLowerLoop: "/\\/\\",
}

func (s envelopeShape) String() string {
	return envelopeShapeNames[s]
}

// envelopeShapes maps the low nibble of the shape register to the canonical
// shape and its initial block.
//
// Codes 0x0-0x3 behave like 0x9, and 0x4-0x7 like 0xF: the hold and
// alternate bits only matter when the continue bit (bit 3) is set.
var envelopeShapes = [16]struct {
	shape envelopeShape
	block envelopeBlock
}{
	0x00: {shapeLowerLow, blockLower},
	0x01: {shapeLowerLow, blockLower},
	0x02: {shapeLowerLow, blockLower},
	0x03: {shapeLowerLow, blockLower},
	0x04: {shapeRaiseLow, blockRaise},
	0x05: {shapeRaiseLow, blockRaise},
	0x06: {shapeRaiseLow, blockRaise},
	0x07: {shapeRaiseLow, blockRaise},
	0x08: {shapeLowerLoop, blockLower},
	0x09: {shapeLowerLow, blockLower},
	0x0A: {shapeLowerRaiseLoop, blockLower},
	0x0B: {shapeLowerHigh, blockLower},
	0x0C: {shapeRaiseLoop, blockRaise},
	0x0D: {shapeRaiseHigh, blockRaise},
	0x0E: {shapeRaiseLowerLoop, blockRaise},
	0x0F: {shapeRaiseLow, blockRaise},
}

// envelopeSteps is the number of period crossings in one ramp
const envelopeSteps = 16

// envelopeGenerator produces the shared 4-bit amplitude used by any channel
// whose volume register has bit 4 set
type envelopeGenerator struct {
	divisor uint32
	phase   uint32
	shape   envelopeShape
	block   envelopeBlock

	// step counts period crossings inside the current block, 0..15
	step uint8
}

func newEnvelopeGenerator() envelopeGenerator {
	return envelopeGenerator{
		divisor: minDivisor,
		shape:   shapeLowerLow,
		block:   blockLow,
	}
}

// setFrequencyAndShape restarts the envelope. Only the low nibble of shape is
// significant.
func (g *envelopeGenerator) setFrequencyAndShape(freq uint16, shape byte) {
	g.divisor = divisorOf(uint32(freq))
	g.phase = 0
	g.step = 0

	entry := envelopeShapes[shape&0x0F]
	g.shape = entry.shape
	g.block = entry.block
}

// advance moves the envelope t ticks forward and returns the level (0..15)
func (g *envelopeGenerator) advance(t uint32) uint8 {
	g.phase += t
	for g.phase > g.divisor {
		g.phase -= g.divisor
		g.step++
		if g.step == envelopeSteps {
			g.step = 0
			g.block = g.nextBlock()
		}
	}
	return g.level()
}

func (g *envelopeGenerator) nextBlock() envelopeBlock {
	switch g.shape {
	case shapeLowerLow, shapeRaiseLow:
		return blockLow
	case shapeLowerHigh, shapeRaiseHigh:
		return blockHigh
	case shapeLowerLoop:
		return blockLower
	case shapeRaiseLoop:
		return blockRaise
	case shapeLowerRaiseLoop, shapeRaiseLowerLoop:
		switch g.block {
		case blockLower:
			return blockRaise
		case blockRaise:
			return blockLower
		}
	}
	return g.block
}

func (g *envelopeGenerator) level() uint8 {
	switch g.block {
	case blockHigh:
		return 15
	case blockRaise:
		return g.step
	case blockLower:
		return 15 - g.step
	default:
		return 0
	}
}

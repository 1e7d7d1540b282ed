package psg

import "github.com/prometheus/common/log"

// Controller emulates the AY-3-8910 programmable sound generator: three tone
// generators, one shared noise generator, one shared envelope generator and
// the register file tying them together.
//
// The host CPU drives Select/Read/Write, the host clock drives Advance. A
// Controller is not safe for concurrent use; callers sharing one between
// goroutines must serialise every call.
type Controller struct {
	// registers holds the bytes as written. Reads are masked, see readMask.
	registers [registerCount]byte

	// selected is the register that Read and Write operate on, always 0..15
	selected register

	toneA    toneGenerator
	toneB    toneGenerator
	toneC    toneGenerator
	noise    noiseGenerator
	envelope envelopeGenerator

	logger log.Logger
}

// New returns a controller with all registers zeroed and every generator at
// its power-on state
func New(opts ...Option) *Controller {
	c := &Controller{
		logger: log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.reset()
	return c
}

func (c *Controller) reset() {
	c.registers = [registerCount]byte{}
	c.selected = registerR00
	c.toneA = newToneGenerator()
	c.toneB = newToneGenerator()
	c.toneC = newToneGenerator()
	c.noise = newNoiseGenerator()
	c.envelope = newEnvelopeGenerator()
}

// Select changes the register used by Read and Write. Indices above 0x0F are
// ignored and leave the selection unchanged.
func (c *Controller) Select(index byte) {
	if int(index) >= registerCount {
		c.logger.Debugf("PSG select %#02x ignored", index)
		return
	}
	c.selected = register(index)
}

// Selected returns the currently selected register index
func (c *Controller) Selected() byte {
	return byte(c.selected)
}

// Read returns the selected register. It has no side effects.
func (c *Controller) Read() byte {
	return c.peek(c.selected)
}

// Peek reads any register as Read would, without changing the selection.
// Indices above 0x0F read as 0xFF.
func (c *Controller) Peek(index byte) byte {
	if int(index) >= registerCount {
		return 0xFF
	}
	return c.peek(register(index))
}

func (c *Controller) peek(r register) byte {
	return c.registers[r] & readMask(r)
}

// Registers returns a copy of the register file as written, without masking
func (c *Controller) Registers() [registerCount]byte {
	return c.registers
}

// Write stores v in the selected register and reconfigures the generators
// that depend on it. The new settings apply from the next call to Advance.
//
// Every write recomputes its generator, even if the value did not change:
// writing a tone period restarts that tone, writing any envelope register
// restarts the envelope.
func (c *Controller) Write(v byte) {
	r := c.selected
	c.registers[r] = v
	c.logger.Debugf("PSG write %#02x (%s) <- %#02x", byte(r), r, v)

	switch r {
	case registerR00, registerR01:
		freq := c.period12(registerR00, registerR01)
		c.toneA.setFrequency(freq)
		c.logger.Debugf("tone A: %d", freq)
	case registerR02, registerR03:
		freq := c.period12(registerR02, registerR03)
		c.toneB.setFrequency(freq)
		c.logger.Debugf("tone B: %d", freq)
	case registerR04, registerR05:
		freq := c.period12(registerR04, registerR05)
		c.toneC.setFrequency(freq)
		c.logger.Debugf("tone C: %d", freq)
	case registerR06:
		freq := c.registers[registerR06] & 0x1F
		if freq == 0 {
			freq = 1
		}
		c.noise.setFrequency(freq)
		c.logger.Debugf("noise: %d", freq)
	case registerR0B, registerR0C, registerR0D:
		freq := c.period16(registerR0B, registerR0C)
		shape := c.registers[registerR0D]
		c.envelope.setFrequencyAndShape(freq, shape)
		c.logger.Debugf("envelope: %d %s", freq, c.envelope.shape)
	default:
		// Mixer and volumes are read directly by Advance, the I/O ports
		// have no audio effect
	}
}

// period12 combines a fine register and the low nibble of a coarse register
func (c *Controller) period12(fine, coarse register) uint16 {
	n := uint16(c.registers[fine]) | uint16(c.registers[coarse]&0x0F)<<8
	if n == 0 {
		return 1
	}
	return n
}

// period16 combines a fine and a coarse register into a full 16-bit period
func (c *Controller) period16(fine, coarse register) uint16 {
	n := uint16(c.registers[fine]) | uint16(c.registers[coarse])<<8
	if n == 0 {
		return 1
	}
	return n
}

// Advance moves every generator t ticks forward and returns the mixed output
// sample, 0..24576.
//
// A tick is the unit of the frequency registers: a tone with period p
// completes one cycle every 32*p ticks.
//
// The noise generator only advances while at least one channel mixes it in.
// A real chip runs it continuously, so re-enabling noise resumes from where it
// stopped rather than where the hardware would be.
func (c *Controller) Advance(t uint32) uint16 {
	mix := c.registers[registerR07]
	toneA := !readBitN(mix, 0)
	toneB := !readBitN(mix, 1)
	toneC := !readBitN(mix, 2)
	noiseA := !readBitN(mix, 3)
	noiseB := !readBitN(mix, 4)
	noiseC := !readBitN(mix, 5)

	noise := false
	if noiseA || noiseB || noiseC {
		noise = c.noise.advance(t)
	}

	channelA := mixChannel(toneA, noiseA, c.toneA.advance(t), noise)
	channelB := mixChannel(toneB, noiseB, c.toneB.advance(t), noise)
	channelC := mixChannel(toneC, noiseC, c.toneC.advance(t), noise)

	// The envelope runs even if no channel uses it, as any volume register
	// may switch to envelope mode at any time
	env := c.envelope.advance(t)

	var out uint16
	if channelA {
		out += c.amplitude(registerR08, env)
	}
	if channelB {
		out += c.amplitude(registerR09, env)
	}
	if channelC {
		out += c.amplitude(registerR0A, env)
	}
	return out
}

// mixChannel applies the mixer truth table to one channel. A channel with
// both paths disabled is always on and contributes its full volume.
func mixChannel(toneEnabled, noiseEnabled, tone, noise bool) bool {
	switch {
	case toneEnabled && noiseEnabled:
		return tone && noise
	case toneEnabled:
		return tone
	case noiseEnabled:
		return noise
	default:
		return true
	}
}

// amplitude resolves a volume register to its linear amplitude, using the
// envelope level when bit 4 is set
func (c *Controller) amplitude(r register, env uint8) uint16 {
	v := c.registers[r]
	if readBitN(v, 4) {
		return volume(env)
	}
	return volume(v & 0x0F)
}

func (c *Controller) String() string {
	return "PSG"
}

func readBitN(v byte, offset uint8) bool {
	return v&(1<<offset) > 0
}

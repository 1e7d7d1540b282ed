package psg

import "fmt"

type register byte

const registerCount = 16

const (
	// Channel A tone period, fine (bits 0-7 of the 12-bit period)
	registerR00 register = 0x00

	// Channel A tone period, coarse (bits 8-11, only 4 bits are stored)
	registerR01 register = 0x01

	// Channel B tone period, fine
	registerR02 register = 0x02

	// Channel B tone period, coarse (4 bits)
	registerR03 register = 0x03

	// Channel C tone period, fine
	registerR04 register = 0x04

	// Channel C tone period, coarse (4 bits)
	registerR05 register = 0x05

	// Noise period (5 bits)
	registerR06 register = 0x06

	// Mixer control. A 0 bit enables the path.
	//
	// Bit 7-6 - I/O port direction (no audio effect)
	// Bit 5   - Noise into channel C
	// Bit 4   - Noise into channel B
	// Bit 3   - Noise into channel A
	// Bit 2   - Tone C
	// Bit 1   - Tone B
	// Bit 0   - Tone A
	registerR07 register = 0x07

	// Channel A amplitude (5 bits)
	//
	// Bit 4   - Use envelope level instead of bits 3-0
	// Bit 3-0 - Fixed level
	registerR08 register = 0x08

	// Channel B amplitude (5 bits)
	registerR09 register = 0x09

	// Channel C amplitude (5 bits)
	registerR0A register = 0x0A

	// Envelope period, fine (bits 0-7 of the 16-bit period)
	registerR0B register = 0x0B

	// Envelope period, coarse (bits 8-15)
	registerR0C register = 0x0C

	// Envelope shape (4 bits)
	//
	// Bit 3 - Continue
	// Bit 2 - Attack
	// Bit 1 - Alternate
	// Bit 0 - Hold
	registerR0D register = 0x0D

	// I/O port A data (no audio effect)
	registerR0E register = 0x0E

	// I/O port B data (no audio effect)
	registerR0F register = 0x0F
)

var registerNames = [registerCount]string{
	registerR00: "A fine",
	registerR01: "A coarse",
	registerR02: "B fine",
	registerR03: "B coarse",
	registerR04: "C fine",
	registerR05: "C coarse",
	registerR06: "noise period",
	registerR07: "mixer",
	registerR08: "A volume",
	registerR09: "B volume",
	registerR0A: "C volume",
	registerR0B: "envelope fine",
	registerR0C: "envelope coarse",
	registerR0D: "envelope shape",
	registerR0E: "I/O port A",
	registerR0F: "I/O port B",
}

func (r register) String() string {
	if int(r) >= registerCount {
		panic(fmt.Sprintf("unable to determine name of register (%d)", r))
	}
	return registerNames[r]
}

// RegisterName returns a human readable name for a register index, or an
// empty string if the index does not address a register
func RegisterName(index byte) string {
	if int(index) >= registerCount {
		return ""
	}
	return register(index).String()
}

// readMask returns the bits the original chip actually stores for r.
//
// Some programs detect clones (YM2149 and friends) by writing 0xFF to one of
// the narrow registers and reading it back: the original only returns the
// bits it implements, a clone returns the whole byte. We pose as the original.
func readMask(r register) byte {
	switch r {
	case registerR01, registerR03, registerR05, registerR0D:
		return 0x0F
	case registerR06, registerR08, registerR09, registerR0A:
		return 0x1F
	default:
		return 0xFF
	}
}

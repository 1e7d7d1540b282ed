package psg

const (
	// PortSelect selects a register on write and reads the selected register
	// on read (Spectrum 128 port 0xFFFD)
	PortSelect uint16 = 0xFFFD

	// PortData writes the selected register (Spectrum 128 port 0xBFFD)
	PortData uint16 = 0xBFFD
)

// The chip only decodes A15, A14 and A1; all other address lines are ignored
const (
	portDecodeMask   uint16 = 0xC002
	portDecodeSelect uint16 = 0xC000
	portDecodeData   uint16 = 0x8000
)

// Chip is the register interface seen by the host CPU's I/O bus
type Chip interface {
	Select(index byte)
	Read() byte
	Write(v byte)
}

// Ports maps a Chip into the I/O address space of a Spectrum 128
type Ports struct {
	chip Chip
}

// NewPorts returns the port decoder for chip
func NewPorts(chip Chip) *Ports {
	return &Ports{chip: chip}
}

// Owns returns true if port is decoded by the sound chip
func (p *Ports) Owns(port uint16) bool {
	switch port & portDecodeMask {
	case portDecodeSelect, portDecodeData:
		return true
	}
	return false
}

// Read8 is exposed in the I/O space, and may be read by the program. Only the
// select port returns data; the data port and foreign ports float high.
func (p *Ports) Read8(port uint16) byte {
	if port&portDecodeMask == portDecodeSelect {
		return p.chip.Read()
	}
	return 0xFF
}

// Write8 is exposed in the I/O space, and may be written to by the program
func (p *Ports) Write8(port uint16, v byte) {
	switch port & portDecodeMask {
	case portDecodeSelect:
		p.chip.Select(v)
	case portDecodeData:
		p.chip.Write(v)
	default:
		// Not ours
	}
}

func (p *Ports) String() string {
	return "PSG PORTS"
}

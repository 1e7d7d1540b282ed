package psg

// SnapshotSize is the length of a serialized controller: the selected
// register followed by the 16 register bytes
const SnapshotSize = 1 + registerCount

// Snapshot serializes the register file. Generator phases, the noise shift
// register and the envelope position are not included; they are rebuilt by
// replaying the registers on Restore.
func (c *Controller) Snapshot() [SnapshotSize]byte {
	var data [SnapshotSize]byte
	data[0] = byte(c.selected)
	copy(data[1:], c.registers[:])
	return data
}

// Restore resets the controller to its power-on state and replays every
// register write in index order, so that all generators are reconfigured as
// the register values dictate. The stored selection is applied last, through
// Select; an out-of-range selection leaves register 0x0F selected.
func (c *Controller) Restore(data [SnapshotSize]byte) {
	c.reset()
	for i, v := range data[1:] {
		c.Select(byte(i))
		c.Write(v)
	}
	c.Select(data[0])
}

// NewFromSnapshot returns a controller restored from data
func NewFromSnapshot(data [SnapshotSize]byte, opts ...Option) *Controller {
	c := New(opts...)
	c.Restore(data)
	return c
}

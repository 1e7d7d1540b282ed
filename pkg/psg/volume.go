//go:generate go run ../../volume-gen/main.go ./volume.gen.go
//go:generate go fmt ./volume.gen.go

package psg

// volume maps a 4-bit level to its linear amplitude. The curve is roughly
// exponential, each level sqrt(2) above the previous one.
func volume(level uint8) uint16 {
	return volumeLevels[level&0x0F]
}

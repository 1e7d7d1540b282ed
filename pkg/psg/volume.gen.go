// GENERATED FILE - Run "go generate ./..." to update

package psg

// volumeLevels holds round(8192 * exp(i/2 - 7.5)) for i in 0..15
var volumeLevels = [16]uint16{
	5,
	7,
	12,
	20,
	33,
	55,
	91,
	150,
	247,
	408,
	672,
	1109,
	1828,
	3014,
	4969,
	8192,
}

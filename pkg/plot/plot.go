// Package plot draws a rendered sample buffer as a waveform image
package plot

import (
	"image"
	"image/color"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
)

// maxSample is the largest value a controller can mix (three channels at full
// volume)
const maxSample = 3 * 8192

var (
	background = color.RGBA{R: 155, G: 188, B: 15, A: 255}
	trace      = color.RGBA{R: 15, G: 56, B: 15, A: 255}
)

// Draw returns an image with one column per bucket of samples, spanning the
// bucket's lowest to highest value
func Draw(samples []uint16, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("plot: invalid size %dx%d", width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, background)
		}
	}
	if len(samples) == 0 {
		return img, nil
	}

	for x := 0; x < width; x++ {
		from := x * len(samples) / width
		to := (x + 1) * len(samples) / width
		if to <= from {
			to = from + 1
		}

		lo, hi := samples[from], samples[from]
		for _, s := range samples[from:to] {
			if s < lo {
				lo = s
			}
			if s > hi {
				hi = s
			}
		}

		for y := row(hi, height); y <= row(lo, height); y++ {
			img.SetRGBA(x, y, trace)
		}
	}
	return img, nil
}

// row maps a sample to an image row, 0 at the top
func row(s uint16, height int) int {
	v := int(s)
	if v > maxSample {
		v = maxSample
	}
	return (height - 1) - v*(height-1)/maxSample
}

// Encode draws samples and writes the image as BMP
func Encode(w io.Writer, samples []uint16, width, height int) error {
	img, err := Draw(samples, width, height)
	if err != nil {
		return err
	}
	if err := bmp.Encode(w, img); err != nil {
		return errors.Wrap(err, "plot")
	}
	return nil
}

// Save writes the waveform image to path
func Save(path string, samples []uint16, width, height int) (rerr error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "plot")
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = errors.Wrap(err, "plot")
		}
	}()

	return Encode(f, samples, width, height)
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/prometheus/common/log"
	"github.com/sema/aypsg/pkg/player"
	"github.com/sema/aypsg/pkg/plot"
	"github.com/sema/aypsg/pkg/psg"
	"github.com/sema/aypsg/pkg/state"
	"github.com/sema/aypsg/pkg/wavout"
	"github.com/sema/aypsg/pkg/ym"
)

// play renders a YM file into samples. A clock of 0 uses the clock stored in
// the file.
func play(ctx context.Context, song *ym.File, clock uint32, rate, loops int, logger log.Logger) ([]uint16, error) {
	if clock == 0 {
		clock = song.ClockHz
	}
	if clock == 0 {
		clock = player.ClockZXSpectrum
	}

	p, err := player.New(
		psg.New(psg.WithLogger(logger)),
		player.WithClock(clock),
		player.WithSampleRate(rate),
		player.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	return p.Render(ctx, song, loops)
}

type renderCmd struct {
	Clock uint32 `help:"PSG clock in Hz, 0 uses the clock stored in the file" default:"0" env:"AYPSG_CLOCK"`
	Rate  int    `help:"Output sample rate" default:"44100" env:"AYPSG_RATE"`
	Loops int    `help:"Number of extra passes from the loop frame" default:"0"`

	Output string `help:"WAV file to write" short:"o" type:"path" default:"out.wav"`

	Path string `arg:"" name:"path" help:"Path to YM file" type:"path"`
}

func (r *renderCmd) Run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	logger, err := newLogger()
	if err != nil {
		return err
	}

	song, err := ym.Load(r.Path)
	if err != nil {
		return err
	}

	samples, err := play(ctx, song, r.Clock, r.Rate, r.Loops, logger)
	if err != nil {
		return err
	}

	logger.Infof("writing %s", r.Output)
	return wavout.Save(r.Output, samples, r.Rate)
}

type plotCmd struct {
	Clock uint32 `help:"PSG clock in Hz, 0 uses the clock stored in the file" default:"0" env:"AYPSG_CLOCK"`
	Rate  int    `help:"Output sample rate" default:"44100" env:"AYPSG_RATE"`

	Output string `help:"BMP file to write" short:"o" type:"path" default:"out.bmp"`
	Width  int    `help:"Image width" default:"1024"`
	Height int    `help:"Image height" default:"256"`
	Frames int    `help:"Only plot the first N frames, 0 plots everything" default:"0"`

	Path string `arg:"" name:"path" help:"Path to YM file" type:"path"`
}

func (p *plotCmd) Run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	logger, err := newLogger()
	if err != nil {
		return err
	}

	song, err := ym.Load(p.Path)
	if err != nil {
		return err
	}
	if p.Frames > 0 && p.Frames < len(song.Frames) {
		song.Frames = song.Frames[:p.Frames]
	}

	samples, err := play(ctx, song, p.Clock, p.Rate, 0, logger)
	if err != nil {
		return err
	}

	logger.Infof("writing %s", p.Output)
	return plot.Save(p.Output, samples, p.Width, p.Height)
}

type toneCmd struct {
	Period         uint16 `help:"Tone period of channel A (1-4095)" default:"284"`
	Volume         uint8  `help:"Fixed volume of channel A (0-15)" default:"15"`
	Noise          uint8  `help:"Mix noise with this period into channel A, 0 disables noise" default:"0"`
	EnvelopeShape  int    `help:"Use the envelope with this shape (0-15), -1 uses the fixed volume" default:"-1"`
	EnvelopePeriod uint16 `help:"Envelope period" default:"4096"`
	Seconds        int    `help:"Length of the rendering" default:"2"`
	Clock          uint32 `help:"PSG clock in Hz" default:"1773400" env:"AYPSG_CLOCK"`
	Rate           int    `help:"Output sample rate" default:"44100" env:"AYPSG_RATE"`

	Output   string `help:"WAV file to write" short:"o" type:"path" default:"tone.wav"`
	Snapshot string `help:"Also save the chip registers to this file" type:"path"`
}

func (t *toneCmd) Run() error {
	if t.Seconds <= 0 {
		return errors.Errorf("invalid length %d, must be positive", t.Seconds)
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}

	c := psg.New(psg.WithLogger(logger))

	// program the chip the way a Spectrum 128 program would
	ports := psg.NewPorts(c)
	out := func(r, v byte) {
		ports.Write8(psg.PortSelect, r)
		ports.Write8(psg.PortData, v)
	}

	mixer := byte(0x3E) // tone A only
	if t.Noise > 0 {
		mixer &^= 0x08
		out(0x06, t.Noise)
	}
	out(0x00, byte(t.Period))
	out(0x01, byte(t.Period>>8))
	out(0x07, mixer)
	if t.EnvelopeShape >= 0 {
		out(0x08, 0x10)
		out(0x0B, byte(t.EnvelopePeriod))
		out(0x0C, byte(t.EnvelopePeriod>>8))
		out(0x0D, byte(t.EnvelopeShape))
	} else {
		out(0x08, t.Volume)
	}

	if t.Snapshot != "" {
		logger.Infof("saving registers to %s", t.Snapshot)
		if err := state.Save(t.Snapshot, c); err != nil {
			return err
		}
	}

	p, err := player.New(c, player.WithClock(t.Clock), player.WithSampleRate(t.Rate), player.WithLogger(logger))
	if err != nil {
		return err
	}

	samples := make([]uint16, t.Seconds*p.SampleRate())
	p.Fill(samples)

	logger.Infof("writing %s", t.Output)
	return wavout.Save(t.Output, samples, t.Rate)
}

type regsCmd struct {
	Path string `arg:"" name:"path" help:"Path to a 17 byte register snapshot" type:"path"`
}

func (r *regsCmd) Run() error {
	c, err := state.Load(r.Path)
	if err != nil {
		return err
	}
	fmt.Print(formatRegisters(c, newStyles()))
	return nil
}

type styles struct {
	header   lipgloss.Style
	register lipgloss.Style
	selected lipgloss.Style
	masked   lipgloss.Style
}

func newStyles() styles {
	return styles{
		header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(4)),
		register: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(0)).Background(lipgloss.ANSIColor(3)),
		masked:   lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(5)),
	}
}

// formatRegisters lists every register with its stored value and the value
// the CPU reads back, highlighting the selected register
func formatRegisters(c *psg.Controller, s styles) string {
	var b strings.Builder
	b.WriteString(s.header.Render(fmt.Sprintf("%-4s %-16s %-5s %-5s", "reg", "name", "raw", "read")))
	b.WriteString("\n")

	raw := c.Registers()
	for i, v := range raw {
		index := byte(i)
		read := c.Peek(index)

		readColumn := fmt.Sprintf("%#02x", read)
		if read != v {
			readColumn = s.masked.Render(readColumn)
		}

		line := fmt.Sprintf("%02x   %-16s %-5s ", index, psg.RegisterName(index), fmt.Sprintf("%#02x", v))
		style := s.register
		if index == c.Selected() {
			style = s.selected
		}
		b.WriteString(style.Render(line))
		b.WriteString(readColumn)
		b.WriteString("\n")
	}
	return b.String()
}

var root struct {
	LogLevel string `help:"Log level (debug, info, warn, error)" default:"info" env:"AYPSG_LOG_LEVEL"`

	Render renderCmd `cmd:"" help:"render a YM file to WAV"`
	Plot   plotCmd   `cmd:"" help:"plot the waveform of a YM file"`
	Tone   toneCmd   `cmd:"" help:"render a single tone, optionally saving the chip registers"`
	Regs   regsCmd   `cmd:"" help:"show the registers stored in a snapshot"`
}

func newLogger() (log.Logger, error) {
	logger := log.NewLogger(os.Stderr)
	if err := logger.SetLevel(root.LogLevel); err != nil {
		return nil, errors.Wrap(err, "invalid log level")
	}
	return logger, nil
}

func main() {
	cli := kong.Parse(&root)
	err := cli.Run()
	cli.FatalIfErrorf(err)
}

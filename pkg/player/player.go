// Package player is the host clock around a sound controller: it turns a PSG
// clock and an output sample rate into per-sample tick deltas, and replays
// YM register frames into the controller.
package player

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prometheus/common/log"
	"github.com/sema/aypsg/pkg/psg"
	"github.com/sema/aypsg/pkg/ym"
)

const (
	// ClockZXSpectrum is the PSG clock of the Spectrum 128/+2/+3
	ClockZXSpectrum uint32 = 1773400

	// ClockAtariST is the PSG clock of the Atari ST
	ClockAtariST uint32 = 2000000

	// ClockCPC is the PSG clock of the Amstrad CPC
	ClockCPC uint32 = 1000000

	DefaultSampleRate = 44100

	// ticksPerClock is the number of controller ticks per PSG clock cycle. A
	// tone with period p lasts 16*p PSG clocks and 32*p ticks.
	ticksPerClock = 2

	// envelopeRegister is not written when a frame holds envelopeUnchanged,
	// as any write to it restarts the envelope
	envelopeRegister  = 0x0D
	envelopeUnchanged = 0xFF

	// playedRegisters are the audio registers written per frame; the I/O
	// ports carry effect data in YM6 files
	playedRegisters = 14
)

// Player feeds a controller with ticks and register frames
type Player struct {
	psg *psg.Controller

	clockHz    uint32
	sampleRate int

	// tickRemainder carries the fractional tick count between samples
	tickRemainder uint64

	// sampleRemainder carries the fractional sample count between frames
	sampleRemainder uint64

	logger log.Logger
}

type Option func(p *Player)

// WithClock sets the PSG master clock in Hz
func WithClock(hz uint32) Option {
	return func(p *Player) {
		p.clockHz = hz
	}
}

// WithSampleRate sets the number of output samples per second
func WithSampleRate(rate int) Option {
	return func(p *Player) {
		p.sampleRate = rate
	}
}

func WithLogger(logger log.Logger) Option {
	return func(p *Player) {
		p.logger = logger
	}
}

func New(c *psg.Controller, opts ...Option) (*Player, error) {
	p := &Player{
		psg:        c,
		clockHz:    ClockZXSpectrum,
		sampleRate: DefaultSampleRate,
		logger:     log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.clockHz == 0 {
		return nil, errors.New("PSG clock must be positive")
	}
	if p.sampleRate <= 0 {
		return nil, errors.Errorf("invalid sample rate %d", p.sampleRate)
	}
	return p, nil
}

// SampleRate returns the number of samples produced per second
func (p *Player) SampleRate() int {
	return p.sampleRate
}

// Step advances the controller by one sample's worth of ticks and returns the
// sample. Over many calls the number of ticks passed is exact, fractional
// ticks are carried to the next sample.
func (p *Player) Step() uint16 {
	return p.psg.Advance(p.nextTicks())
}

func (p *Player) nextTicks() uint32 {
	num := ticksPerClock*uint64(p.clockHz) + p.tickRemainder
	ticks := num / uint64(p.sampleRate)
	p.tickRemainder = num % uint64(p.sampleRate)
	return uint32(ticks)
}

// Fill produces len(samples) samples
func (p *Player) Fill(samples []uint16) {
	for i := range samples {
		samples[i] = p.Step()
	}
}

// Apply writes the audio registers of a frame to the controller. An envelope
// shape of 0xFF means the envelope keeps running and is not written.
func (p *Player) Apply(frame [ym.FrameRegisters]byte) {
	for r := byte(0); r < playedRegisters; r++ {
		if r == envelopeRegister && frame[r] == envelopeUnchanged {
			continue
		}
		p.psg.Select(r)
		p.psg.Write(frame[r])
	}
}

// samplesPerFrame returns the number of samples for the next frame, carrying
// the fraction so that the long-run frame rate is exact
func (p *Player) samplesPerFrame(frameRate uint16) int {
	num := uint64(p.sampleRate) + p.sampleRemainder
	n := num / uint64(frameRate)
	p.sampleRemainder = num % uint64(frameRate)
	return int(n)
}

// Render plays every frame of f and returns the produced samples. Playback
// restarts from the loop frame loops more times. Render stops early with an
// error if ctx is cancelled.
func (p *Player) Render(ctx context.Context, f *ym.File, loops int) ([]uint16, error) {
	if f.FrameRate == 0 {
		return nil, errors.New("YM file has a frame rate of 0")
	}
	if f.ClockHz != 0 && f.ClockHz != p.clockHz {
		p.logger.Warnf("song was recorded at %d Hz, playing at %d Hz", f.ClockHz, p.clockHz)
	}

	p.logger.Infof("rendering %q by %q: %d frames at %d Hz", f.Title, f.Author, len(f.Frames), f.FrameRate)

	var out []uint16
	start := 0
	for pass := 0; pass <= loops; pass++ {
		for i := start; i < len(f.Frames); i++ {
			select {
			case <-ctx.Done():
				return out, errors.Wrapf(ctx.Err(), "rendering stopped at frame %d", i)
			default:
			}

			p.Apply(f.Frames[i])
			n := p.samplesPerFrame(f.FrameRate)
			out = append(out, make([]uint16, n)...)
			p.Fill(out[len(out)-n:])
		}
		start = int(f.LoopFrame)
	}

	p.logger.Infof("rendered %d samples", len(out))
	return out, nil
}

// Package ym reads YM register-dump files: a header followed by one set of
// AY register values per frame, as produced by ST-Sound and friends.
//
// Only uncompressed YM5! and YM6! files are supported. Most YM files in the
// wild are LHA archives and must be extracted first.
package ym

import (
	"encoding/binary"
	"io/ioutil"

	"github.com/pkg/errors"
)

const (
	// FrameRegisters is the number of register values stored per frame
	FrameRegisters = 16

	// legacyFrameRegisters is used by some writers that omit the two I/O
	// port registers
	legacyFrameRegisters = 14

	checkString = "LeOnArD!"

	attrInterleaved uint32 = 0x01
)

var (
	ErrUnsupportedFormat = errors.New("unsupported YM format")
	ErrTruncated         = errors.New("YM data truncated")
)

// File holds the decoded contents of a YM file
type File struct {
	// Frames holds FrameRegisters register values per frame, in playback order
	Frames [][FrameRegisters]byte

	// ClockHz is the master clock of the chip the song was recorded on
	ClockHz uint32

	// FrameRate is the number of frames per second (usually 50)
	FrameRate uint16

	// LoopFrame is the frame playback restarts from when looping
	LoopFrame uint32

	Title    string
	Author   string
	Comments string

	Interleaved bool
}

// Load reads and parses the YM file at path
func Load(path string) (*File, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading YM file %s", path)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing YM file %s", path)
	}
	return f, nil
}

// Parse decodes a YM5! or YM6! file held in memory
func Parse(data []byte) (*File, error) {
	r := &reader{data: data}

	id := r.str(4)
	if r.err != nil {
		return nil, r.err
	}
	if id != "YM5!" && id != "YM6!" {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "file id %q", id)
	}
	if check := r.str(len(checkString)); r.err == nil && check != checkString {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "check string %q", check)
	}

	f := &File{}
	frameCount := r.u32()
	attrs := r.u32()
	drums := r.u16()
	f.ClockHz = r.u32()
	f.FrameRate = r.u16()
	f.LoopFrame = r.u32()
	r.skip(int(r.u16())) // additional data, unused by any known writer

	for i := 0; i < int(drums); i++ {
		r.skip(int(r.u32()))
	}

	f.Title = r.cstring()
	f.Author = r.cstring()
	f.Comments = r.cstring()
	if r.err != nil {
		return nil, r.err
	}

	f.Interleaved = attrs&attrInterleaved != 0

	n := int(frameCount)
	remaining := len(data) - r.off
	regs := FrameRegisters
	switch {
	case remaining >= n*FrameRegisters:
	case remaining >= n*legacyFrameRegisters:
		regs = legacyFrameRegisters
	default:
		return nil, errors.Wrapf(ErrTruncated, "%d frames need %d bytes, %d left", n, n*FrameRegisters, remaining)
	}

	frameData := data[r.off:]
	f.Frames = make([][FrameRegisters]byte, n)
	for i := range f.Frames {
		for reg := 0; reg < regs; reg++ {
			if f.Interleaved {
				f.Frames[i][reg] = frameData[reg*n+i]
			} else {
				f.Frames[i][reg] = frameData[i*regs+reg]
			}
		}
	}

	if n > 0 && f.LoopFrame >= uint32(n) {
		f.LoopFrame = 0
	}
	return f, nil
}

// reader walks a big-endian header, remembering the first failure
type reader struct {
	data []byte
	off  int
	err  error
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.off+n > len(r.data) {
		r.err = errors.Wrapf(ErrTruncated, "need %d bytes at offset %d", n, r.off)
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) skip(n int) {
	r.take(n)
}

func (r *reader) u16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

func (r *reader) u32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

func (r *reader) str(n int) string {
	return string(r.take(n))
}

func (r *reader) cstring() string {
	if r.err != nil {
		return ""
	}
	start := r.off
	for r.off < len(r.data) && r.data[r.off] != 0 {
		r.off++
	}
	if r.off == len(r.data) {
		r.err = errors.Wrapf(ErrTruncated, "unterminated string at offset %d", start)
		return ""
	}
	s := string(r.data[start:r.off])
	r.off++
	return s
}

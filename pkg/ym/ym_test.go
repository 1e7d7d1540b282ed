package ym

import (
	"bytes"
	"encoding/binary"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type ymFixture struct {
	id          string
	interleaved bool
	clock       uint32
	rate        uint16
	loop        uint32
	drums       [][]byte
	frames      [][]byte
	regs        int
}

func (y ymFixture) bytes() []byte {
	var buf bytes.Buffer
	buf.WriteString(y.id)
	buf.WriteString(checkString)

	attrs := uint32(0)
	if y.interleaved {
		attrs |= attrInterleaved
	}
	binary.Write(&buf, binary.BigEndian, uint32(len(y.frames)))
	binary.Write(&buf, binary.BigEndian, attrs)
	binary.Write(&buf, binary.BigEndian, uint16(len(y.drums)))
	binary.Write(&buf, binary.BigEndian, y.clock)
	binary.Write(&buf, binary.BigEndian, y.rate)
	binary.Write(&buf, binary.BigEndian, y.loop)
	binary.Write(&buf, binary.BigEndian, uint16(0))
	for _, d := range y.drums {
		binary.Write(&buf, binary.BigEndian, uint32(len(d)))
		buf.Write(d)
	}
	buf.WriteString("title\x00author\x00comment\x00")

	regs := y.regs
	if regs == 0 {
		regs = FrameRegisters
	}
	if y.interleaved {
		for reg := 0; reg < regs; reg++ {
			for _, f := range y.frames {
				buf.WriteByte(f[reg])
			}
		}
	} else {
		for _, f := range y.frames {
			buf.Write(f[:regs])
		}
	}
	return buf.Bytes()
}

func testFrames(n int) [][]byte {
	frames := make([][]byte, n)
	for i := range frames {
		frames[i] = make([]byte, FrameRegisters)
		for reg := range frames[i] {
			frames[i][reg] = byte(i*FrameRegisters + reg)
		}
	}
	return frames
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		fixture ymFixture
	}{
		{
			name:    "YM5 sequential",
			fixture: ymFixture{id: "YM5!", clock: 2000000, rate: 50, loop: 1, frames: testFrames(3)},
		},
		{
			name:    "YM6 interleaved",
			fixture: ymFixture{id: "YM6!", interleaved: true, clock: 1773400, rate: 50, loop: 2, frames: testFrames(4)},
		},
		{
			name:    "YM6 with digidrums",
			fixture: ymFixture{id: "YM6!", interleaved: true, clock: 1000000, rate: 60, drums: [][]byte{{1, 2, 3}, {4}}, frames: testFrames(2)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse(tt.fixture.bytes())
			require.NoError(t, err)

			require.Equal(t, tt.fixture.clock, f.ClockHz)
			require.Equal(t, tt.fixture.rate, f.FrameRate)
			require.Equal(t, tt.fixture.loop, f.LoopFrame)
			require.Equal(t, tt.fixture.interleaved, f.Interleaved)
			require.Equal(t, "title", f.Title)
			require.Equal(t, "author", f.Author)
			require.Equal(t, "comment", f.Comments)

			require.Len(t, f.Frames, len(tt.fixture.frames))
			for i, want := range tt.fixture.frames {
				require.Equal(t, want, f.Frames[i][:], "frame %d", i)
			}
		})
	}
}

func TestParseLegacyFrames(t *testing.T) {
	fixture := ymFixture{id: "YM5!", rate: 50, frames: testFrames(2), regs: legacyFrameRegisters}

	f, err := Parse(fixture.bytes())
	require.NoError(t, err)
	require.Equal(t, fixture.frames[1][:legacyFrameRegisters], f.Frames[1][:legacyFrameRegisters])
	require.Equal(t, byte(0), f.Frames[1][14])
	require.Equal(t, byte(0), f.Frames[1][15])
}

func TestParseResetsLoopFrameOutOfRange(t *testing.T) {
	fixture := ymFixture{id: "YM6!", rate: 50, loop: 10, frames: testFrames(2)}

	f, err := Parse(fixture.bytes())
	require.NoError(t, err)
	require.Equal(t, uint32(0), f.LoopFrame)
}

func TestParseRejectsUnsupportedFiles(t *testing.T) {
	_, err := Parse([]byte("YM3!\x00\x00\x00\x00"))
	require.Equal(t, ErrUnsupportedFormat, errors.Cause(err))

	_, err = Parse([]byte("-lh5-compressed-archive"))
	require.Equal(t, ErrUnsupportedFormat, errors.Cause(err))

	_, err = Parse([]byte("YM6!LeOnArX!0000000000000000000000000"))
	require.Equal(t, ErrUnsupportedFormat, errors.Cause(err))
}

func TestParseRejectsTruncatedFiles(t *testing.T) {
	data := ymFixture{id: "YM6!", rate: 50, frames: testFrames(4)}.bytes()

	for _, n := range []int{2, 12, 20, 40, len(data) - 40} {
		_, err := Parse(data[:n])
		require.Equal(t, ErrTruncated, errors.Cause(err), "truncated to %d bytes", n)
	}
}

func TestLoad(t *testing.T) {
	dir, err := ioutil.TempDir("", "ym")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "song.ym")
	require.NoError(t, ioutil.WriteFile(path, ymFixture{id: "YM5!", rate: 50, frames: testFrames(1)}.bytes(), 0644))

	f, err := Load(path)
	require.NoError(t, err)
	require.Len(t, f.Frames, 1)

	_, err = Load(filepath.Join(dir, "missing.ym"))
	require.Error(t, err)
}

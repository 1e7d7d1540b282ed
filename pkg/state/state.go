// Package state persists a sound controller as its 17-byte snapshot: the
// selected register followed by the 16 register values. There is no header
// or version tag.
package state

import (
	"bytes"
	"io"
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/sema/aypsg/pkg/psg"
)

var ErrSnapshotSize = errors.Errorf("snapshot must be exactly %d bytes", psg.SnapshotSize)

// Write stores the snapshot of c
func Write(w io.Writer, c *psg.Controller) error {
	data := c.Snapshot()
	if _, err := w.Write(data[:]); err != nil {
		return errors.Wrap(err, "writing snapshot")
	}
	return nil
}

// Read loads a snapshot into a new controller. The input must hold exactly
// psg.SnapshotSize bytes.
func Read(r io.Reader, opts ...psg.Option) (*psg.Controller, error) {
	data, err := ioutil.ReadAll(io.LimitReader(r, psg.SnapshotSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading snapshot")
	}
	return Decode(data, opts...)
}

// Decode restores a controller from a snapshot blob
func Decode(data []byte, opts ...psg.Option) (*psg.Controller, error) {
	if len(data) != psg.SnapshotSize {
		return nil, errors.Wrapf(ErrSnapshotSize, "got %d bytes", len(data))
	}

	var snapshot [psg.SnapshotSize]byte
	copy(snapshot[:], data)
	return psg.NewFromSnapshot(snapshot, opts...), nil
}

// Save writes the snapshot of c to path
func Save(path string, c *psg.Controller) error {
	var buf bytes.Buffer
	if err := Write(&buf, c); err != nil {
		return err
	}
	if err := ioutil.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "saving snapshot to %s", path)
	}
	return nil
}

// Load reads the snapshot stored at path
func Load(path string, opts ...psg.Option) (*psg.Controller, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "loading snapshot from %s", path)
	}

	c, err := Decode(data, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "loading snapshot from %s", path)
	}
	return c, nil
}

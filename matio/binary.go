// SPDX-License-Identifier: MIT

package matio

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/katalvlaran/coper/matrix"
)

const (
	binaryMagic   = "CPMX"
	binaryVersion = byte(1)

	// maxElements bounds rows·cols so a corrupt header cannot force a huge allocation.
	maxElements = 1 << 28
	// maxNameLen bounds a single column name.
	maxNameLen = 1 << 16
)

var byteOrder = binary.LittleEndian

// readBinary decodes a CPMX stream.
func readBinary(r io.Reader) (*Table, error) {
	var hdr [5]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, errors.Wrap(err, "read header")
	}
	if string(hdr[:4]) != binaryMagic || hdr[4] != binaryVersion {
		return nil, errors.Wrapf(ErrBadMagic, "got %q v%d", hdr[:4], hdr[4])
	}

	var shape [2]uint32
	if err := binary.Read(r, byteOrder, &shape); err != nil {
		return nil, errors.Wrap(err, "read shape")
	}
	rows, cols := int(shape[0]), int(shape[1])
	if rows == 0 || cols == 0 {
		return nil, errors.Wrapf(ErrEmpty, "shape %dx%d", rows, cols)
	}
	if uint64(rows)*uint64(cols) > maxElements {
		return nil, errors.Errorf("matio: shape %dx%d exceeds %d elements", rows, cols, maxElements)
	}

	data := make([]float64, rows*cols)
	if err := binary.Read(r, byteOrder, data); err != nil {
		return nil, errors.Wrap(err, "read data")
	}

	var count uint32
	if err := binary.Read(r, byteOrder, &count); err != nil {
		return nil, errors.Wrap(err, "read name count")
	}
	if count != 0 && int(count) != cols {
		return nil, errors.Wrapf(ErrRagged, "%d names for %d columns", count, cols)
	}
	var names []string
	if count > 0 {
		names = make([]string, count)
	}
	var n uint32
	for i := range names {
		if err := binary.Read(r, byteOrder, &n); err != nil {
			return nil, errors.Wrapf(err, "read name %d length", i)
		}
		if n > maxNameLen {
			return nil, errors.Errorf("matio: name %d length %d exceeds %d", i, n, maxNameLen)
		}
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, errors.Wrapf(err, "read name %d", i)
		}
		names[i] = string(buf)
	}

	m, err := matrix.NewDenseFrom(rows, cols, data, matrix.WithNoValidateNaNInf())
	if err != nil {
		return nil, errors.Wrap(err, "build matrix")
	}

	return newTable(names, m)
}

// writeBinary encodes t as a CPMX stream.
func writeBinary(w io.Writer, t *Table) error {
	rows, cols := t.Data.Shape()
	if _, err := io.WriteString(w, binaryMagic); err != nil {
		return errors.Wrap(err, "write magic")
	}
	if _, err := w.Write([]byte{binaryVersion}); err != nil {
		return errors.Wrap(err, "write version")
	}
	if err := binary.Write(w, byteOrder, [2]uint32{uint32(rows), uint32(cols)}); err != nil {
		return errors.Wrap(err, "write shape")
	}
	for i := 0; i < rows; i++ {
		row, err := t.Data.Row(i)
		if err != nil {
			return errors.Wrapf(err, "row %d", i)
		}
		if err = binary.Write(w, byteOrder, row); err != nil {
			return errors.Wrapf(err, "write row %d", i)
		}
	}
	if err := binary.Write(w, byteOrder, uint32(len(t.Names))); err != nil {
		return errors.Wrap(err, "write name count")
	}
	for i, name := range t.Names {
		if err := binary.Write(w, byteOrder, uint32(len(name))); err != nil {
			return errors.Wrapf(err, "write name %d length", i)
		}
		if _, err := io.WriteString(w, name); err != nil {
			return errors.Wrapf(err, "write name %d", i)
		}
	}

	return nil
}

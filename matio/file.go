// SPDX-License-Identifier: MIT

package matio

import (
	"bufio"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// Read decodes a table from r in format f (FormatAuto is not accepted here).
func Read(r io.Reader, f Format) (*Table, error) {
	switch f {
	case FormatCSV, FormatTSV:
		return readText(r, f)
	case FormatBinary:
		return readBinary(r)
	}

	return nil, errors.Wrapf(ErrUnknownFormat, "read %s", f)
}

// Write encodes t to w in format f (FormatAuto is not accepted here).
func Write(w io.Writer, f Format, t *Table) error {
	if t == nil || t.Data == nil {
		return errors.Wrap(ErrEmpty, "write nil table")
	}
	if _, err := newTable(t.Names, t.Data); err != nil {
		return err
	}
	switch f {
	case FormatCSV, FormatTSV:
		return writeText(w, f, t)
	case FormatBinary:
		return writeBinary(w, t)
	}

	return errors.Wrapf(ErrUnknownFormat, "write %s", f)
}

// ReadFile reads path, inferring format and compression from its name.
func ReadFile(path string) (*Table, error) {
	return ReadFileAs(path, FormatAuto)
}

// ReadFileAs reads path in format f; FormatAuto infers it from the extension.
// Compression always follows the ".zst" suffix.
func ReadFileAs(path string, f Format) (*Table, error) {
	f, compressed, err := resolve(path, f)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	defer fh.Close()

	var r io.Reader = bufio.NewReader(fh)
	if compressed {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, errors.Wrapf(err, "zstd %s", path)
		}
		defer dec.Close()
		r = dec
	}

	t, err := Read(r, f)

	return t, errors.Wrapf(err, "%s", path)
}

// WriteFile writes t to path, inferring format and compression from its name.
func WriteFile(path string, t *Table) error {
	return WriteFileAs(path, FormatAuto, t)
}

// WriteFileAs writes t to path in format f; FormatAuto infers it from the extension.
// The file is created or truncated.
func WriteFileAs(path string, f Format, t *Table) (err error) {
	f, compressed, err := resolve(path, f)
	if err != nil {
		return err
	}
	fh, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create")
	}
	defer func() {
		if cerr := fh.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()

	bw := bufio.NewWriter(fh)
	var w io.Writer = bw
	var enc *zstd.Encoder
	if compressed {
		if enc, err = zstd.NewWriter(bw); err != nil {
			return errors.Wrapf(err, "zstd %s", path)
		}
		w = enc
	}

	if err = Write(w, f, t); err != nil {
		if enc != nil {
			_ = enc.Close()
		}
		return errors.Wrapf(err, "%s", path)
	}
	if enc != nil {
		if err = enc.Close(); err != nil {
			return errors.Wrapf(err, "zstd close %s", path)
		}
	}

	return errors.Wrapf(bw.Flush(), "flush %s", path)
}

// resolve applies extension inference when f is FormatAuto.
func resolve(path string, f Format) (Format, bool, error) {
	detected, compressed, err := DetectFormat(path)
	if f != FormatAuto {
		return f, compressed, nil
	}
	if err != nil {
		return FormatAuto, false, err
	}

	return detected, compressed, nil
}

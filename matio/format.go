// SPDX-License-Identifier: MIT

// Package matio reads and writes matrix files for the coper routines.
//
// Formats:
//
//   - CSV / TSV: one row per line, an optional header line of column names
//     (detected when any field is not a number), '#' comment lines.
//     Values are written with the shortest representation that round-trips.
//     A header made only of numeric-looking names ("1", "NaN", "Inf") reads
//     back as data, so writing one fails with ErrAmbiguousHeader; the binary
//     format keeps any names.
//   - Binary (.cpm): "CPMX", version byte, uint32 rows, uint32 cols, rows·cols
//     float64 (little endian, row-major), uint32 name count, then each name as
//     uint32 length + UTF-8 bytes.
//
// Any path ending in ".zst" is transparently zstd-compressed.
package matio

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/katalvlaran/coper/matrix"
)

// Format identifies an on-disk matrix encoding.
type Format int

const (
	// FormatAuto infers the format from the file extension.
	FormatAuto Format = iota
	// FormatCSV is comma-separated text.
	FormatCSV
	// FormatTSV is tab-separated text.
	FormatTSV
	// FormatBinary is the CPMX float64 container.
	FormatBinary
)

// zstdExt marks a compressed file.
const zstdExt = ".zst"

var (
	// ErrUnknownFormat is returned for an unrecognized extension or format name.
	ErrUnknownFormat = errors.New("matio: unknown format")
	// ErrBadMagic is returned when a binary stream does not start with CPMX v1.
	ErrBadMagic = errors.New("matio: bad magic or version")
	// ErrRagged is returned when rows or names disagree on the column count.
	ErrRagged = errors.New("matio: ragged matrix")
	// ErrEmpty is returned when a file holds no data rows.
	ErrEmpty = errors.New("matio: no data")
	// ErrAmbiguousHeader is returned when text column names would not read
	// back as a header.
	ErrAmbiguousHeader = errors.New("matio: column names not recognizable as a header")
)

// Table is a matrix with optional column names.
// Names is nil or has exactly Data.Cols() entries.
type Table struct {
	Names []string
	Data  *matrix.Dense
}

// String returns the canonical format name.
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatCSV:
		return "csv"
	case FormatTSV:
		return "tsv"
	case FormatBinary:
		return "cpm"
	default:
		return "unknown"
	}
}

// ParseFormat resolves a format name ("auto", "csv", "tsv", "cpm"/"bin").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "csv":
		return FormatCSV, nil
	case "tsv":
		return FormatTSV, nil
	case "cpm", "bin", "binary":
		return FormatBinary, nil
	}

	return FormatAuto, errors.Wrapf(ErrUnknownFormat, "format %q", s)
}

// DetectFormat infers the format and compression from path.
// "x.csv", "x.tsv", "x.cpm", each optionally followed by ".zst".
func DetectFormat(path string) (f Format, compressed bool, err error) {
	base := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(base, zstdExt) {
		compressed = true
		base = strings.TrimSuffix(base, zstdExt)
	}
	switch filepath.Ext(base) {
	case ".csv":
		return FormatCSV, compressed, nil
	case ".tsv":
		return FormatTSV, compressed, nil
	case ".cpm":
		return FormatBinary, compressed, nil
	}

	return FormatAuto, compressed, errors.Wrapf(ErrUnknownFormat, "path %q", path)
}

// newTable validates names against data.
func newTable(names []string, data *matrix.Dense) (*Table, error) {
	if len(names) != 0 && len(names) != data.Cols() {
		return nil, errors.Wrapf(ErrRagged, "%d names for %d columns", len(names), data.Cols())
	}

	return &Table{Names: names, Data: data}, nil
}

// SPDX-License-Identifier: MIT

package matio

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/katalvlaran/coper/matrix"
)

// separator returns the field delimiter for a text format.
func separator(f Format) rune {
	if f == FormatTSV {
		return '\t'
	}

	return ','
}

// readText decodes CSV/TSV. Non-finite values ("NaN", "Inf") are kept so the
// estimators can report them with their own error kind.
func readText(r io.Reader, f Format) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = separator(f)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read "+f.String())
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}

	var names []string
	if isHeader(records[0]) {
		names = append([]string(nil), records[0]...)
		records = records[1:]
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}

	rows, cols := len(records), len(records[0])
	data := make([]float64, 0, rows*cols)
	for i, rec := range records {
		if len(rec) != cols {
			return nil, errors.Wrapf(ErrRagged, "line %d: %d fields, want %d", i+1, len(rec), cols)
		}
		for j, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "row %d col %d", i, j)
			}
			data = append(data, v)
		}
	}

	m, err := matrix.NewDenseFrom(rows, cols, data, matrix.WithNoValidateNaNInf())
	if err != nil {
		return nil, errors.Wrap(err, "build matrix")
	}

	return newTable(names, m)
}

// isHeader reports whether any field is not a number.
func isHeader(rec []string) bool {
	for _, field := range rec {
		if _, err := strconv.ParseFloat(field, 64); err != nil {
			return true
		}
	}

	return false
}

// writeText encodes CSV/TSV with the shortest exact float representation.
// Names that would read back as data or as a comment are refused.
func writeText(w io.Writer, f Format, t *Table) error {
	if len(t.Names) > 0 {
		if !isHeader(t.Names) {
			return errors.Wrapf(ErrAmbiguousHeader, "%q parse as numbers", t.Names)
		}
		if strings.HasPrefix(t.Names[0], "#") {
			return errors.Wrapf(ErrAmbiguousHeader, "%q starts a comment", t.Names[0])
		}
	}
	cw := csv.NewWriter(w)
	cw.Comma = separator(f)
	if len(t.Names) > 0 {
		if err := cw.Write(t.Names); err != nil {
			return errors.Wrap(err, "write header")
		}
	}

	rows, cols := t.Data.Shape()
	rec := make([]string, cols)
	for i := 0; i < rows; i++ {
		row, err := t.Data.Row(i)
		if err != nil {
			return errors.Wrapf(err, "row %d", i)
		}
		for j, v := range row {
			rec[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err = cw.Write(rec); err != nil {
			return errors.Wrapf(err, "write row %d", i)
		}
	}
	cw.Flush()

	return errors.Wrap(cw.Error(), "flush")
}

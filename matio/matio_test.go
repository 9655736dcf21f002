// SPDX-License-Identifier: MIT
package matio_test

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/coper/matio"
	"github.com/katalvlaran/coper/matrix"
)

// rows flattens a Dense into [][]float64 for cmp.
func rows(t *testing.T, m *matrix.Dense) [][]float64 {
	t.Helper()
	out := make([][]float64, m.Rows())
	for i := range out {
		r, err := m.Row(i)
		require.NoError(t, err)
		out[i] = r
	}

	return out
}

func sample(t *testing.T) *matio.Table {
	t.Helper()
	m, err := matrix.NewDenseFrom(3, 2, []float64{
		0.1, -2.5e-300,
		1.0 / 3.0, 7,
		math.MaxFloat64, -0.0,
	})
	require.NoError(t, err)

	return &matio.Table{Names: []string{"alpha", "beta gamma"}, Data: m}
}

func TestRoundTrip_AllFormats(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	want := sample(t)

	for _, name := range []string{"m.csv", "m.tsv", "m.cpm", "m.csv.zst", "m.cpm.zst"} {
		name := name
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, matio.WriteFile(path, want))

			got, err := matio.ReadFile(path)
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(want.Names, got.Names))
			// Lossless: exact equality, no approximation.
			assert.Empty(t, cmp.Diff(rows(t, want.Data), rows(t, got.Data)))
		})
	}
}

func TestReadCSV_HeaderCommentsAndNaN(t *testing.T) {
	t.Parallel()
	in := strings.Join([]string{
		"# produced by a test",
		"x, y",
		"1, 2",
		"# mid comment",
		"3, NaN",
	}, "\n")
	tab, err := matio.Read(strings.NewReader(in), matio.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, tab.Names)

	got := rows(t, tab.Data)
	want := [][]float64{{1, 2}, {3, math.NaN()}}
	assert.Empty(t, cmp.Diff(want, got, cmpopts.EquateNaNs()))

	// Without a header.
	tab, err = matio.Read(strings.NewReader("1\t2\n3\t4\n"), matio.FormatTSV)
	require.NoError(t, err)
	assert.Nil(t, tab.Names)
	assert.Empty(t, cmp.Diff([][]float64{{1, 2}, {3, 4}}, rows(t, tab.Data), cmpopts.EquateApprox(0, 0)))
}

func TestReadCSV_Errors(t *testing.T) {
	t.Parallel()
	for name, tc := range map[string]struct {
		in   string
		want error
	}{
		"empty":        {"", matio.ErrEmpty},
		"header only":  {"a,b\n", matio.ErrEmpty},
		"ragged":       {"1,2\n3\n", matio.ErrRagged},
		"header width": {"a,b,c\n1,2\n", matio.ErrRagged},
	} {
		_, err := matio.Read(strings.NewReader(tc.in), matio.FormatCSV)
		assert.ErrorIs(t, err, tc.want, name)
	}

	_, err := matio.Read(strings.NewReader("1,2\n3,x\n"), matio.FormatCSV)
	require.Error(t, err)
}

func TestBinary_Errors(t *testing.T) {
	t.Parallel()
	_, err := matio.Read(bytes.NewReader([]byte("NOPE\x01")), matio.FormatBinary)
	require.ErrorIs(t, err, matio.ErrBadMagic)

	var buf bytes.Buffer
	require.NoError(t, matio.Write(&buf, matio.FormatBinary, sample(t)))
	truncated := buf.Bytes()[:buf.Len()-3]
	_, err = matio.Read(bytes.NewReader(truncated), matio.FormatBinary)
	require.Error(t, err)

	_, err = matio.Read(bytes.NewReader(buf.Bytes()), matio.FormatAuto)
	require.ErrorIs(t, err, matio.ErrUnknownFormat)
}

func TestWrite_Validation(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.ErrorIs(t, matio.Write(&buf, matio.FormatCSV, nil), matio.ErrEmpty)

	bad := sample(t)
	bad.Names = bad.Names[:1]
	require.ErrorIs(t, matio.Write(&buf, matio.FormatCSV, bad), matio.ErrRagged)
}

// TestText_AmbiguousHeader: names that would read back as data or as a
// comment are refused in text; the binary format keeps them.
func TestText_AmbiguousHeader(t *testing.T) {
	t.Parallel()
	for _, names := range [][]string{{"1", "NaN"}, {"#id", "x"}} {
		tab := sample(t)
		tab.Names = names
		var buf bytes.Buffer
		for _, f := range []matio.Format{matio.FormatCSV, matio.FormatTSV} {
			buf.Reset()
			require.ErrorIs(t, matio.Write(&buf, f, tab), matio.ErrAmbiguousHeader, "%v %s", names, f)
		}

		buf.Reset()
		require.NoError(t, matio.Write(&buf, matio.FormatBinary, tab))
		got, err := matio.Read(&buf, matio.FormatBinary)
		require.NoError(t, err)
		assert.Equal(t, names, got.Names)
	}

	// Without a header, a numeric first line is data.
	got, err := matio.Read(strings.NewReader("1,2\n3,4\n"), matio.FormatCSV)
	require.NoError(t, err)
	assert.Nil(t, got.Names)
	assert.Equal(t, 2, got.Data.Rows())
}

func TestDetectAndParseFormat(t *testing.T) {
	t.Parallel()
	for path, want := range map[string]struct {
		f          matio.Format
		compressed bool
	}{
		"a.csv":          {matio.FormatCSV, false},
		"dir/B.TSV":      {matio.FormatTSV, false},
		"c.cpm.zst":      {matio.FormatBinary, true},
		"/tmp/d.csv.zst": {matio.FormatCSV, true},
	} {
		f, c, err := matio.DetectFormat(path)
		require.NoError(t, err, path)
		assert.Equal(t, want.f, f, path)
		assert.Equal(t, want.compressed, c, path)
	}
	_, _, err := matio.DetectFormat("x.json")
	require.ErrorIs(t, err, matio.ErrUnknownFormat)

	f, err := matio.ParseFormat("BIN")
	require.NoError(t, err)
	assert.Equal(t, matio.FormatBinary, f)
	assert.Equal(t, "cpm", f.String())
	_, err = matio.ParseFormat("xml")
	require.ErrorIs(t, err, matio.ErrUnknownFormat)
}

func TestFileAs_ForcedFormat(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "matrix.out")
	require.NoError(t, matio.WriteFileAs(path, matio.FormatCSV, sample(t)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "alpha,beta gamma\n"))

	got, err := matio.ReadFileAs(path, matio.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Data.Rows())

	_, err = matio.ReadFile(path)
	require.ErrorIs(t, err, matio.ErrUnknownFormat)
}

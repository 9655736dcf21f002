// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/coper"
	"github.com/katalvlaran/coper/matio"
	"github.com/katalvlaran/coper/registry"
)

// execute runs the command tree with args and returns stdout, the log
// output and the error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	root := newRootCmd(&out, log.New(&logs, "coper: ", 0))
	root.SetArgs(args)
	err := root.Execute()

	return out.String(), logs.String(), err
}

// writeData writes a 5x3 data file with named columns.
func writeData(t *testing.T, path string) {
	t.Helper()
	const data = "a,b,c\n" +
		"1,2,0.5\n" +
		"2,1,1.5\n" +
		"3,5,0.25\n" +
		"4,3,2\n" +
		"5,6,1\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func TestList(t *testing.T) {
	t.Parallel()
	out, _, err := execute(t, "list")
	require.NoError(t, err)
	for _, name := range registry.Names() {
		assert.Contains(t, out, name)
	}
}

func TestRun_CovThenPcor(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	data := filepath.Join(dir, "data.csv")
	cov := filepath.Join(dir, "cov.cpm")
	pc := filepath.Join(dir, "pcor.tsv")
	writeData(t, data)

	_, _, err := execute(t, "run", "cov_sam", "-i", data, "-o", cov)
	require.NoError(t, err)
	_, logs, err := execute(t, "run", "cov2pcor", "-i", cov, "-o", pc, "--verbose")
	require.NoError(t, err)
	assert.Contains(t, logs, "cov2pcor: wrote 3x3")

	tab, err := matio.ReadFile(pc)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, tab.Names)
	for i := 0; i < 3; i++ {
		v, err := tab.Data.At(i, i)
		require.NoError(t, err)
		assert.Equal(t, 1.0, v)
	}
}

func TestPipeline_MatchesTwoSteps(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	data := filepath.Join(dir, "data.csv")
	writeData(t, data)

	pipeOut := filepath.Join(dir, "pipe.csv")
	covOut := filepath.Join(dir, "pipe_cov.csv")
	_, _, err := execute(t, "pipeline", "-i", data, "-o", pipeOut, "--cov-out", covOut)
	require.NoError(t, err)

	runOut := filepath.Join(dir, "run.csv")
	_, _, err = execute(t, "run", "pcor_sam", "-i", data, "-o", runOut)
	require.NoError(t, err)

	a, err := os.ReadFile(pipeOut)
	require.NoError(t, err)
	b, err := os.ReadFile(runOut)
	require.NoError(t, err)
	assert.Equal(t, string(b), string(a))

	cov, err := matio.ReadFile(covOut)
	require.NoError(t, err)
	assert.Equal(t, 3, cov.Data.Rows())
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	data := filepath.Join(dir, "data.csv")
	writeData(t, data)

	_, _, err := execute(t, "run", "nope", "-i", data, "-o", filepath.Join(dir, "x.csv"))
	require.ErrorIs(t, err, registry.ErrUnknownRoutine)

	_, _, err = execute(t, "run", "cov_sam", "-i", filepath.Join(dir, "missing.csv"), "-o", filepath.Join(dir, "x.csv"))
	require.Error(t, err)

	_, _, err = execute(t, "run", "cov_sam", "-i", data, "-o", filepath.Join(dir, "x.csv"), "--method", "bogus")
	require.Error(t, err)

	// Data is 5x3, not square.
	_, _, err = execute(t, "run", "cov2pcor", "-i", data, "-o", filepath.Join(dir, "x.csv"))
	require.ErrorIs(t, err, coper.ErrInvalidDimension)

	// Singular covariance: second column duplicates the first.
	sing := filepath.Join(dir, "sing.csv")
	require.NoError(t, os.WriteFile(sing, []byte("1,1\n2,2\n3,3\n"), 0o644))
	_, _, err = execute(t, "run", "pcor_sam", "-i", sing, "-o", filepath.Join(dir, "x.csv"))
	require.ErrorIs(t, err, coper.ErrNotInvertible)
}

func TestBatch(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	var files []string
	for _, name := range []string{"a.csv", "b.tsv", "c.csv"} {
		p := filepath.Join(dir, name)
		writeData(t, p)
		files = append(files, p)
	}
	// b.tsv holds comma-separated text; rewrite it tab-separated.
	raw, err := os.ReadFile(files[1])
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(files[1], []byte(strings.ReplaceAll(string(raw), ",", "\t")), 0o644))

	args := append([]string{"batch", "cov_ml", "--out-dir", outDir, "-j", "2"}, files...)
	_, _, err = execute(t, args...)
	require.NoError(t, err)

	for _, name := range []string{"a.cov_ml.csv", "b.cov_ml.tsv", "c.cov_ml.csv"} {
		tab, err := matio.ReadFile(filepath.Join(outDir, name))
		require.NoError(t, err, name)
		assert.Equal(t, 3, tab.Data.Cols(), name)
	}

	// One bad file fails the whole batch.
	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("1,2\n3\n"), 0o644))
	args = append([]string{"batch", "cov_sam", "--out-dir", outDir}, append(files, bad)...)
	_, _, err = execute(t, args...)
	require.ErrorIs(t, err, matio.ErrRagged)

	// Same base name in two directories: rejected before anything is written.
	var dups []string
	for _, sub := range []string{"g1", "g2"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, sub), 0o755))
		p := filepath.Join(dir, sub, "x.csv")
		writeData(t, p)
		dups = append(dups, p)
	}
	dupOut := filepath.Join(dir, "dup")
	args = append([]string{"batch", "cov_sam", "--out-dir", dupOut}, dups...)
	_, _, err = execute(t, args...)
	require.ErrorIs(t, err, errOutputCollision)
	assert.Contains(t, err.Error(), "x.cov_sam.csv")
	assert.NoDirExists(t, dupOut)
}

func TestBatchOutputName(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]string{
		"x.csv":            "x.cov_sam.csv",
		"/a/b/y.cpm.zst":   "y.cov_sam.cpm.zst",
		"rel/z.tsv":        "z.cov_sam.tsv",
		"noext":            "noext.cov_sam",
		"d/w.data.csv.zst": "w.data.cov_sam.csv.zst",
	} {
		assert.Equal(t, want, batchOutputName(in, "cov_sam"), in)
	}
}

func TestNetwork(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	pc := filepath.Join(dir, "pc.csv")
	require.NoError(t, os.WriteFile(pc, []byte(
		"a,b,c\n"+
			"1,0.5,0.01\n"+
			"0.5,1,0\n"+
			"0.01,0,1\n"), 0o644))

	out, _, err := execute(t, "network", "-i", pc, "-t", "0.1", "--components")
	require.NoError(t, err)
	assert.Contains(t, out, "a  b  +0.5\n")
	assert.NotContains(t, out, "+0.01")
	assert.Contains(t, out, "component 1: [a b]\n")
	assert.Contains(t, out, "component 2: [c]\n")

	_, _, err = execute(t, "network", "-i", pc, "-t", "2")
	require.Error(t, err)
}

// TestRun_FormatAppliesToOutputOnly: --format picks the output encoding
// whatever the extension; the input is still read by its extension.
func TestRun_FormatAppliesToOutputOnly(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	data := filepath.Join(dir, "data.csv")
	out := filepath.Join(dir, "cov.dat")
	writeData(t, data)

	_, _, err := execute(t, "run", "cov_sam", "-i", data, "-o", out, "--format", "tsv")
	require.NoError(t, err)

	tab, err := matio.ReadFileAs(out, matio.FormatTSV)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, tab.Names)
	assert.Equal(t, 3, tab.Data.Rows())

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "a\tb\tc\n"))
}

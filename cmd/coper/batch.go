// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/coper/registry"
)

func (a *app) batchCmd() *cobra.Command {
	var outDir string
	var jobs int
	cmd := &cobra.Command{
		Use:   "batch <routine> files...",
		Short: "Run one routine on many files concurrently",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.batch(cmd.Context(), args[0], args[1:], outDir, jobs)
		},
	}
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory for results (created if missing)")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.GOMAXPROCS(0), "max files processed at once")
	_ = cmd.MarkFlagRequired("out-dir")
	a.addRoutineFlags(cmd)

	return cmd
}

// errOutputCollision reports two inputs that map to the same result file.
var errOutputCollision = errors.New("batch: output name collision")

// batch applies routine to every file with at most jobs in flight.
// The first failure cancels files not yet started. Inputs whose result
// names collide are rejected before any file is read.
func (a *app) batch(ctx context.Context, routine string, files []string, outDir string, jobs int) error {
	if _, ok := registry.Lookup(routine); !ok {
		return errors.Wrapf(registry.ErrUnknownRoutine, "%q (see 'coper list')", routine)
	}
	if jobs < 1 {
		jobs = 1
	}
	outs := make([]string, len(files))
	seen := make(map[string]string, len(files))
	for k, in := range files {
		out := filepath.Join(outDir, batchOutputName(in, routine))
		if prev, dup := seen[out]; dup {
			return errors.Wrapf(errOutputCollision, "%s and %s both write %s", prev, in, out)
		}
		seen[out] = in
		outs[k] = out
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.Wrap(err, "out-dir")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for k, in := range files {
		in := in
		out := outs[k]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return a.apply(routine, in, out)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	a.debugf("batch: %s done on %d files", routine, len(files))

	return nil
}

// batchOutputName maps "dir/x.csv.zst" to "x.<routine>.csv.zst".
func batchOutputName(in, routine string) string {
	base := filepath.Base(in)
	ext := ""
	if strings.HasSuffix(base, ".zst") {
		ext = ".zst"
		base = strings.TrimSuffix(base, ".zst")
	}
	ext = filepath.Ext(base) + ext

	return strings.TrimSuffix(base, filepath.Ext(base)) + "." + routine + ext
}

// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"log"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/coper/matio"
	"github.com/katalvlaran/coper/registry"
)

// app carries the state shared by all subcommands.
type app struct {
	out     io.Writer
	log     *log.Logger
	verbose bool

	// routine tunables (flags on run/pipeline/batch)
	cfg    registry.Config
	format string
}

// newRootCmd builds the command tree. out receives command output; logger
// receives progress and diagnostics.
func newRootCmd(out io.Writer, logger *log.Logger) *cobra.Command {
	a := &app{out: out, log: logger}

	root := &cobra.Command{
		Use:           "coper",
		Short:         "Covariance estimation and partial correlation on matrix files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log progress per file")

	root.AddCommand(
		a.listCmd(),
		a.runCmd(),
		a.pipelineCmd(),
		a.batchCmd(),
		a.networkCmd(),
	)

	return root
}

// addRoutineFlags binds the registry.Config tunables and --format.
func (a *app) addRoutineFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&a.cfg.Method, "method", "", "covariance estimator: sam, ml, lw (default: routine's own)")
	f.Float64Var(&a.cfg.ConditionThreshold, "cond-threshold", 0, "max condition number of the covariance (0: 1e12)")
	f.Float64Var(&a.cfg.Tolerance, "tolerance", 0, "allowed |pcor| excess over 1 (0: 1e-6)")
	f.BoolVar(&a.cfg.Clamp, "clamp", false, "clamp partial correlations into [-1,1] instead of failing")
	f.StringVar(&a.format, "format", "auto", "output format: auto, csv, tsv, cpm (inputs follow their extension)")
}

// debugf logs only with --verbose.
func (a *app) debugf(format string, args ...any) {
	if a.verbose {
		a.log.Printf(format, args...)
	}
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available routines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			for _, name := range registry.Names() {
				e, _ := registry.Lookup(name)
				fmt.Fprintf(tw, "%s\t%s\n", e.Name, e.Doc)
			}

			return tw.Flush()
		},
	}
}

// apply reads in, dispatches routine, writes out. Column names carry over
// when the result has as many columns as the input has names.
func (a *app) apply(routine, in, out string) error {
	outFormat, err := matio.ParseFormat(a.format)
	if err != nil {
		return err
	}
	tab, err := matio.ReadFile(in)
	if err != nil {
		return errors.Wrap(err, "read input")
	}
	a.debugf("%s: read %dx%d from %s", routine, tab.Data.Rows(), tab.Data.Cols(), in)

	res, err := registry.Call(routine, tab.Data, a.cfg)
	if err != nil {
		return errors.Wrapf(err, "%s on %s", routine, in)
	}

	result := &matio.Table{Data: res}
	if len(tab.Names) == res.Cols() {
		result.Names = tab.Names
	}
	if err = matio.WriteFileAs(out, outFormat, result); err != nil {
		return errors.Wrap(err, "write output")
	}
	a.debugf("%s: wrote %dx%d to %s", routine, res.Rows(), res.Cols(), out)

	return nil
}

// SPDX-License-Identifier: MIT

package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/coper/covariance"
	"github.com/katalvlaran/coper/matio"
	"github.com/katalvlaran/coper/registry"
)

func (a *app) runCmd() *cobra.Command {
	var in, out string
	cmd := &cobra.Command{
		Use:   "run <routine>",
		Short: "Run one routine on one matrix file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := registry.Lookup(args[0]); !ok {
				return errors.Wrapf(registry.ErrUnknownRoutine, "%q (see 'coper list')", args[0])
			}

			return a.apply(args[0], in, out)
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "input matrix file")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output matrix file")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")
	a.addRoutineFlags(cmd)

	return cmd
}

func (a *app) pipelineCmd() *cobra.Command {
	var in, out, covOut string
	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Estimate the covariance of a data file, then derive partial correlations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.pipeline(in, out, covOut)
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "input data file (rows are observations)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output partial-correlation file")
	cmd.Flags().StringVar(&covOut, "cov-out", "", "also write the intermediate covariance here")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")
	a.addRoutineFlags(cmd)

	return cmd
}

// pipeline runs the estimator named by --method (default SAM), optionally
// saves Σ, then derives partial correlations from it.
func (a *app) pipeline(in, out, covOut string) error {
	outFormat, err := matio.ParseFormat(a.format)
	if err != nil {
		return err
	}
	method, err := covariance.ParseMethod(a.cfg.Method)
	if err != nil {
		return err
	}
	tab, err := matio.ReadFile(in)
	if err != nil {
		return errors.Wrap(err, "read input")
	}
	a.debugf("pipeline: read %dx%d from %s", tab.Data.Rows(), tab.Data.Cols(), in)

	covName := "cov_" + method.String()
	sigma, err := registry.Call(covName, tab.Data, a.cfg)
	if err != nil {
		return errors.Wrapf(err, "%s on %s", covName, in)
	}
	if covOut != "" {
		if err = matio.WriteFileAs(covOut, outFormat, &matio.Table{Names: tab.Names, Data: sigma}); err != nil {
			return errors.Wrap(err, "write covariance")
		}
		a.debugf("pipeline: wrote covariance to %s", covOut)
	}

	pc, err := registry.Call("cov2pcor", sigma, a.cfg)
	if err != nil {
		return errors.Wrapf(err, "cov2pcor on %s", in)
	}
	if err = matio.WriteFileAs(out, outFormat, &matio.Table{Names: tab.Names, Data: pc}); err != nil {
		return errors.Wrap(err, "write output")
	}
	a.debugf("pipeline: wrote partial correlations to %s", out)

	return nil
}

// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/coper/matio"
	"github.com/katalvlaran/coper/network"
)

func (a *app) networkCmd() *cobra.Command {
	var in string
	var threshold float64
	var components bool
	cmd := &cobra.Command{
		Use:   "network",
		Short: "Print the conditional-independence graph of a partial-correlation file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tab, err := matio.ReadFile(in)
			if err != nil {
				return errors.Wrap(err, "read input")
			}
			g, err := network.Build(tab.Data, tab.Names,
				network.WithThreshold(threshold), network.WithContext(cmd.Context()))
			if err != nil {
				return errors.Wrapf(err, "network on %s", in)
			}
			a.debugf("network: %d vertices, %d edges at |pcor| >= %g", len(g.Nodes()), len(g.Edges()), threshold)

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			for _, e := range g.Edges() {
				fmt.Fprintf(tw, "%s\t%s\t%+.6g\n", e.From, e.To, e.Weight)
			}
			if err = tw.Flush(); err != nil {
				return err
			}
			if !components {
				return nil
			}

			comps, err := g.Components()
			if err != nil {
				return err
			}
			for k, c := range comps {
				fmt.Fprintf(a.out, "component %d: %v\n", k+1, c)
			}

			return nil
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "partial-correlation matrix file")
	cmd.Flags().Float64VarP(&threshold, "threshold", "t", network.DefaultThreshold, "minimum |pcor| for an edge, in [0,1]")
	cmd.Flags().BoolVar(&components, "components", false, "also print connected components")
	_ = cmd.MarkFlagRequired("in")

	return cmd
}

// SPDX-License-Identifier: MIT
package network_test

import (
	"fmt"

	"github.com/katalvlaran/coper/matrix"
	"github.com/katalvlaran/coper/network"
)

// ExampleBuild keeps only the conditional dependencies above 0.1.
func ExampleBuild() {
	pc, _ := matrix.NewDenseFrom(3, 3, []float64{
		1, 0.5, 0.02,
		0.5, 1, 0.3,
		0.02, 0.3, 1,
	})
	g, _ := network.Build(pc, []string{"temp", "sales", "ads"}, network.WithThreshold(0.1))
	for _, e := range g.Edges() {
		fmt.Printf("%s -- %s  %+.2f\n", e.From, e.To, e.Weight)
	}
	comps, _ := g.Components()
	fmt.Println(comps)
	// Output:
	// temp -- sales  +0.50
	// sales -- ads  +0.30
	// [[temp sales ads]]
}

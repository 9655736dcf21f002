// SPDX-License-Identifier: MIT

package network

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/katalvlaran/coper"
	"github.com/katalvlaran/coper/matrix"
)

// Graph is an immutable undirected graph over the variables of a
// partial-correlation matrix.
type Graph struct {
	opts  Options
	names []string
	index map[string]int
	adj   [][]int // ascending vertex indices
	edges []Edge
}

// Build thresholds pc into a Graph. names label the vertices in matrix order;
// nil yields "x1".."xp". pc must be square and finite. Only the upper
// triangle is read.
//
// Implementation:
//   - Stage 1: Validate options, shape, finiteness and names.
//   - Stage 2: For i<j keep (i,j) when PC[i,j] ≠ 0 and |PC[i,j]| ≥ threshold.
//   - Stage 3: Order edges by |weight| descending, ties by (From, To) index.
//
// Complexity: O(p² + E·log E).
func Build(pc matrix.Matrix, names []string, opts ...Option) (*Graph, error) {
	const op = "network.Build"
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	if pc == nil {
		return nil, coper.DimensionErrorf(op, 0, 0, "nil matrix")
	}
	p := pc.Rows()
	if p != pc.Cols() || p == 0 {
		return nil, coper.DimensionErrorf(op, pc.Rows(), pc.Cols(), "not square")
	}
	if i, j, v, found := matrix.FirstNonFinite(pc); found {
		return nil, &coper.EntryError{Op: op, Row: i, Col: j, Value: v, Kind: coper.ErrNonFiniteInput}
	}
	if names == nil {
		names = make([]string, p)
		for i := range names {
			names[i] = "x" + strconv.Itoa(i+1)
		}
	}
	if len(names) != p {
		return nil, fmt.Errorf("%s: %d names for order %d: %w", op, len(names), p, ErrNames)
	}

	g := &Graph{
		opts:  o,
		names: append([]string(nil), names...),
		index: make(map[string]int, p),
		adj:   make([][]int, p),
	}
	for i, name := range g.names {
		if _, dup := g.index[name]; dup {
			return nil, fmt.Errorf("%s: duplicate name %q: %w", op, name, ErrNames)
		}
		g.index[name] = i
	}

	type pair struct {
		i, j int
		w    float64
	}
	var kept []pair
	for i := 0; i < p; i++ {
		for j := i + 1; j < p; j++ {
			w, err := pc.At(i, j)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			if w == 0 || math.Abs(w) < o.Threshold {
				continue
			}
			kept = append(kept, pair{i, j, w})
			g.adj[i] = append(g.adj[i], j)
			g.adj[j] = append(g.adj[j], i)
		}
	}
	for i := range g.adj {
		sort.Ints(g.adj[i])
	}

	sort.SliceStable(kept, func(a, b int) bool {
		return math.Abs(kept[a].w) > math.Abs(kept[b].w)
	})
	g.edges = make([]Edge, len(kept))
	for k, e := range kept {
		g.edges[k] = Edge{From: g.names[e.i], To: g.names[e.j], Weight: e.w}
	}

	return g, nil
}

// Nodes returns the vertex names in matrix order.
func (g *Graph) Nodes() []string { return append([]string(nil), g.names...) }

// Edges returns every edge, strongest |weight| first.
func (g *Graph) Edges() []Edge { return append([]Edge(nil), g.edges...) }

// Threshold reports the threshold the graph was built with.
func (g *Graph) Threshold() float64 { return g.opts.Threshold }

// Neighbors returns the vertices adjacent to name in matrix order.
func (g *Graph) Neighbors(name string) ([]string, error) {
	i, ok := g.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVertex, name)
	}
	out := make([]string, len(g.adj[i]))
	for k, j := range g.adj[i] {
		out[k] = g.names[j]
	}

	return out, nil
}

// SPDX-License-Identifier: MIT

package network

// walker holds the mutable breadth-first search state.
type walker struct {
	g       *Graph
	queue   []int
	visited []bool
}

// Components partitions the vertices into connected components. Each
// component lists its vertices in BFS order from its lowest-index vertex;
// components are ordered by that vertex. Isolated variables form singleton
// components. Returns the context error if the build context is cancelled.
//
// Complexity: O(p + E).
func (g *Graph) Components() ([][]string, error) {
	w := &walker{
		g:       g,
		queue:   make([]int, 0, len(g.names)),
		visited: make([]bool, len(g.names)),
	}

	var comps [][]string
	for root := range g.names {
		if w.visited[root] {
			continue
		}
		comp, err := w.run(root)
		if err != nil {
			return nil, err
		}
		comps = append(comps, comp)
	}

	return comps, nil
}

// run explores the component containing root.
func (w *walker) run(root int) ([]string, error) {
	ctx := w.g.opts.Ctx
	w.visited[root] = true
	w.queue = append(w.queue[:0], root)

	var order []string
	for len(w.queue) > 0 {
		// cancellation check (once per loop)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		cur := w.queue[0]
		w.queue = w.queue[1:]
		order = append(order, w.g.names[cur])
		for _, nbr := range w.g.adj[cur] {
			if !w.visited[nbr] {
				w.visited[nbr] = true
				w.queue = append(w.queue, nbr)
			}
		}
	}

	return order, nil
}

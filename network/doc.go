// SPDX-License-Identifier: MIT

// Package network turns a partial-correlation matrix into its conditional
// independence graph.
//
// Vertex i and j are joined when |PC[i,j]| reaches a threshold, i.e. when the
// two variables stay associated after conditioning on all others. The graph
// is undirected and weighted by the signed partial correlation.
//
// Operations:
//   - Build       PC (+ names) → *Graph
//   - Edges       all edges, strongest first
//   - Neighbors   adjacent vertices in index order
//   - Components  connected components via breadth-first search
//
// Complexity: Build O(p²), Components O(p + E).
package network

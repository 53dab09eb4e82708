// Package graphalg provides graph algorithm primitives over adjacency maps:
// community detection, betweenness and closeness centrality, and PageRank.
// All functions are pure and deterministic for a given adjacency.
package graphalg

import "sort"

// Neighbor is one weighted outgoing edge endpoint.
type Neighbor struct {
	ID     string
	Weight float64
}

// Adjacency maps a node id to its outgoing neighbors.
type Adjacency map[string][]Neighbor

// AddEdge appends a directed weighted edge.
func (a Adjacency) AddEdge(from, to string, weight float64) {
	a[from] = append(a[from], Neighbor{ID: to, Weight: weight})
	if _, ok := a[to]; !ok {
		a[to] = nil
	}
}

// AddUndirected appends the edge in both directions.
func (a Adjacency) AddUndirected(x, y string, weight float64) {
	a.AddEdge(x, y, weight)
	a.AddEdge(y, x, weight)
}

// Nodes returns all node ids in sorted order. Sorting keeps every algorithm
// in this package deterministic across runs.
func (a Adjacency) Nodes() []string {
	nodes := make([]string, 0, len(a))
	seen := make(map[string]bool, len(a))
	for id, neighbors := range a {
		if !seen[id] {
			seen[id] = true
			nodes = append(nodes, id)
		}
		for _, n := range neighbors {
			if !seen[n.ID] {
				seen[n.ID] = true
				nodes = append(nodes, n.ID)
			}
		}
	}
	sort.Strings(nodes)
	return nodes
}

// NumEdges returns the total directed edge count.
func (a Adjacency) NumEdges() int {
	total := 0
	for _, neighbors := range a {
		total += len(neighbors)
	}
	return total
}

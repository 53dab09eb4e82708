package graphalg

import "math"

// PageRankOptions configures the power iteration.
type PageRankOptions struct {
	DampingFactor        float64 // probability of following an edge vs teleporting
	ConvergenceThreshold float64 // L1 delta below which iteration stops
	MaxIterations        int
}

// DefaultPageRankOptions returns the standard configuration.
func DefaultPageRankOptions() PageRankOptions {
	return PageRankOptions{
		DampingFactor:        0.85,
		ConvergenceThreshold: 1e-6,
		MaxIterations:        100,
	}
}

// PageRank computes PageRank scores over the adjacency. Self-loops are
// excluded from propagation, and dangling nodes contribute no mass (their
// score is not redistributed). Convergence is checked on the L1 norm of the
// score delta.
func PageRank(adj Adjacency, opts PageRankOptions) map[string]float64 {
	if opts.DampingFactor <= 0 || opts.DampingFactor >= 1 {
		opts.DampingFactor = 0.85
	}
	if opts.ConvergenceThreshold <= 0 {
		opts.ConvergenceThreshold = 1e-6
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = 100
	}

	nodes := adj.Nodes()
	n := len(nodes)
	if n == 0 {
		return map[string]float64{}
	}

	// Out-weight per node, self-loops excluded.
	outWeight := make(map[string]float64, n)
	for _, id := range nodes {
		for _, nb := range adj[id] {
			if nb.ID == id {
				continue
			}
			w := nb.Weight
			if w <= 0 {
				w = 1
			}
			outWeight[id] += w
		}
	}

	scores := make(map[string]float64, n)
	initial := 1.0 / float64(n)
	for _, id := range nodes {
		scores[id] = initial
	}

	teleport := (1.0 - opts.DampingFactor) / float64(n)
	next := make(map[string]float64, n)

	for iter := 0; iter < opts.MaxIterations; iter++ {
		for _, id := range nodes {
			next[id] = teleport
		}

		for _, id := range nodes {
			ow := outWeight[id]
			if ow == 0 {
				continue // dangling: mass dropped
			}
			contrib := opts.DampingFactor * scores[id] / ow
			for _, nb := range adj[id] {
				if nb.ID == id {
					continue
				}
				w := nb.Weight
				if w <= 0 {
					w = 1
				}
				next[nb.ID] += contrib * w
			}
		}

		l1 := 0.0
		for _, id := range nodes {
			l1 += math.Abs(next[id] - scores[id])
		}

		scores, next = next, scores

		if l1 < opts.ConvergenceThreshold {
			break
		}
	}

	return scores
}

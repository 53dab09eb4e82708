package graphalg

import "container/list"

// BetweennessCentrality computes node betweenness via Brandes' algorithm,
// treating all edges as unit length. Scores are normalized by
// 1/((n-1)(n-2)) when the graph has more than two nodes.
func BetweennessCentrality(adj Adjacency) map[string]float64 {
	nodes := adj.Nodes()
	betweenness := make(map[string]float64, len(nodes))
	for _, id := range nodes {
		betweenness[id] = 0
	}

	for _, source := range nodes {
		stack := make([]string, 0, len(nodes))
		predecessors := make(map[string][]string, len(nodes))
		sigma := make(map[string]float64, len(nodes))
		distance := make(map[string]int, len(nodes))

		for _, id := range nodes {
			sigma[id] = 0
			distance[id] = -1
		}
		sigma[source] = 1
		distance[source] = 0

		queue := list.New()
		queue.PushBack(source)

		for queue.Len() > 0 {
			v := queue.Remove(queue.Front()).(string)
			stack = append(stack, v)

			for _, n := range adj[v] {
				w := n.ID
				if distance[w] < 0 {
					queue.PushBack(w)
					distance[w] = distance[v] + 1
				}
				if distance[w] == distance[v]+1 {
					sigma[w] += sigma[v]
					predecessors[w] = append(predecessors[w], v)
				}
			}
		}

		// Back-propagation of dependencies.
		delta := make(map[string]float64, len(nodes))
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range predecessors[w] {
				if sigma[w] > 0 {
					delta[v] += (sigma[v] / sigma[w]) * (1 + delta[w])
				}
			}
			if w != source {
				betweenness[w] += delta[w]
			}
		}
	}

	if n := len(nodes); n > 2 {
		norm := 1.0 / float64((n-1)*(n-2))
		for id := range betweenness {
			betweenness[id] *= norm
		}
	}

	return betweenness
}

// ClosenessCentrality computes closeness for all nodes as
// reachable/totalDistance over an unweighted BFS from each node.
// Isolated nodes score zero.
func ClosenessCentrality(adj Adjacency) map[string]float64 {
	nodes := adj.Nodes()
	closeness := make(map[string]float64, len(nodes))

	for _, source := range nodes {
		distance := make(map[string]int, len(nodes))
		for _, id := range nodes {
			distance[id] = -1
		}
		distance[source] = 0

		queue := list.New()
		queue.PushBack(source)

		for queue.Len() > 0 {
			v := queue.Remove(queue.Front()).(string)
			for _, n := range adj[v] {
				if distance[n.ID] < 0 {
					distance[n.ID] = distance[v] + 1
					queue.PushBack(n.ID)
				}
			}
		}

		totalDistance := 0
		reachable := 0
		for _, d := range distance {
			if d > 0 {
				totalDistance += d
				reachable++
			}
		}

		if totalDistance > 0 {
			closeness[source] = float64(reachable) / float64(totalDistance)
		} else {
			closeness[source] = 0
		}
	}

	return closeness
}

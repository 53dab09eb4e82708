package graphalg

import "sort"

const defaultLabelIterations = 20

// DetectCommunities partitions the graph via label propagation and returns
// a node -> community id map. Community ids are compacted to 0..k-1 in
// order of each community's smallest member, so the mapping is stable for a
// given adjacency.
func DetectCommunities(adj Adjacency) map[string]int {
	nodes := adj.Nodes()
	if len(nodes) == 0 {
		return map[string]int{}
	}

	// Undirected neighbor view; propagation ignores edge direction.
	neighbors := make(map[string][]Neighbor, len(nodes))
	for from, outs := range adj {
		for _, n := range outs {
			neighbors[from] = append(neighbors[from], n)
			neighbors[n.ID] = append(neighbors[n.ID], Neighbor{ID: from, Weight: n.Weight})
		}
	}

	// Each node starts in its own community.
	labels := make(map[string]int, len(nodes))
	for i, id := range nodes {
		labels[id] = i
	}

	for iter := 0; iter < defaultLabelIterations; iter++ {
		changed := false

		for _, id := range nodes {
			weight := make(map[int]float64)
			for _, n := range neighbors[id] {
				w := n.Weight
				if w <= 0 {
					w = 1
				}
				weight[labels[n.ID]] += w
			}
			if len(weight) == 0 {
				continue
			}

			// Heaviest neighbor label wins; ties go to the smaller label
			// to keep the pass deterministic.
			best := labels[id]
			bestWeight := weight[best]
			for label, w := range weight {
				if w > bestWeight || (w == bestWeight && label < best) {
					best = label
					bestWeight = w
				}
			}

			if best != labels[id] {
				labels[id] = best
				changed = true
			}
		}

		if !changed {
			break
		}
	}

	return compactLabels(nodes, labels)
}

// compactLabels renumbers communities 0..k-1 ordered by smallest member id.
func compactLabels(nodes []string, labels map[string]int) map[string]int {
	firstMember := make(map[int]string)
	for _, id := range nodes {
		l := labels[id]
		if cur, ok := firstMember[l]; !ok || id < cur {
			firstMember[l] = id
		}
	}

	order := make([]int, 0, len(firstMember))
	for l := range firstMember {
		order = append(order, l)
	}
	sort.Slice(order, func(i, j int) bool {
		return firstMember[order[i]] < firstMember[order[j]]
	})

	renumber := make(map[int]int, len(order))
	for i, l := range order {
		renumber[l] = i
	}

	out := make(map[string]int, len(labels))
	for id, l := range labels {
		out[id] = renumber[l]
	}
	return out
}

// CommunityCount returns the number of distinct communities in a mapping.
func CommunityCount(communities map[string]int) int {
	seen := make(map[int]bool)
	for _, c := range communities {
		seen[c] = true
	}
	return len(seen)
}

// GroupByCommunity inverts a node -> community map into member lists with
// each list sorted.
func GroupByCommunity(communities map[string]int) map[int][]string {
	groups := make(map[int][]string)
	for id, c := range communities {
		groups[c] = append(groups[c], id)
	}
	for c := range groups {
		sort.Strings(groups[c])
	}
	return groups
}

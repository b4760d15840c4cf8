package joingraph

import "sort"

// ConnectTables computes an approximate minimal join network spanning the
// requested tables and returns it as an ordered, connected, acyclic edge
// sequence suitable for sequential JOIN emission.
//
// The network is a 2-approximate Steiner tree: one BFS per terminal yields
// pairwise shortest distances, a minimum spanning tree over the
// terminal-complete graph selects which terminal pairs to connect, and each
// spanning edge is expanded back into its shortest path in the schema graph.
// Edges are emitted in breadth-first order starting from the first requested
// table. Exactly two terminals reduce to the plain shortest path.
func (s *Snapshot) ConnectTables(tables []string) ([]JoinStep, error) {
	requested := dedupe(tables)
	if len(requested) < 2 {
		return nil, &InsufficientTablesError{Provided: len(requested)}
	}

	terminals, err := s.resolve(requested)
	if err != nil {
		return nil, err
	}
	for _, idx := range terminals[1:] {
		if s.components[idx] != s.components[terminals[0]] {
			return nil, &NoJoinPathError{Tables: requested}
		}
	}

	if len(terminals) == 2 {
		return s.ShortestJoinPath(requested[0], requested[1])
	}

	// One BFS per terminal; schema graphs are small enough that the k*n cost
	// is irrelevant next to the introspection that produced the snapshot.
	k := len(terminals)
	preds := make([][]int, k)
	weights := make([][]int, k)
	for i, idx := range terminals {
		dist, pred := s.bfsFrom(idx)
		preds[i] = pred
		weights[i] = make([]int, k)
		for j, other := range terminals {
			weights[i][j] = dist[other]
		}
	}

	edges := make(map[[2]int]struct{})
	for _, mstEdge := range primMST(weights) {
		from, to := mstEdge[0], mstEdge[1]
		path := reconstructPath(preds[from], terminals[from], terminals[to])
		for i := 0; i+1 < len(path); i++ {
			edges[normalizeEdge(path[i], path[i+1])] = struct{}{}
		}
	}

	steps := make([]JoinStep, 0, len(edges))
	for _, edge := range s.bfsEdgeOrder(terminals[0], edges) {
		step, err := s.Step(s.names[edge[0]], s.names[edge[1]])
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// primMST computes a minimum spanning tree over a complete weighted graph
// given as a symmetric weight matrix. Returns tree edges as (parent, child)
// vertex pairs. Ties resolve to the lowest vertex index, keeping the result
// deterministic.
func primMST(weights [][]int) [][2]int {
	n := len(weights)
	inTree := make([]bool, n)
	cost := make([]int, n)
	parent := make([]int, n)
	for i := range cost {
		cost[i] = int(^uint(0) >> 1)
		parent[i] = -1
	}
	cost[0] = 0

	var edges [][2]int
	for range weights {
		next := -1
		for v := 0; v < n; v++ {
			if !inTree[v] && (next == -1 || cost[v] < cost[next]) {
				next = v
			}
		}
		inTree[next] = true
		if parent[next] != -1 {
			edges = append(edges, [2]int{parent[next], next})
		}
		for v := 0; v < n; v++ {
			if !inTree[v] && weights[next][v] < cost[v] {
				cost[v] = weights[next][v]
				parent[v] = next
			}
		}
	}
	return edges
}

// bfsEdgeOrder orders an undirected edge set as directed (parent, child)
// pairs discovered by a breadth-first traversal from start. Neighbours are
// visited in ascending index order.
func (s *Snapshot) bfsEdgeOrder(start int, edges map[[2]int]struct{}) [][2]int {
	adjacency := make(map[int][]int)
	for edge := range edges {
		adjacency[edge[0]] = append(adjacency[edge[0]], edge[1])
		adjacency[edge[1]] = append(adjacency[edge[1]], edge[0])
	}
	for _, neighbours := range adjacency {
		sort.Ints(neighbours)
	}

	seen := map[int]bool{start: true}
	queue := []int{start}
	var ordered [][2]int
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, next := range adjacency[node] {
			if seen[next] {
				continue
			}
			seen[next] = true
			queue = append(queue, next)
			ordered = append(ordered, [2]int{node, next})
		}
	}
	return ordered
}

func normalizeEdge(u, v int) [2]int {
	if u < v {
		return [2]int{u, v}
	}
	return [2]int{v, u}
}

// dedupe removes duplicates while preserving first-occurrence order.
func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

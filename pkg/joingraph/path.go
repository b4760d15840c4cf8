package joingraph

// ShortestPath returns the table sequence of the shortest undirected join
// path from left to right, both inclusive. Every edge has weight one;
// neighbours are explored in ascending index order, so ties between
// equal-length paths resolve the same way for a given snapshot. A request
// with left == right yields a single-table path.
func (s *Snapshot) ShortestPath(left, right string) ([]string, error) {
	indices, err := s.resolve([]string{left, right})
	if err != nil {
		return nil, err
	}
	source, target := indices[0], indices[1]

	if s.components[source] != s.components[target] {
		return nil, &NoJoinPathError{Tables: []string{left, right}}
	}
	if source == target {
		return []string{left}, nil
	}

	_, pred := s.bfsFrom(source)
	path := reconstructPath(pred, source, target)

	names := make([]string, len(path))
	for i, idx := range path {
		names[i] = s.names[idx]
	}
	return names, nil
}

// ShortestJoinPath materializes the shortest path between two tables into
// directionally oriented join steps. A degenerate left == right request
// returns zero steps.
func (s *Snapshot) ShortestJoinPath(left, right string) ([]JoinStep, error) {
	path, err := s.ShortestPath(left, right)
	if err != nil {
		return nil, err
	}

	steps := make([]JoinStep, 0, len(path)-1)
	for i := 0; i+1 < len(path); i++ {
		step, err := s.Step(path[i], path[i+1])
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// bfsFrom runs an unweighted breadth-first search from start and returns the
// distance and predecessor arrays over all table indices. Unreachable tables
// keep distance -1 and predecessor -1.
func (s *Snapshot) bfsFrom(start int) (dist, pred []int) {
	dist = make([]int, len(s.names))
	pred = make([]int, len(s.names))
	for i := range dist {
		dist[i] = -1
		pred[i] = -1
	}
	dist[start] = 0

	queue := []int{start}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, next := range s.adjacency[node] {
			if dist[next] != -1 {
				continue
			}
			dist[next] = dist[node] + 1
			pred[next] = node
			queue = append(queue, next)
		}
	}
	return dist, pred
}

// reconstructPath walks a predecessor array back from goal to start and
// returns the index sequence start..goal. Callers must have verified
// reachability.
func reconstructPath(pred []int, start, goal int) []int {
	var reversed []int
	for cur := goal; cur != start; cur = pred[cur] {
		reversed = append(reversed, cur)
	}
	reversed = append(reversed, start)

	path := make([]int, len(reversed))
	for i, idx := range reversed {
		path[len(reversed)-1-i] = idx
	}
	return path
}

package joingraph

// Step orients one adjacency edge into a join step. The first constraint in
// stored order whose from-table matches left is used as-is; otherwise the
// first whose from-table matches right is used with each column pair
// reversed. When several constraints connect the same pair the stored order
// decides which one wins, so repeated calls return the same step; callers
// needing a specific constraint among duplicates must disambiguate upstream.
func (s *Snapshot) Step(left, right string) (JoinStep, error) {
	constraints := s.constraints[pairOf(left, right)]

	for _, c := range constraints {
		if c.FromTable == left && c.ToTable == right {
			return JoinStep{
				LeftTable:      left,
				RightTable:     right,
				ColumnPairs:    append([]ColumnPair(nil), c.ColumnPairs...),
				ConstraintName: c.Name,
			}, nil
		}
		if c.FromTable == right && c.ToTable == left {
			reversed := make([]ColumnPair, len(c.ColumnPairs))
			for i, pair := range c.ColumnPairs {
				reversed[i] = ColumnPair{From: pair.To, To: pair.From}
			}
			return JoinStep{
				LeftTable:      left,
				RightTable:     right,
				ColumnPairs:    reversed,
				ConstraintName: c.Name,
			}, nil
		}
	}

	names := make([]string, 0, len(constraints))
	for _, c := range constraints {
		name := c.Name
		if name == "" {
			name = "<unnamed>"
		}
		names = append(names, name)
	}
	return JoinStep{}, &NoConstraintForEdgeError{Left: left, Right: right, Constraints: names}
}

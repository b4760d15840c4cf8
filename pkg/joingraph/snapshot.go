package joingraph

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// pairKey identifies an unordered table pair. A is never greater than B so
// that {x,y} and {y,x} map to the same registry entry.
type pairKey struct {
	A string
	B string
}

func pairOf(x, y string) pairKey {
	if x <= y {
		return pairKey{A: x, B: y}
	}
	return pairKey{A: y, B: x}
}

// Snapshot is the immutable, queryable form of one schema's foreign-key
// graph. Tables are addressed by dense indices assigned in provider order;
// the adjacency is undirected with unit-weight edges. Snapshots are safe for
// concurrent readers once built.
type Snapshot struct {
	names       []string
	index       map[string]int
	adjacency   [][]int // per table, neighbour indices sorted ascending
	components  []int
	constraints map[pairKey][]ForeignKeyConstraint
	dangling    []DanglingReference
}

// Build constructs a snapshot from the provider's current metadata. The
// result is deterministic for identical provider output: index assignment
// follows table order, constraint precedence follows per-table constraint
// order. Constraints referencing tables absent from the table set are
// excluded from the graph, recorded as dangling references, and logged as a
// warning; they never fail the build.
func Build(ctx context.Context, provider MetadataProvider, logger *zap.Logger) (*Snapshot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	tables, err := provider.ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	s := &Snapshot{
		names:       append([]string(nil), tables...),
		index:       make(map[string]int, len(tables)),
		adjacency:   make([][]int, len(tables)),
		components:  make([]int, len(tables)),
		constraints: make(map[pairKey][]ForeignKeyConstraint),
	}
	for i, name := range s.names {
		s.index[name] = i
	}

	neighbours := make([]map[int]struct{}, len(s.names))
	for i := range neighbours {
		neighbours[i] = make(map[int]struct{})
	}

	for _, table := range s.names {
		fks, err := provider.GetForeignKeys(ctx, table)
		if err != nil {
			return nil, fmt.Errorf("foreign keys of %q: %w", table, err)
		}
		for _, fk := range fks {
			if fk.ReferencedTable == "" || len(fk.LocalColumns) == 0 {
				continue
			}

			ref, ok := s.index[fk.ReferencedTable]
			if !ok {
				s.dangling = append(s.dangling, DanglingReference{
					FromTable:      table,
					ToTable:        fk.ReferencedTable,
					ConstraintName: fk.Name,
				})
				continue
			}

			pairs := make([]ColumnPair, 0, len(fk.LocalColumns))
			for i, local := range fk.LocalColumns {
				var referenced string
				if i < len(fk.ReferencedColumns) {
					referenced = fk.ReferencedColumns[i]
				}
				pairs = append(pairs, ColumnPair{From: local, To: referenced})
			}

			key := pairOf(table, fk.ReferencedTable)
			s.constraints[key] = append(s.constraints[key], ForeignKeyConstraint{
				Name:        fk.Name,
				FromTable:   table,
				ToTable:     fk.ReferencedTable,
				ColumnPairs: pairs,
			})

			// Self-referencing constraints stay in the registry but add no
			// adjacency edge; a path never routes through a self loop.
			src := s.index[table]
			if src == ref {
				continue
			}
			neighbours[src][ref] = struct{}{}
			neighbours[ref][src] = struct{}{}
		}
	}

	for i, set := range neighbours {
		adj := make([]int, 0, len(set))
		for n := range set {
			adj = append(adj, n)
		}
		sort.Ints(adj)
		s.adjacency[i] = adj
	}

	s.labelComponents()

	if len(s.dangling) > 0 {
		refs := make([]string, 0, len(s.dangling))
		for _, d := range s.dangling {
			refs = append(refs, d.FromTable+"->"+d.ToTable)
		}
		sort.Strings(refs)
		logger.Warn("foreign keys referencing unknown tables were skipped",
			zap.Strings("references", refs))
	}

	return s, nil
}

// labelComponents assigns connected component labels via BFS over the
// undirected adjacency, visiting tables in ascending index order.
func (s *Snapshot) labelComponents() {
	for i := range s.components {
		s.components[i] = -1
	}
	label := 0
	queue := make([]int, 0, len(s.names))
	for start := range s.names {
		if s.components[start] != -1 {
			continue
		}
		s.components[start] = label
		queue = append(queue[:0], start)
		for len(queue) > 0 {
			node := queue[0]
			queue = queue[1:]
			for _, next := range s.adjacency[node] {
				if s.components[next] == -1 {
					s.components[next] = label
					queue = append(queue, next)
				}
			}
		}
		label++
	}
}

// Tables returns all table names in index order.
func (s *Snapshot) Tables() []string {
	return append([]string(nil), s.names...)
}

// HasTable reports whether the snapshot knows the given table.
func (s *Snapshot) HasTable(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Dangling returns the foreign keys that were skipped because their target
// table is not part of the schema.
func (s *Snapshot) Dangling() []DanglingReference {
	return append([]DanglingReference(nil), s.dangling...)
}

// Constraints returns all constraints recorded between two tables, in
// provider order, regardless of direction. The result is a copy.
func (s *Snapshot) Constraints(a, b string) []ForeignKeyConstraint {
	return append([]ForeignKeyConstraint(nil), s.constraints[pairOf(a, b)]...)
}

// resolve maps table names to indices, collecting all unknown names into a
// single UnknownTableError.
func (s *Snapshot) resolve(names []string) ([]int, error) {
	var missing []string
	indices := make([]int, 0, len(names))
	for _, name := range names {
		idx, ok := s.index[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		indices = append(indices, idx)
	}
	if len(missing) > 0 {
		return nil, &UnknownTableError{Tables: missing, Available: s.Tables()}
	}
	return indices, nil
}

package joingraph

import (
	"fmt"
	"sort"
	"strings"
)

// UnknownTableError reports requested table names that are not part of the
// schema. The message lists both the offending names and the available set.
type UnknownTableError struct {
	Tables    []string
	Available []string
}

func (e *UnknownTableError) Error() string {
	avail := append([]string(nil), e.Available...)
	sort.Strings(avail)
	return fmt.Sprintf("unknown tables: %s. Available tables: %s.",
		strings.Join(e.Tables, ", "), strings.Join(avail, ", "))
}

// NoJoinPathError reports that the requested tables span more than one
// connected component, so no join path can exist.
type NoJoinPathError struct {
	Tables []string
}

func (e *NoJoinPathError) Error() string {
	if len(e.Tables) == 2 {
		return fmt.Sprintf("no join path between %q and %q", e.Tables[0], e.Tables[1])
	}
	return fmt.Sprintf("no join path connects: %s", strings.Join(e.Tables, ", "))
}

// InsufficientTablesError reports a multi-table request with fewer than two
// distinct tables after deduplication.
type InsufficientTablesError struct {
	Provided int
}

func (e *InsufficientTablesError) Error() string {
	return fmt.Sprintf("provide at least two distinct tables to connect, got %d", e.Provided)
}

// NoConstraintForEdgeError reports an adjacency edge with no constraint that
// can be oriented to match it. This indicates a snapshot invariant violation
// and should never occur for snapshots produced by Build.
type NoConstraintForEdgeError struct {
	Left        string
	Right       string
	Constraints []string // names of constraints recorded for the pair
}

func (e *NoConstraintForEdgeError) Error() string {
	known := "<none>"
	if len(e.Constraints) > 0 {
		known = strings.Join(e.Constraints, ", ")
	}
	return fmt.Sprintf("no oriented foreign key fits edge %q -> %q; known constraints: %s",
		e.Left, e.Right, known)
}

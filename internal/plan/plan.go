// Package plan computes the topological generation order over tables linked
// by foreign keys (spec.md §4.6): parent tables before the children that
// reference them, ties broken by declaration order so the order is
// deterministic for a given schema.
package plan

import (
	"fmt"

	"github.com/guimmamanna/synthforge/internal/schema"
)

// DependencyError is raised when a foreign key references an undeclared
// table, or when the foreign-key graph contains a cycle. Both are fatal,
// matching spec.md §7's "Dependency errors... halt immediately" policy.
type DependencyError struct {
	msg string
}

func (e *DependencyError) Error() string { return e.msg }

func dependencyErrf(format string, args ...any) error {
	return &DependencyError{msg: fmt.Sprintf(format, args...)}
}

// Order computes a Kahn topological order over s.Tables: an edge runs from
// referenced table to referring table for every foreign key, so parents
// always precede children. Ties are broken by s.TableOrder (insertion
// order) to keep the result deterministic across runs.
func Order(s *schema.Schema) ([]string, error) {
	children := make(map[string][]string, len(s.Tables))
	indegree := make(map[string]int, len(s.Tables))
	for _, name := range s.TableOrder {
		indegree[name] = 0
	}

	for _, name := range s.TableOrder {
		table := s.Tables[name]
		for _, fk := range table.ForeignKeys {
			if _, ok := s.Tables[fk.RefTable]; !ok {
				return nil, dependencyErrf("table %q: foreign key %q references undeclared table %q", name, fk.Column, fk.RefTable)
			}
			children[fk.RefTable] = append(children[fk.RefTable], name)
			indegree[name]++
		}
	}

	// Kahn's algorithm, but instead of a FIFO queue (whose ordering would
	// depend on edge-discovery order once several nodes become ready at
	// once) each round scans TableOrder once and places, in declaration
	// order, every not-yet-placed table whose indegree is 0 when the scan
	// reaches it. A table freed by a placement later in the same scan is
	// placed in that round too; one freed by a table after it in
	// TableOrder waits for the next round. The result depends only on the
	// schema's declaration order.
	placed := make(map[string]bool, len(s.TableOrder))
	order := make([]string, 0, len(s.TableOrder))
	for len(order) < len(s.TableOrder) {
		progressed := false
		for _, name := range s.TableOrder {
			if placed[name] || indegree[name] != 0 {
				continue
			}
			placed[name] = true
			order = append(order, name)
			progressed = true
			for _, child := range children[name] {
				indegree[child]--
			}
		}
		if !progressed {
			return nil, dependencyErrf("cycle detected in foreign key dependencies")
		}
	}
	return order, nil
}

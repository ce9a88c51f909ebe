package planner

import "golang.org/x/exp/slices"

// DAG is the finished dependency graph a Planner produces: a fixed set of
// Acts and the ordering edges between them. It is immutable once built —
// iterating a DAG's orderings after further building would be a programmer
// error (spec.md §7), which is exactly why Planner.Build returns a new,
// detached value rather than a live view of the builder's own state.
type DAG struct {
	Acts       []*Act
	Successors map[int][]int // act ID -> sorted successor act IDs
}

// InDegree returns the number of unsatisfied predecessor edges for every
// act, indexed by act ID.
func (d *DAG) InDegree() []int {
	indeg := make([]int, len(d.Acts))
	for _, tos := range d.Successors {
		for _, to := range tos {
			indeg[to]++
		}
	}
	return indeg
}

// HasCycle reports whether the DAG contains a cycle, via Kahn's algorithm.
// A cycle here indicates a bug in the planner's edge construction, not a
// legitimate state of the system under test (spec.md §7: DAG cycles are a
// fatal, checker-internal condition).
func (d *DAG) HasCycle() bool {
	indeg := d.InDegree()
	queue := make([]int, 0, len(d.Acts))
	for id, deg := range indeg {
		if deg == 0 {
			queue = append(queue, id)
		}
	}
	slices.Sort(queue)

	visited := 0
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		visited++
		for _, w := range d.Successors[v] {
			indeg[w]--
			if indeg[w] == 0 {
				queue = append(queue, w)
			}
		}
	}
	return visited != len(d.Acts)
}

// Package dagorder enumerates every topological linearization of a
// planner.DAG: the exhaustive, deterministic state-space the executor walks
// one sequence at a time.
package dagorder

import (
	"iter"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/dreamware/torua-linchecker/internal/planner"
)

// frame is one level of the explicit backtracking stack: the sorted set of
// ready candidates available when this level was entered, and how far
// through them we've progressed. Using an explicit stack instead of
// recursion keeps enumeration safe for the wide, shallow DAGs a multi-act
// workflow produces (spec.md §9: "use iterative backtracking with an
// explicit stack rather than unbounded recursion").
type frame struct {
	ready []int
	idx   int
}

// Orderings returns a lazy sequence of every topological linearization of
// dag, each as a slice of Acts in emission order. The sequence is pulled
// one linearization at a time via Go's range-over-func iterators, so a
// caller that stops early (via a break in a for/range, or returning false
// from the yield callback it passes in) never pays for the orderings it didn't
// visit (spec.md §9: "stream linearizations lazily").
//
// Orderings panics if dag contains a cycle: that is a bug in the planner's
// edge construction, not a legitimate state of the system under test
// (spec.md §7).
func Orderings(dag *planner.DAG) iter.Seq[[]*planner.Act] {
	if dag.HasCycle() {
		panic("dagorder: DAG contains a cycle")
	}

	n := len(dag.Acts)
	initialIndeg := dag.InDegree()

	return func(yield func([]*planner.Act) bool) {
		if n == 0 {
			// An empty DAG has exactly one linearization: the empty sequence.
			// The loop below never reaches the len(path)==n check in this
			// case (the initial frame's ready set is also empty), so it's
			// handled explicitly here rather than falling out of it silently.
			yield(nil)
			return
		}

		indeg := slices.Clone(initialIndeg)
		visited := make([]bool, n)
		path := make([]int, 0, n)
		stack := []frame{newFrame(indeg, visited)}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]

			if top.idx >= len(top.ready) {
				stack = stack[:len(stack)-1]
				if len(path) > 0 {
					last := path[len(path)-1]
					path = path[:len(path)-1]
					unchoose(dag, indeg, visited, last)
				}
				continue
			}

			v := top.ready[top.idx]
			top.idx++

			choose(dag, indeg, visited, v)
			path = append(path, v)

			if len(path) == n {
				if !yield(materialize(dag, path)) {
					unchoose(dag, indeg, visited, v)
					path = path[:len(path)-1]
					return
				}
				unchoose(dag, indeg, visited, v)
				path = path[:len(path)-1]
				continue
			}

			stack = append(stack, newFrame(indeg, visited))
		}
	}
}

func newFrame(indeg []int, visited []bool) frame {
	ready := make([]int, 0, len(indeg))
	for id, deg := range indeg {
		if deg == 0 && !visited[id] {
			ready = append(ready, id)
		}
	}
	// Node IDs are assigned by the planner in builder-call order, so
	// iterating 0..n-1 above already yields them sorted; slices.Sort is a
	// defensive no-op that keeps the contract explicit (spec.md §9 Open
	// Question 3: sibling order is unspecified beyond "deterministic").
	slices.Sort(ready)
	return frame{ready: ready}
}

func choose(dag *planner.DAG, indeg []int, visited []bool, v int) {
	visited[v] = true
	for _, w := range dag.Successors[v] {
		indeg[w]--
	}
}

func unchoose(dag *planner.DAG, indeg []int, visited []bool, v int) {
	visited[v] = false
	for _, w := range dag.Successors[v] {
		indeg[w]++
	}
}

func materialize(dag *planner.DAG, path []int) []*planner.Act {
	out := make([]*planner.Act, len(path))
	for i, id := range path {
		out[i] = dag.Acts[id]
	}
	return out
}

// Count drains Orderings(dag) purely to count them, for tests that verify
// enumeration completeness against an independent brute-force count on
// small DAGs (spec.md §8, testable property 3). Not meant for production
// use on wide DAGs — it defeats the whole point of laziness.
func Count(dag *planner.DAG) int {
	n := 0
	for range Orderings(dag) {
		n++
	}
	return n
}

// Format renders a linearization as the (client, op, path[, entry]) tuple
// sequence spec.md §6 requires in failure reports.
func Format(seq []*planner.Act) string {
	parts := make([]string, len(seq))
	for i, act := range seq {
		parts[i] = act.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

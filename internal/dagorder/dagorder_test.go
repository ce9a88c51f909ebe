package dagorder

import (
	"fmt"
	"sort"
	"testing"

	"github.com/dreamware/torua-linchecker/internal/planner"
)

// buildDAG wires up a bare DAG with n acts and the given successor edges,
// bypassing Planner entirely so tests can hand-construct exact shapes.
func buildDAG(n int, edges map[int][]int) *planner.DAG {
	acts := make([]*planner.Act, n)
	for i := range acts {
		acts[i] = &planner.Act{ID: i, Client: "T", Op: planner.OpGet}
	}
	succ := make(map[int][]int, len(edges))
	for from, tos := range edges {
		list := append([]int(nil), tos...)
		sort.Ints(list)
		succ[from] = list
	}
	return &planner.DAG{Acts: acts, Successors: succ}
}

// bruteForceOrderings is an independent, naive topological-sort enumerator:
// permute all n! orderings and keep the ones that respect every edge. Used
// only to cross-check dagorder.Orderings on small DAGs (spec.md §8, testable
// property 3), never for anything performance-sensitive.
func bruteForceOrderings(dag *planner.DAG) [][]int {
	n := len(dag.Acts)
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	var out [][]int
	var permute func(prefix []int, remaining []int)
	permute = func(prefix []int, remaining []int) {
		if len(remaining) == 0 {
			out = append(out, append([]int(nil), prefix...))
			return
		}
		for i, v := range remaining {
			rest := make([]int, 0, len(remaining)-1)
			rest = append(rest, remaining[:i]...)
			rest = append(rest, remaining[i+1:]...)
			permute(append(prefix, v), rest)
		}
	}
	permute(nil, indices)

	valid := out[:0]
	for _, perm := range out {
		pos := make([]int, n)
		for i, v := range perm {
			pos[v] = i
		}
		ok := true
		for from, tos := range dag.Successors {
			for _, to := range tos {
				if pos[from] >= pos[to] {
					ok = false
					break
				}
			}
			if !ok {
				break
			}
		}
		if ok {
			valid = append(valid, perm)
		}
	}
	return valid
}

func idSeq(acts []*planner.Act) []int {
	ids := make([]int, len(acts))
	for i, a := range acts {
		ids[i] = a.ID
	}
	return ids
}

func orderingKey(ids []int) string {
	return fmt.Sprint(ids)
}

func collectOrderings(dag *planner.DAG) [][]int {
	var out [][]int
	for seq := range Orderings(dag) {
		out = append(out, idSeq(seq))
	}
	return out
}

func assertSameOrderingSet(t *testing.T, got, want [][]int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d orderings, want %d\ngot:  %v\nwant: %v", len(got), len(want), got, want)
	}
	seen := make(map[string]int)
	for _, o := range got {
		seen[orderingKey(o)]++
	}
	for _, o := range want {
		k := orderingKey(o)
		if seen[k] == 0 {
			t.Fatalf("missing expected ordering %v", o)
		}
		seen[k]--
	}
	for k, count := range seen {
		if count != 0 {
			t.Fatalf("got unexpected or duplicate ordering %s (count %d)", k, count)
		}
	}
}

func TestEmptyDAGYieldsOneEmptyOrdering(t *testing.T) {
	dag := buildDAG(0, nil)
	got := collectOrderings(dag)
	if len(got) != 1 {
		t.Fatalf("got %d orderings for empty DAG, want 1", len(got))
	}
	if len(got[0]) != 0 {
		t.Fatalf("expected the single ordering to be empty, got %v", got[0])
	}
}

func TestSingleActYieldsOneOrdering(t *testing.T) {
	dag := buildDAG(1, nil)
	got := collectOrderings(dag)
	assertSameOrderingSet(t, got, [][]int{{0}})
}

func TestTwoIndependentActsYieldBothOrders(t *testing.T) {
	dag := buildDAG(2, nil)
	got := collectOrderings(dag)
	assertSameOrderingSet(t, got, [][]int{{0, 1}, {1, 0}})
}

func TestLinearChainYieldsExactlyOneOrdering(t *testing.T) {
	dag := buildDAG(4, map[int][]int{0: {1}, 1: {2}, 2: {3}})
	got := collectOrderings(dag)
	assertSameOrderingSet(t, got, [][]int{{0, 1, 2, 3}})
}

func TestDiamondShapeMatchesBruteForce(t *testing.T) {
	// 0 -> {1, 2} -> 3
	dag := buildDAG(4, map[int][]int{0: {1, 2}, 1: {3}, 2: {3}})
	got := collectOrderings(dag)
	want := bruteForceOrderings(dag)
	assertSameOrderingSet(t, got, want)
}

func TestFiveNodeMixedDAGMatchesBruteForce(t *testing.T) {
	// A shape loosely resembling a two-ancestor update: two independent
	// roots feeding a shared join, plus one fully free node.
	dag := buildDAG(5, map[int][]int{0: {2}, 1: {2}, 2: {3}})
	got := collectOrderings(dag)
	want := bruteForceOrderings(dag)
	assertSameOrderingSet(t, got, want)
}

func TestOrderingsPanicsOnCycle(t *testing.T) {
	dag := buildDAG(2, map[int][]int{0: {1}, 1: {0}})
	defer func() {
		if recover() == nil {
			t.Fatal("expected Orderings to panic on a cyclic DAG")
		}
	}()
	Orderings(dag)
}

func TestCountMatchesManualEnumeration(t *testing.T) {
	dag := buildDAG(4, map[int][]int{0: {1, 2}, 1: {3}, 2: {3}})
	want := len(bruteForceOrderings(dag))
	if got := Count(dag); got != want {
		t.Fatalf("Count() = %d, want %d", got, want)
	}
}

func TestOrderingsStopsEarlyWhenCallerBreaks(t *testing.T) {
	dag := buildDAG(3, nil) // 3! = 6 orderings available
	n := 0
	for range Orderings(dag) {
		n++
		if n == 1 {
			break
		}
	}
	if n != 1 {
		t.Fatalf("expected exactly one ordering to be pulled before break, got %d", n)
	}
}

func TestFormatRendersBracketedTupleSequence(t *testing.T) {
	dag := buildDAG(2, map[int][]int{0: {1}})
	dag.Acts[0].Client = "A"
	dag.Acts[0].Op = planner.OpGet
	dag.Acts[1].Client = "A"
	dag.Acts[1].Op = planner.OpPut

	got := Format(dag.Acts)
	want := "[(A, get, ), (A, put, )]"
	if got != want {
		t.Fatalf("Format() = %q, want %q", got, want)
	}
}

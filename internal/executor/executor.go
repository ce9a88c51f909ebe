package executor

import (
	"fmt"

	"github.com/dreamware/torua-linchecker/internal/actor"
	"github.com/dreamware/torua-linchecker/internal/checker"
	"github.com/dreamware/torua-linchecker/internal/config"
	"github.com/dreamware/torua-linchecker/internal/dagorder"
	"github.com/dreamware/torua-linchecker/internal/planner"
	"github.com/dreamware/torua-linchecker/internal/store"
)

// Result is a single linearization's counterexample: the prefix of acts
// that was actually dispatched before the checker reported a violation, the
// store's final state, and the violation messages themselves.
type Result struct {
	Scenario      string
	Config        config.Config
	Linearization []*planner.Act
	Snapshot      map[string]store.Observation
	Violations    []string
}

// String renders a Result as a diagnostic dump suitable for the CLI's
// failure output (spec.md §6).
func (r *Result) String() string {
	return fmt.Sprintf(
		"scenario %q failed\nconfig: %+v\nlinearization: %s\nviolations: %v\nsnapshot keys: %d",
		r.Scenario, r.Config, dagorder.Format(r.Linearization), r.Violations, len(r.Snapshot))
}

// Run dispatches every linearization of dag, built under cfg, one at a
// time against a fresh Store and fresh per-client Actors (spec.md §4.7,
// §5: "the executor must not share state between linearizations"). It
// returns the first failing linearization as a *Result, or nil if every
// linearization passes the checker after every act.
func Run(scenario string, cfg config.Config, dag *planner.DAG) *Result {
	for linearization := range dagorder.Orderings(dag) {
		if res := runOne(scenario, cfg, dag, linearization); res != nil {
			return res
		}
	}
	return nil
}

// runOne dispatches a single linearization, stopping at the first act after
// which the checker reports a violation.
func runOne(scenario string, cfg config.Config, dag *planner.DAG, linearization []*planner.Act) *Result {
	st := store.New(cfg)
	actors := make(map[string]*actor.Actor, len(dag.Acts))
	for _, act := range dag.Acts {
		if _, ok := actors[act.Client]; !ok {
			actors[act.Client] = actor.New(act.Client, st, cfg)
		}
	}
	chk := checker.New(st)

	dispatched := make([]*planner.Act, 0, len(linearization))
	for _, act := range linearization {
		Dispatch(actors[act.Client], act)
		dispatched = append(dispatched, act)

		if violations := chk.Check(); len(violations) > 0 {
			return &Result{
				Scenario:      scenario,
				Config:        cfg,
				Linearization: dispatched,
				Snapshot:      st.Snapshot(),
				Violations:    violations,
			}
		}
	}
	return nil
}

// Dispatch routes act to the single Actor method it names. Exported so
// callers that need to hand-execute a specific linearization outside of Run
// (for example, to inspect intermediate state a particular adversarial
// interleaving produces) can reuse the same routing Run itself uses.
func Dispatch(a *actor.Actor, act *planner.Act) {
	switch act.Op {
	case planner.OpGet:
		a.Get(act.Path)
	case planner.OpList:
		a.List(act.Path)
	case planner.OpPut:
		a.Put(act.Path, act.UpdateFn)
	case planner.OpRm:
		a.Rm(act.Path)
	case planner.OpLink:
		a.Link(act.Path, act.Entry)
	case planner.OpUnlink:
		a.Unlink(act.Path, act.Entry)
	default:
		panic(fmt.Sprintf("executor: unknown op %v", act.Op))
	}
}

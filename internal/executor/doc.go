// Package executor walks every linearization a dagorder enumerator produces
// against a fresh store.Store and a fresh actor.Actor per client, checking
// the link-closure invariant after every act and stopping at the first
// violation.
//
// # Overview
//
// Run drives one scenario: a planner.DAG plus the config.Config that built
// it. For each linearization it constructs brand new state (spec.md §5:
// "the executor must not share state between linearizations") — a Store
// and one Actor per distinct client id seen in the DAG — dispatches each
// Act in order, and runs a checker.Checker after every dispatch. The first
// violation aborts that linearization and is reported in the Result; a
// linearization with no violations is a pass.
//
// Grounded on the teacher's cmd/coordinator/main.go request-dispatch loop:
// route each incoming request to its target, stop and report on the first
// hard error. Here the "requests" are planner Acts and the "target" is the
// client's Actor.
package executor

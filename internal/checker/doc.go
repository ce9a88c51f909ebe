// Package checker verifies the store's link-closure invariant: every live
// document or directory must be reachable from the root through a chain of
// directories whose entry sets actually name it.
//
// # Overview
//
// A Checker holds a reference to a store.Store and the mutation epoch it
// last validated. Check is cheap to call after every act: if the store
// hasn't mutated since the last call it returns immediately, otherwise it
// walks every live key's path chain against store.Snapshot() (never
// store.Read, so the check is untinted by the store's CasMode-dependent
// tombstone-visibility rules — DESIGN.md Open Question 1) and reports every
// broken link as a human-readable message.
//
// Grounded on the teacher's internal/shard.Shard.GetStats/Info
// snapshot-then-validate pattern and internal/coordinator.HealthMonitor's
// cached-last-known-state-plus-skip shape.
package checker

// Package planner builds the dependency DAG that the ordering enumerator
// (internal/dagorder) turns into every legal interleaving of a multi-client
// workload.
//
// # Overview
//
// A Planner accumulates Acts — concrete (client, operation, path[, entry])
// records — and the ordering edges between them. High-level workflow calls
// (Update, Remove) expand into several Acts with Config-shaped edges;
// low-level primitive calls (Get, List, Put, Rm, Link, Unlink) add a single
// Act the caller can wire into custom edges with DependsOn. Planner never
// connects two different clients' acts directly — cross-client ordering is
// left entirely to enumeration, which is the point of the exercise.
//
// Grounded on the teacher's internal/coordinator.ShardRegistry: both types
// are builder-shaped accumulators that answer "what depends on what" rather
// than executing anything themselves.
package planner

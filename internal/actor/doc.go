// Package actor implements the client-side mediator every simulated
// workload operation goes through on its way to the store.
//
// # Overview
//
// An Actor is the checker's model of a real client library: it remembers
// the last (version, value) it observed or wrote for every key it has
// touched (its "shadow"), and it never lets a rejected write keep going —
// once one write is rejected the Actor's conflicted flag latches and every
// later call on it becomes a no-op, the same way a real client would abort
// its workflow and leave retry policy to a higher layer (spec.md §7).
//
// # Relationship to the store
//
// Actors never reach into the store's internal state. Every read goes
// through Store.Read, every write through Store.Write/Store.Remove, and the
// shadow is populated only from what those calls return — mirroring the
// teacher's internal/shard.Shard, which delegates every operation to its
// storage.Store and only ever holds a derived summary (ShardStats,
// ShardInfo) alongside it.
package actor

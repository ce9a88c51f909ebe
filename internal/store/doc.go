// Package store implements the single-threaded, CAS-conditional key/value
// store that the checker simulates client operations against.
//
// # Overview
//
// The store is the ground truth the checker validates: every key holds a
// (version, optional value) pair. A key may be absent (never written),
// present with a value, or tombstoned (removed, still versioned). All
// mutation is conditional on the caller's expected revision, and acceptance
// depends on the store's configured Config.CasMode — see the table in
// spec.md §4.3 and writeAccepted/removeAccepted in store.go.
//
// # Thread safety
//
// Unlike the teacher's internal/storage.Store, this Store is not meant to
// be hammered by real goroutines: spec.md §5 models concurrency purely by
// enumeration, one act at a time. The mutex is a belt-and-suspenders
// measure, not a throughput feature: every method holds it, so each call
// stays atomic even if the Store is misused from several goroutines.
//
// # Values returned are copies
//
// Read, Snapshot, and successful Write/Remove never hand back a pointer
// into the store's internal state — every Value is cloned on the way out,
// the same copy-on-read discipline the teacher's MemoryStore uses to model
// network copy semantics (spec.md §5).
package store

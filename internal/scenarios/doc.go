// Package scenarios decodes the embedded declarative workload catalog
// (catalog.yaml) into planner.DAG instances and runs each one through
// internal/executor, comparing the observed outcome against the catalog's
// declared expectation.
//
// # Overview
//
// Each catalog entry names a Config permutation and a short sequence of
// per-client update/remove acts. Load decodes the catalog with
// gopkg.in/yaml.v3; Spec.Build interprets one entry into a planner.DAG the
// same way a hand-written test would, just driven by data instead of Go
// source. RunAll drives every entry through executor.Run and reports any
// entry whose outcome ("every linearization passes" vs "some linearization
// violates") didn't match what the catalog declared.
//
// Grounded on the teacher's cluster.RegisterRequest/BroadcastRequest
// idiom: declarative, JSON-shaped messages consumed by a handler, here
// transposed to YAML-shaped scenario descriptions consumed by an
// interpreter.
package scenarios

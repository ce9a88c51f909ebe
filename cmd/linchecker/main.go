// Package main implements linchecker, a model checker for the hierarchical
// CAS-backed document/directory store described by internal/store.
//
// linchecker takes no arguments. It runs the embedded declarative scenario
// catalog (internal/scenarios), exhaustively enumerating every legal
// interleaving of each scenario's multi-client workload and checking the
// store's link-closure invariant after every act. It exits 0 if every
// scenario matches its declared expectation, or prints a diagnostic dump of
// every mismatched scenario and exits 1.
//
// Example usage:
//
//	./linchecker
package main

import (
	"log"
	"os"

	"github.com/dreamware/torua-linchecker/internal/scenarios"
)

// logFatal is a variable so tests can intercept a fatal exit path without
// actually terminating the test process.
var logFatal = log.Fatalf

func main() {
	catalog := scenarios.Load()
	log.Printf("linchecker: running %d scenario(s)", len(catalog.Scenarios))

	outcomes, err := scenarios.RunAll(catalog)
	if err != nil {
		logFatal("linchecker: %v", err)
		return
	}

	mismatches := scenarios.Mismatches(outcomes)
	if len(mismatches) == 0 {
		log.Printf("linchecker: all %d scenario(s) passed", len(outcomes))
		return
	}

	for _, m := range mismatches {
		log.Printf("linchecker: scenario %q failed (expected %q)", m.Spec.ID, m.Spec.Expect)
		if m.Result != nil {
			log.Print(m.Result.String())
		} else {
			log.Printf("scenario %q: every linearization passed, but %q expected a violation",
				m.Spec.ID, m.Spec.ID)
		}
	}
	os.Exit(1)
}

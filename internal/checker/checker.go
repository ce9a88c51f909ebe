package checker

import (
	"fmt"

	"github.com/dreamware/torua-linchecker/internal/pathmodel"
	"github.com/dreamware/torua-linchecker/internal/store"
)

// Checker verifies the link-closure invariant of a single store.Store:
// every live Doc or Dir must be reachable from the root via a chain of
// directories whose entry sets name each step.
type Checker struct {
	st          *store.Store
	lastChecked uint64
	everChecked bool
}

// New creates a Checker bound to st. The first Check call always performs a
// full scan, since there is no prior epoch to compare against.
func New(st *store.Store) *Checker {
	return &Checker{st: st}
}

// Check implements spec.md §4.6: skip if nothing has mutated since the last
// call, otherwise scan every live key and return every violation found, in
// deterministic (store.Keys) order. A nil/empty return means the invariant
// holds.
func (c *Checker) Check() []string {
	epoch := c.st.Epoch()
	if c.everChecked && epoch == c.lastChecked {
		return nil
	}

	snapshot := c.st.Snapshot()
	var messages []string
	for _, key := range c.st.Keys() {
		obs, ok := snapshot[key]
		if !ok || obs.Value == nil {
			continue // tombstoned or never written: not subject to the closure check
		}
		messages = append(messages, checkPath(snapshot, key, *obs.Value)...)
	}

	c.lastChecked = epoch
	c.everChecked = true
	return messages
}

// checkPath walks path's ancestor chain top-down, verifying each parent is
// present as a Dir value whose entries include the child. kindWord names
// the subject (key's own value) as "doc" or "dir" for the violation
// message's "required by <doc|dir> '<path>'" clause.
func checkPath(snapshot map[string]store.Observation, path string, value store.Value) []string {
	var messages []string
	kindWord := "doc"
	if value.IsDir() {
		kindWord = "dir"
	}

	for _, link := range pathmodel.From(path).Links() {
		parentObs, ok := snapshot[link.Parent]
		if !ok || parentObs.Value == nil || !parentObs.Value.IsDir() {
			messages = append(messages, fmt.Sprintf(
				"dir '%s', required by %s '%s', is missing", link.Parent, kindWord, path))
			continue
		}
		if !parentObs.Value.HasEntry(link.Entry) {
			messages = append(messages, fmt.Sprintf(
				"dir '%s' does not include name '%s', required by %s '%s'",
				link.Parent, link.Entry, kindWord, path))
		}
	}
	return messages
}

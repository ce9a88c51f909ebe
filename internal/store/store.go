package store

import (
	"sync"

	"golang.org/x/exp/slices"

	"github.com/dreamware/torua-linchecker/internal/config"
)

// entry is the internal record for one live key: its version and, if
// present, its value. A nil value means the key is tombstoned.
type entry struct {
	value   *Value
	version uint64
}

// Observation is what Read returns for a key: the version last assigned to
// it and its value, or a nil Value if the key is tombstoned.
type Observation struct {
	Value   *Value
	Version uint64
}

// Store is a versioned, CAS-conditional key/value map. This checker never
// runs two acts at once (spec.md §5); every method still holds the mutex,
// so each call is atomic even if a test misuses the Store from two
// goroutines.
type Store struct {
	mu      sync.Mutex
	cfg     config.Config
	data    map[string]*entry
	order   []string // keys ever written, in first-write order
	version uint64   // process-wide (per-store) version counter
	epoch   uint64   // mutation epoch, incremented on every accepted write/remove
}

// New creates an empty Store governed by cfg.
func New(cfg config.Config) *Store {
	return &Store{
		cfg:  cfg,
		data: make(map[string]*entry),
	}
}

// Read returns the observable view of key under the store's configured
// CasMode, or nil if the key should appear absent.
//
//   - never written: nil
//   - present: &Observation{Version: v, Value: &value}
//   - tombstoned, under Strict/MatchRev/Lax: &Observation{Version: v, Value: nil}
//   - tombstoned, under NoRev: nil (tombstone is hidden)
func (s *Store) Read(key string) *Observation {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[key]
	if !ok {
		return nil
	}
	if e.value == nil && s.cfg.CasMode == config.NoRev {
		return nil
	}
	return &Observation{Version: e.version, Value: cloneValuePtr(e.value)}
}

// Write performs a CAS-conditional insert/update of key to value, given the
// caller's expected revision (nil for "expected absent"). On acceptance it
// bumps the store's version counter and mutation epoch and returns the new
// version and true; on rejection it returns (0, false) and leaves the store
// unchanged.
func (s *Store) Write(key string, expectedRev *uint64, value Value) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.data[key]
	if !writeAccepted(s.cfg.CasMode, metaState(exists, e), expectedRev, currentRev(e)) {
		return 0, false
	}

	stored := value.Clone()
	s.version++
	s.epoch++
	newEntry := &entry{version: s.version, value: &stored}
	if !exists {
		s.order = append(s.order, key)
	}
	s.data[key] = newEntry
	return s.version, true
}

// Remove performs a CAS-conditional tombstone of key, given the caller's
// expected revision. An absent key always rejects. On acceptance it bumps
// the version counter and mutation epoch and returns the new version and
// true.
func (s *Store) Remove(key string, expectedRev *uint64) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.data[key]
	if !exists {
		return 0, false
	}
	if !removeAccepted(expectedRev, currentRev(e)) {
		return 0, false
	}

	s.version++
	s.epoch++
	s.data[key] = &entry{version: s.version, value: nil}
	return s.version, true
}

// Keys returns the keys ever written (including tombstoned keys), in
// deterministic first-write order. The returned slice is a fresh copy.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.order)
}

// Epoch returns the store's current mutation epoch, incremented on every
// accepted Write or Remove. Used by the checker to skip re-validation when
// nothing has changed since the last check.
func (s *Store) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// Snapshot returns the underlying (version, value) state for every key ever
// written, untinted by CasMode — tombstones are always visible here, even
// under NoRev. The checker uses this, not Read, because spec.md §9 requires
// the invariant check to inspect real state regardless of the store's
// read-visibility rules.
func (s *Store) Snapshot() map[string]Observation {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]Observation, len(s.data))
	for k, e := range s.data {
		out[k] = Observation{Version: e.version, Value: cloneValuePtr(e.value)}
	}
	return out
}

func cloneValuePtr(v *Value) *Value {
	if v == nil {
		return nil
	}
	cloned := v.Clone()
	return &cloned
}

func currentRev(e *entry) uint64 {
	if e == nil {
		return 0
	}
	return e.version
}

type stateKind int

const (
	stateAbsent stateKind = iota
	stateTombstoned
	statePresent
)

func metaState(exists bool, e *entry) stateKind {
	if !exists {
		return stateAbsent
	}
	if e.value == nil {
		return stateTombstoned
	}
	return statePresent
}

// writeAccepted implements the write/insert acceptance table from spec.md
// §4.3.
func writeAccepted(mode config.CasMode, state stateKind, expected *uint64, currentVersion uint64) bool {
	switch state {
	case stateAbsent:
		if mode == config.Lax {
			return true
		}
		return expected == nil
	case stateTombstoned:
		switch mode {
		case config.Strict:
			return expected != nil && *expected == currentVersion
		case config.NoRev:
			return expected == nil
		case config.MatchRev:
			return expected == nil || *expected == currentVersion
		case config.Lax:
			return true
		}
	case statePresent:
		return expected != nil && *expected == currentVersion
	}
	return false
}

// removeAccepted implements the remove acceptance table from spec.md §4.3:
// absent always rejects; tombstoned and present both require an exact
// expected-revision match, regardless of CasMode (the table's "tombstoned
// and present collapse" substitution).
func removeAccepted(expected *uint64, currentVersion uint64) bool {
	return expected != nil && *expected == currentVersion
}

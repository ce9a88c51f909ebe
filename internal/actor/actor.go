package actor

import (
	"github.com/dreamware/torua-linchecker/internal/config"
	"github.com/dreamware/torua-linchecker/internal/pathmodel"
	"github.com/dreamware/torua-linchecker/internal/store"
)

// shadowEntry is an Actor's cached view of one key: the revision it last
// observed or successfully wrote, and the value as of that revision (nil
// for a tombstone).
type shadowEntry struct {
	value   *store.Value
	version uint64
}

// Actor mediates every store access for one simulated client. It caches a
// shadow of every key it has touched and latches a conflicted flag the
// first time one of its writes is rejected by the store — from that point
// on every public method is a no-op, modeling a client that halts its
// workflow on the first CAS conflict (spec.md §7).
type Actor struct {
	id         string
	st         *store.Store
	cfg        config.Config
	shadow     map[string]*shadowEntry
	conflicted bool
}

// New creates an Actor with an empty shadow, mediating access to st on
// behalf of the client named id under the given Config.
func New(id string, st *store.Store, cfg config.Config) *Actor {
	return &Actor{
		id:     id,
		st:     st,
		cfg:    cfg,
		shadow: make(map[string]*shadowEntry),
	}
}

// ID returns the client identifier this Actor was created for.
func (a *Actor) ID() string { return a.id }

// Conflicted reports whether this Actor has latched its conflicted flag.
func (a *Actor) Conflicted() bool { return a.conflicted }

// Get reads p from the store (refreshing the shadow) and returns its
// document payload, or (nil, false) if p is absent, tombstoned, or not a
// document. When conflicted, it is a no-op that returns the cached value
// from the shadow instead of touching the store.
func (a *Actor) Get(p pathmodel.Path) (store.Payload, bool) {
	key := p.String()
	if !a.conflicted {
		a.refreshShadow(key, a.st.Read(key))
	}
	return a.docFromShadow(key)
}

// List reads p from the store (refreshing the shadow) and returns a copy of
// its directory entry set, or (nil, false) if p is absent, tombstoned, or
// not a directory. When conflicted, it is a no-op that returns the cached
// value from the shadow instead of touching the store.
func (a *Actor) List(p pathmodel.Path) ([]string, bool) {
	key := p.String()
	if !a.conflicted {
		a.refreshShadow(key, a.st.Read(key))
	}
	return a.dirEntriesFromShadow(key)
}

// Put computes new = updateFn(currentDocPayload) from the shadow and
// attempts a CAS write of Doc(new) to p. On acceptance the shadow is
// refreshed to the new revision; on rejection the conflicted flag latches.
// A no-op that returns false if already conflicted.
func (a *Actor) Put(p pathmodel.Path, updateFn func(store.Payload) store.Payload) bool {
	if a.conflicted {
		return false
	}
	key := p.String()
	current, _ := a.docFromShadow(key)
	newValue := store.NewDoc(updateFn(current))

	newVersion, ok := a.st.Write(key, a.shadowRev(key), newValue)
	if !ok {
		a.conflicted = true
		return false
	}
	a.setShadow(key, newVersion, &newValue)
	return true
}

// Rm issues a CAS remove of p using the shadow's last-observed revision. On
// acceptance the shadow is refreshed to a tombstone at the new revision; on
// rejection the conflicted flag latches. A no-op that returns false if
// already conflicted.
func (a *Actor) Rm(p pathmodel.Path) bool {
	if a.conflicted {
		return false
	}
	key := p.String()
	newVersion, ok := a.st.Remove(key, a.shadowRev(key))
	if !ok {
		a.conflicted = true
		return false
	}
	a.setShadow(key, newVersion, nil)
	return true
}

// Link ensures entry is present in the directory at p. If Config.SkipLinks
// is set and the shadow already shows entry present, Link succeeds silently
// without touching the store or the shadow. Otherwise it attempts a CAS
// write of the directory with entry inserted. A no-op that returns false if
// already conflicted.
func (a *Actor) Link(p pathmodel.Path, entry string) bool {
	if a.conflicted {
		return false
	}
	key := p.String()
	current := a.dirOrEmpty(key)

	if a.cfg.SkipLinks && current.HasEntry(entry) {
		return true
	}

	newValue := current.WithEntry(entry)
	newVersion, ok := a.st.Write(key, a.shadowRev(key), newValue)
	if !ok {
		a.conflicted = true
		return false
	}
	a.setShadow(key, newVersion, &newValue)
	return true
}

// Unlink removes entry from the directory at p. Unlike Link, Unlink always
// writes regardless of Config.SkipLinks (spec.md §9 Open Question 2): its
// "touch" semantics are unconditional. A no-op that returns false if
// already conflicted.
func (a *Actor) Unlink(p pathmodel.Path, entry string) bool {
	if a.conflicted {
		return false
	}
	key := p.String()
	current := a.dirOrEmpty(key)

	newValue := current.WithoutEntry(entry)
	newVersion, ok := a.st.Write(key, a.shadowRev(key), newValue)
	if !ok {
		a.conflicted = true
		return false
	}
	a.setShadow(key, newVersion, &newValue)
	return true
}

func (a *Actor) refreshShadow(key string, obs *store.Observation) {
	if obs == nil {
		delete(a.shadow, key)
		return
	}
	a.shadow[key] = &shadowEntry{version: obs.Version, value: obs.Value}
}

func (a *Actor) setShadow(key string, version uint64, value *store.Value) {
	a.shadow[key] = &shadowEntry{version: version, value: value}
}

func (a *Actor) shadowRev(key string) *uint64 {
	se, ok := a.shadow[key]
	if !ok {
		return nil
	}
	v := se.version
	return &v
}

func (a *Actor) docFromShadow(key string) (store.Payload, bool) {
	se, ok := a.shadow[key]
	if !ok || se.value == nil || !se.value.IsDoc() {
		return nil, false
	}
	return se.value.DocPayload()
}

func (a *Actor) dirEntriesFromShadow(key string) ([]string, bool) {
	se, ok := a.shadow[key]
	if !ok || se.value == nil || !se.value.IsDir() {
		return nil, false
	}
	return se.value.DirEntries()
}

// dirOrEmpty returns the directory value cached in the shadow for key, or
// an empty directory value if the shadow has no directory observation
// there yet (the "entries = shadow_dir_at_p or empty_set" clause of
// spec.md §4.4's Link).
func (a *Actor) dirOrEmpty(key string) store.Value {
	se, ok := a.shadow[key]
	if !ok || se.value == nil || !se.value.IsDir() {
		return store.NewDir()
	}
	return *se.value
}

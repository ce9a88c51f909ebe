// Package config carries the small set of mode switches that every other
// package in the checker consults to decide how the simulated CAS store and
// its client actors behave.
package config

// UpdateMode selects the shape of the dependency DAG the planner builds for
// an update(path, f) workflow.
type UpdateMode int

const (
	// ReadsBeforeLinks requires every list/get read in an update workflow to
	// complete before any directory link write begins.
	ReadsBeforeLinks UpdateMode = iota
	// GetBeforePut only constrains the get to precede its matching put; it
	// may freely interleave with the ancestor-directory link writes.
	GetBeforePut
)

func (m UpdateMode) String() string {
	switch m {
	case ReadsBeforeLinks:
		return "ReadsBeforeLinks"
	case GetBeforePut:
		return "GetBeforePut"
	default:
		return "UpdateMode(?)"
	}
}

// RemoveMode selects the shape of the dependency DAG the planner builds for
// a remove(path) workflow.
type RemoveMode int

const (
	// UnlinkSequential chains the ancestor-directory unlinks strictly
	// deepest-first: unlink(deepest) -> unlink(next_up) -> ... -> unlink(root).
	UnlinkSequential RemoveMode = iota
	// UnlinkParallel only constrains each unlink to follow the rm; the
	// unlinks themselves may interleave in any order.
	UnlinkParallel
)

func (m RemoveMode) String() string {
	switch m {
	case UnlinkSequential:
		return "UnlinkSequential"
	case UnlinkParallel:
		return "UnlinkParallel"
	default:
		return "RemoveMode(?)"
	}
}

// CasMode selects how the simulated store resolves a CAS write/remove
// against an absent or tombstoned key. See internal/store for the full
// acceptance table.
type CasMode int

const (
	// Strict requires an exact expected-revision match, including for
	// tombstoned keys (expected=Some(v)) and absent keys (expected=None).
	Strict CasMode = iota
	// NoRev treats tombstoned keys as if absent: expected=None is required
	// and always accepted regardless of the tombstone's revision.
	NoRev
	// MatchRev accepts either expected=None or the tombstone's exact
	// revision for a tombstoned key.
	MatchRev
	// Lax accepts any expected revision against a non-present key (absent
	// or tombstoned); present keys still require an exact match.
	Lax
)

func (m CasMode) String() string {
	switch m {
	case Strict:
		return "Strict"
	case NoRev:
		return "NoRev"
	case MatchRev:
		return "MatchRev"
	case Lax:
		return "Lax"
	default:
		return "CasMode(?)"
	}
}

// Config is an immutable bundle of the four orthogonal knobs the spec
// defines. Zero value is the strictest, most defensive combination
// (ReadsBeforeLinks, UnlinkSequential, skip_links=false, Strict) and is a
// safe default for callers that only want to vary one axis.
//
// Config is cheap to copy by value; every package that needs one takes it
// by value, never by pointer, so there is no aliasing to guard against.
type Config struct {
	UpdateMode UpdateMode
	RemoveMode RemoveMode
	CasMode    CasMode
	SkipLinks  bool
}

// Default returns the zero-value Config spelled out explicitly, for callers
// that want to start from a named baseline rather than a bare literal.
func Default() Config {
	return Config{
		UpdateMode: ReadsBeforeLinks,
		RemoveMode: UnlinkSequential,
		CasMode:    Strict,
		SkipLinks:  false,
	}
}

// Option mutates a Config in place; used by scenario builders to describe a
// permutation without repeating every field.
type Option func(*Config)

// WithUpdateMode overrides UpdateMode.
func WithUpdateMode(m UpdateMode) Option { return func(c *Config) { c.UpdateMode = m } }

// WithRemoveMode overrides RemoveMode.
func WithRemoveMode(m RemoveMode) Option { return func(c *Config) { c.RemoveMode = m } }

// WithCasMode overrides CasMode.
func WithCasMode(m CasMode) Option { return func(c *Config) { c.CasMode = m } }

// WithSkipLinks overrides SkipLinks.
func WithSkipLinks(v bool) Option { return func(c *Config) { c.SkipLinks = v } }

// New builds a Config starting from Default and applying opts in order.
func New(opts ...Option) Config {
	c := Default()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

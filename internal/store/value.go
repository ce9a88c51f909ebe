package store

import "golang.org/x/exp/slices"

// Payload is the opaque, clonable datum carried by a document value. The
// store and checker never inspect a payload's contents — they only ever
// discriminate Doc from Dir — so any implementation that can clone itself
// is acceptable.
type Payload interface {
	Clone() Payload
}

// Kind discriminates the two cases of Value.
type Kind int

const (
	// DocKind marks a Value carrying an opaque document payload.
	DocKind Kind = iota
	// DirKind marks a Value carrying a sorted set of directory entry names.
	DirKind
)

// Value is the tagged variant stored against every key: either a document
// payload or a directory's entry set. The zero Value is a DocKind with a
// nil payload and is never meaningful on its own — always construct one
// with NewDoc or NewDir.
type Value struct {
	doc     Payload
	kind    Kind
	entries []string // sorted, deduplicated; only meaningful when kind == DirKind
}

// NewDoc wraps a document payload.
func NewDoc(payload Payload) Value {
	return Value{kind: DocKind, doc: payload}
}

// NewDir builds a directory Value from a set of entry names, sorting and
// deduplicating them.
func NewDir(entries ...string) Value {
	return Value{kind: DirKind, entries: normalizeEntries(entries)}
}

// IsDoc reports whether v is a document value.
func (v Value) IsDoc() bool { return v.kind == DocKind }

// IsDir reports whether v is a directory value.
func (v Value) IsDir() bool { return v.kind == DirKind }

// DocPayload returns v's document payload and true, or (nil, false) if v is
// not a document value.
func (v Value) DocPayload() (Payload, bool) {
	if v.kind != DocKind {
		return nil, false
	}
	return v.doc, true
}

// DirEntries returns a copy of v's entry set and true, or (nil, false) if v
// is not a directory value.
func (v Value) DirEntries() ([]string, bool) {
	if v.kind != DirKind {
		return nil, false
	}
	return slices.Clone(v.entries), true
}

// HasEntry reports whether a directory value already contains entry. False
// for a non-directory value.
func (v Value) HasEntry(entry string) bool {
	if v.kind != DirKind {
		return false
	}
	_, found := slices.BinarySearch(v.entries, entry)
	return found
}

// WithEntry returns a copy of v with entry inserted into its entry set.
// Panics if v is not a directory value.
func (v Value) WithEntry(entry string) Value {
	if v.kind != DirKind {
		panic("store: WithEntry on a non-directory value")
	}
	next := append(slices.Clone(v.entries), entry)
	return Value{kind: DirKind, entries: normalizeEntries(next)}
}

// WithoutEntry returns a copy of v with entry removed from its entry set,
// if present. Panics if v is not a directory value.
func (v Value) WithoutEntry(entry string) Value {
	if v.kind != DirKind {
		panic("store: WithoutEntry on a non-directory value")
	}
	next := make([]string, 0, len(v.entries))
	for _, e := range v.entries {
		if e != entry {
			next = append(next, e)
		}
	}
	return Value{kind: DirKind, entries: next}
}

// Clone deep-copies v: a document value clones its payload, a directory
// value copies its entry slice.
func (v Value) Clone() Value {
	switch v.kind {
	case DocKind:
		var cloned Payload
		if v.doc != nil {
			cloned = v.doc.Clone()
		}
		return Value{kind: DocKind, doc: cloned}
	case DirKind:
		return Value{kind: DirKind, entries: slices.Clone(v.entries)}
	default:
		panic("store: Clone on an uninitialized Value")
	}
}

func normalizeEntries(entries []string) []string {
	out := slices.Clone(entries)
	slices.Sort(out)
	return slices.Compact(out)
}

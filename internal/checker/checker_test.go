package checker

import (
	"reflect"
	"sort"
	"testing"

	"github.com/dreamware/torua-linchecker/internal/config"
	"github.com/dreamware/torua-linchecker/internal/store"
)

type stringPayload string

func (p stringPayload) Clone() store.Payload { return p }

func newStore() *store.Store {
	return store.New(config.Default())
}

func sorted(msgs []string) []string {
	out := append([]string(nil), msgs...)
	sort.Strings(out)
	return out
}

func TestCheckOnEmptyStoreReportsNoViolations(t *testing.T) {
	c := New(newStore())
	if msgs := c.Check(); msgs != nil {
		t.Fatalf("expected no violations on empty store, got %v", msgs)
	}
}

func TestCheckPassesWhenChainIsFullyLinked(t *testing.T) {
	st := newStore()
	st.Write("/", nil, store.NewDir("a/"))
	st.Write("/a/", nil, store.NewDir("b"))
	st.Write("/a/b", nil, store.NewDoc(stringPayload("hello")))

	c := New(st)
	if msgs := c.Check(); msgs != nil {
		t.Fatalf("expected no violations, got %v", msgs)
	}
}

func TestCheckDetectsMissingParentDirectory(t *testing.T) {
	st := newStore()
	// "/a/b" written without "/" or "/a/" ever existing: both are reported.
	st.Write("/a/b", nil, store.NewDoc(stringPayload("hello")))

	c := New(st)
	msgs := c.Check()
	want := []string{
		"dir '/', required by doc '/a/b', is missing",
		"dir '/a/', required by doc '/a/b', is missing",
	}
	if !reflect.DeepEqual(sorted(msgs), want) {
		t.Fatalf("got %v, want %v", msgs, want)
	}
}

func TestCheckDetectsParentMissingEntry(t *testing.T) {
	st := newStore()
	st.Write("/", nil, store.NewDir()) // root exists but doesn't list "a/"
	st.Write("/a/b", nil, store.NewDoc(stringPayload("hello")))

	c := New(st)
	msgs := c.Check()
	expectContains(t, msgs, "dir '/' does not include name 'a/', required by doc '/a/b'")
}

func TestCheckDetectsTombstonedParentAsMissing(t *testing.T) {
	st := newStore()
	v, _ := st.Write("/", nil, store.NewDir("a/"))
	st.Remove("/", &v)
	st.Write("/a/b", nil, store.NewDoc(stringPayload("hello")))

	c := New(st)
	msgs := c.Check()
	expectContains(t, msgs, "dir '/', required by doc '/a/b', is missing")
}

func TestCheckReportsParentDirMissingWhenOnlyADocOfThatNameExists(t *testing.T) {
	st := newStore()
	st.Write("/a", nil, store.NewDoc(stringPayload("not a dir")))
	// "/a/b" treats "/a/" as its parent directory path, distinct from the
	// document key "/a" -- this models an ancestor slot that was never
	// written as a directory at all, so it's reported missing.
	st.Write("/a/b", nil, store.NewDoc(stringPayload("hello")))

	c := New(st)
	msgs := c.Check()
	expectContains(t, msgs, "dir '/a/', required by doc '/a/b', is missing")
}

func TestCheckIgnoresTombstonedKeysThemselves(t *testing.T) {
	st := newStore()
	st.Write("/", nil, store.NewDir("a/"))
	v2, _ := st.Write("/a/", nil, store.NewDir())
	st.Remove("/a/", &v2)

	c := New(st)
	if msgs := c.Check(); msgs != nil {
		t.Fatalf("expected tombstoned keys to be skipped, got %v", msgs)
	}
}

func TestCheckSkipsRevalidationWhenEpochUnchanged(t *testing.T) {
	st := newStore()
	st.Write("/a/b", nil, store.NewDoc(stringPayload("hello"))) // broken link

	c := New(st)
	first := c.Check()
	if len(first) == 0 {
		t.Fatal("expected a violation on first check")
	}

	// No mutation happened between calls: the cached epoch should short
	// circuit straight past the scan, still reporting clean (the skip
	// path returns nil unconditionally).
	second := c.Check()
	if second != nil {
		t.Fatalf("expected skip to report nil, got %v", second)
	}
}

func TestCheckRescansAfterFurtherMutation(t *testing.T) {
	st := newStore()
	st.Write("/a/b", nil, store.NewDoc(stringPayload("hello")))

	c := New(st)
	c.Check() // primes lastChecked

	st.Write("/", nil, store.NewDir("a/"))
	st.Write("/a/", nil, store.NewDir("b"))

	msgs := c.Check()
	if msgs != nil {
		t.Fatalf("expected clean check after repair, got %v", msgs)
	}
}

func TestCheckDirValueAlsoObeysClosure(t *testing.T) {
	st := newStore()
	// "/a/" is itself a directory value whose own parent chain is broken.
	st.Write("/a/", nil, store.NewDir("b"))

	c := New(st)
	msgs := c.Check()
	expectContains(t, msgs, "dir '/', required by dir '/a/', is missing")
}

func expectContains(t *testing.T, msgs []string, want string) {
	t.Helper()
	for _, m := range msgs {
		if m == want {
			return
		}
	}
	t.Fatalf("expected messages to contain %q, got %v", want, msgs)
}

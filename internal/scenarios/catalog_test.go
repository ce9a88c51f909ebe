package scenarios

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/torua-linchecker/internal/executor"
)

func TestLoadDecodesEmbeddedCatalog(t *testing.T) {
	c := Load()
	require.NotEmpty(t, c.Scenarios)
	ids := make(map[string]bool, len(c.Scenarios))
	for _, s := range c.Scenarios {
		ids[s.ID] = true
	}
	for _, want := range []string{
		"s1-single-client-update",
		"s2-two-client-concurrent-update",
		"s3-update-vs-remove",
		"s6-directory-reconstruction",
		"remove-orphans-sibling-under-shared-ancestor",
	} {
		assert.True(t, ids[want], "expected catalog to contain scenario %q", want)
	}
}

func TestRunAllMatchesEveryDeclaredExpectation(t *testing.T) {
	c := Load()
	outcomes, err := RunAll(c)
	require.NoError(t, err)
	require.Len(t, outcomes, len(c.Scenarios))

	mismatches := Mismatches(outcomes)
	if len(mismatches) > 0 {
		for _, m := range mismatches {
			t.Logf("scenario %q declared %q but result was %+v", m.Spec.ID, m.Spec.Expect, m.Result)
		}
		t.Fatalf("%d scenario(s) disagreed with their declared expectation", len(mismatches))
	}
}

func TestS1PassesTheCheckerUnderEveryLinearization(t *testing.T) {
	c := Load()
	var s1 Spec
	found := false
	for _, s := range c.Scenarios {
		if s.ID == "s1-single-client-update" {
			s1, found = s, true
		}
	}
	require.True(t, found)

	dag, cfg, err := s1.Build()
	require.NoError(t, err)

	res := executor.Run("s1", cfg, dag)
	assert.Nil(t, res, "s1 must pass under every linearization")
}

func TestS6ReportsTheMissingIntermediateDirectory(t *testing.T) {
	c := Load()
	var s6 Spec
	found := false
	for _, s := range c.Scenarios {
		if s.ID == "s6-directory-reconstruction" {
			s6, found = s, true
		}
	}
	require.True(t, found)

	dag, cfg, err := s6.Build()
	require.NoError(t, err)

	res := executor.Run("s6", cfg, dag)
	require.NotNil(t, res, "s6 must produce a violation")
	assert.Contains(t, res.Violations, "dir '/path/', required by doc '/path/to/x', is missing")
}

func TestSpecConfigRejectsUnknownModeName(t *testing.T) {
	s := Spec{ID: "bad", UpdateMode: "NotAMode"}
	_, err := s.Config()
	assert.Error(t, err)
}

package scenarios

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/dreamware/torua-linchecker/internal/config"
	"github.com/dreamware/torua-linchecker/internal/executor"
	"github.com/dreamware/torua-linchecker/internal/pathmodel"
	"github.com/dreamware/torua-linchecker/internal/planner"
	"github.com/dreamware/torua-linchecker/internal/store"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Expect names the outcome a scenario declares for itself: either every
// linearization must pass the checker, or at least one must violate it
// (spec.md §8's "Expected failing scenarios").
type Expect string

const (
	ExpectPass      Expect = "pass"
	ExpectViolation Expect = "violation"
)

// ActSpec is one per-client workflow call in a scenario's act sequence.
type ActSpec struct {
	Client  string `yaml:"client"`
	Op      string `yaml:"op"` // "update" or "remove"
	Path    string `yaml:"path"`
	Payload string `yaml:"payload,omitempty"` // meaningful for op: update only
}

// Spec is one catalog entry: a Config permutation, an act sequence, and
// the declared expectation.
type Spec struct {
	ID         string    `yaml:"id"`
	UpdateMode string    `yaml:"update_mode,omitempty"`
	RemoveMode string    `yaml:"remove_mode,omitempty"`
	CasMode    string    `yaml:"cas_mode,omitempty"`
	SkipLinks  bool      `yaml:"skip_links,omitempty"`
	Acts       []ActSpec `yaml:"acts"`
	Expect     Expect    `yaml:"expect"`
}

// Catalog is the top-level decoded document.
type Catalog struct {
	Scenarios []Spec `yaml:"scenarios"`
}

// Load decodes the embedded catalog.yaml. It panics on malformed YAML: a
// broken catalog is a programmer error in this repository, not a runtime
// condition callers should recover from (spec.md §7).
func Load() Catalog {
	var c Catalog
	if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
		panic(fmt.Sprintf("scenarios: malformed catalog.yaml: %v", err))
	}
	return c
}

// textPayload is the concrete document payload the catalog interpreter
// uses to stand in for the spec's opaque, clonable payload type (spec.md
// §9 "Polymorphic document payload").
type textPayload string

func (p textPayload) Clone() store.Payload { return p }

// Config resolves s's Config overrides against config.Default.
func (s Spec) Config() (config.Config, error) {
	var opts []config.Option
	switch s.UpdateMode {
	case "", "ReadsBeforeLinks":
		// default
	case "GetBeforePut":
		opts = append(opts, config.WithUpdateMode(config.GetBeforePut))
	default:
		return config.Config{}, fmt.Errorf("scenarios: unknown update_mode %q in scenario %q", s.UpdateMode, s.ID)
	}
	switch s.RemoveMode {
	case "", "UnlinkSequential":
		// default
	case "UnlinkParallel":
		opts = append(opts, config.WithRemoveMode(config.UnlinkParallel))
	default:
		return config.Config{}, fmt.Errorf("scenarios: unknown remove_mode %q in scenario %q", s.RemoveMode, s.ID)
	}
	switch s.CasMode {
	case "", "Strict":
		// default
	case "NoRev":
		opts = append(opts, config.WithCasMode(config.NoRev))
	case "MatchRev":
		opts = append(opts, config.WithCasMode(config.MatchRev))
	case "Lax":
		opts = append(opts, config.WithCasMode(config.Lax))
	default:
		return config.Config{}, fmt.Errorf("scenarios: unknown cas_mode %q in scenario %q", s.CasMode, s.ID)
	}
	if s.SkipLinks {
		opts = append(opts, config.WithSkipLinks(true))
	}
	return config.New(opts...), nil
}

// Build interprets s into a planner.DAG by replaying its act sequence
// against a fresh Planner built under s.Config().
func (s Spec) Build() (*planner.DAG, config.Config, error) {
	cfg, err := s.Config()
	if err != nil {
		return nil, config.Config{}, err
	}

	p := planner.New(cfg)
	for _, act := range s.Acts {
		path := pathmodel.From(act.Path)
		switch act.Op {
		case "update":
			payload := textPayload(act.Payload)
			p.Update(act.Client, path, func(store.Payload) store.Payload { return payload })
		case "remove":
			p.Remove(act.Client, path)
		default:
			return nil, config.Config{}, fmt.Errorf("scenarios: unknown act op %q in scenario %q", act.Op, s.ID)
		}
	}
	return p.Build(), cfg, nil
}

// Outcome is one scenario's declared expectation paired with what the
// executor actually found.
type Outcome struct {
	Spec   Spec
	Result *executor.Result // nil iff every linearization passed
}

// Matched reports whether the observed Result agrees with Spec.Expect.
func (o Outcome) Matched() bool {
	if o.Spec.Expect == ExpectPass {
		return o.Result == nil
	}
	return o.Result != nil
}

// RunAll builds and executes every scenario in c, in catalog order.
func RunAll(c Catalog) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(c.Scenarios))
	for _, spec := range c.Scenarios {
		dag, cfg, err := spec.Build()
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, Outcome{
			Spec:   spec,
			Result: executor.Run(spec.ID, cfg, dag),
		})
	}
	return outcomes, nil
}

// Mismatches filters outcomes down to the ones whose observed Result
// disagreed with their declared Expect.
func Mismatches(outcomes []Outcome) []Outcome {
	var out []Outcome
	for _, o := range outcomes {
		if !o.Matched() {
			out = append(out, o)
		}
	}
	return out
}

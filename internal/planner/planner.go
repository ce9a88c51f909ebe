package planner

import (
	"golang.org/x/exp/slices"

	"github.com/dreamware/torua-linchecker/internal/config"
	"github.com/dreamware/torua-linchecker/internal/pathmodel"
	"github.com/dreamware/torua-linchecker/internal/store"
)

// Planner accepts per-client workflows — update, remove, and the raw
// get/list/link/unlink/put/rm primitives — and accumulates them into a
// dependency DAG. Different clients' acts are never directly edge-connected
// by the planner (spec.md §4.5): all cross-client orderings are left for
// the ordering enumerator to explore.
type Planner struct {
	cfg   config.Config
	acts  []*Act
	edges map[int]map[int]struct{}
}

// New creates an empty Planner governed by cfg.
func New(cfg config.Config) *Planner {
	return &Planner{
		cfg:   cfg,
		edges: make(map[int]map[int]struct{}),
	}
}

// Build finalizes the DAG accumulated so far. Calling it more than once
// returns independent snapshots; the Planner itself remains usable (callers
// that want the "no further modification" discipline from spec.md §7 should
// simply stop calling builder methods after Build).
func (p *Planner) Build() *DAG {
	acts := make([]*Act, len(p.acts))
	copy(acts, p.acts)

	succ := make(map[int][]int, len(p.edges))
	for from, tos := range p.edges {
		list := make([]int, 0, len(tos))
		for to := range tos {
			list = append(list, to)
		}
		slices.Sort(list)
		succ[from] = list
	}
	return &DAG{Acts: acts, Successors: succ}
}

// --- raw primitives ---------------------------------------------------

// Get adds an isolated get(path) act for client and returns it so callers
// can wire custom edges with DependsOn.
func (p *Planner) Get(client string, path pathmodel.Path) *Act {
	return p.addAct(client, OpGet, path, "", nil)
}

// List adds an isolated list(path) act for client.
func (p *Planner) List(client string, path pathmodel.Path) *Act {
	return p.addAct(client, OpList, path, "", nil)
}

// Put adds an isolated put(path, fn) act for client.
func (p *Planner) Put(client string, path pathmodel.Path, fn func(store.Payload) store.Payload) *Act {
	return p.addAct(client, OpPut, path, "", fn)
}

// Rm adds an isolated rm(path) act for client.
func (p *Planner) Rm(client string, path pathmodel.Path) *Act {
	return p.addAct(client, OpRm, path, "", nil)
}

// Link adds an isolated link(path, entry) act for client.
func (p *Planner) Link(client string, path pathmodel.Path, entry string) *Act {
	return p.addAct(client, OpLink, path, entry, nil)
}

// Unlink adds an isolated unlink(path, entry) act for client.
func (p *Planner) Unlink(client string, path pathmodel.Path, entry string) *Act {
	return p.addAct(client, OpUnlink, path, entry, nil)
}

// DependsOn adds an edge from each of deps to act: act may not be scheduled
// until every dep has been emitted.
func (p *Planner) DependsOn(act *Act, deps ...*Act) {
	for _, dep := range deps {
		p.addEdge(dep, act)
	}
}

// --- high-level workflows ----------------------------------------------

// Update expands to the update(path, f) workflow of spec.md §4.5: one
// list(dir) per ancestor directory, one get(path), one link(dir, entry) per
// ancestor, one put(path, f). The links are chained root-first, so no
// directory is written before its parent's link to it. The remaining edge
// shape depends on Config.UpdateMode.
func (p *Planner) Update(client string, path pathmodel.Path, fn func(store.Payload) store.Payload) {
	ancestors := path.Links() // root-first (parent, entry) pairs

	lists := make([]*Act, len(ancestors))
	links := make([]*Act, len(ancestors))
	for i, link := range ancestors {
		lists[i] = p.List(client, pathmodel.From(link.Parent))
	}
	get := p.Get(client, path)
	for i, link := range ancestors {
		links[i] = p.Link(client, pathmodel.From(link.Parent), link.Entry)
		p.addEdge(lists[i], links[i]) // list(dir_i) -> link(dir_i): data dependency
		if i > 0 {
			p.addEdge(links[i-1], links[i]) // root-first link chain
		}
	}
	put := p.Put(client, path, fn)

	for _, l := range links {
		p.addEdge(l, put) // every link -> put
	}
	p.addEdge(get, put) // get -> put: data dependency

	if p.cfg.UpdateMode == config.ReadsBeforeLinks {
		// All reads (every list and the get) must complete before any link
		// begins.
		reads := append(append([]*Act(nil), lists...), get)
		for _, r := range reads {
			for _, l := range links {
				p.addEdge(r, l)
			}
		}
	}
	// Under GetBeforePut the get is only constrained by get -> put, so no
	// further edges are added here; it may freely interleave with links.
}

// Remove expands to the remove(path) workflow of spec.md §4.5: one
// list(dir) per ancestor, one get(path), one rm(path), one unlink(dir,
// entry) per ancestor. Edge shape for the unlink chain depends on
// Config.RemoveMode.
func (p *Planner) Remove(client string, path pathmodel.Path) {
	ancestors := path.Links() // root-first

	lists := make([]*Act, len(ancestors))
	unlinks := make([]*Act, len(ancestors))
	for i, link := range ancestors {
		lists[i] = p.List(client, pathmodel.From(link.Parent))
	}
	get := p.Get(client, path)
	rm := p.Rm(client, path)
	p.addEdge(get, rm) // get -> rm: data dependency

	for i, link := range ancestors {
		unlinks[i] = p.Unlink(client, pathmodel.From(link.Parent), link.Entry)
		p.addEdge(lists[i], unlinks[i]) // list(dir_i) -> unlink(dir_i): data dependency
	}

	if len(unlinks) == 0 {
		return
	}
	deepest := len(unlinks) - 1
	p.addEdge(rm, unlinks[deepest]) // rm -> unlink(deepest_dir, entry)

	switch p.cfg.RemoveMode {
	case config.UnlinkSequential:
		for i := deepest; i > 0; i-- {
			p.addEdge(unlinks[i], unlinks[i-1]) // deepest-first chain toward root
		}
	case config.UnlinkParallel:
		for i := 0; i < deepest; i++ {
			p.addEdge(rm, unlinks[i]) // only constrained by rm -> each_unlink
		}
	}
}

// --- internals -----------------------------------------------------------

func (p *Planner) addAct(client string, op OpKind, path pathmodel.Path, entry string, fn func(store.Payload) store.Payload) *Act {
	act := &Act{
		ID:       len(p.acts),
		Client:   client,
		Op:       op,
		Path:     path,
		Entry:    entry,
		UpdateFn: fn,
	}
	p.acts = append(p.acts, act)
	return act
}

func (p *Planner) addEdge(from, to *Act) {
	if from == nil || to == nil || from.ID == to.ID {
		return
	}
	set, ok := p.edges[from.ID]
	if !ok {
		set = make(map[int]struct{})
		p.edges[from.ID] = set
	}
	set[to.ID] = struct{}{}
}

package planner

import (
	"fmt"

	"github.com/dreamware/torua-linchecker/internal/pathmodel"
	"github.com/dreamware/torua-linchecker/internal/store"
)

// OpKind names one of the six atomic client operations a workflow can
// perform.
type OpKind int

const (
	OpGet OpKind = iota
	OpList
	OpPut
	OpRm
	OpLink
	OpUnlink
)

func (k OpKind) String() string {
	switch k {
	case OpGet:
		return "get"
	case OpList:
		return "list"
	case OpPut:
		return "put"
	case OpRm:
		return "rm"
	case OpLink:
		return "link"
	case OpUnlink:
		return "unlink"
	default:
		return "op(?)"
	}
}

// Act is a single atomic client operation tagged with its client id — the
// unit the ordering enumerator interleaves. Entry is only meaningful for
// OpLink/OpUnlink. UpdateFn is only meaningful for OpPut and is the closure
// the spec's put(path, update_fn) carries (DESIGN.md "Closures as update
// functions").
type Act struct {
	UpdateFn func(store.Payload) store.Payload
	Path     pathmodel.Path
	Client   string
	Entry    string
	ID       int
	Op       OpKind
}

// String renders an Act as the (client, op, path[, entry]) tuple the
// external interface (spec.md §6) prints for a failing linearization.
func (a *Act) String() string {
	if a.Entry != "" {
		return fmt.Sprintf("(%s, %s, %s, %s)", a.Client, a.Op, a.Path, a.Entry)
	}
	return fmt.Sprintf("(%s, %s, %s)", a.Client, a.Op, a.Path)
}

package tokens

import (
	"github.com/kiliansala/kds-ai-tokens/pkg/errors"
	"github.com/kiliansala/kds-ai-tokens/pkg/variables"
)

// unresolvedPrefix marks a $value whose reference could not be resolved.
const unresolvedPrefix = "UNRESOLVED:"

// UnresolvedValue is the sentinel literal emitted for a failed reference.
func UnresolvedValue(aliasID string) string { return unresolvedPrefix + aliasID }

// Status tags the outcome of a resolution.
type Status int

const (
	StatusResolved Status = iota
	StatusMissing
	StatusCycle
)

func (s Status) String() string {
	switch s {
	case StatusResolved:
		return "resolved"
	case StatusMissing:
		return "missing"
	case StatusCycle:
		return "cycle"
	default:
		return "unknown"
	}
}

// Resolution is the tagged result of resolving one alias.
type Resolution struct {
	Status Status
	Ref    string // original alias id
	Target Target // set when Status is StatusResolved

	// Value is the terminal literal reached by Chase. It is null when the
	// chain ended on a variable without a value in its primary mode.
	Value variables.Value

	// Chain holds the variable ids visited by Chase, in order.
	Chain []string
}

// OK reports whether the resolution succeeded.
func (r Resolution) OK() bool { return r.Status == StatusResolved }

// Err converts a failed resolution into a typed error; nil when resolved.
func (r Resolution) Err() error {
	switch r.Status {
	case StatusMissing:
		return &errors.UnresolvedReferenceError{Ref: r.Ref}
	case StatusCycle:
		return &errors.CycleDetectedError{Chain: r.Chain}
	default:
		return nil
	}
}

// Visited is an immutable set of variable ids. Adding an id returns a new
// set; the receiver is unchanged, so sibling branches never observe each
// other's visits. The nil *Visited is the empty set.
type Visited struct {
	id   string
	prev *Visited
	size int
}

// With returns a set holding the receiver's ids plus id.
func (v *Visited) With(id string) *Visited {
	return &Visited{id: id, prev: v, size: v.Len() + 1}
}

// Contains reports whether id is in the set.
func (v *Visited) Contains(id string) bool {
	for n := v; n != nil; n = n.prev {
		if n.id == id {
			return true
		}
	}
	return false
}

// Len returns the number of ids in the set.
func (v *Visited) Len() int {
	if v == nil {
		return 0
	}
	return v.size
}

// Chain returns the ids in insertion order.
func (v *Visited) Chain() []string {
	out := make([]string, v.Len())
	i := len(out) - 1
	for n := v; n != nil; n = n.prev {
		out[i] = n.id
		i--
	}
	return out
}

// Resolver resolves alias ids against one snapshot and a key map inherited
// from earlier tiers.
type Resolver struct {
	graph *variables.Graph
	keys  KeyMap
	own   map[string]Target
	byKey map[string]*variables.Variable
}

// NewResolver prepares a resolver for g. keys may be nil for the first tier.
func NewResolver(g *variables.Graph, keys KeyMap) *Resolver {
	own := make(map[string]Target, len(g.Variables))
	for id, v := range g.Variables {
		if v != nil {
			own[id] = TargetOf(g, v)
		}
	}
	return &Resolver{graph: g, keys: keys, own: own, byKey: g.KeyIndex()}
}

// Resolve maps an alias id to its canonical target.
//
// Remote refs are looked up by key hash in the key map first, then among
// the snapshot's own variables (a library variable redeclared locally).
// Local refs are looked up by id.
func (r *Resolver) Resolve(aliasID string) Resolution {
	ref := variables.ParseRef(aliasID)
	if ref.Remote {
		if t, ok := r.keys[ref.KeyHash]; ok {
			return Resolution{Status: StatusResolved, Ref: aliasID, Target: t}
		}
		if v, ok := r.byKey[ref.KeyHash]; ok {
			return Resolution{Status: StatusResolved, Ref: aliasID, Target: r.own[v.ID]}
		}
		return Resolution{Status: StatusMissing, Ref: aliasID}
	}
	if t, ok := r.own[aliasID]; ok {
		return Resolution{Status: StatusResolved, Ref: aliasID, Target: t}
	}
	return Resolution{Status: StatusMissing, Ref: aliasID}
}

// Chase follows a chain of local aliases to a terminal literal, reading each
// hop at its collection's primary mode. visited holds ids already on the
// path; reaching one of them again yields StatusCycle.
func (r *Resolver) Chase(aliasID string, visited *Visited) Resolution {
	id := aliasID
	for {
		if visited.Contains(id) {
			return Resolution{Status: StatusCycle, Ref: aliasID, Chain: visited.With(id).Chain()}
		}
		visited = visited.With(id)

		v, ok := r.lookup(id)
		if !ok {
			return Resolution{Status: StatusMissing, Ref: aliasID, Chain: visited.Chain()}
		}
		modeID, ok := r.graph.PrimaryModeID(v)
		if !ok {
			return Resolution{Status: StatusMissing, Ref: aliasID, Chain: visited.Chain()}
		}

		val := v.ValuesByMode[modeID]
		if next, isAlias := val.Alias(); isAlias {
			id = next.ID
			continue
		}
		return Resolution{
			Status: StatusResolved,
			Ref:    aliasID,
			Target: r.own[v.ID],
			Value:  val,
			Chain:  visited.Chain(),
		}
	}
}

func (r *Resolver) lookup(id string) (*variables.Variable, bool) {
	if v, ok := r.graph.Variable(id); ok {
		return v, true
	}
	if ref := variables.ParseRef(id); ref.Remote {
		v, ok := r.byKey[ref.KeyHash]
		return v, ok
	}
	return nil, false
}

package tokens

import (
	"strings"

	"github.com/kiliansala/kds-ai-tokens/pkg/variables"
)

// Target is where a reference lands: a canonical token path such as
// "{Colors.Base.black}" and the token type found there.
type Target struct {
	Path string `json:"path"`
	Type Type   `json:"type"`
}

// KeyMap maps a variable content key to its canonical target.
type KeyMap map[string]Target

// TokenPath builds the canonical reference for a variable:
// "{Collection.seg.seg}", splitting name on "/".
func TokenPath(collection, name string) string {
	return "{" + collection + "." + strings.ReplaceAll(name, "/", ".") + "}"
}

// TargetOf returns the canonical target of v inside g.
func TargetOf(g *variables.Graph, v *variables.Variable) Target {
	return Target{
		Path: TokenPath(g.CollectionName(v.CollectionID), v.Name),
		Type: InferVariableType(v),
	}
}

// KeyMapOf indexes every variable of g by content key. With localOnly set,
// variables belonging to remote collections are left out; those are library
// copies whose keys an earlier tier already owns.
func KeyMapOf(g *variables.Graph, localOnly bool) KeyMap {
	m := make(KeyMap, len(g.Variables))
	for _, id := range g.SortedVariableIDs() {
		v := g.Variables[id]
		if v == nil || v.Key == "" {
			continue
		}
		if localOnly {
			if col, ok := g.Collection(v.CollectionID); ok && col.Remote {
				continue
			}
		}
		m[v.Key] = TargetOf(g, v)
	}
	return m
}

// Merge returns a new map holding m's entries overlaid by each of others in
// order; later maps win on key collisions.
func (m KeyMap) Merge(others ...KeyMap) KeyMap {
	size := len(m)
	for _, o := range others {
		size += len(o)
	}
	out := make(KeyMap, size)
	for k, v := range m {
		out[k] = v
	}
	for _, o := range others {
		for k, v := range o {
			out[k] = v
		}
	}
	return out
}

package tokens

import (
	"github.com/kiliansala/kds-ai-tokens/pkg/variables"
)

// fixture builds small snapshots for tests.
type fixture struct {
	g *variables.Graph
}

func newFixture() *fixture {
	return &fixture{g: &variables.Graph{
		Collections: map[string]*variables.Collection{},
		Variables:   map[string]*variables.Variable{},
	}}
}

func modes(names ...string) []variables.Mode {
	out := make([]variables.Mode, len(names))
	for i, n := range names {
		out[i] = variables.Mode{ModeID: n, Name: n}
	}
	return out
}

func (f *fixture) collection(id, name string, ms []variables.Mode) *variables.Collection {
	c := &variables.Collection{ID: id, Name: name, Modes: ms}
	f.g.Collections[id] = c
	return c
}

func (f *fixture) variable(col *variables.Collection, id, key, name string, kind variables.Kind, scopes []variables.Scope, values map[string]variables.Value) *variables.Variable {
	v := &variables.Variable{
		ID:           id,
		Key:          key,
		Name:         name,
		ResolvedType: kind,
		Scopes:       scopes,
		ValuesByMode: values,
		CollectionID: col.ID,
	}
	f.g.Variables[id] = v
	col.VariableIDs = append(col.VariableIDs, id)
	return v
}

func scopes(s ...variables.Scope) []variables.Scope { return s }

// longKey returns a content key long enough to be parsed as remote.
func longKey(c byte) string {
	b := make([]byte, 40)
	for i := range b {
		b[i] = c
	}
	return string(b)
}

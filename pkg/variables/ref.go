package variables

import (
	"sort"
	"strings"
)

const (
	// idPrefix is stripped from alias ids before they are classified.
	idPrefix = "VariableID:"

	// minKeyHashLen is the length a composite id's first segment must exceed
	// to be treated as a content key rather than a local id.
	minKeyHashLen = 20
)

// Ref is a parsed alias target.
//
// Local refs address a variable by id inside the same snapshot. Remote refs
// have the form "<keyHash>/<suffix>" and address a library variable by its
// content key, which is stable across files.
type Ref struct {
	ID      string // original alias id, unmodified
	Remote  bool
	KeyHash string // set for remote refs
	Suffix  string // set for remote refs
}

// ParseRef classifies an alias id.
func ParseRef(id string) Ref {
	ref := Ref{ID: id}
	segments := strings.Split(strings.TrimPrefix(id, idPrefix), "/")
	if len(segments) == 2 && len(segments[0]) > minKeyHashLen {
		ref.Remote = true
		ref.KeyHash = segments[0]
		ref.Suffix = segments[1]
	}
	return ref
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SortedVariableIDs returns the ids of all variables in lexical order.
func (g *Graph) SortedVariableIDs() []string { return sortedKeys(g.Variables) }

// SortedCollectionIDs returns the ids of all collections in lexical order.
func (g *Graph) SortedCollectionIDs() []string { return sortedKeys(g.Collections) }

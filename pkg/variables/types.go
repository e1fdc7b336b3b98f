package variables

import "strings"

// Kind is a variable's resolved type as reported by Figma.
type Kind string

const (
	KindColor   Kind = "COLOR"
	KindFloat   Kind = "FLOAT"
	KindString  Kind = "STRING"
	KindBoolean Kind = "BOOLEAN"
)

// Scope is a usage hint restricting where a variable may be applied.
type Scope string

// Scopes consulted by type inference and value formatting.
const (
	ScopeAllScopes      Scope = "ALL_SCOPES"
	ScopeFontSize       Scope = "FONT_SIZE"
	ScopeLineHeight     Scope = "LINE_HEIGHT"
	ScopeLetterSpacing  Scope = "LETTER_SPACING"
	ScopeCornerRadius   Scope = "CORNER_RADIUS"
	ScopeWidthHeight    Scope = "WIDTH_HEIGHT"
	ScopeGap            Scope = "GAP"
	ScopeFontVariations Scope = "FONT_VARIATIONS"
	ScopeFontFamily     Scope = "FONT_FAMILY"
	ScopeFontStyle      Scope = "FONT_STYLE"
	ScopeFontWeight     Scope = "FONT_WEIGHT"
)

// HasScope reports whether scopes contains s.
func HasScope(scopes []Scope, s Scope) bool {
	for _, sc := range scopes {
		if sc == s {
			return true
		}
	}
	return false
}

// Graph is one file's variables snapshot.
type Graph struct {
	Collections map[string]*Collection `json:"variableCollections"`
	Variables   map[string]*Variable   `json:"variables"`
}

// Collection is a named group of variables sharing one ordered set of modes.
//
// For extension collections (IsExtension), Modes carry a ParentModeID into the
// parent collection and values come from the parent's variables plus
// VariableOverrides; the variables' own valuesByMode are null for the
// extension's mode ids.
type Collection struct {
	ID                         string                      `json:"id"`
	Name                       string                      `json:"name"`
	Key                        string                      `json:"key,omitempty"`
	Modes                      []Mode                      `json:"modes"`
	DefaultModeID              string                      `json:"defaultModeId,omitempty"`
	VariableIDs                []string                    `json:"variableIds"`
	Remote                     bool                        `json:"remote"`
	HiddenFromPublishing       bool                        `json:"hiddenFromPublishing"`
	IsExtension                bool                        `json:"isExtension,omitempty"`
	ParentVariableCollectionID string                      `json:"parentVariableCollectionId,omitempty"`
	VariableOverrides          map[string]map[string]Value `json:"variableOverrides,omitempty"`
}

// PrimaryMode returns the first mode, whose value becomes a token's $value.
// ok is false for a collection without modes.
func (c *Collection) PrimaryMode() (Mode, bool) {
	if len(c.Modes) == 0 {
		return Mode{}, false
	}
	return c.Modes[0], true
}

// SecondaryModes returns every mode after the primary one.
func (c *Collection) SecondaryModes() []Mode {
	if len(c.Modes) < 2 {
		return nil
	}
	return c.Modes[1:]
}

// Mode is one value-selection axis of a collection (e.g. Light, Dark).
type Mode struct {
	ModeID       string `json:"modeId"`
	Name         string `json:"name"`
	ParentModeID string `json:"parentModeId,omitempty"`
}

// Variable is a single named design value.
type Variable struct {
	ID           string           `json:"id"`
	Key          string           `json:"key"`
	Name         string           `json:"name"`
	ResolvedType Kind             `json:"resolvedType"`
	Scopes       []Scope          `json:"scopes"`
	ValuesByMode map[string]Value `json:"valuesByMode"`
	CollectionID string           `json:"variableCollectionId"`
	Remote       bool             `json:"remote,omitempty"`
}

// Segments splits the variable name into its "/"-delimited path segments.
// Segments are taken literally; there is no escaping.
func (v *Variable) Segments() []string {
	return strings.Split(v.Name, "/")
}

// Variable returns the variable with the given id.
func (g *Graph) Variable(id string) (*Variable, bool) {
	v, ok := g.Variables[id]
	return v, ok && v != nil
}

// Collection returns the collection with the given id.
func (g *Graph) Collection(id string) (*Collection, bool) {
	c, ok := g.Collections[id]
	return c, ok && c != nil
}

// CollectionName returns the name of the collection with the given id, or
// "?" when the collection is not part of the snapshot.
func (g *Graph) CollectionName(id string) string {
	if c, ok := g.Collection(id); ok {
		return c.Name
	}
	return "?"
}

// KeyIndex maps each content key to its variable. Library variables used by
// a file are redeclared locally under their original key, which makes the
// index the fallback for remote references. When several variables share a
// key, the one with the lowest id wins. Empty keys are not indexed.
func (g *Graph) KeyIndex() map[string]*Variable {
	idx := make(map[string]*Variable)
	for _, id := range sortedKeys(g.Variables) {
		v := g.Variables[id]
		if v == nil || v.Key == "" {
			continue
		}
		if _, seen := idx[v.Key]; !seen {
			idx[v.Key] = v
		}
	}
	return idx
}

// PrimaryModeID returns the primary mode id of the collection owning v.
func (g *Graph) PrimaryModeID(v *Variable) (string, bool) {
	c, ok := g.Collection(v.CollectionID)
	if !ok {
		return "", false
	}
	m, ok := c.PrimaryMode()
	return m.ModeID, ok
}

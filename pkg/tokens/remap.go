package tokens

import (
	"strings"

	"github.com/kiliansala/kds-ai-tokens/pkg/variables"
)

const (
	// colorsCollection is the library collection product files link.
	colorsCollection = "Colors"

	// keyColorPrefix marks the product library's aliases for base colors.
	keyColorPrefix = "Key/"
)

// ProductColorRemap maps the keys of a product file's remote "Colors"
// collection straight onto primitive paths, bypassing the product file's own
// shadow copy of the library:
//
//	Key/black       → {Colors.Base.black}
//	Ramps/red/50    → {Colors.Ramps.red.50}
func ProductColorRemap(g *variables.Graph) KeyMap {
	m := make(KeyMap)
	for _, cid := range g.SortedCollectionIDs() {
		col := g.Collections[cid]
		if col == nil || !col.Remote || col.Name != colorsCollection {
			continue
		}
		for _, vid := range col.VariableIDs {
			v, ok := g.Variable(vid)
			if !ok || v.Key == "" {
				continue
			}
			m[v.Key] = Target{Path: RemapColorPath(v.Name), Type: TypeColor}
		}
	}
	return m
}

// RemapColorPath returns the primitive path for a product library color name.
func RemapColorPath(name string) string {
	if rest, ok := strings.CutPrefix(name, keyColorPrefix); ok {
		return TokenPath(colorsCollection, "Base/"+rest)
	}
	return TokenPath(colorsCollection, name)
}

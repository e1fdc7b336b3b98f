package tokens

import (
	"strings"

	"github.com/kiliansala/kds-ai-tokens/pkg/variables"
)

// Type is a W3C design token type tag.
type Type string

const (
	TypeColor      Type = "color"
	TypeDimension  Type = "dimension"
	TypeNumber     Type = "number"
	TypeFontFamily Type = "fontFamily"
	TypeFontWeight Type = "fontWeight"
	TypeString     Type = "string"
	TypeUnknown    Type = "unknown"
)

// DefaultStringType is the type given to STRING variables that carry no
// font scope and no "Weight" in their name. It mirrors the convention of the
// variable sets this tool was written for and is unverified for arbitrary
// string variables.
const DefaultStringType = TypeFontFamily

// dimensionScopes are the scopes that render FLOAT values with a px unit.
var dimensionScopes = map[variables.Scope]bool{
	variables.ScopeFontSize:       true,
	variables.ScopeLineHeight:     true,
	variables.ScopeLetterSpacing:  true,
	variables.ScopeCornerRadius:   true,
	variables.ScopeWidthHeight:    true,
	variables.ScopeGap:            true,
	variables.ScopeFontVariations: true,
}

// IsDimension reports whether any scope belongs to the dimension set.
func IsDimension(scopes []variables.Scope) bool {
	for _, s := range scopes {
		if dimensionScopes[s] {
			return true
		}
	}
	return false
}

// InferType maps a variable's kind, scopes and name to a token type.
func InferType(kind variables.Kind, scopes []variables.Scope, name string) Type {
	switch kind {
	case variables.KindColor:
		return TypeColor
	case variables.KindFloat:
		if IsDimension(scopes) {
			return TypeDimension
		}
		return TypeNumber
	case variables.KindString:
		if variables.HasScope(scopes, variables.ScopeFontFamily) {
			return TypeFontFamily
		}
		if variables.HasScope(scopes, variables.ScopeFontStyle) || strings.Contains(name, "Weight") {
			return TypeFontWeight
		}
		return DefaultStringType
	default:
		return TypeString
	}
}

// InferVariableType is InferType applied to v's own fields.
func InferVariableType(v *variables.Variable) Type {
	return InferType(v.ResolvedType, v.Scopes, v.Name)
}

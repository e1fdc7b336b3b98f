package tokens

import "github.com/kiliansala/kds-ai-tokens/pkg/variables"

// EffectiveValue returns the raw value of variable v at modeID of col.
//
// For a regular collection this is v's own value in that mode. For an
// extension collection, a non-null override in col.VariableOverrides wins;
// otherwise the value is inherited from v at the parent mode the extension
// mode points to. ok is false when nothing applies.
func EffectiveValue(col *variables.Collection, v *variables.Variable, modeID string) (variables.Value, bool) {
	if !col.IsExtension {
		val := v.ValuesByMode[modeID]
		return val, !val.IsNull()
	}

	if override := col.VariableOverrides[v.ID][modeID]; !override.IsNull() {
		return override, true
	}
	parent, ok := ParentModeID(col, modeID)
	if !ok {
		return variables.Value{}, false
	}
	val := v.ValuesByMode[parent]
	return val, !val.IsNull()
}

// ParentModeID returns the parent collection mode an extension mode maps to.
func ParentModeID(col *variables.Collection, modeID string) (string, bool) {
	for _, m := range col.Modes {
		if m.ModeID == modeID {
			return m.ParentModeID, m.ParentModeID != ""
		}
	}
	return "", false
}

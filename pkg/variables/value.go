package variables

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// aliasType is the discriminator Figma uses for variable aliases.
const aliasType = "VARIABLE_ALIAS"

// Color is an RGBA color with float channels in [0, 1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Alias points at another variable by id.
type Alias struct {
	ID string `json:"id"`
}

// Value is a raw per-mode value: null, an alias, or a literal.
// The zero Value is null.
type Value struct {
	alias   *Alias
	color   *Color
	float   *float64
	str     *string
	boolean *bool
}

// AliasOf returns a Value aliasing the variable with the given id.
func AliasOf(id string) Value { return Value{alias: &Alias{ID: id}} }

// ColorValue returns a color literal.
func ColorValue(r, g, b, a float64) Value { return Value{color: &Color{R: r, G: g, B: b, A: a}} }

// FloatValue returns a numeric literal.
func FloatValue(f float64) Value { return Value{float: &f} }

// StringValue returns a string literal.
func StringValue(s string) Value { return Value{str: &s} }

// BoolValue returns a boolean literal.
func BoolValue(b bool) Value { return Value{boolean: &b} }

// IsNull reports whether v holds no value.
func (v Value) IsNull() bool {
	return v.alias == nil && v.color == nil && v.float == nil && v.str == nil && v.boolean == nil
}

// Alias returns the alias target when v is an alias.
func (v Value) Alias() (Alias, bool) {
	if v.alias == nil {
		return Alias{}, false
	}
	return *v.alias, true
}

// Color returns the color literal when v holds one.
func (v Value) Color() (Color, bool) {
	if v.color == nil {
		return Color{}, false
	}
	return *v.color, true
}

// Float returns the numeric literal when v holds one.
func (v Value) Float() (float64, bool) {
	if v.float == nil {
		return 0, false
	}
	return *v.float, true
}

// Literal returns the literal as a plain Go value (Color, float64, string or
// bool), or nil for null and alias values.
func (v Value) Literal() any {
	switch {
	case v.color != nil:
		return *v.color
	case v.float != nil:
		return *v.float
	case v.str != nil:
		return *v.str
	case v.boolean != nil:
		return *v.boolean
	default:
		return nil
	}
}

// String renders v for diagnostics.
func (v Value) String() string {
	switch {
	case v.alias != nil:
		return "alias(" + v.alias.ID + ")"
	case v.IsNull():
		return "null"
	default:
		return fmt.Sprint(v.Literal())
	}
}

// UnmarshalJSON decodes any of the shapes Figma emits for a mode value.
func (v *Value) UnmarshalJSON(data []byte) error {
	*v = Value{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '{':
		var obj struct {
			Type string   `json:"type"`
			ID   string   `json:"id"`
			R    *float64 `json:"r"`
			G    *float64 `json:"g"`
			B    *float64 `json:"b"`
			A    *float64 `json:"a"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		if obj.Type == aliasType {
			v.alias = &Alias{ID: obj.ID}
			return nil
		}
		if obj.R == nil || obj.G == nil || obj.B == nil {
			return fmt.Errorf("unsupported value object: %s", data)
		}
		c := Color{R: *obj.R, G: *obj.G, B: *obj.B, A: 1}
		if obj.A != nil {
			c.A = *obj.A
		}
		v.color = &c
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v.str = &s
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		v.boolean = &b
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return err
		}
		v.float = &f
	}
	return nil
}

// MarshalJSON encodes v in the same shape Figma uses, so snapshots
// round-trip through caches and fixtures.
func (v Value) MarshalJSON() ([]byte, error) {
	switch {
	case v.alias != nil:
		return json.Marshal(struct {
			Type string `json:"type"`
			ID   string `json:"id"`
		}{aliasType, v.alias.ID})
	case v.IsNull():
		return []byte("null"), nil
	default:
		return json.Marshal(v.Literal())
	}
}

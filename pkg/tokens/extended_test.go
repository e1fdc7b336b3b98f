package tokens

import (
	"testing"

	"github.com/kiliansala/kds-ai-tokens/pkg/variables"
)

// extensionFixture builds a parent collection with modes Light/Dark holding
// X = 10/30, and an extension collection whose single mode "Brand" points at
// the parent's Light mode.
func extensionFixture() (*fixture, *variables.Collection, *variables.Variable) {
	f := newFixture()
	parent := f.collection("p", "Base", modes("Light", "Dark"))
	x := f.variable(parent, "X", "kx", "Space/x", variables.KindFloat, scopes(variables.ScopeGap),
		map[string]variables.Value{"Light": variables.FloatValue(10), "Dark": variables.FloatValue(30)})

	ext := f.collection("e", "Brand", []variables.Mode{{ModeID: "Brand", Name: "Brand", ParentModeID: "Light"}})
	ext.IsExtension = true
	ext.ParentVariableCollectionID = "p"
	ext.VariableIDs = []string{"X"}
	return f, ext, x
}

func TestEffectiveValueInheritsParentMode(t *testing.T) {
	_, ext, x := extensionFixture()

	got, ok := EffectiveValue(ext, x, "Brand")
	if !ok {
		t.Fatal("EffectiveValue() found nothing")
	}
	if f, _ := got.Float(); f != 10 {
		t.Errorf("EffectiveValue() = %v, want 10", got)
	}
}

func TestEffectiveValueOverride(t *testing.T) {
	_, ext, x := extensionFixture()
	ext.VariableOverrides = map[string]map[string]variables.Value{
		"X": {"Brand": variables.FloatValue(20)},
	}

	got, _ := EffectiveValue(ext, x, "Brand")
	if f, _ := got.Float(); f != 20 {
		t.Errorf("EffectiveValue() = %v, want 20", got)
	}
}

func TestEffectiveValueNullOverrideFallsBack(t *testing.T) {
	_, ext, x := extensionFixture()
	ext.VariableOverrides = map[string]map[string]variables.Value{"X": {"Brand": {}}}

	got, _ := EffectiveValue(ext, x, "Brand")
	if f, _ := got.Float(); f != 10 {
		t.Errorf("EffectiveValue() = %v, want inherited 10", got)
	}
}

func TestEffectiveValueUnknownMode(t *testing.T) {
	_, ext, x := extensionFixture()
	if _, ok := EffectiveValue(ext, x, "Nope"); ok {
		t.Error("EffectiveValue() on an unknown extension mode should report nothing")
	}
}

func TestEffectiveValueRegularCollection(t *testing.T) {
	f, _, x := extensionFixture()
	parent := f.g.Collections["p"]

	got, ok := EffectiveValue(parent, x, "Dark")
	if f, _ := got.Float(); !ok || f != 30 {
		t.Errorf("EffectiveValue(Dark) = %v, %v", got, ok)
	}
	if _, ok := EffectiveValue(parent, x, "Missing"); ok {
		t.Error("missing mode should report nothing")
	}
}

func TestExtensionCollectionTokens(t *testing.T) {
	f, ext, _ := extensionFixture()
	ext.Modes = append(ext.Modes, variables.Mode{ModeID: "BrandDark", Name: "Brand Dark", ParentModeID: "Dark"})

	res, err := BuildSemantic(f.g, nil, Options{})
	if err != nil {
		t.Fatal(err)
	}

	tok, ok := res.Tree.Get("Brand", "Space", "x")
	if !ok {
		t.Fatal("extension token missing")
	}
	if tok.Type != TypeDimension || tok.Value != "10px" {
		t.Errorf("token = %+v, want dimension 10px", tok)
	}
	if tok.Modes["brand dark"] != "30px" {
		t.Errorf("modes = %v, want brand dark: 30px", tok.Modes)
	}
}

func TestTokenOmitsExtensionsWithoutModes(t *testing.T) {
	data, err := (&Token{Type: TypeNumber, Value: 1.5}).MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != `{"$type":"number","$value":1.5}` {
		t.Errorf("MarshalJSON() = %s", got)
	}

	data, _ = (&Token{Type: TypeColor, Value: "#000000", Modes: map[string]any{"dark": "#FFFFFF"}}).MarshalJSON()
	if got := string(data); got != `{"$type":"color","$value":"#000000","$extensions":{"modes":{"dark":"#FFFFFF"}}}` {
		t.Errorf("MarshalJSON() = %s", got)
	}
}

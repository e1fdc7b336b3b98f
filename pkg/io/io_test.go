package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kiliansala/kds-ai-tokens/pkg/errors"
	"github.com/kiliansala/kds-ai-tokens/pkg/tokens"
)

const bareMeta = `{
  "variableCollections": {
    "c1": {"id": "c1", "name": "Radius", "modes": [{"modeId": "m", "name": "Default"}], "variableIds": ["v1"]}
  },
  "variables": {
    "v1": {"id": "v1", "key": "k1", "name": "sm", "resolvedType": "FLOAT", "scopes": ["CORNER_RADIUS"],
           "variableCollectionId": "c1", "valuesByMode": {"m": 4}}
  }
}`

func sampleTree(t *testing.T) *tokens.Tree {
	t.Helper()
	tree := tokens.NewTree(tokens.PolicyOverwrite)
	for _, tc := range []struct {
		path []string
		tok  *tokens.Token
	}{
		{[]string{"Radius", "sm"}, &tokens.Token{Type: tokens.TypeDimension, Value: "4px"}},
		{[]string{"Colors", "Base", "black"}, &tokens.Token{Type: tokens.TypeColor, Value: "#000000"}},
		{[]string{"Font", "family"}, &tokens.Token{Type: tokens.TypeFontFamily, Value: "A&B <Sans>"}},
	} {
		if err := tree.Set(tc.path, tc.tok); err != nil {
			t.Fatal(err)
		}
	}
	return tree
}

func TestWriteTokensFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTokens(sampleTree(t), &buf); err != nil {
		t.Fatal(err)
	}

	want := `{
  "Colors": {
    "Base": {
      "black": {
        "$type": "color",
        "$value": "#000000"
      }
    }
  },
  "Font": {
    "family": {
      "$type": "fontFamily",
      "$value": "A&B <Sans>"
    }
  },
  "Radius": {
    "sm": {
      "$type": "dimension",
      "$value": "4px"
    }
  }
}
`
	if got := buf.String(); got != want {
		t.Errorf("WriteTokens() =\n%s\nwant\n%s", got, want)
	}
}

func TestWriteTokensDeterministic(t *testing.T) {
	var first bytes.Buffer
	_ = WriteTokens(sampleTree(t), &first)
	for i := 0; i < 10; i++ {
		var buf bytes.Buffer
		_ = WriteTokens(sampleTree(t), &buf)
		if !bytes.Equal(buf.Bytes(), first.Bytes()) {
			t.Fatal("output differs between runs")
		}
	}
}

func TestExportTokensCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "primitives.json")
	if err := ExportTokens(sampleTree(t), path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(data), "}\n") {
		t.Error("document should end with a newline")
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries, want only the document", len(entries))
	}
}

func TestExportTokensReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "semantic.json")
	_ = os.WriteFile(path, []byte("old contents that are longer than the new ones will be, surely"), 0o644)

	if err := ExportTokens(map[string]any{}, path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "{}\n" {
		t.Errorf("file = %q", data)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := SnapshotPath(dir, "primitives")
	if filepath.Base(path) != "primitives.variables.json" {
		t.Errorf("SnapshotPath() = %s", path)
	}

	if err := ExportSnapshot([]byte(bareMeta), path); err != nil {
		t.Fatal(err)
	}
	raw, _ := os.ReadFile(path)
	if string(raw) != bareMeta {
		t.Error("snapshot must be stored verbatim")
	}

	g, err := ImportSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := g.Variable("v1"); !ok || v.Name != "sm" {
		t.Errorf("imported graph = %+v", g.Variables)
	}
}

func TestImportSnapshotErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := ImportSnapshot(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("missing file error = %v, want INVALID_PATH", err)
	}

	bad := filepath.Join(dir, "bad.json")
	_ = os.WriteFile(bad, []byte("{"), 0o644)
	if _, err := ImportSnapshot(bad); !errors.Is(err, errors.ErrCodeInvalidSnapshot) {
		t.Errorf("bad file error = %v, want INVALID_SNAPSHOT", err)
	}
}

func TestReadSnapshotEnvelope(t *testing.T) {
	g, err := ReadSnapshot(strings.NewReader(`{"status":200,"error":false,"meta":` + bareMeta + `}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Collections) != 1 {
		t.Errorf("collections = %d", len(g.Collections))
	}
}

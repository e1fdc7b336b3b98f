package tokens

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kiliansala/kds-ai-tokens/pkg/errors"
)

// ConflictPolicy decides what happens when two variables land on the same
// tree path.
type ConflictPolicy string

const (
	// PolicyOverwrite lets the later variable replace the earlier one silently.
	PolicyOverwrite ConflictPolicy = "overwrite"
	// PolicyWarn overwrites and records a [Conflict].
	PolicyWarn ConflictPolicy = "warn"
	// PolicyError aborts the tier with ErrCodeDuplicatePath.
	PolicyError ConflictPolicy = "error"
)

// ParseConflictPolicy validates a policy name. The empty string selects
// PolicyOverwrite.
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch p := ConflictPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyOverwrite, nil
	case PolicyOverwrite, PolicyWarn, PolicyError:
		return p, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown conflict policy %q (want overwrite, warn or error)", s)
	}
}

// Token is a leaf of the output tree.
type Token struct {
	Type  Type
	Value any
	Modes map[string]any // alternate values keyed by lower-cased mode name
}

type tokenJSON struct {
	Type       Type            `json:"$type"`
	Value      any             `json:"$value"`
	Extensions *extensionsJSON `json:"$extensions,omitempty"`
}

type extensionsJSON struct {
	Modes map[string]any `json:"modes"`
}

// MarshalJSON renders the W3C token shape. $extensions is omitted when the
// token has no alternate modes.
func (t *Token) MarshalJSON() ([]byte, error) {
	out := tokenJSON{Type: t.Type, Value: t.Value}
	if len(t.Modes) > 0 {
		out.Extensions = &extensionsJSON{Modes: t.Modes}
	}
	return marshal(out)
}

// marshal encodes v like json.Marshal but leaves <, > and & unescaped; font
// names and references are written as authored.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Group is an interior node of the tree. Values are Group or *Token.
type Group map[string]any

// Conflict records a path that was written twice.
type Conflict struct {
	Path []string
}

func (c Conflict) String() string { return strings.Join(c.Path, ".") }

// Tree is the nested token document of one tier.
type Tree struct {
	root      Group
	policy    ConflictPolicy
	conflicts []Conflict
	count     int
}

// NewTree returns an empty tree using policy for duplicate paths.
func NewTree(policy ConflictPolicy) *Tree {
	if policy == "" {
		policy = PolicyOverwrite
	}
	return &Tree{root: Group{}, policy: policy}
}

// Set places tok at path. Every segment is taken literally.
//
// A path collides when its leaf is already occupied, or when a token sits
// where a group is needed (or the reverse). The tree's policy decides the
// outcome; under PolicyError, Set returns an error and the existing entry is
// kept.
func (t *Tree) Set(path []string, tok *Token) error {
	if len(path) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "empty token path")
	}

	cur := t.root
	for i, seg := range path[:len(path)-1] {
		switch existing := cur[seg].(type) {
		case nil:
			next := Group{}
			cur[seg] = next
			cur = next
		case Group:
			cur = existing
		case *Token:
			if err := t.collide(path[:i+1]); err != nil {
				return err
			}
			t.count--
			next := Group{}
			cur[seg] = next
			cur = next
		}
	}

	leaf := path[len(path)-1]
	switch existing := cur[leaf].(type) {
	case nil:
		t.count++
	case *Token:
		if err := t.collide(path); err != nil {
			return err
		}
	case Group:
		if err := t.collide(path); err != nil {
			return err
		}
		t.count -= countTokens(existing)
		t.count++
	}
	cur[leaf] = tok
	return nil
}

func (t *Tree) collide(path []string) error {
	switch t.policy {
	case PolicyError:
		return errors.New(errors.ErrCodeDuplicatePath, "duplicate token path %s", strings.Join(path, "."))
	case PolicyWarn:
		t.conflicts = append(t.conflicts, Conflict{Path: append([]string(nil), path...)})
	}
	return nil
}

func countTokens(g Group) int {
	n := 0
	for _, child := range g {
		switch c := child.(type) {
		case *Token:
			n++
		case Group:
			n += countTokens(c)
		}
	}
	return n
}

// Get returns the token at path.
func (t *Tree) Get(path ...string) (*Token, bool) {
	var cur any = t.root
	for _, seg := range path {
		g, ok := cur.(Group)
		if !ok {
			return nil, false
		}
		cur = g[seg]
	}
	tok, ok := cur.(*Token)
	return tok, ok
}

// Root returns the top-level group, keyed by collection name.
func (t *Tree) Root() Group { return t.root }

// Len returns the number of tokens in the tree.
func (t *Tree) Len() int { return t.count }

// Conflicts returns the collisions recorded under PolicyWarn.
func (t *Tree) Conflicts() []Conflict { return t.conflicts }

// MarshalJSON encodes the tree. Object keys come out sorted, so output is
// deterministic regardless of snapshot map order.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return marshal(t.root)
}

// String renders a short summary for logs.
func (t *Tree) String() string {
	return fmt.Sprintf("tree(%d groups, %d tokens)", len(t.root), t.count)
}

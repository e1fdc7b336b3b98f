package tokens

import (
	"fmt"
	"strings"

	"github.com/kiliansala/kds-ai-tokens/pkg/errors"
	"github.com/kiliansala/kds-ai-tokens/pkg/variables"
)

// Tier names one of the three fixed processing stages.
type Tier string

const (
	TierPrimitives Tier = "primitives"
	TierSemantic   Tier = "semantic"
	TierProduct    Tier = "product"
)

// Tiers lists the tiers in resolution order.
var Tiers = []Tier{TierPrimitives, TierSemantic, TierProduct}

// Options configures a tier build.
type Options struct {
	Policy ConflictPolicy
}

// Diagnostic describes a non-fatal resolution failure for one variable in
// one mode.
type Diagnostic struct {
	Collection string
	Variable   string // variable name
	Mode       string
	Resolution Resolution
}

// Code returns the error code of the failure.
func (d Diagnostic) Code() errors.Code { return errors.GetCode(d.Resolution.Err()) }

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s/%s [%s]: %v", d.Collection, d.Variable, d.Mode, d.Resolution.Err())
}

// Result is the output of one tier.
type Result struct {
	Tier Tier
	Tree *Tree

	// Keys is what this tier contributes to later tiers' key maps.
	Keys KeyMap

	// Filtered lists collections left out of the tree.
	Filtered Report

	Diagnostics []Diagnostic
}

// Count returns how many diagnostics carry the given code.
func (r *Result) Count(code errors.Code) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Code() == code {
			n++
		}
	}
	return n
}

// BuildPrimitives resolves the first tier. Every local collection is
// emitted; local alias chains are followed to literals, since primitives
// render values rather than references.
func BuildPrimitives(g *variables.Graph, opts Options) (*Result, error) {
	local, report := LocalOnly(g)
	b := newBuilder(g, nil, true, opts)
	if err := b.build(local); err != nil {
		return nil, err
	}
	return &Result{
		Tier:        TierPrimitives,
		Tree:        b.tree,
		Keys:        KeyMapOf(g, false),
		Filtered:    report,
		Diagnostics: b.diags,
	}, nil
}

// BuildSemantic resolves the second tier against the primitives key map.
func BuildSemantic(g *variables.Graph, primitives KeyMap, opts Options) (*Result, error) {
	return buildReferencing(TierSemantic, g, primitives, opts)
}

// BuildProduct resolves the third tier. upstream carries the primitives and
// semantic key maps; the product file's remote "Colors" collection is
// remapped onto primitive paths and takes precedence over both.
func BuildProduct(g *variables.Graph, upstream KeyMap, opts Options) (*Result, error) {
	return buildReferencing(TierProduct, g, upstream.Merge(ProductColorRemap(g)), opts)
}

func buildReferencing(tier Tier, g *variables.Graph, keys KeyMap, opts Options) (*Result, error) {
	local, localReport := LocalOnly(g)
	publish, publishReport := Publishable(local, g.Variables)

	b := newBuilder(g, keys, false, opts)
	if err := b.build(publish); err != nil {
		return nil, err
	}
	return &Result{
		Tier:        tier,
		Tree:        b.tree,
		Keys:        KeyMapOf(g, true),
		Filtered:    localReport.Merge(publishReport),
		Diagnostics: b.diags,
	}, nil
}

// builder assembles one tier's tree.
type builder struct {
	graph    *variables.Graph
	resolver *Resolver
	chase    bool
	tree     *Tree
	diags    []Diagnostic
}

func newBuilder(g *variables.Graph, keys KeyMap, chase bool, opts Options) *builder {
	return &builder{
		graph:    g,
		resolver: NewResolver(g, keys),
		chase:    chase,
		tree:     NewTree(opts.Policy),
	}
}

func (b *builder) build(cols Collections) error {
	for _, col := range cols.Sorted() {
		if err := b.collection(col); err != nil {
			return fmt.Errorf("collection %q: %w", col.Name, err)
		}
	}
	return nil
}

func (b *builder) collection(col *variables.Collection) error {
	primary, ok := col.PrimaryMode()
	if !ok {
		return nil
	}

	for _, vid := range col.VariableIDs {
		v, ok := b.graph.Variable(vid)
		if !ok {
			continue
		}
		raw, ok := EffectiveValue(col, v, primary.ModeID)
		if !ok {
			continue
		}
		typ, val, ok := b.value(col, v, primary, raw)
		if !ok {
			continue
		}

		tok := &Token{Type: typ, Value: val}
		for _, mode := range col.SecondaryModes() {
			raw, ok := EffectiveValue(col, v, mode.ModeID)
			if !ok {
				continue
			}
			if _, alt, ok := b.value(col, v, mode, raw); ok {
				if tok.Modes == nil {
					tok.Modes = make(map[string]any)
				}
				tok.Modes[strings.ToLower(mode.Name)] = alt
			}
		}

		path := append([]string{col.Name}, v.Segments()...)
		if err := b.tree.Set(path, tok); err != nil {
			return err
		}
	}
	return nil
}

// value turns one raw mode value into a token type and literal. ok is false
// when the variable contributes nothing for that mode.
func (b *builder) value(col *variables.Collection, v *variables.Variable, mode variables.Mode, raw variables.Value) (Type, any, bool) {
	alias, isAlias := raw.Alias()
	if !isAlias {
		return InferVariableType(v), Format(v.ResolvedType, v.Scopes, raw), true
	}

	if b.chase {
		res := b.resolver.Chase(alias.ID, (*Visited)(nil).With(v.ID))
		switch res.Status {
		case StatusResolved:
			if res.Value.IsNull() {
				return "", nil, false
			}
			return InferVariableType(v), Format(v.ResolvedType, v.Scopes, res.Value), true
		case StatusCycle:
			b.diagnose(col, v, mode, res)
			return "", nil, false
		default:
			b.diagnose(col, v, mode, res)
			return TypeUnknown, UnresolvedValue(alias.ID), true
		}
	}

	res := b.resolver.Resolve(alias.ID)
	if res.OK() {
		return res.Target.Type, res.Target.Path, true
	}
	b.diagnose(col, v, mode, res)
	return TypeUnknown, UnresolvedValue(alias.ID), true
}

func (b *builder) diagnose(col *variables.Collection, v *variables.Variable, mode variables.Mode, res Resolution) {
	b.diags = append(b.diags, Diagnostic{
		Collection: col.Name,
		Variable:   v.Name,
		Mode:       mode.Name,
		Resolution: res,
	})
}

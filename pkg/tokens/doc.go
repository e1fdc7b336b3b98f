// Package tokens resolves Figma variable snapshots into W3C Design Token trees.
//
// # Overview
//
// Three design files are processed as tiers, strictly in order:
//
//  1. primitives: raw values. Local alias chains are followed to literals.
//  2. semantic: aliases into primitives, rendered as "{Collection.path}" refs.
//  3. product: aliases into primitives and semantic, with the product file's
//     library copy of "Colors" remapped straight onto primitive paths.
//
// Each tier returns a [KeyMap] (variable content key → canonical path and
// type). Later tiers need it to resolve remote references, which address a
// variable by content key rather than id.
//
// # Building Blocks
//
//   - [InferType] and [Format]: pure functions from kind, scopes and raw value
//   - [LocalOnly] and [Publishable]: collection filters returning a [Report]
//   - [Resolver]: alias resolution with tagged [Resolution] results
//   - [EffectiveValue]: extension collection inheritance
//   - [Tree]: the nested output with an injectable [ConflictPolicy]
//   - [ProductColorRemap]: the product-tier key remap
//
// The tier entry points [BuildPrimitives], [BuildSemantic] and [BuildProduct]
// compose these. Nothing in this package performs I/O or logs; diagnostics are
// returned as values for the caller to render.
//
// # Concurrency
//
// All functions are pure over immutable snapshots and safe for concurrent use
// on distinct inputs. A [Tree] is not safe for concurrent mutation.
package tokens

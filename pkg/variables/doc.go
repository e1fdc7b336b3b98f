// Package variables models a Figma "local variables" export.
//
// # Overview
//
// A design file exposes its variables through the REST endpoint
// GET /v1/files/:key/variables/local. The response is a snapshot of two flat
// tables keyed by id:
//
//   - variableCollections: named groups of variables sharing ordered modes
//   - variables: individual values, one per mode, each either a literal or an
//     alias to another variable
//
// [Graph] is the in-memory form of one such snapshot. It is loaded once and
// never mutated; every resolver in [tokens] reads it concurrently-safe.
//
// # Values
//
// A [Value] is a tagged union. The zero Value is null, which Figma uses for
// "no value in this mode" (notably every mode of an extension collection).
// Aliases carry the target id verbatim; use [ParseRef] to distinguish a local
// id from a remote library reference addressed by content key:
//
//	ref := variables.ParseRef("VariableID:3f1c…9a/12:7")
//	if ref.Remote {
//	    // ref.KeyHash identifies the variable in another file
//	}
//
// # Decoding
//
// [Decode] accepts either the full API envelope ({"status":…,"meta":{…}}) or
// the bare meta object, so both live responses and hand-written fixtures load
// the same way.
//
// [tokens]: github.com/kiliansala/kds-ai-tokens/pkg/tokens
package variables

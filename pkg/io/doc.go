// Package io reads variable snapshots and writes token documents.
//
// # Token Documents
//
// [WriteTokens] encodes a tier's tree as UTF-8 JSON with two-space
// indentation, sorted object keys, unescaped HTML characters, and a trailing
// newline. Running the importer twice on the same snapshots therefore
// produces byte-identical files.
//
//	err := io.ExportTokens(result.Tree, "tokens/primitives.json")
//
// # Snapshots
//
// A snapshot is the raw body of the Figma variables endpoint for one file,
// either the {status, error, meta} envelope or the bare meta object.
// [ExportSnapshot] stores one verbatim so later runs can work offline;
// [ImportSnapshot] reads it back into a [variables.Graph].
//
//	g, err := io.ImportSnapshot(io.SnapshotPath("fixtures", "semantic"))
//
// [variables.Graph]: github.com/kiliansala/kds-ai-tokens/pkg/variables.Graph
package io

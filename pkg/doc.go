// Package pkg provides the libraries behind kds-tokens, which turns the
// variables of three Figma files into W3C design token documents.
//
// # Overview
//
// The design system is split across three files, each producing one tier:
//
//  1. primitives: raw values (colors, spacing, type scales)
//  2. semantic: aliases onto primitives (surface, text, border roles)
//  3. product: aliases onto semantic tokens and remapped library colors
//
// The pkg directory is organized as:
//
//   - [variables] - Snapshot model and alias id parsing
//   - [tokens] - Filtering, alias resolution, formatting, token trees
//   - [integrations] - HTTP client and the Figma variables API
//   - [cache] - Snapshot caching (file, Redis, none)
//   - [config] - Layered configuration
//   - [io] - Document and snapshot files
//   - [pipeline] - Orchestration (acquire → resolve → write)
//   - [observability] - Hooks for tracing runs
//   - [errors] - Coded errors and input validation
//
// # Data Flow
//
//	Figma REST API (or snapshot directory)
//	         ↓
//	[pipeline.Runner.Acquire] - three snapshots, fetched concurrently
//	         ↓
//	[tokens.BuildPrimitives] → [tokens.BuildSemantic] → [tokens.BuildProduct]
//	         ↓
//	[pipeline.Runner.Write] - primitives.json, semantic.json, <product>.json
package pkg

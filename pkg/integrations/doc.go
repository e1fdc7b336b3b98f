// Package integrations provides the HTTP plumbing for remote design-tool APIs.
//
// # Overview
//
// Each API has its own subpackage built on the shared [Client]:
//
//   - [figma]: Figma REST API (variables endpoint)
//
// # Client Pattern
//
// API clients follow a consistent pattern:
//
//	client, err := figma.NewClient(token, backend, time.Hour)
//	graph, err := client.FetchVariables(ctx, fileKey, false) // false = use cache
//
// # Shared Infrastructure
//
// [Client] handles default headers, raw response caching via [cache.Cache],
// status mapping, and observability hooks. It never retries: a failed
// request is reported to the caller once.
//
// [figma]: github.com/kiliansala/kds-ai-tokens/pkg/integrations/figma
// [cache.Cache]: github.com/kiliansala/kds-ai-tokens/pkg/cache.Cache
package integrations

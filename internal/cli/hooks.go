package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kiliansala/kds-ai-tokens/pkg/observability"
)

// logHooks reports observability events as debug log lines.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l.WithPrefix("trace")}
}

func (h *logHooks) OnAcquireStart(_ context.Context, tier, source string) {
	h.logger.Debug("acquire", "tier", tier, "source", source)
}

func (h *logHooks) OnAcquireComplete(_ context.Context, tier string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("acquire failed", "tier", tier, "err", err)
		return
	}
	h.logger.Debug("acquired", "tier", tier, "size", size, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnTierStart(_ context.Context, tier string) {
	h.logger.Debug("resolve", "tier", tier)
}

func (h *logHooks) OnTierComplete(_ context.Context, tier string, tokens, unresolved int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("resolve failed", "tier", tier, "err", err)
		return
	}
	h.logger.Debug("resolved", "tier", tier, "tokens", tokens, "unresolved", unresolved, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnWrite(_ context.Context, tier, path string, size int, err error) {
	h.logger.Debug("write", "tier", tier, "path", path, "bytes", size, "err", err)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}

var (
	_ observability.PipelineHooks = (*logHooks)(nil)
	_ observability.CacheHooks    = (*logHooks)(nil)
	_ observability.HTTPHooks     = (*logHooks)(nil)
)

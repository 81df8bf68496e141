package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug records to a
// charmbracelet logger.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

// RegisterLogHooks installs logger-backed hooks for every category.
func RegisterLogHooks(logger *log.Logger) {
	h := NewLogHooks(logger)
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnDecodeStart(_ context.Context, format string) {
	h.logger.Debug("decode start", "format", format)
}

func (h *LogHooks) OnDecodeComplete(_ context.Context, format string, items int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("decode failed", "format", format, "err", err)
		return
	}
	h.logger.Debug("decode done", "format", format, "items", items, "took", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, items int) {
	h.logger.Debug("layout start", "items", items)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, lines int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("layout failed", "err", err)
		return
	}
	h.logger.Debug("layout done", "lines", lines, "took", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "formats", formats, "err", err)
		return
	}
	h.logger.Debug("render done", "formats", formats, "took", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "route", route, "status", status, "took", d)
}

func (h *LogHooks) OnError(_ context.Context, method, route string, err error) {
	h.logger.Warn("request error", "method", method, "route", route, "err", err)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)

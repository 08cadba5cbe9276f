package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/wbsview/pkg/observability"
)

// logHooks writes pipeline and cache events to the debug log.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l}
}

func (h *logHooks) OnLoadStart(_ context.Context, path string) {
	h.logger.Debug("load started", "path", path)
}

func (h *logHooks) OnLoadComplete(_ context.Context, path string, nodes, edges int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "path", path, "err", err)
		return
	}
	h.logger.Debug("load finished", "path", path, "nodes", nodes, "edges", edges, "duration", d)
}

func (h *logHooks) OnLayoutStart(_ context.Context, nodes int) {
	h.logger.Debug("layout started", "nodes", nodes)
}

func (h *logHooks) OnLayoutComplete(_ context.Context, nodes int, d time.Duration, err error) {
	h.logger.Debug("layout finished", "nodes", nodes, "duration", d, "err", err)
}

func (h *logHooks) OnRenderStart(_ context.Context, format string) {
	h.logger.Debug("render started", "format", format)
}

func (h *logHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	h.logger.Debug("render finished", "format", format, "bytes", size, "duration", d, "err", err)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "kind", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "kind", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "kind", keyType, "bytes", size)
}

// sessionHooks logs the gestures and view changes of one explore session.
// Every line carries the session id.
type sessionHooks struct {
	id     string
	logger *log.Logger
}

func newSessionHooks(l *log.Logger) *sessionHooks {
	id := uuid.NewString()
	return &sessionHooks{id: id, logger: l.With("session", id)}
}

func (h *sessionHooks) OnGesture(_ context.Context, gesture, target, id string) {
	h.logger.Debug("gesture", "button", gesture, "target", target, "id", id)
}

func (h *sessionHooks) OnTransition(_ context.Context, t observability.Transition) {
	h.logger.Info("view changed",
		"item", t.Item,
		"from", t.FromMode,
		"to", t.ToMode,
		"focus", t.ToFocus)
}

func (h *sessionHooks) OnNotice(_ context.Context, message string) {
	h.logger.Info("notice", "message", message)
}

var (
	_ observability.PipelineHooks    = (*logHooks)(nil)
	_ observability.CacheHooks       = (*logHooks)(nil)
	_ observability.InteractionHooks = (*sessionHooks)(nil)
)

package observability

import (
	"context"
	"log/slog"

	"github.com/quarryworks/lode/pkg/domain"
)

// LogHooks returns lifecycle hooks that emit a structured log line per
// event.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTick: func(ctx context.Context, e *domain.TickEvent) {
			logger.Debug("tick",
				"result", string(e.Result),
				"depth", e.Depth,
			)
		},
		OnExpand: func(ctx context.Context, e *domain.ExpandEvent) {
			logger.Info("expand",
				"direction", string(e.Direction),
				"block", e.Block,
				"expanded", e.Expanded,
			)
		},
		OnFrameDone: func(ctx context.Context, e *domain.FrameEvent) {
			logger.Debug("frame_done",
				"kind", string(e.Kind),
				"direction", string(e.Direction),
			)
		},
	}
}

// MergeHooks fans each event out to every given hook set, in order.
func MergeHooks(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTick: func(ctx context.Context, e *domain.TickEvent) {
			for _, h := range hooks {
				if h.OnTick != nil {
					h.OnTick(ctx, e)
				}
			}
		},
		OnExpand: func(ctx context.Context, e *domain.ExpandEvent) {
			for _, h := range hooks {
				if h.OnExpand != nil {
					h.OnExpand(ctx, e)
				}
			}
		},
		OnFrameDone: func(ctx context.Context, e *domain.FrameEvent) {
			for _, h := range hooks {
				if h.OnFrameDone != nil {
					h.OnFrameDone(ctx, e)
				}
			}
		},
	}
}

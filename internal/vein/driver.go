package vein

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quarryworks/lode/internal/logging"
	"github.com/quarryworks/lode/pkg/behavior"
	"github.com/quarryworks/lode/pkg/domain"
	"github.com/quarryworks/lode/pkg/ports"
)

// Excavate is the traversal driver. It owns the explicit work stack and
// advances it one frame-step per tick.
//
// A nil stack means "not started"; an empty non-nil stack means the last
// frame was just consumed and the next tick reports terminal success. On
// that tick the stack returns to nil, so the same driver is immediately
// reusable for a new traversal.
type Excavate struct {
	direction domain.Direction
	denylist  *domain.Denylist
	stack     []behavior.Action

	// Observer state, never serialized. Rebound by the host after a
	// restore.
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// New builds a driver for an excavation starting at the cell in dir.
// The denylist is required: it is the shared classifier every node
// spawned during the traversal consults.
func New(dir domain.Direction, deny *domain.Denylist) (*Excavate, error) {
	if err := dir.Validate(); err != nil {
		return nil, err
	}
	if deny == nil {
		return nil, fmt.Errorf("vein: denylist is required")
	}
	return &Excavate{
		direction: dir,
		denylist:  deny,
		logger:    logging.NewNop(),
	}, nil
}

// SetObserver binds a logger and lifecycle hooks. Pass a nil logger to
// keep the current one.
func (x *Excavate) SetObserver(logger *slog.Logger, hooks domain.LifecycleHooks) {
	if logger != nil {
		x.logger = logger
	}
	x.hooks = hooks
}

// Direction returns the initial sensing direction.
func (x *Excavate) Direction() domain.Direction {
	return x.direction
}

// Denylist returns the shared classifier handle.
func (x *Excavate) Denylist() *domain.Denylist {
	return x.denylist
}

// Active reports whether a traversal is in progress.
func (x *Excavate) Active() bool {
	return x.stack != nil
}

// Depth returns the number of pending frames.
func (x *Excavate) Depth() int {
	return len(x.stack)
}

// Tick advances the traversal by one bounded step: at most one physical
// rig operation, or one structural expansion of the stack. It returns
// ResultRunning until the stack empties, then ResultSuccess.
//
// A recoverable primitive failure yields ResultFailure with the failing
// frame left on the stack unchanged, so the caller decides whether to
// retry the identical tick or abandon the run. A non-nil error is fatal
// and also preserves the frame, but retrying it will not help.
func (x *Excavate) Tick(ctx context.Context, rig ports.Rig) (domain.Result, error) {
	res, err := x.step(ctx, rig)
	if x.hooks.OnTick != nil {
		x.hooks.OnTick(ctx, &domain.TickEvent{Result: res, Depth: len(x.stack)})
	}
	return res, err
}

func (x *Excavate) step(ctx context.Context, rig ports.Rig) (domain.Result, error) {
	if x.stack == nil {
		first, err := NewExpand(x.direction)
		if err != nil {
			return domain.ResultFailure, err
		}
		x.stack = []behavior.Action{first}
		x.logger.Debug("excavation started", "direction", x.direction)
		return domain.ResultRunning, nil
	}

	if len(x.stack) == 0 {
		x.stack = nil
		x.logger.Debug("excavation complete")
		return domain.ResultSuccess, nil
	}

	top := x.stack[len(x.stack)-1]
	x.stack = x.stack[:len(x.stack)-1]

	if exp, ok := top.(*Expand); ok {
		return x.execExpand(ctx, rig, exp)
	}

	res, err := top.Tick(ctx, rig)
	if err != nil {
		x.stack = append(x.stack, top)
		return domain.ResultFailure, err
	}

	switch res {
	case domain.ResultSuccess:
		x.emitFrameDone(ctx, top)
		return domain.ResultRunning, nil
	case domain.ResultRunning:
		x.stack = append(x.stack, top)
		return domain.ResultRunning, nil
	default:
		// Conservative policy: keep the frame so a later tick retries
		// the identical step once the obstruction clears. The retry
		// cadence is the caller's decision, not ours.
		x.stack = append(x.stack, top)
		x.logger.Debug("frame failed, preserved for retry", "kind", frameKind(top), "depth", len(x.stack))
		return domain.ResultFailure, nil
	}
}

func (x *Excavate) execExpand(ctx context.Context, rig ports.Rig, exp *Expand) (domain.Result, error) {
	frames, event, err := exp.expand(ctx, rig, x.denylist)
	if err != nil {
		x.stack = append(x.stack, exp)
		return domain.ResultFailure, err
	}

	if x.hooks.OnExpand != nil {
		x.hooks.OnExpand(ctx, event)
	}

	if len(frames) == 0 {
		// Not a target: the frame is consumed with no side effect.
		x.emitFrameDone(ctx, exp)
		return domain.ResultRunning, nil
	}

	x.stack = append(x.stack, frames...)
	x.logger.Debug("vein cell expanded",
		"direction", exp.Direction,
		"block", event.Block,
		"depth", len(x.stack),
	)
	return domain.ResultRunning, nil
}

func (x *Excavate) emitFrameDone(ctx context.Context, frame behavior.Action) {
	if x.hooks.OnFrameDone == nil {
		return
	}
	ev := &domain.FrameEvent{Kind: frameKind(frame)}
	switch f := frame.(type) {
	case *Expand:
		ev.Direction = f.Direction
	case *behavior.Turn:
		ev.Direction = f.Direction
	case *behavior.Move:
		ev.Direction = f.Direction
	}
	x.hooks.OnFrameDone(ctx, ev)
}

func frameKind(frame behavior.Action) domain.FrameKind {
	switch frame.(type) {
	case *Expand:
		return domain.FrameExpand
	case *behavior.Turn:
		return domain.FrameTurn
	case *behavior.Move:
		return domain.FrameMove
	default:
		return domain.FrameStep
	}
}

package domain

import "context"

// FrameKind labels the variant of a pending work frame for observability.
type FrameKind string

const (
	FrameExpand FrameKind = "expand"
	FrameStep   FrameKind = "step"
	FrameTurn   FrameKind = "turn"
	FrameMove   FrameKind = "move"
)

// TickEvent describes one completed driver tick.
type TickEvent struct {
	Result Result
	// Depth is the stack depth after the tick.
	Depth int
}

// ExpandEvent describes the outcome of sensing a candidate cell.
type ExpandEvent struct {
	Direction Direction
	// Block is the sensed identifier, empty if the cell was empty.
	Block string
	// Expanded is true when the cell was a target and frames were pushed.
	Expanded bool
}

// FrameEvent describes a frame that was fully consumed.
type FrameEvent struct {
	Kind      FrameKind
	Direction Direction
}

// LifecycleHooks are optional callbacks for engine observability. Nil
// members are skipped. Hooks run synchronously inside the tick; keep
// them cheap.
type LifecycleHooks struct {
	OnTick      func(context.Context, *TickEvent)
	OnExpand    func(context.Context, *ExpandEvent)
	OnFrameDone func(context.Context, *FrameEvent)
}

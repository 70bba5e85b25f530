package vein

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/quarryworks/lode/pkg/behavior"
	"github.com/quarryworks/lode/pkg/domain"
	"github.com/quarryworks/lode/pkg/ports"
)

// TypeExpand is the node type tag for a pending node-expansion frame.
const TypeExpand = "expand"

// Expand is the frame that decides whether the cell in Direction belongs
// to the vein. If it does, the frame is replaced wholesale by the full
// local exploration plan; the decision is made exactly once and never
// revisited on later ticks.
type Expand struct {
	Direction domain.Direction
}

// NewExpand validates the direction and builds an expansion frame.
func NewExpand(dir domain.Direction) (*Expand, error) {
	if err := dir.Validate(); err != nil {
		return nil, err
	}
	return &Expand{Direction: dir}, nil
}

// expand senses the candidate cell and, for a target, returns the
// replacement frames in push order (execution order reversed). A nil
// frame slice with a nil error means the cell is not a target and the
// frame is simply consumed.
//
// Sensing fails only on programming errors (unsupported direction), so
// any error here is fatal rather than a retryable Failure.
func (e *Expand) expand(ctx context.Context, rig ports.Rig, deny *domain.Denylist) ([]behavior.Action, *domain.ExpandEvent, error) {
	block, found, err := rig.Inspect(ctx, e.Direction)
	if err != nil {
		return nil, nil, fmt.Errorf("sense %s: %w", e.Direction, err)
	}

	event := &domain.ExpandEvent{Direction: e.Direction}
	if found {
		event.Block = block.Name
	}
	if !found || deny.Contains(block.Name) {
		return nil, event, nil
	}
	event.Expanded = true

	// Execution order is the documented 12-step plan:
	//
	//   1. dig the target and move into its cell
	//   2. explore ahead
	//   3. explore above
	//   4. explore below
	//   5-11. four left turns, probing forward after the first three,
	//         which covers the original left, back, and right neighbors
	//         and restores the heading
	//   12. move back out along the inverse direction
	//
	// The final inverse move and the full 360 of turns are what
	// guarantee the agent leaves this cell exactly as it entered it.
	plan := []behavior.Action{
		newStep(e.Direction),
		&Expand{Direction: domain.Forward},
		&Expand{Direction: domain.Up},
		&Expand{Direction: domain.Down},
	}
	// One left turn per remaining horizontal neighbor, probing forward
	// after each; the successor chain ends where it started, so the
	// closing turn below restores the heading.
	for dir := domain.Forward.TurnLeftSuccessor(); dir != domain.Forward; dir = dir.TurnLeftSuccessor() {
		plan = append(plan,
			&behavior.Turn{Direction: domain.Left},
			&Expand{Direction: domain.Forward},
		)
	}
	plan = append(plan,
		&behavior.Turn{Direction: domain.Left},
		&behavior.Move{Direction: e.Direction.Inverse()},
	)

	// Frames are pushed in reverse so the LIFO pop yields the plan
	// front to back.
	frames := make([]behavior.Action, len(plan))
	for i, a := range plan {
		frames[len(plan)-1-i] = a
	}
	return frames, event, nil
}

// Tick satisfies behavior.Action so expansion frames serialize alongside
// every other node, but an Expand is only meaningful on a driver's stack:
// it has no denylist and nowhere to push its replacement frames.
func (e *Expand) Tick(ctx context.Context, rig ports.Rig) (domain.Result, error) {
	return domain.ResultFailure, fmt.Errorf("expand frame for %s must be executed by the excavation driver", e.Direction)
}

func (e *Expand) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type      string           `json:"type"`
		Direction domain.Direction `json:"direction"`
	}{TypeExpand, e.Direction})
}

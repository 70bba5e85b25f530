package behavior

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/quarryworks/lode/pkg/domain"
	"github.com/quarryworks/lode/pkg/ports"
)

// leafJSON is the wire form shared by all primitive leaves.
type leafJSON struct {
	Type      string           `json:"type"`
	Direction domain.Direction `json:"direction"`
}

// Dig removes the cell in Direction. Every recoverable refusal maps to
// the same failure result, an already-empty cell included; use Clear
// when exhaustion must be told apart from a refused dig.
type Dig struct {
	Direction domain.Direction
}

// NewDig validates the direction and builds a dig leaf.
func NewDig(dir domain.Direction) (*Dig, error) {
	if err := dir.Validate(); err != nil {
		return nil, err
	}
	return &Dig{Direction: dir}, nil
}

func (d *Dig) Tick(ctx context.Context, rig ports.Rig) (domain.Result, error) {
	if err := d.Direction.Validate(); err != nil {
		return domain.ResultFailure, err
	}
	if err := rig.Dig(ctx, d.Direction); err != nil {
		if domain.Recoverable(err) {
			return domain.ResultFailure, nil
		}
		return domain.ResultFailure, err
	}
	return domain.ResultSuccess, nil
}

func (d *Dig) MarshalJSON() ([]byte, error) {
	return json.Marshal(leafJSON{Type: TypeDig, Direction: d.Direction})
}

// Clear digs the cell in Direction until nothing remains, one dig per
// tick; falling material refilling the cell just extends the loop. An
// already-empty cell is terminal success. A refused dig (full storage,
// unbreakable material, obstruction) is a retryable failure, not
// satisfaction, so a surrounding sequence stays parked on the clear
// until the condition lifts.
type Clear struct {
	Direction domain.Direction
}

// NewClear validates the direction and builds a dig-until-empty leaf.
func NewClear(dir domain.Direction) (*Clear, error) {
	if err := dir.Validate(); err != nil {
		return nil, err
	}
	return &Clear{Direction: dir}, nil
}

func (c *Clear) Tick(ctx context.Context, rig ports.Rig) (domain.Result, error) {
	if err := c.Direction.Validate(); err != nil {
		return domain.ResultFailure, err
	}
	err := rig.Dig(ctx, c.Direction)
	switch {
	case err == nil:
		return domain.ResultRunning, nil
	case errors.Is(err, domain.ErrNothingToDig):
		return domain.ResultSuccess, nil
	case domain.Recoverable(err):
		return domain.ResultFailure, nil
	}
	return domain.ResultFailure, err
}

func (c *Clear) MarshalJSON() ([]byte, error) {
	return json.Marshal(leafJSON{Type: TypeClear, Direction: c.Direction})
}

// Move advances the agent one cell in Direction, keeping its heading.
type Move struct {
	Direction domain.Direction
}

// NewMove validates the direction and builds a move leaf.
func NewMove(dir domain.Direction) (*Move, error) {
	if err := dir.Validate(); err != nil {
		return nil, err
	}
	return &Move{Direction: dir}, nil
}

func (m *Move) Tick(ctx context.Context, rig ports.Rig) (domain.Result, error) {
	if err := m.Direction.Validate(); err != nil {
		return domain.ResultFailure, err
	}
	if err := rig.Move(ctx, m.Direction); err != nil {
		if domain.Recoverable(err) {
			return domain.ResultFailure, nil
		}
		return domain.ResultFailure, err
	}
	return domain.ResultSuccess, nil
}

func (m *Move) MarshalJSON() ([]byte, error) {
	return json.Marshal(leafJSON{Type: TypeMove, Direction: m.Direction})
}

// Turn rotates the agent in place. Only left and right are meaningful.
type Turn struct {
	Direction domain.Direction
}

// NewTurn validates the direction and builds a turn leaf.
func NewTurn(dir domain.Direction) (*Turn, error) {
	if dir != domain.Left && dir != domain.Right {
		return nil, fmt.Errorf("%w: turn accepts left or right, got %q", domain.ErrUnsupportedDirection, dir)
	}
	return &Turn{Direction: dir}, nil
}

func (t *Turn) Tick(ctx context.Context, rig ports.Rig) (domain.Result, error) {
	if t.Direction != domain.Left && t.Direction != domain.Right {
		return domain.ResultFailure, fmt.Errorf("%w: turn accepts left or right, got %q", domain.ErrUnsupportedDirection, t.Direction)
	}
	if err := rig.Turn(ctx, t.Direction); err != nil {
		if domain.Recoverable(err) {
			return domain.ResultFailure, nil
		}
		return domain.ResultFailure, err
	}
	return domain.ResultSuccess, nil
}

func (t *Turn) MarshalJSON() ([]byte, error) {
	return json.Marshal(leafJSON{Type: TypeTurn, Direction: t.Direction})
}

package ports

import (
	"context"

	"github.com/quarryworks/lode/pkg/domain"
)

// Rig is the agent capability consumed by the traversal core. Every call
// operates on a direction relative to the agent's current pose and is
// rate-limited and fallible in the real world, which is why the engine
// performs at most one of these per tick.
//
// Recoverable conditions are reported via the sentinel errors in the
// domain package (ErrObstructed, ErrNothingToDig, ErrStorageFull,
// ErrUnbreakable); any other error is treated as fatal.
type Rig interface {
	// Inspect senses the cell in the given direction. found is false for
	// an empty cell. It fails only on a programming error, such as an
	// unsupported direction value.
	Inspect(ctx context.Context, dir domain.Direction) (block domain.Block, found bool, err error)

	// Dig removes the cell in the given direction.
	// Returns domain.ErrNothingToDig when the cell is already empty.
	Dig(ctx context.Context, dir domain.Direction) error

	// Move advances the agent one cell in the given direction without
	// changing its heading. Returns domain.ErrObstructed when blocked.
	Move(ctx context.Context, dir domain.Direction) error

	// Turn rotates the agent in place. Only domain.Left and domain.Right
	// are valid; anything else is domain.ErrUnsupportedDirection.
	Turn(ctx context.Context, dir domain.Direction) error
}

package domain

import "errors"

// Recoverable rig failures. The driver reports these as Failure and keeps
// the failing frame on the stack so the host can retry the identical tick
// once the external condition clears.
var (
	// ErrObstructed is returned when a move is blocked by a solid cell
	// or another agent.
	ErrObstructed = errors.New("movement obstructed")

	// ErrNothingToDig is returned when a dig finds an empty cell. The
	// step builder treats this as "already satisfied", not as a fault.
	ErrNothingToDig = errors.New("nothing to dig")

	// ErrStorageFull is returned when a dig succeeds but the agent has
	// no room to keep the yield.
	ErrStorageFull = errors.New("storage full")

	// ErrUnbreakable is returned when the target cell cannot be dug at all.
	ErrUnbreakable = errors.New("cell is unbreakable")
)

// ErrUnsupportedDirection indicates a programming error: a primitive was
// asked to operate on a direction value it does not understand. It is
// fatal, never retried.
var ErrUnsupportedDirection = errors.New("unsupported direction")

// ErrSessionNotFound is returned by stores when a session ID does not exist.
var ErrSessionNotFound = errors.New("session not found")

// Recoverable reports whether err is a transient rig failure that maps to
// a Failure result (frame preserved for retry) rather than aborting the
// traversal.
func Recoverable(err error) bool {
	return errors.Is(err, ErrObstructed) ||
		errors.Is(err, ErrNothingToDig) ||
		errors.Is(err, ErrStorageFull) ||
		errors.Is(err, ErrUnbreakable)
}

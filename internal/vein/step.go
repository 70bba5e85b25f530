package vein

import (
	"github.com/quarryworks/lode/pkg/behavior"
	"github.com/quarryworks/lode/pkg/domain"
)

// newStep builds the "dig, then advance" compound for one direction:
// clear the cell, digging repeatedly since falling material can refill
// it, then move into it.
//
// Clear succeeds only once the cell is genuinely empty. A refused dig,
// full storage for example, fails the step with the sequence still
// parked on the clear, so a retry re-attempts the identical dig once
// the condition lifts. One tick still performs at most one dig or one
// move.
func newStep(dir domain.Direction) behavior.Action {
	return behavior.NewSequence(
		&behavior.Clear{Direction: dir},
		&behavior.Move{Direction: dir},
	)
}

package behavior

import (
	"context"

	"github.com/quarryworks/lode/pkg/domain"
	"github.com/quarryworks/lode/pkg/ports"
)

// Action is one unit of resumable agent work. Tick performs at most one
// physical rig operation and returns:
//
//   - ResultRunning: call Tick again, more work pending.
//   - ResultSuccess / ResultFailure: the action is done for this cycle.
//     After a Failure the action's internal state is preserved, so a
//     subsequent Tick retries the exact same step.
//
// The error return is reserved for fatal conditions (programming errors,
// malformed state); recoverable rig failures surface as ResultFailure
// with a nil error.
type Action interface {
	Tick(ctx context.Context, rig ports.Rig) (domain.Result, error)
}

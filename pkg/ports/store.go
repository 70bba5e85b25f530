package ports

import (
	"context"

	"github.com/quarryworks/lode/pkg/domain"
)

// StateStore defines the interface for persisting excavation snapshots.
// This allows for durable execution, enabling "Stop & Resume" workflows:
// because the engine state is fully serializable between ticks, cancel-and-
// persist and resume-later are the same operation.
type StateStore interface {
	// Save persists the snapshot for a given session ID.
	Save(ctx context.Context, sessionID string, snap *domain.Snapshot) error

	// Load retrieves the snapshot for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Snapshot, error)

	// Delete removes the snapshot for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns all known session IDs.
	List(ctx context.Context) ([]string, error)
}

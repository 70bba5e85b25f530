package domain

import (
	"encoding/json"
	"time"
)

// SnapshotVersion is the current persisted format version.
const SnapshotVersion = 1

// Snapshot is the unit of persistence: a versioned envelope around one
// encoded action node. Root uses the compositional behavior-node format,
// so a snapshot can hold a bare excavation driver or a larger tree that
// embeds one as a child.
type Snapshot struct {
	Version int             `json:"version"`
	SavedAt time.Time       `json:"saved_at"`
	Root    json.RawMessage `json:"root"`
}

// NewSnapshot wraps an encoded root node in a current-version envelope.
func NewSnapshot(root json.RawMessage) *Snapshot {
	return &Snapshot{
		Version: SnapshotVersion,
		SavedAt: time.Now().UTC(),
		Root:    root,
	}
}

// Clone returns a deep copy, isolating stored snapshots from later
// mutation by the caller.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := *s
	out.Root = make(json.RawMessage, len(s.Root))
	copy(out.Root, s.Root)
	return &out
}

package domain

import (
	"encoding/json"
	"fmt"
)

// defaultDenylist covers the common non-target terrain identifiers. A cell
// whose identifier appears here is never treated as part of a vein.
var defaultDenylist = []string{
	"stone",
	"cobblestone",
	"dirt",
	"gravel",
	"sand",
	"bedrock",
	"water",
	"lava",
}

// Denylist decides whether a sensed cell is a traversal target: sensed and
// not listed means target. The list is ordered and duplicate-tolerant;
// membership is a linear scan. A Denylist is immutable after construction
// and is shared by reference across every node spawned during one
// traversal, so all of them see the same policy.
type Denylist struct {
	ids []string
}

// NewDenylist builds a classifier from the given identifiers.
// A nil list is a construction error; an empty list is valid and
// classifies every sensed cell as a target.
func NewDenylist(ids []string) (*Denylist, error) {
	if ids == nil {
		return nil, fmt.Errorf("denylist: identifiers must not be nil")
	}
	copied := make([]string, len(ids))
	copy(copied, ids)
	return &Denylist{ids: copied}, nil
}

// DefaultDenylist returns a classifier with the built-in terrain list.
func DefaultDenylist() *Denylist {
	d, _ := NewDenylist(defaultDenylist)
	return d
}

// Contains reports whether id is a non-target identifier.
func (d *Denylist) Contains(id string) bool {
	for _, entry := range d.ids {
		if entry == id {
			return true
		}
	}
	return false
}

// IDs returns the identifiers in construction order. Order is irrelevant
// to membership but preserved so persisted state diffs deterministically.
func (d *Denylist) IDs() []string {
	out := make([]string, len(d.ids))
	copy(out, d.ids)
	return out
}

// Len returns the number of entries, duplicates included.
func (d *Denylist) Len() int {
	return len(d.ids)
}

// MarshalJSON encodes the denylist as a plain ordered list of strings.
func (d *Denylist) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.ids)
}

// UnmarshalJSON decodes a plain list of strings.
func (d *Denylist) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return fmt.Errorf("denylist: %w", err)
	}
	if ids == nil {
		return fmt.Errorf("denylist: identifiers must not be null")
	}
	d.ids = ids
	return nil
}

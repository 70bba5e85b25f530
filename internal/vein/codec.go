package vein

import (
	"encoding/json"
	"fmt"

	"github.com/quarryworks/lode/pkg/behavior"
	"github.com/quarryworks/lode/pkg/domain"
)

// TypeExcavate is the node type tag for a serialized driver.
const TypeExcavate = "excavate"

// Register installs the excavation node types into a behavior registry,
// making a persisted driver decodable anywhere a behavior node is
// expected, including as a child of a larger action tree.
func Register(reg *behavior.Registry) {
	reg.Register(TypeExcavate, decodeExcavate)
	reg.Register(TypeExpand, decodeExpand)
}

type excavateJSON struct {
	Type      string             `json:"type"`
	Direction domain.Direction   `json:"direction"`
	Denylist  []string           `json:"denylist"`
	Stack     *[]json.RawMessage `json:"stack,omitempty"`
}

// MarshalJSON encodes the driver, including the full ordered stack when a
// traversal is in progress. The stack is stored bottom-first; an active
// driver with an empty stack still encodes a "stack" key, which is how
// the active-but-finished state is distinguished from "not started".
func (x *Excavate) MarshalJSON() ([]byte, error) {
	node := excavateJSON{
		Type:      TypeExcavate,
		Direction: x.direction,
		Denylist:  x.denylist.IDs(),
	}

	if x.stack != nil {
		frames := make([]json.RawMessage, len(x.stack))
		for i, f := range x.stack {
			data, err := json.Marshal(f)
			if err != nil {
				return nil, fmt.Errorf("vein: encode frame %d: %w", i, err)
			}
			frames[i] = data
		}
		node.Stack = &frames
	}

	return json.Marshal(node)
}

func decodeExcavate(reg *behavior.Registry, raw json.RawMessage) (behavior.Action, error) {
	var node excavateJSON
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("vein: invalid excavate node: %w", err)
	}

	deny, err := domain.NewDenylist(node.Denylist)
	if err != nil {
		return nil, fmt.Errorf("vein: excavate node: %w", err)
	}

	x, err := New(node.Direction, deny)
	if err != nil {
		return nil, fmt.Errorf("vein: excavate node: %w", err)
	}

	if node.Stack != nil {
		stack := make([]behavior.Action, len(*node.Stack))
		for i, f := range *node.Stack {
			frame, err := reg.Decode(f)
			if err != nil {
				return nil, fmt.Errorf("vein: decode frame %d: %w", i, err)
			}
			stack[i] = frame
		}
		x.stack = stack
	}

	return x, nil
}

func decodeExpand(_ *behavior.Registry, raw json.RawMessage) (behavior.Action, error) {
	var node struct {
		Direction string `json:"direction"`
	}
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("vein: invalid expand node: %w", err)
	}
	dir, err := domain.ParseDirection(node.Direction)
	if err != nil {
		return nil, fmt.Errorf("vein: expand node: %w", err)
	}
	return NewExpand(dir)
}

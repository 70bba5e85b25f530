package dsl

import (
	"github.com/quarryworks/lode/internal/vein"
	"github.com/quarryworks/lode/pkg/behavior"
	"github.com/quarryworks/lode/pkg/domain"
)

// Node is one element of a plan under construction. Errors from invalid
// constructors propagate to the root, so only Build needs checking.
type Node struct {
	action behavior.Action
	err    error
}

// Build returns the composed action, or the first construction error
// found in the tree.
func (n *Node) Build() (behavior.Action, error) {
	if n.err != nil {
		return nil, n.err
	}
	return n.action, nil
}

// Dig digs the adjacent cell in the given direction.
func Dig(dir domain.Direction) *Node {
	a, err := behavior.NewDig(dir)
	if err != nil {
		return &Node{err: err}
	}
	return &Node{action: a}
}

// Clear digs the adjacent cell until nothing remains. Unlike Dig it only
// succeeds on an empty cell; a refused dig keeps the plan parked on it.
func Clear(dir domain.Direction) *Node {
	a, err := behavior.NewClear(dir)
	if err != nil {
		return &Node{err: err}
	}
	return &Node{action: a}
}

// Move moves one cell in the given direction.
func Move(dir domain.Direction) *Node {
	a, err := behavior.NewMove(dir)
	if err != nil {
		return &Node{err: err}
	}
	return &Node{action: a}
}

// Turn rotates in place, left or right.
func Turn(dir domain.Direction) *Node {
	a, err := behavior.NewTurn(dir)
	if err != nil {
		return &Node{err: err}
	}
	return &Node{action: a}
}

// Excavate mines the connected vein starting in the given direction,
// skipping blocks on the denylist, and returns to its starting pose.
func Excavate(dir domain.Direction, deny *domain.Denylist) *Node {
	a, err := vein.New(dir, deny)
	if err != nil {
		return &Node{err: err}
	}
	return &Node{action: a}
}

// Sequence runs children in order and fails on the first child failure.
func Sequence(children ...*Node) *Node {
	actions, err := collect(children)
	if err != nil {
		return &Node{err: err}
	}
	return &Node{action: behavior.NewSequence(actions...)}
}

// Selector runs children in order until one succeeds.
func Selector(children ...*Node) *Node {
	actions, err := collect(children)
	if err != nil {
		return &Node{err: err}
	}
	return &Node{action: behavior.NewSelector(actions...)}
}

// Repeat runs the child until it fails.
func Repeat(child *Node) *Node {
	if child.err != nil {
		return &Node{err: child.err}
	}
	return &Node{action: behavior.NewRepeat(child.action)}
}

// Succeed converts a child failure into success.
func Succeed(child *Node) *Node {
	if child.err != nil {
		return &Node{err: child.err}
	}
	return &Node{action: behavior.NewSucceed(child.action)}
}

func collect(children []*Node) ([]behavior.Action, error) {
	actions := make([]behavior.Action, 0, len(children))
	for _, c := range children {
		if c.err != nil {
			return nil, c.err
		}
		actions = append(actions, c.action)
	}
	return actions, nil
}

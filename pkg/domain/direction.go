package domain

import "fmt"

// Direction identifies one of the six cells adjacent to the agent,
// relative to its current pose. Vertical directions never depend on
// the agent's heading; the four horizontal ones do.
type Direction string

const (
	Forward Direction = "forward"
	Back    Direction = "back"
	Up      Direction = "up"
	Down    Direction = "down"
	Left    Direction = "left"
	Right   Direction = "right"
)

// Directions lists all six values in a stable order.
var Directions = []Direction{Forward, Back, Up, Down, Left, Right}

// ParseDirection converts a string to a Direction.
// Returns ErrUnsupportedDirection for anything else.
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	if err := d.Validate(); err != nil {
		return "", err
	}
	return d, nil
}

// Validate reports whether the direction is one of the six known values.
func (d Direction) Validate() error {
	switch d {
	case Forward, Back, Up, Down, Left, Right:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDirection, string(d))
	}
}

// Inverse returns the opposite direction (forward<->back, up<->down,
// left<->right). Moving d then Inverse(d) restores the agent's position.
func (d Direction) Inverse() Direction {
	switch d {
	case Forward:
		return Back
	case Back:
		return Forward
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return d
}

// TurnLeftSuccessor returns the horizontal direction reached after one
// left turn: forward -> left -> back -> right -> forward. It is defined
// only for horizontal directions; vertical directions map to themselves.
// This ordering is what makes the enumeration of the four horizontal
// neighbors deterministic.
func (d Direction) TurnLeftSuccessor() Direction {
	switch d {
	case Forward:
		return Left
	case Left:
		return Back
	case Back:
		return Right
	case Right:
		return Forward
	}
	return d
}


func (d Direction) String() string {
	return string(d)
}

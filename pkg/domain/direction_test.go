package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirection_Inverse(t *testing.T) {
	pairs := map[Direction]Direction{
		Forward: Back,
		Back:    Forward,
		Up:      Down,
		Down:    Up,
		Left:    Right,
		Right:   Left,
	}

	for dir, want := range pairs {
		assert.Equal(t, want, dir.Inverse(), "inverse of %s", dir)
		assert.Equal(t, dir, dir.Inverse().Inverse(), "double inverse of %s", dir)
	}
}

func TestDirection_TurnLeftSuccessor(t *testing.T) {
	// Four left turns must enumerate all horizontal directions and
	// return to the starting heading.
	seen := map[Direction]bool{}
	dir := Forward
	for i := 0; i < 4; i++ {
		seen[dir] = true
		dir = dir.TurnLeftSuccessor()
	}

	assert.Equal(t, Forward, dir, "four left turns restore the heading")
	assert.Len(t, seen, 4)
	for _, d := range []Direction{Forward, Left, Back, Right} {
		assert.True(t, seen[d], "missing %s in turn ordering", d)
	}

	// Vertical directions are unaffected by turning.
	assert.Equal(t, Up, Up.TurnLeftSuccessor())
	assert.Equal(t, Down, Down.TurnLeftSuccessor())
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions {
		parsed, err := ParseDirection(string(d))
		require.NoError(t, err)
		assert.Equal(t, d, parsed)
	}

	_, err := ParseDirection("sideways")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedDirection)
}

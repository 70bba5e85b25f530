package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/quarryworks/lode/pkg/domain"
)

// Vec3 is an absolute grid coordinate. Y is the vertical axis.
type Vec3 struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Compass headings, in turn-right order.
const (
	North = iota
	East
	South
	West
)

var headingVectors = []Vec3{
	{0, 0, -1}, // north
	{1, 0, 0},  // east
	{0, 0, 1},  // south
	{-1, 0, 0}, // west
}

var headingNames = []string{"north", "east", "south", "west"}

// SimRig implements ports.Rig against a deterministic in-memory 3-D
// world. It tracks the agent's absolute pose (position plus heading) and
// resolves the pose-relative directions of every primitive call, which
// makes it the reference harness for return-to-origin and coverage
// checks. Safe for concurrent use.
type SimRig struct {
	mu      sync.Mutex
	blocks  map[Vec3]string
	pos     Vec3
	heading int

	digCounts map[Vec3]int
	ops       []string
	moveFault error
	digFault  error
}

// NewSimRig creates an empty world with the agent at the origin facing
// north.
func NewSimRig() *SimRig {
	return &SimRig{
		blocks:    make(map[Vec3]string),
		digCounts: make(map[Vec3]int),
	}
}

// SetBlock places a block in the world.
func (r *SimRig) SetBlock(at Vec3, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blocks[at] = id
}

// BlockAt returns the block at a cell, if any.
func (r *SimRig) BlockAt(at Vec3) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.blocks[at]
	return id, ok
}

// BlockCount returns the number of remaining blocks.
func (r *SimRig) BlockCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.blocks)
}

// Pose returns the agent's position and heading index.
func (r *SimRig) Pose() (Vec3, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pos, r.heading
}

// HeadingName returns the compass name of the current heading.
func (r *SimRig) HeadingName() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return headingNames[r.heading]
}

// DigCount returns how many times a cell was dug.
func (r *SimRig) DigCount(at Vec3) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.digCounts[at]
}

// Ops returns the ordered log of physical operations performed, as
// "op:direction" strings.
func (r *SimRig) Ops() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.ops))
	copy(out, r.ops)
	return out
}

// FailNextMove injects a one-shot move failure, simulating a transient
// obstruction such as another agent passing through.
func (r *SimRig) FailNextMove(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.moveFault = err
}

// FailNextDig injects a one-shot dig failure, simulating a transient
// refusal such as a full inventory.
func (r *SimRig) FailNextDig(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.digFault = err
}

// resolve maps a pose-relative direction to the adjacent absolute cell.
func (r *SimRig) resolve(dir domain.Direction) (Vec3, error) {
	var delta Vec3
	switch dir {
	case domain.Up:
		delta = Vec3{0, 1, 0}
	case domain.Down:
		delta = Vec3{0, -1, 0}
	case domain.Forward:
		delta = headingVectors[r.heading]
	case domain.Back:
		v := headingVectors[r.heading]
		delta = Vec3{-v.X, -v.Y, -v.Z}
	case domain.Left:
		delta = headingVectors[(r.heading+3)%4]
	case domain.Right:
		delta = headingVectors[(r.heading+1)%4]
	default:
		return Vec3{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedDirection, dir)
	}
	return Vec3{r.pos.X + delta.X, r.pos.Y + delta.Y, r.pos.Z + delta.Z}, nil
}

// Inspect senses the adjacent cell.
func (r *SimRig) Inspect(ctx context.Context, dir domain.Direction) (domain.Block, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cell, err := r.resolve(dir)
	if err != nil {
		return domain.Block{}, false, err
	}
	r.ops = append(r.ops, "inspect:"+string(dir))

	id, ok := r.blocks[cell]
	if !ok {
		return domain.Block{}, false, nil
	}
	return domain.Block{Name: id}, true, nil
}

// Dig removes the adjacent block.
func (r *SimRig) Dig(ctx context.Context, dir domain.Direction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cell, err := r.resolve(dir)
	if err != nil {
		return err
	}
	r.ops = append(r.ops, "dig:"+string(dir))

	if r.digFault != nil {
		fault := r.digFault
		r.digFault = nil
		return fault
	}

	id, ok := r.blocks[cell]
	if !ok {
		return domain.ErrNothingToDig
	}
	if id == "bedrock" {
		return domain.ErrUnbreakable
	}

	delete(r.blocks, cell)
	r.digCounts[cell]++
	return nil
}

// Move advances one cell, failing on obstruction.
func (r *SimRig) Move(ctx context.Context, dir domain.Direction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cell, err := r.resolve(dir)
	if err != nil {
		return err
	}
	r.ops = append(r.ops, "move:"+string(dir))

	if r.moveFault != nil {
		fault := r.moveFault
		r.moveFault = nil
		return fault
	}
	if _, blocked := r.blocks[cell]; blocked {
		return domain.ErrObstructed
	}

	r.pos = cell
	return nil
}

// Turn rotates the agent in place.
func (r *SimRig) Turn(ctx context.Context, dir domain.Direction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch dir {
	case domain.Left:
		r.heading = (r.heading + 3) % 4
	case domain.Right:
		r.heading = (r.heading + 1) % 4
	default:
		return fmt.Errorf("%w: turn accepts left or right, got %q", domain.ErrUnsupportedDirection, dir)
	}
	r.ops = append(r.ops, "turn:"+string(dir))
	return nil
}

package dsl_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/quarryworks/lode/internal/vein"
	"github.com/quarryworks/lode/pkg/adapters/memory"
	"github.com/quarryworks/lode/pkg/behavior"
	"github.com/quarryworks/lode/pkg/domain"
	"github.com/quarryworks/lode/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runPlan(t *testing.T, plan behavior.Action, rig *memory.SimRig) domain.Result {
	t.Helper()

	ctx := context.Background()
	for i := 0; i < 10000; i++ {
		res, err := plan.Tick(ctx, rig)
		require.NoError(t, err)
		if res.Terminal() {
			return res
		}
	}
	t.Fatal("plan did not terminate")
	return domain.ResultFailure
}

func TestBuilder_PrimitivePlan(t *testing.T) {
	rig := memory.NewSimRig()
	rig.SetBlock(memory.Vec3{X: 0, Y: 0, Z: -1}, "stone")

	plan, err := dsl.Sequence(
		dsl.Dig(domain.Forward),
		dsl.Move(domain.Forward),
		dsl.Turn(domain.Left),
	).Build()
	require.NoError(t, err)

	res := runPlan(t, plan, rig)
	assert.Equal(t, domain.ResultSuccess, res)

	pos, heading := rig.Pose()
	assert.Equal(t, memory.Vec3{X: 0, Y: 0, Z: -1}, pos)
	assert.Equal(t, memory.West, heading)
}

func TestBuilder_TwoLevelPlan(t *testing.T) {
	rig := memory.NewSimRig()
	// One vein ahead, a second vein above the starting cell.
	rig.SetBlock(memory.Vec3{X: 0, Y: 0, Z: -1}, "iron_ore")
	rig.SetBlock(memory.Vec3{X: 0, Y: 1, Z: -1}, "iron_ore")

	plan, err := dsl.Sequence(
		dsl.Excavate(domain.Forward, domain.DefaultDenylist()),
		dsl.Succeed(dsl.Dig(domain.Up)),
		dsl.Move(domain.Up),
		dsl.Excavate(domain.Forward, domain.DefaultDenylist()),
	).Build()
	require.NoError(t, err)

	res := runPlan(t, plan, rig)
	assert.Equal(t, domain.ResultSuccess, res)
	assert.Equal(t, 0, rig.BlockCount())

	pos, _ := rig.Pose()
	assert.Equal(t, memory.Vec3{X: 0, Y: 1, Z: 0}, pos, "each excavation returned to its own origin")
}

func TestBuilder_SerializesWithRegistry(t *testing.T) {
	plan, err := dsl.Repeat(dsl.Succeed(dsl.Excavate(domain.Down, domain.DefaultDenylist()))).Build()
	require.NoError(t, err)

	data, err := json.Marshal(plan)
	require.NoError(t, err)

	reg := behavior.NewRegistry()
	vein.Register(reg)

	decoded, err := reg.Decode(data)
	require.NoError(t, err)

	again, err := json.Marshal(decoded)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
}

func TestBuilder_PropagatesErrors(t *testing.T) {
	_, err := dsl.Sequence(
		dsl.Dig(domain.Forward),
		dsl.Move(domain.Direction("diagonal")),
	).Build()
	require.ErrorIs(t, err, domain.ErrUnsupportedDirection)

	_, err = dsl.Repeat(dsl.Turn(domain.Up)).Build()
	require.Error(t, err, "turn only accepts left or right")

	_, err = dsl.Clear(domain.Direction("sideways")).Build()
	require.ErrorIs(t, err, domain.ErrUnsupportedDirection)

	_, err = dsl.Excavate(domain.Forward, nil).Build()
	require.Error(t, err, "denylist is required")
}

package vein

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/quarryworks/lode/pkg/adapters/memory"
	"github.com/quarryworks/lode/pkg/behavior"
	"github.com/quarryworks/lode/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry() *behavior.Registry {
	reg := behavior.NewRegistry()
	Register(reg)
	return reg
}

func oreWorld() *memory.SimRig {
	rig := memory.NewSimRig()
	rig.SetBlock(memory.Vec3{X: 0, Y: 0, Z: -1}, "iron_ore")
	rig.SetBlock(memory.Vec3{X: 0, Y: 0, Z: -2}, "iron_ore")
	rig.SetBlock(memory.Vec3{X: 0, Y: 1, Z: -2}, "iron_ore")
	return rig
}

func TestCodec_UninitializedRoundTrip(t *testing.T) {
	reg := newRegistry()

	x, err := New(domain.Up, mustDenylist(t, "stone", "dirt", "stone"))
	require.NoError(t, err)

	data, err := json.Marshal(x)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"stack"`, "uninitialized driver has no stack key")

	decoded, err := reg.Decode(data)
	require.NoError(t, err)

	restored, ok := decoded.(*Excavate)
	require.True(t, ok)
	assert.Equal(t, domain.Up, restored.Direction())
	assert.False(t, restored.Active())
	assert.Equal(t, []string{"stone", "dirt", "stone"}, restored.Denylist().IDs(),
		"denylist order and duplicates survive")

	// P3: serialize -> deserialize -> serialize is byte-identical.
	again, err := json.Marshal(restored)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
}

func TestCodec_ActiveMidStackRoundTrip(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry()
	rig := oreWorld()

	x, err := New(domain.Forward, mustDenylist(t, "stone"))
	require.NoError(t, err)

	// Advance into the middle of an expansion.
	for i := 0; i < 6; i++ {
		_, err := x.Tick(ctx, rig)
		require.NoError(t, err)
	}
	require.True(t, x.Active())
	require.Greater(t, x.Depth(), 0)

	data, err := json.Marshal(x)
	require.NoError(t, err)

	decoded, err := reg.Decode(data)
	require.NoError(t, err)
	restored := decoded.(*Excavate)
	assert.Equal(t, x.Depth(), restored.Depth())

	again, err := json.Marshal(restored)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
}

func TestCodec_RestoredDriverActsIdentically(t *testing.T) {
	// Two identical worlds. One driver runs straight through; the other
	// is serialized mid-flight, decoded, and resumed. The physical
	// operation logs must match exactly: no re-sensing, no re-deciding.
	ctx := context.Background()
	reg := newRegistry()

	straightRig := oreWorld()
	straight, err := New(domain.Forward, mustDenylist(t, "stone"))
	require.NoError(t, err)

	interruptedRig := oreWorld()
	interrupted, err := New(domain.Forward, mustDenylist(t, "stone"))
	require.NoError(t, err)

	const splitAt = 9
	for i := 0; i < splitAt; i++ {
		_, err := straight.Tick(ctx, straightRig)
		require.NoError(t, err)
		_, err = interrupted.Tick(ctx, interruptedRig)
		require.NoError(t, err)
	}

	// Power loss: only the serialized bytes survive.
	data, err := json.Marshal(interrupted)
	require.NoError(t, err)
	decoded, err := reg.Decode(data)
	require.NoError(t, err)
	resumed := decoded.(*Excavate)

	for i := 0; i < 10000; i++ {
		res, err := straight.Tick(ctx, straightRig)
		require.NoError(t, err)
		resumedRes, err := resumed.Tick(ctx, interruptedRig)
		require.NoError(t, err)
		require.Equal(t, res, resumedRes, "tick %d diverged", splitAt+i+1)
		if res == domain.ResultSuccess {
			break
		}
	}

	assert.Equal(t, straightRig.Ops(), interruptedRig.Ops())

	pos, heading := interruptedRig.Pose()
	assert.Equal(t, memory.Vec3{}, pos)
	assert.Equal(t, memory.North, heading)
	assert.Equal(t, 0, interruptedRig.BlockCount())
}

func TestCodec_EmbeddedInLargerTree(t *testing.T) {
	// A persisted driver is just another behavior node: it can sit
	// inside a sequence next to ordinary actions and decode as a child.
	reg := newRegistry()

	x, err := New(domain.Down, mustDenylist(t, "stone"))
	require.NoError(t, err)

	tree := behavior.NewSequence(
		&behavior.Turn{Direction: domain.Left},
		x,
		&behavior.Turn{Direction: domain.Right},
	)

	data, err := json.Marshal(tree)
	require.NoError(t, err)

	decoded, err := reg.Decode(data)
	require.NoError(t, err)

	seq := decoded.(*behavior.Sequence)
	require.Len(t, seq.Children, 3)
	embedded, ok := seq.Children[1].(*Excavate)
	require.True(t, ok)
	assert.Equal(t, domain.Down, embedded.Direction())
}

func TestCodec_MalformedNodes(t *testing.T) {
	reg := newRegistry()

	cases := []struct {
		name string
		raw  string
	}{
		{"Missing Denylist", `{"type":"excavate","direction":"forward"}`},
		{"Bad Direction", `{"type":"excavate","direction":"sideways","denylist":[]}`},
		{"Bad Expand Direction", `{"type":"expand","direction":"nope"}`},
		{"Unknown Frame", `{"type":"excavate","direction":"forward","denylist":[],"stack":[{"type":"warp"}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := reg.Decode(json.RawMessage(tc.raw))
			require.Error(t, err)
		})
	}
}

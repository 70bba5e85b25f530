package behavior

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/quarryworks/lode/pkg/domain"
	"github.com/quarryworks/lode/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RoundTrip(t *testing.T) {
	reg := NewRegistry()

	original := NewSequence(
		NewSucceed(NewRepeat(&Dig{Direction: domain.Forward})),
		&Move{Direction: domain.Forward},
	)
	original.Cursor = 1 // mid-flight state must survive

	data, err := json.Marshal(original)
	require.NoError(t, err)

	decoded, err := reg.Decode(data)
	require.NoError(t, err)

	seq, ok := decoded.(*Sequence)
	require.True(t, ok)
	assert.Equal(t, 1, seq.Cursor)
	require.Len(t, seq.Children, 2)

	// Serialize -> deserialize -> serialize is byte-identical.
	again, err := json.Marshal(decoded)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
}

func TestRegistry_UnknownType(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Decode(json.RawMessage(`{"type":"teleport"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown node type")

	_, err = reg.Decode(json.RawMessage(`{"direction":"forward"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing a type tag")
}

func TestRegistry_CustomNodeType(t *testing.T) {
	reg := NewRegistry()
	reg.Register("noop", func(_ *Registry, _ json.RawMessage) (Action, error) {
		return noopAction{}, nil
	})

	// A custom node embedded inside a built-in composite decodes fine.
	raw := json.RawMessage(`{"type":"succeed","child":{"type":"noop"}}`)
	decoded, err := reg.Decode(raw)
	require.NoError(t, err)

	wrapper, ok := decoded.(*Succeed)
	require.True(t, ok)
	assert.IsType(t, noopAction{}, wrapper.Child)
}

func TestRegistry_LeafDirectionValidation(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Decode(json.RawMessage(`{"type":"dig","direction":"sideways"}`))
	require.ErrorIs(t, err, domain.ErrUnsupportedDirection)

	_, err = reg.Decode(json.RawMessage(`{"type":"turn","direction":"up"}`))
	require.ErrorIs(t, err, domain.ErrUnsupportedDirection)
}

type noopAction struct{}

func (noopAction) Tick(context.Context, ports.Rig) (domain.Result, error) {
	return domain.ResultSuccess, nil
}

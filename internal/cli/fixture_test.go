package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/quarryworks/lode/pkg/adapters/memory"
	"github.com/quarryworks/lode/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "world.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFixture(t *testing.T) {
	path := writeFixture(t, `
direction: down
denylist: [stone, bedrock]
blocks:
  - pos: [0, -1, 0]
    name: iron_ore
  - pos: [0, -2, 0]
    name: stone
`)

	f, err := LoadFixture(path)
	require.NoError(t, err)

	dir, err := f.ParsedDirection()
	require.NoError(t, err)
	assert.Equal(t, domain.Down, dir)

	deny, err := f.BuildDenylist()
	require.NoError(t, err)
	assert.Equal(t, []string{"stone", "bedrock"}, deny.IDs())

	rig := f.BuildRig()
	assert.Equal(t, 2, rig.BlockCount())
	block, ok := rig.BlockAt(memory.Vec3{X: 0, Y: -1, Z: 0})
	require.True(t, ok)
	assert.Equal(t, "iron_ore", block)
}

func TestLoadFixture_Defaults(t *testing.T) {
	path := writeFixture(t, `
blocks:
  - pos: [0, 0, -1]
    name: coal_ore
`)

	f, err := LoadFixture(path)
	require.NoError(t, err)

	dir, err := f.ParsedDirection()
	require.NoError(t, err)
	assert.Equal(t, domain.Forward, dir)

	deny, err := f.BuildDenylist()
	require.NoError(t, err)
	assert.True(t, deny.Contains("bedrock"), "default denylist applies")
}

func TestLoadFixture_Errors(t *testing.T) {
	_, err := LoadFixture(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = LoadFixture(writeFixture(t, "direction: [not, a, string]"))
	require.Error(t, err)

	_, err = LoadFixture(writeFixture(t, "blocks:\n  - pos: [0, 0, -1]"))
	require.Error(t, err, "block without a name")
}

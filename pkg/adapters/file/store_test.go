package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/quarryworks/lode/pkg/domain"
	"github.com/quarryworks/lode/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Contract(t *testing.T) {
	ports.RunStateStoreContract(t, New(t.TempDir()))
}

func TestStore_DefaultBasePath(t *testing.T) {
	s := New("")
	assert.Equal(t, filepath.Join(".lode", "sessions"), s.BasePath)
}

func TestStore_SaveRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	s := New(t.TempDir())

	require.Error(t, s.Save(ctx, "", domain.NewSnapshot(nil)))
	require.Error(t, s.Save(ctx, "session", nil))
}

func TestStore_CorruptFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := New(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0644))

	_, err := s.Load(ctx, "broken")
	require.Error(t, err)
}

func TestStore_NoTempFileLeftBehind(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := New(dir)

	snap := domain.NewSnapshot(json.RawMessage(`{"type":"excavate","direction":"up","denylist":[]}`))
	require.NoError(t, s.Save(ctx, "miner", snap))
	require.NoError(t, s.Save(ctx, "miner", snap), "overwrite existing session")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "miner.json", entries[0].Name())
}

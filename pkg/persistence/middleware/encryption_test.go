package middleware_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/quarryworks/lode/pkg/adapters/memory"
	"github.com/quarryworks/lode/pkg/domain"
	"github.com/quarryworks/lode/pkg/persistence/middleware"
	"github.com/quarryworks/lode/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(b byte) []byte {
	return bytes.Repeat([]byte{b}, 32)
}

func TestEncryption_Contract(t *testing.T) {
	wrap := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey: key(1),
	})
	ports.RunStateStoreContract(t, wrap(memory.NewStore()))
}

func TestEncryption_HidesRoot(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewStore()
	wrap := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey: key(1),
	})
	store := wrap(inner)

	root := []byte(`{"type":"excavate","direction":"forward","denylist":["stone"]}`)
	require.NoError(t, store.Save(ctx, "s1", domain.NewSnapshot(root)))

	// The inner store must only see the opaque envelope.
	sealed, err := inner.Load(ctx, "s1")
	require.NoError(t, err)
	assert.NotContains(t, string(sealed.Root), "excavate")
	assert.Contains(t, string(sealed.Root), `"encrypted"`)

	// Round trip through the middleware restores the original root.
	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.JSONEq(t, string(root), string(loaded.Root))
}

func TestEncryption_KeyRotation(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewStore()

	oldStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey: key(1),
	})(inner)

	root := []byte(`{"type":"excavate","direction":"up","denylist":[]}`)
	require.NoError(t, oldStore.Save(ctx, "s1", domain.NewSnapshot(root)))

	// New active key; the old one moves to the fallback list.
	rotated := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    key(2),
		FallbackKeys: [][]byte{key(1)},
	})(inner)

	loaded, err := rotated.Load(ctx, "s1")
	require.NoError(t, err)
	assert.JSONEq(t, string(root), string(loaded.Root))

	// Without the fallback the data is unreadable.
	wrongKey := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey: key(3),
	})(inner)
	_, err = wrongKey.Load(ctx, "s1")
	require.Error(t, err)
}

func TestEncryption_RejectsPlaintext(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewStore()
	require.NoError(t, inner.Save(ctx, "plain",
		domain.NewSnapshot([]byte(`{"type":"excavate","direction":"down","denylist":[]}`))))

	store := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey: key(1),
	})(inner)

	_, err := store.Load(ctx, "plain")
	require.Error(t, err)
}

func TestEncryption_ShortKeyPanics(t *testing.T) {
	assert.Panics(t, func() {
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey: []byte("too short"),
		})
	})
}

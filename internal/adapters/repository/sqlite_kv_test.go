package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibeshot/core/internal/ports"
)

func newTestSQLiteKV(t *testing.T) *SQLiteKV {
	t.Helper()
	kv, err := NewSQLiteKV(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return kv
}

func TestSQLiteKVRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := newTestSQLiteKV(t)

	require.NoError(t, kv.Set(ctx, "vibe_users", []byte(`[{"name":"Alice"}]`)))

	got, err := kv.Get(ctx, "vibe_users")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"name":"Alice"}]`), got)
}

func TestSQLiteKVUpsert(t *testing.T) {
	ctx := context.Background()
	kv := newTestSQLiteKV(t)

	require.NoError(t, kv.Set(ctx, "vibe_posts", []byte(`[]`)))
	require.NoError(t, kv.Set(ctx, "vibe_posts", []byte(`[{"id":1}]`)))

	got, err := kv.Get(ctx, "vibe_posts")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":1}]`), got)
}

func TestSQLiteKVMissingKey(t *testing.T) {
	kv := newTestSQLiteKV(t)

	_, err := kv.Get(context.Background(), "vibe_session")
	assert.ErrorIs(t, err, ports.ErrKeyNotFound)
}

func TestSQLiteKVDelete(t *testing.T) {
	ctx := context.Background()
	kv := newTestSQLiteKV(t)

	require.NoError(t, kv.Set(ctx, "vibe_session", []byte(`null`)))
	require.NoError(t, kv.Delete(ctx, "vibe_session"))

	_, err := kv.Get(ctx, "vibe_session")
	assert.ErrorIs(t, err, ports.ErrKeyNotFound)
}

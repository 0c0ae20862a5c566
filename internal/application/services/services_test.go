package services

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/vibeshot/core/internal/adapters/repository"
	"github.com/vibeshot/core/internal/application/store"
	"github.com/vibeshot/core/internal/infrastructure/config"
	"github.com/vibeshot/core/internal/infrastructure/logger"
)

const testNow = int64(1700000000000)

// stubCompressor stands in for the real image pipeline in service tests.
type stubCompressor struct {
	err error
}

func (c stubCompressor) Compress(_ context.Context, _ []byte) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	return "data:image/jpeg;base64,stub", nil
}

// newSeededStore returns a loaded store over an in-memory backend: 4 demo
// users, 16 demo posts, no session.
func newSeededStore(t *testing.T) *store.Store {
	t.Helper()
	kv, err := repository.NewFileKV(afero.NewMemMapFs(), "data", 0)
	require.NoError(t, err)
	st := store.New(kv, logger.NewNop(), store.WithNow(func() int64 { return testNow }))
	require.NoError(t, st.Load(context.Background()))
	return st
}

// login sets the session to an existing seeded account.
func login(t *testing.T, st *store.Store, email string) {
	t.Helper()
	user, ok := st.UserByEmail(email)
	require.True(t, ok)
	st.SetSession(user)
	require.NoError(t, st.Save(context.Background()))
}

func testFeedConfig() config.FeedConfig {
	return config.FeedConfig{PageSize: 8, LoadDelay: 0}
}

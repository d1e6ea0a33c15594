package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	core "github.com/kilianp07/availreport/core/cache"
	"github.com/kilianp07/availreport/core/factory"
)

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")
	s, err := NewSQLiteStore(path)
	require.NoError(t, err)

	_, err = s.Get(ctx, "k")
	require.ErrorIs(t, err, core.ErrMiss)

	require.NoError(t, s.Put(ctx, "k", []byte(`{"a":1}`)))
	require.NoError(t, s.Put(ctx, "k", []byte(`{"a":2}`)))
	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(v))
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()
	v, err = reopened.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(v))
}

func TestSQLiteRegistered(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	s, err := core.NewStore(factory.ModuleConfig{Type: "sqlite", Conf: map[string]any{"path": path}})
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	assert.IsType(t, &SQLiteStore{}, s)

	_, err = core.NewStore(factory.ModuleConfig{Type: "sqlite"})
	assert.Error(t, err)
}

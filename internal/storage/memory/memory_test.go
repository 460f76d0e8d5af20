package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/nichevendor/internal/storage"
)

func TestStorageSetGet(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "products", []byte(`[]`)))

	got, err := s.Get(ctx, "products")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)

	ok, err := s.Exists(ctx, "products")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStorageGet_Missing(t *testing.T) {
	s := New()

	_, err := s.Get(context.Background(), "orders")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStorageRemove(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "orders", []byte(`[1]`)))
	require.NoError(t, s.Remove(ctx, "orders"))
	require.NoError(t, s.Remove(ctx, "orders"))

	ok, err := s.Exists(ctx, "orders")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStorageCopiesValues(t *testing.T) {
	s := New()
	ctx := context.Background()

	buf := []byte(`[1]`)
	require.NoError(t, s.Set(ctx, "k", buf))
	buf[1] = '2'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(got))
}

package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/nichevendor/internal/db"
	"github.com/vbonduro/nichevendor/internal/storage"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestStorageSetGet(t *testing.T) {
	s := New(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "products", []byte(`[{"id":"a"}]`)))

	got, err := s.Get(ctx, "products")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, string(got))
}

func TestStorageSet_Upserts(t *testing.T) {
	d := openTestDB(t)
	s := New(d)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "orders", []byte(`[1]`)))
	require.NoError(t, s.Set(ctx, "orders", []byte(`[1,2]`)))

	got, err := s.Get(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, string(got))

	var n int
	require.NoError(t, d.QueryRow(`SELECT COUNT(*) FROM local_storage`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestStorageGet_NotFound(t *testing.T) {
	s := New(openTestDB(t))

	_, err := s.Get(context.Background(), "events")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStorageRemoveAndExists(t *testing.T) {
	s := New(openTestDB(t))
	ctx := context.Background()

	ok, err := s.Exists(ctx, "sales")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "sales", []byte(`[]`)))
	ok, err = s.Exists(ctx, "sales")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Remove(ctx, "sales"))
	ok, err = s.Exists(ctx, "sales")
	require.NoError(t, err)
	assert.False(t, ok)
}

package redis

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/nichevendor/internal/storage"
)

// newTestStorage connects to NICHEVENDOR_TEST_REDIS_URL and isolates the test
// under a unique prefix. Tests are skipped when no server is configured.
func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	url := os.Getenv("NICHEVENDOR_TEST_REDIS_URL")
	if url == "" {
		t.Skip("NICHEVENDOR_TEST_REDIS_URL not set")
	}

	client, err := Dial(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return New(client, fmt.Sprintf("nichevendor-test-%d:", time.Now().UnixNano()))
}

func TestDial_InvalidURL(t *testing.T) {
	_, err := Dial(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestStorageRoundTrip(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "products")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Set(ctx, "products", []byte(`[]`)))
	t.Cleanup(func() { _ = s.Remove(ctx, "products") })

	got, err := s.Get(ctx, "products")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	ok, err := s.Exists(ctx, "products")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Remove(ctx, "products"))
	ok, err = s.Exists(ctx, "products")
	require.NoError(t, err)
	assert.False(t, ok)
}

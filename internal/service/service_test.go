package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vbonduro/nichevendor/internal/storage/memory"
	"github.com/vbonduro/nichevendor/internal/store"
)

var fixedNow = time.Date(2025, 5, 17, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), memory.New(), slog.Default())
	require.NoError(t, err)
	return s
}

var errDiskFull = errors.New("disk full")

// failingStorage wraps memory storage and rejects writes once failWrites is set.
type failingStorage struct {
	*memory.Storage
	failWrites bool
}

func (f *failingStorage) Set(ctx context.Context, key string, value []byte) error {
	if f.failWrites {
		return errDiskFull
	}
	return f.Storage.Set(ctx, key, value)
}

func newFailingStore(t *testing.T) (*store.Store, *failingStorage) {
	t.Helper()
	stg := &failingStorage{Storage: memory.New()}
	s, err := store.Open(context.Background(), stg, slog.Default())
	require.NoError(t, err)
	return s, stg
}

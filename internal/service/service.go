package service

import (
	"time"

	"github.com/google/uuid"
)

// Clock returns the current time. Services stamp records with it, so tests can
// pin it.
type Clock func() time.Time

// SystemClock is UTC wall time at millisecond precision, matching what the
// storage codec writes.
func SystemClock() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func newID() string {
	return uuid.NewString()
}

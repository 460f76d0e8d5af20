package storage

import (
	"context"
	"errors"
)

// Keys under which each entity collection is stored.
const (
	KeyProducts = "products"
	KeyOrders   = "orders"
	KeyEvents   = "events"
	KeySales    = "sales"
	KeyBooths   = "booths"
)

// ErrNotFound is returned by Get when nothing is stored under the key.
var ErrNotFound = errors.New("storage: key not found")

// Storage is a string-keyed blob store mirroring the browser localStorage
// contract. Implementations must be safe for concurrent use.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

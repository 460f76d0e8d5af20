// Package store is the application data store: the in-memory collections of
// every entity plus their mirror in a storage.Storage backend.
//
// Each collection is persisted as a whole under its own key after every
// mutation. A mutation is applied to a copy first and only becomes visible
// once the write succeeded, so a failed save never leaves memory and storage
// disagreeing.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/vbonduro/nichevendor/internal/domain"
	"github.com/vbonduro/nichevendor/internal/storage"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateID   = errors.New("duplicate id")
	ErrMissingID     = errors.New("missing id")
	ErrInvalidStatus = errors.New("invalid order status")
)

// LoadIssue describes a collection that could not be decoded at startup and
// was replaced by an empty one. The raw value is kept under Key+".corrupt".
type LoadIssue struct {
	Key string
	Err error
}

type collection[T any] struct {
	key   string
	dates storage.DateFields
	id    func(T) string
	clone func(T) T
	items []T
}

type Store struct {
	mu      sync.RWMutex
	storage storage.Storage
	logger  *slog.Logger

	products collection[domain.Product]
	orders   collection[domain.Order]
	events   collection[domain.Event]
	sales    collection[domain.Sale]
	booths   collection[domain.BoothLayout]

	issues []LoadIssue
}

// Open builds a Store and loads every collection from stg. Missing keys are
// empty collections; corrupt ones are quarantined and reported through
// LoadIssues. Only backend failures are returned as errors.
func Open(ctx context.Context, stg storage.Storage, logger *slog.Logger) (*Store, error) {
	s := &Store{
		storage: stg,
		logger:  logger,
		products: collection[domain.Product]{
			key:   storage.KeyProducts,
			dates: storage.DateFields{Required: []string{"createdAt", "updatedAt"}},
			id:    func(p domain.Product) string { return p.ID },
			clone: domain.Product.Clone,
		},
		orders: collection[domain.Order]{
			key: storage.KeyOrders,
			dates: storage.DateFields{
				Required: []string{"createdAt", "updatedAt"},
				Optional: []string{"deadline"},
			},
			id:    func(o domain.Order) string { return o.ID },
			clone: domain.Order.Clone,
		},
		events: collection[domain.Event]{
			key: storage.KeyEvents,
			dates: storage.DateFields{
				Required: []string{"startDate", "endDate", "createdAt", "updatedAt"},
			},
			id:    func(e domain.Event) string { return e.ID },
			clone: domain.Event.Clone,
		},
		sales: collection[domain.Sale]{
			key:   storage.KeySales,
			dates: storage.DateFields{Required: []string{"date", "createdAt", "updatedAt"}},
			id:    func(sl domain.Sale) string { return sl.ID },
			clone: domain.Sale.Clone,
		},
		booths: collection[domain.BoothLayout]{
			key:   storage.KeyBooths,
			dates: storage.DateFields{Required: []string{"createdAt", "updatedAt"}},
			id:    func(b domain.BoothLayout) string { return b.ID },
			clone: domain.BoothLayout.Clone,
		},
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	if err := load(ctx, s, &s.products, now); err != nil {
		return nil, err
	}
	if err := load(ctx, s, &s.orders, now); err != nil {
		return nil, err
	}
	if err := load(ctx, s, &s.events, now); err != nil {
		return nil, err
	}
	if err := load(ctx, s, &s.sales, now); err != nil {
		return nil, err
	}
	if err := load(ctx, s, &s.booths, now); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadIssues returns the collections that were corrupt when the store opened.
func (s *Store) LoadIssues() []LoadIssue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.issues)
}

func load[T any](ctx context.Context, s *Store, c *collection[T], now time.Time) error {
	data, err := s.storage.Get(ctx, c.key)
	if errors.Is(err, storage.ErrNotFound) {
		c.items = []T{}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", c.key, err)
	}

	items, err := storage.DecodeCollection[T](c.key, data, c.dates, now)
	var corrupt *storage.CorruptError
	if errors.As(err, &corrupt) {
		s.logger.Warn("stored collection is corrupt, starting empty", "key", c.key, "error", err)
		if serr := s.storage.Set(ctx, c.key+".corrupt", data); serr != nil {
			s.logger.Error("failed to preserve corrupt collection", "key", c.key, "error", serr)
		}
		s.issues = append(s.issues, LoadIssue{Key: c.key, Err: err})
		c.items = []T{}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", c.key, err)
	}

	s.logger.Debug("collection loaded", "key", c.key, "count", len(items))
	c.items = items
	return nil
}

// Records handed out by reads and taken in by writes are deep copies, so
// callers can never reach the live collection.

// mutate runs fn on a copy of the collection and persists the result. fn
// reports whether anything changed; unchanged collections are not written.
func mutate[T any](ctx context.Context, s *Store, c *collection[T], fn func([]T) ([]T, bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed, err := fn(slices.Clone(c.items))
	if err != nil || !changed {
		return err
	}

	data, err := storage.EncodeCollection(next)
	if err != nil {
		return err
	}
	if err := s.storage.Set(ctx, c.key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", c.key, err)
	}

	c.items = next
	return nil
}

func indexOf[T any](items []T, id func(T) string, want string) int {
	return slices.IndexFunc(items, func(v T) bool { return id(v) == want })
}

func add[T any](ctx context.Context, s *Store, c *collection[T], v T) error {
	id := c.id(v)
	if id == "" {
		return fmt.Errorf("add %s: %w", c.key, ErrMissingID)
	}
	return mutate(ctx, s, c, func(items []T) ([]T, bool, error) {
		if indexOf(items, c.id, id) >= 0 {
			return nil, false, fmt.Errorf("add %s %s: %w", c.key, id, ErrDuplicateID)
		}
		return append(items, c.clone(v)), true, nil
	})
}

func replace[T any](ctx context.Context, s *Store, c *collection[T], v T) error {
	id := c.id(v)
	return mutate(ctx, s, c, func(items []T) ([]T, bool, error) {
		i := indexOf(items, c.id, id)
		if i < 0 {
			return nil, false, fmt.Errorf("update %s %s: %w", c.key, id, ErrNotFound)
		}
		items[i] = c.clone(v)
		return items, true, nil
	})
}

func remove[T any](ctx context.Context, s *Store, c *collection[T], id string) error {
	return mutate(ctx, s, c, func(items []T) ([]T, bool, error) {
		i := indexOf(items, c.id, id)
		if i < 0 {
			return items, false, nil
		}
		return slices.Delete(items, i, i+1), true, nil
	})
}

func find[T any](s *Store, c *collection[T], id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOf(c.items, c.id, id)
	if i < 0 {
		var zero T
		return zero, false
	}
	return c.clone(c.items[i]), true
}

func all[T any](s *Store, c *collection[T]) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneItems(c.items, c.clone)
}

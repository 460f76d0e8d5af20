package store

import (
	"context"
	"fmt"
	"time"

	"github.com/vbonduro/nichevendor/internal/domain"
)

func (s *Store) AddProduct(ctx context.Context, p domain.Product) error {
	return add(ctx, s, &s.products, p)
}

// UpdateProduct replaces the stored product with the same ID.
func (s *Store) UpdateProduct(ctx context.Context, p domain.Product) error {
	return replace(ctx, s, &s.products, p)
}

// DeleteProduct removes the product if present; unknown IDs are a no-op.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	return remove(ctx, s, &s.products, id)
}

func (s *Store) GetProduct(id string) (domain.Product, bool) {
	return find(s, &s.products, id)
}

func (s *Store) Products() []domain.Product {
	return all(s, &s.products)
}

func (s *Store) AddOrder(ctx context.Context, o domain.Order) error {
	return add(ctx, s, &s.orders, o)
}

func (s *Store) UpdateOrder(ctx context.Context, o domain.Order) error {
	return replace(ctx, s, &s.orders, o)
}

func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	return remove(ctx, s, &s.orders, id)
}

// RemoveOrder is an alias of DeleteOrder.
func (s *Store) RemoveOrder(ctx context.Context, id string) error {
	return s.DeleteOrder(ctx, id)
}

func (s *Store) GetOrderByID(id string) (domain.Order, bool) {
	return find(s, &s.orders, id)
}

func (s *Store) Orders() []domain.Order {
	return all(s, &s.orders)
}

// UpdateOrderStatus moves an order to status and stamps UpdatedAt with at.
// No other field changes.
func (s *Store) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus, at time.Time) error {
	if !status.Valid() {
		return fmt.Errorf("%q: %w", status, ErrInvalidStatus)
	}
	return mutate(ctx, s, &s.orders, func(items []domain.Order) ([]domain.Order, bool, error) {
		i := indexOf(items, s.orders.id, id)
		if i < 0 {
			return nil, false, fmt.Errorf("update order status %s: %w", id, ErrNotFound)
		}
		items[i].Status = status
		items[i].UpdatedAt = at
		return items, true, nil
	})
}

func (s *Store) AddEvent(ctx context.Context, e domain.Event) error {
	return add(ctx, s, &s.events, e)
}

func (s *Store) UpdateEvent(ctx context.Context, e domain.Event) error {
	return replace(ctx, s, &s.events, e)
}

func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	return remove(ctx, s, &s.events, id)
}

func (s *Store) GetEvent(id string) (domain.Event, bool) {
	return find(s, &s.events, id)
}

func (s *Store) Events() []domain.Event {
	return all(s, &s.events)
}

func (s *Store) AddSale(ctx context.Context, sl domain.Sale) error {
	return add(ctx, s, &s.sales, sl)
}

func (s *Store) UpdateSale(ctx context.Context, sl domain.Sale) error {
	return replace(ctx, s, &s.sales, sl)
}

func (s *Store) DeleteSale(ctx context.Context, id string) error {
	return remove(ctx, s, &s.sales, id)
}

func (s *Store) GetSale(id string) (domain.Sale, bool) {
	return find(s, &s.sales, id)
}

func (s *Store) Sales() []domain.Sale {
	return all(s, &s.sales)
}

func (s *Store) AddBooth(ctx context.Context, b domain.BoothLayout) error {
	return add(ctx, s, &s.booths, b)
}

func (s *Store) UpdateBooth(ctx context.Context, b domain.BoothLayout) error {
	return replace(ctx, s, &s.booths, b)
}

func (s *Store) DeleteBooth(ctx context.Context, id string) error {
	return remove(ctx, s, &s.booths, id)
}

func (s *Store) GetBooth(id string) (domain.BoothLayout, bool) {
	return find(s, &s.booths, id)
}

func (s *Store) Booths() []domain.BoothLayout {
	return all(s, &s.booths)
}

// Snapshot is a point-in-time copy of every collection.
type Snapshot struct {
	Products []domain.Product     `json:"products"`
	Orders   []domain.Order       `json:"orders"`
	Events   []domain.Event       `json:"events"`
	Sales    []domain.Sale        `json:"sales"`
	Booths   []domain.BoothLayout `json:"booths"`
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Products: cloneItems(s.products.items, s.products.clone),
		Orders:   cloneItems(s.orders.items, s.orders.clone),
		Events:   cloneItems(s.events.items, s.events.clone),
		Sales:    cloneItems(s.sales.items, s.sales.clone),
		Booths:   cloneItems(s.booths.items, s.booths.clone),
	}
}

func cloneItems[T any](items []T, clone func(T) T) []T {
	out := make([]T, len(items))
	for i, v := range items {
		out[i] = clone(v)
	}
	return out
}

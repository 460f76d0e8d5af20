package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vbonduro/nichevendor/internal/domain"
	"github.com/vbonduro/nichevendor/internal/money"
	"github.com/vbonduro/nichevendor/internal/store"
	"github.com/vbonduro/nichevendor/internal/validate"
)

// orderRepository is the subset of store.Store that OrderService requires.
type orderRepository interface {
	AddOrder(ctx context.Context, o domain.Order) error
	UpdateOrder(ctx context.Context, o domain.Order) error
	RemoveOrder(ctx context.Context, id string) error
	GetOrderByID(id string) (domain.Order, bool)
	UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus, at time.Time) error
	Orders() []domain.Order
}

// OrderItemInput is one line of the order form. ID is empty for new lines.
type OrderItemInput struct {
	ID          string
	ProductID   string
	Description string
	Quantity    int
	Price       float64
}

type OrderInput struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Items         []OrderItemInput
	DepositAmount float64
	IsPaid        bool
	Status        domain.OrderStatus
	Deadline      *time.Time
	Notes         string
	EventID       string
}

type OrderService struct {
	orders orderRepository
	now    Clock
	logger *slog.Logger
}

func NewOrderService(orders orderRepository, now Clock, logger *slog.Logger) *OrderService {
	return &OrderService{orders: orders, now: now, logger: logger}
}

// CreateOrder computes the total from the items, validates and stores the
// order. A validate.Errors result means nothing was stored.
func (s *OrderService) CreateOrder(ctx context.Context, in OrderInput) (*domain.Order, error) {
	now := s.now()
	o := buildOrder(in)
	o.ID = newID()
	o.CreatedAt = now
	o.UpdatedAt = now
	if o.Status == "" {
		o.Status = domain.OrderPending
	}

	if err := validate.Order(o); err != nil {
		return nil, err
	}
	if err := s.orders.AddOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to add order: %w", err)
	}
	s.logger.Info("order created", "order_id", o.ID, "items", len(o.Items), "total", o.TotalAmount)
	return &o, nil
}

// CheckOrder validates in without storing anything.
func (s *OrderService) CheckOrder(in OrderInput) error {
	o := buildOrder(in)
	if o.Status == "" {
		o.Status = domain.OrderPending
	}
	return validate.Order(o)
}

func (s *OrderService) UpdateOrder(ctx context.Context, id string, in OrderInput) (*domain.Order, error) {
	existing, ok := s.orders.GetOrderByID(id)
	if !ok {
		return nil, fmt.Errorf("order %s: %w", id, store.ErrNotFound)
	}

	o := buildOrder(in)
	o.ID = existing.ID
	o.CreatedAt = existing.CreatedAt
	o.UpdatedAt = s.now()
	if o.Status == "" {
		o.Status = existing.Status
	}

	if err := validate.Order(o); err != nil {
		return nil, err
	}
	if err := s.orders.UpdateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	s.logger.Info("order updated", "order_id", o.ID)
	return &o, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	if !status.Valid() {
		return validate.Errors{"status": "Unknown order status"}
	}
	if err := s.orders.UpdateOrderStatus(ctx, id, status, s.now()); err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	s.logger.Info("order status changed", "order_id", id, "status", status)
	return nil
}

// MarkPaid flags the order as paid in full.
func (s *OrderService) MarkPaid(ctx context.Context, id string) (*domain.Order, error) {
	o, ok := s.orders.GetOrderByID(id)
	if !ok {
		return nil, fmt.Errorf("order %s: %w", id, store.ErrNotFound)
	}
	o.IsPaid = true
	o.UpdatedAt = s.now()
	if err := s.orders.UpdateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to mark order paid: %w", err)
	}
	return &o, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	if err := s.orders.RemoveOrder(ctx, id); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	s.logger.Info("order deleted", "order_id", id)
	return nil
}

func (s *OrderService) GetOrder(id string) (*domain.Order, error) {
	o, ok := s.orders.GetOrderByID(id)
	if !ok {
		return nil, fmt.Errorf("order %s: %w", id, store.ErrNotFound)
	}
	return &o, nil
}

func (s *OrderService) ListOrders(filter store.OrderFilter) []domain.Order {
	return store.FilterOrders(s.orders.Orders(), filter)
}

func buildOrder(in OrderInput) domain.Order {
	items := make([]domain.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		id := it.ID
		if id == "" {
			id = newID()
		}
		items = append(items, domain.OrderItem{
			ID:          id,
			ProductID:   strings.TrimSpace(it.ProductID),
			Description: strings.TrimSpace(it.Description),
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}

	var deadline *time.Time
	if in.Deadline != nil {
		d := in.Deadline.UTC()
		deadline = &d
	}

	return domain.Order{
		CustomerName:  strings.TrimSpace(in.CustomerName),
		CustomerEmail: strings.TrimSpace(in.CustomerEmail),
		CustomerPhone: strings.TrimSpace(in.CustomerPhone),
		Items:         items,
		TotalAmount:   money.OrderTotal(items),
		DepositAmount: in.DepositAmount,
		IsPaid:        in.IsPaid,
		Status:        in.Status,
		Deadline:      deadline,
		Notes:         strings.TrimSpace(in.Notes),
		EventID:       strings.TrimSpace(in.EventID),
	}
}

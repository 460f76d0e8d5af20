package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/vbonduro/nichevendor/internal/domain"
	"github.com/vbonduro/nichevendor/internal/money"
	"github.com/vbonduro/nichevendor/internal/store"
	"github.com/vbonduro/nichevendor/internal/validate"
)

// eventRepository is the subset of store.Store that EventService requires.
type eventRepository interface {
	AddEvent(ctx context.Context, e domain.Event) error
	UpdateEvent(ctx context.Context, e domain.Event) error
	DeleteEvent(ctx context.Context, id string) error
	GetEvent(id string) (domain.Event, bool)
	Events() []domain.Event

	AddSale(ctx context.Context, s domain.Sale) error
	DeleteSale(ctx context.Context, id string) error
	Sales() []domain.Sale

	AddBooth(ctx context.Context, b domain.BoothLayout) error
	UpdateBooth(ctx context.Context, b domain.BoothLayout) error
	DeleteBooth(ctx context.Context, id string) error
	GetBooth(id string) (domain.BoothLayout, bool)
	Booths() []domain.BoothLayout
}

type EventInput struct {
	Name        string
	Location    string
	StartDate   time.Time
	EndDate     time.Time
	BoothNumber string
	Notes       string
	ProductIDs  []string
	Checklist   []string
}

type SaleInput struct {
	EventID       string
	Items         []domain.SaleItem
	PaymentMethod domain.PaymentMethod
	Notes         string
	Date          time.Time
}

type BoothInput struct {
	Name    string
	EventID string
	Notes   string
	Items   []domain.BoothLayoutItem
}

// EventService manages events along with the sales and booth layouts that
// belong to them.
type EventService struct {
	repo   eventRepository
	now    Clock
	logger *slog.Logger
}

func NewEventService(repo eventRepository, now Clock, logger *slog.Logger) *EventService {
	return &EventService{repo: repo, now: now, logger: logger}
}

func (s *EventService) CreateEvent(ctx context.Context, in EventInput) (*domain.Event, error) {
	now := s.now()
	e := domain.Event{
		ID:             newID(),
		Name:           strings.TrimSpace(in.Name),
		Location:       strings.TrimSpace(in.Location),
		StartDate:      in.StartDate.UTC(),
		EndDate:        in.EndDate.UTC(),
		BoothNumber:    strings.TrimSpace(in.BoothNumber),
		Notes:          strings.TrimSpace(in.Notes),
		Products:       nonNil(in.ProductIDs),
		ChecklistItems: []domain.ChecklistItem{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if e.EndDate.IsZero() {
		e.EndDate = e.StartDate
	}
	for _, name := range in.Checklist {
		if name = strings.TrimSpace(name); name != "" {
			e.ChecklistItems = append(e.ChecklistItems, domain.ChecklistItem{ID: newID(), Name: name})
		}
	}

	if err := validate.Event(e); err != nil {
		return nil, err
	}
	if err := s.repo.AddEvent(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to add event: %w", err)
	}
	s.logger.Info("event created", "event_id", e.ID)
	return &e, nil
}

// ToggleChecklistItem flips one checklist entry of an event.
func (s *EventService) ToggleChecklistItem(ctx context.Context, eventID, itemID string) (*domain.Event, error) {
	e, ok := s.repo.GetEvent(eventID)
	if !ok {
		return nil, fmt.Errorf("event %s: %w", eventID, store.ErrNotFound)
	}
	e.ChecklistItems = slices.Clone(e.ChecklistItems)
	found := false
	for i := range e.ChecklistItems {
		if e.ChecklistItems[i].ID == itemID {
			e.ChecklistItems[i].IsChecked = !e.ChecklistItems[i].IsChecked
			found = true
		}
	}
	if !found {
		return nil, fmt.Errorf("checklist item %s: %w", itemID, store.ErrNotFound)
	}
	e.UpdatedAt = s.now()
	if err := s.repo.UpdateEvent(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return &e, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	if err := s.repo.DeleteEvent(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	s.logger.Info("event deleted", "event_id", id)
	return nil
}

// ListEvents returns events ordered by start date.
func (s *EventService) ListEvents() []domain.Event {
	events := s.repo.Events()
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartDate.Before(events[j].StartDate)
	})
	return events
}

// Upcoming returns events that have not ended yet, soonest first.
func (s *EventService) Upcoming(now time.Time) []domain.Event {
	var out []domain.Event
	for _, e := range s.ListEvents() {
		end := e.EndDate
		if end.IsZero() {
			end = e.StartDate
		}
		if !end.Before(truncateDay(now)) {
			out = append(out, e)
		}
	}
	return out
}

func (s *EventService) RecordSale(ctx context.Context, in SaleInput) (*domain.Sale, error) {
	now := s.now()
	date := in.Date.UTC()
	if date.IsZero() {
		date = now
	}
	items := make([]domain.SaleItem, 0, len(in.Items))
	for _, it := range in.Items {
		it.ProductName = strings.TrimSpace(it.ProductName)
		items = append(items, it)
	}

	sale := domain.Sale{
		ID:            newID(),
		EventID:       strings.TrimSpace(in.EventID),
		Items:         items,
		TotalAmount:   money.SaleTotal(items),
		PaymentMethod: in.PaymentMethod,
		Notes:         strings.TrimSpace(in.Notes),
		Date:          date,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := validate.Sale(sale); err != nil {
		return nil, err
	}
	if err := s.repo.AddSale(ctx, sale); err != nil {
		return nil, fmt.Errorf("failed to add sale: %w", err)
	}
	s.logger.Info("sale recorded", "sale_id", sale.ID, "total", sale.TotalAmount)
	return &sale, nil
}

func (s *EventService) DeleteSale(ctx context.Context, id string) error {
	if err := s.repo.DeleteSale(ctx, id); err != nil {
		return fmt.Errorf("failed to delete sale: %w", err)
	}
	return nil
}

// ListSales returns sales newest first.
func (s *EventService) ListSales() []domain.Sale {
	sales := s.repo.Sales()
	sort.SliceStable(sales, func(i, j int) bool {
		return sales[i].Date.After(sales[j].Date)
	})
	return sales
}

func (s *EventService) SalesTotal() float64 {
	var totals []float64
	for _, sl := range s.repo.Sales() {
		totals = append(totals, sl.TotalAmount)
	}
	return money.Sum(totals...)
}

func (s *EventService) CreateBooth(ctx context.Context, in BoothInput) (*domain.BoothLayout, error) {
	now := s.now()
	items := make([]domain.BoothLayoutItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.ID == "" {
			it.ID = newID()
		}
		items = append(items, it)
	}
	b := domain.BoothLayout{
		ID:        newID(),
		Name:      strings.TrimSpace(in.Name),
		EventID:   strings.TrimSpace(in.EventID),
		Notes:     strings.TrimSpace(in.Notes),
		Items:     items,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := validate.Booth(b); err != nil {
		return nil, err
	}
	if err := s.repo.AddBooth(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to add booth layout: %w", err)
	}
	s.logger.Info("booth layout created", "booth_id", b.ID)
	return &b, nil
}

func (s *EventService) DeleteBooth(ctx context.Context, id string) error {
	if err := s.repo.DeleteBooth(ctx, id); err != nil {
		return fmt.Errorf("failed to delete booth layout: %w", err)
	}
	return nil
}

func (s *EventService) ListBooths() []domain.BoothLayout {
	return s.repo.Booths()
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func nonNil(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}

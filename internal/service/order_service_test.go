package service

import (
	"context"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/nichevendor/internal/domain"
	"github.com/vbonduro/nichevendor/internal/store"
	"github.com/vbonduro/nichevendor/internal/validate"
)

func newOrders(t *testing.T) (*OrderService, *store.Store) {
	t.Helper()
	st := newTestStore(t)
	return NewOrderService(st, fixedClock, slog.Default()), st
}

func badgeOrder() OrderInput {
	return OrderInput{
		CustomerName: "Sam",
		Items: []OrderItemInput{
			{Description: "Custom badge", Quantity: 2, Price: 15},
			{Description: "Sticker", Quantity: 3, Price: 0.1},
		},
		DepositAmount: 10,
	}
}

func TestCreateOrder(t *testing.T) {
	svc, st := newOrders(t)

	o, err := svc.CreateOrder(context.Background(), badgeOrder())
	require.NoError(t, err)
	assert.NotEmpty(t, o.ID)
	assert.Equal(t, 30.3, o.TotalAmount)
	assert.Equal(t, domain.OrderPending, o.Status)
	require.Len(t, o.Items, 2)
	assert.NotEmpty(t, o.Items[0].ID)
	assert.NotEqual(t, o.Items[0].ID, o.Items[1].ID)

	got, ok := st.GetOrderByID(o.ID)
	require.True(t, ok)
	assert.Equal(t, *o, got)
}

func TestCreateOrder_DepositAboveTotalRejected(t *testing.T) {
	svc, st := newOrders(t)

	in := badgeOrder()
	in.DepositAmount = 50

	_, err := svc.CreateOrder(context.Background(), in)
	var errs validate.Errors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "Deposit cannot exceed total order amount", errs["depositAmount"])
	assert.Empty(t, st.Orders())
}

func TestCreateOrder_NoItems(t *testing.T) {
	svc, st := newOrders(t)

	_, err := svc.CreateOrder(context.Background(), OrderInput{CustomerName: "Sam"})
	var errs validate.Errors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "items")
	assert.Empty(t, st.Orders())
}

func TestCreateOrder_NonFinitePriceRejected(t *testing.T) {
	svc, st := newOrders(t)

	in := badgeOrder()
	in.Items[1].Price = math.NaN()

	var err error
	require.NotPanics(t, func() { _, err = svc.CreateOrder(context.Background(), in) })
	var errs validate.Errors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "Item price must be a number", errs["items"])
	assert.Empty(t, st.Orders())
}

func TestCheckOrder(t *testing.T) {
	svc, st := newOrders(t)

	tests := []struct {
		name   string
		mutate func(in *OrderInput)
		want   []string
	}{
		{"valid", func(in *OrderInput) {}, nil},
		{"missing customer and deposit above total", func(in *OrderInput) {
			in.CustomerName = ""
			in.DepositAmount = 100
		}, []string{"customerName", "depositAmount"}},
		{"unknown status", func(in *OrderInput) { in.Status = "lost" }, []string{"status"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := badgeOrder()
			tt.mutate(&in)
			err := svc.CheckOrder(in)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			var errs validate.Errors
			require.ErrorAs(t, err, &errs)
			assert.Len(t, errs, len(tt.want))
			for _, f := range tt.want {
				assert.Contains(t, errs, f)
			}
		})
	}
	assert.Empty(t, st.Orders())
}

func TestUpdateOrder_KeepsItemIDs(t *testing.T) {
	svc, _ := newOrders(t)
	ctx := context.Background()

	o, err := svc.CreateOrder(ctx, badgeOrder())
	require.NoError(t, err)

	deadline := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	in := badgeOrder()
	in.Items[0].ID = o.Items[0].ID
	in.Items[0].Quantity = 4
	in.Deadline = &deadline

	updated, err := svc.UpdateOrder(ctx, o.ID, in)
	require.NoError(t, err)
	assert.Equal(t, o.Items[0].ID, updated.Items[0].ID)
	assert.Equal(t, 60.3, updated.TotalAmount)
	assert.Equal(t, domain.OrderPending, updated.Status)
	require.NotNil(t, updated.Deadline)
	assert.Equal(t, deadline, *updated.Deadline)
	assert.Equal(t, o.CreatedAt, updated.CreatedAt)
}

func TestUpdateOrder_InvalidLeavesStoredOrder(t *testing.T) {
	svc, st := newOrders(t)
	ctx := context.Background()

	o, err := svc.CreateOrder(ctx, badgeOrder())
	require.NoError(t, err)

	in := badgeOrder()
	in.CustomerName = " "
	_, err = svc.UpdateOrder(ctx, o.ID, in)
	require.Error(t, err)

	got, ok := st.GetOrderByID(o.ID)
	require.True(t, ok)
	assert.Equal(t, "Sam", got.CustomerName)
}

func TestUpdateStatus(t *testing.T) {
	svc, _ := newOrders(t)
	ctx := context.Background()

	o, err := svc.CreateOrder(ctx, badgeOrder())
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, o.ID, domain.OrderCompleted))
	got, err := svc.GetOrder(o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCompleted, got.Status)

	err = svc.UpdateStatus(ctx, o.ID, "shipped")
	var errs validate.Errors
	require.ErrorAs(t, err, &errs)

	assert.ErrorIs(t, svc.UpdateStatus(ctx, "missing", domain.OrderDelivered), store.ErrNotFound)
}

func TestMarkPaidAndDelete(t *testing.T) {
	svc, _ := newOrders(t)
	ctx := context.Background()

	o, err := svc.CreateOrder(ctx, badgeOrder())
	require.NoError(t, err)

	paid, err := svc.MarkPaid(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)

	require.NoError(t, svc.DeleteOrder(ctx, o.ID))
	_, err = svc.GetOrder(o.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListOrders(t *testing.T) {
	svc, _ := newOrders(t)
	ctx := context.Background()

	first, err := svc.CreateOrder(ctx, badgeOrder())
	require.NoError(t, err)
	in := badgeOrder()
	in.CustomerName = "Riley"
	_, err = svc.CreateOrder(ctx, in)
	require.NoError(t, err)
	require.NoError(t, svc.UpdateStatus(ctx, first.ID, domain.OrderInProgress))

	got := svc.ListOrders(store.OrderFilter{Status: string(domain.OrderInProgress)})
	require.Len(t, got, 1)
	assert.Equal(t, first.ID, got[0].ID)

	assert.Len(t, svc.ListOrders(store.OrderFilter{Status: store.AllStatuses, Search: "riley"}), 1)
}

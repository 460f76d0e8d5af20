package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/nichevendor/internal/domain"
	"github.com/vbonduro/nichevendor/internal/storage/memory"
)

func TestFilterProducts_ByCategoryPreservesOrder(t *testing.T) {
	s := newTestStore(t, memory.New())
	ctx := context.Background()

	require.NoError(t, s.AddProduct(ctx, product("p1", "Cat Pin", "Pins")))
	require.NoError(t, s.AddProduct(ctx, product("p2", "Fox Print", "Prints")))
	require.NoError(t, s.AddProduct(ctx, product("p3", "Moth Pin", "Pins")))

	got := FilterProducts(s.Products(), ProductFilter{Category: "Pins"})
	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, "p3", got[1].ID)
}

func TestFilterProducts(t *testing.T) {
	products := []domain.Product{
		{ID: "1", Name: "Cat Pin", Description: "hard enamel", Category: "Pins"},
		{ID: "2", Name: "Fox Print", Description: "A4 risograph", Category: "Prints"},
		{ID: "3", Name: "Sticker Pack", Description: "cats and foxes", Category: "Stickers"},
	}

	tests := []struct {
		name   string
		filter ProductFilter
		want   []string
	}{
		{"no filter", ProductFilter{}, []string{"1", "2", "3"}},
		{"all category", ProductFilter{Category: "All"}, []string{"1", "2", "3"}},
		{"search name case-insensitive", ProductFilter{Search: "FOX"}, []string{"2", "3"}},
		{"search description", ProductFilter{Search: "enamel"}, []string{"1"}},
		{"search and category", ProductFilter{Search: "cat", Category: "Stickers"}, []string{"3"}},
		{"unknown category", ProductFilter{Category: "Zines"}, []string{}},
		{"whitespace search", ProductFilter{Search: "  "}, []string{"1", "2", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterProducts(products, tt.filter)
			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestCategories(t *testing.T) {
	products := []domain.Product{
		{Category: "Prints"},
		{Category: "Pins"},
		{Category: ""},
		{Category: "Prints"},
		{Category: "Stickers"},
	}
	assert.Equal(t, []string{"Prints", "Pins", "Stickers"}, Categories(products))
	assert.Empty(t, Categories(nil))
}

func TestFilterOrders(t *testing.T) {
	orders := []domain.Order{
		{ID: "1", CustomerName: "Ada Lovelace", Status: domain.OrderPending,
			Items: []domain.OrderItem{{Description: "Custom portrait"}}},
		{ID: "2", CustomerName: "Grace Hopper", CustomerEmail: "grace@navy.mil", Status: domain.OrderCompleted,
			Items: []domain.OrderItem{{Description: "Pin set"}}},
		{ID: "3", CustomerName: "Alan Turing", Status: domain.OrderPending,
			Items: []domain.OrderItem{{Description: "Enamel pin"}}},
	}

	tests := []struct {
		name   string
		filter OrderFilter
		want   []string
	}{
		{"everything", OrderFilter{Status: "all"}, []string{"1", "2", "3"}},
		{"by status", OrderFilter{Status: "pending"}, []string{"1", "3"}},
		{"by customer", OrderFilter{Search: "grace"}, []string{"2"}},
		{"by email", OrderFilter{Search: "NAVY"}, []string{"2"}},
		{"by item description", OrderFilter{Search: "pin"}, []string{"2", "3"}},
		{"status and search", OrderFilter{Status: "pending", Search: "pin"}, []string{"3"}},
		{"no match", OrderFilter{Status: "delivered"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterOrders(orders, tt.filter)
			ids := make([]string, 0, len(got))
			for _, o := range got {
				ids = append(ids, o.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

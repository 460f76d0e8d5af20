package web

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/nichevendor/internal/domain"
)

func formRequest(t *testing.T, form url.Values) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	require.NoError(t, r.ParseForm())
	return r
}

func TestParseOrderForm(t *testing.T) {
	r := formRequest(t, url.Values{
		"customerName":     {"Sam"},
		"item_id":          {"keep-me", ""},
		"item_product":     {"", ""},
		"item_description": {"Badge", "  "},
		"item_quantity":    {"2", ""},
		"item_price":       {"15.5", ""},
		"depositAmount":    {""},
		"isPaid":           {"1"},
		"deadline":         {"2025-06-01"},
	})

	form, in, errs := parseOrderForm(r)
	assert.Empty(t, errs)
	assert.Len(t, form.Items, 2)
	require.Len(t, in.Items, 1)
	assert.Equal(t, "keep-me", in.Items[0].ID)
	assert.Equal(t, 2, in.Items[0].Quantity)
	assert.Equal(t, 15.5, in.Items[0].Price)
	assert.Zero(t, in.DepositAmount)
	assert.True(t, in.IsPaid)
	require.NotNil(t, in.Deadline)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), *in.Deadline)
}

func TestParseOrderForm_BadNumbers(t *testing.T) {
	r := formRequest(t, url.Values{
		"customerName":     {"Sam"},
		"item_description": {"Badge"},
		"item_quantity":    {"two"},
		"item_price":       {"15"},
		"depositAmount":    {"ten"},
		"deadline":         {"someday"},
	})

	_, _, errs := parseOrderForm(r)
	assert.Equal(t, "Item quantity must be a whole number", errs["items"])
	assert.Contains(t, errs, "depositAmount")
	assert.Contains(t, errs, "deadline")
}

func TestParseForms_RejectNonFiniteNumbers(t *testing.T) {
	for _, v := range []string{"NaN", "nan", "Inf", "-Inf", "+Infinity", "1e400"} {
		t.Run(v, func(t *testing.T) {
			_, in, errs := parseOrderForm(formRequest(t, url.Values{
				"customerName":     {"Sam"},
				"item_description": {"Badge"},
				"item_quantity":    {"1"},
				"item_price":       {v},
				"depositAmount":    {v},
			}))
			assert.Equal(t, "Item price must be a number", errs["items"])
			assert.Equal(t, "Deposit must be a number", errs["depositAmount"])
			assert.Zero(t, in.DepositAmount)

			_, pin, errs := parseProductForm(formRequest(t, url.Values{
				"name":     {"Pin"},
				"category": {"Pins"},
				"price":    {v},
				"stock":    {"1"},
			}))
			assert.Equal(t, "Price must be a number", errs["price"])
			assert.Zero(t, pin.Price)
		})
	}
}

func TestParseOrderForm_NoRowsOffersBlankRows(t *testing.T) {
	form, in, _ := parseOrderForm(formRequest(t, url.Values{"customerName": {"Sam"}}))
	assert.Len(t, form.Items, blankRows)
	assert.Empty(t, in.Items)
}

func TestParseSaleForm(t *testing.T) {
	products := map[string]*domain.Product{
		"p1": {ID: "p1", Name: "Pin", Price: 8},
	}
	lookup := func(id string) (*domain.Product, error) {
		if p, ok := products[id]; ok {
			return p, nil
		}
		return nil, errors.New("not found")
	}

	_, in, errs := parseSaleForm(formRequest(t, url.Values{
		"sale_product":  {"p1", "", "ghost"},
		"sale_quantity": {"", "", "1"},
		"paymentMethod": {"cash"},
	}), lookup)

	assert.Equal(t, "Unknown product", errs["items"])
	require.Len(t, in.Items, 1)
	assert.Equal(t, domain.SaleItem{ProductID: "p1", ProductName: "Pin", Quantity: 1, Price: 8}, in.Items[0])
}

func TestNormalizeBasePath(t *testing.T) {
	tests := map[string]string{
		"":         "",
		"/":        "",
		"vendor":   "/vendor",
		"/vendor/": "/vendor",
		" /a/b ":   "/a/b",
	}
	for in, want := range tests {
		assert.Equal(t, want, normalizeBasePath(in), "input %q", in)
	}
}

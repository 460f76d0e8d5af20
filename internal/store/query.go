package store

import (
	"strings"

	"github.com/vbonduro/nichevendor/internal/domain"
)

// AllCategories and AllStatuses are the filter values that match everything.
const (
	AllCategories = "All"
	AllStatuses   = "all"
)

type ProductFilter struct {
	Search   string
	Category string
}

// FilterProducts keeps products whose name or description contains Search
// (case-insensitive) and whose category equals Category. Empty values and
// AllCategories match everything. Input order is preserved.
func FilterProducts(products []domain.Product, f ProductFilter) []domain.Product {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	category := strings.TrimSpace(f.Category)
	anyCategory := category == "" || strings.EqualFold(category, AllCategories)

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !anyCategory && p.Category != category {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Categories returns the distinct non-empty product categories in the order
// they first appear.
func Categories(products []domain.Product) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

type OrderFilter struct {
	Status string
	Search string
}

// FilterOrders keeps orders in the given status whose customer name, email or
// any item description contains Search (case-insensitive).
func FilterOrders(orders []domain.Order, f OrderFilter) []domain.Order {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	status := strings.TrimSpace(f.Status)
	anyStatus := status == "" || status == AllStatuses

	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if !anyStatus && string(o.Status) != status {
			continue
		}
		if term != "" && !orderMatches(o, term) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func orderMatches(o domain.Order, term string) bool {
	if strings.Contains(strings.ToLower(o.CustomerName), term) ||
		strings.Contains(strings.ToLower(o.CustomerEmail), term) {
		return true
	}
	for _, item := range o.Items {
		if strings.Contains(strings.ToLower(item.Description), term) {
			return true
		}
	}
	return false
}

// Package validate holds the field rules for every entity in one place so
// that each form enforces the same constraints.
package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vbonduro/nichevendor/internal/domain"
	"github.com/vbonduro/nichevendor/internal/money"
)

// Errors maps a form field name to a human readable message. A nil or empty
// Errors means the entity is valid.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records msg for field unless the field already has an error.
func (e Errors) Add(field, msg string) {
	if _, exists := e[field]; !exists {
		e[field] = msg
	}
}

// Merge copies other into e without overwriting existing messages.
func (e Errors) Merge(other Errors) {
	for f, msg := range other {
		e.Add(f, msg)
	}
}

// Err returns e as an error, or nil when it holds nothing.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func Product(p domain.Product) error {
	errs := Errors{}
	if blank(p.Name) {
		errs.Add("name", "Product name is required")
	}
	if blank(p.Category) {
		errs.Add("category", "Category is required")
	}
	if !money.Finite(p.Price) {
		errs.Add("price", "Price must be a number")
	} else if p.Price < 0 {
		errs.Add("price", "Price cannot be negative")
	}
	if p.Stock < 0 {
		errs.Add("stock", "Stock cannot be negative")
	}
	for i, v := range p.Variants {
		if blank(v.Name) {
			errs.Add(fmt.Sprintf("variants.%d.name", i), "Variant name is required")
		}
	}
	return errs.Err()
}

// Order checks an order whose TotalAmount has already been computed from its
// items.
func Order(o domain.Order) error {
	errs := Errors{}
	if blank(o.CustomerName) {
		errs.Add("customerName", "Customer name is required")
	}
	if o.CustomerEmail != "" && !strings.Contains(o.CustomerEmail, "@") {
		errs.Add("customerEmail", "Email address is not valid")
	}
	if len(o.Items) == 0 {
		errs.Add("items", "At least one item is required")
	}
	for _, item := range o.Items {
		if blank(item.Description) {
			errs.Add("items", "All items must have a description")
		}
		if item.Quantity < 1 {
			errs.Add("items", "Item quantity must be at least 1")
		}
		if !money.Finite(item.Price) {
			errs.Add("items", "Item price must be a number")
		} else if item.Price < 0 {
			errs.Add("items", "Item price cannot be negative")
		}
	}
	switch {
	case !money.Finite(o.DepositAmount):
		errs.Add("depositAmount", "Deposit must be a number")
	case o.DepositAmount < 0:
		errs.Add("depositAmount", "Deposit cannot be negative")
	case money.Finite(o.TotalAmount) && money.Exceeds(o.DepositAmount, o.TotalAmount):
		errs.Add("depositAmount", "Deposit cannot exceed total order amount")
	}
	if !o.Status.Valid() {
		errs.Add("status", "Unknown order status")
	}
	return errs.Err()
}

func Event(e domain.Event) error {
	errs := Errors{}
	if blank(e.Name) {
		errs.Add("name", "Event name is required")
	}
	if e.StartDate.IsZero() {
		errs.Add("startDate", "Start date is required")
	}
	if !e.EndDate.IsZero() && e.EndDate.Before(e.StartDate) {
		errs.Add("endDate", "End date cannot be before the start date")
	}
	for i, c := range e.ChecklistItems {
		if blank(c.Name) {
			errs.Add(fmt.Sprintf("checklistItems.%d.name", i), "Checklist item name is required")
		}
	}
	return errs.Err()
}

func Sale(s domain.Sale) error {
	errs := Errors{}
	if len(s.Items) == 0 {
		errs.Add("items", "At least one item is required")
	}
	for _, item := range s.Items {
		if blank(item.ProductName) {
			errs.Add("items", "All items must name a product")
		}
		if item.Quantity < 1 {
			errs.Add("items", "Item quantity must be at least 1")
		}
		if !money.Finite(item.Price) {
			errs.Add("items", "Item price must be a number")
		} else if item.Price < 0 {
			errs.Add("items", "Item price cannot be negative")
		}
	}
	if !s.PaymentMethod.Valid() {
		errs.Add("paymentMethod", "Unknown payment method")
	}
	if s.Date.IsZero() {
		errs.Add("date", "Sale date is required")
	}
	return errs.Err()
}

func Booth(b domain.BoothLayout) error {
	errs := Errors{}
	if blank(b.Name) {
		errs.Add("name", "Layout name is required")
	}
	for i, item := range b.Items {
		field := fmt.Sprintf("items.%d", i)
		if blank(item.Type) {
			errs.Add(field, "Item type is required")
		}
		if !inCanvas(item.X) || !inCanvas(item.Y) || !inCanvas(item.X+item.Width) || !inCanvas(item.Y+item.Height) {
			errs.Add(field, "Item must fit on the layout canvas")
		}
		if item.Width <= 0 || item.Height <= 0 {
			errs.Add(field, "Item size must be positive")
		}
		if !money.Finite(item.Rotation) {
			errs.Add(field, "Item rotation must be a number")
		}
	}
	return errs.Err()
}

// inCanvas is false for NaN as well as out of range values.
func inCanvas(v float64) bool {
	return v >= 0 && v <= 100
}

// Package money does currency arithmetic in decimal so that totals of many
// line items do not pick up binary floating point drift.
package money

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/vbonduro/nichevendor/internal/domain"
)

// cents is the precision amounts are rounded to before they are stored.
const cents = 2

// LineTotal is quantity * unit price.
func LineTotal(quantity int, price float64) float64 {
	return round(line(quantity, price))
}

// OrderTotal sums quantity * price over every item.
func OrderTotal(items []domain.OrderItem) float64 {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(line(item.Quantity, item.Price))
	}
	return round(sum)
}

func SaleTotal(items []domain.SaleItem) float64 {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(line(item.Quantity, item.Price))
	}
	return round(sum)
}

// Balance is what the customer still owes: total minus deposit, or zero once
// the order is paid.
func Balance(o domain.Order) float64 {
	if o.IsPaid {
		return 0
	}
	return round(amount(o.TotalAmount).Sub(amount(o.DepositAmount)))
}

// Sum adds amounts exactly.
func Sum(amounts ...float64) float64 {
	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(amount(a))
	}
	return round(sum)
}

// Exceeds reports whether a is strictly greater than b at cent precision.
func Exceeds(a, b float64) bool {
	return amount(a).Round(cents).GreaterThan(amount(b).Round(cents))
}

func line(quantity int, price float64) decimal.Decimal {
	return amount(price).Mul(decimal.NewFromInt(int64(quantity)))
}

// Finite reports whether v is a usable amount (not NaN or infinite).
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// amount converts v to a decimal. Non-finite values count as zero; callers
// validate them separately.
func amount(v float64) decimal.Decimal {
	if !Finite(v) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

func round(d decimal.Decimal) float64 {
	f, _ := d.Round(cents).Float64()
	return f
}

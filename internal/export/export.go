// Package export renders inventory and orders as CSV for spreadsheets.
package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"
	"github.com/vbonduro/nichevendor/internal/domain"
	"github.com/vbonduro/nichevendor/internal/money"
	"github.com/vbonduro/nichevendor/internal/storage"
)

type productRow struct {
	ID          string `csv:"id"`
	Name        string `csv:"name"`
	Category    string `csv:"category"`
	Price       string `csv:"price"`
	Stock       int    `csv:"stock"`
	Description string `csv:"description"`
	Created     string `csv:"created"`
}

type orderRow struct {
	ID       string `csv:"id"`
	Customer string `csv:"customer"`
	Email    string `csv:"email"`
	Phone    string `csv:"phone"`
	Status   string `csv:"status"`
	Total    string `csv:"total"`
	Deposit  string `csv:"deposit"`
	Balance  string `csv:"balance"`
	Paid     bool   `csv:"paid"`
	Deadline string `csv:"deadline"`
	Created  string `csv:"created"`
}

func Products(w io.Writer, products []domain.Product) error {
	rows := make([]*productRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, &productRow{
			ID:          p.ID,
			Name:        p.Name,
			Category:    p.Category,
			Price:       amount(p.Price),
			Stock:       p.Stock,
			Description: p.Description,
			Created:     storage.FormatTime(p.CreatedAt),
		})
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write products csv: %w", err)
	}
	return nil
}

func Orders(w io.Writer, orders []domain.Order) error {
	rows := make([]*orderRow, 0, len(orders))
	for _, o := range orders {
		row := &orderRow{
			ID:       o.ID,
			Customer: o.CustomerName,
			Email:    o.CustomerEmail,
			Phone:    o.CustomerPhone,
			Status:   string(o.Status),
			Total:    amount(o.TotalAmount),
			Deposit:  amount(o.DepositAmount),
			Balance:  amount(money.Balance(o)),
			Paid:     o.IsPaid,
			Created:  storage.FormatTime(o.CreatedAt),
		}
		if o.Deadline != nil {
			row.Deadline = o.Deadline.UTC().Format("2006-01-02")
		}
		rows = append(rows, row)
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write orders csv: %w", err)
	}
	return nil
}

func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

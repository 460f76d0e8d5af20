package web

import (
	"net/http"

	"github.com/vbonduro/nichevendor/internal/domain"
	"github.com/vbonduro/nichevendor/internal/export"
	"github.com/vbonduro/nichevendor/internal/money"
	"github.com/vbonduro/nichevendor/internal/store"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if err := s.renderPage(w,
		map[string]any{
			"Summary":   s.dashboard.Summary(),
			"Threshold": s.dashboard.LowStockThreshold(),
			"ActiveNav": "home",
		},
		"pages/home.html", "partials/status_badge.html",
	); err != nil {
		s.logger.Error("render page error", "error", err)
	}
}

type loadIssueView struct {
	Key   string
	Error string
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	var issues []loadIssueView
	for _, is := range s.opts.LoadIssues() {
		issues = append(issues, loadIssueView{Key: is.Key, Error: is.Err.Error()})
	}

	if err := s.renderPage(w,
		map[string]any{
			"Version":   s.opts.Version,
			"Backend":   s.opts.Backend,
			"Currency":  s.opts.Currency,
			"BasePath":  s.opts.BasePath,
			"Issues":    issues,
			"ActiveNav": "settings",
		},
		"pages/settings.html",
	); err != nil {
		s.logger.Error("render page error", "error", err)
	}
}

func (s *Server) handleExportProducts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="products.csv"`)
	if err := export.Products(w, s.inventory.ListProducts(store.ProductFilter{})); err != nil {
		s.logger.Error("export products failed", "error", err)
	}
}

func (s *Server) handleExportOrders(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="orders.csv"`)
	if err := export.Orders(w, s.orders.ListOrders(store.OrderFilter{})); err != nil {
		s.logger.Error("export orders failed", "error", err)
	}
}

func balance(o domain.Order) float64 {
	return money.Balance(o)
}

package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/vbonduro/nichevendor/internal/domain"
	"github.com/vbonduro/nichevendor/internal/service"
	"github.com/vbonduro/nichevendor/internal/store"
	"github.com/vbonduro/nichevendor/internal/validate"
)

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	filter := store.OrderFilter{
		Status: strings.TrimSpace(r.URL.Query().Get("status")),
		Search: strings.TrimSpace(r.URL.Query().Get("q")),
	}
	if filter.Status == "" {
		filter.Status = store.AllStatuses
	}

	if err := s.renderPage(w,
		map[string]any{
			"Orders":    s.orders.ListOrders(filter),
			"Status":    filter.Status,
			"Query":     filter.Search,
			"Statuses":  domain.OrderStatuses,
			"ActiveNav": "orders",
		},
		"pages/orders.html", "partials/status_badge.html",
	); err != nil {
		s.logger.Error("render page error", "error", err)
	}
}

func (s *Server) handleNewOrder(w http.ResponseWriter, r *http.Request) {
	s.renderOrderForm(w, http.StatusOK, newOrderForm(), nil)
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	form, in, errs := parseOrderForm(r)
	if len(errs) > 0 {
		s.checkOrder(in, errs)
	} else {
		o, err := s.orders.CreateOrder(r.Context(), in)
		if err == nil {
			http.Redirect(w, r, s.path("/orders/"+o.ID), http.StatusSeeOther)
			return
		}
		if !asFieldErrors(err, errs) {
			s.serverError(w, "failed to create order", err)
			return
		}
	}
	s.renderOrderForm(w, http.StatusUnprocessableEntity, form, errs)
}

// checkOrder adds the remaining validation messages of a form that already
// failed to parse. While an item row is unparsed the total is unknown, so the
// deposit is only checked for sign.
func (s *Server) checkOrder(in service.OrderInput, errs validate.Errors) {
	if _, ok := errs["items"]; ok {
		in.DepositAmount = min(in.DepositAmount, 0)
	}
	asFieldErrors(s.orders.CheckOrder(in), errs)
}

func (s *Server) handleOrderDetail(w http.ResponseWriter, r *http.Request) {
	o, err := s.orders.GetOrder(r.PathValue("id"))
	if err != nil {
		s.renderNotFound(w, "Order not found", "/orders", "Back to orders")
		return
	}

	var event *domain.Event
	if o.EventID != "" {
		for _, e := range s.events.ListEvents() {
			if e.ID == o.EventID {
				event = &e
				break
			}
		}
	}

	if err := s.renderPage(w,
		map[string]any{
			"Order":     o,
			"Balance":   balance(*o),
			"Event":     event,
			"Statuses":  domain.OrderStatuses,
			"ActiveNav": "orders",
		},
		"pages/order_detail.html", "partials/status_badge.html",
	); err != nil {
		s.logger.Error("render page error", "error", err)
	}
}

func (s *Server) handleEditOrder(w http.ResponseWriter, r *http.Request) {
	o, err := s.orders.GetOrder(r.PathValue("id"))
	if err != nil {
		s.renderNotFound(w, "Order not found", "/orders", "Back to orders")
		return
	}
	s.renderOrderForm(w, http.StatusOK, orderFormFrom(*o), nil)
}

func (s *Server) handleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	id := r.PathValue("id")
	form, in, errs := parseOrderForm(r)
	form.ID = id
	if len(errs) > 0 {
		s.checkOrder(in, errs)
	} else {
		_, err := s.orders.UpdateOrder(r.Context(), id, in)
		switch {
		case err == nil:
			http.Redirect(w, r, s.path("/orders/"+id), http.StatusSeeOther)
			return
		case errors.Is(err, store.ErrNotFound):
			s.renderNotFound(w, "Order not found", "/orders", "Back to orders")
			return
		case !asFieldErrors(err, errs):
			s.serverError(w, "failed to update order", err)
			return
		}
	}
	s.renderOrderForm(w, http.StatusUnprocessableEntity, form, errs)
}

func (s *Server) handleOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	status := domain.OrderStatus(r.FormValue("status"))

	err := s.orders.UpdateStatus(r.Context(), id, status)
	var ve validate.Errors
	switch {
	case err == nil:
	case errors.As(err, &ve):
		http.Error(w, ve.Error(), http.StatusUnprocessableEntity)
		return
	case errors.Is(err, store.ErrNotFound):
		s.renderNotFound(w, "Order not found", "/orders", "Back to orders")
		return
	default:
		s.serverError(w, "failed to update order status", err)
		return
	}

	if r.Header.Get("HX-Request") == "true" {
		if err := s.renderPartial(w, "partials/status_badge.html", status); err != nil {
			s.logger.Error("render partial error", "error", err)
		}
		return
	}
	http.Redirect(w, r, s.path("/orders/"+id), http.StatusSeeOther)
}

func (s *Server) handleOrderPaid(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.orders.MarkPaid(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.renderNotFound(w, "Order not found", "/orders", "Back to orders")
			return
		}
		s.serverError(w, "failed to mark order paid", err)
		return
	}
	http.Redirect(w, r, s.path("/orders/"+id), http.StatusSeeOther)
}

func (s *Server) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := s.orders.DeleteOrder(r.Context(), r.PathValue("id")); err != nil {
		s.serverError(w, "failed to delete order", err)
		return
	}
	s.hxRedirect(w, "/orders")
}

func (s *Server) renderOrderForm(w http.ResponseWriter, status int, form orderForm, errs validate.Errors) {
	if err := s.renderPageStatus(w, status,
		map[string]any{
			"Form":      form,
			"Errors":    errs,
			"Statuses":  domain.OrderStatuses,
			"Products":  s.inventory.ListProducts(store.ProductFilter{}),
			"Events":    s.events.ListEvents(),
			"ActiveNav": "orders",
		},
		"pages/order_form.html", "partials/form_errors.html",
	); err != nil {
		s.logger.Error("render page error", "error", err)
	}
}

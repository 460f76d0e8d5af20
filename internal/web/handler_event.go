package web

import (
	"errors"
	"net/http"

	"github.com/vbonduro/nichevendor/internal/domain"
	"github.com/vbonduro/nichevendor/internal/store"
	"github.com/vbonduro/nichevendor/internal/validate"
)

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	s.renderEvents(w, http.StatusOK, eventForm{}, nil)
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	form, in, errs := parseEventForm(r)
	if len(errs) == 0 {
		_, err := s.events.CreateEvent(r.Context(), in)
		if err == nil {
			http.Redirect(w, r, s.path("/events"), http.StatusSeeOther)
			return
		}
		if !asFieldErrors(err, errs) {
			s.serverError(w, "failed to create event", err)
			return
		}
	}
	s.renderEvents(w, http.StatusUnprocessableEntity, form, errs)
}

func (s *Server) handleToggleChecklist(w http.ResponseWriter, r *http.Request) {
	_, err := s.events.ToggleChecklistItem(r.Context(), r.PathValue("id"), r.PathValue("item"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.renderNotFound(w, "Event not found", "/events", "Back to events")
			return
		}
		s.serverError(w, "failed to update checklist", err)
		return
	}
	http.Redirect(w, r, s.path("/events"), http.StatusSeeOther)
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := s.events.DeleteEvent(r.Context(), r.PathValue("id")); err != nil {
		s.serverError(w, "failed to delete event", err)
		return
	}
	s.hxRedirect(w, "/events")
}

func (s *Server) renderEvents(w http.ResponseWriter, status int, form eventForm, errs validate.Errors) {
	if err := s.renderPageStatus(w, status,
		map[string]any{
			"Events":    s.events.ListEvents(),
			"Products":  s.inventory.ListProducts(store.ProductFilter{}),
			"Form":      form,
			"Errors":    errs,
			"ActiveNav": "events",
		},
		"pages/events.html", "partials/form_errors.html",
	); err != nil {
		s.logger.Error("render page error", "error", err)
	}
}

func (s *Server) handleListSales(w http.ResponseWriter, r *http.Request) {
	s.renderSales(w, http.StatusOK, newSaleForm(), nil)
}

func (s *Server) handleCreateSale(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	form, in, errs := parseSaleForm(r, s.inventory.GetProduct)
	if len(errs) == 0 {
		_, err := s.events.RecordSale(r.Context(), in)
		if err == nil {
			http.Redirect(w, r, s.path("/sales"), http.StatusSeeOther)
			return
		}
		if !asFieldErrors(err, errs) {
			s.serverError(w, "failed to record sale", err)
			return
		}
	}
	s.renderSales(w, http.StatusUnprocessableEntity, form, errs)
}

func (s *Server) handleDeleteSale(w http.ResponseWriter, r *http.Request) {
	if err := s.events.DeleteSale(r.Context(), r.PathValue("id")); err != nil {
		s.serverError(w, "failed to delete sale", err)
		return
	}
	s.hxRedirect(w, "/sales")
}

func (s *Server) renderSales(w http.ResponseWriter, status int, form saleForm, errs validate.Errors) {
	if err := s.renderPageStatus(w, status,
		map[string]any{
			"Sales":          s.events.ListSales(),
			"Total":          s.events.SalesTotal(),
			"Products":       s.inventory.ListProducts(store.ProductFilter{}),
			"Events":         s.events.ListEvents(),
			"PaymentMethods": []domain.PaymentMethod{domain.PaymentCash, domain.PaymentCard, domain.PaymentOther},
			"Form":           form,
			"Errors":         errs,
			"ActiveNav":      "sales",
		},
		"pages/sales.html", "partials/form_errors.html",
	); err != nil {
		s.logger.Error("render page error", "error", err)
	}
}

func (s *Server) handleListBooths(w http.ResponseWriter, r *http.Request) {
	s.renderBooths(w, http.StatusOK, newBoothForm(), nil)
}

func (s *Server) handleCreateBooth(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	form, in, errs := parseBoothForm(r)
	if len(errs) == 0 {
		_, err := s.events.CreateBooth(r.Context(), in)
		if err == nil {
			http.Redirect(w, r, s.path("/booths"), http.StatusSeeOther)
			return
		}
		if !asFieldErrors(err, errs) {
			s.serverError(w, "failed to create booth layout", err)
			return
		}
	}
	s.renderBooths(w, http.StatusUnprocessableEntity, form, errs)
}

func (s *Server) handleDeleteBooth(w http.ResponseWriter, r *http.Request) {
	if err := s.events.DeleteBooth(r.Context(), r.PathValue("id")); err != nil {
		s.serverError(w, "failed to delete booth layout", err)
		return
	}
	s.hxRedirect(w, "/booths")
}

func (s *Server) renderBooths(w http.ResponseWriter, status int, form boothForm, errs validate.Errors) {
	if err := s.renderPageStatus(w, status,
		map[string]any{
			"Booths":    s.events.ListBooths(),
			"Events":    s.events.ListEvents(),
			"Form":      form,
			"Errors":    errs,
			"ActiveNav": "booths",
		},
		"pages/booths.html", "partials/form_errors.html",
	); err != nil {
		s.logger.Error("render page error", "error", err)
	}
}

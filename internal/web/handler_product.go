package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/vbonduro/nichevendor/internal/store"
	"github.com/vbonduro/nichevendor/internal/validate"
)

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	filter := store.ProductFilter{
		Search:   strings.TrimSpace(r.URL.Query().Get("q")),
		Category: strings.TrimSpace(r.URL.Query().Get("category")),
	}
	if filter.Category == "" {
		filter.Category = store.AllCategories
	}
	products := s.inventory.ListProducts(filter)

	// HTMX partial update: return only the list fragment.
	if r.Header.Get("HX-Request") == "true" {
		if err := s.renderPartial(w, "partials/product_list.html", products); err != nil {
			s.logger.Error("render partial error", "error", err)
		}
		return
	}

	categories := append([]string{store.AllCategories}, s.inventory.Categories()...)
	if err := s.renderPage(w,
		map[string]any{
			"Products":   products,
			"Query":      filter.Search,
			"Category":   filter.Category,
			"Categories": categories,
			"ActiveNav":  "inventory",
		},
		"pages/inventory.html", "partials/product_list.html",
	); err != nil {
		s.logger.Error("render page error", "error", err)
	}
}

func (s *Server) handleNewProduct(w http.ResponseWriter, r *http.Request) {
	form := productForm{Stock: "0", Variants: make([]variantRow, 1)}
	s.renderProductForm(w, http.StatusOK, form, nil)
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	form, in, errs := parseProductForm(r)
	if len(errs) > 0 {
		asFieldErrors(s.inventory.CheckProduct(in), errs)
	} else {
		_, err := s.inventory.CreateProduct(r.Context(), in)
		if err == nil {
			http.Redirect(w, r, s.path("/inventory"), http.StatusSeeOther)
			return
		}
		if !asFieldErrors(err, errs) {
			s.serverError(w, "failed to create product", err)
			return
		}
	}
	s.renderProductForm(w, http.StatusUnprocessableEntity, form, errs)
}

func (s *Server) handleEditProduct(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	p, err := s.inventory.GetProduct(id)
	if err != nil {
		s.renderNotFound(w, "Product not found", "/inventory", "Back to inventory")
		return
	}
	s.renderProductForm(w, http.StatusOK, productFormFrom(*p), nil)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	id := r.PathValue("id")
	form, in, errs := parseProductForm(r)
	form.ID = id
	if len(errs) > 0 {
		asFieldErrors(s.inventory.CheckProduct(in), errs)
	} else {
		_, err := s.inventory.UpdateProduct(r.Context(), id, in)
		switch {
		case err == nil:
			http.Redirect(w, r, s.path("/inventory"), http.StatusSeeOther)
			return
		case errors.Is(err, store.ErrNotFound):
			s.renderNotFound(w, "Product not found", "/inventory", "Back to inventory")
			return
		case !asFieldErrors(err, errs):
			s.serverError(w, "failed to update product", err)
			return
		}
	}
	s.renderProductForm(w, http.StatusUnprocessableEntity, form, errs)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.inventory.DeleteProduct(r.Context(), r.PathValue("id")); err != nil {
		s.serverError(w, "failed to delete product", err)
		return
	}
	s.hxRedirect(w, "/inventory")
}

func (s *Server) renderProductForm(w http.ResponseWriter, status int, form productForm, errs validate.Errors) {
	if err := s.renderPageStatus(w, status,
		map[string]any{
			"Form":       form,
			"Errors":     errs,
			"Categories": s.inventory.Categories(),
			"ActiveNav":  "inventory",
		},
		"pages/product_form.html", "partials/form_errors.html",
	); err != nil {
		s.logger.Error("render page error", "error", err)
	}
}

// asFieldErrors merges err into errs when it is a validation failure.
func asFieldErrors(err error, errs validate.Errors) bool {
	var ve validate.Errors
	if !errors.As(err, &ve) {
		return false
	}
	errs.Merge(ve)
	return true
}

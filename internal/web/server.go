package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/vbonduro/nichevendor/internal/format"
	"github.com/vbonduro/nichevendor/internal/service"
	"github.com/vbonduro/nichevendor/internal/store"
	"github.com/vbonduro/nichevendor/internal/validate"
)

const AppName = "NicheVendor"

type Services struct {
	Inventory *service.InventoryService
	Orders    *service.OrderService
	Events    *service.EventService
	Dashboard *service.DashboardService
}

// Options carries the deployment details the pages display or link with.
type Options struct {
	BasePath   string
	Currency   string
	Backend    string
	Version    string
	LoadIssues func() []store.LoadIssue
	Now        func() time.Time
}

type Server struct {
	inventory *service.InventoryService
	orders    *service.OrderService
	events    *service.EventService
	dashboard *service.DashboardService
	templates embed.FS
	opts      Options
	mux       *http.ServeMux
	tmplFuncs template.FuncMap
	logger    *slog.Logger
}

func NewServer(svc Services, tmpl embed.FS, opts Options, logger *slog.Logger) *Server {
	opts.BasePath = normalizeBasePath(opts.BasePath)
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.LoadIssues == nil {
		opts.LoadIssues = func() []store.LoadIssue { return nil }
	}

	s := &Server{
		inventory: svc.Inventory,
		orders:    svc.Orders,
		events:    svc.Events,
		dashboard: svc.Dashboard,
		templates: tmpl,
		opts:      opts,
		mux:       http.NewServeMux(),
		logger:    logger,
	}
	s.tmplFuncs = template.FuncMap{
		"appName":  func() string { return AppName },
		"path":     s.path,
		"money":    func(v float64) string { return format.Currency(v, opts.Currency) },
		"date":     func(t time.Time) string { return format.Date(t, format.Short, s.opts.Now()) },
		"longDate": func(t time.Time) string { return format.Date(t, format.Long, s.opts.Now()) },
		"relDate":  func(t time.Time) string { return format.Date(t, format.Relative, s.opts.Now()) },
		"inputDate": func(t *time.Time) string {
			if t == nil || t.IsZero() {
				return ""
			}
			return t.UTC().Format("2006-01-02")
		},
		"fieldErr": func(errs validate.Errors, field string) string { return errs[field] },
		"inc":      func(i int) int { return i + 1 },
		"sub":      func(a, b int) int { return a - b },
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /{$}", s.handleHome)

	s.mux.HandleFunc("GET /inventory", s.handleInventory)
	s.mux.HandleFunc("GET /products/add", s.handleNewProduct)
	s.mux.HandleFunc("POST /products", s.handleCreateProduct)
	s.mux.HandleFunc("GET /products/edit", s.handleEditProduct)
	s.mux.HandleFunc("POST /products/{id}", s.handleUpdateProduct)
	s.mux.HandleFunc("DELETE /products/{id}", s.handleDeleteProduct)

	s.mux.HandleFunc("GET /orders", s.handleListOrders)
	s.mux.HandleFunc("GET /orders/new", s.handleNewOrder)
	s.mux.HandleFunc("POST /orders", s.handleCreateOrder)
	s.mux.HandleFunc("GET /orders/{id}", s.handleOrderDetail)
	s.mux.HandleFunc("GET /orders/{id}/edit", s.handleEditOrder)
	s.mux.HandleFunc("POST /orders/{id}", s.handleUpdateOrder)
	s.mux.HandleFunc("POST /orders/{id}/status", s.handleOrderStatus)
	s.mux.HandleFunc("POST /orders/{id}/paid", s.handleOrderPaid)
	s.mux.HandleFunc("DELETE /orders/{id}", s.handleDeleteOrder)

	s.mux.HandleFunc("GET /events", s.handleListEvents)
	s.mux.HandleFunc("POST /events", s.handleCreateEvent)
	s.mux.HandleFunc("POST /events/{id}/checklist/{item}", s.handleToggleChecklist)
	s.mux.HandleFunc("DELETE /events/{id}", s.handleDeleteEvent)

	s.mux.HandleFunc("GET /sales", s.handleListSales)
	s.mux.HandleFunc("POST /sales", s.handleCreateSale)
	s.mux.HandleFunc("DELETE /sales/{id}", s.handleDeleteSale)

	s.mux.HandleFunc("GET /booths", s.handleListBooths)
	s.mux.HandleFunc("GET /booth", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, s.path("/booths"), http.StatusSeeOther)
	})
	s.mux.HandleFunc("POST /booths", s.handleCreateBooth)
	s.mux.HandleFunc("DELETE /booths/{id}", s.handleDeleteBooth)

	s.mux.HandleFunc("GET /settings", s.handleSettings)
	s.mux.HandleFunc("GET /export/products.csv", s.handleExportProducts)
	s.mux.HandleFunc("GET /export/orders.csv", s.handleExportOrders)

	s.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		s.renderNotFound(w, "Page not found", "/", "Back to dashboard")
	})
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy",
			"default-src 'self'; "+
				"script-src 'self' 'unsafe-inline' https://unpkg.com; "+
				"style-src 'self' 'unsafe-inline'; "+
				"img-src 'self' data: https:; "+
				"connect-src 'self'")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var h http.Handler = s.mux
	if base := s.opts.BasePath; base != "" {
		if r.URL.Path == base {
			http.Redirect(w, r, base+"/", http.StatusMovedPermanently)
			return
		}
		h = http.StripPrefix(base, h)
	}
	requestLogger(s.logger, securityHeaders(h)).ServeHTTP(w, r)
}

// HTTPServer returns the configured *http.Server so callers can shut it down.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

// path prefixes an app-relative path with the base path.
func (s *Server) path(p string) string {
	return s.opts.BasePath + p
}

func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	p = strings.TrimRight(p, "/")
	if p != "" && !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// renderPage parses and executes a full-page template set.
func (s *Server) renderPage(w http.ResponseWriter, data any, files ...string) error {
	return s.renderPageStatus(w, http.StatusOK, data, files...)
}

func (s *Server) renderPageStatus(w http.ResponseWriter, status int, data any, files ...string) error {
	tmpl, err := template.New("").Funcs(s.tmplFuncs).ParseFS(s.templates, append([]string{"base.html"}, files...)...)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return tmpl.ExecuteTemplate(w, "base", data)
}

// renderPartial parses and executes a single named partial template.
// The file must contain exactly one {{define "name"}}...{{end}} block.
func (s *Server) renderPartial(w http.ResponseWriter, file string, data any) error {
	tmpl, err := template.New("").Funcs(s.tmplFuncs).ParseFS(s.templates, file)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// ParseFS registers both the file-basename template and any {{define}} blocks.
	// Find the {{define}} template: it is the one whose name is neither "" nor
	// the file basename.
	basename := file
	if idx := strings.LastIndexByte(file, '/'); idx >= 0 {
		basename = file[idx+1:]
	}
	for _, t := range tmpl.Templates() {
		if n := t.Name(); n != "" && n != basename {
			return t.Execute(w, data)
		}
	}
	return tmpl.ExecuteTemplate(w, basename, data)
}

func (s *Server) renderNotFound(w http.ResponseWriter, message, back, backLabel string) {
	if err := s.renderPageStatus(w, http.StatusNotFound,
		map[string]any{"Message": message, "Back": back, "BackLabel": backLabel, "ActiveNav": ""},
		"pages/not_found.html",
	); err != nil {
		s.logger.Error("render page error", "error", err)
	}
}

func (s *Server) serverError(w http.ResponseWriter, msg string, err error) {
	http.Error(w, msg, http.StatusInternalServerError)
	s.logger.Error(msg, "error", err)
}

// hxRedirect answers an HTMX request by sending the browser to p.
func (s *Server) hxRedirect(w http.ResponseWriter, p string) {
	w.Header().Set("HX-Redirect", s.path(p))
	w.WriteHeader(http.StatusOK)
}

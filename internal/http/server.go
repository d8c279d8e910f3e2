// Package http serves the freebooks web UI: full pages rendered from
// embedded templates plus htmx partials for the dashboard and the three
// record listings.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"freebooks/internal/cache"
	"freebooks/internal/core"
	"freebooks/internal/ledger"
	"freebooks/internal/middleware/ratelimit"
	"freebooks/internal/middleware/trace"
	appweb "freebooks/web"
)

type Server struct {
	http.Server
	templates *template.Template
	ledger    *ledger.Service
	limiter   *ratelimit.Limiter
	tracer    *trace.Middleware

	// Rendered default list partials keyed by collection name, plus the
	// dashboard totals. Both are dropped on every create.
	partialCache *cache.LRUCache[[]byte]
	totalsCache  *cache.LRUCache[core.Totals]
	cleanup      *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, svc *ledger.Service) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		ledger:       svc,
		limiter:      ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		tracer:       trace.NewMiddleware(clientIP),
		partialCache: cache.NewLRUCache[[]byte](16, 5*time.Minute),
		totalsCache:  cache.NewLRUCache[core.Totals](4, 5*time.Minute),
		cleanup:      cache.NewManager(),
	}
	s.cleanup.Register(s.partialCache)
	s.cleanup.Register(s.totalsCache)
	s.cleanup.StartCleanup(10 * time.Minute)

	// Parse embedded templates at startup.
	t, err := template.New("").Funcs(template.FuncMap{
		"usd":    formatUSD,
		"number": formatNumber,
	}).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/metrics", s.handleMetrics)

	// Pages
	mux.HandleFunc("/", s.secured(s.handleIndex))
	mux.HandleFunc("/invoices", s.secured(s.handleInvoices))
	mux.HandleFunc("/expenses", s.secured(s.handleExpenses))
	mux.HandleFunc("/clients", s.secured(s.handleClients))
	mux.HandleFunc("/invoices/pdf", s.secured(s.handleInvoicePDF))
	mux.HandleFunc("/signin", s.secured(s.handleSignIn))
	mux.HandleFunc("/signout", s.secured(s.handleSignOut))

	// UI partials
	mux.HandleFunc("/ui/dashboard", s.secured(s.handleDashboardOverview))
	mux.HandleFunc("/ui/invoices", s.secured(s.handleInvoiceList))
	mux.HandleFunc("/ui/expenses", s.secured(s.handleExpenseList))
	mux.HandleFunc("/ui/clients", s.secured(s.handleClientList))

	return s
}

// secured stacks tracing, rate limiting for writes, and security headers
// around a handler.
func (s *Server) secured(next http.HandlerFunc) http.HandlerFunc {
	traced := s.tracer.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && !s.limiter.Allow(clientIP(r)) {
			slog.WarnContext(r.Context(), "Rate limit exceeded",
				"client_ip", clientIP(r), "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' https://unpkg.com 'unsafe-eval'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next(w, r)
	}))
	return traced.ServeHTTP
}

// Shutdown stops the server along with its cache and limiter goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cleanup.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	writeMetric(w, "freebooks_http_requests_total", s.tracer.TotalRequests())
	writeMetric(w, "freebooks_ratelimit_active_clients", int64(s.limiter.ActiveClients()))
	writeMetric(w, "freebooks_cache_partial_entries", int64(s.partialCache.Size()))
	writeMetric(w, "freebooks_cache_totals_entries", int64(s.totalsCache.Size()))
}

// invalidate drops every cached view touching the named collection.
// Invoices and expenses both feed the dashboard totals.
func (s *Server) invalidate(collection string) {
	s.partialCache.Delete(collection)
	s.totalsCache.Delete(totalsKey)
}

const totalsKey = "totals"

func (s *Server) totals(ctx context.Context) core.Totals {
	if t, ok := s.totalsCache.Get(totalsKey); ok {
		return t
	}
	t := s.ledger.Summary(ctx)
	s.totalsCache.Set(totalsKey, t)
	return t
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, name string, data any) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution failed",
			"error", err, "template", name)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

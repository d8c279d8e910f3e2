package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"freebooks/internal/ledger"
	"freebooks/internal/session"
	"freebooks/internal/store/memory"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv := NewServer(":0", ledger.New(memory.New(), nil))
	t.Cleanup(func() {
		srv.cleanup.Stop()
		srv.limiter.Stop()
	})
	return srv
}

// signedIn attaches a session cookie to req.
func signedIn(t *testing.T, req *http.Request) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := session.Write(rec, session.Session{Email: "jo@example.com", Name: "Jo"}); err != nil {
		t.Fatalf("session write: %v", err)
	}
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func postForm(t *testing.T, srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler.ServeHTTP(rr, signedIn(t, req))
	return rr
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		rr := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != 200 {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}
}

func TestIndexRedirectsWithoutSession(t *testing.T) {
	srv := newTestServer(t)
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status=%d, want 303", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/signin" {
		t.Fatalf("redirect to %q, want /signin", loc)
	}
}

func TestSignInFlow(t *testing.T) {
	srv := newTestServer(t)

	rr := httptest.NewRecorder()
	form := url.Values{"email": {"jo@example.com"}, "name": {"Jo"}, "business_name": {"Jo Design"}}
	req := httptest.NewRequest(http.MethodPost, "/signin", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("signin status=%d, want 303", rr.Code)
	}

	// The cookie from signin unlocks the dashboard.
	page := httptest.NewRecorder()
	pageReq := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rr.Result().Cookies() {
		pageReq.AddCookie(c)
	}
	srv.Handler.ServeHTTP(page, pageReq)
	if page.Code != 200 {
		t.Fatalf("index status=%d", page.Code)
	}
	if !strings.Contains(page.Body.String(), "Dashboard") {
		t.Fatal("index body missing dashboard heading")
	}
}

func TestSignInRequiresEmail(t *testing.T) {
	srv := newTestServer(t)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/signin", strings.NewReader("name=Jo"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d, want 422", rr.Code)
	}
}

func TestSignOut(t *testing.T) {
	srv := newTestServer(t)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/signout", nil)
	srv.Handler.ServeHTTP(rr, signedIn(t, req))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status=%d, want 303", rr.Code)
	}
	found := false
	for _, c := range rr.Result().Cookies() {
		if c.Name == "freebooks_session" && c.MaxAge < 0 {
			found = true
		}
	}
	if !found {
		t.Fatal("expected expired session cookie")
	}
}

func TestCreateExpenseValidationAndSuccess(t *testing.T) {
	srv := newTestServer(t)

	// Invalid amount
	rr := postForm(t, srv, "/expenses", url.Values{
		"description": {"Stamps"}, "amount": {"abc"},
		"date": {"2026-03-01"}, "category": {"Other"},
	})
	if rr.Code != 422 {
		t.Fatalf("bad amount: status=%d, want 422", rr.Code)
	}

	// Unknown category
	rr = postForm(t, srv, "/expenses", url.Values{
		"description": {"Stamps"}, "amount": {"5"},
		"date": {"2026-03-01"}, "category": {"Postage"},
	})
	if rr.Code != 422 {
		t.Fatalf("bad category: status=%d, want 422", rr.Code)
	}

	// Success
	rr = postForm(t, srv, "/expenses", url.Values{
		"description": {"Stamps"}, "amount": {"5.25"},
		"date": {"2026-03-01"}, "category": {"Office Supplies"}, "vendor": {"USPS"},
	})
	if rr.Code != 200 {
		t.Fatalf("status=%d, body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Header().Get("HX-Trigger"), "expenses:created") {
		t.Fatalf("missing expenses:created trigger: %q", rr.Header().Get("HX-Trigger"))
	}

	// The listing partial now shows the record.
	list := httptest.NewRecorder()
	srv.Handler.ServeHTTP(list, signedIn(t, httptest.NewRequest(http.MethodGet, "/ui/expenses", nil)))
	if list.Code != 200 {
		t.Fatalf("list status=%d", list.Code)
	}
	if !strings.Contains(list.Body.String(), "Stamps") {
		t.Fatal("listing missing created expense")
	}
}

func TestExpenseListFilters(t *testing.T) {
	srv := newTestServer(t)

	seed := []url.Values{
		{"description": {"Laptop"}, "amount": {"900"}, "date": {"2026-01-02"}, "category": {"Equipment"}, "vendor": {"Apple"}},
		{"description": {"Hosting"}, "amount": {"12"}, "date": {"2026-01-03"}, "category": {"Software/Tools"}, "vendor": {"Hetzner"}},
	}
	for _, form := range seed {
		if rr := postForm(t, srv, "/expenses", form); rr.Code != 200 {
			t.Fatalf("seed failed: %d %s", rr.Code, rr.Body.String())
		}
	}

	// Category filter
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, signedIn(t, httptest.NewRequest(http.MethodGet, "/ui/expenses?category=Equipment", nil)))
	body := rr.Body.String()
	if !strings.Contains(body, "Laptop") || strings.Contains(body, "Hosting") {
		t.Fatalf("category filter wrong: %s", body)
	}

	// Vendor search
	rr = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, signedIn(t, httptest.NewRequest(http.MethodGet, "/ui/expenses?q=hetz", nil)))
	body = rr.Body.String()
	if strings.Contains(body, "Laptop") || !strings.Contains(body, "Hosting") {
		t.Fatalf("search wrong: %s", body)
	}

	// Sentinel matches everything
	rr = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, signedIn(t, httptest.NewRequest(http.MethodGet, "/ui/expenses?category=all", nil)))
	body = rr.Body.String()
	if !strings.Contains(body, "Laptop") || !strings.Contains(body, "Hosting") {
		t.Fatalf("sentinel filter wrong: %s", body)
	}
}

func TestCreateInvoiceAndPDF(t *testing.T) {
	srv := newTestServer(t)

	rr := postForm(t, srv, "/invoices", url.Values{
		"client_name":      {"Acme"},
		"client_email":     {"billing@acme.test"},
		"issue_date":       {"2026-01-10"},
		"due_date":         {"2026-02-10"},
		"tax_rate":         {"10"},
		"item_description": {"Design", "Hosting"},
		"item_quantity":    {"2", "1"},
		"item_rate":        {"100", "50"},
	})
	if rr.Code != 200 {
		t.Fatalf("create status=%d, body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "$275.00") {
		t.Fatalf("expected computed total in response: %s", rr.Body.String())
	}

	// Find the id through the listing partial's PDF link.
	list := httptest.NewRecorder()
	srv.Handler.ServeHTTP(list, signedIn(t, httptest.NewRequest(http.MethodGet, "/ui/invoices", nil)))
	body := list.Body.String()
	marker := "/invoices/pdf?id="
	i := strings.Index(body, marker)
	if i < 0 {
		t.Fatalf("listing missing pdf link: %s", body)
	}
	id := body[i+len(marker):]
	id = id[:strings.IndexByte(id, '"')]

	pdfResp := httptest.NewRecorder()
	srv.Handler.ServeHTTP(pdfResp, signedIn(t, httptest.NewRequest(http.MethodGet, "/invoices/pdf?id="+id, nil)))
	if pdfResp.Code != 200 {
		t.Fatalf("pdf status=%d", pdfResp.Code)
	}
	if ct := pdfResp.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type %q", ct)
	}
	if !strings.HasPrefix(pdfResp.Body.String(), "%PDF") {
		t.Fatal("response is not a PDF document")
	}
}

func TestInvoicePDFNotFound(t *testing.T) {
	srv := newTestServer(t)
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, signedIn(t, httptest.NewRequest(http.MethodGet, "/invoices/pdf?id=nope", nil)))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", rr.Code)
	}
}

func TestCreateInvoiceWithoutItems(t *testing.T) {
	srv := newTestServer(t)
	rr := postForm(t, srv, "/invoices", url.Values{
		"client_name": {"Acme"},
		"issue_date":  {"2026-01-10"},
		"due_date":    {"2026-02-10"},
	})
	if rr.Code != 422 {
		t.Fatalf("status=%d, want 422", rr.Code)
	}
}

func TestInvoiceStatusFilter(t *testing.T) {
	srv := newTestServer(t)
	rr := postForm(t, srv, "/invoices", url.Values{
		"client_name":      {"Acme"},
		"client_email":     {"billing@acme.test"},
		"issue_date":       {"2026-01-10"},
		"due_date":         {"2026-02-10"},
		"item_description": {"Work"},
		"item_quantity":    {"1"},
		"item_rate":        {"100"},
	})
	if rr.Code != 200 {
		t.Fatalf("create failed: %d", rr.Code)
	}

	// New invoices start pending; the paid view must be empty.
	paid := httptest.NewRecorder()
	srv.Handler.ServeHTTP(paid, signedIn(t, httptest.NewRequest(http.MethodGet, "/ui/invoices?status=paid", nil)))
	if strings.Contains(paid.Body.String(), "Acme") {
		t.Fatal("paid view should not list a pending invoice")
	}

	pending := httptest.NewRecorder()
	srv.Handler.ServeHTTP(pending, signedIn(t, httptest.NewRequest(http.MethodGet, "/ui/invoices?status=pending", nil)))
	if !strings.Contains(pending.Body.String(), "Acme") {
		t.Fatal("pending view should list the invoice")
	}
}

func TestCreateClientAndSearch(t *testing.T) {
	srv := newTestServer(t)

	for _, form := range []url.Values{
		{"name": {"Acme Inc"}, "email": {"billing@acme.test"}, "company": {"Acme"}},
		{"name": {"Nova Labs"}, "email": {"hi@nova.test"}, "company": {"Nova"}},
	} {
		if rr := postForm(t, srv, "/clients", form); rr.Code != 200 {
			t.Fatalf("seed failed: %d %s", rr.Code, rr.Body.String())
		}
	}

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, signedIn(t, httptest.NewRequest(http.MethodGet, "/ui/clients?q=acme", nil)))
	body := rr.Body.String()
	if !strings.Contains(body, "Acme Inc") || strings.Contains(body, "Nova Labs") {
		t.Fatalf("client search wrong: %s", body)
	}
}

func TestCreateClientValidation(t *testing.T) {
	srv := newTestServer(t)
	rr := postForm(t, srv, "/clients", url.Values{"name": {"   "}})
	if rr.Code != 422 {
		t.Fatalf("status=%d, want 422", rr.Code)
	}
}

func TestListPartialCacheInvalidation(t *testing.T) {
	srv := newTestServer(t)

	// Prime the cached default view while it is empty.
	first := httptest.NewRecorder()
	srv.Handler.ServeHTTP(first, signedIn(t, httptest.NewRequest(http.MethodGet, "/ui/clients", nil)))
	if !strings.Contains(first.Body.String(), "No clients yet") {
		t.Fatalf("expected empty listing: %s", first.Body.String())
	}

	if rr := postForm(t, srv, "/clients", url.Values{
		"name": {"Acme Inc"}, "email": {"billing@acme.test"},
	}); rr.Code != 200 {
		t.Fatalf("create failed: %d", rr.Code)
	}

	// The create must have dropped the cached empty view.
	second := httptest.NewRecorder()
	srv.Handler.ServeHTTP(second, signedIn(t, httptest.NewRequest(http.MethodGet, "/ui/clients", nil)))
	if !strings.Contains(second.Body.String(), "Acme Inc") {
		t.Fatalf("stale cached listing: %s", second.Body.String())
	}
}

func TestDashboardOverview(t *testing.T) {
	srv := newTestServer(t)

	if rr := postForm(t, srv, "/invoices", url.Values{
		"client_name":      {"Acme"},
		"client_email":     {"billing@acme.test"},
		"issue_date":       {"2026-01-10"},
		"due_date":         {"2026-02-10"},
		"item_description": {"Work"},
		"item_quantity":    {"1"},
		"item_rate":        {"3000"},
	}); rr.Code != 200 {
		t.Fatalf("invoice create failed: %d", rr.Code)
	}

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, signedIn(t, httptest.NewRequest(http.MethodGet, "/ui/dashboard", nil)))
	if rr.Code != 200 {
		t.Fatalf("overview status=%d", rr.Code)
	}
	body := rr.Body.String()
	// A fresh invoice is pending, so its total shows up as outstanding.
	if !strings.Contains(body, "Outstanding") || !strings.Contains(body, "$3,000.00") {
		t.Fatalf("overview missing outstanding total: %s", body)
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv := newTestServer(t)
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, signedIn(t, httptest.NewRequest(http.MethodGet, "/", nil)))
	if rr.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("missing X-Content-Type-Options")
	}
	if rr.Header().Get("X-Frame-Options") != "DENY" {
		t.Fatal("missing X-Frame-Options")
	}
}

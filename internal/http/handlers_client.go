package http

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"

	"freebooks/internal/core"
	"freebooks/internal/store"
)

// handleClients serves the clients page on GET and creates a client on POST.
func (s *Server) handleClients(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		s.handleCreateClient(w, r)
		return
	}

	sess, ok := s.requireSession(w, r)
	if !ok {
		return
	}
	data := struct {
		Session any
		Active  string
	}{Session: sess, Active: "clients"}
	s.renderPage(w, r, "clients.html", data)
}

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	c, err := s.ledger.CreateClient(r.Context(), parseClientForm(r))
	if err != nil {
		if isValidationError(err) {
			UnprocessableEntityError("Invalid client: " + err.Error()).Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Client create failed", "error", err)
		InternalServerError("Could not save the client").Write(w)
		return
	}

	s.invalidate(store.Clients)
	NewHTMXResponse().
		TriggerRecordCreated(store.Clients, c.ID).
		TriggerFormReset().
		TriggerSuccessNotification("Client added").
		BodyHTML(`<div class="success">Client saved: ` + template.HTMLEscapeString(c.Name) + `</div>`).
		Write(w)
}

type clientRow struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	Company       string
	TotalInvoiced string
	TotalPaid     string
}

// handleClientList renders the client listing partial, narrowed by the q
// free-text search.
func (s *Server) handleClientList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	q := sanitizeInput(r.URL.Query().Get("q"))

	if q == "" {
		if cached, ok := s.partialCache.Get(store.Clients); ok {
			_, _ = w.Write(cached)
			return
		}
	}

	clients := core.FilterText(s.ledger.Clients(r.Context()), q, core.Client.SearchFields)

	rows := make([]clientRow, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, clientRow{
			ID:            c.ID,
			Name:          c.Name,
			Email:         c.Email,
			Phone:         c.Phone,
			Company:       c.Company,
			TotalInvoiced: formatUSD(c.TotalInvoiced),
			TotalPaid:     formatUSD(c.TotalPaid),
		})
	}
	data := struct {
		Rows  []clientRow
		Query string
	}{Rows: rows, Query: q}

	if q != "" {
		s.renderPage(w, r, "client_list.html", data)
		return
	}

	var buf bytes.Buffer
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	if err := s.templates.ExecuteTemplate(&buf, "client_list.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution failed",
			"error", err, "template", "client_list.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.partialCache.Set(store.Clients, buf.Bytes())
	_, _ = w.Write(buf.Bytes())
}

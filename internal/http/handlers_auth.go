package http

import (
	"log/slog"
	"net/http"

	"freebooks/internal/session"
)

// handleSignIn renders the sign-in form on GET and stores the profile
// cookie on POST. There is no password: the session only personalizes
// the UI.
func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		if resp := ParseFormOrFail(r); resp != nil {
			resp.Write(w)
			return
		}

		sess := session.Session{
			Email:        formValue(r, "email"),
			Name:         formValue(r, "name"),
			BusinessName: formValue(r, "business_name"),
		}
		if sess.Email == "" {
			UnprocessableEntityError("Email is required").Write(w)
			return
		}
		if err := session.Write(w, sess); err != nil {
			slog.ErrorContext(r.Context(), "Session write failed", "error", err)
			InternalServerError("Could not start the session").Write(w)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if _, ok := currentSession(r); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.renderPage(w, r, "signin.html", struct{ Active string }{Active: "signin"})
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	session.Clear(w)
	http.Redirect(w, r, "/signin", http.StatusSeeOther)
}

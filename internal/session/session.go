// Package session keeps the signed-in business profile in a browser cookie.
//
// The cookie is a convenience for the UI only. It carries no credential and
// grants nothing; every page renders the same data regardless of who is
// signed in.
package session

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

const cookieName = "freebooks_session"

// ErrNoSession is returned when the request carries no readable session.
var ErrNoSession = errors.New("no session")

// Session is the profile shown in the navigation bar.
type Session struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	BusinessName string `json:"businessName"`
}

// Write sets the session cookie on w.
func Write(w http.ResponseWriter, s Session) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    base64.URLEncoding.EncodeToString(payload),
		Path:     "/",
		MaxAge:   int((30 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Read extracts the session from the request cookie. A missing or
// undecodable cookie yields ErrNoSession.
func Read(r *http.Request) (Session, error) {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return Session{}, ErrNoSession
	}
	payload, err := base64.URLEncoding.DecodeString(c.Value)
	if err != nil {
		return Session{}, ErrNoSession
	}
	var s Session
	if err := json.Unmarshal(payload, &s); err != nil {
		return Session{}, ErrNoSession
	}
	if s.Email == "" {
		return Session{}, ErrNoSession
	}
	return s, nil
}

// Clear expires the session cookie.
func Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

package http

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"freebooks/internal/session"
)

// clientIP extracts the caller address, preferring proxy headers.
func clientIP(r *http.Request) string {
	ip := r.Header.Get("X-Forwarded-For")
	if ip == "" {
		ip = r.Header.Get("X-Real-IP")
	}
	if ip == "" {
		ip = r.RemoteAddr
	}
	if i := strings.IndexByte(ip, ','); i >= 0 {
		ip = strings.TrimSpace(ip[:i])
	}
	return ip
}

// formatUSD renders an amount as dollars with two decimals (e.g. "$1,234.50").
func formatUSD(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%.2f", v)
	dot := strings.IndexByte(s, '.')
	whole, frac := s[:dot], s[dot:]
	var b strings.Builder
	for i, d := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	out := "$" + b.String() + frac
	if neg {
		return "-" + out
	}
	return out
}

// formatNumber renders a float without trailing zeros.
func formatNumber(v float64) string {
	return fmt.Sprintf("%g", v)
}

// currentSession reads the UI session, reporting whether one is present.
func currentSession(r *http.Request) (session.Session, bool) {
	sess, err := session.Read(r)
	return sess, err == nil
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

func writeMetric(w io.Writer, name string, value int64) {
	fmt.Fprintf(w, "%s %d\n", name, value)
}

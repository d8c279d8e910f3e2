// Package core holds the business record types and the pure functions that
// derive display values from them.
//
// This file contains strict parsing of user-supplied numeric and date input.
// Malformed input is rejected with an error, never coerced to zero or NaN.
package core

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used by all persisted date fields.
const DateLayout = "2006-01-02"

// ParseAmount converts a decimal string to a non-negative amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. Signs,
// exponents, thousands separators and any non-digit noise are rejected.
//
// Examples:
//
//	ParseAmount("52.99") -> 52.99, nil
//	ParseAmount("52,99") -> 52.99, nil
//	ParseAmount("0")     -> 0, nil
//	ParseAmount("-1")    -> 0, ErrInvalidAmount
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		// Only unsigned values allowed
		return 0, ErrInvalidAmount
	}
	dots := 0
	for _, r := range s {
		if r == '.' {
			dots++
			continue
		}
		if r < '0' || r > '9' {
			return 0, ErrInvalidAmount
		}
	}
	if dots > 1 {
		return 0, ErrInvalidAmount
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// ParseDate validates a YYYY-MM-DD string and returns its calendar value.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Today returns now formatted as a persisted date string.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

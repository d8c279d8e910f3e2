package core

import "strings"

// FilterAll is the sentinel categorical value that matches every record.
const FilterAll = "all"

// SearchFields returns the fields a free-text search matches against.
// The sets are fixed per record kind.
func (c Client) SearchFields() []string {
	return []string{c.Name, c.Email, c.Company}
}

func (inv Invoice) SearchFields() []string {
	return []string{inv.ClientName, inv.InvoiceNumber}
}

func (e Expense) SearchFields() []string {
	return []string{e.Description, e.Vendor}
}

// FilterText narrows records to those where any search field contains term,
// case-insensitively. An empty term matches everything; input order is
// preserved.
func FilterText[T any](records []T, term string, fields func(T) []string) []T {
	term = strings.TrimSpace(term)
	if term == "" {
		return records
	}
	term = strings.ToLower(term)
	out := make([]T, 0, len(records))
	for _, r := range records {
		for _, f := range fields(r) {
			if strings.Contains(strings.ToLower(f), term) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// FilterExact narrows records to those whose categorical field equals
// selected. The sentinel FilterAll (or an empty selection) matches every
// record.
func FilterExact[T any](records []T, selected string, field func(T) string) []T {
	if selected == "" || selected == FilterAll {
		return records
	}
	out := make([]T, 0, len(records))
	for _, r := range records {
		if field(r) == selected {
			out = append(out, r)
		}
	}
	return out
}

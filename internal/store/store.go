// Package store defines the persistence port for named record collections
// and a typed view over it.
//
// A collection is persisted wholesale as one JSON document. There is no
// partial write, no merge and no transaction spanning collections; the
// assumed access pattern is a single active writer.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Collection names. Their payload shapes are part of the external data
// contract and must stay readable against previously persisted state.
const (
	Clients  = "clients"
	Invoices = "invoices"
	Expenses = "expenses"
)

// Store persists whole named collections as JSON documents.
type Store interface {
	// Load returns the persisted payload for the named collection, or a
	// nil payload when nothing has been written yet.
	Load(ctx context.Context, collection string) ([]byte, error)

	// Replace overwrites the named collection with payload.
	Replace(ctx context.Context, collection string, payload []byte) error
}

// Collection is a typed view of one named collection.
//
// Load degrades every failure mode to an empty sequence: a never-written
// collection, an unparseable payload and a backend read error all yield no
// records and a warn log, never an error. Writes keep their error.
type Collection[T any] struct {
	store Store
	name  string
}

func NewCollection[T any](s Store, name string) Collection[T] {
	return Collection[T]{store: s, name: name}
}

func (c Collection[T]) Name() string { return c.name }

// Load returns all records in persisted order.
func (c Collection[T]) Load(ctx context.Context) []T {
	payload, err := c.store.Load(ctx, c.name)
	if err != nil {
		slog.WarnContext(ctx, "Collection load failed, treating as empty",
			"collection", c.name, "error", err)
		return nil
	}
	if len(payload) == 0 {
		return nil
	}
	var records []T
	if err := json.Unmarshal(payload, &records); err != nil {
		slog.WarnContext(ctx, "Collection payload unparseable, treating as empty",
			"collection", c.name, "error", err)
		return nil
	}
	return records
}

// Replace persists records as the full new content of the collection.
func (c Collection[T]) Replace(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", c.name, err)
	}
	if err := c.store.Replace(ctx, c.name, payload); err != nil {
		return fmt.Errorf("replace %s: %w", c.name, err)
	}
	return nil
}

// Append loads the collection, appends rec and persists the result.
func (c Collection[T]) Append(ctx context.Context, rec T) error {
	records := c.Load(ctx)
	return c.Replace(ctx, append(records, rec))
}

// Package memory is the default in-process store backend. State lives for
// the lifetime of the process; an optional seed directory provides initial
// collection payloads.
package memory

import (
	"context"
	"os"
	"path/filepath"
	"sync"
)

type Store struct {
	mu          sync.Mutex
	collections map[string][]byte
}

func New() *Store {
	return &Store{collections: make(map[string][]byte)}
}

// NewFromDir seeds collections from <dir>/<collection>.json files. Missing
// or unreadable files simply leave the collection empty.
func NewFromDir(dir string, names ...string) *Store {
	s := New()
	for _, name := range names {
		payload, err := os.ReadFile(filepath.Join(dir, name+".json"))
		if err != nil {
			continue
		}
		s.collections[name] = payload
	}
	return s
}

func (s *Store) Load(_ context.Context, collection string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, ok := s.collections[collection]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, nil
}

func (s *Store) Replace(_ context.Context, collection string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(payload))
	copy(stored, payload)
	s.collections[collection] = stored
	return nil
}

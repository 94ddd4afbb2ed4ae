// Package memoryengine implements an in-memory backend for the reservation
// ledger, for isolated tests and throwaway embedding. Nothing survives the
// process.
package memoryengine

import (
	"context"
	"sync"

	"github.com/hotelops/reservation-ledger-go/ledger"
)

// Store is a ledger.Backend holding one store mapping in memory. Load and
// Save copy the mapping, so callers never share state with the Store.
//
// FailLoad and FailSave inject failures for exercising the partial-failure
// windows of the cross-store protocol in tests.
type Store struct {
	mu       sync.Mutex
	docs     ledger.Documents
	failLoad error
	failSave error
}

// NewStore creates an empty in-memory Store.
func NewStore() *Store {
	return &Store{docs: ledger.Documents{}}
}

// Load returns a copy of the current mapping, or the injected load failure.
func (s *Store) Load(_ context.Context) (ledger.Documents, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failLoad != nil {
		return nil, false, s.failLoad
	}

	return copyDocuments(s.docs), false, nil
}

// Save replaces the current mapping with a copy of the given one, or
// returns the injected save failure without modifying anything.
func (s *Store) Save(_ context.Context, docs ledger.Documents) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failSave != nil {
		return s.failSave
	}

	s.docs = copyDocuments(docs)

	return nil
}

// FailLoad makes every following Load return the given error; nil restores
// normal behavior.
func (s *Store) FailLoad(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failLoad = err
}

// FailSave makes every following Save return the given error; nil restores
// normal behavior.
func (s *Store) FailSave(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSave = err
}

func copyDocuments(docs ledger.Documents) ledger.Documents {
	copied := make(ledger.Documents, len(docs))

	for key, doc := range docs {
		duplicate := make([]byte, len(doc))
		copy(duplicate, doc)
		copied[key] = duplicate
	}

	return copied
}

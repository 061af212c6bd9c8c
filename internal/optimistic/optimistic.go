package optimistic

import (
	"context"
	"sync"
)

// Store holds a piece of view state that mutates optimistically: the local
// copy changes first, the backend is told second, and a rejection restores
// the exact pre-mutation snapshot. The same engine drives cart lines, the
// spice availability toggle, and the admin order status dropdown.
type Store[S any] struct {
	mu    sync.RWMutex
	state S
	clone func(S) S

	// mutateMu serializes mutations so a rollback can never clobber a later
	// mutation's provisional state. Reads stay concurrent.
	mutateMu sync.Mutex
}

// NewStore builds a store. clone must deep-copy S; pass nil when S is a
// value type with no shared references.
func NewStore[S any](initial S, clone func(S) S) *Store[S] {
	if clone == nil {
		clone = func(s S) S { return s }
	}
	return &Store[S]{state: clone(initial), clone: clone}
}

// Get returns the current (possibly provisional) state.
func (s *Store[S]) Get() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clone(s.state)
}

// Set replaces the state with an authoritative value, e.g. a fresh fetch.
func (s *Store[S]) Set(state S) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.clone(state)
}

// Mutate runs one optimistic mutation:
//
//  1. snapshot the current state
//  2. apply the local change and publish it immediately
//  3. run commit against the backend
//  4. on commit failure, restore the snapshot and return the error
//
// When commit succeeds and reconcile is non-nil, its result replaces the
// provisional state with the server's authoritative view.
func (s *Store[S]) Mutate(
	ctx context.Context,
	apply func(S) S,
	commit func(context.Context) error,
	reconcile func(context.Context) (S, error),
) error {
	s.mutateMu.Lock()
	defer s.mutateMu.Unlock()

	s.mu.Lock()
	snapshot := s.clone(s.state)
	s.state = apply(s.clone(s.state))
	s.mu.Unlock()

	if err := commit(ctx); err != nil {
		s.mu.Lock()
		s.state = snapshot
		s.mu.Unlock()
		return err
	}

	if reconcile != nil {
		authoritative, err := reconcile(ctx)
		if err != nil {
			// The mutation is already committed server-side; keep the
			// provisional state rather than lying with the old snapshot.
			return err
		}
		s.Set(authoritative)
	}
	return nil
}

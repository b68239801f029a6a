package memory

import (
	"context"
	"sync"

	"github.com/aretw0/palisade/pkg/domain"
	"github.com/aretw0/palisade/pkg/ports"
)

// Store implements ports.OutcomeStore in memory, newest first per
// transition.
type Store struct {
	mu       sync.RWMutex
	outcomes map[string][]domain.Outcome
}

// NewStore creates an empty in-memory outcome store.
func NewStore() *Store {
	return &Store{outcomes: make(map[string][]domain.Outcome)}
}

// Save persists one outcome.
func (s *Store) Save(_ context.Context, outcome *domain.Outcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Prepend so Recent is a straight slice.
	existing := s.outcomes[outcome.TransitionID]
	s.outcomes[outcome.TransitionID] = append([]domain.Outcome{*outcome}, existing...)
	return nil
}

// Recent returns up to limit outcomes for a transition, newest first.
func (s *Store) Recent(_ context.Context, transitionID string, limit int) ([]domain.Outcome, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.outcomes[transitionID]
	if limit <= 0 || limit > len(stored) {
		limit = len(stored)
	}
	out := make([]domain.Outcome, limit)
	copy(out, stored[:limit])
	return out, nil
}

var _ ports.OutcomeStore = (*Store)(nil)

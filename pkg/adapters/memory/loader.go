// Package memory provides in-memory implementations of the gate ports,
// used by tests, demos, and embedded hosts that supply definitions directly.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/palisade/pkg/domain"
	"github.com/aretw0/palisade/pkg/ports"
)

// Loader implements ports.DefinitionLoader using in-memory maps.
type Loader struct {
	mu          sync.RWMutex
	transitions map[string]*domain.TransitionDefinition
	items       map[string]*domain.Item
}

// NewLoader creates an empty in-memory loader.
func NewLoader() *Loader {
	return &Loader{
		transitions: make(map[string]*domain.TransitionDefinition),
		items:       make(map[string]*domain.Item),
	}
}

// NewFromDefinitions creates a loader pre-seeded with definitions.
// This handles registration automatically, improving DX for tests.
func NewFromDefinitions(defs ...domain.TransitionDefinition) (*Loader, error) {
	l := NewLoader()
	for _, def := range defs {
		if def.ID == "" {
			return nil, fmt.Errorf("transition definition missing ID")
		}
		l.AddTransition(def)
	}
	return l, nil
}

// AddTransition registers (or replaces) a transition definition.
func (l *Loader) AddTransition(def domain.TransitionDefinition) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.transitions[def.ID] = &def
}

// AddItem registers (or replaces) an item by its ID.
func (l *Loader) AddItem(item domain.Item) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items[item.ID] = &item
}

// GetTransition retrieves a transition definition by ID.
func (l *Loader) GetTransition(_ context.Context, id string) (*domain.TransitionDefinition, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	def, ok := l.transitions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDefinitionNotFound, id)
	}
	copied := *def
	return &copied, nil
}

// GetItem retrieves an item by ID.
func (l *Loader) GetItem(_ context.Context, id string) (*domain.Item, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	item, ok := l.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
	}
	copied := *item
	return &copied, nil
}

// ListTransitions returns all transition IDs in deterministic order.
func (l *Loader) ListTransitions(_ context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ids := make([]string, 0, len(l.transitions))
	for id := range l.transitions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

var _ ports.DefinitionLoader = (*Loader)(nil)

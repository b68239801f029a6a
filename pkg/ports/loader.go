package ports

import (
	"context"

	"github.com/aretw0/palisade/pkg/domain"
)

// DefinitionLoader defines how the gate retrieves transition definitions and
// items. This decouples the storage layer (Loam, YAML files, Memory) from the
// gating core.
type DefinitionLoader interface {
	// GetTransition retrieves a transition definition by ID. Returns
	// domain.ErrDefinitionNotFound if the ID is unknown.
	GetTransition(ctx context.Context, id string) (*domain.TransitionDefinition, error)

	// GetItem retrieves an item by ID. Returns domain.ErrItemNotFound if the
	// ID is unknown.
	GetItem(ctx context.Context, id string) (*domain.Item, error)

	// ListTransitions returns the IDs of all known transition definitions.
	// Used by the HTTP adapter and CLI for discovery.
	ListTransitions(ctx context.Context) ([]string, error)
}

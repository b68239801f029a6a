package ports

import (
	"context"

	"github.com/aretw0/palisade/pkg/domain"
)

// OutcomeStore persists gate outcomes for audit and inspection. The gating
// core itself never persists anything; the store is an optional adapter
// wired at the facade.
type OutcomeStore interface {
	// Save persists one outcome under its transition ID.
	Save(ctx context.Context, outcome *domain.Outcome) error

	// Recent returns up to limit outcomes for a transition, newest first.
	Recent(ctx context.Context, transitionID string, limit int) ([]domain.Outcome, error)
}

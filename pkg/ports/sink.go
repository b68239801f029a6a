package ports

import (
	"context"

	"github.com/aretw0/palisade/pkg/domain"
)

// ReportSink receives the report payload when a transition is blocked. An
// interactive host wires a modal/TUI sink; a headless host wires none and
// relies on the message text attached to the outcome. The sink is an
// explicit capability rather than an ambient "is the UI active" flag.
type ReportSink interface {
	// Publish hands the block report to the surface. Errors are logged by
	// the gate but never change the gating decision.
	Publish(ctx context.Context, report *domain.Report) error
}

package ports

import (
	"context"

	"github.com/aretw0/palisade/pkg/domain"
)

// Validator is one unit of validation work, possibly asynchronous. The gate
// only ever observes snapshots of Evaluating/Result; how a validator computes
// its result is opaque.
type Validator interface {
	// Name identifies the validator in reports and audit records.
	Name() string

	// Evaluating reports whether the validator is still working. While true,
	// Result is meaningless.
	Evaluating() bool

	// Result returns the settled severity. Only valid once Evaluating is
	// false.
	Result() domain.Severity
}

// ValidatorProvider is the trigger collaborator: it builds the validator set
// for one transition attempt and advances pending validators on refresh.
type ValidatorProvider interface {
	// Build triggers validation of item in the given mode and returns the
	// set to poll. An empty set means there is nothing to gate on.
	Build(ctx context.Context, mode string, item domain.Item) ([]Validator, error)

	// Refresh lets pending validators advance their state by one step. The
	// poller calls it between scan rounds; there is no completion callback.
	Refresh(ctx context.Context, validators []Validator) error
}

// Snapshot captures the current state of a validator set for reports and
// audit records.
func Snapshot(validators []Validator) []domain.ValidatorState {
	states := make([]domain.ValidatorState, 0, len(validators))
	for _, v := range validators {
		state := domain.ValidatorState{
			Name:       v.Name(),
			Evaluating: v.Evaluating(),
		}
		if !state.Evaluating {
			state.Result = v.Result()
		}
		states = append(states, state)
	}
	return states
}

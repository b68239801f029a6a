package domain

import "time"

// Action is the signal the surrounding workflow pipeline consumes.
type Action string

const (
	// ActionProceed lets the transition continue. No report is produced.
	ActionProceed Action = "proceed"
	// ActionBlock aborts the transition with a user-facing message.
	ActionBlock Action = "block"
	// ActionAbortTimeout aborts the transition because validators never
	// settled within the deadline.
	ActionAbortTimeout Action = "abort_timeout"
)

// Outcome is the result of one gate check. It is attached to the transition
// attempt and, when an outcome store is configured, persisted for audit.
type Outcome struct {
	// ID is a unique identifier for this check (audit key).
	ID string `json:"id"`

	TransitionID string `json:"transition_id"`
	Item         Item   `json:"item"`

	Action Action `json:"action"`

	// Verdict is the aggregated severity. It is only meaningful when
	// Settled is true; on timeout the verdict is indeterminate.
	Verdict Severity `json:"verdict"`
	Settled bool     `json:"settled"`

	// Threshold is the resolved maximum tolerated severity. Skipped marks
	// the "Unknown" escape hatch, where no validation ran at all.
	Threshold Severity `json:"threshold"`
	Skipped   bool     `json:"skipped,omitempty"`

	// Message is the author-configured text shown to the user on block or
	// timeout. Empty on proceed.
	Message string `json:"message,omitempty"`

	Validators []ValidatorState `json:"validators,omitempty"`

	Rounds    int           `json:"rounds"`
	Elapsed   time.Duration `json:"elapsed"`
	CheckedAt time.Time     `json:"checked_at"`
}

// Allowed reports whether the pipeline may continue with the transition.
func (o *Outcome) Allowed() bool {
	return o.Action == ActionProceed
}

package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventPollRound EventType = "poll_round"
	EventVerdict   EventType = "verdict"
	EventTimeout   EventType = "timeout"
	EventBlock     EventType = "block"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp    time.Time `json:"timestamp"`
	Type         EventType `json:"type"`
	TransitionID string    `json:"transition_id,omitempty"`
}

// PollEvent fires once per unsettled poll round, before the sleep.
type PollEvent struct {
	EventBase
	Round int `json:"round"`
	// Evaluating is the name of the validator that short-circuited the
	// round as unsettled.
	Evaluating string `json:"evaluating,omitempty"`
}

// VerdictEvent fires when all validators have settled.
type VerdictEvent struct {
	EventBase
	Verdict Severity `json:"verdict"`
	Rounds  int      `json:"rounds"`
}

// TimeoutEvent fires when the poll deadline elapses.
type TimeoutEvent struct {
	EventBase
	Rounds    int `json:"rounds"`
	TimeoutMs int `json:"timeout_ms"`
}

// BlockEvent fires when a verdict exceeds the threshold.
type BlockEvent struct {
	EventBase
	Verdict   Severity `json:"verdict"`
	Threshold Severity `json:"threshold"`
	Message   string   `json:"message,omitempty"`
}

// LifecycleHooks defines callbacks for gate observability. Nil callbacks are
// skipped.
type LifecycleHooks struct {
	OnPollRound func(context.Context, *PollEvent)
	OnVerdict   func(context.Context, *VerdictEvent)
	OnTimeout   func(context.Context, *TimeoutEvent)
	OnBlock     func(context.Context, *BlockEvent)
}

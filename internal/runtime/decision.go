package runtime

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/palisade/pkg/domain"
	"github.com/aretw0/palisade/pkg/ports"
)

// Decider turns a settled verdict (or a timeout) into the outcome the
// pipeline consumes. The report sink is an explicit capability: an
// interactive host wires one, a headless host leaves it nil and relies on
// the message attached to the outcome.
type Decider struct {
	Sink   ports.ReportSink
	Logger *slog.Logger
	Hooks  domain.LifecycleHooks
}

func (d *Decider) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Decide compares verdict against the threshold and produces the outcome.
// A verdict at or below the threshold proceeds silently; anything worse
// blocks with the author-configured message for that severity level and, if
// a sink is present, a full report payload.
func (d *Decider) Decide(ctx context.Context, def *domain.TransitionDefinition, item domain.Item, verdict domain.Severity, threshold Threshold, states []domain.ValidatorState) *domain.Outcome {
	outcome := &domain.Outcome{
		TransitionID: def.ID,
		Item:         item,
		Verdict:      verdict,
		Settled:      true,
		Threshold:    threshold.Max,
		Validators:   states,
	}

	if !verdict.Exceeds(threshold.Max) {
		outcome.Action = domain.ActionProceed
		return outcome
	}

	outcome.Action = domain.ActionBlock
	outcome.Message = ResolvePlaceholders(def.MessageFor(verdict), item)
	d.fireBlock(ctx, def.ID, verdict, threshold.Max, outcome.Message)

	if d.Sink != nil {
		report := &domain.Report{
			Title:      ResolvePlaceholders(def.ReportTitle, item),
			Help:       ResolvePlaceholders(def.ReportHelp, item),
			Item:       item,
			Verdict:    verdict,
			Message:    outcome.Message,
			Validators: states,
		}
		if err := d.Sink.Publish(ctx, report); err != nil {
			// The sink is presentation only; a failed publish must not
			// change the gating decision.
			d.logger().Warn("report sink publish failed", "transition", def.ID, "err", err)
		}
	}

	return outcome
}

// DecideTimeout produces the abort outcome for a check whose validators
// never settled. The user sees the definition's timeout text, never internal
// error detail.
func (d *Decider) DecideTimeout(ctx context.Context, def *domain.TransitionDefinition, item domain.Item, threshold Threshold, states []domain.ValidatorState) *domain.Outcome {
	return &domain.Outcome{
		TransitionID: def.ID,
		Item:         item,
		Action:       domain.ActionAbortTimeout,
		Settled:      false,
		Threshold:    threshold.Max,
		Message:      ResolvePlaceholders(def.TimeoutText, item),
		Validators:   states,
	}
}

// DecideSkip produces the proceed outcome for the threshold escape hatch,
// where validation is bypassed entirely.
func (d *Decider) DecideSkip(def *domain.TransitionDefinition, item domain.Item) *domain.Outcome {
	return &domain.Outcome{
		TransitionID: def.ID,
		Item:         item,
		Action:       domain.ActionProceed,
		Settled:      true,
		Skipped:      true,
	}
}

func (d *Decider) fireBlock(ctx context.Context, transitionID string, verdict, threshold domain.Severity, message string) {
	if d.Hooks.OnBlock == nil {
		return
	}
	d.Hooks.OnBlock(ctx, &domain.BlockEvent{
		EventBase: domain.EventBase{
			Timestamp:    time.Now(),
			Type:         domain.EventBlock,
			TransitionID: transitionID,
		},
		Verdict:   verdict,
		Threshold: threshold,
		Message:   message,
	})
}

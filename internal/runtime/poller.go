package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/palisade/pkg/domain"
	"github.com/aretw0/palisade/pkg/ports"
)

// RefreshFunc advances pending validators one step between scan rounds.
type RefreshFunc func(ctx context.Context) error

// Poller runs the synchronous sample/aggregate loop over a validator set.
// It blocks the calling goroutine for up to TimeoutMs (plus one sleep, see
// Poll) in SleepMs increments; there is no event-driven completion signal,
// the only way to observe progress is to refresh and rescan.
type Poller struct {
	sleeper Sleeper
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithSleeper replaces the real timer-backed sleeper (used by tests).
func WithSleeper(s Sleeper) PollerOption {
	return func(p *Poller) {
		if s != nil {
			p.sleeper = s
		}
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) PollerOption {
	return func(p *Poller) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) PollerOption {
	return func(p *Poller) {
		p.hooks = hooks
	}
}

// NewPoller creates a poller with a real sleeper and a discard logger.
func NewPoller(opts ...PollerOption) *Poller {
	p := &Poller{
		sleeper: TimerSleeper{},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Poll repeatedly samples the validator set until every validator has
// settled, then returns the worst severity among them together with the
// number of unsettled rounds it waited through.
//
// An empty set returns SeverityValid immediately. If the set never settles,
// Poll returns domain.ErrTimeoutExceeded once rounds*SleepMs exceeds
// TimeoutMs — strictly exceeds, which makes the worst-case wait
// TimeoutMs+SleepMs. That boundary is long-standing observable behavior;
// keep it when touching this loop.
func (p *Poller) Poll(ctx context.Context, transitionID string, validators []ports.Validator, cfg PollConfig, refresh RefreshFunc) (domain.Severity, int, error) {
	if len(validators) == 0 {
		return domain.SeverityValid, 0, nil
	}

	rounds := 0
	for {
		pending, settled := scan(validators)
		if pending == "" {
			p.fireVerdict(ctx, transitionID, settled, rounds)
			return settled, rounds, nil
		}

		rounds++
		p.firePollRound(ctx, transitionID, rounds, pending)

		if rounds*cfg.SleepMs > cfg.TimeoutMs {
			p.fireTimeout(ctx, transitionID, rounds, cfg.TimeoutMs)
			p.logger.Warn("validation timed out",
				"transition", transitionID,
				"rounds", rounds,
				"timeout_ms", cfg.TimeoutMs,
				"pending", pending)
			return domain.SeverityValid, rounds, fmt.Errorf("transition %s: %w", transitionID, domain.ErrTimeoutExceeded)
		}

		if err := p.sleeper.Sleep(ctx, time.Duration(cfg.SleepMs)*time.Millisecond); err != nil {
			return domain.SeverityValid, rounds, err
		}
		if refresh != nil {
			if err := refresh(ctx); err != nil {
				return domain.SeverityValid, rounds, fmt.Errorf("refreshing validators: %w", err)
			}
		}
	}
}

// scan walks the set in order. It returns the name of the first validator
// still evaluating (short-circuit, the rest of the round is irrelevant), or
// the maximum settled severity when none is pending. Severity order decides
// the verdict; document order only matters for the early exit.
func scan(validators []ports.Validator) (pending string, verdict domain.Severity) {
	for _, v := range validators {
		if v.Evaluating() {
			return v.Name(), domain.SeverityValid
		}
	}
	for _, v := range validators {
		verdict = domain.Max(verdict, v.Result())
	}
	return "", verdict
}

func (p *Poller) firePollRound(ctx context.Context, transitionID string, round int, pending string) {
	if p.hooks.OnPollRound == nil {
		return
	}
	p.hooks.OnPollRound(ctx, &domain.PollEvent{
		EventBase:  eventBase(domain.EventPollRound, transitionID),
		Round:      round,
		Evaluating: pending,
	})
}

func (p *Poller) fireVerdict(ctx context.Context, transitionID string, verdict domain.Severity, rounds int) {
	if p.hooks.OnVerdict == nil {
		return
	}
	p.hooks.OnVerdict(ctx, &domain.VerdictEvent{
		EventBase: eventBase(domain.EventVerdict, transitionID),
		Verdict:   verdict,
		Rounds:    rounds,
	})
}

func (p *Poller) fireTimeout(ctx context.Context, transitionID string, rounds, timeoutMs int) {
	if p.hooks.OnTimeout == nil {
		return
	}
	p.hooks.OnTimeout(ctx, &domain.TimeoutEvent{
		EventBase: eventBase(domain.EventTimeout, transitionID),
		Rounds:    rounds,
		TimeoutMs: timeoutMs,
	})
}

func eventBase(t domain.EventType, transitionID string) domain.EventBase {
	return domain.EventBase{
		Timestamp:    time.Now(),
		Type:         t,
		TransitionID: transitionID,
	}
}

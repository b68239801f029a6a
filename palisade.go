package palisade

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/palisade/internal/runtime"
	"github.com/aretw0/palisade/pkg/domain"
	"github.com/aretw0/palisade/pkg/observability"
	"github.com/aretw0/palisade/pkg/ports"
)

// Gate is the high-level entry point for the Palisade library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Gate struct {
	provider ports.ValidatorProvider
	poller   *runtime.Poller
	decider  *runtime.Decider
	store    ports.OutcomeStore
	metrics  *observability.Metrics
	hooks    domain.LifecycleHooks
	sleeper  runtime.Sleeper
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Gate.
type Option func(*Gate)

// WithLogger sets a custom structured logger for the gate.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) {
		g.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(g *Gate) {
		g.hooks = hooks
	}
}

// WithReportSink injects the surface that renders block reports (e.g. an
// interactive modal). Without one, the message text on the outcome is the
// only user-facing signal.
func WithReportSink(sink ports.ReportSink) Option {
	return func(g *Gate) {
		if sink != nil {
			g.decider.Sink = sink
		}
	}
}

// WithOutcomeStore enables outcome auditing.
func WithOutcomeStore(store ports.OutcomeStore) Option {
	return func(g *Gate) {
		g.store = store
	}
}

// WithMetrics wires prometheus collectors for checks.
func WithMetrics(m *observability.Metrics) Option {
	return func(g *Gate) {
		g.metrics = m
	}
}

// WithSleeper replaces the inter-round delay implementation (tests).
func WithSleeper(s runtime.Sleeper) Option {
	return func(g *Gate) {
		if s != nil {
			g.sleeper = s
		}
	}
}

// New initializes a new Gate around a validator provider.
func New(provider ports.ValidatorProvider, opts ...Option) (*Gate, error) {
	if provider == nil {
		return nil, fmt.Errorf("validator provider is required")
	}

	g := &Gate{
		provider: provider,
		decider:  &runtime.Decider{},
		sleeper:  runtime.TimerSleeper{},
	}

	for _, opt := range opts {
		opt(g)
	}

	// Ensure logger is initialized (so downstream components never see nil).
	if g.logger == nil {
		g.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	g.decider.Logger = g.logger
	g.decider.Hooks = g.hooks

	g.poller = runtime.NewPoller(
		runtime.WithLogger(g.logger),
		runtime.WithLifecycleHooks(g.hooks),
		runtime.WithSleeper(g.sleeper),
	)

	return g, nil
}

// Check runs one gate check: resolve the threshold, trigger the validators,
// poll until they settle (or the deadline elapses), and decide the action.
//
// The returned error is reserved for configuration and infrastructure
// failures (unparsable threshold, provider errors, context cancellation).
// Blocks and timeouts are not errors; they come back as the outcome's
// Action, with the author-configured message attached.
func (g *Gate) Check(ctx context.Context, def *domain.TransitionDefinition, item domain.Item) (*domain.Outcome, error) {
	if def == nil {
		return nil, fmt.Errorf("transition definition is required")
	}

	startedAt := time.Now()

	threshold, err := runtime.ResolveThreshold(def, item)
	if err != nil {
		return nil, err
	}

	var outcome *domain.Outcome
	if threshold.Skip {
		g.logger.Info("gating disabled for transition", "transition", def.ID)
		outcome = g.decider.DecideSkip(def, item)
	} else {
		outcome, err = g.run(ctx, def, item, threshold)
		if err != nil {
			return nil, err
		}
	}

	g.finalize(ctx, outcome, startedAt)
	return outcome, nil
}

func (g *Gate) run(ctx context.Context, def *domain.TransitionDefinition, item domain.Item, threshold runtime.Threshold) (*domain.Outcome, error) {
	validators, err := g.provider.Build(ctx, def.ValidationMode(), item)
	if err != nil {
		return nil, fmt.Errorf("building validators for transition %s: %w", def.ID, err)
	}

	cfg := runtime.ResolvePollConfig(def, g.logger)
	refresh := func(ctx context.Context) error {
		return g.provider.Refresh(ctx, validators)
	}

	verdict, rounds, err := g.poller.Poll(ctx, def.ID, validators, cfg, refresh)
	states := ports.Snapshot(validators)

	var outcome *domain.Outcome
	switch {
	case err == nil:
		outcome = g.decider.Decide(ctx, def, item, verdict, threshold, states)
	case isTimeout(err):
		outcome = g.decider.DecideTimeout(ctx, def, item, threshold, states)
	default:
		return nil, err
	}

	outcome.Rounds = rounds
	return outcome, nil
}

// finalize stamps identity and timing on the outcome, then records it.
func (g *Gate) finalize(ctx context.Context, outcome *domain.Outcome, startedAt time.Time) {
	outcome.ID = uuid.NewString()
	outcome.CheckedAt = startedAt.UTC()
	outcome.Elapsed = time.Since(startedAt)

	g.metrics.ObserveOutcome(outcome)

	if g.store != nil {
		if err := g.store.Save(ctx, outcome); err != nil {
			// Auditing is best effort; the decision already stands.
			g.logger.Warn("failed to persist gate outcome", "transition", outcome.TransitionID, "err", err)
		}
	}

	g.logger.Info("gate check finished",
		"transition", outcome.TransitionID,
		"item", outcome.Item.Path,
		"action", outcome.Action,
		"verdict", outcome.Verdict.String(),
		"rounds", outcome.Rounds)
}

func isTimeout(err error) bool {
	return errors.Is(err, domain.ErrTimeoutExceeded)
}

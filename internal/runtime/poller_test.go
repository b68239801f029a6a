package runtime_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/palisade/internal/runtime"
	"github.com/aretw0/palisade/pkg/domain"
	"github.com/aretw0/palisade/pkg/ports"
)

// fakeValidator settles after a fixed number of refreshes.
type fakeValidator struct {
	name        string
	result      domain.Severity
	settleAfter int
	refreshes   int

	evaluatingCalls int
}

func (f *fakeValidator) Name() string { return f.name }

func (f *fakeValidator) Evaluating() bool {
	f.evaluatingCalls++
	return f.refreshes < f.settleAfter
}

func (f *fakeValidator) Result() domain.Severity { return f.result }

func (f *fakeValidator) refresh() { f.refreshes++ }

// countingSleeper records sleep calls without blocking.
type countingSleeper struct {
	calls     int
	durations []time.Duration
}

func (s *countingSleeper) Sleep(_ context.Context, d time.Duration) error {
	s.calls++
	s.durations = append(s.durations, d)
	return nil
}

func refreshAll(validators []*fakeValidator) runtime.RefreshFunc {
	return func(context.Context) error {
		for _, v := range validators {
			v.refresh()
		}
		return nil
	}
}

func asPorts(validators []*fakeValidator) []ports.Validator {
	out := make([]ports.Validator, len(validators))
	for i, v := range validators {
		out[i] = v
	}
	return out
}

func TestPoller_Poll(t *testing.T) {
	ctx := context.Background()
	cfg := runtime.PollConfig{TimeoutMs: 10000, SleepMs: 500}

	t.Run("Empty Set Is Valid", func(t *testing.T) {
		sleeper := &countingSleeper{}
		poller := runtime.NewPoller(runtime.WithSleeper(sleeper))

		verdict, rounds, err := poller.Poll(ctx, "publish", nil, cfg, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.SeverityValid, verdict)
		assert.Zero(t, rounds)
		assert.Zero(t, sleeper.calls)
	})

	t.Run("All Settled Returns Max Without Sleeping", func(t *testing.T) {
		validators := []*fakeValidator{
			{name: "spell-check", result: domain.SeverityValid},
			{name: "link-check", result: domain.SeverityError},
			{name: "seo-check", result: domain.SeverityWarning},
		}
		sleeper := &countingSleeper{}
		poller := runtime.NewPoller(runtime.WithSleeper(sleeper))

		verdict, rounds, err := poller.Poll(ctx, "publish", asPorts(validators), cfg, refreshAll(validators))
		require.NoError(t, err)
		assert.Equal(t, domain.SeverityError, verdict)
		assert.Zero(t, rounds)
		assert.Zero(t, sleeper.calls)
	})

	t.Run("Pending Validator Forces Sleep And Refresh", func(t *testing.T) {
		validators := []*fakeValidator{
			{name: "spell-check", result: domain.SeverityWarning, settleAfter: 1},
		}
		sleeper := &countingSleeper{}
		poller := runtime.NewPoller(runtime.WithSleeper(sleeper))

		verdict, rounds, err := poller.Poll(ctx, "publish", asPorts(validators), cfg, refreshAll(validators))
		require.NoError(t, err)
		assert.Equal(t, domain.SeverityWarning, verdict)
		assert.Equal(t, 1, rounds)
		assert.Equal(t, 1, sleeper.calls)
		assert.Equal(t, []time.Duration{500 * time.Millisecond}, sleeper.durations)
	})

	t.Run("Pending Validator Short Circuits The Scan", func(t *testing.T) {
		pending := &fakeValidator{name: "slow", settleAfter: 1}
		later := &fakeValidator{name: "fast", result: domain.SeverityFatal}
		sleeper := &countingSleeper{}
		poller := runtime.NewPoller(runtime.WithSleeper(sleeper))

		_, _, err := poller.Poll(ctx, "publish", []ports.Validator{pending, later}, cfg, refreshAll([]*fakeValidator{pending, later}))
		require.NoError(t, err)

		// Round 1 stops at the pending validator; "fast" is only inspected
		// on the settled round.
		assert.Equal(t, 1, later.evaluatingCalls)
	})

	t.Run("Timeout Boundary Is Strictly Greater", func(t *testing.T) {
		// 1000/500: round 1 -> 500 > 1000 false, sleep; round 2 -> 1000 >
		// 1000 false, sleep; round 3 -> 1500 > 1000, timeout. Exactly two
		// sleep/refresh cycles.
		never := &fakeValidator{name: "stuck", settleAfter: 1 << 30}
		sleeper := &countingSleeper{}
		refreshes := 0
		poller := runtime.NewPoller(runtime.WithSleeper(sleeper))

		_, rounds, err := poller.Poll(ctx, "publish", []ports.Validator{never}, runtime.PollConfig{TimeoutMs: 1000, SleepMs: 500}, func(context.Context) error {
			refreshes++
			return nil
		})
		assert.ErrorIs(t, err, domain.ErrTimeoutExceeded)
		assert.Equal(t, 3, rounds)
		assert.Equal(t, 2, sleeper.calls)
		assert.Equal(t, 2, refreshes)
	})

	t.Run("Context Cancellation Aborts The Sleep", func(t *testing.T) {
		never := &fakeValidator{name: "stuck", settleAfter: 1 << 30}
		poller := runtime.NewPoller() // real sleeper

		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, _, err := poller.Poll(canceled, "publish", []ports.Validator{never}, runtime.PollConfig{TimeoutMs: 10000, SleepMs: 500}, nil)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Hooks Fire Per Round And On Verdict", func(t *testing.T) {
		validators := []*fakeValidator{
			{name: "spell-check", result: domain.SeverityError, settleAfter: 2},
		}
		sleeper := &countingSleeper{}

		var pollRounds []int
		var pendingNames []string
		var verdicts []domain.Severity
		hooks := domain.LifecycleHooks{
			OnPollRound: func(_ context.Context, e *domain.PollEvent) {
				pollRounds = append(pollRounds, e.Round)
				pendingNames = append(pendingNames, e.Evaluating)
			},
			OnVerdict: func(_ context.Context, e *domain.VerdictEvent) {
				verdicts = append(verdicts, e.Verdict)
			},
		}
		poller := runtime.NewPoller(runtime.WithSleeper(sleeper), runtime.WithLifecycleHooks(hooks))

		_, _, err := poller.Poll(ctx, "publish", asPorts(validators), cfg, refreshAll(validators))
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, pollRounds)
		assert.Equal(t, []string{"spell-check", "spell-check"}, pendingNames)
		assert.Equal(t, []domain.Severity{domain.SeverityError}, verdicts)
	})

	t.Run("Timeout Hook Carries Config", func(t *testing.T) {
		never := &fakeValidator{name: "stuck", settleAfter: 1 << 30}
		sleeper := &countingSleeper{}

		var timeoutEvents []*domain.TimeoutEvent
		hooks := domain.LifecycleHooks{
			OnTimeout: func(_ context.Context, e *domain.TimeoutEvent) {
				timeoutEvents = append(timeoutEvents, e)
			},
		}
		poller := runtime.NewPoller(runtime.WithSleeper(sleeper), runtime.WithLifecycleHooks(hooks))

		_, _, err := poller.Poll(ctx, "publish", []ports.Validator{never}, runtime.PollConfig{TimeoutMs: 1000, SleepMs: 500}, nil)
		assert.ErrorIs(t, err, domain.ErrTimeoutExceeded)
		require.Len(t, timeoutEvents, 1)
		assert.Equal(t, 3, timeoutEvents[0].Rounds)
		assert.Equal(t, 1000, timeoutEvents[0].TimeoutMs)
	})
}

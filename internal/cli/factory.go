// Package cli holds the wiring shared by the palisade commands: loader
// selection, simulated validator parsing, and gate construction.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aretw0/palisade/internal/logging"
	fileAdapter "github.com/aretw0/palisade/pkg/adapters/file"
	loamAdapter "github.com/aretw0/palisade/pkg/adapters/loam"
	"github.com/aretw0/palisade/pkg/adapters/memory"
	"github.com/aretw0/palisade/pkg/domain"
	"github.com/aretw0/palisade/pkg/ports"
)

// BuildLoader selects the definition source. A --file flag wins over --dir;
// the directory form opens a Loam repository.
func BuildLoader(dir, file string) (ports.DefinitionLoader, error) {
	if file != "" {
		return fileAdapter.NewLoader(file)
	}
	return loamAdapter.Open(dir)
}

// BuildProvider turns --validator specs into an in-memory provider so gate
// policy can be exercised without live validators. Specs look like
// "spell-check=Warning" for a settled result, or "seo-check=Error:3" for one
// that keeps evaluating for three refresh rounds first.
func BuildProvider(mode string, specs []string) (*memory.Provider, error) {
	provider := memory.NewProvider()

	factories := make([]memory.ValidatorFactory, 0, len(specs))
	for _, spec := range specs {
		factory, err := parseValidatorSpec(spec)
		if err != nil {
			return nil, err
		}
		factories = append(factories, factory)
	}
	provider.Register(mode, factories...)

	return provider, nil
}

func parseValidatorSpec(spec string) (memory.ValidatorFactory, error) {
	name, rest, ok := strings.Cut(spec, "=")
	if !ok || name == "" {
		return nil, fmt.Errorf("invalid validator spec %q (want name=Result or name=Result:rounds)", spec)
	}

	resultText, roundsText, async := strings.Cut(rest, ":")
	result, err := domain.ParseSeverity(resultText)
	if err != nil {
		return nil, fmt.Errorf("validator %s: %w", name, err)
	}

	if !async {
		return memory.Settled(name, result), nil
	}

	rounds, err := strconv.Atoi(roundsText)
	if err != nil || rounds < 0 {
		return nil, fmt.Errorf("validator %s: invalid round count %q", name, roundsText)
	}
	return memory.Async(name, result, rounds), nil
}

// CreateLogger configures the application logger. In debug mode it writes to
// Stderr so log lines stay clear of the report output on Stdout.
func CreateLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// CreateDebugHooks traces gate lifecycle events at debug level.
func CreateDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnPollRound: func(ctx context.Context, e *domain.PollEvent) {
			logger.Debug("Poll Round", "transition", e.TransitionID, "round", e.Round, "evaluating", e.Evaluating)
		},
		OnVerdict: func(ctx context.Context, e *domain.VerdictEvent) {
			logger.Debug("Verdict", "transition", e.TransitionID, "verdict", e.Verdict.String(), "rounds", e.Rounds)
		},
		OnTimeout: func(ctx context.Context, e *domain.TimeoutEvent) {
			logger.Debug("Timeout", "transition", e.TransitionID, "rounds", e.Rounds, "timeout_ms", e.TimeoutMs)
		},
		OnBlock: func(ctx context.Context, e *domain.BlockEvent) {
			logger.Debug("Block", "transition", e.TransitionID, "verdict", e.Verdict.String(), "threshold", e.Threshold.String())
		},
	}
}

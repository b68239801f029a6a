// Package validator lints gate definitions for configuration mistakes the
// lenient runtime would otherwise paper over at check time.
package validator

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/palisade/pkg/domain"
	"github.com/aretw0/palisade/pkg/ports"
)

// ValidateDefinitions checks every transition the loader knows about and
// reports all problems at once.
func ValidateDefinitions(ctx context.Context, loader ports.DefinitionLoader) error {
	ids, err := loader.ListTransitions(ctx)
	if err != nil {
		return fmt.Errorf("listing transitions: %w", err)
	}

	var problems []string
	for _, id := range ids {
		def, err := loader.GetTransition(ctx, id)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: load error: %v", id, err))
			continue
		}
		problems = append(problems, lintDefinition(def)...)
	}

	if len(problems) > 0 {
		return fmt.Errorf("found %d problems:\n- %s", len(problems), strings.Join(problems, "\n- "))
	}
	return nil
}

// lintDefinition flags the mistakes a check would surface late (an invalid
// threshold) or silently absorb (unparsable poll knobs fall back to
// defaults, unknown message keys are never looked up).
func lintDefinition(def *domain.TransitionDefinition) []string {
	var problems []string

	if def.MaxResult != "" && !strings.EqualFold(def.MaxResult, domain.MessageKeyUnknown) {
		if _, err := domain.ParseSeverity(def.MaxResult); err != nil {
			problems = append(problems, fmt.Sprintf("%s: max_result %q is not a severity", def.ID, def.MaxResult))
		}
	}

	problems = append(problems, lintPollKnob(def.ID, "timeout", def.Timeout)...)
	problems = append(problems, lintPollKnob(def.ID, "sleep", def.Sleep)...)

	for key := range def.Messages {
		if strings.EqualFold(key, domain.MessageKeyUnknown) {
			continue
		}
		if _, err := domain.ParseSeverity(key); err != nil {
			problems = append(problems, fmt.Sprintf("%s: message key %q is not a severity", def.ID, key))
		}
	}

	if def.MaxResult != "" && len(def.Messages) == 0 && !strings.EqualFold(def.MaxResult, domain.MessageKeyUnknown) {
		problems = append(problems, fmt.Sprintf("%s: no block messages configured; blocks will carry no text", def.ID))
	}

	return problems
}

func lintPollKnob(id, name, value string) []string {
	if value == "" {
		return nil
	}
	ms, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || ms <= 0 {
		return []string{fmt.Sprintf("%s: %s %q is not a positive millisecond count (default applies)", id, name, value)}
	}
	return nil
}

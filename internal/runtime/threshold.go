package runtime

import (
	"fmt"
	"strings"

	"github.com/aretw0/palisade/pkg/domain"
)

// Threshold is the resolved gating policy for one transition attempt.
type Threshold struct {
	// Max is the worst severity the transition tolerates before blocking.
	Max domain.Severity

	// Skip disables gating entirely: the definition literally named the
	// indeterminate level, which means "allow unconditionally".
	Skip bool
}

// ResolveThreshold derives the threshold from the definition's MaxResult
// field, after substituting item placeholders.
//
// Blank resolves to Warning. The literal name "Unknown" is an escape hatch
// that bypasses validation for this transition.
// TODO: confirm with content ops whether the "Unknown" bypass is still
// wanted, or whether those definitions should be migrated to explicit
// "Fatal Error" thresholds.
//
// Any other unrecognized name is a hard ErrInvalidConfiguration failure:
// silently defaulting could suppress gating the author intended.
func ResolveThreshold(def *domain.TransitionDefinition, item domain.Item) (Threshold, error) {
	raw := strings.TrimSpace(ResolvePlaceholders(def.MaxResult, item))
	if raw == "" {
		return Threshold{Max: domain.SeverityWarning}, nil
	}
	if strings.EqualFold(raw, "unknown") {
		return Threshold{Skip: true}, nil
	}

	severity, err := domain.ParseSeverity(raw)
	if err != nil {
		return Threshold{}, fmt.Errorf("transition %s: %w", def.ID, err)
	}
	return Threshold{Max: severity}, nil
}

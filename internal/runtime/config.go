package runtime

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/aretw0/palisade/pkg/domain"
)

// Polling defaults, in milliseconds.
const (
	DefaultTimeoutMs = 10000
	DefaultSleepMs   = 500
)

// PollConfig holds the polling knobs for one check. Kept in milliseconds
// because the timeout rule counts discrete sleep increments, not wall-clock
// time.
type PollConfig struct {
	TimeoutMs int
	SleepMs   int
}

// DefaultPollConfig returns the 10s/500ms defaults.
func DefaultPollConfig() PollConfig {
	return PollConfig{TimeoutMs: DefaultTimeoutMs, SleepMs: DefaultSleepMs}
}

// ResolvePollConfig reads the Timeout and Sleep fields of a definition.
// Blank or malformed values fall back to the defaults; numeric config is
// never a hard failure, unlike the threshold.
func ResolvePollConfig(def *domain.TransitionDefinition, logger *slog.Logger) PollConfig {
	cfg := DefaultPollConfig()
	if def == nil {
		return cfg
	}
	cfg.TimeoutMs = parsePositiveMs(def.Timeout, DefaultTimeoutMs, "timeout", logger)
	cfg.SleepMs = parsePositiveMs(def.Sleep, DefaultSleepMs, "sleep", logger)
	return cfg
}

// parsePositiveMs rejects zero and negative values as well: a zero sleep
// would spin the polling loop.
func parsePositiveMs(text string, fallback int, field string, logger *slog.Logger) int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fallback
	}
	value, err := strconv.Atoi(trimmed)
	if err != nil || value <= 0 {
		if logger != nil {
			logger.Debug("falling back to default poll setting", "field", field, "value", trimmed, "default", fallback)
		}
		return fallback
	}
	return value
}

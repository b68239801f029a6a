package domain

import (
	"fmt"
	"strings"
)

// Severity is the ordered outcome level of a single validator or of an
// aggregated verdict. Higher values are worse. The zero value is
// SeverityValid, which makes the empty-set verdict fall out naturally.
//
// "Still evaluating" is deliberately NOT a Severity: it is modeled as the
// poller's internal tri-state, so that unfinished validators can never leak
// into a max() comparison.
type Severity int

const (
	SeverityValid Severity = iota
	SeverityWarning
	SeverityError
	SeverityCritical
	SeverityFatal
)

// MessageKeyUnknown is the message-field key reserved for the indeterminate
// case. It is a definition field name, not a Severity level.
const MessageKeyUnknown = "Unknown"

var severityNames = map[Severity]string{
	SeverityValid:    "Valid",
	SeverityWarning:  "Warning",
	SeverityError:    "Error",
	SeverityCritical: "Critical Error",
	SeverityFatal:    "Fatal Error",
}

// String returns the display name of the level. These names double as the
// per-severity message field keys on a transition definition.
func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// Exceeds reports whether s is strictly worse than threshold.
func (s Severity) Exceeds(threshold Severity) bool {
	return s > threshold
}

// Max returns the worse of two levels.
func Max(a, b Severity) Severity {
	if b > a {
		return b
	}
	return a
}

// ParseSeverity parses a severity name case-insensitively. Both the spaced
// display form ("Critical Error") and compact forms ("CriticalError",
// "critical_error") are accepted. Unrecognized text is an
// ErrInvalidConfiguration: a misspelled gating policy must fail loudly
// instead of silently falling back to a default.
func ParseSeverity(text string) (Severity, error) {
	normalized := strings.ToLower(text)
	normalized = strings.ReplaceAll(normalized, " ", "")
	normalized = strings.ReplaceAll(normalized, "_", "")

	switch normalized {
	case "valid":
		return SeverityValid, nil
	case "warning":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	case "criticalerror", "critical":
		return SeverityCritical, nil
	case "fatalerror", "fatal":
		return SeverityFatal, nil
	}
	return SeverityValid, fmt.Errorf("%w: unrecognized severity %q", ErrInvalidConfiguration, text)
}

// MarshalText implements encoding.TextMarshaler so snapshots serialize with
// display names instead of bare integers.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(data []byte) error {
	parsed, err := ParseSeverity(string(data))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

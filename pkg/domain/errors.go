package domain

import "errors"

// ErrInvalidConfiguration is returned when a transition definition carries an
// unparsable gating policy (e.g. an unrecognized severity name).
var ErrInvalidConfiguration = errors.New("invalid gate configuration")

// ErrTimeoutExceeded is returned when validators fail to settle within the
// configured deadline. It marks a defined terminal state, not a crash.
var ErrTimeoutExceeded = errors.New("validation timeout exceeded")

// ErrDefinitionNotFound is returned when a transition ID cannot be resolved
// by the configured definition loader.
var ErrDefinitionNotFound = errors.New("transition definition not found")

// ErrItemNotFound is returned when an item ID cannot be resolved by the
// configured definition loader.
var ErrItemNotFound = errors.New("item not found")

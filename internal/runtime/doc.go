// Package runtime implements the gating core: poll-config and threshold
// resolution, the validator polling loop, and the verdict-to-action
// decision. It depends only on pkg/domain and pkg/ports; everything else
// (validator backends, definition storage, report surfaces) stays behind
// ports.
package runtime

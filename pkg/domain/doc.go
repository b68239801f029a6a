// Package domain contains the core data types of the Palisade gate:
// severity levels, transition definitions, validator snapshots, outcomes
// and lifecycle events. It has no dependencies on adapters or runtime.
package domain

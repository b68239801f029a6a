// Package observability bundles the prometheus collectors for gate checks.
package observability

/*
Package palisade gates content-workflow transitions on the outcome of a set
of validation checks. Validators may settle asynchronously; the gate polls
their state, aggregates the worst severity, compares it against the
transition's tolerance, and decides whether the transition proceeds, is
blocked with a user-facing report, or is aborted on timeout.

The gate is the core of a hexagonal architecture: validator backends,
definition storage, report surfaces and audit stores all live behind ports,
so the same gating logic serves a CLI, an HTTP API, or an embedded host.

# Usage

Wire a validator provider and check an item against a transition definition:

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/palisade"
		"github.com/aretw0/palisade/pkg/domain"
	)

	func main() {
		gate, err := palisade.New(myProvider)
		if err != nil {
			log.Fatal(err)
		}

		def := &domain.TransitionDefinition{
			ID:        "publish",
			MaxResult: "Warning",
			Messages: map[string]string{
				"Error": "Errors found on $itemPath$",
			},
		}
		item := domain.Item{Path: "/content/home", Language: "en", Version: 1}

		outcome, err := gate.Check(context.Background(), def, item)
		if err != nil {
			log.Fatal(err)
		}
		if !outcome.Allowed() {
			log.Println("blocked:", outcome.Message)
		}
	}

The decision rules: a verdict at or below the tolerated severity proceeds;
anything worse blocks with the author-configured message for that level; a
deadline overrun aborts with the transition's timeout text. A definition
whose tolerance literally names "Unknown" bypasses validation entirely.
*/
package palisade

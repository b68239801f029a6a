package palisade_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/palisade"
	"github.com/aretw0/palisade/pkg/adapters/memory"
	"github.com/aretw0/palisade/pkg/domain"
)

// ExampleGate_Check demonstrates a full gate check against an in-memory
// validator set. This is useful for testing, embedded scenarios, or when you
// don't want to rely on external validation backends.
func ExampleGate_Check() {
	// 1. Register the validators that guard the transition.
	provider := memory.NewProvider()
	provider.Register(domain.ModeWorkflow,
		memory.Settled("spell-check", domain.SeverityValid),
		memory.Settled("link-check", domain.SeverityError),
	)

	// 2. Initialize the Gate.
	gate, err := palisade.New(provider)
	if err != nil {
		log.Fatal(err)
	}

	// 3. The gating policy: tolerate warnings, block anything worse.
	def := &domain.TransitionDefinition{
		ID:        "publish",
		MaxResult: "Warning",
		Messages: map[string]string{
			"Error": "Errors found on $itemPath$.",
		},
	}

	// 4. Run the check.
	outcome, err := gate.Check(context.Background(),
		def, domain.Item{Path: "/content/home", Language: "en", Version: 1})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(outcome.Action)
	fmt.Println(outcome.Verdict)
	fmt.Println(outcome.Message)
	// Output:
	// block
	// Error
	// Errors found on /content/home.
}

// ExampleGate_Check_skip shows the escape hatch: a threshold literally named
// "Unknown" disables gating for the transition.
func ExampleGate_Check_skip() {
	provider := memory.NewProvider()
	provider.Register(domain.ModeWorkflow,
		memory.Settled("link-check", domain.SeverityFatal),
	)

	gate, err := palisade.New(provider)
	if err != nil {
		log.Fatal(err)
	}

	def := &domain.TransitionDefinition{ID: "legacy-import", MaxResult: "Unknown"}

	outcome, err := gate.Check(context.Background(), def, domain.Item{Path: "/content/archive"})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(outcome.Action)
	fmt.Println(outcome.Skipped)
	// Output:
	// proceed
	// true
}

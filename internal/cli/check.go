package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/aretw0/palisade"
	"github.com/aretw0/palisade/internal/presentation/tui"
	"github.com/aretw0/palisade/pkg/domain"
)

// ErrBlocked signals that the gate denied the transition. Commands translate
// it into a non-zero exit code.
var ErrBlocked = errors.New("transition blocked")

// CheckOptions carries the flags of the check command.
type CheckOptions struct {
	Dir          string
	File         string
	TransitionID string

	ItemID   string
	ItemPath string
	Language string
	Version  int

	Validators []string
	Debug      bool
	JSON       bool
}

// RunCheck executes one gate check and reports the outcome. On an
// interactive terminal a blocked transition renders the modal report;
// otherwise the outcome (with its attached message) is printed as JSON.
func RunCheck(ctx context.Context, opts CheckOptions) error {
	logger := CreateLogger(opts.Debug)

	loader, err := BuildLoader(opts.Dir, opts.File)
	if err != nil {
		return err
	}

	def, err := loader.GetTransition(ctx, opts.TransitionID)
	if err != nil {
		return err
	}

	item, err := resolveItem(ctx, opts, loader)
	if err != nil {
		return err
	}

	provider, err := BuildProvider(def.ValidationMode(), opts.Validators)
	if err != nil {
		return err
	}

	gateOpts := []palisade.Option{
		palisade.WithLogger(logger),
	}
	if opts.Debug {
		gateOpts = append(gateOpts, palisade.WithLifecycleHooks(CreateDebugHooks(logger)))
	}

	interactive := term.IsTerminal(int(os.Stdout.Fd())) && !opts.JSON
	if interactive {
		gateOpts = append(gateOpts, palisade.WithReportSink(tui.NewSink(os.Stdout)))
	}

	gate, err := palisade.New(provider, gateOpts...)
	if err != nil {
		return err
	}

	outcome, err := gate.Check(ctx, def, item)
	if err != nil {
		return err
	}

	if err := printOutcome(outcome, interactive); err != nil {
		return err
	}

	if !outcome.Allowed() {
		return ErrBlocked
	}
	return nil
}

func resolveItem(ctx context.Context, opts CheckOptions, loader itemResolver) (domain.Item, error) {
	if opts.ItemID != "" {
		item, err := loader.GetItem(ctx, opts.ItemID)
		if err != nil {
			return domain.Item{}, err
		}
		return *item, nil
	}
	if opts.ItemPath == "" {
		return domain.Item{}, fmt.Errorf("--item or --item-path is required")
	}
	return domain.Item{
		Path:     opts.ItemPath,
		Language: opts.Language,
		Version:  opts.Version,
	}, nil
}

type itemResolver interface {
	GetItem(ctx context.Context, id string) (*domain.Item, error)
}

// printOutcome writes the machine-readable result. In interactive mode the
// sink already rendered a block report, so only a short status line follows.
func printOutcome(outcome *domain.Outcome, interactive bool) error {
	if !interactive {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(outcome)
	}

	switch outcome.Action {
	case domain.ActionProceed:
		if outcome.Skipped {
			fmt.Printf(">>> Gating disabled for '%s'; transition allowed.\n", outcome.TransitionID)
		} else {
			fmt.Printf(">>> Verdict %s within threshold %s; transition allowed.\n",
				outcome.Verdict.String(), outcome.Threshold.String())
		}
	case domain.ActionAbortTimeout:
		fmt.Printf(">>> Validation did not settle in time; transition aborted.\n")
	default:
		fmt.Printf(">>> Transition blocked (verdict %s, threshold %s).\n",
			outcome.Verdict.String(), outcome.Threshold.String())
	}
	return nil
}

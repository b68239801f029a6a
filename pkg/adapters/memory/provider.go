package memory

import (
	"context"
	"sync"

	"github.com/aretw0/palisade/pkg/domain"
	"github.com/aretw0/palisade/pkg/ports"
)

// ValidatorFactory builds one validator for an item at trigger time.
type ValidatorFactory func(item domain.Item) ports.Validator

// Provider implements ports.ValidatorProvider with registered factories per
// validation mode.
type Provider struct {
	mu        sync.RWMutex
	factories map[string][]ValidatorFactory
}

// NewProvider creates an empty provider.
func NewProvider() *Provider {
	return &Provider{factories: make(map[string][]ValidatorFactory)}
}

// Register appends validator factories for a mode.
func (p *Provider) Register(mode string, factories ...ValidatorFactory) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.factories[mode] = append(p.factories[mode], factories...)
}

// Build triggers the registered validators for the mode. An unknown mode
// yields an empty set, which the gate treats as "nothing to gate on".
func (p *Provider) Build(_ context.Context, mode string, item domain.Item) ([]ports.Validator, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	factories := p.factories[mode]
	validators := make([]ports.Validator, 0, len(factories))
	for _, factory := range factories {
		validators = append(validators, factory(item))
	}
	return validators, nil
}

// Refresh advances every stepping validator by one round.
func (p *Provider) Refresh(_ context.Context, validators []ports.Validator) error {
	for _, v := range validators {
		if stepper, ok := v.(interface{ Step() }); ok {
			stepper.Step()
		}
	}
	return nil
}

var _ ports.ValidatorProvider = (*Provider)(nil)

// validator is the in-memory validator; it settles after a fixed number of
// refresh steps.
type validator struct {
	mu        sync.Mutex
	name      string
	result    domain.Severity
	remaining int
}

// Settled returns a factory for a validator that has already settled.
func Settled(name string, result domain.Severity) ValidatorFactory {
	return func(domain.Item) ports.Validator {
		return &validator{name: name, result: result}
	}
}

// Async returns a factory for a validator that keeps evaluating for the
// given number of refresh rounds before settling on result.
func Async(name string, result domain.Severity, rounds int) ValidatorFactory {
	return func(domain.Item) ports.Validator {
		return &validator{name: name, result: result, remaining: rounds}
	}
}

func (v *validator) Name() string { return v.name }

func (v *validator) Evaluating() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.remaining > 0
}

func (v *validator) Result() domain.Severity {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.result
}

func (v *validator) Step() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.remaining > 0 {
		v.remaining--
	}
}

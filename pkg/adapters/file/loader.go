// Package file loads gate definitions from a YAML document on disk.
package file

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/palisade/pkg/adapters/memory"
	"github.com/aretw0/palisade/pkg/domain"
	"github.com/aretw0/palisade/pkg/ports"
)

// Document is the YAML layout of a gate definition file: a list of
// transition definitions and, optionally, the items they apply to.
type Document struct {
	Transitions []domain.TransitionDefinition `yaml:"transitions"`
	Items       []domain.Item                 `yaml:"items"`
}

// Loader implements ports.DefinitionLoader from a single YAML file, parsed
// once at construction.
type Loader struct {
	backing *memory.Loader
}

// NewLoader reads and parses the YAML document at path.
func NewLoader(path string) (*Loader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading definitions file: %w", err)
	}
	return Parse(data)
}

// Parse builds a loader from raw YAML bytes.
func Parse(data []byte) (*Loader, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing definitions: %w", err)
	}

	backing, err := memory.NewFromDefinitions(doc.Transitions...)
	if err != nil {
		return nil, err
	}
	for _, item := range doc.Items {
		if item.ID == "" {
			return nil, fmt.Errorf("item missing id (path %q)", item.Path)
		}
		backing.AddItem(item)
	}

	return &Loader{backing: backing}, nil
}

func (l *Loader) GetTransition(ctx context.Context, id string) (*domain.TransitionDefinition, error) {
	return l.backing.GetTransition(ctx, id)
}

func (l *Loader) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	return l.backing.GetItem(ctx, id)
}

func (l *Loader) ListTransitions(ctx context.Context) ([]string, error) {
	return l.backing.ListTransitions(ctx)
}

var _ ports.DefinitionLoader = (*Loader)(nil)

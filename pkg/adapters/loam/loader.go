// Package loam adapts the Loam document repository to the gate's
// DefinitionLoader port: transition definitions and items live as
// Markdown/YAML documents with frontmatter metadata.
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/loam"

	"github.com/aretw0/palisade/pkg/domain"
	"github.com/aretw0/palisade/pkg/ports"
)

// Loader adapts a Loam typed repository to ports.DefinitionLoader.
type Loader struct {
	Repo *loam.TypedRepository[GateMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[GateMetadata]) *Loader {
	return &Loader{Repo: repo}
}

// Open initializes a Loam repository at path and wraps it in a Loader.
// Strict mode keeps numeric metadata types consistent across adapters;
// ReadOnly avoids Loam's sandbox behavior in dev mode, since the gate only
// ever reads definitions.
func Open(path string) (*Loader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return New(loam.NewTypedRepository[GateMetadata](repo)), nil
}

// GetTransition retrieves a transition document by ID. The document body
// becomes the report help text.
func (l *Loader) GetTransition(ctx context.Context, id string) (*domain.TransitionDefinition, error) {
	doc, err := l.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrDefinitionNotFound, id)
	}
	meta := doc.Data
	if meta.Kind != "" && meta.Kind != KindTransition {
		return nil, fmt.Errorf("%w: %s is a %s document", domain.ErrDefinitionNotFound, id, meta.Kind)
	}

	return &domain.TransitionDefinition{
		ID:          normalizeID(meta.ID, doc.ID, id),
		MaxResult:   meta.MaxResult,
		Timeout:     meta.Timeout,
		Sleep:       meta.Sleep,
		TimeoutText: meta.TimeoutText,
		Messages:    meta.Messages,
		ReportTitle: meta.ReportTitle,
		ReportHelp:  strings.TrimSpace(doc.Content),
		Mode:        meta.Mode,
	}, nil
}

// GetItem retrieves an item document by ID.
func (l *Loader) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	doc, err := l.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
	}
	meta := doc.Data
	if meta.Kind != KindItem {
		return nil, fmt.Errorf("%w: %s is not an item document", domain.ErrItemNotFound, id)
	}

	return &domain.Item{
		ID:       normalizeID(meta.ID, doc.ID, id),
		Path:     meta.Path,
		Language: meta.Language,
		Version:  meta.Version,
	}, nil
}

// ListTransitions lists the IDs of all transition documents.
func (l *Loader) ListTransitions(ctx context.Context) ([]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		if doc.Data.Kind != "" && doc.Data.Kind != KindTransition {
			continue
		}
		ids = append(ids, normalizeID(doc.Data.ID, doc.ID, doc.ID))
	}
	return ids, nil
}

// normalizeID prefers the metadata ID, falls back to the document ID, and
// strips the file extension either way (Loam document IDs are file paths).
func normalizeID(metaID, docID, requested string) string {
	id := metaID
	if id == "" {
		id = docID
	}
	if id == "" {
		id = requested
	}
	return strings.TrimSuffix(id, filepath.Ext(id))
}

var _ ports.DefinitionLoader = (*Loader)(nil)

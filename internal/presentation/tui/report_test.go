package tui

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/palisade/pkg/domain"
)

func TestSink_Publish(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(&buf)

	report := &domain.Report{
		Title:   "Validation results for /content/home",
		Help:    "Fix the failures and retry.",
		Verdict: domain.SeverityError,
		Message: "Errors found on /content/home",
		Validators: []domain.ValidatorState{
			{Name: "spell-check", Result: domain.SeverityValid},
			{Name: "link-check", Result: domain.SeverityError},
		},
	}

	require.NoError(t, sink.Publish(context.Background(), report))

	out := buf.String()
	assert.Contains(t, out, "Validation results for /content/home")
	assert.Contains(t, out, "spell-check")
	assert.Contains(t, out, "link-check")
	assert.Contains(t, out, "Errors found on /content/home")
}

func TestBuildMarkdown_EvaluatingValidator(t *testing.T) {
	md := buildMarkdown(&domain.Report{
		Verdict: domain.SeverityWarning,
		Validators: []domain.ValidatorState{
			{Name: "seo-check", Evaluating: true},
		},
	})

	assert.Contains(t, md, "# Validation results")
	assert.Contains(t, md, "still evaluating")
}

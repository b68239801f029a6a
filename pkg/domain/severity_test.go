package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/palisade/pkg/domain"
)

func TestSeverity_Order(t *testing.T) {
	ordered := []domain.Severity{
		domain.SeverityValid,
		domain.SeverityWarning,
		domain.SeverityError,
		domain.SeverityCritical,
		domain.SeverityFatal,
	}

	for i := 0; i < len(ordered); i++ {
		for j := 0; j < len(ordered); j++ {
			worse := ordered[i]
			if j > i {
				worse = ordered[j]
			}
			assert.Equal(t, worse, domain.Max(ordered[i], ordered[j]),
				"max(%s, %s)", ordered[i], ordered[j])

			assert.Equal(t, i > j, ordered[i].Exceeds(ordered[j]),
				"%s exceeds %s", ordered[i], ordered[j])
		}
	}
}

func TestParseSeverity(t *testing.T) {
	t.Run("Display And Compact Forms", func(t *testing.T) {
		cases := map[string]domain.Severity{
			"Valid":          domain.SeverityValid,
			"warning":        domain.SeverityWarning,
			"ERROR":          domain.SeverityError,
			"Critical Error": domain.SeverityCritical,
			"CriticalError":  domain.SeverityCritical,
			"critical_error": domain.SeverityCritical,
			"Fatal Error":    domain.SeverityFatal,
			"fatalerror":     domain.SeverityFatal,
		}
		for text, want := range cases {
			got, err := domain.ParseSeverity(text)
			require.NoError(t, err, text)
			assert.Equal(t, want, got, text)
		}
	})

	t.Run("Unrecognized Text", func(t *testing.T) {
		_, err := domain.ParseSeverity("catastrophic")
		assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
	})

	t.Run("Unknown Is Not A Level", func(t *testing.T) {
		// "Unknown" is the still-evaluating sentinel of the source system;
		// it never parses into the comparison domain.
		_, err := domain.ParseSeverity("Unknown")
		assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
	})
}

func TestSeverity_DisplayNames(t *testing.T) {
	assert.Equal(t, "Valid", domain.SeverityValid.String())
	assert.Equal(t, "Warning", domain.SeverityWarning.String())
	assert.Equal(t, "Error", domain.SeverityError.String())
	assert.Equal(t, "Critical Error", domain.SeverityCritical.String())
	assert.Equal(t, "Fatal Error", domain.SeverityFatal.String())
}

func TestSeverity_TextRoundTrip(t *testing.T) {
	state := domain.ValidatorState{Name: "spell-check", Result: domain.SeverityCritical}

	data, err := json.Marshal(state)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Critical Error"`)

	var decoded domain.ValidatorState
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, domain.SeverityCritical, decoded.Result)
}

func TestTransitionDefinition_MessageFor(t *testing.T) {
	def := &domain.TransitionDefinition{
		Messages: map[string]string{
			"Error":          "Errors found",
			"Critical Error": "Critical failures",
		},
	}

	assert.Equal(t, "Errors found", def.MessageFor(domain.SeverityError))
	assert.Equal(t, "Critical failures", def.MessageFor(domain.SeverityCritical))
	assert.Empty(t, def.MessageFor(domain.SeverityWarning))
	assert.Empty(t, (&domain.TransitionDefinition{}).MessageFor(domain.SeverityError))
}

package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/palisade/pkg/domain"
)

// RunOutcomeStoreContract runs a suite of tests to verify that an
// OutcomeStore implementation adheres to the defined interface contract.
func RunOutcomeStoreContract(t *testing.T, store OutcomeStore) {
	ctx := context.Background()
	transitionID := "contract-transition-" + time.Now().Format("20060102150405")

	newOutcome := func(id string, action domain.Action, verdict domain.Severity) *domain.Outcome {
		return &domain.Outcome{
			ID:           id,
			TransitionID: transitionID,
			Item:         domain.Item{Path: "/content/home", Language: "en", Version: 1},
			Action:       action,
			Verdict:      verdict,
			Settled:      action != domain.ActionAbortTimeout,
			Threshold:    domain.SeverityWarning,
			Rounds:       1,
			CheckedAt:    time.Now().UTC(),
		}
	}

	t.Run("Save and Recent", func(t *testing.T) {
		first := newOutcome("outcome-1", domain.ActionProceed, domain.SeverityValid)
		second := newOutcome("outcome-2", domain.ActionBlock, domain.SeverityError)
		second.Message = "Spelling errors found on $itemPath$"
		second.CheckedAt = first.CheckedAt.Add(time.Second)

		require.NoError(t, store.Save(ctx, first))
		require.NoError(t, store.Save(ctx, second))

		recent, err := store.Recent(ctx, transitionID, 10)
		require.NoError(t, err)
		require.Len(t, recent, 2)

		// Newest first.
		assert.Equal(t, "outcome-2", recent[0].ID)
		assert.Equal(t, domain.ActionBlock, recent[0].Action)
		assert.Equal(t, domain.SeverityError, recent[0].Verdict)
		assert.Equal(t, "outcome-1", recent[1].ID)
	})

	t.Run("Recent Respects Limit", func(t *testing.T) {
		recent, err := store.Recent(ctx, transitionID, 1)
		require.NoError(t, err)
		assert.Len(t, recent, 1)
		assert.Equal(t, "outcome-2", recent[0].ID)
	})

	t.Run("Recent Unknown Transition", func(t *testing.T) {
		recent, err := store.Recent(ctx, "never-checked", 10)
		require.NoError(t, err)
		assert.Empty(t, recent)
	})
}

package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/palisade"
	httpAdapter "github.com/aretw0/palisade/pkg/adapters/http"
	"github.com/aretw0/palisade/pkg/adapters/memory"
	"github.com/aretw0/palisade/pkg/domain"
	"github.com/aretw0/palisade/pkg/observability"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	provider := memory.NewProvider()
	provider.Register(domain.ModeWorkflow,
		memory.Settled("spell-check", domain.SeverityValid),
		memory.Settled("link-check", domain.SeverityError),
	)

	loader, err := memory.NewFromDefinitions(
		domain.TransitionDefinition{
			ID:        "publish",
			MaxResult: "Warning",
			Messages: map[string]string{
				"Error": "Errors found on $itemPath$",
			},
		},
		domain.TransitionDefinition{
			ID:        "broken",
			MaxResult: "severe-ish",
		},
	)
	require.NoError(t, err)
	loader.AddItem(domain.Item{ID: "home", Path: "/content/home", Language: "en", Version: 1})

	store := memory.NewStore()
	registry := prometheus.NewRegistry()

	gate, err := palisade.New(provider,
		palisade.WithOutcomeStore(store),
		palisade.WithMetrics(observability.New(registry)),
	)
	require.NoError(t, err)

	return httpAdapter.NewHandler(gate, loader, registry, httpAdapter.WithOutcomeStore(store))
}

func TestServer_Check(t *testing.T) {
	handler := newTestHandler(t)

	t.Run("Blocks Above Threshold", func(t *testing.T) {
		body := `{"item": {"path": "/content/home", "language": "en", "version": 1}}`
		req := httptest.NewRequest(http.MethodPost, "/transitions/publish/check", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var outcome domain.Outcome
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcome))
		assert.Equal(t, domain.ActionBlock, outcome.Action)
		assert.Equal(t, domain.SeverityError, outcome.Verdict)
		assert.Equal(t, "Errors found on /content/home", outcome.Message)
	})

	t.Run("Resolves Item By ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/transitions/publish/check", strings.NewReader(`{"item_id": "home"}`))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var outcome domain.Outcome
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcome))
		assert.Equal(t, "/content/home", outcome.Item.Path)
	})

	t.Run("Unknown Transition Is 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/transitions/retire/check", strings.NewReader(`{"item_id": "home"}`))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Unknown Item Is 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/transitions/publish/check", strings.NewReader(`{"item_id": "absent"}`))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Missing Item Is 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/transitions/publish/check", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Invalid Threshold Is 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/transitions/broken/check", strings.NewReader(`{"item_id": "home"}`))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_Discovery(t *testing.T) {
	handler := newTestHandler(t)

	t.Run("List Transitions", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/transitions", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string][]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, []string{"broken", "publish"}, body["transitions"])
	})

	t.Run("Get Transition", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/transitions/publish", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var def domain.TransitionDefinition
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &def))
		assert.Equal(t, "Warning", def.MaxResult)
	})

	t.Run("Healthz", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestServer_Outcomes(t *testing.T) {
	handler := newTestHandler(t)

	// Run one check so the audit store has an entry.
	req := httptest.NewRequest(http.MethodPost, "/transitions/publish/check", strings.NewReader(`{"item_id": "home"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/transitions/publish/outcomes", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Outcomes []domain.Outcome `json:"outcomes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Outcomes, 1)
	assert.Equal(t, domain.ActionBlock, body.Outcomes[0].Action)
}

func TestServer_Metrics(t *testing.T) {
	handler := newTestHandler(t)

	// One check populates the counters.
	req := httptest.NewRequest(http.MethodPost, "/transitions/publish/check", strings.NewReader(`{"item_id": "home"}`))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "palisade_checks_total")
}

package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/langid/internal/identifier"
	"github.com/MeKo-Tech/langid/internal/langmodel"
)

// newTestServer builds a server over models trained on tiny in-memory
// corpora.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	corpora := map[string]string{
		"en": "hello world\nthe quick brown fox\ngood morning everyone",
		"fr": "bonjour le monde\nle chat dort\noù est la bibliothèque",
	}
	var scorers []identifier.Scorer
	for _, lang := range []string{"en", "fr"} {
		m, err := langmodel.New(langmodel.Params{
			Language: lang, PadUtterances: true, NgramSize: 3, Smooth: 1e-3,
		})
		require.NoError(t, err)
		require.NoError(t, m.TrainReader(strings.NewReader(corpora[lang])))
		scorers = append(scorers, m)
	}
	id, err := identifier.New(scorers...)
	require.NoError(t, err)

	s, err := NewServer(Config{CORSOrigin: "*", MaxBodyKB: 64, Identifier: id})
	require.NoError(t, err)
	return s
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestNewServerRequiresIdentifier(t *testing.T) {
	_, err := NewServer(Config{})
	assert.Error(t, err)
}

func TestHealthHandler(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.healthHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.NotEmpty(t, resp.Time)
}

func TestHealthHandlerMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rec := httptest.NewRecorder()
	s.healthHandler(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestModelsHandler(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/models", nil)
	rec := httptest.NewRecorder()
	s.modelsHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp ModelsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Models, 2)
	assert.Equal(t, "en", resp.Models[0].Language)
	assert.Equal(t, 3, resp.Models[0].NgramSize)
	assert.True(t, resp.Models[0].PadUtterances)
	assert.Positive(t, resp.Models[0].Contexts)
}

func TestIdentifyHandler(t *testing.T) {
	s := newTestServer(t)

	rec := postJSON(t, s.identifyHandler, "/identify", IdentifyRequest{Text: "bonjour le monde"})

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp IdentifyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "fr", resp.Language)
	assert.Len(t, resp.Scores, 2)
}

func TestIdentifyHandlerEmptyText(t *testing.T) {
	s := newTestServer(t)

	rec := postJSON(t, s.identifyHandler, "/identify", IdentifyRequest{Text: ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIdentifyHandlerBadJSON(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/identify", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()
	s.identifyHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIdentifyHandlerMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/identify", nil)
	rec := httptest.NewRecorder()
	s.identifyHandler(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestScoreHandler(t *testing.T) {
	s := newTestServer(t)

	rec := postJSON(t, s.scoreHandler, "/score", ScoreRequest{Text: "bonjour", Language: "fr"})

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp ScoreResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Scored)
	assert.Less(t, resp.Score, 0.0)
}

func TestScoreHandlerUnknownLanguage(t *testing.T) {
	s := newTestServer(t)

	rec := postJSON(t, s.scoreHandler, "/score", ScoreRequest{Text: "hola", Language: "es"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScoreHandlerMissingFields(t *testing.T) {
	s := newTestServer(t)

	rec := postJSON(t, s.scoreHandler, "/score", ScoreRequest{Text: "hola"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIdentifyHandlerDegenerateText(t *testing.T) {
	// Unpadded trigram models cannot score a two-rune text.
	m, err := langmodel.New(langmodel.Params{
		Language: "en", PadUtterances: false, NgramSize: 3, Smooth: 1e-3,
	})
	require.NoError(t, err)
	require.NoError(t, m.TrainReader(strings.NewReader("hello world")))
	id, err := identifier.New(m)
	require.NoError(t, err)
	s, err := NewServer(Config{MaxBodyKB: 64, Identifier: id})
	require.NoError(t, err)

	rec := postJSON(t, s.identifyHandler, "/identify", IdentifyRequest{Text: "ab"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSetupRoutes(t *testing.T) {
	s := newTestServer(t)

	mux := http.NewServeMux()
	s.SetupRoutes(mux)

	srv := httptest.NewServer(mux)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp2, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = resp2.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
}

package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	adapter "github.com/aretw0/mystem/pkg/adapters/http"
	"github.com/aretw0/mystem/pkg/domain"
	"github.com/aretw0/mystem/pkg/grammem"
	"github.com/aretw0/mystem/pkg/observability"
	"github.com/aretw0/mystem/pkg/protocol"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockAnalyzer for testing
type MockAnalyzer struct {
	StemmingFunc func(ctx context.Context, text string) ([]domain.TokenResult, error)
	pid          int
	restarts     int
}

func (m *MockAnalyzer) Stemming(ctx context.Context, text string) ([]domain.TokenResult, error) {
	return m.StemmingFunc(ctx, text)
}

func (m *MockAnalyzer) PID() int      { return m.pid }
func (m *MockAnalyzer) Restarts() int { return m.restarts }

func decodeTag(t *testing.T, tag string) grammem.Grammem {
	t.Helper()
	g, err := grammem.Decode(tag)
	require.NoError(t, err)
	return g
}

func TestStemming_OK(t *testing.T) {
	var got string
	mock := &MockAnalyzer{StemmingFunc: func(ctx context.Context, text string) ([]domain.TokenResult, error) {
		got = text
		return []domain.TokenResult{
			{Text: "мама", Candidates: []domain.Candidate{{Lemma: "мама", Grammem: decodeTag(t, "S,f,anim=nom,sg"), Weight: 1}}},
			{Text: "мыла"},
		}, nil
	}}
	handler := adapter.NewHandler(mock)

	req := httptest.NewRequest(http.MethodPost, "/stemming", strings.NewReader(`{"text":"мама мыла"}`))
	req.Header.Set(adapter.RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "мама мыла", got)
	assert.Equal(t, "req-42", w.Header().Get(adapter.RequestIDHeader))

	var resp adapter.StemmingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "req-42", resp.RequestID)
	require.Len(t, resp.Tokens, 2)
	assert.Equal(t, "Noun", resp.Tokens[0].Candidates[0].PartOfSpeech)
	assert.Equal(t, "S,f,anim,nom,sg", resp.Tokens[0].Candidates[0].Tag)
	assert.Len(t, resp.Tokens[0].Candidates[0].Facts, 4)
	assert.Empty(t, resp.Tokens[1].Candidates)
}

func TestStemming_GeneratesRequestID(t *testing.T) {
	mock := &MockAnalyzer{StemmingFunc: func(ctx context.Context, text string) ([]domain.TokenResult, error) {
		return nil, nil
	}}
	w := httptest.NewRecorder()
	adapter.NewHandler(mock).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/stemming", strings.NewReader(`{"text":""}`)))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, w.Header().Get(adapter.RequestIDHeader), 36)
	assert.JSONEq(t, fmt.Sprintf(`{"request_id":%q,"tokens":[]}`, w.Header().Get(adapter.RequestIDHeader)), w.Body.String())
}

func TestStemming_InvalidBody(t *testing.T) {
	mock := &MockAnalyzer{StemmingFunc: func(ctx context.Context, text string) ([]domain.TokenResult, error) {
		t.Fatal("analyzer must not be called")
		return nil, nil
	}}
	w := httptest.NewRecorder()
	adapter.NewHandler(mock).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/stemming", strings.NewReader(`{`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStemming_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"spawn", &domain.ProcessSpawnError{Executable: "mystem", Err: errors.New("not found")}, http.StatusServiceUnavailable, "process_spawn"},
		{"exchange", &domain.ExchangeError{Op: "read", PID: 1, Err: errors.New("EOF")}, http.StatusBadGateway, "exchange"},
		{"grammem", fmt.Errorf("token %q: %w", "x", &grammem.GrammemError{Code: "xyz"}), http.StatusBadGateway, "grammem"},
		{"pos", &grammem.PartOfSpeechError{Code: "ZZZ"}, http.StatusBadGateway, "part_of_speech"},
		{"too large", fmt.Errorf("%w: size=9 limit=8", protocol.ErrInputTooLarge), http.StatusRequestEntityTooLarge, "input_too_large"},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, "cancelled"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "internal"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := &MockAnalyzer{StemmingFunc: func(ctx context.Context, text string) ([]domain.TokenResult, error) {
				return nil, tc.err
			}}
			w := httptest.NewRecorder()
			adapter.NewHandler(mock).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/stemming", strings.NewReader(`{"text":"x"}`)))

			assert.Equal(t, tc.status, w.Code)
			var resp adapter.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.kind, resp.Kind)
			assert.Equal(t, tc.err.Error(), resp.Error)
		})
	}
}

func TestHealth(t *testing.T) {
	mock := &MockAnalyzer{pid: 1234, restarts: 2}
	w := httptest.NewRecorder()
	adapter.NewHandler(mock).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","pid":1234,"restarts":2}`, w.Body.String())
}

func TestInfoAndSpec(t *testing.T) {
	handler := adapter.NewHandler(&MockAnalyzer{}, adapter.WithVersion("1.2.3\n"))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/info", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"app":"mystem-http","version":"1.2.3","api_version":"1.0.0"}`, w.Body.String())

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/stemming:")

	doc, err := adapter.GetSwagger()
	require.NoError(t, err)
	assert.NotNil(t, doc.Paths.Find("/stemming"))
}

func TestTags(t *testing.T) {
	w := httptest.NewRecorder()
	adapter.NewHandler(&MockAnalyzer{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tags", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var tags struct {
		PartsOfSpeech map[string]string `json:"parts_of_speech"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tags))
	assert.Equal(t, "Verb", tags.PartsOfSpeech["V"])
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	m.ObserveRequest(observability.OutcomeOK)

	handler := adapter.NewHandler(&MockAnalyzer{}, adapter.WithGatherer(reg))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `mystem_requests_total{outcome="ok"} 1`)

	// Without a gatherer the route is absent.
	w = httptest.NewRecorder()
	adapter.NewHandler(&MockAnalyzer{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORS(t *testing.T) {
	handler := adapter.NewHandler(&MockAnalyzer{}, adapter.WithAllowedOrigins("https://example.org"))

	req := httptest.NewRequest(http.MethodOptions, "/stemming", nil)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, "https://example.org", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

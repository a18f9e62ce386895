package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trend-screener/internal/errors"
	"trend-screener/internal/models"
	"trend-screener/internal/provider"
	"trend-screener/internal/scan"
	"trend-screener/internal/screener"
	"trend-screener/internal/store"
	"trend-screener/internal/universe"
)

func newTestServer(t *testing.T, fetch provider.Func) (*Server, *scan.Orchestrator) {
	t.Helper()
	dir := t.TempDir()

	orch := scan.NewOrchestrator(scan.Deps{
		Provider:    fetch,
		Evaluator:   screener.NewEvaluator(screener.DefaultThresholds()),
		Checkpoints: store.NewCheckpointStore(dir),
		Results:     store.NewResultStore(dir),
		Alerts:      store.NewAlertGate(dir, 24*time.Hour),
		Logger:      zerolog.Nop(),
	}, scan.Options{ChunkSize: 1000})

	src := universe.NewSource("", 5, zerolog.Nop())
	return New(":0", orch, src, zerolog.Nop()), orch
}

func failFetch(_ context.Context, symbol string) (models.PriceSnapshot, error) {
	return models.PriceSnapshot{}, errors.NewProviderError(symbol, errors.ErrSymbolNotFound)
}

func getJSON(t *testing.T, h http.Handler, method, path string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body),
		"response %q is not JSON", rec.Body.String())
	return rec.Code, body
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, failFetch)

	code, body := getJSON(t, srv.Handler(), http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, false, body["scanning"], "scanning should be false when idle")
}

func TestTriggerInvalidType(t *testing.T) {
	srv, _ := newTestServer(t, failFetch)

	code, body := getJSON(t, srv.Handler(), http.MethodGet, "/trigger-scan/bogus")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.NotNil(t, body["error"])
}

func TestTriggerStartsScan(t *testing.T) {
	srv, orch := newTestServer(t, failFetch)

	code, body := getJSON(t, srv.Handler(), http.MethodGet, "/trigger-scan/quick")
	require.Equal(t, http.StatusOK, code, "trigger response: %v", body)
	assert.Equal(t, "scan_started", body["status"])

	deadline := time.After(5 * time.Second)
	for orch.Running() {
		select {
		case <-deadline:
			t.Fatal("scan did not finish")
		case <-time.After(10 * time.Millisecond):
		}
	}

	set, err := orch.Results()
	require.NoError(t, err)
	assert.NotNil(t, set.CompletedAt, "triggered scan did not complete")
}

func TestTriggerConflictWhileRunning(t *testing.T) {
	block := make(chan struct{})
	started := make(chan struct{}, 1)
	fetch := provider.Func(func(_ context.Context, symbol string) (models.PriceSnapshot, error) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-block
		return models.PriceSnapshot{}, errors.NewProviderError(symbol, errors.ErrSymbolNotFound)
	})
	srv, orch := newTestServer(t, fetch)
	defer func() {
		close(block)
		for orch.Running() {
			time.Sleep(10 * time.Millisecond)
		}
	}()

	code, _ := getJSON(t, srv.Handler(), http.MethodGet, "/trigger-scan/quick")
	require.Equal(t, http.StatusOK, code)
	<-started

	code, _ = getJSON(t, srv.Handler(), http.MethodGet, "/trigger-scan/full")
	assert.Equal(t, http.StatusConflict, code)
}

func TestStopWithoutScan(t *testing.T) {
	srv, _ := newTestServer(t, failFetch)

	code, _ := getJSON(t, srv.Handler(), http.MethodPost, "/stop")
	assert.Equal(t, http.StatusConflict, code)
}

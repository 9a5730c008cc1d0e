package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/couchcryptid/weather-intel-service/internal/adapter/http"
	"github.com/couchcryptid/weather-intel-service/internal/analysis"
	"github.com/couchcryptid/weather-intel-service/internal/domain"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type mockRunner struct {
	result *analysis.Result
	err    error
	got    analysis.Request
}

func (m *mockRunner) Run(_ context.Context, req analysis.Request) (*analysis.Result, error) {
	m.got = req
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func newTestServer(runner *mockRunner, readyErr error) *httpadapter.Server {
	if runner == nil {
		runner = &mockRunner{result: &analysis.Result{}}
	}
	return httpadapter.NewServer(":0", runner, &mockReadiness{err: readyErr}, slog.Default())
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(nil, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv := newTestServer(nil, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv := newTestServer(nil, fmt.Errorf("no analysis completed yet"))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "no analysis completed yet", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(nil, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

const analysisBody = `{
	"activity": "hiking",
	"lat": 40.7128,
	"lon": -74.0060,
	"start_date": "2025-06-01",
	"end_date": "2025-06-10",
	"requests": [{"product": "MERRA2_400", "variable": "T2M"}]
}`

func postAnalysis(srv *httpadapter.Server, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/analysis", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.ServeHTTP(rec, req)
	return rec
}

func TestAnalysis_HappyPath(t *testing.T) {
	runner := &mockRunner{result: &analysis.Result{Activity: "hiking"}}
	srv := newTestServer(runner, nil)

	rec := postAnalysis(srv, analysisBody)

	assert.Equal(t, http.StatusOK, rec.Code)

	var result analysis.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "hiking", result.Activity)

	assert.Equal(t, "hiking", runner.got.Activity)
	assert.Equal(t, 40.7128, runner.got.Lat)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), runner.got.Start)
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), runner.got.End)
	assert.True(t, runner.got.TargetDate.IsZero())
	require.Len(t, runner.got.Pairs, 1)
	assert.Equal(t, domain.ProductVariable{Product: "MERRA2_400", Variable: "T2M"}, runner.got.Pairs[0])
}

func TestAnalysis_TargetDateParsed(t *testing.T) {
	runner := &mockRunner{result: &analysis.Result{}}
	srv := newTestServer(runner, nil)

	body := strings.Replace(analysisBody, `"requests"`, `"target_date": "2025-06-15", "requests"`, 1)
	rec := postAnalysis(srv, body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), runner.got.TargetDate)
}

func TestAnalysis_MalformedJSON(t *testing.T) {
	srv := newTestServer(nil, nil)

	rec := postAnalysis(srv, "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalysis_BadDateFormat(t *testing.T) {
	srv := newTestServer(nil, nil)

	body := strings.Replace(analysisBody, "2025-06-01", "06/01/2025", 1)
	rec := postAnalysis(srv, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "start_date")
}

func TestAnalysis_InvalidRequestReturns400(t *testing.T) {
	runner := &mockRunner{err: fmt.Errorf("%w: unknown activity", analysis.ErrInvalidRequest)}
	srv := newTestServer(runner, nil)

	rec := postAnalysis(srv, analysisBody)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalysis_InternalErrorReturns500(t *testing.T) {
	runner := &mockRunner{err: fmt.Errorf("scorer exploded")}
	srv := newTestServer(runner, nil)

	rec := postAnalysis(srv, analysisBody)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

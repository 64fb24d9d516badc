package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/greenpitch/dotball-tracker/internal/usecase"
)

type stubSyncRunner struct {
	result usecase.SyncResult
	err    error
	calls  int
}

func (s *stubSyncRunner) RunDailySync(_ context.Context) (usecase.SyncResult, error) {
	s.calls++
	return s.result, s.err
}

func newTestRouter(runner SyncRunner, token string) http.Handler {
	return NewRouter(NewHandler(runner, nil), nil, token)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) responseEnvelope {
	t.Helper()
	var envelope responseEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(&stubSyncRunner{}, "secret")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.Error != nil {
		t.Fatalf("unexpected error body: %+v", envelope.Error)
	}
}

func TestDailySyncJob_RequiresToken(t *testing.T) {
	runner := &stubSyncRunner{}
	router := newTestRouter(runner, "secret")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/daily-sync", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if runner.calls != 0 {
		t.Fatalf("runner must not be called without token")
	}
}

func TestDailySyncJob_UnconfiguredTokenIsUnavailable(t *testing.T) {
	router := newTestRouter(&stubSyncRunner{}, "")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/daily-sync", nil)
	req.Header.Set("X-Internal-Job-Token", "anything")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestDailySyncJob_RunsWithValidToken(t *testing.T) {
	runner := &stubSyncRunner{result: usecase.SyncResult{
		Date:              "2026-04-12",
		Processed:         2,
		TotalTreesPlanted: 126,
	}}
	router := newTestRouter(runner, "secret")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/daily-sync",
		strings.NewReader(`{"reason":"manual rerun"}`))
	req.Header.Set("X-Internal-Job-Token", "secret")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if runner.calls != 1 {
		t.Fatalf("runner calls = %d, want 1", runner.calls)
	}

	envelope := decodeEnvelope(t, rec)
	data, ok := envelope.Data.(map[string]any)
	if !ok {
		t.Fatalf("unexpected data shape: %T", envelope.Data)
	}
	if data["date"] != "2026-04-12" || data["processed"] != float64(2) {
		t.Fatalf("unexpected result payload: %+v", data)
	}
}

func TestDailySyncJob_EmptyBodyRuns(t *testing.T) {
	runner := &stubSyncRunner{}
	router := newTestRouter(runner, "secret")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/daily-sync", nil)
	req.Header.Set("X-Internal-Job-Token", "secret")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if runner.calls != 1 {
		t.Fatalf("runner calls = %d, want 1", runner.calls)
	}
}

func TestDailySyncJob_RejectsUnknownFields(t *testing.T) {
	runner := &stubSyncRunner{}
	router := newTestRouter(runner, "secret")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/daily-sync",
		strings.NewReader(`{"force":true}`))
	req.Header.Set("X-Internal-Job-Token", "secret")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if runner.calls != 0 {
		t.Fatalf("runner must not run on invalid payload")
	}
}

func TestDailySyncJob_DriverErrorMapsToStatus(t *testing.T) {
	runner := &stubSyncRunner{err: usecase.ErrInvalidInput}
	router := newTestRouter(runner, "secret")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/daily-sync", nil)
	req.Header.Set("X-Internal-Job-Token", "secret")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.Error == nil || envelope.Error.Status != "INVALID_ARGUMENT" {
		t.Fatalf("unexpected error body: %+v", envelope.Error)
	}
}

package server

import (
	"bytes"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flarebyte/salute/internal/logger"
	"github.com/go-kratos/kratos/v2/middleware"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time { return time.Date(2026, 2, 9, 10, 30, 0, 0, time.UTC) }

func newTestServer(t *testing.T, logs *bytes.Buffer) stdhttp.Handler {
	t.Helper()
	l, err := logger.New(logs, "info")
	require.NoError(t, err)
	return NewHTTPServer(Options{Version: "1.2.3", Now: fixedNow}, l)
}

func get(t *testing.T, h stdhttp.Handler, target string) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, target, nil))
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec, body
}

func TestHealth(t *testing.T) {
	rec, body := get(t, newTestServer(t, &bytes.Buffer{}), "/health")
	assert.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, map[string]string{"status": "ok", "timestamp": "2026-02-09T10:30:00Z"}, body)
}

func TestGreet(t *testing.T) {
	srv := newTestServer(t, &bytes.Buffer{})
	cases := map[string]string{
		"/greet":              "Hello, World!",
		"/greet?name=Gopher":  "Hello, Gopher!",
		"/greet?name=":        "Hello, !",
		"/greet?name=a%20b":   "Hello, a b!",
		"/greet?other=1":      "Hello, World!",
		"/greet?name=x&name=": "Hello, x!",
	}
	for target, want := range cases {
		rec, body := get(t, srv, target)
		assert.Equal(t, stdhttp.StatusOK, rec.Code, target)
		assert.Equal(t, map[string]string{"message": want}, body, target)
	}
}

func TestIndex(t *testing.T) {
	rec, body := get(t, newTestServer(t, &bytes.Buffer{}), "/")
	assert.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{"name": "salute", "version": "1.2.3"}, body)
}

func TestNotFound(t *testing.T) {
	srv := newTestServer(t, &bytes.Buffer{})
	for _, target := range []string{"/missing", "/greet/extra", "/health/x"} {
		rec, body := get(t, srv, target)
		assert.Equal(t, stdhttp.StatusNotFound, rec.Code, target)
		assert.Equal(t, map[string]string{"error": "Not Found"}, body, target)
	}
}

func TestRequestID_GeneratedAndEchoed(t *testing.T) {
	srv := newTestServer(t, &bytes.Buffer{})
	rec, _ := get(t, srv, "/greet")
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(stdhttp.MethodGet, "/greet", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestRequestsAreLogged(t *testing.T) {
	var logs bytes.Buffer
	srv := newTestServer(t, &logs)
	req := httptest.NewRequest(stdhttp.MethodGet, "/greet?name=Ann", nil)
	req.Header.Set(RequestIDHeader, "req-7")
	srv.ServeHTTP(httptest.NewRecorder(), req)
	out := logs.String()
	assert.Contains(t, out, "GET /greet?name=Ann")
	assert.Contains(t, out, "request_id=req-7")
}

func TestHandler_RecoversPanics(t *testing.T) {
	h := handler(middleware.Chain(recovery.Recovery()), func(*stdhttp.Request) reply {
		panic("boom")
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/", nil))
	assert.Equal(t, stdhttp.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rec.Body.String())
}

// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/encore/internal/platform/apperr"
	"github.com/taibuivan/encore/internal/platform/constants"
	"github.com/taibuivan/encore/internal/platform/ctxutil"
	"github.com/taibuivan/encore/internal/platform/middleware"
	"github.com/taibuivan/encore/internal/platform/sec"
)

type stubVerifier struct {
	claims *sec.AuthClaims
	err    error
}

func (s stubVerifier) VerifyToken(string) (*sec.AuthClaims, error) { return s.claims, s.err }

var okHandler = http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusOK)
})

/*
TestAuthorization covers the editor guard placed in front of write routes.
*/
func TestAuthorization(t *testing.T) {
	editor := &sec.AuthClaims{UserID: "u1", Role: string(sec.RoleEditor)}
	viewer := &sec.AuthClaims{UserID: "u2", Role: string(sec.RoleViewer)}

	tests := []struct {
		name     string
		header   string
		verifier stubVerifier
		want     int
	}{
		{"anonymous", "", stubVerifier{}, http.StatusUnauthorized},
		{"malformed_header", "Token abc", stubVerifier{}, http.StatusUnauthorized},
		{"invalid_token", "Bearer abc", stubVerifier{err: errors.New("expired")}, http.StatusUnauthorized},
		{"viewer", "Bearer abc", stubVerifier{claims: viewer}, http.StatusForbidden},
		{"editor", "Bearer abc", stubVerifier{claims: editor}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.Authenticate(tt.verifier)(middleware.RequireRole(sec.RoleEditor)(okHandler))

			request := httptest.NewRequest(http.MethodPost, "/venues", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.want, recorder.Code)
		})
	}
}

func TestAuthenticate_InjectsClaims(t *testing.T) {
	claims := &sec.AuthClaims{UserID: "u1", Role: string(sec.RoleAdmin)}

	var seen *sec.AuthClaims
	handler := middleware.Authenticate(stubVerifier{claims: claims})(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = middleware.GetUser(request.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer token")
	handler.ServeHTTP(httptest.NewRecorder(), request)

	assert.Same(t, claims, seen)
}

type memoryKeys struct {
	mu       sync.Mutex
	keys     map[string]bool
	released []string
	err      error
}

func newMemoryKeys() *memoryKeys { return &memoryKeys{keys: map[string]bool{}} }

func (m *memoryKeys) Claim(_ context.Context, key string, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	if m.keys[key] {
		return false, nil
	}
	m.keys[key] = true
	return true, nil
}

func (m *memoryKeys) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keys, key)
	m.released = append(m.released, key)
	return nil
}

func post(handler http.Handler, path, key string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader("{}"))
	if key != "" {
		request.Header.Set(constants.HeaderIdempotencyKey, key)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestIdempotency_RejectsReplay ensures a repeated key on the same path is refused
while a different path or a missing key is unaffected.
*/
func TestIdempotency_RejectsReplay(t *testing.T) {
	keys := newMemoryKeys()
	calls := 0
	handler := middleware.Idempotency(keys, time.Minute)(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		calls++
		writer.WriteHeader(http.StatusCreated)
	}))

	assert.Equal(t, http.StatusCreated, post(handler, "/venues", "k1").Code)
	assert.Equal(t, http.StatusConflict, post(handler, "/venues", "k1").Code)
	assert.Equal(t, http.StatusCreated, post(handler, "/artists", "k1").Code)
	assert.Equal(t, http.StatusCreated, post(handler, "/venues", "").Code)
	assert.Equal(t, http.StatusCreated, post(handler, "/venues", "").Code)
	assert.Equal(t, 4, calls)
}

/*
TestIdempotency_ScopedPerEditor ensures two editors reusing one key do not
collide, while each editor's own replay is still refused.
*/
func TestIdempotency_ScopedPerEditor(t *testing.T) {
	keys := newMemoryKeys()
	handler := middleware.Idempotency(keys, time.Minute)(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusCreated)
	}))

	postAs := func(editor string) int {
		request := httptest.NewRequest(http.MethodPost, "/venues", strings.NewReader("{}"))
		request.Header.Set(constants.HeaderIdempotencyKey, "shared")
		claims := &sec.AuthClaims{UserID: editor, Role: string(sec.RoleEditor)}
		request = request.WithContext(ctxutil.WithEditor(request.Context(), claims))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder.Code
	}

	assert.Equal(t, http.StatusCreated, postAs("editor-a"))
	assert.Equal(t, http.StatusCreated, postAs("editor-b"))
	assert.Equal(t, http.StatusConflict, postAs("editor-a"))
}

func TestIdempotency_ReleasesOnFailure(t *testing.T) {
	keys := newMemoryKeys()
	status := http.StatusBadRequest
	handler := middleware.Idempotency(keys, time.Minute)(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(status)
	}))

	assert.Equal(t, http.StatusBadRequest, post(handler, "/shows", "k2").Code)
	require.Len(t, keys.released, 1)

	status = http.StatusCreated
	assert.Equal(t, http.StatusCreated, post(handler, "/shows", "k2").Code)
}

func TestIdempotency_FailsOpen(t *testing.T) {
	keys := newMemoryKeys()
	keys.err = errors.New("redis down")
	handler := middleware.Idempotency(keys, time.Minute)(okHandler)

	assert.Equal(t, http.StatusOK, post(handler, "/venues", "k3").Code)
	assert.Equal(t, http.StatusOK, post(handler, "/venues", "k3").Code)
}

type corsConfig struct {
	dev    bool
	suffix string
}

func (c corsConfig) IsDevelopment() bool  { return c.dev }
func (c corsConfig) OriginSuffix() string { return c.suffix }

func TestCORS(t *testing.T) {
	tests := []struct {
		name    string
		cfg     corsConfig
		origin  string
		allowed bool
	}{
		{"development_allows_any", corsConfig{dev: true}, "http://localhost:3000", true},
		{"production_suffix_match", corsConfig{suffix: "encore.live"}, "https://app.encore.live", true},
		{"production_foreign_origin", corsConfig{suffix: "encore.live"}, "https://evil.example", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodOptions, "/venues", nil)
			request.Header.Set(constants.HeaderOrigin, tt.origin)
			recorder := httptest.NewRecorder()

			middleware.CORS(tt.cfg)(okHandler).ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusNoContent, recorder.Code)
			if tt.allowed {
				assert.Equal(t, tt.origin, recorder.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	handler := middleware.RequestID()(okHandler)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, recorder.Header().Get(constants.HeaderXRequestID))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "req-123")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "req-123", recorder.Header().Get(constants.HeaderXRequestID))
}

func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), apperr.CodeInternal)
	assert.NotContains(t, recorder.Body.String(), "boom")
}

func TestRealIP(t *testing.T) {
	tests := []struct {
		name      string
		realIP    string
		forwarded string
		want      string
	}{
		{"real_ip_header", "203.0.113.9", "", "203.0.113.9"},
		{"first_forwarded", "", "10.0.0.1, 10.0.0.2", "10.0.0.1"},
		{"garbage_real_ip_falls_through", "not-an-ip", "10.0.0.3", "10.0.0.3"},
		{"garbage_everywhere_uses_remote", "x", "y, z", "192.0.2.1"},
		{"no_headers", "", "", "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.realIP != "" {
				request.Header.Set(constants.HeaderXRealIP, tt.realIP)
			}
			if tt.forwarded != "" {
				request.Header.Set(constants.HeaderXForwardedFor, tt.forwarded)
			}
			assert.Equal(t, tt.want, middleware.RealIP(request))
		})
	}
}

/*
TestRateLimit ensures each client IP has its own bucket and an exhausted
bucket answers 429 with a Retry-After hint.
*/
func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimit(ctx, 1, 2)(okHandler)
	from := func(ip string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(http.MethodGet, "/venues", nil)
		request.Header.Set(constants.HeaderXRealIP, ip)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder
	}

	assert.Equal(t, http.StatusOK, from("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, from("10.0.0.1").Code)

	limited := from("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "1", limited.Header().Get("Retry-After"))
	assert.Contains(t, limited.Body.String(), apperr.CodeRateLimited)

	assert.Equal(t, http.StatusOK, from("10.0.0.2").Code)
}

/*
TestStructuredLogger_RecordsEditor ensures the access entry names the editor
resolved by Authenticate further down the chain.
*/
func TestStructuredLogger_RecordsEditor(t *testing.T) {
	var buffer bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buffer, nil))

	claims := &sec.AuthClaims{UserID: "editor-42", Role: string(sec.RoleEditor)}
	chain := middleware.StructuredLogger(logger)(middleware.Authenticate(stubVerifier{claims: claims})(okHandler))

	request := httptest.NewRequest(http.MethodPost, "/venues", nil)
	request.Header.Set("Authorization", "Bearer abc")
	chain.ServeHTTP(httptest.NewRecorder(), request)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &entry))
	assert.Equal(t, "http_request_finished", entry["msg"])
	assert.Equal(t, "editor-42", entry["editor_id"])
	assert.EqualValues(t, http.StatusOK, entry["status"])

	buffer.Reset()
	middleware.StructuredLogger(logger)(okHandler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/venues", nil))
	assert.NotContains(t, buffer.String(), "editor_id")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
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

	"github.com/taibuivan/encore/internal/api"
	"github.com/taibuivan/encore/internal/platform/config"
	"github.com/taibuivan/encore/internal/platform/constants"
	"github.com/taibuivan/encore/internal/platform/database/schema"
	"github.com/taibuivan/encore/internal/platform/memstore"
	"github.com/taibuivan/encore/internal/platform/sec"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type editorVerifier struct{}

func (editorVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	switch token {
	case "editor":
		return &sec.AuthClaims{UserID: "e1", Role: string(sec.RoleEditor)}, nil
	case "viewer":
		return &sec.AuthClaims{UserID: "v1", Role: string(sec.RoleViewer)}, nil
	}
	return nil, errors.New("invalid token")
}

type keyStore struct {
	mu   sync.Mutex
	keys map[string]bool
}

func (s *keyStore) Claim(_ context.Context, key string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.keys[key] {
		return false, nil
	}
	s.keys[key] = true
	return true, nil
}

func (s *keyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, key)
	return nil
}

func newServer(t *testing.T, guards api.Guards) http.Handler {
	t.Helper()

	cfg := &config.Config{ServerPort: "0", Environment: "development", StorageDriver: config.DriverMemory}
	now := func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }

	handlers := api.NewDomainHandlers(api.MemoryStores(memstore.New(schema.Tables()...)), discard, now)
	handlers.Liveness, handlers.Readiness = api.NewHealthHandlers(nil, discard)

	return api.NewServer(t.Context(), cfg, discard, guards, handlers).Handler()
}

type call struct {
	method string
	path   string
	body   string
	header map[string]string
}

func (c call) do(handler http.Handler) *httptest.ResponseRecorder {
	request := httptest.NewRequest(c.method, c.path, strings.NewReader(c.body))
	for key, value := range c.header {
		request.Header.Set(key, value)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

const (
	venueBody  = `{"name":"The Musical Hop","city":"San Francisco","state":"CA","address":"1015 Folsom Street","genres":["Jazz"]}`
	artistBody = `{"name":"Guns N Petals","city":"San Francisco","state":"CA","genres":["Rock n Roll"]}`
	showBody   = `{"artist_id":1,"venue_id":1,"start_time":"2030-05-21T21:30:00Z"}`
)

/*
TestServer_BookingFlow drives the open (development) API end to end: create
parents, book a show, read the schedule, then cascade delete.
*/
func TestServer_BookingFlow(t *testing.T) {
	server := newServer(t, api.Guards{})

	steps := []struct {
		call     call
		status   int
		contains string
	}{
		{call{method: http.MethodGet, path: "/health"}, http.StatusOK, `"status":"ok"`},
		{call{method: http.MethodGet, path: "/ready"}, http.StatusOK, `"status":"ready"`},
		{call{method: http.MethodGet, path: "/api/v1/genres"}, http.StatusOK, `"Rock n Roll"`},
		{call{method: http.MethodPost, path: "/api/v1/venues", body: venueBody}, http.StatusCreated, `"id":1`},
		{call{method: http.MethodPost, path: "/api/v1/artists", body: artistBody}, http.StatusCreated, `"id":1`},
		{call{method: http.MethodPost, path: "/api/v1/shows", body: `{"artist_id":9,"venue_id":1,"start_time":"2030-05-21T21:30:00Z"}`}, http.StatusBadRequest, `"artist_id"`},
		{call{method: http.MethodPost, path: "/api/v1/shows", body: showBody}, http.StatusCreated, `"id":1`},
		{call{method: http.MethodGet, path: "/api/v1/shows"}, http.StatusOK, `"venue_name":"The Musical Hop"`},
		{call{method: http.MethodGet, path: "/api/v1/venues/1"}, http.StatusOK, `"upcoming_shows_count":1`},
		{call{method: http.MethodGet, path: "/api/v1/artists/1"}, http.StatusOK, `"past_shows_count":0`},
		{call{method: http.MethodGet, path: "/api/v1/venues"}, http.StatusOK, `"state":"CA"`},
		{call{method: http.MethodGet, path: "/api/v1/search/artists?q=Petals"}, http.StatusOK, `"count":1`},
		{call{method: http.MethodGet, path: "/api/v1/artists/search?q="}, http.StatusOK, `"count":1`},
		{call{method: http.MethodDelete, path: "/api/v1/artists/1"}, http.StatusNoContent, ""},
		{call{method: http.MethodGet, path: "/api/v1/shows"}, http.StatusOK, `"data":[]`},
		{call{method: http.MethodGet, path: "/api/v1/venues/1"}, http.StatusOK, `"upcoming_shows":[]`},
	}

	for _, step := range steps {
		recorder := step.call.do(server)
		require.Equal(t, step.status, recorder.Code, "%s %s: %s", step.call.method, step.call.path, recorder.Body.String())
		assert.Contains(t, recorder.Body.String(), step.contains, "%s %s", step.call.method, step.call.path)
	}
}

func TestServer_EditorGuard(t *testing.T) {
	server := newServer(t, api.Guards{Verifier: editorVerifier{}})

	anonymous := call{method: http.MethodPost, path: "/api/v1/venues", body: venueBody}
	assert.Equal(t, http.StatusUnauthorized, anonymous.do(server).Code)

	viewer := call{method: http.MethodPost, path: "/api/v1/venues", body: venueBody, header: map[string]string{"Authorization": "Bearer viewer"}}
	assert.Equal(t, http.StatusForbidden, viewer.do(server).Code)

	editor := call{method: http.MethodPost, path: "/api/v1/venues", body: venueBody, header: map[string]string{"Authorization": "Bearer editor"}}
	assert.Equal(t, http.StatusCreated, editor.do(server).Code)

	// Reads stay public.
	assert.Equal(t, http.StatusOK, call{method: http.MethodGet, path: "/api/v1/venues/1"}.do(server).Code)
}

func TestServer_IdempotentCreate(t *testing.T) {
	server := newServer(t, api.Guards{Keys: &keyStore{keys: map[string]bool{}}, IdempotencyTTL: time.Minute})

	submit := call{
		method: http.MethodPost,
		path:   "/api/v1/venues",
		body:   venueBody,
		header: map[string]string{constants.HeaderIdempotencyKey: "form-1"},
	}

	assert.Equal(t, http.StatusCreated, submit.do(server).Code)
	assert.Equal(t, http.StatusConflict, submit.do(server).Code)

	listing := call{method: http.MethodGet, path: "/api/v1/venues/search?q=Hop"}.do(server)
	assert.Contains(t, listing.Body.String(), `"count":1`)
}

func TestReadiness_Degraded(t *testing.T) {
	_, readiness := api.NewHealthHandlers([]api.HealthCheck{
		{Name: "postgres", Check: func(context.Context) error { return nil }},
		{Name: "redis", Check: func(context.Context) error { return errors.New("connection refused") }},
	}, discard)

	recorder := httptest.NewRecorder()
	readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"degraded"`)
	assert.Contains(t, recorder.Body.String(), `"connection refused"`)
}

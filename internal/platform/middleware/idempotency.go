// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/encore/internal/platform/apperr"
	"github.com/taibuivan/encore/internal/platform/constants"
	"github.com/taibuivan/encore/internal/platform/ctxutil"
	"github.com/taibuivan/encore/internal/platform/respond"
)

// KeyStore remembers submitted Idempotency-Key values for a bounded window.
type KeyStore interface {
	// Claim records key and reports whether it had not been seen within ttl.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release forgets key so the submission may be retried.
	Release(ctx context.Context, key string) error
}

// # Duplicate Submission Guard

// Idempotency rejects a POST whose Idempotency-Key was already used on the same
// path by the same editor.
//
// # Flow
//  1. Requests without the header, or non-POST requests, pass through.
//  2. The key is claimed atomically; a second claim within ttl gets 409 Conflict.
//  3. If the handler fails (status >= 400) the key is released so the client may retry.
//
// Store outages fail open: the request proceeds and the error is logged.
func Idempotency(store KeyStore, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			key := request.Header.Get(constants.HeaderIdempotencyKey)
			if key == "" || request.Method != http.MethodPost {
				next.ServeHTTP(writer, request)
				return
			}

			ctx := request.Context()
			logger := ctxutil.GetLogger(ctx)
			scopedKey := scopeKey(request, key)

			fresh, err := store.Claim(ctx, scopedKey, ttl)
			if err != nil {
				logger.WarnContext(ctx, "idempotency_store_unavailable", slog.Any("error", err))
				next.ServeHTTP(writer, request)
				return
			}

			if !fresh {
				respond.Error(writer, request, apperr.Conflict("This submission was already received"))
				return
			}

			recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}
			next.ServeHTTP(recorder, request)

			if recorder.status >= http.StatusBadRequest {
				if err := store.Release(context.WithoutCancel(ctx), scopedKey); err != nil {
					logger.WarnContext(ctx, "idempotency_release_failed", slog.Any("error", err))
				}
			}
		})
	}
}

// scopeKey namespaces key by path and, when authenticated, by editor.
func scopeKey(request *http.Request, key string) string {
	scoped := request.URL.Path + ":" + key
	if claims := ctxutil.GetEditor(request.Context()); claims != nil {
		scoped = claims.UserID + ":" + scoped
	}
	return scoped
}

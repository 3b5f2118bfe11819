// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil stores and retrieves per-request values (request ID, logger,
// editor claims) in a [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/encore/internal/platform/sec"
)

// key is unexported so no other package can collide with these entries.
type key int

const (
	keyRequestID key = iota
	keyLogger
	keyEditor
	keyTrace
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(keyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, keyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(keyLogger).(*slog.Logger)
	if !ok || logger == nil {
		return slog.Default()
	}
	return logger
}

// # Editor Identity

// WithEditor returns a new context carrying the verified token claims.
func WithEditor(ctx context.Context, claims *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, keyEditor, claims)
}

// GetEditor returns the verified claims, or nil for anonymous requests.
func GetEditor(ctx context.Context) *sec.AuthClaims {
	claims, _ := ctx.Value(keyEditor).(*sec.AuthClaims)
	return claims
}

// # Request Trace

// Trace collects attributes learned after the request logger was built, such
// as the editor resolved by authentication. It is written and read on the
// request goroutine only.
type Trace struct {
	EditorID string
}

// WithTrace returns a new context carrying trace.
func WithTrace(ctx context.Context, trace *Trace) context.Context {
	return context.WithValue(ctx, keyTrace, trace)
}

// GetTrace returns the request trace, or nil outside the logging middleware.
func GetTrace(ctx context.Context) *Trace {
	trace, _ := ctx.Value(keyTrace).(*Trace)
	return trace
}

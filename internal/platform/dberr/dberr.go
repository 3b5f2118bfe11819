// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/encore/internal/platform/apperr"
	"github.com/taibuivan/encore/internal/platform/memstore"
)

// SQLSTATE codes we classify explicitly.
const (
	foreignKeyViolation = "23503"
	notNullViolation    = "23502"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// Errors that already are [apperr.AppError] pass through unchanged.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if apperr.IsAppError(err) {
		return err
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, memstore.ErrNoRow) {
		return ErrNotFound
	}

	// 2. Referential integrity: the referenced parent row is missing
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case foreignKeyViolation:
			return apperr.ValidationError("Referenced record does not exist",
				apperr.FieldError{Field: foreignKeyField(pgErr), Message: "Must reference an existing record"})
		case notNullViolation:
			return apperr.ValidationError("Validation failed",
				apperr.FieldError{Field: pgErr.ColumnName, Message: "This field is required"})
		}
	}

	// 3. Everything else is a persistence failure
	return apperr.Storage(&actionError{action: action, err: err})
}

// WrapNotFound behaves like [Wrap] but reports a missing row as a NotFound
// error naming resource (e.g. "Venue not found").
func WrapNotFound(err error, action, resource string) error {
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, memstore.ErrNoRow) {
		return apperr.NotFound(resource)
	}
	return Wrap(err, action)
}

// foreignKeyField names the referencing column of a 23503 violation.
//
// Postgres reports the constraint rather than the column, so the default
// "<table>_<column>_fkey" naming is unwound. Custom names are returned as is.
func foreignKeyField(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}

	field := strings.TrimSuffix(pgErr.ConstraintName, "_fkey")
	if pgErr.TableName != "" {
		field = strings.TrimPrefix(field, pgErr.TableName+"_")
	}
	return field
}

// actionError tags the cause with the store action for server-side logs.
type actionError struct {
	action string
	err    error
}

func (e *actionError) Error() string { return e.action + ": " + e.err.Error() }

func (e *actionError) Unwrap() error { return e.err }

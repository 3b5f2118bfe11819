// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package venue_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/encore/internal/core/venue"
	"github.com/taibuivan/encore/internal/platform/apperr"
)

type execResult struct {
	tag pgconn.CommandTag
	err error
}

// fakeTx replays scripted Exec results and records how the transaction ended.
type fakeTx struct {
	pgx.Tx
	results    []execResult
	statements []string
	committed  bool
	rolledBack bool
}

func (tx *fakeTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	result := tx.results[len(tx.statements)]
	tx.statements = append(tx.statements, sql)
	return result.tag, result.err
}

func (tx *fakeTx) Commit(context.Context) error {
	tx.committed = true
	return nil
}

func (tx *fakeTx) Rollback(context.Context) error {
	if !tx.committed {
		tx.rolledBack = true
	}
	return nil
}

type fakeDB struct {
	tx       *fakeTx
	beginErr error
}

func (db *fakeDB) Begin(context.Context) (pgx.Tx, error) {
	if db.beginErr != nil {
		return nil, db.beginErr
	}
	return db.tx, nil
}

func (db *fakeDB) BeginTx(context context.Context, _ pgx.TxOptions) (pgx.Tx, error) {
	return db.Begin(context)
}

func (db *fakeDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("exec outside transaction")
}

func (db *fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("query outside transaction")
}

func (db *fakeDB) QueryRow(context.Context, string, ...any) pgx.Row { return nil }

/*
TestPostgresDelete covers the transactional cascade: shows first, then the
venue, committing only when both statements succeed.
*/
func TestPostgresDelete(t *testing.T) {
	tests := []struct {
		name       string
		results    []execResult
		check      func(error) bool
		statements int
		committed  bool
	}{
		{
			name: "success",
			results: []execResult{
				{tag: pgconn.NewCommandTag("DELETE 2")},
				{tag: pgconn.NewCommandTag("DELETE 1")},
			},
			check:      func(err error) bool { return err == nil },
			statements: 2,
			committed:  true,
		},
		{
			name: "venue_delete_fails_after_shows",
			results: []execResult{
				{tag: pgconn.NewCommandTag("DELETE 2")},
				{err: errors.New("connection reset by peer")},
			},
			check:      apperr.IsStorage,
			statements: 2,
		},
		{
			name: "shows_delete_fails",
			results: []execResult{
				{err: &pgconn.PgError{Code: "40P01"}},
			},
			check:      apperr.IsStorage,
			statements: 1,
		},
		{
			name: "venue_missing",
			results: []execResult{
				{tag: pgconn.NewCommandTag("DELETE 0")},
				{tag: pgconn.NewCommandTag("DELETE 0")},
			},
			check:      apperr.IsNotFound,
			statements: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &fakeTx{results: tt.results}
			repository := venue.NewPostgresRepository(&fakeDB{tx: tx})

			err := repository.Delete(context.Background(), 1)

			assert.True(t, tt.check(err), "got %v", err)
			require.Len(t, tx.statements, tt.statements)
			assert.Contains(t, tx.statements[0], "booking.show")
			assert.Equal(t, tt.committed, tx.committed)
			assert.Equal(t, !tt.committed, tx.rolledBack)
		})
	}
}

func TestPostgresDelete_BeginFailure(t *testing.T) {
	repository := venue.NewPostgresRepository(&fakeDB{beginErr: errors.New("pool closed")})

	assert.True(t, apperr.IsStorage(repository.Delete(context.Background(), 1)))
}

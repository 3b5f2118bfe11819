// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/encore/internal/platform/database/schema"
	"github.com/taibuivan/encore/internal/platform/dberr"
	"github.com/taibuivan/encore/internal/platform/postgres"
	"github.com/taibuivan/encore/pkg/genre"
	"github.com/taibuivan/encore/pkg/query"
)

type PostgresRepository struct {
	db postgres.DB
}

func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	table = schema.BookingArtist
	shows = schema.BookingShow

	selectArtist = fmt.Sprintf(`SELECT %s FROM %s`, strings.Join(table.Columns(), ", "), table.Table)
)

func (repository *PostgresRepository) List(context context.Context) ([]*Artist, error) {
	rows, err := repository.db.Query(context, selectArtist+fmt.Sprintf(` ORDER BY %s ASC`, table.ID))
	if err != nil {
		return nil, dberr.Wrap(err, "list_artists")
	}
	return scanArtists(rows, "list_artists")
}

func (repository *PostgresRepository) Search(context context.Context, term string) ([]*Artist, error) {
	searchQuery := selectArtist + fmt.Sprintf(` WHERE %s LIKE $1 ESCAPE '%s' ORDER BY %s ASC`, table.Name, query.LikeEscape, table.ID)

	rows, err := repository.db.Query(context, searchQuery, query.Contains(term))
	if err != nil {
		return nil, dberr.Wrap(err, "search_artists")
	}
	return scanArtists(rows, "search_artists")
}

func (repository *PostgresRepository) Get(context context.Context, id int) (*Artist, error) {
	row := repository.db.QueryRow(context, selectArtist+fmt.Sprintf(` WHERE %s = $1`, table.ID), id)

	a, err := scanArtist(row)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "get_artist", "Artist")
	}
	return a, nil
}

func (repository *PostgresRepository) Create(context context.Context, a *Artist) error {
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s, %s, %s
	`,
		table.Table, table.Name, table.City, table.State, table.Phone, table.Genres,
		table.ImageLink, table.FacebookLink, table.SeekingVenue, table.SeekingDescription, table.Website,
		table.ID, table.CreatedAt, table.UpdatedAt,
	)

	err := repository.db.QueryRow(context, insertQuery,
		a.Name, a.City, a.State, a.Phone, genre.Encode(a.Genres),
		a.ImageLink, a.FacebookLink, a.SeekingVenue, a.SeekingDescription, a.Website,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)

	return dberr.Wrap(err, "create_artist")
}

func (repository *PostgresRepository) Update(context context.Context, a *Artist) error {
	updateQuery := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6,
		    %s = $7, %s = $8, %s = $9, %s = $10, %s = $11, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		table.Table, table.Name, table.City, table.State, table.Phone, table.Genres,
		table.ImageLink, table.FacebookLink, table.SeekingVenue, table.SeekingDescription, table.Website,
		table.UpdatedAt, table.ID,
		table.CreatedAt, table.UpdatedAt,
	)

	err := repository.db.QueryRow(context, updateQuery, a.ID,
		a.Name, a.City, a.State, a.Phone, genre.Encode(a.Genres),
		a.ImageLink, a.FacebookLink, a.SeekingVenue, a.SeekingDescription, a.Website,
	).Scan(&a.CreatedAt, &a.UpdatedAt)

	return dberr.WrapNotFound(err, "update_artist", "Artist")
}

// Delete removes the artist and every show they were booked for in one transaction.
func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_delete_artist")
	}
	defer transaction.Rollback(context)

	showsQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, shows.Table, shows.ArtistID)
	if _, err := transaction.Exec(context, showsQuery, id); err != nil {
		return dberr.Wrap(err, "delete_artist_shows")
	}

	artistQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.ID)
	result, err := transaction.Exec(context, artistQuery, id)
	if err != nil {
		return dberr.Wrap(err, "delete_artist")
	}
	if result.RowsAffected() == 0 {
		return dberr.WrapNotFound(pgx.ErrNoRows, "delete_artist", "Artist")
	}

	return dberr.Wrap(transaction.Commit(context), "commit_delete_artist")
}

func scanArtists(rows pgx.Rows, action string) ([]*Artist, error) {
	defer rows.Close()

	artists := []*Artist{}
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, dberr.Wrap(err, action)
		}
		artists = append(artists, a)
	}

	return artists, dberr.Wrap(rows.Err(), action)
}

func scanArtist(row pgx.Row) (*Artist, error) {
	a := &Artist{}
	var genres string

	err := row.Scan(
		&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &genres, &a.ImageLink, &a.FacebookLink,
		&a.SeekingVenue, &a.SeekingDescription, &a.Website, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Genres = genre.Decode(genres)
	return a, nil
}

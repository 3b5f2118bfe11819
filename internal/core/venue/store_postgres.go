// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package venue

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
	table = schema.BookingVenue
	shows = schema.BookingShow

	selectVenue = fmt.Sprintf(`SELECT %s FROM %s`, strings.Join(table.Columns(), ", "), table.Table)
)

func (repository *PostgresRepository) List(context context.Context) ([]*Venue, error) {
	rows, err := repository.db.Query(context, selectVenue+fmt.Sprintf(` ORDER BY %s ASC`, table.ID))
	if err != nil {
		return nil, dberr.Wrap(err, "list_venues")
	}
	return scanVenues(rows, "list_venues")
}

func (repository *PostgresRepository) Search(context context.Context, term string) ([]*Venue, error) {
	searchQuery := selectVenue + fmt.Sprintf(` WHERE %s LIKE $1 ESCAPE '%s' ORDER BY %s ASC`, table.Name, query.LikeEscape, table.ID)

	rows, err := repository.db.Query(context, searchQuery, query.Contains(term))
	if err != nil {
		return nil, dberr.Wrap(err, "search_venues")
	}
	return scanVenues(rows, "search_venues")
}

func (repository *PostgresRepository) Get(context context.Context, id int) (*Venue, error) {
	row := repository.db.QueryRow(context, selectVenue+fmt.Sprintf(` WHERE %s = $1`, table.ID), id)

	v, err := scanVenue(row)
	if err != nil {
		return nil, dberr.WrapNotFound(err, "get_venue", "Venue")
	}
	return v, nil
}

func (repository *PostgresRepository) Create(context context.Context, v *Venue) error {
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING %s, %s, %s
	`,
		table.Table, table.Name, table.City, table.State, table.Address, table.Phone, table.ImageLink,
		table.FacebookLink, table.Website, table.SeekingTalent, table.SeekingDescription, table.Genres,
		table.ID, table.CreatedAt, table.UpdatedAt,
	)

	err := repository.db.QueryRow(context, insertQuery,
		v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink,
		v.FacebookLink, v.Website, v.SeekingTalent, v.SeekingDescription, genre.Encode(v.Genres),
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)

	return dberr.Wrap(err, "create_venue")
}

func (repository *PostgresRepository) Update(context context.Context, v *Venue) error {
	updateQuery := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7,
		    %s = $8, %s = $9, %s = $10, %s = $11, %s = $12, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		table.Table, table.Name, table.City, table.State, table.Address, table.Phone, table.ImageLink,
		table.FacebookLink, table.Website, table.SeekingTalent, table.SeekingDescription, table.Genres,
		table.UpdatedAt, table.ID,
		table.CreatedAt, table.UpdatedAt,
	)

	err := repository.db.QueryRow(context, updateQuery, v.ID,
		v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink,
		v.FacebookLink, v.Website, v.SeekingTalent, v.SeekingDescription, genre.Encode(v.Genres),
	).Scan(&v.CreatedAt, &v.UpdatedAt)

	return dberr.WrapNotFound(err, "update_venue", "Venue")
}

/*
Delete removes a venue and every show booked there.

Description: Both statements run in one transaction. Any failure, including
the venue not existing, rolls the shows back as well.
*/
func (repository *PostgresRepository) Delete(context context.Context, id int) error {

	// Establish Transactional Boundary
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_delete_venue")
	}
	defer transaction.Rollback(context)

	// Step 1: Remove Owned Shows
	showsQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, shows.Table, shows.VenueID)
	if _, err := transaction.Exec(context, showsQuery, id); err != nil {
		return dberr.Wrap(err, "delete_venue_shows")
	}

	// Step 2: Remove Venue
	venueQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.ID)
	result, err := transaction.Exec(context, venueQuery, id)
	if err != nil {
		return dberr.Wrap(err, "delete_venue")
	}
	if result.RowsAffected() == 0 {
		return dberr.WrapNotFound(pgx.ErrNoRows, "delete_venue", "Venue")
	}

	return dberr.Wrap(transaction.Commit(context), "commit_delete_venue")
}

func scanVenues(rows pgx.Rows, action string) ([]*Venue, error) {
	defer rows.Close()

	venues := []*Venue{}
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, dberr.Wrap(err, action)
		}
		venues = append(venues, v)
	}

	return venues, dberr.Wrap(rows.Err(), action)
}

func scanVenue(row pgx.Row) (*Venue, error) {
	v := &Venue{}
	var genres string

	err := row.Scan(
		&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone, &v.ImageLink, &v.FacebookLink,
		&v.Website, &v.SeekingTalent, &v.SeekingDescription, &genres, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	v.Genres = genre.Decode(genres)
	return v, nil
}

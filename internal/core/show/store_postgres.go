// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package show

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/encore/internal/platform/apperr"
	"github.com/taibuivan/encore/internal/platform/database/schema"
	"github.com/taibuivan/encore/internal/platform/dberr"
	"github.com/taibuivan/encore/internal/platform/postgres"
)

// PostgresRepository implements [Repository] on the booking schema.
type PostgresRepository struct {
	db postgres.DB
}

// NewPostgresRepository creates a show repository backed by db.
func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	show   = schema.BookingShow
	artist = schema.BookingArtist
	venue  = schema.BookingVenue
)

// listingQuery joins each show with its artist and venue. Callers append a
// WHERE clause (or none) followed by listingOrder.
var listingQuery = fmt.Sprintf(`
	SELECT s.%s, s.%s, s.%s, s.%s, a.%s, a.%s, v.%s, v.%s
	FROM %s s
	JOIN %s a ON a.%s = s.%s
	JOIN %s v ON v.%s = s.%s
`,
	show.ID, show.StartTime, show.ArtistID, show.VenueID,
	artist.Name, artist.ImageLink, venue.Name, venue.ImageLink,
	show.Table,
	artist.Table, artist.ID, show.ArtistID,
	venue.Table, venue.ID, show.VenueID,
)

var listingOrder = fmt.Sprintf(` ORDER BY s.%s ASC, s.%s ASC`, show.StartTime, show.ID)

/*
Create books a show after confirming that both parents exist.

Description: The existence check and the insert share one transaction, so a
missing artist or venue leaves nothing behind. A parent deleted concurrently
is still caught by the foreign key and reported as a validation error.
*/
func (repository *PostgresRepository) Create(context context.Context, record *Show) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_show")
	}
	defer transaction.Rollback(context)

	// Step 1: Resolve both references
	existsQuery := fmt.Sprintf(`
		SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1),
		       EXISTS (SELECT 1 FROM %s WHERE %s = $2)
	`, artist.Table, artist.ID, venue.Table, venue.ID)

	var artistExists, venueExists bool
	if err := transaction.QueryRow(context, existsQuery, record.ArtistID, record.VenueID).Scan(&artistExists, &venueExists); err != nil {
		return dberr.Wrap(err, "check_show_parents")
	}
	if err := missingParents(artistExists, venueExists); err != nil {
		return err
	}

	// Step 2: Insert
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s
	`, show.Table, show.StartTime, show.ArtistID, show.VenueID, show.ID)

	if err := transaction.QueryRow(context, insertQuery, record.StartTime, record.ArtistID, record.VenueID).Scan(&record.ID); err != nil {
		return dberr.Wrap(err, "insert_show")
	}

	return dberr.Wrap(transaction.Commit(context), "commit_create_show")
}

func (repository *PostgresRepository) List(context context.Context) ([]*Listing, error) {
	rows, err := repository.db.Query(context, listingQuery+listingOrder)
	if err != nil {
		return nil, dberr.Wrap(err, "list_shows")
	}
	return scanListings(rows)
}

func (repository *PostgresRepository) ListByVenue(context context.Context, venueID int) ([]*Listing, error) {
	return repository.listByParent(context, venue.Table, venue.ID, show.VenueID, venueID, "Venue")
}

func (repository *PostgresRepository) ListByArtist(context context.Context, artistID int) ([]*Listing, error) {
	return repository.listByParent(context, artist.Table, artist.ID, show.ArtistID, artistID, "Artist")
}

// listByParent reads the parent's existence and its shows from one
// repeatable-read snapshot.
func (repository *PostgresRepository) listByParent(context context.Context, parentTable, parentID, foreignKey string, id int, resource string) ([]*Listing, error) {
	transaction, err := repository.db.BeginTx(context, postgres.ReadSnapshot)
	if err != nil {
		return nil, dberr.Wrap(err, "begin_list_shows")
	}
	defer transaction.Rollback(context)

	var exists bool
	existsQuery := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, parentTable, parentID)
	if err := transaction.QueryRow(context, existsQuery, id).Scan(&exists); err != nil {
		return nil, dberr.Wrap(err, "check_show_parent")
	}
	if !exists {
		return nil, apperr.NotFound(resource)
	}

	rows, err := transaction.Query(context, listingQuery+fmt.Sprintf(` WHERE s.%s = $1`, foreignKey)+listingOrder, id)
	if err != nil {
		return nil, dberr.Wrap(err, "list_shows_by_parent")
	}

	listings, err := scanListings(rows)
	if err != nil {
		return nil, err
	}

	return listings, dberr.Wrap(transaction.Commit(context), "commit_list_shows")
}

func scanListings(rows pgx.Rows) ([]*Listing, error) {
	defer rows.Close()

	listings := []*Listing{}
	for rows.Next() {
		listing := &Listing{}
		if err := rows.Scan(
			&listing.ID, &listing.StartTime, &listing.ArtistID, &listing.VenueID,
			&listing.ArtistName, &listing.ArtistImageLink, &listing.VenueName, &listing.VenueImageLink,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_show")
		}
		listings = append(listings, listing)
	}

	return listings, dberr.Wrap(rows.Err(), "iterate_shows")
}

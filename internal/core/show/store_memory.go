// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package show

import (
	"context"
	"slices"
	"time"

	"github.com/taibuivan/encore/internal/platform/apperr"
	"github.com/taibuivan/encore/internal/platform/dberr"
	"github.com/taibuivan/encore/internal/platform/memstore"
)

// MemoryRepository implements [Repository] on a [memstore.DB].
type MemoryRepository struct {
	db *memstore.DB
}

// NewMemoryRepository creates a show repository backed by db.
func NewMemoryRepository(db *memstore.DB) *MemoryRepository {
	return &MemoryRepository{db: db}
}

func (repository *MemoryRepository) Create(_ context.Context, record *Show) error {
	err := repository.db.Update(func(tx *memstore.Tx) error {
		artistExists, err := tx.Exists(artist.Table, record.ArtistID)
		if err != nil {
			return err
		}
		venueExists, err := tx.Exists(venue.Table, record.VenueID)
		if err != nil {
			return err
		}
		if err := missingParents(artistExists, venueExists); err != nil {
			return err
		}

		id, err := tx.Insert(show.Table, memstore.Row{
			show.StartTime: record.StartTime,
			show.ArtistID:  record.ArtistID,
			show.VenueID:   record.VenueID,
		})
		if err != nil {
			return err
		}
		record.ID = id
		return nil
	})
	return dberr.Wrap(err, "create_show")
}

func (repository *MemoryRepository) List(_ context.Context) ([]*Listing, error) {
	var listings []*Listing
	err := repository.db.View(func(tx *memstore.Tx) error {
		var err error
		listings, err = collect(tx, func(memstore.Row) bool { return true })
		return err
	})
	return listings, dberr.Wrap(err, "list_shows")
}

func (repository *MemoryRepository) ListByVenue(_ context.Context, venueID int) ([]*Listing, error) {
	return repository.listByParent(venue.Table, show.VenueID, venueID, "Venue")
}

func (repository *MemoryRepository) ListByArtist(_ context.Context, artistID int) ([]*Listing, error) {
	return repository.listByParent(artist.Table, show.ArtistID, artistID, "Artist")
}

func (repository *MemoryRepository) listByParent(parentTable, foreignKey string, id int, resource string) ([]*Listing, error) {
	var listings []*Listing
	err := repository.db.View(func(tx *memstore.Tx) error {
		exists, err := tx.Exists(parentTable, id)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound(resource)
		}

		listings, err = collect(tx, func(row memstore.Row) bool { return row[foreignKey] == id })
		return err
	})
	return listings, dberr.Wrap(err, "list_shows_by_parent")
}

// collect joins matching show rows with their parents, ordered by start time then id.
func collect(tx *memstore.Tx, match func(memstore.Row) bool) ([]*Listing, error) {
	listings := []*Listing{}
	var scanErr error

	err := tx.Scan(show.Table, func(id int, row memstore.Row) bool {
		if !match(row) {
			return true
		}

		listing := &Listing{Show: Show{
			ID:        id,
			StartTime: row[show.StartTime].(time.Time),
			ArtistID:  row[show.ArtistID].(int),
			VenueID:   row[show.VenueID].(int),
		}}

		artistRow, err := tx.Get(artist.Table, listing.ArtistID)
		if err != nil {
			scanErr = err
			return false
		}
		venueRow, err := tx.Get(venue.Table, listing.VenueID)
		if err != nil {
			scanErr = err
			return false
		}

		listing.ArtistName, _ = artistRow[artist.Name].(string)
		listing.ArtistImageLink, _ = artistRow[artist.ImageLink].(string)
		listing.VenueName, _ = venueRow[venue.Name].(string)
		listing.VenueImageLink, _ = venueRow[venue.ImageLink].(string)

		listings = append(listings, listing)
		return true
	})
	if err != nil {
		return nil, err
	}
	if scanErr != nil {
		return nil, scanErr
	}

	slices.SortStableFunc(listings, func(a, b *Listing) int {
		return a.StartTime.Compare(b.StartTime)
	})
	return listings, nil
}

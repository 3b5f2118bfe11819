// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist

import (
	"context"
	"strings"
	"time"

	"github.com/taibuivan/encore/internal/platform/dberr"
	"github.com/taibuivan/encore/internal/platform/memstore"
	"github.com/taibuivan/encore/pkg/genre"
)

type MemoryRepository struct {
	db  *memstore.DB
	now func() time.Time
}

func NewMemoryRepository(db *memstore.DB) *MemoryRepository {
	return &MemoryRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (repository *MemoryRepository) List(_ context.Context) ([]*Artist, error) {
	return repository.scan("list_artists", func(*Artist) bool { return true })
}

func (repository *MemoryRepository) Search(_ context.Context, term string) ([]*Artist, error) {
	return repository.scan("search_artists", func(a *Artist) bool { return strings.Contains(a.Name, term) })
}

func (repository *MemoryRepository) Get(_ context.Context, id int) (*Artist, error) {
	var a *Artist
	err := repository.db.View(func(tx *memstore.Tx) error {
		row, err := tx.Get(table.Table, id)
		if err != nil {
			return err
		}
		a = fromRow(id, row)
		return nil
	})
	return a, dberr.WrapNotFound(err, "get_artist", "Artist")
}

func (repository *MemoryRepository) Create(_ context.Context, a *Artist) error {
	stamp := repository.now()

	err := repository.db.Update(func(tx *memstore.Tx) error {
		id, err := tx.Insert(table.Table, toRow(a, stamp, stamp))
		if err != nil {
			return err
		}
		a.ID, a.CreatedAt, a.UpdatedAt = id, stamp, stamp
		return nil
	})
	return dberr.Wrap(err, "create_artist")
}

func (repository *MemoryRepository) Update(_ context.Context, a *Artist) error {
	stamp := repository.now()

	err := repository.db.Update(func(tx *memstore.Tx) error {
		current, err := tx.Get(table.Table, a.ID)
		if err != nil {
			return err
		}
		createdAt, _ := current[table.CreatedAt].(time.Time)

		if err := tx.Replace(table.Table, a.ID, toRow(a, createdAt, stamp)); err != nil {
			return err
		}
		a.CreatedAt, a.UpdatedAt = createdAt, stamp
		return nil
	})
	return dberr.WrapNotFound(err, "update_artist", "Artist")
}

func (repository *MemoryRepository) Delete(_ context.Context, id int) error {
	err := repository.db.Update(func(tx *memstore.Tx) error {
		exists, err := tx.Exists(table.Table, id)
		if err != nil {
			return err
		}
		if !exists {
			return memstore.ErrNoRow
		}

		if _, err := tx.DeleteWhere(shows.Table, func(row memstore.Row) bool { return row[shows.ArtistID] == id }); err != nil {
			return err
		}
		return tx.Delete(table.Table, id)
	})
	return dberr.WrapNotFound(err, "delete_artist", "Artist")
}

func (repository *MemoryRepository) scan(action string, match func(*Artist) bool) ([]*Artist, error) {
	artists := []*Artist{}
	err := repository.db.View(func(tx *memstore.Tx) error {
		return tx.Scan(table.Table, func(id int, row memstore.Row) bool {
			if a := fromRow(id, row); match(a) {
				artists = append(artists, a)
			}
			return true
		})
	})
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return artists, nil
}

func toRow(a *Artist, createdAt, updatedAt time.Time) memstore.Row {
	row := memstore.Row{
		table.Name:         a.Name,
		table.City:         a.City,
		table.State:        a.State,
		table.Phone:        a.Phone,
		table.Genres:       genre.Encode(a.Genres),
		table.ImageLink:    a.ImageLink,
		table.FacebookLink: a.FacebookLink,
		table.SeekingVenue: a.SeekingVenue,
		table.CreatedAt:    createdAt,
		table.UpdatedAt:    updatedAt,
	}
	if a.SeekingDescription != nil {
		row[table.SeekingDescription] = *a.SeekingDescription
	}
	if a.Website != nil {
		row[table.Website] = *a.Website
	}
	return row
}

func fromRow(id int, row memstore.Row) *Artist {
	a := &Artist{ID: id}
	a.Name, _ = row[table.Name].(string)
	a.City, _ = row[table.City].(string)
	a.State, _ = row[table.State].(string)
	a.Phone, _ = row[table.Phone].(string)
	a.ImageLink, _ = row[table.ImageLink].(string)
	a.FacebookLink, _ = row[table.FacebookLink].(string)
	a.SeekingVenue, _ = row[table.SeekingVenue].(bool)
	a.CreatedAt, _ = row[table.CreatedAt].(time.Time)
	a.UpdatedAt, _ = row[table.UpdatedAt].(time.Time)

	if description, ok := row[table.SeekingDescription].(string); ok {
		a.SeekingDescription = &description
	}
	if website, ok := row[table.Website].(string); ok {
		a.Website = &website
	}

	encoded, _ := row[table.Genres].(string)
	a.Genres = genre.Decode(encoded)
	return a
}

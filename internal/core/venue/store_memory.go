// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package venue

import (
	"context"
	"strings"
	"time"

	"github.com/taibuivan/encore/internal/platform/dberr"
	"github.com/taibuivan/encore/internal/platform/memstore"
	"github.com/taibuivan/encore/pkg/genre"
)

// MemoryRepository implements [Repository] on a [memstore.DB].
type MemoryRepository struct {
	db  *memstore.DB
	now func() time.Time
}

func NewMemoryRepository(db *memstore.DB) *MemoryRepository {
	return &MemoryRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (repository *MemoryRepository) List(_ context.Context) ([]*Venue, error) {
	return repository.scan("list_venues", func(*Venue) bool { return true })
}

func (repository *MemoryRepository) Search(_ context.Context, term string) ([]*Venue, error) {
	return repository.scan("search_venues", func(v *Venue) bool { return strings.Contains(v.Name, term) })
}

func (repository *MemoryRepository) Get(_ context.Context, id int) (*Venue, error) {
	var v *Venue
	err := repository.db.View(func(tx *memstore.Tx) error {
		row, err := tx.Get(table.Table, id)
		if err != nil {
			return err
		}
		v = fromRow(id, row)
		return nil
	})
	return v, dberr.WrapNotFound(err, "get_venue", "Venue")
}

func (repository *MemoryRepository) Create(_ context.Context, v *Venue) error {
	stamp := repository.now()

	err := repository.db.Update(func(tx *memstore.Tx) error {
		id, err := tx.Insert(table.Table, toRow(v, stamp, stamp))
		if err != nil {
			return err
		}
		v.ID, v.CreatedAt, v.UpdatedAt = id, stamp, stamp
		return nil
	})
	return dberr.Wrap(err, "create_venue")
}

func (repository *MemoryRepository) Update(_ context.Context, v *Venue) error {
	stamp := repository.now()

	err := repository.db.Update(func(tx *memstore.Tx) error {
		current, err := tx.Get(table.Table, v.ID)
		if err != nil {
			return err
		}
		createdAt, _ := current[table.CreatedAt].(time.Time)

		if err := tx.Replace(table.Table, v.ID, toRow(v, createdAt, stamp)); err != nil {
			return err
		}
		v.CreatedAt, v.UpdatedAt = createdAt, stamp
		return nil
	})
	return dberr.WrapNotFound(err, "update_venue", "Venue")
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

		if _, err := tx.DeleteWhere(shows.Table, func(row memstore.Row) bool { return row[shows.VenueID] == id }); err != nil {
			return err
		}
		return tx.Delete(table.Table, id)
	})
	return dberr.WrapNotFound(err, "delete_venue", "Venue")
}

func (repository *MemoryRepository) scan(action string, match func(*Venue) bool) ([]*Venue, error) {
	venues := []*Venue{}
	err := repository.db.View(func(tx *memstore.Tx) error {
		return tx.Scan(table.Table, func(id int, row memstore.Row) bool {
			if v := fromRow(id, row); match(v) {
				venues = append(venues, v)
			}
			return true
		})
	})
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return venues, nil
}

func toRow(v *Venue, createdAt, updatedAt time.Time) memstore.Row {
	row := memstore.Row{
		table.Name:          v.Name,
		table.City:          v.City,
		table.State:         v.State,
		table.Address:       v.Address,
		table.Phone:         v.Phone,
		table.ImageLink:     v.ImageLink,
		table.FacebookLink:  v.FacebookLink,
		table.SeekingTalent: v.SeekingTalent,
		table.Genres:        genre.Encode(v.Genres),
		table.CreatedAt:     createdAt,
		table.UpdatedAt:     updatedAt,
	}
	if v.Website != nil {
		row[table.Website] = *v.Website
	}
	if v.SeekingDescription != nil {
		row[table.SeekingDescription] = *v.SeekingDescription
	}
	return row
}

func fromRow(id int, row memstore.Row) *Venue {
	v := &Venue{ID: id}
	v.Name, _ = row[table.Name].(string)
	v.City, _ = row[table.City].(string)
	v.State, _ = row[table.State].(string)
	v.Address, _ = row[table.Address].(string)
	v.Phone, _ = row[table.Phone].(string)
	v.ImageLink, _ = row[table.ImageLink].(string)
	v.FacebookLink, _ = row[table.FacebookLink].(string)
	v.SeekingTalent, _ = row[table.SeekingTalent].(bool)
	v.CreatedAt, _ = row[table.CreatedAt].(time.Time)
	v.UpdatedAt, _ = row[table.UpdatedAt].(time.Time)

	if website, ok := row[table.Website].(string); ok {
		v.Website = &website
	}
	if description, ok := row[table.SeekingDescription].(string); ok {
		v.SeekingDescription = &description
	}

	encoded, _ := row[table.Genres].(string)
	v.Genres = genre.Decode(encoded)
	return v
}

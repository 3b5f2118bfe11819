// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memstore_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/encore/internal/platform/memstore"
)

func TestUpdate_CommitsOnSuccess(t *testing.T) {
	db := memstore.New("venue")

	var id int
	err := db.Update(func(tx *memstore.Tx) error {
		var err error
		id, err = tx.Insert("venue", memstore.Row{"name": "The Musical Hop"})
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	err = db.View(func(tx *memstore.Tx) error {
		row, err := tx.Get("venue", id)
		require.NoError(t, err)
		assert.Equal(t, "The Musical Hop", row["name"])
		return nil
	})
	require.NoError(t, err)
}

/*
TestUpdate_DiscardsOnError ensures a failed unit of work leaves no trace,
including partially applied deletes.
*/
func TestUpdate_DiscardsOnError(t *testing.T) {
	db := memstore.New("venue", "show")
	require.NoError(t, db.Update(func(tx *memstore.Tx) error {
		venueID, _ := tx.Insert("venue", memstore.Row{"name": "Park Square"})
		_, _ = tx.Insert("show", memstore.Row{"venue_id": venueID})
		_, err := tx.Insert("show", memstore.Row{"venue_id": venueID})
		return err
	}))

	boom := errors.New("disk full")
	db.InjectFault(func(op memstore.Op) error {
		if op.Table == "venue" && op.Kind == memstore.OpDelete {
			return boom
		}
		return nil
	})

	err := db.Update(func(tx *memstore.Tx) error {
		removed, err := tx.DeleteWhere("show", func(row memstore.Row) bool { return row["venue_id"] == 1 })
		if err != nil {
			return err
		}
		assert.Equal(t, 2, removed)
		return tx.Delete("venue", 1)
	})
	require.ErrorIs(t, err, boom)

	shows := 0
	require.NoError(t, db.View(func(tx *memstore.Tx) error {
		return tx.Scan("show", func(int, memstore.Row) bool { shows++; return true })
	}))
	assert.Equal(t, 2, shows)
}

func TestView_IsReadOnly(t *testing.T) {
	db := memstore.New("artist")

	err := db.View(func(tx *memstore.Tx) error {
		_, err := tx.Insert("artist", memstore.Row{})
		return err
	})
	assert.ErrorIs(t, err, memstore.ErrReadOnly)
}

func TestMissingRows(t *testing.T) {
	db := memstore.New("artist")

	err := db.Update(func(tx *memstore.Tx) error {
		_, err := tx.Get("artist", 7)
		assert.ErrorIs(t, err, memstore.ErrNoRow)
		assert.ErrorIs(t, tx.Replace("artist", 7, memstore.Row{}), memstore.ErrNoRow)
		return tx.Delete("artist", 7)
	})
	assert.ErrorIs(t, err, memstore.ErrNoRow)
}

func TestScan_AscendingIDs(t *testing.T) {
	db := memstore.New("artist")
	require.NoError(t, db.Update(func(tx *memstore.Tx) error {
		for _, name := range []string{"a", "b", "c"} {
			if _, err := tx.Insert("artist", memstore.Row{"name": name}); err != nil {
				return err
			}
		}
		return tx.Delete("artist", 2)
	}))

	var ids []int
	require.NoError(t, db.View(func(tx *memstore.Tx) error {
		return tx.Scan("artist", func(id int, _ memstore.Row) bool { ids = append(ids, id); return true })
	}))
	assert.Equal(t, []int{1, 3}, ids)
}

// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"log/slog"
	"time"

	"github.com/taibuivan/encore/internal/core/artist"
	"github.com/taibuivan/encore/internal/core/search"
	"github.com/taibuivan/encore/internal/core/show"
	"github.com/taibuivan/encore/internal/core/venue"
	"github.com/taibuivan/encore/internal/platform/memstore"
	"github.com/taibuivan/encore/internal/platform/postgres"
)

// Stores bundles the repositories of one storage driver.
type Stores struct {
	Venues  venue.Repository
	Artists artist.Repository
	Shows   show.Repository
}

// PostgresStores builds every repository on the connection pool.
func PostgresStores(db postgres.DB) Stores {
	return Stores{
		Venues:  venue.NewPostgresRepository(db),
		Artists: artist.NewPostgresRepository(db),
		Shows:   show.NewPostgresRepository(db),
	}
}

// MemoryStores builds every repository on one in-process store.
func MemoryStores(db *memstore.DB) Stores {
	return Stores{
		Venues:  venue.NewMemoryRepository(db),
		Artists: artist.NewMemoryRepository(db),
		Shows:   show.NewMemoryRepository(db),
	}
}

// NewDomainHandlers wires services and handlers on top of stores.
// now is the clock used to split schedules into upcoming and past shows.
// Liveness and Readiness are left for the caller.
func NewDomainHandlers(stores Stores, log *slog.Logger, now func() time.Time) Handlers {
	venues := venue.NewService(stores.Venues, log)
	artists := artist.NewService(stores.Artists, log)
	shows := show.NewService(stores.Shows, log)

	return Handlers{
		Venue:  venue.NewHandler(venues, shows, now),
		Artist: artist.NewHandler(artists, shows, now),
		Show:   show.NewHandler(shows),
		Search: search.NewHandler(search.NewService(venues, artists)),
	}
}

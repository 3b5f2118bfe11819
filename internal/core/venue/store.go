// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package venue

import "context"

// Repository persists venues. Lists are ordered by id.
type Repository interface {
	List(context context.Context) ([]*Venue, error)
	Get(context context.Context, id int) (*Venue, error)
	Create(context context.Context, venue *Venue) error
	Update(context context.Context, venue *Venue) error

	// Delete removes the venue and all of its shows atomically.
	Delete(context context.Context, id int) error

	// Search matches term as a case-sensitive substring of the name.
	Search(context context.Context, term string) ([]*Venue, error)
}

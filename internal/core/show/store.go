// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package show

import "context"

// Repository persists shows and reads them back joined with their parents.
//
// Listings are ordered by start time, then id.
type Repository interface {
	// Create verifies both parents and inserts the show in one transaction.
	Create(context context.Context, show *Show) error

	List(context context.Context) ([]*Listing, error)

	// ListByVenue returns NOT_FOUND when the venue does not exist.
	ListByVenue(context context.Context, venueID int) ([]*Listing, error)

	// ListByArtist returns NOT_FOUND when the artist does not exist.
	ListByArtist(context context.Context, artistID int) ([]*Listing, error)
}

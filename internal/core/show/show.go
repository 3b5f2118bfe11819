// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package show manages performances linking an artist to a venue at a start time.
//
// Shows are immutable once booked. They disappear only when their venue or
// artist is deleted.
package show

import (
	"time"

	"github.com/taibuivan/encore/internal/platform/apperr"
)

// Show is a single booked performance.
type Show struct {
	ID        int       `json:"id"`
	StartTime time.Time `json:"start_time"`
	ArtistID  int       `json:"artist_id"`
	VenueID   int       `json:"venue_id"`
}

// Listing is a show joined with the display fields of both parents.
type Listing struct {
	Show
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	VenueName       string `json:"venue_name"`
	VenueImageLink  string `json:"venue_image_link"`
}

// Schedule splits listings around a reference instant.
type Schedule struct {
	Upcoming      []*Listing `json:"upcoming_shows"`
	Past          []*Listing `json:"past_shows"`
	UpcomingCount int        `json:"upcoming_shows_count"`
	PastCount     int        `json:"past_shows_count"`
}

// Partition places every listing starting at or after now in Upcoming and the
// rest in Past. Input order is preserved within each half.
func Partition(listings []*Listing, now time.Time) *Schedule {
	schedule := &Schedule{Upcoming: []*Listing{}, Past: []*Listing{}}

	for _, listing := range listings {
		if listing.StartTime.Before(now) {
			schedule.Past = append(schedule.Past, listing)
		} else {
			schedule.Upcoming = append(schedule.Upcoming, listing)
		}
	}

	schedule.UpcomingCount = len(schedule.Upcoming)
	schedule.PastCount = len(schedule.Past)
	return schedule
}

// Global field names for validation
const (
	FieldStartTime = "start_time"
	FieldArtistID  = "artist_id"
	FieldVenueID   = "venue_id"
)

// missingParents reports unresolved references as a single validation error.
func missingParents(artistExists, venueExists bool) error {
	var details []apperr.FieldError
	if !artistExists {
		details = append(details, apperr.FieldError{Field: FieldArtistID, Message: "Artist does not exist"})
	}
	if !venueExists {
		details = append(details, apperr.FieldError{Field: FieldVenueID, Message: "Venue does not exist"})
	}
	if len(details) == 0 {
		return nil
	}
	return apperr.ValidationError("Show references a missing record", details...)
}

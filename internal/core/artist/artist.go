// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package artist manages the performers booked into shows.
package artist

import (
	"time"

	"github.com/taibuivan/encore/internal/core/show"
)

// Artist is a performer. Deleting an artist deletes every show they play.
type Artist struct {
	ID                 int       `json:"id"`
	Name               string    `json:"name"`
	City               string    `json:"city"`
	State              string    `json:"state"`
	Phone              string    `json:"phone"`
	Genres             []string  `json:"genres"`
	ImageLink          string    `json:"image_link"`
	FacebookLink       string    `json:"facebook_link"`
	SeekingVenue       bool      `json:"seeking_venue"`
	SeekingDescription *string   `json:"seeking_description"`
	Website            *string   `json:"website"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// SearchResult is the outcome of a name search.
type SearchResult struct {
	Count int       `json:"count"`
	Data  []*Artist `json:"data"`
}

// Detail is an artist together with their upcoming and past shows.
type Detail struct {
	*Artist
	*show.Schedule
}

const (
	FieldName               = "name"
	FieldCity               = "city"
	FieldState              = "state"
	FieldPhone              = "phone"
	FieldGenres             = "genres"
	FieldImageLink          = "image_link"
	FieldFacebookLink       = "facebook_link"
	FieldSeekingDescription = "seeking_description"
	FieldWebsite            = "website"
)

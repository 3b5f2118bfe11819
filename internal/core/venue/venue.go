// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package venue manages the places that host shows.
package venue

import (
	"time"

	"github.com/taibuivan/encore/internal/core/show"
)

// Venue is a place that hosts shows. Deleting a venue deletes its shows.
type Venue struct {
	ID                 int       `json:"id"`
	Name               string    `json:"name"`
	City               string    `json:"city"`
	State              string    `json:"state"`
	Address            string    `json:"address"`
	Phone              string    `json:"phone"`
	ImageLink          string    `json:"image_link"`
	FacebookLink       string    `json:"facebook_link"`
	Website            *string   `json:"website"`
	SeekingTalent      bool      `json:"seeking_talent"`
	SeekingDescription *string   `json:"seeking_description"`
	Genres             []string  `json:"genres"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Area is every venue sharing one exact (city, state) pair.
type Area struct {
	City   string   `json:"city"`
	State  string   `json:"state"`
	Venues []*Venue `json:"venues"`
}

// SearchResult is the outcome of a name search.
type SearchResult struct {
	Count int      `json:"count"`
	Data  []*Venue `json:"data"`
}

// Detail is a venue together with its upcoming and past shows.
type Detail struct {
	*Venue
	*show.Schedule
}

// GroupByLocation buckets venues by exact (city, state).
//
// Areas appear in the order their first venue appears in the input, and
// venues keep their input order within an area.
func GroupByLocation(venues []*Venue) []*Area {
	type location struct{ city, state string }

	areas := []*Area{}
	index := make(map[location]*Area)

	for _, v := range venues {
		key := location{v.City, v.State}
		area, ok := index[key]
		if !ok {
			area = &Area{City: v.City, State: v.State}
			index[key] = area
			areas = append(areas, area)
		}
		area.Venues = append(area.Venues, v)
	}

	return areas
}

// Global field names for validation
const (
	FieldName               = "name"
	FieldCity               = "city"
	FieldState              = "state"
	FieldAddress            = "address"
	FieldPhone              = "phone"
	FieldImageLink          = "image_link"
	FieldFacebookLink       = "facebook_link"
	FieldWebsite            = "website"
	FieldSeekingDescription = "seeking_description"
	FieldGenres             = "genres"
)

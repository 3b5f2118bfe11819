// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package search dispatches name searches to the venue or artist store.
package search

import (
	"context"
	"strings"

	"github.com/taibuivan/encore/internal/core/artist"
	"github.com/taibuivan/encore/internal/core/venue"
	"github.com/taibuivan/encore/internal/platform/apperr"
)

// Kind names the record type being searched.
type Kind string

const (
	KindVenue  Kind = "venue"
	KindArtist Kind = "artist"
)

// FieldKind is the validation field reported for an unknown kind.
const FieldKind = "kind"

// ParseKind accepts "venue"/"venues" and "artist"/"artists".
func ParseKind(raw string) (Kind, error) {
	switch strings.TrimSuffix(raw, "s") {
	case string(KindVenue):
		return KindVenue, nil
	case string(KindArtist):
		return KindArtist, nil
	}
	return "", apperr.ValidationError("Unknown search kind",
		apperr.FieldError{Field: FieldKind, Message: "Must be one of: venue, artist"})
}

// Result is a search outcome for either kind. Data holds the matched records.
type Result struct {
	Kind  Kind   `json:"kind"`
	Term  string `json:"term"`
	Count int    `json:"count"`
	Data  any    `json:"data"`
}

type VenueSearcher interface {
	Search(context context.Context, term string) (*venue.SearchResult, error)
}

type ArtistSearcher interface {
	Search(context context.Context, term string) (*artist.SearchResult, error)
}

type Service struct {
	venues  VenueSearcher
	artists ArtistSearcher
}

func NewService(venues VenueSearcher, artists ArtistSearcher) *Service {
	return &Service{venues: venues, artists: artists}
}

// ByName runs a case-sensitive substring search over the names of kind.
// Plural kinds are accepted; any other kind is a validation error.
func (service *Service) ByName(context context.Context, kind Kind, term string) (*Result, error) {
	kind, err := ParseKind(string(kind))
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindVenue:
		found, err := service.venues.Search(context, term)
		if err != nil {
			return nil, err
		}
		return &Result{Kind: kind, Term: term, Count: found.Count, Data: found.Data}, nil

	default:
		found, err := service.artists.Search(context, term)
		if err != nil {
			return nil, err
		}
		return &Result{Kind: kind, Term: term, Count: found.Count, Data: found.Data}, nil
	}
}

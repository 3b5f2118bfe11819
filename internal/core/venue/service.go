// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package venue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/encore/internal/platform/validate"
	"github.com/taibuivan/encore/pkg/genre"
	"github.com/taibuivan/encore/pkg/pointer"
)

// Field length limits mirror the column sizes in the booking schema.
const (
	maxNameLen  = 200
	maxFieldLen = 120
	maxLinkLen  = 500
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) List(context context.Context) ([]*Venue, error) {
	return service.repo.List(context)
}

// GroupByLocation lists every venue bucketed by (city, state).
func (service *Service) GroupByLocation(context context.Context) ([]*Area, error) {
	venues, err := service.repo.List(context)
	if err != nil {
		return nil, err
	}
	return GroupByLocation(venues), nil
}

func (service *Service) Get(context context.Context, id int) (*Venue, error) {
	return service.repo.Get(context, id)
}

// Search returns venues whose name contains term. An empty term matches all.
func (service *Service) Search(context context.Context, term string) (*SearchResult, error) {
	venues, err := service.repo.Search(context, term)
	if err != nil {
		return nil, err
	}
	return &SearchResult{Count: len(venues), Data: venues}, nil
}

func (service *Service) Create(context context.Context, v *Venue) error {
	if err := normalize(v); err != nil {
		return err
	}

	if err := service.repo.Create(context, v); err != nil {
		return err
	}

	service.logger.Info("venue_created", slog.Int("venue_id", v.ID), slog.String("name", v.Name))
	return nil
}

// Update replaces every editable field of the venue identified by id.
func (service *Service) Update(context context.Context, id int, v *Venue) error {
	v.ID = id
	if err := normalize(v); err != nil {
		return err
	}

	if err := service.repo.Update(context, v); err != nil {
		return err
	}

	service.logger.Info("venue_updated", slog.Int("venue_id", v.ID))
	return nil
}

// Delete removes the venue along with all of its shows.
func (service *Service) Delete(context context.Context, id int) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("venue_deleted", slog.Int("venue_id", id))
	return nil
}

// normalize validates v and rewrites its genres to catalogue spelling.
func normalize(v *Venue) error {
	validator := &validate.Validator{}

	validator.
		Required(FieldName, v.Name).MaxLen(FieldName, v.Name, maxNameLen).
		Required(FieldCity, v.City).MaxLen(FieldCity, v.City, maxFieldLen).
		Required(FieldState, v.State).State(FieldState, v.State).
		Required(FieldAddress, v.Address).MaxLen(FieldAddress, v.Address, maxFieldLen).
		MaxLen(FieldPhone, v.Phone, maxFieldLen).
		URL(FieldImageLink, v.ImageLink).MaxLen(FieldImageLink, v.ImageLink, maxLinkLen).
		URL(FieldFacebookLink, v.FacebookLink).MaxLen(FieldFacebookLink, v.FacebookLink, maxFieldLen).
		URL(FieldWebsite, pointer.Val(v.Website)).MaxLen(FieldWebsite, pointer.Val(v.Website), maxLinkLen)

	canonical, rejected := genre.Normalize(v.Genres)
	for _, name := range rejected {
		validator.Custom(FieldGenres, true, fmt.Sprintf("Unknown genre %q", name))
	}

	if err := validator.Err(); err != nil {
		return err
	}

	v.Genres = canonical
	return nil
}

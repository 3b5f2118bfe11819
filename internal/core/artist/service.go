// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/encore/internal/platform/validate"
	"github.com/taibuivan/encore/pkg/genre"
	"github.com/taibuivan/encore/pkg/pointer"
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

func (service *Service) List(context context.Context) ([]*Artist, error) {
	return service.repo.List(context)
}

func (service *Service) Get(context context.Context, id int) (*Artist, error) {
	return service.repo.Get(context, id)
}

func (service *Service) Search(context context.Context, term string) (*SearchResult, error) {
	artists, err := service.repo.Search(context, term)
	if err != nil {
		return nil, err
	}
	return &SearchResult{Count: len(artists), Data: artists}, nil
}

func (service *Service) Create(context context.Context, a *Artist) error {
	if err := normalize(a); err != nil {
		return err
	}

	if err := service.repo.Create(context, a); err != nil {
		return err
	}

	service.logger.Info("artist_created", slog.Int("artist_id", a.ID), slog.String("name", a.Name))
	return nil
}

func (service *Service) Update(context context.Context, id int, a *Artist) error {
	a.ID = id
	if err := normalize(a); err != nil {
		return err
	}

	if err := service.repo.Update(context, a); err != nil {
		return err
	}

	service.logger.Info("artist_updated", slog.Int("artist_id", a.ID))
	return nil
}

func (service *Service) Delete(context context.Context, id int) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("artist_deleted", slog.Int("artist_id", id))
	return nil
}

func normalize(a *Artist) error {
	validator := &validate.Validator{}

	validator.
		Required(FieldName, a.Name).MaxLen(FieldName, a.Name, 200).
		Required(FieldCity, a.City).MaxLen(FieldCity, a.City, 120).
		Required(FieldState, a.State).State(FieldState, a.State).
		MaxLen(FieldPhone, a.Phone, 120).
		URL(FieldImageLink, a.ImageLink).MaxLen(FieldImageLink, a.ImageLink, 500).
		URL(FieldFacebookLink, a.FacebookLink).MaxLen(FieldFacebookLink, a.FacebookLink, 120).
		URL(FieldWebsite, pointer.Val(a.Website)).MaxLen(FieldWebsite, pointer.Val(a.Website), 500)

	canonical, rejected := genre.Normalize(a.Genres)
	for _, name := range rejected {
		validator.Custom(FieldGenres, true, fmt.Sprintf("Unknown genre %q", name))
	}

	if err := validator.Err(); err != nil {
		return err
	}

	a.Genres = canonical
	return nil
}

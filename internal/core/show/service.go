// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package show

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/encore/internal/platform/validate"
)

// Service books shows and builds upcoming/past schedules.
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

// Create validates the submission and books the show.
func (service *Service) Create(context context.Context, record *Show) error {
	validator := &validate.Validator{}

	validator.
		Custom(FieldStartTime, record.StartTime.IsZero(), "This field is required").
		Positive(FieldArtistID, record.ArtistID).
		Positive(FieldVenueID, record.VenueID)

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Create(context, record); err != nil {
		return err
	}

	service.logger.Info("show_created",
		slog.Int("show_id", record.ID),
		slog.Int("artist_id", record.ArtistID),
		slog.Int("venue_id", record.VenueID),
	)
	return nil
}

func (service *Service) List(context context.Context) ([]*Listing, error) {
	return service.repo.List(context)
}

// ForVenue returns the venue's shows split around now.
func (service *Service) ForVenue(context context.Context, venueID int, now time.Time) (*Schedule, error) {
	listings, err := service.repo.ListByVenue(context, venueID)
	if err != nil {
		return nil, err
	}
	return Partition(listings, now), nil
}

// ForArtist returns the artist's shows split around now.
func (service *Service) ForArtist(context context.Context, artistID int, now time.Time) (*Schedule, error) {
	listings, err := service.repo.ListByArtist(context, artistID)
	if err != nil {
		return nil, err
	}
	return Partition(listings, now), nil
}

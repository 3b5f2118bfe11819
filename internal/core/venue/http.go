// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package venue

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/encore/internal/core/show"
	requestutil "github.com/taibuivan/encore/internal/platform/request"
	"github.com/taibuivan/encore/internal/platform/respond"
)

// ScheduleReader supplies the shows rendered on a venue page.
type ScheduleReader interface {
	ForVenue(context context.Context, venueID int, now time.Time) (*show.Schedule, error)
}

type Handler struct {
	service   *Service
	schedules ScheduleReader
	now       func() time.Time
}

func NewHandler(service *Service, schedules ScheduleReader, now func() time.Time) *Handler {
	return &Handler{service: service, schedules: schedules, now: now}
}

// RegisterRoutes mounts the venue endpoints. writes wrap the mutating routes.
func (handler *Handler) RegisterRoutes(router chi.Router, writes ...func(http.Handler) http.Handler) {
	// Public
	router.Get("/", handler.listVenues)
	router.Get("/search", handler.searchVenues)
	router.Get("/{id}", handler.getVenue)

	// Editors
	router.Group(func(writeRoute chi.Router) {
		writeRoute.Use(writes...)

		writeRoute.Post("/", handler.createVenue)
		writeRoute.Put("/{id}", handler.updateVenue)
		writeRoute.Delete("/{id}", handler.deleteVenue)
	})
}

func (handler *Handler) listVenues(writer http.ResponseWriter, request *http.Request) {
	areas, err := handler.service.GroupByLocation(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, areas)
}

func (handler *Handler) searchVenues(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.service.Search(request.Context(), request.URL.Query().Get("q"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) getVenue(writer http.ResponseWriter, request *http.Request) {
	venueID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	v, err := handler.service.Get(request.Context(), venueID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	schedule, err := handler.schedules.ForVenue(request.Context(), venueID, handler.now())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, Detail{Venue: v, Schedule: schedule})
}

func (handler *Handler) createVenue(writer http.ResponseWriter, request *http.Request) {
	var input Venue
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Create(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateVenue(writer http.ResponseWriter, request *http.Request) {
	venueID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Venue
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Update(request.Context(), venueID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteVenue(writer http.ResponseWriter, request *http.Request) {
	venueID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), venueID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

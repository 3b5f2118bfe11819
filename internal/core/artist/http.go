// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/encore/internal/core/show"
	requestutil "github.com/taibuivan/encore/internal/platform/request"
	"github.com/taibuivan/encore/internal/platform/respond"
)

// ScheduleReader supplies the shows rendered on an artist page.
type ScheduleReader interface {
	ForArtist(context context.Context, artistID int, now time.Time) (*show.Schedule, error)
}

type Handler struct {
	service   *Service
	schedules ScheduleReader
	now       func() time.Time
}

func NewHandler(service *Service, schedules ScheduleReader, now func() time.Time) *Handler {
	return &Handler{service: service, schedules: schedules, now: now}
}

func (handler *Handler) RegisterRoutes(router chi.Router, writes ...func(http.Handler) http.Handler) {
	// Public
	router.Get("/", handler.listArtists)
	router.Get("/search", handler.searchArtists)
	router.Get("/{id}", handler.getArtist)

	// Editors
	router.Group(func(writeRoute chi.Router) {
		writeRoute.Use(writes...)

		writeRoute.Post("/", handler.createArtist)
		writeRoute.Put("/{id}", handler.updateArtist)
		writeRoute.Delete("/{id}", handler.deleteArtist)
	})
}

func (handler *Handler) listArtists(writer http.ResponseWriter, request *http.Request) {
	artists, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, artists)
}

func (handler *Handler) searchArtists(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.service.Search(request.Context(), request.URL.Query().Get("q"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) getArtist(writer http.ResponseWriter, request *http.Request) {
	artistID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	a, err := handler.service.Get(request.Context(), artistID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	schedule, err := handler.schedules.ForArtist(request.Context(), artistID, handler.now())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, Detail{Artist: a, Schedule: schedule})
}

func (handler *Handler) createArtist(writer http.ResponseWriter, request *http.Request) {
	var input Artist
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

func (handler *Handler) updateArtist(writer http.ResponseWriter, request *http.Request) {
	artistID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Artist
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Update(request.Context(), artistID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteArtist(writer http.ResponseWriter, request *http.Request) {
	artistID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), artistID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

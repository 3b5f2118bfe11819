// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package show

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/encore/internal/platform/request"
	"github.com/taibuivan/encore/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the show endpoints. writes wrap the mutating routes.
func (handler *Handler) RegisterRoutes(router chi.Router, writes ...func(http.Handler) http.Handler) {
	// Public
	router.Get("/", handler.listShows)

	// Editors
	router.Group(func(writeRoute chi.Router) {
		writeRoute.Use(writes...)
		writeRoute.Post("/", handler.createShow)
	})
}

func (handler *Handler) listShows(writer http.ResponseWriter, request *http.Request) {
	listings, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, listings)
}

func (handler *Handler) createShow(writer http.ResponseWriter, request *http.Request) {
	var input Show
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.ID = 0

	if err := handler.service.Create(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

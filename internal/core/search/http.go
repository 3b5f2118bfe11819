// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

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

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/{kind}", handler.byName)
}

func (handler *Handler) byName(writer http.ResponseWriter, request *http.Request) {
	kind := Kind(requestutil.Param(request, "kind"))

	result, err := handler.service.ByName(request.Context(), kind, request.URL.Query().Get("q"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

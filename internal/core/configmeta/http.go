// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package configmeta

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/learnpath/internal/platform/middleware"
	requestutil "github.com/taibuivan/learnpath/internal/platform/request"
	"github.com/taibuivan/learnpath/internal/platform/respond"
	"github.com/taibuivan/learnpath/internal/platform/sec"
)

// Handler serves the runtime settings.
type Handler struct {
	service *Service
}

// NewHandler constructs a new configmeta [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the settings endpoints. Reads are public.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listConfig)
	router.Get("/{key}", handler.getConfig)
	router.With(middleware.RequireRole(sec.RoleModerator), middleware.WriteRateLimit()).
		Put("/{key}", handler.updateConfig)
	return router
}

/*
GET /api/v1/config.

Response:
  - 200: []ConfigMeta
*/
func (handler *Handler) listConfig(writer http.ResponseWriter, request *http.Request) {
	metas, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, metas)
}

/*
GET /api/v1/config/{key}.

Response:
  - 200: ConfigMeta
  - 404: NOT_FOUND
*/
func (handler *Handler) getConfig(writer http.ResponseWriter, request *http.Request) {
	meta, err := handler.service.Get(request.Context(), Key(requestutil.Param(request, "key")))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, meta)
}

/*
PUT /api/v1/config/{key}.

Request:
  - body: UpdateConfigMeta

Response:
  - 200: ConfigMeta
  - 400: VALIDATION_ERROR
  - 403: FORBIDDEN
  - 404: NOT_FOUND
*/
func (handler *Handler) updateConfig(writer http.ResponseWriter, request *http.Request) {
	var input UpdateConfigMeta
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	meta, err := handler.service.Set(request.Context(), requestutil.Principal(request), Key(requestutil.Param(request, "key")), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, meta)
}

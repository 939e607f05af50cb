// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package release

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/gravadora/internal/platform/request"
	"github.com/taibuivan/gravadora/internal/platform/respond"
	"github.com/taibuivan/gravadora/internal/platform/validate"
	"github.com/taibuivan/gravadora/pkg/date"
	"github.com/taibuivan/gravadora/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the release endpoints. Role guarding is applied by the caller.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listReleases)
	router.Post("/", handler.createRelease)
	router.Get("/{id}", handler.getRelease)
	router.Put("/{id}", handler.updateRelease)
	router.Delete("/{id}", handler.deleteRelease)
}

// listReleases accepts ?status=...&artista_id=...&de=YYYY-MM-DD&ate=YYYY-MM-DD&q=...
func (handler *Handler) listReleases(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	params := request.URL.Query()

	filter := Filter{
		Status:   Status(params.Get("status")),
		ArtistID: params.Get("artista_id"),
		Search:   params.Get("q"),
	}

	var err error
	if filter.From, err = optionalDate(params.Get(FieldFrom), FieldFrom); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if filter.To, err = optionalDate(params.Get(FieldTo), FieldTo); err != nil {
		respond.Error(writer, request, err)
		return
	}

	releases, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, releases, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func optionalDate(value, field string) (*date.Date, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := date.Parse(value)
	if err != nil {
		return nil, validate.RequiredError(field, "Must be a date in YYYY-MM-DD format")
	}
	return &parsed, nil
}

func (handler *Handler) getRelease(writer http.ResponseWriter, request *http.Request) {
	releaseID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	release, err := handler.service.Get(request.Context(), releaseID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, release)
}

func (handler *Handler) createRelease(writer http.ResponseWriter, request *http.Request) {
	var input Release
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

func (handler *Handler) updateRelease(writer http.ResponseWriter, request *http.Request) {
	releaseID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Release
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Update(request.Context(), releaseID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteRelease(writer http.ResponseWriter, request *http.Request) {
	releaseID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), releaseID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

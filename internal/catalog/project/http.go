// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/gravadora/internal/platform/request"
	"github.com/taibuivan/gravadora/internal/platform/respond"
	"github.com/taibuivan/gravadora/pkg/pagination"
	"github.com/taibuivan/gravadora/pkg/query"
	"github.com/taibuivan/gravadora/pkg/slice"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the project endpoints. Role guarding is applied by the caller.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listProjects)
	router.Post("/", handler.createProject)
	router.Get("/{id}", handler.getProject)
	router.Put("/{id}", handler.updateProject)
	router.Delete("/{id}", handler.deleteProject)
}

// listProjects accepts ?fase=gravacao,mixagem&artista_id=...&q=...
func (handler *Handler) listProjects(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	params := request.URL.Query()

	filter := Filter{
		Phases:   slice.Map(query.StringSlice(params.Get("fase")), func(v string) Phase { return Phase(v) }),
		ArtistID: params.Get("artista_id"),
		Search:   params.Get("q"),
	}

	projects, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, projects, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getProject(writer http.ResponseWriter, request *http.Request) {
	projectID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	project, err := handler.service.Get(request.Context(), projectID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, project)
}

func (handler *Handler) createProject(writer http.ResponseWriter, request *http.Request) {
	var input Project
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

func (handler *Handler) updateProject(writer http.ResponseWriter, request *http.Request) {
	projectID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Project
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Update(request.Context(), projectID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteProject(writer http.ResponseWriter, request *http.Request) {
	projectID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), projectID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

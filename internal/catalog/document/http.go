// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package document

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/gravadora/internal/platform/request"
	"github.com/taibuivan/gravadora/internal/platform/respond"
	"github.com/taibuivan/gravadora/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the document endpoints. Role guarding is applied by the caller.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listDocuments)
	router.Post("/", handler.createDocument)
	router.Get("/{id}", handler.getDocument)
	router.Get("/{id}/download", handler.downloadDocument)
	router.Delete("/{id}", handler.deleteDocument)
}

func (handler *Handler) listDocuments(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	params := request.URL.Query()

	filter := Filter{
		ProjectID: params.Get("projeto_id"),
		ArtistID:  params.Get("artista_id"),
		Search:    params.Get("q"),
	}

	documents, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, documents, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getDocument(writer http.ResponseWriter, request *http.Request) {
	documentID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	document, err := handler.service.Get(request.Context(), documentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, document)
}

func (handler *Handler) createDocument(writer http.ResponseWriter, request *http.Request) {
	uploader, err := requestutil.RequiredProfile(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	upload, err := handler.service.Create(request.Context(), uploader.ID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, upload)
}

// downloadLink is the body of a download answer.
type downloadLink struct {
	URL string `json:"url"`
}

// downloadDocument answers with a short-lived presigned URL.
func (handler *Handler) downloadDocument(writer http.ResponseWriter, request *http.Request) {
	documentID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	url, err := handler.service.DownloadURL(request.Context(), documentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, downloadLink{URL: url})
}

func (handler *Handler) deleteDocument(writer http.ResponseWriter, request *http.Request) {
	documentID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), documentID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

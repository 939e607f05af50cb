// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package budget

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

// RegisterRoutes mounts the budget endpoints. Role guarding is applied by the caller.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listBudgets)
	router.Post("/", handler.createBudget)
	router.Get("/{id}", handler.getBudget)
	router.Put("/{id}", handler.updateBudget)
	router.Delete("/{id}", handler.deleteBudget)
}

func (handler *Handler) listBudgets(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	params := request.URL.Query()

	filter := Filter{
		Status:    Status(params.Get("status")),
		ProjectID: params.Get("projeto_id"),
		Search:    params.Get("q"),
	}

	budgets, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, budgets, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getBudget(writer http.ResponseWriter, request *http.Request) {
	budgetID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	budget, err := handler.service.Get(request.Context(), budgetID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, budget)
}

func (handler *Handler) createBudget(writer http.ResponseWriter, request *http.Request) {
	author, err := requestutil.RequiredProfile(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Budget
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Create(request.Context(), author.ID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateBudget(writer http.ResponseWriter, request *http.Request) {
	budgetID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Budget
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Update(request.Context(), budgetID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteBudget(writer http.ResponseWriter, request *http.Request) {
	budgetID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), budgetID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

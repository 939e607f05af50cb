// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package payment

import (
	"net/http"
	"strconv"

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

// RegisterRoutes mounts the payment endpoints. Role guarding is applied by the caller.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listPayments)
	router.Post("/", handler.createPayment)
	router.Get("/{id}", handler.getPayment)
	router.Put("/{id}", handler.updatePayment)
	router.Delete("/{id}", handler.deletePayment)
	router.Post("/{id}/toggle", handler.togglePayment)
}

// listPayments accepts ?orcamento_id=...&status=...&vencidos=true
func (handler *Handler) listPayments(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	params := request.URL.Query()
	budgetID := params.Get("orcamento_id")

	var (
		payments []*Payment
		total    int
		err      error
	)

	if overdue, _ := strconv.ParseBool(params.Get("vencidos")); overdue {
		payments, total, err = handler.service.ListOverdue(request.Context(), budgetID, paginationParams.Limit, paginationParams.Offset())
	} else {
		filter := Filter{BudgetID: budgetID, Status: Status(params.Get("status"))}
		payments, total, err = handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, payments, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getPayment(writer http.ResponseWriter, request *http.Request) {
	paymentID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	payment, err := handler.service.Get(request.Context(), paymentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, payment)
}

func (handler *Handler) createPayment(writer http.ResponseWriter, request *http.Request) {
	var input Payment
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

func (handler *Handler) updatePayment(writer http.ResponseWriter, request *http.Request) {
	paymentID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Payment
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Update(request.Context(), paymentID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) togglePayment(writer http.ResponseWriter, request *http.Request) {
	paymentID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	payment, err := handler.service.Toggle(request.Context(), paymentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, payment)
}

func (handler *Handler) deletePayment(writer http.ResponseWriter, request *http.Request) {
	paymentID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), paymentID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

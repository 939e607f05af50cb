// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dashboard

import (
	"net/http"

	"github.com/taibuivan/gravadora/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetDashboard serves the home screen snapshot.
func (handler *Handler) GetDashboard(writer http.ResponseWriter, request *http.Request) {
	snapshot, err := handler.service.Dashboard(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, snapshot)
}

// GetFinancial serves the financial summary on its own.
func (handler *Handler) GetFinancial(writer http.ResponseWriter, request *http.Request) {
	summary, err := handler.service.Financial(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, summary)
}

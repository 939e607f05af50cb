// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/gravadora/internal/platform/metrics"
)

/*
TestMiddleware labels requests by route pattern rather than raw path.
*/
func TestMiddleware(t *testing.T) {
	m := metrics.New()

	router := chi.NewRouter()
	router.Use(m.Middleware)
	router.Get("/artistas/{id}", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
	})

	// 1. Two different IDs hit the same route
	for _, id := range []string{"a", "b"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/artistas/"+id, nil))
	}

	// 2. One series, counted twice
	counter := m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/artistas/{id}", "404")
	assert.Equal(t, 2.0, testutil.ToFloat64(counter))
}

/*
TestWidgetFailed increments per widget and is served on the handler.
*/
func TestWidgetFailed(t *testing.T) {
	m := metrics.New()

	m.WidgetFailed("financeiro")
	m.WidgetFailed("financeiro")
	m.WidgetFailed("artistas_ativos")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.DashboardWidgetFailures.WithLabelValues("financeiro")))

	recorder := httptest.NewRecorder()
	m.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `gravadora_dashboard_widget_failures_total{widget="financeiro"} 2`)
}

// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/gravadora/internal/platform/constants"
	"github.com/taibuivan/gravadora/internal/platform/respond"
)

// readinessTimeout caps the whole /ready probe, all checks included.
const readinessTimeout = 3 * time.Second

// HealthDependencies are the probes behind /ready. Nil probes are skipped,
// which is how a deployment without object storage stays ready.
type HealthDependencies struct {
	CheckDatabase func(ctx context.Context) error
	CheckCache    func(ctx context.Context) error
	CheckStorage  func(ctx context.Context) error
}

type probe struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// NewHealthHandlers returns the /health and /ready handlers.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	named := []struct {
		name  string
		check func(ctx context.Context) error
	}{
		{"postgres", deps.CheckDatabase},
		{"redis", deps.CheckCache},
		{"storage", deps.CheckStorage},
	}

	liveness = func(writer http.ResponseWriter, _ *http.Request) {
		respond.OK(writer, map[string]string{constants.FieldStatus: "ok"})
	}

	// Probes run concurrently; each writes only its own slot.
	readiness = func(writer http.ResponseWriter, request *http.Request) {
		ctx, cancel := context.WithTimeout(request.Context(), readinessTimeout)
		defer cancel()

		results := make([]*probe, len(named))
		var group errgroup.Group
		for i, dependency := range named {
			if dependency.check == nil {
				continue
			}
			group.Go(func() error {
				result := &probe{Name: dependency.name, OK: true}
				if err := dependency.check(ctx); err != nil {
					result.OK = false
					result.Error = err.Error()
					logger.ErrorContext(ctx, "readiness_check_failed",
						slog.String("dependency", dependency.name),
						slog.Any("error", err),
					)
				}
				results[i] = result
				return nil
			})
		}
		_ = group.Wait()

		status, code := "ready", http.StatusOK
		checks := make([]probe, 0, len(results))
		for _, result := range results {
			if result == nil {
				continue
			}
			if !result.OK {
				status, code = "degraded", http.StatusServiceUnavailable
			}
			checks = append(checks, *result)
		}

		respond.JSON(writer, code, respond.SuccessEnvelope{Data: map[string]any{
			constants.FieldStatus: status,
			constants.FieldChecks: checks,
		}})
	}

	return liveness, readiness
}

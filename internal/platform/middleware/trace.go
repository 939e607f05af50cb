// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware holds the HTTP chain shared by every back-office route.

Order matters. [RequestID] and [StructuredLogger] come first so that every
later log line carries the request ID, [Authenticate] fills in the caller,
and the Require guards sit on the route groups they protect.
*/
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/gravadora/internal/platform/constants"
	"github.com/taibuivan/gravadora/internal/platform/ctxutil"
	"github.com/taibuivan/gravadora/pkg/uuid"
)

// RequestID keeps a client-supplied X-Request-ID or mints a UUIDv7, and
// echoes it on the response.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requestID := request.Header.Get(constants.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.New()
			}

			writer.Header().Set(constants.HeaderXRequestID, requestID)
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithRequestID(request.Context(), requestID)))
		})
	}
}

// statusRecorder remembers the status written downstream.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

// caller is filled in by [Authenticate], which runs after StructuredLogger
// and so cannot hand values back through the context.
type caller struct {
	userID string
	role   string
}

type callerKey struct{}

func recordPrincipal(ctx context.Context, userID, role string) {
	if slot, ok := ctx.Value(callerKey{}).(*caller); ok {
		slot.userID = userID
		slot.role = role
	}
}

/*
StructuredLogger installs a request-scoped logger and writes one
"http_request_finished" line per request.

4xx responses log at WARN and 5xx at ERROR. The user and role are added when
the request was authenticated.
*/
func StructuredLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			started := time.Now()

			requestLogger := logger.With(
				slog.String("request_id", ctxutil.GetRequestID(request.Context())),
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
				slog.String("ip", RealIP(request)),
			)

			who := &caller{}
			ctx := context.WithValue(ctxutil.WithLogger(request.Context(), requestLogger), callerKey{}, who)
			recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

			next.ServeHTTP(recorder, request.WithContext(ctx))

			attrs := []slog.Attr{
				slog.Int("status", recorder.status),
				slog.Int64("latency_ms", time.Since(started).Milliseconds()),
				slog.String("user_agent", request.UserAgent()),
			}
			if who.userID != "" {
				attrs = append(attrs, slog.String("user_id", who.userID))
			}
			if who.role != "" {
				attrs = append(attrs, slog.String("role", who.role))
			}

			requestLogger.LogAttrs(ctx, levelFor(recorder.status), "http_request_finished", attrs...)
		})
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

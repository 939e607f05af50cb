// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package requestutil reads path parameters, bodies and the caller from requests.
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/gravadora/internal/platform/apperr"
	"github.com/taibuivan/gravadora/internal/platform/ctxutil"
	"github.com/taibuivan/gravadora/internal/platform/validate"
	"github.com/taibuivan/gravadora/internal/profile"
	"github.com/taibuivan/gravadora/pkg/uuid"
)

// DecodeJSON decodes the body into target. Malformed bodies are reported as
// [validate.ErrInvalidJSON] without the decoder's message.
func DecodeJSON(request *http.Request, target any) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// ID returns the path parameter name, which must be a UUID.
func ID(request *http.Request, name string) (string, error) {
	value := chi.URLParam(request, name)
	if !uuid.IsValid(value) {
		return "", apperr.ValidationError("Invalid identifier",
			apperr.FieldError{Field: name, Message: "must be a valid UUID"})
	}
	return value, nil
}

// RequiredProfile returns the caller's profile, or 401 when none was resolved.
func RequiredProfile(request *http.Request) (*profile.Profile, error) {
	current := ctxutil.GetProfile(request.Context())
	if current == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return current, nil
}

// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/gravadora/internal/platform/validate"
	"github.com/taibuivan/gravadora/pkg/pointer"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) List(ctx context.Context, filter Filter, limit, offset int) ([]*Artist, int, error) {
	return service.repo.List(ctx, filter, limit, offset)
}

func (service *Service) Get(ctx context.Context, id string) (*Artist, error) {
	return service.repo.Get(ctx, id)
}

func (service *Service) Create(ctx context.Context, artist *Artist) error {
	if err := prepare(artist); err != nil {
		return err
	}

	if err := service.repo.Create(ctx, artist); err != nil {
		return err
	}

	service.logger.Info("artist_created", slog.String("artist_id", artist.ID), slog.String("name", artist.Name))
	return nil
}

func (service *Service) Update(ctx context.Context, id string, artist *Artist) error {
	artist.ID = id
	if err := prepare(artist); err != nil {
		return err
	}

	if err := service.repo.Update(ctx, artist); err != nil {
		return err
	}

	service.logger.Info("artist_updated", slog.String("artist_id", artist.ID))
	return nil
}

func (service *Service) Delete(ctx context.Context, id string) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("artist_deleted", slog.String("artist_id", id))
	return nil
}

// prepare normalizes optional fields and runs the form checks.
// Uniqueness and references are left to the database.
func prepare(artist *Artist) error {
	artist.Name = strings.TrimSpace(artist.Name)
	artist.StageName = pointer.NilIfBlank(artist.StageName)
	artist.Genre = pointer.NilIfBlank(artist.Genre)
	artist.Email = pointer.NilIfBlank(artist.Email)
	artist.Phone = pointer.NilIfBlank(artist.Phone)
	artist.Notes = pointer.NilIfBlank(artist.Notes)
	if artist.Status == "" {
		artist.Status = StatusAtivo
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, artist.Name).MaxLen(FieldName, artist.Name, 200)
	validator.OneOf(FieldStatus, string(artist.Status), Statuses...)

	if artist.StageName != nil {
		validator.MaxLen(FieldStageName, *artist.StageName, 200)
	}
	if artist.Email != nil {
		lowered := strings.ToLower(*artist.Email)
		artist.Email = &lowered
		validator.Email(FieldEmail, lowered)
	}

	return validator.Err()
}

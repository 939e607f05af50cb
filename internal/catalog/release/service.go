// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package release

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

func (service *Service) List(ctx context.Context, filter Filter, limit, offset int) ([]*Release, int, error) {
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, 0, validate.RequiredError(FieldTo, "Must not be before de")
	}
	return service.repo.List(ctx, filter, limit, offset)
}

func (service *Service) Get(ctx context.Context, id string) (*Release, error) {
	return service.repo.Get(ctx, id)
}

func (service *Service) Create(ctx context.Context, release *Release) error {
	if err := prepare(release); err != nil {
		return err
	}

	if err := service.repo.Create(ctx, release); err != nil {
		return err
	}

	service.logger.Info("release_created",
		slog.String("release_id", release.ID),
		slog.String("artist_id", release.ArtistID),
		slog.String("date", release.Date.String()),
	)
	return nil
}

func (service *Service) Update(ctx context.Context, id string, release *Release) error {
	release.ID = id
	if err := prepare(release); err != nil {
		return err
	}

	if err := service.repo.Update(ctx, release); err != nil {
		return err
	}

	service.logger.Info("release_updated",
		slog.String("release_id", release.ID),
		slog.String("status", string(release.Status)),
	)
	return nil
}

func (service *Service) Delete(ctx context.Context, id string) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("release_deleted", slog.String("release_id", id))
	return nil
}

func prepare(release *Release) error {
	release.Title = strings.TrimSpace(release.Title)
	release.ProjectID = pointer.NilIfBlank(release.ProjectID)
	release.ArtistName = nil
	release.Platforms = normalizePlatforms(release.Platforms)
	if release.Status == "" {
		release.Status = StatusAgendado
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, release.Title).MaxLen(FieldTitle, release.Title, 200)
	validator.UUID(FieldArtistID, release.ArtistID)
	if release.ProjectID != nil {
		validator.UUID(FieldProjectID, *release.ProjectID)
	}
	validator.OneOf(FieldType, string(release.Type), Types...)
	validator.OneOf(FieldStatus, string(release.Status), Statuses...)
	validator.Custom(FieldDate, release.Date.IsZero(), "This field is required")
	for _, platform := range release.Platforms {
		validator.MaxLen(FieldPlatforms, platform, 50)
	}

	return validator.Err()
}

// normalizePlatforms trims names, drops blanks and repeats, and never returns nil
// because the column is NOT NULL.
func normalizePlatforms(platforms []string) []string {
	out := make([]string, 0, len(platforms))
	seen := make(map[string]bool, len(platforms))

	for _, platform := range platforms {
		name := strings.TrimSpace(platform)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}

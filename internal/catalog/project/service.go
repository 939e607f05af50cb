// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project

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

func (service *Service) List(ctx context.Context, filter Filter, limit, offset int) ([]*Project, int, error) {
	return service.repo.List(ctx, filter, limit, offset)
}

func (service *Service) Get(ctx context.Context, id string) (*Project, error) {
	return service.repo.Get(ctx, id)
}

func (service *Service) Create(ctx context.Context, project *Project) error {
	if err := prepare(project); err != nil {
		return err
	}

	if err := service.repo.Create(ctx, project); err != nil {
		return err
	}

	service.logger.Info("project_created",
		slog.String("project_id", project.ID),
		slog.String("artist_id", project.ArtistID),
		slog.String("phase", string(project.Phase)),
	)
	return nil
}

func (service *Service) Update(ctx context.Context, id string, project *Project) error {
	project.ID = id
	if err := prepare(project); err != nil {
		return err
	}

	if err := service.repo.Update(ctx, project); err != nil {
		return err
	}

	service.logger.Info("project_updated",
		slog.String("project_id", project.ID),
		slog.String("phase", string(project.Phase)),
	)
	return nil
}

func (service *Service) Delete(ctx context.Context, id string) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("project_deleted", slog.String("project_id", id))
	return nil
}

func prepare(project *Project) error {
	project.Title = strings.TrimSpace(project.Title)
	project.Description = pointer.NilIfBlank(project.Description)
	project.ArtistName = nil
	if project.Phase == "" {
		project.Phase = PhasePreProducao
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, project.Title).MaxLen(FieldTitle, project.Title, 200)
	validator.UUID(FieldArtistID, project.ArtistID)
	validator.Custom(FieldPhase, !project.Phase.IsValid(), "Unknown phase")

	if project.StartDate != nil && project.DueDate != nil {
		validator.Custom(FieldDueDate, project.DueDate.Before(*project.StartDate), "Must not be before data_inicio")
	}

	return validator.Err()
}

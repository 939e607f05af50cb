// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package budget

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

func (service *Service) List(ctx context.Context, filter Filter, limit, offset int) ([]*Budget, int, error) {
	return service.repo.List(ctx, filter, limit, offset)
}

func (service *Service) Get(ctx context.Context, id string) (*Budget, error) {
	return service.repo.Get(ctx, id)
}

// Create stores a budget authored by the profile createdBy.
func (service *Service) Create(ctx context.Context, createdBy string, budget *Budget) error {
	if err := prepare(budget); err != nil {
		return err
	}
	budget.CreatedBy = &createdBy

	if err := service.repo.Create(ctx, budget); err != nil {
		return err
	}

	service.logger.Info("budget_created",
		slog.String("budget_id", budget.ID),
		slog.String("project_id", budget.ProjectID),
		slog.Float64("total", budget.Total),
		slog.String("created_by", createdBy),
	)
	return nil
}

func (service *Service) Update(ctx context.Context, id string, budget *Budget) error {
	budget.ID = id
	if err := prepare(budget); err != nil {
		return err
	}

	if err := service.repo.Update(ctx, budget); err != nil {
		return err
	}

	service.logger.Info("budget_updated",
		slog.String("budget_id", budget.ID),
		slog.String("status", string(budget.Status)),
	)
	return nil
}

func (service *Service) Delete(ctx context.Context, id string) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("budget_deleted", slog.String("budget_id", id))
	return nil
}

func prepare(budget *Budget) error {
	budget.Title = strings.TrimSpace(budget.Title)
	budget.Notes = pointer.NilIfBlank(budget.Notes)
	budget.ProjectTitle = nil
	if budget.Status == "" {
		budget.Status = StatusPendente
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, budget.Title).MaxLen(FieldTitle, budget.Title, 200)
	validator.UUID(FieldProjectID, budget.ProjectID)
	validator.NonNegative(FieldTotal, budget.Total)
	validator.OneOf(FieldStatus, string(budget.Status), Statuses...)

	return validator.Err()
}

// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package payment

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/gravadora/internal/platform/apperr"
	"github.com/taibuivan/gravadora/internal/platform/validate"
	"github.com/taibuivan/gravadora/pkg/date"
)

type Service struct {
	repo     Repository
	location *time.Location
	logger   *slog.Logger
	now      func() time.Time
}

// NewService builds the payment service. Payment dates are stamped in location.
func NewService(repo Repository, location *time.Location, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		location: location,
		logger:   logger,
		now:      time.Now,
	}
}

func (service *Service) today() date.Date {
	return date.Of(service.now().In(service.location))
}

func (service *Service) List(ctx context.Context, filter Filter, limit, offset int) ([]*Payment, int, error) {
	return service.repo.List(ctx, filter, limit, offset)
}

// ListOverdue returns pending payments whose due date is before today.
func (service *Service) ListOverdue(ctx context.Context, budgetID string, limit, offset int) ([]*Payment, int, error) {
	today := service.today()
	return service.repo.List(ctx, Filter{BudgetID: budgetID, DueBefore: &today}, limit, offset)
}

func (service *Service) Get(ctx context.Context, id string) (*Payment, error) {
	return service.repo.Get(ctx, id)
}

func (service *Service) Create(ctx context.Context, payment *Payment) error {
	if err := service.prepare(payment); err != nil {
		return err
	}

	if err := service.repo.Create(ctx, payment); err != nil {
		return err
	}

	service.logger.Info("payment_created",
		slog.String("payment_id", payment.ID),
		slog.String("budget_id", payment.BudgetID),
		slog.Float64("amount", payment.Amount),
	)
	return nil
}

func (service *Service) Update(ctx context.Context, id string, payment *Payment) error {
	payment.ID = id
	if err := service.prepare(payment); err != nil {
		return err
	}

	if err := service.repo.Update(ctx, payment); err != nil {
		return err
	}

	service.logger.Info("payment_updated",
		slog.String("payment_id", payment.ID),
		slog.String("status", string(payment.Status)),
	)
	return nil
}

/*
Toggle flips the payment between pendente and pago (see [Toggle]).

The write is conditional on the status read, so two concurrent toggles
cannot both apply: the loser gets a CONFLICT and can reload.
*/
func (service *Service) Toggle(ctx context.Context, id string) (*Payment, error) {
	current, err := service.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next := Toggle(*current, service.today())

	updated, applied, err := service.repo.SetStatus(ctx, id, current.Status, next.Status, next.PaidDate)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, apperr.Conflict("Payment was changed by someone else; reload and try again")
	}

	service.logger.Info("payment_toggled",
		slog.String("payment_id", id),
		slog.String("from", string(current.Status)),
		slog.String("to", string(updated.Status)),
	)
	return updated, nil
}

func (service *Service) Delete(ctx context.Context, id string) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("payment_deleted", slog.String("payment_id", id))
	return nil
}

// prepare validates the form and keeps status and payment date consistent:
// a new pago row without a date is stamped today, a pendente row may not carry one.
func (service *Service) prepare(payment *Payment) error {
	payment.Description = strings.TrimSpace(payment.Description)
	if payment.Status == "" {
		payment.Status = StatusPendente
	}

	validator := &validate.Validator{}
	validator.UUID(FieldBudgetID, payment.BudgetID)
	validator.Required(FieldDescription, payment.Description).MaxLen(FieldDescription, payment.Description, 300)
	validator.NonNegative(FieldAmount, payment.Amount)
	validator.OneOf(FieldStatus, string(payment.Status), Statuses...)
	validator.Custom(FieldPaidDate, payment.Status == StatusPendente && payment.PaidDate != nil,
		"Must be empty while the payment is pendente")

	if err := validator.Err(); err != nil {
		return err
	}

	if payment.Status == StatusPago && payment.PaidDate == nil {
		today := service.today()
		payment.PaidDate = &today
	}
	return nil
}

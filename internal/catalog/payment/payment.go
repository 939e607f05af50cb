// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package payment manages the installments (pagamentos) of a budget.
package payment

import (
	"time"

	"github.com/taibuivan/gravadora/pkg/date"
)

// Status is the settlement state of a payment.
type Status string

const (
	StatusPendente Status = "pendente"
	StatusPago     Status = "pago"
)

// Statuses lists the accepted values, for validation messages.
var Statuses = []string{string(StatusPendente), string(StatusPago)}

// Payment is a row of the pagamentos table.
//
// PaidDate is set only while Status is pago; the table enforces it.
type Payment struct {
	ID          string     `json:"id"`
	BudgetID    string     `json:"orcamento_id"`
	Description string     `json:"descricao"`
	Amount      float64    `json:"valor"`
	Status      Status     `json:"status"`
	DueDate     *date.Date `json:"data_vencimento"`
	PaidDate    *date.Date `json:"data_pagamento"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Toggle flips a payment between pendente and pago.
//
// Paying stamps today unless a payment date is already recorded. Reverting
// to pendente clears the date.
func Toggle(p Payment, today date.Date) Payment {
	if p.Status == StatusPago {
		p.Status = StatusPendente
		p.PaidDate = nil
		return p
	}

	p.Status = StatusPago
	if p.PaidDate == nil {
		paid := today
		p.PaidDate = &paid
	}
	return p
}

// IsOverdue reports whether a pending payment's due date has passed.
func (p Payment) IsOverdue(today date.Date) bool {
	return p.Status == StatusPendente && p.DueDate != nil && p.DueDate.Before(today)
}

// Filter holds the parameters for a paginated payment search.
type Filter struct {
	BudgetID  string
	Status    Status
	DueBefore *date.Date // Only pending payments due strictly before this day
}

const (
	FieldBudgetID    = "orcamento_id"
	FieldDescription = "descricao"
	FieldAmount      = "valor"
	FieldStatus      = "status"
	FieldPaidDate    = "data_pagamento"
)

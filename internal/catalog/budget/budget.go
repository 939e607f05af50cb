// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package budget manages project budgets (orçamentos).
package budget

import "time"

// Status is the approval state of a budget.
type Status string

const (
	StatusPendente  Status = "pendente"
	StatusAprovado  Status = "aprovado"
	StatusRejeitado Status = "rejeitado"
)

// Statuses lists the accepted values, for validation messages.
var Statuses = []string{string(StatusPendente), string(StatusAprovado), string(StatusRejeitado)}

// Budget is a row of the orcamentos table, joined with its project's title.
type Budget struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"projeto_id"`
	ProjectTitle *string   `json:"projeto_titulo,omitempty"`
	Title        string    `json:"titulo"`
	Total        float64   `json:"valor_total"`
	Status       Status    `json:"status"`
	Notes        *string   `json:"observacoes"`
	CreatedBy    *string   `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Filter holds the parameters for a paginated budget search.
type Filter struct {
	Status    Status
	ProjectID string
	Search    string // Matched against titulo
}

const (
	FieldTitle     = "titulo"
	FieldProjectID = "projeto_id"
	FieldTotal     = "valor_total"
	FieldStatus    = "status"
)

// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package artist manages the label's roster.
package artist

import "time"

// Status marks whether an artist is currently on the roster.
type Status string

const (
	StatusAtivo   Status = "ativo"
	StatusInativo Status = "inativo"
)

// Statuses lists the accepted values, for validation messages.
var Statuses = []string{string(StatusAtivo), string(StatusInativo)}

// Artist is a row of the artistas table.
type Artist struct {
	ID        string    `json:"id"`
	Name      string    `json:"nome"`
	StageName *string   `json:"nome_artistico"`
	Genre     *string   `json:"genero"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"telefone"`
	Status    Status    `json:"status"`
	Notes     *string   `json:"observacoes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Filter holds the parameters for a paginated artist search.
type Filter struct {
	Status Status
	Search string // Matched against nome and nome_artistico
}

const (
	FieldName      = "nome"
	FieldStageName = "nome_artistico"
	FieldEmail     = "email"
	FieldStatus    = "status"
)

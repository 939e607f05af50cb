// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package project tracks recording projects through their production phases.
package project

import (
	"time"

	"github.com/taibuivan/gravadora/pkg/date"
)

// Phase is the production stage of a project.
type Phase string

const (
	PhasePreProducao  Phase = "pre_producao"
	PhaseGravacao     Phase = "gravacao"
	PhaseMixagem      Phase = "mixagem"
	PhaseMasterizacao Phase = "masterizacao"
	PhaseFinalizado   Phase = "finalizado"
	PhaseLancado      Phase = "lancado"
)

// Phases lists every phase in production order.
var Phases = []Phase{
	PhasePreProducao, PhaseGravacao, PhaseMixagem, PhaseMasterizacao, PhaseFinalizado, PhaseLancado,
}

// IsFinished reports whether no more production work is expected.
func (p Phase) IsFinished() bool {
	return p == PhaseFinalizado || p == PhaseLancado
}

// IsValid reports whether p is one of [Phases].
func (p Phase) IsValid() bool {
	for _, phase := range Phases {
		if p == phase {
			return true
		}
	}
	return false
}

// Project is a row of the projetos table, joined with its artist's name.
type Project struct {
	ID          string     `json:"id"`
	Title       string     `json:"titulo"`
	ArtistID    string     `json:"artista_id"`
	ArtistName  *string    `json:"artista_nome,omitempty"`
	Phase       Phase      `json:"fase"`
	StartDate   *date.Date `json:"data_inicio"`
	DueDate     *date.Date `json:"data_prevista"`
	Description *string    `json:"descricao"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Filter holds the parameters for a paginated project search.
type Filter struct {
	Phases   []Phase
	ArtistID string
	Search   string // Matched against titulo
}

const (
	FieldTitle    = "titulo"
	FieldArtistID = "artista_id"
	FieldPhase    = "fase"
	FieldDueDate  = "data_prevista"
)

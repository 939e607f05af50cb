// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package release manages the release schedule (lançamentos).
package release

import (
	"time"

	"github.com/taibuivan/gravadora/pkg/date"
)

// Type is the format of a release.
type Type string

const (
	TypeSingle Type = "single"
	TypeEP     Type = "ep"
	TypeAlbum  Type = "album"
)

// Types lists the accepted formats, for validation messages.
var Types = []string{string(TypeSingle), string(TypeEP), string(TypeAlbum)}

// Status is whether the release already went out.
type Status string

const (
	StatusAgendado Status = "agendado"
	StatusLancado  Status = "lancado"
)

// Statuses lists the accepted values, for validation messages.
var Statuses = []string{string(StatusAgendado), string(StatusLancado)}

// Release is a row of the lancamentos table, joined with its artist's name.
type Release struct {
	ID         string    `json:"id"`
	Title      string    `json:"titulo"`
	ArtistID   string    `json:"artista_id"`
	ArtistName *string   `json:"artista_nome,omitempty"`
	ProjectID  *string   `json:"projeto_id"`
	Type       Type      `json:"tipo"`
	Date       date.Date `json:"data_lancamento"`
	Platforms  []string  `json:"plataformas"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Filter holds the parameters for a paginated release search.
// From and To bound data_lancamento inclusively.
type Filter struct {
	Status   Status
	ArtistID string
	From     *date.Date
	To       *date.Date
	Search   string // Matched against titulo
}

const (
	FieldTitle     = "titulo"
	FieldArtistID  = "artista_id"
	FieldProjectID = "projeto_id"
	FieldType      = "tipo"
	FieldDate      = "data_lancamento"
	FieldPlatforms = "plataformas"
	FieldStatus    = "status"
	FieldFrom      = "de"
	FieldTo        = "ate"
)

// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ArtistaTable represents the 'public.artistas' table.
type ArtistaTable struct {
	Table         string
	ID            string
	Nome          string
	NomeArtistico string
	Genero        string
	Email         string
	Telefone      string
	Status        string
	Observacoes   string
	CreatedAt     string
	UpdatedAt     string
}

// Artista is the schema definition for public.artistas.
var Artista = ArtistaTable{
	Table:         "public.artistas",
	ID:            "id",
	Nome:          "nome",
	NomeArtistico: "nome_artistico",
	Genero:        "genero",
	Email:         "email",
	Telefone:      "telefone",
	Status:        "status",
	Observacoes:   "observacoes",
	CreatedAt:     "created_at",
	UpdatedAt:     "updated_at",
}

// Columns returns every column in table order.
func (t ArtistaTable) Columns() []string {
	return []string{t.ID, t.Nome, t.NomeArtistico, t.Genero, t.Email, t.Telefone, t.Status, t.Observacoes, t.CreatedAt, t.UpdatedAt}
}

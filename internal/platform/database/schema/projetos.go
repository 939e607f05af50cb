// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ProjetoTable represents the 'public.projetos' table.
type ProjetoTable struct {
	Table        string
	ID           string
	Titulo       string
	ArtistaID    string
	Fase         string
	DataInicio   string
	DataPrevista string
	Descricao    string
	CreatedAt    string
	UpdatedAt    string
}

// Projeto is the schema definition for public.projetos.
var Projeto = ProjetoTable{
	Table:        "public.projetos",
	ID:           "id",
	Titulo:       "titulo",
	ArtistaID:    "artista_id",
	Fase:         "fase",
	DataInicio:   "data_inicio",
	DataPrevista: "data_prevista",
	Descricao:    "descricao",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
}

// Columns returns every column in table order.
func (t ProjetoTable) Columns() []string {
	return []string{t.ID, t.Titulo, t.ArtistaID, t.Fase, t.DataInicio, t.DataPrevista, t.Descricao, t.CreatedAt, t.UpdatedAt}
}

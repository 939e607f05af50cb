// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// LancamentoTable represents the 'public.lancamentos' table.
type LancamentoTable struct {
	Table          string
	ID             string
	Titulo         string
	ArtistaID      string
	ProjetoID      string
	Tipo           string
	DataLancamento string
	Plataformas    string
	Status         string
	CreatedAt      string
	UpdatedAt      string
}

// Lancamento is the schema definition for public.lancamentos.
var Lancamento = LancamentoTable{
	Table:          "public.lancamentos",
	ID:             "id",
	Titulo:         "titulo",
	ArtistaID:      "artista_id",
	ProjetoID:      "projeto_id",
	Tipo:           "tipo",
	DataLancamento: "data_lancamento",
	Plataformas:    "plataformas",
	Status:         "status",
	CreatedAt:      "created_at",
	UpdatedAt:      "updated_at",
}

// Columns returns every column in table order.
func (t LancamentoTable) Columns() []string {
	return []string{t.ID, t.Titulo, t.ArtistaID, t.ProjetoID, t.Tipo, t.DataLancamento, t.Plataformas, t.Status, t.CreatedAt, t.UpdatedAt}
}

// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// OrcamentoTable represents the 'public.orcamentos' table.
type OrcamentoTable struct {
	Table       string
	ID          string
	ProjetoID   string
	Titulo      string
	ValorTotal  string
	Status      string
	Observacoes string
	CreatedBy   string
	CreatedAt   string
	UpdatedAt   string
}

// Orcamento is the schema definition for public.orcamentos.
var Orcamento = OrcamentoTable{
	Table:       "public.orcamentos",
	ID:          "id",
	ProjetoID:   "projeto_id",
	Titulo:      "titulo",
	ValorTotal:  "valor_total",
	Status:      "status",
	Observacoes: "observacoes",
	CreatedBy:   "created_by",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

// Columns returns every column in table order.
func (t OrcamentoTable) Columns() []string {
	return []string{t.ID, t.ProjetoID, t.Titulo, t.ValorTotal, t.Status, t.Observacoes, t.CreatedBy, t.CreatedAt, t.UpdatedAt}
}

// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// PagamentoTable represents the 'public.pagamentos' table.
type PagamentoTable struct {
	Table          string
	ID             string
	OrcamentoID    string
	Descricao      string
	Valor          string
	Status         string
	DataVencimento string
	DataPagamento  string
	CreatedAt      string
	UpdatedAt      string
}

// Pagamento is the schema definition for public.pagamentos.
var Pagamento = PagamentoTable{
	Table:          "public.pagamentos",
	ID:             "id",
	OrcamentoID:    "orcamento_id",
	Descricao:      "descricao",
	Valor:          "valor",
	Status:         "status",
	DataVencimento: "data_vencimento",
	DataPagamento:  "data_pagamento",
	CreatedAt:      "created_at",
	UpdatedAt:      "updated_at",
}

// Columns returns every column in table order.
func (t PagamentoTable) Columns() []string {
	return []string{t.ID, t.OrcamentoID, t.Descricao, t.Valor, t.Status, t.DataVencimento, t.DataPagamento, t.CreatedAt, t.UpdatedAt}
}

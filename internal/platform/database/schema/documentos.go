// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// DocumentoTable represents the 'public.documentos' table.
type DocumentoTable struct {
	Table       string
	ID          string
	Titulo      string
	ProjetoID   string
	ArtistaID   string
	StorageKey  string
	ContentType string
	Tamanho     string
	UploadedBy  string
	CreatedAt   string
}

// Documento is the schema definition for public.documentos.
var Documento = DocumentoTable{
	Table:       "public.documentos",
	ID:          "id",
	Titulo:      "titulo",
	ProjetoID:   "projeto_id",
	ArtistaID:   "artista_id",
	StorageKey:  "storage_key",
	ContentType: "content_type",
	Tamanho:     "tamanho",
	UploadedBy:  "uploaded_by",
	CreatedAt:   "created_at",
}

// Columns returns every column in table order.
func (t DocumentoTable) Columns() []string {
	return []string{t.ID, t.Titulo, t.ProjetoID, t.ArtistaID, t.StorageKey, t.ContentType, t.Tamanho, t.UploadedBy, t.CreatedAt}
}

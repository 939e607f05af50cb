// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package document keeps contracts, riders and other files attached to
projects and artists.

The file body lives in object storage. A row in documentos records where,
and the API hands out short-lived presigned URLs for upload and download.
*/
package document

import "time"

// MaxSize caps the declared size of an upload.
const MaxSize int64 = 100 << 20

// Document is a row of the documentos table.
type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"titulo"`
	ProjectID   *string   `json:"projeto_id"`
	ArtistID    *string   `json:"artista_id"`
	StorageKey  string    `json:"-"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"tamanho"`
	UploadedBy  *string   `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateInput describes a file about to be uploaded.
type CreateInput struct {
	Title       string  `json:"titulo"`
	ProjectID   *string `json:"projeto_id"`
	ArtistID    *string `json:"artista_id"`
	FileName    string  `json:"arquivo"`
	ContentType string  `json:"content_type"`
	Size        int64   `json:"tamanho"`
}

// Upload is the answer to a create: the stored row plus where to PUT the body.
type Upload struct {
	Document  *Document `json:"documento"`
	UploadURL string    `json:"upload_url"`
}

// Filter holds the parameters for a paginated document search.
type Filter struct {
	ProjectID string
	ArtistID  string
	Search    string // Matched against titulo
}

const (
	FieldTitle       = "titulo"
	FieldProjectID   = "projeto_id"
	FieldArtistID    = "artista_id"
	FieldFileName    = "arquivo"
	FieldContentType = "content_type"
	FieldSize        = "tamanho"
)

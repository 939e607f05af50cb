// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package document

import "context"

// Repository is the persistence contract for document rows.
type Repository interface {
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Document, int, error)
	Get(ctx context.Context, id string) (*Document, error)
	Create(ctx context.Context, document *Document) error
	Delete(ctx context.Context, id string) error
}

// Storage holds the file bodies. [storage.S3] implements it.
type Storage interface {
	PresignPut(ctx context.Context, key, contentType string, size int64) (string, error)
	PresignGet(ctx context.Context, key, filename string) (string, error)
	Delete(ctx context.Context, key string) error
}

// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package document

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"path"
	"strings"

	"github.com/taibuivan/gravadora/internal/platform/apperr"
	"github.com/taibuivan/gravadora/internal/platform/validate"
	"github.com/taibuivan/gravadora/pkg/pointer"
	"github.com/taibuivan/gravadora/pkg/slug"
	"github.com/taibuivan/gravadora/pkg/uuid"
)

// keyPrefix groups every document object in the bucket.
const keyPrefix = "documentos/"

var errStorageDisabled = apperr.ServiceUnavailable("Document storage is not configured")

type Service struct {
	repo    Repository
	objects Storage
	logger  *slog.Logger
}

// NewService builds the document service. A nil objects store keeps listing
// available and answers 503 for anything that touches file bodies.
func NewService(repo Repository, objects Storage, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		objects: objects,
		logger:  logger,
	}
}

func (service *Service) List(ctx context.Context, filter Filter, limit, offset int) ([]*Document, int, error) {
	return service.repo.List(ctx, filter, limit, offset)
}

func (service *Service) Get(ctx context.Context, id string) (*Document, error) {
	return service.repo.Get(ctx, id)
}

/*
Create records a document and returns a presigned URL to upload its body.

The URL is signed before the row is written, so a signing failure leaves
nothing behind. A row whose upload never happens points at a missing object;
downloads then fail at the storage side and the row can be deleted.
*/
func (service *Service) Create(ctx context.Context, uploadedBy string, input CreateInput) (*Upload, error) {
	if service.objects == nil {
		return nil, errStorageDisabled
	}

	document, err := prepare(input)
	if err != nil {
		return nil, err
	}
	document.UploadedBy = &uploadedBy

	uploadURL, err := service.objects.PresignPut(ctx, document.StorageKey, document.ContentType, document.Size)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("document_presign_failed: %w", err))
	}

	if err := service.repo.Create(ctx, document); err != nil {
		return nil, err
	}

	service.logger.Info("document_created",
		slog.String("document_id", document.ID),
		slog.String("storage_key", document.StorageKey),
		slog.Int64("size", document.Size),
		slog.String("uploaded_by", uploadedBy),
	)

	return &Upload{Document: document, UploadURL: uploadURL}, nil
}

// DownloadURL returns a presigned URL serving the body as an attachment.
func (service *Service) DownloadURL(ctx context.Context, id string) (string, error) {
	if service.objects == nil {
		return "", errStorageDisabled
	}

	document, err := service.repo.Get(ctx, id)
	if err != nil {
		return "", err
	}

	url, err := service.objects.PresignGet(ctx, document.StorageKey, downloadName(document))
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("document_presign_failed: %w", err))
	}
	return url, nil
}

// Delete removes the stored object, then the row. If the object removal
// fails the row stays, so the file is never orphaned without a record.
func (service *Service) Delete(ctx context.Context, id string) error {
	if service.objects == nil {
		return errStorageDisabled
	}

	document, err := service.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := service.objects.Delete(ctx, document.StorageKey); err != nil {
		return apperr.Internal(fmt.Errorf("document_object_delete_failed: %w", err))
	}

	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("document_deleted",
		slog.String("document_id", id),
		slog.String("storage_key", document.StorageKey),
	)
	return nil
}

func prepare(input CreateInput) (*Document, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.FileName = strings.TrimSpace(input.FileName)
	input.ProjectID = pointer.NilIfBlank(input.ProjectID)
	input.ArtistID = pointer.NilIfBlank(input.ArtistID)
	input.ContentType = strings.TrimSpace(input.ContentType)

	extension := strings.ToLower(path.Ext(input.FileName))
	if input.ContentType == "" {
		input.ContentType = mime.TypeByExtension(extension)
	}
	if input.ContentType == "" {
		input.ContentType = "application/octet-stream"
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 200)
	validator.Required(FieldFileName, input.FileName).MaxLen(FieldFileName, input.FileName, 255)
	validator.Custom(FieldSize, input.Size < 0 || input.Size > MaxSize,
		fmt.Sprintf("Must be between 0 and %d bytes", MaxSize))
	if input.ProjectID != nil {
		validator.UUID(FieldProjectID, *input.ProjectID)
	}
	if input.ArtistID != nil {
		validator.UUID(FieldArtistID, *input.ArtistID)
	}
	if _, _, err := mime.ParseMediaType(input.ContentType); err != nil {
		validator.Custom(FieldContentType, true, "Must be a valid media type")
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	return &Document{
		Title:       input.Title,
		ProjectID:   input.ProjectID,
		ArtistID:    input.ArtistID,
		StorageKey:  storageKey(input.FileName),
		ContentType: input.ContentType,
		Size:        input.Size,
	}, nil
}

// storageKey builds "documentos/<uuid>/<slug><ext>". The UUID keeps keys unique
// and the slug keeps them readable in the bucket console.
func storageKey(fileName string) string {
	extension := strings.ToLower(path.Ext(fileName))
	base := slug.From(strings.TrimSuffix(fileName, path.Ext(fileName)))
	if base == "" {
		base = "arquivo"
	}
	return keyPrefix + uuid.New() + "/" + base + extension
}

// downloadName names the attachment after the title, keeping the stored extension.
func downloadName(document *Document) string {
	name := slug.From(document.Title)
	if name == "" {
		name = "documento"
	}
	return name + path.Ext(document.StorageKey)
}

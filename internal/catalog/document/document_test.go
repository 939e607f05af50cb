// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package document_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/gravadora/internal/catalog/document"
	"github.com/taibuivan/gravadora/internal/platform/apperr"
	"github.com/taibuivan/gravadora/internal/platform/ctxutil"
	"github.com/taibuivan/gravadora/internal/platform/sec"
	"github.com/taibuivan/gravadora/internal/profile"
	"github.com/taibuivan/gravadora/pkg/uuid"
)

type memoryRepository struct {
	rows map[string]document.Document
}

func (m *memoryRepository) List(_ context.Context, _ document.Filter, _, _ int) ([]*document.Document, int, error) {
	out := []*document.Document{}
	for _, row := range m.rows {
		copied := row
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (m *memoryRepository) Get(_ context.Context, id string) (*document.Document, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, apperr.NotFound("Document")
	}
	return &row, nil
}

func (m *memoryRepository) Create(_ context.Context, d *document.Document) error {
	d.ID = uuid.New()
	d.CreatedAt = time.Now()
	m.rows[d.ID] = *d
	return nil
}

func (m *memoryRepository) Delete(_ context.Context, id string) error {
	if _, ok := m.rows[id]; !ok {
		return apperr.NotFound("Document")
	}
	delete(m.rows, id)
	return nil
}

type fakeStorage struct {
	deleted   []string
	deleteErr error
	lastName  string
}

func (f *fakeStorage) PresignPut(_ context.Context, key, contentType string, _ int64) (string, error) {
	return "https://bucket.example/" + key + "?type=" + contentType, nil
}

func (f *fakeStorage) PresignGet(_ context.Context, key, filename string) (string, error) {
	f.lastName = filename
	return "https://bucket.example/" + key + "?download", nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, key)
	return nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(objects document.Storage) (*document.Service, *memoryRepository) {
	repo := &memoryRepository{rows: make(map[string]document.Document)}
	return document.NewService(repo, objects, discard()), repo
}

/*
TestCreate_StorageKey builds a readable, unique key and infers the media type.
*/
func TestCreate_StorageKey(t *testing.T) {
	service, _ := newService(&fakeStorage{})
	uploader := uuid.New()

	upload, err := service.Create(context.Background(), uploader, document.CreateInput{
		Title:    "Contrato",
		FileName: "Contrato de Gravação.PDF",
		Size:     2048,
	})
	require.NoError(t, err)

	key := upload.Document.StorageKey
	assert.True(t, strings.HasPrefix(key, "documentos/"), key)
	assert.True(t, strings.HasSuffix(key, "/contrato-de-gravacao.pdf"), key)
	assert.Equal(t, "application/pdf", upload.Document.ContentType)
	assert.Equal(t, uploader, *upload.Document.UploadedBy)
	assert.Contains(t, upload.UploadURL, key)
}

/*
TestCreate_Validation rejects oversized files and bad references.
*/
func TestCreate_Validation(t *testing.T) {
	service, repo := newService(&fakeStorage{})
	bad := "42"

	_, err := service.Create(context.Background(), uuid.New(), document.CreateInput{
		Title:     "Rider",
		FileName:  "rider.pdf",
		Size:      document.MaxSize + 1,
		ProjectID: &bad,
	})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	fields := []string{}
	for _, detail := range ae.Details {
		fields = append(fields, detail.Field)
	}
	assert.ElementsMatch(t, []string{document.FieldSize, document.FieldProjectID}, fields)
	assert.Empty(t, repo.rows)
}

/*
TestDelete_RemovesObjectThenRow keeps the row when the object cannot be removed.
*/
func TestDelete_RemovesObjectThenRow(t *testing.T) {
	objects := &fakeStorage{}
	service, repo := newService(objects)
	ctx := context.Background()

	upload, err := service.Create(ctx, uuid.New(), document.CreateInput{Title: "Capa", FileName: "capa.png"})
	require.NoError(t, err)
	id := upload.Document.ID

	// 1. Storage failure leaves the row in place
	objects.deleteErr = errors.New("bucket unreachable")
	require.Error(t, service.Delete(ctx, id))
	assert.Contains(t, repo.rows, id)

	// 2. Successful delete removes both
	objects.deleteErr = nil
	require.NoError(t, service.Delete(ctx, id))
	assert.Equal(t, []string{upload.Document.StorageKey}, objects.deleted)
	assert.NotContains(t, repo.rows, id)
}

/*
TestStorageDisabled answers 503 for body operations but still lists.
*/
func TestStorageDisabled(t *testing.T) {
	service, _ := newService(nil)
	ctx := context.Background()

	_, err := service.Create(ctx, uuid.New(), document.CreateInput{Title: "X", FileName: "x.txt"})
	assert.Equal(t, http.StatusServiceUnavailable, apperr.As(err).HTTPStatus)

	_, err = service.DownloadURL(ctx, uuid.New())
	assert.Equal(t, http.StatusServiceUnavailable, apperr.As(err).HTTPStatus)

	_, total, err := service.List(ctx, document.Filter{}, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}

/*
TestHTTP_UploadAndDownload requires a profile to upload and returns download links.
*/
func TestHTTP_UploadAndDownload(t *testing.T) {
	objects := &fakeStorage{}
	service, _ := newService(objects)

	router := chi.NewRouter()
	router.Route("/documentos", document.NewHandler(service).RegisterRoutes)

	body := `{"titulo":"Ficha Técnica","arquivo":"ficha.xlsx","tamanho":512}`

	// 1. Anonymous upload is refused
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/documentos/", strings.NewReader(body)))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// 2. Upload as a producer
	request := httptest.NewRequest(http.MethodPost, "/documentos/", strings.NewReader(body))
	request = request.WithContext(ctxutil.WithProfile(request.Context(), &profile.Profile{ID: uuid.New(), Role: sec.RoleProducao}))
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"upload_url":"https://bucket.example/documentos/`)
	assert.NotContains(t, recorder.Body.String(), "storage_key")

	_, total, err := service.List(context.Background(), document.Filter{}, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	documents, _, _ := service.List(context.Background(), document.Filter{}, 10, 0)

	// 3. Download link is named after the title
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/documentos/"+documents[0].ID+"/download", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"url":"https://bucket.example/documentos/`)
	assert.Equal(t, "ficha-tecnica.xlsx", objects.lastName)
}

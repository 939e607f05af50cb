// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package release_test

import (
	"context"
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

	"github.com/taibuivan/gravadora/internal/catalog/release"
	"github.com/taibuivan/gravadora/internal/platform/apperr"
	"github.com/taibuivan/gravadora/pkg/date"
	"github.com/taibuivan/gravadora/pkg/pointer"
	"github.com/taibuivan/gravadora/pkg/uuid"
)

type memoryRepository struct {
	rows       map[string]release.Release
	lastFilter release.Filter
}

func (m *memoryRepository) List(_ context.Context, filter release.Filter, _, _ int) ([]*release.Release, int, error) {
	m.lastFilter = filter
	out := []*release.Release{}
	for _, row := range m.rows {
		copied := row
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (m *memoryRepository) Get(_ context.Context, id string) (*release.Release, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, apperr.NotFound("Release")
	}
	return &row, nil
}

func (m *memoryRepository) Create(_ context.Context, r *release.Release) error {
	r.ID = uuid.New()
	m.rows[r.ID] = *r
	return nil
}

func (m *memoryRepository) Update(_ context.Context, r *release.Release) error {
	m.rows[r.ID] = *r
	return nil
}

func (m *memoryRepository) Delete(_ context.Context, id string) error {
	delete(m.rows, id)
	return nil
}

func newService() (*release.Service, *memoryRepository) {
	repo := &memoryRepository{rows: make(map[string]release.Release)}
	return release.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

/*
TestCreate_NormalizesPlatforms trims, dedupes case-insensitively and never stores nil.
*/
func TestCreate_NormalizesPlatforms(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	single := &release.Release{
		Title:     "Primeiro Single",
		ArtistID:  uuid.New(),
		ProjectID: pointer.To(""),
		Type:      release.TypeSingle,
		Date:      date.New(2026, time.June, 5),
		Platforms: []string{" Spotify", "spotify", "", "Deezer "},
	}
	require.NoError(t, service.Create(ctx, single))

	assert.Equal(t, []string{"Spotify", "Deezer"}, single.Platforms)
	assert.Equal(t, release.StatusAgendado, single.Status)
	assert.Nil(t, single.ProjectID)

	bare := &release.Release{Title: "EP", ArtistID: uuid.New(), Type: release.TypeEP, Date: date.New(2026, time.July, 1)}
	require.NoError(t, service.Create(ctx, bare))
	assert.NotNil(t, bare.Platforms)
	assert.Empty(t, bare.Platforms)
}

/*
TestCreate_Validation requires a date and a known type.
*/
func TestCreate_Validation(t *testing.T) {
	service, repo := newService()

	err := service.Create(context.Background(), &release.Release{
		Title:    "Sem data",
		ArtistID: uuid.New(),
		Type:     "mixtape",
	})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	fields := []string{}
	for _, detail := range ae.Details {
		fields = append(fields, detail.Field)
	}
	assert.ElementsMatch(t, []string{release.FieldType, release.FieldDate}, fields)
	assert.Empty(t, repo.rows)
}

/*
TestHTTP_ListDateRange parses the de/ate bounds and rejects reversed or malformed ranges.
*/
func TestHTTP_ListDateRange(t *testing.T) {
	service, repo := newService()

	router := chi.NewRouter()
	router.Route("/lancamentos", release.NewHandler(service).RegisterRoutes)

	// 1. Valid range reaches the repository
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/lancamentos/?de=2026-05-01&ate=2026-05-31", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, repo.lastFilter.From)
	assert.Equal(t, "2026-05-01", repo.lastFilter.From.String())
	assert.Equal(t, "2026-05-31", repo.lastFilter.To.String())

	// 2. Reversed range
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/lancamentos/?de=2026-05-31&ate=2026-05-01", nil))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	// 3. Malformed date
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/lancamentos/?de=maio", nil))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

/*
TestHTTP_Create decodes the release date and platform list.
*/
func TestHTTP_Create(t *testing.T) {
	service, _ := newService()

	router := chi.NewRouter()
	router.Route("/lancamentos", release.NewHandler(service).RegisterRoutes)

	body := `{"titulo":"Álbum","artista_id":"` + uuid.New() + `","tipo":"album","data_lancamento":"2026-11-20","plataformas":["Spotify"]}`
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/lancamentos/", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"data_lancamento":"2026-11-20"`)
	assert.Contains(t, recorder.Body.String(), `"plataformas":["Spotify"]`)
}

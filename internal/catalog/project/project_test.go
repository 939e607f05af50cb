// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project_test

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

	"github.com/taibuivan/gravadora/internal/catalog/project"
	"github.com/taibuivan/gravadora/internal/platform/apperr"
	"github.com/taibuivan/gravadora/pkg/date"
	"github.com/taibuivan/gravadora/pkg/pointer"
	"github.com/taibuivan/gravadora/pkg/uuid"
)

type memoryRepository struct {
	rows       map[string]project.Project
	lastFilter project.Filter
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{rows: make(map[string]project.Project)}
}

func (m *memoryRepository) List(_ context.Context, filter project.Filter, _, _ int) ([]*project.Project, int, error) {
	m.lastFilter = filter
	out := []*project.Project{}
	for _, row := range m.rows {
		copied := row
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (m *memoryRepository) Get(_ context.Context, id string) (*project.Project, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, apperr.NotFound("Project")
	}
	return &row, nil
}

func (m *memoryRepository) Create(_ context.Context, p *project.Project) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	m.rows[p.ID] = *p
	return nil
}

func (m *memoryRepository) Update(_ context.Context, p *project.Project) error {
	if _, ok := m.rows[p.ID]; !ok {
		return apperr.NotFound("Project")
	}
	m.rows[p.ID] = *p
	return nil
}

func (m *memoryRepository) Delete(_ context.Context, id string) error {
	if _, ok := m.rows[id]; !ok {
		return apperr.NotFound("Project")
	}
	delete(m.rows, id)
	return nil
}

func newService() (*project.Service, *memoryRepository) {
	repo := newMemoryRepository()
	return project.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

/*
TestPhase_IsFinished treats finalizado and lancado as finished.
*/
func TestPhase_IsFinished(t *testing.T) {
	finished := map[project.Phase]bool{
		project.PhasePreProducao:  false,
		project.PhaseGravacao:     false,
		project.PhaseMixagem:      false,
		project.PhaseMasterizacao: false,
		project.PhaseFinalizado:   true,
		project.PhaseLancado:      true,
	}

	for phase, want := range finished {
		assert.Equal(t, want, phase.IsFinished(), phase)
		assert.True(t, phase.IsValid(), phase)
	}
	assert.False(t, project.Phase("arquivado").IsValid())
}

/*
TestCreate_DefaultsPhase starts new projects in pre-production.
*/
func TestCreate_DefaultsPhase(t *testing.T) {
	service, _ := newService()

	input := &project.Project{Title: "Disco novo", ArtistID: uuid.New(), Description: pointer.To(" ")}
	require.NoError(t, service.Create(context.Background(), input))

	assert.Equal(t, project.PhasePreProducao, input.Phase)
	assert.Nil(t, input.Description)
}

/*
TestCreate_Validation covers the shallow form checks.
*/
func TestCreate_Validation(t *testing.T) {
	start := date.New(2026, time.March, 10)
	before := date.New(2026, time.March, 1)

	tests := []struct {
		name  string
		input project.Project
		field string
	}{
		{"missing_title", project.Project{ArtistID: uuid.New()}, project.FieldTitle},
		{"bad_artist", project.Project{Title: "X", ArtistID: "42"}, project.FieldArtistID},
		{"bad_phase", project.Project{Title: "X", ArtistID: uuid.New(), Phase: "arquivado"}, project.FieldPhase},
		{"due_before_start", project.Project{Title: "X", ArtistID: uuid.New(), StartDate: &start, DueDate: &before}, project.FieldDueDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newService()

			ae := apperr.As(service.Create(context.Background(), &tt.input))
			require.NotNil(t, ae)
			require.Len(t, ae.Details, 1)
			assert.Equal(t, tt.field, ae.Details[0].Field)
		})
	}
}

/*
TestHTTP_ListPhaseFilter parses the comma-separated fase parameter.
*/
func TestHTTP_ListPhaseFilter(t *testing.T) {
	service, repo := newService()

	router := chi.NewRouter()
	router.Route("/projetos", project.NewHandler(service).RegisterRoutes)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/projetos/?fase=gravacao,mixagem&q=disco", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, []project.Phase{project.PhaseGravacao, project.PhaseMixagem}, repo.lastFilter.Phases)
	assert.Equal(t, "disco", repo.lastFilter.Search)
}

/*
TestHTTP_CreateDates accepts YYYY-MM-DD dates and echoes them back.
*/
func TestHTTP_CreateDates(t *testing.T) {
	service, _ := newService()

	router := chi.NewRouter()
	router.Route("/projetos", project.NewHandler(service).RegisterRoutes)

	body := `{"titulo":"EP","artista_id":"` + uuid.New() + `","data_prevista":"2026-12-01","data_inicio":null}`
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/projetos/", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"data_prevista":"2026-12-01"`)
	assert.Contains(t, recorder.Body.String(), `"data_inicio":null`)
}

// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package dashboard aggregates the home screen and the financial summary.

Each figure is an independent widget backed by its own query. Widgets run
concurrently and fail alone: a failed widget is logged, counted and left at
its zero value, and its name is listed in [Snapshot.Degraded].

A snapshot is not transactional. Widgets read at slightly different moments
and may disagree if rows change while it is being built.
*/
package dashboard

import (
	"time"

	"github.com/taibuivan/gravadora/internal/catalog/budget"
	"github.com/taibuivan/gravadora/internal/catalog/project"
	"github.com/taibuivan/gravadora/internal/catalog/release"
	"github.com/taibuivan/gravadora/pkg/date"
)

// Widget names, as reported in [Snapshot.Degraded] and in metrics.
const (
	WidgetActiveArtists     = "artistas_ativos"
	WidgetProjects          = "projetos"
	WidgetPendingBudgets    = "orcamentos_pendentes"
	WidgetReleasesThisMonth = "lancamentos_mes"
	WidgetFinancial         = "financeiro"
	WidgetRecentProjects    = "projetos_recentes"
	WidgetPendingBudgetList = "orcamentos_pendentes_lista"
	WidgetUpcomingReleases  = "proximos_lancamentos"
)

// ListSize is how many rows the list widgets show.
const ListSize = 5

// Snapshot is the dashboard payload.
type Snapshot struct {
	ActiveArtists     int              `json:"artistas_ativos"`
	Projects          ProjectCounts    `json:"projetos"`
	PendingBudgets    int              `json:"orcamentos_pendentes"`
	ReleasesThisMonth int              `json:"lancamentos_mes"`
	Financial         FinancialSummary `json:"financeiro"`
	RecentProjects    []ProjectSummary `json:"projetos_recentes"`
	PendingBudgetList []BudgetSummary  `json:"orcamentos_pendentes_lista"`
	UpcomingReleases  []ReleaseSummary `json:"proximos_lancamentos"`
	Degraded          []string         `json:"degraded"`
	Today             date.Date        `json:"hoje"`
	GeneratedAt       time.Time        `json:"gerado_em"`
}

// ProjectCounts classifies every project. Late projects are also in progress.
type ProjectCounts struct {
	Total      int `json:"total"`
	InProgress int `json:"em_andamento"`
	Finished   int `json:"concluidos"`
	Late       int `json:"atrasados"`
}

// FinancialSummary totals approved budgets and their payments.
type FinancialSummary struct {
	ApprovedTotal float64         `json:"total_aprovado"`
	Paid          float64         `json:"total_pago"`
	Pending       float64         `json:"total_pendente"`
	Budgets       []BudgetBalance `json:"orcamentos"`
}

// BudgetBalance is one approved budget with its payment sums.
type BudgetBalance struct {
	BudgetID     string  `json:"orcamento_id"`
	Title        string  `json:"titulo"`
	ProjectTitle *string `json:"projeto_titulo"`
	Total        float64 `json:"valor_total"`
	Paid         float64 `json:"pago"`
	Pending      float64 `json:"pendente"`
}

// PaymentTotals sums one budget's payments by status.
type PaymentTotals struct {
	Paid    float64
	Pending float64
}

// ProjectSchedule is the minimum needed to classify a project.
type ProjectSchedule struct {
	Phase   project.Phase
	DueDate *date.Date
}

// ProjectSummary is a row of the recent-projects widget.
type ProjectSummary struct {
	ID         string        `json:"id"`
	Title      string        `json:"titulo"`
	ArtistName *string       `json:"artista_nome"`
	Phase      project.Phase `json:"fase"`
	DueDate    *date.Date    `json:"data_prevista"`
	Late       bool          `json:"atrasado"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// BudgetSummary is a row of the pending-budgets widget.
type BudgetSummary struct {
	ID           string        `json:"id"`
	Title        string        `json:"titulo"`
	ProjectTitle *string       `json:"projeto_titulo"`
	Total        float64       `json:"valor_total"`
	Status       budget.Status `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
}

// ReleaseSummary is a row of the upcoming-releases widget.
type ReleaseSummary struct {
	ID         string       `json:"id"`
	Title      string       `json:"titulo"`
	ArtistName *string      `json:"artista_nome"`
	Type       release.Type `json:"tipo"`
	Date       date.Date    `json:"data_lancamento"`
}

// # Classification

// Class is the dashboard bucket of a project.
type Class int

const (
	ClassInProgress Class = iota
	ClassFinished
	ClassLate
)

/*
Classify buckets a project by phase and target date.

A finished phase wins over any date. Otherwise a project is late when its
target date is strictly before today, compared by calendar day; a project
without a target date is never late.
*/
func Classify(phase project.Phase, due *date.Date, today date.Date) Class {
	if phase.IsFinished() {
		return ClassFinished
	}
	if due != nil && due.Before(today) {
		return ClassLate
	}
	return ClassInProgress
}

// Count folds schedules into [ProjectCounts].
func Count(schedules []ProjectSchedule, today date.Date) ProjectCounts {
	counts := ProjectCounts{Total: len(schedules)}
	for _, schedule := range schedules {
		switch Classify(schedule.Phase, schedule.DueDate, today) {
		case ClassFinished:
			counts.Finished++
		case ClassLate:
			counts.Late++
			counts.InProgress++
		default:
			counts.InProgress++
		}
	}
	return counts
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/MKhiriev/go-project-board/internal/logger"
	"github.com/MKhiriev/go-project-board/internal/mock"
	"github.com/MKhiriev/go-project-board/internal/store"
	"github.com/MKhiriev/go-project-board/internal/validators"
	"github.com/MKhiriev/go-project-board/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

func newTestProjectSvc(t *testing.T, ctrl *gomock.Controller) (*projectService, *mock.MockProjectRepository, *mock.MockVacancyRepository) {
	t.Helper()
	projects := mock.NewMockProjectRepository(ctrl)
	vacancies := mock.NewMockVacancyRepository(ctrl)

	svc := newProjectService(projects, vacancies, func() time.Time { return fixedNow }, logger.Nop())
	return svc, projects, vacancies
}

func date(t *testing.T, s string) *models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return &d
}

func amount(v float64) *models.Amount {
	a := models.Amount(v)
	return &a
}

func storedProject(t *testing.T) models.Project {
	return models.Project{
		ID:           10,
		Title:        "Board",
		Description:  "Project board",
		Technologies: []string{"Go", "PostgreSQL"},
		Budget:       amount(5000),
		Deadline:     date(t, "2026-03-01"),
		Owner:        "johnsmith",
		OwnerID:      7,
		Metadata:     json.RawMessage(`{}`),
	}
}

func validProjectRequest() models.ProjectRequest {
	return models.ProjectRequest{
		Title:        models.Set("  Board  "),
		Description:  models.Set("Project board"),
		Technologies: models.Set(json.RawMessage(`[" Go ", "", "PostgreSQL"]`)),
		Budget:       models.Set(models.Amount(5000)),
		Deadline:     models.Set(models.Date{Time: time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)}),
	}
}

// ── List ─────────────────────────────────────────────────────────────────────

func TestProjectService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, projects, _ := newTestProjectSvc(t, ctrl)
	ctx := context.Background()
	page := models.PageRequest{Number: 1, Size: 20}

	projects.EXPECT().ListProjects(ctx, int64(7), page).Return([]models.Project{storedProject(t)}, int64(1), nil)

	items, count, err := svc.List(ctx, 7, page)

	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].TechnologiesCount)
	assert.Equal(t, "johnsmith", items[0].Owner)
}

func TestProjectService_List_EmptyFirstPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, projects, _ := newTestProjectSvc(t, ctrl)
	ctx := context.Background()
	page := models.PageRequest{Number: 1, Size: 20}

	projects.EXPECT().ListProjects(ctx, int64(7), page).Return([]models.Project{}, int64(0), nil)

	items, count, err := svc.List(ctx, 7, page)

	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, items)
}

func TestProjectService_List_PageOutOfRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, projects, _ := newTestProjectSvc(t, ctrl)
	ctx := context.Background()
	page := models.PageRequest{Number: 3, Size: 20}

	projects.EXPECT().ListProjects(ctx, int64(7), page).Return([]models.Project{}, int64(25), nil)

	_, _, err := svc.List(ctx, 7, page)

	assert.ErrorIs(t, err, ErrInvalidPage)
	assert.ErrorIs(t, err, ErrNotFound)
}

// ── Get ──────────────────────────────────────────────────────────────────────

func TestProjectService_Get_DerivesFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, projects, _ := newTestProjectSvc(t, ctrl)
	ctx := context.Background()

	projects.EXPECT().FindProjectByID(ctx, int64(10)).Return(storedProject(t), nil)

	project, err := svc.Get(ctx, 7, 10)

	require.NoError(t, err)
	assert.Equal(t, 2, project.TechnologiesCount)
	assert.True(t, project.IsOverdue, "deadline 2026-03-01 is before 2026-03-10")
}

func TestProjectService_Get_ForeignProjectIsNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, projects, _ := newTestProjectSvc(t, ctrl)
	ctx := context.Background()

	projects.EXPECT().FindProjectByID(ctx, int64(10)).Return(storedProject(t), nil)

	_, err := svc.Get(ctx, 99, 10)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectService_Get_Missing(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, projects, _ := newTestProjectSvc(t, ctrl)
	ctx := context.Background()

	projects.EXPECT().FindProjectByID(ctx, int64(10)).Return(models.Project{}, store.ErrNotFound)

	_, err := svc.Get(ctx, 7, 10)

	assert.ErrorIs(t, err, ErrNotFound)
}

// ── Create ───────────────────────────────────────────────────────────────────

func TestProjectService_Create_OwnerFromCaller(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, projects, _ := newTestProjectSvc(t, ctrl)
	ctx := context.Background()

	projects.EXPECT().CreateProject(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, p models.Project) (models.Project, error) {
			assert.Equal(t, int64(7), p.OwnerID)
			assert.Equal(t, "Board", p.Title, "title is trimmed")
			assert.Equal(t, []string{"Go", "PostgreSQL"}, p.Technologies)
			assert.JSONEq(t, `{}`, string(p.Metadata))
			p.ID = 11
			p.Owner = "johnsmith"
			return p, nil
		},
	)

	project, err := svc.Create(ctx, 7, validProjectRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(11), project.ID)
	assert.Equal(t, 2, project.TechnologiesCount)
	assert.False(t, project.IsOverdue)
}

func TestProjectService_Create_DefaultsWithoutOptionalFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, projects, _ := newTestProjectSvc(t, ctrl)
	ctx := context.Background()

	projects.EXPECT().CreateProject(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, p models.Project) (models.Project, error) {
			assert.Equal(t, []string{}, p.Technologies)
			assert.Nil(t, p.Budget)
			assert.Nil(t, p.Deadline)
			return p, nil
		},
	)

	_, err := svc.Create(ctx, 7, models.ProjectRequest{
		Title:       models.Set("Board"),
		Description: models.Set("Project board"),
	})

	require.NoError(t, err)
}

func TestProjectService_Create_CollectsErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestProjectSvc(t, ctrl)

	_, err := svc.Create(context.Background(), 7, models.ProjectRequest{
		Description:  models.Set("Project board"),
		Technologies: models.Set(json.RawMessage(`"Go"`)),
		Budget:       models.Set(models.Amount(-1)),
		Deadline:     models.Set(*date(t, "2026-03-09")),
	})

	assert.ErrorIs(t, err, validators.ErrRequired)
	assert.ErrorIs(t, err, validators.ErrInvalidType)
	assert.ErrorIs(t, err, validators.ErrNonPositiveBudget)
	assert.ErrorIs(t, err, validators.ErrPastDeadline)
}

func TestProjectService_Create_DeadlineToday(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, projects, _ := newTestProjectSvc(t, ctrl)
	ctx := context.Background()

	req := validProjectRequest()
	req.Deadline = models.Set(*date(t, "2026-03-10"))

	projects.EXPECT().CreateProject(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, p models.Project) (models.Project, error) { return p, nil },
	)

	project, err := svc.Create(ctx, 7, req)

	require.NoError(t, err)
	assert.False(t, project.IsOverdue)
}

// ── Update ───────────────────────────────────────────────────────────────────

func TestProjectService_Update_PartialKeepsAbsentFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, projects, _ := newTestProjectSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		projects.EXPECT().FindProjectByID(ctx, int64(10)).Return(storedProject(t), nil),
		projects.EXPECT().UpdateProject(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, p models.Project) (models.Project, error) {
				assert.Equal(t, "Renamed", p.Title)
				assert.Equal(t, "Project board", p.Description)
				assert.Equal(t, []string{"Go", "PostgreSQL"}, p.Technologies)
				require.NotNil(t, p.Budget)
				assert.Equal(t, models.Amount(5000), *p.Budget)
				return p, nil
			},
		),
	)

	_, err := svc.Update(ctx, 7, 10, models.ProjectRequest{Title: models.Set("Renamed")}, true)

	require.NoError(t, err)
}

func TestProjectService_Update_NullClearsBudget(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, projects, _ := newTestProjectSvc(t, ctrl)
	ctx := context.Background()

	projects.EXPECT().FindProjectByID(ctx, int64(10)).Return(storedProject(t), nil)
	projects.EXPECT().UpdateProject(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, p models.Project) (models.Project, error) {
			assert.Nil(t, p.Budget)
			return p, nil
		},
	)

	_, err := svc.Update(ctx, 7, 10, models.ProjectRequest{Budget: models.Null[models.Amount]()}, true)

	require.NoError(t, err)
}

func TestProjectService_Update_UnchangedPastDeadlineAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, projects, _ := newTestProjectSvc(t, ctrl)
	ctx := context.Background()

	projects.EXPECT().FindProjectByID(ctx, int64(10)).Return(storedProject(t), nil)
	projects.EXPECT().UpdateProject(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, p models.Project) (models.Project, error) { return p, nil },
	)

	req := models.ProjectRequest{
		Title:       models.Set("Board"),
		Description: models.Set("Project board"),
		Deadline:    models.Set(*date(t, "2026-03-01")),
	}
	_, err := svc.Update(ctx, 7, 10, req, false)

	require.NoError(t, err)
}

func TestProjectService_Update_NewPastDeadlineRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, projects, _ := newTestProjectSvc(t, ctrl)
	ctx := context.Background()

	projects.EXPECT().FindProjectByID(ctx, int64(10)).Return(storedProject(t), nil)

	_, err := svc.Update(ctx, 7, 10, models.ProjectRequest{Deadline: models.Set(*date(t, "2026-02-01"))}, true)

	assert.ErrorIs(t, err, validators.ErrPastDeadline)
}

func TestProjectService_Update_FullRequiresTitle(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, projects, _ := newTestProjectSvc(t, ctrl)
	ctx := context.Background()

	projects.EXPECT().FindProjectByID(ctx, int64(10)).Return(storedProject(t), nil)

	_, err := svc.Update(ctx, 7, 10, models.ProjectRequest{Description: models.Set("Only description")}, false)

	assert.ErrorIs(t, err, validators.ErrRequired)
}

func TestProjectService_Update_ForeignProjectIsForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, projects, _ := newTestProjectSvc(t, ctrl)
	ctx := context.Background()

	projects.EXPECT().FindProjectByID(ctx, int64(10)).Return(storedProject(t), nil)

	_, err := svc.Update(ctx, 99, 10, models.ProjectRequest{Title: models.Set("Mine now")}, true)

	assert.ErrorIs(t, err, ErrForbidden)
}

// ── Delete ───────────────────────────────────────────────────────────────────

func TestProjectService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, projects, _ := newTestProjectSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		projects.EXPECT().FindProjectByID(ctx, int64(10)).Return(storedProject(t), nil),
		projects.EXPECT().DeleteProject(ctx, int64(10)).Return(nil),
	)

	assert.NoError(t, svc.Delete(ctx, 7, 10))
}

func TestProjectService_Delete_ForeignProjectIsForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, projects, _ := newTestProjectSvc(t, ctrl)
	ctx := context.Background()

	projects.EXPECT().FindProjectByID(ctx, int64(10)).Return(storedProject(t), nil)

	assert.ErrorIs(t, svc.Delete(ctx, 99, 10), ErrForbidden)
}

// ── Vacancies ────────────────────────────────────────────────────────────────

func TestProjectService_Vacancies(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, projects, vacancies := newTestProjectSvc(t, ctrl)
	ctx := context.Background()

	projects.EXPECT().FindProjectByID(ctx, int64(10)).Return(storedProject(t), nil)
	vacancies.EXPECT().ListProjectVacancies(ctx, int64(10)).Return([]models.Vacancy{
		{ID: 1, SalaryMin: amount(1000)},
		{ID: 2},
	}, nil)

	got, err := svc.Vacancies(ctx, 7, 10)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "from 1000", got[0].SalaryRange)
	assert.Equal(t, "Negotiable", got[1].SalaryRange)
}

func TestProjectService_CreateVacancy_ProjectFromRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, projects, vacancies := newTestProjectSvc(t, ctrl)
	ctx := context.Background()

	projects.EXPECT().FindProjectByID(ctx, int64(10)).Return(storedProject(t), nil)
	vacancies.EXPECT().CreateVacancy(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, v models.Vacancy) (models.Vacancy, error) {
			assert.Equal(t, int64(10), v.ProjectID)
			assert.Equal(t, models.FullTime, v.EmploymentType)
			assert.True(t, v.IsActive)
			v.ID = 5
			return v, nil
		},
	)

	vacancy, err := svc.CreateVacancy(ctx, 7, 10, models.VacancyRequest{
		Title:        models.Set("Go developer"),
		Description:  models.Set("Backend work"),
		Requirements: models.Set("Go, SQL"),
		SalaryMin:    models.Set(models.Amount(100000)),
		SalaryMax:    models.Set(models.Amount(150000)),
		Project:      models.Set(int64(999)),
	})

	require.NoError(t, err)
	assert.Equal(t, "100000 - 150000", vacancy.SalaryRange)
}

func TestProjectService_CreateVacancy_InvertedSalary(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, projects, _ := newTestProjectSvc(t, ctrl)
	ctx := context.Background()

	projects.EXPECT().FindProjectByID(ctx, int64(10)).Return(storedProject(t), nil)

	_, err := svc.CreateVacancy(ctx, 7, 10, models.VacancyRequest{
		Title:        models.Set("Go developer"),
		Description:  models.Set("Backend work"),
		Requirements: models.Set("Go, SQL"),
		SalaryMin:    models.Set(models.Amount(200000)),
		SalaryMax:    models.Set(models.Amount(150000)),
	})

	assert.ErrorIs(t, err, validators.ErrSalaryRangeInverted)

	var fieldErrs *validators.Errors
	require.ErrorAs(t, err, &fieldErrs)
	assert.True(t, fieldErrs.Has(validators.NonFieldErrors))
}

func TestProjectService_CreateVacancy_ForeignProjectIsForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, projects, _ := newTestProjectSvc(t, ctrl)
	ctx := context.Background()

	projects.EXPECT().FindProjectByID(ctx, int64(10)).Return(storedProject(t), nil)

	_, err := svc.CreateVacancy(ctx, 99, 10, models.VacancyRequest{})

	assert.ErrorIs(t, err, ErrForbidden)
}

// ── Stats ────────────────────────────────────────────────────────────────────

func TestProjectService_Stats(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, projects, _ := newTestProjectSvc(t, ctrl)
	ctx := context.Background()

	project := storedProject(t)
	project.Deadline = date(t, "2026-03-20")

	projects.EXPECT().FindProjectByID(ctx, int64(10)).Return(project, nil)
	projects.EXPECT().CountVacancies(ctx, int64(10)).Return(models.VacancyCounts{Total: 3, Active: 2}, nil)

	stats, err := svc.Stats(ctx, 7, 10)

	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalTechnologies)
	assert.Equal(t, int64(3), stats.TotalVacancies)
	assert.Equal(t, int64(2), stats.ActiveVacancies)
	assert.False(t, stats.IsOverdue)
	require.NotNil(t, stats.DaysUntilDeadline)
	assert.Equal(t, 10, *stats.DaysUntilDeadline)
}

func TestProjectService_Stats_OverdueAndNoDeadline(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, projects, _ := newTestProjectSvc(t, ctrl)
	ctx := context.Background()

	overdue := storedProject(t)
	noDeadline := storedProject(t)
	noDeadline.ID = 11
	noDeadline.Deadline = nil

	projects.EXPECT().FindProjectByID(ctx, int64(10)).Return(overdue, nil)
	projects.EXPECT().CountVacancies(ctx, int64(10)).Return(models.VacancyCounts{}, nil)
	projects.EXPECT().FindProjectByID(ctx, int64(11)).Return(noDeadline, nil)
	projects.EXPECT().CountVacancies(ctx, int64(11)).Return(models.VacancyCounts{}, nil)

	stats, err := svc.Stats(ctx, 7, 10)
	require.NoError(t, err)
	assert.True(t, stats.IsOverdue)
	require.NotNil(t, stats.DaysUntilDeadline)
	assert.Equal(t, -9, *stats.DaysUntilDeadline)

	stats, err = svc.Stats(ctx, 7, 11)
	require.NoError(t, err)
	assert.False(t, stats.IsOverdue)
	assert.Nil(t, stats.DaysUntilDeadline)
}

func TestProjectService_Stats_ForeignProjectIsNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, projects, _ := newTestProjectSvc(t, ctrl)
	ctx := context.Background()

	projects.EXPECT().FindProjectByID(ctx, int64(10)).Return(storedProject(t), nil)

	_, err := svc.Stats(ctx, 99, 10)

	assert.ErrorIs(t, err, ErrNotFound)
}

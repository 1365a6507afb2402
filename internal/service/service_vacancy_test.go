package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-project-board/internal/logger"
	"github.com/MKhiriev/go-project-board/internal/mock"
	"github.com/MKhiriev/go-project-board/internal/store"
	"github.com/MKhiriev/go-project-board/internal/validators"
	"github.com/MKhiriev/go-project-board/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestVacancySvc(t *testing.T, ctrl *gomock.Controller) (VacancyService, *mock.MockVacancyRepository, *mock.MockProjectRepository) {
	t.Helper()
	vacancies := mock.NewMockVacancyRepository(ctrl)
	projects := mock.NewMockProjectRepository(ctrl)

	return NewVacancyService(vacancies, projects, logger.Nop()), vacancies, projects
}

func storedVacancy() models.Vacancy {
	return models.Vacancy{
		ID:             5,
		Title:          "Go developer",
		Description:    "Backend work",
		Requirements:   "Go, SQL",
		SalaryMin:      amount(100000),
		SalaryMax:      amount(150000),
		EmploymentType: models.FullTime,
		ProjectID:      10,
		ProjectTitle:   "Board",
		IsActive:       true,
		ProjectOwnerID: 7,
	}
}

// ── List ─────────────────────────────────────────────────────────────────────

func TestVacancyService_List_ScopesToCaller(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, vacancies, _ := newTestVacancySvc(t, ctrl)
	ctx := context.Background()
	page := models.PageRequest{Number: 1, Size: 20}

	active := true
	vacancies.EXPECT().ListVacancies(ctx, gomock.Any(), page).DoAndReturn(
		func(_ context.Context, f models.VacancyFilter, _ models.PageRequest) ([]models.Vacancy, int64, error) {
			assert.Equal(t, int64(7), f.OwnerID, "owner filter must come from the caller")
			require.NotNil(t, f.IsActive)
			assert.True(t, *f.IsActive)
			return []models.Vacancy{storedVacancy()}, 1, nil
		},
	)

	got, count, err := svc.List(ctx, 7, models.VacancyFilter{OwnerID: 99, IsActive: &active}, page)

	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, got, 1)
	assert.Equal(t, "100000 - 150000", got[0].SalaryRange)
}

func TestVacancyService_List_PageOutOfRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, vacancies, _ := newTestVacancySvc(t, ctrl)
	ctx := context.Background()
	page := models.PageRequest{Number: 2, Size: 20}

	vacancies.EXPECT().ListVacancies(ctx, gomock.Any(), page).Return([]models.Vacancy{}, int64(20), nil)

	_, _, err := svc.List(ctx, 7, models.VacancyFilter{}, page)

	assert.ErrorIs(t, err, ErrInvalidPage)
}

// ── Get ──────────────────────────────────────────────────────────────────────

func TestVacancyService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, vacancies, _ := newTestVacancySvc(t, ctrl)
	ctx := context.Background()

	vacancies.EXPECT().FindVacancyByID(ctx, int64(5)).Return(storedVacancy(), nil)

	got, err := svc.Get(ctx, 7, 5)

	require.NoError(t, err)
	assert.Equal(t, "Board", got.ProjectTitle)
}

func TestVacancyService_Get_ForeignIsNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, vacancies, _ := newTestVacancySvc(t, ctrl)
	ctx := context.Background()

	vacancies.EXPECT().FindVacancyByID(ctx, int64(5)).Return(storedVacancy(), nil)

	_, err := svc.Get(ctx, 99, 5)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVacancyService_Get_Missing(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, vacancies, _ := newTestVacancySvc(t, ctrl)
	ctx := context.Background()

	vacancies.EXPECT().FindVacancyByID(ctx, int64(5)).Return(models.Vacancy{}, store.ErrNotFound)

	_, err := svc.Get(ctx, 7, 5)

	assert.ErrorIs(t, err, ErrNotFound)
}

// ── Update ───────────────────────────────────────────────────────────────────

func TestVacancyService_Update_PartialSalaryCheckedOnMergedRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, vacancies, _ := newTestVacancySvc(t, ctrl)
	ctx := context.Background()

	vacancies.EXPECT().FindVacancyByID(ctx, int64(5)).Return(storedVacancy(), nil)

	// stored max is 150000
	_, err := svc.Update(ctx, 7, 5, models.VacancyRequest{SalaryMin: models.Set(models.Amount(200000))}, true)

	assert.ErrorIs(t, err, validators.ErrSalaryRangeInverted)
}

func TestVacancyService_Update_PartialClearsBound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, vacancies, _ := newTestVacancySvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		vacancies.EXPECT().FindVacancyByID(ctx, int64(5)).Return(storedVacancy(), nil),
		vacancies.EXPECT().UpdateVacancy(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, v models.Vacancy) (models.Vacancy, error) {
				assert.Nil(t, v.SalaryMax)
				assert.Equal(t, "Go developer", v.Title)
				return v, nil
			},
		),
	)

	got, err := svc.Update(ctx, 7, 5, models.VacancyRequest{SalaryMax: models.Null[models.Amount]()}, true)

	require.NoError(t, err)
	assert.Equal(t, "from 100000", got.SalaryRange)
}

func TestVacancyService_Update_InvalidEmploymentType(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, vacancies, _ := newTestVacancySvc(t, ctrl)
	ctx := context.Background()

	vacancies.EXPECT().FindVacancyByID(ctx, int64(5)).Return(storedVacancy(), nil)

	_, err := svc.Update(ctx, 7, 5, models.VacancyRequest{EmploymentType: models.Set(models.EmploymentType("remote"))}, true)

	assert.ErrorIs(t, err, validators.ErrInvalidChoice)
}

func TestVacancyService_Update_FullRequiresTexts(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, vacancies, _ := newTestVacancySvc(t, ctrl)
	ctx := context.Background()

	vacancies.EXPECT().FindVacancyByID(ctx, int64(5)).Return(storedVacancy(), nil)

	_, err := svc.Update(ctx, 7, 5, models.VacancyRequest{Title: models.Set("Only title")}, false)

	require.ErrorIs(t, err, validators.ErrRequired)

	var fieldErrs *validators.Errors
	require.ErrorAs(t, err, &fieldErrs)
	assert.True(t, fieldErrs.Has(validators.FieldDescription))
	assert.True(t, fieldErrs.Has(validators.FieldRequirements))
}

func TestVacancyService_Update_MoveToOwnProject(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, vacancies, projects := newTestVacancySvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		vacancies.EXPECT().FindVacancyByID(ctx, int64(5)).Return(storedVacancy(), nil),
		projects.EXPECT().FindProjectByID(ctx, int64(11)).Return(models.Project{ID: 11, OwnerID: 7}, nil),
		vacancies.EXPECT().UpdateVacancy(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, v models.Vacancy) (models.Vacancy, error) {
				assert.Equal(t, int64(11), v.ProjectID)
				return v, nil
			},
		),
	)

	_, err := svc.Update(ctx, 7, 5, models.VacancyRequest{Project: models.Set(int64(11))}, true)

	require.NoError(t, err)
}

func TestVacancyService_Update_MoveToForeignProject(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, vacancies, projects := newTestVacancySvc(t, ctrl)
	ctx := context.Background()

	vacancies.EXPECT().FindVacancyByID(ctx, int64(5)).Return(storedVacancy(), nil)
	projects.EXPECT().FindProjectByID(ctx, int64(12)).Return(models.Project{ID: 12, OwnerID: 99}, nil)

	_, err := svc.Update(ctx, 7, 5, models.VacancyRequest{Project: models.Set(int64(12))}, true)

	assert.ErrorIs(t, err, validators.ErrInvalidPK)

	var fieldErrs *validators.Errors
	require.ErrorAs(t, err, &fieldErrs)
	assert.True(t, fieldErrs.Has(validators.FieldProject))
}

func TestVacancyService_Update_MoveToMissingProject(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, vacancies, projects := newTestVacancySvc(t, ctrl)
	ctx := context.Background()

	vacancies.EXPECT().FindVacancyByID(ctx, int64(5)).Return(storedVacancy(), nil)
	projects.EXPECT().FindProjectByID(ctx, int64(404)).Return(models.Project{}, store.ErrNotFound)

	_, err := svc.Update(ctx, 7, 5, models.VacancyRequest{Project: models.Set(int64(404))}, true)

	assert.ErrorIs(t, err, validators.ErrInvalidPK)
}

func TestVacancyService_Update_ForeignIsForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, vacancies, _ := newTestVacancySvc(t, ctrl)
	ctx := context.Background()

	vacancies.EXPECT().FindVacancyByID(ctx, int64(5)).Return(storedVacancy(), nil)

	_, err := svc.Update(ctx, 99, 5, models.VacancyRequest{Title: models.Set("Hijack")}, true)

	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, err, ErrForeignVacancy)
}

// ── Delete ───────────────────────────────────────────────────────────────────

func TestVacancyService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, vacancies, _ := newTestVacancySvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		vacancies.EXPECT().FindVacancyByID(ctx, int64(5)).Return(storedVacancy(), nil),
		vacancies.EXPECT().DeleteVacancy(ctx, int64(5)).Return(nil),
	)

	assert.NoError(t, svc.Delete(ctx, 7, 5))
}

func TestVacancyService_Delete_ForeignIsForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, vacancies, _ := newTestVacancySvc(t, ctrl)
	ctx := context.Background()

	vacancies.EXPECT().FindVacancyByID(ctx, int64(5)).Return(storedVacancy(), nil)

	assert.ErrorIs(t, svc.Delete(ctx, 99, 5), ErrForbidden)
}

// ── authorization ────────────────────────────────────────────────────────────

func TestAuthorizeProject(t *testing.T) {
	project := models.Project{ID: 1, OwnerID: 7}

	tests := []struct {
		name     string
		callerID int64
		op       access
		want     error
	}{
		{name: "owner reads", callerID: 7, op: accessRead},
		{name: "owner writes", callerID: 7, op: accessWrite},
		{name: "stranger reads", callerID: 8, op: accessRead, want: ErrNotFound},
		{name: "stranger writes", callerID: 8, op: accessWrite, want: ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := authorizeProject(tt.callerID, project, tt.op)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuthorizeVacancy_UsesProjectOwner(t *testing.T) {
	vacancy := models.Vacancy{ID: 1, ProjectID: 3, ProjectOwnerID: 7}

	assert.NoError(t, authorizeVacancy(7, vacancy, accessWrite))
	assert.ErrorIs(t, authorizeVacancy(3, vacancy, accessRead), ErrNotFound)
	assert.ErrorIs(t, authorizeVacancy(3, vacancy, accessWrite), ErrForbidden)
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(store.ErrUsernameAlreadyExists), validators.ErrDuplicateUsername)
	assert.ErrorIs(t, translate(store.ErrEmailAlreadyExists), validators.ErrConflict)
	assert.ErrorIs(t, translate(store.ErrNotFound), ErrNotFound)
	assert.ErrorIs(t, translate(store.ErrTemporarilyUnavailable), ErrUnavailable)
	assert.ErrorIs(t, translate(store.ErrExecutingQuery), store.ErrExecutingQuery)
}

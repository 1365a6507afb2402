package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-project-board/internal/logger"
	"github.com/MKhiriev/go-project-board/models"
)

func newTestVacancyRepo(t *testing.T) (*vacancyRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &vacancyRepository{db: db, logger: logger.Nop()}, mock
}

var vacancyRowColumns = []string{
	"id", "title", "description", "requirements", "salary_min", "salary_max", "employment_type",
	"is_active", "project_id", "project_title", "owner_id", "created_at", "updated_at",
}

func vacancyRow(rows *sqlmock.Rows, id int64, salaryMin, salaryMax any) *sqlmock.Rows {
	ts := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	return rows.AddRow(id, "Go developer", "Build things", "Go, SQL", salaryMin, salaryMax,
		"contract", true, int64(3), "Board", int64(7), ts, ts)
}

func TestFindVacancyByID(t *testing.T) {
	repo, mock := newTestVacancyRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM vacancies v JOIN projects p ON p.id = v.project_id WHERE v.id = \$1`).
		WithArgs(int64(9)).
		WillReturnRows(vacancyRow(sqlmock.NewRows(vacancyRowColumns), 9, int64(100000), nil))

	v, err := repo.FindVacancyByID(context.Background(), 9)
	require.NoError(t, err)
	require.NotNil(t, v.SalaryMin)
	assert.Equal(t, models.Amount(100000), *v.SalaryMin)
	assert.Nil(t, v.SalaryMax)
	assert.Equal(t, models.Contract, v.EmploymentType)
	assert.Equal(t, "Board", v.ProjectTitle)
	assert.Equal(t, int64(7), v.ProjectOwnerID)
}

func TestFindVacancyByID_NotFound(t *testing.T) {
	repo, mock := newTestVacancyRepo(t)
	mock.ExpectQuery(`FROM vacancies v`).WillReturnRows(sqlmock.NewRows(vacancyRowColumns))

	_, err := repo.FindVacancyByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVacancyFilterClause(t *testing.T) {
	projectID := int64(3)
	contract := models.Contract
	active := false

	tests := []struct {
		name     string
		filter   models.VacancyFilter
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "owner only",
			filter:   models.VacancyFilter{OwnerID: 7},
			wantSQL:  "(p.owner_id = ?)",
			wantArgs: []any{int64(7)},
		},
		{
			name:     "all filters",
			filter:   models.VacancyFilter{OwnerID: 7, ProjectID: &projectID, EmploymentType: &contract, IsActive: &active},
			wantSQL:  "(p.owner_id = ? AND v.project_id = ? AND v.employment_type = ? AND v.is_active = ?)",
			wantArgs: []any{int64(7), int64(3), "contract", false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sqlStr, args, err := vacancyFilterClause(tt.filter).ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sqlStr)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestListVacancies(t *testing.T) {
	repo, mock := newTestVacancyRepo(t)
	projectID := int64(3)
	filter := models.VacancyFilter{OwnerID: 7, ProjectID: &projectID}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM vacancies v JOIN projects p ON p.id = v.project_id WHERE \(p.owner_id = \$1 AND v.project_id = \$2\)`).
		WithArgs(int64(7), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`WHERE \(p.owner_id = \$1 AND v.project_id = \$2\) ORDER BY v.created_at DESC, v.id DESC LIMIT 20 OFFSET 0`).
		WithArgs(int64(7), int64(3)).
		WillReturnRows(vacancyRow(sqlmock.NewRows(vacancyRowColumns), 1, nil, nil))

	vacancies, count, err := repo.ListVacancies(context.Background(), filter, models.PageRequest{Number: 1, Size: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Len(t, vacancies, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListProjectVacancies(t *testing.T) {
	repo, mock := newTestVacancyRepo(t)

	rows := sqlmock.NewRows(vacancyRowColumns)
	vacancyRow(rows, 2, nil, nil)
	vacancyRow(rows, 1, nil, nil)
	mock.ExpectQuery(`WHERE v.project_id = \$1 ORDER BY v.created_at DESC, v.id DESC$`).
		WithArgs(int64(3)).
		WillReturnRows(rows)

	vacancies, err := repo.ListProjectVacancies(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, vacancies, 2)
	assert.Equal(t, int64(2), vacancies[0].ID)
}

func TestCreateVacancy(t *testing.T) {
	repo, mock := newTestVacancyRepo(t)
	salary := models.Amount(5000)

	mock.ExpectQuery(`INSERT INTO vacancies \(title,description,requirements,salary_min,salary_max,employment_type,is_active,project_id\)`).
		WithArgs("Go developer", "Build things", "Go, SQL", float64(5000), nil, "contract", true, int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectQuery(`FROM vacancies v (.+) WHERE v.id = \$1`).
		WithArgs(int64(12)).
		WillReturnRows(vacancyRow(sqlmock.NewRows(vacancyRowColumns), 12, int64(5000), nil))

	created, err := repo.CreateVacancy(context.Background(), models.Vacancy{
		Title: "Go developer", Description: "Build things", Requirements: "Go, SQL",
		SalaryMin: &salary, EmploymentType: models.Contract, IsActive: true, ProjectID: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateVacancy_MovesProject(t *testing.T) {
	repo, mock := newTestVacancyRepo(t)

	mock.ExpectExec(`UPDATE vacancies SET (.+) project_id = \$8, updated_at = CURRENT_TIMESTAMP WHERE id = \$9`).
		WithArgs("T", "D", "R", nil, nil, "full-time", false, int64(4), int64(12)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM vacancies v`).
		WillReturnRows(vacancyRow(sqlmock.NewRows(vacancyRowColumns), 12, nil, nil))

	_, err := repo.UpdateVacancy(context.Background(), models.Vacancy{
		ID: 12, Title: "T", Description: "D", Requirements: "R",
		EmploymentType: models.FullTime, IsActive: false, ProjectID: 4,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteVacancy_NotFound(t *testing.T) {
	repo, mock := newTestVacancyRepo(t)
	mock.ExpectExec(`DELETE FROM vacancies WHERE id = \$1`).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.DeleteVacancy(context.Background(), 1), ErrNotFound)
}

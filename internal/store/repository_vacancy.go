package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-project-board/internal/logger"
	"github.com/MKhiriev/go-project-board/models"
)

var vacancyColumns = []string{
	"v.id",
	"v.title",
	"v.description",
	"v.requirements",
	"v.salary_min",
	"v.salary_max",
	"v.employment_type",
	"v.is_active",
	"v.project_id",
	"p.title",
	"p.owner_id",
	"v.created_at",
	"v.updated_at",
}

// vacancyRepository is the SQL implementation of [VacancyRepository].
// Every read joins the parent project to expose its title and owner.
type vacancyRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewVacancyRepository constructs a [VacancyRepository].
func NewVacancyRepository(db *DB, logger *logger.Logger) VacancyRepository {
	logger.Debug().Msg("creating vacancy repository")
	return &vacancyRepository{
		db:     db,
		logger: logger,
	}
}

// CreateVacancy inserts the vacancy and returns the stored record.
func (r *vacancyRepository) CreateVacancy(ctx context.Context, vacancy models.Vacancy) (models.Vacancy, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Insert("vacancies").
		Columns("title", "description", "requirements", "salary_min", "salary_max", "employment_type", "is_active", "project_id").
		Values(
			vacancy.Title,
			vacancy.Description,
			vacancy.Requirements,
			amountValue(vacancy.SalaryMin),
			amountValue(vacancy.SalaryMax),
			string(vacancy.EmploymentType),
			vacancy.IsActive,
			vacancy.ProjectID,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return models.Vacancy{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&vacancy.ID); err != nil {
		log.Err(err).Str("func", "*vacancyRepository.CreateVacancy").Int64("project_id", vacancy.ProjectID).Msg("error inserting vacancy")
		return models.Vacancy{}, r.db.translate(err, ErrExecutingStatement)
	}

	return r.FindVacancyByID(ctx, vacancy.ID)
}

// FindVacancyByID returns the vacancy or [ErrNotFound]. The lookup is not
// scoped by owner.
func (r *vacancyRepository) FindVacancyByID(ctx context.Context, vacancyID int64) (models.Vacancy, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.selectVacancies().
		Where(sq.Eq{"v.id": vacancyID}).
		ToSql()
	if err != nil {
		return models.Vacancy{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	vacancy, err := scanVacancy(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		err = r.db.translate(err, ErrScanningRow)
		if !errors.Is(err, ErrNotFound) {
			log.Err(err).Str("func", "*vacancyRepository.FindVacancyByID").Int64("vacancy_id", vacancyID).Msg("error finding vacancy")
		}
		return models.Vacancy{}, err
	}

	return vacancy, nil
}

// ListVacancies returns one page of vacancies matching filter, newest
// first, and the total number of matches. Filters are AND-composed and
// always include the project owner.
func (r *vacancyRepository) ListVacancies(ctx context.Context, filter models.VacancyFilter, page models.PageRequest) ([]models.Vacancy, int64, error) {
	log := logger.FromContext(ctx)
	where := vacancyFilterClause(filter)

	countQuery, countArgs, err := r.db.builder.
		Select("COUNT(*)").
		From("vacancies v").
		Join("projects p ON p.id = v.project_id").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&count); err != nil {
		log.Err(err).Str("func", "*vacancyRepository.ListVacancies").Int64("owner_id", filter.OwnerID).Msg("error counting vacancies")
		return nil, 0, r.db.translate(err, ErrExecutingQuery)
	}

	query, args, err := r.selectVacancies().
		Where(where).
		OrderBy("v.created_at DESC", "v.id DESC").
		Limit(uint64(page.Size)).
		Offset(page.Offset()).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	vacancies, err := r.queryVacancies(ctx, query, args, page.Size)
	if err != nil {
		log.Err(err).Str("func", "*vacancyRepository.ListVacancies").Int64("owner_id", filter.OwnerID).Msg("error listing vacancies")
		return nil, 0, err
	}

	return vacancies, count, nil
}

// ListProjectVacancies returns every vacancy of a project, newest first.
func (r *vacancyRepository) ListProjectVacancies(ctx context.Context, projectID int64) ([]models.Vacancy, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.selectVacancies().
		Where(sq.Eq{"v.project_id": projectID}).
		OrderBy("v.created_at DESC", "v.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	vacancies, err := r.queryVacancies(ctx, query, args, 8)
	if err != nil {
		log.Err(err).Str("func", "*vacancyRepository.ListProjectVacancies").Int64("project_id", projectID).Msg("error listing project vacancies")
		return nil, err
	}

	return vacancies, nil
}

// UpdateVacancy stores every editable column, including the project, and
// bumps updated_at.
func (r *vacancyRepository) UpdateVacancy(ctx context.Context, vacancy models.Vacancy) (models.Vacancy, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Update("vacancies").
		Set("title", vacancy.Title).
		Set("description", vacancy.Description).
		Set("requirements", vacancy.Requirements).
		Set("salary_min", amountValue(vacancy.SalaryMin)).
		Set("salary_max", amountValue(vacancy.SalaryMax)).
		Set("employment_type", string(vacancy.EmploymentType)).
		Set("is_active", vacancy.IsActive).
		Set("project_id", vacancy.ProjectID).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"id": vacancy.ID}).
		ToSql()
	if err != nil {
		return models.Vacancy{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*vacancyRepository.UpdateVacancy").Int64("vacancy_id", vacancy.ID).Msg("error updating vacancy")
		return models.Vacancy{}, r.db.translate(err, ErrExecutingStatement)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.Vacancy{}, ErrNotFound
	}

	return r.FindVacancyByID(ctx, vacancy.ID)
}

// DeleteVacancy removes the vacancy.
func (r *vacancyRepository) DeleteVacancy(ctx context.Context, vacancyID int64) error {
	return deleteByID(ctx, r.db, "vacancies", vacancyID, "*vacancyRepository.DeleteVacancy")
}

func (r *vacancyRepository) selectVacancies() sq.SelectBuilder {
	return r.db.builder.
		Select(vacancyColumns...).
		From("vacancies v").
		Join("projects p ON p.id = v.project_id")
}

func (r *vacancyRepository) queryVacancies(ctx context.Context, query string, args []any, capacity int) ([]models.Vacancy, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, r.db.translate(err, ErrExecutingQuery)
	}
	defer rows.Close()

	vacancies := make([]models.Vacancy, 0, capacity)
	for rows.Next() {
		vacancy, err := scanVacancy(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		vacancies = append(vacancies, vacancy)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return vacancies, nil
}

func vacancyFilterClause(filter models.VacancyFilter) sq.And {
	where := sq.And{sq.Eq{"p.owner_id": filter.OwnerID}}
	if filter.ProjectID != nil {
		where = append(where, sq.Eq{"v.project_id": *filter.ProjectID})
	}
	if filter.EmploymentType != nil {
		where = append(where, sq.Eq{"v.employment_type": string(*filter.EmploymentType)})
	}
	if filter.IsActive != nil {
		where = append(where, sq.Eq{"v.is_active": *filter.IsActive})
	}
	return where
}

func scanVacancy(s rowScanner) (models.Vacancy, error) {
	var (
		v                    models.Vacancy
		salaryMin, salaryMax sql.NullFloat64
		employmentType       string
	)

	err := s.Scan(
		&v.ID,
		&v.Title,
		&v.Description,
		&v.Requirements,
		&salaryMin,
		&salaryMax,
		&employmentType,
		&v.IsActive,
		&v.ProjectID,
		&v.ProjectTitle,
		&v.ProjectOwnerID,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return models.Vacancy{}, err
	}

	v.SalaryMin = amountFromNull(salaryMin)
	v.SalaryMax = amountFromNull(salaryMax)
	v.EmploymentType = models.EmploymentType(employmentType)

	return v, nil
}

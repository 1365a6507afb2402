package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-project-board/internal/logger"
	"github.com/MKhiriev/go-project-board/models"
)

var projectColumns = []string{
	"p.id",
	"p.title",
	"p.description",
	"p.technologies",
	"p.budget",
	"p.deadline",
	"p.metadata",
	"p.owner_id",
	"u.username",
	"(SELECT COUNT(*) FROM vacancies v WHERE v.project_id = p.id) AS vacancies_count",
	"p.created_at",
	"p.updated_at",
}

// projectRepository is the SQL implementation of [ProjectRepository].
type projectRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewProjectRepository constructs a [ProjectRepository].
func NewProjectRepository(db *DB, logger *logger.Logger) ProjectRepository {
	logger.Debug().Msg("creating project repository")
	return &projectRepository{
		db:     db,
		logger: logger,
	}
}

// CreateProject inserts the project and returns the stored record with its
// owner name and counters.
func (r *projectRepository) CreateProject(ctx context.Context, project models.Project) (models.Project, error) {
	log := logger.FromContext(ctx)

	technologies, metadata, err := encodeProjectJSON(project)
	if err != nil {
		return models.Project{}, err
	}

	query, args, err := r.db.builder.
		Insert("projects").
		Columns("title", "description", "technologies", "budget", "deadline", "metadata", "owner_id").
		Values(project.Title, project.Description, technologies, amountValue(project.Budget), dateValue(project.Deadline), metadata, project.OwnerID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return models.Project{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&project.ID); err != nil {
		log.Err(err).Str("func", "*projectRepository.CreateProject").Int64("owner_id", project.OwnerID).Msg("error inserting project")
		return models.Project{}, r.db.translate(err, ErrExecutingStatement)
	}

	return r.FindProjectByID(ctx, project.ID)
}

// FindProjectByID returns the project or [ErrNotFound]. The lookup is not
// scoped by owner.
func (r *projectRepository) FindProjectByID(ctx context.Context, projectID int64) (models.Project, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.selectProjects().
		Where(sq.Eq{"p.id": projectID}).
		ToSql()
	if err != nil {
		return models.Project{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	project, err := scanProject(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		err = r.db.translate(err, ErrScanningRow)
		if !errors.Is(err, ErrNotFound) {
			log.Err(err).Str("func", "*projectRepository.FindProjectByID").Int64("project_id", projectID).Msg("error finding project")
		}
		return models.Project{}, err
	}

	return project, nil
}

// ListProjects returns one page of the owner's projects, newest first, and
// the total number of the owner's projects.
func (r *projectRepository) ListProjects(ctx context.Context, ownerID int64, page models.PageRequest) ([]models.Project, int64, error) {
	log := logger.FromContext(ctx)

	countQuery, countArgs, err := r.db.builder.
		Select("COUNT(*)").
		From("projects").
		Where(sq.Eq{"owner_id": ownerID}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&count); err != nil {
		log.Err(err).Str("func", "*projectRepository.ListProjects").Int64("owner_id", ownerID).Msg("error counting projects")
		return nil, 0, r.db.translate(err, ErrExecutingQuery)
	}

	query, args, err := r.selectProjects().
		Where(sq.Eq{"p.owner_id": ownerID}).
		OrderBy("p.created_at DESC", "p.id DESC").
		Limit(uint64(page.Size)).
		Offset(page.Offset()).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*projectRepository.ListProjects").Int64("owner_id", ownerID).Msg("error listing projects")
		return nil, 0, r.db.translate(err, ErrExecutingQuery)
	}
	defer rows.Close()

	projects := make([]models.Project, 0, page.Size)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			log.Err(err).Str("func", "*projectRepository.ListProjects").Int64("owner_id", ownerID).Msg("error scanning project")
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return projects, count, nil
}

// UpdateProject stores every editable column of the project and bumps
// updated_at. The owner never changes.
func (r *projectRepository) UpdateProject(ctx context.Context, project models.Project) (models.Project, error) {
	log := logger.FromContext(ctx)

	technologies, metadata, err := encodeProjectJSON(project)
	if err != nil {
		return models.Project{}, err
	}

	query, args, err := r.db.builder.
		Update("projects").
		Set("title", project.Title).
		Set("description", project.Description).
		Set("technologies", technologies).
		Set("budget", amountValue(project.Budget)).
		Set("deadline", dateValue(project.Deadline)).
		Set("metadata", metadata).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"id": project.ID}).
		ToSql()
	if err != nil {
		return models.Project{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*projectRepository.UpdateProject").Int64("project_id", project.ID).Msg("error updating project")
		return models.Project{}, r.db.translate(err, ErrExecutingStatement)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.Project{}, ErrNotFound
	}

	return r.FindProjectByID(ctx, project.ID)
}

// DeleteProject removes the project; its vacancies go by cascade.
func (r *projectRepository) DeleteProject(ctx context.Context, projectID int64) error {
	return deleteByID(ctx, r.db, "projects", projectID, "*projectRepository.DeleteProject")
}

// CountVacancies returns the total and active vacancy counts of a project.
func (r *projectRepository) CountVacancies(ctx context.Context, projectID int64) (models.VacancyCounts, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select("COUNT(*)", "COALESCE(SUM(CASE WHEN is_active THEN 1 ELSE 0 END), 0)").
		From("vacancies").
		Where(sq.Eq{"project_id": projectID}).
		ToSql()
	if err != nil {
		return models.VacancyCounts{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var counts models.VacancyCounts
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&counts.Total, &counts.Active); err != nil {
		log.Err(err).Str("func", "*projectRepository.CountVacancies").Int64("project_id", projectID).Msg("error counting vacancies")
		return models.VacancyCounts{}, r.db.translate(err, ErrExecutingQuery)
	}

	return counts, nil
}

func (r *projectRepository) selectProjects() sq.SelectBuilder {
	return r.db.builder.
		Select(projectColumns...).
		From("projects p").
		Join("users u ON u.id = p.owner_id")
}

func scanProject(s rowScanner) (models.Project, error) {
	var (
		p            models.Project
		technologies []byte
		metadata     []byte
		budget       sql.NullFloat64
		deadline     sql.Null[models.Date]
	)

	err := s.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&technologies,
		&budget,
		&deadline,
		&metadata,
		&p.OwnerID,
		&p.Owner,
		&p.VacanciesCount,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return models.Project{}, err
	}

	p.Technologies = []string{}
	if len(technologies) > 0 {
		if err := json.Unmarshal(technologies, &p.Technologies); err != nil {
			return models.Project{}, fmt.Errorf("decoding technologies: %w", err)
		}
	}
	p.Metadata = json.RawMessage(`{}`)
	if len(metadata) > 0 {
		p.Metadata = json.RawMessage(metadata)
	}
	p.Budget = amountFromNull(budget)
	if deadline.Valid {
		d := deadline.V
		p.Deadline = &d
	}

	return p, nil
}

// encodeProjectJSON renders the JSON columns of a project.
func encodeProjectJSON(project models.Project) (technologies, metadata string, err error) {
	techs := project.Technologies
	if techs == nil {
		techs = []string{}
	}
	b, err := json.Marshal(techs)
	if err != nil {
		return "", "", fmt.Errorf("%w: encoding technologies: %w", ErrBuildingSQLQuery, err)
	}

	metadata = "{}"
	if len(project.Metadata) > 0 {
		metadata = string(project.Metadata)
	}
	return string(b), metadata, nil
}

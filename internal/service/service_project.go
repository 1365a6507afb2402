package service

import (
	"context"
	"encoding/json"
	"slices"
	"strings"
	"time"

	"github.com/MKhiriev/go-project-board/internal/logger"
	"github.com/MKhiriev/go-project-board/internal/store"
	"github.com/MKhiriev/go-project-board/internal/validators"
	"github.com/MKhiriev/go-project-board/models"
)

var projectFields = []string{
	validators.FieldTitle,
	validators.FieldDescription,
	validators.FieldTechnologies,
	validators.FieldBudget,
	validators.FieldDeadline,
	validators.FieldMetadata,
}

// projectService is the concrete implementation of ProjectService. All
// derived fields are computed against now, in UTC.
type projectService struct {
	projects  store.ProjectRepository
	vacancies store.VacancyRepository

	projectValidator validators.Validator
	vacancyValidator validators.Validator

	now func() time.Time

	logger *logger.Logger
}

// NewProjectService constructs a ProjectService backed by the given
// repositories.
func NewProjectService(projects store.ProjectRepository, vacancies store.VacancyRepository, logger *logger.Logger) ProjectService {
	return newProjectService(projects, vacancies, time.Now, logger)
}

func newProjectService(projects store.ProjectRepository, vacancies store.VacancyRepository, now func() time.Time, logger *logger.Logger) *projectService {
	return &projectService{
		projects:         projects,
		vacancies:        vacancies,
		projectValidator: validators.NewProjectValidator(now),
		vacancyValidator: validators.NewVacancyValidator(),
		now:              now,
		logger:           logger,
	}
}

func (s *projectService) today() models.Date {
	return models.NewDate(s.now())
}

// List returns one page of the caller's projects and their total count.
// A page past the end fails with ErrInvalidPage.
func (s *projectService) List(ctx context.Context, callerID int64, page models.PageRequest) ([]models.ProjectListItem, int64, error) {
	projects, count, err := s.projects.ListProjects(ctx, callerID, page)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*projectService.List").Int64("owner_id", callerID).Msg("listing projects failed")
		return nil, 0, translate(err)
	}
	if !page.Exists(count) {
		return nil, 0, ErrInvalidPage
	}

	today := s.today()
	items := make([]models.ProjectListItem, 0, len(projects))
	for _, project := range projects {
		project.Derive(today)
		items = append(items, project.ListItem())
	}

	return items, count, nil
}

func (s *projectService) Get(ctx context.Context, callerID int64, projectID int64) (models.Project, error) {
	project, err := s.load(ctx, callerID, projectID, accessRead)
	if err != nil {
		return models.Project{}, err
	}

	project.Derive(s.today())
	return project, nil
}

// Create validates the payload and stores a project owned by the caller.
func (s *projectService) Create(ctx context.Context, callerID int64, req models.ProjectRequest) (models.Project, error) {
	if err := s.projectValidator.Validate(ctx, req, projectFields...); err != nil {
		return models.Project{}, err
	}

	project := models.Project{
		OwnerID:      callerID,
		Technologies: []string{},
		Metadata:     json.RawMessage(`{}`),
	}
	applyProjectRequest(&project, req)

	created, err := s.projects.CreateProject(ctx, project)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*projectService.Create").Int64("owner_id", callerID).Msg("project creation failed")
		return models.Project{}, translate(err)
	}

	created.Derive(s.today())
	return created, nil
}

// Update applies a full or partial update. Full updates require title and
// description; absent optional fields keep their stored values either way.
// An unchanged deadline is not checked against today.
func (s *projectService) Update(ctx context.Context, callerID int64, projectID int64, req models.ProjectRequest, partial bool) (models.Project, error) {
	project, err := s.load(ctx, callerID, projectID, accessWrite)
	if err != nil {
		return models.Project{}, err
	}

	fields := projectFields
	if partial {
		fields = presentFields(
			field{validators.FieldTitle, req.Title.Present},
			field{validators.FieldDescription, req.Description.Present},
			field{validators.FieldTechnologies, req.Technologies.Present},
			field{validators.FieldBudget, req.Budget.Present},
			field{validators.FieldDeadline, req.Deadline.Present},
			field{validators.FieldMetadata, req.Metadata.Present},
		)
	}
	if req.Deadline.HasValue() && project.Deadline != nil && req.Deadline.Value.Equal(*project.Deadline) {
		fields = slices.DeleteFunc(slices.Clone(fields), func(f string) bool {
			return f == validators.FieldDeadline
		})
	}
	if len(fields) > 0 {
		if err = s.projectValidator.Validate(ctx, req, fields...); err != nil {
			return models.Project{}, err
		}
	}

	applyProjectRequest(&project, req)

	updated, err := s.projects.UpdateProject(ctx, project)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*projectService.Update").Int64("project_id", projectID).Msg("project update failed")
		return models.Project{}, translate(err)
	}

	updated.Derive(s.today())
	return updated, nil
}

// Delete removes the project together with its vacancies.
func (s *projectService) Delete(ctx context.Context, callerID int64, projectID int64) error {
	if _, err := s.load(ctx, callerID, projectID, accessWrite); err != nil {
		return err
	}

	if err := s.projects.DeleteProject(ctx, projectID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*projectService.Delete").Int64("project_id", projectID).Msg("project deletion failed")
		return translate(err)
	}

	logger.FromContext(ctx).Info().Int64("project_id", projectID).Int64("owner_id", callerID).Msg("project deleted")
	return nil
}

func (s *projectService) Vacancies(ctx context.Context, callerID int64, projectID int64) ([]models.Vacancy, error) {
	if _, err := s.load(ctx, callerID, projectID, accessRead); err != nil {
		return nil, err
	}

	vacancies, err := s.vacancies.ListProjectVacancies(ctx, projectID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*projectService.Vacancies").Int64("project_id", projectID).Msg("listing project vacancies failed")
		return nil, translate(err)
	}

	for i := range vacancies {
		vacancies[i].Derive()
	}
	return vacancies, nil
}

// CreateVacancy attaches a new vacancy to the project. The project always
// comes from the route; a project field in the payload is ignored.
func (s *projectService) CreateVacancy(ctx context.Context, callerID int64, projectID int64, req models.VacancyRequest) (models.Vacancy, error) {
	project, err := s.load(ctx, callerID, projectID, accessWrite)
	if err != nil {
		return models.Vacancy{}, err
	}

	errs := validators.NewErrors()
	errs.Merge(s.vacancyValidator.Validate(ctx, req))
	if !errs.Has(validators.FieldSalaryMin) && !errs.Has(validators.FieldSalaryMax) {
		errs.Add(validators.NonFieldErrors, validators.CrossValidateSalary(req.SalaryMin.Ptr(), req.SalaryMax.Ptr()))
	}
	if err = errs.Err(); err != nil {
		return models.Vacancy{}, err
	}

	vacancy := models.Vacancy{
		EmploymentType: models.FullTime,
		IsActive:       true,
		ProjectID:      project.ID,
	}
	applyVacancyRequest(&vacancy, req)

	created, err := s.vacancies.CreateVacancy(ctx, vacancy)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*projectService.CreateVacancy").Int64("project_id", projectID).Msg("vacancy creation failed")
		return models.Vacancy{}, translate(err)
	}

	created.Derive()
	return created, nil
}

// Stats summarizes the project's technologies, vacancies and deadline.
func (s *projectService) Stats(ctx context.Context, callerID int64, projectID int64) (models.ProjectStats, error) {
	project, err := s.load(ctx, callerID, projectID, accessRead)
	if err != nil {
		return models.ProjectStats{}, err
	}

	counts, err := s.projects.CountVacancies(ctx, projectID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*projectService.Stats").Int64("project_id", projectID).Msg("counting vacancies failed")
		return models.ProjectStats{}, translate(err)
	}

	today := s.today()
	project.Derive(today)

	stats := models.ProjectStats{
		TotalTechnologies: project.TechnologiesCount,
		TotalVacancies:    counts.Total,
		ActiveVacancies:   counts.Active,
		IsOverdue:         project.IsOverdue,
	}
	if project.Deadline != nil {
		days := project.Deadline.DaysSince(today)
		stats.DaysUntilDeadline = &days
	}

	return stats, nil
}

// load fetches the project and authorizes op on it.
func (s *projectService) load(ctx context.Context, callerID int64, projectID int64, op access) (models.Project, error) {
	project, err := s.projects.FindProjectByID(ctx, projectID)
	if err != nil {
		return models.Project{}, translate(err)
	}
	if err = authorizeProject(callerID, project, op); err != nil {
		logger.FromContext(ctx).Warn().Int64("project_id", projectID).Int64("caller_id", callerID).Msg("access to foreign project denied")
		return models.Project{}, err
	}
	return project, nil
}

// applyProjectRequest copies the present fields of a validated payload onto
// project. Explicit nulls clear the optional fields.
func applyProjectRequest(project *models.Project, req models.ProjectRequest) {
	if req.Title.HasValue() {
		project.Title = strings.TrimSpace(req.Title.Value)
	}
	if req.Description.HasValue() {
		project.Description = strings.TrimSpace(req.Description.Value)
	}
	if req.Technologies.HasValue() {
		if technologies, err := validators.ValidateTechnologies(req.Technologies.Value); err == nil {
			project.Technologies = technologies
		}
	}
	if req.Budget.Present {
		project.Budget = req.Budget.Ptr()
	}
	if req.Deadline.Present {
		project.Deadline = req.Deadline.Ptr()
	}
	if req.Metadata.HasValue() {
		project.Metadata = req.Metadata.Value
	}
}

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/MKhiriev/go-project-board/internal/logger"
	"github.com/MKhiriev/go-project-board/internal/store"
	"github.com/MKhiriev/go-project-board/internal/validators"
	"github.com/MKhiriev/go-project-board/models"
)

type vacancyService struct {
	vacancies store.VacancyRepository
	projects  store.ProjectRepository

	validator validators.Validator

	logger *logger.Logger
}

// NewVacancyService constructs a VacancyService. The project repository is
// used to check the target of a vacancy move.
func NewVacancyService(vacancies store.VacancyRepository, projects store.ProjectRepository, logger *logger.Logger) VacancyService {
	return &vacancyService{
		vacancies: vacancies,
		projects:  projects,
		validator: validators.NewVacancyValidator(),
		logger:    logger,
	}
}

// List returns one page of vacancies of the caller's projects. The owner
// filter is always set to the caller.
func (s *vacancyService) List(ctx context.Context, callerID int64, filter models.VacancyFilter, page models.PageRequest) ([]models.Vacancy, int64, error) {
	filter.OwnerID = callerID

	vacancies, count, err := s.vacancies.ListVacancies(ctx, filter, page)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*vacancyService.List").Int64("owner_id", callerID).Msg("listing vacancies failed")
		return nil, 0, translate(err)
	}
	if !page.Exists(count) {
		return nil, 0, ErrInvalidPage
	}

	for i := range vacancies {
		vacancies[i].Derive()
	}
	return vacancies, count, nil
}

func (s *vacancyService) Get(ctx context.Context, callerID int64, vacancyID int64) (models.Vacancy, error) {
	vacancy, err := s.load(ctx, callerID, vacancyID, accessRead)
	if err != nil {
		return models.Vacancy{}, err
	}

	vacancy.Derive()
	return vacancy, nil
}

// Update applies a full or partial update. The salary ordering rule is
// checked on the merged record. Moving the vacancy requires the target
// project to belong to the caller; otherwise the project field is rejected.
func (s *vacancyService) Update(ctx context.Context, callerID int64, vacancyID int64, req models.VacancyRequest, partial bool) (models.Vacancy, error) {
	vacancy, err := s.load(ctx, callerID, vacancyID, accessWrite)
	if err != nil {
		return models.Vacancy{}, err
	}

	fields := presentFields(
		field{validators.FieldTitle, !partial || req.Title.Present},
		field{validators.FieldDescription, !partial || req.Description.Present},
		field{validators.FieldRequirements, !partial || req.Requirements.Present},
		field{validators.FieldSalaryMin, req.SalaryMin.Present},
		field{validators.FieldSalaryMax, req.SalaryMax.Present},
		field{validators.FieldEmploymentType, req.EmploymentType.Present},
		field{validators.FieldIsActive, req.IsActive.Present},
		field{validators.FieldProject, req.Project.Present},
	)

	errs := validators.NewErrors()
	if len(fields) > 0 {
		errs.Merge(s.validator.Validate(ctx, req, fields...))
	}

	merged := vacancy
	applyVacancyRequest(&merged, req)
	if !errs.Has(validators.FieldSalaryMin) && !errs.Has(validators.FieldSalaryMax) {
		errs.Add(validators.NonFieldErrors, validators.CrossValidateSalary(merged.SalaryMin, merged.SalaryMax))
	}

	if req.Project.HasValue() && req.Project.Value != vacancy.ProjectID {
		if err = s.checkMoveTarget(ctx, callerID, req.Project.Value); err != nil {
			if !errors.Is(err, validators.ErrInvalidPK) {
				return models.Vacancy{}, err
			}
			errs.Add(validators.FieldProject, err)
		}
	}
	if err = errs.Err(); err != nil {
		return models.Vacancy{}, err
	}

	if req.Project.HasValue() {
		merged.ProjectID = req.Project.Value
	}

	updated, err := s.vacancies.UpdateVacancy(ctx, merged)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*vacancyService.Update").Int64("vacancy_id", vacancyID).Msg("vacancy update failed")
		return models.Vacancy{}, translate(err)
	}

	updated.Derive()
	return updated, nil
}

// checkMoveTarget fails with a validators.ErrInvalidPK error when the
// target project does not exist or belongs to someone else.
func (s *vacancyService) checkMoveTarget(ctx context.Context, callerID int64, projectID int64) error {
	target, err := s.projects.FindProjectByID(ctx, projectID)
	if errors.Is(err, store.ErrNotFound) {
		return validators.InvalidPK(projectID)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*vacancyService.checkMoveTarget").Int64("project_id", projectID).Msg("target project lookup failed")
		return translate(err)
	}
	if authorizeProject(callerID, target, accessWrite) != nil {
		logger.FromContext(ctx).Warn().Int64("project_id", projectID).Int64("caller_id", callerID).Msg("vacancy move to foreign project rejected")
		return validators.InvalidPK(projectID)
	}
	return nil
}

func (s *vacancyService) Delete(ctx context.Context, callerID int64, vacancyID int64) error {
	if _, err := s.load(ctx, callerID, vacancyID, accessWrite); err != nil {
		return err
	}

	if err := s.vacancies.DeleteVacancy(ctx, vacancyID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*vacancyService.Delete").Int64("vacancy_id", vacancyID).Msg("vacancy deletion failed")
		return translate(err)
	}
	return nil
}

// load fetches the vacancy and authorizes op on it through the owner of its
// project.
func (s *vacancyService) load(ctx context.Context, callerID int64, vacancyID int64, op access) (models.Vacancy, error) {
	vacancy, err := s.vacancies.FindVacancyByID(ctx, vacancyID)
	if err != nil {
		return models.Vacancy{}, translate(err)
	}
	if err = authorizeVacancy(callerID, vacancy, op); err != nil {
		logger.FromContext(ctx).Warn().Int64("vacancy_id", vacancyID).Int64("caller_id", callerID).Msg("access to foreign vacancy denied")
		return models.Vacancy{}, err
	}
	return vacancy, nil
}

// applyVacancyRequest copies the present fields of a payload onto vacancy.
// Explicit nulls clear the salary bounds. The project is not touched.
func applyVacancyRequest(vacancy *models.Vacancy, req models.VacancyRequest) {
	if req.Title.HasValue() {
		vacancy.Title = strings.TrimSpace(req.Title.Value)
	}
	if req.Description.HasValue() {
		vacancy.Description = strings.TrimSpace(req.Description.Value)
	}
	if req.Requirements.HasValue() {
		vacancy.Requirements = strings.TrimSpace(req.Requirements.Value)
	}
	if req.SalaryMin.Present && !req.SalaryMin.Invalid {
		vacancy.SalaryMin = req.SalaryMin.Ptr()
	}
	if req.SalaryMax.Present && !req.SalaryMax.Invalid {
		vacancy.SalaryMax = req.SalaryMax.Ptr()
	}
	if req.EmploymentType.HasValue() {
		vacancy.EmploymentType = req.EmploymentType.Value
	}
	if req.IsActive.HasValue() {
		vacancy.IsActive = req.IsActive.Value
	}
}

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-project-board/internal/adapter"
	"github.com/MKhiriev/go-project-board/internal/logger"
	"github.com/MKhiriev/go-project-board/models"
)

var _ Client = (*App)(nil)

// App seeds demo data through the API.
type App struct {
	api   adapter.APIClient
	today func() models.Date

	logger *logger.Logger
}

// NewApp constructs the seeding client over api.
func NewApp(api adapter.APIClient, logger *logger.Logger) (*App, error) {
	if api == nil {
		return nil, ErrNoAPIClient
	}

	return &App{
		api:    api,
		today:  func() models.Date { return models.NewDate(time.Now()) },
		logger: logger,
	}, nil
}

// Run creates the demo users, projects and vacancies. Each user is
// registered, or logged in when the username is taken, and then seeds the
// projects it owns.
func (a *App) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	for i, req := range demoUsers {
		user, err := a.authenticate(ctx, req)
		if err != nil {
			return summary, fmt.Errorf("%w: %s: %w", ErrSeedUser, req.Username, err)
		}
		summary.Users++
		a.logger.Info().Str("username", user.Username).Int64("user_id", user.ID).Msg("seed user ready")

		projects, vacancies, err := a.seedProjectsOf(ctx, i)
		summary.Projects += projects
		summary.Vacancies += vacancies
		if err != nil {
			return summary, err
		}
	}

	a.logger.Info().
		Int("users", summary.Users).
		Int("projects_created", summary.Projects).
		Int("vacancies_created", summary.Vacancies).
		Msg("test data created successfully")
	return summary, nil
}

func (a *App) authenticate(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	req.Password = demoPassword
	req.PasswordConfirm = demoPassword

	user, err := a.api.Register(ctx, req)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, adapter.ErrConflict) {
		return models.User{}, err
	}

	a.logger.Debug().Str("username", req.Username).Msg("user exists, logging in")
	return a.api.Login(ctx, models.LoginRequest{Username: req.Username, Password: demoPassword})
}

// seedProjectsOf creates the projects owned by the demo user at index owner
// together with their vacancies. The API client must be authenticated as
// that user.
func (a *App) seedProjectsOf(ctx context.Context, owner int) (int, int, error) {
	existing, err := a.projectIDsByTitle(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrSeedProject, err)
	}

	var projectsCreated, vacanciesCreated int
	for _, p := range demoProjects {
		if p.owner != owner {
			continue
		}

		id, ok := existing[p.title]
		if !ok {
			project, err := a.api.CreateProject(ctx, a.projectRequest(p))
			if err != nil {
				return projectsCreated, vacanciesCreated, fmt.Errorf("%w: %s: %w", ErrSeedProject, p.title, err)
			}
			id = project.ID
			projectsCreated++
			a.logger.Info().Str("title", p.title).Int64("project_id", id).Msg("created project")
		}

		created, err := a.seedVacanciesOf(ctx, id, p.title)
		vacanciesCreated += created
		if err != nil {
			return projectsCreated, vacanciesCreated, err
		}
	}

	return projectsCreated, vacanciesCreated, nil
}

func (a *App) seedVacanciesOf(ctx context.Context, projectID int64, projectTitle string) (int, error) {
	existing, err := a.vacancyTitles(ctx, projectID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSeedVacancy, err)
	}

	created := 0
	for _, v := range demoVacancies {
		if v.project != projectTitle {
			continue
		}
		if _, ok := existing[v.title]; ok {
			continue
		}

		vacancy, err := a.api.CreateVacancy(ctx, projectID, vacancyRequest(v))
		if err != nil {
			return created, fmt.Errorf("%w: %s: %w", ErrSeedVacancy, v.title, err)
		}
		created++
		a.logger.Info().Str("title", v.title).Int64("vacancy_id", vacancy.ID).Msg("created vacancy")
	}

	return created, nil
}

// projectIDsByTitle walks every page of the caller's projects.
func (a *App) projectIDsByTitle(ctx context.Context) (map[string]int64, error) {
	ids := make(map[string]int64)
	for page := 1; ; page++ {
		result, err := a.api.ListProjects(ctx, page)
		if err != nil {
			return nil, err
		}
		for _, p := range result.Results {
			ids[p.Title] = p.ID
		}
		if result.Next == nil {
			return ids, nil
		}
	}
}

func (a *App) vacancyTitles(ctx context.Context, projectID int64) (map[string]struct{}, error) {
	titles := make(map[string]struct{})
	filter := models.VacancyFilter{ProjectID: &projectID}
	for page := 1; ; page++ {
		result, err := a.api.ListVacancies(ctx, filter, page)
		if err != nil {
			return nil, err
		}
		for _, v := range result.Results {
			titles[v.Title] = struct{}{}
		}
		if result.Next == nil {
			return titles, nil
		}
	}
}

func (a *App) projectRequest(p demoProject) models.ProjectRequest {
	technologies, _ := json.Marshal(p.technologies)

	return models.ProjectRequest{
		Title:        models.Set(p.title),
		Description:  models.Set(p.description),
		Technologies: models.Set(json.RawMessage(technologies)),
		Budget:       models.Set(p.budget),
		Deadline:     models.Set(a.today().AddDays(p.deadlineDays)),
	}
}

func vacancyRequest(v demoVacancy) models.VacancyRequest {
	return models.VacancyRequest{
		Title:          models.Set(v.title),
		Description:    models.Set(v.description),
		Requirements:   models.Set(v.requirements),
		SalaryMin:      models.Set(v.salaryMin),
		SalaryMax:      models.Set(v.salaryMax),
		EmploymentType: models.Set(v.employmentType),
	}
}

package service

import (
	"context"

	"github.com/MKhiriev/go-project-board/models"
)

// AuthService manages accounts and their opaque tokens.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.User, models.Token, error)
	Login(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error)
	ChangePassword(ctx context.Context, callerID int64, req models.ChangePasswordRequest) (models.Token, error)
	Logout(ctx context.Context, callerID int64) error

	// Authenticate resolves a token key to its active owner.
	Authenticate(ctx context.Context, tokenKey string) (models.User, error)

	Profile(ctx context.Context, callerID int64) (models.User, error)
	UpdateProfile(ctx context.Context, callerID int64, req models.ProfileUpdateRequest, partial bool) (models.User, error)
}

// ProjectService manages the caller's projects and their nested vacancies.
type ProjectService interface {
	List(ctx context.Context, callerID int64, page models.PageRequest) ([]models.ProjectListItem, int64, error)
	Get(ctx context.Context, callerID int64, projectID int64) (models.Project, error)
	Create(ctx context.Context, callerID int64, req models.ProjectRequest) (models.Project, error)
	Update(ctx context.Context, callerID int64, projectID int64, req models.ProjectRequest, partial bool) (models.Project, error)
	Delete(ctx context.Context, callerID int64, projectID int64) error

	Vacancies(ctx context.Context, callerID int64, projectID int64) ([]models.Vacancy, error)
	CreateVacancy(ctx context.Context, callerID int64, projectID int64, req models.VacancyRequest) (models.Vacancy, error)
	Stats(ctx context.Context, callerID int64, projectID int64) (models.ProjectStats, error)
}

// VacancyService manages vacancies of the caller's projects.
type VacancyService interface {
	List(ctx context.Context, callerID int64, filter models.VacancyFilter, page models.PageRequest) ([]models.Vacancy, int64, error)
	Get(ctx context.Context, callerID int64, vacancyID int64) (models.Vacancy, error)
	Update(ctx context.Context, callerID int64, vacancyID int64, req models.VacancyRequest, partial bool) (models.Vacancy, error)
	Delete(ctx context.Context, callerID int64, vacancyID int64) error
}

// AppInfoService reports build information and liveness.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	Info(ctx context.Context) models.APIInfo
	Health(ctx context.Context) (models.Health, error)
}

package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-project-board/models"
)

// ErrorClassificator inspects driver errors of one SQL backend.
type ErrorClassificator interface {
	// Classify reports whether the failed operation may succeed on retry.
	Classify(err error) ErrorClassification
	// UniqueViolation reports whether err is a unique constraint violation
	// and names the violated constraint.
	UniqueViolation(err error) (constraint string, ok bool)
}

// UserRepository persists accounts.
type UserRepository interface {
	// CreateUserWithToken inserts the user and its first token in one
	// transaction. A unique violation leaves nothing written.
	CreateUserWithToken(ctx context.Context, user models.User, tokenKey string) (models.User, models.Token, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	ExistsUsername(ctx context.Context, username string) (bool, error)
	// ExistsEmail ignores the user with excludeID; pass 0 to check everyone.
	ExistsEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	UpdateProfile(ctx context.Context, user models.User) (models.User, error)
	// ChangePassword stores the new hash and replaces the user's token in
	// one transaction.
	ChangePassword(ctx context.Context, userID int64, passwordHash, tokenKey string) (models.Token, error)
}

// TokenRepository persists authentication tokens.
type TokenRepository interface {
	// GetOrCreateToken returns the live token of the user, inserting one
	// with tokenKey when none exists.
	GetOrCreateToken(ctx context.Context, userID int64, tokenKey string) (models.Token, error)
	FindUserByToken(ctx context.Context, tokenKey string) (models.User, error)
	// DeleteToken reports whether a token existed.
	DeleteToken(ctx context.Context, userID int64) (bool, error)
}

// ProjectRepository persists projects.
type ProjectRepository interface {
	CreateProject(ctx context.Context, project models.Project) (models.Project, error)
	FindProjectByID(ctx context.Context, projectID int64) (models.Project, error)
	// ListProjects returns one page of the owner's projects, newest first,
	// and the total count.
	ListProjects(ctx context.Context, ownerID int64, page models.PageRequest) ([]models.Project, int64, error)
	UpdateProject(ctx context.Context, project models.Project) (models.Project, error)
	// DeleteProject removes the project and, by cascade, its vacancies.
	DeleteProject(ctx context.Context, projectID int64) error
	CountVacancies(ctx context.Context, projectID int64) (models.VacancyCounts, error)
}

// VacancyRepository persists vacancies.
type VacancyRepository interface {
	CreateVacancy(ctx context.Context, vacancy models.Vacancy) (models.Vacancy, error)
	FindVacancyByID(ctx context.Context, vacancyID int64) (models.Vacancy, error)
	// ListVacancies returns one page of vacancies of the filter owner's
	// projects, newest first, and the total count.
	ListVacancies(ctx context.Context, filter models.VacancyFilter, page models.PageRequest) ([]models.Vacancy, int64, error)
	ListProjectVacancies(ctx context.Context, projectID int64) ([]models.Vacancy, error)
	UpdateVacancy(ctx context.Context, vacancy models.Vacancy) (models.Vacancy, error)
	DeleteVacancy(ctx context.Context, vacancyID int64) error
}

// Pinger checks storage liveness.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a typed client of the project board REST API.
//
// The primary abstraction is [APIClient], used by the seeding command to
// create demo accounts, projects and vacancies through the public API rather
// than the database. The package ships an HTTP implementation built on resty
// ([NewHTTPAPIClient]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] (e.g. [ErrConflict] for
// 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-project-board/models"
)

// APIClient defines communication with the project board API. Implementations
// are responsible for serialisation, token header management and mapping
// HTTP errors to the sentinel values of this package.
type APIClient interface {
	// SetToken stores the token attached to all subsequent authenticated
	// requests.
	SetToken(token string)

	// Token returns the stored token, or an empty string.
	Token() string

	// Register creates an account. On success the returned token is stored.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Login authenticates with a username or email. On success the returned
	// token is stored.
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)

	// CreateProject creates a project owned by the authenticated user.
	CreateProject(ctx context.Context, req models.ProjectRequest) (models.Project, error)

	// CreateVacancy creates a vacancy in the given project.
	CreateVacancy(ctx context.Context, projectID int64, req models.VacancyRequest) (models.Vacancy, error)

	// ListProjects fetches one page of the caller's projects.
	ListProjects(ctx context.Context, page int) (models.Page[models.ProjectListItem], error)

	// ListVacancies fetches one page of the caller's vacancies. OwnerID of
	// the filter is ignored; the server scopes listings to the caller.
	ListVacancies(ctx context.Context, filter models.VacancyFilter, page int) (models.Page[models.Vacancy], error)
}

package http

import (
	"context"

	"github.com/MKhiriev/go-project-board/models"
)

// ── mockAuthService ───────────────────────────────────────────────────────────

type mockAuthService struct {
	registerFn       func(ctx context.Context, req models.RegisterRequest) (models.User, models.Token, error)
	loginFn          func(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error)
	changePasswordFn func(ctx context.Context, callerID int64, req models.ChangePasswordRequest) (models.Token, error)
	logoutFn         func(ctx context.Context, callerID int64) error
	authenticateFn   func(ctx context.Context, tokenKey string) (models.User, error)
	profileFn        func(ctx context.Context, callerID int64) (models.User, error)
	updateProfileFn  func(ctx context.Context, callerID int64, req models.ProfileUpdateRequest, partial bool) (models.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, req models.RegisterRequest) (models.User, models.Token, error) {
	return m.registerFn(ctx, req)
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error) {
	return m.loginFn(ctx, req)
}

func (m *mockAuthService) ChangePassword(ctx context.Context, callerID int64, req models.ChangePasswordRequest) (models.Token, error) {
	return m.changePasswordFn(ctx, callerID, req)
}

func (m *mockAuthService) Logout(ctx context.Context, callerID int64) error {
	return m.logoutFn(ctx, callerID)
}

func (m *mockAuthService) Authenticate(ctx context.Context, tokenKey string) (models.User, error) {
	return m.authenticateFn(ctx, tokenKey)
}

func (m *mockAuthService) Profile(ctx context.Context, callerID int64) (models.User, error) {
	return m.profileFn(ctx, callerID)
}

func (m *mockAuthService) UpdateProfile(ctx context.Context, callerID int64, req models.ProfileUpdateRequest, partial bool) (models.User, error) {
	return m.updateProfileFn(ctx, callerID, req, partial)
}

// ── mockProjectService ────────────────────────────────────────────────────────

type mockProjectService struct {
	listFn          func(ctx context.Context, callerID int64, page models.PageRequest) ([]models.ProjectListItem, int64, error)
	getFn           func(ctx context.Context, callerID, projectID int64) (models.Project, error)
	createFn        func(ctx context.Context, callerID int64, req models.ProjectRequest) (models.Project, error)
	updateFn        func(ctx context.Context, callerID, projectID int64, req models.ProjectRequest, partial bool) (models.Project, error)
	deleteFn        func(ctx context.Context, callerID, projectID int64) error
	vacanciesFn     func(ctx context.Context, callerID, projectID int64) ([]models.Vacancy, error)
	createVacancyFn func(ctx context.Context, callerID, projectID int64, req models.VacancyRequest) (models.Vacancy, error)
	statsFn         func(ctx context.Context, callerID, projectID int64) (models.ProjectStats, error)
}

func (m *mockProjectService) List(ctx context.Context, callerID int64, page models.PageRequest) ([]models.ProjectListItem, int64, error) {
	return m.listFn(ctx, callerID, page)
}

func (m *mockProjectService) Get(ctx context.Context, callerID int64, projectID int64) (models.Project, error) {
	return m.getFn(ctx, callerID, projectID)
}

func (m *mockProjectService) Create(ctx context.Context, callerID int64, req models.ProjectRequest) (models.Project, error) {
	return m.createFn(ctx, callerID, req)
}

func (m *mockProjectService) Update(ctx context.Context, callerID int64, projectID int64, req models.ProjectRequest, partial bool) (models.Project, error) {
	return m.updateFn(ctx, callerID, projectID, req, partial)
}

func (m *mockProjectService) Delete(ctx context.Context, callerID int64, projectID int64) error {
	return m.deleteFn(ctx, callerID, projectID)
}

func (m *mockProjectService) Vacancies(ctx context.Context, callerID int64, projectID int64) ([]models.Vacancy, error) {
	return m.vacanciesFn(ctx, callerID, projectID)
}

func (m *mockProjectService) CreateVacancy(ctx context.Context, callerID int64, projectID int64, req models.VacancyRequest) (models.Vacancy, error) {
	return m.createVacancyFn(ctx, callerID, projectID, req)
}

func (m *mockProjectService) Stats(ctx context.Context, callerID int64, projectID int64) (models.ProjectStats, error) {
	return m.statsFn(ctx, callerID, projectID)
}

// ── mockVacancyService ────────────────────────────────────────────────────────

type mockVacancyService struct {
	listFn   func(ctx context.Context, callerID int64, filter models.VacancyFilter, page models.PageRequest) ([]models.Vacancy, int64, error)
	getFn    func(ctx context.Context, callerID, vacancyID int64) (models.Vacancy, error)
	updateFn func(ctx context.Context, callerID, vacancyID int64, req models.VacancyRequest, partial bool) (models.Vacancy, error)
	deleteFn func(ctx context.Context, callerID, vacancyID int64) error
}

func (m *mockVacancyService) List(ctx context.Context, callerID int64, filter models.VacancyFilter, page models.PageRequest) ([]models.Vacancy, int64, error) {
	return m.listFn(ctx, callerID, filter, page)
}

func (m *mockVacancyService) Get(ctx context.Context, callerID int64, vacancyID int64) (models.Vacancy, error) {
	return m.getFn(ctx, callerID, vacancyID)
}

func (m *mockVacancyService) Update(ctx context.Context, callerID int64, vacancyID int64, req models.VacancyRequest, partial bool) (models.Vacancy, error) {
	return m.updateFn(ctx, callerID, vacancyID, req, partial)
}

func (m *mockVacancyService) Delete(ctx context.Context, callerID int64, vacancyID int64) error {
	return m.deleteFn(ctx, callerID, vacancyID)
}

// ── mockAppInfoService ────────────────────────────────────────────────────────

type mockAppInfoService struct {
	version   string
	healthErr error
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

func (m *mockAppInfoService) Info(_ context.Context) models.APIInfo {
	return models.APIInfo{
		Message:   "Welcome",
		Version:   m.version,
		Endpoints: map[string]string{"projects": "/api/projects/"},
		Status:    "API is working correctly!",
	}
}

func (m *mockAppInfoService) Health(_ context.Context) (models.Health, error) {
	if m.healthErr != nil {
		return models.Health{Status: "degraded", Database: "down"}, m.healthErr
	}
	return models.Health{Status: "ok", Database: "up"}, nil
}

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/go-project-board/internal/config"
	"github.com/MKhiriev/go-project-board/internal/logger"
	"github.com/MKhiriev/go-project-board/internal/utils"
	"github.com/MKhiriev/go-project-board/models"
	"github.com/go-resty/resty/v2"
)

type httpAPIClient struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPAPIClient constructs the resty implementation of [APIClient]. The
// base URL may omit the scheme, in which case http is assumed.
func NewHTTPAPIClient(cfg config.Adapter, logger *logger.Logger) (APIClient, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base URL: %w", err)
	}

	return &httpAPIClient{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyBaseURL
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (c *httpAPIClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}

func (c *httpAPIClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Register posts to /auth/register/ and stores the issued token.
func (c *httpAPIClient) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	var result models.AuthResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		Post("/auth/register/")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return c.acceptAuth(result)
}

// Login posts to /auth/login/ and stores the returned token.
func (c *httpAPIClient) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	var result models.AuthResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		Post("/auth/login/")
	if err != nil {
		return models.User{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return c.acceptAuth(result)
}

func (c *httpAPIClient) acceptAuth(result models.AuthResponse) (models.User, error) {
	if result.Token == "" || result.User == nil {
		return models.User{}, fmt.Errorf("%w: response carries no token", ErrUnauthorized)
	}

	c.SetToken(result.Token)
	c.logger.Debug().Int64("user_id", result.User.ID).Msg("api client authenticated")
	return *result.User, nil
}

func (c *httpAPIClient) CreateProject(ctx context.Context, req models.ProjectRequest) (models.Project, error) {
	var project models.Project

	resp, err := c.authedRequest(ctx).
		SetBody(req).
		SetResult(&project).
		Post("/api/projects/")
	if err != nil {
		return models.Project{}, fmt.Errorf("create project request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Project{}, err
	}

	return project, nil
}

func (c *httpAPIClient) CreateVacancy(ctx context.Context, projectID int64, req models.VacancyRequest) (models.Vacancy, error) {
	var vacancy models.Vacancy

	resp, err := c.authedRequest(ctx).
		SetBody(req).
		SetResult(&vacancy).
		SetPathParam("id", strconv.FormatInt(projectID, 10)).
		Post("/api/projects/{id}/vacancies/")
	if err != nil {
		return models.Vacancy{}, fmt.Errorf("create vacancy request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Vacancy{}, err
	}

	return vacancy, nil
}

func (c *httpAPIClient) ListProjects(ctx context.Context, page int) (models.Page[models.ProjectListItem], error) {
	var result models.Page[models.ProjectListItem]

	resp, err := c.authedRequest(ctx).
		SetQueryParams(pageParams(page)).
		SetResult(&result).
		Get("/api/projects/")
	if err != nil {
		return result, fmt.Errorf("list projects request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return result, err
	}

	return result, nil
}

func (c *httpAPIClient) ListVacancies(ctx context.Context, filter models.VacancyFilter, page int) (models.Page[models.Vacancy], error) {
	var result models.Page[models.Vacancy]

	params := pageParams(page)
	if filter.ProjectID != nil {
		params["project"] = strconv.FormatInt(*filter.ProjectID, 10)
	}
	if filter.EmploymentType != nil {
		params["employment_type"] = string(*filter.EmploymentType)
	}
	if filter.IsActive != nil {
		params["is_active"] = strconv.FormatBool(*filter.IsActive)
	}

	resp, err := c.authedRequest(ctx).
		SetQueryParams(params).
		SetResult(&result).
		Get("/api/vacancies/")
	if err != nil {
		return result, fmt.Errorf("list vacancies request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return result, err
	}

	return result, nil
}

func (c *httpAPIClient) authedRequest(ctx context.Context) *resty.Request {
	req := c.client.R().SetContext(ctx)
	if token := c.Token(); token != "" {
		req.SetHeader("Authorization", "Token "+token)
	}
	return req
}

func pageParams(page int) map[string]string {
	params := make(map[string]string)
	if page > 1 {
		params["page"] = strconv.Itoa(page)
	}
	return params
}

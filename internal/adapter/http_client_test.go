package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-project-board/internal/config"
	"github.com/MKhiriev/go-project-board/internal/logger"
	"github.com/MKhiriev/go-project-board/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "9944b09199c62bcf9418ad846dd0e4bbdfc6ee4b"

func newTestClient(t *testing.T, handler http.HandlerFunc) (APIClient, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewHTTPAPIClient(config.Adapter{BaseURL: srv.URL, RequestTimeout: 2 * time.Second}, logger.Nop())
	require.NoError(t, err)
	return client, srv
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ─────────────────────────────────────────────
// normalizeBaseURL
// ─────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "full url", raw: "http://localhost:8000", want: "http://localhost:8000"},
		{name: "trailing slash trimmed", raw: "https://api.example.com/", want: "https://api.example.com"},
		{name: "scheme added", raw: "localhost:8000", want: "http://localhost:8000"},
		{name: "empty", raw: "  ", wantErr: true},
		{name: "no host", raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPAPIClient_EmptyBaseURL(t *testing.T) {
	client, err := NewHTTPAPIClient(config.Adapter{}, logger.Nop())

	require.ErrorIs(t, err, ErrEmptyBaseURL)
	assert.Nil(t, client)
}

// ─────────────────────────────────────────────
// Register / Login
// ─────────────────────────────────────────────

func TestRegister_StoresToken(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/register/", r.URL.Path)

		var req models.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "demo", req.Username)

		writeJSON(t, w, http.StatusCreated, models.AuthResponse{
			Message: "User registered successfully",
			User:    &models.User{ID: 3, Username: req.Username},
			Token:   testToken,
		})
	})

	user, err := client.Register(context.Background(), models.RegisterRequest{Username: "demo"})

	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
	assert.Equal(t, testToken, client.Token())
}

func TestRegister_Conflict(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusConflict, map[string][]string{"username": {"A user with this username already exists."}})
	})

	_, err := client.Register(context.Background(), models.RegisterRequest{Username: "demo"})

	require.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "already exists")
	assert.Empty(t, client.Token())
}

func TestLogin_StoresToken(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login/", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.AuthResponse{
			Message: "Login successful",
			User:    &models.User{ID: 3, Username: "demo"},
			Token:   testToken,
		})
	})

	user, err := client.Login(context.Background(), models.LoginRequest{Username: "demo", Password: "x"})

	require.NoError(t, err)
	assert.Equal(t, "demo", user.Username)
	assert.Equal(t, testToken, client.Token())
}

func TestLogin_ResponseWithoutToken(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, models.AuthResponse{Message: "Login successful"})
	})

	_, err := client.Login(context.Background(), models.LoginRequest{Username: "demo", Password: "x"})

	require.ErrorIs(t, err, ErrUnauthorized)
}

// ─────────────────────────────────────────────
// authenticated calls
// ─────────────────────────────────────────────

func TestCreateProject_SendsTokenAndPayload(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/projects/", r.URL.Path)
		assert.Equal(t, "Token "+testToken, r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Alpha", body["title"])
		assert.Equal(t, []any{"Go"}, body["technologies"])
		assert.NotContains(t, body, "deadline")

		writeJSON(t, w, http.StatusCreated, models.Project{ID: 11, Title: "Alpha", Technologies: []string{"Go"}})
	})
	client.SetToken(" " + testToken + " ")

	project, err := client.CreateProject(context.Background(), models.ProjectRequest{
		Title:        models.Set("Alpha"),
		Description:  models.Set("Desc"),
		Technologies: models.Set(json.RawMessage(`["Go"]`)),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(11), project.ID)
}

func TestCreateVacancy_UsesProjectRoute(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/projects/11/vacancies/", r.URL.Path)
		writeJSON(t, w, http.StatusCreated, models.Vacancy{ID: 4, ProjectID: 11})
	})
	client.SetToken(testToken)

	vacancy, err := client.CreateVacancy(context.Background(), 11, models.VacancyRequest{Title: models.Set("Go dev")})

	require.NoError(t, err)
	assert.Equal(t, int64(11), vacancy.ProjectID)
}

func TestCreateVacancy_Forbidden(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusForbidden, map[string]string{"detail": "You do not have permission to perform this action."})
	})

	_, err := client.CreateVacancy(context.Background(), 11, models.VacancyRequest{})

	require.ErrorIs(t, err, ErrForbidden)
}

func TestListProjects_PageParameter(t *testing.T) {
	tests := []struct {
		page      int
		wantQuery string
	}{
		{page: 0, wantQuery: ""},
		{page: 1, wantQuery: ""},
		{page: 3, wantQuery: "page=3"},
	}

	for _, tt := range tests {
		t.Run(tt.wantQuery, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.wantQuery, r.URL.RawQuery)
				writeJSON(t, w, http.StatusOK, models.Page[models.ProjectListItem]{Count: 1, Results: []models.ProjectListItem{{ID: 1}}})
			})

			page, err := client.ListProjects(context.Background(), tt.page)

			require.NoError(t, err)
			assert.Equal(t, int64(1), page.Count)
			assert.Len(t, page.Results, 1)
		})
	}
}

func TestListVacancies_FilterParameters(t *testing.T) {
	projectID := int64(11)
	employmentType := models.Contract
	isActive := true

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "11", q.Get("project"))
		assert.Equal(t, "contract", q.Get("employment_type"))
		assert.Equal(t, "true", q.Get("is_active"))
		assert.Equal(t, "2", q.Get("page"))
		writeJSON(t, w, http.StatusOK, models.Page[models.Vacancy]{Count: 0, Results: []models.Vacancy{}})
	})

	_, err := client.ListVacancies(context.Background(), models.VacancyFilter{
		ProjectID:      &projectID,
		EmploymentType: &employmentType,
		IsActive:       &isActive,
	}, 2)

	require.NoError(t, err)
}

// ─────────────────────────────────────────────
// mapHTTPError
// ─────────────────────────────────────────────

func TestMapHTTPError(t *testing.T) {
	tests := []struct {
		status  int
		wantErr error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
		{http.StatusServiceUnavailable, ErrUnavailable},
		{http.StatusInternalServerError, ErrInternalServerError},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			_, err := client.ListProjects(context.Background(), 1)

			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), http.StatusText(tt.status))
		})
	}
}

func TestMapHTTPError_UnknownStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	_, err := client.ListProjects(context.Background(), 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 418")
}

package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-project-board/internal/service"
	"github.com/MKhiriev/go-project-board/internal/utils"
	"github.com/MKhiriev/go-project-board/internal/validators"
	"github.com/MKhiriev/go-project-board/models"
	"github.com/go-chi/chi/v5"
)

// decodeJSON decodes the request body into v. An empty body leaves v
// untouched so that the validators report the missing fields.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return &jsonParseError{err: err}
	}
	return nil
}

// pathID parses the {id} route parameter. Anything but a positive integer
// does not name a resource.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, service.ErrNotFound
	}
	return id, nil
}

// callerID returns the authenticated user put into the context by the auth
// middleware.
func callerID(r *http.Request) (int64, error) {
	id, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return 0, service.ErrUnauthorized
	}
	return id, nil
}

// pageRequest reads the ?page= query parameter. A missing parameter selects
// the first page.
func (h *Handler) pageRequest(r *http.Request) (models.PageRequest, error) {
	page := models.PageRequest{Number: 1, Size: h.pageSize}

	raw := r.URL.Query().Get("page")
	if raw == "" {
		return page, nil
	}

	number, err := strconv.Atoi(raw)
	if err != nil {
		return models.PageRequest{}, service.ErrInvalidPage
	}
	page.Number = number
	if !page.Valid() {
		return models.PageRequest{}, service.ErrInvalidPage
	}
	return page, nil
}

// vacancyFilter reads the project, employment_type and is_active query
// parameters. Empty values are ignored, except for is_active where any value
// other than true/1/yes means false.
func vacancyFilter(r *http.Request) (models.VacancyFilter, error) {
	var filter models.VacancyFilter
	query := r.URL.Query()

	if raw := query.Get("project"); raw != "" {
		projectID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return models.VacancyFilter{}, validators.FieldError(validators.FieldProject, validators.ErrNotAnInt)
		}
		filter.ProjectID = &projectID
	}

	if raw := query.Get("employment_type"); raw != "" {
		employmentType := models.EmploymentType(raw)
		filter.EmploymentType = &employmentType
	}

	if query.Has("is_active") {
		isActive := parseBool(query.Get("is_active"))
		filter.IsActive = &isActive
	}

	return filter, nil
}

func parseBool(raw string) bool {
	switch strings.ToLower(raw) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

func callerAndPathID(r *http.Request) (int64, int64, error) {
	userID, err := callerID(r)
	if err != nil {
		return 0, 0, err
	}
	id, err := pathID(r)
	if err != nil {
		return 0, 0, err
	}
	return userID, id, nil
}

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-project-board/internal/logger"
	"github.com/MKhiriev/go-project-board/internal/service"
	"github.com/MKhiriev/go-project-board/internal/utils"
	"github.com/MKhiriev/go-project-board/internal/validators"
	"github.com/MKhiriev/go-project-board/models"
)

// errorStatusMap holds mutually exclusive error categories. Conflicts are
// checked before this table because they also match validators.ErrValidation.
var errorStatusMap = map[error]int{
	ErrMalformedJSON:           http.StatusBadRequest,
	validators.ErrValidation:   http.StatusBadRequest,
	service.ErrNoActiveSession: http.StatusBadRequest,
	service.ErrUnauthorized:    http.StatusUnauthorized,
	service.ErrForbidden:       http.StatusForbidden,
	service.ErrNotFound:        http.StatusNotFound,
	service.ErrUnavailable:     http.StatusServiceUnavailable,
}

// detailMessages lists client-facing errors from the most to the least
// specific. The first one matched by an error becomes its "detail".
var detailMessages = []error{
	ErrInvalidAuthorizationHeader,
	ErrTokenContainsSpaces,
	service.ErrInvalidToken,
	service.ErrUserInactive,
	service.ErrUnauthorized,
	service.ErrForeignVacancy,
	service.ErrForbidden,
	service.ErrInvalidPage,
	service.ErrNotFound,
	service.ErrUnavailable,
}

type detailResponse struct {
	Detail string `json:"detail"`
}

func statusFromError(err error) int {
	if errors.Is(err, validators.ErrConflict) {
		return http.StatusConflict
	}
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func detailMessage(err error) string {
	var parseErr *jsonParseError
	if errors.As(err, &parseErr) {
		return parseErr.Error()
	}
	for _, target := range detailMessages {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return errInternal.Error()
}

// writeError renders err with the status derived from its category.
// Field errors are written as {field: [messages]}, everything else as
// {"detail": message}. Internal errors are logged and never exposed.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	var fieldErrs *validators.Errors
	switch {
	case status == http.StatusInternalServerError:
		log.Err(err).Msg("unexpected error occurred")
		utils.WriteJSON(w, detailResponse{Detail: errInternal.Error()}, status)
	case errors.As(err, &fieldErrs):
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
		utils.WriteJSON(w, fieldErrs.Fields(), status)
	case errors.Is(err, service.ErrNoActiveSession):
		utils.WriteJSON(w, models.MessageResponse{Message: service.ErrNoActiveSession.Error()}, status)
	default:
		if status == http.StatusUnauthorized {
			w.Header().Set("WWW-Authenticate", "Token")
		}
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
		utils.WriteJSON(w, detailResponse{Detail: detailMessage(err)}, status)
	}
}

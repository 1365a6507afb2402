package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-project-board/internal/logger"
	"github.com/MKhiriev/go-project-board/internal/service"
	"github.com/MKhiriev/go-project-board/internal/utils"
	"github.com/rs/zerolog"
)

// authSchemes are the accepted "Authorization" header keywords.
var authSchemes = []string{"Token", "Bearer"}

// auth is an HTTP middleware that enforces token authentication.
//
// It reads the "Authorization: Token <key>" header (the "Bearer" keyword is
// accepted too), resolves the key through [service.AuthService.Authenticate]
// and, on success, stores the user's ID in the request context under
// [utils.UserIDCtxKey]. A header with an unknown scheme counts as missing.
//
// Requests are rejected with 401 and a {"detail": ...} body when the header
// is missing or malformed, or when the token is unknown or belongs to an
// inactive user.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenKey, err := getTokenFromAuthHeader(r.Header.Get("Authorization"))
		if err != nil {
			log.Debug().Err(err).Msg("request without usable credentials")
			writeError(w, r, err)
			return
		}

		ctx := r.Context()
		user, err := h.services.AuthService.Authenticate(ctx, tokenKey)
		if err != nil {
			log.Warn().Err(err).Msg("token authentication failed")
			writeError(w, r, err)
			return
		}

		l := log.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Int64("user_id", user.ID)
		})
		ctx = context.WithValue(l.WithContext(ctx), utils.UserIDCtxKey, user.ID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the token key from a raw "Authorization"
// header value of the form "<scheme> <key>".
//
// It returns:
//   - [service.ErrUnauthorized] if the header is empty or uses another scheme;
//   - [ErrInvalidAuthorizationHeader] if the key is missing;
//   - [ErrTokenContainsSpaces] if the key is split by spaces.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Fields(authHeader)
	if len(parts) == 0 || !knownScheme(parts[0]) {
		return "", service.ErrUnauthorized
	}

	switch {
	case len(parts) == 1:
		return "", ErrInvalidAuthorizationHeader
	case len(parts) > 2:
		return "", ErrTokenContainsSpaces
	}
	return parts[1], nil
}

func knownScheme(scheme string) bool {
	for _, s := range authSchemes {
		if strings.EqualFold(scheme, s) {
			return true
		}
	}
	return false
}

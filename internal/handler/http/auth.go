package http

import (
	"net/http"

	"github.com/MKhiriev/go-project-board/internal/logger"
	"github.com/MKhiriev/go-project-board/internal/utils"
	"github.com/MKhiriev/go-project-board/models"
)

const (
	msgRegistered      = "User registered successfully"
	msgLoggedIn        = "Login successful"
	msgLoggedOut       = "Logout successful"
	msgProfileUpdated  = "Profile updated successfully"
	msgPasswordChanged = "Password changed successfully"
	msgTokenValid      = "Token is valid"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, r, err)
		return
	}

	user, token, err := h.services.AuthService.Register(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Int64("user_id", user.ID).Msg("user registered")
	utils.WriteJSON(w, models.AuthResponse{Message: msgRegistered, User: &user, Token: token.Key}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, r, err)
		return
	}

	user, token, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Int64("user_id", user.ID).Msg("user successfully logged in")
	utils.WriteJSON(w, models.AuthResponse{Message: msgLoggedIn, User: &user, Token: token.Key}, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.AuthService.Logout(r.Context(), userID); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: msgLoggedOut}, http.StatusOK)
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.AuthService.Profile(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

// updateProfile serves both PUT and PATCH; PATCH leaves absent fields
// untouched.
func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.ProfileUpdateRequest
	if err = decodeJSON(r, &req); err != nil {
		logger.FromRequest(r).Err(err).Msg("invalid JSON was passed")
		writeError(w, r, err)
		return
	}

	user, err := h.services.AuthService.UpdateProfile(r.Context(), userID, req, r.Method == http.MethodPatch)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.AuthResponse{Message: msgProfileUpdated, User: &user}, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, err := callerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.ChangePasswordRequest
	if err = decodeJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.ChangePassword(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Int64("user_id", userID).Msg("password changed, token rotated")
	utils.WriteJSON(w, models.AuthResponse{Message: msgPasswordChanged, Token: token.Key}, http.StatusOK)
}

func (h *Handler) verifyToken(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.AuthService.Profile(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.AuthResponse{Message: msgTokenValid, User: &user}, http.StatusOK)
}

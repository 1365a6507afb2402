package http

import (
	"net/http"

	"github.com/MKhiriev/go-project-board/internal/logger"
	"github.com/MKhiriev/go-project-board/internal/utils"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(serverVersion))
}

func (h *Handler) apiRoot(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.AppInfoService.Info(r.Context()), http.StatusOK)
}

// health reports 503 together with the health body when the database does
// not answer.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	health, err := h.services.AppInfoService.Health(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("health check failed")
		utils.WriteJSON(w, health, http.StatusServiceUnavailable)
		return
	}

	utils.WriteJSON(w, health, http.StatusOK)
}

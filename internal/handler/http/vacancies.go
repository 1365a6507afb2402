package http

import (
	"net/http"

	"github.com/MKhiriev/go-project-board/internal/logger"
	"github.com/MKhiriev/go-project-board/internal/utils"
	"github.com/MKhiriev/go-project-board/models"
)

func (h *Handler) listVacancies(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	filter, err := vacancyFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := h.pageRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	vacancies, count, err := h.services.VacancyService.List(r.Context(), userID, filter, page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, newPage(r, page, count, vacancies), http.StatusOK)
}

func (h *Handler) getVacancy(w http.ResponseWriter, r *http.Request) {
	userID, vacancyID, err := callerAndPathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	vacancy, err := h.services.VacancyService.Get(r.Context(), userID, vacancyID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, vacancy, http.StatusOK)
}

// updateVacancy serves both PUT and PATCH.
func (h *Handler) updateVacancy(w http.ResponseWriter, r *http.Request) {
	userID, vacancyID, err := callerAndPathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.VacancyRequest
	if err = decodeJSON(r, &req); err != nil {
		logger.FromRequest(r).Err(err).Msg("invalid JSON was passed")
		writeError(w, r, err)
		return
	}

	vacancy, err := h.services.VacancyService.Update(r.Context(), userID, vacancyID, req, r.Method == http.MethodPatch)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, vacancy, http.StatusOK)
}

func (h *Handler) deleteVacancy(w http.ResponseWriter, r *http.Request) {
	userID, vacancyID, err := callerAndPathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.VacancyService.Delete(r.Context(), userID, vacancyID); err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("vacancy_id", vacancyID).Msg("vacancy deleted")
	w.WriteHeader(http.StatusNoContent)
}

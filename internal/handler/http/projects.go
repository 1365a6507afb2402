package http

import (
	"net/http"

	"github.com/MKhiriev/go-project-board/internal/logger"
	"github.com/MKhiriev/go-project-board/internal/utils"
	"github.com/MKhiriev/go-project-board/models"
)

func (h *Handler) listProjects(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := h.pageRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	projects, count, err := h.services.ProjectService.List(r.Context(), userID, page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, newPage(r, page, count, projects), http.StatusOK)
}

func (h *Handler) createProject(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, err := callerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.ProjectRequest
	if err = decodeJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, r, err)
		return
	}

	project, err := h.services.ProjectService.Create(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Int64("project_id", project.ID).Msg("project created")
	utils.WriteJSON(w, project, http.StatusCreated)
}

func (h *Handler) getProject(w http.ResponseWriter, r *http.Request) {
	userID, projectID, err := callerAndPathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	project, err := h.services.ProjectService.Get(r.Context(), userID, projectID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, project, http.StatusOK)
}

// updateProject serves both PUT and PATCH.
func (h *Handler) updateProject(w http.ResponseWriter, r *http.Request) {
	userID, projectID, err := callerAndPathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.ProjectRequest
	if err = decodeJSON(r, &req); err != nil {
		logger.FromRequest(r).Err(err).Msg("invalid JSON was passed")
		writeError(w, r, err)
		return
	}

	project, err := h.services.ProjectService.Update(r.Context(), userID, projectID, req, r.Method == http.MethodPatch)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, project, http.StatusOK)
}

func (h *Handler) deleteProject(w http.ResponseWriter, r *http.Request) {
	userID, projectID, err := callerAndPathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.ProjectService.Delete(r.Context(), userID, projectID); err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("project_id", projectID).Msg("project deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) projectVacancies(w http.ResponseWriter, r *http.Request) {
	userID, projectID, err := callerAndPathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	vacancies, err := h.services.ProjectService.Vacancies(r.Context(), userID, projectID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if vacancies == nil {
		vacancies = []models.Vacancy{}
	}

	utils.WriteJSON(w, vacancies, http.StatusOK)
}

func (h *Handler) createProjectVacancy(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, projectID, err := callerAndPathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.VacancyRequest
	if err = decodeJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, r, err)
		return
	}

	vacancy, err := h.services.ProjectService.CreateVacancy(r.Context(), userID, projectID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Int64("project_id", projectID).Int64("vacancy_id", vacancy.ID).Msg("vacancy created")
	utils.WriteJSON(w, vacancy, http.StatusCreated)
}

func (h *Handler) projectStats(w http.ResponseWriter, r *http.Request) {
	userID, projectID, err := callerAndPathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	stats, err := h.services.ProjectService.Stats(r.Context(), userID, projectID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, stats, http.StatusOK)
}

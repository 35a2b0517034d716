package http

import (
	"net/http"

	"ClubAdminPlatform/internal/service"
	apperrors "ClubAdminPlatform/pkg/errors"
	"ClubAdminPlatform/pkg/logger"
)

// handleCreateClub создает клуб
func (h *Handler) handleCreateClub(w http.ResponseWriter, r *http.Request) {
	var input service.CreateClubInput
	if err := h.decodeJSON(r, &input); err != nil {
		h.writeError(w, err)
		return
	}

	club, err := h.clubs.Create(r.Context(), input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.logger.Info("Club created",
		logger.String("club_id", club.ID),
		logger.String("slug", club.Slug))
	h.writeJSON(w, http.StatusCreated, club)
}

// handleGetClub возвращает клуб по id
func (h *Handler) handleGetClub(w http.ResponseWriter, r *http.Request) {
	club, err := h.clubs.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, club)
}

// handleListClubs возвращает список клубов
func (h *Handler) handleListClubs(w http.ResponseWriter, r *http.Request) {
	clubs, err := h.clubs.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, clubs)
}

// handleUpdateClub частично обновляет клуб
func (h *Handler) handleUpdateClub(w http.ResponseWriter, r *http.Request) {
	var input service.UpdateClubInput
	if err := h.decodeJSON(r, &input); err != nil {
		h.writeError(w, err)
		return
	}

	club, err := h.clubs.Update(r.Context(), r.PathValue("id"), input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, club)
}

// handleClubStatus меняет статус клуба
func (h *Handler) handleClubStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if req.Status == "" {
		h.writeError(w, apperrors.New(apperrors.ErrValidation, "status is required"))
		return
	}

	club, err := h.clubs.SetStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, club)
}

// handleDeleteClub удаляет клуб
// Клуб с активными членствами удалить нельзя, вернется CONFLICT
func (h *Handler) handleDeleteClub(w http.ResponseWriter, r *http.Request) {
	if err := h.clubs.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusNoContent, nil)
}

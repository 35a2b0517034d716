package http

import (
	"net/http"

	"ClubAdminPlatform/internal/service"
	apperrors "ClubAdminPlatform/pkg/errors"
	"ClubAdminPlatform/pkg/logger"
)

type statusRequest struct {
	Status string `json:"status"`
}

// handleCreateAdministrator создает администратора
func (h *Handler) handleCreateAdministrator(w http.ResponseWriter, r *http.Request) {
	var input service.CreateAdministratorInput
	if err := h.decodeJSON(r, &input); err != nil {
		h.writeError(w, err)
		return
	}

	administrator, err := h.administrators.Create(r.Context(), input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.logger.Info("Administrator created",
		logger.String("administrator_id", administrator.ID))
	h.writeJSON(w, http.StatusCreated, administrator)
}

// handleGetAdministrator возвращает администратора по id
func (h *Handler) handleGetAdministrator(w http.ResponseWriter, r *http.Request) {
	administrator, err := h.administrators.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, administrator)
}

// handleListAdministrators возвращает список администраторов с фильтрами
func (h *Handler) handleListAdministrators(w http.ResponseWriter, r *http.Request) {
	filters := service.AdministratorFilters{
		Status:       r.URL.Query().Get("status"),
		ContractType: r.URL.Query().Get("contract_type"),
	}

	administrators, err := h.administrators.List(r.Context(), filters)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, administrators)
}

// handleUpdateAdministrator частично обновляет администратора
func (h *Handler) handleUpdateAdministrator(w http.ResponseWriter, r *http.Request) {
	var input service.UpdateAdministratorInput
	if err := h.decodeJSON(r, &input); err != nil {
		h.writeError(w, err)
		return
	}

	administrator, err := h.administrators.Update(r.Context(), r.PathValue("id"), input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, administrator)
}

// handleAdministratorStatus меняет статус администратора
func (h *Handler) handleAdministratorStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if req.Status == "" {
		h.writeError(w, apperrors.New(apperrors.ErrValidation, "status is required"))
		return
	}

	administrator, err := h.administrators.SetStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, administrator)
}

// handleDeleteAdministrator удаляет администратора
func (h *Handler) handleDeleteAdministrator(w http.ResponseWriter, r *http.Request) {
	if err := h.administrators.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusNoContent, nil)
}

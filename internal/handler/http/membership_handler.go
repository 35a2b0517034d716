package http

import (
	"net/http"

	"ClubAdminPlatform/internal/service"
	apperrors "ClubAdminPlatform/pkg/errors"
)

type assignMembershipRequest struct {
	AdministratorID string `json:"administrator_id"`
	Role            string `json:"role"`
}

type membershipActiveRequest struct {
	Active *bool `json:"active"`
}

// handleListClubMemberships возвращает членства клуба
func (h *Handler) handleListClubMemberships(w http.ResponseWriter, r *http.Request) {
	memberships, err := h.memberships.ListByClub(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, memberships)
}

// handleAssignMembership привязывает администратора к клубу
func (h *Handler) handleAssignMembership(w http.ResponseWriter, r *http.Request) {
	var req assignMembershipRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	membership, err := h.memberships.Assign(r.Context(), service.AssignMembershipInput{
		AdministratorID: req.AdministratorID,
		ClubID:          r.PathValue("id"),
		Role:            req.Role,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, membership)
}

// handleMembershipActive включает или выключает членство
func (h *Handler) handleMembershipActive(w http.ResponseWriter, r *http.Request) {
	var req membershipActiveRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if req.Active == nil {
		h.writeError(w, apperrors.New(apperrors.ErrValidation, "active is required"))
		return
	}

	membership, err := h.memberships.SetActive(r.Context(), r.PathValue("id"), *req.Active)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, membership)
}

// handleRevokeMembership снимает администратора с клуба
func (h *Handler) handleRevokeMembership(w http.ResponseWriter, r *http.Request) {
	if err := h.memberships.Revoke(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusNoContent, nil)
}

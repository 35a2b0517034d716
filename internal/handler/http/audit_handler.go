package http

import (
	"net/http"
	"strconv"

	apperrors "ClubAdminPlatform/pkg/errors"
)

const defaultAuditLimit = 50

// handleListAudit возвращает последние события аудита для таблицы
func (h *Handler) handleListAudit(w http.ResponseWriter, r *http.Request) {
	table := r.URL.Query().Get("table")
	if table == "" {
		h.writeError(w, apperrors.New(apperrors.ErrValidation, "table is required"))
		return
	}

	limit := defaultAuditLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.writeError(w, apperrors.New(apperrors.ErrValidation, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	events, err := h.audits.ListByTable(r.Context(), table, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, events)
}

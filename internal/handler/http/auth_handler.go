package http

import (
	"net/http"
	"strings"

	"ClubAdminPlatform/internal/session"
	apperrors "ClubAdminPlatform/pkg/errors"
	"ClubAdminPlatform/pkg/logger"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// handleLogin обрабатывает вход администратора
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.logger.Info("Administrator logged in",
		logger.String("administrator_id", result.Profile.Administrator.ID))
	h.writeJSON(w, http.StatusOK, result)
}

// handleLogout завершает текущую сессию
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		h.writeError(w, apperrors.New(apperrors.ErrUnauthorized, "Authorization header required"))
		return
	}

	if err := h.authService.Logout(r.Context(), token); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusNoContent, nil)
}

// handleRefresh выпускает новую пару токенов
func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if req.RefreshToken == "" {
		h.writeError(w, apperrors.New(apperrors.ErrValidation, "refresh_token is required"))
		return
	}

	result, err := h.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// handleMe возвращает профиль текущей сессии
func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	current := session.FromContext(r.Context())
	if current == nil {
		h.writeError(w, apperrors.New(apperrors.ErrUnauthorized, "Session required"))
		return
	}

	h.writeJSON(w, http.StatusOK, current.Profile)
}

func bearerToken(r *http.Request) string {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return ""
	}
	return token
}

package http

import (
	"context"
	"encoding/json"
	"net/http"

	"ClubAdminPlatform/internal/auth"
	"ClubAdminPlatform/internal/domain"
	"ClubAdminPlatform/internal/middleware"
	"ClubAdminPlatform/internal/service"
	apperrors "ClubAdminPlatform/pkg/errors"
	"ClubAdminPlatform/pkg/health"
	"ClubAdminPlatform/pkg/logger"
)

// AuthService интерфейс сервиса аутентификации
type AuthService interface {
	Login(ctx context.Context, email, password string) (*auth.LoginResult, error)
	Logout(ctx context.Context, accessToken string) error
	Refresh(ctx context.Context, refreshToken string) (*auth.LoginResult, error)
	Validate(ctx context.Context, accessToken string) (*domain.Session, error)
}

// AdministratorService интерфейс сервиса администраторов
type AdministratorService interface {
	Create(ctx context.Context, input service.CreateAdministratorInput) (*domain.Administrator, error)
	GetByID(ctx context.Context, id string) (*domain.Administrator, error)
	List(ctx context.Context, filters service.AdministratorFilters) ([]*domain.Administrator, error)
	Update(ctx context.Context, id string, input service.UpdateAdministratorInput) (*domain.Administrator, error)
	SetStatus(ctx context.Context, id, status string) (*domain.Administrator, error)
	Delete(ctx context.Context, id string) error
}

// ClubService интерфейс сервиса клубов
type ClubService interface {
	Create(ctx context.Context, input service.CreateClubInput) (*domain.Club, error)
	GetByID(ctx context.Context, id string) (*domain.Club, error)
	List(ctx context.Context, status string) ([]*domain.Club, error)
	Update(ctx context.Context, id string, input service.UpdateClubInput) (*domain.Club, error)
	SetStatus(ctx context.Context, id, status string) (*domain.Club, error)
	Delete(ctx context.Context, id string) error
}

// MembershipService интерфейс сервиса членств
type MembershipService interface {
	Assign(ctx context.Context, input service.AssignMembershipInput) (*domain.Membership, error)
	ListByClub(ctx context.Context, clubID string) ([]*domain.Membership, error)
	SetActive(ctx context.Context, id string, active bool) (*domain.Membership, error)
	Revoke(ctx context.Context, id string) error
}

// AuditReader доступ на чтение журнала аудита
type AuditReader interface {
	ListByTable(ctx context.Context, table string, limit int) ([]*domain.AuditEvent, error)
}

// Handler HTTP поверхность консоли администрирования
type Handler struct {
	mux            *http.ServeMux
	authService    AuthService
	administrators AdministratorService
	clubs          ClubService
	memberships    MembershipService
	audits         AuditReader
	healthChecker  health.HealthChecker
	metricsHandler http.Handler
	logger         logger.Logger
}

// NewHandler создает новый Handler и настраивает маршруты
func NewHandler(
	authService AuthService,
	administrators AdministratorService,
	clubs ClubService,
	memberships MembershipService,
	audits AuditReader,
	healthChecker health.HealthChecker,
	metricsHandler http.Handler,
	log logger.Logger,
) *Handler {
	h := &Handler{
		mux:            http.NewServeMux(),
		authService:    authService,
		administrators: administrators,
		clubs:          clubs,
		memberships:    memberships,
		audits:         audits,
		healthChecker:  healthChecker,
		metricsHandler: metricsHandler,
		logger:         log,
	}

	h.setupRoutes()
	return h
}

// ServeHTTP реализует интерфейс http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// setupRoutes настраивает маршруты приложения
func (h *Handler) setupRoutes() {
	// Публичные роуты
	h.mux.HandleFunc("POST /api/v1/auth/login", h.handleLogin)
	h.mux.HandleFunc("POST /api/v1/auth/refresh", h.handleRefresh)

	// Служебные роуты
	h.mux.HandleFunc("/health", health.Handler(h.healthChecker))
	h.mux.HandleFunc("/ready", health.ReadyHandler())
	h.mux.HandleFunc("/live", health.LiveHandler())
	if h.metricsHandler != nil {
		h.mux.Handle("/metrics", h.metricsHandler)
	}

	// Защищенные роуты
	protect := middleware.Auth(h.authService, h.logger)

	h.mux.Handle("POST /api/v1/auth/logout", protect(http.HandlerFunc(h.handleLogout)))
	h.mux.Handle("GET /api/v1/auth/me", protect(http.HandlerFunc(h.handleMe)))

	h.mux.Handle("GET /api/v1/administrators", protect(http.HandlerFunc(h.handleListAdministrators)))
	h.mux.Handle("POST /api/v1/administrators", protect(http.HandlerFunc(h.handleCreateAdministrator)))
	h.mux.Handle("GET /api/v1/administrators/{id}", protect(http.HandlerFunc(h.handleGetAdministrator)))
	h.mux.Handle("PUT /api/v1/administrators/{id}", protect(http.HandlerFunc(h.handleUpdateAdministrator)))
	h.mux.Handle("PUT /api/v1/administrators/{id}/status", protect(http.HandlerFunc(h.handleAdministratorStatus)))
	h.mux.Handle("DELETE /api/v1/administrators/{id}", protect(http.HandlerFunc(h.handleDeleteAdministrator)))

	h.mux.Handle("GET /api/v1/clubs", protect(http.HandlerFunc(h.handleListClubs)))
	h.mux.Handle("POST /api/v1/clubs", protect(http.HandlerFunc(h.handleCreateClub)))
	h.mux.Handle("GET /api/v1/clubs/{id}", protect(http.HandlerFunc(h.handleGetClub)))
	h.mux.Handle("PUT /api/v1/clubs/{id}", protect(http.HandlerFunc(h.handleUpdateClub)))
	h.mux.Handle("PUT /api/v1/clubs/{id}/status", protect(http.HandlerFunc(h.handleClubStatus)))
	h.mux.Handle("DELETE /api/v1/clubs/{id}", protect(http.HandlerFunc(h.handleDeleteClub)))

	h.mux.Handle("GET /api/v1/clubs/{id}/administrators", protect(http.HandlerFunc(h.handleListClubMemberships)))
	h.mux.Handle("POST /api/v1/clubs/{id}/administrators", protect(http.HandlerFunc(h.handleAssignMembership)))
	h.mux.Handle("PUT /api/v1/memberships/{id}/active", protect(http.HandlerFunc(h.handleMembershipActive)))
	h.mux.Handle("DELETE /api/v1/memberships/{id}", protect(http.HandlerFunc(h.handleRevokeMembership)))

	h.mux.Handle("GET /api/v1/audit", protect(http.HandlerFunc(h.handleListAudit)))
}

// writeJSON отправляет успешный JSON ответ
func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", logger.Error(err))
	}
}

// writeError приводит ошибку к JSON телу {code, message}
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	apperrors.WriteHTTP(w, apperrors.FromErr(err))
}

// decodeJSON читает тело запроса
func (h *Handler) decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.Wrap(err, apperrors.ErrValidation, "invalid request body")
	}
	return nil
}

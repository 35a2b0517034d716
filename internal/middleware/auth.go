package middleware

import (
	"context"
	"net/http"
	"strings"

	"ClubAdminPlatform/internal/domain"
	"ClubAdminPlatform/internal/session"
	apperrors "ClubAdminPlatform/pkg/errors"
	"ClubAdminPlatform/pkg/logger"
)

// SessionValidator проверяет access токен и возвращает сессию с профилем
type SessionValidator interface {
	Validate(ctx context.Context, accessToken string) (*domain.Session, error)
}

// Auth проверяет Bearer токен и кладет сессию в контекст запроса
// Дальше по цепочке сессию достает session.FromContext
func Auth(validator SessionValidator, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apperrors.WriteHTTP(w, apperrors.New(apperrors.ErrUnauthorized, "authorization header missing"))
				return
			}

			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				apperrors.WriteHTTP(w, apperrors.New(apperrors.ErrUnauthorized, "unsupported authorization type"))
				return
			}

			current, err := validator.Validate(r.Context(), token)
			if err != nil {
				log.Debug("token validation failed",
					logger.CtxField(r.Context()),
					logger.Error(err))
				apperrors.WriteHTTP(w, apperrors.FromErr(err))
				return
			}

			r = r.WithContext(session.WithSession(r.Context(), current))
			next.ServeHTTP(w, r)
		})
	}
}

package session

import (
	"context"

	"ClubAdminPlatform/internal/domain"
)

// Source отдает сессию текущего вызывающего
// Store реализует Source для однопользовательских встраиваний (CLI, тесты),
// ContextSource для HTTP пути, где сессию кладет в контекст auth middleware
type Source interface {
	Current(ctx context.Context) *domain.Session
}

type contextKey string

const sessionContextKey contextKey = "session"

// WithSession кладет сессию в контекст запроса
func WithSession(ctx context.Context, session *domain.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// FromContext извлекает сессию из контекста
func FromContext(ctx context.Context) *domain.Session {
	if session, ok := ctx.Value(sessionContextKey).(*domain.Session); ok {
		return session
	}
	return nil
}

// ContextSource реализация Source поверх контекста запроса
type ContextSource struct{}

// NewContextSource создает новый ContextSource
func NewContextSource() *ContextSource {
	return &ContextSource{}
}

// Current возвращает сессию из контекста
func (s *ContextSource) Current(ctx context.Context) *domain.Session {
	return FromContext(ctx)
}

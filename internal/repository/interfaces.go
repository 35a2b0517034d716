package repository

import (
	"context"
	"time"

	"ClubAdminPlatform/internal/domain"
)

// AdministratorRepository интерфейс для работы с администраторами
type AdministratorRepository interface {
	Create(ctx context.Context, administrator *domain.Administrator) error
	FindByID(ctx context.Context, id string) (*domain.Administrator, error)
	FindByEmail(ctx context.Context, email string) (*domain.Administrator, error)
	List(ctx context.Context, filters map[string]interface{}) ([]*domain.Administrator, error)
	Update(ctx context.Context, administrator *domain.Administrator) error
	Delete(ctx context.Context, id string) error
}

// ClubRepository интерфейс для работы с клубами
type ClubRepository interface {
	Create(ctx context.Context, club *domain.Club) error
	FindByID(ctx context.Context, id string) (*domain.Club, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Club, error)
	List(ctx context.Context, filters map[string]interface{}) ([]*domain.Club, error)
	Update(ctx context.Context, club *domain.Club) error
	Delete(ctx context.Context, id string) error
}

// MembershipRepository интерфейс для работы с членствами
type MembershipRepository interface {
	Create(ctx context.Context, membership *domain.Membership) error
	FindByID(ctx context.Context, id string) (*domain.Membership, error)
	ListByAdministrator(ctx context.Context, administratorID string) ([]*domain.Membership, error)
	ListByClub(ctx context.Context, clubID string) ([]*domain.Membership, error)
	Update(ctx context.Context, membership *domain.Membership) error
	Delete(ctx context.Context, id string) error
}

// AuditRepository интерфейс для журнала аудита
type AuditRepository interface {
	Record(ctx context.Context, event *domain.AuditEvent) error
	ListByTable(ctx context.Context, table string, limit int) ([]*domain.AuditEvent, error)
}

// SessionRepository интерфейс для работы с сессиями
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	FindByID(ctx context.Context, id string) (*domain.Session, error)
	FindByAccessTokenHash(ctx context.Context, accessTokenHash string) (*domain.Session, error)
	FindByRefreshTokenHash(ctx context.Context, refreshTokenHash string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteByAdministratorID(ctx context.Context, administratorID string) error
	CleanupExpired(ctx context.Context, before time.Time) error
}

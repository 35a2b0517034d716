package auth

import (
	"context"

	"ClubAdminPlatform/internal/domain"
	"ClubAdminPlatform/internal/repository"
)

// ProfileLoader загружает профиль администратора с его активными членствами
type ProfileLoader interface {
	Load(ctx context.Context, administratorID string) (*domain.Profile, error)
}

// RepositoryProfileLoader реализация ProfileLoader поверх репозиториев
type RepositoryProfileLoader struct {
	administrators repository.AdministratorRepository
	memberships    repository.MembershipRepository
}

// NewRepositoryProfileLoader создает новый RepositoryProfileLoader
func NewRepositoryProfileLoader(
	administrators repository.AdministratorRepository,
	memberships repository.MembershipRepository,
) *RepositoryProfileLoader {
	return &RepositoryProfileLoader{
		administrators: administrators,
		memberships:    memberships,
	}
}

// Load возвращает профиль администратора
// В профиль попадают только активные членства
func (l *RepositoryProfileLoader) Load(ctx context.Context, administratorID string) (*domain.Profile, error) {
	administrator, err := l.administrators.FindByID(ctx, administratorID)
	if err != nil {
		return nil, err
	}

	memberships, err := l.memberships.ListByAdministrator(ctx, administratorID)
	if err != nil {
		return nil, err
	}

	active := make([]domain.Membership, 0, len(memberships))
	for _, m := range memberships {
		if m.IsActive {
			active = append(active, *m)
		}
	}

	return &domain.Profile{
		Administrator: *administrator,
		Memberships:   active,
	}, nil
}

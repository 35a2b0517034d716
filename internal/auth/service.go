package auth

import (
	"context"
	"time"

	"ClubAdminPlatform/internal/domain"
	apperrors "ClubAdminPlatform/pkg/errors"
	"ClubAdminPlatform/pkg/logger"
)

// LoginResult результат успешного входа
type LoginResult struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresAt    time.Time       `json:"expires_at"`
	Profile      *domain.Profile `json:"profile"`
}

// Service многопользовательский сервис аутентификации для HTTP поверхности
// Делегирует провайдеру и дополняет сессию профилем
type Service struct {
	provider Provider
	profiles ProfileLoader
	logger   logger.Logger
}

// NewService создает новый Service
func NewService(provider Provider, profiles ProfileLoader, log logger.Logger) *Service {
	return &Service{
		provider: provider,
		profiles: profiles,
		logger:   log,
	}
}

// Login выполняет вход администратора
// Успешная проверка учетных данных без загружаемого профиля считается
// неудачным входом: созданная сессия отзывается
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	identity, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.Load(ctx, identity.Session.AdministratorID)
	if err != nil {
		s.logger.Warn("profile load failed after sign-in, revoking session",
			logger.String("administrator_id", identity.Session.AdministratorID),
			logger.Error(err))

		if signOutErr := s.provider.SignOut(ctx, identity.Session.ID); signOutErr != nil {
			s.logger.Error("failed to revoke session after profile load failure",
				logger.String("session_id", identity.Session.ID),
				logger.Error(signOutErr))
		}

		return nil, apperrors.Wrap(err, apperrors.ErrInternal, "failed to load administrator profile")
	}

	identity.Session.Profile = profile

	return &LoginResult{
		AccessToken:  identity.AccessToken,
		RefreshToken: identity.RefreshToken,
		ExpiresAt:    identity.Session.ExpiresAt,
		Profile:      profile,
	}, nil
}

// Logout завершает сессию по access токену
func (s *Service) Logout(ctx context.Context, accessToken string) error {
	identity, err := s.provider.GetSession(ctx, accessToken)
	if err != nil {
		return err
	}

	return s.provider.SignOut(ctx, identity.Session.ID)
}

// Refresh обменивает refresh токен на новую пару токенов
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	identity, err := s.provider.Refresh(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	profile := identity.Session.Profile
	if profile == nil {
		profile, err = s.profiles.Load(ctx, identity.Session.AdministratorID)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrInternal, "failed to load administrator profile")
		}
		identity.Session.Profile = profile
	}

	return &LoginResult{
		AccessToken:  identity.AccessToken,
		RefreshToken: identity.RefreshToken,
		ExpiresAt:    identity.Session.ExpiresAt,
		Profile:      profile,
	}, nil
}

// Validate проверяет access токен и возвращает сессию с профилем
func (s *Service) Validate(ctx context.Context, accessToken string) (*domain.Session, error) {
	identity, err := s.provider.GetSession(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	if identity.Session.Profile == nil {
		profile, err := s.profiles.Load(ctx, identity.Session.AdministratorID)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrInternal, "failed to load administrator profile")
		}
		identity.Session.Profile = profile
	}

	return identity.Session, nil
}

package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ClubAdminPlatform/internal/auth/hash"
	authjwt "ClubAdminPlatform/internal/auth/jwt"
	"ClubAdminPlatform/internal/auth/password"
	"ClubAdminPlatform/internal/domain"
	"ClubAdminPlatform/internal/repository"
	apperrors "ClubAdminPlatform/pkg/errors"
	"ClubAdminPlatform/pkg/logger"
)

// LocalProvider реализация Provider поверх репозиториев платформы
// Проверяет учетные данные по таблице администраторов и хранит
// сессии в Redis, токены только в виде хешей
type LocalProvider struct {
	administrators repository.AdministratorRepository
	sessions       repository.SessionRepository
	jwtManager     authjwt.JWTManager
	passwordHasher password.Hasher
	tokenHasher    *hash.TokenHasher
	sessionTTL     time.Duration
	registry       *listenerRegistry
	logger         logger.Logger
}

// NewLocalProvider создает новый LocalProvider
func NewLocalProvider(
	administrators repository.AdministratorRepository,
	sessions repository.SessionRepository,
	jwtManager authjwt.JWTManager,
	passwordHasher password.Hasher,
	sessionTTL time.Duration,
	log logger.Logger,
) *LocalProvider {
	return &LocalProvider{
		administrators: administrators,
		sessions:       sessions,
		jwtManager:     jwtManager,
		passwordHasher: passwordHasher,
		tokenHasher:    hash.NewTokenHasher(),
		sessionTTL:     sessionTTL,
		registry:       newListenerRegistry(),
		logger:         log,
	}
}

// SignIn проверяет учетные данные и создает новую сессию
func (p *LocalProvider) SignIn(ctx context.Context, email, pass string) (*Identity, error) {
	administrator, err := p.administrators.FindByEmail(ctx, email)
	if err != nil {
		// Не раскрываем, существует ли email
		if apperrors.GetCode(err) == apperrors.ErrNotFound {
			return nil, apperrors.New(apperrors.ErrUnauthorized, "invalid email or password")
		}
		return nil, err
	}

	if administrator.Status != domain.AdministratorStatusActive {
		return nil, apperrors.New(apperrors.ErrForbidden, "administrator account is not active")
	}

	if !p.passwordHasher.Check(pass, administrator.PasswordHash) {
		return nil, apperrors.New(apperrors.ErrUnauthorized, "invalid email or password")
	}

	identity, err := p.createSession(ctx, administrator)
	if err != nil {
		return nil, err
	}

	p.logger.Info("administrator signed in",
		logger.String("administrator_id", administrator.ID))

	p.registry.notify(EventSignedIn, identity)
	return identity, nil
}

// SignOut удаляет сессию
func (p *LocalProvider) SignOut(ctx context.Context, sessionID string) error {
	if err := p.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}

	p.logger.Info("session revoked", logger.String("session_id", sessionID))
	p.registry.notify(EventSignedOut, nil)
	return nil
}

// GetSession возвращает сессию по access токену
func (p *LocalProvider) GetSession(ctx context.Context, accessToken string) (*Identity, error) {
	if _, err := p.jwtManager.ValidateAccessToken(accessToken); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrUnauthorized, "invalid access token")
	}

	accessHash, err := p.tokenHasher.Hash(accessToken)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal, "failed to hash token")
	}

	session, err := p.sessions.FindByAccessTokenHash(ctx, accessHash)
	if err != nil {
		if apperrors.GetCode(err) == apperrors.ErrNotFound {
			return nil, apperrors.New(apperrors.ErrUnauthorized, "session not found or revoked")
		}
		return nil, err
	}

	return &Identity{Session: session, AccessToken: accessToken}, nil
}

// Refresh обменивает refresh токен на новую пару токенов
// Старая сессия отзывается, профиль в новой сессии сохраняется
func (p *LocalProvider) Refresh(ctx context.Context, refreshToken string) (*Identity, error) {
	claims, err := p.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrUnauthorized, "invalid refresh token")
	}

	refreshHash, err := p.tokenHasher.Hash(refreshToken)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal, "failed to hash token")
	}

	old, err := p.sessions.FindByRefreshTokenHash(ctx, refreshHash)
	if err != nil {
		if apperrors.GetCode(err) == apperrors.ErrNotFound {
			return nil, apperrors.New(apperrors.ErrUnauthorized, "session not found or revoked")
		}
		return nil, err
	}

	administrator, err := p.administrators.FindByID(ctx, claims.AdministratorID)
	if err != nil {
		return nil, err
	}

	if administrator.Status != domain.AdministratorStatusActive {
		return nil, apperrors.New(apperrors.ErrForbidden, "administrator account is not active")
	}

	identity, err := p.createSession(ctx, administrator)
	if err != nil {
		return nil, err
	}
	identity.Session.Profile = old.Profile

	if err := p.sessions.Delete(ctx, old.ID); err != nil {
		p.logger.Warn("failed to revoke old session",
			logger.String("session_id", old.ID),
			logger.Error(err))
	}

	p.registry.notify(EventTokenRefreshed, identity)
	return identity, nil
}

// OnAuthStateChange подписывает слушателя на события аутентификации
func (p *LocalProvider) OnAuthStateChange(listener Listener) Unsubscribe {
	return p.registry.subscribe(listener)
}

// createSession генерирует токены и сохраняет новую сессию
func (p *LocalProvider) createSession(ctx context.Context, administrator *domain.Administrator) (*Identity, error) {
	accessToken, refreshToken, err := p.jwtManager.GenerateTokenPair(administrator.ID, administrator.IsSuper)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal, "failed to generate tokens")
	}

	accessHash, err := p.tokenHasher.Hash(accessToken)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal, "failed to hash token")
	}
	refreshHash, err := p.tokenHasher.Hash(refreshToken)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal, "failed to hash token")
	}

	now := time.Now().UTC()
	session := &domain.Session{
		ID:               uuid.NewString(),
		AdministratorID:  administrator.ID,
		AccessTokenHash:  accessHash,
		RefreshTokenHash: refreshHash,
		ExpiresAt:        now.Add(p.sessionTTL),
		CreatedAt:        now,
	}

	if err := p.sessions.Create(ctx, session); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal, "failed to persist session")
	}

	return &Identity{
		Session:      session,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

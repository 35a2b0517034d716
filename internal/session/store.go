package session

import (
	"context"
	"sync"

	"ClubAdminPlatform/internal/auth"
	"ClubAdminPlatform/internal/domain"
	apperrors "ClubAdminPlatform/pkg/errors"
	"ClubAdminPlatform/pkg/logger"
)

// State состояние хранилища сессии
type State string

// Жизненный цикл: Loading → (Unauthenticated | Authenticated);
// Unauthenticated → Authenticating → (Authenticated | Unauthenticated);
// Authenticated → Authenticated при обновлении токенов;
// Authenticated → Unauthenticated при выходе
const (
	StateLoading         State = "loading"
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticating  State = "authenticating"
	StateAuthenticated   State = "authenticated"
)

// TokenStorage персистентное хранилище токенов между запусками
// Используется единственным носителем сессии (CLI)
type TokenStorage interface {
	Load() (accessToken, refreshToken string, err error)
	Save(accessToken, refreshToken string) error
	Clear() error
}

// Store хранит ноль или одну аутентифицированную сессию
// Заполняется исключительно через уведомления провайдера об изменении
// состояния аутентификации; Login никогда не записывает сессию напрямую
type Store struct {
	mu           sync.RWMutex
	state        State
	session      *domain.Session
	accessToken  string
	refreshToken string
	lastErr      error

	provider auth.Provider
	profiles auth.ProfileLoader
	storage  TokenStorage
	logger   logger.Logger

	unsubscribe auth.Unsubscribe
}

// NewStore создает Store в состоянии Loading и подписывает его на провайдера
// storage может быть nil, тогда сессия не переживает перезапуск
func NewStore(provider auth.Provider, profiles auth.ProfileLoader, storage TokenStorage, log logger.Logger) *Store {
	s := &Store{
		state:    StateLoading,
		provider: provider,
		profiles: profiles,
		storage:  storage,
		logger:   log,
	}
	s.unsubscribe = provider.OnAuthStateChange(s.handleAuthEvent)
	return s
}

// Close отписывает Store от провайдера
func (s *Store) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

// State возвращает текущее состояние
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Current возвращает сессию, если Store аутентифицирован
func (s *Store) Current(ctx context.Context) *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateAuthenticated {
		return nil
	}
	return s.session
}

// LastError возвращает ошибку последней неудачной операции входа
func (s *Store) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Init разрешает состояние Loading из персистентной сессии
// Без сохраненных токенов Store становится Unauthenticated
func (s *Store) Init(ctx context.Context) error {
	if s.storage == nil {
		s.setUnauthenticated(nil)
		return nil
	}

	accessToken, refreshToken, err := s.storage.Load()
	if err != nil || accessToken == "" {
		s.setUnauthenticated(nil)
		return nil
	}

	identity, err := s.provider.GetSession(ctx, accessToken)
	if err == nil {
		if err := s.adopt(ctx, identity); err == nil {
			return nil
		}
	}

	// Access токен истек, пробуем refresh
	if refreshToken != "" {
		if identity, err := s.provider.Refresh(ctx, refreshToken); err == nil {
			s.mu.RLock()
			authenticated := s.state == StateAuthenticated
			s.mu.RUnlock()
			if !authenticated {
				// Событие обновления не принесло профиль, загружаем сами
				authenticated = s.adopt(ctx, identity) == nil
			}
			if authenticated {
				// Ротация токенов должна пережить перезапуск
				s.persistTokens()
				return nil
			}
		}
	}

	if clearErr := s.storage.Clear(); clearErr != nil {
		s.logger.Warn("failed to clear persisted tokens", logger.Error(clearErr))
	}
	s.setUnauthenticated(nil)
	return nil
}

// Login выполняет вход; сессия появляется только через уведомление провайдера
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.mu.Lock()
	if s.state == StateAuthenticating {
		s.mu.Unlock()
		return apperrors.New(apperrors.ErrConflict, "login already in progress")
	}
	s.state = StateAuthenticating
	s.lastErr = nil
	s.mu.Unlock()

	_, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		s.setUnauthenticated(err)
		return err
	}

	// Слушатель уже отработал синхронно внутри SignIn
	s.mu.RLock()
	state, lastErr := s.state, s.lastErr
	s.mu.RUnlock()

	if state != StateAuthenticated {
		if lastErr != nil {
			return lastErr
		}
		return apperrors.New(apperrors.ErrInternal, "authentication did not complete")
	}

	s.persistTokens()
	return nil
}

// Logout завершает сессию
// Локальное состояние очищается даже при ошибке удаленного выхода
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	session := s.session
	s.mu.Unlock()

	s.setUnauthenticated(nil)

	if s.storage != nil {
		if err := s.storage.Clear(); err != nil {
			s.logger.Warn("failed to clear persisted tokens", logger.Error(err))
		}
	}

	if session == nil {
		return nil
	}

	if err := s.provider.SignOut(ctx, session.ID); err != nil {
		s.logger.Warn("remote sign-out failed, local session already cleared",
			logger.String("session_id", session.ID),
			logger.Error(err))
		return err
	}

	return nil
}

// Refresh обменивает refresh токен и повторно загружает профиль
// Без аутентифицированной сессии операция не выполняется
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.RLock()
	state, refreshToken := s.state, s.refreshToken
	s.mu.RUnlock()

	if state != StateAuthenticated || refreshToken == "" {
		return nil
	}

	if _, err := s.provider.Refresh(ctx, refreshToken); err != nil {
		return err
	}

	// Явный Refresh, в отличие от события обновления токена,
	// повторно загружает профиль
	s.mu.RLock()
	session := s.session
	s.mu.RUnlock()
	if session != nil {
		profile, err := s.profiles.Load(ctx, session.AdministratorID)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrInternal, "failed to reload administrator profile")
		}
		s.mu.Lock()
		if s.session != nil {
			s.session.Profile = profile
		}
		s.mu.Unlock()
	}

	s.persistTokens()
	return nil
}

// handleAuthEvent обрабатывает уведомления провайдера
func (s *Store) handleAuthEvent(event auth.Event, identity *auth.Identity) {
	switch event {
	case auth.EventSignedIn:
		s.onSignedIn(identity)
	case auth.EventSignedOut:
		s.setUnauthenticated(nil)
	case auth.EventTokenRefreshed:
		s.onTokenRefreshed(identity)
	}
}

// onSignedIn загружает профиль и публикует аутентифицированную сессию
// Сессия без профиля не бывает аутентифицированной
func (s *Store) onSignedIn(identity *auth.Identity) {
	if identity == nil || identity.Session == nil {
		return
	}

	profile := identity.Session.Profile
	if profile == nil {
		loaded, err := s.profiles.Load(context.Background(), identity.Session.AdministratorID)
		if err != nil {
			s.logger.Warn("profile load failed on sign-in, revoking session",
				logger.String("administrator_id", identity.Session.AdministratorID),
				logger.Error(err))

			if signOutErr := s.provider.SignOut(context.Background(), identity.Session.ID); signOutErr != nil {
				s.logger.Error("failed to revoke session", logger.Error(signOutErr))
			}

			s.setUnauthenticated(apperrors.Wrap(err, apperrors.ErrInternal, "failed to load administrator profile"))
			return
		}
		profile = loaded
	}

	s.mu.Lock()
	session := *identity.Session
	session.Profile = profile
	s.session = &session
	s.accessToken = identity.AccessToken
	s.refreshToken = identity.RefreshToken
	s.state = StateAuthenticated
	s.lastErr = nil
	s.mu.Unlock()
}

// onTokenRefreshed обновляет токены, не перечитывая профиль
func (s *Store) onTokenRefreshed(identity *auth.Identity) {
	if identity == nil || identity.Session == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAuthenticated && s.state != StateLoading {
		return
	}

	session := *identity.Session
	if session.Profile == nil && s.session != nil {
		session.Profile = s.session.Profile
	}
	if session.Profile == nil {
		// Профиль недоступен, остаемся в прежнем состоянии
		return
	}

	s.session = &session
	s.accessToken = identity.AccessToken
	s.refreshToken = identity.RefreshToken
	s.state = StateAuthenticated
}

// adopt принимает восстановленную сессию при инициализации
func (s *Store) adopt(ctx context.Context, identity *auth.Identity) error {
	profile := identity.Session.Profile
	if profile == nil {
		loaded, err := s.profiles.Load(ctx, identity.Session.AdministratorID)
		if err != nil {
			return err
		}
		profile = loaded
	}

	s.mu.Lock()
	session := *identity.Session
	session.Profile = profile
	s.session = &session
	s.accessToken = identity.AccessToken
	s.refreshToken = identity.RefreshToken
	s.state = StateAuthenticated
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

func (s *Store) setUnauthenticated(err error) {
	s.mu.Lock()
	s.state = StateUnauthenticated
	s.session = nil
	s.accessToken = ""
	s.refreshToken = ""
	s.lastErr = err
	s.mu.Unlock()
}

func (s *Store) persistTokens() {
	if s.storage == nil {
		return
	}

	s.mu.RLock()
	accessToken, refreshToken := s.accessToken, s.refreshToken
	s.mu.RUnlock()

	if err := s.storage.Save(accessToken, refreshToken); err != nil {
		s.logger.Warn("failed to persist tokens", logger.Error(err))
	}
}

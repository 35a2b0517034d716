package auth

import (
	"context"
	"sync"

	"ClubAdminPlatform/internal/domain"
)

// Event тип события изменения состояния аутентификации
type Event string

// События, о которых провайдер уведомляет подписчиков
const (
	EventSignedIn       Event = "SIGNED_IN"
	EventSignedOut      Event = "SIGNED_OUT"
	EventTokenRefreshed Event = "TOKEN_REFRESHED"
)

// Identity представляет аутентифицированного администратора вместе с токенами
type Identity struct {
	Session      *domain.Session
	AccessToken  string
	RefreshToken string
}

// Listener получает уведомления об изменении состояния аутентификации
// Вызывается синхронно на пути SignIn/SignOut/Refresh
type Listener func(event Event, identity *Identity)

// Unsubscribe отменяет подписку слушателя
type Unsubscribe func()

// Provider интерфейс коллаборатора аутентификации
// Состояние сессии распространяется только через уведомления,
// подписчики никогда не опрашивают провайдера напрямую
type Provider interface {
	SignIn(ctx context.Context, email, password string) (*Identity, error)
	SignOut(ctx context.Context, sessionID string) error
	GetSession(ctx context.Context, accessToken string) (*Identity, error)
	Refresh(ctx context.Context, refreshToken string) (*Identity, error)
	OnAuthStateChange(listener Listener) Unsubscribe
}

// listenerRegistry общая реализация подписки на события
type listenerRegistry struct {
	mu        sync.RWMutex
	nextID    int
	listeners map[int]Listener
}

func newListenerRegistry() *listenerRegistry {
	return &listenerRegistry{listeners: make(map[int]Listener)}
}

// subscribe регистрирует слушателя и возвращает функцию отписки
func (r *listenerRegistry) subscribe(listener Listener) Unsubscribe {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = listener
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.listeners, id)
		r.mu.Unlock()
	}
}

// notify синхронно вызывает всех слушателей
func (r *listenerRegistry) notify(event Event, identity *Identity) {
	r.mu.RLock()
	listeners := make([]Listener, 0, len(r.listeners))
	for _, l := range r.listeners {
		listeners = append(listeners, l)
	}
	r.mu.RUnlock()

	for _, l := range listeners {
		l(event, identity)
	}
}

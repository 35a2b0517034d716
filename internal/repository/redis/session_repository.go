package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ClubAdminPlatform/internal/domain"
	"ClubAdminPlatform/internal/repository"
	apperrors "ClubAdminPlatform/pkg/errors"
)

// SessionRepository реализация репозитория сессий для Redis
// Сессия хранится в JSON под ключом session:id:<id>; ключи
// session:access:<hash> и session:refresh:<hash> содержат ID сессии,
// session:admin:<administrator_id> хранит множество ID для отзыва
type SessionRepository struct {
	client *redis.Client
}

// NewSessionRepository создает новый экземпляр SessionRepository
func NewSessionRepository(client *redis.Client) repository.SessionRepository {
	return &SessionRepository{client: client}
}

// Create сохраняет сессию в Redis
func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	sessionData, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	// TTL как разница между ExpiresAt и текущим временем
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session is already expired")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, idKey(session.ID), sessionData, ttl)
	pipe.Set(ctx, accessKey(session.AccessTokenHash), session.ID, ttl)
	pipe.Set(ctx, refreshKey(session.RefreshTokenHash), session.ID, ttl)
	pipe.SAdd(ctx, adminKey(session.AdministratorID), session.ID)
	pipe.Expire(ctx, adminKey(session.AdministratorID), ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set session in Redis: %w", err)
	}

	return nil
}

// FindByID возвращает сессию по ее ID
func (r *SessionRepository) FindByID(ctx context.Context, id string) (*domain.Session, error) {
	data, err := r.client.Get(ctx, idKey(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.New(apperrors.ErrNotFound, "session not found")
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return unmarshalSession(data)
}

// FindByAccessTokenHash возвращает сессию по хэшу access токена
func (r *SessionRepository) FindByAccessTokenHash(ctx context.Context, accessTokenHash string) (*domain.Session, error) {
	return r.findByIndex(ctx, accessKey(accessTokenHash))
}

// FindByRefreshTokenHash возвращает сессию по хэшу refresh токена
func (r *SessionRepository) FindByRefreshTokenHash(ctx context.Context, refreshTokenHash string) (*domain.Session, error) {
	return r.findByIndex(ctx, refreshKey(refreshTokenHash))
}

// Delete удаляет сессию по ID вместе с индексными ключами
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	session, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, idKey(id))
	pipe.Del(ctx, accessKey(session.AccessTokenHash))
	pipe.Del(ctx, refreshKey(session.RefreshTokenHash))
	pipe.SRem(ctx, adminKey(session.AdministratorID), id)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// DeleteByAdministratorID удаляет все сессии администратора
func (r *SessionRepository) DeleteByAdministratorID(ctx context.Context, administratorID string) error {
	ids, err := r.client.SMembers(ctx, adminKey(administratorID)).Result()
	if err != nil {
		return fmt.Errorf("failed to get administrator sessions: %w", err)
	}

	for _, id := range ids {
		if err := r.Delete(ctx, id); err != nil {
			// Просроченные сессии уже удалены по TTL
			if apperrors.GetCode(err) == apperrors.ErrNotFound {
				continue
			}
			return err
		}
	}

	return r.client.Del(ctx, adminKey(administratorID)).Err()
}

// CleanupExpired удаляет индексные ключи, пережившие свою сессию
// Основная очистка выполняется Redis по TTL
func (r *SessionRepository) CleanupExpired(ctx context.Context, before time.Time) error {
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, "session:id:*", 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan session keys: %w", err)
		}

		for _, key := range keys {
			data, err := r.client.Get(ctx, key).Result()
			if err != nil {
				if err == redis.Nil {
					continue
				}
				return fmt.Errorf("failed to get session %s: %w", key, err)
			}

			session, err := unmarshalSession(data)
			if err != nil {
				return err
			}

			if session.ExpiresAt.Before(before) {
				if err := r.Delete(ctx, session.ID); err != nil {
					return err
				}
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	return nil
}

func (r *SessionRepository) findByIndex(ctx context.Context, key string) (*domain.Session, error) {
	id, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.New(apperrors.ErrNotFound, "session not found")
		}
		return nil, fmt.Errorf("failed to resolve session index: %w", err)
	}

	return r.FindByID(ctx, id)
}

func unmarshalSession(data string) (*domain.Session, error) {
	var session domain.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

func idKey(id string) string {
	return fmt.Sprintf("session:id:%s", id)
}

func accessKey(hash string) string {
	return fmt.Sprintf("session:access:%s", hash)
}

func refreshKey(hash string) string {
	return fmt.Sprintf("session:refresh:%s", hash)
}

func adminKey(administratorID string) string {
	return fmt.Sprintf("session:admin:%s", administratorID)
}

package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims структура для хранения данных администратора в JWT токене
type TokenClaims struct {
	AdministratorID string `json:"administrator_id"`
	IsSuper         bool   `json:"is_super"`
	TokenType       string `json:"token_type"` // access или refresh
	jwt.RegisteredClaims
}

// JWTManager интерфейс для работы с JWT токенами
type JWTManager interface {
	GenerateTokenPair(administratorID string, isSuper bool) (string, string, error)
	GenerateAccessToken(administratorID string, isSuper bool) (string, error)
	GenerateRefreshToken(administratorID string, isSuper bool) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

// Manager реализация JWTManager
type Manager struct {
	accessSecretKey  string
	refreshSecretKey string
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
}

// NewManager создает новый экземпляр JWT менеджера
func NewManager(accessSecretKey, refreshSecretKey string, accessTokenTTL, refreshTokenTTL time.Duration) *Manager {
	return &Manager{
		accessSecretKey:  accessSecretKey,
		refreshSecretKey: refreshSecretKey,
		accessTokenTTL:   accessTokenTTL,
		refreshTokenTTL:  refreshTokenTTL,
	}
}

// GenerateTokenPair генерирует пару access и refresh токенов
func (m *Manager) GenerateTokenPair(administratorID string, isSuper bool) (string, string, error) {
	accessToken, err := m.GenerateAccessToken(administratorID, isSuper)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := m.GenerateRefreshToken(administratorID, isSuper)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

// GenerateAccessToken генерирует access токен
func (m *Manager) GenerateAccessToken(administratorID string, isSuper bool) (string, error) {
	return m.generateToken(administratorID, isSuper, "access", m.accessSecretKey, m.accessTokenTTL)
}

// GenerateRefreshToken генерирует refresh токен
func (m *Manager) GenerateRefreshToken(administratorID string, isSuper bool) (string, error) {
	return m.generateToken(administratorID, isSuper, "refresh", m.refreshSecretKey, m.refreshTokenTTL)
}

func (m *Manager) generateToken(administratorID string, isSuper bool, tokenType, secretKey string, ttl time.Duration) (string, error) {
	claims := &TokenClaims{
		AdministratorID: administratorID,
		IsSuper:         isSuper,
		TokenType:       tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
			NotBefore: jwt.NewNumericDate(time.Now().UTC()),
			Subject:   administratorID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

// ValidateAccessToken валидирует access токен
func (m *Manager) ValidateAccessToken(token string) (*TokenClaims, error) {
	claims, err := m.validateTokenWithSecret(token, m.accessSecretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to validate access token: %w", err)
	}

	// Проверяем тип токена
	if claims.TokenType != "access" {
		return nil, fmt.Errorf("invalid token type: expected 'access', got '%s'", claims.TokenType)
	}

	return claims, nil
}

// ValidateRefreshToken валидирует refresh токен
func (m *Manager) ValidateRefreshToken(token string) (*TokenClaims, error) {
	claims, err := m.validateTokenWithSecret(token, m.refreshSecretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to validate refresh token: %w", err)
	}

	// Проверяем тип токена
	if claims.TokenType != "refresh" {
		return nil, fmt.Errorf("invalid token type: expected 'refresh', got '%s'", claims.TokenType)
	}

	return claims, nil
}

// validateTokenWithSecret валидирует токен с указанным секретным ключом
func (m *Manager) validateTokenWithSecret(token, secretKey string) (*TokenClaims, error) {
	parsedToken, err := jwt.ParseWithClaims(token, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Проверяем метод подписи
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := parsedToken.Claims.(*TokenClaims); ok && parsedToken.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// fileTokenStorage хранит токены сессии в домашнем каталоге пользователя
// Реализует session.TokenStorage
type fileTokenStorage struct {
	path string
}

type storedTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func newFileTokenStorage() (*fileTokenStorage, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return &fileTokenStorage{
		path: filepath.Join(home, ".consolectl", "tokens.json"),
	}, nil
}

func (s *fileTokenStorage) Load() (string, string, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", nil
		}
		return "", "", fmt.Errorf("failed to read token file: %w", err)
	}

	var tokens storedTokens
	if err := json.Unmarshal(content, &tokens); err != nil {
		return "", "", fmt.Errorf("failed to parse token file: %w", err)
	}
	return tokens.AccessToken, tokens.RefreshToken, nil
}

func (s *fileTokenStorage) Save(accessToken, refreshToken string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	content, err := json.Marshal(storedTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
	if err != nil {
		return err
	}

	// Токены доступны только владельцу
	if err := os.WriteFile(s.path, content, 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

func (s *fileTokenStorage) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

package config

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"

	"timeclock-sync/internal/model"
)

// SettingStore is the key/value store holding the persisted API settings.
type SettingStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// APISettings is the snapshot of the persisted API configuration, read once at startup.
type APISettings struct {
	Enabled   bool
	Username  string
	Password  string // plain text or a bcrypt hash
	JWTSecret []byte
}

// CredentialsConfigured reports whether both username and password are set.
func (s *APISettings) CredentialsConfigured() bool {
	return s.Username != "" && s.Password != ""
}

// SigningAvailable reports whether tokens can be issued and verified.
func (s *APISettings) SigningAvailable() bool {
	return len(s.JWTSecret) > 0
}

// LoadAPISettings reads the API settings. A missing signing secret is generated and persisted.
func LoadAPISettings(ctx context.Context, store SettingStore) (*APISettings, error) {
	s := &APISettings{}

	enabled, ok, err := store.Get(ctx, model.SettingAPIEnabled)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", model.SettingAPIEnabled, err)
	}
	if ok {
		s.Enabled, _ = strconv.ParseBool(enabled)
	}

	if s.Username, _, err = store.Get(ctx, model.SettingAPIUsername); err != nil {
		return nil, fmt.Errorf("read %s: %w", model.SettingAPIUsername, err)
	}
	if s.Password, _, err = store.Get(ctx, model.SettingAPIPassword); err != nil {
		return nil, fmt.Errorf("read %s: %w", model.SettingAPIPassword, err)
	}

	secret, ok, err := store.Get(ctx, model.SettingJWTSecret)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", model.SettingJWTSecret, err)
	}
	if !ok || secret == "" {
		secret, err = generateSecret()
		if err != nil {
			return nil, err
		}
		if err := store.Set(ctx, model.SettingJWTSecret, secret); err != nil {
			return nil, fmt.Errorf("persist %s: %w", model.SettingJWTSecret, err)
		}
	}
	s.JWTSecret = []byte(secret)

	return s, nil
}

func generateSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate jwt secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

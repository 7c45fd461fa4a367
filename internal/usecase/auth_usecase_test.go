package usecase

import (
	"context"
	"testing"
	"time"

	"timeclock-sync/config"
	"timeclock-sync/internal/apperror"
	"timeclock-sync/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"
)

func newAuthUsecase(settings *config.APISettings) (*AuthUsecase, *observer.ObservedLogs) {
	log, logs := observedLogger()
	tokens := auth.NewTokenManager(settings.JWTSecret).WithClock(fixedClock(serverNow))
	return NewAuthUsecase(settings, tokens, log), logs
}

func enabledSettings() *config.APISettings {
	return &config.APISettings{
		Enabled:   true,
		Username:  "api_user",
		Password:  "api_password",
		JWTSecret: []byte("0123456789abcdef0123456789abcdef"),
	}
}

func TestLogin_PlainPassword(t *testing.T) {
	uc, _ := newAuthUsecase(enabledSettings())

	token, err := uc.Login(context.Background(), "api_user", "api_password", "10.0.0.7")
	require.NoError(t, err)
	assert.NotEmpty(t, token.Value)
	assert.Equal(t, "api_user", token.Subject)
	assert.Equal(t, int64(86400), token.ExpiresIn())
	assert.Equal(t, serverNow.Add(24*time.Hour), token.ExpiresAt)
}

func TestLogin_BcryptPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	settings := enabledSettings()
	settings.Password = string(hash)
	uc, _ := newAuthUsecase(settings)

	_, err = uc.Login(context.Background(), "api_user", "s3cret", "10.0.0.7")
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), "api_user", string(hash), "10.0.0.7")
	requireCode(t, err, apperror.CodeInvalidCredentials)
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(s *config.APISettings)
		username string
		password string
		code     string
		status   int
	}{
		{"disabled", func(s *config.APISettings) { s.Enabled = false }, "api_user", "api_password", apperror.CodeAPIDisabled, 503},
		{"no secret", func(s *config.APISettings) { s.JWTSecret = nil }, "api_user", "api_password", apperror.CodeJWTUnavailable, 500},
		{"missing password", func(*config.APISettings) {}, "api_user", "", apperror.CodeMissingCredentials, 400},
		{"missing username", func(*config.APISettings) {}, "", "api_password", apperror.CodeMissingCredentials, 400},
		{"not configured", func(s *config.APISettings) { s.Password = "" }, "api_user", "api_password", apperror.CodeCredentialsNotConfigured, 500},
		{"wrong password", func(*config.APISettings) {}, "api_user", "nope", apperror.CodeInvalidCredentials, 401},
		{"wrong username", func(*config.APISettings) {}, "someone", "api_password", apperror.CodeInvalidCredentials, 401},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := enabledSettings()
			tt.mutate(settings)
			uc, _ := newAuthUsecase(settings)

			_, err := uc.Login(context.Background(), tt.username, tt.password, "10.0.0.7")
			appErr := requireCode(t, err, tt.code)
			assert.Equal(t, tt.status, appErr.Status)
		})
	}
}

func TestLogin_MismatchIsAudited(t *testing.T) {
	uc, logs := newAuthUsecase(enabledSettings())

	_, errUser := uc.Login(context.Background(), "intruder", "api_password", "192.0.2.10")
	_, errPass := uc.Login(context.Background(), "api_user", "guess", "192.0.2.10")

	// same message whichever field was wrong
	assert.Equal(t, apperror.From(errUser).Message, apperror.From(errPass).Message)

	rejected := logs.FilterMessage("login rejected")
	require.Equal(t, 2, rejected.Len())
	for _, entry := range rejected.All() {
		assert.Equal(t, zap.WarnLevel, entry.Level)
		assert.Equal(t, "192.0.2.10", entry.ContextMap()["ip"])
	}
}

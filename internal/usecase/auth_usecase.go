package usecase

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"timeclock-sync/config"
	"timeclock-sync/internal/apperror"
	"timeclock-sync/internal/auth"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthUsecase struct {
	settings *config.APISettings
	tokens   *auth.TokenManager
	log      *zap.Logger
}

func NewAuthUsecase(settings *config.APISettings, tokens *auth.TokenManager, log *zap.Logger) *AuthUsecase {
	return &AuthUsecase{settings: settings, tokens: tokens, log: log}
}

// Ready reports API_DISABLED or JWT_UNAVAILABLE before a request body is even read.
func (u *AuthUsecase) Ready() error {
	if !u.settings.Enabled {
		return apperror.APIDisabled()
	}
	if !u.settings.SigningAvailable() {
		return apperror.JWTUnavailable(auth.ErrNoSecret)
	}
	return nil
}

// Login checks the configured credential pair and issues a bearer token.
func (u *AuthUsecase) Login(_ context.Context, username, password, ip string) (auth.Token, error) {
	if err := u.Ready(); err != nil {
		return auth.Token{}, err
	}
	if username == "" || password == "" {
		return auth.Token{}, apperror.BadRequest(apperror.CodeMissingCredentials, "username and password are required")
	}
	if !u.settings.CredentialsConfigured() {
		return auth.Token{}, apperror.New(http.StatusInternalServerError, apperror.CodeCredentialsNotConfigured,
			"API credentials are not configured")
	}

	userOK := subtle.ConstantTimeCompare([]byte(u.settings.Username), []byte(username)) == 1
	passOK := passwordMatches(u.settings.Password, password)
	if !userOK || !passOK {
		u.log.Warn("login rejected", zap.String("ip", ip), zap.String("username", username))
		return auth.Token{}, apperror.Unauthorized(apperror.CodeInvalidCredentials, "invalid username or password")
	}

	token, err := u.tokens.Issue(username)
	if err != nil {
		return auth.Token{}, apperror.JWTUnavailable(err)
	}

	u.log.Info("token issued", zap.String("ip", ip), zap.String("subject", username), zap.Time("expires_at", token.ExpiresAt))
	return token, nil
}

// passwordMatches accepts a bcrypt hash or a plain stored password.
func passwordMatches(stored, given string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}

func isBcryptHash(s string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

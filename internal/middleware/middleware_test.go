package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"timeclock-sync/config"
	"timeclock-sync/internal/apperror"
	"timeclock-sync/internal/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var (
	secret = []byte("0123456789abcdef0123456789abcdef")
	issued = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
)

func newApp(settings *config.APISettings, now time.Time) (*fiber.App, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core)

	tokens := auth.NewTokenManager(settings.JWTSecret).WithClock(func() time.Time { return now })
	app := fiber.New(fiber.Config{ErrorHandler: apperror.FiberErrorHandler(log)})
	app.Get("/protected", APIEnabled(settings), Auth(settings, tokens, log), func(c *fiber.Ctx) error {
		return c.SendString(Subject(c))
	})
	return app, logs
}

func issue(t *testing.T, key []byte) string {
	t.Helper()
	tok, err := auth.NewTokenManager(key).WithClock(func() time.Time { return issued }).Issue("api_user")
	require.NoError(t, err)
	return tok.Value
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Status string `json:"status"`
		Error  struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "error", body.Status)
	return body.Error.Code
}

func TestAuth(t *testing.T) {
	valid := issue(t, secret)
	foreign := issue(t, []byte("another-secret-another-secret-xx"))

	tests := []struct {
		name   string
		header string
		now    time.Time
		status int
		code   string
	}{
		{"valid", "Bearer " + valid, issued.Add(time.Hour), http.StatusOK, ""},
		{"lower case scheme", "bearer " + valid, issued.Add(time.Hour), http.StatusOK, ""},
		{"missing", "", issued, http.StatusUnauthorized, apperror.CodeMissingToken},
		{"no scheme", valid, issued, http.StatusUnauthorized, apperror.CodeInvalidTokenFormat},
		{"wrong scheme", "Basic " + valid, issued, http.StatusUnauthorized, apperror.CodeInvalidTokenFormat},
		{"three parts", "Bearer " + valid + " extra", issued, http.StatusUnauthorized, apperror.CodeInvalidTokenFormat},
		{"expired", "Bearer " + valid, issued.Add(auth.TokenLifetime + time.Second), http.StatusUnauthorized, apperror.CodeTokenExpired},
		{"last valid second", "Bearer " + valid, issued.Add(auth.TokenLifetime - time.Second), http.StatusOK, ""},
		{"foreign signature", "Bearer " + foreign, issued, http.StatusUnauthorized, apperror.CodeInvalidToken},
		{"garbage", "Bearer not-a-jwt", issued, http.StatusUnauthorized, apperror.CodeInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newApp(&config.APISettings{Enabled: true, JWTSecret: secret}, tt.now)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, tt.status, resp.StatusCode)
			if tt.code == "" {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, "api_user", string(body))
				return
			}
			assert.Equal(t, tt.code, errorCode(t, resp))
		})
	}
}

func TestAuth_RejectionIsAudited(t *testing.T) {
	app, logs := newApp(&config.APISettings{Enabled: true, JWTSecret: secret}, issued)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	resp.Body.Close()

	entries := logs.FilterMessage("request rejected").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.WarnLevel, entries[0].Level)
	assert.Equal(t, apperror.CodeMissingToken, entries[0].ContextMap()["code"])
	assert.Contains(t, entries[0].ContextMap(), "ip")
}

func TestAPIEnabled(t *testing.T) {
	app, _ := newApp(&config.APISettings{Enabled: false, JWTSecret: secret}, issued)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, secret))
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, apperror.CodeAPIDisabled, errorCode(t, resp))
}

func TestAuth_NoSecret(t *testing.T) {
	app, _ := newApp(&config.APISettings{Enabled: true}, issued)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, secret))
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, apperror.CodeJWTUnavailable, errorCode(t, resp))
}

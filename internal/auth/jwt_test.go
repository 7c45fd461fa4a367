package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssue_ExpiryIsIssuedAtPlusLifetime(t *testing.T) {
	issued := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	m := NewTokenManager([]byte("secret")).WithClock(fixedClock(issued))

	tok, err := m.Issue("api_user")
	require.NoError(t, err)

	assert.Equal(t, int64(86400), tok.ExpiresIn())
	assert.Equal(t, issued.Add(24*time.Hour), tok.ExpiresAt)

	claims, err := m.Parse(tok.Value)
	require.NoError(t, err)
	assert.Equal(t, "api_user", claims.Subject)
	assert.Equal(t, int64(86400), claims.ExpiresAt.Unix()-claims.IssuedAt.Unix())
}

func TestIssue_SubSecondClock(t *testing.T) {
	m := NewTokenManager([]byte("secret")).WithClock(fixedClock(time.Date(2026, 3, 1, 8, 0, 0, 900_000_000, time.UTC)))

	tok, err := m.Issue("api_user")
	require.NoError(t, err)

	claims, err := m.Parse(tok.Value)
	require.NoError(t, err)
	assert.Equal(t, int64(86400), claims.ExpiresAt.Unix()-claims.IssuedAt.Unix())
}

func TestParse_Expiry(t *testing.T) {
	issued := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	issuer := NewTokenManager([]byte("secret")).WithClock(fixedClock(issued))
	tok, err := issuer.Issue("api_user")
	require.NoError(t, err)

	tests := []struct {
		name    string
		at      time.Time
		wantErr error
	}{
		{"just issued", issued, nil},
		{"one second before expiry", tok.ExpiresAt.Add(-time.Second), nil},
		{"one second after expiry", tok.ExpiresAt.Add(time.Second), ErrTokenExpired},
		{"a week later", issued.Add(7 * 24 * time.Hour), ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewTokenManager([]byte("secret")).WithClock(fixedClock(tt.at))
			_, err := v.Parse(tok.Value)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	m := NewTokenManager([]byte("secret")).WithClock(fixedClock(now))

	other, err := NewTokenManager([]byte("other")).WithClock(fixedClock(now)).Issue("api_user")
	require.NoError(t, err)

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "api_user"})
	noExpSigned, err := noExp.SignedString([]byte("secret"))
	require.NoError(t, err)

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "api_user",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})
	hs512Signed, err := hs512.SignedString([]byte("secret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":        "not-a-jwt",
		"wrong secret":   other.Value,
		"missing exp":    noExpSigned,
		"wrong algorithm": hs512Signed,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := m.Parse(token)
			assert.ErrorIs(t, err, ErrTokenInvalid)
		})
	}
}

func TestNoSecret(t *testing.T) {
	m := NewTokenManager(nil)

	_, err := m.Issue("api_user")
	assert.ErrorIs(t, err, ErrNoSecret)

	_, err = m.Parse("x.y.z")
	assert.ErrorIs(t, err, ErrNoSecret)
}

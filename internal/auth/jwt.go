// Package auth issues and verifies the bearer tokens used by time-clock devices.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenLifetime is the fixed validity of every issued token.
const TokenLifetime = 86400 * time.Second

var (
	ErrNoSecret     = errors.New("signing secret is not configured")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims carries the authenticated subject plus issued-at and expiry.
type Claims struct {
	jwt.RegisteredClaims
}

// Token is a freshly issued bearer token.
type Token struct {
	Value     string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ExpiresIn is the token lifetime in whole seconds.
func (t Token) ExpiresIn() int64 {
	return int64(t.ExpiresAt.Sub(t.IssuedAt) / time.Second)
}

type TokenManager struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

func NewTokenManager(secret []byte) *TokenManager {
	return &TokenManager{secret: secret, lifetime: TokenLifetime, now: time.Now}
}

// WithClock replaces the wall clock, for tests.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	m.now = now
	return m
}

// Issue signs a HS256 token for subject, valid for TokenLifetime.
func (m *TokenManager) Issue(subject string) (Token, error) {
	if len(m.secret) == 0 {
		return Token{}, ErrNoSecret
	}

	// NumericDate has second precision; truncate so exp - iat is exact
	issuedAt := m.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(m.lifetime)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return Token{}, err
	}

	return Token{Value: signed, Subject: subject, IssuedAt: issuedAt, ExpiresAt: expiresAt}, nil
}

// Parse verifies the signature and expiry of tokenString and returns its claims.
// The error is ErrTokenExpired, ErrTokenInvalid or ErrNoSecret.
func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	if len(m.secret) == 0 {
		return nil, ErrNoSecret
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errors.Join(ErrTokenInvalid, err)
	}

	if !token.Valid || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// Package jwt implements token issuance and verification for the identity module.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by an access token. One role entry per assigned role.
type Claims struct {
	Username string   `json:"name"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// Config contains token settings.
type Config struct {
	SecretKey     string
	Issuer        string
	Audience      string
	TokenLifetime time.Duration
}

// Authenticator issues and verifies HS256 tokens. Verification is stateless:
// any holder of the secret can validate a token without a session store.
type Authenticator struct {
	secret   []byte
	issuer   string
	audience string
	lifetime time.Duration

	// now is swapped in tests to simulate clock movement.
	now func() time.Time
}

// NewAuthenticator creates an authenticator. A missing secret is a
// configuration error and refuses to construct.
func NewAuthenticator(cfg Config) (*Authenticator, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("jwt: secret key is not configured")
	}
	return &Authenticator{
		secret:   []byte(cfg.SecretKey),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		lifetime: cfg.TokenLifetime,
		now:      time.Now,
	}, nil
}

// Issue creates a signed token for the user and returns it together with
// its expiry time.
func (a *Authenticator) Issue(userID, username, email string, roles []string) (string, time.Time, error) {
	now := a.now().UTC()
	expiresAt := now.Add(a.lifetime)

	claims := Claims{
		Username: username,
		Email:    email,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    a.issuer,
			Audience:  jwt.ClaimStrings{a.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify parses and validates a token, returning its claims. Expired
// tokens, wrong signatures, wrong signing methods, and issuer/audience
// mismatches all fail uniformly.
func (a *Authenticator) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{},
		func(_ *jwt.Token) (interface{}, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(a.issuer),
		jwt.WithAudience(a.audience),
		jwt.WithTimeFunc(func() time.Time { return a.now() }),
	)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

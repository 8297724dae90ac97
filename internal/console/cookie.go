// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package console

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the name of the session cookie.
const CookieName = "canvas_console_session"

const cookieIssuer = "canvas-console"

// sessionClaims carries the session id in the standard jti claim.
type sessionClaims struct {
	jwt.RegisteredClaims
}

// CookieSigner signs and verifies session cookies as HS256 JWTs.
type CookieSigner struct {
	secret []byte
	maxAge time.Duration
}

// NewCookieSigner creates a signer. An empty secret is replaced by a random
// one, so cookies do not survive a restart (neither do the sessions).
func NewCookieSigner(secret string, maxAge time.Duration) (*CookieSigner, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
	}
	return &CookieSigner{secret: key, maxAge: maxAge}, nil
}

// Sign returns the cookie value for sessionID.
func (s *CookieSigner) Sign(sessionID string) (string, error) {
	now := time.Now()
	claims := &sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Issuer:    cookieIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.maxAge)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session cookie: %w", err)
	}
	return signed, nil
}

// Verify checks a cookie value and returns the session id it carries.
func (s *CookieSigner) Verify(value string) (string, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cookieIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to parse session cookie: %w", err)
	}
	if !token.Valid || claims.ID == "" {
		return "", fmt.Errorf("invalid session cookie claims")
	}
	return claims.ID, nil
}

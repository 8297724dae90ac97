// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package console

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestCookieSigner_RoundTrip(t *testing.T) {
	signer, err := NewCookieSigner(testSecret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	value, err := signer.Sign("session-1")
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	id, err := signer.Verify(value)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if id != "session-1" {
		t.Errorf("Verify() = %q, want session-1", id)
	}
}

func TestCookieSigner_Rejects(t *testing.T) {
	signer, _ := NewCookieSigner(testSecret, time.Hour)
	other, _ := NewCookieSigner("ffffffffffffffffffffffffffffffff", time.Hour)
	expired, _ := NewCookieSigner(testSecret, -time.Minute)

	foreign, _ := other.Sign("s")
	stale, _ := expired.Sign("s")
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		ID:        "s",
		Issuer:    cookieIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}
	good, _ := signer.Sign("s")
	tampered := good[:len(good)-2] + "xx"

	tests := map[string]string{
		"other secret": foreign,
		"expired":      stale,
		"alg none":     unsigned,
		"tampered":     tampered,
		"garbage":      "not-a-jwt",
		"empty":        "",
	}
	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := signer.Verify(value); err == nil {
				t.Error("Verify() should fail")
			}
		})
	}
}

func TestCookieSigner_RandomSecret(t *testing.T) {
	a, err := NewCookieSigner("", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := NewCookieSigner("", time.Hour)
	value, _ := a.Sign("s")
	if _, err := b.Verify(value); err == nil || !strings.Contains(err.Error(), "session cookie") {
		t.Errorf("independent random secrets must not verify each other, got %v", err)
	}
}

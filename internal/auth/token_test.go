package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/cakeshop/cakeshop/internal/identity"
)

const tokenTTL = 7 * 24 * time.Hour

func testUser() identity.User {
	return identity.User{
		ID:          "5f9f1b9b-0000-0000-0000-000000000000",
		Name:        "Alice",
		Email:       "alice@example.com",
		PhoneNumber: "1234567890",
	}
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	svc := NewTokenService("secret", tokenTTL)

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.ID != testUser().ID {
		t.Fatalf("unexpected id claim %q", claims.ID)
	}
	if claims.Email != "alice@example.com" || claims.Name != "Alice" || claims.PhoneNumber != "1234567890" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestValidityWindowBoundaries(t *testing.T) {
	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	svc := NewTokenService("secret", tokenTTL)
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	svc.now = func() time.Time { return issuedAt.Add(6*24*time.Hour + 23*time.Hour + 59*time.Minute) }
	if _, err := svc.Verify(token); err != nil {
		t.Fatalf("token should still be valid just inside the window: %v", err)
	}

	svc.now = func() time.Time { return issuedAt.Add(tokenTTL + time.Second) }
	_, err = svc.Verify(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyRejectsMalformed(t *testing.T) {
	svc := NewTokenService("secret", tokenTTL)

	for _, token := range []string{"", "garbage", "a.b", "a.b.c"} {
		if _, err := svc.Verify(token); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("token %q: expected ErrTokenInvalid, got %v", token, err)
		}
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", tokenTTL)
	verifier := NewTokenService("secret-b", tokenTTL)

	token, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong secret, got %v", err)
	}
}

package auth

import (
	"testing"
	"time"

	apperrors "social-wall/pkg/common/errors"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour, "social-wall")

	ident := Identity{ID: "u-1", Username: "alice", Email: "alice@example.com"}
	token, err := issuer.Issue(ident)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	got, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if got != ident {
		t.Fatalf("Expected %+v, got %+v", ident, got)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("secret-a", time.Hour, "social-wall")
	other := NewTokenIssuer("secret-b", time.Hour, "social-wall")

	token, err := issuer.Issue(Identity{ID: "u-1", Username: "alice"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := other.Verify(token); err == nil {
		t.Fatal("Expected verification to fail with a different secret")
	} else if apperrors.KindOf(err) != apperrors.KindUnauthenticated {
		t.Fatalf("Expected UNAUTHENTICATED, got %s", apperrors.KindOf(err))
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	// 负的有效期，签出即过期
	issuer := NewTokenIssuer("test-secret", -time.Minute, "social-wall")

	token, err := issuer.Issue(Identity{ID: "u-1", Username: "alice"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := issuer.Verify(token); err == nil {
		t.Fatal("Expected verification to fail for expired token")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour, "social-wall")

	if _, err := issuer.Verify("not-a-token"); err == nil {
		t.Fatal("Expected verification to fail for malformed token")
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hashed, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hashed == "hunter22" {
		t.Fatal("Hash must not equal plaintext")
	}

	if !VerifyPassword("hunter22", hashed) {
		t.Fatal("Expected matching password to verify")
	}
	if VerifyPassword("wrongpass", hashed) {
		t.Fatal("Expected non-matching password to fail")
	}
}

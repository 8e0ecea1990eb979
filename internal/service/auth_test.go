package service

import (
	"testing"

	"github.com/medcamp/mcms/internal/errs"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewAuthService("test-secret", 60)

	token, err := svc.IssueToken("round@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Email != "round@example.com" {
		t.Fatalf("email = %q", claims.Email)
	}
}

func TestVerifyTokenFailures(t *testing.T) {
	svc := NewAuthService("test-secret", 60)

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.VerifyToken("not.a.token")
		assertStatus(t, err, 401, errs.CodeInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewAuthService("other-secret", 60)
		token, err := other.IssueToken("a@example.com")
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		_, err = svc.VerifyToken(token)
		assertStatus(t, err, 401, errs.CodeInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired := NewAuthService("test-secret", -1)
		token, err := expired.IssueToken("a@example.com")
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		_, err = svc.VerifyToken(token)
		assertStatus(t, err, 401, errs.CodeInvalidToken)
	})
}

package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/smartkart/smartkart/internal/domain/model"
)

func TestJWTStrategyRoundTrip(t *testing.T) {
	strategy := NewJWTStrategy("test-secret", Options{TTL: time.Hour})
	principal := model.Principal{ID: uuid.New(), Role: model.RoleSupplier}

	token, err := strategy.IssueToken(principal)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	parsed, err := strategy.ParseToken(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parsed != principal {
		t.Fatalf("parsed %+v, want %+v", parsed, principal)
	}
}

func TestJWTStrategyRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTStrategy("secret-a", Options{TTL: time.Hour})
	verifier := NewJWTStrategy("secret-b", Options{TTL: time.Hour})

	token, err := issuer.IssueToken(model.Principal{ID: uuid.New(), Role: model.RoleVendor})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := verifier.ParseToken(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTStrategyRejectsExpired(t *testing.T) {
	strategy := NewJWTStrategy("test-secret", Options{TTL: -time.Minute})

	token, err := strategy.IssueToken(model.Principal{ID: uuid.New(), Role: model.RoleVendor})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := strategy.ParseToken(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestJWTStrategyRejectsWrongSigningMethod(t *testing.T) {
	strategy := NewJWTStrategy("test-secret", Options{TTL: time.Hour})

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing with none failed: %v", err)
	}
	if _, err := strategy.ParseToken(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for alg=none, got %v", err)
	}
}

func TestJWTStrategyRejectsBadClaims(t *testing.T) {
	strategy := NewJWTStrategy("test-secret", Options{TTL: time.Hour})

	issue := func(subject, role string) string {
		now := time.Now()
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
			Role: role,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   subject,
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		})
		signed, err := token.SignedString([]byte("test-secret"))
		if err != nil {
			t.Fatalf("signing failed: %v", err)
		}
		return signed
	}

	if _, err := strategy.ParseToken(issue("not-a-uuid", "vendor")); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for bad subject, got %v", err)
	}
	if _, err := strategy.ParseToken(issue(uuid.NewString(), "admin")); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for unknown role, got %v", err)
	}
	if _, err := strategy.ParseToken("garbage"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}
}

func TestJWTStrategyDefaultTTL(t *testing.T) {
	strategy := NewJWTStrategy("test-secret", Options{})
	if strategy.ttl != 7*24*time.Hour {
		t.Fatalf("ttl = %v, want one week", strategy.ttl)
	}
}

func TestJWTStrategyName(t *testing.T) {
	if name := NewJWTStrategy("s", Options{}).Name(); name != "jwt" {
		t.Fatalf("name = %q, want jwt", name)
	}
}

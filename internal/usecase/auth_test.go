package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	domainErrors "github.com/smartkart/smartkart/internal/domain/errors"
	"github.com/smartkart/smartkart/internal/domain/model"
	pkgAuth "github.com/smartkart/smartkart/internal/pkg/auth"
	testhelpers "github.com/smartkart/smartkart/internal/test"
	"github.com/smartkart/smartkart/internal/usecase"
)

func newStrategyStub() testhelpers.StrategyStub {
	return testhelpers.StrategyStub{
		IssueFn: func(p model.Principal) (string, error) {
			return fmt.Sprintf("token-%s-%s", p.ID, p.Role), nil
		},
		ParseFn: func(token string) (model.Principal, error) {
			var id, role string
			if _, err := fmt.Sscanf(token, "token-%36s-%s", &id, &role); err != nil {
				return model.Principal{}, pkgAuth.ErrInvalidToken
			}
			parsed, err := uuid.Parse(id)
			if err != nil {
				return model.Principal{}, pkgAuth.ErrInvalidToken
			}
			return model.Principal{ID: parsed, Role: model.Role(role)}, nil
		},
	}
}

func vendorInput(email string) usecase.RegisterInput {
	return usecase.RegisterInput{
		Name:     "Ravi",
		Email:    email,
		Password: "password",
		Role:     "vendor",
		Location: model.GeoPoint{Longitude: 77.59, Latitude: 12.97},
	}
}

func TestAuthUseCaseRegisterSuccess(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := usecase.NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	user, token, err := uc.Register(ctx, vendorInput("Alice@Example.com"))
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if user.ID == uuid.Nil {
		t.Fatalf("expected user to have ID assigned")
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected lowercased email, got %q", user.Email)
	}
	if token == "" {
		t.Fatal("expected token")
	}
	stored, err := repo.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("expected user in repository: %v", err)
	}
	if stored.PasswordHash != "hash:password" {
		t.Fatalf("password hash not stored: %v", stored.PasswordHash)
	}
}

func TestAuthUseCaseRegisterDuplicate(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := usecase.NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	if _, _, err := uc.Register(ctx, vendorInput("bob@example.com")); err != nil {
		t.Fatalf("unexpected error on first register: %v", err)
	}
	if _, _, err := uc.Register(ctx, vendorInput("bob@example.com")); err != domainErrors.ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAuthUseCaseRegisterValidation(t *testing.T) {
	uc := usecase.NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{}, newStrategyStub())

	cases := []usecase.RegisterInput{
		{Name: "", Email: "a@b.c", Password: "x", Role: "vendor"},
		{Name: "A", Email: "", Password: "x", Role: "vendor"},
		{Name: "A", Email: "a@b.c", Password: "", Role: "vendor"},
		{Name: "A", Email: "a@b.c", Password: "x", Role: "admin"},
	}
	for _, in := range cases {
		if _, _, err := uc.Register(context.Background(), in); err != domainErrors.ErrInvalidCredentials {
			t.Fatalf("expected invalid credentials for %+v, got %v", in, err)
		}
	}
}

func TestAuthUseCaseAuthenticate(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := usecase.NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	if _, _, err := uc.Register(ctx, vendorInput("carol@example.com")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, err := uc.Authenticate(ctx, "carol@example.com", "bad"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
	if _, _, err := uc.Authenticate(ctx, "missing@example.com", "password"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials for unknown email, got %v", err)
	}

	user, token, err := uc.Authenticate(ctx, "CAROL@example.com", "password")
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if user.Email != "carol@example.com" || token == "" {
		t.Fatalf("unexpected result user=%+v token=%q", user, token)
	}
}

func TestAuthUseCaseParseToken(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := usecase.NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	user, token, err := uc.Register(context.Background(), vendorInput("dave@example.com"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	p, err := uc.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if p.ID != user.ID || p.Role != model.RoleVendor {
		t.Fatalf("unexpected principal: %+v", p)
	}

	if _, err := uc.ParseToken(""); err != pkgAuth.ErrInvalidToken {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}

func TestAuthUseCaseRegisterHasherError(t *testing.T) {
	uc := usecase.NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{
		HashFn: func(string) (string, error) { return "", fmt.Errorf("hash error") },
	}, newStrategyStub())

	if _, _, err := uc.Register(context.Background(), vendorInput("erin@example.com")); err == nil {
		t.Fatal("expected hasher error")
	}
}

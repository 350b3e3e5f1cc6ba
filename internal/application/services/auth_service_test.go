package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/flowops/api/internal/domain/entities"
	"github.com/flowops/api/internal/infrastructure/config"
	"github.com/flowops/api/internal/infrastructure/logger"
	"github.com/flowops/api/internal/ports"
)

func newAuthServiceFixture() (*AuthService, *fakeWorkspaceRepo) {
	workspaceRepo := newFakeWorkspaceRepo()
	userRepo := newFakeUserRepo()
	userRepo.workspaces = workspaceRepo
	jwtCfg := config.JWTConfig{
		Secret:           "test-secret",
		ExpiresIn:        time.Hour,
		RefreshExpiresIn: 24 * time.Hour,
		Issuer:           "flowops-test",
	}
	svc := NewAuthService(userRepo, newFakeAuthRepo(), jwtCfg, logger.NewNop())
	return svc, workspaceRepo
}

func TestSignupProvisionsWorkspace(t *testing.T) {
	svc, workspaceRepo := newAuthServiceFixture()

	resp, err := svc.Signup(context.Background(), ports.SignupRequest{
		Email:    "ada@example.com",
		Password: "correct-horse",
		Name:     "Ada",
	})
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("signup should issue both tokens")
	}
	if resp.User.PasswordHash != "" {
		t.Error("password hash leaked in response")
	}

	workspace, err := workspaceRepo.GetUserWorkspace(context.Background(), resp.User.ID)
	if err != nil {
		t.Fatalf("user has no workspace after signup: %v", err)
	}
	if workspace.Name != "Ada's Workspace" {
		t.Errorf("workspace name = %q, want %q", workspace.Name, "Ada's Workspace")
	}
	if workspace.OwnerID != resp.User.ID {
		t.Errorf("workspace owner = %s, want %s", workspace.OwnerID, resp.User.ID)
	}
}

func TestSignupLeavesNothingBehindOnFailure(t *testing.T) {
	workspaceRepo := newFakeWorkspaceRepo()
	workspaceRepo.addMemberErr = errors.New("membership insert rejected")
	userRepo := newFakeUserRepo()
	userRepo.workspaces = workspaceRepo
	svc := NewAuthService(userRepo, newFakeAuthRepo(), config.JWTConfig{Secret: "test-secret", ExpiresIn: time.Hour, RefreshExpiresIn: 24 * time.Hour}, logger.NewNop())

	_, err := svc.Signup(context.Background(), ports.SignupRequest{
		Email:    "ada@example.com",
		Password: "correct-horse",
		Name:     "Ada",
	})
	if err == nil {
		t.Fatal("Signup should fail when provisioning fails")
	}

	// Provisioning is atomic: no orphaned user row without a workspace.
	if _, err := userRepo.GetByEmail(context.Background(), "ada@example.com"); !errors.Is(err, entities.ErrUserNotFound) {
		t.Fatalf("GetByEmail after failed signup: err = %v, want ErrUserNotFound", err)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _ := newAuthServiceFixture()

	req := ports.SignupRequest{Email: "ada@example.com", Password: "correct-horse", Name: "Ada"}
	if _, err := svc.Signup(context.Background(), req); err != nil {
		t.Fatalf("first Signup failed: %v", err)
	}

	_, err := svc.Signup(context.Background(), req)
	if !errors.Is(err, entities.ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestLoginAndValidateToken(t *testing.T) {
	svc, _ := newAuthServiceFixture()

	signup, err := svc.Signup(context.Background(), ports.SignupRequest{
		Email:    "ada@example.com",
		Password: "correct-horse",
		Name:     "Ada",
	})
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	login, err := svc.Login(context.Background(), ports.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	claims, err := svc.ValidateToken(login.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != signup.User.ID.String() {
		t.Errorf("claims.UserID = %s, want %s", claims.UserID, signup.User.ID)
	}
	if claims.Email != "ada@example.com" {
		t.Errorf("claims.Email = %s, want ada@example.com", claims.Email)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthServiceFixture()

	_, err := svc.Signup(context.Background(), ports.SignupRequest{
		Email:    "ada@example.com",
		Password: "correct-horse",
		Name:     "Ada",
	})
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	_, err = svc.Login(context.Background(), ports.LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong",
	})
	if !errors.Is(err, entities.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthServiceFixture()

	if _, err := svc.ValidateToken("not-a-token"); err == nil {
		t.Fatal("ValidateToken accepted garbage")
	}
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc, _ := newAuthServiceFixture()

	signup, err := svc.Signup(context.Background(), ports.SignupRequest{
		Email:    "ada@example.com",
		Password: "correct-horse",
		Name:     "Ada",
	})
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), signup.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if refreshed.AccessToken == "" || refreshed.RefreshToken == "" {
		t.Error("refresh should issue both tokens")
	}
	if refreshed.RefreshToken == signup.RefreshToken {
		t.Error("refresh token was not rotated")
	}
	if refreshed.User.ID != signup.User.ID {
		t.Errorf("refreshed user = %s, want %s", refreshed.User.ID, signup.User.ID)
	}

	claims, err := svc.ValidateToken(refreshed.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken on refreshed access token failed: %v", err)
	}
	if claims.UserID != signup.User.ID.String() {
		t.Errorf("claims.UserID = %s, want %s", claims.UserID, signup.User.ID)
	}

	// The presented token is single use.
	if _, err := svc.Refresh(context.Background(), signup.RefreshToken); !errors.Is(err, entities.ErrUnauthorized) {
		t.Fatalf("reusing a spent refresh token: err = %v, want ErrUnauthorized", err)
	}

	// The rotated token still works.
	if _, err := svc.Refresh(context.Background(), refreshed.RefreshToken); err != nil {
		t.Fatalf("Refresh with rotated token failed: %v", err)
	}
}

func TestRefreshAfterLogout(t *testing.T) {
	svc, _ := newAuthServiceFixture()

	signup, err := svc.Signup(context.Background(), ports.SignupRequest{
		Email:    "ada@example.com",
		Password: "correct-horse",
		Name:     "Ada",
	})
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	if err := svc.Logout(context.Background(), signup.User.ID); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	_, err = svc.Refresh(context.Background(), signup.RefreshToken)
	if !errors.Is(err, entities.ErrUnauthorized) {
		t.Fatalf("Refresh after logout: err = %v, want ErrUnauthorized", err)
	}
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc, _ := newAuthServiceFixture()

	_, err := svc.Refresh(context.Background(), "not-a-refresh-token")
	if !errors.Is(err, entities.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

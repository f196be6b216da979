package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/config"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/constants"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/models"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/repository"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*AuthService, *models.Admin) {
	t.Helper()

	dsn := fmt.Sprintf("file:auth_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("kente-stall-7"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	admin := &models.Admin{
		Username:     "akosua",
		Email:        "akosua@ghanatunes.example",
		PasswordHash: string(hash),
		Role:         constants.AdminRoleAdmin,
	}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}

	cfg := &config.Config{
		JWT: config.JWTConfig{SecretKey: "test-admin-secret", ExpireHours: 2},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 8},
		},
	}
	return NewAuthService(cfg, repository.NewAdminRepository(db)), admin
}

func TestAdminLoginIssuesRoleBearingToken(t *testing.T) {
	svc, admin := setupAuthServiceTest(t)

	loggedIn, token, expiresAt, err := svc.Login("akosua", "kente-stall-7")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if loggedIn.LastLoginAt == nil {
		t.Fatalf("last_login_at should be stamped")
	}
	if !expiresAt.After(time.Now().Add(time.Hour)) {
		t.Fatalf("expiry %v should honor configured hours", expiresAt)
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.AdminID != admin.ID || claims.Role != constants.AdminRoleAdmin {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	if _, _, _, err := svc.Login("akosua", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password want ErrInvalidCredentials got %v", err)
	}
	if _, _, _, err := svc.Login("nobody", "kente-stall-7"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user want ErrInvalidCredentials got %v", err)
	}
}

func TestAdminChangePasswordBumpsTokenVersion(t *testing.T) {
	svc, admin := setupAuthServiceTest(t)

	if err := svc.ChangePassword(admin.ID, "kente-stall-7", "tiny"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("policy breach want ErrWeakPassword got %v", err)
	}
	if err := svc.ChangePassword(admin.ID, "kente-stall-7", "adowa-beat-12"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	updated, err := svc.adminRepo.GetByID(admin.ID)
	if err != nil {
		t.Fatalf("reload admin failed: %v", err)
	}
	if updated.TokenVersion != admin.TokenVersion+1 {
		t.Fatalf("token version want %d got %d", admin.TokenVersion+1, updated.TokenVersion)
	}
	if updated.TokenInvalidBefore == nil {
		t.Fatalf("token_invalid_before should be set")
	}
	if _, _, _, err := svc.Login("akosua", "adowa-beat-12"); err != nil {
		t.Fatalf("login with rotated password failed: %v", err)
	}
}

func TestParseJWTRejectsForeignSignature(t *testing.T) {
	svc, admin := setupAuthServiceTest(t)

	other := NewAuthService(&config.Config{
		JWT: config.JWTConfig{SecretKey: "some-other-secret", ExpireHours: 2},
	}, nil)
	token, _, err := other.GenerateJWT(admin)
	if err != nil {
		t.Fatalf("sign foreign token failed: %v", err)
	}
	if _, err := svc.ParseJWT(token); err == nil {
		t.Fatalf("token signed with a different secret should not parse")
	}
}

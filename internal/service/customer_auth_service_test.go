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
	"gorm.io/gorm"
)

func setupCustomerAuthTest(t *testing.T) *CustomerAuthService {
	t.Helper()

	dsn := fmt.Sprintf("file:customer_auth_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := &config.Config{
		CustomerJWT: config.JWTConfig{
			SecretKey:             "test-customer-secret",
			ExpireHours:           24,
			RememberMeExpireHours: 720,
		},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{
				MinLength:     8,
				RequireNumber: true,
			},
		},
	}
	return NewCustomerAuthService(cfg, repository.NewCustomerRepository(db))
}

func TestCustomerRegisterAndLogin(t *testing.T) {
	svc := setupCustomerAuthTest(t)

	customer, token, _, err := svc.Register(RegisterInput{
		Name:     "Kofi Asante",
		Email:    " Kofi.Asante@Example.com ",
		Password: "highlife99",
		City:     "Kumasi",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if customer.Email != "kofi.asante@example.com" {
		t.Fatalf("email not normalized, got %s", customer.Email)
	}
	if token == "" {
		t.Fatalf("expected a token on registration")
	}
	if customer.PasswordHash == "highlife99" {
		t.Fatalf("password stored in clear")
	}

	claims, err := svc.ParseCustomerJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.CustomerID != customer.ID {
		t.Fatalf("claims customer id want %d got %d", customer.ID, claims.CustomerID)
	}

	// Login is case-insensitive on email.
	if _, _, _, err := svc.Login("KOFI.ASANTE@example.com", "highlife99"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, _, _, err := svc.Login("kofi.asante@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password want ErrInvalidCredentials got %v", err)
	}
}

func TestCustomerRegisterRejectsDuplicateAndWeakPassword(t *testing.T) {
	svc := setupCustomerAuthTest(t)

	if _, _, _, err := svc.Register(RegisterInput{Email: "ama@example.com", Password: "short1"}); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("short password want ErrWeakPassword got %v", err)
	}
	if _, _, _, err := svc.Register(RegisterInput{Email: "ama@example.com", Password: "nodigitshere"}); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("digitless password want ErrWeakPassword got %v", err)
	}

	if _, _, _, err := svc.Register(RegisterInput{Email: "ama@example.com", Password: "highlife99"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, _, err := svc.Register(RegisterInput{Email: "Ama@Example.com", Password: "highlife99"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("duplicate email want ErrEmailExists got %v", err)
	}
}

func TestCustomerLoginRejectsDisabledAccount(t *testing.T) {
	svc := setupCustomerAuthTest(t)

	customer, _, _, err := svc.Register(RegisterInput{Email: "yaa@example.com", Password: "highlife99"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	customer.Status = constants.CustomerStatusDisabled
	if err := svc.customerRepo.Update(customer); err != nil {
		t.Fatalf("disable customer failed: %v", err)
	}

	if _, _, _, err := svc.Login("yaa@example.com", "highlife99"); !errors.Is(err, ErrCustomerDisabled) {
		t.Fatalf("disabled login want ErrCustomerDisabled got %v", err)
	}
}

func TestCustomerChangePasswordRevokesTokens(t *testing.T) {
	svc := setupCustomerAuthTest(t)

	customer, token, _, err := svc.Register(RegisterInput{Email: "abena@example.com", Password: "highlife99"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	oldVersion := customer.TokenVersion

	if err := svc.ChangePassword(customer.ID, "wrong", "azonto2024"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("wrong old password want ErrInvalidPassword got %v", err)
	}
	if err := svc.ChangePassword(customer.ID, "highlife99", "azonto2024"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	updated, err := svc.customerRepo.GetByID(customer.ID)
	if err != nil {
		t.Fatalf("reload customer failed: %v", err)
	}
	if updated.TokenVersion != oldVersion+1 {
		t.Fatalf("token version want %d got %d", oldVersion+1, updated.TokenVersion)
	}
	if updated.TokenInvalidBefore == nil {
		t.Fatalf("token_invalid_before should be set")
	}

	// The pre-rotation token carries the old version, so its claims no
	// longer match the stored auth state.
	claims, err := svc.ParseCustomerJWT(token)
	if err != nil {
		t.Fatalf("parse old token failed: %v", err)
	}
	if claims.TokenVersion == updated.TokenVersion {
		t.Fatalf("old token should carry a stale version")
	}

	if _, _, _, err := svc.Login("abena@example.com", "azonto2024"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestCustomerRememberMeExtendsExpiry(t *testing.T) {
	svc := setupCustomerAuthTest(t)

	if _, _, _, err := svc.Register(RegisterInput{Email: "esi@example.com", Password: "highlife99"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, normalExpiry, err := svc.LoginWithRememberMe("esi@example.com", "highlife99", false)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	_, _, longExpiry, err := svc.LoginWithRememberMe("esi@example.com", "highlife99", true)
	if err != nil {
		t.Fatalf("remember-me login failed: %v", err)
	}
	if !longExpiry.After(normalExpiry.Add(24 * time.Hour)) {
		t.Fatalf("remember-me expiry %v should be well past %v", longExpiry, normalExpiry)
	}
}

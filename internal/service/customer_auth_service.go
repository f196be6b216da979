package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/cache"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/config"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/constants"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/models"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// CustomerAuthService handles storefront registration and login.
type CustomerAuthService struct {
	cfg          *config.Config
	customerRepo repository.CustomerRepository
}

// NewCustomerAuthService creates a customer auth service.
func NewCustomerAuthService(cfg *config.Config, customerRepo repository.CustomerRepository) *CustomerAuthService {
	return &CustomerAuthService{
		cfg:          cfg,
		customerRepo: customerRepo,
	}
}

// CustomerJWTClaims are the storefront token claims.
type CustomerJWTClaims struct {
	CustomerID   uint   `json:"customer_id"`
	Email        string `json:"email"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// GenerateCustomerJWT signs a customer token.
func (s *CustomerAuthService) GenerateCustomerJWT(customer *models.Customer, expireHours int) (string, time.Time, error) {
	resolvedHours := expireHours
	if resolvedHours <= 0 {
		resolvedHours = resolveCustomerJWTExpireHours(s.cfg.CustomerJWT)
	}
	expiresAt := time.Now().Add(time.Duration(resolvedHours) * time.Hour)
	claims := CustomerJWTClaims{
		CustomerID:   customer.ID,
		Email:        customer.Email,
		TokenVersion: customer.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.CustomerJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseCustomerJWT validates and parses a customer token.
func (s *CustomerAuthService) ParseCustomerJWT(tokenString string) (*CustomerJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &CustomerJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.CustomerJWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*CustomerJWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// RegisterInput is the account creation request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
	City     string
}

// Register creates a customer account and logs it in.
func (s *CustomerAuthService) Register(input RegisterInput) (*models.Customer, string, time.Time, error) {
	normalized, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, "", time.Time{}, err
	}

	exist, err := s.customerRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if exist != nil {
		return nil, "", time.Time{}, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = resolveNameFromEmail(normalized)
	}
	customer := &models.Customer{
		Name:         name,
		Email:        normalized,
		PasswordHash: string(hashedPassword),
		Phone:        strings.TrimSpace(input.Phone),
		Address:      strings.TrimSpace(input.Address),
		City:         strings.TrimSpace(input.City),
		Status:       constants.CustomerStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.customerRepo.Create(customer); err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.GenerateCustomerJWT(customer, 0)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	customer.LastLoginAt = &now
	if err := s.customerRepo.Update(customer); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetCustomerAuthState(context.Background(), cache.BuildCustomerAuthState(customer))

	return customer, token, expiresAt, nil
}

// Login authenticates a customer.
func (s *CustomerAuthService) Login(email, password string) (*models.Customer, string, time.Time, error) {
	return s.LoginWithRememberMe(email, password, false)
}

// LoginWithRememberMe authenticates with an optional longer session.
func (s *CustomerAuthService) LoginWithRememberMe(email, password string, rememberMe bool) (*models.Customer, string, time.Time, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	customer, err := s.customerRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if customer == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if !strings.EqualFold(customer.Status, constants.CustomerStatusActive) {
		return nil, "", time.Time{}, ErrCustomerDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	expireHours := resolveCustomerJWTExpireHours(s.cfg.CustomerJWT)
	if rememberMe {
		expireHours = resolveRememberMeExpireHours(s.cfg.CustomerJWT)
	}
	token, expiresAt, err := s.GenerateCustomerJWT(customer, expireHours)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	customer.LastLoginAt = &now
	if err := s.customerRepo.Update(customer); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetCustomerAuthState(context.Background(), cache.BuildCustomerAuthState(customer))

	return customer, token, expiresAt, nil
}

// ChangePassword rotates a customer password and revokes issued tokens.
func (s *CustomerAuthService) ChangePassword(customerID uint, oldPassword, newPassword string) error {
	if customerID == 0 {
		return ErrNotFound
	}

	customer, err := s.customerRepo.GetByID(customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidPassword
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	customer.PasswordHash = string(hashedPassword)
	now := time.Now()
	customer.UpdatedAt = now
	customer.TokenVersion++
	customer.TokenInvalidBefore = &now
	if err := s.customerRepo.Update(customer); err != nil {
		return err
	}
	_ = cache.SetCustomerAuthState(context.Background(), cache.BuildCustomerAuthState(customer))
	return nil
}

// UpdateProfile edits contact details.
func (s *CustomerAuthService) UpdateProfile(customerID uint, name, phone, address, city *string) (*models.Customer, error) {
	if customerID == 0 {
		return nil, ErrNotFound
	}
	customer, err := s.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrNotFound
	}

	updated := false
	if name != nil {
		if trimmed := strings.TrimSpace(*name); trimmed != "" {
			customer.Name = trimmed
			updated = true
		}
	}
	if phone != nil {
		customer.Phone = strings.TrimSpace(*phone)
		updated = true
	}
	if address != nil {
		customer.Address = strings.TrimSpace(*address)
		updated = true
	}
	if city != nil {
		customer.City = strings.TrimSpace(*city)
		updated = true
	}
	if !updated {
		return customer, nil
	}

	customer.UpdatedAt = time.Now()
	if err := s.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomerByID fetches a customer account.
func (s *CustomerAuthService) GetCustomerByID(id uint) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrNotFound
	}
	return customer, nil
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

func resolveCustomerJWTExpireHours(cfg config.JWTConfig) int {
	if cfg.ExpireHours <= 0 {
		return 24
	}
	return cfg.ExpireHours
}

func resolveRememberMeExpireHours(cfg config.JWTConfig) int {
	if cfg.RememberMeExpireHours <= 0 {
		return resolveCustomerJWTExpireHours(cfg)
	}
	return cfg.RememberMeExpireHours
}

func resolveNameFromEmail(email string) string {
	parts := strings.SplitN(email, "@", 2)
	if len(parts) == 2 && strings.TrimSpace(parts[0]) != "" {
		return parts[0]
	}
	return email
}

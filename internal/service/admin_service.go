package service

import (
	"context"
	"strings"
	"time"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/cache"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/constants"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/models"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/repository"
)

// AdminService manages back-office accounts and customer moderation.
type AdminService struct {
	adminRepo    repository.AdminRepository
	customerRepo repository.CustomerRepository
	authService  *AuthService
}

// NewAdminService creates an admin service.
func NewAdminService(adminRepo repository.AdminRepository, customerRepo repository.CustomerRepository, authService *AuthService) *AdminService {
	return &AdminService{
		adminRepo:    adminRepo,
		customerRepo: customerRepo,
		authService:  authService,
	}
}

// CreateAdminInput is the create-admin request.
type CreateAdminInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// ListAdmins returns all back-office accounts.
func (s *AdminService) ListAdmins() ([]models.Admin, error) {
	return s.adminRepo.List()
}

// CreateAdmin creates a back-office account.
func (s *AdminService) CreateAdmin(input CreateAdminInput) (*models.Admin, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrNotFound
	}
	existing, err := s.adminRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAdminExists
	}
	if err := s.authService.ValidatePassword(input.Password); err != nil {
		return nil, err
	}
	hashed, err := s.authService.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	admin := models.Admin{
		Username:     username,
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: hashed,
		Role:         resolveAdminRole(input.Role),
		CreatedAt:    time.Now(),
	}
	if err := s.adminRepo.Create(&admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

// SetAdminRole changes an account's role. The last full admin cannot be
// demoted.
func (s *AdminService) SetAdminRole(adminID uint, role string) (*models.Admin, error) {
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrAdminNotFound
	}
	target := resolveAdminRole(role)
	if admin.Role == constants.AdminRoleAdmin && target != constants.AdminRoleAdmin {
		last, err := s.isLastFullAdmin(admin.ID)
		if err != nil {
			return nil, err
		}
		if last {
			return nil, ErrAdminLastAdmin
		}
	}

	admin.Role = target
	if err := s.adminRepo.Update(admin); err != nil {
		return nil, err
	}
	_ = cache.SetAdminAuthState(context.Background(), cache.BuildAdminAuthState(admin))
	return admin, nil
}

// DeleteAdmin removes a back-office account. The last full admin stays.
func (s *AdminService) DeleteAdmin(adminID uint) error {
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrAdminNotFound
	}
	if admin.Role == constants.AdminRoleAdmin {
		last, err := s.isLastFullAdmin(admin.ID)
		if err != nil {
			return err
		}
		if last {
			return ErrAdminLastAdmin
		}
	}
	if err := s.adminRepo.Delete(adminID); err != nil {
		return err
	}
	_ = cache.DelAdminAuthState(context.Background(), adminID)
	return nil
}

func (s *AdminService) isLastFullAdmin(adminID uint) (bool, error) {
	admins, err := s.adminRepo.List()
	if err != nil {
		return false, err
	}
	for _, a := range admins {
		if a.ID != adminID && a.Role == constants.AdminRoleAdmin {
			return false, nil
		}
	}
	return true, nil
}

// ListCustomers returns the customer directory.
func (s *AdminService) ListCustomers(filter repository.CustomerListFilter) ([]models.Customer, int64, error) {
	return s.customerRepo.List(filter)
}

// SetCustomerStatus enables or disables a storefront account. Disabling
// revokes issued tokens.
func (s *AdminService) SetCustomerStatus(customerID uint, status string) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrNotFound
	}

	target := constants.CustomerStatusActive
	if strings.EqualFold(strings.TrimSpace(status), constants.CustomerStatusDisabled) {
		target = constants.CustomerStatusDisabled
	}
	if customer.Status == target {
		return customer, nil
	}

	now := time.Now()
	customer.Status = target
	customer.UpdatedAt = now
	if target == constants.CustomerStatusDisabled {
		customer.TokenVersion++
		customer.TokenInvalidBefore = &now
	}
	if err := s.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	_ = cache.SetCustomerAuthState(context.Background(), cache.BuildCustomerAuthState(customer))
	return customer, nil
}

func resolveAdminRole(role string) string {
	if strings.EqualFold(strings.TrimSpace(role), constants.AdminRoleAdmin) {
		return constants.AdminRoleAdmin
	}
	return constants.AdminRoleSupport
}

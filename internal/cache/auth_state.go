package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// CustomerAuthState is the server-side snapshot consulted on every
// authenticated storefront request. token_invalid_before is a Unix
// second timestamp, 0 when unset.
type CustomerAuthState struct {
	CustomerID         uint   `json:"customer_id"`
	Status             string `json:"status"`
	TokenVersion       uint64 `json:"token_version"`
	TokenInvalidBefore int64  `json:"token_invalid_before"`
	UpdatedAt          int64  `json:"updated_at"`
}

// AdminAuthState is the back-office counterpart of CustomerAuthState.
type AdminAuthState struct {
	AdminID            uint   `json:"admin_id"`
	Username           string `json:"username"`
	TokenVersion       uint64 `json:"token_version"`
	TokenInvalidBefore int64  `json:"token_invalid_before"`
	Role               string `json:"role"`
	UpdatedAt          int64  `json:"updated_at"`
}

func customerAuthStateKey(customerID uint) string {
	return fmt.Sprintf("auth:customer:%d", customerID)
}

func adminAuthStateKey(adminID uint) string {
	return fmt.Sprintf("auth:admin:%d", adminID)
}

// BuildCustomerAuthState builds a snapshot from the customer record.
func BuildCustomerAuthState(customer *models.Customer) *CustomerAuthState {
	if customer == nil {
		return nil
	}
	state := &CustomerAuthState{
		CustomerID:   customer.ID,
		Status:       customer.Status,
		TokenVersion: customer.TokenVersion,
		UpdatedAt:    time.Now().Unix(),
	}
	if customer.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = customer.TokenInvalidBefore.Unix()
	}
	return state
}

// BuildAdminAuthState builds a snapshot from the admin record.
func BuildAdminAuthState(admin *models.Admin) *AdminAuthState {
	if admin == nil {
		return nil
	}
	state := &AdminAuthState{
		AdminID:      admin.ID,
		Username:     admin.Username,
		TokenVersion: admin.TokenVersion,
		Role:         admin.Role,
		UpdatedAt:    time.Now().Unix(),
	}
	if admin.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = admin.TokenInvalidBefore.Unix()
	}
	return state
}

// GetCustomerAuthState fetches a customer snapshot from cache.
func GetCustomerAuthState(ctx context.Context, customerID uint) (*CustomerAuthState, bool, error) {
	if customerID == 0 {
		return nil, false, nil
	}
	var state CustomerAuthState
	hit, err := GetJSON(ctx, customerAuthStateKey(customerID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetCustomerAuthState stores a customer snapshot.
func SetCustomerAuthState(ctx context.Context, state *CustomerAuthState) error {
	if state == nil || state.CustomerID == 0 {
		return nil
	}
	return SetJSON(ctx, customerAuthStateKey(state.CustomerID), state, authStateCacheTTL)
}

// DelCustomerAuthState evicts a customer snapshot.
func DelCustomerAuthState(ctx context.Context, customerID uint) error {
	if customerID == 0 {
		return nil
	}
	return Del(ctx, customerAuthStateKey(customerID))
}

// GetAdminAuthState fetches an admin snapshot from cache.
func GetAdminAuthState(ctx context.Context, adminID uint) (*AdminAuthState, bool, error) {
	if adminID == 0 {
		return nil, false, nil
	}
	var state AdminAuthState
	hit, err := GetJSON(ctx, adminAuthStateKey(adminID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetAdminAuthState stores an admin snapshot.
func SetAdminAuthState(ctx context.Context, state *AdminAuthState) error {
	if state == nil || state.AdminID == 0 {
		return nil
	}
	return SetJSON(ctx, adminAuthStateKey(state.AdminID), state, authStateCacheTTL)
}

// DelAdminAuthState evicts an admin snapshot.
func DelAdminAuthState(ctx context.Context, adminID uint) error {
	if adminID == 0 {
		return nil
	}
	return Del(ctx, adminAuthStateKey(adminID))
}

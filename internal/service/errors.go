package service

import "errors"

// Sentinel errors returned by the service layer. Handlers map these onto
// response codes; anything else surfaces as an internal error.
var (
	ErrNotFound            = errors.New("record not found")
	ErrInvalidQuantity     = errors.New("quantity must be positive")
	ErrProductNotFound     = errors.New("product not found")
	ErrProductNotAvailable = errors.New("product not available")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrCartEmpty           = errors.New("cart is empty")

	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderFetchFailed   = errors.New("order fetch failed")
	ErrOrderUpdateFailed  = errors.New("order update failed")
	ErrOrderStatusInvalid = errors.New("order status transition not allowed")
	ErrInvoiceExhausted   = errors.New("invoice numbers exhausted for today")

	ErrIntentNotFound          = errors.New("payment intent not found")
	ErrIntentExpired           = errors.New("payment intent expired")
	ErrOrderNotPayable         = errors.New("order is not awaiting payment")
	ErrDuplicatePayment        = errors.New("order already paid")
	ErrPaymentNotConfirmed     = errors.New("gateway did not confirm the payment")
	ErrPaymentAmountMismatch   = errors.New("paid amount does not match order total")
	ErrPaymentCurrencyMismatch = errors.New("paid currency does not match order currency")

	ErrInvalidEmail       = errors.New("invalid email address")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrWeakPassword       = errors.New("password too weak")
	ErrCustomerDisabled   = errors.New("customer account disabled")

	ErrCategoryExists  = errors.New("category name already exists")
	ErrCategoryInUse   = errors.New("category still has products")
	ErrBrandExists     = errors.New("brand already exists in category")
	ErrBrandInUse      = errors.New("brand still has products")
	ErrArtisanExists   = errors.New("artisan application already submitted")
	ErrArtisanReviewed = errors.New("artisan application already reviewed")
	ErrArtisanInvalid  = errors.New("artisan application incomplete")

	ErrAdminExists    = errors.New("admin username already taken")
	ErrAdminNotFound  = errors.New("admin not found")
	ErrAdminLastAdmin = errors.New("cannot remove the last admin")
)

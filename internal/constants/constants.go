package constants

// Order status constants
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// Payment intent status constants
const (
	PaymentIntentStatusInitiated = "initiated"
	PaymentIntentStatusSuccess   = "success"
	PaymentIntentStatusFailed    = "failed"
	PaymentIntentStatusAbandoned = "abandoned"
)

// Payment channel constants
const (
	PaymentChannelPaystack = "paystack"
)

// Paystack transaction status constants
const (
	PaystackStatusSuccess   = "success"
	PaystackStatusFailed    = "failed"
	PaystackStatusAbandoned = "abandoned"
)

// Currency constants
const (
	CurrencyGHS = "GHS"
)

// Product shelf status constants
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// Customer status constants
const (
	CustomerStatusActive   = "active"
	CustomerStatusDisabled = "disabled"
)

// Admin role constants
const (
	AdminRoleAdmin   = "admin"
	AdminRoleSupport = "support"
)

// Artisan verification status constants
const (
	ArtisanStatusPending  = "pending"
	ArtisanStatusVerified = "verified"
	ArtisanStatusRejected = "rejected"
)

// Artisan document kind constants
const (
	ArtisanDocumentKindID          = "national_id"
	ArtisanDocumentKindCertificate = "craft_certificate"
	ArtisanDocumentKindPortfolio   = "portfolio"
)

// Queue constants
const (
	QueueDefault            = "default"
	TaskOrderStatusEmail    = "order:status_email"
	TaskPaymentIntentExpire = "payment_intent:timeout_expire"
)

// Cache default constants
const (
	RedisPrefixDefault = "gt"
)

package queue

import (
	"encoding/json"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderStatusEmail notifies a customer of an order status change.
	TaskOrderStatusEmail = constants.TaskOrderStatusEmail
	// TaskPaymentIntentExpire marks a stale gateway attempt abandoned.
	TaskPaymentIntentExpire = constants.TaskPaymentIntentExpire
)

// OrderStatusEmailPayload is the order status mail payload.
type OrderStatusEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// PaymentIntentExpirePayload is the intent expiry payload.
type PaymentIntentExpirePayload struct {
	Reference string `json:"reference"`
}

// NewOrderStatusEmailTask builds an order status mail task.
func NewOrderStatusEmailTask(payload OrderStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusEmail, body), nil
}

// NewPaymentIntentExpireTask builds an intent expiry task.
func NewPaymentIntentExpireTask(payload PaymentIntentExpirePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPaymentIntentExpire, body), nil
}

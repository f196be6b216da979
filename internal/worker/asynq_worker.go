package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/logger"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/provider"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/queue"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer handles queued tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates the task consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register binds the task handlers.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderStatusEmail, c.handleOrderStatusEmail)
	mux.HandleFunc(queue.TaskPaymentIntentExpire, c.handlePaymentIntentExpire)
}

// handleOrderStatusEmail resolves the order's receiver and logs the
// notification. SMTP delivery is intentionally not wired; the log line is
// the delivery record.
func (c *Consumer) handleOrderStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_status_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_status_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_status_email_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_status_email_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	receiverEmail, err := c.OrderRepo.ResolveReceiverEmailByOrderID(order.ID)
	if err != nil {
		logger.Warnw("worker_order_status_email_resolve_receiver_failed", "order_id", order.ID, "error", err)
		return err
	}
	receiverEmail = strings.TrimSpace(receiverEmail)
	if receiverEmail == "" {
		logger.Debugw("worker_order_status_email_skip_empty_receiver", "order_id", order.ID, "invoice_no", order.InvoiceNo)
		return nil
	}
	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = order.Status
	}
	logger.Infow("worker_order_status_email_delivered",
		"order_id", order.ID,
		"invoice_no", order.InvoiceNo,
		"receiver_email", receiverEmail,
		"status", status,
		"amount", order.TotalAmount.String(),
		"currency", order.Currency,
	)
	return nil
}

// handlePaymentIntentExpire settles a gateway attempt whose checkout window
// has passed.
func (c *Consumer) handlePaymentIntentExpire(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_payment_intent_expire_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.PaymentIntentExpirePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_payment_intent_expire_unmarshal_failed", "error", err)
		return err
	}
	reference := strings.TrimSpace(payload.Reference)
	if reference == "" {
		logger.Debugw("worker_payment_intent_expire_skip_invalid_payload", "reference", payload.Reference)
		return nil
	}
	if c.PaymentService == nil {
		logger.Warnw("worker_payment_intent_expire_skip_payment_service_nil", "reference", reference)
		return nil
	}
	if err := c.PaymentService.ExpireIntent(ctx, reference); err != nil {
		if errors.Is(err, service.ErrIntentNotFound) {
			logger.Debugw("worker_payment_intent_expire_skip_intent_not_found", "reference", reference)
			return nil
		}
		logger.Warnw("worker_payment_intent_expire_failed", "reference", reference, "error", err)
		return err
	}
	return nil
}

package service

import (
	"strings"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/queue"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/repository"
)

// enqueueOrderStatusEmailTaskIfEligible enqueues a status email unless the
// order has no usable receiver address. A failed lookup still enqueues; the
// worker re-resolves the address before sending.
func enqueueOrderStatusEmailTaskIfEligible(orderRepo repository.OrderRepository, queueClient *queue.Client, orderID uint, status string) (skipped bool, err error) {
	if queueClient == nil || orderID == 0 {
		return true, nil
	}
	if orderRepo != nil {
		receiverEmail, lookupErr := orderRepo.ResolveReceiverEmailByOrderID(orderID)
		if lookupErr == nil && strings.TrimSpace(receiverEmail) == "" {
			return true, nil
		}
	}

	if err := queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: orderID,
		Status:  strings.TrimSpace(status),
	}); err != nil {
		return false, err
	}
	return false, nil
}

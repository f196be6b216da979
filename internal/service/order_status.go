package service

import (
	"strings"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/constants"
)

// allowedTransitions is the order status machine. Delivered and Cancelled
// are terminal.
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusProcessing: true,
		constants.OrderStatusCancelled:  true,
	},
	constants.OrderStatusProcessing: {
		constants.OrderStatusShipped:   true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusDelivered: true,
	},
}

func isTransitionAllowed(from, to string) bool {
	targets, ok := allowedTransitions[normalizeOrderStatus(from)]
	if !ok {
		return false
	}
	return targets[normalizeOrderStatus(to)]
}

func isTerminalStatus(status string) bool {
	switch normalizeOrderStatus(status) {
	case constants.OrderStatusDelivered, constants.OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// normalizeOrderStatus maps case-insensitive input onto the canonical
// status constants; unknown values come back trimmed as-is.
func normalizeOrderStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "pending":
		return constants.OrderStatusPending
	case "processing":
		return constants.OrderStatusProcessing
	case "shipped":
		return constants.OrderStatusShipped
	case "delivered":
		return constants.OrderStatusDelivered
	case "cancelled", "canceled":
		return constants.OrderStatusCancelled
	default:
		return strings.TrimSpace(status)
	}
}

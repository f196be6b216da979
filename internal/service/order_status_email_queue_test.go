package service

import (
	"errors"
	"testing"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/constants"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/queue"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/repository"
)

type orderStatusEmailOrderRepoStub struct {
	repository.OrderRepository
	receiver string
	err      error
}

func (s *orderStatusEmailOrderRepoStub) ResolveReceiverEmailByOrderID(orderID uint) (string, error) {
	return s.receiver, s.err
}

func newDisabledQueueClient(t *testing.T) *queue.Client {
	t.Helper()
	client, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func TestEnqueueOrderStatusEmailSkipsNilClient(t *testing.T) {
	repo := &orderStatusEmailOrderRepoStub{receiver: "ama@example.com"}
	skipped, err := enqueueOrderStatusEmailTaskIfEligible(repo, nil, 1, constants.OrderStatusProcessing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !skipped {
		t.Fatalf("expected skip with nil queue client")
	}
}

func TestEnqueueOrderStatusEmailSkipsZeroOrder(t *testing.T) {
	repo := &orderStatusEmailOrderRepoStub{receiver: "ama@example.com"}
	skipped, err := enqueueOrderStatusEmailTaskIfEligible(repo, newDisabledQueueClient(t), 0, constants.OrderStatusProcessing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !skipped {
		t.Fatalf("expected skip for order id 0")
	}
}

func TestEnqueueOrderStatusEmailSkipsEmptyReceiver(t *testing.T) {
	repo := &orderStatusEmailOrderRepoStub{receiver: "   "}
	skipped, err := enqueueOrderStatusEmailTaskIfEligible(repo, newDisabledQueueClient(t), 7, constants.OrderStatusShipped)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !skipped {
		t.Fatalf("expected skip when the order has no receiver address")
	}
}

func TestEnqueueOrderStatusEmailEnqueuesWithReceiver(t *testing.T) {
	repo := &orderStatusEmailOrderRepoStub{receiver: "kofi@example.com"}
	skipped, err := enqueueOrderStatusEmailTaskIfEligible(repo, newDisabledQueueClient(t), 7, constants.OrderStatusShipped)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skipped {
		t.Fatalf("expected enqueue when a receiver exists")
	}
}

func TestEnqueueOrderStatusEmailEnqueuesOnLookupFailure(t *testing.T) {
	// The worker re-resolves the address, so a failed lookup must not drop
	// the task.
	repo := &orderStatusEmailOrderRepoStub{err: errors.New("db gone")}
	skipped, err := enqueueOrderStatusEmailTaskIfEligible(repo, newDisabledQueueClient(t), 7, constants.OrderStatusDelivered)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skipped {
		t.Fatalf("expected enqueue despite lookup failure")
	}
}

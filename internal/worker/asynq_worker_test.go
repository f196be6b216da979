package worker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/constants"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/models"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/payment/paystack"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/provider"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/queue"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/repository"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupConsumerTest(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:worker_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.Order{}, &models.OrderItem{}, &models.Payment{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	container := &provider.Container{
		OrderRepo: repository.NewOrderRepository(db),
	}
	return NewConsumer(container), db
}

func wirePaymentService(t *testing.T, consumer *Consumer, db *gorm.DB) {
	t.Helper()
	cfg := &paystack.Config{
		SecretKey:       "sk_test_secret",
		Currency:        constants.CurrencyGHS,
		ReferencePrefix: "GT",
	}
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	t.Cleanup(func() {
		_ = queueClient.Close()
	})
	consumer.PaymentService = service.NewPaymentService(
		repository.NewPaymentRepository(db),
		repository.NewPaymentIntentRepository(db),
		repository.NewOrderRepository(db),
		repository.NewCustomerRepository(db),
		cfg,
		queueClient,
		30,
	)
}

func TestHandleOrderStatusEmailResolvesReceiver(t *testing.T) {
	consumer, db := setupConsumerTest(t)

	customer := models.Customer{
		Name:         "ama",
		Email:        "ama@example.com",
		PasswordHash: "hash",
		Status:       constants.CustomerStatusActive,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	order := models.Order{
		InvoiceNo:   202601020001,
		CustomerID:  customer.ID,
		Status:      constants.OrderStatusProcessing,
		Currency:    constants.CurrencyGHS,
		TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(150)),
		OrderDate:   time.Now(),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	task, err := queue.NewOrderStatusEmailTask(queue.OrderStatusEmailPayload{
		OrderID: order.ID,
		Status:  constants.OrderStatusProcessing,
	})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleOrderStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("handle failed: %v", err)
	}
}

func TestHandleOrderStatusEmailSkipsMissingOrder(t *testing.T) {
	consumer, _ := setupConsumerTest(t)

	task, err := queue.NewOrderStatusEmailTask(queue.OrderStatusEmailPayload{
		OrderID: 9999,
		Status:  constants.OrderStatusShipped,
	})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	// A vanished order must not keep the task retrying.
	if err := consumer.handleOrderStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("expected nil for missing order, got %v", err)
	}
}

func TestHandlePaymentIntentExpireSkipsUnknownReference(t *testing.T) {
	consumer, db := setupConsumerTest(t)
	if err := db.AutoMigrate(&models.Payment{}, &models.PaymentIntent{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	wirePaymentService(t, consumer, db)

	task, err := queue.NewPaymentIntentExpireTask(queue.PaymentIntentExpirePayload{Reference: "GT-0-000000"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handlePaymentIntentExpire(context.Background(), task); err != nil {
		t.Fatalf("expected nil for unknown reference, got %v", err)
	}
}

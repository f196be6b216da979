package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/constants"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/models"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/payment/paystack"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/queue"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupPaymentServiceTest(t *testing.T, gatewayURL string) (*PaymentService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:payment_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Customer{}, &models.Order{}, &models.OrderItem{},
		&models.Payment{}, &models.PaymentIntent{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	t.Cleanup(func() {
		_ = queueClient.Close()
	})

	cfg := &paystack.Config{
		SecretKey:       "sk_test_secret",
		BaseURL:         gatewayURL,
		Currency:        constants.CurrencyGHS,
		ReferencePrefix: "GT",
	}
	svc := NewPaymentService(
		repository.NewPaymentRepository(db),
		repository.NewPaymentIntentRepository(db),
		repository.NewOrderRepository(db),
		repository.NewCustomerRepository(db),
		cfg,
		queueClient,
		30,
	)
	return svc, db
}

func createPaymentTestOrder(t *testing.T, db *gorm.DB, total string) (models.Customer, models.Order) {
	t.Helper()

	customer := models.Customer{
		Name:         "payer",
		Email:        fmt.Sprintf("payer_%d@example.com", time.Now().UnixNano()),
		PasswordHash: "hash",
		Status:       constants.CustomerStatusActive,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	order := models.Order{
		InvoiceNo:   invoiceBase(time.Now()) + int64(customer.ID),
		CustomerID:  customer.ID,
		Status:      constants.OrderStatusPending,
		Currency:    constants.CurrencyGHS,
		TotalAmount: models.NewMoneyFromDecimal(decimal.RequireFromString(total)),
		OrderDate:   time.Now(),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return customer, order
}

// initializeHandler answers /transaction/initialize the way the live gateway
// does, echoing the caller's reference.
func initializeHandler(t *testing.T, hits *int) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transaction/initialize" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if hits != nil {
			*hits++
		}
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request failed: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": true,
			"data": map[string]interface{}{
				"authorization_url": "https://checkout.paystack.com/test",
				"access_code":       "test",
				"reference":         body["reference"],
			},
		})
	}
}

func verifyHandler(t *testing.T, status string, amountPesewas int64, currency string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/transaction/verify/") {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": true,
			"data": map[string]interface{}{
				"status":   status,
				"amount":   amountPesewas,
				"currency": currency,
				"channel":  "mobile_money",
				"paid_at":  "2026-08-30T10:30:00Z",
			},
		})
	}
}

func TestInitiatePaymentCreatesIntent(t *testing.T) {
	server := httptest.NewServer(initializeHandler(t, nil))
	defer server.Close()
	svc, db := setupPaymentServiceTest(t, server.URL)
	_, order := createPaymentTestOrder(t, db, "350.00")

	result, err := svc.InitiatePayment(context.Background(), order.ID, order.CustomerID)
	if err != nil {
		t.Fatalf("initiate failed: %v", err)
	}
	if !strings.HasPrefix(result.Reference, "GT-") {
		t.Fatalf("unexpected reference: %s", result.Reference)
	}
	if result.AuthorizationURL == "" {
		t.Fatalf("expected authorization url")
	}
	if result.Amount.String() != "350.00" {
		t.Fatalf("expected amount 350.00, got %s", result.Amount.String())
	}

	var intent models.PaymentIntent
	if err := db.Where("reference = ?", result.Reference).First(&intent).Error; err != nil {
		t.Fatalf("load intent failed: %v", err)
	}
	if intent.Status != constants.PaymentIntentStatusInitiated {
		t.Fatalf("unexpected intent status: %s", intent.Status)
	}
	if intent.ExpiresAt == nil || !intent.ExpiresAt.After(time.Now()) {
		t.Fatalf("expected a future expiry, got %v", intent.ExpiresAt)
	}
}

func TestInitiatePaymentReusesOpenIntent(t *testing.T) {
	hits := 0
	server := httptest.NewServer(initializeHandler(t, &hits))
	defer server.Close()
	svc, db := setupPaymentServiceTest(t, server.URL)
	_, order := createPaymentTestOrder(t, db, "120.00")

	first, err := svc.InitiatePayment(context.Background(), order.ID, order.CustomerID)
	if err != nil {
		t.Fatalf("first initiate failed: %v", err)
	}
	second, err := svc.InitiatePayment(context.Background(), order.ID, order.CustomerID)
	if err != nil {
		t.Fatalf("second initiate failed: %v", err)
	}
	if first.Reference != second.Reference {
		t.Fatalf("expected reuse of %s, got %s", first.Reference, second.Reference)
	}
	if hits != 1 {
		t.Fatalf("expected gateway hit once, got %d", hits)
	}
	var count int64
	if err := db.Model(&models.PaymentIntent{}).Where("order_id = ?", order.ID).Count(&count).Error; err != nil {
		t.Fatalf("count intents failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single intent row, got %d", count)
	}
}

func TestInitiatePaymentRejectsNonPendingOrder(t *testing.T) {
	server := httptest.NewServer(initializeHandler(t, nil))
	defer server.Close()
	svc, db := setupPaymentServiceTest(t, server.URL)
	_, order := createPaymentTestOrder(t, db, "80.00")

	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", constants.OrderStatusCancelled).Error; err != nil {
		t.Fatalf("cancel order failed: %v", err)
	}
	if _, err := svc.InitiatePayment(context.Background(), order.ID, order.CustomerID); !errors.Is(err, ErrOrderNotPayable) {
		t.Fatalf("expected ErrOrderNotPayable, got %v", err)
	}
}

func TestInitiatePaymentRejectsPaidOrder(t *testing.T) {
	server := httptest.NewServer(initializeHandler(t, nil))
	defer server.Close()
	svc, db := setupPaymentServiceTest(t, server.URL)
	_, order := createPaymentTestOrder(t, db, "80.00")

	paid := models.Payment{
		OrderID:     order.ID,
		CustomerID:  order.CustomerID,
		Reference:   "GT-manual-000001",
		Channel:     constants.PaymentChannelPaystack,
		Amount:      order.TotalAmount,
		Currency:    order.Currency,
		PaymentDate: time.Now(),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := db.Create(&paid).Error; err != nil {
		t.Fatalf("seed payment failed: %v", err)
	}
	if _, err := svc.InitiatePayment(context.Background(), order.ID, order.CustomerID); !errors.Is(err, ErrDuplicatePayment) {
		t.Fatalf("expected ErrDuplicatePayment, got %v", err)
	}
}

func TestConfirmPaymentSuccess(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/transaction/initialize", initializeHandler(t, nil))
	mux.HandleFunc("/transaction/verify/", verifyHandler(t, "success", 35000, "GHS"))
	server := httptest.NewServer(mux)
	defer server.Close()
	svc, db := setupPaymentServiceTest(t, server.URL)
	_, order := createPaymentTestOrder(t, db, "350.00")

	initiated, err := svc.InitiatePayment(context.Background(), order.ID, order.CustomerID)
	if err != nil {
		t.Fatalf("initiate failed: %v", err)
	}

	payment, err := svc.ConfirmPayment(context.Background(), initiated.Reference)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if payment == nil || payment.Reference != initiated.Reference {
		t.Fatalf("unexpected payment: %+v", payment)
	}
	if payment.Amount.String() != "350.00" {
		t.Fatalf("expected recorded amount 350.00, got %s", payment.Amount.String())
	}

	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusProcessing {
		t.Fatalf("expected order Processing, got %s", reloaded.Status)
	}
	if reloaded.PaidAt == nil {
		t.Fatalf("expected paid_at set")
	}

	var intent models.PaymentIntent
	if err := db.Where("reference = ?", initiated.Reference).First(&intent).Error; err != nil {
		t.Fatalf("load intent failed: %v", err)
	}
	if intent.Status != constants.PaymentIntentStatusSuccess {
		t.Fatalf("expected intent success, got %s", intent.Status)
	}
	if intent.VerifiedAt == nil {
		t.Fatalf("expected verified_at set")
	}

	// Calling again is a no-op returning the same ledger row.
	again, err := svc.ConfirmPayment(context.Background(), initiated.Reference)
	if err != nil {
		t.Fatalf("repeat confirm failed: %v", err)
	}
	if again.ID != payment.ID {
		t.Fatalf("expected same payment row, got %d and %d", payment.ID, again.ID)
	}
	var ledgerCount int64
	if err := db.Model(&models.Payment{}).Where("order_id = ?", order.ID).Count(&ledgerCount).Error; err != nil {
		t.Fatalf("count payments failed: %v", err)
	}
	if ledgerCount != 1 {
		t.Fatalf("expected exactly one payment row, got %d", ledgerCount)
	}
}

func TestConfirmPaymentAmountMismatch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/transaction/initialize", initializeHandler(t, nil))
	mux.HandleFunc("/transaction/verify/", verifyHandler(t, "success", 34000, "GHS"))
	server := httptest.NewServer(mux)
	defer server.Close()
	svc, db := setupPaymentServiceTest(t, server.URL)
	_, order := createPaymentTestOrder(t, db, "350.00")

	initiated, err := svc.InitiatePayment(context.Background(), order.ID, order.CustomerID)
	if err != nil {
		t.Fatalf("initiate failed: %v", err)
	}
	if _, err := svc.ConfirmPayment(context.Background(), initiated.Reference); !errors.Is(err, ErrPaymentAmountMismatch) {
		t.Fatalf("expected ErrPaymentAmountMismatch, got %v", err)
	}

	var intent models.PaymentIntent
	if err := db.Where("reference = ?", initiated.Reference).First(&intent).Error; err != nil {
		t.Fatalf("load intent failed: %v", err)
	}
	if intent.Status != constants.PaymentIntentStatusFailed {
		t.Fatalf("expected intent failed, got %s", intent.Status)
	}
	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusPending {
		t.Fatalf("expected order untouched, got %s", reloaded.Status)
	}
	var ledgerCount int64
	if err := db.Model(&models.Payment{}).Where("order_id = ?", order.ID).Count(&ledgerCount).Error; err != nil {
		t.Fatalf("count payments failed: %v", err)
	}
	if ledgerCount != 0 {
		t.Fatalf("expected no payment row, got %d", ledgerCount)
	}
}

func TestConfirmPaymentCurrencyMismatch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/transaction/initialize", initializeHandler(t, nil))
	mux.HandleFunc("/transaction/verify/", verifyHandler(t, "success", 35000, "NGN"))
	server := httptest.NewServer(mux)
	defer server.Close()
	svc, db := setupPaymentServiceTest(t, server.URL)
	_, order := createPaymentTestOrder(t, db, "350.00")

	initiated, err := svc.InitiatePayment(context.Background(), order.ID, order.CustomerID)
	if err != nil {
		t.Fatalf("initiate failed: %v", err)
	}
	if _, err := svc.ConfirmPayment(context.Background(), initiated.Reference); !errors.Is(err, ErrPaymentCurrencyMismatch) {
		t.Fatalf("expected ErrPaymentCurrencyMismatch, got %v", err)
	}
}

func TestConfirmPaymentGatewayFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/transaction/initialize", initializeHandler(t, nil))
	mux.HandleFunc("/transaction/verify/", verifyHandler(t, "failed", 35000, "GHS"))
	server := httptest.NewServer(mux)
	defer server.Close()
	svc, db := setupPaymentServiceTest(t, server.URL)
	_, order := createPaymentTestOrder(t, db, "350.00")

	initiated, err := svc.InitiatePayment(context.Background(), order.ID, order.CustomerID)
	if err != nil {
		t.Fatalf("initiate failed: %v", err)
	}
	if _, err := svc.ConfirmPayment(context.Background(), initiated.Reference); !errors.Is(err, ErrPaymentNotConfirmed) {
		t.Fatalf("expected ErrPaymentNotConfirmed, got %v", err)
	}

	var intent models.PaymentIntent
	if err := db.Where("reference = ?", initiated.Reference).First(&intent).Error; err != nil {
		t.Fatalf("load intent failed: %v", err)
	}
	if intent.Status != constants.PaymentIntentStatusFailed {
		t.Fatalf("expected intent failed, got %s", intent.Status)
	}
}

func TestConfirmPaymentUnknownReference(t *testing.T) {
	server := httptest.NewServer(initializeHandler(t, nil))
	defer server.Close()
	svc, _ := setupPaymentServiceTest(t, server.URL)

	if _, err := svc.ConfirmPayment(context.Background(), "GT-0-999999"); !errors.Is(err, ErrIntentNotFound) {
		t.Fatalf("expected ErrIntentNotFound, got %v", err)
	}
}

func TestExpireIntentAbandonsOverdueAttempt(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/transaction/initialize", initializeHandler(t, nil))
	mux.HandleFunc("/transaction/verify/", verifyHandler(t, "abandoned", 35000, "GHS"))
	server := httptest.NewServer(mux)
	defer server.Close()
	svc, db := setupPaymentServiceTest(t, server.URL)
	_, order := createPaymentTestOrder(t, db, "350.00")

	initiated, err := svc.InitiatePayment(context.Background(), order.ID, order.CustomerID)
	if err != nil {
		t.Fatalf("initiate failed: %v", err)
	}
	past := time.Now().Add(-time.Minute)
	if err := db.Model(&models.PaymentIntent{}).Where("reference = ?", initiated.Reference).
		Update("expires_at", past).Error; err != nil {
		t.Fatalf("backdate expiry failed: %v", err)
	}

	if err := svc.ExpireIntent(context.Background(), initiated.Reference); err != nil {
		t.Fatalf("expire failed: %v", err)
	}
	var intent models.PaymentIntent
	if err := db.Where("reference = ?", initiated.Reference).First(&intent).Error; err != nil {
		t.Fatalf("load intent failed: %v", err)
	}
	if intent.Status != constants.PaymentIntentStatusAbandoned {
		t.Fatalf("expected intent abandoned, got %s", intent.Status)
	}
}

func TestExpireIntentSkipsUnexpiredAttempt(t *testing.T) {
	server := httptest.NewServer(initializeHandler(t, nil))
	defer server.Close()
	svc, db := setupPaymentServiceTest(t, server.URL)
	_, order := createPaymentTestOrder(t, db, "350.00")

	initiated, err := svc.InitiatePayment(context.Background(), order.ID, order.CustomerID)
	if err != nil {
		t.Fatalf("initiate failed: %v", err)
	}
	if err := svc.ExpireIntent(context.Background(), initiated.Reference); err != nil {
		t.Fatalf("expire failed: %v", err)
	}
	var intent models.PaymentIntent
	if err := db.Where("reference = ?", initiated.Reference).First(&intent).Error; err != nil {
		t.Fatalf("load intent failed: %v", err)
	}
	if intent.Status != constants.PaymentIntentStatusInitiated {
		t.Fatalf("expected intent untouched, got %s", intent.Status)
	}
}

func TestExpireIntentRecordsLastMomentPayment(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/transaction/initialize", initializeHandler(t, nil))
	mux.HandleFunc("/transaction/verify/", verifyHandler(t, "success", 35000, "GHS"))
	server := httptest.NewServer(mux)
	defer server.Close()
	svc, db := setupPaymentServiceTest(t, server.URL)
	_, order := createPaymentTestOrder(t, db, "350.00")

	initiated, err := svc.InitiatePayment(context.Background(), order.ID, order.CustomerID)
	if err != nil {
		t.Fatalf("initiate failed: %v", err)
	}
	past := time.Now().Add(-time.Minute)
	if err := db.Model(&models.PaymentIntent{}).Where("reference = ?", initiated.Reference).
		Update("expires_at", past).Error; err != nil {
		t.Fatalf("backdate expiry failed: %v", err)
	}

	if err := svc.ExpireIntent(context.Background(), initiated.Reference); err != nil {
		t.Fatalf("expire failed: %v", err)
	}
	payment, err := svc.GetPaymentByOrder(order.ID)
	if err != nil {
		t.Fatalf("get payment failed: %v", err)
	}
	if payment == nil {
		t.Fatalf("expected the late payment to be recorded")
	}
	var intent models.PaymentIntent
	if err := db.Where("reference = ?", initiated.Reference).First(&intent).Error; err != nil {
		t.Fatalf("load intent failed: %v", err)
	}
	if intent.Status != constants.PaymentIntentStatusSuccess {
		t.Fatalf("expected intent success, got %s", intent.Status)
	}
}

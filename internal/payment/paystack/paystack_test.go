package paystack

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func testConfig(baseURL string) *Config {
	cfg := &Config{
		SecretKey:       "sk_test_secret",
		BaseURL:         baseURL,
		CallbackURL:     "https://shop.example.com/payment/callback",
		Currency:        "GHS",
		ReferencePrefix: "GT",
	}
	cfg.Normalize()
	return cfg
}

func TestToPesewas(t *testing.T) {
	cases := []struct {
		amount string
		want   int64
	}{
		{"130.00", 13000},
		{"10.005", 1001},
		{"0.01", 1},
		{"50.00", 5000},
		{"99.994", 9999},
	}
	for _, c := range cases {
		amount, err := decimal.NewFromString(c.amount)
		if err != nil {
			t.Fatalf("parse amount %s failed: %v", c.amount, err)
		}
		if got := ToPesewas(amount); got != c.want {
			t.Fatalf("ToPesewas(%s)=%d expected %d", c.amount, got, c.want)
		}
	}
}

func TestFromPesewas(t *testing.T) {
	if got := FromPesewas(13000); !got.Equal(decimal.RequireFromString("130")) {
		t.Fatalf("FromPesewas(13000)=%s expected 130", got)
	}
}

func TestNewReferenceFormat(t *testing.T) {
	ref := NewReference("GT")
	parts := strings.Split(ref, "-")
	if len(parts) != 3 {
		t.Fatalf("unexpected reference format: %s", ref)
	}
	if parts[0] != "GT" {
		t.Fatalf("expected GT prefix, got %s", parts[0])
	}
	if len(parts[2]) != 6 {
		t.Fatalf("expected 6-digit random suffix, got %s", parts[2])
	}
}

func TestInitializeTransactionSendsMinorUnits(t *testing.T) {
	var gotAmount int64
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transaction/initialize" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request failed: %v", err)
		}
		gotAmount = int64(body["amount"].(float64))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  true,
			"message": "Authorization URL created",
			"data": map[string]interface{}{
				"authorization_url": "https://checkout.paystack.com/abc123",
				"access_code":       "abc123",
				"reference":         body["reference"],
			},
		})
	}))
	defer server.Close()

	result, err := InitializeTransaction(context.Background(), testConfig(server.URL), InitializeInput{
		AmountGHS: decimal.RequireFromString("130.00"),
		Email:     "ama@example.com",
	})
	if err != nil {
		t.Fatalf("InitializeTransaction failed: %v", err)
	}
	if gotAmount != 13000 {
		t.Fatalf("expected 13000 pesewas on the wire, got %d", gotAmount)
	}
	if gotAuth != "Bearer sk_test_secret" {
		t.Fatalf("unexpected auth header: %s", gotAuth)
	}
	if result.AuthorizationURL != "https://checkout.paystack.com/abc123" {
		t.Fatalf("unexpected authorization url: %s", result.AuthorizationURL)
	}
	if !strings.HasPrefix(result.Reference, "GT-") {
		t.Fatalf("expected generated reference, got %s", result.Reference)
	}
}

func TestInitializeTransactionKeepsSuppliedReference(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["reference"] != "GT-1-000001" {
			t.Fatalf("expected supplied reference, got %v", body["reference"])
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": true,
			"data": map[string]interface{}{
				"authorization_url": "https://checkout.paystack.com/xyz",
				"reference":         "GT-1-000001",
			},
		})
	}))
	defer server.Close()

	result, err := InitializeTransaction(context.Background(), testConfig(server.URL), InitializeInput{
		AmountGHS: decimal.RequireFromString("10.00"),
		Email:     "kofi@example.com",
		Reference: "GT-1-000001",
	})
	if err != nil {
		t.Fatalf("InitializeTransaction failed: %v", err)
	}
	if result.Reference != "GT-1-000001" {
		t.Fatalf("unexpected reference: %s", result.Reference)
	}
}

func TestInitializeTransactionRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  false,
			"message": "Invalid key",
		})
	}))
	defer server.Close()

	_, err := InitializeTransaction(context.Background(), testConfig(server.URL), InitializeInput{
		AmountGHS: decimal.RequireFromString("10.00"),
		Email:     "kofi@example.com",
	})
	if !errors.Is(err, ErrGatewayRejected) {
		t.Fatalf("expected ErrGatewayRejected, got %v", err)
	}
}

func TestInitializeTransactionRetriesTransientFailure(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": true,
			"data": map[string]interface{}{
				"authorization_url": "https://checkout.paystack.com/retry",
				"reference":         "GT-2-000002",
			},
		})
	}))
	defer server.Close()

	result, err := InitializeTransaction(context.Background(), testConfig(server.URL), InitializeInput{
		AmountGHS: decimal.RequireFromString("25.00"),
		Email:     "esi@example.com",
	})
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected exactly one retry, got %d attempts", attempts)
	}
	if result.AuthorizationURL == "" {
		t.Fatalf("expected authorization url after retry")
	}
}

func TestInitializeTransactionNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := InitializeTransaction(context.Background(), testConfig(server.URL), InitializeInput{
		AmountGHS: decimal.RequireFromString("10.00"),
		Email:     "kofi@example.com",
	})
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestVerifyTransactionSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transaction/verify/GT-3-000003" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": true,
			"data": map[string]interface{}{
				"status":   "success",
				"amount":   13000,
				"currency": "GHS",
				"channel":  "mobile_money",
				"paid_at":  "2025-03-14T10:30:00Z",
			},
		})
	}))
	defer server.Close()

	result, err := VerifyTransaction(context.Background(), testConfig(server.URL), "GT-3-000003")
	if err != nil {
		t.Fatalf("VerifyTransaction failed: %v", err)
	}
	if result.Status != StatusSuccess {
		t.Fatalf("unexpected status: %s", result.Status)
	}
	if !result.AmountGHS.Equal(decimal.RequireFromString("130")) {
		t.Fatalf("expected amount 130 GHS, got %s", result.AmountGHS)
	}
	if result.Currency != "GHS" {
		t.Fatalf("unexpected currency: %s", result.Currency)
	}
	if result.PaidAt == nil {
		t.Fatalf("expected paid_at to be parsed")
	}
}

func TestVerifyTransactionNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  false,
			"message": "Transaction reference not found",
		})
	}))
	defer server.Close()

	_, err := VerifyTransaction(context.Background(), testConfig(server.URL), "GT-9-999999")
	if !errors.Is(err, ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := &Config{}
	cfg.Normalize()
	if err := cfg.Validate(); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid, got %v", err)
	}
	cfg.SecretKey = "sk_test"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

package paystack

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrConfigInvalid       = errors.New("paystack config invalid")
	ErrNetwork             = errors.New("paystack request failed")
	ErrResponseInvalid     = errors.New("paystack response invalid")
	ErrGatewayRejected     = errors.New("paystack rejected the transaction")
	ErrTransactionNotFound = errors.New("paystack transaction not found")
)

// Transaction status values reported by the gateway.
const (
	StatusSuccess   = "success"
	StatusFailed    = "failed"
	StatusAbandoned = "abandoned"
)

const (
	requestTimeout = 30 * time.Second
	retryBackoff   = 500 * time.Millisecond
)

// Config holds the gateway credentials and endpoints.
type Config struct {
	SecretKey       string `json:"secret_key"`
	BaseURL         string `json:"base_url"`     // e.g. https://api.paystack.co
	CallbackURL     string `json:"callback_url"` // redirect target after checkout
	Currency        string `json:"currency"`
	ReferencePrefix string `json:"reference_prefix"`
}

// Normalize trims fields and fills defaults.
func (c *Config) Normalize() {
	c.SecretKey = strings.TrimSpace(c.SecretKey)
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.CallbackURL = strings.TrimSpace(c.CallbackURL)
	c.Currency = strings.ToUpper(strings.TrimSpace(c.Currency))
	c.ReferencePrefix = strings.TrimSpace(c.ReferencePrefix)
	if c.BaseURL == "" {
		c.BaseURL = "https://api.paystack.co"
	}
	if c.Currency == "" {
		c.Currency = "GHS"
	}
	if c.ReferencePrefix == "" {
		c.ReferencePrefix = "GT"
	}
}

// Validate checks that the config can reach the gateway.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(c.SecretKey) == "" {
		return fmt.Errorf("%w: secret_key is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("%w: base_url is required", ErrConfigInvalid)
	}
	return nil
}

// InitializeInput is the input for InitializeTransaction.
type InitializeInput struct {
	AmountGHS decimal.Decimal
	Email     string
	Reference string // generated when empty
	Metadata  map[string]interface{}
}

// InitializeResult is the hosted checkout handle returned by the gateway.
type InitializeResult struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
	Raw              map[string]interface{}
}

// VerifyResult is the verified state of a transaction.
type VerifyResult struct {
	Status    string
	AmountGHS decimal.Decimal
	Currency  string
	Channel   string
	PaidAt    *time.Time
	Raw       map[string]interface{}
}

// ToPesewas converts a GHS amount to the gateway's integer minor units,
// rounding half up (10.005 becomes 1001).
func ToPesewas(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// FromPesewas converts minor units back to a GHS amount.
func FromPesewas(minor int64) decimal.Decimal {
	return decimal.NewFromInt(minor).Div(decimal.NewFromInt(100))
}

// NewReference builds a PREFIX-<timestamp>-<random> reference.
func NewReference(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "GT"
	}
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixNano(), randNumeric(6))
}

func randNumeric(n int) string {
	const digits = "0123456789"
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// fall back to a time-derived suffix; uniqueness is still enforced
		// by the reference column's unique index
		return fmt.Sprintf("%06d", time.Now().UnixNano()%1000000)
	}
	for i := range buf {
		buf[i] = digits[int(buf[i])%len(digits)]
	}
	return string(buf)
}

// InitializeTransaction creates a hosted checkout session. The amount is
// sent in pesewas. Transport failures are retried once with backoff.
func InitializeTransaction(ctx context.Context, cfg *Config, input InitializeInput) (*InitializeResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, fmt.Errorf("%w: email is required", ErrConfigInvalid)
	}
	if input.AmountGHS.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", ErrConfigInvalid)
	}

	reference := strings.TrimSpace(input.Reference)
	if reference == "" {
		reference = NewReference(cfg.ReferencePrefix)
	}

	params := map[string]interface{}{
		"amount":    ToPesewas(input.AmountGHS),
		"email":     strings.TrimSpace(input.Email),
		"reference": reference,
		"currency":  cfg.Currency,
	}
	if cfg.CallbackURL != "" {
		params["callback_url"] = cfg.CallbackURL
	}
	if len(input.Metadata) > 0 {
		params["metadata"] = input.Metadata
	}

	respBytes, err := doJSON(ctx, cfg, http.MethodPost, "/transaction/initialize", params)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Data    struct {
			AuthorizationURL string `json:"authorization_url"`
			AccessCode       string `json:"access_code"`
			Reference        string `json:"reference"`
		} `json:"data"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if !resp.Status {
		return nil, fmt.Errorf("%w: %s", ErrGatewayRejected, resp.Message)
	}
	if resp.Data.AuthorizationURL == "" {
		return nil, fmt.Errorf("%w: missing authorization_url", ErrResponseInvalid)
	}

	var raw map[string]interface{}
	_ = json.Unmarshal(respBytes, &raw)

	result := &InitializeResult{
		AuthorizationURL: resp.Data.AuthorizationURL,
		AccessCode:       resp.Data.AccessCode,
		Reference:        resp.Data.Reference,
		Raw:              raw,
	}
	if result.Reference == "" {
		result.Reference = reference
	}
	return result, nil
}

// VerifyTransaction asks the gateway for the settled state of a reference.
// The call is read-only and safe to repeat; ledger idempotence is enforced
// by the payment service, not here.
func VerifyTransaction(ctx context.Context, cfg *Config, reference string) (*VerifyResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, fmt.Errorf("%w: reference is required", ErrConfigInvalid)
	}

	respBytes, err := doJSON(ctx, cfg, http.MethodGet, "/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Data    struct {
			Status   string `json:"status"`
			Amount   int64  `json:"amount"`
			Currency string `json:"currency"`
			Channel  string `json:"channel"`
			PaidAt   string `json:"paid_at"`
		} `json:"data"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if !resp.Status {
		if strings.Contains(strings.ToLower(resp.Message), "not found") {
			return nil, fmt.Errorf("%w: %s", ErrTransactionNotFound, reference)
		}
		return nil, fmt.Errorf("%w: %s", ErrGatewayRejected, resp.Message)
	}

	var raw map[string]interface{}
	_ = json.Unmarshal(respBytes, &raw)

	result := &VerifyResult{
		Status:    strings.ToLower(strings.TrimSpace(resp.Data.Status)),
		AmountGHS: FromPesewas(resp.Data.Amount),
		Currency:  strings.ToUpper(strings.TrimSpace(resp.Data.Currency)),
		Channel:   resp.Data.Channel,
		Raw:       raw,
	}
	if resp.Data.PaidAt != "" {
		if t, err := time.Parse(time.RFC3339, resp.Data.PaidAt); err == nil {
			result.PaidAt = &t
		}
	}
	return result, nil
}

// doJSON issues one authenticated request, retrying once on transport
// failure. Non-2xx responses are returned for the caller to interpret;
// a second failure surfaces as ErrNetwork.
func doJSON(ctx context.Context, cfg *Config, method, path string, params map[string]interface{}) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", ErrNetwork, ctx.Err())
			case <-time.After(retryBackoff):
			}
		}
		body, err := requestOnce(ctx, cfg, method, path, params)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !isTransient(err) {
			break
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrNetwork, lastErr)
}

func requestOnce(ctx context.Context, cfg *Config, method, path string, params map[string]interface{}) ([]byte, error) {
	var reader io.Reader
	if params != nil {
		payload, err := json.Marshal(params)
		if err != nil {
			return nil, err
		}
		reader = strings.NewReader(string(payload))
	}

	req, err := http.NewRequestWithContext(ctx, method, cfg.BaseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+cfg.SecretKey)
	req.Header.Set("Accept", "application/json")
	if params != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: requestTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	// 4xx carries a JSON body with status=false; let the caller map it
	if resp.StatusCode >= 500 {
		return nil, &transientError{status: resp.StatusCode}
	}
	return body, nil
}

type transientError struct {
	status int
}

func (e *transientError) Error() string {
	return fmt.Sprintf("http status %d", e.status)
}

func isTransient(err error) bool {
	var te *transientError
	if errors.As(err, &te) {
		return true
	}
	// transport-level failures (refused, reset, timeout) are retryable
	return !errors.Is(err, context.Canceled)
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/constants"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/logger"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/models"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/payment/paystack"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/queue"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/repository"

	"gorm.io/gorm"
)

const defaultPaymentExpireMinutes = 30

// PaymentService owns gateway intents and the confirmed-payment ledger.
type PaymentService struct {
	paymentRepo   repository.PaymentRepository
	intentRepo    repository.PaymentIntentRepository
	orderRepo     repository.OrderRepository
	customerRepo  repository.CustomerRepository
	gatewayCfg    *paystack.Config
	queueClient   *queue.Client
	expireMinutes int
}

// NewPaymentService creates a payment service.
func NewPaymentService(paymentRepo repository.PaymentRepository, intentRepo repository.PaymentIntentRepository, orderRepo repository.OrderRepository, customerRepo repository.CustomerRepository, gatewayCfg *paystack.Config, queueClient *queue.Client, expireMinutes int) *PaymentService {
	if gatewayCfg != nil {
		gatewayCfg.Normalize()
	}
	if expireMinutes <= 0 {
		expireMinutes = defaultPaymentExpireMinutes
	}
	return &PaymentService{
		paymentRepo:   paymentRepo,
		intentRepo:    intentRepo,
		orderRepo:     orderRepo,
		customerRepo:  customerRepo,
		gatewayCfg:    gatewayCfg,
		queueClient:   queueClient,
		expireMinutes: expireMinutes,
	}
}

// InitiatePaymentResult is the hosted checkout handle handed to the client.
type InitiatePaymentResult struct {
	Reference        string       `json:"reference"`
	AuthorizationURL string       `json:"authorization_url"`
	Amount           models.Money `json:"amount"`
	Currency         string       `json:"currency"`
	ExpiresAt        time.Time    `json:"expires_at"`
}

// InitiatePayment opens (or reuses) a gateway intent for a pending order.
// An unexpired initiated intent is returned as-is so a double click never
// produces two checkout sessions.
func (s *PaymentService) InitiatePayment(ctx context.Context, orderID, customerID uint) (*InitiatePaymentResult, error) {
	if err := s.gatewayCfg.Validate(); err != nil {
		return nil, err
	}
	order, err := s.orderRepo.GetByIDAndCustomer(orderID, customerID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPending {
		return nil, ErrOrderNotPayable
	}
	existing, err := s.paymentRepo.GetByOrderID(order.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicatePayment
	}

	now := time.Now()
	if intent, err := s.intentRepo.GetLatestInitiatedByOrder(order.ID, now); err != nil {
		return nil, err
	} else if intent != nil {
		expiresAt := now
		if intent.ExpiresAt != nil {
			expiresAt = *intent.ExpiresAt
		}
		return &InitiatePaymentResult{
			Reference:        intent.Reference,
			AuthorizationURL: intent.AuthorizationURL,
			Amount:           intent.Amount,
			Currency:         intent.Currency,
			ExpiresAt:        expiresAt,
		}, nil
	}

	customer, err := s.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrNotFound
	}

	reference := paystack.NewReference(s.gatewayCfg.ReferencePrefix)
	result, err := paystack.InitializeTransaction(ctx, s.gatewayCfg, paystack.InitializeInput{
		AmountGHS: order.TotalAmount.Decimal,
		Email:     customer.Email,
		Reference: reference,
		Metadata: map[string]interface{}{
			"order_id":   order.ID,
			"invoice_no": order.InvoiceNo,
		},
	})
	if err != nil {
		return nil, err
	}

	expiresAt := now.Add(time.Duration(s.expireMinutes) * time.Minute)
	intent := &models.PaymentIntent{
		OrderID:          order.ID,
		CustomerID:       customerID,
		Reference:        result.Reference,
		Channel:          constants.PaymentChannelPaystack,
		Amount:           order.TotalAmount,
		Currency:         order.Currency,
		Status:           constants.PaymentIntentStatusInitiated,
		AuthorizationURL: result.AuthorizationURL,
		ProviderPayload:  models.JSON(result.Raw),
		ExpiresAt:        &expiresAt,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.intentRepo.Create(intent); err != nil {
		return nil, err
	}

	if s.queueClient != nil {
		delay := time.Until(expiresAt) + time.Minute
		if err := s.queueClient.EnqueuePaymentIntentExpire(queue.PaymentIntentExpirePayload{
			Reference: intent.Reference,
		}, delay); err != nil {
			logger.Warnw("payment_enqueue_intent_expire_failed",
				"reference", intent.Reference,
				"error", err,
			)
		}
	}

	return &InitiatePaymentResult{
		Reference:        intent.Reference,
		AuthorizationURL: intent.AuthorizationURL,
		Amount:           intent.Amount,
		Currency:         intent.Currency,
		ExpiresAt:        expiresAt,
	}, nil
}

// ConfirmPayment verifies a reference with the gateway and, on success,
// writes the payment ledger row and moves the order to Processing. Safe to
// call repeatedly: a reference already confirmed returns the recorded
// payment unchanged.
func (s *PaymentService) ConfirmPayment(ctx context.Context, reference string) (*models.Payment, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, ErrIntentNotFound
	}
	if err := s.gatewayCfg.Validate(); err != nil {
		return nil, err
	}

	probe, err := s.intentRepo.GetByReference(reference)
	if err != nil {
		return nil, err
	}
	if probe == nil {
		return nil, ErrIntentNotFound
	}
	if probe.Status == constants.PaymentIntentStatusSuccess {
		return s.paymentRepo.GetByOrderID(probe.OrderID)
	}

	verify, err := paystack.VerifyTransaction(ctx, s.gatewayCfg, reference)
	if err != nil {
		return nil, err
	}

	var payment *models.Payment
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		intentRepo := s.intentRepo.WithTx(tx)
		paymentRepo := s.paymentRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		intent, err := intentRepo.GetByReferenceForUpdate(reference)
		if err != nil {
			return err
		}
		if intent == nil {
			return ErrIntentNotFound
		}
		if intent.Status == constants.PaymentIntentStatusSuccess {
			existing, err := paymentRepo.GetByOrderID(intent.OrderID)
			if err != nil {
				return err
			}
			payment = existing
			return nil
		}

		now := time.Now()
		if verify.Status != paystack.StatusSuccess {
			intent.Status = constants.PaymentIntentStatusFailed
			if verify.Status == paystack.StatusAbandoned {
				intent.Status = constants.PaymentIntentStatusAbandoned
			}
			intent.ProviderPayload = models.JSON(verify.Raw)
			intent.VerifiedAt = &now
			intent.UpdatedAt = now
			if err := intentRepo.Update(intent); err != nil {
				return err
			}
			return ErrPaymentNotConfirmed
		}

		if !strings.EqualFold(verify.Currency, intent.Currency) {
			if err := markIntentFailed(intentRepo, intent, verify.Raw, now); err != nil {
				return err
			}
			return ErrPaymentCurrencyMismatch
		}
		if !verify.AmountGHS.Equal(intent.Amount.Decimal) {
			if err := markIntentFailed(intentRepo, intent, verify.Raw, now); err != nil {
				return err
			}
			return ErrPaymentAmountMismatch
		}

		existing, err := paymentRepo.GetByOrderID(intent.OrderID)
		if err != nil {
			return err
		}
		if existing != nil {
			payment = existing
			return nil
		}

		paidAt := now
		if verify.PaidAt != nil {
			paidAt = *verify.PaidAt
		}
		row := &models.Payment{
			OrderID:     intent.OrderID,
			CustomerID:  intent.CustomerID,
			Reference:   intent.Reference,
			Channel:     intent.Channel,
			Amount:      intent.Amount,
			Currency:    intent.Currency,
			PaymentDate: paidAt,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := paymentRepo.Create(row); err != nil {
			return err
		}

		order, err := orderRepo.GetByIDForUpdate(intent.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if order.Status == constants.OrderStatusPending {
			updates := map[string]interface{}{
				"paid_at":    paidAt,
				"updated_at": now,
			}
			if err := orderRepo.UpdateStatus(order.ID, constants.OrderStatusProcessing, updates); err != nil {
				return ErrOrderUpdateFailed
			}
		}

		intent.Status = constants.PaymentIntentStatusSuccess
		intent.ProviderPayload = models.JSON(verify.Raw)
		intent.VerifiedAt = &now
		intent.UpdatedAt = now
		if err := intentRepo.Update(intent); err != nil {
			return err
		}

		payment = row
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.queueClient != nil && payment != nil {
		if _, err := enqueueOrderStatusEmailTaskIfEligible(s.orderRepo, s.queueClient, payment.OrderID, constants.OrderStatusProcessing); err != nil {
			logger.Warnw("payment_enqueue_status_email_failed",
				"order_id", payment.OrderID,
				"reference", payment.Reference,
				"error", err,
			)
		}
	}
	return payment, nil
}

func markIntentFailed(intentRepo repository.PaymentIntentRepository, intent *models.PaymentIntent, raw map[string]interface{}, now time.Time) error {
	intent.Status = constants.PaymentIntentStatusFailed
	intent.ProviderPayload = models.JSON(raw)
	intent.VerifiedAt = &now
	intent.UpdatedAt = now
	return intentRepo.Update(intent)
}

// ExpireIntent settles an intent that outlived its checkout window. The
// gateway is consulted once so a payment completed at the last moment is
// still recorded rather than abandoned.
func (s *PaymentService) ExpireIntent(ctx context.Context, reference string) error {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return ErrIntentNotFound
	}
	intent, err := s.intentRepo.GetByReference(reference)
	if err != nil {
		return err
	}
	if intent == nil {
		return ErrIntentNotFound
	}
	if intent.Status != constants.PaymentIntentStatusInitiated {
		return nil
	}
	if intent.ExpiresAt != nil && time.Now().Before(*intent.ExpiresAt) {
		return nil
	}

	if _, err := s.ConfirmPayment(ctx, reference); err == nil {
		return nil
	} else if !errors.Is(err, ErrPaymentNotConfirmed) && !errors.Is(err, paystack.ErrTransactionNotFound) {
		logger.Warnw("payment_intent_expire_verify_failed",
			"reference", reference,
			"error", err,
		)
	}

	return models.DB.Transaction(func(tx *gorm.DB) error {
		intentRepo := s.intentRepo.WithTx(tx)
		locked, err := intentRepo.GetByReferenceForUpdate(reference)
		if err != nil {
			return err
		}
		if locked == nil || locked.Status != constants.PaymentIntentStatusInitiated {
			return nil
		}
		now := time.Now()
		locked.Status = constants.PaymentIntentStatusAbandoned
		locked.UpdatedAt = now
		return intentRepo.Update(locked)
	})
}

// GetPaymentByOrder returns the recorded payment for an order, nil when
// the order is unpaid.
func (s *PaymentService) GetPaymentByOrder(orderID uint) (*models.Payment, error) {
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	return s.paymentRepo.GetByOrderID(orderID)
}

// ListIntentsByOrder returns the attempt history of an order.
func (s *PaymentService) ListIntentsByOrder(orderID uint) ([]models.PaymentIntent, error) {
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	return s.intentRepo.ListByOrderID(orderID)
}

// ListPaymentsForAdmin returns the back-office payment ledger.
func (s *PaymentService) ListPaymentsForAdmin(filter repository.PaymentListFilter) ([]models.Payment, int64, error) {
	return s.paymentRepo.ListAdmin(filter)
}

package service

import (
	"errors"
	"strings"
	"time"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/constants"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/logger"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/models"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/queue"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// invoiceSeqPerDay caps how many invoice numbers fit in one calendar day.
const invoiceSeqPerDay = 10000

// checkoutRetries bounds retries when two checkouts race for the same
// invoice number.
const checkoutRetries = 3

// OrderService owns checkout and the order ledger.
type OrderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	queueClient *queue.Client
}

// NewOrderService creates an order service.
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, productRepo repository.ProductRepository, queueClient *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		queueClient: queueClient,
	}
}

// CheckoutInput is the place-order request.
type CheckoutInput struct {
	CustomerID uint
	ClientIP   string
}

// Checkout converts the customer's cart into an order. Runs in a single
// transaction: price snapshots, stock deduction, invoice allocation and
// cart clearing all commit or roll back together.
func (s *OrderService) Checkout(input CheckoutInput) (*models.Order, error) {
	if input.CustomerID == 0 {
		return nil, ErrNotFound
	}

	var order *models.Order
	var err error
	for attempt := 0; attempt < checkoutRetries; attempt++ {
		order, err = s.checkoutOnce(input)
		if err == nil {
			break
		}
		if !isDuplicateKeyError(err) {
			return nil, err
		}
		logger.Warnw("order_invoice_no_conflict_retry",
			"customer_id", input.CustomerID,
			"attempt", attempt+1,
		)
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrInvoiceExhausted
		}
		return nil, err
	}

	if s.queueClient != nil {
		if _, err := enqueueOrderStatusEmailTaskIfEligible(s.orderRepo, s.queueClient, order.ID, order.Status); err != nil {
			logger.Warnw("order_enqueue_status_email_failed",
				"order_id", order.ID,
				"status", order.Status,
				"error", err,
			)
		}
	}
	return order, nil
}

func (s *OrderService) checkoutOnce(input CheckoutInput) (*models.Order, error) {
	now := time.Now()
	var created *models.Order

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)

		cartItems, err := cartRepo.ListByCustomer(input.CustomerID)
		if err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return ErrCartEmpty
		}

		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(cartItems))
		for _, line := range cartItems {
			if line.Quantity <= 0 {
				return ErrInvalidQuantity
			}
			product, err := productRepo.GetByID(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return ErrProductNotFound
			}
			if !isProductActive(product) {
				return ErrProductNotAvailable
			}
			affected, err := productRepo.DeductStock(product.ID, line.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrInsufficientStock
			}

			lineTotal := product.Price.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity)))
			total = total.Add(lineTotal)
			items = append(items, models.OrderItem{
				ProductID:  product.ID,
				Title:      product.Title,
				UnitPrice:  product.Price,
				Quantity:   line.Quantity,
				TotalPrice: models.NewMoneyFromDecimal(lineTotal),
				CreatedAt:  now,
				UpdatedAt:  now,
			})
		}

		invoiceNo, err := nextInvoiceNo(orderRepo, now)
		if err != nil {
			return err
		}

		order := &models.Order{
			InvoiceNo:   invoiceNo,
			CustomerID:  input.CustomerID,
			Status:      constants.OrderStatusPending,
			Currency:    constants.CurrencyGHS,
			TotalAmount: models.NewMoneyFromDecimal(total),
			ClientIP:    strings.TrimSpace(input.ClientIP),
			OrderDate:   now,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := orderRepo.Create(order, items); err != nil {
			return err
		}
		if err := cartRepo.ClearByCustomer(input.CustomerID); err != nil {
			return err
		}

		order.Items = items
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// nextInvoiceNo allocates the next YYYYMMDDNNNN number for the day. The
// locked max-row read keeps concurrent transactions serialized; the unique
// index on invoice_no backstops drivers without row locks.
func nextInvoiceNo(orderRepo repository.OrderRepository, now time.Time) (int64, error) {
	base := invoiceBase(now)
	max, err := orderRepo.MaxInvoiceNoInRange(base, base+invoiceSeqPerDay)
	if err != nil {
		return 0, err
	}
	next := base + 1
	if max >= next {
		next = max + 1
	}
	if next >= base+invoiceSeqPerDay {
		return 0, ErrInvoiceExhausted
	}
	return next, nil
}

func invoiceBase(t time.Time) int64 {
	year, month, day := t.Date()
	return (int64(year)*10000 + int64(month)*100 + int64(day)) * invoiceSeqPerDay
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

// GetOrderByCustomer fetches an order owned by the customer.
func (s *OrderService) GetOrderByCustomer(orderID, customerID uint) (*models.Order, error) {
	if orderID == 0 || customerID == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByIDAndCustomer(orderID, customerID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrderByInvoiceNo fetches an order by its invoice number.
func (s *OrderService) GetOrderByInvoiceNo(invoiceNo int64) (*models.Order, error) {
	if invoiceNo <= 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByInvoiceNo(invoiceNo)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrderLines returns the lines of a customer's order.
func (s *OrderService) ListOrderLines(orderID, customerID uint) ([]models.OrderItem, error) {
	order, err := s.GetOrderByCustomer(orderID, customerID)
	if err != nil {
		return nil, err
	}
	if len(order.Items) > 0 {
		return order.Items, nil
	}
	return s.orderRepo.ListItems(order.ID)
}

// ListOrdersByCustomer returns the customer's order history.
func (s *OrderService) ListOrdersByCustomer(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.CustomerID == 0 {
		return nil, 0, ErrOrderNotFound
	}
	return s.orderRepo.ListByCustomer(filter)
}

// ListOrdersForAdmin returns the back-office order list.
func (s *OrderService) ListOrdersForAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// GetOrderForAdmin fetches any order by ID.
func (s *OrderService) GetOrderForAdmin(orderID uint) (*models.Order, error) {
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// UpdateOrderStatus advances an order along the status machine. Cancelling
// restores stock in the same transaction.
func (s *OrderService) UpdateOrderStatus(orderID uint, targetStatus string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	target := normalizeOrderStatus(targetStatus)
	if target == "" {
		return nil, ErrOrderStatusInvalid
	}
	if order.Status == target {
		return order, nil
	}
	if isTerminalStatus(order.Status) || !isTransitionAllowed(order.Status, target) {
		return nil, ErrOrderStatusInvalid
	}

	now := time.Now()
	updates := map[string]interface{}{
		"updated_at": now,
	}
	switch target {
	case constants.OrderStatusShipped:
		updates["shipped_at"] = now
	case constants.OrderStatusDelivered:
		updates["delivered_at"] = now
	case constants.OrderStatusCancelled:
		updates["cancelled_at"] = now
	}

	if target == constants.OrderStatusCancelled {
		err = models.DB.Transaction(func(tx *gorm.DB) error {
			orderRepo := s.orderRepo.WithTx(tx)
			productRepo := s.productRepo.WithTx(tx)
			if err := orderRepo.UpdateStatus(order.ID, target, updates); err != nil {
				return ErrOrderUpdateFailed
			}
			items := order.Items
			if len(items) == 0 {
				loaded, err := orderRepo.ListItems(order.ID)
				if err != nil {
					return err
				}
				items = loaded
			}
			for _, item := range items {
				if _, err := productRepo.RestoreStock(item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
			return nil
		})
	} else {
		err = s.orderRepo.UpdateStatus(order.ID, target, updates)
	}
	if err != nil {
		if errors.Is(err, ErrOrderUpdateFailed) {
			return nil, ErrOrderUpdateFailed
		}
		return nil, err
	}

	order.Status = target
	order.UpdatedAt = now
	switch target {
	case constants.OrderStatusShipped:
		order.ShippedAt = &now
	case constants.OrderStatusDelivered:
		order.DeliveredAt = &now
	case constants.OrderStatusCancelled:
		order.CancelledAt = &now
	}

	if s.queueClient != nil {
		if _, err := enqueueOrderStatusEmailTaskIfEligible(s.orderRepo, s.queueClient, order.ID, target); err != nil {
			logger.Warnw("order_enqueue_status_email_failed",
				"order_id", order.ID,
				"status", target,
				"error", err,
			)
		}
	}
	return order, nil
}

// CancelOrderByCustomer lets a customer cancel their own order while it is
// still pending payment.
func (s *OrderService) CancelOrderByCustomer(orderID, customerID uint) (*models.Order, error) {
	order, err := s.GetOrderByCustomer(orderID, customerID)
	if err != nil {
		return nil, err
	}
	if order.Status != constants.OrderStatusPending {
		return nil, ErrOrderStatusInvalid
	}
	return s.UpdateOrderStatus(order.ID, constants.OrderStatusCancelled)
}

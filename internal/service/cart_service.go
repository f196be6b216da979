package service

import (
	"strings"
	"time"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/constants"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/models"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/repository"

	"github.com/shopspring/decimal"
)

// CartItemDetail is a cart line joined with its live product.
type CartItemDetail struct {
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice models.Money    `json:"unit_price"`
	LineTotal models.Money    `json:"line_total"`
	Currency  string          `json:"currency"`
	Product   *models.Product `json:"product"`
}

// CartSummary is the full cart response.
type CartSummary struct {
	Items    []CartItemDetail `json:"items"`
	Total    models.Money     `json:"total"`
	Currency string           `json:"currency"`
}

// AddCartItemInput is the add-to-cart request.
type AddCartItemInput struct {
	CustomerID uint
	ProductID  uint
	Quantity   int
	ClientIP   string
}

// CartService manages customer carts.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates a cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart returns the customer's cart. Lines whose product has been removed
// or deactivated are purged rather than surfaced.
func (s *CartService) GetCart(customerID uint) (*CartSummary, error) {
	if customerID == 0 {
		return nil, ErrNotFound
	}
	items, err := s.cartRepo.ListByCustomer(customerID)
	if err != nil {
		return nil, err
	}

	summary := &CartSummary{
		Items:    make([]CartItemDetail, 0, len(items)),
		Currency: constants.CurrencyGHS,
	}
	total := decimal.Zero
	for _, item := range items {
		product := item.Product
		if product == nil || product.ID == 0 {
			p, err := s.productRepo.GetByID(item.ProductID)
			if err != nil {
				return nil, err
			}
			product = p
		}
		if product == nil || !isProductActive(product) {
			_ = s.cartRepo.DeleteByCustomerAndProduct(customerID, item.ProductID)
			continue
		}

		lineTotal := product.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(lineTotal)
		summary.Items = append(summary.Items, CartItemDetail{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
			LineTotal: models.NewMoneyFromDecimal(lineTotal),
			Currency:  constants.CurrencyGHS,
			Product:   product,
		})
	}
	summary.Total = models.NewMoneyFromDecimal(total)
	return summary, nil
}

// AddItem adds a product to the cart, incrementing the quantity when the
// line already exists.
func (s *CartService) AddItem(input AddCartItemInput) error {
	if input.CustomerID == 0 || input.ProductID == 0 {
		return ErrNotFound
	}
	if input.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if !isProductActive(product) {
		return ErrProductNotAvailable
	}

	quantity := input.Quantity
	existing, err := s.cartRepo.GetByCustomerAndProduct(input.CustomerID, input.ProductID)
	if err != nil {
		return err
	}
	if existing != nil {
		quantity += existing.Quantity
	}
	if product.Stock > 0 && quantity > product.Stock {
		return ErrInsufficientStock
	}

	now := time.Now()
	item := &models.CartItem{
		CustomerID: input.CustomerID,
		ProductID:  input.ProductID,
		Quantity:   quantity,
		AddedIP:    strings.TrimSpace(input.ClientIP),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return s.cartRepo.Upsert(item)
}

// UpdateQuantity sets the quantity of a cart line. Zero or negative
// removes the line.
func (s *CartService) UpdateQuantity(customerID, productID uint, quantity int) error {
	if customerID == 0 || productID == 0 {
		return ErrNotFound
	}
	if quantity <= 0 {
		return s.cartRepo.DeleteByCustomerAndProduct(customerID, productID)
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil || !isProductActive(product) {
		return ErrProductNotAvailable
	}
	if product.Stock > 0 && quantity > product.Stock {
		return ErrInsufficientStock
	}

	now := time.Now()
	item := &models.CartItem{
		CustomerID: customerID,
		ProductID:  productID,
		Quantity:   quantity,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return s.cartRepo.Upsert(item)
}

// RemoveItem deletes a cart line. Removing an absent line is a no-op.
func (s *CartService) RemoveItem(customerID, productID uint) error {
	if customerID == 0 || productID == 0 {
		return ErrNotFound
	}
	return s.cartRepo.DeleteByCustomerAndProduct(customerID, productID)
}

// Clear empties the cart.
func (s *CartService) Clear(customerID uint) error {
	if customerID == 0 {
		return ErrNotFound
	}
	return s.cartRepo.ClearByCustomer(customerID)
}

func isProductActive(product *models.Product) bool {
	return product != nil && strings.EqualFold(product.Status, constants.ProductStatusActive)
}

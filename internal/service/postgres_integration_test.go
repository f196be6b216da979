//go:build integration

package service

import (
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/constants"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/models"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/queue"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Run with:
//
//	GHANATUNES_TEST_POSTGRES_DSN="host=localhost user=gt password=gt dbname=gt_test sslmode=disable" \
//	go test -tags integration ./internal/service -run Concurrent
func setupPostgresTest(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("GHANATUNES_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("GHANATUNES_TEST_POSTGRES_DSN not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}
	if err := db.Migrator().DropTable(
		&models.OrderItem{}, &models.Order{}, &models.CartItem{},
		&models.Product{}, &models.Category{}, &models.Customer{},
	); err != nil {
		t.Fatalf("drop tables failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{}, &models.Product{}, &models.CartItem{},
		&models.Customer{}, &models.Order{}, &models.OrderItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return db
}

// TestConcurrentCheckoutAllocatesDistinctInvoices races many checkouts on
// one day and asserts every order gets a distinct sequential invoice
// number. The row lock plus the unique index make the allocation safe
// under real concurrency; sqlite cannot exercise this path.
func TestConcurrentCheckoutAllocatesDistinctInvoices(t *testing.T) {
	db := setupPostgresTest(t)

	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	defer queueClient.Close()

	orderRepo := repository.NewOrderRepository(db)
	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderSvc := NewOrderService(orderRepo, cartRepo, productRepo, queueClient)
	cartSvc := NewCartService(cartRepo, productRepo)

	category := models.Category{Name: "Drums"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := models.Product{
		Title:      "Djembe Drum",
		CategoryID: category.ID,
		Price:      models.NewMoneyFromDecimal(decimal.RequireFromString("100.00")),
		Stock:      1000,
		Status:     constants.ProductStatusActive,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	const shoppers = 16
	customers := make([]models.Customer, 0, shoppers)
	for i := 0; i < shoppers; i++ {
		customer := models.Customer{
			Name:         fmt.Sprintf("shopper-%d", i),
			Email:        fmt.Sprintf("shopper%d@example.com", i),
			PasswordHash: "hash",
			Status:       constants.CustomerStatusActive,
		}
		if err := db.Create(&customer).Error; err != nil {
			t.Fatalf("create customer failed: %v", err)
		}
		if err := cartSvc.AddItem(AddCartItemInput{CustomerID: customer.ID, ProductID: product.ID, Quantity: 1}); err != nil {
			t.Fatalf("add cart item failed: %v", err)
		}
		customers = append(customers, customer)
	}

	var wg sync.WaitGroup
	errCh := make(chan error, shoppers)
	for _, customer := range customers {
		wg.Add(1)
		go func(customerID uint) {
			defer wg.Done()
			if _, err := orderSvc.Checkout(CheckoutInput{CustomerID: customerID, ClientIP: "10.0.0.1"}); err != nil {
				errCh <- err
			}
		}(customer.ID)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("concurrent checkout failed: %v", err)
	}

	var orders []models.Order
	if err := db.Order("invoice_no asc").Find(&orders).Error; err != nil {
		t.Fatalf("load orders failed: %v", err)
	}
	if len(orders) != shoppers {
		t.Fatalf("order count want %d got %d", shoppers, len(orders))
	}

	now := time.Now()
	base := int64(now.Year()*10000+int(now.Month())*100+now.Day()) * 10000
	seen := map[int64]bool{}
	for i, order := range orders {
		if seen[order.InvoiceNo] {
			t.Fatalf("duplicate invoice number %d", order.InvoiceNo)
		}
		seen[order.InvoiceNo] = true
		want := base + int64(i) + 1
		if order.InvoiceNo != want {
			t.Fatalf("invoice %d want %d got %d", i, want, order.InvoiceNo)
		}
	}
}

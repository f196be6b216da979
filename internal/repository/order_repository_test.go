package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/constants"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderRepoTest(t *testing.T) (*GormOrderRepository, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:order_repo_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.Order{}, &models.OrderItem{}, &models.Payment{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewOrderRepository(db), db
}

func seedOrder(t *testing.T, repo *GormOrderRepository, customerID uint, invoiceNo int64, status string, total string) *models.Order {
	t.Helper()

	order := &models.Order{
		InvoiceNo:   invoiceNo,
		CustomerID:  customerID,
		Status:      status,
		Currency:    constants.CurrencyGHS,
		TotalAmount: models.NewMoneyFromDecimal(decimal.RequireFromString(total)),
		OrderDate:   time.Now(),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	items := []models.OrderItem{
		{
			ProductID:  1,
			Title:      "Djembe Drum",
			UnitPrice:  models.NewMoneyFromDecimal(decimal.RequireFromString(total)),
			Quantity:   1,
			TotalPrice: models.NewMoneyFromDecimal(decimal.RequireFromString(total)),
			CreatedAt:  time.Now(),
		},
	}
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestOrderRepositoryInvoiceNoIsUnique(t *testing.T) {
	repo, _ := setupOrderRepoTest(t)

	seedOrder(t, repo, 1, 202603070001, constants.OrderStatusPending, "100.00")

	dup := &models.Order{
		InvoiceNo:   202603070001,
		CustomerID:  2,
		Status:      constants.OrderStatusPending,
		Currency:    constants.CurrencyGHS,
		TotalAmount: models.NewMoneyFromDecimal(decimal.RequireFromString("50.00")),
		OrderDate:   time.Now(),
	}
	if err := repo.Create(dup, nil); err == nil {
		t.Fatalf("duplicate invoice number should fail the unique index")
	}
}

func TestOrderRepositoryMaxInvoiceNoInRange(t *testing.T) {
	repo, _ := setupOrderRepoTest(t)

	const base = int64(202603070000)
	seedOrder(t, repo, 1, base+1, constants.OrderStatusPending, "100.00")
	seedOrder(t, repo, 1, base+5, constants.OrderStatusPending, "100.00")
	// an order from the next day must not leak into today's range
	seedOrder(t, repo, 1, base+10000+2, constants.OrderStatusPending, "100.00")

	max, err := repo.MaxInvoiceNoInRange(base, base+10000)
	if err != nil {
		t.Fatalf("max invoice query failed: %v", err)
	}
	if max != base+5 {
		t.Fatalf("max invoice want %d got %d", base+5, max)
	}

	max, err = repo.MaxInvoiceNoInRange(base-10000, base)
	if err != nil {
		t.Fatalf("max invoice query failed: %v", err)
	}
	if max != 0 {
		t.Fatalf("empty range should report 0, got %d", max)
	}
}

func TestOrderRepositoryGetByInvoiceNo(t *testing.T) {
	repo, _ := setupOrderRepoTest(t)

	created := seedOrder(t, repo, 7, 202603070003, constants.OrderStatusPending, "250.00")

	order, err := repo.GetByInvoiceNo(202603070003)
	if err != nil {
		t.Fatalf("get by invoice failed: %v", err)
	}
	if order == nil || order.ID != created.ID {
		t.Fatalf("expected order %d, got %+v", created.ID, order)
	}
	if len(order.Items) != 1 {
		t.Fatalf("items should be preloaded, got %d", len(order.Items))
	}

	missing, err := repo.GetByInvoiceNo(202603079999)
	if err != nil {
		t.Fatalf("get by invoice failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("unknown invoice should return nil, got %+v", missing)
	}
}

func TestOrderRepositoryListAdminFilters(t *testing.T) {
	repo, _ := setupOrderRepoTest(t)

	seedOrder(t, repo, 1, 202603070001, constants.OrderStatusPending, "100.00")
	seedOrder(t, repo, 1, 202603070002, constants.OrderStatusProcessing, "200.00")
	seedOrder(t, repo, 2, 202603070004, constants.OrderStatusPending, "300.00")

	orders, total, err := repo.ListAdmin(OrderListFilter{Page: 1, PageSize: 10, Status: constants.OrderStatusPending})
	if err != nil {
		t.Fatalf("list admin failed: %v", err)
	}
	if total != 2 || len(orders) != 2 {
		t.Fatalf("pending filter want 2 orders got total=%d len=%d", total, len(orders))
	}

	orders, total, err = repo.ListAdmin(OrderListFilter{Page: 1, PageSize: 10, CustomerID: 2})
	if err != nil {
		t.Fatalf("list admin failed: %v", err)
	}
	if total != 1 || orders[0].InvoiceNo != 202603070004 {
		t.Fatalf("customer filter want invoice 202603070004 got total=%d orders=%+v", total, orders)
	}

	orders, total, err = repo.ListAdmin(OrderListFilter{Page: 1, PageSize: 10, InvoiceNo: 202603070002})
	if err != nil {
		t.Fatalf("list admin failed: %v", err)
	}
	if total != 1 || orders[0].Status != constants.OrderStatusProcessing {
		t.Fatalf("invoice filter want the processing order, got %+v", orders)
	}
}

func TestOrderRepositoryResolveReceiverEmail(t *testing.T) {
	repo, db := setupOrderRepoTest(t)

	customer := models.Customer{
		Name:         "Esi Mensah",
		Email:        "esi@example.com",
		PasswordHash: "x",
		Status:       constants.CustomerStatusActive,
		CreatedAt:    time.Now(),
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	order := seedOrder(t, repo, customer.ID, 202603070001, constants.OrderStatusPending, "100.00")

	email, err := repo.ResolveReceiverEmailByOrderID(order.ID)
	if err != nil {
		t.Fatalf("resolve receiver failed: %v", err)
	}
	if email != "esi@example.com" {
		t.Fatalf("receiver want esi@example.com got %s", email)
	}

	email, err = repo.ResolveReceiverEmailByOrderID(9999)
	if err != nil {
		t.Fatalf("resolve receiver failed: %v", err)
	}
	if email != "" {
		t.Fatalf("unknown order should resolve to empty receiver, got %s", email)
	}
}

func TestOrderRepositoryUpdateStatusSetsExtraColumns(t *testing.T) {
	repo, _ := setupOrderRepoTest(t)

	order := seedOrder(t, repo, 1, 202603070001, constants.OrderStatusProcessing, "100.00")

	now := time.Now()
	err := repo.UpdateStatus(order.ID, constants.OrderStatusShipped, map[string]interface{}{
		"shipped_at": now,
		"updated_at": now,
	})
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}

	reloaded, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusShipped {
		t.Fatalf("status want %s got %s", constants.OrderStatusShipped, reloaded.Status)
	}
	if reloaded.ShippedAt == nil {
		t.Fatalf("shipped_at should be set")
	}
}

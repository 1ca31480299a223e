package order

import (
	"context"
	"errors"
	"testing"

	"restaurant-orders/internal/logger"
	"restaurant-orders/internal/models"
	"restaurant-orders/internal/storage"
	"restaurant-orders/internal/validation"
)

func newTestService(t *testing.T) (*Service, *storage.MemoryCatalog, *storage.MemoryOrders) {
	t.Helper()
	catalog := storage.NewMemoryCatalog()
	orders := storage.NewMemoryOrders()
	service := NewService(orders, catalog.Lookup, nil, logger.New("order-service-test"))
	return service, catalog, orders
}

func seedMenuItem(t *testing.T, catalog *storage.MemoryCatalog, name string, available bool) int {
	t.Helper()
	id, err := catalog.Insert(context.Background(), models.FoodItem{
		Name:            name,
		Description:     "A test menu item for orders",
		Category:        models.CategoryMainCourse,
		Price:           mustMoney(t, "12.50"),
		IsAvailable:     available,
		PreparationTime: 20,
		Ingredients:     []string{"test"},
	})
	if err != nil {
		t.Fatalf("seed insert returned error: %v", err)
	}
	return id
}

func TestCreateOrder(t *testing.T) {
	service, catalog, _ := newTestService(t)
	id := seedMenuItem(t, catalog, "Margherita Pizza", true)

	order := validOrder(t)
	order.Items[0].MenuItemID = id

	created, err := service.CreateOrder(context.Background(), order, "req_test")
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("order id = %d, want 1", created.ID)
	}
	if created.Status != models.StatusPending {
		t.Errorf("status = %s, want pending", created.Status)
	}
	if got := created.TotalAmount().StringFixed(2); got != "27.99" {
		t.Errorf("TotalAmount = %s, want 27.99", got)
	}
}

func TestCreateOrderRejectsUnknownMenuItem(t *testing.T) {
	service, catalog, orders := newTestService(t)
	seedMenuItem(t, catalog, "Margherita Pizza", true)

	order := validOrder(t)
	order.Items[0].MenuItemID = 42

	_, err := service.CreateOrder(context.Background(), order, "req_test")
	var refErr *validation.ReferentialError
	if !errors.As(err, &refErr) {
		t.Fatalf("expected ReferentialError, got %v", err)
	}

	// Nothing is stored and no id is consumed by the failed attempt.
	stored, err := orders.All(context.Background())
	if err != nil {
		t.Fatalf("All returned error: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("expected no stored orders, got %d", len(stored))
	}

	good := validOrder(t)
	good.Items[0].MenuItemID = 1
	created, err := service.CreateOrder(context.Background(), good, "req_test")
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("order id after failed attempt = %d, want 1", created.ID)
	}
}

func TestCreateOrderRejectsUnavailableMenuItem(t *testing.T) {
	service, catalog, orders := newTestService(t)
	id := seedMenuItem(t, catalog, "Tiramisu", false)

	order := validOrder(t)
	order.Items[0].MenuItemID = id

	_, err := service.CreateOrder(context.Background(), order, "req_test")
	var refErr *validation.ReferentialError
	if !errors.As(err, &refErr) {
		t.Fatalf("expected ReferentialError, got %v", err)
	}
	if refErr.Reason != validation.ReasonUnavailable {
		t.Errorf("Reason = %s, want %s", refErr.Reason, validation.ReasonUnavailable)
	}

	stored, err := orders.All(context.Background())
	if err != nil {
		t.Fatalf("All returned error: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("expected no stored orders, got %d", len(stored))
	}
}

func TestUpdateStatusAllowsAnyTransition(t *testing.T) {
	service, catalog, _ := newTestService(t)
	id := seedMenuItem(t, catalog, "Margherita Pizza", true)

	order := validOrder(t)
	order.Items[0].MenuItemID = id
	created, err := service.CreateOrder(context.Background(), order, "req_test")
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}

	statuses := []models.OrderStatus{
		models.StatusDelivered,
		models.StatusPending,
		models.StatusReady,
		models.StatusConfirmed,
		models.StatusReady,
	}
	for _, status := range statuses {
		updated, err := service.UpdateStatus(context.Background(), created.ID, status, "req_test")
		if err != nil {
			t.Fatalf("UpdateStatus(%s) returned error: %v", status, err)
		}
		if updated.Status != status {
			t.Errorf("status = %s, want %s", updated.Status, status)
		}
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.UpdateStatus(context.Background(), 1, "cancelled", "req_test")
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation.Errors, got %v", err)
	}
}

func TestUpdateStatusMissingOrder(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.UpdateStatus(context.Background(), 7, models.StatusReady, "req_test")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

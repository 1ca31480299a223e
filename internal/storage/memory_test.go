package storage

import (
	"context"
	"errors"
	"testing"

	"restaurant-orders/internal/models"
)

func testItem(name string, category models.FoodCategory) models.FoodItem {
	price, _ := models.MoneyFromString("9.99")
	return models.FoodItem{
		Name:            name,
		Description:     "A test item description",
		Category:        category,
		Price:           price,
		IsAvailable:     true,
		PreparationTime: 15,
		Ingredients:     []string{"test"},
	}
}

func TestMemoryCatalogAssignsSequentialIDs(t *testing.T) {
	catalog := NewMemoryCatalog()
	ctx := context.Background()

	first, err := catalog.Insert(ctx, testItem("Bruschetta", models.CategoryAppetizer))
	if err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	second, err := catalog.Insert(ctx, testItem("Lemonade", models.CategoryBeverage))
	if err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}

	if first != 1 || second != 2 {
		t.Errorf("ids = %d, %d, want 1, 2", first, second)
	}

	item, err := catalog.Lookup(ctx, first)
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if item.ID != first || item.Name != "Bruschetta" {
		t.Errorf("Lookup returned %+v", item)
	}
}

func TestMemoryCatalogLookupMissing(t *testing.T) {
	catalog := NewMemoryCatalog()

	_, err := catalog.Lookup(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %T", err)
	}
	if notFound.Entity != "menu item" || notFound.ID != 99 {
		t.Errorf("NotFoundError = %+v", notFound)
	}
}

func TestMemoryCatalogReplace(t *testing.T) {
	catalog := NewMemoryCatalog()
	ctx := context.Background()

	id, _ := catalog.Insert(ctx, testItem("Bruschetta", models.CategoryAppetizer))

	updated := testItem("Garlic Bread", models.CategoryAppetizer)
	if err := catalog.Replace(ctx, id, updated); err != nil {
		t.Fatalf("Replace returned error: %v", err)
	}

	item, _ := catalog.Lookup(ctx, id)
	if item.Name != "Garlic Bread" || item.ID != id {
		t.Errorf("after Replace got %+v", item)
	}

	if err := catalog.Replace(ctx, 99, updated); !errors.Is(err, ErrNotFound) {
		t.Errorf("Replace on missing id error = %v, want ErrNotFound", err)
	}
}

func TestMemoryCatalogByCategory(t *testing.T) {
	catalog := NewMemoryCatalog()
	ctx := context.Background()

	catalog.Insert(ctx, testItem("Bruschetta", models.CategoryAppetizer))
	catalog.Insert(ctx, testItem("Lemonade", models.CategoryBeverage))
	catalog.Insert(ctx, testItem("Spring Rolls", models.CategoryAppetizer))

	appetizers, err := catalog.ByCategory(ctx, models.CategoryAppetizer)
	if err != nil {
		t.Fatalf("ByCategory returned error: %v", err)
	}
	if len(appetizers) != 2 {
		t.Fatalf("got %d appetizers, want 2", len(appetizers))
	}
	if appetizers[0].ID > appetizers[1].ID {
		t.Errorf("expected results sorted by id, got %d before %d", appetizers[0].ID, appetizers[1].ID)
	}

	salads, err := catalog.ByCategory(ctx, models.CategorySalad)
	if err != nil {
		t.Fatalf("ByCategory returned error: %v", err)
	}
	if len(salads) != 0 {
		t.Errorf("got %d salads, want 0", len(salads))
	}
}

func TestMemoryCatalogDelete(t *testing.T) {
	catalog := NewMemoryCatalog()
	ctx := context.Background()

	id, _ := catalog.Insert(ctx, testItem("Bruschetta", models.CategoryAppetizer))
	if err := catalog.Delete(ctx, id); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := catalog.Lookup(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Lookup after Delete error = %v, want ErrNotFound", err)
	}
	if err := catalog.Delete(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete error = %v, want ErrNotFound", err)
	}
}

func testOrder(name string) models.Order {
	fee, _ := models.MoneyFromString("2.99")
	price, _ := models.MoneyFromString("12.50")
	return models.Order{
		Customer: models.Customer{Name: name, Phone: "5551234567"},
		Items: []models.OrderItem{
			{MenuItemID: 1, MenuItemName: "Margherita Pizza", Quantity: 1, UnitPrice: price},
		},
		Status:      models.StatusPending,
		DeliveryFee: fee,
	}
}

func TestMemoryOrders(t *testing.T) {
	orders := NewMemoryOrders()
	ctx := context.Background()

	first, err := orders.Insert(ctx, testOrder("John Doe"))
	if err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	second, _ := orders.Insert(ctx, testOrder("Jane Roe"))
	if first != 1 || second != 2 {
		t.Errorf("ids = %d, %d, want 1, 2", first, second)
	}

	if err := orders.UpdateStatus(ctx, first, models.StatusDelivered); err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	order, err := orders.Lookup(ctx, first)
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if order.Status != models.StatusDelivered {
		t.Errorf("status = %s, want delivered", order.Status)
	}

	if err := orders.UpdateStatus(ctx, 99, models.StatusReady); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateStatus on missing id error = %v, want ErrNotFound", err)
	}

	all, err := orders.All(ctx)
	if err != nil {
		t.Fatalf("All returned error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("got %d orders, want 2", len(all))
	}
}

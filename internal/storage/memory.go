package storage

import (
	"context"
	"sort"
	"sync"

	"restaurant-orders/internal/models"
)

// MemoryCatalog is an in-memory CatalogStore. Id assignment and map
// mutation happen inside a single critical section, so ids are never
// skipped or reused under concurrent writers.
type MemoryCatalog struct {
	mu     sync.RWMutex
	items  map[int]models.FoodItem
	nextID int
}

// NewMemoryCatalog creates an empty in-memory catalog.
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		items:  make(map[int]models.FoodItem),
		nextID: 1,
	}
}

func (c *MemoryCatalog) Lookup(ctx context.Context, id int) (*models.FoodItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[id]
	if !ok {
		return nil, &NotFoundError{Entity: "menu item", ID: id}
	}
	return &item, nil
}

func (c *MemoryCatalog) Insert(ctx context.Context, item models.FoodItem) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item.ID = c.nextID
	c.items[item.ID] = item
	c.nextID++
	return item.ID, nil
}

func (c *MemoryCatalog) Replace(ctx context.Context, id int, item models.FoodItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return &NotFoundError{Entity: "menu item", ID: id}
	}
	item.ID = id
	c.items[id] = item
	return nil
}

func (c *MemoryCatalog) Delete(ctx context.Context, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return &NotFoundError{Entity: "menu item", ID: id}
	}
	delete(c.items, id)
	return nil
}

func (c *MemoryCatalog) All(ctx context.Context) ([]models.FoodItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]models.FoodItem, 0, len(c.items))
	for _, item := range c.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (c *MemoryCatalog) ByCategory(ctx context.Context, category models.FoodCategory) ([]models.FoodItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := []models.FoodItem{}
	for _, item := range c.items {
		if item.Category == category {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// MemoryOrders is an in-memory OrderStore with the same id discipline
// as MemoryCatalog.
type MemoryOrders struct {
	mu     sync.RWMutex
	orders map[int]models.Order
	nextID int
}

// NewMemoryOrders creates an empty in-memory order store.
func NewMemoryOrders() *MemoryOrders {
	return &MemoryOrders{
		orders: make(map[int]models.Order),
		nextID: 1,
	}
}

func (o *MemoryOrders) Insert(ctx context.Context, order models.Order) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	order.ID = o.nextID
	o.orders[order.ID] = order
	o.nextID++
	return order.ID, nil
}

func (o *MemoryOrders) Lookup(ctx context.Context, id int) (*models.Order, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	order, ok := o.orders[id]
	if !ok {
		return nil, &NotFoundError{Entity: "order", ID: id}
	}
	return &order, nil
}

func (o *MemoryOrders) All(ctx context.Context) ([]models.Order, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	orders := make([]models.Order, 0, len(o.orders))
	for _, order := range o.orders {
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders, nil
}

func (o *MemoryOrders) UpdateStatus(ctx context.Context, id int, status models.OrderStatus) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	order, ok := o.orders[id]
	if !ok {
		return &NotFoundError{Entity: "order", ID: id}
	}
	order.Status = status
	o.orders[id] = order
	return nil
}

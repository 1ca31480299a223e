package storage

import (
	"context"
	"errors"
	"fmt"

	"restaurant-orders/internal/models"
)

// ErrNotFound is the sentinel matched by errors.Is for missing entities.
var ErrNotFound = errors.New("not found")

// NotFoundError reports a missing entity by name and id.
type NotFoundError struct {
	Entity string
	ID     int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// CatalogStore owns the menu item collection and its id assignment.
// Validators never touch it directly; they receive Lookup as a narrow
// read-only capability.
type CatalogStore interface {
	Lookup(ctx context.Context, id int) (*models.FoodItem, error)
	Insert(ctx context.Context, item models.FoodItem) (int, error)
	Replace(ctx context.Context, id int, item models.FoodItem) error
	Delete(ctx context.Context, id int) error
	All(ctx context.Context) ([]models.FoodItem, error)
	ByCategory(ctx context.Context, category models.FoodCategory) ([]models.FoodItem, error)
}

// OrderStore owns the order collection and its id assignment.
type OrderStore interface {
	Insert(ctx context.Context, order models.Order) (int, error)
	Lookup(ctx context.Context, id int) (*models.Order, error)
	All(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id int, status models.OrderStatus) error
}

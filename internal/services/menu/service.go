package menu

import (
	"context"
	"fmt"

	"restaurant-orders/internal/logger"
	"restaurant-orders/internal/models"
	"restaurant-orders/internal/storage"
	"restaurant-orders/internal/validation"
)

// Service validates menu items and coordinates with the catalog store.
// The validator itself never touches storage; nothing is persisted when
// validation fails.
type Service struct {
	store  storage.CatalogStore
	logger *logger.Logger
}

// NewService creates a new menu service
func NewService(store storage.CatalogStore, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		logger: log,
	}
}

// CreateItem validates a candidate item and inserts it into the catalog.
func (s *Service) CreateItem(ctx context.Context, item models.FoodItem, requestID string) (*models.FoodItem, error) {
	if err := ValidateFoodItem(&item); err != nil {
		return nil, err
	}

	id, err := s.store.Insert(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to insert menu item: %w", err)
	}
	item.ID = id

	s.logger.Info("menu_item_created", fmt.Sprintf("Created menu item %q", item.Name), requestID, map[string]interface{}{
		"item_id":  item.ID,
		"category": string(item.Category),
	})
	return &item, nil
}

// UpdateItem validates a candidate item and replaces the stored one.
func (s *Service) UpdateItem(ctx context.Context, id int, item models.FoodItem, requestID string) (*models.FoodItem, error) {
	if err := ValidateFoodItem(&item); err != nil {
		return nil, err
	}

	if err := s.store.Replace(ctx, id, item); err != nil {
		return nil, err
	}
	item.ID = id

	s.logger.Info("menu_item_updated", fmt.Sprintf("Updated menu item %d", id), requestID, map[string]interface{}{
		"item_id": id,
	})
	return &item, nil
}

// GetItem fetches a single menu item.
func (s *Service) GetItem(ctx context.Context, id int) (*models.FoodItem, error) {
	return s.store.Lookup(ctx, id)
}

// ListItems fetches the whole catalog.
func (s *Service) ListItems(ctx context.Context) ([]models.FoodItem, error) {
	return s.store.All(ctx)
}

// ListByCategory fetches the catalog entries in one category.
func (s *Service) ListByCategory(ctx context.Context, category models.FoodCategory) ([]models.FoodItem, error) {
	if !category.IsValid() {
		return nil, validation.Errors{{
			Field:   "category",
			Rule:    "category_known",
			Message: "category must be one of: appetizer, main_course, dessert, beverage, salad",
		}}
	}
	return s.store.ByCategory(ctx, category)
}

// DeleteItem removes a menu item from the catalog.
func (s *Service) DeleteItem(ctx context.Context, id int, requestID string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("menu_item_deleted", fmt.Sprintf("Deleted menu item %d", id), requestID, map[string]interface{}{
		"item_id": id,
	})
	return nil
}

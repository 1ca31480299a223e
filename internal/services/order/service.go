package order

import (
	"context"
	"fmt"
	"time"

	"restaurant-orders/internal/logger"
	"restaurant-orders/internal/messaging"
	"restaurant-orders/internal/models"
	"restaurant-orders/internal/storage"
	"restaurant-orders/internal/validation"
)

// EventPublisher publishes order lifecycle events. A nil publisher
// disables eventing.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, event messaging.OrderCreatedEvent) error
	PublishStatusChanged(ctx context.Context, event messaging.OrderStatusChangedEvent) error
}

// Service validates orders against the catalog and coordinates with the
// order store. Validation is all-or-nothing: a rejected order is never
// stored and consumes no id.
type Service struct {
	store     storage.OrderStore
	catalog   CatalogLookup
	publisher EventPublisher
	logger    *logger.Logger
}

// NewService creates a new order service. The catalog lookup is the
// only capability the service holds on the menu collection.
func NewService(store storage.OrderStore, catalog CatalogLookup, publisher EventPublisher, log *logger.Logger) *Service {
	return &Service{
		store:     store,
		catalog:   catalog,
		publisher: publisher,
		logger:    log,
	}
}

// CreateOrder validates a candidate order, checks it against the
// catalog and stores it. The stored order starts in pending status.
func (s *Service) CreateOrder(ctx context.Context, order models.Order, requestID string) (*models.Order, error) {
	if err := ValidateOrder(&order); err != nil {
		return nil, err
	}
	if err := CheckCatalog(ctx, &order, s.catalog); err != nil {
		return nil, err
	}

	id, err := s.store.Insert(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}
	order.ID = id

	s.logger.Info("order_created", fmt.Sprintf("Created order %d", id), requestID, map[string]interface{}{
		"order_id":     id,
		"total_amount": order.TotalAmount().StringFixed(2),
		"items_count":  order.TotalItemsCount(),
	})

	if s.publisher != nil {
		event := messaging.OrderCreatedEvent{
			OrderID:         order.ID,
			CustomerName:    order.Customer.Name,
			Status:          order.Status,
			TotalAmount:     order.TotalAmount(),
			TotalItemsCount: order.TotalItemsCount(),
			Timestamp:       time.Now().UTC(),
		}
		// The order is already stored; a publish failure must not fail
		// the request.
		if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
			s.logger.Error("event_publish_failed", "Failed to publish order created event", requestID, err, map[string]interface{}{
				"order_id": order.ID,
			})
		}
	}

	return &order, nil
}

// GetOrder fetches a single order.
func (s *Service) GetOrder(ctx context.Context, id int) (*models.Order, error) {
	return s.store.Lookup(ctx, id)
}

// ListOrders fetches all orders.
func (s *Service) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.store.All(ctx)
}

// UpdateStatus overwrites an order's status with any member of the
// status set. Transitions are deliberately unconstrained; only enum
// membership is validated.
func (s *Service) UpdateStatus(ctx context.Context, id int, status models.OrderStatus, requestID string) (*models.Order, error) {
	if !status.IsValid() {
		return nil, validation.Errors{{
			Field:   "status",
			Rule:    "status_known",
			Message: "status must be one of: pending, confirmed, ready, delivered",
		}}
	}

	order, err := s.store.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	oldStatus := order.Status

	if err := s.store.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	order.Status = status

	s.logger.Info("order_status_updated", fmt.Sprintf("Order %d status set to %s", id, status), requestID, map[string]interface{}{
		"order_id":   id,
		"old_status": string(oldStatus),
		"new_status": string(status),
	})

	if s.publisher != nil {
		event := messaging.OrderStatusChangedEvent{
			OrderID:   id,
			OldStatus: oldStatus,
			NewStatus: status,
			Timestamp: time.Now().UTC(),
		}
		if err := s.publisher.PublishStatusChanged(ctx, event); err != nil {
			s.logger.Error("event_publish_failed", "Failed to publish status changed event", requestID, err, map[string]interface{}{
				"order_id": id,
			})
		}
	}

	return order, nil
}

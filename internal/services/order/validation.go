package order

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"restaurant-orders/internal/models"
	"restaurant-orders/internal/storage"
	"restaurant-orders/internal/validation"
)

var phonePattern = regexp.MustCompile(`^\d{10}$`)

// maxUnitPrice bounds unit prices to 6 significant digits at 2 decimal
// places.
var maxUnitPrice = decimal.New(1000000, -2) // 10000.00

// CatalogLookup is the narrow read-only capability the order validator
// needs from the catalog store.
type CatalogLookup func(ctx context.Context, id int) (*models.FoodItem, error)

// ValidateOrder checks a candidate order's structure and reports every
// failing rule. The rules are independent conjunctions, so they may be
// evaluated and tested in any order. Catalog consistency is checked
// separately by CheckCatalog.
func ValidateOrder(order *models.Order) error {
	rules := []validation.Rule{
		{
			Field: "customer.name", Name: "customer_name_length",
			Message: "customer name must be between 2 and 50 characters",
			Ok: func() bool {
				n := utf8.RuneCountInString(order.Customer.Name)
				return n >= 2 && n <= 50
			},
		},
		{
			Field: "customer.phone", Name: "customer_phone_format",
			Message: "phone must be exactly 10 digits",
			Ok:      func() bool { return phonePattern.MatchString(order.Customer.Phone) },
		},
		{
			Field: "customer.address", Name: "customer_address_length",
			Message: "address must be at most 200 characters",
			Ok: func() bool {
				return order.Customer.Address == nil || utf8.RuneCountInString(*order.Customer.Address) <= 200
			},
		},
		{
			Field: "items", Name: "items_required",
			Message: "order must contain at least one item",
			Ok:      func() bool { return len(order.Items) >= 1 },
		},
		{
			Field: "delivery_fee", Name: "delivery_fee_precision",
			Message: "delivery fee must have at most 2 decimal places",
			Ok:      func() bool { return order.DeliveryFee.HasMaxPlaces(2) },
		},
		{
			Field: "special_instructions", Name: "special_instructions_length",
			Message: "special instructions must be at most 200 characters",
			Ok: func() bool {
				return order.SpecialInstructions == nil || utf8.RuneCountInString(*order.SpecialInstructions) <= 200
			},
		},
	}

	for i, item := range order.Items {
		item := item
		rules = append(rules,
			validation.Rule{
				Field: fmt.Sprintf("items[%d].menu_item_id", i), Name: "menu_item_id_positive",
				Message: "menu item id must be greater than 0",
				Ok:      func() bool { return item.MenuItemID > 0 },
			},
			validation.Rule{
				Field: fmt.Sprintf("items[%d].menu_item_name", i), Name: "menu_item_name_length",
				Message: "menu item name must be between 1 and 100 characters",
				Ok: func() bool {
					n := utf8.RuneCountInString(item.MenuItemName)
					return n >= 1 && n <= 100
				},
			},
			validation.Rule{
				Field: fmt.Sprintf("items[%d].quantity", i), Name: "quantity_range",
				Message: "quantity must be between 1 and 10",
				Ok:      func() bool { return item.Quantity >= 1 && item.Quantity <= 10 },
			},
			validation.Rule{
				Field: fmt.Sprintf("items[%d].unit_price", i), Name: "unit_price_positive",
				Message: "unit price must be greater than 0",
				Ok:      func() bool { return item.UnitPrice.IsPositive() },
			},
			validation.Rule{
				Field: fmt.Sprintf("items[%d].unit_price", i), Name: "unit_price_precision",
				Message: "unit price must have at most 6 digits with 2 decimal places",
				Ok: func() bool {
					return item.UnitPrice.HasMaxPlaces(2) && item.UnitPrice.LessThan(maxUnitPrice)
				},
			},
		)
	}

	return validation.Check(rules)
}

// CheckCatalog verifies that every referenced menu item exists and is
// currently available. The first inconsistent reference fails the whole
// order; nothing is stored and no id is consumed.
func CheckCatalog(ctx context.Context, order *models.Order, lookup CatalogLookup) error {
	for _, item := range order.Items {
		menuItem, err := lookup(ctx, item.MenuItemID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return &validation.ReferentialError{
					MenuItemID: item.MenuItemID,
					Reason:     validation.ReasonNotFound,
					Message:    fmt.Sprintf("menu item with id %d not found", item.MenuItemID),
				}
			}
			return fmt.Errorf("catalog lookup for menu item %d: %w", item.MenuItemID, err)
		}

		if !menuItem.IsAvailable {
			return &validation.ReferentialError{
				MenuItemID: item.MenuItemID,
				Reason:     validation.ReasonUnavailable,
				Message:    fmt.Sprintf("menu item %q is not available", menuItem.Name),
			}
		}
	}
	return nil
}

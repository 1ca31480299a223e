package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"restaurant-orders/internal/database"
	"restaurant-orders/internal/models"
)

// Decimal columns travel as text in both directions so the exact value
// survives the round trip without a float conversion.

// PostgresCatalog is a CatalogStore backed by the menu_items table.
type PostgresCatalog struct {
	db *database.DB
}

// NewPostgresCatalog creates a catalog store over the given connection.
func NewPostgresCatalog(db *database.DB) *PostgresCatalog {
	return &PostgresCatalog{db: db}
}

const foodItemColumns = `id, name, description, category, price::text, is_available,
	preparation_time, ingredients, calories, is_vegetarian, is_spicy`

func scanFoodItem(row pgx.Row) (*models.FoodItem, error) {
	var item models.FoodItem
	var price string

	err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Category, &price,
		&item.IsAvailable, &item.PreparationTime, &item.Ingredients, &item.Calories,
		&item.IsVegetarian, &item.IsSpicy)
	if err != nil {
		return nil, err
	}

	item.Price, err = models.MoneyFromString(price)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored price: %w", err)
	}
	return &item, nil
}

func (c *PostgresCatalog) Lookup(ctx context.Context, id int) (*models.FoodItem, error) {
	row := c.db.QueryRow(ctx,
		`SELECT `+foodItemColumns+` FROM menu_items WHERE id = $1`, id)

	item, err := scanFoodItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Entity: "menu item", ID: id}
		}
		return nil, err
	}
	return item, nil
}

func (c *PostgresCatalog) Insert(ctx context.Context, item models.FoodItem) (int, error) {
	var id int
	err := c.db.QueryRow(ctx,
		`INSERT INTO menu_items (name, description, category, price, is_available,
			preparation_time, ingredients, calories, is_vegetarian, is_spicy)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		item.Name, item.Description, item.Category, item.Price.StringFixed(2),
		item.IsAvailable, item.PreparationTime, item.Ingredients, item.Calories,
		item.IsVegetarian, item.IsSpicy).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (c *PostgresCatalog) Replace(ctx context.Context, id int, item models.FoodItem) error {
	tag, err := c.db.Pool.Exec(ctx,
		`UPDATE menu_items SET name = $2, description = $3, category = $4, price = $5,
			is_available = $6, preparation_time = $7, ingredients = $8, calories = $9,
			is_vegetarian = $10, is_spicy = $11, updated_at = NOW()
		 WHERE id = $1`,
		id, item.Name, item.Description, item.Category, item.Price.StringFixed(2),
		item.IsAvailable, item.PreparationTime, item.Ingredients, item.Calories,
		item.IsVegetarian, item.IsSpicy)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Entity: "menu item", ID: id}
	}
	return nil
}

func (c *PostgresCatalog) Delete(ctx context.Context, id int) error {
	tag, err := c.db.Pool.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Entity: "menu item", ID: id}
	}
	return nil
}

func (c *PostgresCatalog) All(ctx context.Context) ([]models.FoodItem, error) {
	return c.queryItems(ctx,
		`SELECT `+foodItemColumns+` FROM menu_items ORDER BY id`)
}

func (c *PostgresCatalog) ByCategory(ctx context.Context, category models.FoodCategory) ([]models.FoodItem, error) {
	return c.queryItems(ctx,
		`SELECT `+foodItemColumns+` FROM menu_items WHERE category = $1 ORDER BY id`, category)
}

func (c *PostgresCatalog) queryItems(ctx context.Context, sql string, args ...interface{}) ([]models.FoodItem, error) {
	rows, err := c.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.FoodItem{}
	for rows.Next() {
		item, err := scanFoodItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// PostgresOrders is an OrderStore backed by the orders and order_items
// tables.
type PostgresOrders struct {
	db *database.DB
}

// NewPostgresOrders creates an order store over the given connection.
func NewPostgresOrders(db *database.DB) *PostgresOrders {
	return &PostgresOrders{db: db}
}

func (o *PostgresOrders) Insert(ctx context.Context, order models.Order) (int, error) {
	tx, err := o.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int
	err = tx.QueryRow(ctx,
		`INSERT INTO orders (customer_name, customer_phone, customer_address, status,
			delivery_fee, special_instructions)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		order.Customer.Name, order.Customer.Phone, order.Customer.Address,
		order.Status, order.DeliveryFee.StringFixed(2), order.SpecialInstructions).Scan(&id)
	if err != nil {
		return 0, err
	}

	for _, item := range order.Items {
		_, err = tx.Exec(ctx,
			`INSERT INTO order_items (order_id, menu_item_id, menu_item_name, quantity, unit_price)
			 VALUES ($1, $2, $3, $4, $5)`,
			id, item.MenuItemID, item.MenuItemName, item.Quantity, item.UnitPrice.StringFixed(2))
		if err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit order: %w", err)
	}
	return id, nil
}

func (o *PostgresOrders) Lookup(ctx context.Context, id int) (*models.Order, error) {
	row := o.db.QueryRow(ctx,
		`SELECT id, customer_name, customer_phone, customer_address, status,
			delivery_fee::text, special_instructions
		 FROM orders WHERE id = $1`, id)

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Entity: "order", ID: id}
		}
		return nil, err
	}

	items, err := o.queryItemsByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (o *PostgresOrders) All(ctx context.Context) ([]models.Order, error) {
	rows, err := o.db.Query(ctx,
		`SELECT id, customer_name, customer_phone, customer_address, status,
			delivery_fee::text, special_instructions
		 FROM orders ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}
	index := map[int]int{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		index[order.ID] = len(orders)
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	itemRows, err := o.db.Query(ctx,
		`SELECT order_id, menu_item_id, menu_item_name, quantity, unit_price::text
		 FROM order_items ORDER BY order_id, id`)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID int
		item, err := scanOrderItem(itemRows, &orderID)
		if err != nil {
			return nil, err
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	return orders, itemRows.Err()
}

func (o *PostgresOrders) UpdateStatus(ctx context.Context, id int, status models.OrderStatus) error {
	tag, err := o.db.Pool.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Entity: "order", ID: id}
	}
	return nil
}

func (o *PostgresOrders) queryItemsByOrder(ctx context.Context, orderID int) ([]models.OrderItem, error) {
	rows, err := o.db.Query(ctx,
		`SELECT order_id, menu_item_id, menu_item_name, quantity, unit_price::text
		 FROM order_items WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var id int
		item, err := scanOrderItem(rows, &id)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanOrder(row pgx.Row) (*models.Order, error) {
	var order models.Order
	var fee string

	err := row.Scan(&order.ID, &order.Customer.Name, &order.Customer.Phone,
		&order.Customer.Address, &order.Status, &fee, &order.SpecialInstructions)
	if err != nil {
		return nil, err
	}

	order.DeliveryFee, err = models.MoneyFromString(fee)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored delivery fee: %w", err)
	}
	return &order, nil
}

func scanOrderItem(row pgx.Row, orderID *int) (models.OrderItem, error) {
	var item models.OrderItem
	var price string

	err := row.Scan(orderID, &item.MenuItemID, &item.MenuItemName, &item.Quantity, &price)
	if err != nil {
		return models.OrderItem{}, err
	}

	item.UnitPrice, err = models.MoneyFromString(price)
	if err != nil {
		return models.OrderItem{}, fmt.Errorf("failed to parse stored unit price: %w", err)
	}
	return item, nil
}

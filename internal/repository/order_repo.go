package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"storefront/internal/domain"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type postgresOrderRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresOrderRepository(db *sql.DB, logger *logrus.Logger) domain.OrderRepository {
	return &postgresOrderRepository{
		db:  db,
		log: logger,
	}
}

// CreateOrder inserts the order row and all of its item rows in a single
// transaction. Either everything is persisted or nothing is.
func (r *postgresOrderRepository) CreateOrder(order *domain.Order) (*domain.Order, error) {
	tx, err := r.db.Begin()
	if err != nil {
		r.log.Errorf("Failed to begin transaction: %v", err)
		return nil, fmt.Errorf("could not start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			r.log.Error("Recovered from panic, rolling back transaction")
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			r.log.Warnf("Rolling back order transaction due to error: %v", err)
			if rbErr := tx.Rollback(); rbErr != nil {
				r.log.Errorf("Failed to rollback transaction: %v", rbErr)
			}
		} else {
			if cErr := tx.Commit(); cErr != nil {
				r.log.Errorf("Failed to commit transaction: %v", cErr)
				err = fmt.Errorf("failed to commit transaction: %w", cErr)
			}
		}
	}()

	var userID sql.NullString
	if order.UserID != nil {
		userID = sql.NullString{String: *order.UserID, Valid: true}
	}

	orderQuery := `
        INSERT INTO orders (user_id, customer_name, customer_email, customer_phone,
                            shipping_address, shipping_city, shipping_state, shipping_zip,
                            total, status, payment_method, notes)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id, created_at
    `
	err = tx.QueryRow(orderQuery,
		userID,
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
		order.ShippingAddress,
		order.ShippingCity,
		order.ShippingState,
		order.ShippingZip,
		order.Total.String(),
		order.Status,
		order.PaymentMethod,
		nullString(order.Notes),
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		r.log.Errorf("Failed to insert order for customer '%s': %v", order.CustomerName, err)
		return nil, fmt.Errorf("could not create order entry: %w", err)
	}
	r.log.Infof("Order entry created with ID: %d", order.ID)

	itemQuery := `
        INSERT INTO order_items (order_id, product_id, product_name, price, quantity)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	stmt, err := tx.Prepare(itemQuery)
	if err != nil {
		r.log.Errorf("Failed to prepare order item statement: %v", err)
		return nil, fmt.Errorf("could not prepare item statement: %w", err)
	}
	defer stmt.Close()

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err = stmt.QueryRow(order.ID, item.ProductID, item.ProductName, item.Price.String(), item.Quantity).Scan(&item.ID)
		if err != nil {
			r.log.Errorf("Failed to insert order item (product_id: %d) for order %d: %v", item.ProductID, order.ID, err)
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" {
				return nil, fmt.Errorf("invalid item data (product_id: %d): %s", item.ProductID, pqErr.Message)
			}
			return nil, fmt.Errorf("could not create order item (product_id: %d): %w", item.ProductID, err)
		}
	}

	r.log.Infof("Order %d created successfully with %d items.", order.ID, len(order.Items))
	return order, nil
}

const orderColumns = `id, user_id, customer_name, customer_email, customer_phone,
        shipping_address, shipping_city, shipping_state, shipping_zip,
        total, status, payment_method, notes, created_at`

func (r *postgresOrderRepository) GetOrderByID(id int) (*domain.Order, error) {
	order := &domain.Order{}
	var userID, notes sql.NullString

	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&order.ID,
		&userID,
		&order.CustomerName,
		&order.CustomerEmail,
		&order.CustomerPhone,
		&order.ShippingAddress,
		&order.ShippingCity,
		&order.ShippingState,
		&order.ShippingZip,
		&order.Total,
		&order.Status,
		&order.PaymentMethod,
		&notes,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Order with ID %d not found", id)
			return nil, fmt.Errorf("order with id %d not found", id)
		}
		r.log.Errorf("Failed to get order by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not retrieve order: %w", err)
	}
	if userID.Valid {
		order.UserID = &userID.String
	}
	order.Notes = notes.String

	items, err := r.getOrderItems(id)
	if err != nil {
		return nil, err
	}
	order.Items = items

	r.log.Infof("Order %d retrieved successfully with %d items.", order.ID, len(order.Items))
	return order, nil
}

func (r *postgresOrderRepository) getOrderItems(orderID int) ([]domain.OrderItem, error) {
	itemsQuery := `
        SELECT id, order_id, product_id, product_name, price, quantity
        FROM order_items
        WHERE order_id = $1
        ORDER BY id ASC
    `
	rows, err := r.db.Query(itemsQuery, orderID)
	if err != nil {
		r.log.Errorf("Failed to query order items for order ID %d: %v", orderID, err)
		return nil, fmt.Errorf("could not retrieve order items: %w", err)
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.Price, &item.Quantity); err != nil {
			r.log.Errorf("Failed to scan order item row for order ID %d: %v", orderID, err)
			return nil, fmt.Errorf("error scanning order item: %w", err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during order items iteration for order ID %d: %v", orderID, err)
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}

func (r *postgresOrderRepository) UpdateOrderStatus(id int, status domain.OrderStatus) (*domain.Order, error) {
	query := `
        UPDATE orders
        SET status = $1
        WHERE id = $2
    `
	result, err := r.db.Exec(query, status, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" {
			r.log.Warnf("Invalid status value '%s' for order ID %d: %v", status, id, err)
			return nil, fmt.Errorf("invalid order status provided: %s", status)
		}
		r.log.Errorf("Failed to update status for order ID %d: %v", id, err)
		return nil, fmt.Errorf("could not update order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("could not confirm order status update: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Order with ID %d not found for status update", id)
		return nil, fmt.Errorf("order with id %d not found", id)
	}

	r.log.Infof("Status updated successfully for order %d to '%s'.", id, status)
	return r.GetOrderByID(id)
}

func (r *postgresOrderRepository) DeleteOrder(id int) error {
	// order_items rows go with the order via ON DELETE CASCADE.
	result, err := r.db.Exec(`DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.log.Errorf("Failed to delete order ID %d: %v", id, err)
		return fmt.Errorf("could not delete order: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not confirm order deletion: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Attempted to delete non-existent order ID %d", id)
		return fmt.Errorf("order with id %d not found", id)
	}
	r.log.Infof("Order deleted successfully with ID: %d", id)
	return nil
}

func (r *postgresOrderRepository) ListOrders(limit, offset int) ([]domain.Order, error) {
	limit, offset = normalizePage(limit, offset)

	ordersQuery := `SELECT ` + orderColumns + ` FROM orders
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ordersQuery, limit, offset)
	if err != nil {
		r.log.Errorf("Failed to list orders (limit %d, offset %d): %v", limit, offset, err)
		return nil, fmt.Errorf("could not retrieve orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	orderIDs := []int{}

	for rows.Next() {
		var order domain.Order
		var userID, notes sql.NullString
		if err := rows.Scan(
			&order.ID,
			&userID,
			&order.CustomerName,
			&order.CustomerEmail,
			&order.CustomerPhone,
			&order.ShippingAddress,
			&order.ShippingCity,
			&order.ShippingState,
			&order.ShippingZip,
			&order.Total,
			&order.Status,
			&order.PaymentMethod,
			&notes,
			&order.CreatedAt,
		); err != nil {
			r.log.Errorf("Failed to scan order row: %v", err)
			return nil, fmt.Errorf("error scanning order data: %w", err)
		}
		if userID.Valid {
			order.UserID = &userID.String
		}
		order.Notes = notes.String
		orders = append(orders, order)
		orderIDs = append(orderIDs, order.ID)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during orders iteration: %v", err)
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if len(orders) == 0 {
		return []domain.Order{}, nil
	}

	itemsQuery := `
        SELECT id, order_id, product_id, product_name, price, quantity
        FROM order_items
        WHERE order_id = ANY($1::int[])
        ORDER BY order_id, id
    `
	itemRows, err := r.db.Query(itemsQuery, pq.Array(orderIDs))
	if err != nil {
		r.log.Errorf("Failed to query items for multiple orders (%v): %v", orderIDs, err)
		return nil, fmt.Errorf("could not retrieve order items for list: %w", err)
	}
	defer itemRows.Close()

	itemsMap := make(map[int][]domain.OrderItem)
	for itemRows.Next() {
		var item domain.OrderItem
		if err := itemRows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.Price, &item.Quantity); err != nil {
			r.log.Errorf("Failed to scan order item row during multi-order fetch: %v", err)
			return nil, fmt.Errorf("error scanning order item data for list: %w", err)
		}
		itemsMap[item.OrderID] = append(itemsMap[item.OrderID], item)
	}
	if err = itemRows.Err(); err != nil {
		r.log.Errorf("Error during multi-order items iteration: %v", err)
		return nil, fmt.Errorf("error iterating order items for list: %w", err)
	}

	for i := range orders {
		if items, ok := itemsMap[orders[i].ID]; ok {
			orders[i].Items = items
		} else {
			orders[i].Items = []domain.OrderItem{}
		}
	}

	r.log.Infof("Retrieved %d orders (limit %d, offset %d)", len(orders), limit, offset)
	return orders, nil
}

package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/emreokur/319FinalProject/internal/domain"
	"github.com/emreokur/319FinalProject/pkg/errors"
)

type orderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB, logger *zap.Logger) *orderRepository {
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

// PlaceOrder writes the order, its items, the per-product stock decrements
// and the cart clear as one transaction. A product whose stock cannot cover
// the ordered quantity aborts the whole write with ErrInsufficientStock, so
// stock never goes negative and no partial order is left behind.
func (r *orderRepository) PlaceOrder(ctx context.Context, order *domain.Order) error {
	now := time.Now()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now

	shippingJSON, err := json.Marshal(order.Shipping)
	if err != nil {
		return err
	}
	statusJSON, err := json.Marshal(order.Status)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, shipping, subtotal, tax, shipping_cost, total, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		order.ID,
		order.UserID,
		shippingJSON,
		order.Subtotal,
		order.Tax,
		order.ShippingCost,
		order.Total,
		statusJSON,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert order", zap.Error(err))
		return err
	}

	if err := insertOrderItems(ctx, tx, order); err != nil {
		r.logger.Error("Failed to insert order items", zap.Error(err))
		return err
	}

	// Decrement stock with a floor check per item; any shortfall rolls back
	// the order insert as well.
	for _, item := range order.Items {
		result, err := tx.ExecContext(ctx, `
			UPDATE products
			SET quantity = quantity - $2, updated_at = $3
			WHERE id = $1 AND quantity >= $2
		`, item.ProductID, item.Quantity, now)
		if err != nil {
			r.logger.Error("Failed to decrement product stock", zap.Error(err), zap.Int64("product_id", item.ProductID))
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			var available int
			err := tx.QueryRowContext(ctx, `SELECT quantity FROM products WHERE id = $1`, item.ProductID).Scan(&available)
			if err == sql.ErrNoRows {
				return &errors.ErrNotFound{Resource: "product", ID: strconv.FormatInt(item.ProductID, 10)}
			}
			if err != nil {
				return err
			}
			return &errors.ErrInsufficientStock{ProductID: item.ProductID, Requested: item.Quantity, Available: available}
		}
	}

	// Clear the user's cart; a missing cart row is fine here.
	if _, err := tx.ExecContext(ctx, `
		UPDATE carts SET total = 0, version = version + 1, updated_at = $2 WHERE user_id = $1
	`, order.UserID, now); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_user_id = $1`, order.UserID); err != nil {
		return err
	}

	return tx.Commit()
}

func insertOrderItems(ctx context.Context, tx *sql.Tx, order *domain.Order) error {
	if len(order.Items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (id, order_id, product_id, name, price, quantity, image, subtotal, created_at)
		VALUES `

	now := time.Now()
	args := make([]interface{}, 0, len(order.Items)*9)
	for i := range order.Items {
		item := &order.Items[i]
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.OrderID = order.ID
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}

		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			i*9+1, i*9+2, i*9+3, i*9+4, i*9+5, i*9+6, i*9+7, i*9+8, i*9+9)
		args = append(args, item.ID, item.OrderID, item.ProductID, item.Name, item.Price, item.Quantity, item.Image, item.Subtotal, item.CreatedAt)
	}

	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `
		SELECT id, user_id, shipping, subtotal, tax, shipping_cost, total, status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get order by ID", zap.Error(err), zap.String("order_id", id.String()))
		return nil, err
	}

	items, err := r.getItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

func (r *orderRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Order, error) {
	query := `
		SELECT id, user_id, shipping, subtotal, tax, shipping_cost, total, status, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to list orders by user ID", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return r.collectOrders(ctx, rows)
}

func (r *orderRepository) ListAll(ctx context.Context, limit, offset int) ([]*domain.Order, error) {
	query := `
		SELECT id, user_id, shipping, subtotal, tax, shipping_cost, total, status, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list all orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return r.collectOrders(ctx, rows)
}

func (r *orderRepository) collectOrders(ctx context.Context, rows *sql.Rows) ([]*domain.Order, error) {
	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, order := range orders {
		items, err := r.getItems(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		order.Items = items
	}

	return orders, nil
}

func (r *orderRepository) getItems(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, name, price, quantity, image, subtotal, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		r.logger.Error("Failed to get order items", zap.Error(err), zap.String("order_id", orderID.String()))
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Name,
			&item.Price,
			&item.Quantity,
			&item.Image,
			&item.Subtotal,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	statusJSON, err := json.Marshal(status)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1
	`, id, statusJSON, time.Now())
	if err != nil {
		r.logger.Error("Failed to update order status", zap.Error(err), zap.String("order_id", id.String()))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}

	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete order", zap.Error(err), zap.String("order_id", id.String()))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}

	return nil
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var shippingJSON, statusJSON []byte

	err := row.Scan(
		&order.ID,
		&order.UserID,
		&shippingJSON,
		&order.Subtotal,
		&order.Tax,
		&order.ShippingCost,
		&order.Total,
		&statusJSON,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(shippingJSON, &order.Shipping); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(statusJSON, &order.Status); err != nil {
		return nil, err
	}

	return &order, nil
}

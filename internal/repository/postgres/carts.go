package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/emreokur/319FinalProject/internal/domain"
	"github.com/emreokur/319FinalProject/pkg/errors"
)

type cartRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *sql.DB, logger *zap.Logger) *cartRepository {
	return &cartRepository{
		db:     db,
		logger: logger,
	}
}

func (r *cartRepository) GetByUserID(ctx context.Context, userID string) (*domain.Cart, error) {
	query := `
		SELECT user_id, cart_id, total, currency, version, created_at, updated_at
		FROM carts
		WHERE user_id = $1
	`

	var cart domain.Cart
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&cart.UserID,
		&cart.CartID,
		&cart.Total,
		&cart.Currency,
		&cart.Version,
		&cart.CreatedAt,
		&cart.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "cart", ID: userID}
	}
	if err != nil {
		r.logger.Error("Failed to get cart", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}

	items, err := r.getItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.Items = items

	return &cart, nil
}

func (r *cartRepository) getItems(ctx context.Context, userID string) ([]domain.CartItem, error) {
	query := `
		SELECT product_id, name, price, quantity, image, subtotal
		FROM cart_items
		WHERE cart_user_id = $1
		ORDER BY position ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to get cart items", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}
	defer rows.Close()

	items := []domain.CartItem{}
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Price, &item.Quantity, &item.Image, &item.Subtotal); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *cartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	now := time.Now()
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = now
	}
	cart.UpdatedAt = now
	if cart.Currency == "" {
		cart.Currency = "USD"
	}
	cart.Version = 1

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO carts (user_id, cart_id, total, currency, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, cart.UserID, cart.CartID, cart.Total, cart.Currency, cart.Version, cart.CreatedAt, cart.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create cart", zap.Error(err), zap.String("user_id", cart.UserID))
		return err
	}

	if err := insertCartItems(ctx, tx, cart.UserID, cart.Items); err != nil {
		r.logger.Error("Failed to insert cart items", zap.Error(err), zap.String("user_id", cart.UserID))
		return err
	}

	return tx.Commit()
}

// Save replaces the cart's items and total. The version check rejects writes
// based on a stale read; callers should surface that as a conflict rather
// than retrying blindly.
func (r *cartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	cart.UpdatedAt = time.Now()

	result, err := tx.ExecContext(ctx, `
		UPDATE carts
		SET total = $2, version = version + 1, updated_at = $3
		WHERE user_id = $1 AND version = $4
	`, cart.UserID, cart.Total, cart.UpdatedAt, cart.Version)
	if err != nil {
		r.logger.Error("Failed to update cart", zap.Error(err), zap.String("user_id", cart.UserID))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &errors.ErrConflict{Message: "cart was modified concurrently"}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_user_id = $1`, cart.UserID); err != nil {
		return err
	}
	if err := insertCartItems(ctx, tx, cart.UserID, cart.Items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	cart.Version++
	return nil
}

func (r *cartRepository) Clear(ctx context.Context, userID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE carts
		SET total = 0, version = version + 1, updated_at = $2
		WHERE user_id = $1
	`, userID, time.Now())
	if err != nil {
		r.logger.Error("Failed to clear cart", zap.Error(err), zap.String("user_id", userID))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &errors.ErrNotFound{Resource: "cart", ID: userID}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_user_id = $1`, userID); err != nil {
		return err
	}

	return tx.Commit()
}

func insertCartItems(ctx context.Context, tx *sql.Tx, userID string, items []domain.CartItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO cart_items (cart_user_id, position, product_id, name, price, quantity, image, subtotal)
		VALUES `

	args := make([]interface{}, 0, len(items)*8)
	for i, item := range items {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			i*8+1, i*8+2, i*8+3, i*8+4, i*8+5, i*8+6, i*8+7, i*8+8)
		args = append(args, userID, i, item.ProductID, item.Name, item.Price, item.Quantity, item.Image, item.Subtotal)
	}

	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/emreokur/319FinalProject/internal/domain"
	"github.com/emreokur/319FinalProject/pkg/errors"
)

type productRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sql.DB, logger *zap.Logger) *productRepository {
	return &productRepository{
		db:     db,
		logger: logger,
	}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (name, description, price, quantity, images, specs, seller, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	specsJSON, err := marshalSpecs(product.Specs)
	if err != nil {
		return err
	}

	err = r.db.QueryRowContext(ctx, query,
		product.Name,
		product.Description,
		product.Price,
		product.Quantity,
		product.Images,
		specsJSON,
		product.Seller,
		product.CreatedAt,
		product.UpdatedAt,
	).Scan(&product.ID)

	if err != nil {
		r.logger.Error("Failed to create product", zap.Error(err))
		return err
	}

	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, name, description, price, quantity, images, specs, seller, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "product", ID: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		r.logger.Error("Failed to get product by ID", zap.Error(err), zap.Int64("product_id", id))
		return nil, err
	}

	return product, nil
}

func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT id, name, description, price, quantity, images, specs, seller, created_at, updated_at
		FROM products
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, rows.Err()
}

// Update replaces the fixed field set of a product. Specs and seller are
// overwritten with whatever the caller supplies; a nil value resets the
// column. CreatedAt is preserved unless the caller carries one.
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, quantity = $5, images = $6,
			specs = $7, seller = $8, created_at = COALESCE($9, created_at), updated_at = $10
		WHERE id = $1
	`

	product.UpdatedAt = time.Now()

	specsJSON, err := marshalSpecs(product.Specs)
	if err != nil {
		return err
	}

	var createdAt *time.Time
	if !product.CreatedAt.IsZero() {
		createdAt = &product.CreatedAt
	}

	result, err := r.db.ExecContext(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.Quantity,
		product.Images,
		specsJSON,
		product.Seller,
		createdAt,
		product.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update product", zap.Error(err), zap.Int64("product_id", product.ID))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &errors.ErrNotFound{Resource: "product", ID: strconv.FormatInt(product.ID, 10)}
	}

	return nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete product", zap.Error(err), zap.Int64("product_id", id))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &errors.ErrNotFound{Resource: "product", ID: strconv.FormatInt(id, 10)}
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var product domain.Product
	var specsJSON []byte
	var seller sql.NullString

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Quantity,
		&product.Images,
		&specsJSON,
		&seller,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if seller.Valid {
		product.Seller = &seller.String
	}
	if len(specsJSON) > 0 {
		if err := json.Unmarshal(specsJSON, &product.Specs); err != nil {
			return nil, err
		}
	}

	return &product, nil
}

func marshalSpecs(specs map[string]interface{}) ([]byte, error) {
	if specs == nil {
		return nil, nil
	}
	return json.Marshal(specs)
}

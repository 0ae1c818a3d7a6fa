package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/emreokur/319FinalProject/internal/domain"
	"github.com/emreokur/319FinalProject/internal/repository"
	"github.com/emreokur/319FinalProject/pkg/errors"
)

type productService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(repos *repository.Repositories, logger *zap.Logger) *productService {
	return &productService{
		repos:  repos,
		logger: logger,
	}
}

// ProductInput is the create/update payload for a catalog entry.
type ProductInput struct {
	Name        string                 `json:"name" binding:"required"`
	Description string                 `json:"description"`
	Price       float64                `json:"price" binding:"min=0"`
	Quantity    int                    `json:"quantity" binding:"min=0"`
	Images      string                 `json:"images"`
	Specs       map[string]interface{} `json:"specs"`
	Seller      *string                `json:"seller"`
}

// ListProducts returns the full catalog newest first.
func (s *productService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.repos.Product.List(ctx)
}

// GetProduct fetches one catalog entry.
func (s *productService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repos.Product.GetByID(ctx, id)
}

// CreateProduct adds a catalog entry. The id is assigned by the database.
func (s *productService) CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if input.Name == "" {
		return nil, &errors.ErrValidation{Message: "product name is required"}
	}

	product := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
		Images:      input.Images,
		Specs:       input.Specs,
		Seller:      input.Seller,
	}

	if err := s.repos.Product.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created", zap.Int64("product_id", product.ID), zap.String("name", product.Name))
	return product, nil
}

// UpdateProduct replaces the editable fields of a catalog entry. The
// original creation timestamp is preserved.
func (s *productService) UpdateProduct(ctx context.Context, id int64, input ProductInput) (*domain.Product, error) {
	if input.Name == "" {
		return nil, &errors.ErrValidation{Message: "product name is required"}
	}

	product, err := s.repos.Product.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Quantity = input.Quantity
	product.Images = input.Images
	product.Specs = input.Specs
	product.Seller = input.Seller

	if err := s.repos.Product.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct removes a catalog entry. Existing cart lines and orders that
// reference it keep their captured snapshots.
func (s *productService) DeleteProduct(ctx context.Context, id int64) error {
	return s.repos.Product.Delete(ctx, id)
}

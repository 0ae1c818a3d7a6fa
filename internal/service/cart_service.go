package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/emreokur/319FinalProject/internal/domain"
	"github.com/emreokur/319FinalProject/internal/repository"
	"github.com/emreokur/319FinalProject/pkg/errors"
)

type cartService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(repos *repository.Repositories, logger *zap.Logger) *cartService {
	return &cartService{
		repos:  repos,
		logger: logger,
	}
}

// GetCart returns the user's cart, or a synthesized empty cart when none
// exists yet. It never fails on a missing cart.
func (s *cartService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repos.Cart.GetByUserID(ctx, userID)
	if err != nil {
		if _, ok := err.(*errors.ErrNotFound); ok {
			return emptyCart(userID), nil
		}
		return nil, err
	}
	return cart, nil
}

// AddItem adds a line to the cart, merging quantities when the product is
// already present. The cumulative quantity must fit the product's current
// stock. The bool result reports whether a new cart document was created.
func (s *cartService) AddItem(ctx context.Context, userID string, req AddItemRequest) (*domain.Cart, bool, error) {
	product, err := s.repos.Product.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, false, err
	}

	if product.Quantity <= 0 {
		return nil, false, &errors.ErrInsufficientStock{ProductID: product.ID, Requested: req.Quantity, Available: 0}
	}

	cart, err := s.repos.Cart.GetByUserID(ctx, userID)
	if err != nil {
		if _, ok := err.(*errors.ErrNotFound); !ok {
			return nil, false, err
		}

		// No cart yet: create one with the single line
		if req.Quantity > product.Quantity {
			return nil, false, &errors.ErrInsufficientStock{ProductID: product.ID, Requested: req.Quantity, Available: product.Quantity}
		}
		cart = emptyCart(userID)
		cart.Items = []domain.CartItem{{
			ProductID: req.ProductID,
			Name:      req.Name,
			Price:     req.Price,
			Quantity:  req.Quantity,
			Image:     req.Image,
		}}
		cart.Recalculate()
		if err := s.repos.Cart.Create(ctx, cart); err != nil {
			s.logger.Error("Failed to create cart", zap.Error(err), zap.String("user_id", userID))
			return nil, false, err
		}
		return cart, true, nil
	}

	if idx := cart.FindItem(req.ProductID); idx != -1 {
		newQuantity := cart.Items[idx].Quantity + req.Quantity
		if newQuantity > product.Quantity {
			return nil, false, &errors.ErrInsufficientStock{ProductID: product.ID, Requested: newQuantity, Available: product.Quantity}
		}
		cart.Items[idx].Quantity = newQuantity
	} else {
		if req.Quantity > product.Quantity {
			return nil, false, &errors.ErrInsufficientStock{ProductID: product.ID, Requested: req.Quantity, Available: product.Quantity}
		}
		cart.Items = append(cart.Items, domain.CartItem{
			ProductID: req.ProductID,
			Name:      req.Name,
			Price:     req.Price,
			Quantity:  req.Quantity,
			Image:     req.Image,
		})
	}

	cart.Recalculate()
	if err := s.repos.Cart.Save(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.Error(err), zap.String("user_id", userID))
		return nil, false, err
	}

	return cart, false, nil
}

// UpdateItemQuantity sets the quantity of an existing line.
func (s *cartService) UpdateItemQuantity(ctx context.Context, userID string, productID int64, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, &errors.ErrValidation{Message: "invalid quantity"}
	}

	product, err := s.repos.Product.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if quantity > product.Quantity {
		return nil, &errors.ErrInsufficientStock{ProductID: product.ID, Requested: quantity, Available: product.Quantity}
	}

	cart, err := s.repos.Cart.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindItem(productID)
	if idx == -1 {
		return nil, &errors.ErrNotFound{Resource: "cart item", ID: fmt.Sprintf("%d", productID)}
	}

	cart.Items[idx].Quantity = quantity
	cart.Recalculate()

	if err := s.repos.Cart.Save(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}

	return cart, nil
}

// RemoveItem drops a line from the cart.
func (s *cartService) RemoveItem(ctx context.Context, userID string, productID int64) (*domain.Cart, error) {
	cart, err := s.repos.Cart.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindItem(productID)
	if idx == -1 {
		return nil, &errors.ErrNotFound{Resource: "cart item", ID: fmt.Sprintf("%d", productID)}
	}

	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	cart.Recalculate()

	if err := s.repos.Cart.Save(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}

	return cart, nil
}

// ClearCart empties the cart in place. The cart document itself survives,
// keeping its cart id.
func (s *cartService) ClearCart(ctx context.Context, userID string) (*domain.Cart, error) {
	if err := s.repos.Cart.Clear(ctx, userID); err != nil {
		return nil, err
	}
	return s.repos.Cart.GetByUserID(ctx, userID)
}

func emptyCart(userID string) *domain.Cart {
	return &domain.Cart{
		UserID:   userID,
		CartID:   "cart_" + uuid.NewString(),
		Items:    []domain.CartItem{},
		Total:    0,
		Currency: "USD",
	}
}

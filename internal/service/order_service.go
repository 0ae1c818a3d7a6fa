package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/emreokur/319FinalProject/internal/domain"
	"github.com/emreokur/319FinalProject/internal/repository"
	"github.com/emreokur/319FinalProject/pkg/errors"
)

type orderService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(repos *repository.Repositories, logger *zap.Logger) *orderService {
	return &orderService{
		repos:  repos,
		logger: logger,
	}
}

// PlaceOrder converts a checkout request into an order: the order document,
// its items, every stock decrement and the cart clear commit or roll back
// together. The new order starts with received_order completed and every
// other stage unset.
func (s *orderService) PlaceOrder(ctx context.Context, userID string, req PlaceOrderRequest) (*domain.Order, error) {
	if len(req.Items) == 0 {
		return nil, &errors.ErrValidation{Message: "your cart is empty"}
	}

	now := time.Now()
	order := &domain.Order{
		UserID: userID,
		Shipping: domain.ShippingInfo{
			FullName: req.FullName,
			Email:    req.Email,
			Address:  req.Address,
			City:     req.City,
			State:    req.State,
			ZipCode:  req.ZipCode,
			Country:  req.Country,
		},
		Subtotal:     req.Subtotal,
		Tax:          req.Tax,
		ShippingCost: req.ShippingCost,
		Total:        req.Total,
		Status:       domain.NewOrderStatus(now),
		CreatedAt:    now,
	}

	order.Items = make([]domain.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		subtotal := it.Subtotal
		if subtotal == 0 {
			subtotal = it.Price * float64(it.Quantity)
		}
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Image:     it.Image,
			Subtotal:  subtotal,
		})
	}

	s.logger.Info("Placing order", zap.String("user_id", userID), zap.Int("item_count", len(order.Items)))
	if err := s.repos.Order.PlaceOrder(ctx, order); err != nil {
		s.logger.Error("Failed to place order", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}

	event := &domain.OrderEvent{
		OrderID:   order.ID,
		EventType: "order_created",
		EventData: map[string]interface{}{
			"user_id":    userID,
			"item_count": len(order.Items),
			"total":      order.Total,
		},
	}
	if err := s.repos.OrderEvent.Create(ctx, event); err != nil {
		s.logger.Warn("Failed to record order event",
			zap.Error(err),
			zap.String("order_id", order.ID.String()),
			zap.String("event_type", event.EventType),
		)
	}

	return order, nil
}

// GetOrder fetches a single order scoped to its owner. A mismatched owner
// reads the same as a missing order.
func (s *orderService) GetOrder(ctx context.Context, userID string, id uuid.UUID) (*domain.Order, error) {
	order, err := s.repos.Order.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	return order, nil
}

// ListOrders returns the user's orders newest first.
func (s *orderService) ListOrders(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.repos.Order.ListByUserID(ctx, userID)
}

// CancelOrder sets the cancelled side flag. Allowed only while the order has
// not been packed; the flag is never reversed once set.
func (s *orderService) CancelOrder(ctx context.Context, userID string, id uuid.UUID) (*domain.Order, error) {
	order, err := s.GetOrder(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanCancel() {
		return nil, &errors.ErrInvalidTransition{Message: "cannot cancel: already packed or not found"}
	}

	order.Status.Cancel(time.Now())
	if err := s.repos.Order.UpdateStatus(ctx, order.ID, order.Status); err != nil {
		return nil, err
	}

	event := &domain.OrderEvent{
		OrderID:   order.ID,
		EventType: "order_cancelled",
		EventData: map[string]interface{}{"user_id": userID},
	}
	if err := s.repos.OrderEvent.Create(ctx, event); err != nil {
		s.logger.Warn("Failed to record order event",
			zap.Error(err),
			zap.String("order_id", order.ID.String()),
			zap.String("event_type", event.EventType),
		)
	}

	return order, nil
}

// RequestReturn sets the return_requested side flag. Allowed only after the
// order has shipped and at most once.
func (s *orderService) RequestReturn(ctx context.Context, userID string, id uuid.UUID) (*domain.Order, error) {
	order, err := s.GetOrder(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanRequestReturn() {
		return nil, &errors.ErrInvalidTransition{Message: "cannot request return"}
	}

	order.Status.RequestReturn(time.Now())
	if err := s.repos.Order.UpdateStatus(ctx, order.ID, order.Status); err != nil {
		return nil, err
	}

	event := &domain.OrderEvent{
		OrderID:   order.ID,
		EventType: "return_requested",
		EventData: map[string]interface{}{"user_id": userID},
	}
	if err := s.repos.OrderEvent.Create(ctx, event); err != nil {
		s.logger.Warn("Failed to record order event",
			zap.Error(err),
			zap.String("order_id", order.ID.String()),
			zap.String("event_type", event.EventType),
		)
	}

	return order, nil
}

// ListAllOrders returns every order newest first, for the admin listing.
func (s *orderService) ListAllOrders(ctx context.Context, limit, offset int) ([]*domain.Order, error) {
	return s.repos.Order.ListAll(ctx, limit, offset)
}

// SetOrderStage toggles one of the four fulfillment stages. The timestamp is
// stamped only when the stage flips to completed. A cancelled order is
// terminal: no further stage toggles are accepted.
func (s *orderService) SetOrderStage(ctx context.Context, id uuid.UUID, stage string, completed bool) (*domain.Order, error) {
	if !domain.ValidStage(stage) {
		return nil, &errors.ErrValidation{Message: "unknown status stage: " + stage}
	}

	order, err := s.repos.Order.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Status.IsCancelled() {
		return nil, &errors.ErrInvalidTransition{Message: "order is cancelled"}
	}

	order.Status.SetStage(stage, completed, time.Now())
	if err := s.repos.Order.UpdateStatus(ctx, order.ID, order.Status); err != nil {
		return nil, err
	}

	event := &domain.OrderEvent{
		OrderID:   order.ID,
		EventType: "status_change",
		EventData: map[string]interface{}{
			"stage":     stage,
			"completed": completed,
		},
	}
	if err := s.repos.OrderEvent.Create(ctx, event); err != nil {
		s.logger.Warn("Failed to record order event",
			zap.Error(err),
			zap.String("order_id", order.ID.String()),
			zap.String("event_type", event.EventType),
		)
	}

	return order, nil
}

// DeleteOrder removes an order outright. Stock adjustments are not reverted.
func (s *orderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return s.repos.Order.Delete(ctx, id)
}

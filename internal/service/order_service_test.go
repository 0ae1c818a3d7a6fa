package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emreokur/319FinalProject/internal/domain"
	"github.com/emreokur/319FinalProject/pkg/errors"
)

func checkoutRequest(p *domain.Product, quantity int) PlaceOrderRequest {
	subtotal := p.Price * float64(quantity)
	return PlaceOrderRequest{
		FullName: "Alice Example",
		Email:    "alice@example.com",
		Address:  "1 Main St",
		City:     "Ames",
		State:    "IA",
		ZipCode:  "50010",
		Country:  "US",
		Items: []OrderItemInput{
			{ProductID: p.ID, Name: p.Name, Price: p.Price, Quantity: quantity, Image: "/p.jpg", Subtotal: subtotal},
		},
		Subtotal:     subtotal,
		Tax:          subtotal * 0.07,
		ShippingCost: 9.99,
		Total:        subtotal*1.07 + 9.99,
	}
}

func TestPlaceOrder(t *testing.T) {
	tr := newTestRepos()
	svc := NewOrderService(tr.repos, zap.NewNop())
	p := seedProduct(t, tr, "Canon EOS R6", 2499, 5)

	order, err := svc.PlaceOrder(context.Background(), "alice@example.com", checkoutRequest(p, 2))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, order.ID)
	assert.Equal(t, "alice@example.com", order.UserID)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.True(t, order.Status.ReceivedOrder.Completed)
	assert.False(t, order.Status.Packed.Completed)

	// Stock is decremented by the placement.
	stored, err := tr.products.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Quantity)

	// An audit event is recorded.
	events, err := tr.events.GetByOrderID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "order_created", events[0].EventType)
}

func TestPlaceOrderSurvivesEventWriteFailure(t *testing.T) {
	tr := newTestRepos()
	tr.events.createErr = assert.AnError
	svc := NewOrderService(tr.repos, zap.NewNop())
	p := seedProduct(t, tr, "Canon EOS R6", 2499, 5)

	order, err := svc.PlaceOrder(context.Background(), "alice@example.com", checkoutRequest(p, 1))
	require.NoError(t, err, "a failed audit write must not fail the order")
	assert.NotEqual(t, uuid.Nil, order.ID)

	stored, err := tr.products.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.Quantity)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	tr := newTestRepos()
	svc := NewOrderService(tr.repos, zap.NewNop())

	_, err := svc.PlaceOrder(context.Background(), "alice@example.com", PlaceOrderRequest{})
	require.Error(t, err)
	_, ok := err.(*errors.ErrValidation)
	assert.True(t, ok)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	tr := newTestRepos()
	svc := NewOrderService(tr.repos, zap.NewNop())
	p := seedProduct(t, tr, "Rare Lens", 4999, 1)

	_, err := svc.PlaceOrder(context.Background(), "alice@example.com", checkoutRequest(p, 3))
	require.Error(t, err)
	stockErr, ok := err.(*errors.ErrInsufficientStock)
	require.True(t, ok)
	assert.Equal(t, 1, stockErr.Available)

	// Nothing was committed.
	stored, err := tr.products.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Quantity)
	assert.Empty(t, tr.orders.orders)
}

func TestGetOrderScopedToOwner(t *testing.T) {
	tr := newTestRepos()
	svc := NewOrderService(tr.repos, zap.NewNop())
	p := seedProduct(t, tr, "Camera", 1000, 5)

	order, err := svc.PlaceOrder(context.Background(), "alice@example.com", checkoutRequest(p, 1))
	require.NoError(t, err)

	_, err = svc.GetOrder(context.Background(), "mallory@example.com", order.ID)
	require.Error(t, err)
	_, ok := err.(*errors.ErrNotFound)
	assert.True(t, ok, "another user's order reads as missing")

	got, err := svc.GetOrder(context.Background(), "alice@example.com", order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
}

func TestCancelOrder(t *testing.T) {
	tr := newTestRepos()
	svc := NewOrderService(tr.repos, zap.NewNop())
	p := seedProduct(t, tr, "Camera", 1000, 5)

	ctx := context.Background()
	order, err := svc.PlaceOrder(ctx, "alice@example.com", checkoutRequest(p, 1))
	require.NoError(t, err)

	cancelled, err := svc.CancelOrder(ctx, "alice@example.com", order.ID)
	require.NoError(t, err)
	assert.True(t, cancelled.Status.IsCancelled())

	// A second cancel is rejected.
	_, err = svc.CancelOrder(ctx, "alice@example.com", order.ID)
	require.Error(t, err)
	_, ok := err.(*errors.ErrInvalidTransition)
	assert.True(t, ok)
}

func TestCancelOrderAfterPacked(t *testing.T) {
	tr := newTestRepos()
	svc := NewOrderService(tr.repos, zap.NewNop())
	p := seedProduct(t, tr, "Camera", 1000, 5)

	ctx := context.Background()
	order, err := svc.PlaceOrder(ctx, "alice@example.com", checkoutRequest(p, 1))
	require.NoError(t, err)

	_, err = svc.SetOrderStage(ctx, order.ID, domain.StagePacked, true)
	require.NoError(t, err)

	_, err = svc.CancelOrder(ctx, "alice@example.com", order.ID)
	require.Error(t, err)
	_, ok := err.(*errors.ErrInvalidTransition)
	assert.True(t, ok)
}

func TestRequestReturn(t *testing.T) {
	tr := newTestRepos()
	svc := NewOrderService(tr.repos, zap.NewNop())
	p := seedProduct(t, tr, "Camera", 1000, 5)

	ctx := context.Background()
	order, err := svc.PlaceOrder(ctx, "alice@example.com", checkoutRequest(p, 1))
	require.NoError(t, err)

	// Not shipped yet: rejected.
	_, err = svc.RequestReturn(ctx, "alice@example.com", order.ID)
	require.Error(t, err)
	_, ok := err.(*errors.ErrInvalidTransition)
	require.True(t, ok)

	_, err = svc.SetOrderStage(ctx, order.ID, domain.StageShipped, true)
	require.NoError(t, err)

	returned, err := svc.RequestReturn(ctx, "alice@example.com", order.ID)
	require.NoError(t, err)
	require.NotNil(t, returned.Status.ReturnRequested)
	assert.True(t, returned.Status.ReturnRequested.Requested)

	// Only once.
	_, err = svc.RequestReturn(ctx, "alice@example.com", order.ID)
	require.Error(t, err)
}

func TestSetOrderStage(t *testing.T) {
	tr := newTestRepos()
	svc := NewOrderService(tr.repos, zap.NewNop())
	p := seedProduct(t, tr, "Camera", 1000, 5)

	ctx := context.Background()
	order, err := svc.PlaceOrder(ctx, "alice@example.com", checkoutRequest(p, 1))
	require.NoError(t, err)

	updated, err := svc.SetOrderStage(ctx, order.ID, domain.StageDelivered, true)
	require.NoError(t, err)
	assert.True(t, updated.Status.Delivered.Completed)
	assert.NotNil(t, updated.Status.Delivered.At)

	updated, err = svc.SetOrderStage(ctx, order.ID, domain.StageDelivered, false)
	require.NoError(t, err)
	assert.False(t, updated.Status.Delivered.Completed)
	assert.Nil(t, updated.Status.Delivered.At)

	_, err = svc.SetOrderStage(ctx, order.ID, "refunded", true)
	require.Error(t, err)
	_, ok := err.(*errors.ErrValidation)
	assert.True(t, ok)
}

func TestSetOrderStageOnCancelledOrder(t *testing.T) {
	tr := newTestRepos()
	svc := NewOrderService(tr.repos, zap.NewNop())
	p := seedProduct(t, tr, "Camera", 1000, 5)

	ctx := context.Background()
	order, err := svc.PlaceOrder(ctx, "alice@example.com", checkoutRequest(p, 1))
	require.NoError(t, err)

	_, err = svc.CancelOrder(ctx, "alice@example.com", order.ID)
	require.NoError(t, err)

	_, err = svc.SetOrderStage(ctx, order.ID, domain.StagePacked, true)
	require.Error(t, err)
	_, ok := err.(*errors.ErrInvalidTransition)
	assert.True(t, ok, "cancelled orders are terminal")
}

func TestDeleteOrder(t *testing.T) {
	tr := newTestRepos()
	svc := NewOrderService(tr.repos, zap.NewNop())
	p := seedProduct(t, tr, "Camera", 1000, 5)

	ctx := context.Background()
	order, err := svc.PlaceOrder(ctx, "alice@example.com", checkoutRequest(p, 1))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOrder(ctx, order.ID))

	err = svc.DeleteOrder(ctx, order.ID)
	require.Error(t, err)
	_, ok := err.(*errors.ErrNotFound)
	assert.True(t, ok)
}
